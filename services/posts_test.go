package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilter(t *testing.T) {
	filter := SearchFilter("user-1", "fall finds")

	require.Equal(t, "user-1", filter["user_id"])

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 2)

	handle, ok := or[0]["creator_handle"].(primitive.Regex)
	require.True(t, ok)
	require.Equal(t, "fall finds", handle.Pattern)
	require.Equal(t, "i", handle.Options)

	caption, ok := or[1]["original_caption"].(primitive.Regex)
	require.True(t, ok)
	require.Equal(t, "fall finds", caption.Pattern)
}

func TestSearchFilterEscapesRegexMeta(t *testing.T) {
	filter := SearchFilter("user-1", "50% off (today)")

	or := filter["$or"].([]bson.M)
	handle := or[0]["creator_handle"].(primitive.Regex)
	require.Equal(t, `50% off \(today\)`, handle.Pattern)
}
