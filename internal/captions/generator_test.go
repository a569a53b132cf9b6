package captions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ltk-caption-platform/models"
)

// stubCompleter returns scripted completions in call order.
type stubCompleter struct {
	responses []string
	errs      []error
	calls     []completionCall
}

type completionCall struct {
	systemPrompt string
	userPrompt   string
	maxTokens    int
	temperature  float32
}

func (s *stubCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error) {
	i := len(s.calls)
	s.calls = append(s.calls, completionCall{systemPrompt, userPrompt, maxTokens, temperature})
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("unscripted completion")
}

func TestGenerateCaption(t *testing.T) {
	stub := &stubCompleter{responses: []string{"  Cozy season is HERE #fall #cozy  "}}
	gen := NewGenerator(stub)

	caption, err := gen.GenerateCaption(context.Background(), samplePost(), PromptGiftGuide, "casual", 250, models.CaptionTypeShort)
	require.NoError(t, err)

	require.Equal(t, "Cozy season is HERE #fall #cozy", caption.Caption)
	require.Equal(t, models.CaptionTypeShort, caption.CaptionType)
	require.Equal(t, []string{"fall", "cozy"}, caption.Hashtags)
	require.Equal(t, 6, caption.WordCount)
	require.Equal(t, len(caption.Caption), caption.CharCount)

	require.Len(t, stub.calls, 1)
	call := stub.calls[0]
	require.Equal(t, captionSystemPrompt, call.systemPrompt)
	require.Equal(t, 500, call.maxTokens)
	require.Equal(t, captionTemperature, call.temperature)
	require.Contains(t, call.userPrompt, "Maximum 250 characters")
}

func TestGenerateCaptionCountsRunesNotBytes(t *testing.T) {
	stub := &stubCompleter{responses: []string{"Fall vibes 🍂"}}
	gen := NewGenerator(stub)

	caption, err := gen.GenerateCaption(context.Background(), samplePost(), PromptSeasonal, "casual", 250, models.CaptionTypeShort)
	require.NoError(t, err)
	require.Equal(t, 12, caption.CharCount)
	require.Equal(t, 3, caption.WordCount)
	require.Greater(t, len(caption.Caption), caption.CharCount)
}

func TestGenerateCaptionDefaults(t *testing.T) {
	stub := &stubCompleter{responses: []string{"hello"}}
	gen := NewGenerator(stub)

	caption, err := gen.GenerateCaption(context.Background(), samplePost(), PromptLifestyle, "", 0, "")
	require.NoError(t, err)
	require.Equal(t, models.CaptionTypeShort, caption.CaptionType)
	require.Contains(t, stub.calls[0].userPrompt, "Tone: "+DefaultTone)
	require.Equal(t, DefaultMaxLength*2, stub.calls[0].maxTokens)
}

func TestGenerateCaptionError(t *testing.T) {
	genErr := errors.New("model unavailable")
	stub := &stubCompleter{errs: []error{genErr}}
	gen := NewGenerator(stub)

	caption, err := gen.GenerateCaption(context.Background(), samplePost(), PromptSaleAlert, "casual", 250, models.CaptionTypeShort)
	require.ErrorIs(t, err, genErr)
	require.Nil(t, caption)
}

func TestGenerateVariantsAllSucceed(t *testing.T) {
	stub := &stubCompleter{responses: []string{"short one", "long one", "alt one"}}
	gen := NewGenerator(stub)

	variants := gen.GenerateVariants(context.Background(), samplePost(), PromptGiftGuide, "casual", 3)
	require.Len(t, variants, 3)
	require.Equal(t, models.CaptionTypeShort, variants[0].CaptionType)
	require.Equal(t, models.CaptionTypeLong, variants[1].CaptionType)
	require.Equal(t, models.CaptionTypeAltText, variants[2].CaptionType)

	// The tier ladder drives both the caption type and the length budget.
	require.Equal(t, 500, stub.calls[0].maxTokens)
	require.Equal(t, 300, stub.calls[1].maxTokens)
	require.Equal(t, 200, stub.calls[2].maxTokens)
}

func TestGenerateVariantsSkipsFailedTier(t *testing.T) {
	stub := &stubCompleter{
		responses: []string{"short one", "", "alt one"},
		errs:      []error{nil, errors.New("tier failed"), nil},
	}
	gen := NewGenerator(stub)

	variants := gen.GenerateVariants(context.Background(), samplePost(), PromptGiftGuide, "casual", 3)
	require.Len(t, variants, 2)
	require.Equal(t, models.CaptionTypeShort, variants[0].CaptionType)
	require.Equal(t, models.CaptionTypeAltText, variants[1].CaptionType)
}

func TestGenerateVariantsBeyondTierTable(t *testing.T) {
	stub := &stubCompleter{responses: []string{"a", "b", "c", "d", "e"}}
	gen := NewGenerator(stub)

	variants := gen.GenerateVariants(context.Background(), samplePost(), PromptGiftGuide, "casual", 5)
	require.Len(t, variants, 5)
	// Indexes past the table reuse the last tier.
	require.Equal(t, models.CaptionTypeAltText, variants[3].CaptionType)
	require.Equal(t, models.CaptionTypeAltText, variants[4].CaptionType)
	require.Equal(t, 200, stub.calls[4].maxTokens)
}

func TestGenerateHashtags(t *testing.T) {
	stub := &stubCompleter{responses: []string{"#fallfashion, cozyvibes , #ShopNow,, giftideas"}}
	gen := NewGenerator(stub)

	hashtags, err := gen.GenerateHashtags(context.Background(), samplePost(), "fashion", 10)
	require.NoError(t, err)
	require.Equal(t, []string{"fallfashion", "cozyvibes", "ShopNow", "giftideas"}, hashtags)

	require.Equal(t, hashtagSystemPrompt, stub.calls[0].systemPrompt)
	require.Equal(t, hashtagMaxTokens, stub.calls[0].maxTokens)
	require.Equal(t, hashtagTemperature, stub.calls[0].temperature)
}

func TestGenerateHashtagsCapped(t *testing.T) {
	stub := &stubCompleter{responses: []string{"a, b, c, d, e"}}
	gen := NewGenerator(stub)

	hashtags, err := gen.GenerateHashtags(context.Background(), samplePost(), "", 3)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, hashtags)
}

func TestGenerateHashtagsError(t *testing.T) {
	genErr := errors.New("model unavailable")
	stub := &stubCompleter{errs: []error{genErr}}
	gen := NewGenerator(stub)

	_, err := gen.GenerateHashtags(context.Background(), samplePost(), "", 10)
	require.ErrorIs(t, err, genErr)
}

func TestExtractHashtags(t *testing.T) {
	require.Equal(t, []string{"sale", "ShopNow", "sale"}, ExtractHashtags("Big #sale today #ShopNow and again #sale"))
	require.Equal(t, []string{}, ExtractHashtags("no tags here"))
}
