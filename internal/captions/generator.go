package captions

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"ltk-caption-platform/internal/logger"
	"ltk-caption-platform/models"
)

const (
	captionSystemPrompt = "You are an expert social media caption writer for influencer marketing. You create engaging, authentic captions that drive clicks and sales."
	hashtagSystemPrompt = "You are a social media hashtag expert."

	captionTemperature float32 = 0.8
	hashtagTemperature float32 = 0.7
	hashtagMaxTokens           = 200

	DefaultTone      = "casual"
	DefaultMaxLength = 250
)

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// TextCompleter is the generation boundary consumed by the generator: a
// single stateless call, no streaming, no retries.
type TextCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error)
}

// Generator turns post records into generated captions and hashtags.
type Generator struct {
	client TextCompleter
}

func NewGenerator(client TextCompleter) *Generator {
	return &Generator{client: client}
}

// GenerateCaption renders the prompt for promptType, issues one generation
// call and post-processes the output. maxTokens is derived from maxLength
// with a rough two-characters-per-token heuristic.
func (g *Generator) GenerateCaption(ctx context.Context, post models.Post, promptType PromptType, tone string, maxLength int, captionType string) (*models.GeneratedCaption, error) {
	if tone == "" {
		tone = DefaultTone
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if captionType == "" {
		captionType = models.CaptionTypeShort
	}

	prompt := Render(promptType, post, tone, maxLength)

	raw, err := g.client.Complete(ctx, captionSystemPrompt, prompt, maxLength*2, captionTemperature)
	if err != nil {
		return nil, err
	}

	caption := buildCaption(raw, captionType)
	return &caption, nil
}

// variantTiers is the fixed descending ladder GenerateVariants walks; indexes
// past the table reuse the last tier.
var variantTiers = []struct {
	maxLength   int
	captionType string
}{
	{250, models.CaptionTypeShort},
	{150, models.CaptionTypeLong},
	{100, models.CaptionTypeAltText},
}

// GenerateVariants produces up to count captions, one generation call per
// tier, sequentially. A failed tier is logged and omitted; the survivors come
// back in generation order.
func (g *Generator) GenerateVariants(ctx context.Context, post models.Post, promptType PromptType, tone string, count int) []models.GeneratedCaption {
	variants := []models.GeneratedCaption{}

	for i := 0; i < count; i++ {
		tier := variantTiers[len(variantTiers)-1]
		if i < len(variantTiers) {
			tier = variantTiers[i]
		}

		caption, err := g.GenerateCaption(ctx, post, promptType, tone, tier.maxLength, tier.captionType)
		if err != nil {
			logger.Warn("caption variant failed", "tier", i, "caption_type", tier.captionType, "error", err)
			continue
		}
		variants = append(variants, *caption)
	}

	return variants
}

// GenerateHashtags asks the model for comma-separated hashtags and normalizes
// the response: split on commas, trim, strip leading '#', cap at maxHashtags.
func (g *Generator) GenerateHashtags(ctx context.Context, post models.Post, category string, maxHashtags int) ([]string, error) {
	if maxHashtags <= 0 {
		maxHashtags = 10
	}

	prompt := renderHashtagPrompt(post, category, maxHashtags)

	raw, err := g.client.Complete(ctx, hashtagSystemPrompt, prompt, hashtagMaxTokens, hashtagTemperature)
	if err != nil {
		return nil, err
	}

	var hashtags []string
	for _, piece := range strings.Split(strings.TrimSpace(raw), ",") {
		tag := strings.TrimLeft(strings.TrimSpace(piece), "#")
		if tag == "" {
			continue
		}
		hashtags = append(hashtags, tag)
		if len(hashtags) == maxHashtags {
			break
		}
	}
	return hashtags, nil
}

// buildCaption post-processes one raw completion into a caption record.
// CharCount is in runes, not bytes; captions regularly carry emoji.
func buildCaption(raw, captionType string) models.GeneratedCaption {
	text := strings.TrimSpace(raw)
	return models.GeneratedCaption{
		Caption:     text,
		CaptionType: captionType,
		Hashtags:    ExtractHashtags(text),
		WordCount:   len(strings.Fields(text)),
		CharCount:   utf8.RuneCountInString(text),
	}
}

// ExtractHashtags collects #word occurrences in order of appearance with the
// '#' stripped. Duplicates and casing are preserved.
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	hashtags := []string{}
	for _, m := range matches {
		hashtags = append(hashtags, m[1])
	}
	return hashtags
}
