package captions

import (
	"fmt"
	"strings"

	"ltk-caption-platform/models"
)

// PromptType selects one of the known caption blueprints.
type PromptType string

const (
	PromptGiftGuide      PromptType = "gift_guide"
	PromptSaleAlert      PromptType = "sale_alert"
	PromptProductRoundup PromptType = "product_roundup"
	PromptSeasonal       PromptType = "seasonal"
	PromptLifestyle      PromptType = "lifestyle"
)

// ParsePromptType maps a tag to its prompt type. Unknown tags deliberately
// fall back to product_roundup instead of erroring.
func ParsePromptType(tag string) PromptType {
	switch PromptType(tag) {
	case PromptGiftGuide, PromptSaleAlert, PromptProductRoundup, PromptSeasonal, PromptLifestyle:
		return PromptType(tag)
	default:
		// Explicit default arm: unknown tags render as a roundup.
		return PromptProductRoundup
	}
}

// maxPromptProducts bounds the product list substituted into a prompt.
const maxPromptProducts = 5

// maxCaptionContext bounds how much of the original caption is carried into
// the prompt, regardless of source length.
const maxCaptionContext = 200

// noProductsPlaceholder substitutes for an empty product list.
const noProductsPlaceholder = "No specific products mentioned"

// The blueprints differ only in instructional content; they are data, not
// logic. Placeholders: 1 = product list, 2 = original caption context,
// 3 = max length, 4 = tone.
var promptBlueprints = map[PromptType]string{
	PromptGiftGuide: `Create a fun, upbeat caption for a gift guide post featuring these products:
%[1]s

Original caption context: %[2]s

Requirements:
- Write a punchy hook with an emoji
- Highlight the top 3 products
- Keep it casual and friendly
- Maximum %[3]d characters
- Include relevant hashtags
- Focus on gifting angle and value

Tone: %[4]s`,

	PromptSaleAlert: `Write a punchy caption about these sale items:
%[1]s

Original caption context: %[2]s

Requirements:
- Create urgency and excitement
- Mention price/deal if visible
- Add a strong call-to-action (shop fast!)
- Use emojis strategically
- Maximum %[3]d characters
- Include relevant hashtags

Tone: %[4]s`,

	PromptProductRoundup: `Create an engaging caption for this product roundup:
%[1]s

Original caption context: %[2]s

Requirements:
- Start with an attention-grabbing hook
- Showcase product variety
- Keep it conversational and relatable
- Maximum %[3]d characters
- Include relevant hashtags
- Make it shoppable and actionable

Tone: %[4]s`,

	PromptSeasonal: `Write a seasonal/trending caption for these featured products:
%[1]s

Original caption context: %[2]s

Requirements:
- Connect to current season/trend
- Create FOMO (fear of missing out)
- Use trending phrases naturally
- Maximum %[3]d characters
- Include relevant hashtags
- Make it timely and relevant

Tone: %[4]s`,

	PromptLifestyle: `Create a lifestyle-focused caption for these products:
%[1]s

Original caption context: %[2]s

Requirements:
- Tell a relatable story or scenario
- Focus on lifestyle benefits
- Keep it authentic and personal
- Maximum %[3]d characters
- Include relevant hashtags
- Make readers envision using the products

Tone: %[4]s`,
}

// Render fills the blueprint for promptType from the post data. The product
// section lists at most the first five products; the original caption is
// truncated to bound prompt size.
func Render(promptType PromptType, post models.Post, tone string, maxLength int) string {
	blueprint, ok := promptBlueprints[promptType]
	if !ok {
		blueprint = promptBlueprints[PromptProductRoundup]
	}
	return fmt.Sprintf(blueprint,
		formatProducts(post.Products),
		truncateRunes(post.OriginalCaption, maxCaptionContext),
		maxLength,
		tone,
	)
}

// renderHashtagPrompt builds the dedicated hashtag-generation prompt; it is
// not one of the caption blueprints.
func renderHashtagPrompt(post models.Post, category string, maxHashtags int) string {
	if category == "" {
		category = "general shopping"
	}
	return fmt.Sprintf(`Generate %d relevant Instagram hashtags for a post about:

Products: %s
Category: %s
Original caption: %s

Requirements:
- Mix of popular and niche hashtags
- Relevant to products and category
- Include shopping/affiliate related tags
- Format: Return only hashtags separated by commas, without # symbol
`, maxHashtags, formatProducts(post.Products), category, truncateRunes(post.OriginalCaption, 100))
}

// formatProducts numbers the first five products as "i. title from merchant".
func formatProducts(products []models.Product) string {
	if len(products) == 0 {
		return noProductsPlaceholder
	}

	var lines []string
	for i, product := range products {
		if i >= maxPromptProducts {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s from %s", i+1, product.Title, product.Merchant))
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
