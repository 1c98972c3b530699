// Package normalize converts raw provider output into the canonical result
// shape the editor consumes, degrading gracefully when a provider returns
// text that is not the JSON object it was asked for.
package normalize

import (
	"encoding/json"

	"github.com/contentcraft/contentcraft-api/pkg/api"
)

// payload is the structured object providers are prompted to return.
type payload struct {
	EnhancedTitle   string   `json:"enhanced_title"`
	EnhancedContent string   `json:"enhanced_content"`
	SuggestedTags   []string `json:"suggested_tags"`
	MetaDescription string   `json:"meta_description"`
	FocusKeyword    string   `json:"focus_keyword"`
}

// Normalize maps a provider's text output onto the canonical result.
//
// When structured is false the text is wrapped as-is into the content field.
// When structured is true the text is parsed as JSON; a parse failure is a
// degraded success, not an error: the raw text becomes the content so the
// caller still gets something usable, with ParseError and RawResponse set
// for diagnosis. The degraded path never sanitizes, since mangling a
// payload we could not parse would destroy the debugging value.
func Normalize(text string, structured bool) *api.CanonicalResult {
	if !structured {
		return &api.CanonicalResult{EnhancedContent: text}
	}

	var p payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return &api.CanonicalResult{
			EnhancedContent: text,
			RawResponse:     text,
			ParseError:      err.Error(),
		}
	}

	tags := make([]string, 0, len(p.SuggestedTags))
	for _, tag := range p.SuggestedTags {
		tags = append(tags, SanitizeText(tag))
	}

	return &api.CanonicalResult{
		EnhancedTitle:   SanitizeText(p.EnhancedTitle),
		EnhancedContent: SanitizeContent(p.EnhancedContent),
		SuggestedTags:   tags,
		MetaDescription: SanitizeText(p.MetaDescription),
		FocusKeyword:    SanitizeText(p.FocusKeyword),
	}
}
