package api

import "encoding/json"

// CanonicalResult is the single normalized shape every provider's output is
// converted into.
type CanonicalResult struct {
	EnhancedTitle   string   `json:"enhanced_title"`
	EnhancedContent string   `json:"enhanced_content"`
	SuggestedTags   []string `json:"suggested_tags"`
	MetaDescription string   `json:"meta_description"`
	FocusKeyword    string   `json:"focus_keyword"`

	// Set together when structured parsing failed and EnhancedContent holds
	// the raw provider text instead of validated fields.
	RawResponse string `json:"raw_response,omitempty"`
	ParseError  string `json:"parse_error,omitempty"`
}

// Degraded reports whether this result carries raw fallback text rather than
// validated structured output.
func (r *CanonicalResult) Degraded() bool {
	return r.ParseError != ""
}

// QueryResult is the free-form chat/query answer.
type QueryResult struct {
	Text string `json:"text"`
}

// UsageStats is a read-only view of the hourly window. Providers without
// metering report "N/A" sentinels rather than zero.
type UsageStats struct {
	Metered      bool  `json:"-"`
	CurrentUsage int64 `json:"-"`
	RateLimit    int64 `json:"-"`
	Remaining    int64 `json:"-"`
}

func (s UsageStats) MarshalJSON() ([]byte, error) {
	if !s.Metered {
		return json.Marshal(map[string]string{
			"current_usage": "N/A",
			"rate_limit":    "N/A",
			"remaining":     "N/A",
		})
	}
	return json.Marshal(map[string]int64{
		"current_usage": s.CurrentUsage,
		"rate_limit":    s.RateLimit,
		"remaining":     s.Remaining,
	})
}
