package normalize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	htmlPolicy   = bluemonday.UGCPolicy()

	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	// inline event handlers, quoted (onclick="..." / onload='...') or bare
	// (onclick=evil())
	onAttrRe = regexp.MustCompile(`(?i)\son\w+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
)

// SanitizeText strips all markup from single-line fields (titles, tags,
// meta descriptions).
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// SanitizeContent cleans post body HTML. Block-editor content is detected by
// its "<!-- wp:" comment delimiters; a full HTML sanitizer would strip those
// comments and destroy the block structure, so block content only gets
// script, style and event-handler removal. Plain HTML goes through the
// standard policy.
func SanitizeContent(content string) string {
	if strings.Contains(content, "<!-- wp:") {
		content = scriptRe.ReplaceAllString(content, "")
		content = styleRe.ReplaceAllString(content, "")
		content = onAttrRe.ReplaceAllString(content, "")
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(htmlPolicy.Sanitize(content))
}
