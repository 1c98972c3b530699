// Package prompt substitutes post metadata into prompt templates.
package prompt

import "strings"

// Context holds the per-call values for the recognized placeholders. Empty
// fields substitute as empty strings.
type Context struct {
	Title          string
	Content        string
	Tags           string
	Categories     string
	Excerpt        string
	Author         string
	Date           string
	ContentDetails string
}

// Render replaces every recognized placeholder in template with the
// corresponding context value. Unrecognized placeholders are left verbatim.
// The output is prompt text, not rendered markup, so no escaping is applied.
func Render(template string, ctx Context) string {
	r := strings.NewReplacer(
		"{post_title}", ctx.Title,
		"{post_content}", ctx.Content,
		"{tags}", ctx.Tags,
		"{categories}", ctx.Categories,
		"{excerpt}", ctx.Excerpt,
		"{author}", ctx.Author,
		"{date}", ctx.Date,
		"{content_details}", ctx.ContentDetails,
	)
	return r.Replace(template)
}
