package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_SubstitutesAllPlaceholders(t *testing.T) {
	tpl := "Title: {post_title}\nContent: {post_content}\nTags: {tags}\nCategories: {categories}\nExcerpt: {excerpt}\nBy {author} on {date}\nBrief: {content_details}"

	out := Render(tpl, Context{
		Title:          "Hello",
		Content:        "World",
		Tags:           "go,api",
		Categories:     "dev",
		Excerpt:        "short",
		Author:         "Jo",
		Date:           "2024-06-01",
		ContentDetails: "a brief",
	})

	assert.Equal(t, "Title: Hello\nContent: World\nTags: go,api\nCategories: dev\nExcerpt: short\nBy Jo on 2024-06-01\nBrief: a brief", out)
	assert.NotContains(t, out, "{post_title}")
}

func TestRender_MissingFieldsRenderEmpty(t *testing.T) {
	out := Render("[{post_title}][{excerpt}]", Context{Title: "T"})
	assert.Equal(t, "[T][]", out)
}

func TestRender_UnrecognizedPlaceholderLeftVerbatim(t *testing.T) {
	out := Render("{post_title} {something_else}", Context{Title: "T"})
	assert.Equal(t, "T {something_else}", out)
}

func TestRender_RepeatedPlaceholders(t *testing.T) {
	out := Render("{tags} and {tags}", Context{Tags: "x"})
	assert.Equal(t, "x and x", out)
}

func TestRender_Idempotent(t *testing.T) {
	ctx := Context{Title: "A", Content: "B", Tags: "c"}
	once := Render("{post_title}/{post_content}/{tags}", ctx)
	assert.Equal(t, once, Render(once, ctx))
}
