package api

// EnhanceRequest asks the gateway to rewrite an existing post.
type EnhanceRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Tags       string `json:"tags,omitempty"`
	Categories string `json:"categories,omitempty"`
	Excerpt    string `json:"excerpt,omitempty"`
	Author     string `json:"author,omitempty"`

	// Optional template override; the configured enhancement template is
	// used when empty.
	Prompt string `json:"prompt,omitempty"`
}

// GenerateRequest asks the gateway to write a post from a brief.
type GenerateRequest struct {
	Title          string `json:"title" binding:"required"`
	Tags           string `json:"tags,omitempty"`
	Length         string `json:"length,omitempty" binding:"omitempty,oneof=short medium long"`
	ContentDetails string `json:"content_details,omitempty"`
	Author         string `json:"author,omitempty"`

	Prompt string `json:"prompt,omitempty"`
}

// ChatRequest is a free-form question, optionally anchored to a post.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`

	PostTitle   string     `json:"post_title,omitempty"`
	PostContent string     `json:"post_content,omitempty"`
	History     []ChatTurn `json:"history,omitempty" binding:"omitempty,dive"`
}

type ChatTurn struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}
