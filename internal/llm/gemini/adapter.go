package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/contentcraft/contentcraft-api/internal/config"
	"github.com/contentcraft/contentcraft-api/internal/httpclient"
	"github.com/contentcraft/contentcraft-api/internal/llm"
	"github.com/contentcraft/contentcraft-api/pkg/api"
)

const pn string = "gemini"

func init() {
	llm.Register(pn, NewAdapter)
}

type Adapter struct {
	config config.ProviderConfig
	client *http.Client
}

func NewAdapter(config config.ProviderConfig) (llm.Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &Adapter{
		config: config,
		// LLM generation is slow, keep the timeout generous.
		client: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (a *Adapter) Name() string { return a.config.ID }
func (a *Adapter) Type() string { return pn }

func (a *Adapter) Capabilities() llm.Capabilities {
	return llm.Capabilities{
		StructuredJSON: true,
		UsageMetering:  true,
		Operations:     []llm.Operation{llm.OpEnhance, llm.OpGenerate, llm.OpQuery},
	}
}

type Part struct {
	Text string `json:"text"`
}
type Content struct {
	Parts []Part `json:"parts"`
}
type GenerationConfig struct {
	ResponseMIMEType string  `json:"response_mime_type,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	Temperature      float64 `json:"temperature"`
}
type Request struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// upstreamErrorResponse mirrors the standard Gemini error envelope
type upstreamErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Shape builds the wire request for a single-turn prompt. Structured mode
// asks the provider for a JSON MIME type response.
func Shape(prompt string, cfg config.ProviderConfig, structured bool) Request {
	gc := &GenerationConfig{
		MaxOutputTokens: cfg.MaxTokens,
		Temperature:     cfg.Temperature,
	}
	if structured {
		gc.ResponseMIMEType = "application/json"
	}
	return Request{
		Contents:         []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: gc,
	}
}

// Extract pulls the first candidate's first part out of the response.
func Extract(resp Response) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", api.NoContentError(pn)
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return "", api.NoContentError(pn)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (a *Adapter) Complete(ctx context.Context, prompt string, structured bool) (string, error) {
	if a.config.APIKey == "" {
		return "", api.NoCredentialsError(pn)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(a.config.BaseURL, "/"),
		a.config.Model,
		a.config.APIKey,
	)

	var resp Response
	if err := httpclient.SendRequest(ctx, a.client, "POST", url, nil, Shape(prompt, a.config, structured), &resp); err != nil {
		return "", a.handleUpstreamError(err)
	}

	return Extract(resp)
}

func (a *Adapter) handleUpstreamError(err error) error {
	var transportErr *httpclient.TransportError
	if errors.As(err, &transportErr) {
		return api.NetworkError(err)
	}

	var upstreamErr *httpclient.UpstreamError
	if errors.As(err, &upstreamErr) {
		var apiErr upstreamErrorResponse
		if jsonErr := json.Unmarshal(upstreamErr.Body, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return api.UpstreamError(upstreamErr.StatusCode, apiErr.Error.Message, err)
		}
		return api.UpstreamError(upstreamErr.StatusCode, string(upstreamErr.Body), err)
	}

	return api.NewError(http.StatusBadGateway, "Upstream Provider Error",
		"failed to decode provider response", api.WithCode(api.CodeProviderError), api.WithLog(err))
}
