package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/contentcraft/contentcraft-api/internal/config"
	"github.com/contentcraft/contentcraft-api/internal/httpclient"
	"github.com/contentcraft/contentcraft-api/internal/llm"
	"github.com/contentcraft/contentcraft-api/pkg/api"
)

const pn string = "openrouter"

func init() {
	llm.Register(pn, NewAdapter)
}

type Adapter struct {
	config config.ProviderConfig
	client *http.Client
}

func NewAdapter(config config.ProviderConfig) (llm.Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://openrouter.ai/api/v1/chat/completions"
	}
	return &Adapter{
		config: config,
		client: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (a *Adapter) Name() string { return a.config.ID }
func (a *Adapter) Type() string { return pn }

// JSON mode is best-effort on OpenRouter: response_format is forwarded but
// models ignore it often enough that the normalizer must tolerate raw text.
func (a *Adapter) Capabilities() llm.Capabilities {
	return llm.Capabilities{
		StructuredJSON: true,
		UsageMetering:  false,
		Operations:     []llm.Operation{llm.OpEnhance, llm.OpGenerate, llm.OpQuery},
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
type ResponseFormat struct {
	Type string `json:"type"`
}
type Request struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}
type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}
type Response struct {
	Choices []Choice `json:"choices"`
}

// upstreamErrorResponse mirrors the standard OpenAI-style error shape
type upstreamErrorResponse struct {
	Error struct {
		Message string      `json:"message"`
		Code    interface{} `json:"code"`
	} `json:"error"`
}

// Shape builds the single-user-turn chat request.
func Shape(prompt string, cfg config.ProviderConfig, structured bool) Request {
	req := Request{
		Model:       cfg.Model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: cfg.Temperature,
	}
	if structured {
		req.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}
	return req
}

// Extract pulls the first choice's message content out of the response.
func Extract(resp Response) (string, error) {
	if len(resp.Choices) == 0 {
		return "", api.NoContentError(pn)
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *Adapter) Complete(ctx context.Context, prompt string, structured bool) (string, error) {
	if a.config.APIKey == "" {
		return "", api.NoCredentialsError(pn)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + a.config.APIKey,
	}
	if a.config.SiteURL != "" {
		headers["HTTP-Referer"] = a.config.SiteURL
	}
	if a.config.AppName != "" {
		headers["X-Title"] = a.config.AppName
	}

	var resp Response
	if err := httpclient.SendRequest(ctx, a.client, "POST", a.config.BaseURL, headers, Shape(prompt, a.config, structured), &resp); err != nil {
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
