package cloudflare

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

const pn string = "cloudflare"

func init() {
	llm.Register(pn, NewAdapter)
}

type Adapter struct {
	config config.ProviderConfig
	client *http.Client
}

func NewAdapter(config config.ProviderConfig) (llm.Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.cloudflare.com/client/v4/accounts"
	}
	return &Adapter{
		config: config,
		client: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (a *Adapter) Name() string { return a.config.ID }
func (a *Adapter) Type() string { return pn }

// Workers AI has no JSON-mode or metering; responses are always free text.
func (a *Adapter) Capabilities() llm.Capabilities {
	return llm.Capabilities{
		StructuredJSON: false,
		UsageMetering:  false,
		Operations:     []llm.Operation{llm.OpEnhance, llm.OpGenerate, llm.OpQuery},
	}
}

type Request struct {
	Prompt string `json:"prompt"`
}
type APIError struct {
	Message string `json:"message"`
}
type Result struct {
	Response string `json:"response"`
}
type Response struct {
	Success bool       `json:"success"`
	Result  Result     `json:"result"`
	Errors  []APIError `json:"errors"`
}

// Extract validates the envelope. Workers AI reports application errors with
// a 200 status and success=false.
func Extract(resp Response) (string, error) {
	if !resp.Success {
		msg := "Unknown error"
		if len(resp.Errors) > 0 {
			msg = resp.Errors[0].Message
		}
		return "", api.UpstreamError(http.StatusOK, msg, nil)
	}
	return resp.Result.Response, nil
}

func (a *Adapter) Complete(ctx context.Context, prompt string, structured bool) (string, error) {
	if a.config.APIKey == "" || a.config.AccountID == "" {
		return "", api.NoCredentialsError(pn)
	}

	url := fmt.Sprintf("%s/%s/ai/run/%s",
		strings.TrimRight(a.config.BaseURL, "/"),
		a.config.AccountID,
		a.config.Model,
	)

	headers := map[string]string{
		"Authorization": "Bearer " + a.config.APIKey,
	}

	var resp Response
	if err := httpclient.SendRequest(ctx, a.client, "POST", url, headers, Request{Prompt: prompt}, &resp); err != nil {
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
		var body Response
		if jsonErr := json.Unmarshal(upstreamErr.Body, &body); jsonErr == nil && len(body.Errors) > 0 {
			return api.UpstreamError(upstreamErr.StatusCode, body.Errors[0].Message, err)
		}
		return api.UpstreamError(upstreamErr.StatusCode, string(upstreamErr.Body), err)
	}

	return api.NewError(http.StatusBadGateway, "Upstream Provider Error",
		"failed to decode provider response", api.WithCode(api.CodeProviderError), api.WithLog(err))
}
