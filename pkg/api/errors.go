package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes surfaced in the "code" extension.
const (
	CodeNoCredentials   = "no_credentials"
	CodeRateLimit       = "rate_limit_exceeded"
	CodeNetworkFailure  = "network_failure"
	CodeProviderError   = "provider_error"
	CodeNoContent       = "no_content"
	CodeNotImplemented  = "not_implemented"
	CodeValidationError = "validation_error"
)

// Problem implements RFC 9457
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	Extensions map[string]interface{} `json:"-"`

	Log error `json:"-"`
}

func (p *Problem) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

func (p *Problem) MarshalJSON() ([]byte, error) {
	type Alias Problem

	data := make(map[string]interface{})

	for k, v := range p.Extensions {
		data[k] = v
	}

	stdJSON, _ := json.Marshal(Alias(*p))
	_ = json.Unmarshal(stdJSON, &data)

	return json.Marshal(data)
}

type ProblemOption func(*Problem)

// NewError creates a generic Problem
func NewError(status int, title, detail string, opts ...ProblemOption) *Problem {
	p := &Problem{
		Type:       "about:blank", // Default as per RFC
		Title:      title,
		Status:     status,
		Detail:     detail,
		Extensions: make(map[string]interface{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithExtension adds a custom key-value pair to the response
func WithExtension(key string, value interface{}) ProblemOption {
	return func(p *Problem) {
		p.Extensions[key] = value
	}
}

// WithLog attaches an internal error for server-side logging
func WithLog(err error) ProblemOption {
	return func(p *Problem) {
		p.Log = err
	}
}

// WithType sets the RFC "type" URI
func WithType(uri string) ProblemOption {
	return func(p *Problem) {
		p.Type = uri
	}
}

// WithCode sets the machine-readable "code" extension
func WithCode(code string) ProblemOption {
	return func(p *Problem) {
		p.Extensions["code"] = code
	}
}

// ErrorCode extracts the machine-readable code from a Problem, or "" for
// anything else.
func ErrorCode(err error) string {
	var p *Problem
	if !errors.As(err, &p) {
		return ""
	}
	if code, ok := p.Extensions["code"].(string); ok {
		return code
	}
	return ""
}

// NoCredentialsError signals that the active provider has no API key
// configured. The dispatch layer maps this to 401.
func NoCredentialsError(provider string) *Problem {
	return NewError(
		http.StatusUnauthorized,
		"Missing Credentials",
		fmt.Sprintf("API credentials for provider '%s' are not configured", provider),
		WithCode(CodeNoCredentials),
	)
}

// RateLimitError signals the hourly installation quota is exhausted.
func RateLimitError(detail string) *Problem {
	return NewError(
		http.StatusTooManyRequests,
		"Rate Limit Exceeded",
		detail,
		WithCode(CodeRateLimit),
	)
}

// NetworkError wraps a transport-level failure (DNS, timeout, reset).
func NetworkError(err error) *Problem {
	return NewError(
		http.StatusBadGateway,
		"Upstream Unreachable",
		"Failed to connect to the AI provider. Possible timeout.",
		WithCode(CodeNetworkFailure),
		WithLog(err),
	)
}

// UpstreamError wraps a non-2xx provider response. The upstream status code
// travels as an extension so callers can distinguish 429s from 500s.
func UpstreamError(status int, detail string, err error) *Problem {
	return NewError(
		http.StatusBadGateway,
		"Upstream Provider Error",
		detail,
		WithCode(CodeProviderError),
		WithExtension("upstream_status", status),
		WithLog(err),
	)
}

// NoContentError signals an empty candidates/choices array — never silently
// an empty-string success.
func NoContentError(provider string) *Problem {
	return NewError(
		http.StatusBadGateway,
		"No Content",
		fmt.Sprintf("No content generated by provider '%s'", provider),
		WithCode(CodeNoContent),
	)
}

// NotImplementedError signals the active provider does not declare the
// requested operation.
func NotImplementedError(provider, operation string) *Problem {
	return NewError(
		http.StatusNotImplemented,
		"Not Implemented",
		fmt.Sprintf("Provider '%s' does not support '%s'", provider, operation),
		WithCode(CodeNotImplemented),
	)
}

// BadRequestError creates a plain 400
func BadRequestError(detail string) *Problem {
	return NewError(
		http.StatusBadRequest,
		"Bad Request",
		detail,
	)
}

// ValidationError creates a rich validation error
func ValidationError(validationErrors map[string]string) *Problem {
	return NewError(
		http.StatusBadRequest,
		"Validation Error",
		"One or more fields failed validation",
		WithCode(CodeValidationError),
		WithExtension("errors", validationErrors),
	)
}

// InternalError creates a catch-all 500
func InternalError(detail string, err error) *Problem {
	return NewError(
		http.StatusInternalServerError,
		"Internal Server Error",
		detail,
		WithLog(err),
	)
}
