package llm

import "context"

type ProviderName string

const (
	Gemini     ProviderName = "gemini"
	Cloudflare ProviderName = "cloudflare"
	OpenRouter ProviderName = "openrouter"
)

// Operation names the gateway calls a provider may declare support for.
type Operation string

const (
	OpEnhance  Operation = "enhance"
	OpGenerate Operation = "generate"
	OpQuery    Operation = "query"
)

// Capabilities declares what a provider variant can do. The orchestrator
// consults this instead of branching on provider identity.
type Capabilities struct {
	// StructuredJSON reports whether the provider can be asked to return a
	// JSON object natively. Without it, responses are always free text.
	StructuredJSON bool

	// UsageMetering reports whether usage stats carry real numbers.
	UsageMetering bool

	Operations []Operation
}

// Supports reports whether op is in the declared operation set.
func (c Capabilities) Supports(op Operation) bool {
	for _, o := range c.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// Provider is a single upstream AI service. Complete performs one blocking
// request/response round trip; there is no streaming, retrying or batching.
type Provider interface {
	Name() string
	Type() string
	Capabilities() Capabilities

	// Complete sends the prompt upstream and returns the provider's text
	// payload. When structured is true and the provider supports it, the
	// provider is asked for a JSON object response.
	Complete(ctx context.Context, prompt string, structured bool) (string, error)
}
