// Package gateway orchestrates one AI call end to end: template rendering,
// quota check, provider dispatch, normalization and history logging.
package gateway

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/contentcraft/contentcraft-api/internal/analytics"
	"github.com/contentcraft/contentcraft-api/internal/config"
	"github.com/contentcraft/contentcraft-api/internal/llm"
	"github.com/contentcraft/contentcraft-api/internal/normalize"
	"github.com/contentcraft/contentcraft-api/internal/prompt"
	"github.com/contentcraft/contentcraft-api/internal/ratelimit"
	"github.com/contentcraft/contentcraft-api/internal/store/model"
	"github.com/contentcraft/contentcraft-api/pkg/api"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const testPrompt = `This is a test message. Please respond with "Connection successful".`

// Service defines the business logic for content operations.
type Service interface {
	Enhance(ctx context.Context, req *api.EnhanceRequest) (*api.CanonicalResult, error)
	Generate(ctx context.Context, req *api.GenerateRequest) (*api.CanonicalResult, error)
	Query(ctx context.Context, req *api.ChatRequest) (*api.QueryResult, error)
	TestConnection(ctx context.Context) (*api.QueryResult, error)
	UsageStats(ctx context.Context) (*api.UsageStats, error)
}

type service struct {
	logger   *zap.Logger
	cfg      *config.Config
	provider llm.Provider
	limiter  *ratelimit.Limiter
	ingestor analytics.Ingestor
}

func NewService(logger *zap.Logger, cfg *config.Config, provider llm.Provider, limiter *ratelimit.Limiter, ingestor analytics.Ingestor) Service {
	return &service{
		logger:   logger,
		cfg:      cfg,
		provider: provider,
		limiter:  limiter,
		ingestor: ingestor,
	}
}

func (s *service) Enhance(ctx context.Context, req *api.EnhanceRequest) (*api.CanonicalResult, error) {
	template := req.Prompt
	if template == "" {
		template = s.cfg.Prompts.Enhancement
	}

	rendered := prompt.Render(template, prompt.Context{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Categories: req.Categories,
		Excerpt:    req.Excerpt,
		Author:     req.Author,
		Date:       time.Now().Format("2006-01-02"),
	})

	text, structured, latency, err := s.dispatch(ctx, llm.OpEnhance, rendered, true)
	if err != nil {
		return nil, err
	}
	result := normalize.Normalize(text, structured)
	s.record(llm.OpEnhance, rendered, text, latency, result.Degraded(), nil)
	return result, nil
}

func (s *service) Generate(ctx context.Context, req *api.GenerateRequest) (*api.CanonicalResult, error) {
	template := req.Prompt
	if template == "" {
		template = s.cfg.Prompts.Generation
	}

	rendered := prompt.Render(template, prompt.Context{
		Title:          req.Title,
		Tags:           req.Tags,
		ContentDetails: req.ContentDetails,
		Author:         req.Author,
		Date:           time.Now().Format("2006-01-02"),
	})

	if hint := lengthHint(req.Length); hint != "" {
		rendered += "\n\n" + hint
	}

	text, structured, latency, err := s.dispatch(ctx, llm.OpGenerate, rendered, true)
	if err != nil {
		return nil, err
	}
	result := normalize.Normalize(text, structured)
	s.record(llm.OpGenerate, rendered, text, latency, result.Degraded(), nil)
	return result, nil
}

// Query runs a free-form conversational request. Post context and prior
// turns are folded into a single prompt; providers here are stateless.
func (s *service) Query(ctx context.Context, req *api.ChatRequest) (*api.QueryResult, error) {
	var b strings.Builder

	if req.PostTitle != "" || req.PostContent != "" {
		b.WriteString("You are a helpful assistant. The user is asking questions about the following content:\n\n")
		b.WriteString("Title: " + req.PostTitle + "\n\n")
		b.WriteString("Content: " + req.PostContent + "\n\n")
	} else {
		b.WriteString("You are a helpful writing assistant.\n\n")
	}

	for _, turn := range req.History {
		b.WriteString(turn.Role + ": " + turn.Content + "\n")
	}
	b.WriteString("user: " + req.Message)

	composed := b.String()
	text, _, latency, err := s.dispatch(ctx, llm.OpQuery, composed, false)
	if err != nil {
		return nil, err
	}
	s.record(llm.OpQuery, composed, text, latency, false, nil)
	return &api.QueryResult{Text: text}, nil
}

// TestConnection sends a canned prompt and surfaces whatever came back. It is
// not rate limited differently from real calls: a test burns quota too.
func (s *service) TestConnection(ctx context.Context) (*api.QueryResult, error) {
	text, _, latency, err := s.dispatch(ctx, llm.OpQuery, testPrompt, false)
	if err != nil {
		return nil, err
	}
	s.record(llm.OpQuery, testPrompt, text, latency, false, nil)
	return &api.QueryResult{Text: text}, nil
}

func (s *service) UsageStats(ctx context.Context) (*api.UsageStats, error) {
	if !s.provider.Capabilities().UsageMetering {
		return &api.UsageStats{Metered: false}, nil
	}

	usage, err := s.limiter.Usage(ctx)
	if err != nil {
		return nil, api.InternalError("failed to read usage counter", err)
	}

	ceiling := int64(s.limiter.Ceiling())
	remaining := ceiling - usage
	if remaining < 0 {
		remaining = 0
	}

	return &api.UsageStats{
		Metered:      true,
		CurrentUsage: usage,
		RateLimit:    ceiling,
		Remaining:    remaining,
	}, nil
}

// dispatch runs the shared call path: capability gate, quota gate, provider
// round trip, quota burn. Failed attempts are logged to history here; the
// caller records successes once it knows whether normalization degraded.
// The returned bool reports whether the provider was actually asked for
// structured output.
func (s *service) dispatch(ctx context.Context, op llm.Operation, rendered string, wantStructured bool) (string, bool, time.Duration, error) {
	caps := s.provider.Capabilities()
	if !caps.Supports(op) {
		return "", false, 0, api.NotImplementedError(s.provider.Type(), string(op))
	}

	if err := s.limiter.Allow(ctx); err != nil {
		return "", false, 0, err
	}

	structured := wantStructured && caps.StructuredJSON

	start := time.Now()
	text, err := s.provider.Complete(ctx, rendered, structured)
	latency := time.Since(start)

	// every attempt burns quota, including failures
	s.limiter.Record(ctx)

	if err != nil {
		s.record(op, rendered, "", latency, false, err)
		return "", false, latency, err
	}
	return text, structured, latency, nil
}

func (s *service) record(op llm.Operation, rendered, text string, latency time.Duration, degraded bool, err error) {
	status := 200
	code := ""
	if err != nil {
		status = 500
		var problem *api.Problem
		if errors.As(err, &problem) {
			status = problem.Status
		}
		code = api.ErrorCode(err)
	}

	if s.ingestor != nil {
		s.ingestor.Log(&model.RequestLog{
			ID:            uuid.NewString(),
			Provider:      s.provider.Type(),
			Operation:     string(op),
			Model:         s.cfg.ActiveProvider().Model,
			StatusCode:    status,
			ErrorCode:     code,
			Degraded:      degraded,
			PromptChars:   len(rendered),
			ResponseChars: len(text),
			LatencyMS:     latency.Milliseconds(),
			CreatedAt:     time.Now(),
		})
	}

	if !s.cfg.Logging.Enabled {
		return
	}
	if err != nil {
		s.logger.Warn("ai request failed",
			zap.String("provider", s.provider.Type()),
			zap.String("operation", string(op)),
			zap.Int64("latency_ms", latency.Milliseconds()),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("ai request completed",
		zap.String("provider", s.provider.Type()),
		zap.String("operation", string(op)),
		zap.Bool("degraded", degraded),
		zap.Int("prompt_chars", len(rendered)),
		zap.Int("response_chars", len(text)),
		zap.Int64("latency_ms", latency.Milliseconds()),
	)
}

func lengthHint(length string) string {
	switch length {
	case "short":
		return "Target length: roughly 300 words."
	case "medium":
		return "Target length: roughly 600 words."
	case "long":
		return "Target length: roughly 1200 words."
	default:
		return ""
	}
}
