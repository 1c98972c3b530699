package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contentcraft/contentcraft-api/internal/analytics"
	"github.com/contentcraft/contentcraft-api/internal/config"
	"github.com/contentcraft/contentcraft-api/internal/server"
	"github.com/contentcraft/contentcraft-api/internal/server/validator"
	"github.com/contentcraft/contentcraft-api/internal/store/model"
	"github.com/contentcraft/contentcraft-api/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubService struct {
	enhanceResult *api.CanonicalResult
	queryResult   *api.QueryResult
	usage         *api.UsageStats
	err           error
}

func (s *stubService) Enhance(context.Context, *api.EnhanceRequest) (*api.CanonicalResult, error) {
	return s.enhanceResult, s.err
}

func (s *stubService) Generate(context.Context, *api.GenerateRequest) (*api.CanonicalResult, error) {
	return s.enhanceResult, s.err
}

func (s *stubService) Query(context.Context, *api.ChatRequest) (*api.QueryResult, error) {
	return s.queryResult, s.err
}

func (s *stubService) TestConnection(context.Context) (*api.QueryResult, error) {
	return s.queryResult, s.err
}

func (s *stubService) UsageStats(context.Context) (*api.UsageStats, error) {
	return s.usage, s.err
}

type stubAnalytics struct{}

func (s *stubAnalytics) GetUsageOverview(context.Context, int) ([]model.DailyStats, error) {
	return []model.DailyStats{{Date: "2026-08-28", TotalRequests: 3}}, nil
}

func (s *stubAnalytics) GetRecentRequests(context.Context, int) ([]model.RequestLog, error) {
	return []model.RequestLog{{ID: "abc", Provider: "gemini"}}, nil
}

var _ analytics.Service = (*stubAnalytics)(nil)

func newTestServer(t *testing.T, svc *stubService, apiKeys []string) http.Handler {
	t.Helper()
	validator.InitValidator()

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.Server.APIKeys = apiKeys
	cfg.RateLimit.RequestsPerSecond = 1000
	cfg.RateLimit.Burst = 1000

	return server.New(cfg, zap.NewNop(), svc, &stubAnalytics{}).Handler()
}

func postJSON(handler http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestEnhanceRoute_Success(t *testing.T) {
	svc := &stubService{enhanceResult: &api.CanonicalResult{EnhancedTitle: "Better"}}
	handler := newTestServer(t, svc, nil)

	w := postJSON(handler, "/api/v1/enhance", map[string]string{
		"title":   "T",
		"content": "C",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var result api.CanonicalResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Better", result.EnhancedTitle)
}

func TestEnhanceRoute_ValidationError(t *testing.T) {
	handler := newTestServer(t, &stubService{}, nil)

	w := postJSON(handler, "/api/v1/enhance", map[string]string{"title": "T"}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body["code"])

	fields, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "content")
}

func TestEnhanceRoute_ProblemPassThrough(t *testing.T) {
	svc := &stubService{err: api.RateLimitError("Hourly limit of 10 AI requests reached. Try again later.")}
	handler := newTestServer(t, svc, nil)

	w := postJSON(handler, "/api/v1/enhance", map[string]string{
		"title":   "T",
		"content": "C",
	}, nil)

	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit_exceeded", body["code"])
	assert.Equal(t, "Rate Limit Exceeded", body["title"])
}

func TestAuth_RejectsWithoutKey(t *testing.T) {
	handler := newTestServer(t, &stubService{}, []string{"secret-key"})

	w := postJSON(handler, "/api/v1/enhance", map[string]string{
		"title":   "T",
		"content": "C",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_AcceptsBearerKey(t *testing.T) {
	svc := &stubService{enhanceResult: &api.CanonicalResult{}}
	handler := newTestServer(t, svc, []string{"secret-key"})

	w := postJSON(handler, "/api/v1/enhance", map[string]string{
		"title":   "T",
		"content": "C",
	}, map[string]string{"Authorization": "Bearer secret-key"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChatRoute_InvalidRole(t *testing.T) {
	handler := newTestServer(t, &stubService{}, nil)

	w := postJSON(handler, "/api/v1/chat", map[string]any{
		"message": "hi",
		"history": []map[string]string{{"role": "system", "content": "x"}},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsageRoute_UnmeteredSentinels(t *testing.T) {
	svc := &stubService{usage: &api.UsageStats{Metered: false}}
	handler := newTestServer(t, svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"current_usage":"N/A","rate_limit":"N/A","remaining":"N/A"}`, w.Body.String())
}

func TestHealthRoute(t *testing.T) {
	handler := newTestServer(t, &stubService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestHistoryRoute(t *testing.T) {
	handler := newTestServer(t, &stubService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=10", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"provider":"gemini"`)
}
