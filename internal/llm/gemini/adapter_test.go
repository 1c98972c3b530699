package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contentcraft/contentcraft-api/internal/config"
	"github.com/contentcraft/contentcraft-api/internal/llm/gemini"
	"github.com/contentcraft/contentcraft-api/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.ProviderConfig {
	return config.ProviderConfig{
		ID:          "gemini",
		Type:        "gemini",
		APIKey:      "test-key",
		Model:       "gemini-2.5-pro",
		BaseURL:     baseURL,
		Temperature: 0.7,
		MaxTokens:   2000,
	}
}

func TestComplete_StructuredSuccess(t *testing.T) {
	structuredPayload := `{"enhanced_title":"T","enhanced_content":"C","suggested_tags":["a","b"],"meta_description":"D","focus_keyword":"k"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-pro:generateContent", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req gemini.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "Test", req.Contents[0].Parts[0].Text)
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
		assert.Equal(t, 2000, req.GenerationConfig.MaxOutputTokens)
		assert.Equal(t, 0.7, req.GenerationConfig.Temperature)

		w.WriteHeader(http.StatusOK)
		resp := gemini.Response{Candidates: []gemini.Candidate{{
			Content: gemini.Content{Parts: []gemini.Part{{Text: structuredPayload}}},
		}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	adapter, err := gemini.NewAdapter(testConfig(server.URL))
	require.NoError(t, err)

	text, err := adapter.Complete(context.Background(), "Test", true)
	require.NoError(t, err)
	assert.Equal(t, structuredPayload, text)
}

func TestComplete_FreeTextOmitsMIMEType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gemini.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Empty(t, req.GenerationConfig.ResponseMIMEType)

		resp := gemini.Response{Candidates: []gemini.Candidate{{
			Content: gemini.Content{Parts: []gemini.Part{{Text: "plain answer"}}},
		}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	adapter, _ := gemini.NewAdapter(testConfig(server.URL))

	text, err := adapter.Complete(context.Background(), "Hi", false)
	require.NoError(t, err)
	assert.Equal(t, "plain answer", text)
}

func TestComplete_NoCredentials(t *testing.T) {
	cfg := testConfig("http://localhost:1")
	cfg.APIKey = ""
	adapter, _ := gemini.NewAdapter(cfg)

	_, err := adapter.Complete(context.Background(), "Test", true)
	assert.Equal(t, api.CodeNoCredentials, api.ErrorCode(err))
}

func TestComplete_ProviderErrorCarriesStatus(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exhausted","status":"RESOURCE_EXHAUSTED"}}`))
		}))

		adapter, _ := gemini.NewAdapter(testConfig(server.URL))
		_, err := adapter.Complete(context.Background(), "Test", true)
		server.Close()

		require.Error(t, err)
		assert.Equal(t, api.CodeProviderError, api.ErrorCode(err))

		var problem *api.Problem
		require.ErrorAs(t, err, &problem)
		assert.Equal(t, status, problem.Extensions["upstream_status"])
		assert.Contains(t, problem.Detail, "quota exhausted")
	}
}

func TestComplete_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	adapter, _ := gemini.NewAdapter(testConfig(server.URL))

	_, err := adapter.Complete(context.Background(), "Test", true)
	require.Error(t, err)
	assert.Equal(t, api.CodeNetworkFailure, api.ErrorCode(err))
}

func TestComplete_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	adapter, _ := gemini.NewAdapter(testConfig(server.URL))

	_, err := adapter.Complete(context.Background(), "Test", true)
	require.Error(t, err)
	assert.Equal(t, api.CodeNoContent, api.ErrorCode(err))
}

func TestCapabilities(t *testing.T) {
	adapter, _ := gemini.NewAdapter(testConfig(""))
	caps := adapter.Capabilities()
	assert.True(t, caps.StructuredJSON)
	assert.True(t, caps.UsageMetering)
	assert.True(t, caps.Supports("enhance"))
}
