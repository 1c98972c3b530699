package openrouter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contentcraft/contentcraft-api/internal/config"
	"github.com/contentcraft/contentcraft-api/internal/llm/openrouter"
	"github.com/contentcraft/contentcraft-api/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.ProviderConfig {
	return config.ProviderConfig{
		ID:          "openrouter",
		Type:        "openrouter",
		APIKey:      "or-key",
		Model:       "meta-llama/llama-3.2-3b-instruct:free",
		BaseURL:     baseURL,
		Temperature: 0.7,
		SiteURL:     "https://blog.example.com",
		AppName:     "ContentCraft AI",
	}
}

func TestComplete_StructuredRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		assert.Equal(t, "https://blog.example.com", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "ContentCraft AI", r.Header.Get("X-Title"))

		var req openrouter.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "meta-llama/llama-3.2-3b-instruct:free", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "Test", req.Messages[0].Content)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"enhanced_content\":\"C\"}"}}]}`))
	}))
	defer server.Close()

	adapter, err := openrouter.NewAdapter(testConfig(server.URL))
	require.NoError(t, err)

	text, err := adapter.Complete(context.Background(), "Test", true)
	require.NoError(t, err)
	assert.Equal(t, `{"enhanced_content":"C"}`, text)
}

func TestComplete_FreeTextOmitsResponseFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openrouter.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Nil(t, req.ResponseFormat)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"free text"}}]}`))
	}))
	defer server.Close()

	adapter, _ := openrouter.NewAdapter(testConfig(server.URL))

	text, err := adapter.Complete(context.Background(), "Hi", false)
	require.NoError(t, err)
	assert.Equal(t, "free text", text)
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	adapter, _ := openrouter.NewAdapter(testConfig(server.URL))

	_, err := adapter.Complete(context.Background(), "Test", true)
	require.Error(t, err)
	assert.Equal(t, api.CodeNoContent, api.ErrorCode(err))
}

func TestComplete_ProviderErrorMessageExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream blew up","code":500}}`))
	}))
	defer server.Close()

	adapter, _ := openrouter.NewAdapter(testConfig(server.URL))

	_, err := adapter.Complete(context.Background(), "Test", true)
	require.Error(t, err)
	assert.Equal(t, api.CodeProviderError, api.ErrorCode(err))
	assert.Contains(t, err.Error(), "upstream blew up")

	var problem *api.Problem
	require.ErrorAs(t, err, &problem)
	assert.Equal(t, http.StatusInternalServerError, problem.Extensions["upstream_status"])
}

func TestComplete_NoCredentials(t *testing.T) {
	cfg := testConfig("")
	cfg.APIKey = ""
	adapter, _ := openrouter.NewAdapter(cfg)

	_, err := adapter.Complete(context.Background(), "Test", true)
	assert.Equal(t, api.CodeNoCredentials, api.ErrorCode(err))
}
