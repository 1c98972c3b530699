package cloudflare_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contentcraft/contentcraft-api/internal/config"
	"github.com/contentcraft/contentcraft-api/internal/llm/cloudflare"
	"github.com/contentcraft/contentcraft-api/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.ProviderConfig {
	return config.ProviderConfig{
		ID:        "cloudflare",
		Type:      "cloudflare",
		APIKey:    "cf-key",
		AccountID: "acct-123",
		Model:     "@cf/meta/llama-2-7b-chat-int8",
		BaseURL:   baseURL,
	}
}

func TestComplete_FreeTextSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acct-123/ai/run/@cf/meta/llama-2-7b-chat-int8", r.URL.Path)
		assert.Equal(t, "Bearer cf-key", r.Header.Get("Authorization"))

		var req cloudflare.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Say hi", req.Prompt)

		_, _ = w.Write([]byte(`{"success":true,"result":{"response":"Hello world"}}`))
	}))
	defer server.Close()

	adapter, err := cloudflare.NewAdapter(testConfig(server.URL))
	require.NoError(t, err)

	text, err := adapter.Complete(context.Background(), "Say hi", false)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}

func TestComplete_MissingCredentials(t *testing.T) {
	cfg := testConfig("")
	cfg.AccountID = ""
	adapter, _ := cloudflare.NewAdapter(cfg)

	_, err := adapter.Complete(context.Background(), "Say hi", false)
	assert.Equal(t, api.CodeNoCredentials, api.ErrorCode(err))
}

func TestComplete_ApplicationErrorWithOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"errors":[{"message":"model not found"}]}`))
	}))
	defer server.Close()

	adapter, _ := cloudflare.NewAdapter(testConfig(server.URL))

	_, err := adapter.Complete(context.Background(), "Say hi", false)
	require.Error(t, err)
	assert.Equal(t, api.CodeProviderError, api.ErrorCode(err))
	assert.Contains(t, err.Error(), "model not found")
}

func TestComplete_HTTPErrorCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"success":false,"errors":[{"message":"rate limited upstream"}]}`))
	}))
	defer server.Close()

	adapter, _ := cloudflare.NewAdapter(testConfig(server.URL))

	_, err := adapter.Complete(context.Background(), "Say hi", false)
	require.Error(t, err)
	assert.Equal(t, api.CodeProviderError, api.ErrorCode(err))

	var problem *api.Problem
	require.ErrorAs(t, err, &problem)
	assert.Equal(t, http.StatusTooManyRequests, problem.Extensions["upstream_status"])
}

func TestComplete_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	adapter, _ := cloudflare.NewAdapter(testConfig(server.URL))

	_, err := adapter.Complete(context.Background(), "Say hi", false)
	require.Error(t, err)
	assert.Equal(t, api.CodeNetworkFailure, api.ErrorCode(err))
}

func TestCapabilities_FreeTextOnly(t *testing.T) {
	adapter, _ := cloudflare.NewAdapter(testConfig(""))
	caps := adapter.Capabilities()
	assert.False(t, caps.StructuredJSON)
	assert.False(t, caps.UsageMetering)
	assert.True(t, caps.Supports("generate"))
}
