package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amartinez/docchat"
	"github.com/amartinez/docchat/mock"
	"github.com/amartinez/docchat/ragapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProvider_ExplicitRAG(t *testing.T) {
	t.Parallel()
	p, err := resolveProvider(context.Background(), "rag", "http://localhost:8000/api/chat", "", "")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestResolveProvider_ExplicitGemini(t *testing.T) {
	t.Parallel()
	p, err := resolveProvider(context.Background(), "gemini", "", "gk-test", "")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestResolveProvider_UnknownProvider(t *testing.T) {
	t.Parallel()
	_, err := resolveProvider(context.Background(), "openai", "http://localhost:8000", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestResolveProvider_NothingConfigured(t *testing.T) {
	t.Parallel()
	_, err := resolveProvider(context.Background(), "", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no backend configured")
}

func TestResolveProvider_BothConfiguredNoFlag(t *testing.T) {
	t.Parallel()
	_, err := resolveProvider(context.Background(), "", "http://localhost:8000", "gk-gem", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use -provider")
}

func TestResolveProvider_AutoDetectRAG(t *testing.T) {
	t.Parallel()
	p, err := resolveProvider(context.Background(), "", "http://localhost:8000/api/chat", "", "")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestResolveProvider_AutoDetectGemini(t *testing.T) {
	t.Parallel()
	p, err := resolveProvider(context.Background(), "", "", "gk-gem", "")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestResolveProvider_ExplicitRAGMissingBase(t *testing.T) {
	t.Parallel()
	_, err := resolveProvider(context.Background(), "rag", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCCHAT_API_BASE_URL not set")
}

func TestResolveProvider_ExplicitGeminiMissingKey(t *testing.T) {
	t.Parallel()
	_, err := resolveProvider(context.Background(), "gemini", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY not set")
}

func TestCheckBackend_Healthy(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status": "healthy", "service": "chat"}`))
	}))
	defer srv.Close()

	assert.NoError(t, checkBackend(context.Background(), ragapi.New(srv.URL)))
}

func TestCheckBackend_Down(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := checkBackend(context.Background(), ragapi.New(srv.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend health check")
}

func TestCheckBackend_SkipsProvidersWithoutHealthRoute(t *testing.T) {
	t.Parallel()
	var provider docchat.Provider = &mock.Provider{}
	assert.NoError(t, checkBackend(context.Background(), provider))
}
