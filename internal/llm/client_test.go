package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finstmt/internal/config"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Model:          "llama3.1:8b",
		TimeoutSeconds: 5,
		Temperature:    0.1,
	}
}

func TestClientGenerate(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(generateResponse{Response: `{"cash": 100}`})
	}))
	defer server.Close()

	c := NewClientWithEndpoint(testLLMConfig(), server.URL)
	resp, err := c.Generate(context.Background(), "extract the metrics")
	require.NoError(t, err)

	assert.Equal(t, `{"cash": 100}`, resp)
	assert.Equal(t, "llama3.1:8b", got.Model)
	assert.Equal(t, "extract the metrics", got.Prompt)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.1, got.Temperature)
}

func TestClientGenerate_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClientWithEndpoint(testLLMConfig(), server.URL)
	_, err := c.Generate(context.Background(), "extract")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "model not found")
}

func TestClientGenerate_UndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := NewClientWithEndpoint(testLLMConfig(), server.URL)
	_, err := c.Generate(context.Background(), "extract")
	assert.Error(t, err)
}

func TestClientGenerate_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClientWithEndpoint(testLLMConfig(), server.URL)
	_, err := c.Generate(ctx, "extract")
	assert.Error(t, err)
}
