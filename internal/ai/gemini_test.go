package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient("test-key", "", WithBaseURL(srv.URL))
	require.NoError(t, err)
	return client
}

func TestGenerateReturnsText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/"+DefaultModel+":generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.URL.RawQuery)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "Привет", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Здравствуйте!  "}]}}]}`))
	})

	text, err := client.Generate(context.Background(), "Привет")
	require.NoError(t, err)
	assert.Equal(t, "Здравствуйте!", text)
}

func TestGenerateQuotaErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http 429", http.StatusTooManyRequests, `{}`},
		{"resource exhausted", http.StatusBadRequest, `{"error":{"status":"RESOURCE_EXHAUSTED","message":"limit"}}`},
		{"quota in message", http.StatusForbidden, `{"error":{"message":"Quota exceeded for project"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), "q")
			assert.ErrorIs(t, err, ErrQuota)
		})
	}
}

func TestGenerateOtherErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"internal"}}`))
	})

	_, err := client.Generate(context.Background(), "q")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrQuota))
	assert.Contains(t, err.Error(), "gemini api error: internal")
}

func TestGenerateEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateRespectsDeadline(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "q")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient("  ", "")
	assert.Error(t, err)
}

func TestGenerateErrorDoesNotContainKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client, err := NewGeminiClient("SECRET-KEY-123", "", WithBaseURL(baseURL))
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "Привет")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-KEY-123")
}

func TestGenerateHonoursLongDeadline(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})
	assert.Zero(t, client.httpClient.Timeout)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	text, err := client.Generate(ctx, "Привет")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}
