package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teranos/shufa/errors"
	"github.com/teranos/shufa/internal/util"
)

// newTestServer serves chat completions, failing the first `failures`
// requests with status code `failWith`
func newTestServer(t *testing.T, failures int32, failWith int, reply string) (*httptest.Server, *int32, *chatRequest) {
	t.Helper()

	var calls int32
	var last chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)

		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&last))

		if n <= failures {
			http.Error(w, "upstream unavailable", failWith)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "cmpl-1",
			"model": "deepseek-chat",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": reply}},
			},
			"usage": map[string]int{"total_tokens": 42},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls, &last
}

func newTestRewriter(t *testing.T, baseURL string) *ChatRewriter {
	t.Helper()
	rw := NewChatRewriter(ChatConfig{
		BaseURL:           baseURL,
		APIKey:            "test-key",
		SystemPrompt:      "改写",
		RequestsPerMinute: 60000,
		RetryDelay:        time.Millisecond,
		AllowPrivateIP:    true,
		Logger:            zap.NewNop().Sugar(),
	})
	t.Cleanup(rw.Close)
	return rw
}

func TestNewChatRewriterDefaults(t *testing.T) {
	rw := NewChatRewriter(ChatConfig{BaseURL: "https://example.com/v1/"})
	defer rw.Close()

	assert.Equal(t, "https://example.com/v1", rw.config.BaseURL)
	assert.Equal(t, DefaultModel, rw.Model())
	assert.Equal(t, 30*time.Second, rw.config.Timeout)
	assert.Equal(t, 30, rw.config.RequestsPerMinute)
	assert.Equal(t, 0.1, *rw.config.Temperature)
	assert.Equal(t, 200, *rw.config.MaxTokens)
}

func TestNewChatRewriterKeepsExplicitZero(t *testing.T) {
	rw := NewChatRewriter(ChatConfig{Temperature: util.Ptr(0.0), MaxTokens: util.Ptr(0)})
	defer rw.Close()

	assert.Equal(t, 0.0, *rw.config.Temperature)
	assert.Equal(t, 0, *rw.config.MaxTokens)
}

func TestChatRewriterRewrite(t *testing.T) {
	srv, calls, last := newTestServer(t, 0, 0, "  查询书法家王羲之\n")
	rw := newTestRewriter(t, srv.URL)

	out, err := rw.Rewrite(context.Background(), "王羲之是谁？")
	require.NoError(t, err)
	assert.Equal(t, "查询书法家王羲之", out)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))

	require.Len(t, last.Messages, 2)
	assert.Equal(t, "system", last.Messages[0].Role)
	assert.Equal(t, "改写", last.Messages[0].Content)
	assert.Equal(t, "王羲之是谁？", last.Messages[1].Content)
	assert.Equal(t, DefaultModel, last.Model)
}

func TestChatRewriterRetries(t *testing.T) {
	t.Run("recovers from server errors", func(t *testing.T) {
		srv, calls, _ := newTestServer(t, 2, http.StatusBadGateway, "查询兰亭序")
		rw := newTestRewriter(t, srv.URL)

		out, err := rw.Rewrite(context.Background(), "兰亭序")
		require.NoError(t, err)
		assert.Equal(t, "查询兰亭序", out)
		assert.EqualValues(t, 3, atomic.LoadInt32(calls))
	})

	t.Run("gives up after three attempts", func(t *testing.T) {
		srv, calls, _ := newTestServer(t, 5, http.StatusTooManyRequests, "")
		rw := newTestRewriter(t, srv.URL)

		_, err := rw.Rewrite(context.Background(), "兰亭序")
		require.Error(t, err)
		assert.True(t, errors.IsGatewayError(err))
		assert.Contains(t, err.Error(), "after 3 attempts")
		assert.EqualValues(t, 3, atomic.LoadInt32(calls))
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		srv, calls, _ := newTestServer(t, 5, http.StatusUnauthorized, "")
		rw := newTestRewriter(t, srv.URL)

		_, err := rw.Rewrite(context.Background(), "兰亭序")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
		assert.EqualValues(t, 1, atomic.LoadInt32(calls))
	})
}

func TestChatRewriterMissingAPIKey(t *testing.T) {
	rw := NewChatRewriter(ChatConfig{Logger: zap.NewNop().Sugar()})
	defer rw.Close()

	_, err := rw.Rewrite(context.Background(), "你好")
	require.Error(t, err)
	assert.True(t, errors.IsGatewayError(err))
	assert.Contains(t, errors.FlattenHints(err), "SHUFA_GATEWAY_API_KEY")
}

func TestChatRewriterBlocksPrivateEndpoints(t *testing.T) {
	srv, calls, _ := newTestServer(t, 0, 0, "查询兰亭序")
	rw := NewChatRewriter(ChatConfig{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		RequestsPerMinute: 60000,
		Logger:            zap.NewNop().Sugar(),
	})
	defer rw.Close()

	_, err := rw.Rewrite(context.Background(), "兰亭序")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}

func TestChatRewriterRateLimit(t *testing.T) {
	srv, calls, _ := newTestServer(t, 0, 0, "查询兰亭序")
	rw := NewChatRewriter(ChatConfig{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		RequestsPerMinute: 1,
		AllowPrivateIP:    true,
		Logger:            zap.NewNop().Sugar(),
	})
	defer rw.Close()

	_, err := rw.Rewrite(context.Background(), "兰亭序")
	require.NoError(t, err)

	// The next token is a minute away; the deadline expires first
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = rw.Rewrite(ctx, "兰亭序")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&statusError{code: http.StatusServiceUnavailable}))
	assert.True(t, isRetryable(&statusError{code: http.StatusTooManyRequests}))
	assert.False(t, isRetryable(&statusError{code: http.StatusBadRequest}))
	assert.False(t, isRetryable(errors.New("failed to unmarshal response")))
}
