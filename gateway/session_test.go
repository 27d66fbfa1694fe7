package gateway

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teranos/shufa/engine"
	"github.com/teranos/shufa/errors"
	"github.com/teranos/shufa/kb"
)

func newTestSession(t *testing.T, rw Rewriter) *Session {
	t.Helper()
	return NewSession(rw, engine.New(kb.Default(), engine.WithLogger(zap.NewNop().Sugar())))
}

// scripted rewrites known inputs and greets otherwise
func scripted(script map[string]string) Rewriter {
	return RewriterFunc(func(_ context.Context, text string) (string, error) {
		if strings.Contains(text, "坏") {
			return "", errors.WrapGateway(errors.New("connection reset"), "rewrite failed")
		}
		if out, ok := script[text]; ok {
			return out, nil
		}
		return "您好！请提出书法相关的问题。", nil
	})
}

func TestSessionProcess(t *testing.T) {
	s := newTestSession(t, scripted(map[string]string{
		"兰亭序是谁写的":  "查询兰亭序",
		"米芾是谁":     "查询米芾",
		"王旭的作品有哪些": "查询王旭的作品",
	}))
	ctx := context.Background()

	t.Run("query resolved by engine", func(t *testing.T) {
		r := s.Process(ctx, "兰亭序是谁写的")
		assert.Equal(t, ReplyQuery, r.Kind)
		assert.Equal(t, "查询兰亭序", r.Rewritten)
		assert.Equal(t, engine.Answered, r.Outcome.Category)
		assert.Contains(t, r.Text, "兰亭序是王羲之的代表作")
	})

	t.Run("query the engine cannot answer", func(t *testing.T) {
		r := s.Process(ctx, "王旭的作品有哪些")
		assert.Equal(t, ReplyQuery, r.Kind)
		assert.Equal(t, engine.NotFound, r.Outcome.Category)
		assert.Equal(t, "❌ 未找到王旭的作品记录", r.Text)
	})

	t.Run("out of vocabulary query", func(t *testing.T) {
		r := s.Process(ctx, "米芾是谁")
		assert.Equal(t, ReplyQuery, r.Kind)
		assert.Equal(t, engine.NotUnderstood, r.Text)
	})

	t.Run("greeting passes through", func(t *testing.T) {
		r := s.Process(ctx, "你好")
		assert.Equal(t, ReplyGreeting, r.Kind)
		assert.Equal(t, "您好！请提出书法相关的问题。", r.Text)
	})

	t.Run("rewriter failure", func(t *testing.T) {
		r := s.Process(ctx, "坏请求")
		assert.Equal(t, ReplyFailed, r.Kind)
		assert.True(t, strings.HasPrefix(r.Text, FailurePrefix), r.Text)
		assert.True(t, errors.IsGatewayError(r.Err))
		assert.Empty(t, r.Rewritten)
	})

	stats := s.Stats()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Queries)
	assert.Equal(t, 1, stats.Greetings)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Answered)
	assert.Equal(t, 2, stats.Unanswered)
	assert.InDelta(t, 60.0, stats.SuccessRate(), 0.001)
}

func TestSessionPassthrough(t *testing.T) {
	s := newTestSession(t, Passthrough{})
	ctx := context.Background()

	r := s.Process(ctx, "查询唐朝书法家")
	assert.Equal(t, ReplyQuery, r.Kind)
	assert.Contains(t, r.Text, "🏛️ 唐代著名书法家")

	// Every passthrough line goes to the engine, FIND word or not
	tests := []struct {
		input    string
		category engine.Category
	}{
		{"王羲之", engine.Unrecognized},
		{"你好", engine.Unrecognized},
		{" 查询书法家王羲之", engine.Answered},
		{"的查询书法家王羲之", engine.Answered},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := s.Process(ctx, tt.input)
			assert.Equal(t, ReplyQuery, r.Kind)
			assert.Equal(t, tt.category, r.Outcome.Category)
			assert.Equal(t, s.engine.Resolve(tt.input), r.Text)
		})
	}

	assert.Equal(t, engine.NotUnderstood, s.Process(ctx, "王羲之").Text)
	assert.Equal(t, s.Process(ctx, "查询书法家王羲之").Text, s.Process(ctx, "的查询书法家王羲之").Text)
	assert.Zero(t, s.Stats().Greetings)
}

func TestSessionIDDuringProcess(t *testing.T) {
	s := newTestSession(t, Passthrough{})
	id := s.ID()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Process(context.Background(), "查询兰亭序")
		}()
		go func() {
			defer wg.Done()
			assert.Equal(t, id, s.ID())
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, s.Stats().Total)
	assert.Equal(t, id, s.Stats().SessionID)
}

func TestSessionIdentity(t *testing.T) {
	a := newTestSession(t, Passthrough{})
	b := newTestSession(t, Passthrough{})

	_, err := uuid.Parse(a.ID())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.ID(), a.Stats().SessionID)
	assert.False(t, a.Stats().StartedAt.IsZero())
	assert.Zero(t, a.Stats().SuccessRate())
}

func TestReplyKindString(t *testing.T) {
	assert.Equal(t, "query", ReplyQuery.String())
	assert.Equal(t, "greeting", ReplyGreeting.String())
	assert.Equal(t, "failed", ReplyFailed.String())
}
