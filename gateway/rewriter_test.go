package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/shufa/grammar"
	"github.com/teranos/shufa/kb"
)

func TestPassthrough(t *testing.T) {
	out, err := Passthrough{}.Rewrite(context.Background(), "查询兰亭序")
	require.NoError(t, err)
	assert.Equal(t, "查询兰亭序", out)
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, isCanonical(Passthrough{}))
	assert.False(t, isCanonical(RewriterFunc(func(_ context.Context, text string) (string, error) {
		return text, nil
	})))
	assert.False(t, isCanonical(&ChatRewriter{}))
}

func TestIsQuery(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"查询书法家王羲之", true},
		{"找兰亭序", true},
		{"我想知道张旭信息", true},
		{"展示唐代书法家", true},
		{"您好！我是书法咨询助手，请问有什么可以帮您？", false},
		{"", false},
		{" 查询兰亭序", false},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuery(tt.reply))
		})
	}
}

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt(kb.Default())

	for _, s := range grammar.Shapes() {
		assert.Contains(t, prompt, s.Example())
		assert.Contains(t, prompt, s.Pattern())
	}
	for _, want := range []string{"唐朝", "东晋", "王羲之", "九成宫醴泉铭", "隶书", "我想知道"} {
		assert.Contains(t, prompt, want)
	}
	assert.True(t, strings.HasSuffix(prompt, "回复不得以FIND词开头。"))
}
