package grammar

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/shufa/kb"
)

func newTestLexer(t *testing.T) *Lexer {
	t.Helper()
	return NewLexer(DefaultVocabulary(kb.Default()))
}

func TestTokenizeCanonicalSentences(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     []TokenKind
		values   []string
	}{
		{
			name:     "calligrapher detail",
			sentence: "查询书法家王羲之",
			want:     []TokenKind{TokenFind, TokenRole, TokenName},
			values:   []string{"查询", "书法家", "王羲之"},
		},
		{
			name:     "works with filler",
			sentence: "查询王羲之的作品",
			want:     []TokenKind{TokenFind, TokenName, TokenWork},
			values:   []string{"查询", "王羲之", "作品"},
		},
		{
			name:     "direct work title",
			sentence: "查询兰亭序",
			want:     []TokenKind{TokenFind, TokenName},
			values:   []string{"查询", "兰亭序"},
		},
		{
			name:     "style detail",
			sentence: "查询风格行书",
			want:     []TokenKind{TokenFind, TokenStyle, TokenName},
			values:   []string{"查询", "风格", "行书"},
		},
		{
			name:     "calligrapher style picks longest keyword",
			sentence: "搜索苏轼的书法风格",
			want:     []TokenKind{TokenFind, TokenName, TokenStyle},
			values:   []string{"搜索", "苏轼", "书法风格"},
		},
		{
			name:     "dynasty roster folds alias",
			sentence: "查询唐朝书法家",
			want:     []TokenKind{TokenFind, TokenDynasty, TokenRole},
			values:   []string{"查询", "唐代", "书法家"},
		},
		{
			name:     "info",
			sentence: "查询张旭信息",
			want:     []TokenKind{TokenFind, TokenName, TokenInfo},
			values:   []string{"查询", "张旭", "信息"},
		},
		{
			name:     "longest find keyword",
			sentence: "我想知道颜真卿",
			want:     []TokenKind{TokenFind, TokenName},
			values:   []string{"我想知道", "颜真卿"},
		},
		{
			name:     "name stops where a keyword begins",
			sentence: "查询楷书书体",
			want:     []TokenKind{TokenFind, TokenName, TokenStyle},
			values:   []string{"查询", "楷书", "书体"},
		},
	}

	l := newTestLexer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := l.Tokenize(tt.sentence)
			require.Equal(t, tt.want, Kinds(tokens), FormatTokens(tokens))
			for i, tok := range tokens {
				assert.Equal(t, tt.values[i], tok.Value)
			}
			assert.Empty(t, l.Skipped())
		})
	}
}

func TestTokenizeDynastySurfaceKeepsRaw(t *testing.T) {
	tokens := newTestLexer(t).Tokenize("查询宋朝书法家")
	require.Len(t, tokens, 3)

	assert.Equal(t, "宋朝", tokens[1].Raw)
	assert.Equal(t, "宋代", tokens[1].Value)
	assert.Equal(t, "DYNASTY(宋朝→宋代)", tokens[1].String())
}

func TestTokenizeFillerAndWhitespaceInvariance(t *testing.T) {
	l := newTestLexer(t)
	want := Kinds(l.Tokenize("查询王羲之作品"))

	for _, sentence := range []string{
		"查询王羲之的作品",
		"查询 王羲之 的 作品",
		"的查询的王羲之的作品的",
		"\t查询\n王羲之\r\n作品 ",
	} {
		tokens := l.Tokenize(sentence)
		assert.Equal(t, want, Kinds(tokens), "sentence %q", sentence)
		assert.Equal(t, "王羲之", tokens[1].Value)
	}
}

func TestTokenizeSkipsUnknownRunes(t *testing.T) {
	l := newTestLexer(t)
	tokens := l.Tokenize("查询？王羲之!")

	assert.Equal(t, []TokenKind{TokenFind, TokenName}, Kinds(tokens))

	skipped := l.Skipped()
	require.Len(t, skipped, 2)
	assert.Equal(t, '？', skipped[0].Rune)
	assert.Equal(t, 2, skipped[0].Position.Character)
	assert.Equal(t, '!', skipped[1].Rune)
}

func TestTokenizeInvalidUTF8Offsets(t *testing.T) {
	l := newTestLexer(t)
	tokens := l.Tokenize("\xff\xfe查询兰亭序")

	require.Equal(t, []TokenKind{TokenFind, TokenName}, Kinds(tokens))
	assert.Equal(t, 2, tokens[0].Range.Start.Offset)
	assert.Equal(t, 8, tokens[1].Range.Start.Offset)
	assert.Equal(t, 17, tokens[1].Range.End.Offset)

	skipped := l.Skipped()
	require.Len(t, skipped, 2)
	assert.Equal(t, utf8.RuneError, skipped[0].Rune)
	assert.Equal(t, 1, skipped[0].Size)
	assert.Equal(t, 1, skipped[1].Position.Offset)
}

func TestSkipWarning(t *testing.T) {
	l := newTestLexer(t)
	l.Tokenize("查询？王羲之")

	skipped := l.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, 3, skipped[0].Size)

	w := skipped[0].Warning()
	assert.Equal(t, ErrorKindLexical, w.Kind)
	assert.Equal(t, SeverityWarning, w.Severity)
	require.NotNil(t, w.Range)
	assert.Equal(t, 6, w.Range.Start.Offset)
	assert.Equal(t, 9, w.Range.End.Offset)
	assert.Equal(t, 3, w.Range.End.Character)
	assert.Equal(t, `unrecognized character '？' skipped (at 1:2)`, w.Error())
}

func TestTokenizeNameOutsideAlphabetIsSkipped(t *testing.T) {
	l := newTestLexer(t)
	tokens := l.Tokenize("查询米芾")

	// Neither rune is in the name alphabet
	assert.Equal(t, []TokenKind{TokenFind}, Kinds(tokens))
	assert.Len(t, l.Skipped(), 2)
}

func TestTokenizeEmpty(t *testing.T) {
	l := newTestLexer(t)
	assert.Empty(t, l.Tokenize(""))
	assert.Empty(t, l.Tokenize("   的的  "))
}

func TestTokenizeResetsBetweenCalls(t *testing.T) {
	l := newTestLexer(t)

	l.Tokenize("查询\n\n\n？王羲之")
	assert.Equal(t, 4, l.Line())
	assert.Len(t, l.Skipped(), 1)

	tokens := l.Tokenize("查询王羲之")
	assert.Equal(t, 1, l.Line())
	assert.Empty(t, l.Skipped())
	assert.Equal(t, 1, tokens[1].Range.Start.Line)
	assert.Equal(t, 2, tokens[1].Range.Start.Character)
}

func TestTokenRanges(t *testing.T) {
	tokens := newTestLexer(t).Tokenize("查询 兰亭序")
	require.Len(t, tokens, 2)

	assert.Equal(t, Range{
		Start: Position{Line: 1, Character: 0, Offset: 0},
		End:   Position{Line: 1, Character: 2, Offset: 6},
	}, tokens[0].Range)
	assert.Equal(t, Range{
		Start: Position{Line: 1, Character: 3, Offset: 7},
		End:   Position{Line: 1, Character: 6, Offset: 16},
	}, tokens[1].Range)
}

func TestCustomVocabulary(t *testing.T) {
	v := Vocabulary{
		Keywords: map[TokenKind][]string{TokenFind: {"查"}},
		Eras:     map[string]string{"汉朝": "汉代"},
		Filler:   '之',
		Alphabet: []rune("蔡邕"),
	}
	tokens := NewLexer(v).Tokenize("查之汉朝蔡邕")

	assert.Equal(t, []TokenKind{TokenFind, TokenDynasty, TokenName}, Kinds(tokens))
	assert.Equal(t, "汉代", tokens[1].Value)
}

func TestIsFindKeyword(t *testing.T) {
	for _, kw := range FindKeywords {
		assert.True(t, IsFindKeyword(kw), kw)
	}
	assert.False(t, IsFindKeyword("你好"))
	assert.False(t, IsFindKeyword("查询王羲之"))
}

func TestFormatTokens(t *testing.T) {
	assert.Equal(t, "(no tokens)", FormatTokens(nil))

	tokens := newTestLexer(t).Tokenize("查询唐朝书法家")
	assert.Equal(t, "FIND(查询) DYNASTY(唐朝→唐代) ROLE(书法家)", FormatTokens(tokens))
}
