package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchTokensShapes(t *testing.T) {
	tests := []struct {
		sentence string
		want     Match
	}{
		{"查询书法家王羲之", Match{Shape: ShapeCalligrapherDetail, Name: "王羲之"}},
		{"查询王羲之的作品", Match{Shape: ShapeWorks, Name: "王羲之"}},
		{"查询兰亭序", Match{Shape: ShapeDirect, Name: "兰亭序"}},
		{"查询风格行书", Match{Shape: ShapeStyleDetail, Name: "行书"}},
		{"搜索苏轼的书法风格", Match{Shape: ShapeCalligrapherStyle, Name: "苏轼"}},
		{"查询唐朝书法家", Match{Shape: ShapeDynastyRoster, Dynasty: "唐代"}},
		{"查询张旭信息", Match{Shape: ShapeCalligrapherInfo, Name: "张旭"}},
	}

	l := newTestLexer(t)
	for _, tt := range tests {
		t.Run(tt.want.Shape.String(), func(t *testing.T) {
			m, err := MatchTokens(l.Tokenize(tt.sentence))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestMatchTokensRequiresWholeSequence(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		pos      int
	}{
		{"empty", "", 0},
		{"find only", "查询", 1},
		{"no find", "王羲之作品", 0},
		{"trailing token", "查询王羲之作品信息", 3},
		{"two names", "查询王羲之书法家颜真卿", 2},
		{"wrong order", "查询书法家唐代", 2},
	}

	l := newTestLexer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := l.Tokenize(tt.sentence)
			_, err := MatchTokens(tokens)
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, ErrorKindSyntax, perr.Kind)
			assert.Equal(t, tt.pos, perr.Position)
			assert.Equal(t, len(tokens), perr.TokenCount)
		})
	}
}

func TestMatchTokensSuggestions(t *testing.T) {
	tokens := newTestLexer(t).Tokenize("查询王羲之书法家")
	_, err := MatchTokens(tokens)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)

	// FIND NAME is shared by four shapes; the ROLE at index 2 fits none
	assert.Equal(t, 2, perr.Position)
	require.NotNil(t, perr.Token)
	assert.Equal(t, TokenRole, perr.Token.Kind)
	assert.Len(t, perr.Suggestions, 4)
	assert.Contains(t, perr.Suggestions[0], "FIND NAME WORK")
}

func TestMatchTokensIncomplete(t *testing.T) {
	_, err := MatchTokens(newTestLexer(t).Tokenize("查询唐代"))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "sentence ends before any shape is complete", perr.Message)
	assert.Nil(t, perr.Token)
	assert.Equal(t, []string{"FIND DYNASTY ROLE, e.g. 查询唐代书法家"}, perr.Suggestions)
}

func TestShapes(t *testing.T) {
	shapes := Shapes()
	require.Len(t, shapes, 7)
	assert.Equal(t, ShapeCalligrapherDetail, shapes[0])
	assert.Equal(t, ShapeCalligrapherInfo, shapes[6])

	l := newTestLexer(t)
	for _, s := range shapes {
		m, err := MatchTokens(l.Tokenize(s.Example()))
		require.NoError(t, err, "example of %s", s)
		assert.Equal(t, s, m.Shape, "example of %s", s)
		assert.NotEmpty(t, s.Pattern())
	}

	assert.Equal(t, "none", ShapeNone.String())
	assert.Equal(t, "FIND DYNASTY ROLE", ShapeDynastyRoster.Pattern())
}
