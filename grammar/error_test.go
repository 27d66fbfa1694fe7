package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseError_TerminalVsPlain verifies that errors are formatted correctly for each context
func TestParseError_TerminalVsPlain(t *testing.T) {
	_, err := MatchTokens(newTestLexer(t).Tokenize("查询王羲之书法家"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)

	terminal := perr.FormatError(ErrorContextTerminal)
	plain := perr.FormatError(ErrorContextPlain)

	assert.Contains(t, terminal, "\x1b[", "terminal context should carry ANSI codes")
	assert.NotContains(t, plain, "\x1b[", "plain context should not carry ANSI codes")

	assert.Contains(t, plain, "at token 2/3")
	assert.Contains(t, plain, "Expected:")
	assert.Equal(t, plain, perr.Error())
}

func TestParseErrorBuilder(t *testing.T) {
	base := errors.New("boom")
	tok := Token{Kind: TokenName, Value: "王羲之", Raw: "王羲之"}

	perr := NewParseError(ErrorKindInternal, "unexpected").
		WithSeverity(SeverityWarning).
		WithPosition(1, 2).
		WithToken(&tok).
		WithRange(Range{End: Position{Line: 1, Character: 3, Offset: 9}}).
		WithSuggestion("try again").
		WithContext("sentence", "查询王羲之").
		WithUnderlying(base)

	assert.Equal(t, ErrorKindInternal, perr.Kind)
	assert.Equal(t, SeverityWarning, perr.Severity)
	assert.Equal(t, 9, perr.Range.End.Offset)
	assert.Equal(t, "查询王羲之", perr.Context["sentence"])
	assert.True(t, errors.Is(perr, base))
	assert.False(t, perr.Timestamp.IsZero())

	terminal := perr.FormatError(ErrorContextTerminal)
	assert.Contains(t, terminal, "NAME(王羲之)")
	assert.Contains(t, terminal, "try again")
}

func TestParseErrorWithoutPosition(t *testing.T) {
	perr := NewParseError(ErrorKindSyntax, "sentence contains no recognizable tokens")
	assert.Equal(t, "sentence contains no recognizable tokens", perr.Error())
	assert.False(t, strings.Contains(perr.Error(), "at token"))
}
