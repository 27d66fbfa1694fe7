package grammar

import (
	"fmt"
	"strings"
)

// TokenKind classifies a token by its role in a canonical sentence
type TokenKind int

const (
	TokenFind    TokenKind = iota + 1 // intent marker: 查询, 了解, ...
	TokenRole                         // calligrapher role: 书法家, ...
	TokenWork                         // work category: 作品, 代表作, ...
	TokenStyle                        // style category: 风格, 书体, ...
	TokenDynasty                      // era; Value holds the canonical era
	TokenInfo                         // 信息
	TokenName                         // run of closed-alphabet runes
)

var kindNames = map[TokenKind]string{
	TokenFind:    "FIND",
	TokenRole:    "ROLE",
	TokenWork:    "WORK",
	TokenStyle:   "STYLE",
	TokenDynasty: "DYNASTY",
	TokenInfo:    "INFO",
	TokenName:    "NAME",
}

func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexeme of a canonical sentence
type Token struct {
	Kind  TokenKind `json:"kind"`
	Value string    `json:"value"` // canonical value (era folded for DYNASTY)
	Raw   string    `json:"raw"`   // surface text as typed
	Range Range     `json:"range"`
}

func (t Token) String() string {
	if t.Raw != t.Value {
		return fmt.Sprintf("%s(%s→%s)", t.Kind, t.Raw, t.Value)
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
}

// Skip records a rune dropped during scanning
type Skip struct {
	Rune     rune     `json:"rune"`
	Size     int      `json:"size"` // bytes in the source; 1 for an invalid byte
	Position Position `json:"position"`
}

// Warning reports the skipped rune as a lexical warning
func (s Skip) Warning() *ParseError {
	end := s.Position
	end.Character++
	end.Offset += s.Size
	return NewParseError(ErrorKindLexical, fmt.Sprintf("unrecognized character %q skipped", s.Rune)).
		WithSeverity(SeverityWarning).
		WithRange(RangeFromPositions(s.Position, end))
}

// Kinds returns the kind sequence of a token stream
func Kinds(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	return kinds
}

// FormatTokens renders a token stream on one line for diagnostics
func FormatTokens(tokens []Token) string {
	if len(tokens) == 0 {
		return "(no tokens)"
	}
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
