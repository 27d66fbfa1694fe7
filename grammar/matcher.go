package grammar

import (
	"fmt"
	"strings"
)

// Shape identifies one of the recognized sentence shapes
type Shape int

const (
	ShapeNone               Shape = iota
	ShapeCalligrapherDetail       // FIND ROLE NAME
	ShapeWorks                    // FIND NAME WORK
	ShapeDirect                   // FIND NAME
	ShapeStyleDetail              // FIND STYLE NAME
	ShapeCalligrapherStyle        // FIND NAME STYLE
	ShapeDynastyRoster            // FIND DYNASTY ROLE
	ShapeCalligrapherInfo         // FIND NAME INFO
)

// shapeDef binds a shape to its token-kind sequence
type shapeDef struct {
	shape   Shape
	kinds   []TokenKind
	label   string
	example string
}

// shapes lists every recognized sentence in match order
var shapes = []shapeDef{
	{ShapeCalligrapherDetail, []TokenKind{TokenFind, TokenRole, TokenName}, "calligrapher-detail", "查询书法家王羲之"},
	{ShapeWorks, []TokenKind{TokenFind, TokenName, TokenWork}, "works", "查询王羲之的作品"},
	{ShapeDirect, []TokenKind{TokenFind, TokenName}, "direct", "查询兰亭序"},
	{ShapeStyleDetail, []TokenKind{TokenFind, TokenStyle, TokenName}, "style-detail", "查询风格行书"},
	{ShapeCalligrapherStyle, []TokenKind{TokenFind, TokenName, TokenStyle}, "calligrapher-style", "搜索苏轼的书法风格"},
	{ShapeDynastyRoster, []TokenKind{TokenFind, TokenDynasty, TokenRole}, "dynasty-roster", "查询唐代书法家"},
	{ShapeCalligrapherInfo, []TokenKind{TokenFind, TokenName, TokenInfo}, "calligrapher-info", "查询张旭信息"},
}

func (s Shape) String() string {
	for _, def := range shapes {
		if def.shape == s {
			return def.label
		}
	}
	return "none"
}

// Pattern returns the token-kind sequence of a shape, e.g. "FIND ROLE NAME"
func (s Shape) Pattern() string {
	for _, def := range shapes {
		if def.shape == s {
			parts := make([]string, len(def.kinds))
			for i, k := range def.kinds {
				parts[i] = k.String()
			}
			return strings.Join(parts, " ")
		}
	}
	return ""
}

// Example returns a canonical sentence instantiating the shape
func (s Shape) Example() string {
	for _, def := range shapes {
		if def.shape == s {
			return def.example
		}
	}
	return ""
}

// Shapes returns every recognized shape in match order
func Shapes() []Shape {
	out := make([]Shape, len(shapes))
	for i, def := range shapes {
		out[i] = def.shape
	}
	return out
}

// Match is a successfully matched sentence.
// Name is set for every shape except ShapeDynastyRoster, which sets Dynasty.
type Match struct {
	Shape   Shape
	Name    string
	Dynasty string
}

func (m Match) String() string {
	if m.Shape == ShapeDynastyRoster {
		return fmt.Sprintf("%s(%s)", m.Shape, m.Dynasty)
	}
	return fmt.Sprintf("%s(%s)", m.Shape, m.Name)
}

// MatchTokens decides which shape the complete token sequence instantiates.
//
// Every shape is compared against the whole sequence; a shape matches only
// when its kinds equal the sequence exactly, so trailing tokens defeat a
// shorter prefix (FIND NAME WORK is never read as FIND NAME). On failure the
// returned ParseError points at the first token no shape could accept.
func MatchTokens(tokens []Token) (Match, error) {
	kinds := Kinds(tokens)

	best := 0
	for _, def := range shapes {
		n := commonPrefix(def.kinds, kinds)
		if n == len(def.kinds) && n == len(kinds) {
			return extract(def.shape, tokens), nil
		}
		if n > best {
			best = n
		}
	}

	return Match{}, unrecognized(tokens, best)
}

func commonPrefix(a, b []TokenKind) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func extract(shape Shape, tokens []Token) Match {
	m := Match{Shape: shape}
	for _, t := range tokens {
		switch t.Kind {
		case TokenName:
			m.Name = t.Value
		case TokenDynasty:
			m.Dynasty = t.Value
		}
	}
	return m
}

// unrecognized builds the syntax error for a sentence matching no shape.
// pos is the length of the longest shape prefix the sentence satisfied.
func unrecognized(tokens []Token, pos int) *ParseError {
	msg := "sentence matches no recognized shape"
	switch {
	case len(tokens) == 0:
		msg = "sentence contains no recognizable tokens"
	case pos == len(tokens):
		msg = "sentence ends before any shape is complete"
	}

	err := NewParseError(ErrorKindSyntax, msg).
		WithPosition(pos, len(tokens)).
		WithContext("kinds", Kinds(tokens))
	if pos < len(tokens) {
		tok := tokens[pos]
		err = err.WithToken(&tok).WithRange(tok.Range)
	}

	kinds := Kinds(tokens)
	for _, def := range shapes {
		if commonPrefix(def.kinds, kinds) == pos {
			err = err.WithSuggestion(fmt.Sprintf("%s, e.g. %s", def.shape.Pattern(), def.example))
		}
	}
	return err
}
