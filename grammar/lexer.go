package grammar

import (
	"unicode"
	"unicode/utf8"
)

// Lexer splits canonical sentences into tokens over a closed vocabulary.
//
// A Lexer carries per-scan state (its PositionTracker and skip list). Tokenize
// resets that state first; a single Lexer must not be used by two goroutines
// at once.
type Lexer struct {
	lx      lexicon
	tracker *PositionTracker
	skipped []Skip
}

// NewLexer compiles a vocabulary into a Lexer
func NewLexer(v Vocabulary) *Lexer {
	return &Lexer{
		lx:      compile(v),
		tracker: NewPositionTracker(),
	}
}

// Reset clears all scanning state
func (l *Lexer) Reset() {
	l.tracker.Reset()
	l.skipped = nil
}

// Line returns the line the last scan ended on
func (l *Lexer) Line() int {
	return l.tracker.Line()
}

// Skipped returns the runes dropped by the last scan
func (l *Lexer) Skipped() []Skip {
	return append([]Skip(nil), l.skipped...)
}

// Tokenize scans source into tokens.
//
// At each position: whitespace and the filler are dropped; otherwise the
// longest keyword starting there wins; otherwise the longest run of alphabet
// runes, stopping where a keyword begins, becomes a NAME; otherwise the rune
// is recorded as skipped. Tokenize never fails.
func (l *Lexer) Tokenize(source string) []Token {
	l.Reset()

	src, sizes := decode(source)
	tokens := []Token{}

	i := 0
	for i < len(src) {
		r := src[i]

		if unicode.IsSpace(r) || r == l.lx.filler {
			l.tracker.Advance(r, sizes[i])
			i++
			continue
		}

		start := l.tracker.Mark()

		if kw, n := l.keywordAt(src, i); n > 0 {
			raw := string(src[i : i+n])
			l.advance(src, sizes, i, n)
			i += n
			tokens = append(tokens, Token{
				Kind:  kw.kind,
				Value: kw.value,
				Raw:   raw,
				Range: RangeFromPositions(start, l.tracker.Mark()),
			})
			continue
		}

		if n := l.nameAt(src, i); n > 0 {
			name := string(src[i : i+n])
			l.advance(src, sizes, i, n)
			i += n
			tokens = append(tokens, Token{
				Kind:  TokenName,
				Value: name,
				Raw:   name,
				Range: RangeFromPositions(start, l.tracker.Mark()),
			})
			continue
		}

		// Unrecognized: drop one rune and keep scanning
		l.skipped = append(l.skipped, Skip{Rune: r, Size: sizes[i], Position: start})
		l.tracker.Advance(r, sizes[i])
		i++
	}

	return tokens
}

func (l *Lexer) advance(src []rune, sizes []int, i, n int) {
	for k := i; k < i+n; k++ {
		l.tracker.Advance(src[k], sizes[k])
	}
}

// decode splits source into runes and the byte width each took. Invalid
// bytes decode to utf8.RuneError with width 1.
func decode(source string) ([]rune, []int) {
	src := make([]rune, 0, len(source))
	sizes := make([]int, 0, len(source))
	for len(source) > 0 {
		r, size := utf8.DecodeRuneInString(source)
		src = append(src, r)
		sizes = append(sizes, size)
		source = source[size:]
	}
	return src, sizes
}

// keywordAt returns the longest keyword starting at src[i] and its rune length,
// or a zero length when none does.
func (l *Lexer) keywordAt(src []rune, i int) (keyword, int) {
	n := l.lx.maxLen
	if rest := len(src) - i; rest < n {
		n = rest
	}
	for ; n > 0; n-- {
		if kw, ok := l.lx.keywords[string(src[i:i+n])]; ok {
			return kw, n
		}
	}
	return keyword{}, 0
}

// nameAt returns the length of the NAME run starting at src[i].
// The caller has already established that no keyword starts at i.
func (l *Lexer) nameAt(src []rune, i int) int {
	j := i
	for j < len(src) && l.lx.alphabet[src[j]] {
		if j > i {
			if _, n := l.keywordAt(src, j); n > 0 {
				break
			}
		}
		j++
	}
	return j - i
}
