package grammar

import "unicode/utf8"

// Position is a line/column position in a sentence.
// Uses LSP conventions: 1-based line numbers, 0-based character offsets.
type Position struct {
	Line      int `json:"line"`      // 1-based line number
	Character int `json:"character"` // 0-based rune offset within line
	Offset    int `json:"offset"`    // 0-based byte offset in entire source
}

// Range is a source span from start to end position
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// PositionTracker maintains line/column/offset state during a scan.
// It is the Lexer's only mutable state and must be reset before each scan.
type PositionTracker struct {
	line      int // 1-based
	character int // 0-based within line
	offset    int // 0-based bytes
}

// NewPositionTracker creates a tracker at the start of a source
func NewPositionTracker() *PositionTracker {
	pt := &PositionTracker{}
	pt.Reset()
	return pt
}

// Reset moves the tracker back to line 1, character 0
func (pt *PositionTracker) Reset() {
	pt.line = 1
	pt.character = 0
	pt.offset = 0
}

// Advance consumes one rune that took size bytes in the source, counting newlines
func (pt *PositionTracker) Advance(r rune, size int) {
	if r == '\n' {
		pt.line++
		pt.character = 0
	} else {
		pt.character++
	}
	pt.offset += size
}

// AdvanceString consumes every rune of s. An invalid byte counts as one
// character of one byte.
func (pt *PositionTracker) AdvanceString(s string) {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		pt.Advance(r, size)
		s = s[size:]
	}
}

// Mark returns the current position snapshot
func (pt *PositionTracker) Mark() Position {
	return Position{
		Line:      pt.line,
		Character: pt.character,
		Offset:    pt.offset,
	}
}

// Line returns the current 1-based line number
func (pt *PositionTracker) Line() int {
	return pt.line
}

// RangeFromPositions creates a range from two positions
func RangeFromPositions(start, end Position) Range {
	return Range{Start: start, End: end}
}
