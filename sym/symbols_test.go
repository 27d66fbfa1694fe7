package sym

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestLabelAndFromLabelAreBidirectional(t *testing.T) {
	for _, glyph := range Glyphs() {
		label := Label(glyph)
		if label == "" {
			t.Errorf("glyph %q has no label", glyph)
			continue
		}
		if got := FromLabel(label); got != glyph {
			t.Errorf("FromLabel(%q) = %q, want %q", label, got, glyph)
		}
	}
}

func TestGlyphsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, glyph := range Glyphs() {
		if seen[glyph] {
			t.Errorf("duplicate glyph %q", glyph)
		}
		seen[glyph] = true
	}
}

func TestEveryGlyphHasDescription(t *testing.T) {
	for _, glyph := range Glyphs() {
		if strings.TrimSpace(Description(glyph)) == "" {
			t.Errorf("glyph %q has no description", glyph)
		}
	}
}

func TestSeparatorIsSingleRune(t *testing.T) {
	if n := utf8.RuneCountInString(Separator); n != 1 {
		t.Errorf("Separator has %d runes, want 1", n)
	}
}

func TestUnknownLookups(t *testing.T) {
	if Label("?") != "" {
		t.Error("Label of unknown glyph should be empty")
	}
	if FromLabel("nope") != "" {
		t.Error("FromLabel of unknown label should be empty")
	}
	if Description("?") != "" {
		t.Error("Description of unknown glyph should be empty")
	}
}
