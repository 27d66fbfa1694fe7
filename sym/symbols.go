// Package sym defines the glyphs that mark each kind of answer.
// These glyphs are stable across the CLI, REPL, and MCP surfaces; callers
// display answers verbatim, so changing one changes every rendered answer.
package sym

// Answer glyphs, one per resolution intent.
const (
	Calligrapher = "📖" // calligrapher detail record
	Works        = "🎨" // works list of a calligrapher
	Work         = "📜" // a work and the calligrapher it belongs to
	Style        = "🖋️" // style detail record
	PersonStyle  = "🎯" // the style a calligrapher practises
	Dynasty      = "🏛️" // roster of an era
	NotFound     = "❌" // semantic absence
)

// Separator joins list items (works, masters, features, roster entries).
const Separator = "、"

// entry binds a glyph to a short label and description.
type entry struct {
	glyph       string
	label       string
	description string
}

// registry is the canonical glyph ordering used by help output.
var registry = []entry{
	{Calligrapher, "calligrapher", "Calligrapher detail: dynasty, style, works, description"},
	{Works, "works", "Works list of a calligrapher"},
	{Work, "work", "Which calligrapher a work belongs to"},
	{Style, "style", "Style detail: description, masters, features"},
	{PersonStyle, "person-style", "The style a calligrapher practises"},
	{Dynasty, "dynasty", "Calligraphers of an era"},
	{NotFound, "not-found", "Referenced name or era is absent from the dataset"},
}

// Lookup tables built from the registry at init time.
var (
	glyphToLabel map[string]string
	labelToGlyph map[string]string
)

func init() {
	glyphToLabel = make(map[string]string, len(registry))
	labelToGlyph = make(map[string]string, len(registry))
	for _, e := range registry {
		glyphToLabel[e.glyph] = e.label
		labelToGlyph[e.label] = e.glyph
	}
}

// Label returns the label for a glyph, or "" when the glyph is unknown.
func Label(glyph string) string {
	return glyphToLabel[glyph]
}

// FromLabel returns the glyph for a label, or "" when the label is unknown.
func FromLabel(label string) string {
	return labelToGlyph[label]
}

// Glyphs returns every answer glyph in registry order.
func Glyphs() []string {
	out := make([]string, len(registry))
	for i, e := range registry {
		out[i] = e.glyph
	}
	return out
}

// Description returns the description for a glyph.
func Description(glyph string) string {
	for _, e := range registry {
		if e.glyph == glyph {
			return e.description
		}
	}
	return ""
}
