package kb

// Calligrapher is a calligrapher record keyed by Name.
// Dynasty always holds a canonical era once the record is inside a KnowledgeBase.
type Calligrapher struct {
	Name        string   `toml:"name" yaml:"name"`
	Dynasty     string   `toml:"dynasty" yaml:"dynasty"`
	Style       string   `toml:"style" yaml:"style"`               // not guaranteed to be a key of the style table
	Works       []string `toml:"works" yaml:"works"`               // display order
	Description string   `toml:"description" yaml:"description"`
}

// Style is a style record keyed by Name.
type Style struct {
	Name        string   `toml:"name" yaml:"name"`
	Description string   `toml:"description" yaml:"description"`
	Masters     []string `toml:"masters" yaml:"masters"` // may cite names absent from the calligrapher table
	Features    []string `toml:"features" yaml:"features"`
}

// Era is a canonical era name plus the surface forms that fold onto it.
type Era struct {
	Name    string   `toml:"name" yaml:"name"`
	Aliases []string `toml:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Dataset is the serializable form of a knowledge base.
type Dataset struct {
	Version       string         `toml:"version" yaml:"version"`
	Eras          []Era          `toml:"eras" yaml:"eras"`
	Calligraphers []Calligrapher `toml:"calligraphers" yaml:"calligraphers"`
	Styles        []Style        `toml:"styles" yaml:"styles"`
}

func (c Calligrapher) clone() Calligrapher {
	c.Works = append([]string(nil), c.Works...)
	return c
}

func (s Style) clone() Style {
	s.Masters = append([]string(nil), s.Masters...)
	s.Features = append([]string(nil), s.Features...)
	return s
}

func (e Era) clone() Era {
	e.Aliases = append([]string(nil), e.Aliases...)
	return e
}
