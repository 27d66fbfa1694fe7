// Package kb holds the calligraphy knowledge base: calligraphers, styles and
// the era synonym table. A KnowledgeBase is built once and never mutated, so a
// single value can be shared by any number of readers.
package kb

import (
	"strings"

	"github.com/teranos/shufa/errors"
)

// KnowledgeBase is an immutable view over a validated Dataset.
type KnowledgeBase struct {
	version string

	calligraphers   []Calligrapher
	calligrapherIdx map[string]int

	styles   []Style
	styleIdx map[string]int

	eras      []Era
	canonical map[string]string // era surface form -> canonical era
	surfaces  []string          // era surface forms in dataset order
}

// New validates ds and builds a KnowledgeBase from a private copy of it.
//
// Names must be non-empty and unique per table, and an era surface form may
// map to only one canonical era. Dynasty values are folded onto their
// canonical era; a dynasty outside the era table is kept as given.
// Cross-table references (Calligrapher.Style, Style.Masters) are not checked.
func New(ds Dataset) (*KnowledgeBase, error) {
	k := &KnowledgeBase{
		version:         strings.TrimSpace(ds.Version),
		calligrapherIdx: make(map[string]int, len(ds.Calligraphers)),
		styleIdx:        make(map[string]int, len(ds.Styles)),
		canonical:       make(map[string]string),
	}
	if k.version == "" {
		k.version = DatasetVersion
	}

	for _, era := range ds.Eras {
		if era.Name == "" {
			return nil, errors.NewInvalidDatasetError("era with empty name")
		}
		for _, surface := range append([]string{era.Name}, era.Aliases...) {
			if surface == "" {
				return nil, errors.NewInvalidDatasetError("era %q has an empty alias", era.Name)
			}
			if existing, ok := k.canonical[surface]; ok {
				if existing == era.Name {
					continue
				}
				return nil, errors.NewInvalidDatasetError("era surface %q maps to both %q and %q", surface, existing, era.Name)
			}
			k.canonical[surface] = era.Name
			k.surfaces = append(k.surfaces, surface)
		}
		k.eras = append(k.eras, era.clone())
	}

	for _, c := range ds.Calligraphers {
		if c.Name == "" {
			return nil, errors.NewInvalidDatasetError("calligrapher with empty name")
		}
		if _, dup := k.calligrapherIdx[c.Name]; dup {
			return nil, errors.NewInvalidDatasetError("duplicate calligrapher %q", c.Name)
		}
		c = c.clone()
		if canon, ok := k.canonical[c.Dynasty]; ok {
			c.Dynasty = canon
		}
		k.calligrapherIdx[c.Name] = len(k.calligraphers)
		k.calligraphers = append(k.calligraphers, c)
	}

	for _, s := range ds.Styles {
		if s.Name == "" {
			return nil, errors.NewInvalidDatasetError("style with empty name")
		}
		if _, dup := k.styleIdx[s.Name]; dup {
			return nil, errors.NewInvalidDatasetError("duplicate style %q", s.Name)
		}
		k.styleIdx[s.Name] = len(k.styles)
		k.styles = append(k.styles, s.clone())
	}

	return k, nil
}

// MustNew is New for datasets known to be valid; it panics otherwise.
func MustNew(ds Dataset) *KnowledgeBase {
	k, err := New(ds)
	if err != nil {
		panic(err)
	}
	return k
}

// Version returns the dataset schema version.
func (k *KnowledgeBase) Version() string {
	return k.version
}

// Calligrapher looks up a calligrapher by exact name.
func (k *KnowledgeBase) Calligrapher(name string) (Calligrapher, bool) {
	i, ok := k.calligrapherIdx[name]
	if !ok {
		return Calligrapher{}, false
	}
	return k.calligraphers[i].clone(), true
}

// Style looks up a style by exact name.
func (k *KnowledgeBase) Style(name string) (Style, bool) {
	i, ok := k.styleIdx[name]
	if !ok {
		return Style{}, false
	}
	return k.styles[i].clone(), true
}

// Calligraphers returns every calligrapher in dataset order.
func (k *KnowledgeBase) Calligraphers() []Calligrapher {
	out := make([]Calligrapher, len(k.calligraphers))
	for i, c := range k.calligraphers {
		out[i] = c.clone()
	}
	return out
}

// Styles returns every style in dataset order.
func (k *KnowledgeBase) Styles() []Style {
	out := make([]Style, len(k.styles))
	for i, s := range k.styles {
		out[i] = s.clone()
	}
	return out
}

// FindWork scans every calligrapher's works for an exact title match and
// returns the first owner in dataset order.
func (k *KnowledgeBase) FindWork(title string) (Calligrapher, bool) {
	for _, c := range k.calligraphers {
		for _, w := range c.Works {
			if w == title {
				return c.clone(), true
			}
		}
	}
	return Calligrapher{}, false
}

// ByDynasty returns the calligraphers whose canonical dynasty equals era,
// in dataset order. The caller is expected to pass a canonical era.
func (k *KnowledgeBase) ByDynasty(era string) []Calligrapher {
	var out []Calligrapher
	for _, c := range k.calligraphers {
		if c.Dynasty == era {
			out = append(out, c.clone())
		}
	}
	return out
}

// CanonicalEra folds an era surface form onto its canonical name.
func (k *KnowledgeBase) CanonicalEra(surface string) (string, bool) {
	canon, ok := k.canonical[surface]
	return canon, ok
}

// EraSurfaces returns every era surface form (canonical names and aliases).
func (k *KnowledgeBase) EraSurfaces() []string {
	return append([]string(nil), k.surfaces...)
}

// Eras returns the era table in dataset order.
func (k *KnowledgeBase) Eras() []Era {
	out := make([]Era, len(k.eras))
	for i, e := range k.eras {
		out[i] = e.clone()
	}
	return out
}

// Alphabet returns the closed set of runes that may appear in a name: every
// rune of every calligrapher name, work title and style name, in first-seen order.
func (k *KnowledgeBase) Alphabet() []rune {
	seen := make(map[rune]bool)
	var out []rune
	add := func(s string) {
		for _, r := range s {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	for _, c := range k.calligraphers {
		add(c.Name)
		for _, w := range c.Works {
			add(w)
		}
	}
	for _, s := range k.styles {
		add(s.Name)
	}
	return out
}

// Dataset returns a copy of the data backing k, suitable for export.
func (k *KnowledgeBase) Dataset() Dataset {
	return Dataset{
		Version:       k.version,
		Eras:          k.Eras(),
		Calligraphers: k.Calligraphers(),
		Styles:        k.Styles(),
	}
}
