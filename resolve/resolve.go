// Package resolve turns a matched sentence into the answer text.
//
// Every template is fixed: field order, indentation and separators never
// vary, so two lookups of the same record render byte-identical output.
package resolve

import (
	"fmt"
	"strings"

	"github.com/teranos/shufa/grammar"
	"github.com/teranos/shufa/kb"
	"github.com/teranos/shufa/sym"
)

// Kind distinguishes answers from semantic absence
type Kind int

const (
	Found Kind = iota
	NotFound
)

func (k Kind) String() string {
	if k == NotFound {
		return "not-found"
	}
	return "found"
}

// Result is a rendered answer
type Result struct {
	Kind Kind
	Text string
}

// Resolver renders matches against a knowledge base
type Resolver struct {
	kb *kb.KnowledgeBase
}

// New creates a Resolver reading from k
func New(k *kb.KnowledgeBase) *Resolver {
	return &Resolver{kb: k}
}

// Render looks up the entities a match names and fills the shape's template.
// It reads the knowledge base only; absence is reported as NotFound.
func (r *Resolver) Render(m grammar.Match) Result {
	switch m.Shape {
	case grammar.ShapeCalligrapherDetail, grammar.ShapeCalligrapherInfo:
		return r.calligrapher(m.Name)
	case grammar.ShapeWorks:
		return r.works(m.Name)
	case grammar.ShapeDirect:
		return r.direct(m.Name)
	case grammar.ShapeStyleDetail:
		return r.style(m.Name)
	case grammar.ShapeCalligrapherStyle:
		return r.calligrapherStyle(m.Name)
	case grammar.ShapeDynastyRoster:
		return r.dynasty(m.Dynasty)
	default:
		panic(fmt.Sprintf("resolve: unhandled shape %d", m.Shape))
	}
}

func (r *Resolver) calligrapher(name string) Result {
	c, ok := r.kb.Calligrapher(name)
	if !ok {
		return missing(fmt.Sprintf("未找到书法家'%s'的信息", name))
	}
	return found(calligrapherDetail(c))
}

func (r *Resolver) works(name string) Result {
	c, ok := r.kb.Calligrapher(name)
	if !ok {
		return missing(fmt.Sprintf("未找到%s的作品记录", name))
	}
	return found(fmt.Sprintf("%s %s的代表作品（%s）：\n   %s",
		sym.Works, c.Name, c.Style, join(c.Works)))
}

// direct disambiguates a bare name: work titles first, then calligraphers
func (r *Resolver) direct(name string) Result {
	if c, ok := r.kb.FindWork(name); ok {
		return found(fmt.Sprintf("%s %s是%s的代表作\n   书体：%s\n   朝代：%s\n   书法家简介：%s",
			sym.Work, name, c.Name, c.Style, c.Dynasty, c.Description))
	}
	if c, ok := r.kb.Calligrapher(name); ok {
		return found(calligrapherDetail(c))
	}
	return missing(fmt.Sprintf("未找到'%s'的相关信息", name))
}

func (r *Resolver) style(name string) Result {
	s, ok := r.kb.Style(name)
	if !ok {
		return missing(fmt.Sprintf("未找到%s书体的详细说明", name))
	}
	return found(fmt.Sprintf("%s %s书体信息：\n   特点：%s\n   代表书家：%s\n   艺术特征：%s",
		sym.Style, s.Name, s.Description, join(s.Masters), join(s.Features)))
}

func (r *Resolver) calligrapherStyle(name string) Result {
	c, ok := r.kb.Calligrapher(name)
	if !ok {
		return missing(fmt.Sprintf("未找到%s的书法风格信息", name))
	}

	desc := "暂无详细描述"
	if s, ok := r.kb.Style(c.Style); ok {
		desc = s.Description
	}
	return found(fmt.Sprintf("%s %s的书法风格：\n   擅长%s书体\n   风格特点：%s",
		sym.PersonStyle, c.Name, c.Style, desc))
}

func (r *Resolver) dynasty(era string) Result {
	roster := r.kb.ByDynasty(era)
	if len(roster) == 0 {
		return missing(fmt.Sprintf("未找到%s的书法家记录", era))
	}

	entries := make([]string, len(roster))
	for i, c := range roster {
		entries[i] = fmt.Sprintf("%s（%s）", c.Name, c.Style)
	}
	return found(fmt.Sprintf("%s %s著名书法家：\n   %s", sym.Dynasty, era, join(entries)))
}

func calligrapherDetail(c kb.Calligrapher) string {
	return fmt.Sprintf("%s %s书法家信息：\n   朝代：%s\n   擅长书体：%s\n   代表作品：%s\n   简介：%s",
		sym.Calligrapher, c.Name, c.Dynasty, c.Style, join(c.Works), c.Description)
}

func join(items []string) string {
	return strings.Join(items, sym.Separator)
}

func found(text string) Result {
	return Result{Kind: Found, Text: text}
}

func missing(text string) Result {
	return Result{Kind: NotFound, Text: sym.NotFound + " " + text}
}

// Glyph returns the glyph that opens a found answer for shape
func Glyph(shape grammar.Shape) string {
	switch shape {
	case grammar.ShapeCalligrapherDetail, grammar.ShapeCalligrapherInfo:
		return sym.Calligrapher
	case grammar.ShapeWorks:
		return sym.Works
	case grammar.ShapeDirect:
		return sym.Work
	case grammar.ShapeStyleDetail:
		return sym.Style
	case grammar.ShapeCalligrapherStyle:
		return sym.PersonStyle
	case grammar.ShapeDynastyRoster:
		return sym.Dynasty
	default:
		return ""
	}
}
