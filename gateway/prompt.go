package gateway

import (
	"fmt"
	"strings"

	"github.com/teranos/shufa/grammar"
	"github.com/teranos/shufa/kb"
)

// SystemPrompt instructs the chat model to answer with one canonical sentence.
// It lists every shape with an example and the closed vocabulary, including
// the names the knowledge base holds.
func SystemPrompt(k *kb.KnowledgeBase) string {
	var b strings.Builder

	b.WriteString("你是书法专业咨询系统的查询改写助手。")
	b.WriteString("把用户的问题改写成下列固定句式之一，只输出改写后的一句话，不要解释。\n\n")

	b.WriteString("句式：\n")
	for i, s := range grammar.Shapes() {
		fmt.Fprintf(&b, "%d. %s，例如：%s\n", i+1, s.Pattern(), s.Example())
	}

	b.WriteString("\n词表：\n")
	fmt.Fprintf(&b, "FIND：%s\n", strings.Join(grammar.FindKeywords, " "))
	fmt.Fprintf(&b, "ROLE：%s\n", strings.Join(grammar.RoleKeywords, " "))
	fmt.Fprintf(&b, "WORK：%s\n", strings.Join(grammar.WorkKeywords, " "))
	fmt.Fprintf(&b, "STYLE：%s\n", strings.Join(grammar.StyleKeywords, " "))
	fmt.Fprintf(&b, "INFO：%s\n", strings.Join(grammar.InfoKeywords, " "))
	fmt.Fprintf(&b, "DYNASTY：%s\n", strings.Join(k.EraSurfaces(), " "))

	var names []string
	for _, c := range k.Calligraphers() {
		names = append(names, c.Name)
		names = append(names, c.Works...)
	}
	for _, s := range k.Styles() {
		names = append(names, s.Name)
	}
	fmt.Fprintf(&b, "NAME：%s\n", strings.Join(names, " "))

	b.WriteString("\n如果用户只是问候或者问题与书法无关，用一句中文礼貌回复并引导用户提出书法问题，")
	b.WriteString("回复不得以FIND词开头。")
	return b.String()
}
