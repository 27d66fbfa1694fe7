package grammar

import (
	"unicode/utf8"

	"github.com/teranos/shufa/kb"
)

// Filler is the possessive particle ignored between tokens
const Filler = '的'

// Keyword surface forms per token kind. DYNASTY forms come from the knowledge
// base's era table instead.
var (
	FindKeywords  = []string{"查询", "查找", "搜索", "找", "请问", "我想知道", "了解", "显示", "展示"}
	RoleKeywords  = []string{"书法家", "书家", "书法大师", "书法名家"}
	WorkKeywords  = []string{"作品", "书法作品", "著名作品", "墨宝", "代表作"}
	StyleKeywords = []string{"风格", "书体", "字体", "书法风格", "书风"}
	InfoKeywords  = []string{"信息"}
)

// Vocabulary is the closed lexicon a Lexer recognizes.
type Vocabulary struct {
	Keywords map[TokenKind][]string
	Eras     map[string]string // era surface form -> canonical era
	Filler   rune
	Alphabet []rune
}

// DefaultVocabulary builds the vocabulary for a knowledge base: the fixed
// keyword sets plus the knowledge base's era table and name alphabet.
func DefaultVocabulary(k *kb.KnowledgeBase) Vocabulary {
	eras := make(map[string]string)
	for _, surface := range k.EraSurfaces() {
		canon, _ := k.CanonicalEra(surface)
		eras[surface] = canon
	}

	return Vocabulary{
		Keywords: map[TokenKind][]string{
			TokenFind:  FindKeywords,
			TokenRole:  RoleKeywords,
			TokenWork:  WorkKeywords,
			TokenStyle: StyleKeywords,
			TokenInfo:  InfoKeywords,
		},
		Eras:     eras,
		Filler:   Filler,
		Alphabet: k.Alphabet(),
	}
}

// keyword is a compiled keyword entry
type keyword struct {
	kind  TokenKind
	value string
}

// lexicon is the lookup form of a Vocabulary
type lexicon struct {
	keywords map[string]keyword
	maxLen   int // longest keyword, in runes
	alphabet map[rune]bool
	filler   rune
}

func compile(v Vocabulary) lexicon {
	lx := lexicon{
		keywords: make(map[string]keyword),
		alphabet: make(map[rune]bool, len(v.Alphabet)),
		filler:   v.Filler,
	}

	add := func(surface string, kw keyword) {
		if surface == "" {
			return
		}
		if _, exists := lx.keywords[surface]; exists {
			// First registration wins; keyword kinds are registered before eras
			return
		}
		lx.keywords[surface] = kw
		if n := utf8.RuneCountInString(surface); n > lx.maxLen {
			lx.maxLen = n
		}
	}

	for _, kind := range []TokenKind{TokenFind, TokenRole, TokenWork, TokenStyle, TokenInfo} {
		for _, surface := range v.Keywords[kind] {
			add(surface, keyword{kind: kind, value: surface})
		}
	}
	for surface, canon := range v.Eras {
		add(surface, keyword{kind: TokenDynasty, value: canon})
	}

	for _, r := range v.Alphabet {
		lx.alphabet[r] = true
	}
	return lx
}

// IsFindKeyword reports whether s is exactly a FIND surface form
func IsFindKeyword(s string) bool {
	for _, kw := range FindKeywords {
		if s == kw {
			return true
		}
	}
	return false
}
