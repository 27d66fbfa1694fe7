// Package engine is the query entry point: it tokenizes a canonical sentence,
// matches it against the recognized shapes and renders the answer.
//
// Resolve never fails. Unrecognized sentences, absent names and internal
// faults all come back as answer text; Evaluate exposes the category behind
// that text for callers that need to tell them apart.
package engine

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/shufa/grammar"
	"github.com/teranos/shufa/kb"
	"github.com/teranos/shufa/logger"
	"github.com/teranos/shufa/resolve"
)

// Fixed replies for sentences that produce no lookup
const (
	NotUnderstood  = "无法理解您的查询，请尝试重新表述"
	InternalPrefix = "解析过程中出现错误："
)

// Category classifies how a sentence was resolved
type Category int

const (
	Answered     Category = iota // shape matched, entity found
	NotFound                     // shape matched, entity absent
	Unrecognized                 // no shape matched
	Internal                     // unexpected fault, recovered
)

func (c Category) String() string {
	switch c {
	case Answered:
		return "answered"
	case NotFound:
		return "not-found"
	case Unrecognized:
		return "unrecognized"
	case Internal:
		return "internal"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Outcome is the full result of evaluating one sentence
type Outcome struct {
	Category Category
	Text     string
	Tokens   []grammar.Token
	Match    grammar.Match
	Skipped  []grammar.Skip
	Warnings []*grammar.ParseError // one lexical warning per skipped rune
	Err      error                 // *grammar.ParseError unless Answered
}

// Engine answers canonical sentences from one knowledge base.
// It is safe for concurrent use; calls are serialized on the lexer.
type Engine struct {
	mu       sync.Mutex
	kb       *kb.KnowledgeBase
	lexer    *grammar.Lexer
	resolver *resolve.Resolver
	log      *zap.SugaredLogger
}

// Option configures an Engine
type Option func(*options)

type options struct {
	log   *zap.SugaredLogger
	vocab *grammar.Vocabulary
}

// WithLogger sets the logger used for per-query debug records
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithVocabulary replaces the vocabulary derived from the knowledge base
func WithVocabulary(v grammar.Vocabulary) Option {
	return func(o *options) {
		o.vocab = &v
	}
}

// New creates an Engine over k
func New(k *kb.KnowledgeBase, opts ...Option) *Engine {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Named("engine")
	}
	var vocab grammar.Vocabulary
	if o.vocab != nil {
		vocab = *o.vocab
	} else {
		vocab = grammar.DefaultVocabulary(k)
	}

	return &Engine{
		kb:       k,
		lexer:    grammar.NewLexer(vocab),
		resolver: resolve.New(k),
		log:      o.log,
	}
}

// KnowledgeBase returns the knowledge base the engine reads
func (e *Engine) KnowledgeBase() *kb.KnowledgeBase {
	return e.kb
}

// Resolve answers a canonical sentence
func (e *Engine) Resolve(sentence string) string {
	return e.Evaluate(sentence).Text
}

// Evaluate answers a canonical sentence and reports how it was resolved
func (e *Engine) Evaluate(sentence string) (out Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err := grammar.NewParseError(grammar.ErrorKindInternal, fmt.Sprint(r)).
				WithContext("sentence", sentence)
			if cause, ok := r.(error); ok {
				err = err.WithUnderlying(cause)
			}
			out = Outcome{
				Category: Internal,
				Text:     InternalPrefix + fmt.Sprint(r),
				Tokens:   out.Tokens,
				Skipped:  out.Skipped,
				Warnings: out.Warnings,
				Err:      err,
			}
			e.log.Errorw("Query panicked",
				logger.FieldSentence, sentence,
				logger.FieldError, err.Message,
			)
		}
		e.log.Debugw("Query resolved",
			logger.FieldSentence, sentence,
			logger.FieldShape, out.Match.Shape.String(),
			logger.FieldCategory, out.Category.String(),
			logger.FieldTokens, len(out.Tokens),
			logger.FieldSkipped, len(out.Skipped),
			logger.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}()

	out.Tokens = e.lexer.Tokenize(sentence)
	out.Skipped = e.lexer.Skipped()
	for _, sk := range out.Skipped {
		out.Warnings = append(out.Warnings, sk.Warning())
	}

	m, err := grammar.MatchTokens(out.Tokens)
	if err != nil {
		out.Category = Unrecognized
		out.Text = NotUnderstood
		out.Err = err
		return out
	}
	out.Match = m

	res := e.resolver.Render(m)
	out.Text = res.Text
	out.Category = Answered
	if res.Kind == resolve.NotFound {
		out.Category = NotFound
		out.Err = notFoundError(m)
	}
	return out
}

func notFoundError(m grammar.Match) *grammar.ParseError {
	entity := m.Name
	if m.Shape == grammar.ShapeDynastyRoster {
		entity = m.Dynasty
	}
	return grammar.NewParseError(grammar.ErrorKindSemantic,
		fmt.Sprintf("no knowledge base entry for %q", entity)).
		WithSeverity(grammar.SeverityInfo).
		WithContext("shape", m.Shape.String())
}

// Tokens tokenizes a sentence without resolving it
func (e *Engine) Tokens(sentence string) ([]grammar.Token, []grammar.Skip) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tokens := e.lexer.Tokenize(sentence)
	return tokens, e.lexer.Skipped()
}
