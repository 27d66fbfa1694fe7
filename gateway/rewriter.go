// Package gateway is the free-text front end: it rewrites arbitrary user
// phrasing into a canonical sentence and hands query-class rewrites to the
// engine. Replies that are not queries (greetings, guidance) pass through.
package gateway

import (
	"context"
	"strings"

	"github.com/teranos/shufa/grammar"
)

// Rewriter turns free text into a canonical sentence or a conversational reply
type Rewriter interface {
	Rewrite(ctx context.Context, text string) (string, error)
}

// Canonical is implemented by rewriters whose every output is meant as a
// canonical sentence. A session sends that output to the engine as is, with
// no FIND-prefix check.
type Canonical interface {
	Canonical() bool
}

// Passthrough returns input unchanged, for users typing canonical sentences
type Passthrough struct{}

// Rewrite implements Rewriter
func (Passthrough) Rewrite(_ context.Context, text string) (string, error) {
	return text, nil
}

// Canonical implements Canonical
func (Passthrough) Canonical() bool { return true }

func isCanonical(rw Rewriter) bool {
	c, ok := rw.(Canonical)
	return ok && c.Canonical()
}

// RewriterFunc adapts a function to the Rewriter interface
type RewriterFunc func(ctx context.Context, text string) (string, error)

// Rewrite implements Rewriter
func (f RewriterFunc) Rewrite(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// IsQuery reports whether a rewritten reply is a canonical query, i.e. starts
// with a FIND surface form
func IsQuery(reply string) bool {
	for _, kw := range grammar.FindKeywords {
		if strings.HasPrefix(reply, kw) {
			return true
		}
	}
	return false
}
