package grammar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// ErrorContext indicates the environment where grammar errors will be displayed
type ErrorContext string

const (
	// ErrorContextTerminal indicates errors will be displayed in terminal with ANSI colors
	ErrorContextTerminal ErrorContext = "terminal"
	// ErrorContextPlain indicates errors will be displayed without ANSI codes (MCP, logs)
	ErrorContextPlain ErrorContext = "plain"
)

// ErrorSeverity indicates the severity level of a grammar error
type ErrorSeverity string

const (
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
	SeverityInfo    ErrorSeverity = "info"
)

// ErrorKind categorizes failures along the query pipeline
type ErrorKind string

const (
	ErrorKindLexical  ErrorKind = "lexical"  // rune matched no token rule (recovered by skipping)
	ErrorKindSyntax   ErrorKind = "syntax"   // token sequence matched no shape
	ErrorKindSemantic ErrorKind = "semantic" // shape matched, referenced name absent
	ErrorKindInternal ErrorKind = "internal" // unexpected failure
)

// ParseError is a structured grammar error with metadata
type ParseError struct {
	Err         error                  // Underlying error
	Kind        ErrorKind              // Error category
	Severity    ErrorSeverity          // Error severity
	Message     string                 // Human-readable message
	Position    int                    // Token index where matching stopped
	TokenCount  int                    // Total tokens in the sentence
	Token       *Token                 // Token at Position (optional)
	Range       *Range                 // Source range (optional)
	Suggestions []string               // Shapes that would have accepted the prefix
	Context     map[string]interface{} // Additional debug context
	Timestamp   time.Time
}

// Error implements error interface
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// FormatError generates context-appropriate error message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextTerminal {
		return e.formatTerminalError()
	}
	return e.formatPlainError()
}

func (e *ParseError) formatPlainError() string {
	msg := e.Message
	if e.Position >= 0 && e.TokenCount > 0 {
		msg += fmt.Sprintf(" (at token %d/%d)", e.Position, e.TokenCount)
	} else if e.Range != nil {
		msg += fmt.Sprintf(" (at %d:%d)", e.Range.Start.Line, e.Range.Start.Character)
	}
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Expected: %s", strings.Join(e.Suggestions, "; "))
	}
	return msg
}

func (e *ParseError) formatTerminalError() string {
	var baseMsg string
	switch e.Severity {
	case SeverityError:
		baseMsg = pterm.Red(e.Message)
	case SeverityWarning:
		baseMsg = pterm.Yellow(e.Message)
	case SeverityInfo:
		baseMsg = pterm.Blue(e.Message)
	default:
		baseMsg = e.Message
	}

	context := fmt.Sprintf("\n\n%s", pterm.LightCyan("Context:"))
	if e.Position >= 0 && e.TokenCount > 0 {
		context += fmt.Sprintf("\n  %s %d/%d", pterm.Yellow("Token:"), e.Position, e.TokenCount)
	}
	if e.Token != nil {
		context += fmt.Sprintf("\n  %s %s", pterm.Yellow("Found:"), e.Token)
	}
	if e.Range != nil {
		context += fmt.Sprintf("\n  %s %d:%d", pterm.Yellow("At:"), e.Range.Start.Line, e.Range.Start.Character)
	}

	if len(e.Suggestions) > 0 {
		context += fmt.Sprintf("\n\n%s", pterm.Green("Expected one of:"))
		for _, suggestion := range e.Suggestions {
			context += fmt.Sprintf("\n  • %s", suggestion)
		}
	}

	return fmt.Sprintf("%s%s", baseMsg, context)
}

// Unwrap for errors.Is/As compatibility
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError with the given kind and message
func NewParseError(kind ErrorKind, message string) *ParseError {
	return &ParseError{
		Kind:      kind,
		Severity:  SeverityError,
		Message:   message,
		Position:  -1,
		Context:   make(map[string]interface{}),
		Timestamp: time.Now(),
	}
}

// WithPosition sets the token index where the error occurred
func (e *ParseError) WithPosition(pos int, total int) *ParseError {
	e.Position = pos
	e.TokenCount = total
	return e
}

// WithToken sets the token that caused the error
func (e *ParseError) WithToken(token *Token) *ParseError {
	e.Token = token
	return e
}

// WithRange sets the source range
func (e *ParseError) WithRange(r Range) *ParseError {
	e.Range = &r
	return e
}

// WithSeverity sets the error severity
func (e *ParseError) WithSeverity(sev ErrorSeverity) *ParseError {
	e.Severity = sev
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithContext adds debug context metadata
func (e *ParseError) WithContext(key string, value interface{}) *ParseError {
	e.Context[key] = value
	return e
}

// WithUnderlying sets the underlying error
func (e *ParseError) WithUnderlying(err error) *ParseError {
	e.Err = err
	return e
}
