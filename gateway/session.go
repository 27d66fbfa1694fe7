package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/shufa/engine"
	"github.com/teranos/shufa/logger"
)

// FailurePrefix starts the reply text of a failed rewrite
const FailurePrefix = "系统错误："

// ReplyKind classifies a session reply
type ReplyKind int

const (
	ReplyQuery    ReplyKind = iota // rewrite went to the engine
	ReplyGreeting                  // rewrite was conversational; passed through
	ReplyFailed                    // rewriter failed
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyQuery:
		return "query"
	case ReplyGreeting:
		return "greeting"
	case ReplyFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reply is the outcome of processing one line of user input
type Reply struct {
	Kind      ReplyKind
	Input     string
	Rewritten string         // rewriter output, empty on failure
	Text      string         // what to show the user
	Outcome   engine.Outcome // set for ReplyQuery
	Err       error          // set for ReplyFailed
	Duration  time.Duration
}

// Stats are per-session counters. They live in memory only.
type Stats struct {
	SessionID  string
	StartedAt  time.Time
	Total      int
	Queries    int
	Greetings  int
	Failed     int
	Answered   int // queries the engine answered from the knowledge base
	Unanswered int // queries resolved to not-found or not-understood
}

// SuccessRate is the share of inputs that produced a query reply, in percent
func (s Stats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Queries) / float64(s.Total) * 100
}

// Session pairs a rewriter with an engine and counts what passes through
type Session struct {
	rewriter  Rewriter
	canonical bool
	engine    *engine.Engine
	id        string
	logger    *zap.SugaredLogger

	mu    sync.Mutex
	stats Stats
}

// NewSession starts a session with a fresh id
func NewSession(rw Rewriter, e *engine.Engine) *Session {
	id := uuid.NewString()
	return &Session{
		rewriter:  rw,
		canonical: isCanonical(rw),
		engine:    e,
		id:        id,
		logger:    logger.Named("session").With(logger.FieldSessionID, id),
		stats: Stats{
			SessionID: id,
			StartedAt: time.Now(),
		},
	}
}

// Process rewrites one line of input and, for query rewrites, resolves it.
// Output of a Canonical rewriter is always resolved.
func (s *Session) Process(ctx context.Context, input string) Reply {
	start := time.Now()
	reply := Reply{Input: input}

	rewritten, err := s.rewriter.Rewrite(ctx, input)
	switch {
	case err != nil:
		reply.Kind = ReplyFailed
		reply.Err = err
		reply.Text = FailurePrefix + err.Error()
	case s.canonical || IsQuery(rewritten):
		reply.Kind = ReplyQuery
		reply.Rewritten = rewritten
		reply.Outcome = s.engine.Evaluate(rewritten)
		reply.Text = reply.Outcome.Text
	default:
		reply.Kind = ReplyGreeting
		reply.Rewritten = rewritten
		reply.Text = rewritten
	}
	reply.Duration = time.Since(start)

	s.record(reply)

	s.logger.Debugw("Processed input",
		logger.FieldSentence, input,
		"rewritten", reply.Rewritten,
		logger.FieldCategory, reply.Kind.String(),
		logger.FieldDurationMS, reply.Duration.Milliseconds(),
	)
	return reply
}

func (s *Session) record(r Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Total++
	switch r.Kind {
	case ReplyQuery:
		s.stats.Queries++
		if r.Outcome.Category == engine.Answered {
			s.stats.Answered++
		} else {
			s.stats.Unanswered++
		}
	case ReplyGreeting:
		s.stats.Greetings++
	case ReplyFailed:
		s.stats.Failed++
	}
}

// Stats returns a snapshot of the session counters
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}
