package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/shufa/engine"
	"github.com/teranos/shufa/gateway"
	"github.com/teranos/shufa/grammar"
	"github.com/teranos/shufa/logger"
)

var (
	separator = strings.Repeat("-", 50)
	banner    = strings.Repeat("=", 60)
)

// printReply writes a session reply, plus diagnostics when verbosity or
// explain asks for them
func printReply(w io.Writer, reply gateway.Reply, verbosity int, explain bool) {
	if reply.Kind == gateway.ReplyQuery && reply.Rewritten != reply.Input &&
		logger.ShouldOutput(verbosity, logger.OutputStartup) {
		fmt.Fprintf(w, "%s %s\n", pterm.Gray("→"), pterm.Gray(reply.Rewritten))
	}

	switch reply.Kind {
	case gateway.ReplyFailed:
		fmt.Fprintln(w, pterm.Red(reply.Text))
	default:
		fmt.Fprintln(w, reply.Text)
	}

	if reply.Kind == gateway.ReplyQuery && (explain || logger.ShouldOutput(verbosity, logger.OutputTokens)) {
		printExplain(w, reply.Outcome)
	}
	if logger.ShouldOutput(verbosity, logger.OutputTiming) {
		fmt.Fprintf(w, "%s %dms\n", pterm.Gray("耗时"), reply.Duration.Milliseconds())
	}
}

// printExplain writes the token stream and shape behind an outcome
func printExplain(w io.Writer, out engine.Outcome) {
	fmt.Fprintf(w, "%s %s\n", pterm.Cyan("tokens:"), grammar.FormatTokens(out.Tokens))
	if len(out.Skipped) > 0 {
		runes := make([]string, len(out.Skipped))
		for i, sk := range out.Skipped {
			runes[i] = string(sk.Rune)
		}
		fmt.Fprintf(w, "%s %s\n", pterm.Cyan("skipped:"), strings.Join(runes, " "))
		for _, warn := range out.Warnings {
			fmt.Fprintf(w, "  %s\n", warn.FormatError(grammar.ErrorContextPlain))
		}
	}

	pe, _ := out.Err.(*grammar.ParseError)
	switch out.Category {
	case engine.Unrecognized, engine.Internal:
		fmt.Fprintf(w, "%s none\n", pterm.Cyan("shape:"))
	default:
		fmt.Fprintf(w, "%s %s [%s] %s\n", pterm.Cyan("shape:"), out.Match.Shape, out.Match.Shape.Pattern(), out.Category)
	}
	if pe != nil {
		fmt.Fprintln(w, pe.FormatError(errorContext()))
	}
}

// errorContext picks plain output when logs are JSON, coloured otherwise
func errorContext() grammar.ErrorContext {
	if logger.JSONOutput || !pterm.PrintColor {
		return grammar.ErrorContextPlain
	}
	return grammar.ErrorContextTerminal
}

// printStats writes the session summary shown when a REPL ends
func printStats(w io.Writer, st gateway.Stats) {
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, pterm.Bold.Sprint("会话统计"))
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "总查询数: %d\n", st.Total)
	fmt.Fprintf(w, "成功查询: %d (知识库命中 %d)\n", st.Queries, st.Answered)
	fmt.Fprintf(w, "问候回复: %d\n", st.Greetings)
	fmt.Fprintf(w, "失败查询: %d\n", st.Failed)
	if st.Total > 0 {
		fmt.Fprintf(w, "成功率: %.1f%%\n", st.SuccessRate())
	}
}
