package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/teranos/shufa/logger"
	"github.com/teranos/shufa/version"
)

// printStartupBanner prints the REPL header and, with -v, a summary of what
// was loaded
func printStartupBanner(w io.Writer, verbosity int, st *stack) {
	versionInfo := version.Get()

	fmt.Fprintln(w)
	fmt.Fprintln(w, pterm.Cyan(banner))
	fmt.Fprintln(w, pterm.Bold.Sprint("  书法专业领域咨询系统  shufa"))
	fmt.Fprintln(w, pterm.Cyan(banner))

	if logger.ShouldOutput(verbosity, logger.OutputStartup) {
		fmt.Fprintf(w, "%s %s (commit %s)\n", pterm.Green("│ Version:  "), versionInfo.Version, versionInfo.Short())
		fmt.Fprintf(w, "%s %s, version %s, %d calligraphers, %d styles\n", pterm.Green("│ Dataset:  "),
			st.source, st.kb.Version(), len(st.kb.Calligraphers()), len(st.kb.Styles()))
		fmt.Fprintf(w, "%s %s\n", pterm.Green("│ Gateway:  "), st.cfg.Gateway.Provider)
		fmt.Fprintf(w, "%s %s\n", pterm.Green("│ Verbosity:"), logger.LevelName(verbosity))
	}

	fmt.Fprintf(w, "%s\n\n", pterm.Blue("💡 :help lists commands, Ctrl+D ends the session"))
}
