package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shufa/config"
	"github.com/teranos/shufa/engine"
	"github.com/teranos/shufa/gateway"
	"github.com/teranos/shufa/grammar"
)

// Fixed REPL messages
const (
	replWelcome  = "欢迎使用书法咨询系统！输入问题开始查询，输入 :help 查看命令。"
	replFarewell = "感谢使用书法咨询系统！"
	replEmpty    = "查询不能为空，请重新输入。"
)

// ReplCmd runs the interactive loop
var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive calligraphy consultation",
	Long: `Start an interactive session.

Each line is rewritten by the configured gateway and, when it becomes a
canonical query, answered from the knowledge base. Type one of the configured
exit words (default: 退出, quit, exit, 再见) or press Ctrl+D to leave; session
statistics are printed on the way out.

Meta commands:
  :tokens <sentence>   Show how a sentence tokenizes and which shape it matches
  :shapes              List the accepted sentence shapes
  :stats               Show statistics for this session
  :help                Show this list`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

var replRaw bool

func init() {
	ReplCmd.Flags().BoolVar(&replRaw, "raw", false, "Skip the gateway and treat input as canonical sentences")
}

func runRepl(cmd *cobra.Command, args []string) error {
	st, err := setup(cmd)
	if err != nil {
		return err
	}

	rw, cleanup, err := newRewriter(st.cfg, st.kb, replRaw)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &repl{
		in:        cmd.InOrStdin(),
		out:       cmd.OutOrStdout(),
		session:   gateway.NewSession(rw, st.engine),
		engine:    st.engine,
		cfg:       st.cfg.REPL,
		verbosity: st.verbosity,
	}
	printStartupBanner(r.out, st.verbosity, st)
	return r.run(ctx)
}

// repl is the read-eval-print loop, decoupled from the terminal for tests
type repl struct {
	in        io.Reader
	out       io.Writer
	session   *gateway.Session
	engine    *engine.Engine
	cfg       config.REPLConfig
	verbosity int
}

// run reads lines until an exit word, EOF or ctx cancellation
func (r *repl) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprintln(r.out, replWelcome)
	for {
		fmt.Fprint(r.out, r.cfg.Prompt)

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			r.farewell()
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(r.out)
			r.farewell()
			select {
			case err := <-readErr:
				return err
			default:
				return nil
			}
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			fmt.Fprintln(r.out, replEmpty)
			continue
		case r.cfg.IsExitWord(line):
			r.farewell()
			return nil
		case strings.HasPrefix(line, ":"):
			r.meta(line[1:])
			continue
		}

		reply := r.session.Process(ctx, line)
		printReply(r.out, reply, r.verbosity, false)
		fmt.Fprintln(r.out, separator)
	}
}

func (r *repl) farewell() {
	printStats(r.out, r.session.Stats())
	fmt.Fprintln(r.out, replFarewell)
}

// meta handles a colon command; line excludes the colon
func (r *repl) meta(line string) {
	words, err := shellquote.Split(line)
	if err != nil {
		fmt.Fprintln(r.out, pterm.Red(fmt.Sprintf("无法解析命令: %v", err)))
		return
	}
	if len(words) == 0 {
		r.help()
		return
	}

	switch words[0] {
	case "tokens", "t":
		if len(words) < 2 {
			fmt.Fprintln(r.out, "用法: :tokens <查询语句>")
			return
		}
		printExplain(r.out, r.engine.Evaluate(strings.Join(words[1:], "")))
	case "shapes":
		for i, shape := range grammar.Shapes() {
			fmt.Fprintf(r.out, "%d. %-20s %s\n", i+1, shape.Pattern(), shape.Example())
		}
	case "stats":
		printStats(r.out, r.session.Stats())
	case "help", "h", "?":
		r.help()
	default:
		fmt.Fprintf(r.out, "未知命令 :%s，输入 :help 查看命令。\n", words[0])
	}
}

func (r *repl) help() {
	fmt.Fprintln(r.out, ":tokens <sentence>   show tokens and matched shape")
	fmt.Fprintln(r.out, ":shapes              list accepted sentence shapes")
	fmt.Fprintln(r.out, ":stats               show session statistics")
	fmt.Fprintln(r.out, ":help                show this list")
	fmt.Fprintf(r.out, "exit words: %s\n", strings.Join(r.cfg.ExitWords, ", "))
}
