package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/shufa/gateway"
)

// AskCmd answers a single query
var AskCmd = &cobra.Command{
	Use:   "ask <sentence>...",
	Short: "Answer one calligraphy query",
	Long: `Answer one calligraphy query and exit.

Arguments are joined without a separator, so a sentence may be split across
shell words. With gateway.provider = "chat" the input is first rewritten into
a canonical sentence; --raw sends it to the engine unchanged.

Examples:
  shufa ask 查询书法家王羲之
  shufa ask 查询 唐代 书法家
  shufa ask --explain 搜索苏轼的书法风格
  shufa ask 王羲之写过什么`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var (
	askRaw     bool
	askExplain bool
)

func init() {
	AskCmd.Flags().BoolVar(&askRaw, "raw", false, "Skip the gateway and treat input as a canonical sentence")
	AskCmd.Flags().BoolVar(&askExplain, "explain", false, "Show tokens and the matched shape")
}

func runAsk(cmd *cobra.Command, args []string) error {
	st, err := setup(cmd)
	if err != nil {
		return err
	}

	rw, cleanup, err := newRewriter(st.cfg, st.kb, askRaw)
	if err != nil {
		return err
	}
	defer cleanup()

	session := gateway.NewSession(rw, st.engine)
	reply := session.Process(cmd.Context(), strings.Join(args, ""))
	printReply(cmd.OutOrStdout(), reply, st.verbosity, askExplain)

	if reply.Kind == gateway.ReplyFailed {
		return reply.Err
	}
	return nil
}
