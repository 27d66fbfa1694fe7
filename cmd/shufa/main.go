package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shufa/cmd/shufa/commands"
	"github.com/teranos/shufa/config"
	"github.com/teranos/shufa/errors"
	"github.com/teranos/shufa/logger"
)

var rootCmd = &cobra.Command{
	Use:   "shufa",
	Short: "shufa - Calligraphy knowledge query engine",
	Long: `shufa - Answers questions about Chinese calligraphers, styles and works.

Canonical sentences such as 查询书法家王羲之 are tokenized over a closed
vocabulary, matched against seven sentence shapes and answered from an
immutable knowledge base. Free-form questions can be rewritten into canonical
sentences by an OpenAI-compatible chat model (gateway.provider = "chat").

Available commands:
  ask     - Answer one query
  repl    - Interactive consultation
  batch   - Run a file of queries and report
  kb      - Inspect, export and validate datasets
  shapes  - List accepted sentence shapes
  config  - Show and validate configuration
  mcp     - Serve the engine as MCP tools over stdio

Examples:
  shufa ask 查询唐代书法家
  shufa ask --explain 搜索苏轼的书法风格
  shufa repl --raw
  shufa kb export --format yaml -o kb.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLog := jsonLogging(cmd)
		if err := logger.Initialize(jsonLog, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if jsonLog {
			pterm.DisableColor()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

// jsonLogging reports --json-log, falling back to log.json from config.
// A broken config is reported later by the command that loads it.
func jsonLogging(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("json-log") {
		v, _ := cmd.Flags().GetBool("json-log")
		return v
	}

	var cfg *config.Config
	var err error
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	return err == nil && cfg.Log.JSON
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("config", "", "Config file (skips system, user and project config)")
	rootCmd.PersistentFlags().String("dataset", "", "Dataset file (.toml or .yaml); default is the built-in dataset")
	rootCmd.PersistentFlags().Bool("json-log", false, "Write logs to stderr as JSON lines")

	rootCmd.AddCommand(commands.AskCmd)
	rootCmd.AddCommand(commands.ReplCmd)
	rootCmd.AddCommand(commands.BatchCmd)
	rootCmd.AddCommand(commands.KbCmd)
	rootCmd.AddCommand(commands.ShapesCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.McpCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err.Error())
		for _, hint := range errors.GetAllHints(err) {
			pterm.Info.WithWriter(os.Stderr).Println(hint)
		}
		os.Exit(1)
	}
}
