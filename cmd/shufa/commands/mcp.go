package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/shufa/mcpserver"
)

// McpCmd serves the engine to MCP clients over stdio
var McpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the query engine as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing the tools
resolve, tokenize and shapes. The gateway is not used: clients send canonical
sentences. Logs go to stderr and never mix with the protocol stream.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := setup(cmd)
		if err != nil {
			return err
		}
		st.log.Infow("Serving MCP over stdio")
		return mcpserver.New(st.engine).ServeStdio()
	},
}
