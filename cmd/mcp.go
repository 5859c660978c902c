package cmd

import (
	"github.com/jmallard/shelfwatch/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd starts the MCP server on stdio. The tool handlers suppress the
// usual console headers themselves, so protocol output stays clean.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Shelfwatch MCP server",
	Long: `Launch an MCP server that lets AI agents run demand forecasts, inventory
reports, reorder checks and trend lookups as standard tools.

The server speaks the protocol over stdio, so it should be launched by an
MCP client rather than invoked directly.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
