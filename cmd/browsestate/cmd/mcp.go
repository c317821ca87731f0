package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/wesm/browsestate/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server over stdio",
	Long: `Start an MCP (Model Context Protocol) server over stdio.

Tools: list_views, parse_query, apply_actions, build_action_url.

Add to an MCP client config:
  {
    "mcpServers": {
      "browsestate": {
        "command": "browsestate",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return mcpserver.Serve(cmd.Context(), svc, Version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
