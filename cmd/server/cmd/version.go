package cmd

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"reddit-search-mcp/internal/app"
	"reddit-search-mcp/internal/tools"
)

var versionCMD = &cobra.Command{
	Use:   "version",
	Short: "Print the server and MCP protocol versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tools.ServerName, app.Version)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP protocol %s\n", mcp.LATEST_PROTOCOL_VERSION)
	},
}

func init() {
	rootCMD.AddCommand(versionCMD)
}
