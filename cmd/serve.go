package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/otzyv-scrap/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	initSources()

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting Otzyv MCP server on stdio...")

	return mcpserver.Serve()
}
