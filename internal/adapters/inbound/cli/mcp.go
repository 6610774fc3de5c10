package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/grammarops/grammarops/internal/adapters/inbound/mcp"
)

func newMCPCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the Grammar Ops MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globals) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Grammar Ops MCP server (stdio)",
		Long:  "Start the MCP server on stdio so AI coding assistants can audit files, look up rules and check names while they edit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewGrammarOpsMCPServer(projectPath,
				mcpadapter.WithConfigLoader(g.configLoader()),
				mcpadapter.WithLogger(g.log()),
			)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project path")

	return cmd
}
