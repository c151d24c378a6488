package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/speech-mastery/mcpserver"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analyzer as MCP tools over stdio",
		Long: `Serve analyze_speech and list_dictionaries as Model Context Protocol tools
on stdin/stdout. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := newEngine(a.conf)
			if err != nil {
				return err
			}
			return mcpserver.NewServer(a.conf.App.Name, a.conf.App.Version, engine).Run(cmd.Context())
		},
	}
}
