package main

import (
	"github.com/spf13/cobra"

	webfitmcp "github.com/claude/webfit/internal/mcp"
)

func newMCPCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the session to an MCP client over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				s := webfitmcp.New(a.sess, a.cfg.Share.BaseURL, Version, a.log)
				a.log.Info("mcp server starting", "version", Version)
				return webfitmcp.Serve(s)
			})
		},
	}
}
