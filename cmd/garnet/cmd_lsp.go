package main

import (
	"github.com/spf13/cobra"

	"github.com/pattyshack/garnet/lsp"
)

func newLSPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, opts.config)
			return server.RunStdio()
		},
	}
}
