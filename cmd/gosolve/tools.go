package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gosolve"
)

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the JSON schema of the tool protocol served by mcp-server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), gosolve.ToolSpec())
			return err
		},
	}
}
