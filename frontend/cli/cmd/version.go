package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/furisto/ask/frontend/cli/cmd.Version=...".
var Version = "0.1.0"

func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the version number of Ask",
		GroupID: "system",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Ask version %s\n", Version)
		},
	}

	return cmd
}
