package cmd

import (
	"github.com/spf13/cobra"

	"github.com/furisto/ask/shared/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		GroupID: "system",
	}

	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigGetCmd())
	cmd.AddCommand(NewConfigUnsetCmd())
	cmd.AddCommand(NewConfigDescribeCmd())
	cmd.AddCommand(NewConfigListCmd())

	return cmd
}

func completeConfigKey(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.SupportedKeys(), cobra.ShellCompDirectiveNoFileComp
	}

	return []string{}, cobra.ShellCompDirectiveDefault
}
