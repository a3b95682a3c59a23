package cmd

import (
	"github.com/spf13/cobra"

	"github.com/furisto/ask/frontend/cli/pkg/fail"
	"github.com/furisto/ask/shared/config"
)

func NewConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  `The "config set" command allows you to set a configuration value`,
		Example: `  # Always show questions in the browser
  ask config set surface web

  # Cancel unanswered questions after ten minutes
  ask config set timeout 10m`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeConfigKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			configStore := getConfigStore(cmd.Context())

			value, err := config.ParseValue(key, raw)
			if err != nil {
				return fail.HandleError(cmd, err)
			}

			if err := configStore.Set(key, value); err != nil {
				return fail.HandleError(cmd, err)
			}

			return fail.HandleError(cmd, configStore.Flush())
		},
	}

	return cmd
}
