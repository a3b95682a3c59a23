package cmd

import (
	"github.com/spf13/cobra"

	"github.com/furisto/ask/frontend/cli/pkg/fail"
	"github.com/furisto/ask/shared/config"
)

func NewConfigUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "unset <key>",
		Short:             "Unset a configuration value",
		Long:              `The "unset" command allows you to unset a configuration value`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			configStore := getConfigStore(cmd.Context())

			if err := config.ValidateKey(key); err != nil {
				return fail.HandleError(cmd, err)
			}

			if err := configStore.Delete(key); err != nil {
				return fail.HandleError(cmd, err)
			}

			return fail.HandleError(cmd, configStore.Flush())
		},
	}

	return cmd
}
