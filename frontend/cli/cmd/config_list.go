package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/furisto/ask/shared/config"
)

type configListOptions struct {
	Effective bool
}

func NewConfigListCmd() *cobra.Command {
	options := configListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List all current configuration values",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Example: `  # List the values in the config file
  ask config list

  # List the values in effect, including defaults and ASK_ environment overrides
  ask config list --effective`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configStore := getConfigStore(cmd.Context())
			out := cmd.OutOrStdout()

			if !options.Effective {
				renderConfigValue(out, configStore.All(), "")
				return nil
			}

			for _, key := range config.SupportedKeys() {
				if _, ok := config.LookupKey(key); !ok {
					continue
				}

				value, err := configStore.Resolve(key)
				if err != nil {
					fmt.Fprintf(out, "%s: <invalid: %v>\n", key, err)
					continue
				}

				line := fmt.Sprintf("%s: %v", key, value.Raw())
				if _, overridden := configStore.Override(key); overridden {
					line += fmt.Sprintf(" (from %s)", config.EnvName(key))
				}
				fmt.Fprintln(out, line)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&options.Effective, "effective", false, "Show the values in effect, including defaults and environment overrides")

	return cmd
}
