package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/furisto/ask/shared/config"
)

func NewConfigDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "describe <key>",
		Short:             "Describe a configuration value",
		Long:              `The "describe" command allows you to describe a configuration value`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			description, ok := config.LookupKey(key)
			if !ok {
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			defaultValue := description.Default
			if defaultValue == "" {
				defaultValue = "(none)"
			}

			valueType := string(description.Type)
			if len(description.Values) > 0 {
				valueType = strings.Join(description.Values, " | ")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", key)
			fmt.Fprintf(out, "  %s\n\n", description.Description)
			fmt.Fprintf(out, "  Type                         Default\n")
			fmt.Fprintf(out, "  %-28s %s\n\n", valueType, defaultValue)
			fmt.Fprintf(out, "  Environment: %s\n", config.EnvName(key))
			fmt.Fprintf(out, "  Example: %s\n", description.Example)

			return nil
		},
	}

	return cmd
}
