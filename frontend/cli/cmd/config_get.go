package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/furisto/ask/frontend/cli/pkg/fail"
	"github.com/furisto/ask/shared/config"
)

func NewConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Example: `  # Get the surface questions are shown on
  ask config get surface

  # Get every logging setting
  ask config get log`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			configStore := getConfigStore(cmd.Context())

			err := config.ValidateKey(key)
			if err != nil {
				return fail.HandleError(cmd, err)
			}

			value, found := configStore.Get(key)
			if !found {
				return nil
			}

			if config.IsLeafValue(value.Raw()) {
				fmt.Fprintln(cmd.OutOrStdout(), value.Raw())
			} else {
				renderConfigValue(cmd.OutOrStdout(), value.Raw(), key)
			}

			return nil
		},
	}

	return cmd
}

func renderConfigValue(out io.Writer, value any, prefix string) {
	if m, ok := value.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := m[k]
			fullKey := k
			if prefix != "" {
				fullKey = prefix + "." + k
			}
			if config.IsLeafValue(v) {
				fmt.Fprintf(out, "%s: %v\n", fullKey, v)
			} else {
				renderConfigValue(out, v, fullKey)
			}
		}
	}
}
