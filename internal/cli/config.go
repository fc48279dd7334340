package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the settings subcut runs with, as YAML: the config file merged over
the built-in defaults. The output can be saved as a starting config file.

Examples:
  subcut config
  subcut config > ~/.config/subcut/config.yaml
  subcut config --config ./project.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out, err := cfg.Marshal()
	if err != nil {
		return err
	}

	logger.Debugw("Printing config", "encoding", cfg.Encoding, "strict", cfg.StrictValue())
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
	return err
}
