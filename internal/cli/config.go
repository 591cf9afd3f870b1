package cli

import (
	"fmt"
	"strconv"

	"github.com/popcli/pop/internal/config"
	"github.com/popcli/pop/internal/templates"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.pop/config.yaml.

Keys:
  new.template   default template: base, cpt or fpt
  new.symbol     token symbol for new parachains
  new.decimals   token decimals for new parachains
  new.endowment  initial endowment of development accounts
  new.path       base directory for new projects
  new.source     where templates come from: embedded or remote
  log.level      debug, info, warn or error`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value, err := normalizeConfigValue(key, args[1])
		if err != nil {
			return err
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

// normalizeConfigValue rejects values "new parachain" would refuse later and
// stores templates under their short alias.
func normalizeConfigValue(key, value string) (string, error) {
	switch key {
	case config.KeyTemplate:
		var tmpl templates.Template
		if err := tmpl.UnmarshalText([]byte(value)); err != nil {
			return "", err
		}
		alias, err := tmpl.MarshalText()
		if err != nil {
			return "", err
		}
		return string(alias), nil
	case config.KeyDecimals:
		if _, err := strconv.ParseUint(value, 10, 8); err != nil {
			return "", fmt.Errorf("invalid decimals %q: must be an integer between 0 and 255", value)
		}
	case config.KeySource:
		if _, err := materializerFor(value, nil); err != nil {
			return "", err
		}
	}
	return value, nil
}
