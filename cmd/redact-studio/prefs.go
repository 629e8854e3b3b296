// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/redact-studio/internal/prefs"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change saved preferences",
	Long: `Preferences hold the theme used for HTML reports, the default detection
language, default entity types, and the output directory. They are stored as
YAML (default ~/.config/redact-studio/prefs.yaml, override with the "prefs"
config key).`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("prefs")
		p, err := prefs.Load(path)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshaling preferences: %w", err)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "# %s\n%s", path, data)
		if p.Theme == prefs.ThemeSystem {
			fmt.Fprintf(w, "# system theme resolves to %s\n", p.Theme.Resolve(nil))
		}
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference (theme, language, entities, output_dir)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("prefs")
		p, err := prefs.Load(path)
		if err != nil {
			return err
		}
		if err := p.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := prefs.Save(path, p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}
