package guidecli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errConfigExists = errors.New("config file already exists (use --force to overwrite)")

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}
	cmd.AddCommand(newConfigInitCmd(root), newConfigShowCmd(root))
	return cmd
}

func newConfigInitCmd(root *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DiscoverPath(root.cfgFile)
			if _, err := os.Stat(path); err == nil && !force {
				return errConfigExists
			}

			if err := SaveSettings(defaults(), path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := LoadSettingsWithEnv(DiscoverPath(root.cfgFile))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			shown := *s
			shown.Brevo.APIKey = maskKey(s.Brevo.APIKey)

			data, err := yaml.Marshal(&shown)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func maskKey(key string) string {
	switch {
	case key == "":
		return ""
	case len(key) <= 12:
		return "****"
	default:
		return key[:8] + "..." + key[len(key)-4:]
	}
}
