package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zoro11031/datasave/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings with their effective values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New(configPath)
		if err := cfg.Load(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, key := range config.AllKeys {
			value := cfg.GetOrDefault(key, "")
			if cfg.Exists(key) {
				fmt.Fprintf(out, "%s=%s\n", key, value)
			} else {
				fmt.Fprintf(out, "%s=%s (default)\n", key, value)
			}
		}
		for _, key := range cfg.Keys() {
			if _, err := knownKey(key); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "ignoring unknown setting %s in %s\n", key, cfg.FilePath())
			}
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := knownKey(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.New(configPath).GetOrDefault(key, ""))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := knownKey(args[0])
		if err != nil {
			return err
		}
		if err := config.New(configPath).SetValidated(key, args[1]); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func knownKey(key string) (string, error) {
	key = strings.ToUpper(key)
	for _, k := range config.AllKeys {
		if k == key {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown setting %s (valid: %s)", key, strings.Join(config.AllKeys, ", "))
}
