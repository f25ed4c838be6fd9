package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/edicat/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the defaults edicat uses when no flag overrides them.

Settings are stored in config.toml inside $EDICAT_CONFIG_DIR (default ~/.edicat).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Long: `Change a setting and save it.

Available keys:
  output.line_numbers  Number output segments (true/false)
  input.peek_size      Bytes read ahead for format detection (at least 246)
  input.encoding       Text encoding of inputs, e.g. utf-8, latin1, windows-1252
  input.strict         Treat read errors as failures (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current Settings")
	fmt.Fprintln(out, "================")
	if configPath != "" {
		fmt.Fprintf(out, "File: %s\n", configPath)
	}
	fmt.Fprintln(out)

	for _, key := range settingsService.Keys() {
		fmt.Fprintf(out, "  %-20s %s\n", key, settingValue(settings, key))
	}
	fmt.Fprintln(out)

	if err := settingsService.Validate(); err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
		fmt.Fprintln(out, "Run 'edicat settings set' or 'edicat settings reset' to fix it.")
	} else {
		fmt.Fprintln(out, "Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, settingValue(settings, key))
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Settings restored to defaults.")
	return nil
}

// settingValue renders the current value of key.
func settingValue(settings *domain.AppSettings, key string) string {
	switch key {
	case domain.SettingLineNumbers:
		return strconv.FormatBool(settings.Output.LineNumbers)
	case domain.SettingPeekSize:
		return strconv.Itoa(settings.Input.PeekSize)
	case domain.SettingEncoding:
		return settings.Input.Encoding
	case domain.SettingStrict:
		return strconv.FormatBool(settings.Input.Strict)
	default:
		return "(unknown)"
	}
}
