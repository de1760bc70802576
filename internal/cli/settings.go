package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/wallboard/internal/config"
	"github.com/watchfire-io/wallboard/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show global settings",
	Long: `Show the settings from ~/.wallboard/settings.yaml, including
WALLBOARD_* environment overrides. A running wallboard picks up saved changes.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a global setting",
	Long: `Change a global setting.

Keys:
  tray_agent             agent controlled from the tray menu
  log_level              debug, info, warn or error
  notifications.enabled  true or false
  notifications.icon     image path shown with notifications
  export.default_file    default export file name
  control.port           control API port (0 = dynamic)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	trayAgent := settings.TrayAgent
	if trayAgent == "" {
		trayAgent = "(first agent)"
	}
	port := strconv.Itoa(settings.Control.Port)
	if settings.Control.Port == 0 {
		port = "0 (dynamic)"
	}

	rows := [][2]string{
		{"tray_agent", trayAgent},
		{"log_level", settings.LogLevel},
		{"notifications.enabled", strconv.FormatBool(settings.Notifications.Enabled)},
		{"notifications.icon", settings.Notifications.Icon},
		{"export.default_file", settings.Export.DefaultFile},
		{"control.port", port},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s %s\n", styleLabel.Render(fmt.Sprintf("%-22s", row[0])), styleValue.Render(row[1]))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := applySetting(settings, key, value); err != nil {
		return err
	}

	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", styleSuccess.Render("✓"), key, value)
	return nil
}

func applySetting(settings *models.Settings, key, value string) error {
	switch strings.ToLower(key) {
	case "tray_agent":
		settings.TrayAgent = value
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "error":
			settings.LogLevel = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid log level: %s (expected debug, info, warn or error)", value)
		}
	case "notifications.enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		settings.Notifications.Enabled = enabled
	case "notifications.icon":
		settings.Notifications.Icon = value
	case "export.default_file":
		settings.Export.DefaultFile = value
	case "control.port":
		port, err := strconv.Atoi(value)
		if err != nil || port < 0 || port > 65535 {
			return fmt.Errorf("invalid port: %s", value)
		}
		settings.Control.Port = port
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}
	return nil
}
