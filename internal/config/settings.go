package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/watchfire-io/wallboard/internal/models"
)

// EnvPrefix is the prefix for environment overrides, e.g. WALLBOARD_TRAY_AGENT.
const EnvPrefix = "WALLBOARD"

// LoadSettings loads the global settings from ~/.wallboard/settings.yaml.
// Missing files yield defaults; WALLBOARD_* environment variables take precedence.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom loads settings from an explicit file path.
func LoadSettingsFrom(path string) (*models.Settings, error) {
	defaults := models.NewSettings()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("version", defaults.Version)
	v.SetDefault("tray_agent", defaults.TrayAgent)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	v.SetDefault("notifications.icon", defaults.Notifications.Icon)
	v.SetDefault("export.default_file", defaults.Export.DefaultFile)
	v.SetDefault("control.port", defaults.Control.Port)

	if FileExists(path) {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read settings %s: %w", filepath.Base(path), err)
			}
		}
	}

	settings := &models.Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

// SaveSettings saves the global settings to ~/.wallboard/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}
