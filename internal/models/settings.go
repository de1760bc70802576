package models

// NotificationsConfig controls desktop notification delivery.
type NotificationsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Icon    string `yaml:"icon" mapstructure:"icon"` // path to an image, empty for the default
}

// ExportConfig holds defaults for the export prompt.
type ExportConfig struct {
	DefaultFile string `yaml:"default_file" mapstructure:"default_file"`
}

// ControlConfig configures the local control API.
type ControlConfig struct {
	Port int `yaml:"port" mapstructure:"port"` // 0 = dynamic
}

// Settings represents global application settings.
// This corresponds to ~/.wallboard/settings.yaml.
type Settings struct {
	Version       int                 `yaml:"version" mapstructure:"version"`
	TrayAgent     string              `yaml:"tray_agent" mapstructure:"tray_agent"` // empty = first roster agent
	LogLevel      string              `yaml:"log_level" mapstructure:"log_level"`   // "debug" | "info" | "warn" | "error"
	Notifications NotificationsConfig `yaml:"notifications" mapstructure:"notifications"`
	Export        ExportConfig        `yaml:"export" mapstructure:"export"`
	Control       ControlConfig       `yaml:"control" mapstructure:"control"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:  1,
		LogLevel: "info",
		Notifications: NotificationsConfig{
			Enabled: true,
		},
		Export: ExportConfig{
			DefaultFile: "agents.csv",
		},
	}
}
