// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global wallboard directory.
	GlobalDirName = ".wallboard"

	// HomeEnv overrides the global directory location.
	HomeEnv = "WALLBOARD_HOME"
)

// File names
const (
	InstanceFileName = "instance.yaml"
	RosterFileName   = "roster.yaml"
	SettingsFileName = "settings.yaml"
	LogFileName      = "wallboard.log"
)

// GlobalDir returns the path to the global wallboard directory (~/.wallboard/).
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalInstanceFile returns the path to the instance.yaml file.
func GlobalInstanceFile() (string, error) {
	return globalFile(InstanceFileName)
}

// GlobalRosterFile returns the path to the roster.yaml file.
func GlobalRosterFile() (string, error) {
	return globalFile(RosterFileName)
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	return globalFile(SettingsFileName)
}

// GlobalLogFile returns the path to the log file used while the TUI owns the terminal.
func GlobalLogFile() (string, error) {
	return globalFile(LogFileName)
}

func globalFile(name string) (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureGlobalDir creates the global wallboard directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
