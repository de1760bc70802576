package config

import (
	"os"
	"syscall"

	"github.com/watchfire-io/wallboard/internal/models"
)

// LoadInstanceInfo loads the running instance info from ~/.wallboard/instance.yaml.
// Returns nil if the file doesn't exist.
func LoadInstanceInfo() (*models.InstanceInfo, error) {
	path, err := GlobalInstanceFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.InstanceInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveInstanceInfo saves the running instance info to ~/.wallboard/instance.yaml.
func SaveInstanceInfo(info *models.InstanceInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveInstanceInfo removes the instance.yaml file.
func RemoveInstanceInfo() error {
	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsInstanceRunning checks whether another wallboard process is alive.
// A stale instance.yaml left behind by a crashed process is removed.
func IsInstanceRunning() (bool, *models.InstanceInfo, error) {
	info, err := LoadInstanceInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return false, info, nil
	}

	// Signal 0 only probes for existence
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = RemoveInstanceInfo()
		return false, info, nil
	}

	return true, info, nil
}
