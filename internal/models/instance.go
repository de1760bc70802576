package models

import "time"

// InstanceInfo describes the running wallboard process.
// This corresponds to ~/.wallboard/instance.yaml.
type InstanceInfo struct {
	Version   int       `yaml:"version"`
	Host      string    `yaml:"host"`
	Port      int       `yaml:"port"`
	PID       int       `yaml:"pid"`
	Tray      bool      `yaml:"tray"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates instance info stamped with the current time.
func NewInstanceInfo(host string, port, pid int, tray bool) *InstanceInfo {
	return &InstanceInfo{
		Version:   1,
		Host:      host,
		Port:      port,
		PID:       pid,
		Tray:      tray,
		StartedAt: time.Now().UTC(),
	}
}
