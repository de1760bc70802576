package models

import "fmt"

// AgentStatus is the availability state of a call-center agent.
type AgentStatus string

const (
	AgentStatusAvailable AgentStatus = "Available"
	AgentStatusBusy      AgentStatus = "Busy"
	AgentStatusBreak     AgentStatus = "Break"
)

// AgentStatuses lists every valid status in menu order.
var AgentStatuses = []AgentStatus{AgentStatusAvailable, AgentStatusBusy, AgentStatusBreak}

// Valid reports whether s is one of the three wire values.
func (s AgentStatus) Valid() bool {
	switch s {
	case AgentStatusAvailable, AgentStatusBusy, AgentStatusBreak:
		return true
	}
	return false
}

// ParseAgentStatus converts a wire value into an AgentStatus.
// Matching is exact: "busy" is rejected.
func ParseAgentStatus(s string) (AgentStatus, error) {
	status := AgentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown agent status %q", s)
	}
	return status, nil
}

// Agent is a single row on the wallboard.
// This corresponds to an entry in ~/.wallboard/roster.yaml.
type Agent struct {
	Name   string      `yaml:"name" json:"name"`
	Status AgentStatus `yaml:"status" json:"status"`
}

// Roster is the seed list of agents loaded at startup.
type Roster struct {
	Version int     `yaml:"version"`
	Agents  []Agent `yaml:"agents"`
}

// NewRoster returns the built-in sample roster.
func NewRoster() *Roster {
	return &Roster{
		Version: 1,
		Agents: []Agent{
			{Name: "Alice", Status: AgentStatusAvailable},
			{Name: "Bob", Status: AgentStatusBusy},
			{Name: "Carol", Status: AgentStatusBreak},
		},
	}
}

// Notification is a desktop notification request.
type Notification struct {
	Title  string
	Body   string
	Urgent bool
}
