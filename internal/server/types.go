package server

import (
	"time"

	"github.com/watchfire-io/wallboard/internal/exchange"
	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

// AgentsResponse is returned by GET /agents.
type AgentsResponse struct {
	Agents    []models.Agent `json:"agents"`
	Available int            `json:"available"`
	Tooltip   string         `json:"tooltip"`
}

// StatusRequest is the body of POST /agents/{name}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// StatusResponse describes an applied status change.
type StatusResponse struct {
	EventID        string    `json:"event_id"`
	Agent          string    `json:"agent"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// ImportRequest is the body of POST /import.
type ImportRequest struct {
	Entries []exchange.Entry `json:"entries"`
}

// ImportResponse reports the outcome of POST /import.
type ImportResponse struct {
	Applied int           `json:"applied"`
	Skipped []SkippedLine `json:"skipped,omitempty"`
}

// SkippedLine is an import entry that was rejected.
type SkippedLine struct {
	Line   int    `json:"line"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ErrorResponse carries a failure message and a machine-readable code.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeNotFound      = "not_found"
	CodeInvalidStatus = "invalid_status"
	CodeBadRequest    = "bad_request"
	CodeInternal      = "internal"
)

// NewStatusResponse describes a committed status change event.
func NewStatusResponse(ev wallboard.StatusChangeEvent) *StatusResponse {
	return &StatusResponse{
		EventID:        ev.ID,
		Agent:          ev.AgentName,
		PreviousStatus: string(ev.PreviousStatus),
		Status:         string(ev.NewStatus),
		Timestamp:      ev.Timestamp,
	}
}

// NewImportResponse converts an import report for the wire.
func NewImportResponse(report exchange.Report) *ImportResponse {
	resp := &ImportResponse{Applied: report.Applied}
	for _, sk := range report.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedLine{Line: sk.Entry.Line, Name: sk.Entry.Name, Reason: sk.Err.Error()})
	}
	return resp
}
