package tui

import (
	"github.com/watchfire-io/wallboard/internal/exchange"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

// StatusEchoMsg carries a status change made outside the view (tray, control API).
type StatusEchoMsg struct {
	Event wallboard.StatusChangeEvent
}

// dispatchDoneMsg carries the result of a status edit made in the view.
type dispatchDoneMsg struct {
	Event wallboard.StatusChangeEvent
	Err   error
}

// exportDoneMsg signals an export attempt finished.
type exportDoneMsg struct {
	Path string
	Err  error
}

// importDoneMsg signals an import attempt finished.
type importDoneMsg struct {
	File   *exchange.File
	Report exchange.Report
	Err    error
}

// clearNoticeMsg clears the status bar notice with the given sequence number.
type clearNoticeMsg struct {
	seq int
}

// closeMsg closes the view from outside.
type closeMsg struct{}
