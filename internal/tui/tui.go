// Package tui implements the interactive wallboard view.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/watchfire-io/wallboard/internal/wallboard"
)

// Result tells the caller how the view was closed.
type Result struct {
	// QuitApp is set when the user asked to exit the whole application
	// rather than just close the view.
	QuitApp bool
}

// Options configures a view session.
type Options struct {
	ExportDefault string
	// TrayRunning changes the close key into "hide to tray".
	TrayRunning bool
}

// programRef is a shared reference to the running tea.Program for sends from
// other goroutines. It is empty while no view is open.
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Running reports whether a view is open.
func (r *programRef) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.p != nil
}

// Surface is the UI side of the dispatcher. It subscribes once and forwards
// echo events to whichever view is currently open.
type Surface struct {
	dispatcher *wallboard.Dispatcher
	ref        programRef
}

// NewSurface creates a UI surface and subscribes it to d.
func NewSurface(d *wallboard.Dispatcher) *Surface {
	s := &Surface{dispatcher: d}
	d.Subscribe(s)
	return s
}

// StatusChanged forwards an echo event to the open view, if any.
func (s *Surface) StatusChanged(ev wallboard.StatusChangeEvent) {
	s.ref.Send(StatusEchoMsg{Event: ev})
}

// Open reports whether a view is currently shown.
func (s *Surface) Open() bool {
	return s.ref.Running()
}

// Close asks the open view to exit.
func (s *Surface) Close() {
	s.ref.Send(closeMsg{})
}

// Run shows the view and blocks until it is closed.
func (s *Surface) Run(opts Options) (Result, error) {
	model := NewModel(s.dispatcher, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	s.ref.Set(p)
	defer s.ref.Clear()

	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	if m, ok := final.(Model); ok {
		return Result{QuitApp: m.quitApp}, nil
	}
	return Result{}, nil
}
