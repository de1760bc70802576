package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/wallboard/internal/exchange"
	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

// noticeTTL is how long a status bar notice stays visible.
const noticeTTL = 4 * time.Second

// Model is the root Bubbletea model for the wallboard view.
type Model struct {
	dispatcher *wallboard.Dispatcher
	opts       Options

	list   *AgentList
	prompt *PathPrompt
	help   help.Model

	width  int
	height int

	notice    string
	noticeErr bool
	noticeSeq int

	quitApp bool
}

// NewModel creates the view model over d.
func NewModel(d *wallboard.Dispatcher, opts Options) Model {
	if opts.ExportDefault == "" {
		opts.ExportDefault = "agents.csv"
	}
	m := Model{
		dispatcher: d,
		opts:       opts,
		list:       NewAgentList(),
		help:       help.New(),
	}
	m.list.SetAgents(d.Registry().Snapshot())
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetHeight(m.listHeight())
		return m, nil

	case tea.KeyMsg:
		if m.prompt != nil {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case StatusEchoMsg:
		m.reload()
		ev := msg.Event
		cmd := m.setNotice(fmt.Sprintf("%s is now %s (from %s)", ev.AgentName, ev.NewStatus, ev.Origin), false)
		return m, cmd

	case dispatchDoneMsg:
		m.reload()
		if msg.Err != nil {
			cmd := m.setNotice(msg.Err.Error(), true)
			return m, cmd
		}
		cmd := m.setNotice(fmt.Sprintf("%s is now %s", msg.Event.AgentName, msg.Event.NewStatus), false)
		return m, cmd

	case exportDoneMsg:
		if msg.Err != nil {
			cmd := m.setNotice(msg.Err.Error(), true)
			return m, cmd
		}
		cmd := m.setNotice("Exported to "+msg.Path, false)
		return m, cmd

	case importDoneMsg:
		m.reload()
		if msg.Err != nil {
			cmd := m.setNotice(msg.Err.Error(), true)
			return m, cmd
		}
		text := fmt.Sprintf("Imported %s (%d bytes): %d applied", msg.File.Name, msg.File.Size, msg.Report.Applied)
		if n := len(msg.Report.Skipped); n > 0 {
			first := msg.Report.Skipped[0]
			text += fmt.Sprintf(", %d skipped (line %d: %v)", n, first.Entry.Line, first.Err)
		}
		cmd := m.setNotice(text, len(msg.Report.Skipped) > 0)
		return m, cmd

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil

	case closeMsg:
		return m, tea.Quit
	}

	if m.prompt != nil {
		return m, m.prompt.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitApp = true
		return m, tea.Quit
	case key.Matches(msg, keys.Close):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.list.SetHeight(m.listHeight())
		return m, nil
	case key.Matches(msg, keys.Up):
		m.list.MoveUp()
		return m, nil
	case key.Matches(msg, keys.Down):
		m.list.MoveDown()
		return m, nil
	case key.Matches(msg, keys.Next):
		return m, m.cycleSelected(1)
	case key.Matches(msg, keys.Prev):
		return m, m.cycleSelected(-1)
	case key.Matches(msg, keys.Available):
		return m, m.setSelected(models.AgentStatusAvailable)
	case key.Matches(msg, keys.Busy):
		return m, m.setSelected(models.AgentStatusBusy)
	case key.Matches(msg, keys.Break):
		return m, m.setSelected(models.AgentStatusBreak)
	case key.Matches(msg, keys.Export):
		m.prompt = NewPathPrompt(promptExport, m.opts.ExportDefault)
		return m, nil
	case key.Matches(msg, keys.Import):
		m.prompt = NewPathPrompt(promptImport, "")
		return m, nil
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt = nil
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.prompt.Value())
		kind := m.prompt.kind
		m.prompt = nil
		if path == "" {
			cmd := m.setNotice("No file selected", false)
			return m, cmd
		}
		if kind == promptExport {
			return m, exportCmd(m.dispatcher, path)
		}
		return m, importCmd(m.dispatcher, path)
	}
	return m, m.prompt.Update(msg)
}

// cycleSelected moves the selected agent to the next or previous status.
func (m Model) cycleSelected(step int) tea.Cmd {
	a, ok := m.list.Selected()
	if !ok {
		return nil
	}
	return m.setSelected(nextStatus(a.Status, step))
}

// setSelected updates the row right away and dispatches the edit. The
// dispatch runs as a command, off the event loop.
func (m Model) setSelected(status models.AgentStatus) tea.Cmd {
	a, ok := m.list.Selected()
	if !ok || a.Status == status {
		return nil
	}
	m.list.agents[m.list.cursor].Status = status
	return dispatchCmd(m.dispatcher, a.Name, status)
}

func (m *Model) reload() {
	m.list.SetAgents(m.dispatcher.Registry().Snapshot())
}

func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.noticeErr = isErr
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

func (m Model) listHeight() int {
	// title, summary, blank line, status bar, help
	h := m.height - 5 - lipgloss.Height(m.help.View(keys))
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the wallboard.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 60
	}

	reg := m.dispatcher.Registry()
	summary := fmt.Sprintf("%d available · %d busy · %d on break",
		reg.Count(models.AgentStatusAvailable),
		reg.Count(models.AgentStatusBusy),
		reg.Count(models.AgentStatusBreak))

	body := m.list.View(width)
	if m.prompt != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.prompt.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("📊 Agent Wallboard"),
		summaryStyle.Render(summary),
		"",
		body,
		"",
		renderStatusBar(&m, width),
		m.help.View(keys),
	)
}

func dispatchCmd(d *wallboard.Dispatcher, name string, status models.AgentStatus) tea.Cmd {
	return func() tea.Msg {
		ev, err := d.Dispatch(context.Background(), name, status, wallboard.OriginUI)
		return dispatchDoneMsg{Event: ev, Err: err}
	}
}

func exportCmd(d *wallboard.Dispatcher, path string) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{Path: path, Err: exchange.Export(path, d.Registry().All())}
	}
}

func importCmd(d *wallboard.Dispatcher, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := exchange.Open(path)
		if err != nil {
			return importDoneMsg{Err: err}
		}
		report, err := exchange.Apply(context.Background(), d, f.Entries, wallboard.OriginUI)
		return importDoneMsg{File: f, Report: report, Err: err}
	}
}
