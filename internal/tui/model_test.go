package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

func newTestModel(t *testing.T) (Model, *wallboard.Dispatcher) {
	t.Helper()
	reg, err := wallboard.NewRegistry(models.NewRoster().Agents)
	require.NoError(t, err)
	d := wallboard.NewDispatcher(reg, nil, nil)
	m := NewModel(d, Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model), d
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends msg and runs the resulting command, feeding its message back
// into the model. Tick commands are not run.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case dispatchDoneMsg, exportDoneMsg, importDoneMsg:
		updated, _ = m.Update(out)
		m = updated.(Model)
	}
	return m
}

func status(t *testing.T, d *wallboard.Dispatcher, name string) models.AgentStatus {
	t.Helper()
	a, err := d.Registry().Get(name)
	require.NoError(t, err)
	return a.Status
}

func TestModel_SetStatusKeys(t *testing.T) {
	m, d := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, runeKey("1"))
	assert.Equal(t, models.AgentStatusAvailable, status(t, d, "Bob"))
	assert.Equal(t, "Bob is now Available", m.notice)

	m = press(t, m, runeKey("3"))
	assert.Equal(t, models.AgentStatusBreak, status(t, d, "Bob"))

	assert.Contains(t, m.View(), "Agent Wallboard - 1 available")
}

func TestModel_CycleStatus(t *testing.T) {
	m, d := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, models.AgentStatusBusy, status(t, d, "Alice"))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, models.AgentStatusBreak, status(t, d, "Alice"))
}

func TestModel_SameStatusIsNoop(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runeKey("1"))
	assert.Nil(t, cmd)
}

func TestModel_EchoReloads(t *testing.T) {
	m, d := newTestModel(t)

	ev, err := d.Dispatch(context.Background(), "Carol", models.AgentStatusAvailable, wallboard.OriginTray)
	require.NoError(t, err)

	updated, cmd := m.Update(StatusEchoMsg{Event: ev})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, models.AgentStatusAvailable, m.list.agents[2].Status)
	assert.Contains(t, m.notice, "Carol is now Available")
	assert.Contains(t, m.View(), "2 available")
}

func TestModel_ExportAndImport(t *testing.T) {
	m, d := newTestModel(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")

	m = press(t, m, runeKey("e"))
	require.NotNil(t, m.prompt)
	m.prompt.input.SetValue(out)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.prompt)
	assert.Equal(t, "Exported to "+out, m.notice)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Alice,Available\nBob,Busy\nCarol,Break", string(data))

	in := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(in, []byte("Alice,Busy\nDave,Break"), 0644))

	m = press(t, m, runeKey("i"))
	m.prompt.input.SetValue(in)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, models.AgentStatusBusy, status(t, d, "Alice"))
	assert.True(t, m.noticeErr)
	assert.Contains(t, m.notice, "1 applied, 1 skipped")
}

func TestModel_PromptEscCancels(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, runeKey("e"))
	require.NotNil(t, m.prompt)
	assert.Contains(t, m.View(), "Export agents to")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.prompt)
}

func TestModel_CloseAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	updated, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, updated.(Model).quitApp)

	updated, cmd = m.Update(runeKey("Q"))
	require.NotNil(t, cmd)
	assert.True(t, updated.(Model).quitApp)
}

func TestModel_ClearNotice(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotEmpty(t, m.notice)

	updated, _ := m.Update(clearNoticeMsg{seq: m.noticeSeq - 1})
	assert.NotEmpty(t, updated.(Model).notice)

	updated, _ = m.Update(clearNoticeMsg{seq: m.noticeSeq})
	assert.Empty(t, updated.(Model).notice)
}

func TestNextStatus(t *testing.T) {
	assert.Equal(t, models.AgentStatusBusy, nextStatus(models.AgentStatusAvailable, 1))
	assert.Equal(t, models.AgentStatusAvailable, nextStatus(models.AgentStatusBreak, 1))
	assert.Equal(t, models.AgentStatusBreak, nextStatus(models.AgentStatusAvailable, -1))
	assert.Equal(t, models.AgentStatusAvailable, nextStatus("Lunch", 1))
}

func TestAgentList_KeepsSelectionByName(t *testing.T) {
	al := NewAgentList()
	al.SetAgents(models.NewRoster().Agents)
	al.MoveDown()
	al.MoveDown()

	al.SetAgents([]models.Agent{
		{Name: "Carol", Status: models.AgentStatusBusy},
		{Name: "Alice", Status: models.AgentStatusBusy},
	})
	a, ok := al.Selected()
	require.True(t, ok)
	assert.Equal(t, "Carol", a.Name)

	al.SetAgents(nil)
	_, ok = al.Selected()
	assert.False(t, ok)
	assert.Contains(t, al.View(40), "No agents")
}

func TestAgentList_Scrolls(t *testing.T) {
	al := NewAgentList()
	al.SetAgents(models.NewRoster().Agents)
	al.SetHeight(1)
	al.MoveDown()

	view := al.View(40)
	assert.Contains(t, view, "Bob")
	assert.NotContains(t, view, "Alice")
}
