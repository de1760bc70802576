package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/wallboard/internal/app"
	"github.com/watchfire-io/wallboard/internal/buildinfo"
	"github.com/watchfire-io/wallboard/internal/config"
	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/server"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("WALLBOARD_HOME", home)
	t.Setenv("WALLBOARD_NOTIFICATIONS_ENABLED", "false")
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(io.Discard)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// startInstance runs a control API in-process and records it in instance.yaml.
func startInstance(t *testing.T) *wallboard.Dispatcher {
	t.Helper()

	registry, err := wallboard.NewRegistry(models.NewRoster().Agents)
	require.NoError(t, err)
	d := wallboard.NewDispatcher(registry, nil, nil)

	srv, err := server.New(d, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	go func() { _ = srv.Serve() }()
	t.Cleanup(srv.Stop)

	info := models.NewInstanceInfo("localhost", srv.Port(), os.Getpid(), false)
	require.NoError(t, config.SaveInstanceInfo(info))
	return d
}

func TestVersion(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Agent Wallboard")
	assert.Contains(t, out, buildinfo.Version)
	assert.Contains(t, out, buildinfo.Codename)
}

func TestAgents_Local(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "agents")
	require.NoError(t, err)
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "no wallboard running")
	assert.Contains(t, out, "Agent Wallboard - 1 available")
}

func TestAgents_UsesRoster(t *testing.T) {
	setupHome(t)
	require.NoError(t, config.SaveRoster(&models.Roster{Version: 1, Agents: []models.Agent{
		{Name: "Dana", Status: models.AgentStatusAvailable},
		{Name: "Eve", Status: models.AgentStatusAvailable},
	}}))

	out, err := execute(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Dana")
	assert.NotContains(t, out, "Alice")
	assert.Contains(t, out, "Agent Wallboard - 2 available")
}

func TestSet_Local(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "set", "Bob", "Available")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "Busy")
	assert.Contains(t, out, "Available")
}

func TestSet_Rejections(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "set", "Bob", "Lunch")
	assert.ErrorIs(t, err, wallboard.ErrInvalidStatus)

	_, err = execute(t, "set", "Dave", "Busy")
	assert.ErrorIs(t, err, wallboard.ErrNotFound)

	_, err = execute(t, "set", "Bob")
	assert.Error(t, err)
}

func TestSet_Remote(t *testing.T) {
	setupHome(t)
	d := startInstance(t)

	out, err := execute(t, "set", "Carol", "Available")
	require.NoError(t, err)
	assert.Contains(t, out, "Carol")

	agent, err := d.Registry().Get("Carol")
	require.NoError(t, err)
	assert.Equal(t, models.AgentStatusAvailable, agent.Status)

	out, err = execute(t, "agents")
	require.NoError(t, err)
	assert.Contains(t, out, "running wallboard")
	assert.Contains(t, out, "Agent Wallboard - 2 available")

	_, err = execute(t, "set", "Carol", "Lunch")
	assert.ErrorIs(t, err, wallboard.ErrInvalidStatus)
}

func TestExport_Stdout(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "export")
	require.NoError(t, err)
	assert.Equal(t, "Alice,Available\nBob,Busy\nCarol,Break\n", out)
}

func TestExport_RemoteReflectsChanges(t *testing.T) {
	setupHome(t)
	startInstance(t)

	_, err := execute(t, "set", "Bob", "Available")
	require.NoError(t, err)

	out, err := execute(t, "export")
	require.NoError(t, err)
	assert.Equal(t, "Alice,Available\nBob,Available\nCarol,Break\n", out)
}

func TestExport_JSONFile(t *testing.T) {
	setupHome(t)
	path := filepath.Join(t.TempDir(), "agents.json")

	out, err := execute(t, "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 agents")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var agents []models.Agent
	require.NoError(t, json.Unmarshal(data, &agents))
	assert.Equal(t, models.NewRoster().Agents, agents)
}

func TestImport_SkipsRejectedEntries(t *testing.T) {
	setupHome(t)
	path := filepath.Join(t.TempDir(), "shift.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,status\nAlice,Busy\nDave,Available\nBob,Lunch\n"), 0o644))

	out, err := execute(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "shift.csv")
	assert.Contains(t, out, "Applied 1 of 3 entries")
	assert.Contains(t, out, "line 3 (Dave)")
	assert.Contains(t, out, "line 4 (Bob)")
}

func TestImport_Remote(t *testing.T) {
	setupHome(t)
	d := startInstance(t)

	path := filepath.Join(t.TempDir(), "shift.txt")
	require.NoError(t, os.WriteFile(path, []byte("Carol,Available\nAlice,Break"), 0o644))

	out, err := execute(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 2 of 2 entries")
	assert.Equal(t, 1, d.Registry().Count(models.AgentStatusAvailable))
	assert.Equal(t, 1, d.Registry().Count(models.AgentStatusBreak))
}

func TestImport_MissingFile(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "import", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestNotify(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "notify", "Shift", "Ends in 10 minutes", "--urgent")
	require.NoError(t, err)
	assert.Contains(t, out, "notifications are disabled")
	assert.Contains(t, out, "Shift: Ends in 10 minutes")
}

func TestEvent(t *testing.T) {
	setupHome(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"event", "Alice", "login"}, "Alice logged in"},
		{[]string{"event", "Alice", "call_ended", "--duration", "90"}, "Alice ended a call (90 seconds)"},
		{[]string{"event", "Alice", "call_ended"}, "Alice ended a call (? seconds)"},
		{[]string{"event", "Bob", "status_change", "--status", "Break"}, "Bob changed status to Break"},
		{[]string{"event", "Bob", "coffee"}, "Bob: coffee"},
	}

	for _, tt := range tests {
		out, err := execute(t, tt.args...)
		require.NoError(t, err, tt.args)
		assert.Contains(t, out, tt.want, tt.args)
	}
}

func TestEvent_InvalidStatus(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "event", "Bob", "status_change", "--status", "busy")
	assert.Error(t, err)
}

func TestSettings_SetAndShow(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "settings", "set", "tray_agent", "Bob")
	require.NoError(t, err)
	_, err = execute(t, "settings", "set", "control.port", "7070")
	require.NoError(t, err)

	settings, err := config.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "Bob", settings.TrayAgent)
	assert.Equal(t, 7070, settings.Control.Port)

	out, err := execute(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "7070")
}

func TestSettings_SetRejectsBadValues(t *testing.T) {
	setupHome(t)

	tests := [][]string{
		{"settings", "set", "control.port", "abc"},
		{"settings", "set", "control.port", "70000"},
		{"settings", "set", "notifications.enabled", "maybe"},
		{"settings", "set", "log_level", "loud"},
		{"settings", "set", "theme", "dark"},
	}
	for _, args := range tests {
		_, err := execute(t, args...)
		assert.Error(t, err, args)
	}
}

func TestRun_Refusals(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "run", "--no-tray", "--headless")
	assert.Error(t, err)

	startInstance(t)
	_, err = execute(t, "--headless")
	assert.ErrorIs(t, err, app.ErrAlreadyRunning)
}

func TestResolveView(t *testing.T) {
	tests := []struct {
		name     string
		headless bool
		noTray   bool
		tty      bool
		want     bool
		wantErr  bool
	}{
		{name: "terminal shows view", tty: true, want: true},
		{name: "headless skips view", headless: true, tty: true, want: false},
		{name: "no terminal falls back to tray", tty: false, want: false},
		{name: "no terminal and no tray", noTray: true, tty: false, wantErr: true},
		{name: "headless and no tray", headless: true, noTray: true, tty: true, wantErr: true},
		{name: "no tray with terminal", noTray: true, tty: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveView(tt.headless, tt.noTray, tt.tty)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_WithoutTerminal(t *testing.T) {
	setupHome(t)

	orig := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = orig })

	_, err := execute(t, "--no-tray")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, app.ErrAlreadyRunning)

	// Without --no-tray the missing terminal is not an error; startup goes on
	// to the instance check.
	startInstance(t)
	_, err = execute(t)
	assert.ErrorIs(t, err, app.ErrAlreadyRunning)
}

func TestNewLogger_File(t *testing.T) {
	home := setupHome(t)
	require.NoError(t, config.EnsureGlobalDir())

	logger, closeLog, err := newLogger("debug", true)
	require.NoError(t, err)
	logger.Debug("hello", "component", "test")
	closeLog()

	data, err := os.ReadFile(filepath.Join(home, config.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
	assert.Contains(t, string(data), "component=test")
}
