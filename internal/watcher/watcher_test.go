package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/wallboard/internal/config"
)

func TestClassify(t *testing.T) {
	typ, ok := classify("/home/x/.wallboard/settings.yaml")
	assert.True(t, ok)
	assert.Equal(t, EventSettingsChanged, typ)

	typ, ok = classify("roster.yaml")
	assert.True(t, ok)
	assert.Equal(t, EventRosterChanged, typ)

	_, ok = classify("instance.yaml")
	assert.False(t, ok)
}

func TestWatcher_DebouncedSettingsChange(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	path := filepath.Join(dir, config.SettingsFileName)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("tray_agent: Bob\n"), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.InstanceFileName), []byte("pid: 1\n"), 0644))

	select {
	case ev := <-w.Events():
		assert.Equal(t, EventSettingsChanged, ev.Type)
		assert.Equal(t, path, ev.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("no settings event received")
	}

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected extra event %v", ev.Type)
	case <-time.After(3 * DebounceDelay):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	w.Stop()
	w.Stop()
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "settings_changed", EventSettingsChanged.String())
	assert.Equal(t, "roster_changed", EventRosterChanged.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
