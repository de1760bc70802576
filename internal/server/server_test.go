package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/wallboard/internal/exchange"
	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

type recordingTray struct {
	tooltips []string
}

func (t *recordingTray) SetTooltip(text string) {
	t.tooltips = append(t.tooltips, text)
}

type recordingGateway struct {
	sent []models.Notification
}

func (g *recordingGateway) Submit(_ context.Context, n models.Notification) error {
	g.sent = append(g.sent, n)
	return nil
}

type testEnv struct {
	client  *Client
	reg     *wallboard.Registry
	tray    *recordingTray
	gateway *recordingGateway
	echoes  []wallboard.StatusChangeEvent
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	reg, err := wallboard.NewRegistry(models.NewRoster().Agents)
	require.NoError(t, err)

	env := &testEnv{reg: reg, tray: &recordingTray{}, gateway: &recordingGateway{}}
	d := wallboard.NewDispatcher(reg, env.gateway, env.tray)
	d.Subscribe(wallboard.SubscriberFunc(func(ev wallboard.StatusChangeEvent) {
		env.echoes = append(env.echoes, ev)
	}))

	ts := httptest.NewServer(NewHandler(d, nil).Handler())
	t.Cleanup(ts.Close)

	env.client = &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	return env
}

func TestHealth(t *testing.T) {
	env := setupTestServer(t)
	assert.NoError(t, env.client.Health())
}

func TestAgents(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.Agents()
	require.NoError(t, err)
	assert.Equal(t, models.NewRoster().Agents, resp.Agents)
	assert.Equal(t, 1, resp.Available)
	assert.Equal(t, "Agent Wallboard - 1 available", resp.Tooltip)
}

func TestSetStatus(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.SetStatus("Bob", "Available")
	require.NoError(t, err)
	assert.Equal(t, "Bob", resp.Agent)
	assert.Equal(t, "Busy", resp.PreviousStatus)
	assert.Equal(t, "Available", resp.Status)
	assert.NotEmpty(t, resp.EventID)

	assert.Equal(t, []string{"Agent Wallboard - 2 available"}, env.tray.tooltips)
	assert.Len(t, env.gateway.sent, 1)
	require.Len(t, env.echoes, 1)
	assert.Equal(t, wallboard.OriginRemote, env.echoes[0].Origin)
}

func TestSetStatus_Rejected(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.client.SetStatus("Dave", "Busy")
	assert.ErrorIs(t, err, wallboard.ErrNotFound)

	_, err = env.client.SetStatus("Bob", "Invalid")
	assert.ErrorIs(t, err, wallboard.ErrInvalidStatus)

	assert.Equal(t, models.NewRoster().Agents, env.reg.Snapshot())
	assert.Empty(t, env.tray.tooltips)
	assert.Empty(t, env.gateway.sent)
	assert.Empty(t, env.echoes)
}

func TestSetStatus_EscapedName(t *testing.T) {
	reg, err := wallboard.NewRegistry([]models.Agent{{Name: "Mary Ann", Status: models.AgentStatusBusy}})
	require.NoError(t, err)
	ts := httptest.NewServer(NewHandler(wallboard.NewDispatcher(reg, nil, nil), nil).Handler())
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err = c.SetStatus("Mary Ann", "Break")
	require.NoError(t, err)

	a, err := reg.Get("Mary Ann")
	require.NoError(t, err)
	assert.Equal(t, models.AgentStatusBreak, a.Status)
}

func TestSetStatus_BadBody(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.HTTPClient.Post(env.client.BaseURL+"/agents/Bob/status", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExport(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.client.SetStatus("Bob", "Available")
	require.NoError(t, err)

	text, err := env.client.Export()
	require.NoError(t, err)
	assert.Equal(t, "Alice,Available\nBob,Available\nCarol,Break", text)
}

func TestImport(t *testing.T) {
	env := setupTestServer(t)

	entries, err := exchange.ParseText("Alice,Busy\nZed,Busy\nCarol,Nope")
	require.NoError(t, err)

	resp, err := env.client.Import(entries)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Applied)
	require.Len(t, resp.Skipped, 2)
	assert.Equal(t, "Zed", resp.Skipped[0].Name)
	assert.Equal(t, 3, resp.Skipped[1].Line)
	assert.Len(t, env.echoes, 1)
}

func TestNewClient(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:4000", NewClient("localhost", 4000).BaseURL)
	assert.Equal(t, "http://10.0.0.2:4000", NewClient("10.0.0.2", 4000).BaseURL)
}
