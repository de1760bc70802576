package tray

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/wallboard/internal/models"
)

func TestFormatStatusTitle(t *testing.T) {
	assert.Equal(t, "🟢 Available", formatStatusTitle(models.AgentStatusAvailable))
	assert.Equal(t, "🔴 Busy", formatStatusTitle(models.AgentStatusBusy))
	assert.Equal(t, "🟡 Break", formatStatusTitle(models.AgentStatusBreak))
	assert.Equal(t, "Lunch", formatStatusTitle("Lunch"))
}

func TestFormatAgentTitle(t *testing.T) {
	assert.Equal(t, "Alice - Busy", formatAgentTitle(models.Agent{Name: "Alice", Status: models.AgentStatusBusy}))
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, availableIcon, iconFor(3))
	assert.Equal(t, idleIcon, iconFor(0))
	assert.NotEqual(t, availableIcon, idleIcon)

	img, err := png.Decode(bytes.NewReader(availableIcon))
	require.NoError(t, err)
	assert.Equal(t, iconSize, img.Bounds().Dx())
}

func TestSurface_SetTooltipBeforeReady(t *testing.T) {
	Surface{}.SetTooltip("Agent Wallboard - 2 available")

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, ready)
	assert.Equal(t, "Agent Wallboard - 2 available", tooltip)
}
