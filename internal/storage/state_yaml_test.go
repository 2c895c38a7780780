package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusclock/internal/core/model"
)

func TestLoadStateMissingFileReturnsDefaults(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.yaml")

	state, err := loadStateFile(statePath)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultFocusMin, state.FocusMin)
	assert.Equal(t, model.DefaultBreakMin, state.BreakMin)
	assert.Equal(t, model.DefaultSessionGoal, state.SessionGoal)
	assert.Equal(t, model.ModeFocus, state.Mode)
	assert.Equal(t, model.DefaultFocusMin*60, state.Remaining)
	assert.True(t, state.ScreenBreaks)
	assert.False(t, state.Running)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.yaml")

	original := model.NewState()
	original.FocusMin = 25
	original.BreakMin = 5
	original.MicroSec = 30
	original.SessionGoal = 4
	original.ScreenBreaks = false
	original.Mode = model.ModeBreak
	original.Remaining = 123
	original.CompletedUnits = 2
	original.TotalOpenSec = 900
	original.PausedSec = 60
	original.MicrobreakSec = 120
	original.FocusWorkSec = 700
	original.Running = true

	require.NoError(t, saveStateFile(statePath, original))

	loaded, err := loadStateFile(statePath)
	require.NoError(t, err)

	assert.Equal(t, 25, loaded.FocusMin)
	assert.Equal(t, 5, loaded.BreakMin)
	assert.Equal(t, 30, loaded.MicroSec)
	assert.Equal(t, 4, loaded.SessionGoal)
	assert.False(t, loaded.ScreenBreaks)
	assert.Equal(t, model.ModeBreak, loaded.Mode)
	assert.Equal(t, 123, loaded.Remaining)
	assert.Equal(t, 2, loaded.CompletedUnits)
	assert.Equal(t, 900, loaded.TotalOpenSec)
	assert.Equal(t, 60, loaded.PausedSec)
	assert.Equal(t, 120, loaded.MicrobreakSec)
	assert.Equal(t, 700, loaded.FocusWorkSec)
	assert.False(t, loaded.Running, "clock must load paused")
}

func TestLoadStatePartialFileKeepsDefaults(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.yaml")
	content := "focus_min: 90\nsession_goal: 3\n"
	require.NoError(t, os.WriteFile(statePath, []byte(content), 0o644))

	state, err := loadStateFile(statePath)
	require.NoError(t, err)

	assert.Equal(t, 90, state.FocusMin)
	assert.Equal(t, 3, state.SessionGoal)
	assert.Equal(t, model.DefaultBreakMin, state.BreakMin)
	assert.Equal(t, model.DefaultMicroSec, state.MicroSec)
	assert.True(t, state.ScreenBreaks, "absent flag keeps the default")
	assert.Equal(t, 90*60, state.Remaining, "remaining recomputed from phase length")
}

func TestLoadStateMalformedFileReturnsDefaultsAndError(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(statePath, []byte("{not yaml"), 0o644))

	state, err := loadStateFile(statePath)
	assert.Error(t, err)
	assert.Equal(t, model.DefaultFocusMin, state.FocusMin)
	assert.Equal(t, model.ModeFocus, state.Mode)
}

func TestLoadStateRepairsInconsistentSnapshot(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.yaml")
	content := "" +
		"session_goal: 4\n" +
		"completed_units: 9\n" +
		"microbreak_active: false\n" +
		"microbreak_remaining: 45\n" +
		"after_micro: resume_focus\n" +
		"mode: teleport\n"
	require.NoError(t, os.WriteFile(statePath, []byte(content), 0o644))

	state, err := loadStateFile(statePath)
	require.NoError(t, err)

	assert.Equal(t, 4, state.CompletedUnits, "completed units clamped to the goal")
	assert.Equal(t, 0, state.MicrobreakRemaining, "stale overlay countdown dropped")
	assert.Equal(t, model.AfterNone, state.AfterMicro, "stale continuation tag dropped")
	assert.Equal(t, model.ModeFocus, state.Mode, "unknown mode falls back to focus")
}

func TestLoadStateFinishedImpliesGoalReached(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.yaml")
	content := "session_goal: 5\ncompleted_units: 3\nfinished: true\n"
	require.NoError(t, os.WriteFile(statePath, []byte(content), 0o644))

	state, err := loadStateFile(statePath)
	require.NoError(t, err)

	assert.True(t, state.Finished)
	assert.Equal(t, 5, state.CompletedUnits)
}

func TestSaveStatePersistsDisabledScreenBreaks(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.yaml")

	state := model.NewState()
	state.ScreenBreaks = false
	require.NoError(t, saveStateFile(statePath, state))

	raw, err := os.ReadFile(statePath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "screen_breaks_enabled: false")

	loaded, err := loadStateFile(statePath)
	require.NoError(t, err)
	assert.False(t, loaded.ScreenBreaks)
}
