package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusclock/internal/core/model"
)

func TestRewindRestartsPhaseAfterThreshold(t *testing.T) {
	engine, fake, _ := newTestClock(nil)

	engine.Start()
	tick(engine, fake, 15)
	engine.RewindPhase()

	status := engine.Status()
	assert.Equal(t, model.ModeFocus, status.Mode)
	assert.Equal(t, status.FocusMin*60, status.Remaining)
	assert.Equal(t, 0, status.CompletedUnits)
}

func TestRewindNearStartReturnsToPreviousBreak(t *testing.T) {
	state := model.NewState()
	state.CompletedUnits = 2
	engine, fake, _ := newTestClock(state)

	engine.Start()
	tick(engine, fake, 5)
	engine.RewindPhase()

	status := engine.Status()
	assert.Equal(t, model.ModeBreak, status.Mode)
	assert.Equal(t, status.BreakMin*60, status.Remaining)
	assert.Equal(t, 1, status.CompletedUnits, "the unit is un-counted")
}

func TestRewindAtFocusStartWithoutUnitsStaysPut(t *testing.T) {
	engine, fake, _ := newTestClock(nil)

	engine.Start()
	tick(engine, fake, 5)
	engine.RewindPhase()

	status := engine.Status()
	assert.Equal(t, model.ModeFocus, status.Mode)
	assert.Equal(t, status.FocusMin*60, status.Remaining)
	assert.Equal(t, 0, status.CompletedUnits)
}

func TestRewindFromBreakStartReturnsToFocus(t *testing.T) {
	state := model.NewState()
	state.Mode = model.ModeBreak
	state.Remaining = state.BreakMin * 60
	state.CompletedUnits = 1
	engine, fake, _ := newTestClock(state)

	engine.Start()
	tick(engine, fake, 3)
	engine.RewindPhase()

	status := engine.Status()
	assert.Equal(t, model.ModeFocus, status.Mode)
	assert.Equal(t, status.FocusMin*60, status.Remaining)
	assert.Equal(t, 1, status.CompletedUnits, "going back to focus does not touch the count")
}

func TestRewindCancelsMicrobreak(t *testing.T) {
	state := model.NewState()
	state.RemindAt = map[int]struct{}{state.FocusMin*60 - 3: {}, 0: {}}
	engine, fake, _ := newTestClock(state)

	engine.Start()
	tick(engine, fake, 3)
	require.True(t, engine.Status().MicrobreakActive)
	frozen := engine.Status().Remaining

	engine.RewindPhase()

	status := engine.Status()
	assert.False(t, status.MicrobreakActive)
	assert.Equal(t, model.ModeFocus, status.Mode)
	assert.Equal(t, frozen, status.Remaining, "cancel keeps the countdown, no phase jump")
}

func TestRewindDuringLunchNearStartRestores(t *testing.T) {
	engine, fake, _ := newTestClock(nil)

	engine.Start()
	tick(engine, fake, 30)
	preRemaining := engine.Status().Remaining

	engine.StartLunchBreak()
	tick(engine, fake, 5)
	engine.RewindPhase()

	status := engine.Status()
	assert.Equal(t, model.ModeFocus, status.Mode)
	assert.Equal(t, preRemaining, status.Remaining)
}

func TestRewindDuringLunchLateRestartsLunch(t *testing.T) {
	engine, fake, _ := newTestClock(nil)

	engine.Start()
	engine.StartLunchBreak()
	tick(engine, fake, 120)
	engine.RewindPhase()

	status := engine.Status()
	assert.Equal(t, model.ModeLunch, status.Mode)
	assert.Equal(t, model.LunchSeconds, status.Remaining)
}

func TestSkipFocusCountsUnitWithoutScreenBreak(t *testing.T) {
	engine, fake, _ := newTestClock(nil)

	engine.Start()
	tick(engine, fake, 30)
	engine.SkipPhase()

	status := engine.Status()
	assert.Equal(t, 1, status.CompletedUnits)
	assert.False(t, status.MicrobreakActive, "a manual skip goes straight to the break")
	assert.Equal(t, model.ModeBreak, status.Mode)
	assert.Equal(t, status.BreakMin*60, status.Remaining)
}

func TestSkipBreakReturnsToFocus(t *testing.T) {
	state := model.NewState()
	state.Mode = model.ModeBreak
	state.Remaining = state.BreakMin * 60
	state.CompletedUnits = 1
	engine, _, _ := newTestClock(state)

	engine.Start()
	engine.SkipPhase()

	status := engine.Status()
	assert.Equal(t, model.ModeFocus, status.Mode)
	assert.Equal(t, status.FocusMin*60, status.Remaining)
}

func TestSkipEndsMicrobreakEarly(t *testing.T) {
	state := model.NewState()
	state.RemindAt = map[int]struct{}{state.FocusMin*60 - 2: {}, 0: {}}
	engine, fake, _ := newTestClock(state)

	engine.Start()
	tick(engine, fake, 2)
	require.True(t, engine.Status().MicrobreakActive)

	engine.SkipPhase()

	status := engine.Status()
	assert.False(t, status.MicrobreakActive)
	assert.Equal(t, model.ModeFocus, status.Mode, "resume-focus continuation honored")
}

func TestSkipLastFocusFinishesSession(t *testing.T) {
	state := model.NewState()
	state.SessionGoal = 1
	engine, _, _ := newTestClock(state)

	engine.Start()
	engine.SkipPhase()

	status := engine.Status()
	assert.True(t, status.Finished)
	assert.False(t, status.Running)
}

func TestSkipAndRewindIgnoredWhenFinished(t *testing.T) {
	state := model.NewState()
	state.Finished = true
	state.CompletedUnits = state.SessionGoal
	engine, _, _ := newTestClock(state)

	engine.SkipPhase()
	engine.RewindPhase()

	status := engine.Status()
	assert.True(t, status.Finished)
	assert.Equal(t, state.SessionGoal, status.CompletedUnits)
}

func TestSkipAndRewindIgnoredInWorklog(t *testing.T) {
	engine, fake, _ := newTestClock(nil)
	engine.SwitchProfile(model.ProfileWorklog)

	engine.Start()
	tick(engine, fake, 10)
	engine.SkipPhase()
	engine.RewindPhase()

	status := engine.Status()
	assert.Equal(t, 10, status.WorkElapsedSec)
	assert.True(t, status.Running)
}
