// Package clock implements the focus/break phase state machine and the
// segment logger behind it. A Clock owns a single ClockState, advances it
// once per second, and reports changes through an injected Sink.
package clock

import (
	"sync"
	"time"

	"focusclock/internal/core/model"
)

// rewindThresholdSec separates "restart this phase" from "go back one
// phase" when rewinding, like the double-tap behavior of music players.
const rewindThresholdSec = 10

// Config contains runtime options for Clock.
type Config struct {
	TickInterval time.Duration
}

// Clock is the phase state machine. All mutation happens under one mutex,
// either inside the two tick handlers or inside a user command, so the
// engine behaves as a single logical thread of control.
type Clock struct {
	mu      sync.Mutex
	state   *model.ClockState
	options Config
	sink    Sink
	now     func() time.Time

	pendingNotify bool
	pendingChange bool

	stopCh  chan struct{}
	looping bool
}

// New creates a Clock around the provided state. A nil state starts from
// defaults.
func New(state *model.ClockState, options Config) *Clock {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if state == nil {
		state = model.NewState()
	}
	if state.RemindAt == nil {
		state.RemindAt = model.DefaultRemindAt()
	}
	if state.RemindedThisFocus == nil {
		state.RemindedThisFocus = map[int]struct{}{}
	}

	return &Clock{
		state:   state,
		options: options,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
}

// SetSink injects the notification/render callbacks.
func (clock *Clock) SetSink(sink Sink) {
	clock.mu.Lock()
	clock.sink = sink
	clock.mu.Unlock()
}

// Run launches the internal once-per-second driver. Each iteration runs the
// main tick handler and then the pause counter, so the two never interleave.
func (clock *Clock) Run() {
	clock.mu.Lock()
	if clock.looping {
		clock.mu.Unlock()
		return
	}
	clock.looping = true
	clock.mu.Unlock()

	go clock.loop()
}

// Close terminates the driver loop. User commands stay usable afterwards.
func (clock *Clock) Close() {
	clock.mu.Lock()
	if !clock.looping {
		clock.mu.Unlock()
		return
	}
	clock.looping = false
	close(clock.stopCh)
	clock.mu.Unlock()
}

func (clock *Clock) loop() {
	ticker := time.NewTicker(clock.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-clock.stopCh:
			return
		case <-ticker.C:
			clock.Tick()
			clock.PauseTick()
		}
	}
}

// Start sets the user intent to progress time. No-op once the session goal
// is reached.
func (clock *Clock) Start() {
	clock.mu.Lock()
	state := clock.state
	if !state.Finished && !state.Running {
		state.Running = true
		clock.rollSegmentLocked()
		clock.markChangedLocked()
	}
	clock.mu.Unlock()
	clock.flush()
}

// Pause clears the running flag. Phase and countdown stay untouched.
func (clock *Clock) Pause() {
	clock.mu.Lock()
	clock.state.Running = false
	clock.rollSegmentLocked()
	clock.markChangedLocked()
	clock.mu.Unlock()
	clock.flush()
}

// TogglePlayPause flips between Start and Pause.
func (clock *Clock) TogglePlayPause() {
	clock.mu.Lock()
	running := clock.state.Running
	clock.mu.Unlock()

	if running {
		clock.Pause()
		return
	}
	clock.Start()
}

// SkipPhase ends the current phase immediately. A manual focus skip counts
// the unit but goes straight to the break, without the screen break the
// automatic flow would insert first.
func (clock *Clock) SkipPhase() {
	clock.mu.Lock()
	clock.skipPhaseLocked()
	clock.mu.Unlock()
	clock.flush()
}

// RewindPhase goes back: cancel an active microbreak, restart the current
// phase when more than a few seconds have elapsed, or jump to the previous
// phase when near the start.
func (clock *Clock) RewindPhase() {
	clock.mu.Lock()
	clock.rewindPhaseLocked()
	clock.mu.Unlock()
	clock.flush()
}

// StartLunchBreak suspends the current phase for a fixed one-hour lunch and
// restores it afterwards. Only one level is supported: starting a lunch
// while already in one is ignored.
func (clock *Clock) StartLunchBreak() {
	clock.mu.Lock()
	clock.startLunchBreakLocked()
	clock.mu.Unlock()
	clock.flush()
}

// ResetAll returns the clock to a pristine session: phase, counters and the
// segment log are cleared. In the worklog profile only the stopwatch and
// the log reset.
func (clock *Clock) ResetAll() {
	clock.mu.Lock()
	clock.resetAllLocked()
	clock.mu.Unlock()
	clock.flush()
}

// ApplySettings overwrites the configuration. The start unit is clamped to
// [1, goal]. An in-flight countdown is left untouched; otherwise the
// remaining time is recomputed from the new duration of the current mode.
func (clock *Clock) ApplySettings(focusMin, breakMin, microSec, goal, startUnit int, screenBreaks bool) {
	clock.mu.Lock()
	clock.applySettingsLocked(focusMin, breakMin, microSec, goal, startUnit, screenBreaks)
	clock.mu.Unlock()
	clock.flush()
}

// SwitchProfile changes between the study state machine and the worklog
// stopwatch. Switching stops the clock and resets the runtime of the
// profile being entered.
func (clock *Clock) SwitchProfile(profile model.Profile) {
	clock.mu.Lock()
	clock.switchProfileLocked(profile)
	clock.mu.Unlock()
	clock.flush()
}

// ToggleProfile flips between the two profiles.
func (clock *Clock) ToggleProfile() {
	clock.mu.Lock()
	next := model.ProfileWorklog
	if clock.state.Profile == model.ProfileWorklog {
		next = model.ProfileStudy
	}
	clock.switchProfileLocked(next)
	clock.mu.Unlock()
	clock.flush()
}

// Status returns a render snapshot.
func (clock *Clock) Status() Status {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	state := clock.state
	return Status{
		Profile:             state.Profile,
		Mode:                state.Mode,
		FocusMin:            state.FocusMin,
		BreakMin:            state.BreakMin,
		MicroSec:            state.MicroSec,
		SessionGoal:         state.SessionGoal,
		ScreenBreaks:        state.ScreenBreaks,
		Remaining:           state.Remaining,
		CompletedUnits:      state.CompletedUnits,
		CurrentUnit:         clock.currentUnitLocked(),
		Finished:            state.Finished,
		Running:             state.Running,
		MicrobreakActive:    state.MicrobreakActive,
		MicrobreakRemaining: state.MicrobreakRemaining,
		WorkElapsedSec:      state.WorkElapsedSec,
		TotalOpenSec:        state.TotalOpenSec,
		PausedSec:           state.PausedSec,
		MicrobreakSec:       state.MicrobreakSec,
		FocusWorkSec:        state.FocusWorkSec,
		Progress:            clock.sessionProgressLocked(),
	}
}

// State returns a deep copy for persistence.
func (clock *Clock) State() *model.ClockState {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.state.Clone()
}

// ---- commands, under lock ----

func (clock *Clock) skipPhaseLocked() {
	state := clock.state
	if state.Profile == model.ProfileWorklog || state.Finished {
		return
	}

	if state.MicrobreakActive {
		clock.endMicrobreakLocked()
		return
	}

	if state.Mode == model.ModeFocus {
		clock.finishFocusUnitLocked(false)
		return
	}

	clock.switchToFocusLocked()
	clock.markChangedLocked()
}

func (clock *Clock) rewindPhaseLocked() {
	state := clock.state
	if state.Profile == model.ProfileWorklog || state.Finished {
		return
	}

	if state.MicrobreakActive {
		// Cancel the overlay and stay in the underlying phase. This does
		// not count as going back a phase.
		state.MicrobreakActive = false
		state.MicrobreakRemaining = 0
		state.AfterMicro = model.AfterNone
		clock.markChangedLocked()
		clock.rollSegmentLocked()
		return
	}

	total := state.PhaseTotalSec(state.Mode)
	elapsed := total - state.Remaining
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > rewindThresholdSec {
		state.Remaining = total
		clock.markChangedLocked()
		return
	}

	switch state.Mode {
	case model.ModeFocus:
		if state.CompletedUnits == 0 {
			// No previous break exists, stay at the start of focus.
			state.Remaining = total
			clock.markChangedLocked()
			return
		}
		state.CompletedUnits--
		clock.switchToBreakLocked()
		clock.markChangedLocked()
	case model.ModeBreak:
		clock.switchToFocusLocked()
		clock.markChangedLocked()
	case model.ModeLunch:
		clock.restorePreLunchLocked()
	}
}

func (clock *Clock) startLunchBreakLocked() {
	state := clock.state
	if state.Profile == model.ProfileWorklog || state.Finished || state.Mode == model.ModeLunch {
		return
	}

	state.PreLunchMode = state.Mode
	state.PreLunchRemaining = state.Remaining
	state.PreLunchWasRunning = state.Running

	state.MicrobreakActive = false
	state.MicrobreakRemaining = 0
	state.AfterMicro = model.AfterNone

	state.Mode = model.ModeLunch
	state.Remaining = model.LunchSeconds
	state.Running = true
	clock.markChangedLocked()
	clock.rollSegmentLocked()
}

func (clock *Clock) resetAllLocked() {
	state := clock.state
	if state.Profile == model.ProfileWorklog {
		state.Running = false
		state.WorkElapsedSec = 0
		clock.clearLogLocked()
		clock.markChangedLocked()
		return
	}

	state.Running = false
	state.Mode = model.ModeFocus
	state.Remaining = state.FocusMin * 60
	state.CompletedUnits = 0
	state.Finished = false

	state.MicrobreakActive = false
	state.MicrobreakRemaining = 0
	state.AfterMicro = model.AfterNone
	state.RemindedThisFocus = map[int]struct{}{}

	state.TotalOpenSec = 0
	state.PausedSec = 0
	state.MicrobreakSec = 0
	state.FocusWorkSec = 0

	clock.clearLogLocked()
	clock.markChangedLocked()
}

func (clock *Clock) applySettingsLocked(focusMin, breakMin, microSec, goal, startUnit int, screenBreaks bool) {
	state := clock.state
	if goal < 1 {
		goal = 1
	}
	state.FocusMin = focusMin
	state.BreakMin = breakMin
	state.MicroSec = microSec
	state.SessionGoal = goal
	state.ScreenBreaks = screenBreaks

	if startUnit < 1 {
		startUnit = 1
	}
	if startUnit > state.SessionGoal {
		startUnit = state.SessionGoal
	}
	state.CompletedUnits = startUnit - 1
	state.Finished = false

	if !state.Running && !state.MicrobreakActive {
		if state.Mode == model.ModeFocus {
			state.Remaining = state.FocusMin * 60
		} else {
			state.Remaining = state.BreakMin * 60
		}
	}
	clock.markChangedLocked()
}

func (clock *Clock) switchProfileLocked(profile model.Profile) {
	state := clock.state
	if state.Profile == profile {
		return
	}

	clock.closeSegmentLocked(clock.now())
	state.Profile = profile

	if profile == model.ProfileWorklog {
		state.Finished = false
		state.MicrobreakActive = false
		state.MicrobreakRemaining = 0
		state.AfterMicro = model.AfterNone
		state.WorkElapsedSec = 0
		state.Running = false
	} else {
		state.Mode = model.ModeFocus
		state.Remaining = state.FocusMin * 60
		state.Running = false
	}
	// Reopen at the same instant under the new profile's kind so the log
	// stays continuous across the switch.
	clock.rollSegmentLocked()
	clock.markChangedLocked()
}

// ---- transitions, under lock ----

func (clock *Clock) switchToBreakLocked() {
	state := clock.state
	state.Mode = model.ModeBreak
	state.Remaining = state.BreakMin * 60
	clock.beepLocked()
	clock.rollSegmentLocked()
}

func (clock *Clock) switchToFocusLocked() {
	state := clock.state
	state.Mode = model.ModeFocus
	state.Remaining = state.FocusMin * 60
	state.RemindedThisFocus = map[int]struct{}{}
	clock.beepLocked()
	clock.rollSegmentLocked()
}

func (clock *Clock) markFinishedLocked() {
	state := clock.state
	if state.Profile == model.ProfileWorklog {
		return
	}
	state.Finished = true
	state.Running = false
	state.MicrobreakActive = false
	state.MicrobreakRemaining = 0
	state.AfterMicro = model.AfterNone
}

func (clock *Clock) finishFocusUnitLocked(useMicrobreakBeforeBreak bool) {
	state := clock.state
	state.CompletedUnits++

	if state.CompletedUnits >= state.SessionGoal {
		clock.markFinishedLocked()
		clock.markChangedLocked()
		return
	}

	if useMicrobreakBeforeBreak {
		clock.startMicrobreakLocked(model.AfterGoBreak)
		return
	}
	clock.switchToBreakLocked()
	clock.markChangedLocked()
}

func (clock *Clock) startMicrobreakLocked(after model.Continuation) {
	state := clock.state
	if state.MicroSec <= 0 || !state.ScreenBreaks {
		// No overlay configured: run the continuation right away.
		state.AfterMicro = after
		clock.endMicrobreakLocked()
		return
	}

	state.MicrobreakActive = true
	state.MicrobreakRemaining = state.MicroSec
	state.AfterMicro = after
	clock.beepLocked()
	clock.markChangedLocked()
	clock.rollSegmentLocked()
}

func (clock *Clock) endMicrobreakLocked() {
	state := clock.state
	clock.beepLocked()
	state.MicrobreakActive = false
	state.MicrobreakRemaining = 0

	switch state.AfterMicro {
	case model.AfterResumeFocus:
		// Continue the frozen focus countdown.
	case model.AfterGoBreak:
		clock.switchToBreakLocked()
	case model.AfterGoFocus:
		clock.switchToFocusLocked()
	}

	state.AfterMicro = model.AfterNone
	clock.markChangedLocked()
	clock.rollSegmentLocked()
}

func (clock *Clock) restorePreLunchLocked() {
	state := clock.state
	state.Mode = state.PreLunchMode
	state.Remaining = state.PreLunchRemaining
	state.Running = state.PreLunchWasRunning
	clock.markChangedLocked()
	clock.rollSegmentLocked()
}

// ---- sink plumbing ----

func (clock *Clock) beepLocked() {
	clock.pendingNotify = true
}

func (clock *Clock) markChangedLocked() {
	clock.pendingChange = true
}

// flush delivers pending callbacks outside the lock so a sink may call back
// into the clock.
func (clock *Clock) flush() {
	clock.mu.Lock()
	notify := clock.pendingNotify
	changed := clock.pendingChange
	clock.pendingNotify = false
	clock.pendingChange = false
	sink := clock.sink
	clock.mu.Unlock()

	if sink == nil {
		return
	}
	if notify {
		sink.Notify()
	}
	if changed {
		sink.Changed()
	}
}
