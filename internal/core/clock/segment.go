package clock

import (
	"time"

	"focusclock/internal/core/model"
)

// currentKindLocked maps the live state to the label used for logging.
// The microbreak overlay wins over everything else, then the paused state,
// then the phase itself.
func (clock *Clock) currentKindLocked() model.Kind {
	state := clock.state

	if state.Profile == model.ProfileWorklog {
		if state.Running {
			return model.KindWork
		}
		return model.KindPause
	}

	if state.MicrobreakActive {
		return model.KindScreenBreak
	}
	if !state.Running {
		return model.KindPaused
	}

	switch state.Mode {
	case model.ModeBreak:
		return model.KindBreak
	case model.ModeLunch:
		return model.KindLunch
	default:
		return model.KindFocus
	}
}

func (clock *Clock) openSegmentLocked(kind model.Kind, start time.Time) {
	clock.state.SegmentKind = kind
	clock.state.SegmentStart = start
}

// closeSegmentLocked appends the open segment to the log. Safe no-op when
// no segment is open; zero-length segments are dropped instead of logged.
func (clock *Clock) closeSegmentLocked(end time.Time) {
	state := clock.state
	if state.SegmentStart.IsZero() || state.SegmentKind == "" {
		return
	}

	if end.After(state.SegmentStart) {
		state.Log = append(state.Log, model.LogEntry{
			Kind:  state.SegmentKind,
			Start: state.SegmentStart,
			End:   end,
		})
	}
	state.SegmentKind = ""
	state.SegmentStart = time.Time{}
}

// rollSegmentLocked opens a segment if none is open, and rotates it when
// the current kind differs from the open one. Closing and reopening happen
// at the same instant, so the log stays gap-free.
func (clock *Clock) rollSegmentLocked() {
	now := clock.now()
	kind := clock.currentKindLocked()
	state := clock.state

	if state.SegmentStart.IsZero() {
		clock.openSegmentLocked(kind, now)
		return
	}
	if kind != state.SegmentKind {
		clock.closeSegmentLocked(now)
		clock.openSegmentLocked(kind, now)
	}
}

func (clock *Clock) clearLogLocked() {
	state := clock.state
	state.Log = nil
	state.SegmentKind = ""
	state.SegmentStart = time.Time{}
	state.FlushedLogIndex = 0
}

// SnapshotLog closes the open segment at the current instant and returns a
// copy of all closed entries, oldest first. Tracking continues seamlessly:
// a fresh segment opens at the same instant.
func (clock *Clock) SnapshotLog() []model.LogEntry {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	clock.closeSegmentLocked(clock.now())
	clock.rollSegmentLocked()
	entries := make([]model.LogEntry, len(clock.state.Log))
	copy(entries, clock.state.Log)
	return entries
}

// Unflushed closes the log up to the current instant and returns the
// entries not yet exported. Call MarkFlushed once they are safely written
// so a failed export can be retried without losing rows.
func (clock *Clock) Unflushed() []model.LogEntry {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	clock.closeSegmentLocked(clock.now())
	clock.rollSegmentLocked()

	state := clock.state
	if state.FlushedLogIndex > len(state.Log) {
		state.FlushedLogIndex = len(state.Log)
	}
	entries := make([]model.LogEntry, len(state.Log)-state.FlushedLogIndex)
	copy(entries, state.Log[state.FlushedLogIndex:])
	return entries
}

// MarkFlushed records that every closed entry has been exported.
func (clock *Clock) MarkFlushed() {
	clock.mu.Lock()
	clock.state.FlushedLogIndex = len(clock.state.Log)
	clock.mu.Unlock()
}
