package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusclock/internal/core/model"
)

func kinds(entries []model.LogEntry) []model.Kind {
	result := make([]model.Kind, len(entries))
	for i, entry := range entries {
		result[i] = entry.Kind
	}
	return result
}

func assertGapFree(t *testing.T, entries []model.LogEntry) {
	t.Helper()
	for i := 1; i < len(entries); i++ {
		assert.Equal(t, entries[i-1].End, entries[i].Start,
			"segment %d must start where segment %d ended", i, i-1)
	}
}

func TestLogRecordsPhaseSequence(t *testing.T) {
	state := model.NewState()
	state.FocusMin = 1
	state.BreakMin = 1
	state.MicroSec = 5
	state.Remaining = 60
	engine, fake, _ := newTestClock(state)

	engine.Start()
	// Focus, screen break, break, then pause right at the next focus. The
	// zero-length focus segment at the pause instant is not logged.
	tick(engine, fake, 60+5+60)
	engine.Pause()
	tick(engine, fake, 10)

	entries := engine.SnapshotLog()
	assert.Equal(t, []model.Kind{
		model.KindFocus,
		model.KindScreenBreak,
		model.KindBreak,
		model.KindPaused,
	}, kinds(entries))
	assertGapFree(t, entries)

	assert.Equal(t, 60, entries[0].DurationSec())
	assert.Equal(t, 5, entries[1].DurationSec())
	assert.Equal(t, 60, entries[2].DurationSec())
}

func TestWorklogAlternatesWorkAndPause(t *testing.T) {
	engine, fake, _ := newTestClock(nil)
	engine.SwitchProfile(model.ProfileWorklog)

	engine.Start()
	tick(engine, fake, 30)
	engine.Pause()
	tick(engine, fake, 10)
	engine.Start()
	tick(engine, fake, 20)

	entries := engine.SnapshotLog()
	assert.Equal(t, []model.Kind{
		model.KindWork,
		model.KindPause,
		model.KindWork,
	}, kinds(entries))
	assertGapFree(t, entries)
	assert.Equal(t, 30, entries[0].DurationSec())
	assert.Equal(t, 10, entries[1].DurationSec())
	assert.Equal(t, 20, entries[2].DurationSec())
}

func TestRollKeepsSegmentOpenWhileKindUnchanged(t *testing.T) {
	engine, fake, _ := newTestClock(nil)

	engine.Start()
	tick(engine, fake, 30)

	// Nothing closed yet: one focus segment is still open.
	assert.Empty(t, engine.State().Log)

	entries := engine.SnapshotLog()
	require.Len(t, entries, 1)
	assert.Equal(t, model.KindFocus, entries[0].Kind)
	assert.Equal(t, 30, entries[0].DurationSec())
}

func TestMicrobreakOutranksRunningPhase(t *testing.T) {
	state := model.NewState()
	state.RemindAt = map[int]struct{}{state.FocusMin*60 - 3: {}, 0: {}}
	engine, fake, _ := newTestClock(state)

	engine.Start()
	tick(engine, fake, 4)

	entries := engine.SnapshotLog()
	require.Len(t, entries, 2)
	assert.Equal(t, model.KindFocus, entries[0].Kind)
	assert.Equal(t, model.KindScreenBreak, entries[1].Kind)
}

func TestUnflushedAndMarkFlushed(t *testing.T) {
	engine, fake, _ := newTestClock(nil)
	engine.SwitchProfile(model.ProfileWorklog)

	engine.Start()
	tick(engine, fake, 30)

	first := engine.Unflushed()
	require.Len(t, first, 1)
	assert.Equal(t, model.KindWork, first[0].Kind)
	assert.Equal(t, 30, first[0].DurationSec())

	// A failed export may retry: without MarkFlushed the rows come again.
	again := engine.Unflushed()
	assert.Len(t, again, 1)

	engine.MarkFlushed()

	tick(engine, fake, 15)
	second := engine.Unflushed()
	require.Len(t, second, 1)
	assert.Equal(t, 15, second[0].DurationSec())
	assert.Equal(t, first[0].End, second[0].Start, "flush boundary stays gap-free")
}

func TestResetClearsFlushCursor(t *testing.T) {
	engine, fake, _ := newTestClock(nil)
	engine.SwitchProfile(model.ProfileWorklog)

	engine.Start()
	tick(engine, fake, 10)
	engine.Unflushed()
	engine.MarkFlushed()

	engine.ResetAll()

	engine.Start()
	tick(engine, fake, 5)
	entries := engine.Unflushed()
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].DurationSec())
}

func TestProfileSwitchClosesSegment(t *testing.T) {
	engine, fake, _ := newTestClock(nil)

	engine.Start()
	tick(engine, fake, 20)
	engine.SwitchProfile(model.ProfileWorklog)

	entries := engine.State().Log
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, model.KindFocus, last.Kind)
	assert.Equal(t, 20, last.DurationSec())
}
