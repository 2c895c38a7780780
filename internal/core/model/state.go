package model

import "time"

// Default configuration applied when no persisted snapshot exists.
const (
	DefaultFocusMin    = 50
	DefaultBreakMin    = 10
	DefaultMicroSec    = 60
	DefaultSessionGoal = 7
)

// LunchSeconds is the fixed length of a lunch interruption.
const LunchSeconds = 60 * 60

// Profile selects which rule set the tick handler applies.
type Profile string

const (
	ProfileStudy   Profile = "study"
	ProfileWorklog Profile = "worklog"
)

// Mode is the active phase while in the study profile.
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
	ModeLunch Mode = "lunch"
)

// Continuation tells the clock what to do once a microbreak ends.
type Continuation string

const (
	AfterNone        Continuation = ""
	AfterResumeFocus Continuation = "resume_focus"
	AfterGoBreak     Continuation = "go_break"
	AfterGoFocus     Continuation = "go_focus"
)

// Kind labels a logged time segment.
type Kind string

const (
	KindFocus       Kind = "FOCUS"
	KindBreak       Kind = "BREAK"
	KindLunch       Kind = "LUNCH"
	KindScreenBreak Kind = "SCREEN_BREAK"
	KindPaused      Kind = "PAUSED"
	KindWork        Kind = "WORK"
	KindPause       Kind = "PAUSE"
)

// LogEntry is a closed interval of the segment log. Entries are immutable
// once appended; exporters read them but never change them.
type LogEntry struct {
	Kind  Kind
	Start time.Time
	End   time.Time
}

// DurationSec returns the entry length in whole seconds, never negative.
func (entry LogEntry) DurationSec() int {
	seconds := int(entry.End.Sub(entry.Start).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

// DefaultRemindAt returns the focus reminder thresholds, keyed by the
// remaining seconds at which each one fires.
func DefaultRemindAt() map[int]struct{} {
	return map[int]struct{}{
		40 * 60: {},
		20 * 60: {},
		0:       {},
	}
}

// ClockState holds every durable and runtime value of the clock. It carries
// no behavior: the clock engine is its single owner and mutator.
type ClockState struct {
	// Configuration, set only through the settings flow.
	FocusMin     int
	BreakMin     int
	MicroSec     int
	SessionGoal  int
	ScreenBreaks bool

	Profile Profile

	// Phase.
	Mode           Mode
	Remaining      int
	CompletedUnits int
	Finished       bool
	Running        bool

	// Microbreak overlay. AfterMicro is meaningful only while the overlay
	// is active.
	MicrobreakActive    bool
	MicrobreakRemaining int
	AfterMicro          Continuation

	// Snapshot taken when a lunch interruption starts. One level only.
	PreLunchMode       Mode
	PreLunchRemaining  int
	PreLunchWasRunning bool

	// Reminder bookkeeping. RemindedThisFocus is cleared whenever a focus
	// phase starts and is always a subset of RemindAt.
	RemindAt          map[int]struct{}
	RemindedThisFocus map[int]struct{}

	// Worklog stopwatch.
	WorkElapsedSec int

	// Cumulative statistics, each advanced by exactly one tick handler.
	TotalOpenSec  int
	PausedSec     int
	MicrobreakSec int
	FocusWorkSec  int

	// Segment log plus the open-segment cursor. A zero SegmentStart means
	// no segment is open. FlushedLogIndex marks how much of the log has
	// already been exported.
	Log             []LogEntry
	SegmentKind     Kind
	SegmentStart    time.Time
	FlushedLogIndex int
}

// NewState returns a fresh state with the default configuration, in focus
// mode at full duration, paused.
func NewState() *ClockState {
	return &ClockState{
		FocusMin:          DefaultFocusMin,
		BreakMin:          DefaultBreakMin,
		MicroSec:          DefaultMicroSec,
		SessionGoal:       DefaultSessionGoal,
		ScreenBreaks:      true,
		Profile:           ProfileStudy,
		Mode:              ModeFocus,
		Remaining:         DefaultFocusMin * 60,
		PreLunchMode:      ModeFocus,
		RemindAt:          DefaultRemindAt(),
		RemindedThisFocus: map[int]struct{}{},
	}
}

// PhaseTotalSec returns the nominal length of the given mode in seconds.
func (state *ClockState) PhaseTotalSec(mode Mode) int {
	switch mode {
	case ModeBreak:
		return state.BreakMin * 60
	case ModeLunch:
		return LunchSeconds
	default:
		return state.FocusMin * 60
	}
}

// Clone returns a deep copy of the state, including the log and both
// reminder sets.
func (state *ClockState) Clone() *ClockState {
	copied := *state
	copied.Log = append([]LogEntry(nil), state.Log...)
	copied.RemindAt = copySet(state.RemindAt)
	copied.RemindedThisFocus = copySet(state.RemindedThisFocus)
	return &copied
}

func copySet(values map[int]struct{}) map[int]struct{} {
	copied := make(map[int]struct{}, len(values))
	for value := range values {
		copied[value] = struct{}{}
	}
	return copied
}
