package clock

import "focusclock/internal/core/model"

// Sink receives clock callbacks. Implementations must not block; both
// methods may fire several times per tick and are safe to handle
// redundantly.
type Sink interface {
	// Notify fires when an audible or visual cue is due: phase changes,
	// microbreak start and end.
	Notify()
	// Changed fires after any mutation a renderer must reflect.
	Changed()
}

// Status is a point-in-time view of the clock for renderers.
type Status struct {
	Profile model.Profile
	Mode    model.Mode

	FocusMin     int
	BreakMin     int
	MicroSec     int
	SessionGoal  int
	ScreenBreaks bool

	Remaining      int
	CompletedUnits int
	CurrentUnit    int
	Finished       bool
	Running        bool

	MicrobreakActive    bool
	MicrobreakRemaining int

	WorkElapsedSec int
	TotalOpenSec   int
	PausedSec      int
	MicrobreakSec  int
	FocusWorkSec   int

	Progress SessionProgress
}

// SessionProgress describes how much of the planned focus time is done.
type SessionProgress struct {
	DoneSec  int
	LeftSec  int
	TotalSec int
	Percent  int
}
