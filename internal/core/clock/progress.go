package clock

import (
	"math"

	"focusclock/internal/core/model"
)

// currentUnitLocked returns the 1-based unit the user is working on,
// capped at the session goal.
func (clock *Clock) currentUnitLocked() int {
	state := clock.state
	if state.Finished {
		return state.SessionGoal
	}
	unit := state.CompletedUnits + 1
	if unit > state.SessionGoal {
		unit = state.SessionGoal
	}
	return unit
}

// sessionProgressLocked derives how much of the planned focus time is done.
// The percentage is guarded against a zero-length plan.
func (clock *Clock) sessionProgressLocked() SessionProgress {
	state := clock.state
	block := state.FocusMin * 60
	total := state.SessionGoal * block

	done := state.CompletedUnits * block
	if state.Mode == model.ModeFocus && !state.Finished {
		done += block - state.Remaining
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}

	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(done) / float64(total) * 100))
	}

	return SessionProgress{
		DoneSec:  done,
		LeftSec:  total - done,
		TotalSec: total,
		Percent:  percent,
	}
}
