package clock

import "focusclock/internal/core/model"

// Tick advances the clock by one second. The driver calls it every second;
// it is a no-op while the session is finished or, in the study profile,
// while not running.
func (clock *Clock) Tick() {
	clock.mu.Lock()
	clock.tickLocked()
	clock.mu.Unlock()
	clock.flush()
}

func (clock *Clock) tickLocked() {
	state := clock.state
	if state.Finished {
		return
	}
	if !state.Running && state.Profile == model.ProfileStudy {
		return
	}

	// Catch any kind drift from changes made since the last tick.
	clock.rollSegmentLocked()

	if state.Profile == model.ProfileWorklog {
		if state.Running {
			state.TotalOpenSec++
			state.FocusWorkSec++
			state.WorkElapsedSec++
			clock.markChangedLocked()
		}
		return
	}

	state.TotalOpenSec++

	if state.MicrobreakActive {
		state.MicrobreakSec++
		state.MicrobreakRemaining--
		if state.MicrobreakRemaining <= 0 {
			clock.endMicrobreakLocked()
			return
		}
		clock.markChangedLocked()
		return
	}

	if state.Mode == model.ModeFocus {
		state.FocusWorkSec++
	}

	state.Remaining--

	if state.Mode == model.ModeFocus {
		if _, due := state.RemindAt[state.Remaining]; due {
			if _, seen := state.RemindedThisFocus[state.Remaining]; !seen {
				state.RemindedThisFocus[state.Remaining] = struct{}{}

				if state.Remaining == 0 {
					clock.finishFocusUnitLocked(true)
					return
				}
				clock.startMicrobreakLocked(model.AfterResumeFocus)
				clock.markChangedLocked()
				return
			}
		}
	}

	// Phase end without a matching reminder threshold. With the default
	// reminder set this is unreachable for focus (0 is a threshold), but a
	// custom set may drop the zero entry.
	if state.Remaining <= 0 {
		switch state.Mode {
		case model.ModeFocus:
			clock.finishFocusUnitLocked(true)
		case model.ModeLunch:
			clock.restorePreLunchLocked()
		default:
			clock.switchToFocusLocked()
			clock.markChangedLocked()
		}
		return
	}

	clock.markChangedLocked()
}

// PauseTick counts idle wall-clock time. It is driven every second
// regardless of the running flag and measures the seconds in which the user
// neither ran the clock nor sat in a microbreak.
func (clock *Clock) PauseTick() {
	clock.mu.Lock()
	state := clock.state
	if !state.Running && !state.MicrobreakActive && !state.Finished {
		state.PausedSec++
	}
	clock.mu.Unlock()
}
