// Package preferences holds the settings dialog.
package preferences

import (
	"focusclock/internal/core/clock"
	"focusclock/internal/core/model"
)

// Settings mirrors the editable clock configuration.
type Settings struct {
	FocusMin     int
	BreakMin     int
	MicroSec     int
	SessionGoal  int
	StartUnit    int
	ScreenBreaks bool
}

// DefaultSettings returns the stock study configuration.
func DefaultSettings() Settings {
	return Settings{
		FocusMin:     model.DefaultFocusMin,
		BreakMin:     model.DefaultBreakMin,
		MicroSec:     model.DefaultMicroSec,
		SessionGoal:  model.DefaultSessionGoal,
		StartUnit:    1,
		ScreenBreaks: true,
	}
}

// FromStatus seeds the dialog with the clock's current configuration.
func FromStatus(status clock.Status) Settings {
	return Settings{
		FocusMin:     status.FocusMin,
		BreakMin:     status.BreakMin,
		MicroSec:     status.MicroSec,
		SessionGoal:  status.SessionGoal,
		StartUnit:    status.CurrentUnit,
		ScreenBreaks: status.ScreenBreaks,
	}
}
