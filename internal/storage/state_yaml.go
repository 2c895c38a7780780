// Package storage persists the clock state as a flat YAML snapshot in the
// user's config directory.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"focusclock/internal/core/model"
)

const stateFileName = "state.yaml"

type yamlState struct {
	FocusMin            int    `yaml:"focus_min"`
	BreakMin            int    `yaml:"break_min"`
	MicroSec            int    `yaml:"micro_sec"`
	SessionGoal         int    `yaml:"session_goal"`
	ScreenBreaksEnabled *bool  `yaml:"screen_breaks_enabled"`
	Mode                string `yaml:"mode"`
	Remaining           int    `yaml:"remaining"`
	CompletedUnits      int    `yaml:"completed_units"`
	MicrobreakActive    bool   `yaml:"microbreak_active"`
	MicrobreakRemaining int    `yaml:"microbreak_remaining"`
	AfterMicro          string `yaml:"after_micro"`
	Finished            bool   `yaml:"finished"`
	TotalOpenSec        int    `yaml:"total_open_sec"`
	PausedSec           int    `yaml:"paused_sec"`
	MicrobreakSec       int    `yaml:"microbreak_sec"`
	FocusWorkSec        int    `yaml:"focus_work_sec"`
}

// LoadState reads the persisted snapshot. A missing file yields the default
// state without an error; a malformed file yields the default state plus an
// error the caller may log. The clock always loads paused.
func LoadState(appName string) (*model.ClockState, error) {
	statePath, err := resolveStatePath(appName)
	if err != nil {
		return model.NewState(), err
	}
	return loadStateFile(statePath)
}

// SaveState writes the snapshot for the next start.
func SaveState(appName string, state *model.ClockState) error {
	statePath, err := resolveStatePath(appName)
	if err != nil {
		return err
	}
	return saveStateFile(statePath, state)
}

func loadStateFile(statePath string) (*model.ClockState, error) {
	state := model.NewState()

	rawData, err := os.ReadFile(statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return state, fmt.Errorf("read state file: %w", err)
	}

	var fileData yamlState
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return state, fmt.Errorf("parse state yaml: %w", err)
	}

	applyYamlState(state, fileData)
	return state, nil
}

func saveStateFile(statePath string, state *model.ClockState) error {
	if err := os.MkdirAll(filepath.Dir(statePath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	screenBreaks := state.ScreenBreaks
	fileData := yamlState{
		FocusMin:            state.FocusMin,
		BreakMin:            state.BreakMin,
		MicroSec:            state.MicroSec,
		SessionGoal:         state.SessionGoal,
		ScreenBreaksEnabled: &screenBreaks,
		Mode:                string(state.Mode),
		Remaining:           state.Remaining,
		CompletedUnits:      state.CompletedUnits,
		MicrobreakActive:    state.MicrobreakActive,
		MicrobreakRemaining: state.MicrobreakRemaining,
		AfterMicro:          string(state.AfterMicro),
		Finished:            state.Finished,
		TotalOpenSec:        state.TotalOpenSec,
		PausedSec:           state.PausedSec,
		MicrobreakSec:       state.MicrobreakSec,
		FocusWorkSec:        state.FocusWorkSec,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal state yaml: %w", err)
	}

	if err := os.WriteFile(statePath, serialized, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

func resolveStatePath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, stateFileName), nil
}

// applyYamlState overrides defaults with whatever the snapshot carries.
// Absent or out-of-range values keep their defaults.
func applyYamlState(state *model.ClockState, fileData yamlState) {
	if fileData.FocusMin > 0 {
		state.FocusMin = fileData.FocusMin
	}
	if fileData.BreakMin > 0 {
		state.BreakMin = fileData.BreakMin
	}
	if fileData.MicroSec > 0 {
		state.MicroSec = fileData.MicroSec
	}
	if fileData.SessionGoal > 0 {
		state.SessionGoal = fileData.SessionGoal
	}
	if fileData.ScreenBreaksEnabled != nil {
		state.ScreenBreaks = *fileData.ScreenBreaksEnabled
	}

	switch mode := model.Mode(fileData.Mode); mode {
	case model.ModeFocus, model.ModeBreak, model.ModeLunch:
		state.Mode = mode
	}

	if fileData.Remaining > 0 {
		state.Remaining = fileData.Remaining
	} else {
		state.Remaining = state.PhaseTotalSec(state.Mode)
	}

	if fileData.CompletedUnits > 0 {
		state.CompletedUnits = fileData.CompletedUnits
	}
	if state.CompletedUnits > state.SessionGoal {
		state.CompletedUnits = state.SessionGoal
	}

	state.MicrobreakActive = fileData.MicrobreakActive
	if fileData.MicrobreakRemaining > 0 {
		state.MicrobreakRemaining = fileData.MicrobreakRemaining
	}
	switch after := model.Continuation(fileData.AfterMicro); after {
	case model.AfterResumeFocus, model.AfterGoBreak, model.AfterGoFocus:
		state.AfterMicro = after
	}
	// The continuation tag is only meaningful during an active microbreak.
	if !state.MicrobreakActive {
		state.MicrobreakRemaining = 0
		state.AfterMicro = model.AfterNone
	}

	state.Finished = fileData.Finished
	if state.Finished {
		state.CompletedUnits = state.SessionGoal
	}

	if fileData.TotalOpenSec > 0 {
		state.TotalOpenSec = fileData.TotalOpenSec
	}
	if fileData.PausedSec > 0 {
		state.PausedSec = fileData.PausedSec
	}
	if fileData.MicrobreakSec > 0 {
		state.MicrobreakSec = fileData.MicrobreakSec
	}
	if fileData.FocusWorkSec > 0 {
		state.FocusWorkSec = fileData.FocusWorkSec
	}

	state.Running = false
}
