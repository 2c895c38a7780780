package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"focusclock/internal/core/clock"
	"focusclock/internal/core/model"
	"focusclock/internal/export"
	"focusclock/internal/platform"
	"focusclock/internal/storage"
	"focusclock/internal/ui/clockwin"
	"focusclock/internal/ui/preferences"
	"focusclock/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "FocusClock"

func main() {
	lock, err := platform.TryLock(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer lock.Release()

	fyneApp := app.NewWithID("com.focusclock.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	state, err := storage.LoadState(appName)
	if err != nil {
		log.Printf("load state: %v", err)
	}

	engine := clock.New(state, clock.Config{TickInterval: time.Second})

	saveState := func() {
		if err := storage.SaveState(appName, engine.State()); err != nil {
			log.Printf("save state: %v", err)
		}
	}

	prefsWindow := preferences.New(fyneApp, preferences.FromStatus(engine.Status()), func(updated preferences.Settings) {
		engine.ApplySettings(
			updated.FocusMin, updated.BreakMin, updated.MicroSec,
			updated.SessionGoal, updated.StartUnit, updated.ScreenBreaks,
		)
		saveState()
	})

	exportLog := func() {
		if err := runExport(engine); err != nil {
			if errors.Is(err, export.ErrNoWorkEntries) {
				fyneApp.SendNotification(fyne.NewNotification(appName, "Nothing to export yet."))
				return
			}
			log.Printf("export: %v", err)
			fyneApp.SendNotification(fyne.NewNotification(appName, "CSV export failed."))
			return
		}
		saveState()
		fyneApp.SendNotification(fyne.NewNotification(appName, "CSV export completed."))
	}

	mainWindow := clockwin.New(fyneApp, clockwin.Actions{
		OnTogglePlayPause: engine.TogglePlayPause,
		OnRewind:          engine.RewindPhase,
		OnSkip:            engine.SkipPhase,
		OnReset:           engine.ResetAll,
		OnLunch:           engine.StartLunchBreak,
		OnSettings: func() {
			prefsWindow.UpdateSettings(preferences.FromStatus(engine.Status()))
			prefsWindow.Show()
		},
		OnExport: exportLog,
	})

	autostart, err := platform.NewAutostart(appName)
	if err != nil {
		log.Printf("autostart: %v", err)
	}

	var trayManager *tray.Manager
	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnOpen:       mainWindow.Show,
		OnTogglePlay: engine.TogglePlayPause,
		OnLunch:      engine.StartLunchBreak,
		OnExport:     exportLog,
		OnToggleProfile: func() {
			engine.ToggleProfile()
			saveState()
		},
		OnToggleAutostart: func() {
			if autostart == nil {
				return
			}
			if autostart.Enabled() {
				if err := autostart.Disable(); err != nil {
					log.Printf("autostart: %v", err)
				}
			} else {
				if err := autostart.Enable(); err != nil {
					log.Printf("autostart: %v", err)
				}
			}
			trayManager.SetAutostart(autostart.Enabled())
		},
		OnQuit: func() {
			engine.Close()
			saveState()
			fyneApp.Quit()
		},
	})
	if autostart != nil {
		trayManager.SetAutostart(autostart.Enabled())
	}

	engine.SetSink(&uiSink{
		app:    fyneApp,
		window: mainWindow,
		tray:   trayManager,
		engine: engine,
	})

	engine.Run()
	defer engine.Close()

	mainWindow.Refresh(engine.Status())
	mainWindow.Show()
	fyneApp.Run()

	saveState()
}

// runExport writes the session log. The worklog profile appends only new
// rows to the rolling worklog file; the study profile writes a fresh
// dated file.
func runExport(engine *clock.Clock) error {
	status := engine.Status()

	if status.Profile == model.ProfileWorklog {
		path, err := export.DefaultWorklogPath()
		if err != nil {
			return err
		}
		entries := engine.Unflushed()
		if err := export.AppendWorklog(path, entries); err != nil {
			return err
		}
		engine.MarkFlushed()
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home dir: %w", err)
	}
	fileName := fmt.Sprintf("session_%s.csv", time.Now().Format("2006-01-02"))
	path := filepath.Join(home, "Documents", appName, fileName)
	return export.WriteFile(path, engine.SnapshotLog())
}

// uiSink forwards clock callbacks to the Fyne widgets. Changed may fire
// from the tick goroutine, so all widget work goes through fyne.Do.
type uiSink struct {
	app    fyne.App
	window *clockwin.Window
	tray   *tray.Manager
	engine *clock.Clock
}

func (sink *uiSink) Notify() {
	sink.app.SendNotification(fyne.NewNotification(appName, "Time for the next phase."))
}

func (sink *uiSink) Changed() {
	status := sink.engine.Status()
	fyne.Do(func() {
		sink.window.Refresh(status)
		sink.tray.SetStatus(statusLine(status))
		sink.tray.SetRunning(status.Running)
		sink.tray.SetProfile(status.Profile == model.ProfileWorklog)
	})
}

func statusLine(status clock.Status) string {
	if status.Profile == model.ProfileWorklog {
		if status.Running {
			return "WORK " + formatMMSS(status.WorkElapsedSec)
		}
		return "PAUSED " + formatMMSS(status.WorkElapsedSec)
	}

	if status.Finished {
		return "Finished"
	}
	if status.MicrobreakActive {
		return "SCREEN BREAK " + formatMMSS(status.MicrobreakRemaining)
	}
	if !status.Running {
		return "PAUSED " + formatMMSS(status.Remaining)
	}
	switch status.Mode {
	case model.ModeBreak:
		return "PAUSE " + formatMMSS(status.Remaining)
	case model.ModeLunch:
		return "LUNCH " + formatMMSS(status.Remaining)
	default:
		return "FOCUS " + formatMMSS(status.Remaining)
	}
}

func formatMMSS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
