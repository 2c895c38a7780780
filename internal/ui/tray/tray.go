// Package tray keeps the system tray menu in sync with the clock.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnOpen            func()
	OnTogglePlay      func()
	OnLunch           func()
	OnExport          func()
	OnToggleProfile   func()
	OnToggleAutostart func()
	OnQuit            func()
}

// Manager handles system tray state.
type Manager struct {
	app       desktop.App
	callbacks Callbacks

	statusItem    *fyne.MenuItem
	playItem      *fyne.MenuItem
	lunchItem     *fyne.MenuItem
	profileItem   *fyne.MenuItem
	autostartItem *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.playItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnTogglePlay != nil {
			manager.callbacks.OnTogglePlay()
		}
	})

	manager.lunchItem = fyne.NewMenuItem("Lunch break", func() {
		if manager.callbacks.OnLunch != nil {
			manager.callbacks.OnLunch()
		}
	})

	manager.profileItem = fyne.NewMenuItem("Switch to worklog", func() {
		if manager.callbacks.OnToggleProfile != nil {
			manager.callbacks.OnToggleProfile()
		}
	})

	manager.autostartItem = fyne.NewMenuItem("Start at login", func() {
		if manager.callbacks.OnToggleAutostart != nil {
			manager.callbacks.OnToggleAutostart()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line, e.g. "FOCUS 41:30".
func (manager *Manager) SetStatus(status string) {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetRunning flips the play item label.
func (manager *Manager) SetRunning(running bool) {
	if running {
		manager.playItem.Label = "Pause"
	} else {
		manager.playItem.Label = "Start"
	}
	manager.refreshMenu()
}

// SetProfile updates the profile switch label and hides the lunch entry in
// the worklog profile.
func (manager *Manager) SetProfile(worklog bool) {
	if worklog {
		manager.profileItem.Label = "Switch to study"
	} else {
		manager.profileItem.Label = "Switch to worklog"
	}
	manager.lunchItem.Disabled = worklog
	manager.refreshMenu()
}

// SetAutostart checks or unchecks the login item.
func (manager *Manager) SetAutostart(enabled bool) {
	manager.autostartItem.Checked = enabled
	manager.refreshMenu()
}

// The tray menu is rebuilt on every change; Fyne does not repaint label
// edits on existing menus reliably across platforms.
func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("FocusClock",
		manager.statusItem,
		fyne.NewMenuItem("Open FocusClock", func() {
			if manager.callbacks.OnOpen != nil {
				manager.callbacks.OnOpen()
			}
		}),
		manager.playItem,
		manager.lunchItem,
		fyne.NewMenuItem("Export CSV", func() {
			if manager.callbacks.OnExport != nil {
				manager.callbacks.OnExport()
			}
		}),
		manager.profileItem,
		manager.autostartItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
