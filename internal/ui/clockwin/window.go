// Package clockwin renders the main clock window: the big countdown, the
// session progress line and the transport buttons.
package clockwin

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"focusclock/internal/core/clock"
	"focusclock/internal/core/model"
)

var (
	colorRunning = color.NRGBA{R: 0x7C, G: 0xFC, B: 0x98, A: 0xFF}
	colorPaused  = color.NRGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}
	colorBreak   = color.NRGBA{R: 0x7C, G: 0xC7, B: 0xFF, A: 0xFF}
	colorWarm    = color.NRGBA{R: 0xFF, G: 0xD2, B: 0x7C, A: 0xFF}
)

// Actions are the user commands the window can trigger.
type Actions struct {
	OnTogglePlayPause func()
	OnRewind          func()
	OnSkip            func()
	OnReset           func()
	OnLunch           func()
	OnSettings        func()
	OnExport          func()
}

// Window is the main clock window.
type Window struct {
	window fyne.Window

	progressLabel *widget.Label
	counterLabel  *widget.Label
	modeLabel     *widget.Label
	timerText     *canvas.Text

	playButton   *widget.Button
	rewindButton *widget.Button
	skipButton   *widget.Button

	lastStatus clock.Status
}

// New builds the window and wires the buttons to actions.
func New(app fyne.App, actions Actions) *Window {
	window := app.NewWindow("FocusClock")

	progressLabel := widget.NewLabel("")
	progressLabel.Alignment = fyne.TextAlignCenter
	counterLabel := widget.NewLabel("")
	counterLabel.Alignment = fyne.TextAlignCenter
	modeLabel := widget.NewLabel("")
	modeLabel.Alignment = fyne.TextAlignCenter
	modeLabel.TextStyle = fyne.TextStyle{Bold: true}

	timerText := canvas.NewText("0:00", colorPaused)
	timerText.TextSize = 44
	timerText.Alignment = fyne.TextAlignCenter
	timerText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	playButton := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), actions.OnTogglePlayPause)
	rewindButton := widget.NewButtonWithIcon("", theme.MediaFastRewindIcon(), actions.OnRewind)
	skipButton := widget.NewButtonWithIcon("", theme.MediaFastForwardIcon(), actions.OnSkip)
	resetButton := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), actions.OnReset)
	lunchButton := widget.NewButton("Lunch", actions.OnLunch)
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), actions.OnSettings)
	exportButton := widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), actions.OnExport)
	statsButton := widget.NewButtonWithIcon("", theme.InfoIcon(), nil)

	transport := container.NewHBox(
		rewindButton, playButton, skipButton, resetButton,
		lunchButton, statsButton, settingsButton, exportButton,
	)

	content := container.NewVBox(
		progressLabel,
		counterLabel,
		modeLabel,
		container.NewCenter(timerText),
		container.NewCenter(transport),
	)

	window.SetContent(content)
	window.Resize(fyne.NewSize(340, 240))
	// Closing the window keeps the clock alive in the tray.
	window.SetCloseIntercept(window.Hide)

	win := &Window{
		window:        window,
		progressLabel: progressLabel,
		counterLabel:  counterLabel,
		modeLabel:     modeLabel,
		timerText:     timerText,
		playButton:    playButton,
		rewindButton:  rewindButton,
		skipButton:    skipButton,
	}
	statsButton.OnTapped = win.showStats
	return win
}

// showStats pops up the cumulative counters for the current session.
func (win *Window) showStats() {
	status := win.lastStatus
	content := widget.NewLabel(fmt.Sprintf(
		"Open time: %s\nFocus work: %s\nScreen breaks: %s\nPaused: %s",
		formatHMS(status.TotalOpenSec),
		formatHMS(status.FocusWorkSec),
		formatHMS(status.MicrobreakSec),
		formatHMS(status.PausedSec),
	))
	dialog.ShowCustom("Statistics", "Close", content, win.window)
}

// Show brings the window to the front.
func (win *Window) Show() {
	win.window.Show()
	win.window.RequestFocus()
}

// Refresh repaints the window from a status snapshot. Must run on the Fyne
// goroutine.
func (win *Window) Refresh(status clock.Status) {
	win.lastStatus = status
	if status.Profile == model.ProfileWorklog {
		win.refreshWorklog(status)
		return
	}
	win.refreshStudy(status)
}

func (win *Window) refreshWorklog(status clock.Status) {
	win.progressLabel.SetText("")
	win.counterLabel.SetText("")
	win.rewindButton.Hide()
	win.skipButton.Hide()

	if status.Running {
		win.setMode("WORK", colorRunning)
		win.playButton.SetIcon(theme.MediaPauseIcon())
	} else {
		win.setMode("PAUSED", colorPaused)
		win.playButton.SetIcon(theme.MediaPlayIcon())
	}
	win.setTimer(formatMMSS(status.WorkElapsedSec))
}

func (win *Window) refreshStudy(status clock.Status) {
	win.rewindButton.Show()
	win.skipButton.Show()

	progress := status.Progress
	win.progressLabel.SetText(fmt.Sprintf("%s/%s (%d%%)",
		formatHM(progress.DoneSec), formatHM(progress.TotalSec), progress.Percent))
	win.counterLabel.SetText(fmt.Sprintf("Unit: %d/%d", status.CurrentUnit, status.SessionGoal))

	if status.Finished {
		win.setMode("Finished", colorRunning)
		win.setTimer("Finished")
		win.playButton.SetIcon(theme.MediaPlayIcon())
		return
	}

	if status.MicrobreakActive {
		win.setMode("SCREEN BREAK", colorWarm)
		remaining := status.MicrobreakRemaining
		if remaining < 1 {
			remaining = 1
		}
		win.setTimer(formatMMSS(remaining))
		win.playButton.SetIcon(theme.MediaPauseIcon())
		return
	}

	win.setTimer(formatMMSS(status.Remaining))

	if !status.Running {
		win.setMode("PAUSED", colorPaused)
		win.playButton.SetIcon(theme.MediaPlayIcon())
		return
	}

	switch status.Mode {
	case model.ModeBreak:
		win.setMode("PAUSE", colorBreak)
	case model.ModeLunch:
		win.setMode("LUNCH", colorBreak)
	default:
		win.setMode("FOCUS", colorRunning)
	}
	win.playButton.SetIcon(theme.MediaPauseIcon())
}

func (win *Window) setMode(text string, tint color.Color) {
	win.modeLabel.SetText(text)
	win.timerText.Color = tint
	win.timerText.Refresh()
}

func (win *Window) setTimer(text string) {
	win.timerText.Text = text
	win.timerText.Refresh()
}

// formatMMSS renders seconds as "M:SS" with unbounded minutes.
func formatMMSS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// formatHM renders seconds as "H:MM", dropping the seconds part.
func formatHM(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// formatHMS renders seconds as "H:MM:SS" for the statistics popup.
func formatHMS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}
