package preferences

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the settings dialog.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)

	focusEntry   *widget.Entry
	breakEntry   *widget.Entry
	microEntry   *widget.Entry
	goalEntry    *widget.Entry
	startEntry   *widget.Entry
	screenBreaks *widget.Check
}

// New creates the settings dialog. onSave receives the validated values.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("FocusClock Settings")

	focusEntry := widget.NewEntry()
	breakEntry := widget.NewEntry()
	microEntry := widget.NewEntry()
	goalEntry := widget.NewEntry()
	startEntry := widget.NewEntry()

	screenBreaks := widget.NewCheck("Screen breaks during focus", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Session", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus length"), focusEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break length"), breakEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Screen break length"), microEntry, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Units per session"), goalEntry, widget.NewLabel("")),
		container.NewHBox(widget.NewLabel("Start at unit"), startEntry, widget.NewLabel("")),
		screenBreaks,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 320))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		focusEntry:   focusEntry,
		breakEntry:   breakEntry,
		microEntry:   microEntry,
		goalEntry:    goalEntry,
		startEntry:   startEntry,
		screenBreaks: screenBreaks,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = window.Hide

	return prefs
}

// Show displays the dialog.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces the dialog values, usually right before Show.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focusEntry.SetText(fmt.Sprintf("%d", settings.FocusMin))
	prefs.breakEntry.SetText(fmt.Sprintf("%d", settings.BreakMin))
	prefs.microEntry.SetText(fmt.Sprintf("%d", settings.MicroSec))
	prefs.goalEntry.SetText(fmt.Sprintf("%d", settings.SessionGoal))
	prefs.startEntry.SetText(fmt.Sprintf("%d", settings.StartUnit))
	prefs.screenBreaks.SetChecked(settings.ScreenBreaks)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.focusEntry.Text); ok {
		settings.FocusMin = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.breakEntry.Text); ok {
		settings.BreakMin = minutes
	}
	if seconds, err := strconv.Atoi(prefs.microEntry.Text); err == nil && seconds >= 0 {
		settings.MicroSec = seconds
	}
	if goal, ok := parsePositiveInt(prefs.goalEntry.Text); ok {
		settings.SessionGoal = goal
	}
	if unit, ok := parsePositiveInt(prefs.startEntry.Text); ok {
		settings.StartUnit = unit
	}
	settings.ScreenBreaks = prefs.screenBreaks.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
