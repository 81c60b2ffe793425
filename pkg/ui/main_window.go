package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/flip-alarm/pkg/alarm"
	"github.com/borgmon/flip-alarm/pkg/models"
	"github.com/borgmon/flip-alarm/pkg/ui/components"
)

// MainWindow shows the alarm status, the flip clock countdown and the
// start/stop button.
type MainWindow struct {
	window fyne.Window
	app    fyne.App

	palette    palette
	background *canvas.Rectangle
	status     *canvas.Text
	nextAlarm  *canvas.Text
	clock      *components.FlipClock
	toggle     *widget.Button

	onToggle   func()
	onSettings func()
}

func NewMainWindow(app fyne.App, theme models.Theme, onToggle, onSettings func()) *MainWindow {
	mw := &MainWindow{
		app:        app,
		palette:    newPalette(theme),
		onToggle:   onToggle,
		onSettings: onSettings,
	}

	mw.window = app.NewWindow("Flip Alarm")
	mw.window.Resize(fyne.NewSize(500, 350))
	mw.buildUI()

	return mw
}

func (mw *MainWindow) buildUI() {
	mw.background = canvas.NewRectangle(mw.palette.background)

	mw.status = canvas.NewText("Alarm: OFF", mw.palette.statusOff)
	mw.status.TextSize = 18
	mw.status.TextStyle = fyne.TextStyle{Bold: true}
	mw.status.Alignment = fyne.TextAlignCenter

	mw.nextAlarm = canvas.NewText("", mw.palette.statusOff)
	mw.nextAlarm.Alignment = fyne.TextAlignCenter

	mw.clock = components.NewFlipClock(mw.palette.cards, mw.palette.divider)

	mw.toggle = widget.NewButton("Start alarm", func() {
		if mw.onToggle != nil {
			mw.onToggle()
		}
	})
	mw.toggle.Importance = widget.HighImportance

	settingsButton := widget.NewButton("Settings", func() {
		if mw.onSettings != nil {
			mw.onSettings()
		}
	})

	content := container.NewVBox(
		container.NewPadded(mw.status),
		mw.clock.Content(),
		mw.nextAlarm,
		container.NewHBox(layout.NewSpacer(), mw.toggle, settingsButton, layout.NewSpacer()),
	)

	mw.window.SetContent(container.NewStack(mw.background, container.NewPadded(container.NewCenter(content))))
}

// Display returns the flip clock as the scheduler's display sink
func (mw *MainWindow) Display() alarm.Display {
	return mw.clock
}

// SetState updates the status line and button label. Safe from any goroutine.
func (mw *MainWindow) SetState(state alarm.State) {
	fyne.Do(func() {
		if state == alarm.StateOn {
			mw.status.Text = "Alarm: ON"
			mw.status.Color = mw.palette.statusOn
			mw.toggle.SetText("Stop alarm")
		} else {
			mw.status.Text = "Alarm: OFF"
			mw.status.Color = mw.palette.statusOff
			mw.toggle.SetText("Start alarm")
			mw.nextAlarm.Text = ""
			mw.nextAlarm.Refresh()
		}
		mw.status.Refresh()
	})
}

// SetNextAlarm shows the clock time of the next alarm, hidden when zero
func (mw *MainWindow) SetNextAlarm(t time.Time) {
	fyne.Do(func() {
		mw.nextAlarm.Text = NextAlarmText(t)
		mw.nextAlarm.Refresh()
	})
}

// NextAlarmText formats the next alarm line
func NextAlarmText(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("Next alarm at %s", t.Format("15:04"))
}

// ApplyTheme restyles the window
func (mw *MainWindow) ApplyTheme(theme models.Theme) {
	p := newPalette(theme)
	fyne.Do(func() {
		mw.palette = p
		mw.background.FillColor = p.background
		mw.background.Refresh()
		mw.nextAlarm.Color = p.statusOff
		mw.nextAlarm.Refresh()
	})
	mw.clock.SetColors(p.cards, p.divider)
}

// HideOnClose keeps the process alive in the tray when the window is closed
func (mw *MainWindow) HideOnClose(hide bool) {
	if hide {
		mw.window.SetCloseIntercept(func() {
			mw.window.Hide()
		})
		return
	}
	mw.window.SetCloseIntercept(nil)
}

func (mw *MainWindow) Show() {
	mw.window.Show()
}

// Raise brings the window to the front from any goroutine
func (mw *MainWindow) Raise() {
	fyne.Do(func() {
		mw.window.Show()
		mw.window.RequestFocus()
	})
}

func (mw *MainWindow) Window() fyne.Window {
	return mw.window
}
