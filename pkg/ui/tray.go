package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/borgmon/flip-alarm/pkg/alarm"
)

// TrayActions are the callbacks behind the tray menu entries
type TrayActions struct {
	Toggle   func()
	Show     func()
	Settings func()
	Quit     func()
}

// Tray owns the system tray menu. It is a no-op on drivers without tray
// support.
type Tray struct {
	app     fyne.App
	actions TrayActions
}

func NewTray(app fyne.App, actions TrayActions) *Tray {
	return &Tray{app: app, actions: actions}
}

// Update rebuilds the menu for the current state and next alarm text
func (t *Tray) Update(state alarm.State, next string) {
	desk, ok := t.app.(desktop.App)
	if !ok {
		return
	}
	menu := t.Menu(state, next)
	fyne.Do(func() {
		desk.SetSystemTrayMenu(menu)
		desk.SetSystemTrayIcon(theme.HistoryIcon())
	})
}

// Menu builds the tray menu without installing it
func (t *Tray) Menu(state alarm.State, next string) *fyne.Menu {
	menuItems := []*fyne.MenuItem{}

	header := "Alarm is off"
	if state == alarm.StateOn {
		header = "Alarm is on"
		if next != "" {
			header = next
		}
	}
	headerItem := fyne.NewMenuItem(header, nil)
	headerItem.Disabled = true
	menuItems = append(menuItems, headerItem, fyne.NewMenuItemSeparator())

	toggleLabel := "Start Alarm"
	if state == alarm.StateOn {
		toggleLabel = "Stop Alarm"
	}
	menuItems = append(menuItems,
		fyne.NewMenuItem(toggleLabel, call(t.actions.Toggle)),
		fyne.NewMenuItem("Show Clock", call(t.actions.Show)),
		fyne.NewMenuItem("Settings", call(t.actions.Settings)),
	)

	menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	quit := fyne.NewMenuItem("Quit", call(t.actions.Quit))
	quit.IsQuit = true
	menuItems = append(menuItems, quit)

	return fyne.NewMenu("Flip Alarm", menuItems...)
}

func call(f func()) func() {
	return func() {
		if f != nil {
			f()
		}
	}
}
