package ui

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/borgmon/flip-alarm/pkg/alarm"
	"github.com/borgmon/flip-alarm/pkg/autostart"
	"github.com/borgmon/flip-alarm/pkg/models"
	"github.com/borgmon/flip-alarm/pkg/store"
	"github.com/borgmon/flip-alarm/pkg/ui/components"
)

const (
	modeAlignedLabel  = "At fixed minutes of every hour"
	modeIntervalLabel = "Every interval after start"
)

var (
	intervalOptions      = []string{"5 min", "10 min", "15 min", "20 min", "25 min", "30 min", "45 min", "60 min"}
	fireWindowOptions    = []string{"10 sec", "20 sec", "30 sec", "45 sec", "60 sec", "90 sec", "120 sec"}
	notifyTimeoutOptions = []string{"5 sec", "10 sec", "20 sec", "30 sec", "60 sec"}
)

// SettingsWindow edits and saves the configuration
type SettingsWindow struct {
	window      fyne.Window
	app         fyne.App
	configStore *store.ConfigStore
	config      *models.Config
	onSave      func(*models.Config)
	onPreview   func(*models.Config)

	// Alarm tab
	modeRadio           *widget.RadioGroup
	intervalSelect      *widget.Select
	minuteList          *components.MinuteList
	fireWindowSelect    *widget.Select
	notifyTimeoutSelect *widget.Select
	titleEntry          *widget.Entry
	messageEntry        *widget.Entry

	// Sound tab
	soundPathEntry *widget.Entry

	// General tab
	autoStartCheck     *widget.Check
	startOnLaunchCheck *widget.Check
	hideOnCloseCheck   *widget.Check
	hotkeyCheck        *widget.Check

	// UI state
	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

func NewSettingsWindow(app fyne.App, configStore *store.ConfigStore, config *models.Config, onSave, onPreview func(*models.Config)) *SettingsWindow {
	sw := &SettingsWindow{
		app:         app,
		configStore: configStore,
		config:      config,
		onSave:      onSave,
		onPreview:   onPreview,
	}

	sw.window = app.NewWindow("Flip Alarm - Settings")
	sw.buildUI()

	return sw
}

func (sw *SettingsWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Alarm", sw.buildAlarmTab()),
		container.NewTabItem("Sound", sw.buildSoundTab()),
		container.NewTabItem("General", sw.buildGeneralTab()),
	)
	// Populating the widgets fires their change callbacks
	sw.hasUnsavedChanges = false

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable() // Initially disabled until changes are made

	previewButton := widget.NewButton("Test Alarm", func() {
		if sw.onPreview != nil {
			sw.onPreview(sw.getConfigFromUI())
		}
	})

	closeButton := widget.NewButton("Close", func() {
		sw.handleClose()
	})

	buttonRow := container.NewBorder(
		nil,
		nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		container.NewHBox(previewButton, closeButton),
		container.NewHBox(),
	)

	sw.window.SetContent(container.NewBorder(nil, container.NewPadded(buttonRow), nil, nil, tabs))
	sw.window.Resize(fyne.NewSize(620, 520))
	sw.window.CenterOnScreen()

	sw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			sw.handleClose()
		}
	})
	sw.window.SetCloseIntercept(func() {
		sw.handleClose()
	})
}

func (sw *SettingsWindow) buildAlarmTab() fyne.CanvasObject {
	sw.modeRadio = widget.NewRadioGroup([]string{modeAlignedLabel, modeIntervalLabel}, func(string) {
		sw.updateModeControls()
		sw.markChanged()
	})
	sw.modeRadio.Required = true

	intervalChoices, intervalSelected := withOption(intervalOptions, sw.config.IntervalMinutes, "min")
	sw.intervalSelect = widget.NewSelect(intervalChoices, func(string) {
		sw.markChanged()
	})
	sw.intervalSelect.SetSelected(intervalSelected)

	var minuteContainer *fyne.Container
	sw.minuteList, minuteContainer = components.NewMinuteList(sw.config.GetBoundaryMinutes(), func([]int) {
		sw.markChanged()
	})

	fireWindowChoices, fireWindowSelected := withOption(fireWindowOptions, sw.config.FireWindowSeconds, "sec")
	sw.fireWindowSelect = widget.NewSelect(fireWindowChoices, func(string) {
		sw.markChanged()
	})
	sw.fireWindowSelect.SetSelected(fireWindowSelected)

	notifyTimeoutChoices, notifyTimeoutSelected := withOption(notifyTimeoutOptions, sw.config.NotifyTimeoutSeconds, "sec")
	sw.notifyTimeoutSelect = widget.NewSelect(notifyTimeoutChoices, func(string) {
		sw.markChanged()
	})
	sw.notifyTimeoutSelect.SetSelected(notifyTimeoutSelected)

	sw.titleEntry = widget.NewEntry()
	sw.titleEntry.SetText(sw.config.Title)
	sw.titleEntry.OnChanged = func(string) { sw.markChanged() }

	sw.messageEntry = widget.NewEntry()
	sw.messageEntry.SetText(sw.config.Message)
	sw.messageEntry.OnChanged = func(string) { sw.markChanged() }

	if alarm.Mode(sw.config.Mode) == alarm.ModeInterval {
		sw.modeRadio.SetSelected(modeIntervalLabel)
	} else {
		sw.modeRadio.SetSelected(modeAlignedLabel)
	}
	sw.updateModeControls()

	intervalHelp := widget.NewLabel("Counted from the moment the alarm is switched on")
	intervalHelp.Importance = widget.LowImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Trigger:"), sw.modeRadio,
		widget.NewLabel("Alarm minutes:"), minuteContainer,
		widget.NewLabel("Interval:"), container.NewVBox(sw.intervalSelect, intervalHelp),
		widget.NewLabel("Ring for:"), sw.fireWindowSelect,
		widget.NewLabel("Notification title:"), sw.titleEntry,
		widget.NewLabel("Notification text:"), sw.messageEntry,
		widget.NewLabel("Notification timeout:"), sw.notifyTimeoutSelect,
	)

	return container.NewPadded(container.NewVScroll(form))
}

func (sw *SettingsWindow) buildSoundTab() fyne.CanvasObject {
	sw.soundPathEntry = widget.NewEntry()
	sw.soundPathEntry.SetPlaceHolder("Built-in chime")
	sw.soundPathEntry.SetText(sw.config.SoundPath)
	sw.soundPathEntry.OnChanged = func(string) { sw.markChanged() }

	browseButton := widget.NewButton("Browse...", func() {
		fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, sw.window)
				return
			}
			if r == nil {
				return
			}
			defer r.Close()
			sw.soundPathEntry.SetText(r.URI().Path())
		}, sw.window)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".wav"}))
		fd.Show()
	})

	resetButton := widget.NewButton("Use Built-in", func() {
		sw.soundPathEntry.SetText("")
	})

	help := widget.NewLabel("16-bit PCM WAV files are supported. The sound repeats until the ring time is over or the alarm is stopped.")
	help.Wrapping = fyne.TextWrapWord
	help.Importance = widget.MediumImportance

	content := container.NewVBox(
		widget.NewLabel("Alarm Sound"),
		widget.NewSeparator(),
		container.NewBorder(nil, nil, nil, container.NewHBox(browseButton, resetButton), sw.soundPathEntry),
		help,
	)

	return container.NewPadded(content)
}

func (sw *SettingsWindow) buildGeneralTab() fyne.CanvasObject {
	sw.autoStartCheck = widget.NewCheck("Auto Start on System Boot", func(bool) {
		sw.markChanged()
	})
	sw.autoStartCheck.SetChecked(sw.config.AutoStart)

	sw.startOnLaunchCheck = widget.NewCheck("Switch the alarm on when the app starts", func(bool) {
		sw.markChanged()
	})
	sw.startOnLaunchCheck.SetChecked(sw.config.StartOnLaunch)

	sw.hideOnCloseCheck = widget.NewCheck("Keep running in the system tray when the window is closed", func(bool) {
		sw.markChanged()
	})
	sw.hideOnCloseCheck.SetChecked(sw.config.HideOnClose)

	sw.hotkeyCheck = widget.NewCheck("Toggle the alarm with Ctrl+Shift+A", func(bool) {
		sw.markChanged()
	})
	sw.hotkeyCheck.SetChecked(sw.config.ToggleHotkey)

	storageEntry := widget.NewEntry()
	storageEntry.SetText(sw.app.Storage().RootURI().Path())
	storageEntry.Disable()

	storageHelp := widget.NewLabel("Settings and the log file are stored here")
	storageHelp.Importance = widget.MediumImportance

	content := container.NewVBox(
		widget.NewLabel("General Settings"),
		widget.NewSeparator(),
		sw.autoStartCheck,
		sw.startOnLaunchCheck,
		sw.hideOnCloseCheck,
		sw.hotkeyCheck,
		widget.NewSeparator(),
		widget.NewLabel("Storage Location:"),
		storageEntry,
		storageHelp,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (sw *SettingsWindow) updateModeControls() {
	if sw.intervalSelect == nil || sw.minuteList == nil {
		return
	}
	if sw.modeRadio.Selected == modeIntervalLabel {
		sw.intervalSelect.Enable()
	} else {
		sw.intervalSelect.Disable()
	}
}

func (sw *SettingsWindow) save() {
	newConfig := sw.getConfigFromUI()
	if err := newConfig.Validate(); err != nil {
		dialog.ShowError(err, sw.window)
		return
	}

	sw.saveButton.Disable()
	sw.saveStatusLabel.SetText("Saving...")
	sw.saveStatusLabel.Importance = widget.MediumImportance
	sw.saveStatusLabel.Refresh()

	go func() {
		// Handle autostart setting
		if newConfig.AutoStart != sw.config.AutoStart {
			if err := autostart.Setup(newConfig.AutoStart); err != nil {
				log.Printf("Error setting autostart: %v", err)
				fyne.Do(func() {
					sw.saveStatusLabel.SetText("Error: Failed to set autostart")
					sw.saveStatusLabel.Importance = widget.DangerImportance
					sw.saveStatusLabel.Refresh()
					sw.updateSaveButtonState()
				})
				return
			}
		}

		sw.configStore.Save(newConfig)
		if sw.onSave != nil {
			sw.onSave(newConfig)
		}

		fyne.Do(func() {
			sw.config = newConfig
			sw.hasUnsavedChanges = false
			sw.saveStatusLabel.SetText("Settings saved")
			sw.saveStatusLabel.Importance = widget.SuccessImportance
			sw.saveStatusLabel.Refresh()
			sw.updateSaveButtonState()

			// Clear success message after 3 seconds
			go func() {
				time.Sleep(3 * time.Second)
				fyne.Do(func() {
					if sw.saveStatusLabel.Text == "Settings saved" {
						sw.saveStatusLabel.SetText("")
					}
				})
			}()
		})
	}()
}

func (sw *SettingsWindow) getConfigFromUI() *models.Config {
	mode := alarm.ModeAligned
	if sw.modeRadio.Selected == modeIntervalLabel {
		mode = alarm.ModeInterval
	}

	minutes := make([]string, 0)
	for _, m := range sw.minuteList.Minutes() {
		minutes = append(minutes, strconv.Itoa(m))
	}

	return &models.Config{
		Mode:                 string(mode),
		IntervalMinutes:      parseOption(sw.intervalSelect.Selected, sw.config.IntervalMinutes),
		BoundaryMinutes:      strings.Join(minutes, ","),
		FireWindowSeconds:    parseOption(sw.fireWindowSelect.Selected, sw.config.FireWindowSeconds),
		NotifyTimeoutSeconds: parseOption(sw.notifyTimeoutSelect.Selected, sw.config.NotifyTimeoutSeconds),
		Title:                strings.TrimSpace(sw.titleEntry.Text),
		Message:              strings.TrimSpace(sw.messageEntry.Text),
		SoundPath:            strings.TrimSpace(sw.soundPathEntry.Text),
		AutoStart:            sw.autoStartCheck.Checked,
		StartOnLaunch:        sw.startOnLaunchCheck.Checked,
		HideOnClose:          sw.hideOnCloseCheck.Checked,
		ToggleHotkey:         sw.hotkeyCheck.Checked,
		Theme:                sw.config.Theme,
	}
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}

func (sw *SettingsWindow) Focus() {
	sw.window.RequestFocus()
	sw.window.Show()
}

// SetOnClosed registers a callback for when the window goes away
func (sw *SettingsWindow) SetOnClosed(f func()) {
	sw.window.SetOnClosed(f)
}

// markChanged marks the config as having unsaved changes
func (sw *SettingsWindow) markChanged() {
	sw.hasUnsavedChanges = true
	sw.updateSaveButtonState()
}

// updateSaveButtonState enables or disables the save button based on changes
func (sw *SettingsWindow) updateSaveButtonState() {
	if sw.saveButton != nil {
		if sw.hasUnsavedChanges {
			sw.saveButton.Enable()
		} else {
			sw.saveButton.Disable()
		}
	}
}

// handleClose handles window close with unsaved changes check
func (sw *SettingsWindow) handleClose() {
	if sw.hasActualChanges() {
		dialog.ShowConfirm("Unsaved Changes",
			"You have unsaved changes. Are you sure you want to close?",
			func(confirmed bool) {
				if confirmed {
					sw.window.Close()
				}
			}, sw.window)
	} else {
		sw.window.Close()
	}
}

// hasActualChanges checks if the current UI state differs from the saved config
func (sw *SettingsWindow) hasActualChanges() bool {
	return *sw.getConfigFromUI() != *sw.config
}

// withOption returns options plus value formatted as "<value> <unit>",
// appended when the list does not carry it yet
func withOption(options []string, value int, unit string) ([]string, string) {
	want := fmt.Sprintf("%d %s", value, unit)
	for _, o := range options {
		if o == want {
			return options, o
		}
	}
	return append(append([]string(nil), options...), want), want
}

// parseOption parses "30 min" or "60 sec" style select values
func parseOption(selected string, fallback int) int {
	var val int
	if _, err := fmt.Sscanf(selected, "%d", &val); err == nil {
		return val
	}
	return fallback
}
