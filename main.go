package main

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"github.com/borgmon/flip-alarm/pkg/alarm"
	"github.com/borgmon/flip-alarm/pkg/audio"
	"github.com/borgmon/flip-alarm/pkg/autostart"
	"github.com/borgmon/flip-alarm/pkg/logging"
	"github.com/borgmon/flip-alarm/pkg/models"
	"github.com/borgmon/flip-alarm/pkg/notify"
	"github.com/borgmon/flip-alarm/pkg/platform"
	"github.com/borgmon/flip-alarm/pkg/store"
	"github.com/borgmon/flip-alarm/pkg/ui"
)

type FlipAlarm struct {
	app            fyne.App
	configStore    *store.ConfigStore
	config         *models.Config
	notifier       alarm.Notifier
	player         *audio.Player
	mainWindow     *ui.MainWindow
	settingsWindow *ui.SettingsWindow
	tray           *ui.Tray
	hotkey         *ui.ToggleHotkey
	logCloser      io.Closer

	mu        sync.Mutex
	scheduler *alarm.Scheduler
	nextAlarm time.Time
}

func main() {
	fa := &FlipAlarm{
		app:    app.NewWithID("com.borgmon.flip-alarm"),
		hotkey: &ui.ToggleHotkey{},
	}

	if err := fa.initialize(); err != nil {
		log.Fatal(err)
	}

	fa.run()
}

func (fa *FlipAlarm) initialize() error {
	closer, err := logging.Setup(fa.app.Storage().RootURI().Path())
	if err != nil {
		log.Printf("Warning: file logging disabled: %v", err)
	} else {
		fa.logCloser = closer
	}

	fa.configStore = store.NewConfigStore(fa.app)
	fa.config = fa.configStore.Load()

	// Sync autostart state with config on startup
	autoStart, err := autostart.Sync(fa.config.AutoStart)
	if err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}
	fa.config.AutoStart = autoStart

	fa.configStore.Save(fa.config)

	fa.notifier = notify.New(fa.app)
	fa.player = audio.NewPlayer()

	fa.mainWindow = ui.NewMainWindow(fa.app, fa.config.Theme, fa.toggle, fa.showSettingsWindow)
	fa.mainWindow.HideOnClose(fa.config.HideOnClose)

	fa.tray = ui.NewTray(fa.app, ui.TrayActions{
		Toggle:   fa.toggle,
		Show:     fa.mainWindow.Raise,
		Settings: func() { fyne.Do(fa.showSettingsWindow) },
		Quit:     fa.quit,
	})

	scheduler, err := fa.newScheduler(fa.config)
	if err != nil {
		return err
	}
	fa.scheduler = scheduler
	fa.updateTray()

	if fa.config.ToggleHotkey {
		fa.hotkey.Register(fa.toggle)
	}

	return nil
}

func (fa *FlipAlarm) run() {
	fa.app.Lifecycle().SetOnStarted(func() {
		if fa.config.HideOnClose {
			platform.SetActivationPolicy()
		}
		if fa.config.StartOnLaunch {
			fa.currentScheduler().Start()
		}
	})
	fa.app.Lifecycle().SetOnStopped(func() {
		fa.currentScheduler().Close()
		fa.hotkey.Unregister()
		if fa.logCloser != nil {
			fa.logCloser.Close()
		}
	})

	fa.mainWindow.Show()
	fa.app.Run()
}

func (fa *FlipAlarm) newScheduler(config *models.Config) (*alarm.Scheduler, error) {
	return alarm.New(config.Options(), fa.mainWindow.Display(), fa.notifier, fa.player,
		alarm.WithHooks(alarm.Hooks{
			OnStateChange: func(state alarm.State) {
				fa.mainWindow.SetState(state)
				fa.updateTray()
			},
			OnNextAlarm: func(t time.Time) {
				fa.mu.Lock()
				fa.nextAlarm = t
				fa.mu.Unlock()
				fa.mainWindow.SetNextAlarm(t)
				fa.updateTray()
			},
			OnBoundary: func(time.Time) {
				if !platform.IsAppActive() {
					platform.ActivateApp()
				}
				fa.mainWindow.Raise()
			},
		}))
}

func (fa *FlipAlarm) currentScheduler() *alarm.Scheduler {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	return fa.scheduler
}

func (fa *FlipAlarm) toggle() {
	fa.currentScheduler().Toggle()
}

func (fa *FlipAlarm) updateTray() {
	fa.mu.Lock()
	next := fa.nextAlarm
	fa.mu.Unlock()

	state := alarm.StateOff
	if s := fa.currentScheduler(); s != nil && s.Running() {
		state = alarm.StateOn
	}
	fa.tray.Update(state, ui.NextAlarmText(next))
}

// applyConfig swaps in a scheduler built from config, keeping the alarm
// running if it was on.
func (fa *FlipAlarm) applyConfig(config *models.Config) {
	scheduler, err := fa.newScheduler(config)
	if err != nil {
		log.Printf("Invalid configuration, keeping the previous one: %v", err)
		fyne.Do(func() {
			dialog.ShowError(err, fa.mainWindow.Window())
		})
		return
	}

	fa.mu.Lock()
	old := fa.scheduler
	fa.scheduler = scheduler
	fa.config = config
	fa.mu.Unlock()

	wasRunning := old.Running()
	old.Close()
	if wasRunning {
		scheduler.Start()
	}

	fa.mainWindow.ApplyTheme(config.Theme)
	fyne.Do(func() {
		fa.mainWindow.HideOnClose(config.HideOnClose)
	})

	fa.hotkey.Unregister()
	if config.ToggleHotkey {
		fa.hotkey.Register(fa.toggle)
	}
	fa.updateTray()
}

// preview rings once with the unsaved settings
func (fa *FlipAlarm) preview(config *models.Config) {
	opts := config.Options()
	go func() {
		if err := fa.notifier.Notify(opts.Title, opts.Message, opts.NotifyTimeout); err != nil {
			log.Printf("Preview notification failed: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), fa.player.MaxPlay)
		defer cancel()
		if err := fa.player.PlayToCompletionOrStop(ctx, opts.SoundAsset); err != nil {
			log.Printf("Preview sound failed: %v", err)
			fyne.Do(func() {
				dialog.ShowError(err, fa.mainWindow.Window())
			})
		}
	}()
}

func (fa *FlipAlarm) showSettingsWindow() {
	// If settings window already exists and is showing, just bring it to front
	if fa.settingsWindow != nil {
		fa.settingsWindow.Focus()
		return
	}

	fa.mu.Lock()
	config := fa.config
	fa.mu.Unlock()

	fa.settingsWindow = ui.NewSettingsWindow(fa.app, fa.configStore, config, fa.applyConfig, fa.preview)
	fa.settingsWindow.SetOnClosed(func() {
		fa.settingsWindow = nil
	})
	fa.settingsWindow.Show()
}

func (fa *FlipAlarm) quit() {
	fa.currentScheduler().Close()
	fa.app.Quit()
}
