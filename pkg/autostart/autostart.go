package autostart

import (
	"log"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

const (
	appName     = "flip-alarm"
	displayName = "Flip Alarm"
)

// entry is the subset of autostart.App used here
type entry interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

var newEntry = func(execPath string) entry {
	return &autostart.App{
		Name:        appName,
		DisplayName: displayName,
		Exec:        []string{execPath},
	}
}

// Executable returns the resolved path of the running binary
func Executable() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}

	// Resolve symlinks if any
	return filepath.EvalSymlinks(execPath)
}

// Setup registers or removes the login entry for the running binary
func Setup(enable bool) error {
	execPath, err := Executable()
	if err != nil {
		return err
	}
	return SetupFor(execPath, enable)
}

// SetupFor registers or removes the login entry for execPath
func SetupFor(execPath string, enable bool) error {
	app := newEntry(execPath)

	if enable {
		if !app.IsEnabled() {
			if err := app.Enable(); err != nil {
				log.Printf("Failed to enable autostart: %v", err)
				return err
			}
			log.Println("Autostart enabled")
		}
	} else {
		if app.IsEnabled() {
			if err := app.Disable(); err != nil {
				log.Printf("Failed to disable autostart: %v", err)
				return err
			}
			log.Println("Autostart disabled")
		}
	}

	return nil
}

// Sync reconciles the saved preference with the login entry at launch and
// returns the effective setting. An entry created outside the app (for
// example by flip-alarm-autostart) is adopted, never removed.
func Sync(pref bool) (bool, error) {
	execPath, err := Executable()
	if err != nil {
		return pref, err
	}
	return SyncFor(execPath, pref)
}

// SyncFor is Sync for an explicit binary path
func SyncFor(execPath string, pref bool) (bool, error) {
	if pref {
		return true, SetupFor(execPath, true)
	}
	if newEntry(execPath).IsEnabled() {
		log.Println("Found existing autostart entry, keeping it enabled")
		return true, nil
	}
	return false, nil
}

// Enabled reports whether a login entry exists
func Enabled() bool {
	return newEntry("").IsEnabled()
}
