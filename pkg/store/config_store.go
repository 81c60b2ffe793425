package store

import (
	"encoding/json"

	"fyne.io/fyne/v2"
	"github.com/borgmon/flip-alarm/pkg/models"
)

// ConfigStore handles configuration persistence using Fyne preferences
type ConfigStore struct {
	app fyne.App
}

// NewConfigStore creates a new ConfigStore instance
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{app: app}
}

// Load loads configuration from preferences
func (cs *ConfigStore) Load() *models.Config {
	prefs := cs.app.Preferences()
	defaults := models.DefaultConfig()

	config := &models.Config{
		Mode:                 prefs.StringWithFallback("mode", defaults.Mode),
		IntervalMinutes:      prefs.IntWithFallback("interval_minutes", defaults.IntervalMinutes),
		BoundaryMinutes:      prefs.StringWithFallback("boundary_minutes", defaults.BoundaryMinutes),
		FireWindowSeconds:    prefs.IntWithFallback("fire_window_seconds", defaults.FireWindowSeconds),
		NotifyTimeoutSeconds: prefs.IntWithFallback("notify_timeout_seconds", defaults.NotifyTimeoutSeconds),
		Title:                prefs.StringWithFallback("title", defaults.Title),
		Message:              prefs.StringWithFallback("message", defaults.Message),
		SoundPath:            prefs.String("sound_path"),
		AutoStart:            prefs.BoolWithFallback("auto_start", false),
		StartOnLaunch:        prefs.BoolWithFallback("start_on_launch", false),
		HideOnClose:          prefs.BoolWithFallback("hide_on_close", false),
		ToggleHotkey:         prefs.BoolWithFallback("toggle_hotkey", false),
		Theme:                defaults.Theme,
	}

	// Theme is stored as a JSON string; missing keys keep their defaults
	themeJSON := prefs.String("theme")
	if themeJSON != "" {
		if err := json.Unmarshal([]byte(themeJSON), &config.Theme); err != nil {
			config.Theme = defaults.Theme
		}
	}

	// A hand-edited preferences file must not leave the alarm unusable
	if err := config.Validate(); err != nil {
		config.Mode = defaults.Mode
		config.IntervalMinutes = defaults.IntervalMinutes
		config.BoundaryMinutes = defaults.BoundaryMinutes
		config.FireWindowSeconds = defaults.FireWindowSeconds
		config.NotifyTimeoutSeconds = defaults.NotifyTimeoutSeconds
	}

	return config
}

// Save saves configuration to preferences
func (cs *ConfigStore) Save(config *models.Config) {
	prefs := cs.app.Preferences()

	prefs.SetString("mode", config.Mode)
	prefs.SetInt("interval_minutes", config.IntervalMinutes)
	prefs.SetString("boundary_minutes", config.BoundaryMinutes)
	prefs.SetInt("fire_window_seconds", config.FireWindowSeconds)
	prefs.SetInt("notify_timeout_seconds", config.NotifyTimeoutSeconds)
	prefs.SetString("title", config.Title)
	prefs.SetString("message", config.Message)
	prefs.SetString("sound_path", config.SoundPath)
	prefs.SetBool("auto_start", config.AutoStart)
	prefs.SetBool("start_on_launch", config.StartOnLaunch)
	prefs.SetBool("hide_on_close", config.HideOnClose)
	prefs.SetBool("toggle_hotkey", config.ToggleHotkey)

	// Save theme as JSON string
	if themeJSON, err := json.Marshal(config.Theme); err == nil {
		prefs.SetString("theme", string(themeJSON))
	}
}
