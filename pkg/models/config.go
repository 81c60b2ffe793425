package models

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/borgmon/flip-alarm/pkg/alarm"
)

// Config holds application configuration
type Config struct {
	Mode                 string `json:"mode"`                   // "aligned" or "interval"
	IntervalMinutes      int    `json:"interval_minutes"`       // interval mode period
	BoundaryMinutes      string `json:"boundary_minutes"`       // comma-separated minutes of the hour
	FireWindowSeconds    int    `json:"fire_window_seconds"`    // how long the sound repeats
	NotifyTimeoutSeconds int    `json:"notify_timeout_seconds"` // notification lifetime
	Title                string `json:"title"`                  // notification title
	Message              string `json:"message"`                // notification body
	SoundPath            string `json:"sound_path"`             // WAV file, empty for the built-in chime
	AutoStart            bool   `json:"auto_start"`             // launch on login
	StartOnLaunch        bool   `json:"start_on_launch"`        // switch the alarm ON at startup
	HideOnClose          bool   `json:"hide_on_close"`          // keep running in the tray
	ToggleHotkey         bool   `json:"toggle_hotkey"`          // Ctrl+Shift+A toggles the alarm
	Theme                Theme  `json:"theme"`
}

// Theme holds the flip clock colors as #RRGGBB strings
type Theme struct {
	Background     string `json:"background"`
	CardBackground string `json:"card_background"`
	CardForeground string `json:"card_foreground"`
	CardAlert      string `json:"card_alert"`
	CardBorder     string `json:"card_border"`
	CardShadow     string `json:"card_shadow"`
	Divider        string `json:"divider"`
	StatusOn       string `json:"status_on"`
	StatusOff      string `json:"status_off"`
}

// DefaultTheme is the dark flap-clock look
func DefaultTheme() Theme {
	return Theme{
		Background:     "#181A1B",
		CardBackground: "#222325",
		CardForeground: "#FFFFFF",
		CardAlert:      "#FFD600",
		CardBorder:     "#444444",
		CardShadow:     "#000000",
		Divider:        "#EEEEEE",
		StatusOn:       "#FFD600",
		StatusOff:      "#888888",
	}
}

// DefaultConfig returns the stock half-hour alarm configuration
func DefaultConfig() *Config {
	return &Config{
		Mode:                 string(alarm.ModeAligned),
		IntervalMinutes:      30,
		BoundaryMinutes:      "0,30",
		FireWindowSeconds:    60,
		NotifyTimeoutSeconds: 10,
		Title:                "Alarm",
		Message:              "Time to get up!",
		Theme:                DefaultTheme(),
	}
}

// GetBoundaryMinutes parses BoundaryMinutes, dropping invalid and duplicate entries
func (c *Config) GetBoundaryMinutes() []int {
	minutes := []int{}
	seen := make(map[int]bool)

	for _, part := range strings.Split(c.BoundaryMinutes, ",") {
		part = strings.TrimSpace(part)
		if min, err := strconv.Atoi(part); err == nil {
			if min >= 0 && min <= 59 && !seen[min] {
				minutes = append(minutes, min)
				seen[min] = true
			}
		}
	}

	return minutes
}

// Validate checks that the config yields a usable scheduler
func (c *Config) Validate() error {
	switch alarm.Mode(c.Mode) {
	case alarm.ModeAligned:
		if len(c.GetBoundaryMinutes()) == 0 {
			return fmt.Errorf("at least one alarm minute between 0 and 59 is required")
		}
	case alarm.ModeInterval:
		if c.IntervalMinutes < 1 {
			return fmt.Errorf("interval must be at least 1 minute")
		}
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}

	if c.FireWindowSeconds < 0 {
		return fmt.Errorf("ring duration must not be negative")
	}
	if c.NotifyTimeoutSeconds < 0 {
		return fmt.Errorf("notification timeout must not be negative")
	}
	return nil
}

// Options converts the config into scheduler options
func (c *Config) Options() alarm.Options {
	opts := alarm.DefaultOptions()
	opts.Mode = alarm.Mode(c.Mode)
	opts.Interval = time.Duration(c.IntervalMinutes) * time.Minute
	opts.BoundaryMinutes = c.GetBoundaryMinutes()
	opts.FireWindow = time.Duration(c.FireWindowSeconds) * time.Second
	opts.NotifyTimeout = time.Duration(c.NotifyTimeoutSeconds) * time.Second
	if c.Title != "" {
		opts.Title = c.Title
	}
	if c.Message != "" {
		opts.Message = c.Message
	}
	opts.SoundAsset = c.SoundPath
	return opts
}

// ParseHexColor parses #RGB or #RRGGBB, returning fallback on error
func ParseHexColor(s string, fallback color.Color) color.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
