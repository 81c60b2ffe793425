package alarm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

// Mode selects how trigger boundaries are derived
type Mode string

const (
	ModeInterval Mode = "interval" // fire after every Interval of ON time
	ModeAligned  Mode = "aligned"  // fire at fixed wall-clock minutes
)

// State is the on/off state of the scheduler
type State int

const (
	StateOff State = iota
	StateOn
)

func (s State) String() string {
	if s == StateOn {
		return "ON"
	}
	return "OFF"
}

var (
	// ErrNotify wraps failures reported by a Notifier
	ErrNotify = errors.New("notification failed")
	// ErrPlayback wraps failures reported by a SoundPlayer
	ErrPlayback = errors.New("playback failed")
)

// Display renders the countdown. Implementations must be safe to call from
// any goroutine.
type Display interface {
	SetTime(minutes, seconds int, alert bool)
}

// Notifier shows a one-shot desktop notification
type Notifier interface {
	Notify(title, message string, timeout time.Duration) error
}

// SoundPlayer plays an asset once, blocking until it ends or ctx is done.
// A cancelled ctx is not an error.
type SoundPlayer interface {
	PlayToCompletionOrStop(ctx context.Context, asset string) error
}

// Clock supplies wall-clock time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Hooks are optional callbacks for the surrounding UI. They are invoked
// outside the scheduler lock and may call back into the scheduler.
type Hooks struct {
	OnStateChange func(State)
	OnNextAlarm   func(time.Time)
	OnBoundary    func(time.Time)
}

// Options configures a Scheduler
type Options struct {
	Mode            Mode
	Interval        time.Duration // ModeInterval period
	BoundaryMinutes []int         // ModeAligned minutes of the hour
	FireWindow      time.Duration // how long the sound loop may run
	Tick            time.Duration // display and poll cadence
	PlaybackPoll    time.Duration // pause after a failed playback attempt
	Title           string
	Message         string
	NotifyTimeout   time.Duration
	SoundAsset      string
}

// DefaultOptions returns the stock half-hour alarm
func DefaultOptions() Options {
	return Options{
		Mode:            ModeAligned,
		Interval:        30 * time.Minute,
		BoundaryMinutes: []int{0, 30},
		FireWindow:      60 * time.Second,
		Tick:            time.Second,
		PlaybackPoll:    100 * time.Millisecond,
		Title:           "Alarm",
		Message:         "Time to get up!",
		NotifyTimeout:   10 * time.Second,
	}
}

// Validate checks the options and normalizes BoundaryMinutes
func (o *Options) Validate() error {
	switch o.Mode {
	case ModeInterval:
		if o.Interval < time.Second {
			return fmt.Errorf("interval must be at least 1s, got %s", o.Interval)
		}
	case ModeAligned:
		if len(o.BoundaryMinutes) == 0 {
			return fmt.Errorf("aligned mode needs at least one boundary minute")
		}
		seen := make(map[int]bool)
		minutes := make([]int, 0, len(o.BoundaryMinutes))
		for _, m := range o.BoundaryMinutes {
			if m < 0 || m > 59 {
				return fmt.Errorf("boundary minute %d out of range 0-59", m)
			}
			if !seen[m] {
				seen[m] = true
				minutes = append(minutes, m)
			}
		}
		sort.Ints(minutes)
		o.BoundaryMinutes = minutes
	default:
		return fmt.Errorf("unknown mode %q", o.Mode)
	}

	if o.Tick <= 0 {
		return fmt.Errorf("tick must be positive")
	}
	if o.FireWindow < 0 {
		return fmt.Errorf("fire window must not be negative")
	}
	if o.PlaybackPoll <= 0 {
		o.PlaybackPoll = 100 * time.Millisecond
	}
	return nil
}

// intervalSeconds is the countdown start value in ModeInterval
func (o *Options) intervalSeconds() int {
	return int(o.Interval / time.Second)
}
