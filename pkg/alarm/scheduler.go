package alarm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Scheduler owns the alarm on/off state, drives the Display once per tick
// and runs the boundary action (notify once, then loop the sound) from a
// background worker.
type Scheduler struct {
	opts     Options
	display  Display
	notifier Notifier
	player   SoundPlayer
	clock    Clock
	hooks    Hooks

	running atomic.Bool
	wg      sync.WaitGroup

	mu        sync.Mutex
	state     State
	cancel    context.CancelFunc
	session   string
	alert     bool
	remaining int       // ModeInterval countdown in seconds
	lastFired time.Time // ModeAligned boundary already handled this session
	nextAlarm time.Time
}

// Option customizes a Scheduler
type Option func(*Scheduler)

// WithClock replaces the wall clock
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithHooks installs UI callbacks
func WithHooks(h Hooks) Option {
	return func(s *Scheduler) { s.hooks = h }
}

// New creates a stopped Scheduler
func New(opts Options, display Display, notifier Notifier, player SoundPlayer, options ...Option) (*Scheduler, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if display == nil || notifier == nil || player == nil {
		return nil, errors.New("display, notifier and player are required")
	}

	s := &Scheduler{
		opts:     opts,
		display:  display,
		notifier: notifier,
		player:   player,
		clock:    systemClock{},
	}
	for _, o := range options {
		o(s)
	}
	return s, nil
}

// Start switches the alarm ON. Counters and the alert flag are reset.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.state == StateOn {
		s.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = StateOn
	s.running.Store(true)
	s.session = uuid.NewString()
	s.alert = false
	s.remaining = s.opts.intervalSeconds()
	s.lastFired = time.Time{}
	next := s.renderLocked()
	session := s.session
	s.wg.Add(2)
	s.mu.Unlock()

	log.Printf("[%s] Alarm started (mode=%s)", session, s.opts.Mode)
	s.emitState(StateOn)
	s.emitNextAlarm(next)

	go s.displayLoop(ctx)
	go s.watchLoop(ctx)
}

// Stop switches the alarm OFF and resets the display to 00:00. The worker
// notices the cancellation at its next poll.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state == StateOff {
		s.mu.Unlock()
		return
	}

	s.cancel()
	s.cancel = nil
	s.state = StateOff
	s.running.Store(false)
	s.alert = false
	s.remaining = 0
	s.nextAlarm = time.Time{}
	s.display.SetTime(0, 0, false)
	session := s.session
	s.mu.Unlock()

	log.Printf("[%s] Alarm stopped", session)
	s.emitState(StateOff)
	s.emitNextAlarm(time.Time{})
}

// Toggle flips between ON and OFF and returns the new state
func (s *Scheduler) Toggle() State {
	if s.Running() {
		s.Stop()
		return StateOff
	}
	s.Start()
	return StateOn
}

// Close stops the alarm and waits for background goroutines to exit
func (s *Scheduler) Close() {
	s.Stop()
	s.wg.Wait()
}

func (s *Scheduler) Running() bool {
	return s.running.Load()
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) AlertActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alert
}

// Remaining returns the ModeInterval countdown in seconds
func (s *Scheduler) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// NextAlarm returns when the alarm will fire next, zero when OFF
func (s *Scheduler) NextAlarm() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextAlarm
}

func (s *Scheduler) Mode() Mode {
	return s.opts.Mode
}

func (s *Scheduler) displayLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick advances the countdown by one step and renders it
func (s *Scheduler) tick(ctx context.Context) {
	s.mu.Lock()
	if ctx.Err() != nil || s.alert {
		s.mu.Unlock()
		return
	}

	if s.opts.Mode == ModeInterval {
		if s.remaining > 0 {
			s.remaining--
		}
		if s.remaining == 0 {
			s.alert = true
		}
	}
	prev := s.nextAlarm
	next := s.renderLocked()
	s.mu.Unlock()

	if !next.Equal(prev) {
		s.emitNextAlarm(next)
	}
}

// renderLocked pushes the current countdown to the display and returns the
// next alarm time. s.mu must be held.
func (s *Scheduler) renderLocked() time.Time {
	now := s.clock.Now()

	switch s.opts.Mode {
	case ModeInterval:
		c := countdownOf(time.Duration(s.remaining) * time.Second)
		s.display.SetTime(c.Minutes, c.Seconds, s.alert)
		if s.nextAlarm.IsZero() || s.remaining == s.opts.intervalSeconds() {
			s.nextAlarm = now.Add(time.Duration(s.remaining) * time.Second)
		}
	case ModeAligned:
		next := NextBoundary(now, s.opts.BoundaryMinutes)
		c := RemainingUntil(now, next)
		s.display.SetTime(c.Minutes, c.Seconds, s.alert)
		s.nextAlarm = next
	}
	return s.nextAlarm
}

func (s *Scheduler) watchLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.opts.Tick)
	defer ticker.Stop()

	lastPoll := s.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		now := s.clock.Now()
		at, due := s.due(ctx, lastPoll, now)
		lastPoll = now
		if !due {
			continue
		}

		s.runBoundaryAction(ctx, at)
		s.rearm(ctx)
		lastPoll = s.clock.Now()
	}
}

// due decides whether a boundary has been reached since the previous poll
// and, if so, marks it handled and switches the display to alert.
func (s *Scheduler) due(ctx context.Context, lastPoll, now time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return time.Time{}, false
	}

	switch s.opts.Mode {
	case ModeInterval:
		if s.remaining > 0 {
			return time.Time{}, false
		}
		s.alert = true
	case ModeAligned:
		at, ok := crossedBoundary(lastPoll, now, s.opts.BoundaryMinutes)
		if !ok || at.Equal(s.lastFired) {
			return time.Time{}, false
		}
		s.lastFired = at
		s.alert = true
		return at, true
	}
	return now, true
}

// runBoundaryAction notifies once, then replays the sound until the fire
// window closes or the alarm is stopped. Collaborator failures are logged
// and never end the session.
func (s *Scheduler) runBoundaryAction(ctx context.Context, at time.Time) {
	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.display.SetTime(0, 0, true)
	session := s.session
	s.mu.Unlock()

	log.Printf("[%s] Boundary reached at %s", session, at.Format("15:04:05"))
	if s.hooks.OnBoundary != nil {
		s.hooks.OnBoundary(at)
	}

	if err := s.notify(); err != nil {
		log.Printf("[%s] %v", session, err)
	}

	start := time.Now()
	for time.Since(start) < s.opts.FireWindow {
		if ctx.Err() != nil {
			return
		}

		err := s.play(ctx)
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		log.Printf("[%s] %v", session, err)

		// A broken asset fails instantly; don't spin on it.
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.opts.PlaybackPoll):
		}
	}
}

func (s *Scheduler) notify() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNotify, r)
		}
	}()

	if err := s.notifier.Notify(s.opts.Title, s.opts.Message, s.opts.NotifyTimeout); err != nil {
		return fmt.Errorf("%w: %v", ErrNotify, err)
	}
	return nil
}

func (s *Scheduler) play(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPlayback, r)
		}
	}()

	if err := s.player.PlayToCompletionOrStop(ctx, s.opts.SoundAsset); err != nil {
		return fmt.Errorf("%w: %v", ErrPlayback, err)
	}
	return nil
}

// rearm clears the alert after a boundary action and restarts the countdown
func (s *Scheduler) rearm(ctx context.Context) {
	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.alert = false
	if s.opts.Mode == ModeInterval {
		s.remaining = s.opts.intervalSeconds()
	}
	next := s.renderLocked()
	s.mu.Unlock()

	s.emitNextAlarm(next)
}

func (s *Scheduler) emitState(st State) {
	if s.hooks.OnStateChange != nil {
		s.hooks.OnStateChange(st)
	}
}

func (s *Scheduler) emitNextAlarm(t time.Time) {
	if s.hooks.OnNextAlarm != nil {
		s.hooks.OnNextAlarm(t)
	}
}
