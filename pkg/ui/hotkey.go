package ui

import (
	"log"
	"sync"

	"golang.design/x/hotkey"
)

// grabber is the subset of *hotkey.Hotkey used here
type grabber interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
}

var newToggleGrabber = func() grabber {
	return hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyA)
}

// ToggleHotkey listens for Ctrl+Shift+A system wide
type ToggleHotkey struct {
	mu  sync.Mutex
	hk  grabber
	gen int // bumped by every Register and Unregister
}

// Register grabs the key combination and calls onPress for every keydown.
// A later Unregister wins even if the grab is still in flight.
func (t *ToggleHotkey) Register(onPress func()) {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.mu.Unlock()

	go func() {
		hk := newToggleGrabber()
		if err := hk.Register(); err != nil {
			log.Printf("Failed to register Ctrl+Shift+A hotkey: %v", err)
			return
		}

		t.mu.Lock()
		if gen != t.gen {
			t.mu.Unlock()
			hk.Unregister()
			return
		}
		if t.hk != nil {
			t.hk.Unregister()
		}
		t.hk = hk
		t.mu.Unlock()
		log.Println("Registered Ctrl+Shift+A hotkey")

		for range hk.Keydown() {
			onPress()
		}
	}()
}

func (t *ToggleHotkey) Unregister() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	if t.hk == nil {
		return
	}
	if err := t.hk.Unregister(); err != nil {
		log.Printf("Failed to unregister hotkey: %v", err)
	}
	t.hk = nil
}

// Registered reports whether the key combination is currently grabbed
func (t *ToggleHotkey) Registered() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hk != nil
}
