package autostart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeEntry struct {
	enabled  bool
	fail     error
	enables  int
	disables int
}

func (e *fakeEntry) IsEnabled() bool { return e.enabled }

func (e *fakeEntry) Enable() error {
	e.enables++
	if e.fail != nil {
		return e.fail
	}
	e.enabled = true
	return nil
}

func (e *fakeEntry) Disable() error {
	e.disables++
	if e.fail != nil {
		return e.fail
	}
	e.enabled = false
	return nil
}

func useFake(t *testing.T, e *fakeEntry) {
	orig := newEntry
	newEntry = func(string) entry { return e }
	t.Cleanup(func() { newEntry = orig })
}

func TestSetupForIsIdempotent(t *testing.T) {
	e := &fakeEntry{}
	useFake(t, e)

	assert.NoError(t, SetupFor("/usr/bin/flip-alarm", true))
	assert.NoError(t, SetupFor("/usr/bin/flip-alarm", true))
	assert.True(t, Enabled())
	assert.Equal(t, 1, e.enables)

	assert.NoError(t, SetupFor("/usr/bin/flip-alarm", false))
	assert.NoError(t, SetupFor("/usr/bin/flip-alarm", false))
	assert.False(t, Enabled())
	assert.Equal(t, 1, e.disables)
}

func TestSetupForError(t *testing.T) {
	e := &fakeEntry{fail: errors.New("permission denied")}
	useFake(t, e)

	assert.EqualError(t, SetupFor("/usr/bin/flip-alarm", true), "permission denied")
}

func TestSyncForAdoptsExistingEntry(t *testing.T) {
	e := &fakeEntry{enabled: true}
	useFake(t, e)

	got, err := SyncFor("/usr/bin/flip-alarm", false)
	assert.NoError(t, err)
	assert.True(t, got)
	assert.True(t, e.enabled, "entry installed by the CLI survives launch")
	assert.Zero(t, e.disables)
}

func TestSyncForRestoresEntry(t *testing.T) {
	e := &fakeEntry{}
	useFake(t, e)

	got, err := SyncFor("/usr/bin/flip-alarm", true)
	assert.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 1, e.enables)
}

func TestSyncForStaysDisabled(t *testing.T) {
	e := &fakeEntry{}
	useFake(t, e)

	got, err := SyncFor("/usr/bin/flip-alarm", false)
	assert.NoError(t, err)
	assert.False(t, got)
	assert.Zero(t, e.enables)
	assert.Zero(t, e.disables)
}

func TestExecutable(t *testing.T) {
	path, err := Executable()
	assert.NoError(t, err)
	assert.NotEmpty(t, path)
}
