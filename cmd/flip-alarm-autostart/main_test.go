package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var origExecutable = executable

type setupCall struct {
	path   string
	enable bool
}

func stub(t *testing.T, enabled bool, err error) *[]setupCall {
	t.Helper()
	color.NoColor = true

	calls := &[]setupCall{}
	origSetup, origEnabled, origExec := setupFor, isEnabled, executable
	t.Cleanup(func() {
		setupFor, isEnabled, executable = origSetup, origEnabled, origExec
	})

	setupFor = func(path string, enable bool) error {
		*calls = append(*calls, setupCall{path, enable})
		return err
	}
	isEnabled = func() bool { return enabled }
	executable = func() (string, error) { return "/usr/local/bin/flip-alarm", nil }
	return calls
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEnableUsesSiblingAppBinary(t *testing.T) {
	calls := stub(t, false, nil)

	dir := t.TempDir()
	app := filepath.Join(dir, "flip-alarm")
	if runtime.GOOS == "windows" {
		app += ".exe"
	}
	require.NoError(t, os.WriteFile(app, []byte("#!/bin/sh\n"), 0o755))
	executable = func() (string, error) { return filepath.Join(dir, "flip-alarm-autostart"), nil }

	out, err := run("enable")
	require.NoError(t, err)
	assert.Equal(t, []setupCall{{app, true}}, *calls)
	assert.Contains(t, out, "Autostart enabled")
}

func TestEnableNeverRegistersItself(t *testing.T) {
	calls := stub(t, false, nil)
	executable = origExecutable

	// The test binary has no flip-alarm next to it
	_, err := run("enable")
	assert.ErrorContains(t, err, "--exec")
	assert.Empty(t, *calls)
}

func TestEnableMissingAppBinary(t *testing.T) {
	calls := stub(t, false, nil)
	executable = func() (string, error) { return filepath.Join(t.TempDir(), "flip-alarm-autostart"), nil }

	_, err := run("enable")
	assert.ErrorContains(t, err, "not found")
	assert.Empty(t, *calls)
}

func TestEnableWithExecFlag(t *testing.T) {
	calls := stub(t, false, nil)

	_, err := run("enable", "--exec", "/opt/flip/flip-alarm")
	require.NoError(t, err)
	assert.Equal(t, []setupCall{{"/opt/flip/flip-alarm", true}}, *calls)
}

func TestDisable(t *testing.T) {
	calls := stub(t, true, nil)

	out, err := run("disable")
	require.NoError(t, err)
	assert.Equal(t, []setupCall{{"", false}}, *calls)
	assert.Contains(t, out, "Autostart disabled")
}

func TestSetupError(t *testing.T) {
	stub(t, false, errors.New("permission denied"))

	_, err := run("enable")
	assert.ErrorContains(t, err, "enable autostart: permission denied")
}

func TestStatus(t *testing.T) {
	stub(t, true, nil)
	out, err := run("status")
	require.NoError(t, err)
	assert.Equal(t, "enabled\n", out)

	stub(t, false, nil)
	out, err = run("status")
	require.NoError(t, err)
	assert.Equal(t, "disabled\n", out)
}

func TestRejectsArgs(t *testing.T) {
	stub(t, false, nil)
	_, err := run("status", "extra")
	assert.Error(t, err)
}
