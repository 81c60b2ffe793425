// Command flip-alarm-autostart manages the Flip Alarm login entry without
// opening the settings window. Useful from install scripts.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/borgmon/flip-alarm/pkg/autostart"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// swapped in tests
var (
	setupFor   = autostart.SetupFor
	isEnabled  = autostart.Enabled
	executable = autostart.Executable
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "flip-alarm-autostart",
		Short:         "Enable or disable starting Flip Alarm at login",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	var execPath string
	enableCmd := &cobra.Command{
		Use:   "enable",
		Short: "Start Flip Alarm at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := execPath
			if path == "" {
				p, err := defaultAppPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := setupFor(path, true); err != nil {
				return fmt.Errorf("enable autostart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("Autostart enabled"), gray(path))
			return nil
		},
	}
	enableCmd.Flags().StringVar(&execPath, "exec", "", "binary to launch at login (defaults to flip-alarm next to this tool)")

	disableCmd := &cobra.Command{
		Use:   "disable",
		Short: "Stop starting Flip Alarm at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupFor("", false); err != nil {
				return fmt.Errorf("disable autostart: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), green("Autostart disabled"))
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the login entry exists",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if isEnabled() {
				fmt.Fprintln(cmd.OutOrStdout(), green("enabled"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), gray("disabled"))
			}
		},
	}

	root.AddCommand(enableCmd, disableCmd, statusCmd)
	return root
}

// defaultAppPath returns the flip-alarm binary installed next to this tool
func defaultAppPath() (string, error) {
	self, err := executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}

	name := "flip-alarm"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path := filepath.Join(filepath.Dir(self), name)

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%s not found, pass --exec with the app binary", path)
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, pass --exec with the app binary", path)
	}
	return path, nil
}
