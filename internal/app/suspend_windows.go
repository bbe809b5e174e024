//go:build windows

package app

import (
	"os"

	"golang.org/x/sys/windows"
)

// No SIGTSTP/SIGCONT on Windows; suspend is a no-op.
func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}

func contSignals() []os.Signal { return nil }

// flushPendingInput drops keystrokes typed before the UI was drawn.
func flushPendingInput() error {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return err
	}
	return windows.FlushConsoleInputBuffer(handle)
}
