//go:build !windows

package app

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sys/unix"

	"github.com/kk-code-lab/idex/internal/logger"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	if err := app.screen.Suspend(); err != nil {
		logger.Warn("cannot suspend screen: %v", err)
	}
	// Stop only this process, not the group: the `idex --setup` wrapper
	// function shares it and job control (`fg`) would break.
	_ = unix.Kill(unix.Getpid(), unix.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.EnableMouse(tcell.MouseButtonEvents)
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	return true
}

func flushPendingInput() error { return nil }
