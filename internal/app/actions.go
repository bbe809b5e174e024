package app

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kk-code-lab/idex/internal/logger"
	"github.com/kk-code-lab/idex/internal/shell"
	statepkg "github.com/kk-code-lab/idex/internal/state"
	inputui "github.com/kk-code-lab/idex/internal/ui/input"
)

func (app *Application) execute(cmd inputui.Command) {
	switch cmd.Kind {
	case inputui.CommandInterrupt:
		app.shouldQuit = true
	case inputui.CommandToggle:
		app.applyTree(statepkg.ToggleAction{})
	case inputui.CommandAction:
		app.dispatch(cmd.Action, cmd.Input, cmd.HasInput)
	}
}

// dispatch performs a single action. input is only meaningful when hasInput
// is set, i.e. the action was released by a finished text capture.
func (app *Application) dispatch(action statepkg.Action, input string, hasInput bool) {
	switch a := action.(type) {
	case nil:
		return
	case statepkg.QuitAction:
		app.shouldQuit = true
	case statepkg.ChangeDirAction:
		app.changeDir = app.focusedDir()
		app.shouldQuit = true
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
	case statepkg.YankAction:
		app.handleClipboard()
	case statepkg.ShellAction:
		app.runShellAction(a, input, hasInput)
	case statepkg.InputAction:
		app.router.BeginCapture(a.Inner)
	case statepkg.ConfirmationAction:
		app.router.BeginConfirm(a.Inner)
		if hasInput {
			app.router.CarryInput(input)
		}
	case statepkg.TreeAction:
		app.applyTree(a)
	default:
		app.setError(fmt.Errorf("unsupported action %s", statepkg.Describe(action)))
	}
}

func (app *Application) applyTree(action statepkg.TreeAction) {
	if err := app.tree.Apply(action); err != nil {
		app.setError(fmt.Errorf("%s: %w", statepkg.Describe(action), err))
	}
}

func (app *Application) runShellAction(action statepkg.ShellAction, input string, hasInput bool) {
	vars := shell.CurrentVars(app.tree.FocusedPath())
	if hasInput {
		vars = vars.WithInput(input)
	}
	command := shell.Expand(action.Command, vars)
	args := shell.ExpandAll(action.Args, vars)

	logger.Info("run %s %q", command, args)
	result := app.runShell(command, args)
	if result.OK() {
		app.setLog(result.String())
	} else {
		app.logLine = result.String()
		app.logIsError = true
		logger.Warn("%s", result.String())
	}

	// Commands usually touch the tree; show their effect without waiting
	// for the next tick.
	app.refresh()
}

func (app *Application) handleClipboard() {
	p := normalizeClipboardPath(app.tree.FocusedPath(), runtime.GOOS)
	if err := app.copyClipboard(p); err != nil {
		app.setError(fmt.Errorf("cannot copy to clipboard: %w", err))
		return
	}
	app.setLog("copied " + p)
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

// focusedDir is the focused directory, or the parent of a focused file.
func (app *Application) focusedDir() string {
	p := app.tree.FocusedPath()
	if app.tree.IsFile() {
		return filepath.Dir(p)
	}
	return p
}
