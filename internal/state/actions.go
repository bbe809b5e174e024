package state

import (
	"fmt"
	"math"
)

// Action is a config-bindable unit of behaviour. The set of variants is
// closed; only this package can add one.
type Action interface {
	isAction()
}

// TreeAction is the subset of actions the Tree applies on its own.
type TreeAction interface {
	Action
	applyTo(t *Tree) error
}

// ===== TREE ACTIONS =====

// MoveAction moves the selection by Delta rows.
type MoveAction struct {
	Delta int
}

// ScrollAction moves the viewport origin by Delta rows.
type ScrollAction struct {
	Delta int
}

type ExpandAction struct{}
type CollapseAction struct{}
type ToggleAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}

// ChangeDirAction quits and leaves the focused directory for the shell
// wrapper printed by `idex --setup` to cd into.
type ChangeDirAction struct{}

// SuspendAction stops the process and returns to the shell (ctrl-z style).
type SuspendAction struct{}

// YankAction copies the focused path to the clipboard.
type YankAction struct{}

// ShellAction runs Command with Args after variable substitution.
type ShellAction struct {
	Command string
	Args    []string
}

// InputAction captures a line of text, then dispatches Inner with it.
type InputAction struct {
	Inner Action
}

// ConfirmationAction asks for 'y' before dispatching Inner.
type ConfirmationAction struct {
	Inner Action
}

func (MoveAction) isAction()         {}
func (ScrollAction) isAction()       {}
func (ExpandAction) isAction()       {}
func (CollapseAction) isAction()     {}
func (ToggleAction) isAction()       {}
func (QuitAction) isAction()         {}
func (ChangeDirAction) isAction()    {}
func (SuspendAction) isAction()      {}
func (YankAction) isAction()         {}
func (ShellAction) isAction()        {}
func (InputAction) isAction()        {}
func (ConfirmationAction) isAction() {}

func (a MoveAction) applyTo(t *Tree) error {
	if a.Delta < 0 {
		t.Back(magnitude(a.Delta))
	} else {
		t.Advance(a.Delta)
	}
	return nil
}

func (a ScrollAction) applyTo(t *Tree) error {
	if a.Delta < 0 {
		t.ScrollUp(magnitude(a.Delta))
	} else {
		t.ScrollDown(a.Delta)
	}
	return nil
}

// magnitude is -d for negative d, saturating at math.MaxInt for math.MinInt.
func magnitude(d int) int {
	if d == math.MinInt {
		return math.MaxInt
	}
	return -d
}

func (ExpandAction) applyTo(t *Tree) error { return t.Expand() }

func (CollapseAction) applyTo(t *Tree) error {
	t.Collapse()
	return nil
}

func (ToggleAction) applyTo(t *Tree) error { return t.Toggle() }

// Describe renders an action the way it reads in the configuration file.
func Describe(a Action) string {
	switch a := a.(type) {
	case MoveAction:
		return fmt.Sprintf("move(%d)", a.Delta)
	case ScrollAction:
		return fmt.Sprintf("scroll(%d)", a.Delta)
	case ExpandAction:
		return "expand"
	case CollapseAction:
		return "collapse"
	case ToggleAction:
		return "toggle"
	case QuitAction:
		return "quit"
	case ChangeDirAction:
		return "cd"
	case SuspendAction:
		return "suspend"
	case YankAction:
		return "yank"
	case ShellAction:
		return fmt.Sprintf("sh(%s %v)", a.Command, a.Args)
	case InputAction:
		return "input(" + Describe(a.Inner) + ")"
	case ConfirmationAction:
		return "confirmation(" + Describe(a.Inner) + ")"
	case nil:
		return "none"
	default:
		return fmt.Sprintf("%T", a)
	}
}
