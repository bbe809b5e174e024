package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/idex/internal/config"
	statepkg "github.com/kk-code-lab/idex/internal/state"
)

// Mode is the router's input state.
type Mode int

const (
	ModeNormal Mode = iota
	ModeCapturing
	ModeConfirming
)

func (m Mode) String() string {
	switch m {
	case ModeCapturing:
		return "capturing"
	case ModeConfirming:
		return "confirming"
	default:
		return "normal"
	}
}

// CommandKind says what the application should do with a processed event.
type CommandKind int

const (
	CommandNone CommandKind = iota
	// CommandAction dispatches Action. Input carries the captured text when
	// the action was released by an accepted prompt.
	CommandAction
	// CommandToggle expands or collapses the selected directory.
	CommandToggle
	// CommandInterrupt ends the program.
	CommandInterrupt
)

// Command is the result of routing a single event.
type Command struct {
	Kind     CommandKind
	Action   statepkg.Action
	Input    string
	HasInput bool
}

// Selection is the part of the tree the router is allowed to touch.
type Selection interface {
	SetSelected(row int)
	SelectionValid(row int) bool
	IsFile() bool
}

// Router turns terminal events into Commands. It owns the modal prompt state:
// while capturing or confirming, key events never reach the bindings.
type Router struct {
	cfg       *config.Config
	selection Selection
	clicks    *ClickTracker

	mode    Mode
	buffer  []rune
	pending statepkg.Action
	// carried is text captured earlier that the pending action still needs.
	carried    string
	hasCarried bool

	listTop  int
	listRows int
	buttons  tcell.ButtonMask

	now func() time.Time
}

// NewRouter creates a router in Normal mode. The list viewport defaults to
// everything below the header row.
func NewRouter(cfg *config.Config, selection Selection) *Router {
	return &Router{
		cfg:       cfg,
		selection: selection,
		clicks:    NewClickTracker(cfg.DoubleClickDelay),
		listTop:   1,
		listRows:  -1,
		now:       time.Now,
	}
}

// SetViewport tells the router which screen rows show list entries. rows < 0
// means "until the bottom of the screen".
func (r *Router) SetViewport(top, rows int) {
	r.listTop = top
	r.listRows = rows
}

func (r *Router) Mode() Mode { return r.mode }

// Buffer is the text captured so far.
func (r *Router) Buffer() string { return string(r.buffer) }

// Pending is the action waiting on a prompt, or nil.
func (r *Router) Pending() statepkg.Action { return r.pending }

// BeginCapture starts a text prompt; inner runs with the text on Enter.
func (r *Router) BeginCapture(inner statepkg.Action) {
	r.mode = ModeCapturing
	r.buffer = r.buffer[:0]
	r.pending = inner
	r.carried, r.hasCarried = "", false
}

// BeginConfirm starts a y/n prompt; inner runs on 'y'.
func (r *Router) BeginConfirm(inner statepkg.Action) {
	r.mode = ModeConfirming
	r.buffer = r.buffer[:0]
	r.pending = inner
	r.carried, r.hasCarried = "", false
}

// CarryInput attaches already captured text to the pending confirmation, so
// input(confirmation(sh ...)) still sees $INPUT.
func (r *Router) CarryInput(text string) {
	r.carried, r.hasCarried = text, true
}

func (r *Router) reset() {
	r.mode = ModeNormal
	r.buffer = r.buffer[:0]
	r.pending = nil
	r.carried, r.hasCarried = "", false
}

// ProcessEvent routes one event and returns at most one Command.
func (r *Router) ProcessEvent(ev tcell.Event) Command {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.processKey(ev)
	case *tcell.EventMouse:
		return r.processMouse(ev)
	default:
		return Command{}
	}
}

// ===== KEYBOARD =====

func (r *Router) processKey(ev *tcell.EventKey) Command {
	combo := config.ComboFromEvent(ev)
	if combo == config.QuitCombo {
		return Command{Kind: CommandInterrupt}
	}

	switch r.mode {
	case ModeCapturing:
		return r.processCaptureKey(ev, combo)
	case ModeConfirming:
		return r.processConfirmKey(combo)
	}

	if action, ok := r.cfg.Binding(combo); ok {
		return Command{Kind: CommandAction, Action: action}
	}
	return Command{}
}

func (r *Router) processCaptureKey(ev *tcell.EventKey, combo config.KeyCombo) Command {
	switch combo.Key {
	case tcell.KeyEscape:
		r.reset()
	case tcell.KeyEnter:
		cmd := Command{Kind: CommandAction, Action: r.pending, Input: string(r.buffer), HasInput: true}
		r.reset()
		if cmd.Action == nil {
			return Command{}
		}
		return cmd
	case tcell.KeyBackspace2:
		if len(r.buffer) > 0 {
			r.buffer = r.buffer[:len(r.buffer)-1]
		}
	case tcell.KeyRune:
		if combo.Mod&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
			r.buffer = append(r.buffer, ev.Rune())
		}
	}
	return Command{}
}

func (r *Router) processConfirmKey(combo config.KeyCombo) Command {
	cmd := Command{Kind: CommandAction, Action: r.pending, Input: r.carried, HasInput: r.hasCarried}
	r.reset()
	if combo.Key == tcell.KeyRune && combo.Rune == 'y' && combo.Mod == tcell.ModNone && cmd.Action != nil {
		return cmd
	}
	return Command{}
}

// ===== MOUSE =====

func (r *Router) processMouse(ev *tcell.EventMouse) Command {
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		return Command{Kind: CommandAction, Action: statepkg.ScrollAction{Delta: -1}}
	case buttons&tcell.WheelDown != 0:
		return Command{Kind: CommandAction, Action: statepkg.ScrollAction{Delta: 1}}
	}

	// Only the press edge counts; drags and releases report the same button.
	pressed := buttons&tcell.Button1 != 0 && r.buttons&tcell.Button1 == 0
	r.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	if !pressed {
		return Command{}
	}

	_, y := ev.Position()
	row, ok := r.listRow(y)
	if !ok {
		return Command{}
	}

	r.selection.SetSelected(row)
	if !r.clicks.Observe(row, r.now()) || !r.selection.SelectionValid(row) {
		return Command{}
	}
	if !r.selection.IsFile() {
		return Command{Kind: CommandToggle}
	}
	if r.cfg.DoubleClick == nil {
		return Command{}
	}
	return Command{Kind: CommandAction, Action: r.cfg.DoubleClick}
}

func (r *Router) listRow(y int) (int, bool) {
	row := y - r.listTop
	if row < 0 {
		return 0, false
	}
	if r.listRows >= 0 && row >= r.listRows {
		return 0, false
	}
	return row, true
}
