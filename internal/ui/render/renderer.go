package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/idex/internal/config"
	fsutil "github.com/kk-code-lab/idex/internal/fs"
	statepkg "github.com/kk-code-lab/idex/internal/state"
	"github.com/kk-code-lab/idex/internal/ui/input"
)

const (
	confirmPrompt = "Are you sure? ( y / n )"
	inputPrompt   = ">>> "
	ruleRune      = '─'
)

// View is everything a frame shows.
type View struct {
	Tree   *statepkg.Tree
	Mode   input.Mode
	Buffer string
	Log    string
	// LogIsError draws the log line in the error colour.
	LogIsError bool
}

// Renderer draws the browser onto a tcell screen. It is not safe for
// concurrent use; the application loop owns it.
type Renderer struct {
	screen         tcell.Screen
	theme          ColorTheme
	cfg            *config.Config
	runeWidthCache [128]int // ASCII widths, stored +1 so 0 means unknown
	runeWidthWide  map[rune]int
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen, cfg *config.Config) *Renderer {
	return &Renderer{
		screen:        screen,
		theme:         GetColorTheme(),
		cfg:           cfg,
		runeWidthWide: make(map[rune]int),
	}
}

// Layout returns the layout for the current screen size.
func (r *Renderer) Layout() Layout {
	w, h := r.screen.Size()
	return ComputeLayout(w, h)
}

// Render draws a full frame.
func (r *Renderer) Render(view View) {
	r.screen.Clear()
	r.screen.HideCursor()

	layout := r.Layout()
	if layout.Width <= 0 || layout.Height <= 0 {
		r.screen.Show()
		return
	}

	r.drawHeader(view, layout)
	r.drawTree(view, layout)
	r.drawOverlay(view, layout)
	r.drawStatusLine(view, layout)

	r.screen.Show()
}

// drawHeader renders the root path on the top row.
func (r *Renderer) drawHeader(view View, layout Layout) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	root := ""
	if view.Tree != nil {
		root = cleanText(view.Tree.Root())
	}
	root = r.truncateTextLeft(root, layout.Width)
	endX := r.drawTextLine(0, 0, layout.Width, root, style)
	r.fillLine(endX, 0, layout.Width, style)
}

// ===== TREE =====

func (r *Renderer) drawTree(view View, layout Layout) {
	if view.Tree == nil || layout.ListRows == 0 {
		return
	}

	entries := view.Tree.Entries()
	start, end := view.Tree.Window(layout.ListRows)
	y := layout.ListTop
	for i := start; i < end; i++ {
		r.drawEntry(entries[i], y, layout.Width, i == view.Tree.Selected())
		y++
	}
}

func (r *Renderer) drawEntry(e fsutil.Entry, y, w int, selected bool) {
	base := tcell.StyleDefault
	if selected {
		base = base.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}

	marker := "  "
	if selected {
		marker = "> "
	}
	x := r.drawTextLine(0, y, w, marker, base)

	tabStyle := base
	if !selected && r.cfg.Tab.Color != tcell.ColorDefault {
		tabStyle = base.Foreground(r.cfg.Tab.Color)
	}
	tab := cleanText(r.cfg.Tab.Text)
	for d := 1; d < e.Depth && x < w; d++ {
		x = r.drawTextLine(x, y, w-x, tab, tabStyle)
	}

	style := ResolveStyle(r.cfg, e)
	nameStyle := base
	if !selected {
		if style.Color != tcell.ColorDefault {
			nameStyle = nameStyle.Foreground(style.Color)
		}
		if e.IsHidden() {
			nameStyle = nameStyle.Foreground(r.theme.HiddenFg).Dim(true)
		}
	}
	if e.IsSymlink {
		nameStyle = nameStyle.Italic(true)
	}

	if style.Icon != "" && x < w {
		icon := cleanText(style.Icon) + " "
		x = r.drawTextLine(x, y, w-x, icon, nameStyle)
	}

	name := cleanText(e.Name)
	if e.IsDir() {
		name += "/"
	}
	if x < w {
		x = r.drawTextLine(x, y, w-x, r.truncateTextToWidth(name, w-x), nameStyle)
	}
	r.fillLine(x, y, w, base)
}

// ===== OVERLAY & STATUS =====

func overlayLabel(mode input.Mode) string {
	switch mode {
	case input.ModeCapturing:
		return "Input"
	case input.ModeConfirming:
		return "Confirm"
	default:
		return "Log"
	}
}

func (r *Renderer) drawOverlay(view View, layout Layout) {
	w := layout.Width

	if layout.visible(layout.RuleY) {
		ruleStyle := tcell.StyleDefault.Foreground(r.theme.RuleFg)
		label := string([]rune{ruleRune, ruleRune}) + " " + overlayLabel(view.Mode) + " "
		x := r.drawTextLine(0, layout.RuleY, w, label, ruleStyle)
		for ; x < w; x++ {
			r.screen.SetContent(x, layout.RuleY, ruleRune, nil, ruleStyle)
		}
	}

	if !layout.visible(layout.ContentY) {
		return
	}
	y := layout.ContentY
	switch view.Mode {
	case input.ModeCapturing:
		style := tcell.StyleDefault.Foreground(r.theme.PromptFg)
		x := r.drawTextLine(0, y, w, inputPrompt, style)
		// Keep the end of long input visible, where the cursor is.
		text := r.truncateTextLeft(cleanText(view.Buffer), w-x-1)
		x = r.drawTextLine(x, y, w-x, text, tcell.StyleDefault)
		if x < w {
			r.screen.ShowCursor(x, y)
		}
	case input.ModeConfirming:
		style := tcell.StyleDefault.Foreground(r.theme.PromptFg).Bold(true)
		r.drawTextLine(0, y, w, r.truncateTextToWidth(confirmPrompt, w), style)
	default:
		style := tcell.StyleDefault
		if view.LogIsError {
			style = style.Foreground(r.theme.ErrorFg)
		}
		text := cleanText(view.Log)
		r.drawTextLine(0, y, w, r.truncateTextToWidth(text, w), style)
	}
}

// drawStatusLine shows the focused path on the last row.
func (r *Renderer) drawStatusLine(view View, layout Layout) {
	if !layout.visible(layout.StatusY) {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	path := ""
	if view.Tree != nil {
		path = view.Tree.FocusedPath()
	}
	path = r.truncateTextLeft(cleanText(path), layout.Width)
	x := r.drawTextLine(0, layout.StatusY, layout.Width, path, style)
	r.fillLine(x, layout.StatusY, layout.Width, style)
}
