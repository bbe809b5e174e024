package render

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/idex/internal/config"
	fsutil "github.com/kk-code-lab/idex/internal/fs"
	statepkg "github.com/kk-code-lab/idex/internal/state"
	"github.com/kk-code-lab/idex/internal/ui/input"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func mustConfig(t *testing.T, text string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(text), "test.toml")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func fixtureTree(t *testing.T, paths ...string) *statepkg.Tree {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	tree, err := statepkg.NewTree(root)
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	return tree
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, combc, _, width := screen.GetContent(x, y)
		if mainc == 0 {
			mainc = ' '
		}
		b.WriteRune(mainc)
		b.WriteString(string(combc))
		if width > 1 {
			x += width - 1
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func cellStyle(screen tcell.Screen, x, y int) (fg, bg tcell.Color) {
	_, _, style, _ := screen.GetContent(x, y)
	fg, bg, _ = style.Decompose()
	return fg, bg
}

func TestComputeLayout(t *testing.T) {
	got := ComputeLayout(80, 24)
	want := Layout{Width: 80, Height: 24, ListTop: 1, ListRows: 20, RuleY: 21, ContentY: 22, StatusY: 23}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	tiny := ComputeLayout(10, 3)
	if tiny.ListRows != 0 || tiny.visible(tiny.RuleY) || !tiny.visible(tiny.StatusY) {
		t.Fatalf("unexpected tiny layout %+v", tiny)
	}
}

func TestResolveStylePrecedence(t *testing.T) {
	cfg := mustConfig(t, `
[folder]
icon = "D"
[file]
icon = "F"
[files.go]
icon = "G"
[names."Makefile"]
icon = "M"
[names."vendor"]
icon = "V"
[[style]]
pattern = "*_test.go"
icon = "T"
[[style]]
pattern = "*.go"
icon = "never"
[[style]]
pattern = "*.gen.*"
icon = "X"
`)
	// The second glob shadows the suffix for .go files, so drop it to
	// exercise the suffix lookup too.
	cfg.Globs = append(cfg.Globs[:1], cfg.Globs[2:]...)

	tests := []struct {
		name string
		typ  fsutil.EntryType
		want string
	}{
		{"src", fsutil.EntryDir, "D"},
		{"vendor", fsutil.EntryDir, "V"},
		{"pkg.go", fsutil.EntryDir, "D"},
		{"main_test.go", fsutil.EntryFile, "T"},
		{"main.go", fsutil.EntryFile, "G"},
		{"MAIN.GO", fsutil.EntryFile, "G"},
		{"api.gen.go", fsutil.EntryFile, "X"},
		{"Makefile", fsutil.EntryFile, "M"},
		{"notes.txt", fsutil.EntryFile, "F"},
		{".bashrc", fsutil.EntryFile, "F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := fsutil.Entry{Name: tt.name, Type: tt.typ, Suffix: fsutil.Suffix(tt.name)}
			if got := ResolveStyle(cfg, e).Icon; got != tt.want {
				t.Fatalf("ResolveStyle(%s) icon = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestRenderTreeRows(t *testing.T) {
	tree := fixtureTree(t, "src/inner.txt", "b.txt", ".hidden")
	if err := tree.Expand(); err != nil {
		t.Fatal(err)
	}
	screen := newSimScreen(t, 300, 10)
	r := NewRenderer(screen, mustConfig(t, ""))

	r.Render(View{Tree: tree, Log: "hello"})

	if got := rowText(screen, 0); got != tree.Root() {
		t.Fatalf("header = %q, want %q", got, tree.Root())
	}
	wantRows := []string{"> src/", "    inner.txt", "  .hidden", "  b.txt", "", ""}
	for i, want := range wantRows {
		if got := rowText(screen, 1+i); got != want {
			t.Fatalf("row %d = %q, want %q", 1+i, got, want)
		}
	}
	if got := rowText(screen, 7); !strings.HasPrefix(got, "── Log ─") {
		t.Fatalf("rule = %q", got)
	}
	if got := rowText(screen, 8); got != "hello" {
		t.Fatalf("log line = %q", got)
	}
	if got := rowText(screen, 9); got != filepath.Join(tree.Root(), "src") {
		t.Fatalf("status = %q", got)
	}

	theme := GetColorTheme()
	if _, bg := cellStyle(screen, 0, 1); bg != theme.SelectionBg {
		t.Fatalf("selected row should use the selection background, got %v", bg)
	}
	if runtime.GOOS != "windows" {
		if fg, _ := cellStyle(screen, 2, 3); fg != theme.HiddenFg {
			t.Fatalf("hidden entries should be dimmed, got %v", fg)
		}
	}
}

func TestRenderUsesConfiguredStyles(t *testing.T) {
	tree := fixtureTree(t, "a/", "main.go")
	screen := newSimScreen(t, 300, 8)
	cfg := mustConfig(t, `
[tab]
text = "| "
[folder]
icon = "D"
color = "blue"
[files.go]
icon = "G"
color = "aqua"
`)
	r := NewRenderer(screen, cfg)
	tree.Advance(1)

	r.Render(View{Tree: tree})

	if got := rowText(screen, 1); got != "  D a/" {
		t.Fatalf("row 1 = %q", got)
	}
	if got := rowText(screen, 2); got != "> G main.go" {
		t.Fatalf("row 2 = %q", got)
	}
	if fg, _ := cellStyle(screen, 2, 1); fg != tcell.GetColor("blue") {
		t.Fatalf("folder icon colour = %v", fg)
	}
	// The selected row keeps the selection colours.
	if fg, _ := cellStyle(screen, 2, 2); fg != GetColorTheme().SelectionFg {
		t.Fatalf("selected row colour = %v", fg)
	}
}

func TestRenderIndentsWithTabText(t *testing.T) {
	tree := fixtureTree(t, "a/b/c.txt")
	_ = tree.Expand()
	tree.Advance(1)
	_ = tree.Expand()
	screen := newSimScreen(t, 300, 8)
	r := NewRenderer(screen, mustConfig(t, "[tab]\ntext = \"| \"\n"))

	r.Render(View{Tree: tree})

	want := []string{"  a/", "> | b/", "  | | c.txt"}
	for i, w := range want {
		if got := rowText(screen, 1+i); got != w {
			t.Fatalf("row %d = %q, want %q", 1+i, got, w)
		}
	}
}

func TestRenderScrollWindow(t *testing.T) {
	tree := fixtureTree(t, "f0", "f1", "f2", "f3", "f4", "f5", "f6")
	tree.ScrollDown(4)
	tree.Advance(5)
	screen := newSimScreen(t, 300, 7)
	r := NewRenderer(screen, mustConfig(t, ""))

	r.Render(View{Tree: tree})

	want := []string{"  f4", "> f5", "  f6"}
	for i, w := range want {
		if got := rowText(screen, 1+i); got != w {
			t.Fatalf("row %d = %q, want %q", 1+i, got, w)
		}
	}
}

func TestRenderCapturePrompt(t *testing.T) {
	tree := fixtureTree(t, "a.txt")
	screen := newSimScreen(t, 300, 8)
	r := NewRenderer(screen, mustConfig(t, ""))

	r.Render(View{Tree: tree, Mode: input.ModeCapturing, Buffer: "new.txt", Log: "ignored"})

	layout := ComputeLayout(300, 8)
	if got := rowText(screen, layout.RuleY); !strings.HasPrefix(got, "── Input ─") {
		t.Fatalf("rule = %q", got)
	}
	if got := rowText(screen, layout.ContentY); got != ">>> new.txt" {
		t.Fatalf("prompt = %q", got)
	}
	x, y, visible := screen.GetCursor()
	if !visible || x != len(">>> new.txt") || y != layout.ContentY {
		t.Fatalf("cursor at (%d,%d) visible=%v", x, y, visible)
	}
}

func TestRenderConfirmPrompt(t *testing.T) {
	tree := fixtureTree(t, "a.txt")
	screen := newSimScreen(t, 300, 8)
	r := NewRenderer(screen, mustConfig(t, ""))

	r.Render(View{Tree: tree, Mode: input.ModeConfirming})

	layout := ComputeLayout(300, 8)
	if got := rowText(screen, layout.RuleY); !strings.HasPrefix(got, "── Confirm ─") {
		t.Fatalf("rule = %q", got)
	}
	if got := rowText(screen, layout.ContentY); got != "Are you sure? ( y / n )" {
		t.Fatalf("prompt = %q", got)
	}
	if _, _, visible := screen.GetCursor(); visible {
		t.Fatalf("cursor should be hidden outside text capture")
	}
}

func TestRenderSanitizesUserText(t *testing.T) {
	tree := fixtureTree(t, "a.txt")
	screen := newSimScreen(t, 300, 8)
	r := NewRenderer(screen, mustConfig(t, ""))

	r.Render(View{Tree: tree, Log: "bad\x1b[31m\nred"})

	got := rowText(screen, ComputeLayout(300, 8).ContentY)
	if strings.ContainsRune(got, 0x1b) || got != "bad?[31m red" {
		t.Fatalf("log line not sanitised: %q", got)
	}
}

func TestRenderTruncatesNarrowScreen(t *testing.T) {
	tree := fixtureTree(t, "averyveryverylongname.txt")
	screen := newSimScreen(t, 12, 6)
	r := NewRenderer(screen, mustConfig(t, ""))

	r.Render(View{Tree: tree})

	if got := rowText(screen, 1); got != "> averyvery…" {
		t.Fatalf("row = %q", got)
	}
	if got := rowText(screen, 0); !strings.HasPrefix(got, "…") {
		t.Fatalf("long root should be cut from the left, got %q", got)
	}
	if got := rowText(screen, 5); !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, ".txt") {
		t.Fatalf("status should keep the end of the path, got %q", got)
	}
}

func TestRenderEmptyTree(t *testing.T) {
	tree := fixtureTree(t)
	screen := newSimScreen(t, 300, 6)
	r := NewRenderer(screen, mustConfig(t, ""))

	r.Render(View{Tree: tree})

	if got := rowText(screen, 1); got != "" {
		t.Fatalf("empty tree should draw no rows, got %q", got)
	}
	if got := rowText(screen, 5); got != tree.Root() {
		t.Fatalf("status should fall back to the root, got %q", got)
	}
}
