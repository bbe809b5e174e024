package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/idex/internal/config"
	"github.com/kk-code-lab/idex/internal/shell"
)

type recordedRun struct {
	command string
	args    []string
}

// newTestApplication builds an app over a fresh directory holding paths
// (a trailing slash makes a directory) on an 80x24 simulation screen.
func newTestApplication(t *testing.T, conf string, paths ...string) (*Application, tcell.SimulationScreen, *[]recordedRun) {
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

	t.Setenv("HOME", "/home/tester")
	t.Setenv("USERPROFILE", "/home/tester")

	var cfg *config.Config
	var err error
	if conf == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Parse([]byte(conf), "test.toml")
	}
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	app, err := newApplication(screen, root, cfg)
	if err != nil {
		t.Fatalf("newApplication: %v", err)
	}

	runs := &[]recordedRun{}
	app.runShell = func(command string, args []string) shell.Result {
		*runs = append(*runs, recordedRun{command: command, args: append([]string(nil), args...)})
		return shell.Result{Command: command, Args: args}
	}
	app.copyClipboard = func(string) error { return nil }
	app.render()
	return app, screen, runs
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func special(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(app *Application, text string) {
	for _, r := range text {
		app.handleEvent(key(r))
	}
}

func TestNewApplicationRejectsMissingRoot(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}

	_, err = newApplication(screen, filepath.Join(t.TempDir(), "missing"), cfg)
	if err == nil || !strings.Contains(err.Error(), "cannot open") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestChangeDirOnDirectory(t *testing.T) {
	app, _, _ := newTestApplication(t, "", "sub/", "file.txt")

	app.handleEvent(key('Q'))

	if !app.shouldQuit {
		t.Fatalf("cd should quit")
	}
	if got, want := app.ChangeDirPath(), filepath.Join(app.tree.Root(), "sub"); got != want {
		t.Fatalf("ChangeDirPath = %q, want %q", got, want)
	}
}

func TestChangeDirOnFileUsesParent(t *testing.T) {
	app, _, _ := newTestApplication(t, "", "file.txt")

	app.handleEvent(key('Q'))

	if got := app.ChangeDirPath(); got != app.tree.Root() {
		t.Fatalf("ChangeDirPath = %q, want %q", got, app.tree.Root())
	}
}

func TestQuitLeavesNoDirectory(t *testing.T) {
	app, _, _ := newTestApplication(t, "", "file.txt")

	app.handleEvent(key('q'))

	if !app.shouldQuit || app.ChangeDirPath() != "" {
		t.Fatalf("quit should not choose a directory")
	}
}

func TestCtrlCQuitsFromEveryMode(t *testing.T) {
	for _, prefix := range []string{"", "n", "d"} {
		app, _, runs := newTestApplication(t, "", "file.txt")
		typeText(app, prefix)
		app.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
		if !app.shouldQuit {
			t.Fatalf("ctrl-c after %q should quit", prefix)
		}
		if len(*runs) != 0 {
			t.Fatalf("ctrl-c should not run anything, got %v", *runs)
		}
	}
}
