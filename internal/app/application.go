package app

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/idex/internal/config"
	"github.com/kk-code-lab/idex/internal/logger"
	"github.com/kk-code-lab/idex/internal/shell"
	statepkg "github.com/kk-code-lab/idex/internal/state"
	inputui "github.com/kk-code-lab/idex/internal/ui/input"
	renderui "github.com/kk-code-lab/idex/internal/ui/render"
)

// Application represents the running app. Everything here is owned by the
// loop goroutine.
type Application struct {
	screen   tcell.Screen
	cfg      *config.Config
	tree     *statepkg.Tree
	router   *inputui.Router
	renderer *renderui.Renderer

	logLine    string
	logIsError bool
	lastRefErr string

	shouldQuit bool
	changeDir  string

	runShell      func(command string, args []string) shell.Result
	copyClipboard func(text string) error
}

// NewApplication opens the terminal and lists root.
func NewApplication(root string, cfg *config.Config) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Button events only: presses, releases and the wheel. Motion is unused.
	screen.EnableMouse(tcell.MouseButtonEvents)
	if err := flushPendingInput(); err != nil {
		logger.Warn("cannot flush console input: %v", err)
	}

	app, err := newApplication(screen, root, cfg)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(screen tcell.Screen, root string, cfg *config.Config) (*Application, error) {
	tree, err := statepkg.NewTree(root)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", root, err)
	}

	app := &Application{
		screen:        screen,
		cfg:           cfg,
		tree:          tree,
		router:        inputui.NewRouter(cfg, tree),
		renderer:      renderui.NewRenderer(screen, cfg),
		runShell:      shell.Run,
		copyClipboard: clipboard.WriteAll,
	}
	logger.Info("browsing %s", tree.Root())
	return app, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.screen.Fini()
	return nil
}

// ChangeDirPath is the directory chosen with the cd action, or "".
func (app *Application) ChangeDirPath() string {
	return app.changeDir
}

func (app *Application) setLog(line string) {
	app.logLine = line
	app.logIsError = false
}

func (app *Application) setError(err error) {
	app.logLine = err.Error()
	app.logIsError = true
	logger.Error("%v", err)
}
