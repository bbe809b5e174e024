package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/idex/internal/logger"
	renderui "github.com/kk-code-lab/idex/internal/ui/render"
)

// Run polls the terminal until the user quits. Each tick waits for the
// first event or the poll interval, drains whatever else is pending,
// refreshes the tree from disk, applies the batch in order and redraws.
func (app *Application) Run() {
	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	app.render()
	for !app.shouldQuit {
		batch := app.waitForEvents(eventChan, sigContCh, app.cfg.PollInterval)
		app.step(batch)
	}
}

// waitForEvents blocks for one event or until interval passes, then drains
// everything already queued without blocking.
func (app *Application) waitForEvents(events <-chan tcell.Event, sigCont <-chan os.Signal, interval time.Duration) []tcell.Event {
	timer := time.NewTimer(interval)
	defer timer.Stop()

	var batch []tcell.Event
	select {
	case ev := <-events:
		batch = append(batch, ev)
	case <-timer.C:
	case <-sigCont:
		app.resumeAfterStop()
	}

	for {
		select {
		case ev := <-events:
			batch = append(batch, ev)
		default:
			return batch
		}
	}
}

// step is one loop tick.
func (app *Application) step(batch []tcell.Event) {
	app.refresh()
	for _, ev := range batch {
		app.handleEvent(ev)
		if app.shouldQuit {
			return
		}
	}
	app.render()
}

func (app *Application) handleEvent(ev tcell.Event) {
	switch ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
		return
	case *tcell.EventInterrupt:
		return
	}
	app.execute(app.router.ProcessEvent(ev))
}

// refresh re-reads the tree. A failure keeps the previous tree on screen and
// is logged once per distinct error.
func (app *Application) refresh() {
	err := app.tree.Refresh()
	if err == nil {
		app.lastRefErr = ""
		return
	}
	if msg := err.Error(); msg != app.lastRefErr {
		app.lastRefErr = msg
		logger.Warn("refresh failed: %v", err)
	}
	app.logLine = "refresh failed: " + err.Error()
	app.logIsError = true
}

func (app *Application) render() {
	layout := app.renderer.Layout()
	app.router.SetViewport(layout.ListTop, layout.ListRows)
	app.renderer.Render(renderui.View{
		Tree:       app.tree,
		Mode:       app.router.Mode(),
		Buffer:     app.router.Buffer(),
		Log:        app.logLine,
		LogIsError: app.logIsError,
	})
}
