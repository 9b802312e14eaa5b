package term

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/gridwave/clock"
	"github.com/pthm-cable/gridwave/controller"
	"github.com/pthm-cable/gridwave/theme"
	"github.com/pthm-cable/gridwave/viewport"
)

// Canvas pixels covered by one terminal cell. Cells are about twice as tall
// as they are wide.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Options configures an App.
type Options struct {
	FPS       int
	MaxFrames int // Stop after this many frames (0 = unlimited)
	Theme     *theme.Theme
	Logger    *slog.Logger
}

// App runs a controller on a tcell screen.
type App struct {
	screen  tcell.Screen
	ctrl    *controller.Controller
	sched   *clock.Realtime
	surface *Surface
	view    *viewport.Viewport
	opts    Options
	logger  *slog.Logger

	pressed bool
	frames  int
	stop    context.CancelFunc
}

// NewApp creates a terminal host. The screen must already be initialized.
func NewApp(screen tcell.Screen, ctrl *controller.Controller, sched *clock.Realtime, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	cols, rows := screen.Size()
	a := &App{
		screen:  screen,
		ctrl:    ctrl,
		sched:   sched,
		surface: NewSurface(screen, CellWidth, CellHeight),
		view:    viewport.NewCells(cols, rows, CellWidth, CellHeight),
		opts:    opts,
		logger:  logger,
	}
	a.surface.Resize(cols, rows)
	if opts.Theme != nil {
		ctrl.SetColorSource(opts.Theme)
	}
	return a
}

// Surface returns the cell surface the controller draws onto.
func (a *App) Surface() *Surface {
	return a.surface
}

// Frames returns the number of frames flushed to the screen.
func (a *App) Frames() int {
	return a.frames
}

// Run mounts the controller and drives it until ctx is done, the user quits
// or MaxFrames is reached. Terminal events are read on a separate goroutine
// and applied on the loop goroutine.
func (a *App) Run(ctx context.Context) error {
	ctx, a.stop = context.WithCancel(ctx)
	defer a.stop()

	a.screen.EnableMouse()
	a.ctrl.Mount(a.surface, a.view.Dimensions())
	defer a.ctrl.Unmount()
	a.sched.RequestFrame(a.flush)

	events := make(chan func(), 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- func() { a.handleEvent(ev) }:
			case <-ctx.Done():
				return
			}
		}
	}()

	a.logger.Info("terminal host started",
		"cols", a.view.Width,
		"rows", a.view.Height,
		"points", len(a.ctrl.Points()),
	)
	err := a.sched.Run(ctx, a.opts.FPS, events)

	// PollEvent returns nil once the screen is finalized.
	a.screen.Fini()
	<-done

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// flush runs once per frame after the controller has drawn.
func (a *App) flush(now time.Time) {
	if a.opts.Theme != nil {
		a.opts.Theme.Advance(now)
		a.surface.SetBackground(a.opts.Theme.BackgroundColor())
	}
	if a.surface.Flush() {
		a.frames++
	}
	if a.opts.MaxFrames > 0 && a.frames >= a.opts.MaxFrames {
		a.logger.Info("max frames reached", "frames", a.frames)
		a.stop()
		return
	}
	a.sched.RequestFrame(a.flush)
}

// handleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			if a.stop != nil {
				a.stop()
			}
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 't' && a.opts.Theme != nil {
			if err := a.opts.Theme.Toggle(); err != nil {
				a.logger.Error("theme toggle failed", "error", err)
			}
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		if a.view.Resize(float64(cols), float64(rows)) {
			a.surface.Resize(cols, rows)
			a.ctrl.Resize(a.view.Dimensions())
		}
		a.screen.Sync()

	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return true
}

// handleMouse turns button-1 transitions into pointer events. tcell reports
// motion with the button held as further button-1 events.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y := a.view.CellCenter(col, row)
	p := controller.PointerEvent{X: x, Y: y}
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !a.pressed:
		a.pressed = true
		a.ctrl.PointerDown(p)
	case down:
		a.ctrl.PointerMove(p)
	case a.pressed:
		a.pressed = false
		a.ctrl.PointerUp(p)
	}
}
