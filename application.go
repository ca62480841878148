package plainscroll

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/plainscroll/keybind"
	"github.com/xqrs/plainscroll/scroll"
)

const (
	// The size of the queued updates channel.
	updatesQueueSize = 100
	// The minimum time between two consecutive redraws.
	redrawPause = 50 * time.Millisecond
)

// ErrAlreadyRun is returned by Run when the application has been run before.
var ErrAlreadyRun = errors.New("plainscroll: application already ran")

// DoubleClickInterval specifies the maximum time between clicks to register a
// double click rather than click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// DefaultQuitKeys stop the application unless replaced with SetQuitKeys.
var DefaultQuitKeys = []keybind.Keybind{
	keybind.NewKeybind(keybind.WithKeys("esc", "ctrl+c", "q"), keybind.WithHelp("q", "quit")),
}

// queuedUpdate represented the execution of f queued by
// Application.QueueUpdate(). If "done" is not nil, it receives exactly one
// element after f has executed.
type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// Application represents the top node of an application. It owns the
// screen, serializes all access to primitives onto its event loop and
// routes mouse events, including mouse capture for drags.
//
// Application implements [scroll.Scheduler]: callbacks scheduled with
// AfterFunc run on the event loop, followed by a redraw.
//
//	if err := plainscroll.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
type Application struct {
	sync.RWMutex

	// The application's screen. Apart from Run(), this variable should never be
	// set directly.
	screen tcell.Screen

	// The root primitive to be seen on the screen.
	root Primitive

	events chan tcell.Event

	// Functions queued from goroutines, used to serialize updates to primitives.
	updates chan queuedUpdate

	// Closed when Run returns. started is set by the first Run.
	done    chan struct{}
	started bool

	quitKeys []keybind.Keybind
	logger   *slog.Logger

	mouseCapturingPrimitive Primitive        // A Primitive returned by a MouseHandler which will capture future mouse events.
	lastMouseX, lastMouseY  int              // The last position of the mouse.
	mouseDownX, mouseDownY  int              // The position of the mouse when its button was last pressed.
	lastMouseClick          time.Time        // The time when a mouse button was last clicked.
	lastMouseButtons        tcell.ButtonMask // The last mouse button state.

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{
		events:   make(chan tcell.Event, updatesQueueSize),
		updates:  make(chan queuedUpdate, updatesQueueSize),
		done:     make(chan struct{}),
		quitKeys: DefaultQuitKeys,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// SetScreen sets the application's screen. The screen must already be
// initialized.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// SetLogger sets the logger used for event loop diagnostics.
func (a *Application) SetLogger(logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a.Lock()
	a.logger = logger
	a.Unlock()
	return a
}

// SetQuitKeys replaces the key bindings that stop the application.
func (a *Application) SetQuitKeys(keys ...keybind.Keybind) *Application {
	a.Lock()
	a.quitKeys = keys
	a.Unlock()
	return a
}

// QuitKeys returns the key bindings that stop the application.
func (a *Application) QuitKeys() []keybind.Keybind {
	a.RLock()
	defer a.RUnlock()
	return a.quitKeys
}

// Run starts the application and thus the event loop. This function returns
// when [Application.Stop] was called. An application runs once; later calls
// return [ErrAlreadyRun].
func (a *Application) Run() error {
	var (
		lastRedraw  time.Time   // The time the screen was last redrawn.
		redrawTimer *time.Timer // A timer to schedule the next redraw.
	)
	a.Lock()
	if a.started {
		a.Unlock()
		return ErrAlreadyRun
	}
	a.started = true
	defer close(a.done)

	// Make a screen if there is none yet.
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			a.Unlock()
			return err
		}
		if err = screen.Init(); err != nil {
			a.Unlock()
			return err
		}
		a.screen = screen
	}
	screen := a.screen
	logger := a.logger
	a.Unlock()
	screen.EnableMouse()

	// We catch panics to clean up because they mess up the terminal.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	// Draw the screen for the first time.
	a.draw()

	// Separate loop to wait for screen events. PollEvent returns nil once
	// the screen is finalized.
	go func() {
		for {
			event := screen.PollEvent()
			a.events <- event
			if event == nil {
				return
			}
		}
	}()

EventLoop:
	for {
		select {
		// If we received an event, handle it.
		case event := <-a.events:
			if event == nil {
				break EventLoop
			}

			switch event := event.(type) {
			case *tcell.EventKey:
				if keybind.Matches(event, a.QuitKeys()...) {
					a.Stop()
				}
			case *tcell.EventResize:
				a.Lock()
				// Resize events can imply terminal state changes even when size
				// reports unchanged, so force one redraw pass.
				a.forceRedraw = true
				a.Unlock()
				if time.Since(lastRedraw) < redrawPause {
					if redrawTimer != nil {
						redrawTimer.Stop()
					}
					redrawTimer = time.AfterFunc(redrawPause, func() {
						a.QueueUpdateDraw(func() {})
					})
				}
				lastRedraw = time.Now()
				a.draw()
			case *tcell.EventMouse:
				if a.fireMouseActions(event) {
					a.draw()
				}
			case *tcell.EventError:
				logger.Error("screen error", "err", event)
				a.Stop()
				return event
			}

		// If we have updates, now is the time to execute them.
		case update := <-a.updates:
			update.f()
			if update.done != nil {
				update.done <- struct{}{}
			}
		}
	}

	return nil
}

// fireMouseActions analyzes the provided mouse event, derives mouse actions
// from it and then forwards them to the corresponding primitives.
// It reports whether the screen needs to be redrawn.
func (a *Application) fireMouseActions(event *tcell.EventMouse) (handled bool) {
	a.RLock()
	root := a.root
	a.RUnlock()

	var isMouseDownAction bool
	defer func() {
		a.lastMouseButtons = event.Buttons()
		if isMouseDownAction {
			a.mouseDownX, a.mouseDownY = event.Position()
		}
	}()

	// Helper function to fire a mouse action.
	fire := func(action MouseAction) {
		switch action {
		case MouseLeftDown, MouseMiddleDown, MouseRightDown:
			isMouseDownAction = true
		}

		// A capturing primitive receives everything, wherever the pointer is.
		primitive := root
		if a.mouseCapturingPrimitive != nil {
			primitive = a.mouseCapturingPrimitive
		}
		if primitive == nil {
			return
		}
		capturingPrimitive, cmd := primitive.MouseHandler(action, event)
		if a.executeCommand(cmd) {
			handled = true
		}
		if (capturingPrimitive == nil) != (a.mouseCapturingPrimitive == nil) {
			a.logger.Debug("mouse capture changed", "captured", capturingPrimitive != nil, "action", action)
		}
		a.mouseCapturingPrimitive = capturingPrimitive
	}

	x, y := event.Position()
	buttons := event.Buttons()
	clickMoved := x != a.mouseDownX || y != a.mouseDownY
	buttonChanges := buttons ^ a.lastMouseButtons

	if x != a.lastMouseX || y != a.lastMouseY {
		fire(MouseMove)
		a.lastMouseX = x
		a.lastMouseY = y
	}

	for _, buttonEvent := range []struct {
		button                  tcell.ButtonMask
		down, up, click, dclick MouseAction
	}{
		{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
		{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
		{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
	} {
		if buttonChanges&buttonEvent.button != 0 {
			if buttons&buttonEvent.button != 0 {
				fire(buttonEvent.down)
			} else {
				fire(buttonEvent.up)
				if !clickMoved {
					if a.lastMouseClick.Add(DoubleClickInterval).Before(time.Now()) {
						fire(buttonEvent.click)
						a.lastMouseClick = time.Now()
					} else {
						fire(buttonEvent.dclick)
						a.lastMouseClick = time.Time{} // reset
					}
				}
			}
		}
	}

	for _, wheelEvent := range []struct {
		button tcell.ButtonMask
		action MouseAction
	}{
		{tcell.WheelUp, MouseScrollUp},
		{tcell.WheelDown, MouseScrollDown},
		{tcell.WheelLeft, MouseScrollLeft},
		{tcell.WheelRight, MouseScrollRight}} {
		if buttons&wheelEvent.button != 0 {
			fire(wheelEvent.action)
		}
	}

	return handled
}

// Stop stops the application, causing Run() to return.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	screen := a.screen
	if screen == nil {
		return
	}
	screen.Fini()
	a.screen = nil
}

// Draw refreshes the screen during the next update cycle. Never call it
// from the event loop itself (e.g. in a callback function of a widget); it
// blocks until the loop has drawn.
func (a *Application) Draw() *Application {
	a.QueueUpdate(func() {
		a.draw()
	})
	return a
}

// draw actually does what Draw() promises to do.
func (a *Application) draw() *Application {
	a.Lock()
	screen := a.screen
	root := a.root
	forceRedraw := a.forceRedraw
	a.Unlock()

	// Maybe we're not ready yet or not anymore.
	if screen == nil || root == nil {
		return a
	}

	drawWidth, drawHeight := screen.Size()
	root.SetRect(0, 0, drawWidth, drawHeight)

	if forceRedraw {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()

	a.Lock()
	a.forceRedraw = false
	a.Unlock()

	return a
}

// SetRoot sets the root primitive for this application. This function must
// be called at least once or nothing will be displayed when the application
// starts.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	a.mouseCapturingPrimitive = nil
	if a.screen != nil {
		a.forceRedraw = true
	}
	a.Unlock()
	return a
}

// QueueUpdate is used to synchronize access to primitives from non-main
// goroutines. The provided function will be executed as part of the event loop
// and thus will not cause race conditions with other such update functions or
// the Draw() function.
//
// This function returns after f has executed. It returns immediately
// without running f if the event loop has already ended.
func (a *Application) QueueUpdate(f func()) *Application {
	ch := make(chan struct{})
	select {
	case a.updates <- queuedUpdate{f: f, done: ch}:
	case <-a.done:
		return a
	}
	select {
	case <-ch:
	case <-a.done:
	}
	return a
}

// QueueUpdateDraw works like QueueUpdate() except it refreshes the screen
// immediately after executing f.
func (a *Application) QueueUpdateDraw(f func()) *Application {
	a.QueueUpdate(func() {
		f()
		a.draw()
	})
	return a
}

// post queues f without waiting for it.
func (a *Application) post(f func()) {
	select {
	case a.updates <- queuedUpdate{f: f}:
	case <-a.done:
	}
}

type loopTimer struct {
	timer *time.Timer
	// Only accessed on the event loop.
	stopped bool
	fired   bool
}

func (t *loopTimer) Stop() bool {
	pending := !t.stopped && !t.fired
	t.stopped = true
	t.timer.Stop()
	return pending
}

// AfterFunc runs f on the event loop once d has elapsed and redraws. The
// returned timer must be stopped from the event loop; a stopped timer never
// runs f, even if it already expired and is waiting in the update queue.
func (a *Application) AfterFunc(d time.Duration, f func()) scroll.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		a.post(func() {
			if t.stopped {
				return
			}
			t.fired = true
			f()
			a.draw()
		})
	})
	return t
}

func (a *Application) executeCommand(cmd Command) bool {
	if cmd == nil {
		return false
	}

	switch c := cmd.(type) {
	case BatchCommand:
		handled := false
		for _, item := range c {
			if a.executeCommand(item) {
				handled = true
			}
		}
		return handled
	case RedrawCommand:
		return true
	case QuitCommand:
		a.Stop()
		return false
	}

	return false
}

var _ scroll.Scheduler = &Application{}
