package stableview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v3"
)

const (
	// The size of the queued updates channel.
	updatesQueueSize = 100
	// The minimum time between two consecutive redraws.
	redrawPause = 50 * time.Millisecond
)

// queuedUpdate represented the execution of f queued by
// Application.QueueUpdate(). If "done" is not nil, it receives exactly one
// element after f has executed.
type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// Application represents the top node of an application. It owns the screen,
// runs the event loop and executes the commands returned by primitives.
//
// The following command displays a primitive p on the screen until the
// application is stopped (for example via QuitCommand):
//
//	if err := stableview.NewApplication().SetRoot(p).Run(); err != nil {
//	    panic(err)
//	}
type Application struct {
	sync.RWMutex

	// The application's screen. Apart from Run(), this variable should never be
	// set directly.
	screen tcell.Screen

	// The primitive which currently has the keyboard focus.
	focus Primitive

	// The root primitive to be seen on the screen.
	root Primitive

	events chan tcell.Event

	// Functions queued from goroutines, used to serialize updates to primitives.
	updates chan queuedUpdate

	// ctx is cancelled by Stop; done is closed when Run returns.
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mouseCapturingPrimitive Primitive        // A Primitive returned by a MouseHandler which will capture future mouse events.
	lastMouseX, lastMouseY  int              // The last position of the mouse.
	mouseDownX, mouseDownY  int              // The position of the mouse when its button was last pressed.
	lastMouseButtons        tcell.ButtonMask // The last mouse button state.

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool

	logger *slog.Logger
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		updates: make(chan queuedUpdate, updatesQueueSize),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// SetScreen sets the application's screen.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

// SetLogger sets the logger used for event loop records.
func (a *Application) SetLogger(logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a.Lock()
	a.logger = logger
	a.Unlock()
	return a
}

// Context returns a context that is cancelled when the application stops.
func (a *Application) Context() context.Context {
	return a.ctx
}

// Run starts the application and thus the event loop. This function returns
// when [Application.Stop] was called or the screen failed.
//
// While an application is running it fully claims stdin, stdout and stderr;
// log to a file instead.
func (a *Application) Run() (err error) {
	defer close(a.done)
	defer a.cancel()

	a.Lock()
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
		screen.EnableMouse()
		a.screen = screen
	}
	a.events = a.screen.EventQ()
	events := a.events
	a.Unlock()

	// A panic would leave the terminal in raw mode.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()

	a.draw()
	a.logger.Debug("event loop started")

	var resize resizeThrottle
	for {
		select {
		case event := <-events:
			if event == nil {
				return err
			}
			switch event := event.(type) {
			case *tcell.EventKey:
				a.handleKey(event)
			case *tcell.EventResize:
				a.handleResize(event, &resize)
			case *tcell.EventMouse:
				a.handleMouse(event)
			case *tcell.EventError:
				a.logger.Error("screen error", "error", event)
				err = event
				a.Stop()
			}
		case update := <-a.updates:
			update.f()
			if update.done != nil {
				update.done <- struct{}{}
			}
		}
	}
}

// resizeThrottle coalesces resize bursts so the last size is always drawn.
type resizeThrottle struct {
	last  time.Time
	timer *time.Timer
}

func (a *Application) handleKey(event *tcell.EventKey) {
	a.RLock()
	root := a.root
	a.RUnlock()
	if root != nil && root.HasFocus() && a.executeCommand(root.InputHandler(event)) {
		a.draw()
	}
}

func (a *Application) handleResize(event *tcell.EventResize, throttle *resizeThrottle) {
	a.Lock()
	// Resize events can imply terminal state changes even when the size is
	// unchanged.
	a.forceRedraw = true
	a.Unlock()
	if time.Since(throttle.last) < redrawPause {
		if throttle.timer != nil {
			throttle.timer.Stop()
		}
		throttle.timer = time.AfterFunc(redrawPause, func() {
			a.QueueEvent(event)
		})
	}
	throttle.last = time.Now()
	a.draw()
}

func (a *Application) handleMouse(event *tcell.EventMouse) {
	handled, down := a.fireMouseActions(event)
	if handled {
		a.draw()
	}
	a.lastMouseButtons = event.Buttons()
	if down {
		a.mouseDownX, a.mouseDownY = event.Position()
	}
}

// fireMouseActions analyzes the provided mouse event, derives mouse actions
// from it and then forwards them to the corresponding primitives.
func (a *Application) fireMouseActions(event *tcell.EventMouse) (handled, isMouseDownAction bool) {
	// We want to relay follow-up events to the same target primitive.
	var targetPrimitive Primitive

	fire := func(action MouseAction) {
		if action == MouseLeftDown {
			isMouseDownAction = true
		}

		// Determine the target primitive.
		var primitive, capturingPrimitive Primitive
		if a.mouseCapturingPrimitive != nil {
			primitive = a.mouseCapturingPrimitive
			targetPrimitive = a.mouseCapturingPrimitive
		} else if targetPrimitive != nil {
			primitive = targetPrimitive
		} else {
			primitive = a.root
		}
		if primitive != nil {
			var cmd Command
			capturingPrimitive, cmd = primitive.MouseHandler(action, event)
			if a.executeCommand(cmd) {
				handled = true
			}
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

	if buttonChanges&tcell.ButtonPrimary != 0 {
		if buttons&tcell.ButtonPrimary != 0 {
			fire(MouseLeftDown)
		} else {
			fire(MouseLeftUp)
			if !clickMoved {
				fire(MouseLeftClick)
			}
		}
	}

	if buttons&tcell.WheelUp != 0 {
		fire(MouseScrollUp)
	}
	if buttons&tcell.WheelDown != 0 {
		fire(MouseScrollDown)
	}

	return handled, isMouseDownAction
}

// Stop stops the application, causing Run() to return. Contexts handed to
// AsyncCommand values are cancelled.
func (a *Application) Stop() {
	a.cancel()
	a.Lock()
	defer a.Unlock()
	screen := a.screen
	if screen == nil {
		return
	}
	screen.Fini()
	a.screen = nil
}

// Draw refreshes the screen during the next update cycle. Never call it from
// the event loop itself, it would deadlock.
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

	// tcell keeps a logical back buffer and emits only deltas in Show(), so
	// full clears are kept for forced redraws.
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

// SetRoot sets the root primitive for this application and focuses it.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	if a.screen != nil {
		a.forceRedraw = true
	}
	a.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus sets the focus to a new primitive. Blur() is called on the
// previously focused primitive, Focus() on the new one.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}

	return a
}

// GetFocus returns the primitive which has the current focus. If none has it,
// nil is returned.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// QueueUpdate is used to synchronize access to primitives from non-main
// goroutines. The provided function will be executed as part of the event loop
// and thus will not cause race conditions with other such update functions or
// the Draw() function.
//
// This function returns after f has executed, or immediately once the
// application has stopped.
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

// QueueEvent sends an event to the Application event loop.
func (a *Application) QueueEvent(event tcell.Event) *Application {
	a.RLock()
	events := a.events
	a.RUnlock()
	if events == nil {
		return a
	}
	select {
	case events <- event:
	case <-a.done:
	}
	return a
}

// post runs cmd on the event loop and redraws if it asks for it. It does not
// wait and drops cmd once the application has stopped.
func (a *Application) post(cmd Command) {
	update := queuedUpdate{f: func() {
		if a.executeCommand(cmd) {
			a.draw()
		}
	}}
	select {
	case a.updates <- update:
	case <-a.done:
	}
}

// executeCommand runs cmd and reports whether the screen needs a redraw.
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
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		a.RLock()
		changed := a.focus != c.Target
		a.RUnlock()
		a.SetFocus(c.Target)
		return changed
	case CallbackCommand:
		if c == nil {
			return false
		}
		return a.executeCommand(c())
	case DelayCommand:
		if c.Command == nil {
			return false
		}
		time.AfterFunc(c.Delay, func() {
			a.post(c.Command)
		})
		return false
	case AsyncCommand:
		if c == nil {
			return false
		}
		go func() {
			a.post(c(a.ctx))
		}()
		return false
	}

	a.RLock()
	logger := a.logger
	a.RUnlock()
	logger.Debug("unknown command ignored", "command", cmd)
	return false
}
