package stableview

import "github.com/gdamore/tcell/v3"

// Primitive is the top-most interface for all graphical primitives.
type Primitive interface {
	// Draw draws this primitive onto the screen.
	Draw(screen tcell.Screen)

	// GetRect returns the current position of the primitive, x, y, width, and
	// height.
	GetRect() (int, int, int, int)
	// SetRect sets a new position of the primitive.
	SetRect(x, y, width, height int)

	// InputHandler receives key events when this primitive has focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler receives mouse events.
	// The returned capture primitive (if non-nil) receives follow-up mouse events until the capture is released.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command)

	// HasFocus determines if the primitive has focus. This function must return
	// true also if one of this primitive's child elements has focus.
	HasFocus() bool
	// Focus is called by the application when the primitive receives focus.
	// Implementers may call delegate() to pass the focus on to another primitive.
	Focus(delegate func(p Primitive))
	// Blur is called by the application when the primitive loses focus.
	Blur()
}

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseScrollUp
	MouseScrollDown
)

func (a MouseAction) String() string {
	switch a {
	case MouseMove:
		return "move"
	case MouseLeftDown:
		return "left-down"
	case MouseLeftUp:
		return "left-up"
	case MouseLeftClick:
		return "left-click"
	case MouseScrollUp:
		return "scroll-up"
	case MouseScrollDown:
		return "scroll-down"
	}
	return "unknown"
}
