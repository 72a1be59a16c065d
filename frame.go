package stableview

import (
	"github.com/gdamore/tcell/v3"

	"github.com/xqrs/stableview/keybind"
)

// Frame lays out a body above a one-line footer, typically a help bar. The
// body keeps the keyboard focus; the footer only receives mouse events.
type Frame struct {
	*Box

	body   Primitive
	footer Primitive
	quit   keybind.Keybind

	// setFocus is the delegate handed to Focus, kept to move the focus to
	// the body when it is replaced.
	setFocus func(p Primitive)
}

// NewFrame returns a frame around body. q and ctrl+c quit the application.
func NewFrame(body Primitive) *Frame {
	return &Frame{
		Box:  NewBox(),
		body: body,
		quit: keybind.NewKeybind(
			keybind.WithKeys("q", "ctrl+c"),
			keybind.WithHelp("q", "quit"),
		),
	}
}

// SetBody replaces the body.
func (f *Frame) SetBody(body Primitive) *Frame {
	hasFocus := f.HasFocus()
	f.body = body
	if hasFocus && f.setFocus != nil {
		f.Focus(f.setFocus)
	}
	return f
}

// SetFooter sets the primitive drawn on the last line. Nil removes it.
func (f *Frame) SetFooter(footer Primitive) *Frame {
	f.footer = footer
	return f
}

// SetQuitKeys replaces the quit keybind.
func (f *Frame) SetQuitKeys(quit keybind.Keybind) *Frame {
	f.quit = quit
	return f
}

// QuitKeys returns the quit keybind, for use in help bars.
func (f *Frame) QuitKeys() keybind.Keybind {
	return f.quit
}

// Draw draws this primitive onto the screen.
func (f *Frame) Draw(screen tcell.Screen) {
	f.DrawForSubclass(screen, f)

	x, y, width, height := f.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	bodyHeight := height
	if f.footer != nil && height > 1 {
		bodyHeight--
		f.footer.SetRect(x, y+bodyHeight, width, 1)
		f.footer.Draw(screen)
	}
	if f.body != nil {
		f.body.SetRect(x, y, width, bodyHeight)
		f.body.Draw(screen)
	}
}

// Focus passes the focus on to the body.
func (f *Frame) Focus(delegate func(p Primitive)) {
	f.setFocus = delegate
	if f.body != nil {
		delegate(f.body)
		return
	}
	f.Box.Focus(delegate)
}

// HasFocus reports whether the frame or its body has the focus.
func (f *Frame) HasFocus() bool {
	if f.body != nil && f.body.HasFocus() {
		return true
	}
	return f.Box.HasFocus()
}

// InputHandler handles the quit keys and passes everything else to the body.
func (f *Frame) InputHandler(event *tcell.EventKey) Command {
	if keybind.Matches(event, f.quit) {
		return QuitCommand{}
	}
	if f.body != nil && f.body.HasFocus() {
		return f.body.InputHandler(event)
	}
	return nil
}

// MouseHandler passes mouse events to the child under the pointer.
func (f *Frame) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if !f.InRect(event.Position()) {
		return nil, nil
	}
	for _, child := range []Primitive{f.footer, f.body} {
		if child == nil {
			continue
		}
		if x, y, width, height := child.GetRect(); contains(x, y, width, height, event) {
			return child.MouseHandler(action, event)
		}
	}
	return nil, nil
}

func contains(x, y, width, height int, event *tcell.EventMouse) bool {
	px, py := event.Position()
	return px >= x && px < x+width && py >= y && py < y+height
}
