// Package glfwinput feeds a GLFW window's mouse and keyboard into a gizmo.
package glfwinput

import (
	"errors"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/geom"
)

// Frame is the window input state sampled once per frame.
type Frame struct {
	CursorX, CursorY float64
	Width, Height    int

	Button    glfw.Action
	CancelKey glfw.Action
	Focused   bool
}

// ReadFrame samples w. The host still owns glfw.PollEvents.
func ReadFrame(w *glfw.Window, p *Poller) Frame {
	x, y := w.GetCursorPos()
	width, height := w.GetSize()
	return Frame{
		CursorX:   x,
		CursorY:   y,
		Width:     width,
		Height:    height,
		Button:    w.GetMouseButton(p.Button),
		CancelKey: w.GetKey(p.CancelKey),
		Focused:   w.GetAttrib(glfw.Focused) == glfw.True,
	}
}

// Normalize maps window coordinates (origin top-left, +Y down) to the
// gizmo's pointer space: [-1,1] on both axes with +Y up.
func Normalize(x, y float64, width, height int) (float32, float32, bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	nx := 2*x/float64(width) - 1
	ny := 1 - 2*y/float64(height)
	return float32(nx), float32(ny), true
}

// Poller turns successive frames into pointer events by edge detection.
type Poller struct {
	Button    glfw.MouseButton
	CancelKey glfw.Key

	pressed    bool
	suppressed bool
	cancelDown bool

	lastX, lastY float32
	hasLast      bool
}

func NewPoller() *Poller {
	return &Poller{
		Button:    glfw.MouseButtonLeft,
		CancelKey: glfw.KeyEscape,
	}
}

// Events returns the pointer events produced by f, in the order they should
// be handled: cancel, move, then press or release.
func (p *Poller) Events(f Frame) []gizmo.PointerEvent {
	var events []gizmo.PointerEvent

	x, y, ok := Normalize(f.CursorX, f.CursorY, f.Width, f.Height)
	if !ok {
		x, y = p.lastX, p.lastY
	}

	buttonDown := f.Button == glfw.Press
	cancelDown := f.CancelKey == glfw.Press
	justCancelled := cancelDown && !p.cancelDown
	p.cancelDown = cancelDown

	// Focus loss or the cancel key abort a held press. The button stays
	// swallowed until it is released.
	if p.pressed && (!f.Focused || justCancelled) {
		events = append(events, gizmo.PointerEvent{Kind: gizmo.PointerCancel})
		p.pressed = false
		p.suppressed = true
	}

	if ok && (!p.hasLast || x != p.lastX || y != p.lastY) {
		if p.hasLast {
			events = append(events, gizmo.PointerEvent{Kind: gizmo.PointerMove, X: x, Y: y})
		}
		p.lastX, p.lastY, p.hasLast = x, y, true
	}

	switch {
	case p.suppressed:
		if !buttonDown {
			p.suppressed = false
		}
	case buttonDown && !p.pressed && f.Focused && ok:
		events = append(events, gizmo.PointerEvent{Kind: gizmo.PointerDown, X: x, Y: y})
		p.pressed = true
	case !buttonDown && p.pressed:
		events = append(events, gizmo.PointerEvent{Kind: gizmo.PointerUp, X: x, Y: y})
		p.pressed = false
	}
	return events
}

// Pump samples w once and runs the resulting events through g. Errors for
// individual events are joined; later events are still delivered.
func Pump(w *glfw.Window, p *Poller, g *gizmo.Gizmo, cam geom.Camera) error {
	return Dispatch(g, cam, p.Events(ReadFrame(w, p)))
}

func Dispatch(g *gizmo.Gizmo, cam geom.Camera, events []gizmo.PointerEvent) error {
	var errs []error
	for _, ev := range events {
		if err := g.HandleEvent(cam, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
