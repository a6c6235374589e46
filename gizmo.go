// Package gizmo is an interactive translate/rotate/scale gizmo core. The host
// owns rendering and input; it feeds pointer events and a camera in, draws
// CurrentHandles, and receives transform changes through OnTransformChanged.
//
// All methods except Snapshot must be called from a single goroutine.
package gizmo

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gekko3d/gizmo/geom"
)

var (
	ErrMalformedCamera    = errors.New("gizmo: malformed camera")
	ErrMalformedTransform = errors.New("gizmo: malformed transform")
	ErrMalformedPointer   = errors.New("gizmo: malformed pointer event")
	ErrDragActive         = errors.New("gizmo: drag in progress")
)

type Gizmo struct {
	cfg    Config
	logger Logger
	engine *Engine

	space        Space
	pendingSpace *Space

	target    geom.Transform
	published transformBuffer

	camera    geom.Camera
	hasCamera bool
	handles   []Handle

	hovered    HandleID
	hasHovered bool

	listeners []func(TransformChange)
}

type Option func(*Gizmo)

func WithLogger(l Logger) Option {
	return func(g *Gizmo) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a gizmo attached to target. The target's rotation is stored
// normalized.
func New(cfg Config, target geom.Transform, opts ...Option) (*Gizmo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTransform, err)
	}

	g := &Gizmo{
		cfg:    cfg,
		logger: NewNopLogger(),
		engine: NewEngine(cfg),
		space:  cfg.Space,
		target: target.Normalized(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.published.publish(g.target)
	return g, nil
}

func (g *Gizmo) Config() Config {
	return g.cfg
}

func (g *Gizmo) State() State {
	return g.engine.State()
}

func (g *Gizmo) Space() Space {
	return g.space
}

// SetSpace switches the coordinate space. During a drag the switch is
// deferred until the drag ends.
func (g *Gizmo) SetSpace(s Space) {
	if g.engine.Dragging() {
		g.pendingSpace = &s
		g.logger.Debugf("space switch to %s deferred until drag %s ends", s, g.engine.SessionID())
		return
	}
	g.space = s
	g.pendingSpace = nil
	g.rebuildHandles()
}

// ToggleSpace flips between local and world.
func (g *Gizmo) ToggleSpace() {
	next := SpaceLocal
	current := g.space
	if g.pendingSpace != nil {
		current = *g.pendingSpace
	}
	if current == SpaceLocal {
		next = SpaceWorld
	}
	g.SetSpace(next)
}

// Target is the transform the gizmo last wrote or was given.
func (g *Gizmo) Target() geom.Transform {
	return g.target
}

// SetTarget replaces the target transform, e.g. after the host moved the
// object. It is refused while dragging. The rotation is stored normalized.
func (g *Gizmo) SetTarget(tr geom.Transform) error {
	if g.engine.Dragging() {
		return ErrDragActive
	}
	if err := tr.Validate(); err != nil {
		g.logger.Errorf("rejected target transform: %v", err)
		return fmt.Errorf("%w: %w", ErrMalformedTransform, err)
	}
	g.target = tr.Normalized()
	g.published.publish(g.target)
	g.rebuildHandles()
	return nil
}

// Snapshot returns the last published transform. It is safe to call from
// any goroutine, e.g. a render thread.
func (g *Gizmo) Snapshot() geom.Transform {
	return g.published.load()
}

// SetCamera updates the camera and regenerates the handles, e.g. once per
// frame before drawing.
func (g *Gizmo) SetCamera(cam geom.Camera) error {
	if err := cam.Validate(); err != nil {
		g.logger.Errorf("rejected camera: %v", err)
		return fmt.Errorf("%w: %w", ErrMalformedCamera, err)
	}
	g.camera = cam
	g.hasCamera = true
	g.rebuildHandles()
	return nil
}

func (g *Gizmo) OnTransformChanged(fn func(TransformChange)) {
	if fn != nil {
		g.listeners = append(g.listeners, fn)
	}
}

// CurrentHandles returns the handles for drawing. The slice is a copy.
func (g *Gizmo) CurrentHandles() []Handle {
	out := make([]Handle, len(g.handles))
	copy(out, g.handles)
	return out
}

func (g *Gizmo) HoveredHandle() (Handle, bool) {
	if !g.hasHovered {
		return Handle{}, false
	}
	return g.handleByID(g.hovered)
}

func (g *Gizmo) ActiveHandle() (Handle, bool) {
	active, ok := g.engine.Active()
	if !ok {
		return Handle{}, false
	}
	if h, ok := g.handleByID(active.ID); ok {
		return h, true
	}
	return active, true
}

func (g *Gizmo) handleByID(id HandleID) (Handle, bool) {
	for _, h := range g.handles {
		if h.ID == id {
			return h, true
		}
	}
	return Handle{}, false
}

// Cancel aborts a running drag and restores the drag-start transform. It is a
// no-op when idle. The restored rotation is the normalized quaternion stored
// by New or SetTarget, so it matches the host's input within float epsilon
// rather than bit for bit when that input was not unit length.
func (g *Gizmo) Cancel() {
	g.cancel()
}

// HandleEvent runs one pointer event through the interaction state machine.
// Errors are returned only for malformed host input; invalid transitions and
// degenerate geometry are absorbed.
func (g *Gizmo) HandleEvent(cam geom.Camera, ev PointerEvent) error {
	switch ev.Kind {
	case PointerUp:
		g.commit()
		return nil
	case PointerCancel:
		g.cancel()
		return nil
	case PointerDown, PointerMove:
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrMalformedPointer, int(ev.Kind))
	}

	if !geom.FiniteVec2(ev.NDC()) {
		g.logger.Errorf("rejected %s event at (%v, %v)", ev.Kind, ev.X, ev.Y)
		return fmt.Errorf("%w: non-finite coordinates (%v, %v)", ErrMalformedPointer, ev.X, ev.Y)
	}
	if err := g.SetCamera(cam); err != nil {
		return err
	}

	ray, ok := geom.RayFromScreen(cam, ev.NDC())
	if !ok {
		g.logger.Debugf("no pointer ray for %s at (%v, %v)", ev.Kind, ev.X, ev.Y)
		return nil
	}

	if ev.Kind == PointerDown {
		g.pointerDown(ray)
	} else {
		g.pointerMove(ray)
	}
	return nil
}

func (g *Gizmo) pointerDown(ray geom.Ray) {
	if g.engine.Dragging() {
		g.logger.Debugf("pointer down ignored: drag %s in progress", g.engine.SessionID())
		return
	}

	h, ok := Pick(ray, g.handles, g.camera, g.cfg.PickTolerancePx)
	if !ok {
		g.hasHovered = false
		return
	}
	g.hovered, g.hasHovered = h.ID, true

	if !g.engine.Begin(h, ray, g.camera, g.target, g.space) {
		g.logger.Debugf("drag on %s not started: constraint not reachable from this view", h.ID)
		return
	}
	g.logger.Infof("drag %s started on %s (%s space)", g.engine.SessionID(), h.ID, g.space)
}

func (g *Gizmo) pointerMove(ray geom.Ray) {
	if !g.engine.Dragging() {
		h, ok := Pick(ray, g.handles, g.camera, g.cfg.PickTolerancePx)
		g.hovered, g.hasHovered = h.ID, ok
		return
	}

	tr, changed := g.engine.Update(ray)
	if !changed {
		g.logger.Debugf("drag %s held: constraint not hit", g.engine.SessionID())
		return
	}
	active, _ := g.engine.Active()
	g.write(tr, active.ID, PhaseUpdate)
}

func (g *Gizmo) commit() {
	if !g.engine.Dragging() {
		g.logger.Debugf("pointer up ignored: no drag")
		return
	}
	active, _ := g.engine.Active()
	id := g.engine.SessionID()
	tr, _ := g.engine.End()

	g.logger.Infof("drag %s committed on %s", id, active.ID)
	g.writeSession(tr, active.ID, id, PhaseCommit)
	g.afterDrag()
}

func (g *Gizmo) cancel() {
	if !g.engine.Dragging() {
		g.logger.Debugf("cancel ignored: no drag")
		return
	}
	active, _ := g.engine.Active()
	id := g.engine.SessionID()
	tr, _ := g.engine.Cancel()

	g.logger.Infof("drag %s cancelled on %s", id, active.ID)
	g.writeSession(tr, active.ID, id, PhaseCancel)
	g.afterDrag()
}

func (g *Gizmo) afterDrag() {
	if g.pendingSpace != nil {
		g.space = *g.pendingSpace
		g.pendingSpace = nil
		g.logger.Debugf("deferred space switch to %s applied", g.space)
	}
	g.rebuildHandles()
}

func (g *Gizmo) write(tr geom.Transform, handle HandleID, phase Phase) {
	g.writeSession(tr, handle, g.engine.SessionID(), phase)
}

func (g *Gizmo) writeSession(tr geom.Transform, handle HandleID, session uuid.UUID, phase Phase) {
	g.target = tr
	g.published.publish(tr)
	g.rebuildHandles()

	change := TransformChange{
		Transform: tr,
		Handle:    handle,
		Session:   session,
		Phase:     phase,
	}
	for _, fn := range g.listeners {
		fn(change)
	}
}

func (g *Gizmo) rebuildHandles() {
	if !g.hasCamera {
		g.handles = nil
		return
	}
	space := g.space
	if g.engine.Dragging() {
		space = g.engine.Space()
	}
	g.handles = BuildHandles(g.target, g.camera.SizingDistance(g.target.Position), space, g.cfg)
}

