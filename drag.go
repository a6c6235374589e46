package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/gizmo/geom"
)

// minFacing is the smallest sine between the view direction and a
// translation axis for which a constraint plane is built.
const minFacing = 1e-3

// dragSession lives between a successful Begin and End/Cancel. Its
// constraint geometry is fixed at Begin and never follows the object.
type dragSession struct {
	id     uuid.UUID
	handle Handle
	space  Space
	start  geom.Transform

	anchor      mgl32.Vec3
	center      mgl32.Vec3
	axis        mgl32.Vec3
	planeNormal mgl32.Vec3
	diagonal    mgl32.Vec3
	refLength   float32

	delta   Delta
	current geom.Transform
	frozen  int
}

// Engine is the drag state machine: Idle until Begin succeeds, Dragging
// until End or Cancel. It holds at most one session.
type Engine struct {
	cfg     Config
	applier Applier
	session *dragSession
}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		applier: Applier{MinScale: cfg.MinScale},
	}
}

func (e *Engine) State() State {
	if e.session != nil {
		return StateDragging
	}
	return StateIdle
}

func (e *Engine) Dragging() bool {
	return e.session != nil
}

// Active returns the handle of the running drag.
func (e *Engine) Active() (Handle, bool) {
	if e.session == nil {
		return Handle{}, false
	}
	return e.session.handle, true
}

func (e *Engine) SessionID() uuid.UUID {
	if e.session == nil {
		return uuid.Nil
	}
	return e.session.id
}

// Space is the coordinate space the running drag was started in.
func (e *Engine) Space() Space {
	if e.session == nil {
		return e.cfg.Space
	}
	return e.session.space
}

// Delta is the last delta that produced a transform.
func (e *Engine) Delta() Delta {
	if e.session == nil {
		return IdentityDelta()
	}
	return e.session.delta
}

// Anchor is the world point where the drag-start ray met the constraint.
func (e *Engine) Anchor() (mgl32.Vec3, bool) {
	if e.session == nil {
		return mgl32.Vec3{}, false
	}
	return e.session.anchor, true
}

// Begin starts a drag on h. It returns false, leaving the engine idle, when a
// drag is already running or when the ray does not meet h's constraint
// geometry.
func (e *Engine) Begin(h Handle, ray geom.Ray, cam geom.Camera, start geom.Transform, space Space) bool {
	if e.session != nil {
		return false
	}

	s := &dragSession{
		id:        uuid.New(),
		handle:    h,
		space:     space,
		start:     start,
		center:    h.Center,
		axis:      h.Axis,
		refLength: h.Length,
		delta:     IdentityDelta(),
		current:   start,
	}
	if s.axis.Len() > geom.Epsilon {
		s.axis = s.axis.Normalize()
	}
	if s.refLength < minHandleLength {
		s.refLength = minHandleLength
	}
	view := viewDirection(cam, h.Center)

	var ok bool
	switch h.Kind() {
	case KindTranslate:
		// The plane contains the axis and faces the camera as much as
		// possible: its normal is the view direction minus its axial part.
		n := view.Sub(s.axis.Mul(view.Dot(s.axis)))
		if n.Len() < minFacing {
			return false
		}
		s.planeNormal = n.Normalize()
		s.anchor, ok = hitPlane(ray, s.center, s.planeNormal)

	case KindRotate:
		s.planeNormal = s.axis
		s.anchor, ok = hitPlane(ray, s.center, s.planeNormal)
		if ok && s.anchor.Sub(s.center).Len() < geom.Epsilon {
			ok = false
		}

	case KindScale:
		s.anchor, ok = geom.ClosestPointOnLine(ray, s.center, s.axis)

	case KindScaleUniform:
		s.planeNormal = view.Mul(-1)
		s.diagonal = cam.Right().Add(cam.Up()).Normalize()
		s.anchor, ok = hitPlane(ray, s.center, s.planeNormal)
	}
	if !ok {
		return false
	}

	e.session = s
	return true
}

// Update intersects ray with the session's constraint and applies the
// resulting delta to the drag-start transform. When the intersection fails
// the previous transform is held and changed is false.
func (e *Engine) Update(ray geom.Ray) (tr geom.Transform, changed bool) {
	s := e.session
	if s == nil {
		return geom.Transform{}, false
	}

	d, ok := e.derive(s, ray)
	if !ok {
		s.frozen++
		return s.current, false
	}
	next := e.applier.Apply(s.start, d, s.space)
	if next.Validate() != nil {
		s.frozen++
		return s.current, false
	}

	s.delta = d
	s.current = next
	return next, true
}

// Frozen counts the moves held because of degenerate geometry.
func (e *Engine) Frozen() int {
	if e.session == nil {
		return 0
	}
	return e.session.frozen
}

// End commits the drag and returns the last computed transform.
func (e *Engine) End() (geom.Transform, bool) {
	s := e.session
	if s == nil {
		return geom.Transform{}, false
	}
	e.session = nil
	return s.current, true
}

// Cancel discards the drag and returns the drag-start transform unchanged.
func (e *Engine) Cancel() (geom.Transform, bool) {
	s := e.session
	if s == nil {
		return geom.Transform{}, false
	}
	e.session = nil
	return s.start, true
}

func (e *Engine) derive(s *dragSession, ray geom.Ray) (Delta, bool) {
	d := IdentityDelta()

	switch s.handle.Kind() {
	case KindTranslate:
		cur, ok := hitPlane(ray, s.center, s.planeNormal)
		if !ok {
			return d, false
		}
		k := snap(cur.Sub(s.anchor).Dot(s.axis), e.cfg.TranslationSnap)
		if s.space == SpaceLocal {
			d.Translation = s.handle.LocalAxis.Mul(k)
		} else {
			d.Translation = s.axis.Mul(k)
		}

	case KindRotate:
		cur, ok := hitPlane(ray, s.center, s.planeNormal)
		if !ok {
			return d, false
		}
		v := cur.Sub(s.center)
		if v.Len() < geom.Epsilon {
			return d, false
		}
		angle := geom.AngleBetween(s.anchor.Sub(s.center), v, s.axis)
		angle = snap(angle, mgl32.DegToRad(e.cfg.RotationSnapDeg))
		if s.space == SpaceLocal {
			d.Rotation = mgl32.QuatRotate(angle, s.handle.LocalAxis.Normalize())
		} else {
			d.Rotation = mgl32.QuatRotate(angle, s.axis)
		}

	case KindScale:
		cur, ok := geom.ClosestPointOnLine(ray, s.center, s.axis)
		if !ok {
			return d, false
		}
		f := e.scaleFactor(cur.Sub(s.anchor).Dot(s.axis), s.refLength)
		d.Scale[s.handle.ID.AxisIndex()] = f

	case KindScaleUniform:
		cur, ok := hitPlane(ray, s.center, s.planeNormal)
		if !ok {
			return d, false
		}
		f := e.scaleFactor(cur.Sub(s.anchor).Dot(s.diagonal), s.refLength)
		d.Scale = mgl32.Vec3{f, f, f}
	}
	return d, true
}

func (e *Engine) scaleFactor(offset, refLength float32) float32 {
	f := snap(1+offset/refLength, e.cfg.ScaleSnap)
	minScale := e.cfg.MinScale
	if minScale <= 0 {
		minScale = DefaultMinScale
	}
	if f < minScale {
		f = minScale
	}
	return f
}

// hitPlane is the plane intersection used while dragging: hits behind the
// ray origin count as misses.
func hitPlane(ray geom.Ray, point, normal mgl32.Vec3) (mgl32.Vec3, bool) {
	t, ok := geom.RayPlaneDistance(ray, point, normal)
	if !ok || t < 0 {
		return mgl32.Vec3{}, false
	}
	return ray.At(t), true
}

func viewDirection(cam geom.Camera, target mgl32.Vec3) mgl32.Vec3 {
	if cam.IsOrthographic() {
		return cam.Forward().Normalize()
	}
	v := target.Sub(cam.Position)
	if v.Len() < geom.Epsilon {
		return cam.Forward().Normalize()
	}
	return v.Normalize()
}

func snap(v, step float32) float32 {
	if step <= 0 {
		return v
	}
	return float32(math.Round(float64(v/step))) * step
}
