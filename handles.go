package gizmo

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gizmo/geom"
)

type Space int

const (
	SpaceWorld Space = iota
	SpaceLocal
)

func (s Space) String() string {
	switch s {
	case SpaceWorld:
		return "world"
	case SpaceLocal:
		return "local"
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

func ParseSpace(name string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "world":
		return SpaceWorld, nil
	case "local":
		return SpaceLocal, nil
	}
	return SpaceWorld, fmt.Errorf("unknown coordinate space %q", name)
}

type HandleID int

const (
	TranslateX HandleID = iota
	TranslateY
	TranslateZ
	RotateX
	RotateY
	RotateZ
	ScaleX
	ScaleY
	ScaleZ
	ScaleUniform
)

var handleNames = [...]string{
	"TranslateX", "TranslateY", "TranslateZ",
	"RotateX", "RotateY", "RotateZ",
	"ScaleX", "ScaleY", "ScaleZ",
	"ScaleUniform",
}

func (id HandleID) String() string {
	if id >= 0 && int(id) < len(handleNames) {
		return handleNames[id]
	}
	return fmt.Sprintf("HandleID(%d)", int(id))
}

type HandleKind int

const (
	KindTranslate HandleKind = iota
	KindRotate
	KindScale
	KindScaleUniform
)

func (id HandleID) Kind() HandleKind {
	switch {
	case id <= TranslateZ:
		return KindTranslate
	case id <= RotateZ:
		return KindRotate
	case id <= ScaleZ:
		return KindScale
	}
	return KindScaleUniform
}

// AxisIndex is 0, 1 or 2 for X, Y, Z handles and -1 for ScaleUniform.
func (id HandleID) AxisIndex() int {
	if id == ScaleUniform {
		return -1
	}
	return int(id) % 3
}

// Handle is one pickable element of the gizmo, rebuilt every frame.
//
// Translate and scale handles are the segment Start-End along Axis. Rotate
// handles are the ring of Radius around Center with normal Axis. The uniform
// scale handle is a small box of half-size Radius at Center.
type Handle struct {
	ID     HandleID
	Center mgl32.Vec3
	// Axis is the world-space unit constraint axis (the ring normal for
	// rotation handles).
	Axis mgl32.Vec3
	// LocalAxis is Axis expressed in the target's local frame.
	LocalAxis mgl32.Vec3

	Start, End mgl32.Vec3
	Radius     float32
	// Length is the world length of the translation arms this frame.
	Length float32
}

func (h Handle) Kind() HandleKind {
	return h.ID.Kind()
}

type handleLayout struct {
	screenFactor float32
	ringRadius   float32
	scaleStart   float32
	scaleEnd     float32
	uniform      bool
}

const minHandleLength = 1e-4

// BuildHandles lays out the gizmo for the target. The handle length grows
// linearly with cameraDistance so the gizmo keeps a constant screen size.
// Translate and rotate handles use the world basis in SpaceWorld and the
// target's basis in SpaceLocal; axis-scale handles always use the target's.
func BuildHandles(tr geom.Transform, cameraDistance float32, space Space, cfg Config) []Handle {
	return buildHandles(tr, cameraDistance, space, cfg.layout())
}

func buildHandles(tr geom.Transform, cameraDistance float32, space Space, l handleLayout) []Handle {
	length := cameraDistance * l.screenFactor
	if length < minHandleLength {
		length = minHandleLength
	}
	rot := tr.Rotation.Normalize()
	center := tr.Position

	handles := make([]Handle, 0, 10)
	add := func(id HandleID, world, local mgl32.Vec3) {
		h := Handle{
			ID:        id,
			Center:    center,
			Axis:      world,
			LocalAxis: local,
			Length:    length,
		}
		switch id.Kind() {
		case KindTranslate:
			h.Start = center
			h.End = center.Add(world.Mul(length))
		case KindRotate:
			h.Start, h.End = center, center
			h.Radius = length * l.ringRadius
		case KindScale:
			h.Start = center.Add(world.Mul(length * l.scaleStart))
			h.End = center.Add(world.Mul(length * l.scaleEnd))
		}
		handles = append(handles, h)
	}

	for _, base := range []HandleID{TranslateX, RotateX, ScaleX} {
		for i := 0; i < 3; i++ {
			basis := geom.BasisVector(i)
			world, local := basis, rot.Conjugate().Rotate(basis)
			// Scale acts on the object's own axes, so its arms follow them
			// in both spaces.
			if space == SpaceLocal || base == ScaleX {
				world, local = rot.Rotate(basis), basis
			}
			add(base+HandleID(i), world, local)
		}
	}

	if l.uniform {
		handles = append(handles, Handle{
			ID:     ScaleUniform,
			Center: center,
			Start:  center,
			End:    center,
			Radius: length * 0.1,
			Length: length,
		})
	}
	return handles
}
