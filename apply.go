package gizmo

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gizmo/geom"
)

// Delta is the change derived from a drag, relative to the drag-start
// transform. Translation and Rotation are expressed in the active space;
// Scale holds per-local-axis factors.
type Delta struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

func IdentityDelta() Delta {
	return Delta{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Applier composes deltas onto transforms. Scale factors below MinScale are
// raised to it; components the delta leaves at 1 are copied untouched.
type Applier struct {
	MinScale float32
}

// Apply composes d with start.
//
// World: position += T, orientation = R * start (rotation about a world axis
// through the object origin).
// Local: position += start * T, orientation = start * R (rotation about the
// object's own axis).
//
// start is expected to pass Validate, so every resulting scale component
// stays positive.
func (a Applier) Apply(start geom.Transform, d Delta, space Space) geom.Transform {
	out := start
	startRot := start.Rotation.Normalize()

	switch space {
	case SpaceLocal:
		out.Position = start.Position.Add(startRot.Rotate(d.Translation))
		out.Rotation = startRot.Mul(d.Rotation).Normalize()
	default:
		out.Position = start.Position.Add(d.Translation)
		out.Rotation = d.Rotation.Mul(startRot).Normalize()
	}

	minScale := a.MinScale
	if minScale <= 0 {
		minScale = DefaultMinScale
	}
	for i := 0; i < 3; i++ {
		f := d.Scale[i]
		if f == 1 {
			continue
		}
		if f < minScale {
			f = minScale
		}
		out.Scale[i] = start.Scale[i] * f
	}
	return out
}

// Apply uses an Applier with DefaultMinScale.
func Apply(start geom.Transform, d Delta, space Space) geom.Transform {
	return Applier{MinScale: DefaultMinScale}.Apply(start, d, space)
}
