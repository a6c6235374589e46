package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a rigid transform with per-axis scale, composed as T * R * S.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func IdentityTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix returns the object-to-world matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// Axis returns the i-th local basis vector (0=X, 1=Y, 2=Z) in world space.
// Scale is not applied, the result is unit length for a unit rotation.
func (t Transform) Axis(i int) mgl32.Vec3 {
	return t.Rotation.Rotate(BasisVector(i))
}

// BasisVector returns the world basis vector for index i (0=X, 1=Y, 2=Z).
func BasisVector(i int) mgl32.Vec3 {
	var v mgl32.Vec3
	v[i] = 1
	return v
}

// Validate reports whether the transform can be used as a gizmo target.
// Non-finite components, a zero-length rotation and a scale component <= 0
// are rejected.
func (t Transform) Validate() error {
	if !FiniteVec3(t.Position) {
		return fmt.Errorf("position %v: %w", t.Position, ErrNonFinite)
	}
	if !FiniteQuat(t.Rotation) {
		return fmt.Errorf("rotation %v: %w", t.Rotation, ErrNonFinite)
	}
	if !FiniteVec3(t.Scale) {
		return fmt.Errorf("scale %v: %w", t.Scale, ErrNonFinite)
	}
	if t.Rotation.Len() < Epsilon {
		return fmt.Errorf("rotation %v: %w", t.Rotation, ErrDegenerateRotation)
	}
	for i := 0; i < 3; i++ {
		if t.Scale[i] <= 0 {
			return fmt.Errorf("scale %v: %w", t.Scale, ErrNonPositiveScale)
		}
	}
	return nil
}

// Normalized returns a copy with a unit rotation quaternion.
func (t Transform) Normalized() Transform {
	t.Rotation = t.Rotation.Normalize()
	return t
}

// ApproxEqual compares position and scale component-wise and rotation as an
// orientation, so q and -q are considered equal.
func (t Transform) ApproxEqual(o Transform, threshold float32) bool {
	if !Near(t.Position, o.Position, threshold) || !Near(t.Scale, o.Scale, threshold) {
		return false
	}
	return SameOrientation(t.Rotation, o.Rotation, threshold)
}

// Near compares vectors component-wise against an absolute tolerance.
func Near(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

// SameOrientation reports whether two unit quaternions describe the same
// rotation within threshold.
func SameOrientation(a, b mgl32.Quat, threshold float32) bool {
	d := a.Normalize().Dot(b.Normalize())
	if d < 0 {
		d = -d
	}
	return 1-d <= threshold
}
