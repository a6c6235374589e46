package geom

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the parallelism and degeneracy threshold used by the kernel.
const Epsilon = 1e-6

var (
	ErrNonFinite          = errors.New("geom: non-finite value")
	ErrDegenerateCamera   = errors.New("geom: degenerate camera")
	ErrDegenerateRotation = errors.New("geom: zero-length rotation")
	ErrNonPositiveScale   = errors.New("geom: non-positive scale")
)

func Finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func FiniteVec2(v mgl32.Vec2) bool {
	return Finite(v[0]) && Finite(v[1])
}

func FiniteVec3(v mgl32.Vec3) bool {
	return Finite(v[0]) && Finite(v[1]) && Finite(v[2])
}

func FiniteQuat(q mgl32.Quat) bool {
	return Finite(q.W) && FiniteVec3(q.V)
}

func FiniteMat4(m mgl32.Mat4) bool {
	for _, f := range m {
		if !Finite(f) {
			return false
		}
	}
	return true
}
