package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a world-space half line. Dir is unit length.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

func NewRay(origin, dir mgl32.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// RayPlaneDistance returns the ray parameter of the plane hit. It fails only
// when the ray is parallel to the plane; negative parameters are returned
// as-is and left to the caller.
func RayPlaneDistance(r Ray, planePoint, planeNormal mgl32.Vec3) (float32, bool) {
	if planeNormal.Len() < Epsilon || r.Dir.Len() < Epsilon {
		return 0, false
	}
	n := planeNormal.Normalize()
	denom := r.Dir.Normalize().Dot(n)
	if math.Abs(float64(denom)) < Epsilon {
		return 0, false
	}
	t := planePoint.Sub(r.Origin).Dot(n) / denom
	if !Finite(t) {
		return 0, false
	}
	return t * (1 / r.Dir.Len()), true
}

func IntersectRayPlane(r Ray, planePoint, planeNormal mgl32.Vec3) (mgl32.Vec3, bool) {
	t, ok := RayPlaneDistance(r, planePoint, planeNormal)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

// closestParams solves for the closest points between the ray line and the
// line lo + s*ld. t is the ray parameter, s the line parameter.
func closestParams(r Ray, lo, ld mgl32.Vec3) (t, s float32, ok bool) {
	w := r.Origin.Sub(lo)
	a := r.Dir.Dot(r.Dir)
	b := r.Dir.Dot(ld)
	e := ld.Dot(ld)
	f := ld.Dot(w)

	det := a*e - b*b
	if det < Epsilon {
		return 0, 0, false
	}

	c := r.Dir.Dot(w)
	t = (b*f - c*e) / det
	s = (a*f - b*c) / det
	return t, s, true
}

// ClosestPointOnLine returns the point on the infinite line through
// lineOrigin along lineDir that is closest to the ray. It fails when the ray
// is parallel to the line.
func ClosestPointOnLine(r Ray, lineOrigin, lineDir mgl32.Vec3) (mgl32.Vec3, bool) {
	if lineDir.Len() < Epsilon {
		return mgl32.Vec3{}, false
	}
	ld := lineDir.Normalize()
	_, s, ok := closestParams(NewRay(r.Origin, r.Dir), lineOrigin, ld)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return lineOrigin.Add(ld.Mul(s)), true
}

// AngleBetween returns the signed angle in radians from v1 to v2 measured
// around planeNormal, in (-pi, pi]. Both vectors are first projected into
// the plane. Degenerate inputs yield 0.
func AngleBetween(v1, v2, planeNormal mgl32.Vec3) float32 {
	if planeNormal.Len() < Epsilon {
		return 0
	}
	n := planeNormal.Normalize()
	a := v1.Sub(n.Mul(v1.Dot(n)))
	b := v2.Sub(n.Mul(v2.Dot(n)))
	if a.Len() < Epsilon || b.Len() < Epsilon {
		return 0
	}
	sin := a.Cross(b).Dot(n)
	cos := a.Dot(b)
	return float32(math.Atan2(float64(sin), float64(cos)))
}

// ScreenDistanceToSegment returns the 2D distance from p to the segment ab.
func ScreenDistanceToSegment(p, a, b mgl32.Vec2) float32 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < Epsilon*Epsilon {
		return p.Sub(a).Len()
	}
	t := mgl32.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Sub(a.Add(ab.Mul(t))).Len()
}
