package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gizmo/geom"
)

// tieEpsilonPx is the screen distance under which two candidates count as
// equidistant and the priority order decides.
const tieEpsilonPx = 1e-3

// pickPriority orders handles on ties: ScaleUniform, rotation, translation,
// axis scale. Lower wins.
func pickPriority(id HandleID) int {
	switch id.Kind() {
	case KindScaleUniform:
		return 0
	case KindRotate:
		return 1
	case KindTranslate:
		return 2
	}
	return 3
}

type pickCandidate struct {
	handle Handle
	dist   float32
}

func (c pickCandidate) better(o pickCandidate) bool {
	if d := c.dist - o.dist; d < -tieEpsilonPx {
		return true
	} else if d > tieEpsilonPx {
		return false
	}
	if pc, po := pickPriority(c.handle.ID), pickPriority(o.handle.ID); pc != po {
		return pc < po
	}
	return c.handle.ID < o.handle.ID
}

// Pick returns the handle closest to the pointer on screen among those within
// tolerancePx. The pointer is where ray pierces the screen. A miss is not an
// error; ok is false.
func Pick(ray geom.Ray, handles []Handle, cam geom.Camera, tolerancePx float32) (Handle, bool) {
	pointer, ok := geom.Project(ray.At(1), cam)
	if !ok {
		return Handle{}, false
	}
	pointerPx := cam.NDCToPixels(pointer)

	var best pickCandidate
	found := false
	for _, h := range handles {
		dist, ok := screenDistance(ray, pointerPx, h, cam, tolerancePx)
		if !ok || dist > tolerancePx {
			continue
		}
		c := pickCandidate{handle: h, dist: dist}
		if !found || c.better(best) {
			best = c
			found = true
		}
	}
	return best.handle, found
}

func screenDistance(ray geom.Ray, pointerPx mgl32.Vec2, h Handle, cam geom.Camera, tolerancePx float32) (float32, bool) {
	switch h.Kind() {
	case KindTranslate, KindScale:
		a, okA := projectPx(h.Start, cam)
		b, okB := projectPx(h.End, cam)
		if !okA || !okB {
			return 0, false
		}
		return geom.ScreenDistanceToSegment(pointerPx, a, b), true

	case KindScaleUniform:
		c, ok := projectPx(h.Center, cam)
		if !ok {
			return 0, false
		}
		radiusPx := float32(0)
		if wpp := cam.WorldPerPixel(cam.DistanceTo(h.Center)); wpp > 0 {
			radiusPx = h.Radius / wpp
		}
		d := pointerPx.Sub(c).Len() - radiusPx
		if d < 0 {
			d = 0
		}
		return d, true

	case KindRotate:
		t, ok := geom.RayPlaneDistance(ray, h.Center, h.Axis)
		if !ok || t < 0 {
			return 0, false
		}
		offset := ray.At(t).Sub(h.Center)
		r := offset.Len()
		if r < geom.Epsilon {
			return 0, false
		}
		tolWorld := tolerancePx * cam.WorldPerPixel(cam.DistanceTo(h.Center))
		if math.Abs(float64(r-h.Radius)) > float64(tolWorld) {
			return 0, false
		}
		onRing := h.Center.Add(offset.Mul(h.Radius / r))
		p, ok := projectPx(onRing, cam)
		if !ok {
			return 0, false
		}
		// Oblique rings stretch the world tolerance on screen; the world test
		// above already accepted the hit.
		d := pointerPx.Sub(p).Len()
		if d > tolerancePx {
			d = tolerancePx
		}
		return d, true
	}
	return 0, false
}

func projectPx(p mgl32.Vec3, cam geom.Camera) (mgl32.Vec2, bool) {
	ndc, ok := geom.Project(p, cam)
	if !ok {
		return mgl32.Vec2{}, false
	}
	return cam.NDCToPixels(ndc), true
}
