package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the host's read-only view of the scene camera. Viewport sizes are
// in pixels and are only used to convert pixel tolerances.
type Camera struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Position   mgl32.Vec3

	ViewportWidth  int
	ViewportHeight int
}

// NewPerspectiveCamera builds a right-handed camera looking from eye to target.
func NewPerspectiveCamera(eye, target, up mgl32.Vec3, fovDeg float32, width, height int) Camera {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return Camera{
		View:           mgl32.LookAtV(eye, target, up),
		Projection:     mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, 0.1, 1000.0),
		Position:       eye,
		ViewportWidth:  width,
		ViewportHeight: height,
	}
}

func (c Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View)
}

// Validate fails on NaN/Inf input, a non-positive viewport or a singular
// view-projection matrix. These are host bugs, not interaction conditions.
func (c Camera) Validate() error {
	if !FiniteMat4(c.View) {
		return fmt.Errorf("view matrix: %w", ErrNonFinite)
	}
	if !FiniteMat4(c.Projection) {
		return fmt.Errorf("projection matrix: %w", ErrNonFinite)
	}
	if !FiniteVec3(c.Position) {
		return fmt.Errorf("camera position %v: %w", c.Position, ErrNonFinite)
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport %dx%d: %w", c.ViewportWidth, c.ViewportHeight, ErrDegenerateCamera)
	}
	vp := c.ViewProjection()
	if vp.Det() == 0 || !FiniteMat4(vp.Inv()) {
		return fmt.Errorf("singular view-projection: %w", ErrDegenerateCamera)
	}
	return nil
}

// Right, Up and Forward are the camera basis vectors in world space, read
// from the rows of the view matrix.
func (c Camera) Right() mgl32.Vec3 {
	return mgl32.Vec3{c.View.At(0, 0), c.View.At(0, 1), c.View.At(0, 2)}
}

func (c Camera) Up() mgl32.Vec3 {
	return mgl32.Vec3{c.View.At(1, 0), c.View.At(1, 1), c.View.At(1, 2)}
}

func (c Camera) Forward() mgl32.Vec3 {
	return mgl32.Vec3{-c.View.At(2, 0), -c.View.At(2, 1), -c.View.At(2, 2)}
}

func (c Camera) IsOrthographic() bool {
	return c.Projection.At(3, 3) == 1
}

func (c Camera) DistanceTo(p mgl32.Vec3) float32 {
	return p.Sub(c.Position).Len()
}

// SizingDistance is the distance used to keep screen-sized overlays constant.
// Orthographic views have no depth cue; their visible height stands in.
func (c Camera) SizingDistance(p mgl32.Vec3) float32 {
	if c.IsOrthographic() {
		if sy := c.Projection.At(1, 1); sy != 0 {
			return float32(math.Abs(float64(2 / sy)))
		}
	}
	return c.DistanceTo(p)
}

// WorldPerPixel returns the world-space size of one vertical pixel at the
// given distance from the camera.
func (c Camera) WorldPerPixel(dist float32) float32 {
	sy := c.Projection.At(1, 1)
	if sy == 0 || c.ViewportHeight <= 0 {
		return 0
	}
	h := float32(c.ViewportHeight)
	if c.IsOrthographic() {
		return 2 / (sy * h)
	}
	return float32(math.Abs(float64(2 * dist / (sy * h))))
}

// NDCToPixels scales a normalized offset into a pixel offset so distances
// can be measured in pixels on non-square viewports.
func (c Camera) NDCToPixels(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		v.X() * float32(c.ViewportWidth) * 0.5,
		v.Y() * float32(c.ViewportHeight) * 0.5,
	}
}

// RayFromScreen unprojects a normalized pointer position (x,y in [-1,1], +Y
// up) into a world-space ray starting on the near plane.
func RayFromScreen(c Camera, ndc mgl32.Vec2) (Ray, bool) {
	inv := c.ViewProjection().Inv()

	// Second point at NDC depth 0: the far plane's w loses float32 precision.
	near := inv.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), 0, 1})
	if math.Abs(float64(near.W())) < Epsilon || math.Abs(float64(far.W())) < Epsilon {
		return Ray{}, false
	}

	origin := near.Vec3().Mul(1 / near.W())
	end := far.Vec3().Mul(1 / far.W())
	dir := end.Sub(origin)
	if dir.Len() < Epsilon || !FiniteVec3(origin) || !FiniteVec3(dir) {
		return Ray{}, false
	}
	return Ray{Origin: origin, Dir: dir.Normalize()}, true
}

// Project maps a world point to normalized screen coordinates. Points behind
// the camera are reported as not visible.
func Project(p mgl32.Vec3, c Camera) (mgl32.Vec2, bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1.0))
	if clip.W() < Epsilon {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1.0 / clip.W())
	return mgl32.Vec2{ndc.X(), ndc.Y()}, true
}
