package gizmo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gizmo/geom"
)

const eps = 1e-3

// frontCamera sits at (0,0,10) looking at the origin with +Y up.
func frontCamera() geom.Camera {
	return geom.NewPerspectiveCamera(
		mgl32.Vec3{0, 0, 10},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
		60, 800, 600,
	)
}

// screenOf returns the normalized pointer position over world point p.
func screenOf(t *testing.T, cam geom.Camera, p mgl32.Vec3) mgl32.Vec2 {
	t.Helper()
	ndc, ok := geom.Project(p, cam)
	require.True(t, ok, "point %v is behind the camera", p)
	return ndc
}

func rayAt(t *testing.T, cam geom.Camera, p mgl32.Vec3) geom.Ray {
	t.Helper()
	r, ok := geom.RayFromScreen(cam, screenOf(t, cam, p))
	require.True(t, ok)
	return r
}

func eventAt(t *testing.T, kind PointerKind, cam geom.Camera, p mgl32.Vec3) PointerEvent {
	t.Helper()
	ndc := screenOf(t, cam, p)
	return PointerEvent{Kind: kind, X: ndc.X(), Y: ndc.Y()}
}

func newTestGizmo(t *testing.T, cfg Config, target geom.Transform) *Gizmo {
	t.Helper()
	g, err := New(cfg, target)
	require.NoError(t, err)
	require.NoError(t, g.SetCamera(frontCamera()))
	return g
}

func rotatedZ(deg float32) geom.Transform {
	tr := geom.IdentityTransform()
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(deg), mgl32.Vec3{0, 0, 1})
	return tr
}

func handleOf(t *testing.T, handles []Handle, id HandleID) Handle {
	t.Helper()
	for _, h := range handles {
		if h.ID == id {
			return h
		}
	}
	t.Fatalf("handle %s not found", id)
	return Handle{}
}

func cosf(rad float64) float64 { return math.Cos(rad) }
func sinf(rad float64) float64 { return math.Sin(rad) }
