package gizmo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gizmo/geom"
)

func TestBuildHandlesIdentities(t *testing.T) {
	cfg := DefaultConfig()
	handles := BuildHandles(geom.IdentityTransform(), 10, SpaceWorld, cfg)
	require.Len(t, handles, 10)

	seen := map[HandleID]bool{}
	for _, h := range handles {
		assert.False(t, seen[h.ID], "duplicate handle %s", h.ID)
		seen[h.ID] = true
	}
	assert.True(t, seen[ScaleUniform])

	cfg.UniformScaleHandle = false
	handles = BuildHandles(geom.IdentityTransform(), 10, SpaceWorld, cfg)
	require.Len(t, handles, 9)
	for _, h := range handles {
		assert.NotEqual(t, ScaleUniform, h.ID)
	}
}

func TestBuildHandlesConstantScreenSize(t *testing.T) {
	cfg := DefaultConfig()
	near := BuildHandles(geom.IdentityTransform(), 2, SpaceWorld, cfg)
	far := BuildHandles(geom.IdentityTransform(), 200, SpaceWorld, cfg)

	nearX := handleOf(t, near, TranslateX)
	farX := handleOf(t, far, TranslateX)
	assert.InDelta(t, 0.3, nearX.End.Sub(nearX.Start).Len(), 1e-6)
	assert.InDelta(t, 30, farX.End.Sub(farX.Start).Len(), 1e-4)

	assert.InDelta(t, 100*handleOf(t, near, RotateY).Radius, handleOf(t, far, RotateY).Radius, 1e-3)

	// Zero distance still yields usable geometry
	zero := BuildHandles(geom.IdentityTransform(), 0, SpaceWorld, cfg)
	assert.Greater(t, handleOf(t, zero, TranslateX).Length, float32(0))
}

func TestBuildHandlesSpaces(t *testing.T) {
	tr := rotatedZ(90)
	tr.Position = mgl32.Vec3{1, 2, 3}
	cfg := DefaultConfig()

	tests := []struct {
		name      string
		space     Space
		id        HandleID
		wantAxis  mgl32.Vec3
		wantLocal mgl32.Vec3
	}{
		{"World X", SpaceWorld, TranslateX, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
		{"World Y ring", SpaceWorld, RotateY, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
		{"Local X", SpaceLocal, TranslateX, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
		{"Local Y scale", SpaceLocal, ScaleY, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{"World X scale follows object", SpaceWorld, ScaleX, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
		{"Local Z ring", SpaceLocal, RotateZ, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handleOf(t, BuildHandles(tr, 10, tt.space, cfg), tt.id)
			assert.True(t, geom.Near(h.Axis, tt.wantAxis, 1e-5), "axis %v", h.Axis)
			assert.True(t, geom.Near(h.LocalAxis, tt.wantLocal, 1e-5), "local axis %v", h.LocalAxis)
			assert.Equal(t, tr.Position, h.Center)
		})
	}
}

func TestBuildHandlesGeometry(t *testing.T) {
	cfg := DefaultConfig()
	handles := BuildHandles(geom.IdentityTransform(), 10, SpaceWorld, cfg)

	tx := handleOf(t, handles, TranslateX)
	assert.True(t, geom.Near(tx.End, mgl32.Vec3{1.5, 0, 0}, 1e-6))

	sx := handleOf(t, handles, ScaleX)
	assert.InDelta(t, 1.5*cfg.ScaleHandleStart, sx.Start.X(), 1e-5)
	assert.InDelta(t, 1.5*cfg.ScaleHandleEnd, sx.End.X(), 1e-5)

	rz := handleOf(t, handles, RotateZ)
	assert.InDelta(t, 1.5*cfg.RingRadius, rz.Radius, 1e-5)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, rz.Axis)
}

func TestHandleIDKinds(t *testing.T) {
	assert.Equal(t, KindTranslate, TranslateZ.Kind())
	assert.Equal(t, KindRotate, RotateX.Kind())
	assert.Equal(t, KindScale, ScaleY.Kind())
	assert.Equal(t, KindScaleUniform, ScaleUniform.Kind())
	assert.Equal(t, 2, RotateZ.AxisIndex())
	assert.Equal(t, -1, ScaleUniform.AxisIndex())
	assert.Equal(t, "ScaleUniform", ScaleUniform.String())
}

func TestParseSpace(t *testing.T) {
	s, err := ParseSpace(" Local ")
	require.NoError(t, err)
	assert.Equal(t, SpaceLocal, s)

	_, err = ParseSpace("screen")
	assert.Error(t, err)
}
