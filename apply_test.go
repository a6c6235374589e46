package gizmo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/gizmo/geom"
)

func TestApplyTranslation(t *testing.T) {
	start := rotatedZ(90)
	start.Position = mgl32.Vec3{1, 1, 1}

	d := IdentityDelta()
	d.Translation = mgl32.Vec3{2, 0, 0}

	world := Apply(start, d, SpaceWorld)
	assert.True(t, geom.Near(world.Position, mgl32.Vec3{3, 1, 1}, 1e-6), "world %v", world.Position)

	// Local X of an object turned 90 deg about Z is world +Y
	local := Apply(start, d, SpaceLocal)
	assert.True(t, geom.Near(local.Position, mgl32.Vec3{1, 3, 1}, 1e-5), "local %v", local.Position)

	assert.Equal(t, start.Scale, world.Scale)
	assert.True(t, geom.SameOrientation(start.Rotation, local.Rotation, 1e-6))
}

func TestApplyRotationCompositionOrder(t *testing.T) {
	start := rotatedZ(90)
	d := IdentityDelta()
	d.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0})

	world := Apply(start, d, SpaceWorld)
	local := Apply(start, d, SpaceLocal)

	// World: delta * start. Local X goes Z-turn to +Y, then X-turn to +Z.
	assert.True(t, geom.SameOrientation(d.Rotation.Mul(start.Rotation), world.Rotation, 1e-6))
	assert.True(t, geom.Near(world.Rotation.Rotate(mgl32.Vec3{1, 0, 0}), mgl32.Vec3{0, 0, 1}, 1e-5))

	// Local: start * delta. The X-turn is about the object's own X, which
	// leaves its X axis where the Z-turn put it.
	assert.True(t, geom.SameOrientation(start.Rotation.Mul(d.Rotation), local.Rotation, 1e-6))
	assert.True(t, geom.Near(local.Rotation.Rotate(mgl32.Vec3{1, 0, 0}), mgl32.Vec3{0, 1, 0}, 1e-5))

	assert.False(t, geom.SameOrientation(world.Rotation, local.Rotation, 1e-3))

	// Rotation never moves the origin
	assert.Equal(t, start.Position, world.Position)
	assert.Equal(t, start.Position, local.Position)
}

func TestApplyFullTurnDoesNotDrift(t *testing.T) {
	start := rotatedZ(30)
	start.Rotation = mgl32.QuatRotate(mgl32.DegToRad(25), mgl32.Vec3{1, 1, 0}.Normalize()).Mul(start.Rotation)

	for _, space := range []Space{SpaceWorld, SpaceLocal} {
		d := IdentityDelta()
		d.Rotation = mgl32.QuatRotate(2*mgl32.DegToRad(180), mgl32.Vec3{0, 1, 0})
		out := Apply(start, d, space)
		assert.True(t, geom.SameOrientation(start.Rotation, out.Rotation, 1e-5), "%s space drifted", space)
	}
}

func TestApplyScaleAlwaysLocalAndPositive(t *testing.T) {
	start := rotatedZ(45)
	start.Scale = mgl32.Vec3{2, 3, 4}

	d := IdentityDelta()
	d.Scale = mgl32.Vec3{0.5, 1, 2}
	for _, space := range []Space{SpaceWorld, SpaceLocal} {
		out := Apply(start, d, space)
		assert.True(t, geom.Near(out.Scale, mgl32.Vec3{1, 3, 8}, 1e-6), "%s: %v", space, out.Scale)
	}

	d.Scale = mgl32.Vec3{0, -3, 1}
	out := Apply(start, d, SpaceWorld)
	assert.True(t, geom.Near(out.Scale, mgl32.Vec3{2 * DefaultMinScale, 3 * DefaultMinScale, 4}, 1e-6), "%v", out.Scale)

	out = Applier{MinScale: 0.5}.Apply(start, d, SpaceLocal)
	assert.Equal(t, mgl32.Vec3{1, 1.5, 4}, out.Scale)
}

func TestApplyLeavesUnscaledComponents(t *testing.T) {
	start := rotatedZ(20)
	start.Scale = mgl32.Vec3{0.004, 0.002, 7}

	d := IdentityDelta()
	d.Translation = mgl32.Vec3{1, 2, 3}
	d.Rotation = mgl32.QuatRotate(0.4, mgl32.Vec3{0, 1, 0})
	for _, space := range []Space{SpaceWorld, SpaceLocal} {
		out := Apply(start, d, space)
		assert.Equal(t, start.Scale, out.Scale, "%s", space)
	}

	d = IdentityDelta()
	d.Scale = mgl32.Vec3{1, 3, 1}
	out := Apply(start, d, SpaceWorld)
	assert.Equal(t, float32(0.004), out.Scale[0])
	assert.InDelta(t, 0.006, out.Scale[1], 1e-7)
	assert.Equal(t, float32(7), out.Scale[2])
}

func TestApplyIdentityDelta(t *testing.T) {
	start := rotatedZ(33)
	start.Position = mgl32.Vec3{4, 5, 6}
	start.Scale = mgl32.Vec3{1, 2, 3}

	for _, space := range []Space{SpaceWorld, SpaceLocal} {
		out := Apply(start, IdentityDelta(), space)
		assert.True(t, start.ApproxEqual(out, 1e-6), "%s", space)
	}
}
