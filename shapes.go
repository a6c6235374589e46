package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type ShapeType int

const (
	ShapeLine ShapeType = iota
	ShapeCube
	ShapeCircle // Wireframe circle
)

// Shape is one wireframe primitive of the handle draw list. Cube and
// circle are unit shapes placed by Model; a circle lies in the XY plane
// before Model is applied. Lines use P1 and P2 in world space.
type Shape struct {
	Type    ShapeType
	Handle  HandleID
	Hovered bool
	Active  bool
	Model   mgl32.Mat4

	P1, P2 mgl32.Vec3
}

// tipSize is the cube edge of a scale handle relative to the handle length.
const tipSize = 0.08

// Shapes returns the wireframe draw list for the current handles. Styling is
// left to the host; each shape carries its handle's hover and active state.
func (g *Gizmo) Shapes() []Shape {
	hovered, hasHovered := g.HoveredHandle()
	active, hasActive := g.ActiveHandle()

	shapes := make([]Shape, 0, len(g.handles)+3)
	for _, h := range g.handles {
		for _, s := range handleShapes(h) {
			s.Hovered = hasHovered && hovered.ID == h.ID
			s.Active = hasActive && active.ID == h.ID
			shapes = append(shapes, s)
		}
	}
	return shapes
}

func handleShapes(h Handle) []Shape {
	switch h.Kind() {
	case KindTranslate:
		return []Shape{{Type: ShapeLine, Handle: h.ID, Model: mgl32.Ident4(), P1: h.Start, P2: h.End}}

	case KindRotate:
		orient := mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, 1}, h.Axis.Normalize())
		model := mgl32.Translate3D(h.Center.X(), h.Center.Y(), h.Center.Z()).
			Mul4(orient.Mat4()).
			Mul4(mgl32.Scale3D(h.Radius, h.Radius, h.Radius))
		return []Shape{{Type: ShapeCircle, Handle: h.ID, Model: model}}

	case KindScale:
		size := h.Length * tipSize
		model := mgl32.Translate3D(h.End.X(), h.End.Y(), h.End.Z()).
			Mul4(mgl32.Scale3D(size, size, size))
		return []Shape{
			{Type: ShapeLine, Handle: h.ID, Model: mgl32.Ident4(), P1: h.Start, P2: h.End},
			{Type: ShapeCube, Handle: h.ID, Model: model},
		}

	case KindScaleUniform:
		size := 2 * h.Radius
		model := mgl32.Translate3D(h.Center.X(), h.Center.Y(), h.Center.Z()).
			Mul4(mgl32.Scale3D(size, size, size))
		return []Shape{{Type: ShapeCube, Handle: h.ID, Model: model}}
	}
	return nil
}

// Segments tessellates s into world-space line segments. Circles use steps
// segments.
func (s Shape) Segments(steps int) [][2]mgl32.Vec3 {
	if steps < 3 {
		steps = 3
	}
	var local [][2]mgl32.Vec3

	switch s.Type {
	case ShapeLine:
		return [][2]mgl32.Vec3{{s.P1, s.P2}}

	case ShapeCube:
		const lo, hi = -0.5, 0.5
		corner := func(i int) mgl32.Vec3 {
			v := mgl32.Vec3{lo, lo, lo}
			for a := 0; a < 3; a++ {
				if i&(1<<a) != 0 {
					v[a] = hi
				}
			}
			return v
		}
		for i := 0; i < 8; i++ {
			for a := 0; a < 3; a++ {
				if j := i | 1<<a; j != i {
					local = append(local, [2]mgl32.Vec3{corner(i), corner(j)})
				}
			}
		}

	case ShapeCircle:
		local = ring(steps)
	}

	out := make([][2]mgl32.Vec3, len(local))
	for i, seg := range local {
		out[i] = [2]mgl32.Vec3{
			mgl32.TransformCoordinate(seg[0], s.Model),
			mgl32.TransformCoordinate(seg[1], s.Model),
		}
	}
	return out
}

// ring is the unit circle in the XY plane.
func ring(steps int) [][2]mgl32.Vec3 {
	step := 2 * math.Pi / float64(steps)
	point := func(i int) mgl32.Vec3 {
		a := float64(i) * step
		return mgl32.Vec3{float32(math.Cos(a)), float32(math.Sin(a)), 0}
	}
	segs := make([][2]mgl32.Vec3, steps)
	for i := range segs {
		segs[i] = [2]mgl32.Vec3{point(i), point(i + 1)}
	}
	return segs
}
