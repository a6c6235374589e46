package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/geom"
)

// Scenario is a recorded interaction: a camera, the object's starting
// transform and the pointer script to replay against it.
type Scenario struct {
	Camera cameraDef  `yaml:"camera"`
	Target targetDef  `yaml:"target"`
	Space  string     `yaml:"space"`
	Events []eventDef `yaml:"events"`
}

type cameraDef struct {
	Eye      []float32 `yaml:"eye"`
	Target   []float32 `yaml:"target"`
	Up       []float32 `yaml:"up"`
	FovDeg   float32   `yaml:"fov_deg"`
	Viewport []int     `yaml:"viewport"`
}

type targetDef struct {
	Position []float32 `yaml:"position"`
	// Rotation is an axis and an angle in degrees.
	Axis     []float32 `yaml:"axis"`
	AngleDeg float32   `yaml:"angle_deg"`
	Scale    []float32 `yaml:"scale"`
}

// eventDef gives a pointer position either directly in normalized
// coordinates or as a world point projected through the camera.
type eventDef struct {
	Kind  string    `yaml:"kind"`
	X     float32   `yaml:"x"`
	Y     float32   `yaml:"y"`
	World []float32 `yaml:"world"`
}

func ParseScenario(data []byte) (Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if len(s.Events) == 0 {
		return Scenario{}, fmt.Errorf("scenario has no events")
	}
	return s, nil
}

func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return ParseScenario(data)
}

func vec3(name string, v []float32, def mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	}
	return mgl32.Vec3{}, fmt.Errorf("%s: want 3 components, got %d", name, len(v))
}

func (c cameraDef) build() (geom.Camera, error) {
	eye, err := vec3("camera.eye", c.Eye, mgl32.Vec3{0, 0, 10})
	if err != nil {
		return geom.Camera{}, err
	}
	target, err := vec3("camera.target", c.Target, mgl32.Vec3{})
	if err != nil {
		return geom.Camera{}, err
	}
	up, err := vec3("camera.up", c.Up, mgl32.Vec3{0, 1, 0})
	if err != nil {
		return geom.Camera{}, err
	}
	fov := c.FovDeg
	if fov == 0 {
		fov = 60
	}
	w, h := 800, 600
	if len(c.Viewport) == 2 {
		w, h = c.Viewport[0], c.Viewport[1]
	} else if len(c.Viewport) != 0 {
		return geom.Camera{}, fmt.Errorf("camera.viewport: want [width, height]")
	}
	return geom.NewPerspectiveCamera(eye, target, up, fov, w, h), nil
}

func (t targetDef) build() (geom.Transform, error) {
	tr := geom.IdentityTransform()
	var err error
	if tr.Position, err = vec3("target.position", t.Position, tr.Position); err != nil {
		return tr, err
	}
	if tr.Scale, err = vec3("target.scale", t.Scale, tr.Scale); err != nil {
		return tr, err
	}
	axis, err := vec3("target.axis", t.Axis, mgl32.Vec3{0, 0, 1})
	if err != nil {
		return tr, err
	}
	if t.AngleDeg != 0 {
		if axis.Len() == 0 {
			return tr, fmt.Errorf("target.axis: zero rotation axis")
		}
		tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(t.AngleDeg), axis.Normalize())
	}
	return tr, nil
}

func (e eventDef) build(cam geom.Camera) (gizmo.PointerEvent, error) {
	var ev gizmo.PointerEvent
	switch e.Kind {
	case "down":
		ev.Kind = gizmo.PointerDown
	case "move":
		ev.Kind = gizmo.PointerMove
	case "up":
		ev.Kind = gizmo.PointerUp
	case "cancel":
		ev.Kind = gizmo.PointerCancel
	default:
		return ev, fmt.Errorf("unknown event kind %q", e.Kind)
	}

	ev.X, ev.Y = e.X, e.Y
	if len(e.World) > 0 {
		p, err := vec3("event.world", e.World, mgl32.Vec3{})
		if err != nil {
			return ev, err
		}
		ndc, ok := geom.Project(p, cam)
		if !ok {
			return ev, fmt.Errorf("event.world %v is behind the camera", p)
		}
		ev.X, ev.Y = ndc.X(), ndc.Y()
	}
	return ev, nil
}

// Replay runs s through a new gizmo and writes one line per transform change
// to out. It returns the final target transform.
func Replay(s Scenario, cfg gizmo.Config, logger gizmo.Logger, out io.Writer) (geom.Transform, error) {
	if s.Space != "" {
		space, err := gizmo.ParseSpace(s.Space)
		if err != nil {
			return geom.Transform{}, err
		}
		cfg.Space = space
	}
	cam, err := s.Camera.build()
	if err != nil {
		return geom.Transform{}, err
	}
	start, err := s.Target.build()
	if err != nil {
		return geom.Transform{}, err
	}

	g, err := gizmo.New(cfg, start, gizmo.WithLogger(logger))
	if err != nil {
		return geom.Transform{}, err
	}
	if err := g.SetCamera(cam); err != nil {
		return geom.Transform{}, err
	}
	g.OnTransformChanged(func(c gizmo.TransformChange) {
		fmt.Fprintf(out, "%-6s %-12s %s %s\n", c.Phase, c.Handle, c.Session, formatTransform(c.Transform))
	})

	for i, def := range s.Events {
		ev, err := def.build(cam)
		if err != nil {
			return g.Target(), fmt.Errorf("event %d: %w", i, err)
		}
		if err := g.HandleEvent(cam, ev); err != nil {
			return g.Target(), fmt.Errorf("event %d: %w", i, err)
		}
	}
	return g.Target(), nil
}

func formatTransform(tr geom.Transform) string {
	p, r, s := tr.Position, tr.Rotation, tr.Scale
	return fmt.Sprintf("pos=(%.4f %.4f %.4f) rot=(%.4f %.4f %.4f %.4f) scale=(%.4f %.4f %.4f)",
		p[0], p[1], p[2], r.W, r.V[0], r.V[1], r.V[2], s[0], s[1], s[2])
}
