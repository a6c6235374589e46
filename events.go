package gizmo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/gizmo/geom"
)

type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	}
	return fmt.Sprintf("PointerKind(%d)", int(k))
}

// PointerEvent is one host input event. X and Y are normalized device
// coordinates: [-1,1] on both axes, +Y up, (0,0) at the viewport center.
// Up and Cancel ignore the coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float32
}

func (e PointerEvent) NDC() mgl32.Vec2 {
	return mgl32.Vec2{e.X, e.Y}
}

type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

type Phase int

const (
	// PhaseUpdate is an intermediate transform produced by a pointer move.
	PhaseUpdate Phase = iota
	// PhaseCommit is the final transform of a drag, emitted on pointer up.
	PhaseCommit
	// PhaseCancel carries the restored drag-start transform.
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseUpdate:
		return "update"
	case PhaseCommit:
		return "commit"
	case PhaseCancel:
		return "cancel"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// TransformChange is delivered to OnTransformChanged listeners. Session is
// shared by every change of one drag.
type TransformChange struct {
	Transform geom.Transform
	Handle    HandleID
	Session   uuid.UUID
	Phase     Phase
}
