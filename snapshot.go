package gizmo

import (
	"sync/atomic"

	"github.com/gekko3d/gizmo/geom"
)

// transformBuffer publishes whole transforms to readers on other goroutines.
// Each publish stores a fresh copy, so a reader never sees a partial write.
type transformBuffer struct {
	p atomic.Pointer[geom.Transform]
}

func (b *transformBuffer) publish(tr geom.Transform) {
	b.p.Store(&tr)
}

func (b *transformBuffer) load() geom.Transform {
	if tr := b.p.Load(); tr != nil {
		return *tr
	}
	return geom.IdentityTransform()
}
