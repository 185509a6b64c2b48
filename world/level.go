package world

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Level is a loaded map: static geometry, a spawn point and the height below
// which the character is sent back to spawn.
type Level struct {
	Name       string
	Spawn      cp.Vector
	KillHeight float64
	Boxes      []Box
}

// NewLevel returns an empty level with no kill height.
func NewLevel(name string) Level {
	return Level{Name: name, KillHeight: math.Inf(-1)}
}

// Build creates a world holding the level's boxes.
func (l Level) Build() *StaticWorld {
	w := New()
	for _, b := range l.Boxes {
		w.AddBox(b)
	}
	return w
}

// Killed reports whether an anchor at p has fallen out of the level.
func (l Level) Killed(p cp.Vector) bool {
	return p.Y < l.KillHeight
}

// Extent returns the bounding box of all geometry and the spawn point.
func (l Level) Extent() cp.BB {
	bb := cp.NewBBForExtents(l.Spawn, 0, 0)
	for _, b := range l.Boxes {
		bb = bb.Merge(b.BB)
	}
	return bb
}
