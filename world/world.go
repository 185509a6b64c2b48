package world

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/controller"
)

// Box is one static axis-aligned collider.
type Box struct {
	BB    cp.BB
	Layer controller.Mask
	Tag   controller.SurfaceTag
}

// StaticWorld owns a Chipmunk space holding only static shapes and answers
// the controller's ray queries against it.
type StaticWorld struct {
	space *cp.Space
	boxes []Box
}

// New creates an empty world.
func New() *StaticWorld {
	return &StaticWorld{space: cp.NewSpace()}
}

// Space returns the underlying Chipmunk space.
func (w *StaticWorld) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Boxes returns the colliders in insertion order.
func (w *StaticWorld) Boxes() []Box {
	if w == nil {
		return nil
	}
	return w.boxes
}

// AddBox inserts a static box. An empty tag is stored as solid and a zero
// layer as ground.
func (w *StaticWorld) AddBox(b Box) *cp.Shape {
	if b.Tag == "" {
		b.Tag = controller.SurfaceSolid
	}
	if b.Layer == 0 {
		b.Layer = LayerGround
	}
	shape := cp.NewBox2(w.space.StaticBody, b.BB, 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(b.Layer), cp.ALL_CATEGORIES))
	shape.UserData = b.Tag
	w.space.AddShape(shape)
	w.boxes = append(w.boxes, b)
	return shape
}

// Cast returns the nearest shape on a layer in mask along the ray. The query
// itself sits on LayerPlayer so shapes masking the player out are skipped.
func (w *StaticWorld) Cast(origin, direction cp.Vector, maxDistance float64, mask controller.Mask) controller.RayResult {
	if w == nil || w.space == nil || maxDistance <= 0 {
		return controller.RayResult{}
	}
	end := origin.Add(direction.Mult(maxDistance))
	filter := cp.NewShapeFilter(cp.NO_GROUP, uint(LayerPlayer), uint(mask))
	info := w.space.SegmentQueryFirst(origin, end, 0, filter)
	if info.Shape == nil {
		return controller.RayResult{}
	}

	tag, ok := info.Shape.UserData.(controller.SurfaceTag)
	if !ok || tag == "" {
		tag = controller.SurfaceSolid
	}
	return controller.RayResult{
		Hit:      true,
		Distance: info.Alpha * maxDistance,
		Normal:   info.Normal,
		Tag:      tag,
	}
}
