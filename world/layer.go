package world

import (
	"fmt"
	"strings"

	"github.com/milk9111/kinematic/controller"
)

// Layers are chipmunk shape-filter categories.
const (
	// LayerGround is walkable and blocks like any other solid.
	LayerGround controller.Mask = 1 << iota
	// LayerSolid blocks movement but cannot be stood on.
	LayerSolid
	LayerPlayer
)

const (
	MaskWalkable  = LayerGround
	MaskNonPlayer = LayerGround | LayerSolid
)

// ParseLayer maps a level-file layer name to its category.
func ParseLayer(name string) (controller.Mask, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ground":
		return LayerGround, nil
	case "solid", "wall":
		return LayerSolid, nil
	case "player":
		return LayerPlayer, nil
	}
	return 0, fmt.Errorf("world: unknown layer %q", name)
}

// ParseTag maps a level-file surface name to its tag.
func ParseTag(name string) (controller.SurfaceTag, error) {
	switch controller.SurfaceTag(strings.ToLower(strings.TrimSpace(name))) {
	case "", controller.SurfaceSolid:
		return controller.SurfaceSolid, nil
	case controller.SurfaceClimbableWall, "climbable":
		return controller.SurfaceClimbableWall, nil
	}
	return "", fmt.Errorf("world: unknown surface tag %q", name)
}
