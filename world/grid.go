package world

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/controller"
)

// TileKind is what a grid cell contributes to the world.
type TileKind struct {
	Layer controller.Mask
	Tag   controller.SurfaceTag
}

// DefaultLegend maps grid characters to tile kinds. Any other rune is empty.
var DefaultLegend = map[rune]TileKind{
	'#': {Layer: LayerGround, Tag: controller.SurfaceSolid},
	'W': {Layer: LayerGround, Tag: controller.SurfaceClimbableWall},
	'S': {Layer: LayerSolid, Tag: controller.SurfaceSolid},
}

// Grid is a row-major tile map. Row 0 is the top of the map.
type Grid struct {
	Rows     []string
	TileSize float64
	Legend   map[rune]TileKind
}

func (g Grid) size() (int, int, error) {
	h := len(g.Rows)
	if h == 0 {
		return 0, 0, nil
	}
	w := len([]rune(g.Rows[0]))
	for i, row := range g.Rows {
		if n := len([]rune(row)); n != w {
			return 0, 0, fmt.Errorf("world: grid row %d has %d cells, want %d", i, n, w)
		}
	}
	return w, h, nil
}

// Boxes merges runs of identical tiles into as few rectangles as the greedy
// row-then-column scan finds. Cell (0,0) of the bottom row sits at the origin
// and y grows upward.
func (g Grid) Boxes() ([]Box, error) {
	width, height, err := g.size()
	if err != nil || width == 0 {
		return nil, err
	}
	legend := g.Legend
	if legend == nil {
		legend = DefaultLegend
	}
	size := g.TileSize
	if size <= 0 {
		size = 1
	}

	cells := make([]rune, 0, width*height)
	for _, row := range g.Rows {
		cells = append(cells, []rune(row)...)
	}
	kindAt := func(x, y int) (TileKind, bool) {
		k, ok := legend[cells[y*width+x]]
		return k, ok
	}

	var boxes []Box
	processed := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			kind, ok := kindAt(x, y)
			if !ok {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < width {
				k, ok := kindAt(x+w, y)
				if processed[y*width+x+w] || !ok || k != kind {
					break
				}
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					k, ok := kindAt(xi, y+h)
					if processed[(y+h)*width+xi] || !ok || k != kind {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}

			top := float64(height-y) * size
			boxes = append(boxes, Box{
				BB: cp.BB{
					L: float64(x) * size,
					B: top - float64(h)*size,
					R: float64(x+w) * size,
					T: top,
				},
				Layer: kind.Layer,
				Tag:   kind.Tag,
			})
		}
	}
	return boxes, nil
}
