package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/controller"
	"github.com/milk9111/kinematic/prefabs"
	"github.com/milk9111/kinematic/world"
	"golang.org/x/image/colornames"
)

const lineWidth = 1.5

// drawSpace renders the level's static shapes through the camera.
func drawSpace(screen *ebiten.Image, w *world.StaticWorld, cam *Camera, colors prefabs.DebugSpec) {
	if w == nil || screen == nil {
		return
	}
	cp.DrawSpace(w.Space(), &spaceDrawer{screen: screen, cam: cam, colors: colors})
}

// drawCharacter outlines the bounds and every probe ray. Rays that hit are
// drawn to the hit point, climbable hits in the wall color.
func drawCharacter(screen *ebiten.Image, ctrl *controller.Controller, cam *Camera, colors prefabs.DebugSpec) {
	bounds := ctrl.Config().Bounds
	center := ctrl.Position().Add(bounds.Center)
	bb := cp.NewBBForExtents(center, bounds.Extents.X, bounds.Extents.Y)
	strokeBB(screen, cam, bb, colors.BoxColor.Color)

	probes := ctrl.Probes()
	for id, seg := range ctrl.Segments() {
		hit := probes[id]
		end := seg.End()
		clr := color.Color(colors.RayColor.Color)
		if hit.Hit {
			end = seg.Origin.Add(seg.Direction.Mult(hit.Distance))
			clr = colors.HitColor.Color
			if hit.Tag == controller.SurfaceClimbableWall {
				clr = colors.WallColor.Color
			}
		}
		strokeWorld(screen, cam, seg.Origin, end, clr)
	}
}

func strokeBB(screen *ebiten.Image, cam *Camera, bb cp.BB, clr color.Color) {
	corners := []cp.Vector{{X: bb.L, Y: bb.B}, {X: bb.R, Y: bb.B}, {X: bb.R, Y: bb.T}, {X: bb.L, Y: bb.T}}
	for i := range corners {
		strokeWorld(screen, cam, corners[i], corners[(i+1)%len(corners)], clr)
	}
}

func strokeWorld(screen *ebiten.Image, cam *Camera, a, b cp.Vector, clr color.Color) {
	ax, ay := cam.ToScreen(a)
	bx, by := cam.ToScreen(b)
	vector.StrokeLine(screen, ax, ay, bx, by, lineWidth, clr, true)
}

type spaceDrawer struct {
	screen *ebiten.Image
	cam    *Camera
	colors prefabs.DebugSpec
}

func (d *spaceDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	steps := 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		strokeWorld(d.screen, d.cam, prev, cur, c)
		prev = cur
	}
}

func (d *spaceDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	strokeWorld(d.screen, d.cam, a, b, fcolorToRGBA(fill))
}

func (d *spaceDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	strokeWorld(d.screen, d.cam, a, b, fcolorToRGBA(outline))
}

func (d *spaceDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	// fill carries the per-shape color from ShapeColor
	c := fcolorToRGBA(fill)
	for i := 0; i < count; i++ {
		strokeWorld(d.screen, d.cam, verts[i], verts[(i+1)%count], c)
	}
}

func (d *spaceDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	l := size / 2 / d.cam.Scale()
	c := fcolorToRGBA(fill)
	strokeWorld(d.screen, d.cam, cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	strokeWorld(d.screen, d.cam, cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

func (d *spaceDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *spaceDrawer) OutlineColor() cp.FColor {
	return rgbaToFColor(colornames.Lightgray)
}

// ShapeColor colors climbable walls apart from plain solids, and solid-layer
// boxes (walls only, never ground) dimmer than walkable ones.
func (d *spaceDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return rgbaToFColor(colornames.White)
	}
	if tag, _ := shape.UserData.(controller.SurfaceTag); tag == controller.SurfaceClimbableWall {
		return rgbaToFColor(d.colors.WallColor.Color)
	}
	if controller.Mask(shape.Filter.Categories)&world.MaskWalkable == 0 {
		return rgbaToFColor(colornames.Slategray)
	}
	return rgbaToFColor(colornames.Cornflowerblue)
}

func (d *spaceDrawer) ConstraintColor() cp.FColor {
	return rgbaToFColor(colornames.Gray)
}

func (d *spaceDrawer) CollisionPointColor() cp.FColor {
	return rgbaToFColor(colornames.Red)
}

func (d *spaceDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

func rgbaToFColor(c color.Color) cp.FColor {
	r, g, b, a := c.RGBA()
	return cp.FColor{R: float32(r) / 0xffff, G: float32(g) / 0xffff, B: float32(b) / 0xffff, A: float32(a) / 0xffff}
}
