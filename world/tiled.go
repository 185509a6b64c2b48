package world

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/lafriks/go-tiled"
)

// killMargin is how far below the map a Tiled level kills when it declares
// no DeadZones.
const killMargin = 5

// tileLayerRunes assigns Tiled tile layers to grid legend entries.
var tileLayerRunes = map[string]rune{
	"ground":    '#',
	"climbable": 'W',
	"walls":     'W',
	"solid":     'S',
}

// LoadTiled reads a TMX map from fsys. One tile is one world unit and the map
// is flipped so y grows upward.
//
// Tile layers named ground, climbable/walls and solid become merged boxes.
// Objects in the Solids group become boxes whose class names the layer and
// whose "tag" property names the surface. The first PlayerSpawn object sets the
// spawn and the top of the highest DeadZones object sets the kill height.
func LoadTiled(fsys fs.FS, path string) (Level, error) {
	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return Level{}, fmt.Errorf("world: load TMX %s: %w", path, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return Level{}, fmt.Errorf("world: %s has no tile size", path)
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	mapH := float64(levelMap.Height)
	toWorld := func(x, y float64) cp.Vector {
		return cp.Vector{X: x / tileW, Y: mapH - y/tileH}
	}

	lvl := NewLevel(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	lvl.KillHeight = -killMargin

	for _, layer := range levelMap.Layers {
		r, ok := tileLayerRunes[strings.ToLower(layer.Name)]
		if !ok {
			continue
		}
		rows := make([]string, levelMap.Height)
		for y := 0; y < levelMap.Height; y++ {
			var sb strings.Builder
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					sb.WriteRune('.')
					continue
				}
				sb.WriteRune(r)
			}
			rows[y] = sb.String()
		}
		boxes, err := Grid{Rows: rows, TileSize: 1}.Boxes()
		if err != nil {
			return Level{}, fmt.Errorf("world: %s layer %s: %w", path, layer.Name, err)
		}
		lvl.Boxes = append(lvl.Boxes, boxes...)
	}

	spawned := false
	deadZones := 0
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Solids":
			for _, o := range og.Objects {
				class := o.Class
				if class == "" {
					class = o.Type //nolint:staticcheck // TMX uses type= attribute
				}
				layer, err := ParseLayer(class)
				if err != nil {
					return Level{}, fmt.Errorf("world: %s object %d: %w", path, o.ID, err)
				}
				tag, err := ParseTag(o.Properties.GetString("tag"))
				if err != nil {
					return Level{}, fmt.Errorf("world: %s object %d: %w", path, o.ID, err)
				}
				tl := toWorld(o.X, o.Y)
				br := toWorld(o.X+o.Width, o.Y+o.Height)
				lvl.Boxes = append(lvl.Boxes, Box{
					BB:    cp.BB{L: tl.X, B: br.Y, R: br.X, T: tl.Y},
					Layer: layer,
					Tag:   tag,
				})
			}
		case "PlayerSpawn":
			if spawned || len(og.Objects) == 0 {
				continue
			}
			o := og.Objects[0]
			lvl.Spawn = toWorld(o.X+o.Width/2, o.Y+o.Height/2)
			spawned = true
		case "DeadZones":
			for _, o := range og.Objects {
				top := toWorld(o.X, o.Y).Y
				if deadZones == 0 || top > lvl.KillHeight {
					lvl.KillHeight = top
				}
				deadZones++
			}
		}
	}
	return lvl, nil
}
