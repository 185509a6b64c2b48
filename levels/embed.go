package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/world"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml *.tmx
var LevelsFS embed.FS

// diskDir is checked before the embedded copies so edited levels reload.
const diskDir = "levels"

type Spec struct {
	Name       string     `yaml:"name"`
	TileSize   float64    `yaml:"tile_size"`
	Spawn      VectorSpec `yaml:"spawn"`
	KillHeight *float64   `yaml:"kill_height"`
	Grid       []string   `yaml:"grid"`
	Boxes      []BoxSpec  `yaml:"boxes"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BoxSpec is a box by its bottom-left corner and size, in world units.
type BoxSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	Layer string  `yaml:"layer"`
	Tag   string  `yaml:"tag"`
}

// FS returns the on-disk levels directory when present, else the embedded one.
func FS() fs.FS {
	if info, err := os.Stat(diskDir); err == nil && info.IsDir() {
		return os.DirFS(diskDir)
	}
	return LevelsFS
}

// Load reads a level by file name. .tmx files go through the Tiled loader,
// anything else is parsed as a YAML Spec. A missing extension means .yaml.
func Load(name string) (world.Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(name), diskDir+"/")
	if filepath.Ext(clean) == "" {
		clean += ".yaml"
	}
	fsys := FS()
	if strings.EqualFold(filepath.Ext(clean), ".tmx") {
		return world.LoadTiled(fsys, clean)
	}

	data, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return world.Level{}, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return world.Level{}, fmt.Errorf("levels: %s: %w", clean, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(clean, filepath.Ext(clean))
	}
	return lvl, nil
}

// Parse converts a YAML level spec.
func Parse(data []byte) (world.Level, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return world.Level{}, fmt.Errorf("unmarshal: %w", err)
	}
	return spec.Level()
}

func (s Spec) Level() (world.Level, error) {
	lvl := world.NewLevel(s.Name)
	lvl.Spawn = cp.Vector{X: s.Spawn.X, Y: s.Spawn.Y}
	if s.KillHeight != nil {
		lvl.KillHeight = *s.KillHeight
	}

	boxes, err := world.Grid{Rows: s.Grid, TileSize: s.TileSize}.Boxes()
	if err != nil {
		return world.Level{}, err
	}
	lvl.Boxes = boxes

	for i, b := range s.Boxes {
		if b.W <= 0 || b.H <= 0 {
			return world.Level{}, fmt.Errorf("box %d: size must be positive, got %gx%g", i, b.W, b.H)
		}
		layer, err := world.ParseLayer(b.Layer)
		if err != nil {
			return world.Level{}, fmt.Errorf("box %d: %w", i, err)
		}
		tag, err := world.ParseTag(b.Tag)
		if err != nil {
			return world.Level{}, fmt.Errorf("box %d: %w", i, err)
		}
		lvl.Boxes = append(lvl.Boxes, world.Box{
			BB:    cp.BB{L: b.X, B: b.Y, R: b.X + b.W, T: b.Y + b.H},
			Layer: layer,
			Tag:   tag,
		})
	}
	return lvl, nil
}
