package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/controller"
	"github.com/milk9111/kinematic/world"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type CharacterSpec struct {
	Name     string       `yaml:"name"`
	Collider ColliderSpec `yaml:"collider"`
	Motion   MotionSpec   `yaml:"motion"`
	Jump     JumpSpec     `yaml:"jump"`
	Debug    DebugSpec    `yaml:"debug"`
}

// ColliderSpec is the character box in world units, offset from the anchor.
type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type MotionSpec struct {
	Speed               float64  `yaml:"speed"`
	SprintSpeed         float64  `yaml:"sprint_speed"`
	Sprint              bool     `yaml:"sprint"`
	Gravity             float64  `yaml:"gravity"`
	MaxFallSpeed        float64  `yaml:"max_fall_speed"`
	SkinMargin          float64  `yaml:"skin_margin"`
	Correction          string   `yaml:"correction"`
	CorrectionRate      float64  `yaml:"correction_rate"`
	SecondaryCorrection bool     `yaml:"secondary_correction"`
	GroundLayers        []string `yaml:"ground_layers"`
	WallLayers          []string `yaml:"wall_layers"`
}

type JumpSpec struct {
	Strength      float64 `yaml:"strength"`
	AirStrength   float64 `yaml:"air_strength"`
	AirJumps      int     `yaml:"air_jumps"`
	WallBounce    float64 `yaml:"wall_bounce"`
	WallClimb     bool    `yaml:"wall_climb"`
	CoyoteSeconds float64 `yaml:"coyote_seconds"`
	BufferSeconds float64 `yaml:"buffer_seconds"`
}

type DebugSpec struct {
	BoxColor  YAMLColor `yaml:"box_color"`
	RayColor  YAMLColor `yaml:"ray_color"`
	HitColor  YAMLColor `yaml:"hit_color"`
	WallColor YAMLColor `yaml:"wall_color"`
}

// DefaultCharacterSpec mirrors controller.DefaultConfig with the world's
// layer names filled in.
func DefaultCharacterSpec() CharacterSpec {
	cfg := controller.DefaultConfig()
	return CharacterSpec{
		Name: "character",
		Collider: ColliderSpec{
			Width:  cfg.Bounds.Extents.X * 2,
			Height: cfg.Bounds.Extents.Y * 2,
		},
		Motion: MotionSpec{
			Speed:               cfg.Motion.DefaultSpeed,
			SprintSpeed:         cfg.Motion.SprintSpeed,
			Sprint:              cfg.Motion.SprintEnabled,
			Gravity:             cfg.Motion.Gravity,
			MaxFallSpeed:        cfg.Motion.MaxFallSpeed,
			SkinMargin:          cfg.Motion.SkinMargin,
			Correction:          string(cfg.Motion.Correction),
			CorrectionRate:      cfg.Motion.CorrectionRate,
			SecondaryCorrection: cfg.Motion.SecondaryCorrection,
			GroundLayers:        []string{"ground"},
			WallLayers:          []string{"ground", "solid"},
		},
		Jump: JumpSpec{
			Strength:      cfg.Jump.JumpStrength,
			AirStrength:   cfg.Jump.AirJumpStrength,
			AirJumps:      cfg.Jump.AirJumps,
			WallBounce:    cfg.Jump.WallBounceStrength,
			WallClimb:     cfg.Jump.WallClimbEnabled,
			CoyoteSeconds: cfg.Jump.CoyoteDuration,
			BufferSeconds: cfg.Jump.JumpBufferDuration,
		},
		Debug: DebugSpec{
			BoxColor:  YAMLColor{color.NRGBA{R: 0x40, G: 0xff, B: 0x40, A: 0xff}},
			RayColor:  YAMLColor{color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}},
			HitColor:  YAMLColor{color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}},
			WallColor: YAMLColor{color.NRGBA{R: 0x66, G: 0xb3, B: 0xff, A: 0xff}},
		},
	}
}

// LoadCharacterSpec reads a character prefab. Keys missing from the file keep
// their default values.
func LoadCharacterSpec(filename string) (CharacterSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return CharacterSpec{}, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return ParseCharacterSpec(data)
}

func ParseCharacterSpec(data []byte) (CharacterSpec, error) {
	spec := DefaultCharacterSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return CharacterSpec{}, fmt.Errorf("prefabs: unmarshal character: %w", err)
	}
	return spec, nil
}

// Config converts the prefab into a validated controller config.
func (s CharacterSpec) Config() (controller.Config, error) {
	ground, err := layerMask(s.Motion.GroundLayers)
	if err != nil {
		return controller.Config{}, fmt.Errorf("prefabs: %s ground_layers: %w", s.Name, err)
	}
	walls, err := layerMask(s.Motion.WallLayers)
	if err != nil {
		return controller.Config{}, fmt.Errorf("prefabs: %s wall_layers: %w", s.Name, err)
	}

	cfg := controller.Config{
		Bounds: controller.Bounds{
			Center:  cp.Vector{X: s.Collider.OffsetX, Y: s.Collider.OffsetY},
			Extents: cp.Vector{X: s.Collider.Width / 2, Y: s.Collider.Height / 2},
		},
		Motion: controller.MotionConfig{
			DefaultSpeed:        s.Motion.Speed,
			SprintSpeed:         s.Motion.SprintSpeed,
			SprintEnabled:       s.Motion.Sprint,
			Gravity:             s.Motion.Gravity,
			MaxFallSpeed:        s.Motion.MaxFallSpeed,
			SkinMargin:          s.Motion.SkinMargin,
			Correction:          controller.CorrectionMode(strings.ToLower(s.Motion.Correction)),
			CorrectionRate:      s.Motion.CorrectionRate,
			SecondaryCorrection: s.Motion.SecondaryCorrection,
			GroundMask:          ground,
			WallMask:            walls,
		},
		Jump: controller.JumpConfig{
			JumpStrength:       s.Jump.Strength,
			AirJumpStrength:    s.Jump.AirStrength,
			AirJumps:           s.Jump.AirJumps,
			WallBounceStrength: s.Jump.WallBounce,
			WallClimbEnabled:   s.Jump.WallClimb,
			CoyoteDuration:     s.Jump.CoyoteSeconds,
			JumpBufferDuration: s.Jump.BufferSeconds,
		},
	}
	if err := cfg.Validate(); err != nil {
		return controller.Config{}, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	return cfg, nil
}

func layerMask(names []string) (controller.Mask, error) {
	var mask controller.Mask
	for _, name := range names {
		l, err := world.ParseLayer(name)
		if err != nil {
			return 0, err
		}
		mask |= l
	}
	return mask, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ReplaySpec describes a headless scripted run.
type ReplaySpec struct {
	Name      string  `yaml:"name"`
	Level     string  `yaml:"level"`
	Character string  `yaml:"character"`
	Script    string  `yaml:"script"`
	Frames    int     `yaml:"frames"`
	FrameRate float64 `yaml:"frame_rate"`
	TickRate  float64 `yaml:"tick_rate"`
}

func LoadReplaySpec(filename string) (ReplaySpec, error) {
	spec, err := LoadSpec[ReplaySpec](filename)
	if err != nil {
		return ReplaySpec{}, err
	}
	if spec.Character == "" {
		spec.Character = "character.yaml"
	}
	if spec.FrameRate <= 0 {
		spec.FrameRate = 60
	}
	if spec.TickRate <= 0 {
		spec.TickRate = 50
	}
	if spec.Frames <= 0 {
		return ReplaySpec{}, fmt.Errorf("prefabs: %s: frames must be positive", filename)
	}
	return spec, nil
}

// MarshalYAML writes the color back as #rrggbbaa.
func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return "", nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
