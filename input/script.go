package input

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/prefabs"
)

// Observation is what a script sees of the character each frame.
type Observation struct {
	Frame    int
	Time     float64
	Position cp.Vector
	Grounded bool
}

// Script drives the controller from a tengo program. The program runs once per
// frame with frame, time, x, y, grounded and a persistent state map in scope,
// and sets move, jump and sprint. jump is level-triggered in the script and
// turned into a single press on its rising edge.
type Script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map

	move     float64
	sprint   bool
	jumpHeld bool
	jumpEdge bool
}

// NewScript compiles src. name is only used in errors.
func NewScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	globals := []struct {
		name  string
		value any
	}{
		{"frame", 0},
		{"time", 0.0},
		{"x", 0.0},
		{"y", 0.0},
		{"grounded", false},
		{"state", map[string]any{}},
		{"move", 0.0},
		{"jump", false},
		{"sprint", false},
	}
	for _, g := range globals {
		if err := script.Add(g.name, g.value); err != nil {
			return nil, fmt.Errorf("input: script %s: add %s: %w", name, g.name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile %s: %w", name, err)
	}
	return &Script{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// LoadScript compiles a script from the prefab scripts directory.
func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("input: load %s: %w", name, err)
	}
	return NewScript(name, src)
}

// Step runs the program for one frame.
func (s *Script) Step(obs Observation) error {
	inputs := []struct {
		name  string
		value any
	}{
		{"frame", obs.Frame},
		{"time", obs.Time},
		{"x", obs.Position.X},
		{"y", obs.Position.Y},
		{"grounded", obs.Grounded},
		{"state", s.state},
		{"move", 0.0},
		{"jump", false},
		{"sprint", false},
	}
	for _, in := range inputs {
		if err := s.compiled.Set(in.name, in.value); err != nil {
			return fmt.Errorf("input: script %s: set %s: %w", s.name, in.name, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("input: run %s frame %d: %w", s.name, obs.Frame, err)
	}

	if st, ok := s.compiled.Get("state").Object().(*tengo.Map); ok {
		s.state = st
	}
	s.move = s.compiled.Get("move").Float()
	s.sprint = s.compiled.Get("sprint").Bool()
	held := s.compiled.Get("jump").Bool()
	s.jumpEdge = held && !s.jumpHeld
	s.jumpHeld = held
	return nil
}

func (s *Script) JumpPressed() bool   { return s.jumpEdge }
func (s *Script) Horizontal() float64 { return s.move }
func (s *Script) SprintHeld() bool    { return s.sprint }
