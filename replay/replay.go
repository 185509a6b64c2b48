package replay

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/kinematic/clock"
	"github.com/milk9111/kinematic/controller"
	"github.com/milk9111/kinematic/input"
	"github.com/milk9111/kinematic/levels"
	"github.com/milk9111/kinematic/prefabs"
)

// Sample is the character after one frame.
type Sample struct {
	Frame    int
	Time     float64
	Position cp.Vector
	Velocity cp.Vector
	Grounded bool
}

type Result struct {
	Name     string
	Samples  []Sample
	Events   []controller.Event
	Respawns int
	// FixedSteps is the number of fixed-rate commits over the run.
	FixedSteps int
}

// Count returns how many events of type t fired.
func (r Result) Count(t controller.EventType) int {
	n := 0
	for _, evt := range r.Events {
		if evt.Type == t {
			n++
		}
	}
	return n
}

// Jumps returns the fired jump events in order.
func (r Result) Jumps() []controller.Event {
	var out []controller.Event
	for _, evt := range r.Events {
		if evt.Type == controller.EventJumpFired {
			out = append(out, evt)
		}
	}
	return out
}

type Option func(*runner)

// WithLogger forwards controller logging.
func WithLogger(l *log.Logger) Option {
	return func(r *runner) {
		r.logger = l
	}
}

// WithScript replaces the spec's script with src.
func WithScript(name string, src []byte) Option {
	return func(r *runner) {
		r.scriptName = name
		r.scriptSrc = src
	}
}

type runner struct {
	logger     *log.Logger
	scriptName string
	scriptSrc  []byte
}

// Run plays spec headless: each frame the script observes the character, then
// the controller runs one update and as many fixed steps as the frame covers.
// Falling below the level's kill height respawns the character.
func Run(spec prefabs.ReplaySpec, opts ...Option) (Result, error) {
	if spec.Frames <= 0 {
		return Result{}, fmt.Errorf("replay: frames must be positive, got %d", spec.Frames)
	}
	r := &runner{}
	for _, opt := range opts {
		opt(r)
	}

	lvl, err := levels.Load(spec.Level)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	charSpec, err := prefabs.LoadCharacterSpec(spec.Character)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	cfg, err := charSpec.Config()
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	var script *input.Script
	if r.scriptSrc != nil {
		script, err = input.NewScript(r.scriptName, r.scriptSrc)
	} else {
		script, err = input.LoadScript(spec.Script)
	}
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	clk, err := clock.FromRates(spec.FrameRate, spec.TickRate)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	loop := clock.NewLoop(clk)

	body := &controller.Transform{}
	var ctrlOpts []controller.Option
	if r.logger != nil {
		ctrlOpts = append(ctrlOpts, controller.WithLogger(r.logger))
	}
	ctrl, err := controller.New(cfg, controller.Deps{
		Caster:   lvl.Build(),
		Position: body,
		Input:    script,
		Clock:    clk,
	}, ctrlOpts...)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	ctrl.Teleport(lvl.Spawn)

	res := Result{Name: spec.Name, Samples: make([]Sample, 0, spec.Frames)}
	for frame := 0; frame < spec.Frames; frame++ {
		now := clk.Now()
		obs := input.Observation{
			Frame:    frame,
			Time:     now,
			Position: body.Position(),
			Grounded: ctrl.State().IsGrounded,
		}
		if err := script.Step(obs); err != nil {
			return res, fmt.Errorf("replay: %w", err)
		}

		loop.Frame(ctrl.Update, ctrl.FixedUpdate)
		res.Events = append(res.Events, ctrl.Events().Drain()...)

		if lvl.Killed(body.Position()) {
			ctrl.Teleport(lvl.Spawn)
			res.Respawns++
		}
		res.Samples = append(res.Samples, Sample{
			Frame:    frame,
			Time:     now,
			Position: body.Position(),
			Velocity: ctrl.Velocity(),
			Grounded: ctrl.State().IsGrounded,
		})
	}
	res.FixedSteps = loop.Steps()
	return res, nil
}
