package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/kinematic/assets"
	"github.com/milk9111/kinematic/clock"
	"github.com/milk9111/kinematic/controller"
	"github.com/milk9111/kinematic/input"
	"github.com/milk9111/kinematic/levels"
	"github.com/milk9111/kinematic/prefabs"
	"github.com/milk9111/kinematic/world"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	recentEvents = 6
)

type Options struct {
	Character string
	Level     string
	Scale     float64
	TickRate  float64
	Watch     bool
	Debug     bool
	Mute      bool
	Verbose   bool
}

type Game struct {
	opts   Options
	frames int

	spec  prefabs.CharacterSpec
	level world.Level
	space *world.StaticWorld

	body   *controller.Transform
	keys   *input.Keyboard
	loop   *clock.Loop
	ctrl   *controller.Controller
	camera *Camera

	watcher *prefabs.Watcher
	sounds  *assets.Sounds
	logger  *log.Logger

	recent []string
	status string
}

func NewGame(opts Options) (*Game, error) {
	clk, err := clock.Ebiten(opts.TickRate)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:   opts,
		body:   &controller.Transform{},
		keys:   input.NewKeyboard(),
		loop:   clock.NewLoop(clk),
		camera: NewCamera(baseWidth, baseHeight, opts.Scale),
	}
	if opts.Verbose {
		g.logger = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
	}

	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	if err := g.loadCharacter(); err != nil {
		return nil, err
	}
	g.respawn()

	if !opts.Mute {
		if g.sounds, err = assets.NewSounds(); err != nil {
			log.Printf("sound disabled: %v", err)
		}
	}
	if opts.Watch {
		g.startWatcher()
	}
	return g, nil
}

func (g *Game) loadLevel() error {
	lvl, err := levels.Load(g.opts.Level)
	if err != nil {
		return err
	}
	g.level = lvl
	g.space = lvl.Build()
	g.camera.SetWorldBounds(lvl.Extent())
	return nil
}

// loadCharacter rebuilds the controller from the prefab, keeping the body
// where it is.
func (g *Game) loadCharacter() error {
	spec, err := prefabs.LoadCharacterSpec(g.opts.Character)
	if err != nil {
		return err
	}
	cfg, err := spec.Config()
	if err != nil {
		return err
	}

	var opts []controller.Option
	if g.logger != nil {
		opts = append(opts, controller.WithLogger(g.logger))
	}
	ctrl, err := controller.New(cfg, controller.Deps{
		Caster:   g.space,
		Position: g.body,
		Input:    g.keys,
		Clock:    g.loop.Clock(),
	}, opts...)
	if err != nil {
		return err
	}
	g.spec = spec
	g.ctrl = ctrl
	return nil
}

func (g *Game) respawn() {
	g.ctrl.Teleport(g.level.Spawn)
	g.camera.Snap(g.level.Spawn)
}

func (g *Game) startWatcher() {
	var dirs []string
	for _, dir := range []string{"prefabs", "levels"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("watch disabled: %v", err)
		return
	}
	g.watcher = w
}

// pollWatcher applies every pending file change without blocking.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	base := filepath.Base(path)
	switch {
	case filepath.Base(filepath.Dir(path)) == "levels" && sameFile(base, g.opts.Level):
		if err := g.loadLevel(); err != nil {
			g.status = fmt.Sprintf("level reload failed: %v", err)
			log.Print(g.status)
			return
		}
		// the controller holds the old world as its caster
		if err := g.loadCharacter(); err != nil {
			g.status = fmt.Sprintf("character reload failed: %v", err)
			log.Print(g.status)
			return
		}
		g.respawn()
		g.status = "reloaded " + base
	case sameFile(base, g.opts.Character):
		if err := g.loadCharacter(); err != nil {
			g.status = fmt.Sprintf("character reload failed: %v", err)
			log.Print(g.status)
			return
		}
		g.status = "reloaded " + base
		if t, ok := prefabs.ModTime(g.opts.Character); ok {
			g.status += " (" + t.Format(time.Kitchen) + ")"
		}
	}
}

// sameFile matches a changed file against a flag value that may omit the
// directory or the .yaml extension.
func sameFile(base, name string) bool {
	name = filepath.Base(name)
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	return strings.EqualFold(base, name)
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.opts.Debug = !g.opts.Debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawn()
	}

	g.keys.Update()
	g.loop.Frame(g.ctrl.Update, g.ctrl.FixedUpdate)

	if g.level.Killed(g.body.Position()) {
		g.respawn()
	}

	for _, evt := range g.ctrl.Events().Drain() {
		g.sounds.Play(evt)
		g.recent = append(g.recent, describe(evt))
		if len(g.recent) > recentEvents {
			g.recent = g.recent[1:]
		}
	}

	g.camera.Follow(g.body.Position())
	return nil
}

func describe(evt controller.Event) string {
	s := fmt.Sprintf("%7.2fs %s", evt.Time, evt.Type)
	if evt.Type == controller.EventJumpFired {
		s += " " + evt.Jump.String()
		if evt.WallBounce {
			s += " +wall"
		}
	}
	return s
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	drawSpace(screen, g.space, g.camera, g.spec.Debug)
	drawCharacter(screen, g.ctrl, g.camera, g.spec.Debug)

	if !g.opts.Debug {
		return
	}
	st := g.ctrl.State()
	v := g.ctrl.Velocity()
	p := g.body.Position()
	hud := fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f  fixed steps: %d\n"+
			"character: %s  level: %s\n"+
			"pos: (%.2f, %.2f)  vel: (%.2f, %.2f)\n"+
			"grounded: %v  air jumps: %d/%d\n"+
			"A/D move  Space jump  Shift sprint  R respawn  F1 debug  Esc quit\n%s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.loop.Steps(),
		g.spec.Name, g.level.Name,
		p.X, p.Y, v.X, v.Y,
		st.IsGrounded, st.AirJumpCount, g.ctrl.Config().Jump.AirJumps,
		g.status,
	)
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
	ebitenutil.DebugPrintAt(screen, strings.Join(g.recent, "\n"), 8, 110)
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
