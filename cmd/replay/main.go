package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/kinematic/controller"
	"github.com/milk9111/kinematic/prefabs"
	"github.com/milk9111/kinematic/replay"
)

func main() {
	replayName := flag.String("replay", "replay_run.yaml", "replay spec in prefabs/")
	levelName := flag.String("level", "", "override the replay's level")
	character := flag.String("character", "", "override the replay's character prefab")
	script := flag.String("script", "", "override the replay's input script")
	frames := flag.Int("frames", 0, "override the number of frames")
	every := flag.Int("every", 10, "print a trajectory sample every N frames (0 prints none)")
	verbose := flag.Bool("v", false, "log controller events as they fire")
	flag.Parse()

	spec, err := prefabs.LoadReplaySpec(*replayName)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		spec.Level = *levelName
	}
	if *character != "" {
		spec.Character = *character
	}
	if *script != "" {
		spec.Script = *script
	}
	if *frames > 0 {
		spec.Frames = *frames
	}

	var opts []replay.Option
	if *verbose {
		opts = append(opts, replay.WithLogger(log.New(os.Stderr, "", log.Lmicroseconds)))
	}

	res, err := replay.Run(spec, opts...)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %d frames, %d fixed steps, level %s, script %s\n", res.Name, len(res.Samples), res.FixedSteps, spec.Level, spec.Script)
	if *every > 0 {
		fmt.Println("frame     time        x        y       vx       vy  grounded")
		for _, s := range res.Samples {
			if s.Frame%*every != 0 {
				continue
			}
			fmt.Printf("%5d %8.3f %8.3f %8.3f %8.3f %8.3f  %v\n",
				s.Frame, s.Time, s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y, s.Grounded)
		}
	}

	fmt.Println("events:")
	for _, evt := range res.Events {
		line := fmt.Sprintf("  %8.3f %s", evt.Time, evt.Type)
		if evt.Type == controller.EventJumpFired {
			line += " " + evt.Jump.String()
			if evt.WallBounce {
				line += " (wall bounce)"
			}
		}
		fmt.Println(line)
	}
	fmt.Printf("grounded %d, airborne %d, jumps %d, respawns %d\n",
		res.Count(controller.EventGrounded), res.Count(controller.EventAirborne), len(res.Jumps()), res.Respawns)
}
