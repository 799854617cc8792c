package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and collision overlays")
	mute := flag.Bool("mute", false, "start with music and sound effects muted")
	seed := flag.Uint64("seed", 0, "seed for pipe placement and particles (0 = random)")
	watch := flag.Bool("watch", false, "reload prefabs/game.yaml and pipe scripts when they change on disk")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	if err := run(*profileMode, Options{Debug: *debug, Mute: *mute, Seed: *seed, Watch: *watch}); err != nil {
		log.Fatal(err)
	}
}

// run owns the profiler so it is stopped before main exits on an error.
func run(profileMode string, opts Options) error {
	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown -profile %q (want cpu or mem)", profileMode)
	}

	game, err := NewGame(opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(game.tuning.Window.Width, game.tuning.Window.Height)
	ebiten.SetWindowTitle(game.tuning.Window.Title)

	return ebiten.RunGame(game)
}
