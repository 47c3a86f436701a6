package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/starfield/internal/audio"
	"github.com/iburimskiy/starfield/internal/camera"
	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/game"
	"github.com/iburimskiy/starfield/internal/loop"
	"github.com/iburimskiy/starfield/internal/page"
	"github.com/iburimskiy/starfield/internal/particle"
)

var errFrameBudget = errors.New("frame budget reached")

func main() {
	log.SetPrefix("[starfield] ")

	cfg := config.Default()
	flag.IntVar(&cfg.Width, "width", cfg.Width, "window width in pixels")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "window height in pixels")
	flag.IntVar(&cfg.Particles, "particles", cfg.Particles, "number of stars")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 picks one from the clock")
	flag.BoolVar(&cfg.Sound, "sound", cfg.Sound, "play the squeeze chime")
	flag.BoolVar(&cfg.Headless, "headless", cfg.Headless, "run the star field without a window")
	flag.IntVar(&cfg.Frames, "frames", cfg.Frames, "frames to run in headless mode")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed>>1|1))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bg := game.NewBackground(particle.New(cfg.Particles, rng), camera.New(cfg.Width, cfg.Height))
	log.Printf("%d stars, seed %d", cfg.Particles, cfg.Seed)

	if cfg.Headless {
		if err := runHeadless(ctx, bg, cfg.Frames); err != nil {
			log.Fatalf("headless: %v", err)
		}
		return
	}

	player := audio.NewPlayer(cfg.Sound)
	defer player.Close()

	pg := page.New(cfg.Width, cfg.Height, rng, time.Now())
	pg.OnSqueeze = func() {
		if err := player.Chime(); err != nil {
			log.Printf("chime: %v", err)
		}
	}

	handle := loop.NewHandle()
	go func() {
		select {
		case <-ctx.Done():
			handle.Stop()
		case <-handle.Done():
		}
	}()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Starfield - Esc/Q: Quit, Space: pause music")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(bg, pg, player, handle)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("run: %v", err)
	}
	handle.Finish(nil)
}

// runHeadless ticks the star field at display rate for a fixed number of frames.
func runHeadless(ctx context.Context, bg *game.Background, frames int) error {
	start := time.Now()
	err := loop.Run(ctx, func() error {
		bg.Step()
		if bg.Frames() >= uint64(frames) {
			return errFrameBudget
		}
		return nil
	}, time.Second/config.FrameRate)

	switch {
	case errors.Is(err, errFrameBudget):
	case errors.Is(err, context.Canceled):
		log.Printf("interrupted")
	default:
		return err
	}

	pos := bg.Camera().Position()
	log.Printf("%d frames in %v, camera at (%.4f, %.4f, %.4f)", bg.Frames(), time.Since(start).Round(time.Millisecond), pos.X(), pos.Y(), pos.Z())
	return nil
}
