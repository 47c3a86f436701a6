package config

import (
	"errors"
	"fmt"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	VisualRingSize  = 8192
	SmoothingFactor = 0.6

	// Background scene
	ParticleCount  = 200
	ParticleBound  = 15.0
	ParticleSpeed  = 0.0025
	ParticleRadius = 0.01
	TwinkleStep    = 0.05
	RotationSpeed  = 0.01

	// Camera
	CameraZ         = 5.0
	CameraFOV       = 75.0
	CameraNear      = 0.1
	CameraFar       = 1000.0
	CameraSmoothing = 0.05
	PointerScale    = 0.001

	// Page effects
	FollowerSmoothing = 0.1
	ParallaxSpeed     = 0.5

	// Frame pacing for headless runs
	FrameRate = 60
)

var ErrInvalid = errors.New("invalid config")

// Config is the runtime configuration assembled in main from flags.
type Config struct {
	Width, Height int
	Particles     int
	Seed          uint64
	Sound         bool

	// Headless runs the background loop without a window for Frames ticks.
	Headless bool
	Frames   int
}

func Default() Config {
	return Config{
		Width:     WindowWidth,
		Height:    WindowHeight,
		Particles: ParticleCount,
		Frames:    FrameRate * 10,
	}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.Particles <= 0 {
		return fmt.Errorf("%w: particle count %d", ErrInvalid, c.Particles)
	}
	if c.Headless && c.Frames <= 0 {
		return fmt.Errorf("%w: headless run needs a positive frame count, got %d", ErrInvalid, c.Frames)
	}
	return nil
}
