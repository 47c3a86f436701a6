package config

import (
	"errors"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	if c.Particles != 200 {
		t.Errorf("Expected 200 particles, got %d", c.Particles)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "Zero width", mutate: func(c *Config) { c.Width = 0 }},
		{name: "Negative height", mutate: func(c *Config) { c.Height = -1 }},
		{name: "No particles", mutate: func(c *Config) { c.Particles = 0 }},
		{name: "Headless without frames", mutate: func(c *Config) { c.Headless = true; c.Frames = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}
