package effects

import (
	"math"
	"testing"
	"time"
)

func TestCounterProgress(t *testing.T) {
	c := NewCounter(1000)
	c.Start(t0)

	c.Advance(t0.Add(1000 * time.Millisecond))
	// 62 whole 16ms steps of 8 each.
	if c.Value() != 496 {
		t.Errorf("Expected 496 after one second, got %d", c.Value())
	}
	if !c.Running() {
		t.Error("Expected counter still running")
	}

	c.Advance(t0.Add(3 * time.Second))
	if c.Value() != 1000 || c.Running() {
		t.Errorf("Expected finished at 1000, got %d (running=%v)", c.Value(), c.Running())
	}

	c.Advance(t0.Add(10 * time.Second))
	if c.Value() != 1000 {
		t.Errorf("Expected counter to stay at target, got %d", c.Value())
	}
}

func TestCounterRestart(t *testing.T) {
	c := NewCounter(500)
	c.Start(t0)
	c.Advance(t0.Add(3 * time.Second))
	c.Start(t0.Add(4 * time.Second))
	if c.Value() != 0 || !c.Running() {
		t.Errorf("Expected restart from zero, got %d", c.Value())
	}
}

func TestCounterIdleUntilStarted(t *testing.T) {
	c := NewCounter(500)
	c.Advance(t0.Add(time.Hour))
	if c.Value() != 0 {
		t.Errorf("Expected untouched counter, got %d", c.Value())
	}
}

func TestCounterText(t *testing.T) {
	tests := []struct {
		name     string
		target   int
		expected string
	}{
		{name: "Small", target: 42, expected: "42"},
		{name: "Thousands", target: 1000, expected: "1,000"},
		{name: "Billions", target: 1000000000, expected: "1,000,000,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCounter(tt.target)
			c.Start(t0)
			c.Advance(t0.Add(5 * time.Second))
			if got := c.Text(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFadeIn(t *testing.T) {
	var f FadeIn
	if f.Opacity(t0) != 0 || f.OffsetY(t0) != 30 {
		t.Fatalf("Expected hidden and lowered before first sight")
	}

	f.Show(t0)
	f.Show(t0.Add(time.Second))

	if got := f.Opacity(t0.Add(300 * time.Millisecond)); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected halfway opacity 0.5, got %v", got)
	}
	if got := f.Opacity(t0.Add(600 * time.Millisecond)); got != 1 {
		t.Errorf("Expected full opacity, got %v", got)
	}
	if got := f.OffsetY(t0.Add(time.Second)); got != 0 {
		t.Errorf("Expected no offset once shown, got %v", got)
	}
}

func TestHover(t *testing.T) {
	var h Hover
	for i := 0; i < 100; i++ {
		h.Update(true)
	}
	if math.Abs(h.TranslateY()+10) > 1e-6 || math.Abs(h.Scale()-1.02) > 1e-6 {
		t.Errorf("Expected lifted card, got translate %v scale %v", h.TranslateY(), h.Scale())
	}
	for i := 0; i < 100; i++ {
		h.Update(false)
	}
	if math.Abs(h.TranslateY()) > 1e-6 || math.Abs(h.Scale()-1) > 1e-6 {
		t.Errorf("Expected card at rest, got translate %v scale %v", h.TranslateY(), h.Scale())
	}
}

func TestSpin(t *testing.T) {
	var s Spin
	if s.Active(t0) {
		t.Fatal("Spin should be idle before a click")
	}
	s.Click(t0)
	if s.Scale(t0.Add(100*time.Millisecond)) != 1.5 || s.Rotation(t0.Add(100*time.Millisecond)) != math.Pi {
		t.Error("Expected grown and flipped icon during the spin")
	}
	if s.Scale(t0.Add(300*time.Millisecond)) != 1 || s.Rotation(t0.Add(300*time.Millisecond)) != 0 {
		t.Error("Expected icon reset after 300ms")
	}
}

func TestSmoothScroll(t *testing.T) {
	s := NewSmoothScroll(2000)
	s.To(800)
	prev := s.Offset()
	for i := 0; i < 200 && !s.Settled(); i++ {
		s.Update()
		if s.Offset() < prev {
			t.Fatalf("Scroll went backwards at step %d", i)
		}
		prev = s.Offset()
	}
	if s.Offset() != 800 {
		t.Errorf("Expected scroll to land on 800, got %v", s.Offset())
	}

	s.To(5000)
	for i := 0; i < 200; i++ {
		s.Update()
	}
	if s.Offset() != 2000 {
		t.Errorf("Expected scroll clamped to 2000, got %v", s.Offset())
	}

	s.Jump(-2500)
	if s.Offset() != 0 || !s.Settled() {
		t.Errorf("Expected jump to clamp at the top, got %v", s.Offset())
	}

	s.To(1500)
	s.SetLimit(1000)
	for i := 0; i < 200; i++ {
		s.Update()
	}
	if s.Offset() != 1000 {
		t.Errorf("Expected target re-clamped to the new limit, got %v", s.Offset())
	}
}

func TestDeformCycle(t *testing.T) {
	var d Deform
	if sx, sy := d.Scale(t0); sx != 1 || sy != 1 {
		t.Fatalf("Expected resting scale before start, got (%v, %v)", sx, sy)
	}
	d.Start(t0)

	tests := []struct {
		name     string
		at       time.Duration
		wider    bool
		narrower bool
	}{
		{name: "Squash", at: 150 * time.Millisecond, wider: true},
		{name: "Stretch", at: 450 * time.Millisecond, narrower: true},
		{name: "Finished", at: 600 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := d.Scale(t0.Add(tt.at))
			if math.Abs(sx+sy-2) > 1e-9 {
				t.Errorf("Expected width and height to trade off, got (%v, %v)", sx, sy)
			}
			switch {
			case tt.wider && sx <= 1:
				t.Errorf("Expected squash wider than rest, got %v", sx)
			case tt.narrower && sx >= 1:
				t.Errorf("Expected stretch narrower than rest, got %v", sx)
			case !tt.wider && !tt.narrower && (sx != 1 || sy != 1):
				t.Errorf("Expected resting scale, got (%v, %v)", sx, sy)
			}
		})
	}

	d.Start(t0)
	d.Stop()
	if d.Active(t0.Add(100 * time.Millisecond)) {
		t.Error("Expected Stop to clear the deform")
	}
}
