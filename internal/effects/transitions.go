package effects

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	counterDuration = 2000 * time.Millisecond
	counterInterval = 16 * time.Millisecond

	fadeDuration = 600 * time.Millisecond
	fadeOffset   = 30.0

	hoverLift    = 10.0
	hoverGrow    = 0.02
	hoverEasing  = 0.2
	spinDuration = 300 * time.Millisecond

	deformDuration = 600 * time.Millisecond
	deformSquash   = 0.08

	scrollEasing = 0.15
	scrollSnap   = 0.5
)

var numberPrinter = message.NewPrinter(language.English)

// Counter counts a statistic up from zero in fixed 16ms steps over two seconds.
type Counter struct {
	Target int

	step    float64
	current float64
	ticks   int
	start   time.Time
	running bool
}

func NewCounter(target int) *Counter {
	return &Counter{
		Target: target,
		step:   float64(target) / float64(counterDuration/counterInterval),
	}
}

// Start restarts the count from zero.
func (c *Counter) Start(now time.Time) {
	c.current = 0
	c.ticks = 0
	c.start = now
	c.running = true
}

// Advance applies every 16ms step that has elapsed by now.
func (c *Counter) Advance(now time.Time) {
	if !c.running {
		return
	}
	due := int(now.Sub(c.start) / counterInterval)
	for c.ticks < due {
		c.ticks++
		c.current += c.step
		if c.current >= float64(c.Target) {
			c.current = float64(c.Target)
			c.running = false
			return
		}
	}
}

func (c *Counter) Running() bool { return c.running }

func (c *Counter) Value() int { return int(math.Floor(c.current)) }

// Text renders the current value with thousands separators.
func (c *Counter) Text() string {
	return numberPrinter.Sprintf("%d", c.Value())
}

// FadeIn keeps an element hidden and lowered until it is first seen, then eases it into place.
type FadeIn struct {
	shown   bool
	shownAt time.Time
}

func (f *FadeIn) Show(now time.Time) {
	if f.shown {
		return
	}
	f.shown = true
	f.shownAt = now
}

func (f *FadeIn) Shown() bool { return f.shown }

func (f *FadeIn) Opacity(now time.Time) float64 {
	if !f.shown {
		return 0
	}
	return ease(progress(f.shownAt, now, fadeDuration))
}

func (f *FadeIn) OffsetY(now time.Time) float64 {
	return fadeOffset * (1 - f.Opacity(now))
}

// ease is a smoothstep curve standing in for CSS "ease".
func ease(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Hover eases a card toward its lifted state while the pointer is over it.
type Hover struct {
	amount float64
}

func (h *Hover) Update(hovered bool) {
	target := 0.0
	if hovered {
		target = 1
	}
	h.amount += (target - h.amount) * hoverEasing
}

func (h *Hover) TranslateY() float64 { return -hoverLift * h.amount }

func (h *Hover) Scale() float64 { return 1 + hoverGrow*h.amount }

// Spin is the brief grow-and-flip of a floating icon after a click.
type Spin struct {
	until time.Time
}

func (s *Spin) Click(now time.Time) { s.until = now.Add(spinDuration) }

func (s *Spin) Active(now time.Time) bool { return now.Before(s.until) }

func (s *Spin) Scale(now time.Time) float64 {
	if s.Active(now) {
		return 1.5
	}
	return 1
}

func (s *Spin) Rotation(now time.Time) float64 {
	if s.Active(now) {
		return math.Pi
	}
	return 0
}

// Deform is the sponge's squash-and-stretch. It plays once from hover entry and is cleared on leave.
type Deform struct {
	playing bool
	start   time.Time
}

func (d *Deform) Start(now time.Time) {
	d.playing = true
	d.start = now
}

func (d *Deform) Stop() { d.playing = false }

func (d *Deform) Active(now time.Time) bool {
	return d.playing && now.Sub(d.start) < deformDuration
}

// Scale returns the horizontal and vertical scale at now. Width and height trade off so the area
// stays roughly constant, and both return to 1 at the end of the cycle.
func (d *Deform) Scale(now time.Time) (sx, sy float64) {
	if !d.Active(now) {
		return 1, 1
	}
	t := ease(progress(d.start, now, deformDuration))
	w := deformSquash * math.Sin(2*math.Pi*t)
	return 1 + w, 1 - w
}

// SmoothScroll eases the page offset toward a target and snaps once close enough.
type SmoothScroll struct {
	offset, target float64
	limit          float64
}

func NewSmoothScroll(limit float64) *SmoothScroll {
	return &SmoothScroll{limit: limit}
}

func (s *SmoothScroll) To(target float64) { s.target = s.clamp(target) }

// Jump moves immediately, as a wheel scroll does, and cancels any pending glide.
func (s *SmoothScroll) Jump(delta float64) {
	s.offset = s.clamp(s.offset + delta)
	s.target = s.offset
}

func (s *SmoothScroll) Update() {
	s.offset += (s.target - s.offset) * scrollEasing
	if math.Abs(s.target-s.offset) < scrollSnap {
		s.offset = s.target
	}
}

func (s *SmoothScroll) SetLimit(limit float64) {
	s.limit = limit
	s.offset = s.clamp(s.offset)
	s.target = s.clamp(s.target)
}

func (s *SmoothScroll) Offset() float64 { return s.offset }

func (s *SmoothScroll) Settled() bool { return s.offset == s.target }

func (s *SmoothScroll) clamp(v float64) float64 {
	return math.Max(0, math.Min(v, s.limit))
}
