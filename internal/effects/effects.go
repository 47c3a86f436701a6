// Package effects holds the small self-contained UI animations of the landing page.
// None of them touch the background scene.
package effects

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/starfield/internal/config"
)

// Rect is an axis-aligned box in page pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// CursorFollower is the soft dot that trails the pointer.
type CursorFollower struct {
	X, Y float64
}

func (c *CursorFollower) Update(pointerX, pointerY float64) {
	c.X += (pointerX - c.X) * config.FollowerSmoothing
	c.Y += (pointerY - c.Y) * config.FollowerSmoothing
}

// Parallax is the vertical offset applied to decorative layers while scrolling.
func Parallax(scroll float64) float64 {
	return scroll * config.ParallaxSpeed
}

const (
	rippleLife     = 600 * time.Millisecond
	rippleMaxScale = 4.0
	rippleAlpha    = 0.3

	dropCount    = 5
	dropInterval = 50 * time.Millisecond
	dropLife     = 1200 * time.Millisecond
	dropJitter   = 10.0
	dropMinSize  = 4.0
	dropSizeSpan = 6.0
)

func progress(born, now time.Time, life time.Duration) float64 {
	return clamp01(float64(now.Sub(born)) / float64(life))
}

// Ripple is a click splash inside a button, positioned relative to the button's top-left corner.
type Ripple struct {
	X, Y, Size float64
	Born       time.Time
	// Owner identifies the button the ripple was spawned in. It survives relayout.
	Owner string
}

func (r Ripple) Scale(now time.Time) float64 {
	return rippleMaxScale * progress(r.Born, now, rippleLife)
}

func (r Ripple) Alpha(now time.Time) float64 {
	return rippleAlpha * (1 - progress(r.Born, now, rippleLife))
}

type Ripples struct {
	items []Ripple
}

// Spawn centers a square ripple, as large as the button's longer side, on the click point.
func (rs *Ripples) Spawn(owner string, button Rect, clickX, clickY float64, now time.Time) Ripple {
	size := math.Max(button.W, button.H)
	r := Ripple{
		X:     clickX - button.X - size/2,
		Y:     clickY - button.Y - size/2,
		Size:  size,
		Born:  now,
		Owner: owner,
	}
	rs.items = append(rs.items, r)
	return r
}

// Prune drops ripples whose animation has finished.
func (rs *Ripples) Prune(now time.Time) {
	rs.items = prune(rs.items, func(r Ripple) bool { return now.Sub(r.Born) < rippleLife })
}

func (rs *Ripples) Active() []Ripple { return rs.items }

// Drop is one bead of water squeezed out of the sponge button.
type Drop struct {
	X, Y, W, H float64
	Born       time.Time
}

func (d Drop) Progress(now time.Time) float64 { return progress(d.Born, now, dropLife) }

type WaterDrops struct {
	rng   *rand.Rand
	items []Drop
}

func NewWaterDrops(rng *rand.Rand) *WaterDrops {
	return &WaterDrops{rng: rng}
}

// Press queues a burst of drops around the press point, staggered in time.
func (w *WaterDrops) Press(button Rect, clickX, clickY float64, now time.Time) {
	for i := 0; i < dropCount; i++ {
		w.items = append(w.items, Drop{
			X:    clickX - button.X + (w.rng.Float64()-0.5)*2*dropJitter,
			Y:    clickY - button.Y + (w.rng.Float64()-0.5)*2*dropJitter,
			W:    dropMinSize + w.rng.Float64()*dropSizeSpan,
			H:    dropMinSize + w.rng.Float64()*dropSizeSpan,
			Born: now.Add(time.Duration(i) * dropInterval),
		})
	}
}

// Active returns the drops that have appeared and not yet faded at now.
func (w *WaterDrops) Active(now time.Time) []Drop {
	var out []Drop
	for _, d := range w.items {
		if !now.Before(d.Born) && now.Sub(d.Born) < dropLife {
			out = append(out, d)
		}
	}
	return out
}

func (w *WaterDrops) Prune(now time.Time) {
	w.items = prune(w.items, func(d Drop) bool { return now.Sub(d.Born) < dropLife })
}

func (w *WaterDrops) Len() int { return len(w.items) }

func prune[T any](items []T, keep func(T) bool) []T {
	kept := items[:0]
	for _, it := range items {
		if keep(it) {
			kept = append(kept, it)
		}
	}
	return kept
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
