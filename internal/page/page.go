// Package page models the scrolling landing page drawn over the star field: its sections, cards,
// buttons and counters, and the input that drives their effects.
package page

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/starfield/internal/effects"
)

var ErrNotFound = errors.New("not found")

const (
	HeaderHeight = 64.0

	navWidth   = 110.0
	navHeight  = 32.0
	navGap     = 8.0
	sidePad    = 60.0
	cardGap    = 30.0
	cardHeight = 220.0
	statHeight = 140.0

	wheelStep   = 40.0
	loadedDelay = 100 * time.Millisecond

	counterThreshold = 0.5
	fadeThreshold    = 0.1
	bottomMargin     = 50.0
)

// Action is something a click asks the host to do outside the page.
type Action int

const (
	None Action = iota
	ToggleMusic
)

type Section struct {
	ID     string
	Title  string
	Top    float64
	Height float64
}

type NavLink struct {
	Label string
	Href  string
	// Rect is in screen space; the header does not scroll.
	Rect  effects.Rect
	bound bool
}

type Button struct {
	ID     string
	Label  string
	Target string
	Rect   effects.Rect
}

type Card struct {
	Title string
	Body  string
	Rect  effects.Rect
	Hover effects.Hover
	Fade  effects.FadeIn
}

type Stat struct {
	Label   string
	Rect    effects.Rect
	Counter *effects.Counter
	visible bool
}

type Icon struct {
	X, Y float64
	Size float64
	Spin effects.Spin
}

type Text struct {
	Value string
	X, Y  float64
	Fade  effects.FadeIn
}

// Page is the whole landing page. Coordinates are page pixels unless noted; screen y is page y minus Scroll.Offset.
type Page struct {
	Width, Height float64

	Sections []Section
	Nav      []*NavLink
	Music    *Button
	Buttons  []*Button
	Cards    []*Card
	Stats    []*Stat
	Icons    []*Icon
	Title    *Text
	Subtitle *Text

	Scroll  *effects.SmoothScroll
	Ripples effects.Ripples
	Drops   *effects.WaterDrops
	Cursor  effects.CursorFollower
	Loaded  effects.FadeIn

	// Deform squashes the sponge button while the pointer rests on it.
	Deform effects.Deform

	// OnSqueeze runs when the sponge button is pressed. It is only set up when that button exists.
	OnSqueeze func()

	sponge        *Button
	spongeHovered bool
	started       time.Time
	content       float64
}

// New lays the page out for the given viewport.
func New(width, height int, rng *rand.Rand, now time.Time) *Page {
	p := &Page{
		Scroll:  effects.NewSmoothScroll(0),
		Drops:   effects.NewWaterDrops(rng),
		started: now,
	}
	p.Nav = []*NavLink{
		{Label: "Home", Href: "#hero"},
		{Label: "About", Href: "#about"},
		{Label: "Tokenomics", Href: "#tokenomics"},
		{Label: "Stats", Href: "#stats"},
	}
	p.Music = &Button{ID: "music", Label: "Music"}
	p.Buttons = []*Button{
		{ID: "explore", Label: "Explore", Target: "about"},
		{ID: "buy", Label: "Tokenomics", Target: "tokenomics"},
		{ID: "sponge", Label: "Squeeze me"},
	}
	p.Cards = []*Card{
		{Title: "Community", Body: "Built by people who\nlike looking at stars."},
		{Title: "Open", Body: "Everything on chain,\nnothing hidden."},
		{Title: "Playful", Body: "Squeeze the sponge.\nWatch it drip."},
		{Title: "Supply", Body: "One billion tokens."},
		{Title: "Liquidity", Body: "Locked for good."},
		{Title: "Tax", Body: "Zero on buys\nand sells."},
	}
	p.Stats = []*Stat{
		{Label: "Total supply", Counter: effects.NewCounter(1000000000)},
		{Label: "Holders", Counter: effects.NewCounter(25000)},
		{Label: "Burned %", Counter: effects.NewCounter(50)},
	}
	p.Title = &Text{Value: "STARFIELD"}
	p.Subtitle = &Text{Value: "A small token with a very large sky."}
	for i := 0; i < 4; i++ {
		p.Icons = append(p.Icons, &Icon{Size: 18})
	}

	p.Resize(width, height)
	p.bindNav()
	p.bindSponge()
	return p
}

// Resize recomputes the layout for a new viewport and keeps the scroll offset in range.
func (p *Page) Resize(width, height int) {
	p.Width, p.Height = float64(width), float64(height)
	w := p.Width

	heroH := math.Max(p.Height, 480)
	p.Sections = []Section{
		{ID: "hero", Top: 0, Height: heroH},
		{ID: "about", Title: "About", Top: heroH, Height: 520},
		{ID: "tokenomics", Title: "Tokenomics", Top: heroH + 520, Height: 520},
		{ID: "stats", Title: "Stats", Top: heroH + 1040, Height: 420},
	}
	last := p.Sections[len(p.Sections)-1]
	p.content = last.Top + last.Height

	x := w - navGap
	for i := len(p.Nav) - 1; i >= 0; i-- {
		x -= navWidth
		p.Nav[i].Rect = effects.Rect{X: x, Y: (HeaderHeight - navHeight) / 2, W: navWidth - navGap, H: navHeight}
	}
	p.Music.Rect = effects.Rect{X: 140, Y: (HeaderHeight - navHeight) / 2, W: 80, H: navHeight}

	p.Title.X, p.Title.Y = sidePad, heroH*0.35
	p.Subtitle.X, p.Subtitle.Y = sidePad, heroH*0.35+40
	for i, b := range p.Buttons {
		b.Rect = effects.Rect{X: sidePad + float64(i)*180, Y: heroH*0.35 + 100, W: 160, H: 48}
	}
	for i, ic := range p.Icons {
		ic.X = w*0.6 + float64(i%2)*w*0.2
		ic.Y = heroH*0.3 + float64(i/2)*heroH*0.3
	}

	cardW := (w - 2*sidePad - 2*cardGap) / 3
	for i, c := range p.Cards {
		sec := p.Sections[1+i/3]
		c.Rect = effects.Rect{X: sidePad + float64(i%3)*(cardW+cardGap), Y: sec.Top + 140, W: cardW, H: cardHeight}
	}
	stats := p.Sections[3]
	for i, s := range p.Stats {
		s.Rect = effects.Rect{X: sidePad + float64(i)*(cardW+cardGap), Y: stats.Top + 140, W: cardW, H: statHeight}
	}

	p.Scroll.SetLimit(math.Max(0, p.content-p.Height))
}

func (p *Page) ContentHeight() float64 { return p.content }

// SectionOffset returns the scroll offset that puts section id at the top of the viewport.
func (p *Page) SectionOffset(id string) (float64, error) {
	for _, s := range p.Sections {
		if s.ID == id {
			return s.Top, nil
		}
	}
	return 0, fmt.Errorf("section %q: %w", id, ErrNotFound)
}

// ScrollTo starts a smooth scroll to section id.
func (p *Page) ScrollTo(id string) error {
	top, err := p.SectionOffset(id)
	if err != nil {
		return err
	}
	p.Scroll.To(top)
	return nil
}

// Button looks up a page button by id.
func (p *Page) Button(id string) (*Button, error) {
	for _, b := range p.Buttons {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("button %q: %w", id, ErrNotFound)
}

func (p *Page) bindNav() {
	for _, l := range p.Nav {
		if len(l.Href) < 2 || l.Href[0] != '#' {
			continue
		}
		if _, err := p.SectionOffset(l.Href[1:]); err != nil {
			log.Printf("nav link %q skipped: %v", l.Label, err)
			continue
		}
		l.bound = true
	}
}

// Sponge is the squeeze button, or nil when the page has none.
func (p *Page) Sponge() *Button { return p.sponge }

func (p *Page) bindSponge() {
	b, err := p.Button("sponge")
	if err != nil {
		log.Printf("squeeze effect skipped: %v", err)
		return
	}
	p.sponge = b
}

// Wheel scrolls by whole notches; positive dy scrolls up as ebiten reports it.
func (p *Page) Wheel(dy float64) {
	if dy != 0 {
		p.Scroll.Jump(-dy * wheelStep)
	}
}

// Press handles a pointer going down at screen (x, y).
func (p *Page) Press(x, y float64, now time.Time) {
	if p.sponge == nil || y < HeaderHeight {
		return
	}
	py := y + p.Scroll.Offset()
	if !p.sponge.Rect.Contains(x, py) {
		return
	}
	p.Drops.Press(p.sponge.Rect, x, py, now)
	if p.OnSqueeze != nil {
		p.OnSqueeze()
	}
}

// Click handles a completed click at screen (x, y).
func (p *Page) Click(x, y float64, now time.Time) Action {
	if y < HeaderHeight {
		if p.Music.Rect.Contains(x, y) {
			return ToggleMusic
		}
		for _, l := range p.Nav {
			if l.bound && l.Rect.Contains(x, y) {
				if err := p.ScrollTo(l.Href[1:]); err != nil {
					log.Printf("nav: %v", err)
				}
				break
			}
		}
		return None
	}

	py := y + p.Scroll.Offset()
	for _, b := range p.Buttons {
		if !b.Rect.Contains(x, py) {
			continue
		}
		p.Ripples.Spawn(b.ID, b.Rect, x, py, now)
		if b.Target != "" {
			if err := p.ScrollTo(b.Target); err != nil {
				log.Printf("button %q: %v", b.ID, err)
			}
		}
		return None
	}

	for _, ic := range p.Icons {
		ix, iy := p.IconPosition(ic)
		if math.Hypot(x-ix, y-iy) <= ic.Size*1.5 {
			ic.Spin.Click(now)
			break
		}
	}
	return None
}

// RipplesOf returns the active ripples spawned in b.
func (p *Page) RipplesOf(b *Button) []effects.Ripple {
	var out []effects.Ripple
	for _, r := range p.Ripples.Active() {
		if r.Owner == b.ID {
			out = append(out, r)
		}
	}
	return out
}

// IconPosition is where a floating icon sits on screen, including parallax.
func (p *Page) IconPosition(ic *Icon) (x, y float64) {
	scroll := p.Scroll.Offset()
	return ic.X, ic.Y - scroll + effects.Parallax(scroll)
}

// Update advances every page effect by one frame. pointer is in screen space.
func (p *Page) Update(pointerX, pointerY float64, now time.Time) {
	p.Cursor.Update(pointerX, pointerY)
	p.Scroll.Update()
	scroll := p.Scroll.Offset()

	if !p.Loaded.Shown() && now.Sub(p.started) >= loadedDelay {
		p.Loaded.Show(now)
	}

	for _, t := range []*Text{p.Title, p.Subtitle} {
		if Visible(effects.Rect{X: t.X, Y: t.Y, W: p.Width, H: 24}, scroll, p.Height, fadeThreshold, bottomMargin) {
			t.Fade.Show(now)
		}
	}

	py := pointerY + scroll
	onPage := pointerY >= HeaderHeight
	if p.sponge != nil {
		hovered := onPage && p.sponge.Rect.Contains(pointerX, py)
		switch {
		case hovered && !p.spongeHovered:
			p.Deform.Start(now)
		case !hovered && p.spongeHovered:
			p.Deform.Stop()
		}
		p.spongeHovered = hovered
	}
	for _, c := range p.Cards {
		c.Hover.Update(onPage && c.Rect.Contains(pointerX, py))
		if Visible(c.Rect, scroll, p.Height, fadeThreshold, bottomMargin) {
			c.Fade.Show(now)
		}
	}

	for _, s := range p.Stats {
		visible := Visible(s.Rect, scroll, p.Height, counterThreshold, bottomMargin)
		if visible && !s.visible {
			s.Counter.Start(now)
		}
		s.visible = visible
		s.Counter.Advance(now)
	}

	p.Ripples.Prune(now)
	p.Drops.Prune(now)
}

// Visible reports whether at least threshold of r's height lies inside the viewport, with the
// viewport's bottom edge pulled up by margin.
func Visible(r effects.Rect, scroll, viewportH, threshold, margin float64) bool {
	top := scroll
	bottom := scroll + viewportH - margin
	overlap := math.Min(r.Y+r.H, bottom) - math.Max(r.Y, top)
	if overlap <= 0 {
		return false
	}
	if r.H <= 0 {
		return true
	}
	return overlap/r.H >= threshold
}
