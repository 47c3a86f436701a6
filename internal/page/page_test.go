package page

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/iburimskiy/starfield/internal/effects"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newPage() *Page {
	return New(1024, 768, rand.New(rand.NewPCG(3, 4)), t0)
}

func settle(p *Page, now time.Time) {
	for i := 0; i < 300; i++ {
		p.Update(0, 0, now)
	}
}

func TestSectionOffset(t *testing.T) {
	p := newPage()

	tests := []struct {
		id      string
		want    float64
		wantErr bool
	}{
		{id: "hero", want: 0},
		{id: "about", want: 768},
		{id: "stats", want: 768 + 1040},
		{id: "roadmap", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := p.SectionOffset(tt.id)
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Expected %v, got %v (err %v)", tt.want, got, err)
			}
		})
	}
}

func TestScrollToUnknownSectionIsSkipped(t *testing.T) {
	p := newPage()
	if err := p.ScrollTo("nowhere"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	settle(p, t0)
	if p.Scroll.Offset() != 0 {
		t.Errorf("Expected scroll untouched, got %v", p.Scroll.Offset())
	}
}

func TestNavClickScrolls(t *testing.T) {
	p := newPage()
	about := p.Nav[1]
	action := p.Click(about.Rect.X+5, about.Rect.Y+5, t0)
	if action != None {
		t.Errorf("Expected no host action, got %v", action)
	}
	settle(p, t0)
	if p.Scroll.Offset() != 768 {
		t.Errorf("Expected scroll to the about section, got %v", p.Scroll.Offset())
	}
}

func TestUnboundNavLinkIgnored(t *testing.T) {
	p := newPage()
	p.Nav = append(p.Nav, &NavLink{Label: "Roadmap", Href: "#roadmap", Rect: effects.Rect{X: 0, Y: 0, W: 100, H: 60}})
	p.bindNav()
	p.Click(10, 10, t0)
	settle(p, t0)
	if p.Scroll.Offset() != 0 {
		t.Errorf("Expected click on unbound link to do nothing, scrolled to %v", p.Scroll.Offset())
	}
}

func TestMusicButton(t *testing.T) {
	p := newPage()
	m := p.Music.Rect
	if got := p.Click(m.X+1, m.Y+1, t0); got != ToggleMusic {
		t.Errorf("Expected ToggleMusic, got %v", got)
	}
}

func TestButtonClickRipplesAndScrolls(t *testing.T) {
	p := newPage()
	b, err := p.Button("explore")
	if err != nil {
		t.Fatal(err)
	}
	p.Click(b.Rect.X+10, b.Rect.Y+10, t0)
	if n := len(p.Ripples.Active()); n != 1 {
		t.Fatalf("Expected one ripple, got %d", n)
	}
	if p.Ripples.Active()[0].Owner != b.ID {
		t.Error("Ripple not attached to the clicked button")
	}
	settle(p, t0)
	if p.Scroll.Offset() != 768 {
		t.Errorf("Expected scroll to about, got %v", p.Scroll.Offset())
	}

	p.Update(0, 0, t0.Add(time.Second))
	if n := len(p.Ripples.Active()); n != 0 {
		t.Errorf("Expected ripple to expire, %d left", n)
	}
}

func TestSpongePress(t *testing.T) {
	p := newPage()
	squeezed := 0
	p.OnSqueeze = func() { squeezed++ }

	s := p.Sponge()
	if s == nil {
		t.Fatal("Expected a sponge button")
	}
	p.Press(s.Rect.X+20, s.Rect.Y+20, t0)
	if squeezed != 1 {
		t.Errorf("Expected one squeeze, got %d", squeezed)
	}
	if p.Drops.Len() != 5 {
		t.Errorf("Expected 5 drops queued, got %d", p.Drops.Len())
	}

	p.Press(5, 400, t0)
	if squeezed != 1 {
		t.Error("Press outside the sponge should not squeeze")
	}
}

func TestMissingSpongeSkipsSetup(t *testing.T) {
	p := newPage()
	s := p.Sponge().Rect
	p.Buttons = p.Buttons[:2]
	p.sponge = nil
	p.bindSponge()
	if p.Sponge() != nil {
		t.Fatal("Expected no sponge after removal")
	}
	called := false
	p.OnSqueeze = func() { called = true }
	p.Press(s.X+20, s.Y+20, t0)
	if called {
		t.Error("Squeeze handler ran without a sponge button")
	}
	if p.Drops.Len() != 0 {
		t.Errorf("Expected no drops without a sponge button, got %d", p.Drops.Len())
	}

	p.Update(s.X+20, s.Y+20, t0)
	if p.Deform.Active(t0) {
		t.Error("Expected no deform without a sponge button")
	}
}

func TestSpongeHoverDeforms(t *testing.T) {
	p := newPage()
	s := p.Sponge().Rect

	p.Update(5, 400, t0)
	if p.Deform.Active(t0) {
		t.Fatal("Deform running before the pointer reached the sponge")
	}

	p.Update(s.X+20, s.Y+20, t0)
	at := t0.Add(150 * time.Millisecond)
	if !p.Deform.Active(at) {
		t.Fatal("Expected hovering the sponge to start the deform")
	}
	if sx, sy := p.Deform.Scale(at); sx == 1 && sy == 1 {
		t.Error("Expected the sponge to be squashed while deforming")
	}

	// Staying on the sponge does not restart the cycle.
	p.Update(s.X+30, s.Y+20, t0.Add(500*time.Millisecond))
	if p.Deform.Active(t0.Add(700 * time.Millisecond)) {
		t.Error("Expected the deform to play once per hover")
	}

	p.Update(5, 400, t0.Add(900*time.Millisecond))
	p.Update(s.X+20, s.Y+20, t0.Add(time.Second))
	if !p.Deform.Active(t0.Add(1050 * time.Millisecond)) {
		t.Fatal("Expected re-entering the sponge to restart the deform")
	}
	p.Update(5, 400, t0.Add(1100*time.Millisecond))
	if p.Deform.Active(t0.Add(1100 * time.Millisecond)) {
		t.Error("Expected leaving the sponge to clear the deform")
	}
	if sx, sy := p.Deform.Scale(t0.Add(1100 * time.Millisecond)); sx != 1 || sy != 1 {
		t.Errorf("Expected resting scale after leave, got (%v, %v)", sx, sy)
	}
}

func TestRipplesSurviveRelayout(t *testing.T) {
	p := newPage()
	b, err := p.Button("explore")
	if err != nil {
		t.Fatal(err)
	}
	p.Click(b.Rect.X+10, b.Rect.Y+10, t0)
	p.Resize(1280, 900)
	p.Update(0, 0, t0.Add(300*time.Millisecond))

	if n := len(p.RipplesOf(b)); n != 1 {
		t.Fatalf("Expected the ripple to stay with its button after relayout, got %d", n)
	}
	other, err := p.Button("buy")
	if err != nil {
		t.Fatal(err)
	}
	if n := len(p.RipplesOf(other)); n != 0 {
		t.Errorf("Expected no ripple on an unclicked button, got %d", n)
	}
}

func TestCountersStartWhenVisible(t *testing.T) {
	p := newPage()
	p.Update(0, 0, t0)
	for _, s := range p.Stats {
		if s.Counter.Running() {
			t.Fatal("Counter started before its section was visible")
		}
	}

	if err := p.ScrollTo("stats"); err != nil {
		t.Fatal(err)
	}
	settle(p, t0)
	p.Update(0, 0, t0.Add(5*time.Second))
	for _, s := range p.Stats {
		if s.Counter.Value() != s.Counter.Target {
			t.Errorf("%s: expected %d, got %d", s.Label, s.Counter.Target, s.Counter.Value())
		}
	}
}

func TestCardsFadeInOnScroll(t *testing.T) {
	p := newPage()
	p.Update(0, 0, t0)
	if p.Cards[0].Fade.Shown() {
		t.Fatal("About card should be hidden at the top of the page")
	}
	p.Wheel(-10)
	p.Update(0, 0, t0)
	if !p.Cards[0].Fade.Shown() {
		t.Error("Expected about card to fade in once scrolled into view")
	}
}

func TestHeroLoadedAfterDelay(t *testing.T) {
	p := newPage()
	p.Update(0, 0, t0.Add(50*time.Millisecond))
	if p.Loaded.Shown() {
		t.Fatal("Hero shown before the load delay")
	}
	p.Update(0, 0, t0.Add(100*time.Millisecond))
	if !p.Loaded.Shown() {
		t.Error("Hero not shown after the load delay")
	}
}

func TestIconClickSpins(t *testing.T) {
	p := newPage()
	ic := p.Icons[0]
	x, y := p.IconPosition(ic)
	p.Click(x, y, t0)
	if !ic.Spin.Active(t0.Add(100 * time.Millisecond)) {
		t.Error("Expected icon to spin after click")
	}
}

func TestIconParallax(t *testing.T) {
	p := newPage()
	ic := p.Icons[0]
	_, before := p.IconPosition(ic)
	p.Wheel(-5)
	_, after := p.IconPosition(ic)
	if math.Abs(before-after-100) > 1e-9 {
		t.Errorf("Expected icon to move half of the 200px scroll, moved %v", before-after)
	}
}

func TestResizeClampsScroll(t *testing.T) {
	p := newPage()
	p.Wheel(-1000)
	bottom := p.ContentHeight() - 768
	if p.Scroll.Offset() != bottom {
		t.Fatalf("Expected scroll at bottom %v, got %v", bottom, p.Scroll.Offset())
	}
	p.Resize(1024, 1200)
	if p.Scroll.Offset() > p.ContentHeight()-1200 {
		t.Errorf("Scroll %v beyond new limit %v", p.Scroll.Offset(), p.ContentHeight()-1200)
	}
}

func TestVisible(t *testing.T) {
	r := effects.Rect{Y: 1000, H: 100}
	tests := []struct {
		name      string
		scroll    float64
		threshold float64
		want      bool
	}{
		{name: "Below viewport", scroll: 0, threshold: 0.1, want: false},
		{name: "Hidden by bottom margin", scroll: 255, threshold: 0.1, want: false},
		{name: "Tenth visible", scroll: 260, threshold: 0.1, want: true},
		{name: "Tenth is not half", scroll: 260, threshold: 0.5, want: false},
		{name: "Fully visible", scroll: 900, threshold: 0.5, want: true},
		{name: "Scrolled past", scroll: 1200, threshold: 0.1, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Visible(r, tt.scroll, 800, tt.threshold, 50); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
