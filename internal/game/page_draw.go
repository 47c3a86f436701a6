package game

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/starfield/internal/page"
)

var whiteSubImage *ebiten.Image

func solid() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// drawPage renders the page content over the star field.
func drawPage(screen *ebiten.Image, p *page.Page, now time.Time) {
	scroll := p.Scroll.Offset()

	drawHero(screen, p, scroll, now)
	for _, s := range p.Sections {
		if s.Title == "" {
			continue
		}
		ebitenutil.DebugPrintAt(screen, s.Title, 60, int(s.Top+80-scroll))
	}
	for _, c := range p.Cards {
		drawCard(screen, c, scroll, now)
	}
	for _, s := range p.Stats {
		drawStat(screen, s, scroll)
	}
	drawHeader(screen, p)

	// Mouse follower
	vector.StrokeCircle(screen, float32(p.Cursor.X), float32(p.Cursor.Y), 10, 2, color.RGBA{R: 255, G: 255, B: 255, A: 160}, true)
}

func drawHero(screen *ebiten.Image, p *page.Page, scroll float64, now time.Time) {
	loaded := p.Loaded.Opacity(now)
	for _, t := range []*page.Text{p.Title, p.Subtitle} {
		if t.Fade.Opacity(now)*loaded < 0.05 {
			continue
		}
		ebitenutil.DebugPrintAt(screen, t.Value, int(t.X), int(t.Y-scroll+t.Fade.OffsetY(now)))
	}

	for _, b := range p.Buttons {
		drawButton(screen, p, b, scroll, now)
	}

	for _, ic := range p.Icons {
		x, y := p.IconPosition(ic)
		drawTriangle(screen, x, y, ic.Size*ic.Spin.Scale(now), ic.Spin.Rotation(now), color.RGBA{R: 255, G: 214, B: 120, A: 220})
	}
}

func drawButton(screen *ebiten.Image, p *page.Page, b *page.Button, scroll float64, now time.Time) {
	r := b.Rect
	sponge := b == p.Sponge()

	// The sponge squashes around its center while hovered; ripples and drops keep the resting rect.
	x, y, w, h := r.X, r.Y-scroll, r.W, r.H
	if sponge {
		sx, sy := p.Deform.Scale(now)
		w, h = r.W*sx, r.H*sy
		x -= (w - r.W) / 2
		y -= (h - r.H) / 2
	}

	// Button background
	bgColor := color.RGBA{R: 100, G: 120, B: 160, A: 255}
	if sponge {
		bgColor = color.RGBA{R: 230, G: 200, B: 80, A: 255}
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	textWidth := len(b.Label) * 6 // Approximate character width
	ebitenutil.DebugPrintAt(screen, b.Label, int(x+(w-float64(textWidth))/2), int(y+(h-16)/2))

	top := r.Y - scroll
	// Ripples stay inside the button.
	clip := image.Rect(int(r.X), int(top), int(r.X+r.W), int(top+r.H)).Intersect(screen.Bounds())
	if !clip.Empty() {
		sub := screen.SubImage(clip).(*ebiten.Image)
		for _, rp := range p.RipplesOf(b) {
			cx := r.X + rp.X + rp.Size/2
			cy := top + rp.Y + rp.Size/2
			radius := rp.Size / 2 * rp.Scale(now)
			vector.DrawFilledCircle(sub, float32(cx), float32(cy), float32(radius), color.RGBA{R: 255, G: 255, B: 255, A: alpha8(rp.Alpha(now))}, true)
		}
	}

	if !sponge {
		return
	}
	for _, d := range p.Drops.Active(now) {
		t := d.Progress(now)
		// Drops fall and shrink as they fade.
		cx := r.X + d.X
		cy := top + d.Y + t*40
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(d.W/2*(1-t/2)), color.RGBA{R: 173, G: 216, B: 230, A: alpha8(0.9 * (1 - t))}, true)
	}
}

func drawCard(screen *ebiten.Image, c *page.Card, scroll float64, now time.Time) {
	op := c.Fade.Opacity(now)
	if op < 0.01 {
		return
	}
	s := c.Hover.Scale()
	w, h := c.Rect.W*s, c.Rect.H*s
	x := c.Rect.X - (w-c.Rect.W)/2
	y := c.Rect.Y - (h-c.Rect.H)/2 - scroll + c.Hover.TranslateY() + c.Fade.OffsetY(now)

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{R: 20, G: 25, B: 45, A: alpha8(0.8 * op)}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, color.RGBA{R: 90, G: 110, B: 170, A: alpha8(op)}, false)
	ebitenutil.DebugPrintAt(screen, c.Title, int(x+16), int(y+16))
	ebitenutil.DebugPrintAt(screen, c.Body, int(x+16), int(y+48))
}

func drawStat(screen *ebiten.Image, s *page.Stat, scroll float64) {
	y := s.Rect.Y - scroll
	vector.StrokeRect(screen, float32(s.Rect.X), float32(y), float32(s.Rect.W), float32(s.Rect.H), 1, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, s.Counter.Text(), int(s.Rect.X+16), int(y+40))
	ebitenutil.DebugPrintAt(screen, s.Label, int(s.Rect.X+16), int(y+80))
}

func drawHeader(screen *ebiten.Image, p *page.Page) {
	vector.DrawFilledRect(screen, 0, 0, float32(p.Width), page.HeaderHeight, color.RGBA{R: 8, G: 10, B: 20, A: 200}, false)
	ebitenutil.DebugPrintAt(screen, "STARFIELD", 20, int(page.HeaderHeight/2-8))

	m := p.Music.Rect
	vector.StrokeRect(screen, float32(m.X), float32(m.Y), float32(m.W), float32(m.H), 1, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, p.Music.Label, int(m.X+20), int(m.Y+8))

	for _, l := range p.Nav {
		ebitenutil.DebugPrintAt(screen, l.Label, int(l.Rect.X+8), int(l.Rect.Y+8))
	}
}

// drawTriangle fills an upward triangle of circumradius size centered on (x, y), rotated by angle.
func drawTriangle(screen *ebiten.Image, x, y, size, angle float64, clr color.RGBA) {
	var path vector.Path
	for i := 0; i < 3; i++ {
		a := angle - math.Pi/2 + float64(i)*2*math.Pi/3
		px, py := float32(x+math.Cos(a)*size), float32(y+math.Sin(a)*size)
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	screen.DrawTriangles(vs, is, solid(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
