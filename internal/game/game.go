// Package game hosts the landing page in an ebiten window: the star field behind, the page on top.
package game

import (
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/starfield/internal/audio"
	"github.com/iburimskiy/starfield/internal/loop"
	"github.com/iburimskiy/starfield/internal/page"
)

const backdropBand = 4

// Game implements ebiten.Game. Each Update is one frame tick of the background.
type Game struct {
	background *Background
	page       *page.Page
	player     *audio.Player
	handle     *loop.Handle

	width, height    int
	cursorX, cursorY int
	hue              float64

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error
	now     func() time.Time
}

func New(bg *Background, pg *page.Page, player *audio.Player, handle *loop.Handle) *Game {
	return &Game{
		background: bg,
		page:       pg,
		player:     player,
		handle:     handle,
		prevKey:    map[ebiten.Key]bool{},
		now:        time.Now,
	}
}

func (g *Game) Update() error {
	if g.handle.Stopped() {
		g.handle.Finish(nil)
		return ebiten.Termination
	}

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		g.handle.Stop()
	}
	if justPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}

	now := g.now()
	mouseX, mouseY := ebiten.CursorPosition()
	if mouseX != g.cursorX || mouseY != g.cursorY {
		g.cursorX, g.cursorY = mouseX, mouseY
		g.background.OnPointerMove(float64(mouseX), float64(mouseY))
	}
	mx, my := float64(mouseX), float64(mouseY)

	_, wheelY := ebiten.Wheel()
	g.page.Wheel(wheelY)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.page.Press(mx, my, now)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.page.Click(mx, my, now) == page.ToggleMusic {
			g.toggleMusic()
		}
	}
	g.page.Update(mx, my, now)

	g.background.SetLevel(g.player.Level())
	g.background.Step()
	g.hue += 0.05
	return nil
}

func (g *Game) toggleMusic() {
	if g.player.Loaded() {
		g.player.TogglePause()
		return
	}
	if err := g.player.Choose(); err != nil {
		log.Printf("soundtrack: %v", err)
		g.lastErr = err
		return
	}
	g.lastErr = nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackdrop(screen)
	g.background.Draw(screen)
	drawPage(screen, g.page, g.now())

	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr.Error(), 12, g.height-24)
	}
}

// drawBackdrop paints a slow deep-space gradient behind the stars.
func (g *Game) drawBackdrop(screen *ebiten.Image) {
	for y := 0; y < g.height; y += backdropBand {
		ratio := float64(y) / float64(g.height)
		r, gv, b := hsvToRgb(230+20*math.Sin(g.hue*0.01+ratio*math.Pi), 0.7, 0.06+0.06*ratio)
		vector.DrawFilledRect(screen, 0, float32(y), float32(g.width), backdropBand, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

// Layout resizes the surface, camera and page to the window whenever it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width, g.height = width, height
	g.background.Resize(width, height)
	g.page.Resize(width, height)
}
