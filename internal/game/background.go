package game

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/starfield/internal/camera"
	"github.com/iburimskiy/starfield/internal/config"
	"github.com/iburimskiy/starfield/internal/particle"
)

const (
	dotSize       = 32
	minStarRadius = 1.0
	// levelBoost is how much a loud soundtrack swells the stars.
	levelBoost = 2.0
	// maxQuads keeps indices within uint16.
	maxQuads = 65536 / 4
)

// Background is the star field scene: one particle field seen through one following camera.
type Background struct {
	field  *particle.Field
	camera *camera.Follower
	level  float64
	frames uint64

	dot      *ebiten.Image
	sprites  []sprite
	vertices []ebiten.Vertex
	indices  []uint16
}

type sprite struct {
	x, y, depth float64
	radius      float64
	alpha       float64
}

func NewBackground(field *particle.Field, cam *camera.Follower) *Background {
	return &Background{field: field, camera: cam}
}

func (b *Background) OnPointerMove(x, y float64) { b.camera.OnPointerMove(x, y) }

// Resize updates the projection before the next draw.
func (b *Background) Resize(width, height int) { b.camera.Resize(width, height) }

// SetLevel feeds the soundtrack loudness in [0, 1]; it only changes star size.
func (b *Background) SetLevel(level float64) { b.level = clamp01(level) }

// Step advances one frame: particles first, then the camera.
func (b *Background) Step() {
	b.field.Tick()
	b.camera.Tick()
	b.frames++
}

func (b *Background) Frames() uint64 { return b.frames }

func (b *Background) Field() *particle.Field { return b.field }

func (b *Background) Camera() *camera.Follower { return b.camera }

// project collects the visible particles as screen sprites ordered far to near.
func (b *Background) project() []sprite {
	b.sprites = b.sprites[:0]
	for _, p := range b.field.Particles() {
		x, y, depth, ok := b.camera.Project(p.Position)
		if !ok {
			continue
		}
		r := config.ParticleRadius * b.camera.PixelScale(depth) * (1 + levelBoost*b.level)
		b.sprites = append(b.sprites, sprite{
			x: x, y: y, depth: depth,
			radius: max(r, minStarRadius),
			// Negative twinkle values render as fully transparent.
			alpha: clamp01(p.Alpha),
		})
	}
	slices.SortFunc(b.sprites, func(a, c sprite) int { return cmp.Compare(c.depth, a.depth) })
	return b.sprites
}

// Draw renders every star in a single batched draw.
func (b *Background) Draw(dst *ebiten.Image) {
	if b.dot == nil {
		b.dot = ebiten.NewImage(dotSize, dotSize)
		vector.DrawFilledCircle(b.dot, dotSize/2, dotSize/2, dotSize/2, color.White, true)
	}

	sprites := b.project()
	for start := 0; start < len(sprites); start += maxQuads {
		end := min(start+maxQuads, len(sprites))
		b.drawBatch(dst, sprites[start:end])
	}
}

func (b *Background) drawBatch(dst *ebiten.Image, sprites []sprite) {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	for i, s := range sprites {
		x0, y0 := float32(s.x-s.radius), float32(s.y-s.radius)
		x1, y1 := float32(s.x+s.radius), float32(s.y+s.radius)
		a := float32(s.alpha)
		b.vertices = append(b.vertices,
			ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: a},
			ebiten.Vertex{DstX: x1, DstY: y0, SrcX: dotSize, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: a},
			ebiten.Vertex{DstX: x0, DstY: y1, SrcX: 0, SrcY: dotSize, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: a},
			ebiten.Vertex{DstX: x1, DstY: y1, SrcX: dotSize, SrcY: dotSize, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: a},
		)
		base := uint16(i * 4)
		b.indices = append(b.indices, base, base+1, base+2, base+1, base+3, base+2)
	}
	op := &ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear}
	dst.DrawTriangles(b.vertices, b.indices, b.dot, op)
}
