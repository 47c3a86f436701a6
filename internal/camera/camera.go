// Package camera implements the pointer-following perspective camera of the background scene.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/starfield/internal/config"
)

var (
	origin = mgl64.Vec3{0, 0, 0}
	up     = mgl64.Vec3{0, 1, 0}
)

// Follower eases the camera toward a point derived from the pointer offset and keeps it aimed at the origin.
type Follower struct {
	width, height float64
	aspect        float64

	mouseX, mouseY float64

	position   mgl64.Vec3
	view       mgl64.Mat4
	projection mgl64.Mat4
}

func New(width, height int) *Follower {
	f := &Follower{position: mgl64.Vec3{0, 0, config.CameraZ}}
	f.Resize(width, height)
	f.lookAtOrigin()
	return f
}

// OnPointerMove records the pointer relative to the viewport center. The latest call wins.
func (f *Follower) OnPointerMove(clientX, clientY float64) {
	f.mouseX = clientX - f.width/2
	f.mouseY = clientY - f.height/2
}

// Tick moves the camera one smoothing step toward its target. z never changes.
func (f *Follower) Tick() {
	tx, ty := f.Target()
	f.position[0] += (tx - f.position[0]) * config.CameraSmoothing
	f.position[1] += (ty - f.position[1]) * config.CameraSmoothing
	f.lookAtOrigin()
}

// Target is the point the camera is converging on. Screen y grows downward, hence the flip.
func (f *Follower) Target() (x, y float64) {
	return f.mouseX * config.PointerScale, -f.mouseY * config.PointerScale
}

// Resize recomputes the aspect ratio and projection for a new viewport.
func (f *Follower) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	f.width, f.height = float64(width), float64(height)
	f.aspect = f.width / f.height
	f.projection = mgl64.Perspective(mgl64.DegToRad(config.CameraFOV), f.aspect, config.CameraNear, config.CameraFar)
}

func (f *Follower) lookAtOrigin() {
	f.view = mgl64.LookAtV(f.position, origin, up)
}

// Project maps a world point to viewport pixels. depth is the distance along the view axis.
// ok is false for points behind the camera or outside the near/far range.
func (f *Follower) Project(world mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := f.projection.Mul4(f.view).Mul4x1(world.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, 0, false
	}
	x = (ndc.X() + 1) / 2 * f.width
	y = (1 - ndc.Y()) / 2 * f.height
	return x, y, w, true
}

// PixelScale is how many pixels a world unit spans at the given depth.
func (f *Follower) PixelScale(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	// projection[5] is cot(fov/2).
	return f.projection[5] * f.height / 2 / depth
}

func (f *Follower) Position() mgl64.Vec3 { return f.position }

func (f *Follower) Mouse() (x, y float64) { return f.mouseX, f.mouseY }

func (f *Follower) Aspect() float64 { return f.aspect }

func (f *Follower) Viewport() (width, height float64) { return f.width, f.height }

func (f *Follower) View() mgl64.Mat4 { return f.view }

func (f *Follower) Projection() mgl64.Mat4 { return f.projection }
