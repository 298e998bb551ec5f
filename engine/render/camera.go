package render

import (
	"math"

	"github.com/1siamBot/survivors-engine/engine/core"
)

// Camera is a top-down viewport that follows a world position
type Camera struct {
	X, Y    float64 // camera center position (world coords)
	Zoom    float64 // zoom level (1.0 = default)
	MinZoom float64
	MaxZoom float64
	ScreenW int // viewport width in pixels
	ScreenH int // viewport height in pixels

	// Lag is the fraction of the remaining distance covered per second
	// while following. Zero snaps.
	Lag float64
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 3.0,
		ScreenW: screenW,
		ScreenH: screenH,
		Lag:     8,
	}
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(p core.Vec2) {
	c.X, c.Y = p.X, p.Y
}

// Follow eases the camera toward target over dt seconds.
func (c *Camera) Follow(target core.Vec2, dt float64) {
	if c.Lag <= 0 {
		c.CenterOn(target)
		return
	}
	k := 1 - math.Exp(-c.Lag*dt)
	c.X += (target.X - c.X) * k
	c.Y += (target.Y - c.Y) * k
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(p core.Vec2) (float32, float32) {
	sx := (p.X-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (p.Y-c.Y)*c.Zoom + float64(c.ScreenH)/2
	return float32(sx), float32(sy)
}

// ScreenToWorld converts screen pixels to a world position
func (c *Camera) ScreenToWorld(sx, sy int) core.Vec2 {
	return core.Vec2{
		X: (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X,
		Y: (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Y,
	}
}

// Visible returns the world rectangle on screen, grown by pad on each side.
func (c *Camera) Visible(pad float64) (lo, hi core.Vec2) {
	hw := float64(c.ScreenW)/2/c.Zoom + pad
	hh := float64(c.ScreenH)/2/c.Zoom + pad
	return core.Vec2{X: c.X - hw, Y: c.Y - hh}, core.Vec2{X: c.X + hw, Y: c.Y + hh}
}

// OnScreen reports whether a circle at p with radius r is at least partly
// visible.
func (c *Camera) OnScreen(p core.Vec2, r float64) bool {
	lo, hi := c.Visible(r)
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}
