// Package camera maps arena coordinates to the screen.
package camera

import "gonum.org/v1/gonum/spatial/r2"

// Camera controls the viewport into the arena. The arena uses y-up world
// coordinates; the screen uses y-down pixels.
type Camera struct {
	// Center is the camera center in world coordinates
	Center r2.Vec

	// Zoom is screen pixels per world unit
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Arena rectangle; the camera center is kept inside it
	Bounds r2.Box

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// margin is the fraction of the viewport the arena fills at fit zoom.
const margin = 0.95

// New creates a camera centered on the arena, zoomed so the whole arena fits.
func New(viewportW, viewportH float64, bounds r2.Box) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		Bounds:    bounds,
	}
	c.Reset()
	return c
}

// FitZoom returns the zoom at which the whole arena is visible.
func (c *Camera) FitZoom() float64 {
	size := r2.Sub(c.Bounds.Max, c.Bounds.Min)
	if size.X <= 0 || size.Y <= 0 {
		return 1
	}
	return margin * min(c.ViewportW/size.X, c.ViewportH/size.Y)
}

// WorldToScreen converts world coordinates to screen pixels.
func (c *Camera) WorldToScreen(p r2.Vec) (sx, sy float32) {
	d := r2.Sub(p, c.Center)
	sx = float32(c.ViewportW/2 + d.X*c.Zoom)
	sy = float32(c.ViewportH/2 - d.Y*c.Zoom)
	return sx, sy
}

// ScreenToWorld converts screen pixels to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) r2.Vec {
	dx := (float64(sx) - c.ViewportW/2) / c.Zoom
	dy := (c.ViewportH/2 - float64(sy)) / c.Zoom
	return r2.Add(c.Center, r2.Vec{X: dx, Y: dy})
}

// LengthToScreen scales a world length to pixels.
func (c *Camera) LengthToScreen(l float64) float32 {
	return float32(l * c.Zoom)
}

// IsVisible reports whether a square of the given half extent at p could
// be on screen.
func (c *Camera) IsVisible(p r2.Vec, halfExtent float64) bool {
	v := c.VisibleWorldBounds()
	return p.X+halfExtent >= v.Min.X && p.X-halfExtent <= v.Max.X &&
		p.Y+halfExtent >= v.Min.Y && p.Y-halfExtent <= v.Max.Y
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.setLimits()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by a screen-pixel delta. Dragging down moves the
// view towards negative y.
func (c *Camera) Pan(dx, dy float32) {
	c.Center = r2.Add(c.Center, r2.Vec{X: float64(dx) / c.Zoom, Y: -float64(dy) / c.Zoom})
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera on the arena at fit zoom.
func (c *Camera) Reset() {
	c.Center = r2.Scale(0.5, r2.Add(c.Bounds.Min, c.Bounds.Max))
	c.setLimits()
	c.Zoom = c.FitZoom()
}

// VisibleWorldBounds returns the world rectangle covered by the viewport.
func (c *Camera) VisibleWorldBounds() r2.Box {
	half := r2.Vec{X: c.ViewportW / (2 * c.Zoom), Y: c.ViewportH / (2 * c.Zoom)}
	return r2.Box{Min: r2.Sub(c.Center, half), Max: r2.Add(c.Center, half)}
}

func (c *Camera) setLimits() {
	fit := c.FitZoom()
	c.MinZoom = fit / 2
	c.MaxZoom = fit * 8
}

func (c *Camera) clampCenter() {
	c.Center.X = clamp(c.Center.X, c.Bounds.Min.X, c.Bounds.Max.X)
	c.Center.Y = clamp(c.Center.Y, c.Bounds.Min.Y, c.Bounds.Max.Y)
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
