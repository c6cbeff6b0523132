// Package camera provides a 2D pan/zoom viewport onto a field image.
package camera

// Camera maps a screen viewport onto a field of pixels.
// Unlike a world camera the field does not wrap: the view is kept inside
// the field bounds at every zoom level.
type Camera struct {
	// Position is the view center in field coordinates
	X, Y float32

	// Zoom level (1.0 = whole field fills the viewport)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Field dimensions in pixels
	FieldW, FieldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera showing the whole field.
func New(viewportW, viewportH, fieldW, fieldH float32) *Camera {
	return &Camera{
		X:         fieldW / 2,
		Y:         fieldH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		FieldW:    fieldW,
		FieldH:    fieldH,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
}

// visible returns the field-space extent shown at the current zoom.
func (c *Camera) visible() (w, h float32) {
	return c.FieldW / c.Zoom, c.FieldH / c.Zoom
}

// SourceRect returns the visible field rectangle (x, y, w, h) for drawing.
func (c *Camera) SourceRect() (x, y, w, h float32) {
	w, h = c.visible()
	return c.X - w/2, c.Y - h/2, w, h
}

// ScreenToField converts viewport coordinates to a field pixel.
// ok is false when the point is outside the viewport.
func (c *Camera) ScreenToField(sx, sy float32) (fx, fy int, ok bool) {
	if sx < 0 || sy < 0 || sx >= c.ViewportW || sy >= c.ViewportH {
		return 0, 0, false
	}
	x, y, w, h := c.SourceRect()
	fx = int(x + sx/c.ViewportW*w)
	fy = int(y + sy/c.ViewportH*h)
	fx = min(max(fx, 0), int(c.FieldW)-1)
	fy = min(max(fy, 0), int(c.FieldH)-1)
	return fx, fy, true
}

// Pan moves the camera by a screen-space delta.
func (c *Camera) Pan(dx, dy float32) {
	w, h := c.visible()
	c.X -= dx / c.ViewportW * w
	c.Y -= dy / c.ViewportH * h
	c.clampPosition()
}

// ZoomAt changes zoom by factor, keeping the field point under the
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	x, y, w, h := c.SourceRect()
	fx := x + sx/c.ViewportW*w
	fy := y + sy/c.ViewportH*h

	c.Zoom = min(max(c.Zoom*factor, c.MinZoom), c.MaxZoom)

	w, h = c.visible()
	c.X = fx - sx/c.ViewportW*w + w/2
	c.Y = fy - sy/c.ViewportH*h + h/2
	c.clampPosition()
}

// Reset shows the whole field again.
func (c *Camera) Reset() {
	c.Zoom = 1.0
	c.X = c.FieldW / 2
	c.Y = c.FieldH / 2
}

// clampPosition keeps the visible rectangle inside the field.
func (c *Camera) clampPosition() {
	w, h := c.visible()
	c.X = min(max(c.X, w/2), c.FieldW-w/2)
	c.Y = min(max(c.Y, h/2), c.FieldH-h/2)
}
