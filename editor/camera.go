package editor

// Camera maps between screen space and sheet space for the canvas.
type Camera struct {
	Zoom float64
	PanX float64
	PanY float64

	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64
}

// NewCamera returns a camera at zoom 1 with the given limits.
func NewCamera(minZoom, maxZoom, step float64) *Camera {
	if minZoom <= 0 {
		minZoom = 0.25
	}
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	if step <= 1 {
		step = 1.1
	}
	return &Camera{Zoom: 1, MinZoom: minZoom, MaxZoom: maxZoom, ZoomStep: step}
}

// Pan moves the view by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.PanX += dx
	c.PanY += dy
}

// ZoomAt zooms one step in (wheel > 0) or out (wheel < 0), keeping the
// sheet point under the screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, wheel float64) {
	if wheel == 0 {
		return
	}
	oldZoom := c.Zoom
	if wheel > 0 {
		c.Zoom *= c.ZoomStep
	} else {
		c.Zoom /= c.ZoomStep
	}
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
	if c.Zoom > c.MaxZoom {
		c.Zoom = c.MaxZoom
	}
	if c.Zoom != oldZoom {
		worldX := (sx - c.PanX) / oldZoom
		worldY := (sy - c.PanY) / oldZoom
		c.PanX = sx - worldX*c.Zoom
		c.PanY = sy - worldY*c.Zoom
	}
}

// ScreenToWorld converts a screen position into sheet coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - c.PanX) / c.Zoom, (sy - c.PanY) / c.Zoom
}

// WorldToScreen converts sheet coordinates into a screen position.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*c.Zoom + c.PanX, wy*c.Zoom + c.PanY
}

// Reset returns to zoom 1 with no pan.
func (c *Camera) Reset() {
	c.Zoom = 1
	c.PanX = 0
	c.PanY = 0
}
