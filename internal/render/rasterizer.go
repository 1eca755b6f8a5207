package render

import (
	"errors"
	"fmt"
)

// CellAspect is how many times taller a terminal cell is than it is wide.
// Projected rows are divided by it when placed in the buffer.
const CellAspect = 2

// ErrInvalidViewport is returned for a non-positive viewport.
var ErrInvalidViewport = errors.New("viewport must have positive width and height")

// Rasterizer composites projected points into a viewport-sized FrameBuffer.
type Rasterizer struct {
	width, height int
	ramp          GlyphRamp
}

// NewRasterizer returns a rasterizer for a width x height viewport.
func NewRasterizer(width, height int, ramp GlyphRamp) (*Rasterizer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidViewport)
	}
	if ramp.Len() == 0 {
		return nil, ErrEmptyRamp
	}
	return &Rasterizer{width: width, height: height, ramp: ramp}, nil
}

// Size returns the viewport dimensions.
func (r *Rasterizer) Size() (int, int) {
	return r.width, r.height
}

// Ramp returns the glyph ramp used for shading.
func (r *Rasterizer) Ramp() GlyphRamp {
	return r.ramp
}

// VisibleSurface keeps the nearest point seen for every screen key. Points
// live in an arena in first-seen key order; the index maps a key to its
// slot.
type VisibleSurface struct {
	points []ProjectedPoint
	index  map[ScreenKey]int
}

// NewVisibleSurface returns an empty surface sized for n points.
func NewVisibleSurface(n int) *VisibleSurface {
	return &VisibleSurface{
		points: make([]ProjectedPoint, 0, n),
		index:  make(map[ScreenKey]int, n),
	}
}

// Add offers p to the surface. It replaces the stored point for p's key
// only when p is strictly nearer; ties keep the first point seen.
func (v *VisibleSurface) Add(p ProjectedPoint) {
	k := p.Key()
	if i, ok := v.index[k]; ok {
		if p.Depth < v.points[i].Depth {
			v.points[i] = p
		}
		return
	}
	v.index[k] = len(v.points)
	v.points = append(v.points, p)
}

// Lookup returns the point stored for k.
func (v *VisibleSurface) Lookup(k ScreenKey) (ProjectedPoint, bool) {
	i, ok := v.index[k]
	if !ok {
		return ProjectedPoint{}, false
	}
	return v.points[i], true
}

// Len returns the number of distinct keys.
func (v *VisibleSurface) Len() int {
	return len(v.points)
}

// Points returns the surviving points in first-seen key order.
func (v *VisibleSurface) Points() []ProjectedPoint {
	return v.points
}

// Resolve builds the visible surface for points.
func Resolve(points []ProjectedPoint) *VisibleSurface {
	v := NewVisibleSurface(len(points))
	for _, p := range points {
		v.Add(p)
	}
	return v
}

// BufferCoords translates a projected coordinate to buffer coordinates with
// the origin at the top-left. The result may lie outside the viewport.
func (r *Rasterizer) BufferCoords(screenX, screenY int) (int, int) {
	return r.width/2 + screenX, r.height/2 - screenY/CellAspect
}

// Draw depth-resolves points and writes their glyphs into a fresh buffer.
// Points that land outside the viewport are clipped. Distinct screen keys
// that share a buffer cell are written in first-seen order, so the later
// key wins.
func (r *Rasterizer) Draw(points []ProjectedPoint) FrameBuffer {
	fb := NewFrameBuffer(r.width, r.height)
	for _, p := range Resolve(points).Points() {
		x, y := r.BufferCoords(p.ScreenX, p.ScreenY)
		if x < 0 || x >= r.width || y < 0 || y >= r.height {
			continue
		}
		fb.Cells[y*r.width+x] = r.ramp.Glyph(p.Luminance)
	}
	return fb
}
