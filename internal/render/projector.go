package render

import (
	"math"

	"ascii-donut/internal/torus"
)

// ProjectedPoint is a surface point mapped onto the screen plane, centered
// on the object's origin. Depth is the object-space z, not a projected depth.
type ProjectedPoint struct {
	ScreenX, ScreenY int
	Depth            float64
	Luminance        float64
}

// Key returns the screen coordinate the point occupies.
func (p ProjectedPoint) Key() ScreenKey {
	return ScreenKey{X: p.ScreenX, Y: p.ScreenY}
}

// ScreenKey identifies a projected screen coordinate. Points sharing a key
// occlude each other.
type ScreenKey struct {
	X, Y int
}

// Projector applies a fixed perspective to surface points.
type Projector struct {
	K1 float64 // field of view scale
	K2 float64 // camera distance along the depth axis
}

// NewProjector returns a projector with field of view k1 and camera
// distance k2.
func NewProjector(k1, k2 float64) Projector {
	return Projector{K1: k1, K2: k2}
}

// Project maps p to the screen plane. It returns false when p cannot be
// represented: the camera sits on its depth plane or the quotient is not
// finite.
func (pr Projector) Project(p torus.SurfacePoint) (ProjectedPoint, bool) {
	denom := pr.K2 + p.Z
	if denom == 0 {
		return ProjectedPoint{}, false
	}

	sx, ok := toScreen(pr.K1 * p.X / denom)
	if !ok {
		return ProjectedPoint{}, false
	}
	sy, ok := toScreen(pr.K1 * p.Y / denom)
	if !ok {
		return ProjectedPoint{}, false
	}

	return ProjectedPoint{
		ScreenX:   sx,
		ScreenY:   sy,
		Depth:     p.Z,
		Luminance: p.Luminance,
	}, true
}

// ProjectAll projects every point, dropping the ones Project rejects.
func (pr Projector) ProjectAll(points []torus.SurfacePoint) []ProjectedPoint {
	out := make([]ProjectedPoint, 0, len(points))
	for _, p := range points {
		if pp, ok := pr.Project(p); ok {
			out = append(out, pp)
		}
	}
	return out
}

// maxScreen keeps the int conversion well defined for huge quotients.
const maxScreen = 1 << 30

// toScreen snaps a projected value to the grid: floor when positive,
// ceiling otherwise.
func toScreen(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v > 0 {
		v = math.Floor(v)
	} else {
		v = math.Ceil(v)
	}
	if v > maxScreen || v < -maxScreen {
		return 0, false
	}
	return int(v), true
}
