package torus

import "math"

// Precision is the number of decimal places every sampled coordinate and
// luminance value is rounded to.
const Precision = 2

var precisionScale = math.Pow(10, Precision)

// SurfacePoint is a point on the rotated torus surface with its luminance.
type SurfacePoint struct {
	X, Y, Z   float64
	Luminance float64
}

// Sampler approximates the torus surface with a fixed grid of samples.
type Sampler struct {
	r1 float64 // tube radius
	n1 int     // samples around the tube
	r2 float64 // center to tube center
	n2 int     // samples around the donut
}

// NewSampler returns a sampler for a torus with tube radius r1 sampled n1
// times and ring radius r2 sampled n2 times. Non-positive resolutions are
// a caller precondition; they produce an empty sample set.
func NewSampler(r1 float64, n1 int, r2 float64, n2 int) *Sampler {
	return &Sampler{r1: r1, n1: n1, r2: r2, n2: n2}
}

// Count returns the number of points Generate produces.
func (s *Sampler) Count() int {
	if s.n1 <= 0 || s.n2 <= 0 {
		return 0
	}
	return s.n1 * s.n2
}

// Generate samples the torus rotated by a about the depth axis and by b
// about the horizontal axis. Points are ordered major angle outer, minor
// angle inner, both starting at 0.
func (s *Sampler) Generate(a, b float64) []SurfacePoint {
	n := s.Count()
	if n == 0 {
		return nil
	}

	rot := newRotation(a, b)
	points := make([]SurfacePoint, 0, n)

	majorStep := 2 * math.Pi / float64(s.n2)
	minorStep := 2 * math.Pi / float64(s.n1)
	for i := 0; i < s.n2; i++ {
		phi := float64(i) * majorStep
		for j := 0; j < s.n1; j++ {
			theta := float64(j) * minorStep
			points = append(points, s.point(theta, phi, rot))
		}
	}
	return points
}

// rotation caches the trig terms shared by every point of one frame so
// geometry and lighting use identical values.
type rotation struct {
	cosA, sinA float64
	cosB, sinB float64
}

func newRotation(a, b float64) rotation {
	return rotation{
		cosA: math.Cos(a), sinA: math.Sin(a),
		cosB: math.Cos(b), sinB: math.Sin(b),
	}
}

func (s *Sampler) point(theta, phi float64, r rotation) SurfacePoint {
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	cosP, sinP := math.Cos(phi), math.Sin(phi)

	// circle in the xy plane before revolving around the y axis
	ring := s.r2 + s.r1*cosT
	tube := s.r1 * sinT

	x := ring*(r.cosB*cosP+r.sinA*r.sinB*sinP) - tube*r.cosA*r.sinB
	y := ring*(cosP*r.sinB-r.cosB*r.sinA*sinP) + tube*r.cosA*r.cosB
	z := r.cosA*ring*sinP + tube*r.sinA

	// normal . light, light = (0, 1, -1)
	l := cosP*cosT*r.sinB -
		r.cosA*cosT*sinP -
		r.sinA*sinT +
		r.cosB*(r.cosA*sinT-cosT*r.sinA*sinP)

	return SurfacePoint{
		X:         Round(x),
		Y:         Round(y),
		Z:         Round(z),
		Luminance: Round(l),
	}
}

// Round rounds v to Precision decimal places, halves to even.
func Round(v float64) float64 {
	r := math.RoundToEven(v*precisionScale) / precisionScale
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
