package torus

import (
	"math"
	"reflect"
	"testing"
)

func TestGenerateCount(t *testing.T) {
	tests := []struct {
		name   string
		n1, n2 int
		want   int
	}{
		{"square grid", 4, 4, 16},
		{"reference resolution", 150, 150, 22500},
		{"uneven", 3, 7, 21},
		{"zero minor", 0, 10, 0},
		{"negative major", 10, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSampler(1, tt.n1, 2, tt.n2)
			got := s.Generate(0, 0)
			if len(got) != tt.want {
				t.Errorf("len(Generate) = %d, want %d", len(got), tt.want)
			}
			if s.Count() != tt.want {
				t.Errorf("Count() = %d, want %d", s.Count(), tt.want)
			}
		})
	}
}

func TestGenerateGoldenPoints(t *testing.T) {
	s := NewSampler(1, 4, 2, 4)
	points := s.Generate(0, 0)

	tests := []struct {
		name  string
		index int
		want  SurfacePoint
	}{
		// minor 0, major 0 lies on the outer equator
		{"outer equator", 0, SurfacePoint{X: 3, Y: 0, Z: 0, Luminance: 0}},
		// minor pi/2 is the top of the tube, facing the light
		{"tube top", 1, SurfacePoint{X: 2, Y: 1, Z: 0, Luminance: 1}},
		// minor pi is the inner equator
		{"inner equator", 2, SurfacePoint{X: 1, Y: 0, Z: 0, Luminance: 0}},
		{"tube bottom", 3, SurfacePoint{X: 2, Y: -1, Z: 0, Luminance: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := points[tt.index]; got != tt.want {
				t.Errorf("points[%d] = %+v, want %+v", tt.index, got, tt.want)
			}
		})
	}
}

func TestGenerateIsPure(t *testing.T) {
	s := NewSampler(1, 30, 2, 60)
	for _, angles := range [][2]float64{{0, 0}, {1.3, 0.26}, {-4, 17.5}} {
		first := s.Generate(angles[0], angles[1])
		second := s.Generate(angles[0], angles[1])
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Generate(%v, %v) differs between calls", angles[0], angles[1])
		}
	}
}

func TestGenerateRoundsToPrecision(t *testing.T) {
	s := NewSampler(1, 37, 2, 53)
	for _, p := range s.Generate(0.7, 2.9) {
		for _, v := range []float64{p.X, p.Y, p.Z, p.Luminance} {
			scaled := v * 100
			if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
				t.Fatalf("value %v in %+v has more than 2 decimal digits", v, p)
			}
		}
	}
}

func TestGenerateStaysOnTorus(t *testing.T) {
	const r1, r2 = 1.0, 2.0
	s := NewSampler(r1, 24, r2, 24)
	for _, p := range s.Generate(0.9, 2.1) {
		dist := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
		// rounding allows a little slack on both bounds
		if dist < r2-r1-0.02 || dist > r2+r1+0.02 {
			t.Errorf("point %+v at distance %.3f is off the torus", p, dist)
		}
		if math.Abs(p.Luminance) > math.Sqrt2+0.01 {
			t.Errorf("luminance %v outside +-sqrt(2)", p.Luminance)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.234, 1.23},
		{1.236, 1.24},
		{-1.236, -1.24},
		{0.125, 0.12}, // half to even
		{-0.001, 0},
		{3, 3},
	}
	for _, tt := range tests {
		got := Round(tt.in)
		if got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got == 0 && math.Signbit(got) {
			t.Errorf("Round(%v) returned negative zero", tt.in)
		}
	}
}
