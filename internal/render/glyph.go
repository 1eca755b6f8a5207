package render

import (
	"errors"
	"fmt"
)

// Blank is the glyph of a cell no surface point reached.
const Blank = ' '

// DefaultRamp orders glyphs from darkest to brightest.
const DefaultRamp = "`,-~:;=!*#$@"

var (
	ErrEmptyRamp      = errors.New("glyph ramp is empty")
	ErrBlankGlyph     = errors.New("glyph ramp contains the blank glyph")
	ErrDuplicateGlyph = errors.New("glyph ramp repeats a glyph")
)

// GlyphRamp is a brightness lookup table. Index 0 is the darkest glyph and
// each following glyph must read brighter than the one before it; the ramp
// is indexed directly and never searched, so that ordering is the caller's
// contract.
type GlyphRamp struct {
	glyphs []rune
	rank   map[rune]int
}

// NewGlyphRamp builds a ramp from glyphs listed darkest first.
func NewGlyphRamp(glyphs string) (GlyphRamp, error) {
	runes := []rune(glyphs)
	if len(runes) == 0 {
		return GlyphRamp{}, ErrEmptyRamp
	}
	rank := make(map[rune]int, len(runes))
	for i, r := range runes {
		if r == Blank {
			return GlyphRamp{}, fmt.Errorf("position %d: %w", i, ErrBlankGlyph)
		}
		if prev, dup := rank[r]; dup {
			return GlyphRamp{}, fmt.Errorf("%q at positions %d and %d: %w", r, prev, i, ErrDuplicateGlyph)
		}
		rank[r] = i
	}
	return GlyphRamp{glyphs: runes, rank: rank}, nil
}

// MustGlyphRamp is like NewGlyphRamp but panics on an invalid ramp.
func MustGlyphRamp(glyphs string) GlyphRamp {
	r, err := NewGlyphRamp(glyphs)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of glyphs in the ramp.
func (g GlyphRamp) Len() int {
	return len(g.glyphs)
}

// String returns the glyphs darkest first.
func (g GlyphRamp) String() string {
	return string(g.glyphs)
}

// Index maps a luminance to a ramp position. Luminance is normalized from
// [-1, 1] to [0, 1], scaled to the ramp and truncated; values outside
// [-1, 1] are clamped to the ends of the ramp.
func (g GlyphRamp) Index(l float64) int {
	maxIndex := len(g.glyphs) - 1
	if maxIndex < 0 {
		return 0
	}
	normalized := (l + 1) / 2
	idx := normalized * float64(maxIndex)
	switch {
	case idx != idx: // NaN
		return 0
	case idx <= 0:
		return 0
	case idx >= float64(maxIndex):
		return maxIndex
	}
	return int(idx)
}

// Glyph returns the glyph for luminance l.
func (g GlyphRamp) Glyph(l float64) rune {
	if len(g.glyphs) == 0 {
		return Blank
	}
	return g.glyphs[g.Index(l)]
}

// Rank reports the ramp position of r.
func (g GlyphRamp) Rank(r rune) (int, bool) {
	i, ok := g.rank[r]
	return i, ok
}

// Brightness returns r's rank scaled to [0, 1]; the blank glyph and glyphs
// outside the ramp are 0.
func (g GlyphRamp) Brightness(r rune) float64 {
	i, ok := g.rank[r]
	if !ok || len(g.glyphs) < 2 {
		if ok {
			return 1
		}
		return 0
	}
	return float64(i) / float64(len(g.glyphs)-1)
}
