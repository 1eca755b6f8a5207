package render

import (
	"testing"

	"ascii-donut/internal/torus"
)

func newScenarioPipeline(t *testing.T) *Pipeline {
	t.Helper()
	r, err := NewRasterizer(20, 10, MustGlyphRamp(DefaultRamp))
	if err != nil {
		t.Fatal(err)
	}
	return NewPipeline(torus.NewSampler(1, 4, 2, 4), NewProjector(70, 5), r)
}

func TestPipelineScenario(t *testing.T) {
	p := newScenarioPipeline(t)
	fb := p.Frame(0, 0)

	if fb.Width != 20 || fb.Height != 10 {
		t.Fatalf("frame is %dx%d, want 20x10", fb.Width, fb.Height)
	}
	if fb.NonBlank() == 0 {
		t.Fatal("frame has no glyphs")
	}

	// At rest only the two tube tops facing the camera fall inside 20x10.
	want := map[[2]int]rune{
		{10, 0}: '@',
		{10, 5}: '@',
	}
	if fb.NonBlank() != len(want) {
		t.Errorf("NonBlank() = %d, want %d:\n%s", fb.NonBlank(), len(want), fb)
	}
	for pos, glyph := range want {
		if got := fb.At(pos[0], pos[1]); got != glyph {
			t.Errorf("cell %v = %q, want %q", pos, got, glyph)
		}
	}
}

func TestPipelineDeterministic(t *testing.T) {
	p := newScenarioPipeline(t)
	first := p.Frame(0, 0)
	for i := 0; i < 5; i++ {
		if next := p.Frame(0, 0); !next.Equal(first) {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, next, first)
		}
	}

	ref := NewPipeline(torus.NewSampler(1, 150, 2, 150), NewProjector(70, 5), p.Rasterizer)
	a := ref.Frame(1.3, 0.26)
	b := ref.Frame(1.3, 0.26)
	if !a.Equal(b) {
		t.Error("reference resolution frame is not deterministic")
	}
	if a.NonBlank() == 0 {
		t.Error("reference resolution frame is empty")
	}
}
