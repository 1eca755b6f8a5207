package render

import "ascii-donut/internal/torus"

// Pipeline runs sampling, projection and rasterization for one frame.
type Pipeline struct {
	Sampler    *torus.Sampler
	Projector  Projector
	Rasterizer *Rasterizer
}

// NewPipeline wires the three frame stages together.
func NewPipeline(s *torus.Sampler, p Projector, r *Rasterizer) *Pipeline {
	return &Pipeline{Sampler: s, Projector: p, Rasterizer: r}
}

// Frame renders the torus at rotation angles a and b.
func (p *Pipeline) Frame(a, b float64) FrameBuffer {
	points := p.Sampler.Generate(a, b)
	return p.Rasterizer.Draw(p.Projector.ProjectAll(points))
}
