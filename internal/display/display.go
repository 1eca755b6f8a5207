// Package display puts rendered frames on a local terminal.
//
// Every surface captures its size once at Init; later window changes are
// ignored. The only input handled is a request to quit.
package display

import (
	"ascii-donut/internal/anim"
	"ascii-donut/internal/render"
)

// Fallback viewport used when the output is not a terminal.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Surface is a display that shows one FrameBuffer per animation frame.
type Surface interface {
	// Init takes over the terminal and records its size.
	Init() error
	// Size returns the viewport the frames must be rendered for.
	Size() (width, height int)
	// Show draws fb, the rendering of frame f.
	Show(fb render.FrameBuffer, f anim.Frame) error
	// Quit is closed once the user asks to leave.
	Quit() <-chan struct{}
	// Fini restores the terminal.
	Fini()
}

// Builder returns the frame pipeline for a width x height viewport.
type Builder func(width, height int) (*render.Pipeline, error)

// Run shows every frame loop produces on s until the user quits or the
// schedule ends. It starts loop once it is watching, so frame 0 is never
// missed. With hold set, Run keeps the last frame on screen after
// the schedule ends and waits for the user to quit.
func Run(s Surface, loop *anim.Loop, build Builder, hold bool) error {
	w, h := s.Size()
	p, err := build(w, h)
	if err != nil {
		return err
	}

	id, frames := loop.AddViewer("local")
	defer loop.RemoveViewer(id)
	loop.Start()

	for {
		select {
		case <-s.Quit():
			return nil
		case f, ok := <-frames:
			if !ok {
				if hold {
					<-s.Quit()
				}
				return nil
			}
			if err := s.Show(p.Frame(f.A, f.B), f); err != nil {
				return err
			}
		}
	}
}
