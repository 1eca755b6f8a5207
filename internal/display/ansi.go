package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"ascii-donut/internal/anim"
	"ascii-donut/internal/render"
)

// ANSI writes frames as raw ANSI escape sequences, repainting only the
// cells that changed between frames.
type ANSI struct {
	out    io.Writer
	in     io.Reader
	ramp   render.GlyphRamp
	color  bool
	engine *render.Engine

	width, height int
	restore       func()

	quit     chan struct{}
	quitOnce sync.Once
}

// NewANSI returns a surface writing to out and watching in for quit keys.
// in may be nil.
func NewANSI(out io.Writer, in io.Reader, ramp render.GlyphRamp, color bool) *ANSI {
	return &ANSI{
		out:   out,
		in:    in,
		ramp:  ramp,
		color: color,
		quit:  make(chan struct{}),
	}
}

// SetSize fixes the viewport instead of querying the terminal. Call before
// Init.
func (a *ANSI) SetSize(width, height int) {
	a.width, a.height = width, height
}

// Init sizes the viewport, puts an interactive input into raw mode and
// switches to the alternate screen.
func (a *ANSI) Init() error {
	if a.width == 0 || a.height == 0 {
		a.width, a.height = terminalSize(a.out)
	}

	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		a.restore = func() { term.Restore(fd, state) }
	}

	a.engine = render.NewEngine(a.width, a.height, a.ramp, a.color)

	io.WriteString(a.out, render.EnableAltScreen())
	io.WriteString(a.out, render.HideCursor())
	io.WriteString(a.out, render.ClearScreen())

	if a.in != nil {
		go a.readInput()
	}
	return nil
}

// terminalSize returns the size of out when it is a terminal.
func terminalSize(out io.Writer) (int, int) {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return DefaultWidth, DefaultHeight
}

func (a *ANSI) readInput() {
	buf := make([]byte, 64)
	for {
		n, err := a.in.Read(buf)
		if n > 0 && WantsQuit(buf[:n]) {
			a.stop()
			return
		}
		if err != nil {
			a.stop()
			return
		}
	}
}

func (a *ANSI) stop() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Size returns the viewport captured at Init.
func (a *ANSI) Size() (int, int) {
	return a.width, a.height
}

// Show writes the changed cells of fb.
func (a *ANSI) Show(fb render.FrameBuffer, _ anim.Frame) error {
	if out := a.engine.Render(fb); out != "" {
		if _, err := io.WriteString(a.out, out); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
	}
	return nil
}

// Quit is closed on a quit key or when input ends.
func (a *ANSI) Quit() <-chan struct{} {
	return a.quit
}

// Fini restores the cursor, the main screen and the terminal mode.
func (a *ANSI) Fini() {
	io.WriteString(a.out, render.Reset)
	io.WriteString(a.out, render.ShowCursor())
	io.WriteString(a.out, render.DisableAltScreen())
	if a.restore != nil {
		a.restore()
	}
}
