package display

import (
	"fmt"
	"math"
	"sync"

	"github.com/nsf/termbox-go"

	"ascii-donut/internal/anim"
	"ascii-donut/internal/render"
)

// grayLevels is the number of gray shades termbox offers in grayscale mode.
const grayLevels = 24

// Termbox draws frames with termbox in grayscale output mode.
type Termbox struct {
	ramp  render.GlyphRamp
	color bool

	width, height int

	polling chan struct{} // closed when pollEvents returns

	quit     chan struct{}
	quitOnce sync.Once
}

// NewTermbox returns a termbox surface.
func NewTermbox(ramp render.GlyphRamp, color bool) *Termbox {
	return &Termbox{
		ramp:    ramp,
		color:   color,
		polling: make(chan struct{}),
		quit:    make(chan struct{}),
	}
}

// Init opens termbox and starts watching for quit keys.
func (t *Termbox) Init() error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("termbox init: %w", err)
	}
	if t.color {
		termbox.SetOutputMode(termbox.OutputGrayscale)
	}
	termbox.HideCursor()
	t.width, t.height = termbox.Size()

	go t.pollEvents()
	return nil
}

// pollEvents runs until Fini interrupts it; termbox.Interrupt blocks
// without a poller.
func (t *Termbox) pollEvents() {
	defer close(t.polling)
	for {
		ev := termbox.PollEvent()
		switch {
		case ev.Type == termbox.EventInterrupt || ev.Type == termbox.EventError:
			return
		case isTermboxQuit(ev):
			t.quitOnce.Do(func() { close(t.quit) })
		}
	}
}

func isTermboxQuit(ev termbox.Event) bool {
	if ev.Type != termbox.EventKey {
		return false
	}
	return ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' || ev.Ch == 'Q'
}

// grayAttribute maps a brightness in [0, 1] to a grayscale attribute,
// 1 darkest through grayLevels brightest.
func grayAttribute(brightness float64) termbox.Attribute {
	level := 1 + int(math.Round(brightness*(grayLevels-1)))
	if level < 1 {
		level = 1
	}
	if level > grayLevels {
		level = grayLevels
	}
	return termbox.Attribute(level)
}

// Size returns the terminal size captured at Init.
func (t *Termbox) Size() (int, int) {
	return t.width, t.height
}

// Show copies fb into the back buffer and flushes it.
func (t *Termbox) Show(fb render.FrameBuffer, _ anim.Frame) error {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			ch := fb.Cells[y*fb.Width+x]
			fg := termbox.ColorDefault
			if t.color && ch != render.Blank {
				fg = grayAttribute(t.ramp.Brightness(ch))
			}
			termbox.SetCell(x, y, ch, fg, termbox.ColorDefault)
		}
	}
	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("termbox flush: %w", err)
	}
	return nil
}

// Quit is closed on a quit key.
func (t *Termbox) Quit() <-chan struct{} {
	return t.quit
}

// Fini stops the event poller and closes termbox.
func (t *Termbox) Fini() {
	select {
	case <-t.polling:
	default:
		termbox.Interrupt()
		<-t.polling
	}
	termbox.Close()
}
