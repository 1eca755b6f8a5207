package display

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"ascii-donut/internal/anim"
	"ascii-donut/internal/render"
)

// Tcell draws frames through a tcell screen.
type Tcell struct {
	screen tcell.Screen
	ramp   render.GlyphRamp
	color  bool

	width, height int
	styles        map[rune]tcell.Style

	quit     chan struct{}
	quitOnce sync.Once
}

// NewTcell returns a surface on screen, or on the real terminal when screen
// is nil.
func NewTcell(screen tcell.Screen, ramp render.GlyphRamp, color bool) (*Tcell, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("tcell screen: %w", err)
		}
		screen = s
	}
	return &Tcell{
		screen: screen,
		ramp:   ramp,
		color:  color,
		quit:   make(chan struct{}),
	}, nil
}

// Init initializes the screen and starts watching for quit keys.
func (t *Tcell) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	t.screen.HideCursor()
	t.screen.Clear()
	t.width, t.height = t.screen.Size()
	t.styles = t.buildStyles()

	go t.pollEvents()
	return nil
}

var tcellBackground = tcell.NewRGBColor(
	int32(render.Background[0]), int32(render.Background[1]), int32(render.Background[2]))

// buildStyles precomputes one style per ramp glyph.
func (t *Tcell) buildStyles() map[rune]tcell.Style {
	styles := make(map[rune]tcell.Style, t.ramp.Len()+1)
	base := tcell.StyleDefault
	if t.color {
		base = base.Background(tcellBackground)
	}
	styles[render.Blank] = base
	for _, r := range t.ramp.String() {
		st := base
		if t.color {
			g := int32(render.Shade(t.ramp.Brightness(r)))
			st = st.Foreground(tcell.NewRGBColor(g, g, g))
		}
		styles[r] = st
	}
	return styles
}

func (t *Tcell) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			// screen finalized
			return
		}
		if isTcellQuit(ev) {
			t.quitOnce.Do(func() { close(t.quit) })
			return
		}
	}
}

// isTcellQuit reports whether ev is q, Q, Esc or Ctrl-C.
func isTcellQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q' || key.Rune() == 'Q'
	}
	return false
}

// Size returns the screen size captured at Init.
func (t *Tcell) Size() (int, int) {
	return t.width, t.height
}

// Show copies fb onto the screen.
func (t *Tcell) Show(fb render.FrameBuffer, _ anim.Frame) error {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			ch := fb.Cells[y*fb.Width+x]
			st, ok := t.styles[ch]
			if !ok {
				st = t.styles[render.Blank]
			}
			t.screen.SetContent(x, y, ch, nil, st)
		}
	}
	t.screen.Show()
	return nil
}

// Quit is closed on a quit key.
func (t *Tcell) Quit() <-chan struct{} {
	return t.quit
}

// Fini restores the terminal.
func (t *Tcell) Fini() {
	t.screen.Fini()
}
