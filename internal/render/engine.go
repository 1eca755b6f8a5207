package render

import "strings"

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
	Bold          bool
}

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

// Engine is a per-session double-buffer diff renderer. It turns successive
// FrameBuffers into the ANSI output that repaints only changed cells.
type Engine struct {
	width, height int
	ramp          GlyphRamp
	color         bool
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions. With
// color set, glyphs are tinted by their rank in ramp.
func NewEngine(width, height int, ramp GlyphRamp, color bool) *Engine {
	e := &Engine{
		width:      width,
		height:     height,
		ramp:       ramp,
		color:      color,
		firstFrame: true,
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

// Invalidate forces the next Render to repaint every cell.
func (e *Engine) Invalidate() {
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// CellFor returns the styled cell for glyph ch.
func (e *Engine) CellFor(ch rune) Cell {
	bg := Background
	c := Cell{Ch: ch, BgR: bg[0], BgG: bg[1], BgB: bg[2]}
	if ch == Blank {
		return c
	}
	g := Shade(e.ramp.Brightness(ch))
	c.FgR, c.FgG, c.FgB = g, g, g
	if rank, ok := e.ramp.Rank(ch); ok && rank == e.ramp.Len()-1 {
		c.Bold = true
	}
	return c
}

// Render produces the ANSI byte output for fb. Only cells that changed since
// the previous frame are emitted, except on the first frame after a resize.
func (e *Engine) Render(fb FrameBuffer) string {
	if fb.Width != e.width || fb.Height != e.height {
		e.Resize(fb.Width, fb.Height)
	}

	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = e.CellFor(fb.Cells[y*fb.Width+x])
		}
	}

	// Diff current vs next, emit only changed cells
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				if e.color {
					WriteCellSGR(&sb, nc)
				} else {
					sb.WriteRune(nc.Ch)
				}
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 && e.color {
		sb.WriteString(Reset)
	}

	// Swap buffers
	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}
