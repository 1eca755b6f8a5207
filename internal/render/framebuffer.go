package render

import "strings"

// FrameBuffer is a row-major grid of glyphs with the origin at the top-left.
type FrameBuffer struct {
	Width, Height int
	Cells         []rune
}

// NewFrameBuffer returns a blank width x height buffer.
func NewFrameBuffer(width, height int) FrameBuffer {
	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = Blank
	}
	return FrameBuffer{Width: width, Height: height, Cells: cells}
}

// At returns the glyph at (x, y), or Blank outside the buffer.
func (fb FrameBuffer) At(x, y int) rune {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Blank
	}
	return fb.Cells[y*fb.Width+x]
}

// Row returns row y as a string.
func (fb FrameBuffer) Row(y int) string {
	return string(fb.Cells[y*fb.Width : (y+1)*fb.Width])
}

// Rows returns every row top to bottom.
func (fb FrameBuffer) Rows() []string {
	rows := make([]string, fb.Height)
	for y := range rows {
		rows[y] = fb.Row(y)
	}
	return rows
}

// String joins the rows with newlines.
func (fb FrameBuffer) String() string {
	return strings.Join(fb.Rows(), "\n")
}

// NonBlank counts the cells holding a glyph.
func (fb FrameBuffer) NonBlank() int {
	n := 0
	for _, c := range fb.Cells {
		if c != Blank {
			n++
		}
	}
	return n
}

// Equal reports whether both buffers have the same size and glyphs.
func (fb FrameBuffer) Equal(other FrameBuffer) bool {
	if fb.Width != other.Width || fb.Height != other.Height || len(fb.Cells) != len(other.Cells) {
		return false
	}
	for i, c := range fb.Cells {
		if other.Cells[i] != c {
			return false
		}
	}
	return true
}
