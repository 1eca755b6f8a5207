package display

import (
	"testing"

	"github.com/nsf/termbox-go"
)

func TestTermboxQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   termbox.Event
		want bool
	}{
		{"q", termbox.Event{Type: termbox.EventKey, Ch: 'q'}, true},
		{"Q", termbox.Event{Type: termbox.EventKey, Ch: 'Q'}, true},
		{"escape", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, true},
		{"ctrl-c", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlC}, true},
		{"other rune", termbox.Event{Type: termbox.EventKey, Ch: 'w'}, false},
		{"resize", termbox.Event{Type: termbox.EventResize, Width: 10, Height: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTermboxQuit(tt.ev); got != tt.want {
				t.Errorf("isTermboxQuit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrayAttribute(t *testing.T) {
	tests := []struct {
		in   float64
		want termbox.Attribute
	}{
		{0, 1},
		{1, grayLevels},
		{-2, 1},
		{3, grayLevels},
		{0.5, 13},
	}
	for _, tt := range tests {
		if got := grayAttribute(tt.in); got != tt.want {
			t.Errorf("grayAttribute(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
