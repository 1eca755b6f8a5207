package display

import "unicode/utf8"

// Action is a user request decoded from terminal input.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
)

// ParseInput converts raw bytes into actions. q, Q, Ctrl-C and a bare Esc
// quit; escape sequences such as arrow keys are skipped.
func ParseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		if data[i] == 0x1b {
			// CSI / SS3 sequence: ESC [ ... final byte, ESC O x
			if i+1 < len(data) && (data[i+1] == '[' || data[i+1] == 'O') {
				i += 2
				for i < len(data) && (data[i] < 0x40 || data[i] > 0x7e) {
					i++
				}
				i++
				continue
			}
			actions = append(actions, ActionQuit)
			i++
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'q', 'Q':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}

// WantsQuit reports whether data contains a quit request.
func WantsQuit(data []byte) bool {
	for _, a := range ParseInput(data) {
		if a == ActionQuit {
			return true
		}
	}
	return false
}
