// Package input turns raw terminal bytes into per-frame game input and
// provides the movement vector helpers shared by every client.
package input

import (
	"bufio"
	"bytes"
	"strconv"
	"time"
)

// KeyHoldDuration is how long a movement key is considered held after its
// last press. Terminals only send repeats, never releases.
const KeyHoldDuration = 120 * time.Millisecond

// maxEscapeLen bounds how far an escape sequence is scanned before it is
// dropped as garbage.
const maxEscapeLen = 32

// MouseButton identifies the button in a mouse report.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseNone
)

// MouseEvent is one SGR mouse report. Col and Row are 1-based terminal cells.
type MouseEvent struct {
	Col, Row int
	Button   MouseButton
	Press    bool // False for a release
	Motion   bool
}

// Input is the current frame's input state. Movement and aim keys stay set
// while held; action keys are set only on the frame they arrived.
type Input struct {
	Quit  bool
	Up    bool
	Down  bool
	Left  bool
	Right bool

	AimUp    bool
	AimDown  bool
	AimLeft  bool
	AimRight bool

	Fire   bool // Space
	Charge bool // c: toggles a charge
	Dash   bool // e
	Wall   bool // f: marks a wall start, then places it

	Enter   bool
	Escape  bool
	Number  int // -1 when no digit was pressed
	Mouse   []MouseEvent
	Pressed []byte
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	up, down, left, right             time.Time
	aimUp, aimDown, aimLeft, aimRight time.Time
}

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence from the previous read
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking.
// The second result is false once the underlying reader is closed.
func ReadInput(s *Stream) (Input, bool) {
	var buf []byte
	open := true

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				open = false
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.apply(buf, time.Now()), open
}

// ResetKeyInput forgets all held keys, e.g. when switching screens.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
	s.pending = nil
}

// apply parses buf, updates the held key state and builds the frame input.
func (s *Stream) apply(buf []byte, now time.Time) Input {
	in := Input{Number: -1, Pressed: buf}

	data := buf
	if len(s.pending) > 0 {
		data = append(s.pending, buf...)
		s.pending = nil
	}

	for i := 0; i < len(data); {
		if data[i] != '\x1b' {
			s.applyByte(&in, data[i], now)
			i++
			continue
		}

		n := s.applyEscape(&in, data[i:], now)
		if n == 0 {
			if len(buf) > 0 {
				s.pending = append([]byte(nil), data[i:]...)
				break
			}
			// Nothing new arrived to complete it: a lone Escape key.
			in.Escape = true
			n = 1
		}
		i += n
	}

	in.Up = held(now, s.state.up)
	in.Down = held(now, s.state.down)
	in.Left = held(now, s.state.left)
	in.Right = held(now, s.state.right)
	in.AimUp = held(now, s.state.aimUp)
	in.AimDown = held(now, s.state.aimDown)
	in.AimLeft = held(now, s.state.aimLeft)
	in.AimRight = held(now, s.state.aimRight)
	return in
}

func held(now, last time.Time) bool {
	return !last.IsZero() && now.Sub(last) < KeyHoldDuration
}

// applyByte handles a single plain key.
func (s *Stream) applyByte(in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl-C
		in.Quit = true
	case 'w', 'W':
		s.state.up = now
	case 's', 'S':
		s.state.down = now
	case 'a', 'A':
		s.state.left = now
	case 'd', 'D':
		s.state.right = now
	case ' ':
		in.Fire = true
	case 'c', 'C':
		in.Charge = true
	case 'e', 'E':
		in.Dash = true
	case 'f', 'F':
		in.Wall = true
	case '\n', '\r':
		in.Enter = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}

// applyEscape handles a sequence starting at ESC and returns the number of
// bytes consumed, or 0 when the sequence is still incomplete.
func (s *Stream) applyEscape(in *Input, seq []byte, now time.Time) int {
	if len(seq) < 2 {
		return 0
	}

	switch seq[1] {
	case '[', 'O':
	default:
		in.Escape = true
		return 1
	}
	if len(seq) < 3 {
		return 0
	}

	switch seq[2] {
	case 'A':
		s.state.aimUp = now
		return 3
	case 'B':
		s.state.aimDown = now
		return 3
	case 'C':
		s.state.aimRight = now
		return 3
	case 'D':
		s.state.aimLeft = now
		return 3
	case '<':
		n, ev, ok := parseSGRMouse(seq)
		if n == 0 {
			return 0
		}
		if ok {
			in.Mouse = append(in.Mouse, ev)
		}
		return n
	}

	// Unknown CSI: skip to its final byte.
	for i := 2; i < len(seq) && i < maxEscapeLen; i++ {
		if seq[i] >= 0x40 && seq[i] <= 0x7e {
			return i + 1
		}
	}
	if len(seq) >= maxEscapeLen {
		return maxEscapeLen
	}
	return 0
}

// parseSGRMouse decodes "ESC [ < b ; x ; y M|m". It returns the bytes
// consumed (0 if incomplete) and whether the report was well formed.
func parseSGRMouse(seq []byte) (int, MouseEvent, bool) {
	end := -1
	for i := 3; i < len(seq) && i < maxEscapeLen; i++ {
		if seq[i] == 'M' || seq[i] == 'm' {
			end = i
			break
		}
	}
	if end < 0 {
		if len(seq) >= maxEscapeLen {
			return maxEscapeLen, MouseEvent{}, false
		}
		return 0, MouseEvent{}, false
	}

	parts := bytes.Split(seq[3:end], []byte{';'})
	if len(parts) != 3 {
		return end + 1, MouseEvent{}, false
	}
	var nums [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(string(p))
		if err != nil {
			return end + 1, MouseEvent{}, false
		}
		nums[i] = v
	}

	code := nums[0]
	if code&64 != 0 {
		// Wheel events carry no meaning in the game.
		return end + 1, MouseEvent{}, false
	}
	return end + 1, MouseEvent{
		Col:    nums[1],
		Row:    nums[2],
		Button: MouseButton(code & 3),
		Press:  seq[end] == 'M',
		Motion: code&32 != 0,
	}, true
}

// EnableMouse turns on button and motion tracking with SGR encoding.
const EnableMouse = "\033[?1003h\033[?1006h"

// DisableMouse reverses EnableMouse.
const DisableMouse = "\033[?1003l\033[?1006l"
