package input

import "time"

// Held tracks keys for front ends that see presses and repeats but no
// releases. A key counts as down for KeyHoldDuration after its last press.
type Held struct {
	last map[rune]time.Time
}

// Press records k as pressed at now.
func (h *Held) Press(k rune, now time.Time) {
	if h.last == nil {
		h.last = make(map[rune]time.Time)
	}
	h.last[k] = now
}

// Down reports whether k is still held at now.
func (h *Held) Down(k rune, now time.Time) bool {
	t, ok := h.last[k]
	return ok && held(now, t)
}

// Reset releases every key.
func (h *Held) Reset() {
	clear(h.last)
}
