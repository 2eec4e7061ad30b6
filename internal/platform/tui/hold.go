package tui

import (
	"sort"

	"github.com/vovakirdan/lumin/internal/core"
)

// Holder emulates held keys on terminals that only report presses.
// A press keeps the key held for a window of ticks; terminal auto-repeat
// refreshes the window while the key stays down.
type Holder struct {
	window int
	keys   map[string]int // Remaining ticks per held key
}

// NewHolder creates a holder with the given window in ticks.
func NewHolder(window int) *Holder {
	if window < 1 {
		window = 1
	}
	return &Holder{window: window, keys: make(map[string]int)}
}

// Press marks a key held for a full window. Opposite directions cancel each
// other so a quick turn does not leave both held.
func (h *Holder) Press(k string) {
	switch k {
	case core.KeyLeft, core.KeyLeftAlt:
		delete(h.keys, core.KeyRight)
		delete(h.keys, core.KeyRightAlt)
	case core.KeyRight, core.KeyRightAlt:
		delete(h.keys, core.KeyLeft)
		delete(h.keys, core.KeyLeftAlt)
	}
	h.keys[k] = h.window
}

// Input builds the input for the next tick.
func (h *Holder) Input(aim *core.Vec) *core.Input {
	in := core.NewInput()
	for k := range h.keys {
		in.Keys.Press(k)
	}
	in.Aim = aim
	return in
}

// Sync drops keys the simulation consumed from in, then ages the rest by one
// tick.
func (h *Holder) Sync(in *core.Input) {
	for k := range h.keys {
		if !in.Held(k) {
			delete(h.keys, k)
			continue
		}
		h.keys[k]--
		if h.keys[k] <= 0 {
			delete(h.keys, k)
		}
	}
}

// Release forgets every held key.
func (h *Holder) Release() {
	clear(h.keys)
}

// Held returns the held keys in sorted order.
func (h *Holder) Held() []string {
	out := make([]string, 0, len(h.keys))
	for k := range h.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
