package core

// Key names understood by the simulation. Keys are lowercase and match the
// names an input collector reports for the physical key.
const (
	KeyLeft       = "arrowleft"
	KeyLeftAlt    = "q"
	KeyRight      = "arrowright"
	KeyRightAlt   = "d"
	KeyUp         = "arrowup"
	KeyUpAlt      = "w"
	KeySpace      = " "
	KeyInteract   = "e"
	KeyBurst      = "f"
	KeyFire       = "c"
	KeyOvercharge = "x"
	KeyConfirm    = "enter"
)

// JumpKeys are the keys that trigger a jump.
var JumpKeys = []string{KeyUp, KeyUpAlt, KeySpace}

// KeySet maps a lowercase key name to whether it is currently held.
// The simulation clears entries with Consume to turn a held key into a
// one-shot press.
type KeySet map[string]bool

// Held returns true if any of the given keys is held.
func (k KeySet) Held(keys ...string) bool {
	for _, key := range keys {
		if k[key] {
			return true
		}
	}
	return false
}

// Press marks a key as held.
func (k KeySet) Press(key string) {
	k[key] = true
}

// Consume clears the given keys so they do not fire again next tick.
func (k KeySet) Consume(keys ...string) {
	for _, key := range keys {
		delete(k, key)
	}
}

// Clone creates a copy of this key set.
func (k KeySet) Clone() KeySet {
	clone := make(KeySet, len(k))
	for key, v := range k {
		clone[key] = v
	}
	return clone
}

// Input is everything the simulation reads from the outside world in one tick.
type Input struct {
	// Keys is shared with the input collector; the simulation may clear entries.
	Keys KeySet

	// Aim is the world-space point the weapon aims at.
	// Nil means "along the facing direction".
	Aim *Vec
}

// NewInput creates an input with an empty key set.
func NewInput() *Input {
	return &Input{Keys: make(KeySet)}
}

// Held reports whether any of the keys is held.
func (in *Input) Held(keys ...string) bool {
	if in == nil || in.Keys == nil {
		return false
	}
	return in.Keys.Held(keys...)
}

// Take reports whether any of the keys is held and consumes all of them.
func (in *Input) Take(keys ...string) bool {
	if !in.Held(keys...) {
		return false
	}
	in.Keys.Consume(keys...)
	return true
}

// Left reports whether a move-left key is held.
func (in *Input) Left() bool {
	return in.Held(KeyLeft, KeyLeftAlt)
}

// Right reports whether a move-right key is held.
func (in *Input) Right() bool {
	return in.Held(KeyRight, KeyRightAlt)
}
