// Package event defines the one-shot notifications the simulation emits for
// renderers and audio. Events are fire-and-forget: the simulation never
// waits on a consumer.
package event

// Kind identifies an event.
type Kind int

const (
	Jump Kind = iota
	DoubleJump
	Land
	Impact
	Collect
	TrapTriggered
	TrapDestroyed
	Teleport
	PlatformCrumble
	PuzzleFailed
	CrystalCollect
	PhaseChange
	Victory
	LevelComplete
	Respawn
	PlateClick
	Scrape
	Burst
	Shoot
	GuardianShoot
	ShieldHit
	Rumble
	MusicStop
	Dialogue
)

var kindNames = [...]string{
	Jump:            "jump",
	DoubleJump:      "double-jump",
	Land:            "land",
	Impact:          "impact",
	Collect:         "collect",
	TrapTriggered:   "trap-triggered",
	TrapDestroyed:   "trap-destroyed",
	Teleport:        "teleport",
	PlatformCrumble: "platform-crumble",
	PuzzleFailed:    "puzzle-failed",
	CrystalCollect:  "crystal-collect",
	PhaseChange:     "phase-change",
	Victory:         "victory",
	LevelComplete:   "level-complete",
	Respawn:         "respawn",
	PlateClick:      "plate-click",
	Scrape:          "scrape",
	Burst:           "burst",
	Shoot:           "shoot",
	GuardianShoot:   "guardian-shoot",
	ShieldHit:       "shield-hit",
	Rumble:          "rumble",
	MusicStop:       "music-stop",
	Dialogue:        "dialogue",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is a single notification.
// Only the fields meaningful for the kind are set.
type Event struct {
	Kind      Kind
	X, Y      float64 // World position the effect is anchored at
	Intensity float64 // Screen shake strength for impacts
	ID        int     // Object id involved, if any
	Phase     string  // New phase for PhaseChange
	Text      string  // Dialogue line or extra detail
}

// Bus collects the events of one tick.
type Bus struct {
	pending []Event
}

// Emit queues an event.
func (b *Bus) Emit(e Event) {
	b.pending = append(b.pending, e)
}

// At queues an event of the given kind anchored at (x, y).
func (b *Bus) At(kind Kind, x, y float64) {
	b.Emit(Event{Kind: kind, X: x, Y: y})
}

// Drain returns the queued events and clears the bus.
func (b *Bus) Drain() []Event {
	out := b.pending
	b.pending = nil
	return out
}

// Len returns the number of queued events.
func (b *Bus) Len() int {
	return len(b.pending)
}
