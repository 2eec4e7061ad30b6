package event

import "testing"

func TestBusDrain(t *testing.T) {
	var b Bus
	b.At(Jump, 1, 2)
	b.Emit(Event{Kind: PhaseChange, Phase: "phase1"})

	got := b.Drain()
	if len(got) != 2 {
		t.Fatalf("Drain() returned %d events, expected 2", len(got))
	}
	if got[0].Kind != Jump || got[0].X != 1 || got[0].Y != 2 {
		t.Errorf("first event = %+v", got[0])
	}
	if b.Len() != 0 || len(b.Drain()) != 0 {
		t.Error("bus should be empty after Drain")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Jump, "jump"},
		{PuzzleFailed, "puzzle-failed"},
		{Dialogue, "dialogue"},
		{Kind(-1), "unknown"},
		{Kind(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, expected %q", int(tt.kind), got, tt.want)
		}
	}
}
