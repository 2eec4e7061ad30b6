package core

import "testing"

func TestKeySetHeldAndConsume(t *testing.T) {
	keys := KeySet{}
	keys.Press(KeyUpAlt)

	if !keys.Held(KeyUp, KeyUpAlt) {
		t.Fatal("w should count as a held jump key")
	}

	keys.Consume(JumpKeys...)
	if keys.Held(JumpKeys...) {
		t.Error("Consume should clear every jump key")
	}
}

func TestInputTakeIsOneShot(t *testing.T) {
	in := NewInput()
	in.Keys.Press(KeyBurst)

	if !in.Take(KeyBurst) {
		t.Fatal("first Take should observe the press")
	}
	if in.Take(KeyBurst) {
		t.Error("second Take in a row should see nothing")
	}
}

func TestNilInputIsIdle(t *testing.T) {
	var in *Input
	if in.Held(KeyLeft) || in.Left() || in.Right() {
		t.Error("nil input should report no keys")
	}
	if in.Take(KeyFire) {
		t.Error("nil input should not take keys")
	}
}

func TestKeySetClone(t *testing.T) {
	keys := KeySet{KeyLeft: true}
	clone := keys.Clone()
	clone.Consume(KeyLeft)

	if !keys.Held(KeyLeft) {
		t.Error("consuming from a clone should not touch the original")
	}
}
