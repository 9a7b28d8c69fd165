package chip8

import "testing"

func TestTickTimersFloorsAtZero(t *testing.T) {
	c := New()
	c.DelayTimer = 0
	c.SoundTimer = 1

	c.tickTimers()

	if c.DelayTimer != 0 {
		t.Fatalf("DelayTimer = %d, want 0 (floored)", c.DelayTimer)
	}
	if c.SoundTimer != 0 {
		t.Fatalf("SoundTimer = %d, want 0", c.SoundTimer)
	}
}

func TestTickTimersDecrementsBothIndependently(t *testing.T) {
	c := New()
	c.DelayTimer = 3
	c.SoundTimer = 0

	c.tickTimers()

	if c.DelayTimer != 2 {
		t.Fatalf("DelayTimer = %d, want 2", c.DelayTimer)
	}
	if c.SoundTimer != 0 {
		t.Fatalf("SoundTimer = %d, want 0", c.SoundTimer)
	}
}

func TestTickTimersNotifiesDriverBeepWhileSoundTimerNonzero(t *testing.T) {
	c := New()
	d := &countingDriver{}
	c.Driver = d
	c.SoundTimer = 2

	c.tickTimers()
	if d.beepCalls != 1 {
		t.Fatalf("beepCalls = %d, want 1 after first tick", d.beepCalls)
	}

	c.tickTimers() // SoundTimer 1 -> 0, still beeps on this tick
	if d.beepCalls != 2 {
		t.Fatalf("beepCalls = %d, want 2 after second tick", d.beepCalls)
	}

	c.tickTimers() // SoundTimer already 0, no more beeps
	if d.beepCalls != 2 {
		t.Fatalf("beepCalls = %d, want unchanged 2 once SoundTimer is 0", d.beepCalls)
	}
}

func TestTickTimersWithoutDriverDoesNotPanic(t *testing.T) {
	c := New()
	c.SoundTimer = 1
	c.tickTimers() // c.Driver is nil
}
