package chip8

import (
	"context"
	"time"
)

// tickTimers decrements DelayTimer and SoundTimer by one each, floored at
// zero. Called exactly once per EmulateCycle, independent of how many
// instructions ran that cycle. Every tick that decrements a nonzero
// SoundTimer notifies the active Driver's Beep, mirroring go-hachi's own
// per-tick Beep call.
func (c *VM) tickTimers() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.SoundTimer--
		if c.Driver != nil {
			c.Driver.Beep()
		}
	}
}

// RunWallClock drives EmulateCycle at hz cycles per second until ctx is
// cancelled or EmulateCycle returns an error, which it then returns. This is a quality-of-life alternative to a host manually
// calling EmulateCycle on its own loop; the timer cadence it produces is
// equivalent as long as the host would otherwise also target ~60Hz.
func (c *VM) RunWallClock(ctx context.Context, hz int) error {
	if hz <= 0 {
		hz = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.EmulateCycle(); err != nil {
				return err
			}
		}
	}
}
