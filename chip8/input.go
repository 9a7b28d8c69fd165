package chip8

// KeyPress records k as pressed and, if the VM is waiting for a key
// (FX0A), latches k into V[KeyRegister] and clears the wait. Keys outside
// 0..15 are reported via InvalidKeyError and otherwise ignored.
func (c *VM) KeyPress(k int) error {
	if k < 0 || k >= NumKeys {
		return &InvalidKeyError{Key: k}
	}
	c.Keys[k] = true
	if c.WaitingForKeyPress {
		c.V[c.KeyRegister] = uint8(k)
		c.WaitingForKeyPress = false
	}
	return nil
}

// KeyRelease records k as released.
func (c *VM) KeyRelease(k int) error {
	if k < 0 || k >= NumKeys {
		return &InvalidKeyError{Key: k}
	}
	c.Keys[k] = false
	return nil
}
