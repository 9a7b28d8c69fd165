package chip8

// fields holds the standard nibble fields extracted from a decoded opcode.
type fields struct {
	op  uint16
	x   uint8
	y   uint8
	n   uint8
	nn  uint8
	nnn uint16
}

// fetch reads the big-endian opcode at PC, advances PC by 2, and decodes
// its standard nibble fields. Advancing PC before dispatch lets jump, call
// and skip opcodes overwrite or further adjust it.
//
// JP/CALL/BNNN accept any 12-bit target, including MemorySize-1, which
// leaves no room for a 2-byte fetch; ReadWord's addr<=MemorySize-2
// precondition is enforced here rather than trusted, so a malformed jump
// target faults instead of reading one byte past Memory.
func (c *VM) fetch() (fields, error) {
	if c.PC > MemorySize-2 {
		return fields{}, &MemoryAccessError{PC: c.PC}
	}

	op := c.ReadWord(c.PC)
	c.PC = (c.PC + 2) & 0xFFF
	c.LastInstruction = op

	return fields{
		op:  op,
		x:   uint8(op>>8) & 0xF,
		y:   uint8(op>>4) & 0xF,
		n:   uint8(op) & 0xF,
		nn:  uint8(op) & 0xFF,
		nnn: op & 0xFFF,
	}, nil
}
