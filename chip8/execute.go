/*
	Copyright 2015 Franc[e]sco (lolisamurai@tfwno.gf)
	This file is part of gochip8, derived from go-hachi.
	gochip8 is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.
	gochip8 is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.
	You should have received a copy of the GNU General Public License
	along with gochip8. If not, see <http://www.gnu.org/licenses/>.
*/

package chip8

import "github.com/pkg/errors"

// EmulateCycle does nothing if Paused (timers included). Otherwise it runs
// up to Speed instructions, stopping early while WaitingForKeyPress is set,
// then ticks the timers exactly once. This decouples the logical 60Hz timer
// rate from instruction throughput.
func (c *VM) EmulateCycle() error {
	if c.Paused {
		return nil
	}

	var firstErr error
	for i := 0; i < c.Speed; i++ {
		if c.WaitingForKeyPress {
			break
		}
		if err := c.ExecuteInstruction(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	c.tickTimers()
	c.Cycles++
	return firstErr
}

// ExecuteInstruction fetches and executes a single instruction. If the VM
// is waiting for a key press, it is a no-op. Unknown opcodes and stack
// faults are returned as errors but never leave the VM in an inconsistent
// state; the caller may log and continue.
func (c *VM) ExecuteInstruction() error {
	if c.WaitingForKeyPress {
		return nil
	}

	f, err := c.fetch()
	if err != nil {
		return err
	}
	c.Instructions++

	switch f.op & 0xF000 {
	case 0x0000:
		switch f.op {
		case 0x00E0: // CLS
			for y := range c.Display {
				for x := range c.Display[y] {
					c.Display[y][x] = 0
				}
			}
			c.DrawFlag = true
			if c.Driver != nil {
				c.Driver.Cls()
			}
		case 0x00EE: // RET
			if c.SP == 0 {
				return errors.WithStack(&StackUnderflowError{})
			}
			c.SP--
			c.PC = c.Stack[c.SP]
		default:
			// 0NNN (SYS) is treated as a no-op RCA 1802 call.
		}

	case 0x1000: // JP nnn
		c.PC = f.nnn

	case 0x2000: // CALL nnn
		if c.SP == StackSize {
			return errors.WithStack(&StackOverflowError{})
		}
		c.Stack[c.SP] = c.PC
		c.SP++
		c.PC = f.nnn

	case 0x3000: // SE Vx, nn
		if c.V[f.x] == f.nn {
			c.PC = (c.PC + 2) & 0xFFF
		}

	case 0x4000: // SNE Vx, nn
		if c.V[f.x] != f.nn {
			c.PC = (c.PC + 2) & 0xFFF
		}

	case 0x5000: // SE Vx, Vy
		if f.n != 0 {
			return &UnknownOpcodeError{Opcode: f.op}
		}
		if c.V[f.x] == c.V[f.y] {
			c.PC = (c.PC + 2) & 0xFFF
		}

	case 0x6000: // LD Vx, nn
		c.V[f.x] = f.nn

	case 0x7000: // ADD Vx, nn (VF unaffected)
		c.V[f.x] = c.V[f.x] + f.nn

	case 0x8000:
		return c.execute8xy(f)

	case 0x9000: // SNE Vx, Vy
		if f.n != 0 {
			return &UnknownOpcodeError{Opcode: f.op}
		}
		if c.V[f.x] != c.V[f.y] {
			c.PC = (c.PC + 2) & 0xFFF
		}

	case 0xA000: // LD I, nnn
		c.I = f.nnn

	case 0xB000: // JP V0, nnn
		c.PC = (f.nnn + uint16(c.V[0])) & 0xFFF

	case 0xC000: // RND Vx, nn
		c.V[f.x] = c.rand8() & f.nn

	case 0xD000: // DRW Vx, Vy, n
		c.drawSprite(f)

	case 0xE000:
		switch f.nn {
		case 0x9E: // SKP Vx
			if c.Keys[c.V[f.x]&0xF] {
				c.PC = (c.PC + 2) & 0xFFF
			}
		case 0xA1: // SKNP Vx
			if !c.Keys[c.V[f.x]&0xF] {
				c.PC = (c.PC + 2) & 0xFFF
			}
		default:
			return &UnknownOpcodeError{Opcode: f.op}
		}

	case 0xF000:
		return c.executeFx(f)

	default:
		return &UnknownOpcodeError{Opcode: f.op}
	}

	return nil
}

func (c *VM) execute8xy(f fields) error {
	switch f.n {
	case 0x0: // LD Vx, Vy
		c.V[f.x] = c.V[f.y]
	case 0x1: // OR Vx, Vy
		c.V[f.x] |= c.V[f.y]
	case 0x2: // AND Vx, Vy
		c.V[f.x] &= c.V[f.y]
	case 0x3: // XOR Vx, Vy
		c.V[f.x] ^= c.V[f.y]
	case 0x4: // ADD Vx, Vy
		sum := uint16(c.V[f.x]) + uint16(c.V[f.y])
		c.V[f.x] = uint8(sum)
		if sum > 0xFF {
			c.V[0xF] = 1
		} else {
			c.V[0xF] = 0
		}
	case 0x5: // SUB Vx, Vy
		borrow := uint8(0)
		if c.V[f.x] > c.V[f.y] {
			borrow = 1
		}
		result := c.V[f.x] - c.V[f.y]
		c.V[f.x] = result
		c.V[0xF] = borrow
	case 0x6: // SHR Vx {, Vy}
		if c.Quirks.ShiftUsesVy {
			c.V[0xF] = c.V[f.y] & 0x1
			c.V[f.x] = c.V[f.y] >> 1
		} else {
			c.V[0xF] = c.V[f.x] & 0x1
			c.V[f.x] >>= 1
		}
	case 0x7: // SUBN Vx, Vy
		borrow := uint8(0)
		if c.V[f.y] > c.V[f.x] {
			borrow = 1
		}
		result := c.V[f.y] - c.V[f.x]
		c.V[f.x] = result
		c.V[0xF] = borrow
	case 0xE: // SHL Vx {, Vy}
		if c.Quirks.ShiftUsesVy {
			c.V[0xF] = (c.V[f.y] & 0x80) >> 7
			c.V[f.x] = c.V[f.y] << 1
		} else {
			c.V[0xF] = (c.V[f.x] & 0x80) >> 7
			c.V[f.x] <<= 1
		}
	default:
		return &UnknownOpcodeError{Opcode: f.op}
	}
	return nil
}

func (c *VM) executeFx(f fields) error {
	switch f.nn {
	case 0x07: // LD Vx, DT
		c.V[f.x] = c.DelayTimer
	case 0x0A: // LD Vx, K
		c.WaitingForKeyPress = true
		c.KeyRegister = f.x
	case 0x15: // LD DT, Vx
		c.DelayTimer = c.V[f.x]
	case 0x18: // LD ST, Vx
		c.SoundTimer = c.V[f.x]
	case 0x1E: // ADD I, Vx
		sum := uint32(c.I) + uint32(c.V[f.x])
		if sum > 0xFFF {
			c.V[0xF] = 1
		} else {
			c.V[0xF] = 0
		}
		c.I = uint16(sum) & 0xFFF
	case 0x29: // LD F, Vx
		c.I = uint16(c.V[f.x]&0xF) * fontGlyphBytes
	case 0x33: // LD B, Vx
		v := c.V[f.x]
		c.Memory[c.I] = v / 100
		c.Memory[c.I+1] = (v / 10) % 10
		c.Memory[c.I+2] = v % 10
	case 0x55: // LD [I], Vx
		for r := uint8(0); r <= f.x; r++ {
			c.Memory[c.I+uint16(r)] = c.V[r]
		}
		if c.Quirks.IncrementIOnLoadStore {
			c.I = (c.I + uint16(f.x) + 1) & 0xFFF
		}
	case 0x65: // LD Vx, [I]
		for r := uint8(0); r <= f.x; r++ {
			c.V[r] = c.Memory[c.I+uint16(r)]
		}
		if c.Quirks.IncrementIOnLoadStore {
			c.I = (c.I + uint16(f.x) + 1) & 0xFFF
		}
	default:
		return &UnknownOpcodeError{Opcode: f.op}
	}
	return nil
}

// drawSprite implements DXYN: draw an n-byte sprite from I at (Vx,Vy),
// XORed onto the framebuffer with wraparound on both axes.
func (c *VM) drawSprite(f fields) {
	px0 := c.V[f.x]
	py0 := c.V[f.y]
	rows := f.n

	c.V[0xF] = 0

	for row := uint8(0); row < rows; row++ {
		spriteByte := c.Memory[c.I+uint16(row)]
		py := (int(py0) + int(row)) % DisplayHeight

		for col := uint8(0); col < 8; col++ {
			if spriteByte&(0x80>>col) == 0 {
				continue
			}
			px := (int(px0) + int(col)) % DisplayWidth
			if c.Display[py][px] == 1 {
				c.V[0xF] = 1
			}
			c.Display[py][px] ^= 1
		}
	}

	c.DrawFlag = true
}
