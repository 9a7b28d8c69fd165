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

// Package chip8 implements a CHIP-8 virtual machine: memory, registers,
// stack, timers, framebuffer and keypad, plus a disassembler that shares
// the executor's opcode table.
package chip8

import (
	"fmt"
	"math/rand"
)

const (
	// MemorySize is the total addressable RAM in bytes.
	MemorySize = 0x1000
	// ProgramStart is the address ROMs are loaded at.
	ProgramStart = 0x200
	// MaxROMSize is the largest ROM LoadROM will accept.
	MaxROMSize = MemorySize - ProgramStart
	// StackSize is the number of nested CALL frames supported.
	StackSize = 16
	// DisplayWidth and DisplayHeight are the fixed framebuffer dimensions.
	DisplayWidth  = 64
	DisplayHeight = 32
	// NumKeys is the size of the hex keypad.
	NumKeys = 16
	// DefaultSpeed is the number of instructions executed per EmulateCycle.
	DefaultSpeed = 10
)

// Quirks selects among documented alternate interpretations of a handful of
// opcodes. The zero value matches this VM's default, spec-mandated
// behavior; every field defaults to false.
type Quirks struct {
	// ShiftUsesVy makes 8XY6/8XYE shift Vy into Vx instead of shifting Vx
	// in place. Off by default: this VM shifts Vx and ignores Vy.
	ShiftUsesVy bool
	// IncrementIOnLoadStore makes FX55/FX65 advance I by x+1 after the
	// block transfer, matching the original COSMAC VIP behavior. Off by
	// default: this VM leaves I unchanged.
	IncrementIOnLoadStore bool
}

// VM holds the complete state of a CHIP-8 machine.
type VM struct {
	// Memory is the 4096-byte address space. The hex font lives at
	// 0x000-0x04F; programs are loaded starting at ProgramStart.
	Memory [MemorySize]uint8
	// V0..VF general-purpose registers. VF doubles as the flag register.
	V [16]uint8
	// I is the 12-bit-effective index register.
	I uint16
	// PC is the 12-bit-effective program counter.
	PC uint16
	// Stack holds up to StackSize return addresses.
	Stack [StackSize]uint16
	// SP is the next-free stack index: 0 means empty, StackSize means full.
	SP int

	// DelayTimer and SoundTimer are 8-bit counters, decremented at 60Hz,
	// floored at zero. SoundTimer produces no audio in this VM.
	DelayTimer uint8
	SoundTimer uint8

	// Display is the monochrome framebuffer, row-major, (0,0) top-left.
	// Each cell is 0 or 1.
	Display [DisplayHeight][DisplayWidth]uint8
	// Keys holds the pressed state of the 16-key hex keypad.
	Keys [NumKeys]bool

	// Paused, when true, makes EmulateCycle a no-op.
	Paused bool
	// WaitingForKeyPress suspends instruction fetch until a key arrives.
	WaitingForKeyPress bool
	// KeyRegister is the register FX0A will latch the pressed key into.
	KeyRegister uint8
	// DrawFlag is set by any opcode that mutates Display. The host clears
	// it after consuming a frame.
	DrawFlag bool

	// LastInstruction is the most recently fetched opcode. Debug aid only.
	LastInstruction uint16
	// Cycles and Instructions are debug counters, not part of semantics.
	Cycles       uint64
	Instructions uint64

	// Speed is the number of instructions executed per EmulateCycle.
	Speed int

	// Quirks selects alternate opcode interpretations. Zero value is the
	// spec-mandated default.
	Quirks Quirks

	// Driver is the active host driver, if any. 00E0 calls its Cls method
	// and tickTimers calls its Beep method whenever SoundTimer ticks down
	// from a nonzero value; both call sites are nil-safe, so leaving Driver
	// unset is fine for tests and headless use. Not touched by Reset: it is
	// host wiring, not machine state.
	Driver Driver

	rng *rand.Rand
}

// SeedRandom fixes the source CXNN draws from, for deterministic tests.
func (c *VM) SeedRandom(seed int64) {
	c.rng = rand.New(rand.NewSource(seed))
}

func (c *VM) rand8() uint8 {
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return uint8(c.rng.Intn(256))
}

// New returns a freshly reset VM.
func New() *VM {
	c := &VM{}
	c.Reset()
	return c
}

// Reset zeroes all state, reloads the fontset, and restores defaults.
func (c *VM) Reset() {
	for i := range c.Memory {
		c.Memory[i] = 0
	}
	loadFont(&c.Memory)

	c.V = [16]uint8{}
	c.I = 0
	c.PC = ProgramStart
	c.Stack = [StackSize]uint16{}
	c.SP = 0

	c.DelayTimer = 0
	c.SoundTimer = 0

	for y := range c.Display {
		for x := range c.Display[y] {
			c.Display[y][x] = 0
		}
	}
	for i := range c.Keys {
		c.Keys[i] = false
	}

	c.Paused = false
	c.WaitingForKeyPress = false
	c.KeyRegister = 0
	c.DrawFlag = false

	c.LastInstruction = 0
	c.Cycles = 0
	c.Instructions = 0

	c.Speed = DefaultSpeed
}

// LoadROM copies program bytes into memory starting at ProgramStart. It does
// not reset the machine; callers that want a clean state should call Reset
// first. Returns OutOfROMSpaceError if the program does not fit.
func (c *VM) LoadROM(program []byte) error {
	if len(program) > MaxROMSize {
		return &OutOfROMSpaceError{Size: len(program), Max: MaxROMSize}
	}
	copy(c.Memory[ProgramStart:], program)
	return nil
}

// ReadWord reads a big-endian 16-bit value at addr and addr+1.
// addr must be <= 0xFFE.
func (c *VM) ReadWord(addr uint16) uint16 {
	return uint16(c.Memory[addr])<<8 | uint16(c.Memory[addr+1])
}

// String formats the machine state for debug logging.
func (c *VM) String() string {
	return fmt.Sprintf(
		"VM{V:[% 02X] I:%04X PC:%04X SP:%d DT:%02X ST:%02X "+
			"waiting:%v paused:%v cycles:%d}",
		c.V, c.I, c.PC, c.SP, c.DelayTimer, c.SoundTimer,
		c.WaitingForKeyPress, c.Paused, c.Cycles)
}

// Snapshot is a defensive copy of the VM's public read surface: every
// field is a value type, so a Snapshot shares no backing array with the
// VM it was taken from and outlives the cycle it was taken on.
type Snapshot struct {
	Memory [MemorySize]uint8
	V      [16]uint8
	I      uint16
	PC     uint16
	Stack  [StackSize]uint16
	SP     int

	DelayTimer uint8
	SoundTimer uint8

	Display [DisplayHeight][DisplayWidth]uint8
	Keys    [NumKeys]bool

	Paused             bool
	WaitingForKeyPress bool
	KeyRegister        uint8

	LastInstruction uint16
	Cycles          uint64
	Instructions    uint64
}

// Snapshot returns a defensive copy of the VM's state, for host debug
// views (e.g. a register/stack readout or a fault dump) that must not
// alias state the VM goes on to mutate next cycle.
func (c *VM) Snapshot() Snapshot {
	return Snapshot{
		Memory:             c.Memory,
		V:                  c.V,
		I:                  c.I,
		PC:                 c.PC,
		Stack:              c.Stack,
		SP:                 c.SP,
		DelayTimer:         c.DelayTimer,
		SoundTimer:         c.SoundTimer,
		Display:            c.Display,
		Keys:               c.Keys,
		Paused:             c.Paused,
		WaitingForKeyPress: c.WaitingForKeyPress,
		KeyRegister:        c.KeyRegister,
		LastInstruction:    c.LastInstruction,
		Cycles:             c.Cycles,
		Instructions:       c.Instructions,
	}
}
