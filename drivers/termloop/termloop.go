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

// Package termloop implements a gochip8 host driver on top of termloop.
//
// The driver initializes a termloop game which can be retrieved from
// Game() so the caller can add its own entities and call g.Start(). An
// entity ticking the VM's EmulateCycle on every Draw call must be added
// by the caller (see cmd/gochip8).
//
// Key mappings can be changed with SetKeyMap before OnInit runs.
package termloop

import (
	"fmt"
	"log"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/javieracevedo/gochip8/chip8"
)

// Driver is a terminal-based gochip8 host driver. It renders the 64x32
// framebuffer as a grid of rectangles, prints register/stack/timer state,
// and forwards physical key events to the VM's hex keypad.
type Driver struct {
	g                 *tl.Game
	registers         *tl.Text
	pointersAndTimers *tl.Text
	stack             []*tl.Text
	syscalls          [10]*tl.Text
	screen            [chip8.DisplayWidth][chip8.DisplayHeight]*tl.Rectangle
	lastScreen        [chip8.DisplayHeight][chip8.DisplayWidth]uint8
	keyMap            map[tl.Key]int
}

// Game returns the underlying termloop game, so the caller can attach the
// entity that drives VM.EmulateCycle and call Start.
func (d *Driver) Game() *tl.Game { return d.g }

// SetKeyMap overrides the default physical-key to CHIP-8 hex-key mapping.
func (d *Driver) SetKeyMap(m map[tl.Key]int) { d.keyMap = m }

func defaultKeyMap() map[tl.Key]int {
	// Hex keyboard with 16 keys; 8, 4, 6, 2 are typically directional.
	return map[tl.Key]int{
		tl.KeyTab:        0x0,
		tl.KeyF2:         0x1,
		tl.KeyF3:         0x2,
		tl.KeyF4:         0x3,
		tl.KeyF5:         0x4,
		tl.KeyF6:         0x5,
		tl.KeyF7:         0x6,
		tl.KeyF8:         0x7,
		tl.KeyF9:         0x8,
		tl.KeyF10:        0x9,
		tl.KeyCtrlA:      0xA,
		tl.KeyCtrlB:      0xB,
		tl.KeyCtrlC:      0xC,
		tl.KeyCtrlD:      0xD,
		tl.KeyCtrlE:      0xE,
		tl.KeyCtrlF:      0xF,
		tl.KeyArrowDown:  0x2,
		tl.KeyArrowLeft:  0x4,
		tl.KeyArrowRight: 0x6,
		tl.KeyArrowUp:    0x8,
		tl.KeyEnter:      0x5,
	}
}

// inputHandler polls for key events and releases them after a short
// timeout, since termbox (which termloop wraps) only reports key-down
// events.
type inputHandler struct {
	c      *chip8.VM
	d      *Driver
	timers map[int]time.Time
}

func (h *inputHandler) Draw(s *tl.Screen) {
	for key, t := range h.timers {
		if !h.c.Keys[key] {
			continue
		}
		if time.Since(t) > 100*time.Millisecond {
			_ = h.c.KeyRelease(key)
			delete(h.timers, key)
		}
	}
}

func (h *inputHandler) Tick(ev tl.Event) {
	if ev.Type != tl.EventKey {
		return
	}
	key, ok := h.d.keyMap[ev.Key]
	if !ok {
		return
	}
	_ = h.c.KeyPress(key)
	h.timers[key] = time.Now()
}

func (d *Driver) printSyscall(s string) {
	for i := len(d.syscalls) - 1; i > 0; i-- {
		d.syscalls[i].SetText(d.syscalls[i-1].Text())
	}
	d.syscalls[0].SetText(s)
}

// OnInit builds the termloop scene: stack/syscall log, register readout,
// and the pixel grid.
func (d *Driver) OnInit(c *chip8.VM) {
	if d.keyMap == nil {
		d.keyMap = defaultKeyMap()
	}

	d.g = tl.NewGame()
	scr := d.g.Screen()

	scr.AddEntity(&inputHandler{c, d, make(map[int]time.Time)})
	scr.AddEntity(tl.NewText(0, 0, "Stack   Syscalls", tl.ColorDefault, tl.ColorDefault))

	d.stack = make([]*tl.Text, chip8.StackSize)
	for i := range d.stack {
		d.stack[i] = tl.NewText(0, i+1, "", tl.ColorDefault, tl.ColorDefault)
		scr.AddEntity(d.stack[i])
	}

	for i := range d.syscalls {
		d.syscalls[i] = tl.NewText(8, i+1, "", tl.ColorDefault, tl.ColorDefault)
		scr.AddEntity(d.syscalls[i])
	}

	d.registers = tl.NewText(20, 0, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.registers)

	d.pointersAndTimers = tl.NewText(20, 1, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.pointersAndTimers)

	color := tl.ColorWhite
	for x := 0; x < chip8.DisplayWidth; x++ {
		for y := 0; y < chip8.DisplayHeight; y++ {
			d.screen[x][y] = tl.NewRectangle(20+x, 4+y, 1, 1, color)
		}
	}

	log.Println("termloop driver initialized")
}

func (d *Driver) Cls() { d.printSyscall("CLS") }

func (d *Driver) OnUpdate(c *chip8.VM) {
	d.registers.SetText(fmt.Sprintf("V: [% 02X] I: %04X", c.V, c.I))
	d.pointersAndTimers.SetText(fmt.Sprintf(
		"PC: %04X SP: %d DT: %02X ST: %02X", c.PC, c.SP, c.DelayTimer, c.SoundTimer))

	for i := 0; i < chip8.StackSize; i++ {
		if i < c.SP {
			d.stack[i].SetText(fmt.Sprintf("%04X", c.Stack[i]))
		} else {
			d.stack[i].SetText("")
		}
	}
}

func (d *Driver) UpdateScreen(c *chip8.VM) {
	d.printSyscall("DRW")
	scr := d.g.Screen()

	for x := 0; x < chip8.DisplayWidth; x++ {
		for y := 0; y < chip8.DisplayHeight; y++ {
			was := d.lastScreen[y][x]
			is := c.Display[y][x]
			if is == was {
				continue
			}
			if is == 1 {
				scr.AddEntity(d.screen[x][y])
			} else {
				scr.RemoveEntity(d.screen[x][y])
			}
		}
	}

	d.lastScreen = c.Display
}

// Beep prints a beep marker; this VM produces no audio.
func (d *Driver) Beep() { d.printSyscall("BEEP") }

func init() {
	if err := chip8.RegisterDriver("termloop", &Driver{}); err != nil {
		log.Fatal(err)
	}
}
