/*
	Copyright 2021 Antonio Lassandro
	This file is part of gochip8, derived from golc3's terminal handling.
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

// Package rawterm implements a dependency-light gochip8 host driver that
// puts stdin into cbreak mode and prints the framebuffer as text, for
// headless or CI-friendly driving of the VM without a full TUI toolkit.
package rawterm

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/javieracevedo/gochip8/chip8"
	"golang.org/x/sys/unix"
)

// keyMap is the default physical-key to CHIP-8 hex-key layout, the common
// "QWERTY overlay" also used by most of the other terminal-based CHIP-8
// emulators in the wild: 1234/qwer/asdf/zxcv map to the 4x4 hex pad.
var keyMap = map[byte]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Driver reads raw keypresses from stdin and renders the framebuffer as
// lines of '#'/'.' written to stdout.
type Driver struct {
	in         *os.File
	origTermio unix.Termios
	reader     *bufio.Reader
	raw        bool
	keys       chan byte
}

// enableRawMode clears ICANON and ECHO on stdin so single bytes are
// readable without waiting for Enter, restoring the original termios in
// Restore.
func (d *Driver) enableRawMode() error {
	fd := int(d.in.Fd())

	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	d.origTermio = *t

	raw := *t
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return fmt.Errorf("set termios: %w", err)
	}
	d.raw = true
	return nil
}

// Restore returns stdin to its original termios settings. Callers should
// defer this after OnInit succeeds.
func (d *Driver) Restore() {
	if !d.raw {
		return
	}
	_ = unix.IoctlSetTermios(int(d.in.Fd()), unix.TCSETS, &d.origTermio)
	d.raw = false
}

// PollKey releases every key that is still pressed, then drains any bytes
// the reader goroutine has queued since the last call and forwards them to
// the VM as key presses. The terminal reports no key-up events, so a key
// stays pressed until the next call. Never blocks, so it is
// safe to call once per EmulateCycle from the single-threaded host loop
// (see spec §5: the core has no internal threads or blocking calls).
func (d *Driver) PollKey(c *chip8.VM) {
	for k := range c.Keys {
		if c.Keys[k] {
			_ = c.KeyRelease(k)
		}
	}
	for {
		select {
		case b := <-d.keys:
			if k, ok := keyMap[b]; ok {
				_ = c.KeyPress(k)
			}
		default:
			return
		}
	}
}

func (d *Driver) OnInit(c *chip8.VM) {
	d.in = os.Stdin
	d.reader = bufio.NewReader(d.in)
	d.keys = make(chan byte, 16)

	if err := d.enableRawMode(); err != nil {
		log.Printf("rawterm: raw mode unavailable, falling back to line mode: %v", err)
	}

	go d.readLoop()
}

// readLoop feeds bytes read from stdin into d.keys. It runs on its own
// goroutine so the VM's single-threaded cycle loop never blocks on input;
// PollKey is the single writer draining that channel into the VM.
func (d *Driver) readLoop() {
	for {
		b, err := d.reader.ReadByte()
		if err != nil {
			return
		}
		d.keys <- b
	}
}

func (d *Driver) Cls() {
	fmt.Print("\x1b[2J\x1b[H")
}

func (d *Driver) OnUpdate(c *chip8.VM) {
	d.PollKey(c)
}

func (d *Driver) UpdateScreen(c *chip8.VM) {
	fmt.Print("\x1b[H")
	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			if c.Display[y][x] != 0 {
				fmt.Print("#")
			} else {
				fmt.Print(".")
			}
		}
		fmt.Print("\n")
	}
}

func (d *Driver) Beep() {}

func init() {
	if err := chip8.RegisterDriver("rawterm", &Driver{}); err != nil {
		log.Fatal(err)
	}
}
