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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/javieracevedo/gochip8/chip8"
	"github.com/javieracevedo/gochip8/drivers/rawterm"
	"github.com/javieracevedo/gochip8/drivers/termloop"
)

const usage = "gochip8 -rom path/to/program [-driver termloop|rawterm] [-speed N] [-disasm]"

var (
	romPath    string
	driverName string
	speed      int
	disasm     bool
)

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)

	flag.StringVar(&romPath, "rom", "", "path to a CHIP-8 ROM (required)")
	flag.StringVar(&driverName, "driver", "termloop", "host driver: termloop or rawterm")
	flag.IntVar(&speed, "speed", chip8.DefaultSpeed, "instructions executed per cycle (1..100)")
	flag.BoolVar(&disasm, "disasm", false, "print a disassembly listing and exit")
}

// emulatorEntity wraps a *chip8.VM as a termloop entity so termloop's own
// draw loop drives EmulateCycle.
type emulatorEntity struct {
	c   *chip8.VM
	drv chip8.Driver
}

func (e *emulatorEntity) Draw(s *tl.Screen) {
	e.drv.OnUpdate(e.c)
	if err := e.c.EmulateCycle(); err != nil {
		logFault(e.c, err)
	}
	if e.c.DrawFlag {
		e.drv.UpdateScreen(e.c)
		e.c.DrawFlag = false
	}
}

func (e *emulatorEntity) Tick(ev tl.Event) {}

// logFault dumps a Snapshot of the VM alongside a fault so the printed
// stack contents can't be raced by the next cycle's mutation before the
// log line is written.
func logFault(c *chip8.VM, err error) {
	s := c.Snapshot()
	log.Printf("fault: %v (pc=%04X sp=%d stack=%04X last=%04X)",
		err, s.PC, s.SP, s.Stack[:s.SP], s.LastInstruction)
}

func runTermloop(c *chip8.VM) error {
	d, ok := chip8.LookupDriver("termloop")
	if !ok {
		return fmt.Errorf("termloop driver not registered")
	}
	td := d.(*termloop.Driver)

	c.Driver = td
	td.OnInit(c)
	g := td.Game()
	g.Screen().AddEntity(&emulatorEntity{c, td})
	g.Start()
	return nil
}

func runRawterm(c *chip8.VM) error {
	d, ok := chip8.LookupDriver("rawterm")
	if !ok {
		return fmt.Errorf("rawterm driver not registered")
	}
	rd := d.(*rawterm.Driver)

	c.Driver = rd
	rd.OnInit(c)
	defer rd.Restore()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for range ticker.C {
		rd.OnUpdate(c)
		if err := c.EmulateCycle(); err != nil {
			logFault(c, err)
		}
		if c.DrawFlag {
			rd.UpdateScreen(c)
			c.DrawFlag = false
		}
	}
	return nil
}

func printDisassembly(program []byte) error {
	insns, err := chip8.Disassemble(program)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 8, 8, 0, '\t', 0)
	fmt.Fprintln(w, "addr\topcode\tpseudo-code\tascii\tdescription")

	addr := chip8.ProgramStart
	for _, in := range insns {
		ascii := ""
		if a := in.ASCII(); a != "" {
			ascii = fmt.Sprintf("`%s`", a)
		}
		fmt.Fprintf(w, "%04X\t%04X\t%v\t%s\t%s\n", addr, in.Opcode(), in, ascii, in.Description())
		addr += 2
	}
	return w.Flush()
}

func run() error {
	flag.Parse()
	if romPath == "" {
		return fmt.Errorf(usage)
	}

	program, err := os.ReadFile(romPath)
	if err != nil {
		return err
	}

	c := chip8.New()
	c.Speed = speed

	if disasm {
		return printDisassembly(program)
	}

	if err := c.LoadROM(program); err != nil {
		return err
	}
	log.Printf("loaded %d bytes from %q", len(program), romPath)

	switch driverName {
	case "termloop":
		return runTermloop(c)
	case "rawterm":
		return runRawterm(c)
	default:
		return fmt.Errorf("unknown driver %q", driverName)
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
