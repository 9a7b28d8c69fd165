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

// A Driver is a host-side collaborator: it renders the framebuffer, polls
// input, and plays the (silent) beep signal. Drivers register themselves
// by name from an init() function.
type Driver interface {
	// OnInit is called once, after the VM has been constructed and reset.
	OnInit(c *VM)
	// Cls is called whenever the screen is cleared (00E0).
	Cls()
	// OnUpdate is called on every EmulateCycle, before instructions run,
	// for input polling and similar per-cycle housekeeping.
	OnUpdate(c *VM)
	// UpdateScreen is called whenever DrawFlag becomes true.
	UpdateScreen(c *VM)
	// Beep is called once per cycle in which SoundTimer is non-zero.
	// This VM produces no audio; drivers may render a visual indicator.
	Beep()
}

var drivers = make(map[string]Driver)

// RegisterDriver registers a driver under name. Not safe to call
// concurrently with VM execution.
func RegisterDriver(name string, d Driver) error {
	if _, exists := drivers[name]; exists {
		return errors.Errorf("driver %q is already registered", name)
	}
	drivers[name] = d
	return nil
}

// UnregisterDriver removes a previously registered driver.
func UnregisterDriver(name string) error {
	if _, exists := drivers[name]; !exists {
		return errors.Errorf("driver %q is not registered", name)
	}
	delete(drivers, name)
	return nil
}

// LookupDriver returns the driver registered under name, if any.
func LookupDriver(name string) (Driver, bool) {
	d, ok := drivers[name]
	return d, ok
}

// NullDriver ignores every call. It is registered under the name "null"
// for headless/test use.
type NullDriver struct{}

func (NullDriver) OnInit(c *VM)       {}
func (NullDriver) Cls()               {}
func (NullDriver) OnUpdate(c *VM)     {}
func (NullDriver) UpdateScreen(c *VM) {}
func (NullDriver) Beep()              {}

func init() {
	if err := RegisterDriver("null", NullDriver{}); err != nil {
		panic(err)
	}
}
