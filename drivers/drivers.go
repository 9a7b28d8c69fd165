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

// Package drivers registers all built-in gochip8 host drivers as a side
// effect of being imported. If you only need one of them, import the
// specific driver package instead.
package drivers

import (
	_ "github.com/javieracevedo/gochip8/drivers/rawterm"
	_ "github.com/javieracevedo/gochip8/drivers/termloop"
)
