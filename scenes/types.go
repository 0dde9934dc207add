// seehuhn.de/go/cbuffer - coverage buffers for occlusion culling
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package scenes contains named sequences of coverage buffer operations,
// together with the expected results.  The scenes are shared between the
// tests, the benchmarks and the command line tools.
package scenes

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Scene is a sequence of operations on a freshly initialised buffer of
// the given size.  Polygons are listed in front-to-back order.
type Scene struct {
	Name   string // lowercase a-z and _ only
	Width  int    // buffer width in pixels
	Height int    // buffer height in pixels
	Steps  []Step
}

// Step is a single operation on the buffer.
type Step interface {
	isStep()
}

// Insert covers a polygon.  Want is the expected return value.
type Insert struct {
	Polygon  []vec.Vec2
	Negative bool
	Want     bool
}

func (Insert) isStep() {}

// Test checks the visibility of a polygon without changing the buffer.
type Test struct {
	Polygon []vec.Vec2
	Want    bool
}

func (Test) isStep() {}

// Point checks whether the pixel containing a point is visible.
type Point struct {
	At   vec.Vec2
	Want bool
}

func (Point) isStep() {}

// Outline covers every subpath of a path, mapped to device space by CTM.
type Outline struct {
	Path     *path.Data
	CTM      matrix.Matrix // zero-value means no transform
	Negative bool
	Want     bool
}

func (Outline) isStep() {}

// Reset starts a new frame by re-initialising the buffer.
type Reset struct{}

func (Reset) isStep() {}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// rectangle returns the corners of an axis-aligned rectangle.
func rectangle(x1, y1, x2, y2 float64) []vec.Vec2 {
	return []vec.Vec2{pt(x1, y1), pt(x2, y1), pt(x2, y2), pt(x1, y2)}
}

// triangle returns the corners of a triangle.
func triangle(x1, y1, x2, y2, x3, y3 float64) []vec.Vec2 {
	return []vec.Vec2{pt(x1, y1), pt(x2, y2), pt(x3, y3)}
}
