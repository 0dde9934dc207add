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

package scenes

import (
	"seehuhn.de/go/cbuffer"
	"seehuhn.de/go/geom/matrix"
)

// NewBuffer allocates a buffer of the size of the scene.
func (s *Scene) NewBuffer() *cbuffer.Buffer {
	return cbuffer.NewBuffer(0, s.Width-1, s.Height)
}

// Run applies the steps of the scene to b.  For every step which has an
// expected result, report is called with the step index, the result and
// the expected value.  Report may be nil.
func (s *Scene) Run(b *cbuffer.Buffer, f *cbuffer.Flattener, report func(i int, got, want bool)) {
	if report == nil {
		report = func(int, bool, bool) {}
	}
	for i, step := range s.Steps {
		switch step := step.(type) {
		case Insert:
			report(i, b.InsertPolygon(step.Polygon, step.Negative), step.Want)
		case Test:
			report(i, b.TestPolygon(step.Polygon), step.Want)
		case Point:
			report(i, b.TestPoint(step.At), step.Want)
		case Outline:
			f.CTM = matrix.Identity
			if step.CTM != (matrix.Matrix{}) {
				f.CTM = step.CTM
			}
			report(i, b.InsertPath(f, step.Path, step.Negative), step.Want)
		case Reset:
			b.Initialize()
		}
	}
}
