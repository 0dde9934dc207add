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

// Package cbuffer implements a coverage buffer for occlusion culling.
//
// A coverage buffer stores, for every pixel row of the screen, the list of
// horizontal pixel runs which are not yet covered by any polygon.  Polygons
// are submitted in front-to-back order: [Buffer.TestPolygon] tells whether
// any part of a polygon can still be seen, and [Buffer.InsertPolygon]
// removes the pixels of an opaque polygon from the visible set.  Renderers
// use this to skip objects hidden behind nearer geometry.
//
// Pixel (x, y) covers the area [x, x+1) × [y, y+1) in device space, with y
// growing downwards.  A pixel belongs to a polygon if its centre does.
package cbuffer

//go:generate go run ./scenes/export
