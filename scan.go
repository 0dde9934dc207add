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

package cbuffer

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Numerical constants for scan conversion.
const (
	// vertexNearThreshold is the Manhattan distance below which two
	// consecutive polygon vertices count as the same vertex.
	vertexNearThreshold = 0.001

	// maxCoord bounds coordinates before conversion to int.
	maxCoord = 1 << 30
)

// round rounds x to the nearest integer, with halves rounded up.
func round(x float64) int {
	return int(math.Floor(min(max(x, -maxCoord), maxCoord) + 0.5))
}

// polygonInfo describes the vertical extent of a polygon.
type polygonInfo struct {
	minIdx, maxIdx int     // vertices with minimal and maximal y
	minY, maxY     float64 // the corresponding y values
}

// rows returns the first and last pixel row touched by the polygon.
// If the polygon touches no row, first > last.
func (info polygonInfo) rows() (first, last int) {
	return round(info.minY), round(info.maxY) - 1
}

// analysePolygon finds the vertices with extremal y coordinates.  The
// polygon is rejected if it has fewer than three distinct vertices, or
// if any coordinate is not finite.
func analysePolygon(verts []vec.Vec2) (polygonInfo, bool) {
	if len(verts) < 3 {
		return polygonInfo{}, false
	}

	info := polygonInfo{minY: verts[0].Y, maxY: verts[0].Y}
	distinct := 1
	for i, v := range verts {
		if !isFinite(v.X) || !isFinite(v.Y) {
			Logger().Warn("cbuffer: ignoring polygon with non-finite vertex",
				"index", i, "x", v.X, "y", v.Y)
			return polygonInfo{}, false
		}
		if i == 0 {
			continue
		}
		if v.Y > info.maxY {
			info.maxY = v.Y
			info.maxIdx = i
		} else if v.Y < info.minY {
			info.minY = v.Y
			info.minIdx = i
		}
		prev := verts[i-1]
		if math.Abs(v.X-prev.X)+math.Abs(v.Y-prev.Y) > vertexNearThreshold {
			distinct++
		}
	}
	if distinct < 3 {
		return polygonInfo{}, false
	}
	return info, true
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// edgeStart returns the x coordinate of the edge from v1 to v2 at the
// centre of the pixel row below boundary sy, together with the change of
// x per row.  The edge is walked towards decreasing y, so v1.Y > v2.Y.
func edgeStart(v1, v2 vec.Vec2, sy int) (sx, dx float64) {
	dx = (v2.X - v1.X) / (v1.Y - v2.Y)
	sx = v1.X + dx*(v1.Y-(float64(sy)-0.5))
	return sx, dx
}

// scanPolygon scan converts a convex polygon, starting at the bottom
// (maximal y) and walking up towards the top.  For every pixel row y in
// [rowMin, rowMax) which is covered by the polygon, visit is called with
// the half-open pixel range [xL, xR) of the row; the range may be empty.
// Pixel (x, y) is inside the polygon if its centre (x+0.5, y+0.5) is.
//
// If visit returns false, the scan stops and scanPolygon returns false.
func scanPolygon(verts []vec.Vec2, info polygonInfo, rowMin, rowMax int, visit func(y, xL, xR int) bool) bool {
	n := len(verts)

	// Row boundary sy separates pixel rows sy-1 and sy.  The left cursor
	// walks the vertex list backwards, the right cursor forwards, both
	// starting at the bottom vertex.
	var sxL, sxR, dxL, dxR float64
	scanL2, scanR2 := info.maxIdx, info.maxIdx
	sy := round(verts[info.maxIdx].Y)
	fyL, fyR := sy, sy

	for {
		for {
			advanced := false
			if sy <= fyR {
				if scanR2 == info.minIdx {
					return true
				}
				scanR1 := scanR2
				scanR2++
				if scanR2 >= n {
					scanR2 = 0
				}
				advanced = true
				fyR = round(verts[scanR2].Y)
				if sy <= fyR {
					continue
				}
				sxR, dxR = edgeStart(verts[scanR1], verts[scanR2], sy)
			}
			if sy <= fyL {
				scanL1 := scanL2
				scanL2--
				if scanL2 < 0 {
					scanL2 = n - 1
				}
				advanced = true
				fyL = round(verts[scanL2].Y)
				if sy <= fyL {
					continue
				}
				sxL, dxL = edgeStart(verts[scanL1], verts[scanL2], sy)
			}
			if !advanced {
				break
			}
		}

		// The trapezoid ends where the first of the two edges ends.
		finY := max(fyL, fyR)

		// Decide once per trapezoid which cursor is on the left, using
		// the middle row.  This keeps rounding near the tips from
		// flipping individual rows.
		mid := float64(sy-finY-1) / 2
		swap := sxL+dxL*mid > sxR+dxR*mid

		if skip := sy - rowMax; skip > 0 {
			// rows below the buffer
			skip = min(skip, sy-finY)
			sxL += dxL * float64(skip)
			sxR += dxR * float64(skip)
			sy -= skip
		}
		for ; sy > finY; sy-- {
			y := sy - 1
			if y < rowMin {
				return true
			}
			xL, xR := round(sxL), round(sxR)
			if swap {
				xL, xR = xR, xL
			}
			if xR < xL {
				xR = xL
			}
			if !visit(y, xL, xR) {
				return false
			}
			sxL += dxL
			sxR += dxR
		}
	}
}
