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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// defaultFlatness is the default curve flattening tolerance in device
// pixels.
const defaultFlatness = 0.25

// Flattener converts outlines given as paths into device space polygons,
// suitable for [Buffer.InsertPolygon] and [Buffer.TestPolygon].
// Create one instance and reuse it; internal buffers grow as needed but
// never shrink.
//
// A Flattener is not safe for concurrent use.
type Flattener struct {
	// CTM transforms from user space to device space.
	CTM matrix.Matrix

	// Flatness controls curve approximation accuracy in device pixels.
	// Values <= 0 select the default of 0.25.
	Flatness float64

	verts   []vec.Vec2   // device space vertices of all subpaths
	offsets []int        // start index of each subpath in verts
	polys   [][]vec.Vec2 // returned by Polygons
}

// NewFlattener returns a Flattener with the identity transformation and
// the default flatness.
func NewFlattener() *Flattener {
	return &Flattener{
		CTM:      matrix.Identity,
		Flatness: defaultFlatness,
	}
}

// Polygons flattens every subpath of p into a closed polygon in device
// space.  Curves are replaced by line segments.  The returned slices
// are only valid until the next call to Polygons.
//
// The polygons are returned as they are; they are not guaranteed to be
// convex, and only convex polygons can be passed to
// [Buffer.InsertPolygon] and [Buffer.TestPolygon].
func (f *Flattener) Polygons(p *path.Data) [][]vec.Vec2 {
	f.verts = f.verts[:0]
	f.offsets = f.offsets[:0]

	var current vec.Vec2 // current point (user space)
	var subpath vec.Vec2 // subpath start (user space)
	open := false

	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[coordIdx]
			subpath = current
			f.offsets = append(f.offsets, len(f.verts))
			f.addVertex(current)
			open = true
			coordIdx++

		case path.CmdLineTo:
			f.ensureOpen(open, current)
			open = true
			f.addVertex(p.Coords[coordIdx])
			current = p.Coords[coordIdx]
			coordIdx++

		case path.CmdQuadTo:
			f.ensureOpen(open, current)
			open = true
			f.flattenQuadratic(current, p.Coords[coordIdx], p.Coords[coordIdx+1])
			current = p.Coords[coordIdx+1]
			coordIdx += 2

		case path.CmdCubeTo:
			f.ensureOpen(open, current)
			open = true
			f.flattenCubic(current, p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2])
			current = p.Coords[coordIdx+2]
			coordIdx += 3

		case path.CmdClose:
			current = subpath
			open = false
		}
	}

	f.polys = f.polys[:0]
	for i, start := range f.offsets {
		end := len(f.verts)
		if i+1 < len(f.offsets) {
			end = f.offsets[i+1]
		}
		poly := f.verts[start:end:end]
		// the closing edge is implicit
		if len(poly) > 1 && poly[len(poly)-1] == poly[0] {
			poly = poly[:len(poly)-1]
		}
		f.polys = append(f.polys, poly)
	}
	return f.polys
}

// ensureOpen starts a new subpath at the current point if the previous
// one was closed.
func (f *Flattener) ensureOpen(open bool, current vec.Vec2) {
	if !open {
		f.offsets = append(f.offsets, len(f.verts))
		f.addVertex(current)
	}
}

func (f *Flattener) flatness() float64 {
	if f.Flatness > 0 {
		return f.Flatness
	}
	return defaultFlatness
}

// addVertex appends a user space point, transformed to device space.
func (f *Flattener) addVertex(p vec.Vec2) {
	f.verts = append(f.verts, vec.Vec2{
		X: f.CTM[0]*p.X + f.CTM[2]*p.Y + f.CTM[4],
		Y: f.CTM[1]*p.X + f.CTM[3]*p.Y + f.CTM[5],
	})
}

// transformLinear applies only the 2×2 linear part of CTM to a vector.
func (f *Flattener) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: f.CTM[0]*v.X + f.CTM[2]*v.Y,
		Y: f.CTM[1]*v.X + f.CTM[3]*v.Y,
	}
}

// flattenQuadratic appends the end points of a line segment
// approximation of a quadratic Bézier curve.  p0 is the start point
// (already added), p1 is the control point, p2 is the end point.
func (f *Flattener) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	// e = (P0 - 2*P1 + P2) / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	errDev := f.transformLinear(e).Length()
	if flatness := f.flatness(); errDev > flatness {
		n = int(math.Ceil(math.Sqrt(errDev / flatness)))
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		f.addVertex(p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t)))
	}
}

// flattenCubic appends the end points of a line segment approximation
// of a cubic Bézier curve, using Wang's formula for the segment count.
func (f *Flattener) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d1 := f.transformLinear(p0.Sub(p1.Mul(2)).Add(p2)) // P0 - 2*P1 + P2
	d2 := f.transformLinear(p1.Sub(p2.Mul(2)).Add(p3)) // P1 - 2*P2 + P3

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		// n = ceil(sqrt(3 * m / (4 * ε)))
		if nFloat := math.Sqrt(3 * m / (4 * f.flatness())); nFloat > 1 {
			n = int(math.Ceil(nFloat))
		}
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		f.addVertex(p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t)))
	}
}

// InsertPath covers the area enclosed by p, flattened by f.  Every
// subpath is treated as a separate convex polygon.  The return value
// reports whether any pixel had been visible.
//
// If negative is true, the subpaths are holes: all pixels outside the
// union of the subpaths are covered, and the inside of every subpath is
// left unchanged.
//
// Subpaths which are not convex are skipped when covering, and are
// replaced by their convex hull when used as holes.  In both cases a
// warning is logged.  This never hides pixels which are visible.
func (b *Buffer) InsertPath(f *Flattener, p *path.Data, negative bool) bool {
	polys := f.Polygons(p)
	if negative {
		for i, poly := range polys {
			if !isConvex(poly) {
				Logger().Warn("cbuffer: using convex hull of non-convex hole",
					"subpath", i, "vertices", len(poly))
				polys[i] = convexHull(poly)
			}
		}
		return b.insertHoles(polys)
	}

	vis := false
	for i, poly := range polys {
		if !isConvex(poly) {
			Logger().Warn("cbuffer: skipping non-convex subpath",
				"subpath", i, "vertices", len(poly))
			continue
		}
		if b.InsertPolygon(poly, false) {
			vis = true
		}
	}
	return vis
}

// TestPath reports whether any subpath of p, flattened by f, is visible.
// Subpaths which are not convex are tested using their convex hull, so
// that the result may be true for a hidden subpath, but is never false
// for a visible one.
func (b *Buffer) TestPath(f *Flattener, p *path.Data) bool {
	for _, poly := range f.Polygons(p) {
		if !isConvex(poly) {
			poly = convexHull(poly)
		}
		if b.TestPolygon(poly) {
			return true
		}
	}
	return false
}

// insertHoles covers all pixels of the buffer which are outside every one
// of the given convex polygons.  Invalid polygons are ignored; if no valid
// polygon remains, the buffer is not changed.
func (b *Buffer) insertHoles(polys [][]vec.Vec2) bool {
	if len(b.holes) != b.numLines {
		b.holes = make([][][2]int, b.numLines)
	}
	for i := range b.holes {
		b.holes[i] = b.holes[i][:0]
	}

	valid := false
	for _, poly := range polys {
		info, ok := analysePolygon(poly)
		if !ok {
			continue
		}
		valid = true
		scanPolygon(poly, info, b.startY, b.startY+b.numLines, func(y, xL, xR int) bool {
			startX, endX := b.clampX(xL, xR-1)
			if startX <= endX {
				i := y - b.startY
				b.holes[i] = append(b.holes[i], [2]int{startX, endX})
			}
			return true
		})
	}
	if !valid {
		return false
	}

	vis := false
	for i, row := range b.holes {
		slices.SortFunc(row, func(p, q [2]int) int { return cmp.Compare(p[0], q[0]) })

		l := &b.lines[i]
		x := b.startX
		for _, hole := range row {
			if l.InsertSpan(&b.pool, x, hole[0]-1) {
				vis = true
			}
			x = max(x, hole[1]+1)
		}
		if l.InsertSpan(&b.pool, x, b.endX) {
			vis = true
		}

		if l.Occluded() {
			y := b.startY + i
			b.vert.InsertSpan(&b.pool, y, y)
		}
	}
	return vis
}

// isConvex reports whether the closed polygon verts is convex.  Repeated
// vertices and collinear edges are allowed.  Polygons which turn around
// more than once, like a pentagram, are not convex.
func isConvex(verts []vec.Vec2) bool {
	n := len(verts)
	if n < 4 {
		return true
	}

	edge := func(i int) (vec.Vec2, bool) {
		e := verts[(i+1)%n].Sub(verts[i%n])
		return e, math.Abs(e.X)+math.Abs(e.Y) > vertexNearThreshold
	}
	first := -1
	for i := range n {
		if _, ok := edge(i); ok {
			first = i
			break
		}
	}
	if first < 0 {
		return true
	}

	prev, _ := edge(first)
	sign := 0
	total := 0.0 // sum of the turning angles
	count := 0
	for k := 1; k <= n; k++ {
		e, ok := edge(first + k)
		if !ok {
			continue
		}
		cross := prev.X*e.Y - prev.Y*e.X
		dot := prev.X*e.X + prev.Y*e.Y
		if math.Abs(cross) > 1e-9*prev.Length()*e.Length() {
			s := 1
			if cross < 0 {
				s = -1
			}
			if sign != 0 && s != sign {
				return false
			}
			sign = s
		} else if dot < 0 {
			// the outline doubles back on itself
			return false
		}
		total += math.Atan2(cross, dot)
		prev = e
		count++
	}
	if count < 3 {
		return true
	}
	return math.Abs(total) < 2*math.Pi+1e-6
}

// convexHull returns the convex hull of the given points, using Andrew's
// monotone chain algorithm.  The result is a new slice.
func convexHull(verts []vec.Vec2) []vec.Vec2 {
	pts := slices.Clone(verts)
	slices.SortFunc(pts, func(a, b vec.Vec2) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	pts = slices.Compact(pts)
	if len(pts) < 3 {
		return pts
	}

	turn := func(o, a, b vec.Vec2) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	hull := make([]vec.Vec2, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
