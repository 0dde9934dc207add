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
	"fmt"
	"iter"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Buffer is a coverage buffer: for every pixel row it records which
// pixels are still visible, i.e. not covered by any polygon inserted so
// far.  Polygons must be inserted in front-to-back order.  A typical frame
// calls Initialize once, and then for every polygon in depth order first
// TestPolygon to decide whether the polygon needs to be drawn, and then
// InsertPolygon if the polygon is opaque.
//
// An additional vertical line, indexed by row number, tracks which rows
// are completely covered.  It is used to reject polygons whose rows are
// all covered without looking at the individual rows.
//
// A Buffer is not safe for concurrent use.  Independent buffers, for
// example one per screen tile, can be used from different goroutines.
type Buffer struct {
	startX, endX int // horizontal pixel range, inclusive
	startY       int // first pixel row
	numLines     int

	lines []Line
	vert  Line
	pool  SpanPool

	holes [][][2]int // per-row scratch space for insertHoles
}

// NewBuffer allocates a buffer for the pixel columns startX, ..., endX
// and the rows 0, ..., numLines-1.  The buffer is initialised, so that
// every pixel is visible.
func NewBuffer(startX, endX, numLines int) *Buffer {
	return newBuffer(startX, endX, 0, numLines)
}

// NewBufferForClip allocates a buffer for the pixels inside the given
// device space rectangle.  The coordinates of clip must be integers,
// otherwise NewBufferForClip panics.
func NewBufferForClip(clip rect.Rect) *Buffer {
	for _, c := range []float64{clip.LLx, clip.LLy, clip.URx, clip.URy} {
		if c != math.Trunc(c) || math.Abs(c) > maxCoord {
			panic(fmt.Sprintf("cbuffer: invalid clip rectangle %v", clip))
		}
	}
	startX := int(clip.LLx)
	endX := int(clip.URx) - 1
	startY := int(clip.LLy)
	endY := int(clip.URy)
	return newBuffer(startX, endX, startY, endY-startY)
}

func newBuffer(startX, endX, startY, numLines int) *Buffer {
	if endX < startX || numLines <= 0 {
		panic(fmt.Sprintf("cbuffer: invalid buffer size %dx%d", endX-startX+1, numLines))
	}
	b := &Buffer{
		startX:   startX,
		endX:     endX,
		startY:   startY,
		numLines: numLines,
		lines:    make([]Line, numLines),
	}
	b.Initialize()
	return b
}

// Bounds returns the pixel area covered by the buffer.
func (b *Buffer) Bounds() rect.Rect {
	return rect.Rect{
		LLx: float64(b.startX),
		LLy: float64(b.startY),
		URx: float64(b.endX + 1),
		URy: float64(b.startY + b.numLines),
	}
}

// Initialize makes every pixel of the buffer visible again.  This must be
// called at the start of every frame.  Spans from the previous frame are
// recycled.
func (b *Buffer) Initialize() {
	for i := range b.lines {
		b.lines[i].Init(&b.pool, b.startX, b.endX)
	}
	b.vert.Init(&b.pool, b.startY, b.lastRow())
}

func (b *Buffer) lastRow() int {
	return b.startY + b.numLines - 1
}

// line returns the line for pixel row y, or nil if y is outside the
// buffer.
func (b *Buffer) line(y int) *Line {
	i := y - b.startY
	if i < 0 || i >= b.numLines {
		return nil
	}
	return &b.lines[i]
}

// clampX restricts a pixel range to the columns of the buffer.
func (b *Buffer) clampX(startX, endX int) (int, int) {
	return max(startX, b.startX), min(endX, b.endX)
}

// Full reports whether every pixel of the buffer is covered.
func (b *Buffer) Full() bool {
	return b.vert.Occluded()
}

// Occluded reports whether every pixel of row y is covered.  Rows outside
// the buffer are always occluded.
func (b *Buffer) Occluded(y int) bool {
	l := b.line(y)
	return l == nil || l.Occluded()
}

// TestSpan reports whether any of the pixels [startX, endX] in row y is
// visible.
func (b *Buffer) TestSpan(y, startX, endX int) bool {
	l := b.line(y)
	if l == nil {
		return false
	}
	startX, endX = b.clampX(startX, endX)
	return l.TestSpan(&b.pool, startX, endX)
}

// InsertSpan covers the pixels [startX, endX] in row y.  The return value
// reports whether any of these pixels had been visible.
func (b *Buffer) InsertSpan(y, startX, endX int) bool {
	l := b.line(y)
	if l == nil {
		return false
	}
	startX, endX = b.clampX(startX, endX)
	vis := l.InsertSpan(&b.pool, startX, endX)
	if vis && l.Occluded() {
		b.vert.InsertSpan(&b.pool, y, y)
	}
	return vis
}

// TestPoint reports whether the pixel containing the point p is visible.
// Pixel (x, y) covers the area [x, x+1) × [y, y+1).
func (b *Buffer) TestPoint(p vec.Vec2) bool {
	if !isFinite(p.X) || !isFinite(p.Y) {
		return false
	}
	x := int(math.Floor(min(max(p.X, -maxCoord), maxCoord)))
	y := int(math.Floor(min(max(p.Y, -maxCoord), maxCoord)))
	return b.TestSpan(y, x, x)
}

// TestPolygon reports whether any part of the convex polygon verts, given
// in device coordinates, is visible.  The buffer is not modified.
// Polygons with fewer than three distinct vertices are never visible.
func (b *Buffer) TestPolygon(verts []vec.Vec2) bool {
	info, ok := analysePolygon(verts)
	if !ok {
		return false
	}
	first, last := info.rows()
	if !b.vert.TestSpan(&b.pool, first, last) {
		return false
	}

	stopped := !scanPolygon(verts, info, b.startY, b.startY+b.numLines, func(y, xL, xR int) bool {
		startX, endX := b.clampX(xL, xR-1)
		return !b.lines[y-b.startY].TestSpan(&b.pool, startX, endX)
	})
	return stopped
}

// TestRect reports whether any pixel with centre inside r is visible.
func (b *Buffer) TestRect(r rect.Rect) bool {
	return b.TestPolygon([]vec.Vec2{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
	})
}

// InsertPolygon covers the pixels of the convex polygon verts, given in
// device coordinates.  The return value reports whether any of the
// covered pixels had been visible before.  Unless negative is set, this
// is the same value a call to TestPolygon just before would have given.
//
// If negative is true, the polygon is treated as a hole: all pixels
// outside the polygon are covered instead, and the inside is left
// unchanged.  This is used for portals, where the geometry behind the
// portal can only be seen through the portal polygon.
func (b *Buffer) InsertPolygon(verts []vec.Vec2, negative bool) bool {
	info, ok := analysePolygon(verts)
	if !ok {
		return false
	}
	first, last := info.rows()
	if !negative && !b.vert.TestSpan(&b.pool, first, last) {
		return false
	}

	vis := false
	if negative {
		vis = b.occludeOutsideRows(first, last)
	}

	// Runs of fully covered rows are collected while scanning (from the
	// bottom up) and are added to the vertical line in one step.
	runStart, runEnd := 0, -1
	flush := func() {
		if runStart <= runEnd {
			b.vert.InsertSpan(&b.pool, runStart, runEnd)
		}
		runStart, runEnd = 0, -1
	}

	scanPolygon(verts, info, b.startY, b.startY+b.numLines, func(y, xL, xR int) bool {
		l := &b.lines[y-b.startY]
		if negative {
			startX, endX := b.clampX(b.startX, xL-1)
			if l.InsertSpan(&b.pool, startX, endX) {
				vis = true
			}
			startX, endX = b.clampX(xR, b.endX)
			if l.InsertSpan(&b.pool, startX, endX) {
				vis = true
			}
		} else {
			startX, endX := b.clampX(xL, xR-1)
			if l.InsertSpan(&b.pool, startX, endX) {
				vis = true
			}
		}

		if l.Occluded() {
			if runStart > runEnd {
				runEnd = y
			}
			runStart = y
		} else {
			flush()
		}
		return true
	})
	flush()

	return vis
}

// occludeOutsideRows covers all rows of the buffer outside [first, last].
func (b *Buffer) occludeOutsideRows(first, last int) bool {
	vis := false
	lo := min(first, b.lastRow()+1)
	for y := b.startY; y < lo; y++ {
		if b.lines[y-b.startY].MarkOccluded(&b.pool) {
			vis = true
		}
	}
	if lo > b.startY {
		b.vert.InsertSpan(&b.pool, b.startY, lo-1)
	}

	hi := max(last, b.startY-1)
	for y := hi + 1; y <= b.lastRow(); y++ {
		if b.lines[y-b.startY].MarkOccluded(&b.pool) {
			vis = true
		}
	}
	if hi < b.lastRow() {
		b.vert.InsertSpan(&b.pool, hi+1, b.lastRow())
	}
	return vis
}

// Spans iterates over the visible pixel ranges [startX, endX] of row y.
// The buffer must not be modified during the iteration.
func (b *Buffer) Spans(y int) iter.Seq2[int, int] {
	l := b.line(y)
	if l == nil {
		return func(func(int, int) bool) {}
	}
	return l.All(&b.pool)
}

// SpanCount returns the total number of visible spans in the buffer.
func (b *Buffer) SpanCount() int {
	n := 0
	for i := range b.lines {
		n += b.lines[i].Len()
	}
	return n
}
