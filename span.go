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

// spanRef identifies a span inside a SpanPool.  The value is the arena
// index plus one, so that the zero value means "no span".
type spanRef int32

// span is a run [startX, endX] of still visible pixels on one scanline.
// The next field links spans of the same line, or spans on the free list.
type span struct {
	startX, endX int
	next         spanRef
}

// SpanPool is an arena of spans shared by all lines of a buffer.
// Spans removed from a line are kept on a free list and handed out again
// by later allocations, so that a buffer which is re-initialised every
// frame stops allocating once the largest frame has been seen.
//
// The zero value is an empty pool, ready to use.
// A SpanPool is not safe for concurrent use.
type SpanPool struct {
	spans       []span
	firstUnused spanRef // head of the free list
	numFree     int
}

// at returns the span for ref.  The pointer is only valid until the
// next call to alloc.
func (p *SpanPool) at(ref spanRef) *span {
	return &p.spans[ref-1]
}

// alloc returns an unused span.  The fields of the span are not cleared;
// the caller must set all of them.
func (p *SpanPool) alloc() spanRef {
	if ref := p.firstUnused; ref != 0 {
		p.firstUnused = p.at(ref).next
		p.numFree--
		return ref
	}
	p.spans = append(p.spans, span{})
	return spanRef(len(p.spans))
}

// free puts a single span on the free list.
func (p *SpanPool) free(ref spanRef) {
	p.at(ref).next = p.firstUnused
	p.firstUnused = ref
	p.numFree++
}

// freeList moves a whole linked list of n spans, from first to last,
// onto the free list in constant time.
func (p *SpanPool) freeList(first, last spanRef, n int) {
	p.at(last).next = p.firstUnused
	p.firstUnused = first
	p.numFree += n
}

// Len returns the number of spans ever allocated by the pool.
func (p *SpanPool) Len() int {
	return len(p.spans)
}

// Free returns the number of spans currently on the free list.
func (p *SpanPool) Free() int {
	return p.numFree
}
