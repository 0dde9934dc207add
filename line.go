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
	"context"
	"iter"
	"log/slog"
)

// Line holds the visible part of one scanline as a list of disjoint
// spans, sorted by x.  Covering parts of the line removes, shrinks or
// splits spans; spans are never merged, so the list only shrinks until
// the line is re-initialised.
//
// The spans of a line live in a SpanPool which must be passed to every
// method.  All calls for one line must use the same pool.  The zero
// value is a line without visible pixels.
type Line struct {
	first, last spanRef
	n           int
}

// Init makes the whole range [startX, endX] visible.  Any previous spans
// are returned to the pool in one step.
func (l *Line) Init(p *SpanPool, startX, endX int) {
	if l.first != 0 {
		p.freeList(l.first, l.last, l.n)
	}
	ref := p.alloc()
	s := p.at(ref)
	s.startX, s.endX, s.next = startX, endX, 0
	l.first, l.last, l.n = ref, ref, 1
}

// MarkOccluded removes all visible spans from the line.
// The return value reports whether any spans were removed.
func (l *Line) MarkOccluded(p *SpanPool) bool {
	if l.first == 0 {
		return false
	}
	p.freeList(l.first, l.last, l.n)
	l.first, l.last, l.n = 0, 0, 0
	return true
}

// Occluded reports whether no pixel of the line is visible.
func (l *Line) Occluded() bool {
	return l.first == 0
}

// Len returns the number of visible spans.
func (l *Line) Len() int {
	return l.n
}

// TestSpan reports whether any pixel in [startX, endX] is still visible.
// The line is not modified.  Empty ranges (startX > endX) are never
// visible.
func (l *Line) TestSpan(p *SpanPool, startX, endX int) bool {
	if startX > endX {
		return false
	}
	for ref := l.first; ref != 0; {
		s := p.at(ref)
		if s.startX > endX {
			return false
		}
		if s.endX >= startX {
			return true
		}
		ref = s.next
	}
	return false
}

// InsertSpan covers the pixels [startX, endX], removing them from the
// visible part of the line.  The return value reports whether any of the
// covered pixels had been visible before the call, and always equals the
// result TestSpan would have given for the same range.
func (l *Line) InsertSpan(p *SpanPool, startX, endX int) bool {
	if startX > endX {
		return false
	}

	vis := false
	var prev spanRef
	ref := l.first
	for ref != 0 {
		s := p.at(ref)
		if s.startX > endX {
			break
		}
		next := s.next
		if s.endX < startX {
			prev = ref
			ref = next
			continue
		}

		vis = true
		switch {
		case s.startX >= startX && s.endX <= endX:
			// span is covered completely
			if prev == 0 {
				l.first = next
			} else {
				p.at(prev).next = next
			}
			if l.last == ref {
				l.last = prev
			}
			p.free(ref)
			l.n--
			ref = next
			continue

		case s.startX < startX && s.endX > endX:
			// the covered range lies strictly inside the span
			oldEndX := s.endX
			s.endX = startX - 1
			newRef := p.alloc() // invalidates s
			ns := p.at(newRef)
			ns.startX, ns.endX, ns.next = endX+1, oldEndX, next
			p.at(ref).next = newRef
			if l.last == ref {
				l.last = newRef
			}
			l.n++
			return true

		case s.startX < startX:
			s.endX = startX - 1

		default:
			// s.startX >= startX && s.endX > endX: no later span can overlap
			s.startX = endX + 1
			return true
		}
		prev = ref
		ref = next
	}
	return vis
}

// All iterates over the visible spans of the line, in order of
// increasing x.  The line must not be modified during the iteration.
func (l *Line) All(p *SpanPool) iter.Seq2[int, int] {
	return func(yield func(startX, endX int) bool) {
		for ref := l.first; ref != 0; {
			s := p.at(ref)
			if !yield(s.startX, s.endX) {
				return
			}
			ref = s.next
		}
	}
}

// Dump logs the visible spans of the line at debug level.
// The argument y is only used to label the output.
func (l *Line) Dump(p *SpanPool, y int) {
	log := Logger()
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	spans := make([][2]int, 0, l.n)
	for startX, endX := range l.All(p) {
		spans = append(spans, [2]int{startX, endX})
	}
	log.Debug("cbuffer line", "y", y, "spans", spans)
}
