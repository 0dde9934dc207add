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
	"errors"
	"fmt"
)

// ErrCorrupt is returned by [Buffer.Validate] if an internal invariant
// of the buffer does not hold.
var ErrCorrupt = errors.New("cbuffer: corrupt buffer")

// Validate checks the internal consistency of the buffer:
// spans of every line are sorted, disjoint and inside the buffer,
// rows marked as covered in the vertical line have no visible spans,
// and every span of the pool is either in use by exactly one line or on
// the free list.
//
// Validate is meant for tests and debugging; a correctly used buffer
// never fails the check.
func (b *Buffer) Validate() error {
	seen := make([]bool, b.pool.Len())
	mark := func(ref spanRef) error {
		if ref < 1 || int(ref) > len(seen) {
			return fmt.Errorf("%w: invalid span reference %d", ErrCorrupt, ref)
		}
		if seen[ref-1] {
			return fmt.Errorf("%w: span %d is used twice", ErrCorrupt, ref)
		}
		seen[ref-1] = true
		return nil
	}

	for i := range b.lines {
		y := b.startY + i
		l := &b.lines[i]
		if err := b.checkLine(l, b.startX, b.endX, mark); err != nil {
			return fmt.Errorf("row %d: %w", y, err)
		}
		if !l.Occluded() && !b.vert.TestSpan(&b.pool, y, y) {
			return fmt.Errorf("%w: row %d is visible but marked as covered", ErrCorrupt, y)
		}
	}
	if err := b.checkLine(&b.vert, b.startY, b.lastRow(), mark); err != nil {
		return fmt.Errorf("vertical line: %w", err)
	}

	numFree := 0
	for ref := b.pool.firstUnused; ref != 0; ref = b.pool.at(ref).next {
		if err := mark(ref); err != nil {
			return fmt.Errorf("free list: %w", err)
		}
		numFree++
	}
	if numFree != b.pool.numFree {
		return fmt.Errorf("%w: free list has %d spans, expected %d",
			ErrCorrupt, numFree, b.pool.numFree)
	}

	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: span %d was lost", ErrCorrupt, i+1)
		}
	}
	return nil
}

// checkLine verifies the span list of a single line.
func (b *Buffer) checkLine(l *Line, lo, hi int, mark func(spanRef) error) error {
	n := 0
	prevEnd := lo - 1
	var last spanRef
	for ref := l.first; ref != 0; ref = b.pool.at(ref).next {
		if err := mark(ref); err != nil {
			return err
		}
		s := b.pool.at(ref)
		switch {
		case s.startX > s.endX:
			return fmt.Errorf("%w: empty span [%d, %d]", ErrCorrupt, s.startX, s.endX)
		case s.startX <= prevEnd:
			return fmt.Errorf("%w: span [%d, %d] overlaps or is out of order",
				ErrCorrupt, s.startX, s.endX)
		case s.endX > hi:
			return fmt.Errorf("%w: span [%d, %d] exceeds %d", ErrCorrupt, s.startX, s.endX, hi)
		}
		prevEnd = s.endX
		last = ref
		n++
	}
	if last != l.last {
		return fmt.Errorf("%w: wrong tail pointer", ErrCorrupt)
	}
	if n != l.n {
		return fmt.Errorf("%w: line has %d spans, expected %d", ErrCorrupt, n, l.n)
	}
	return nil
}
