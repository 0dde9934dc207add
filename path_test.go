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
	"bytes"
	"log/slog"
	"math"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestFlattenerLines(t *testing.T) {
	f := NewFlattener()
	f.CTM = matrix.Matrix{20, 0, 0, 20, 40, 40}

	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 1, Y: 0}).
		LineTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 0, Y: 1}).
		LineTo(vec.Vec2{X: 0, Y: 0}).
		Close()

	polys := f.Polygons(p)
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	want := []vec.Vec2{{X: 40, Y: 40}, {X: 60, Y: 40}, {X: 60, Y: 60}, {X: 40, Y: 60}}
	if !slices.Equal(polys[0], want) {
		t.Errorf("got %v, want %v", polys[0], want)
	}
}

func TestFlattenerSubpaths(t *testing.T) {
	f := NewFlattener()

	// The second subpath starts implicitly at the start of the first.
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 10}).
		Close().
		LineTo(vec.Vec2{X: 0, Y: 10}).
		LineTo(vec.Vec2{X: -5, Y: 5}).
		MoveTo(vec.Vec2{X: 20, Y: 20}).
		LineTo(vec.Vec2{X: 30, Y: 20}).
		LineTo(vec.Vec2{X: 30, Y: 30})

	polys := f.Polygons(p)
	want := [][]vec.Vec2{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: -5, Y: 5}},
		{{X: 20, Y: 20}, {X: 30, Y: 20}, {X: 30, Y: 30}},
	}
	if len(polys) != len(want) {
		t.Fatalf("got %d polygons, want %d", len(polys), len(want))
	}
	for i := range want {
		if !slices.Equal(polys[i], want[i]) {
			t.Errorf("polygon %d: got %v, want %v", i, polys[i], want[i])
		}
	}
}

func TestFlattenerQuadratic(t *testing.T) {
	f := NewFlattener()
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		QuadTo(vec.Vec2{X: 10, Y: 20}, vec.Vec2{X: 20, Y: 0}).
		Close()

	polys := f.Polygons(p)
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	poly := polys[0]
	if len(poly) < 4 {
		t.Fatalf("curve was not subdivided: %v", poly)
	}
	if poly[len(poly)-1] != (vec.Vec2{X: 20, Y: 0}) {
		t.Errorf("curve ends at %v", poly[len(poly)-1])
	}
	for _, v := range poly {
		// the curve is the parabola y = x*(20-x)/10
		want := v.X * (20 - v.X) / 10
		if math.Abs(v.Y-want) > 1e-9 {
			t.Errorf("vertex %v is not on the curve", v)
		}
	}
}

func TestFlattenerCircle(t *testing.T) {
	const r = 20
	f := NewFlattener()
	f.Flatness = 0.1

	polys := f.Polygons(circlePath(32, 32, r))
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	poly := polys[0]
	if len(poly) < 16 {
		t.Errorf("only %d vertices", len(poly))
	}
	if poly[0] == poly[len(poly)-1] {
		t.Error("closing vertex not removed")
	}
	for _, v := range poly {
		d := math.Hypot(v.X-32, v.Y-32)
		if math.Abs(d-r) > 0.05 {
			t.Errorf("vertex %v at distance %g from the centre", v, d)
		}
	}
}

func TestInsertPath(t *testing.T) {
	b := NewBuffer(0, 63, 64)
	f := NewFlattener()

	circle := circlePath(32, 32, 20)
	if !b.TestPath(f, circle) {
		t.Error("circle not visible in empty buffer")
	}
	if !b.InsertPath(f, circle, false) {
		t.Error("circle added no coverage")
	}
	mustValidate(t, b)
	if b.TestPath(f, circle) {
		t.Error("circle still visible")
	}

	for y := range 64 {
		for x := range 64 {
			d := math.Hypot(float64(x)+0.5-32, float64(y)+0.5-32)
			if d < 19 && b.TestSpan(y, x, x) {
				t.Fatalf("pixel (%d, %d) inside the circle is visible", x, y)
			}
			if d > 21 && !b.TestSpan(y, x, x) {
				t.Fatalf("pixel (%d, %d) outside the circle is covered", x, y)
			}
		}
	}
}

func TestFlattenerZeroFlatness(t *testing.T) {
	f := &Flattener{CTM: matrix.Identity}

	polys := f.Polygons(circlePath(32, 32, 20))
	if len(polys) != 1 {
		t.Fatalf("got %d polygons, want 1", len(polys))
	}
	if n := len(polys[0]); n < 16 {
		t.Errorf("circle flattened to %d vertices", n)
	}
	for _, v := range polys[0] {
		if d := math.Hypot(v.X-32, v.Y-32); math.Abs(d-20) > 0.05 {
			t.Errorf("vertex %v at distance %g from the centre", v, d)
		}
	}
}

func squarePath(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x2, Y: y1}).
		LineTo(vec.Vec2{X: x2, Y: y2}).
		LineTo(vec.Vec2{X: x1, Y: y2}).
		Close()
}

// uPath is a U shape, open towards the top.
func uPath() *path.Data {
	p := &path.Data{}
	p.MoveTo(vec.Vec2{X: 10, Y: 10})
	for _, v := range []vec.Vec2{
		{X: 20, Y: 10}, {X: 20, Y: 40}, {X: 40, Y: 40}, {X: 40, Y: 10},
		{X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50},
	} {
		p.LineTo(v)
	}
	return p.Close()
}

// TestInsertPathHoles checks that all subpaths of a negative outline stay
// visible together.
func TestInsertPathHoles(t *testing.T) {
	b := NewBuffer(0, 63, 64)
	f := NewFlattener()

	holes := squarePath(10, 10, 20, 20)
	holes.MoveTo(vec.Vec2{X: 40, Y: 40}).
		LineTo(vec.Vec2{X: 50, Y: 40}).
		LineTo(vec.Vec2{X: 50, Y: 50}).
		LineTo(vec.Vec2{X: 40, Y: 50}).
		Close()
	// overlaps the first square
	holes.MoveTo(vec.Vec2{X: 15, Y: 15}).
		LineTo(vec.Vec2{X: 25, Y: 15}).
		LineTo(vec.Vec2{X: 25, Y: 18}).
		LineTo(vec.Vec2{X: 15, Y: 18}).
		Close()

	if !b.InsertPath(f, holes, true) {
		t.Error("portal outline covered nothing")
	}
	mustValidate(t, b)
	if b.Full() {
		t.Fatal("buffer is full")
	}

	for y := range 64 {
		for x := range 64 {
			want := x >= 10 && x < 20 && y >= 10 && y < 20 ||
				x >= 40 && x < 50 && y >= 40 && y < 50 ||
				x >= 15 && x < 25 && y >= 15 && y < 18
			if got := b.TestSpan(y, x, x); got != want {
				t.Fatalf("pixel (%d, %d): visible=%t, want %t", x, y, got, want)
			}
		}
	}

	if b.InsertPath(f, holes, true) {
		t.Error("second insert of the same portal covered pixels")
	}
}

// TestInsertPathSingleHole compares a one-subpath portal with
// InsertPolygon in negative mode.
func TestInsertPathSingleHole(t *testing.T) {
	poly := []vec.Vec2{{X: 12.3, Y: -4.7}, {X: 50.2, Y: 18.1}, {X: 41.9, Y: 55.5}, {X: 8.4, Y: 37.2}}
	p := (&path.Data{}).MoveTo(poly[0]).LineTo(poly[1]).LineTo(poly[2]).LineTo(poly[3]).Close()

	b1 := NewBuffer(0, 63, 50)
	b1.InsertPolygon(rectangle(0, 0, 10, 10), false)
	b2 := NewBuffer(0, 63, 50)
	b2.InsertPolygon(rectangle(0, 0, 10, 10), false)

	got := b1.InsertPath(NewFlattener(), p, true)
	want := b2.InsertPolygon(poly, true)
	if got != want {
		t.Errorf("InsertPath = %t, InsertPolygon = %t", got, want)
	}
	mustValidate(t, b1)
	if !equalSnapshots(snapshot(b1), snapshot(b2)) {
		t.Error("InsertPath and InsertPolygon cover different pixels")
	}
	if b1.Full() != b2.Full() {
		t.Error("vertical lines differ")
	}
}

func TestInsertPathConcave(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	b := NewBuffer(0, 63, 64)
	f := NewFlattener()

	if b.InsertPath(f, uPath(), false) {
		t.Error("non-convex outline covered pixels")
	}
	if b.SpanCount() != 64 {
		t.Error("buffer was modified")
	}
	if !strings.Contains(buf.String(), "non-convex") {
		t.Errorf("no warning logged: %q", buf.String())
	}
	if !b.TestPoint(vec.Vec2{X: 30, Y: 25}) {
		t.Error("pixel in the notch is hidden")
	}

	// Only the notch is visible.  TestPath tests the convex hull, which
	// errs towards visible.
	for y := range 64 {
		if y < 20 || y >= 40 {
			b.InsertSpan(y, 0, 63)
		} else {
			b.InsertSpan(y, 0, 19)
			b.InsertSpan(y, 40, 63)
		}
	}
	if !b.TestPath(f, uPath()) {
		t.Error("TestPath hides an outline with a visible bounding hull")
	}

	// as a hole, the convex hull is kept visible
	b.Initialize()
	b.InsertPath(f, uPath(), true)
	mustValidate(t, b)
	for _, tc := range []struct {
		x, y float64
		want bool
	}{
		{30, 25, true},
		{15, 45, true},
		{5, 5, false},
		{55, 30, false},
	} {
		if got := b.TestPoint(vec.Vec2{X: tc.x, Y: tc.y}); got != tc.want {
			t.Errorf("TestPoint(%g, %g) = %t, want %t", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestIsConvex(t *testing.T) {
	f := NewFlattener()
	circle := slices.Clone(f.Polygons(circlePath(32, 32, 20))[0])

	cases := []struct {
		name  string
		verts []vec.Vec2
		want  bool
	}{
		{"triangle", []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}, true},
		{"square", rectangle(0, 0, 10, 10), true},
		{"square_reversed", []vec.Vec2{{X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}, true},
		{"collinear", []vec.Vec2{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, true},
		{"repeated", []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}, true},
		{"circle", circle, true},
		{"u_shape", f.Polygons(uPath())[0], false},
		{"pentagram", []vec.Vec2{
			{X: 0, Y: -10}, {X: 5.88, Y: 8.09}, {X: -9.51, Y: -3.09},
			{X: 9.51, Y: -3.09}, {X: -5.88, Y: 8.09},
		}, false},
		{"arrow", []vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 0, Y: 10}, {X: 3, Y: 5}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isConvex(tc.verts); got != tc.want {
				t.Errorf("isConvex = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestConvexHull(t *testing.T) {
	f := NewFlattener()
	hull := convexHull(f.Polygons(uPath())[0])

	want := []vec.Vec2{{X: 10, Y: 10}, {X: 10, Y: 50}, {X: 50, Y: 50}, {X: 50, Y: 10}}
	if len(hull) != len(want) {
		t.Fatalf("got %v, want %v", hull, want)
	}
	for _, v := range want {
		if !slices.Contains(hull, v) {
			t.Errorf("hull %v does not contain %v", hull, v)
		}
	}
	if !isConvex(hull) {
		t.Error("hull is not convex")
	}
}

// circlePath approximates a circle by four cubic Bézier curves.
func circlePath(cx, cy, r float64) *path.Data {
	const kappa = 0.5522847498
	k := r * kappa
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

	return (&path.Data{}).
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
		Close()
}
