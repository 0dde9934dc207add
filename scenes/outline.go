package scenes

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
)

// kappa is the control point distance for approximating a quarter circle
// of radius 1 by a cubic Bézier curve.
const kappa = 0.5522847498

var outlineScenes = []Scene{
	{
		Name:   "square_path",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Outline{Path: square(10, 10, 30, 30), Want: true},
			Point{At: pt(20, 20), Want: false},
			Point{At: pt(5, 5), Want: true},
			Outline{Path: square(12, 12, 28, 28), Want: false},
		},
	},
	{
		Name:   "scaled_path",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Outline{
				Path: square(0, 0, 1, 1),
				CTM:  matrix.Matrix{20, 0, 0, 20, 40, 40},
				Want: true,
			},
			Point{At: pt(50, 50), Want: false},
			Point{At: pt(39.5, 50), Want: true},
			Point{At: pt(60.5, 50), Want: true},
		},
	},
	{
		Name:   "circle_path",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Outline{Path: circle(32, 32, 20), Want: true},
			Point{At: pt(32, 32), Want: false},
			Point{At: pt(32, 5), Want: true},
			Point{At: pt(50, 50), Want: true},
			Outline{Path: circle(32, 32, 10), Want: false},
		},
	},
	{
		Name:   "two_subpaths",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Outline{Path: twoSquares(), Want: true},
			Point{At: pt(15, 15), Want: false},
			Point{At: pt(45, 45), Want: false},
			Point{At: pt(30, 30), Want: true},
		},
	},
	{
		Name:   "two_subpaths_portal",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Outline{Path: twoSquares(), Negative: true, Want: true},
			Point{At: pt(15, 15), Want: true},
			Point{At: pt(45, 45), Want: true},
			Point{At: pt(30, 30), Want: false},
			Point{At: pt(20.5, 15), Want: false},
			Test{Polygon: rectangle(0, 0, 64, 64), Want: true},
			Insert{Polygon: rectangle(5, 5, 60, 60), Want: true},
			Test{Polygon: rectangle(0, 0, 64, 64), Want: false},
		},
	},
	{
		Name:   "concave_path",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Outline{Path: uShape(), Want: false},
			Point{At: pt(30, 25), Want: true},
			Point{At: pt(15, 45), Want: true},
		},
	},
	{
		Name:   "portal_path",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Outline{Path: circle(32, 32, 20), Negative: true, Want: true},
			Point{At: pt(32, 32), Want: true},
			Point{At: pt(2, 2), Want: false},
		},
	},
}

// square builds a closed axis-aligned rectangular path.
func square(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		LineTo(pt(x2, y1)).
		LineTo(pt(x2, y2)).
		LineTo(pt(x1, y2)).
		Close()
}

// twoSquares builds a path with two disjoint square subpaths.
func twoSquares() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(10, 10)).LineTo(pt(20, 10)).LineTo(pt(20, 20)).LineTo(pt(10, 20)).Close().
		MoveTo(pt(40, 40)).LineTo(pt(50, 40)).LineTo(pt(50, 50)).LineTo(pt(40, 50)).Close()
}

// uShape builds a non-convex outline, open towards the top.
func uShape() *path.Data {
	return (&path.Data{}).
		MoveTo(pt(10, 10)).
		LineTo(pt(20, 10)).
		LineTo(pt(20, 40)).
		LineTo(pt(40, 40)).
		LineTo(pt(40, 10)).
		LineTo(pt(50, 10)).
		LineTo(pt(50, 50)).
		LineTo(pt(10, 50)).
		Close()
}

// circle builds an approximate circle using four cubic Bézier curves.
func circle(cx, cy, r float64) *path.Data {
	k := r * kappa

	return (&path.Data{}).
		MoveTo(pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy-k), pt(cx+k, cy-r), pt(cx, cy-r)).
		CubeTo(pt(cx-k, cy-r), pt(cx-r, cy-k), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy+k), pt(cx-k, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx+k, cy+r), pt(cx+r, cy+k), pt(cx+r, cy)).
		Close()
}
