package scenes

import "seehuhn.de/go/geom/vec"

var degenerateScenes = []Scene{
	{
		Name:   "two_points",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Insert{Polygon: []vec.Vec2{pt(10, 10), pt(10, 10)}, Want: false},
			Test{Polygon: []vec.Vec2{pt(10, 10), pt(10, 10)}, Want: false},
			Point{At: pt(10, 10), Want: true},
		},
	},
	{
		Name:   "near_points",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Insert{Polygon: triangle(10, 10, 10.0005, 10, 10, 10.0003), Want: false},
			Test{Polygon: triangle(10, 10, 10.0005, 10, 10, 10.0003), Want: false},
			Point{At: pt(10, 10), Want: true},
		},
	},
	{
		Name:   "horizontal_line",
		Width:  100,
		Height: 20,
		Steps: []Step{
			Insert{Polygon: triangle(10, 10, 50, 10, 90, 10), Want: false},
			Test{Polygon: triangle(10, 10, 50, 10, 90, 10), Want: false},
			Point{At: pt(50, 10.5), Want: true},
		},
	},
	{
		Name:   "thin_sliver",
		Width:  100,
		Height: 20,
		Steps: []Step{
			Insert{Polygon: rectangle(10, 5, 10.2, 15), Want: false},
			Point{At: pt(10.1, 10), Want: true},
		},
	},
}
