package scenes

import "seehuhn.de/go/geom/vec"

var negativeScenes = []Scene{
	{
		Name:   "hole",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Insert{Polygon: rectangle(20, 20, 60, 60), Negative: true, Want: true},
			Point{At: pt(30, 30), Want: true},
			Point{At: pt(59.5, 59.5), Want: true},
			Point{At: pt(10, 10), Want: false},
			Point{At: pt(70, 30), Want: false},
			Point{At: pt(30, 70), Want: false},
			Point{At: pt(60.5, 30), Want: false},
			Test{Polygon: rectangle(0, 0, 10, 10), Want: false},
			Test{Polygon: rectangle(30, 30, 40, 40), Want: true},
		},
	},
	{
		Name:   "full_screen_hole",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Insert{Polygon: rectangle(0, 0, 100, 100), Negative: true, Want: false},
			Point{At: pt(50, 50), Want: true},
			Point{At: pt(0.5, 0.5), Want: true},
			Point{At: pt(99.5, 99.5), Want: true},
		},
	},
	{
		Name:   "portal_then_wall",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Insert{Polygon: rectangle(20, 20, 60, 60), Negative: true, Want: true},
			Insert{Polygon: rectangle(0, 0, 100, 100), Want: true},
			Test{Polygon: rectangle(10, 10, 90, 90), Want: false},
		},
	},
	{
		Name:   "nested_portal",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Insert{Polygon: rectangle(10, 10, 90, 90), Negative: true, Want: true},
			Insert{Polygon: rectangle(30, 30, 70, 70), Negative: true, Want: true},
			Point{At: pt(20, 20), Want: false},
			Point{At: pt(50, 50), Want: true},
			Point{At: pt(5, 5), Want: false},
		},
	},
	{
		Name:   "diamond_hole",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Insert{
				Polygon:  []vec.Vec2{pt(50, 10), pt(90, 50), pt(50, 90), pt(10, 50)},
				Negative: true,
				Want:     true,
			},
			Point{At: pt(50, 50), Want: true},
			Point{At: pt(15, 15), Want: false},
			Point{At: pt(85, 85), Want: false},
			Point{At: pt(50, 5), Want: false},
		},
	},
}
