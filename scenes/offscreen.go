package scenes

var offscreenScenes = []Scene{
	{
		Name:   "left",
		Width:  100,
		Height: 50,
		Steps: []Step{
			Insert{Polygon: rectangle(-50, 10, -10, 20), Want: false},
			Test{Polygon: rectangle(-50, 10, -10, 20), Want: false},
			Point{At: pt(0.5, 15), Want: true},
		},
	},
	{
		Name:   "straddle",
		Width:  100,
		Height: 50,
		Steps: []Step{
			Insert{Polygon: rectangle(-50, 10, 20, 20), Want: true},
			Point{At: pt(0.5, 15), Want: false},
			Point{At: pt(19.5, 15), Want: false},
			Point{At: pt(20.5, 15), Want: true},
			Point{At: pt(-5, 15), Want: false},
		},
	},
	{
		Name:   "below",
		Width:  100,
		Height: 50,
		Steps: []Step{
			Insert{Polygon: rectangle(10, 40, 20, 80), Want: true},
			Point{At: pt(15, 45), Want: false},
			Point{At: pt(15, 39.5), Want: true},
		},
	},
	{
		Name:   "above",
		Width:  100,
		Height: 50,
		Steps: []Step{
			Insert{Polygon: rectangle(10, -30, 20, -5), Want: false},
			Test{Polygon: rectangle(10, -30, 20, -5), Want: false},
			Point{At: pt(15, 0.5), Want: true},
		},
	},
	{
		Name:   "right",
		Width:  100,
		Height: 50,
		Steps: []Step{
			Insert{Polygon: triangle(90, 10, 150, 30, 90, 40), Want: true},
			Point{At: pt(95, 30), Want: false},
			Point{At: pt(85, 30), Want: true},
		},
	},
	{
		Name:   "huge",
		Width:  100,
		Height: 50,
		Steps: []Step{
			Insert{Polygon: rectangle(-1e6, -1e6, 1e6, 1e6), Want: true},
			Test{Polygon: rectangle(0, 0, 10, 10), Want: false},
			Insert{Polygon: rectangle(20, 20, 30, 30), Want: false},
		},
	},
}
