package scenes

var basicScenes = []Scene{
	{
		Name:   "full_cover",
		Width:  100,
		Height: 10,
		Steps: []Step{
			Insert{Polygon: rectangle(0, 0, 100, 10), Want: true},
			Test{Polygon: rectangle(10, 2, 20, 5), Want: false},
			Insert{Polygon: triangle(20, 1, 60, 1, 40, 8), Want: false},
			Point{At: pt(50, 5), Want: false},
		},
	},
	{
		Name:   "disjoint",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Insert{Polygon: rectangle(10, 10, 30, 30), Want: true},
			Insert{Polygon: rectangle(60, 50, 90, 80), Want: true},
			Insert{Polygon: rectangle(15, 15, 25, 25), Want: false},
			Test{Polygon: rectangle(15, 15, 25, 25), Want: false},
			Test{Polygon: rectangle(25, 25, 40, 40), Want: true},
			Point{At: pt(5, 5), Want: true},
			Point{At: pt(20, 20), Want: false},
			Point{At: pt(75.5, 79.5), Want: false},
			Point{At: pt(75.5, 80.5), Want: true},
		},
	},
	{
		Name:   "split",
		Width:  100,
		Height: 20,
		Steps: []Step{
			Insert{Polygon: rectangle(20, 0, 30, 20), Want: true},
			Insert{Polygon: rectangle(50, 0, 60, 20), Want: true},
			Test{Polygon: rectangle(31, 5, 49, 8), Want: true},
			Test{Polygon: rectangle(20, 5, 30, 8), Want: false},
			Point{At: pt(29.5, 10), Want: false},
			Point{At: pt(30.5, 10), Want: true},
			Insert{Polygon: rectangle(0, 0, 100, 20), Want: true},
			Test{Polygon: rectangle(40, 5, 45, 10), Want: false},
		},
	},
	{
		Name:   "triangle",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Insert{Polygon: triangle(10, 50, 32, 10, 54, 50), Want: true},
			Point{At: pt(32, 40), Want: false},
			Point{At: pt(12, 12), Want: true},
			Point{At: pt(32, 5), Want: true},
			Point{At: pt(32, 55), Want: true},
			Test{Polygon: triangle(10, 50, 32, 10, 54, 50), Want: false},
			Test{Polygon: triangle(20, 40, 32, 20, 44, 40), Want: false},
			Test{Polygon: rectangle(0, 0, 64, 9), Want: true},
		},
	},
	{
		Name:   "reset",
		Width:  50,
		Height: 50,
		Steps: []Step{
			Insert{Polygon: rectangle(0, 0, 50, 50), Want: true},
			Point{At: pt(25, 25), Want: false},
			Reset{},
			Point{At: pt(25, 25), Want: true},
			Test{Polygon: rectangle(10, 10, 20, 20), Want: true},
			Insert{Polygon: rectangle(10, 10, 20, 20), Want: true},
		},
	},
	{
		Name:   "front_to_back",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Insert{Polygon: rectangle(0, 40, 100, 60), Want: true},
			Test{Polygon: rectangle(30, 45, 70, 55), Want: false},
			Insert{Polygon: rectangle(30, 45, 70, 55), Want: false},
			Test{Polygon: rectangle(30, 30, 70, 50), Want: true},
			Insert{Polygon: rectangle(30, 30, 70, 50), Want: true},
			Point{At: pt(50, 35), Want: false},
			Point{At: pt(20, 35), Want: true},
		},
	},
}
