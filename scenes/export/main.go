// Command export writes the scene definitions to JSON, so that the scenes
// can be replayed by other implementations.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"flag"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/cbuffer/scenes"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func main() {
	outFile := flag.String("o", "testdata/scenes.json", "output file")
	flag.Parse()

	var out struct {
		Scenes []jsonScene `json:"scenes"`
	}

	for _, category := range slices.Sorted(maps.Keys(scenes.All)) {
		for _, sc := range scenes.All[category] {
			out.Scenes = append(out.Scenes, toJSON(category, sc))
		}
	}

	if err := os.MkdirAll(filepath.Dir(*outFile), 0755); err != nil {
		panic(err)
	}
	f, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonScene struct {
	Name   string     `json:"name"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Steps  []jsonStep `json:"steps"`
}

type jsonStep struct {
	Op       string        `json:"op"`
	Polygon  [][]float64   `json:"polygon,omitempty"`
	Path     []jsonSegment `json:"path,omitempty"`
	CTM      []float64     `json:"ctm,omitempty"`
	Negative bool          `json:"negative,omitempty"`
	Want     *bool         `json:"want,omitempty"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

func toJSON(category string, sc scenes.Scene) jsonScene {
	js := jsonScene{
		Name:   category + "_" + sc.Name,
		Width:  sc.Width,
		Height: sc.Height,
	}

	for _, step := range sc.Steps {
		var jstep jsonStep
		switch step := step.(type) {
		case scenes.Insert:
			jstep.Op = "insert"
			jstep.Polygon = pointsToJSON(step.Polygon)
			jstep.Negative = step.Negative
			jstep.Want = &step.Want
		case scenes.Test:
			jstep.Op = "test"
			jstep.Polygon = pointsToJSON(step.Polygon)
			jstep.Want = &step.Want
		case scenes.Point:
			jstep.Op = "point"
			jstep.Polygon = pointsToJSON([]vec.Vec2{step.At})
			jstep.Want = &step.Want
		case scenes.Outline:
			jstep.Op = "outline"
			jstep.Path = pathToJSON(step.Path)
			if step.CTM != (matrix.Matrix{}) {
				jstep.CTM = step.CTM[:]
			}
			jstep.Negative = step.Negative
			jstep.Want = &step.Want
		case scenes.Reset:
			jstep.Op = "reset"
		}
		js.Steps = append(js.Steps, jstep)
	}
	return js
}

func pointsToJSON(pts []vec.Vec2) [][]float64 {
	res := make([][]float64, len(pts))
	for i, pt := range pts {
		res[i] = []float64{pt.X, pt.Y}
	}
	return res
}

func pathToJSON(p *path.Data) []jsonSegment {
	var segs []jsonSegment
	coordIdx := 0
	for _, cmd := range p.Cmds {
		var seg jsonSegment
		n := 0
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd, n = "M", 1
		case path.CmdLineTo:
			seg.Cmd, n = "L", 1
		case path.CmdQuadTo:
			seg.Cmd, n = "Q", 2
		case path.CmdCubeTo:
			seg.Cmd, n = "C", 3
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		seg.Pts = pointsToJSON(p.Coords[coordIdx : coordIdx+n])
		coordIdx += n
		segs = append(segs, seg)
	}
	return segs
}
