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

// Command cbufdump replays all scenes and writes the final state of each
// coverage buffer as a PDF file and as a PNG image.  Visible spans are
// shown in white on a black background in the PDF, and as coloured lines
// in the PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/cbuffer"
	"seehuhn.de/go/cbuffer/scenes"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"
)

func main() {
	outDir := flag.String("o", "debug", "output directory")
	verbose := flag.Bool("v", false, "log the span lists")
	flag.Parse()

	if *verbose {
		cbuffer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		panic(err)
	}

	f := cbuffer.NewFlattener()
	for _, category := range slices.Sorted(maps.Keys(scenes.All)) {
		for _, sc := range scenes.All[category] {
			name := category + "_" + sc.Name

			b := sc.NewBuffer()
			sc.Run(b, f, func(i int, got, want bool) {
				if got != want {
					fmt.Fprintf(os.Stderr, "%s: step %d: got %t, want %t\n", name, i, got, want)
				}
			})
			b.Dump()

			if err := writePDF(b, filepath.Join(*outDir, name+".pdf")); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := writePNG(b, filepath.Join(*outDir, name+".png")); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

// writePDF draws every visible span as a white rectangle.
func writePDF(b *cbuffer.Buffer, pdfPath string) error {
	bounds := b.Bounds()
	width := bounds.URx - bounds.LLx
	height := bounds.URy - bounds.LLy

	// Page size in points (1 point = 1 pixel at 72 DPI)
	paper := &pdf.Rectangle{
		URx: width,
		URy: height,
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(pdfcolor.DeviceGray(0))
	page.Rectangle(0, 0, width, height)
	page.Fill()

	// PDF origin is bottom-left; device space is top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, -bounds.LLx, height + bounds.LLy})

	page.SetFillColor(pdfcolor.DeviceGray(1))
	if b.SpanCount() > 0 {
		for y := int(bounds.LLy); y < int(bounds.URy); y++ {
			for startX, endX := range b.Spans(y) {
				page.Rectangle(float64(startX), float64(y), float64(endX-startX+1), 1)
			}
		}
		page.Fill()
	}

	return page.Close()
}

// writePNG draws the visible spans using cbuffer.ImageDrawer.
func writePNG(b *cbuffer.Buffer, pngPath string) (err error) {
	bounds := b.Bounds()
	img := image.NewRGBA(image.Rect(
		int(bounds.LLx), int(bounds.LLy), int(bounds.URx), int(bounds.URy)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	b.GfxDump(cbuffer.NewImageDrawer(img))

	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
