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
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"
)

// Dump logs the visible spans of all rows, and of the vertical line, at
// debug level.  Fully covered rows are skipped.
func (b *Buffer) Dump() {
	log := Logger()
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	log.Debug("cbuffer",
		"bounds", b.Bounds(),
		"spans", b.SpanCount(),
		"pool", b.pool.Len(),
		"free", b.pool.Free())
	b.vert.Dump(&b.pool, -1)
	for i := range b.lines {
		if !b.lines[i].Occluded() {
			b.lines[i].Dump(&b.pool, b.startY+i)
		}
	}
}

// Drawer is the drawing surface used by [Buffer.GfxDump].
type Drawer interface {
	// DrawLine draws a line of width one pixel between the given points.
	DrawLine(x1, y1, x2, y2 float64, c color.Color)
}

// dumpPalette is cycled through by GfxDump, so that neighbouring spans
// can be told apart.
var dumpPalette = []color.RGBA{
	colornames.Red,
	colornames.Lime,
	colornames.Blue,
	colornames.Yellow,
	colornames.Magenta,
	colornames.Cyan,
}

// GfxDump draws all visible spans as horizontal lines.  Each span is
// drawn through the centres of its pixels, and consecutive spans of a row
// use different colours.
func (b *Buffer) GfxDump(d Drawer) {
	for i := range b.lines {
		y := float64(b.startY+i) + 0.5
		k := i
		for startX, endX := range b.lines[i].All(&b.pool) {
			c := dumpPalette[k%len(dumpPalette)]
			d.DrawLine(float64(startX), y, float64(endX+1), y, c)
			k++
		}
	}
}

// ImageDrawer implements [Drawer] on top of an image.
type ImageDrawer struct {
	Dst draw.Image

	r *vector.Rasterizer
}

// NewImageDrawer returns a Drawer which paints into dst.
func NewImageDrawer(dst draw.Image) *ImageDrawer {
	return &ImageDrawer{Dst: dst}
}

// DrawLine implements the [Drawer] interface.  The line is drawn as a
// rectangle of width 1 around the segment.  Coordinates are relative to
// the origin of the image coordinate system.
func (d *ImageDrawer) DrawLine(x1, y1, x2, y2 float64, c color.Color) {
	// unit direction of the line, and half of the unit normal
	ux, uy := 1.0, 0.0
	if l := math.Hypot(x2-x1, y2-y1); l > 0 {
		ux, uy = (x2-x1)/l, (y2-y1)/l
	} else {
		// a single point becomes a unit square
		x1 -= 0.5
		x2 += 0.5
	}
	nx, ny := -uy/2, ux/2
	quad := [4][2]float64{
		{x1 + nx, y1 + ny},
		{x2 + nx, y2 + ny},
		{x2 - nx, y2 - ny},
		{x1 - nx, y1 - ny},
	}

	// Only the pixels near the line are rasterised.  Lines which leave
	// the image use the whole image, so that the rasteriser never sees
	// coordinates outside its area.
	bounds := d.Dst.Bounds()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range quad {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	area := bounds
	if minX >= float64(bounds.Min.X) && minY >= float64(bounds.Min.Y) &&
		maxX <= float64(bounds.Max.X) && maxY <= float64(bounds.Max.Y) {
		area = image.Rect(
			int(math.Floor(minX)), int(math.Floor(minY)),
			int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	}
	w, h := area.Dx(), area.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	if d.r == nil {
		d.r = vector.NewRasterizer(w, h)
	} else {
		d.r.Reset(w, h)
	}

	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	pt := func(p [2]float64) (float32, float32) {
		return float32(p[0] - ox), float32(p[1] - oy)
	}
	d.r.MoveTo(pt(quad[0]))
	for _, p := range quad[1:] {
		d.r.LineTo(pt(p))
	}
	d.r.ClosePath()
	d.r.Draw(d.Dst, area, image.NewUniform(c), image.Point{})
}

// Mask returns an image of the buffer, with visible pixels set to 255
// and covered pixels set to 0.  The image bounds equal the buffer bounds.
func (b *Buffer) Mask() *image.Gray {
	img := image.NewGray(image.Rect(b.startX, b.startY, b.endX+1, b.startY+b.numLines))
	for i := range b.lines {
		row := img.Pix[i*img.Stride:]
		for startX, endX := range b.lines[i].All(&b.pool) {
			for x := startX; x <= endX; x++ {
				row[x-b.startX] = 255
			}
		}
	}
	return img
}
