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

package cbuffer_test

import (
	"image"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"seehuhn.de/go/cbuffer"
	"seehuhn.de/go/cbuffer/scenes"
)

// TestScenes runs all scenes and compares the results of the individual
// steps with the expected values.  For failing scenes, an image of the
// final buffer state is written to the debug/ directory.
func TestScenes(t *testing.T) {
	f := cbuffer.NewFlattener()
	for _, category := range slices.Sorted(maps.Keys(scenes.All)) {
		for _, s := range scenes.All[category] {
			name := category + "_" + s.Name
			t.Run(name, func(t *testing.T) {
				b := s.NewBuffer()
				s.Run(b, f, func(i int, got, want bool) {
					if got != want {
						t.Errorf("step %d: got %t, want %t", i, got, want)
					}
				})
				if err := b.Validate(); err != nil {
					t.Error(err)
				}
				if t.Failed() {
					writeDebugImage(t, name, b)
				}
			})
		}
	}
}

// TestScenesRepeat checks that running a scene again after Initialize
// gives the same results and does not grow the buffer's memory.
func TestScenesRepeat(t *testing.T) {
	f := cbuffer.NewFlattener()
	for _, category := range slices.Sorted(maps.Keys(scenes.All)) {
		for _, s := range scenes.All[category] {
			t.Run(category+"_"+s.Name, func(t *testing.T) {
				b := s.NewBuffer()
				s.Run(b, f, nil)
				first := b.Mask()

				b.Initialize()
				s.Run(b, f, func(i int, got, want bool) {
					if got != want {
						t.Errorf("second run, step %d: got %t, want %t", i, got, want)
					}
				})
				if !slices.Equal(first.Pix, b.Mask().Pix) {
					t.Error("second run gives a different buffer")
				}
			})
		}
	}
}

func writeDebugImage(t *testing.T, name string, b *cbuffer.Buffer) {
	t.Helper()
	os.MkdirAll("debug", 0755)

	img := image.NewRGBA(b.Mask().Bounds())
	b.GfxDump(cbuffer.NewImageDrawer(img))

	fname := filepath.Join("debug", name+".png")
	f, err := os.Create(fname)
	if err != nil {
		t.Log(err)
		return
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		t.Log(err)
		return
	}
	t.Logf("buffer image written to %s", fname)
}
