// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"image"
	"image/draw"
	"io"

	"github.com/gogpu/gg"
)

// Snapshot paints the retained scene into a width x height image, applying
// the current dynamic properties and scroll offsets.
func (s *Software) Snapshot(width, height int) image.Image {
	dc := s.paint(width, height)
	defer dc.Close()
	src := dc.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}

// WritePNG paints the retained scene and encodes it as PNG.
func (s *Software) WritePNG(w io.Writer, width, height int) error {
	dc := s.paint(width, height)
	defer dc.Close()
	return dc.EncodePNG(w)
}

func (s *Software) paint(width, height int) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.RGBA{R: 1, G: 1, B: 1, A: 1})
	for _, p := range s.prims {
		alpha := p.Color.A * float64(s.opacity(p))
		if alpha <= 0 {
			continue
		}
		b := s.windowBounds(p)
		if b.IsEmpty() {
			continue
		}
		dc.SetRGBA(p.Color.R, p.Color.G, p.Color.B, alpha)
		dc.DrawRectangle(float64(b.MinX()), float64(b.MinY()), float64(b.Size.Width), float64(b.Size.Height))
		if err := dc.Fill(); err != nil {
			s.logger.Warn("compositor: snapshot fill failed", "err", err)
		}
	}
	return dc
}
