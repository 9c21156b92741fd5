// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scroll

import "github.com/gogpu/ggscroll/geom"

// DeltaMode is the unit of a raw scroll delta reported by the platform.
type DeltaMode uint8

const (
	// DeltaPixel deltas are already in logical pixels.
	DeltaPixel DeltaMode = iota
	// DeltaLine deltas count text lines (mouse wheel detents on most systems).
	DeltaLine
	// DeltaPage deltas count viewport pages.
	DeltaPage
)

// DefaultLineHeight is the pixel distance of one DeltaLine unit.
const DefaultLineHeight float32 = 40

// NormalizeDelta converts a raw delta to logical pixels. page is the
// container size used for DeltaPage; lineHeight <= 0 selects
// DefaultLineHeight. Non-finite components become zero.
func NormalizeDelta(dx, dy float32, mode DeltaMode, lineHeight float32, page geom.Size) geom.Point {
	if !geom.IsFinite(dx) {
		dx = 0
	}
	if !geom.IsFinite(dy) {
		dy = 0
	}
	switch mode {
	case DeltaLine:
		if lineHeight <= 0 {
			lineHeight = DefaultLineHeight
		}
		return geom.Pt(dx*lineHeight, dy*lineHeight)
	case DeltaPage:
		return geom.Pt(dx*page.Width, dy*page.Height)
	default:
		return geom.Pt(dx, dy)
	}
}
