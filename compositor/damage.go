// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import "github.com/gogpu/ggscroll/geom"

// maxDirtyRects is the threshold after which damage collapses to a full
// redraw.
const maxDirtyRects = 16

// Damage accumulates window regions that need repainting.
type Damage struct {
	rects []geom.Rect
	full  bool
}

// Invalidate marks r as needing redraw. Empty rectangles are ignored.
// More than maxDirtyRects rectangles switch to full redraw.
func (d *Damage) Invalidate(r geom.Rect) {
	if d.full || r.IsEmpty() {
		return
	}
	d.rects = append(d.rects, r)
	if len(d.rects) > maxDirtyRects {
		d.InvalidateAll()
	}
}

// InvalidateAll requests a full redraw.
func (d *Damage) InvalidateAll() {
	d.full = true
	d.rects = d.rects[:0]
}

// Rects returns the dirty rectangles, or nil in full-redraw mode.
// The returned slice must not be modified.
func (d *Damage) Rects() []geom.Rect {
	if d.full {
		return nil
	}
	return d.rects
}

// NeedsFullRedraw reports whether everything must be repainted.
func (d *Damage) NeedsFullRedraw() bool {
	return d.full
}

// IsDirty reports whether anything needs repainting.
func (d *Damage) IsDirty() bool {
	return d.full || len(d.rects) > 0
}

// Clear resets the damage after a repaint.
func (d *Damage) Clear() {
	d.rects = d.rects[:0]
	d.full = false
}
