// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scroll

import (
	"time"

	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/node"
)

// Alignment selects where a target lands inside the viewport on one axis.
type Alignment uint8

const (
	// AlignNearest scrolls the minimum amount to make the target visible.
	AlignNearest Alignment = iota
	// AlignStart aligns the target start with the viewport start.
	AlignStart
	// AlignCenter centers the target in the viewport.
	AlignCenter
	// AlignEnd aligns the target end with the viewport end.
	AlignEnd
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "Start"
	case AlignCenter:
		return "Center"
	case AlignEnd:
		return "End"
	default:
		return "Nearest"
	}
}

// Behavior selects between an instant jump and a smooth scroll.
type Behavior uint8

const (
	// Instant jumps to the target offset.
	Instant Behavior = iota
	// Smooth animates over SmoothIntoViewDuration with EaseOut.
	Smooth
)

// SmoothIntoViewDuration is the duration of a Smooth scroll-into-view.
const SmoothIntoViewDuration = 300 * time.Millisecond

// AxisDelta returns the offset change needed on one axis to place the span
// [targetStart, targetStart+targetSize) inside the viewport
// [viewStart, viewStart+viewSize) according to align.
func AxisDelta(targetStart, targetSize, viewStart, viewSize float32, align Alignment) float32 {
	targetEnd := targetStart + targetSize
	viewEnd := viewStart + viewSize
	switch align {
	case AlignStart:
		return targetStart - viewStart
	case AlignEnd:
		return targetEnd - viewEnd
	case AlignCenter:
		return (targetStart + targetSize/2) - (viewStart + viewSize/2)
	}
	switch {
	case targetStart < viewStart:
		return targetStart - viewStart
	case targetEnd > viewEnd:
		if targetSize > viewSize {
			return targetStart - viewStart
		}
		return targetEnd - viewEnd
	}
	return 0
}

// ScrollRectIntoView scrolls a node so that target, given in the node's
// content coordinates, becomes visible. block applies to the vertical axis
// and inline to the horizontal one. Axes without overflow are left alone.
// It reports whether a scroll was started or applied.
func (m *Manager) ScrollRectIntoView(key node.Key, target geom.Rect, block, inline Alignment, behavior Behavior, now time.Time) bool {
	s, ok := m.states[key]
	if !ok {
		return false
	}
	view := s.Offset
	if t, ok := s.Target(); ok {
		view = t
	}
	var d geom.Point
	if s.NeedsScrollbar(Horizontal) {
		d.X = AxisDelta(target.Origin.X, target.Size.Width, view.X, s.Container.Size.Width, inline)
	}
	if s.NeedsScrollbar(Vertical) {
		d.Y = AxisDelta(target.Origin.Y, target.Size.Height, view.Y, s.Container.Size.Height, block)
	}
	dest := s.Clamp(view.Add(d))
	if dest.ApproxEqual(view, offsetEpsilon) {
		return false
	}
	if behavior == Smooth {
		m.ScrollTo(key, dest, SmoothIntoViewDuration, EaseOut, now)
	} else {
		m.ScrollTo(key, dest, 0, Linear, now)
	}
	return true
}
