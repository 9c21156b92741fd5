// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scroll

import (
	"time"

	"github.com/gogpu/ggscroll/geom"
)

// Source classifies what moved a scroll offset.
type Source uint8

const (
	// SourceUser covers wheel, gesture and scrollbar input.
	SourceUser Source = iota
	// SourceProgrammatic covers ScrollTo/ScrollBy and scroll-into-view.
	SourceProgrammatic
)

// String returns the source name.
func (s Source) String() string {
	if s == SourceProgrammatic {
		return "Programmatic"
	}
	return "User"
}

// animation is an in-flight smooth scroll.
type animation struct {
	start    time.Time
	duration time.Duration
	from     geom.Point
	target   geom.Point
	easing   Easing
}

// State is the scroll state of one scrollable node.
type State struct {
	// Offset is the current scroll position.
	Offset geom.Point

	// Container is the visible viewport rectangle from layout.
	Container geom.Rect

	// Content is the laid-out content size.
	Content geom.Size

	// Virtual is an optional pretend content size used by virtualized
	// content; zero means "not set".
	Virtual geom.Size

	// LastActivity is the time of the last offset change.
	LastActivity time.Time

	previous geom.Point
	source   Source
	anim     *animation
}

// ScrollSize returns the size used for clamping and scrollbar geometry:
// the componentwise maximum of Content and Virtual.
func (s *State) ScrollSize() geom.Size {
	return s.Content.Max(s.Virtual)
}

// MaxOffset returns the largest valid offset on each axis.
func (s *State) MaxOffset() geom.Point {
	size := s.ScrollSize()
	return geom.Pt(
		MaxOffset(size.Width, s.Container.Size.Width),
		MaxOffset(size.Height, s.Container.Size.Height),
	)
}

// Clamp limits p to the valid offset range.
func (s *State) Clamp(p geom.Point) geom.Point {
	m := s.MaxOffset()
	return geom.Pt(geom.Clamp(p.X, 0, m.X), geom.Clamp(p.Y, 0, m.Y))
}

// Target returns the destination of an in-flight smooth scroll.
func (s *State) Target() (geom.Point, bool) {
	if s.anim == nil {
		return geom.Point{}, false
	}
	return s.anim.target, true
}

// Animating reports whether a smooth scroll is in flight.
func (s *State) Animating() bool {
	return s.anim != nil
}

// NeedsScrollbar reports whether the content overflows on the axis.
func (s *State) NeedsScrollbar(o Orientation) bool {
	return o.Extent(s.ScrollSize()) > o.Extent(s.Container.Size)
}
