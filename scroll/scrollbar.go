// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scroll

import "github.com/gogpu/ggscroll/geom"

// Orientation selects the vertical or horizontal scrollbar of a node.
type Orientation uint8

const (
	// Vertical scrollbars sit on the right edge and scroll along Y.
	Vertical Orientation = iota
	// Horizontal scrollbars sit on the bottom edge and scroll along X.
	Horizontal
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Horizontal {
		return "Horizontal"
	}
	return "Vertical"
}

// Axis returns the component of p along the orientation's scroll axis.
func (o Orientation) Axis(p geom.Point) float32 {
	if o == Horizontal {
		return p.X
	}
	return p.Y
}

// Extent returns the component of s along the orientation's scroll axis.
func (o Orientation) Extent(s geom.Size) float32 {
	if o == Horizontal {
		return s.Width
	}
	return s.Height
}

// DefaultThickness is the scrollbar thickness in logical pixels.
const DefaultThickness float32 = 12

// Scrollbar is the derived geometry of one scrollbar of one node.
// It is a pure function of the node's scroll state.
type Scrollbar struct {
	// Visible is true iff content exceeds the container on this axis.
	Visible bool

	// Orientation of the scrollbar.
	Orientation Orientation

	// ThumbSizeRatio is container/content, in (0, 1].
	ThumbSizeRatio float32

	// ThumbPositionRatio is offset/maxOffset, in [0, 1] (0 if maxOffset is 0).
	ThumbPositionRatio float32

	// Thickness of the track across the scroll axis.
	Thickness float32

	// Track is the full track rectangle in the container's coordinate space.
	Track geom.Rect

	// Thumb is the thumb rectangle inside Track.
	Thumb geom.Rect

	// ContentExtent and ContainerExtent along the scroll axis.
	ContentExtent   float32
	ContainerExtent float32
}

// TrackExtent returns the track length along the scroll axis.
func (s Scrollbar) TrackExtent() float32 {
	return s.Orientation.Extent(s.Track.Size)
}

// ThumbOffset returns the thumb's distance from the track start.
func (s Scrollbar) ThumbOffset() float32 {
	return s.Orientation.Axis(s.Thumb.Origin) - s.Orientation.Axis(s.Track.Origin)
}

// ThumbTransform returns the translation that moves a thumb painted at the
// track start to its current position.
func (s Scrollbar) ThumbTransform() geom.Transform {
	if s.Orientation == Horizontal {
		return geom.Translation(s.ThumbOffset(), 0, 0)
	}
	return geom.Translation(0, s.ThumbOffset(), 0)
}

// MaxOffset returns the largest valid offset for the given sizes on one
// axis: max(0, content - container).
func MaxOffset(content, container float32) float32 {
	return max(0, content-container)
}

// ComputeScrollbar derives scrollbar geometry from the container rectangle,
// the content size (already including any virtual size) and the current
// offset. reserveCorner shortens the track by one thickness so that both
// scrollbars do not overlap in the bottom-right corner.
func ComputeScrollbar(container geom.Rect, content geom.Size, offset geom.Point, o Orientation, thickness float32, reserveCorner bool) Scrollbar {
	if thickness <= 0 {
		thickness = DefaultThickness
	}
	contentExt := o.Extent(content)
	containerExt := o.Extent(container.Size)

	sb := Scrollbar{
		Orientation:     o,
		ThumbSizeRatio:  1,
		Thickness:       thickness,
		ContentExtent:   contentExt,
		ContainerExtent: containerExt,
	}
	if contentExt <= containerExt || containerExt <= 0 {
		return sb
	}

	sb.Visible = true
	sb.ThumbSizeRatio = geom.Clamp(containerExt/contentExt, 0, 1)
	if maxOff := MaxOffset(contentExt, containerExt); maxOff > 0 {
		sb.ThumbPositionRatio = geom.Clamp(o.Axis(offset)/maxOff, 0, 1)
	}

	trackLen := containerExt
	if reserveCorner {
		trackLen = max(0, trackLen-thickness)
	}
	thumbLen := trackLen * sb.ThumbSizeRatio
	thumbStart := (trackLen - thumbLen) * sb.ThumbPositionRatio

	if o == Horizontal {
		sb.Track = geom.R(container.MinX(), container.MaxY()-thickness, trackLen, thickness)
		sb.Thumb = geom.R(sb.Track.MinX()+thumbStart, sb.Track.MinY(), thumbLen, thickness)
	} else {
		sb.Track = geom.R(container.MaxX()-thickness, container.MinY(), thickness, trackLen)
		sb.Thumb = geom.R(sb.Track.MinX(), sb.Track.MinY()+thumbStart, thickness, thumbLen)
	}
	return sb
}
