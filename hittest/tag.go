// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hittest maps pointer input on scrollbars to scroll offsets.
//
// Hit-testable primitives carry a Tag at paint time. The compositor answers
// hit tests with those tags, so hit testing always agrees with what was
// painted, including clips, transforms and z-order.
package hittest

import (
	"fmt"

	"github.com/gogpu/ggscroll/node"
	"github.com/gogpu/ggscroll/scroll"
)

// Marker is the type of a tag, stored in the high byte of Tag.Kind:
//
//	0x01: DOM node
//	0x02: scrollbar component
type Marker uint8

const (
	MarkerNone      Marker = 0x00 // not hit-testable
	MarkerNode      Marker = 0x01 // DOM node
	MarkerScrollbar Marker = 0x02 // scrollbar component
)

// Component identifies a scrollbar part, stored in the low byte of
// Tag.Kind.
type Component uint8

const (
	VerticalTrack   Component = 0x00 // vertical scrollbar track
	VerticalThumb   Component = 0x01 // vertical scrollbar thumb
	HorizontalTrack Component = 0x02 // horizontal scrollbar track
	HorizontalThumb Component = 0x03 // horizontal scrollbar thumb
)

// ComponentFor returns the thumb or track component of orientation o.
func ComponentFor(o scroll.Orientation, thumb bool) Component {
	c := VerticalTrack
	if o == scroll.Horizontal {
		c = HorizontalTrack
	}
	if thumb {
		c |= 0x01
	}
	return c
}

// IsThumb reports whether c is a thumb.
func (c Component) IsThumb() bool { return c&0x01 != 0 }

// Orientation returns the scrollbar orientation c belongs to.
func (c Component) Orientation() scroll.Orientation {
	if c&0x02 != 0 {
		return scroll.Horizontal
	}
	return scroll.Vertical
}

// String returns the component name.
func (c Component) String() string {
	switch c {
	case VerticalTrack:
		return "VerticalTrack"
	case VerticalThumb:
		return "VerticalThumb"
	case HorizontalTrack:
		return "HorizontalTrack"
	case HorizontalThumb:
		return "HorizontalThumb"
	default:
		return fmt.Sprintf("Component(0x%02X)", uint8(c))
	}
}

// Tag is the identity attached to a hit-testable primitive. Item holds the
// owning node key packed as subtree<<32 | node.
type Tag struct {
	Item uint64
	Kind uint16
}

// NodeTag tags a node's own content.
func NodeTag(key node.Key) Tag {
	return Tag{Item: key.Pack(), Kind: uint16(MarkerNode) << 8}
}

// ScrollbarTag tags one scrollbar component of a node.
func ScrollbarTag(key node.Key, c Component) Tag {
	return Tag{Item: key.Pack(), Kind: uint16(MarkerScrollbar)<<8 | uint16(c)}
}

// Marker returns the tag type.
func (t Tag) Marker() Marker { return Marker(t.Kind >> 8) }

// Component returns the scrollbar component. Meaningful only for
// scrollbar tags.
func (t Tag) Component() Component { return Component(t.Kind & 0xFF) }

// Key returns the owning node.
func (t Tag) Key() node.Key { return node.Unpack(t.Item) }

// IsScrollbar reports whether t tags a scrollbar component.
func (t Tag) IsScrollbar() bool { return t.Marker() == MarkerScrollbar }

// IsNode reports whether t tags node content.
func (t Tag) IsNode() bool { return t.Marker() == MarkerNode }

// String returns a human-readable form of the tag.
func (t Tag) String() string {
	switch t.Marker() {
	case MarkerNode:
		return "Node(" + t.Key().String() + ")"
	case MarkerScrollbar:
		return "Scrollbar(" + t.Key().String() + ", " + t.Component().String() + ")"
	default:
		return fmt.Sprintf("Tag(0x%X, 0x%04X)", t.Item, t.Kind)
	}
}
