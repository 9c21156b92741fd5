// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucache

import (
	"cmp"
	"fmt"

	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/node"
)

// Kind names an animatable property of a node.
type Kind uint8

const (
	// CSSOpacity is an animated node opacity.
	CSSOpacity Kind = iota
	// CSSTransform is an animated node transform.
	CSSTransform
	// VerticalScrollbarOpacity is the fade opacity of a vertical scrollbar.
	VerticalScrollbarOpacity
	// HorizontalScrollbarOpacity is the fade opacity of a horizontal scrollbar.
	HorizontalScrollbarOpacity
	// VerticalThumbTransform positions a vertical thumb along its track.
	VerticalThumbTransform
	// HorizontalThumbTransform positions a horizontal thumb along its track.
	HorizontalThumbTransform
)

var kindNames = [...]string{
	CSSOpacity:                 "CSSOpacity",
	CSSTransform:               "CSSTransform",
	VerticalScrollbarOpacity:   "VerticalScrollbarOpacity",
	HorizontalScrollbarOpacity: "HorizontalScrollbarOpacity",
	VerticalThumbTransform:     "VerticalThumbTransform",
	HorizontalThumbTransform:   "HorizontalThumbTransform",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsOpacity reports whether values of this kind are opacities.
func (k Kind) IsOpacity() bool {
	return k == CSSOpacity || k == VerticalScrollbarOpacity || k == HorizontalScrollbarOpacity
}

// Identity is the semantic key of a cached value.
type Identity struct {
	Key  node.Key
	Kind Kind
}

// String returns e.g. "0:7/VerticalScrollbarOpacity".
func (id Identity) String() string {
	return id.Key.String() + "/" + id.Kind.String()
}

// Compare orders identities by node, then kind.
func (id Identity) Compare(o Identity) int {
	if c := id.Key.Compare(o.Key); c != 0 {
		return c
	}
	return cmp.Compare(id.Kind, o.Kind)
}

// OpaqueKey is the compositor binding of one value. Zero is never
// allocated.
type OpaqueKey uint64

// Value is an opacity or a transform, depending on the Kind it belongs to.
type Value struct {
	Opacity   float32
	Transform geom.Transform
}

// Opacity returns an opacity value.
func Opacity(v float32) Value {
	return Value{Opacity: geom.Clamp(v, 0, 1)}
}

// Transform returns a transform value.
func Transform(t geom.Transform) Value {
	return Value{Transform: t}
}

// Epsilon is the smallest change reported as Changed.
const Epsilon = 1e-3

func changed(k Kind, a, b Value) bool {
	if k.IsOpacity() {
		return geom.Abs(a.Opacity-b.Opacity) > Epsilon
	}
	return !a.Transform.ApproxEqual(b.Transform, Epsilon)
}

// Op is the kind of a diff event.
type Op uint8

const (
	// Added binds a new key.
	Added Op = iota
	// Changed updates the value of a bound key.
	Changed
	// Removed releases a key.
	Removed
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case Added:
		return "Added"
	case Changed:
		return "Changed"
	case Removed:
		return "Removed"
	default:
		return "Unknown"
	}
}

// DiffEvent is one change to hand to the compositor. Old is set for
// Changed and Removed, New for Added and Changed.
type DiffEvent struct {
	Op       Op
	Identity Identity
	Key      OpaqueKey
	Old, New Value
}

// String returns a compact description for logs.
func (e DiffEvent) String() string {
	return fmt.Sprintf("%s %s #%d", e.Op, e.Identity, e.Key)
}
