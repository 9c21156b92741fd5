// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/gpucache"
	"github.com/gogpu/ggscroll/hittest"
)

var (
	// ErrUnknownKey is returned when a transaction changes or removes a
	// property key that was never added.
	ErrUnknownKey = errors.New("compositor: unknown property key")

	// ErrInvalidOffset is returned for non-finite scroll offsets.
	ErrInvalidOffset = errors.New("compositor: invalid scroll offset")

	// ErrNoDevice is returned by Device when the host has no GPU device.
	ErrNoDevice = errors.New("compositor: no GPU device")

	// ErrNilDeviceHandle is returned by NewDevice for a nil handle.
	ErrNilDeviceHandle = errors.New("compositor: nil device handle")
)

// Primitive is one retained, filled rectangle.
type Primitive struct {
	// Rect is in the content space of the primitive's scroll frame.
	Rect  geom.Rect
	Color gputypes.Color

	// Z orders primitives; higher values paint on top. Equal values keep
	// display-list order.
	Z int

	// Clip is a window-space clip rectangle. The zero Rect means no clip.
	Clip geom.Rect

	// ScrollID binds the primitive to a scroll frame. Zero means the
	// primitive does not scroll.
	ScrollID uint64

	// Opacity and Transform bind dynamic properties. Zero means unbound.
	Opacity   gpucache.OpaqueKey
	Transform gpucache.OpaqueKey

	// Tag makes the primitive hit-testable when non-zero.
	Tag hittest.Tag
}

// ScrollOffset positions one scroll frame.
type ScrollOffset struct {
	ID     uint64
	Offset geom.Point
}

// Transaction is one frame's dynamic update. It is applied entirely or
// not at all.
type Transaction struct {
	Events        []gpucache.DiffEvent
	ScrollOffsets []ScrollOffset
}

// IsEmpty reports whether the transaction carries nothing.
func (tx Transaction) IsEmpty() bool {
	return len(tx.Events) == 0 && len(tx.ScrollOffsets) == 0
}

// Compositor is what the frame pipeline talks to.
type Compositor interface {
	hittest.HitTester

	// SetDisplayList replaces the retained primitives.
	SetDisplayList(prims []Primitive)

	// Commit applies a transaction.
	Commit(tx Transaction) error
}
