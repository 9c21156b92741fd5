// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package iframe

import (
	"errors"

	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/node"
)

var (
	// ErrNoProvider is reported when a node has no content provider.
	ErrNoProvider = errors.New("iframe: no content provider")

	// ErrProviderPanic wraps a panic recovered from a content provider.
	ErrProviderPanic = errors.New("iframe: content provider panicked")

	// ErrInvalidRegion is reported when a provider returns non-finite or
	// negative region geometry.
	ErrInvalidRegion = errors.New("iframe: invalid region")
)

// Region is an offset plus size in the node's content coordinates.
type Region struct {
	Offset geom.Point
	Size   geom.Size
}

// IsZero reports whether both offset and size are zero.
func (r Region) IsZero() bool {
	return r == Region{}
}

// cover returns r grown to contain o.
func (r Region) cover(o Region) Region {
	x0, y0 := min(r.Offset.X, o.Offset.X), min(r.Offset.Y, o.Offset.Y)
	x1 := max(r.Offset.X+r.Size.Width, o.Offset.X+o.Size.Width)
	y1 := max(r.Offset.Y+r.Size.Height, o.Offset.Y+o.Size.Height)
	return Region{Offset: geom.Pt(x0, y0), Size: geom.Sz(x1-x0, y1-y0)}
}

func (r Region) valid() bool {
	return r.Offset.IsFinite() &&
		geom.IsFinite(r.Size.Width) && geom.IsFinite(r.Size.Height) &&
		r.Size.Width >= 0 && r.Size.Height >= 0
}

// Info is passed to a provider on invocation.
type Info struct {
	Key    node.Key
	Reason Reason
	Bounds geom.Rect
	Offset geom.Point

	// Actual and Virtual are the regions recorded by the previous
	// invocation (zero on InitialRender).
	Actual  Region
	Virtual Region
}

// Return is a provider's answer.
//
// A nil Content declines the update: the cached content is kept, but any
// non-zero region supplied is still adopted.
type Return struct {
	Content any
	Actual  Region
	Virtual Region
}

// Provider produces content for a virtualized node.
type Provider interface {
	Render(Info) (Return, error)
}

// ProviderFunc adapts an ordinary function to Provider.
type ProviderFunc func(Info) (Return, error)

// Render calls f(info).
func (f ProviderFunc) Render(info Info) (Return, error) {
	return f(info)
}

// Callback pairs a function with opaque user data, so one function can
// serve many nodes.
type Callback struct {
	Fn   func(data any, info Info) (Return, error)
	Data any
}

// Render calls c.Fn(c.Data, info).
func (c Callback) Render(info Info) (Return, error) {
	if c.Fn == nil {
		return Return{}, ErrNoProvider
	}
	return c.Fn(c.Data, info)
}
