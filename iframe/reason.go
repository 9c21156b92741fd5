// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package iframe

import "strings"

// Kind classifies why a provider is invoked.
type Kind uint8

const (
	// InitialRender is the first invocation of a node.
	InitialRender Kind = iota
	// BoundsExpanded means the container grew beyond the actual region.
	BoundsExpanded
	// EdgeScrolled means the viewport approached an actual-region edge.
	EdgeScrolled
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case InitialRender:
		return "InitialRender"
	case BoundsExpanded:
		return "BoundsExpanded"
	case EdgeScrolled:
		return "EdgeScrolled"
	default:
		return "Unknown"
	}
}

// Edge names one side of the actual region.
type Edge uint8

const (
	// Top is the start of the vertical axis.
	Top Edge = iota
	// Bottom is the end of the vertical axis.
	Bottom
	// Left is the start of the horizontal axis.
	Left
	// Right is the end of the horizontal axis.
	Right
)

// edgeOrder is the evaluation order of edge checks.
var edgeOrder = [...]Edge{Bottom, Right, Top, Left}

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Vertical reports whether the edge lies on the vertical scroll axis.
func (e Edge) Vertical() bool {
	return e == Top || e == Bottom
}

// EdgeFlags is a set of latched edges.
type EdgeFlags uint8

// Has reports whether e is in the set.
func (f EdgeFlags) Has(e Edge) bool { return f&(1<<e) != 0 }

// With returns the set with e added.
func (f EdgeFlags) With(e Edge) EdgeFlags { return f | 1<<e }

// Without returns the set with e removed.
func (f EdgeFlags) Without(e Edge) EdgeFlags { return f &^ (1 << e) }

// String lists the edges in the set, e.g. "Top|Bottom".
func (f EdgeFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, e := range [...]Edge{Top, Bottom, Left, Right} {
		if f.Has(e) {
			parts = append(parts, e.String())
		}
	}
	return strings.Join(parts, "|")
}

// Reason is the result of a re-invocation check. Edge is meaningful only
// for EdgeScrolled.
type Reason struct {
	Kind Kind
	Edge Edge
}

// String returns e.g. "EdgeScrolled(Bottom)".
func (r Reason) String() string {
	if r.Kind == EdgeScrolled {
		return r.Kind.String() + "(" + r.Edge.String() + ")"
	}
	return r.Kind.String()
}
