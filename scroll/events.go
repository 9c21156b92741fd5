// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scroll

import (
	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/node"
)

// Event reports that a node's offset moved during the current frame.
type Event struct {
	Key    node.Key
	Delta  geom.Point
	Offset geom.Point
	Source Source
}

// FrameInfo summarizes scroll activity between BeginFrame and EndFrame.
type FrameInfo struct {
	// HadActivity is true if any offset was changed by input.
	HadActivity bool
	// HadProgrammatic is true if a programmatic scroll was requested.
	HadProgrammatic bool
	// HadNewNodes is true if a scrollable node was registered.
	HadNewNodes bool
}

// TickResult lists the nodes whose offsets were advanced by Tick.
type TickResult struct {
	// NeedsRepaint is true if any offset changed.
	NeedsRepaint bool
	// Updated holds the changed nodes in key order.
	Updated []node.Key
}
