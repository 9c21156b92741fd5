// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ggscroll is a scroll, virtualized-content and GPU-synchronized
// rendering engine for retained-mode UI.
//
// # Overview
//
// A Window owns the per-window state of the engine and runs one frame at
// a time:
//
//	layout -> scroll animation -> virtualized content -> property diff -> compositor
//
// Scrolling never rebuilds the display list. Offsets, scrollbar fade
// opacities and thumb positions travel to the compositor as a small
// transaction of dynamic property changes bound by opaque keys.
//
// # Quick Start
//
//	w := ggscroll.NewWindow()
//
//	layout := ggscroll.LayoutFunc(func(ctx ggscroll.LayoutContext) []ggscroll.NodeLayout {
//	    return []ggscroll.NodeLayout{{
//	        Key:     node.K(node.Root, 1),
//	        Rect:    geom.R(0, 0, 200, 400),
//	        Scroll:  true,
//	        Content: geom.Sz(200, 2000),
//	    }}
//	})
//
//	res, err := w.Frame(time.Now(), layout)
//	if err != nil { ... }
//
//	// Input between frames is reported by the next Frame.
//	w.Wheel(geom.Pt(100, 100), 0, 1, scroll.DeltaLine, time.Now())
//
// # Virtualized Content
//
// A node with an iframe.Provider renders only part of its content. The
// provider is asked again when the viewport nears an edge of what was
// rendered or when the node grows; the layout reads the produced content
// through LayoutContext.Content and lays it out in the node's own subtree.
//
// # Packages
//
//   - scroll: offsets, clamping, smooth scrolling, scrollbar geometry and fading
//   - iframe: virtualized content invocation
//   - gpucache: dynamic property diffing
//   - hittest: scrollbar hit-test tags and thumb dragging
//   - compositor: software and GPU-device compositors
//
// # Configuration
//
// Options may be given directly or read from a TOML file with LoadConfig.
//
// # Logging
//
// ggscroll is silent by default. See SetLogger.
package ggscroll
