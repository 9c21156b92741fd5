// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scroll owns per-node scroll offsets, smooth scroll animations,
// scrollbar geometry and the activity timestamps that drive scrollbar
// fading.
//
// # Frame Usage
//
//	m := scroll.NewManager()
//
//	// after layout, for every scrollable node
//	m.UpdateBounds(key, containerRect, contentSize, now)
//
//	// input
//	m.RecordDelta(key, 0, 120, now)
//
//	// once per frame, with now sampled once
//	res := m.Tick(now)
//	opacity := m.ScrollbarOpacity(key, now, 500*time.Millisecond, 200*time.Millisecond)
//
// # Invariants
//
// After every call, each offset satisfies 0 <= offset <= max(0, content -
// container) per axis. Out-of-range input is clamped and non-finite input is
// ignored; neither is reported as an error.
//
// # Thread Safety
//
// A Manager is owned by one window and is NOT safe for concurrent use.
package scroll
