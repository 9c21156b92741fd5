// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpucache diffs animatable render values frame to frame.
//
// Opacity and transform values that the compositor can animate without a
// display-list rebuild are bound once to an opaque key. Each frame the
// Cache recomputes them and reports only what changed as Added, Changed
// or Removed events; a frame with no changes yields an empty diff.
package gpucache
