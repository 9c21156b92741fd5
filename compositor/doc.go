// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package compositor is the boundary between the frame pipeline and the
// renderer.
//
// The pipeline hands over a display list of tagged primitives only when
// the structure of the scene changes. Scrolling and fading travel as
// Transactions of dynamic-property updates and scroll offsets, which the
// compositor applies without a rebuild.
//
// Two implementations are provided:
//
//   - Software keeps the retained primitives on the CPU, tracks damage and
//     answers hit tests.
//   - Device binds Software state to a GPU device received from the host
//     application through gpucontext.
//
// Snapshot paints the retained scene with gg for debugging and tests.
package compositor
