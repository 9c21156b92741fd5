// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geom provides the logical-pixel geometry shared by the scroll,
// virtual content and compositor packages.
//
// All values are float32 logical pixels. The coordinate system matches gg:
// origin at the top-left, X grows right, Y grows down.
//
// Points convert to and from [f32.Vec2] and transforms are backed by a
// row-major [f32.Mat4], so values can be handed to GPU uniform buffers
// without repacking.
package geom
