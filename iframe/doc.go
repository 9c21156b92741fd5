// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package iframe decides when a virtualized content node must run its
// content provider again.
//
// A virtualized node renders only part of its content (the actual region)
// while pretending to be larger (the virtual region) for scrollbar
// purposes. Each frame the Manager compares the node's layout bounds and
// scroll offset against the state recorded at the last invocation and
// reports one of three reasons to re-invoke:
//
//   - InitialRender: the node has never been invoked.
//   - BoundsExpanded: the container grew past the rendered area.
//   - EdgeScrolled: the viewport came within the edge threshold of the
//     rendered area's boundary.
//
// Every reason is latched, so a provider that cannot produce more content
// is not called again for the same condition.
package iframe
