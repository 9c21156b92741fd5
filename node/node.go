// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package node defines the stable identity of layout nodes and the arena
// that owns virtualized content subtrees.
//
// Nodes are addressed by a (subtree, node) pair instead of pointers:
// nested virtual content may reference other subtrees, and index identity
// keeps those references acyclic and trivially comparable.
package node

import (
	"cmp"
	"fmt"
)

// SubtreeID identifies one content tree (the root document or a virtual
// content subtree). Zero is never allocated for child subtrees and doubles
// as "no subtree".
type SubtreeID uint32

// Root is the subtree of the top-level document.
const Root SubtreeID = 0

// ID identifies a node within its subtree.
type ID uint32

// Key is the stable identity of a node across frames.
type Key struct {
	Subtree SubtreeID
	Node    ID
}

// K is a convenience function to create a Key.
func K(subtree SubtreeID, n ID) Key {
	return Key{Subtree: subtree, Node: n}
}

// String returns "subtree:node".
func (k Key) String() string {
	return fmt.Sprintf("%d:%d", k.Subtree, k.Node)
}

// Compare orders keys by subtree, then node.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.Subtree, o.Subtree); c != 0 {
		return c
	}
	return cmp.Compare(k.Node, o.Node)
}

// Pack encodes the key into 64 bits (subtree in the high half).
func (k Key) Pack() uint64 {
	return uint64(k.Subtree)<<32 | uint64(k.Node)
}

// Unpack decodes a key produced by Pack.
func Unpack(v uint64) Key {
	return Key{Subtree: SubtreeID(v >> 32), Node: ID(uint32(v))}
}
