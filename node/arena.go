// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package node

import "slices"

// subtree is one arena slot.
type subtree struct {
	owner   Key
	content any
}

// Arena owns virtualized content subtrees. Each subtree is owned by the
// node that produced it (its owner key); parents are recorded by id only.
//
// Arena is not safe for concurrent use. It belongs to a single window.
type Arena struct {
	slots map[SubtreeID]*subtree
	next  SubtreeID
}

// NewArena creates an empty arena. Allocated ids start at 1.
func NewArena() *Arena {
	return &Arena{
		slots: make(map[SubtreeID]*subtree),
		next:  1,
	}
}

// Alloc stores content produced for owner and returns its new subtree id.
func (a *Arena) Alloc(owner Key, content any) SubtreeID {
	id := a.next
	a.next++
	a.slots[id] = &subtree{owner: owner, content: content}
	return id
}

// Content returns the content stored for id.
func (a *Arena) Content(id SubtreeID) (any, bool) {
	s, ok := a.slots[id]
	if !ok {
		return nil, false
	}
	return s.content, true
}

// Owner returns the node that owns subtree id.
func (a *Arena) Owner(id SubtreeID) (Key, bool) {
	s, ok := a.slots[id]
	if !ok {
		return Key{}, false
	}
	return s.owner, true
}

// Contains reports whether id is live.
func (a *Arena) Contains(id SubtreeID) bool {
	_, ok := a.slots[id]
	return ok
}

// Replace swaps the content of subtree id, keeping the id stable. Subtrees
// owned by nodes inside the old content are released and returned in
// ascending order. Replace on an unknown id does nothing.
func (a *Arena) Replace(id SubtreeID, content any) []SubtreeID {
	s, ok := a.slots[id]
	if !ok {
		return nil
	}
	s.content = content
	var freed []SubtreeID
	for child, c := range a.slots {
		if c.owner.Subtree == id {
			freed = append(freed, child)
		}
	}
	var all []SubtreeID
	for _, child := range freed {
		all = append(all, a.Free(child)...)
	}
	slices.Sort(all)
	return all
}

// Free releases subtree id together with every subtree whose owner lives
// inside it, transitively. It returns the released ids in ascending order.
func (a *Arena) Free(id SubtreeID) []SubtreeID {
	if _, ok := a.slots[id]; !ok {
		return nil
	}
	var freed []SubtreeID
	pending := []SubtreeID{id}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if _, ok := a.slots[cur]; !ok {
			continue
		}
		delete(a.slots, cur)
		freed = append(freed, cur)
		for child, s := range a.slots {
			if s.owner.Subtree == cur {
				pending = append(pending, child)
			}
		}
	}
	slices.Sort(freed)
	return freed
}

// Len returns the number of live subtrees.
func (a *Arena) Len() int {
	return len(a.slots)
}
