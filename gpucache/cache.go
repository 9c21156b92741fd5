// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucache

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gogpu/ggscroll/internal/logging"
	"github.com/gogpu/ggscroll/node"
	"github.com/gogpu/ggscroll/scroll"
)

// Property is one CSS-animated value declared by a node.
type Property struct {
	Key   node.Key
	Kind  Kind // CSSOpacity or CSSTransform
	Value Value
}

// Tree supplies the CSS-animated properties of the current frame.
type Tree interface {
	AnimatedProperties() []Property
}

// TreeFunc adapts a function to Tree.
type TreeFunc func() []Property

// AnimatedProperties calls f.
func (f TreeFunc) AnimatedProperties() []Property { return f() }

// ScrollSource supplies per-node scrollbar state. *scroll.Manager
// implements it.
type ScrollSource interface {
	Keys() []node.Key
	Scrollbar(key node.Key, o scroll.Orientation) (scroll.Scrollbar, bool)
	ScrollbarOpacity(key node.Key, now time.Time, fadeDelay, fadeDuration time.Duration) float32
}

type entry struct {
	key   OpaqueKey
	value Value
}

// Cache holds the values last handed to the compositor.
//
// Cache is not safe for concurrent use. It belongs to a single window.
type Cache struct {
	entries map[Identity]*entry
	nextKey OpaqueKey
	logger  *slog.Logger

	// reannounce makes the next Synchronize report every live entry as
	// Added.
	reannounce bool
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		entries: make(map[Identity]*entry),
		nextKey: 1,
		logger:  logging.Nop(),
	}
}

// SetLogger replaces the diagnostics logger. Nil restores silence.
func (c *Cache) SetLogger(l *slog.Logger) {
	c.logger = logging.OrNop(l)
}

// Len returns the number of cached values.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Lookup returns the binding and value cached for id.
func (c *Cache) Lookup(id Identity) (OpaqueKey, Value, bool) {
	e, ok := c.entries[id]
	if !ok {
		return 0, Value{}, false
	}
	return e.key, e.value, true
}

// Synchronize recomputes every tracked value and returns the changes since
// the previous call, sorted by identity. tree and sm may be nil.
func (c *Cache) Synchronize(tree Tree, sm ScrollSource, now time.Time, fadeDelay, fadeDuration time.Duration) []DiffEvent {
	fresh := make(map[Identity]Value)
	if tree != nil {
		for _, p := range tree.AnimatedProperties() {
			if p.Kind != CSSOpacity && p.Kind != CSSTransform {
				continue
			}
			id := Identity{Key: p.Key, Kind: p.Kind}
			if p.Kind == CSSOpacity {
				p.Value = Opacity(p.Value.Opacity)
				// Fully transparent values need no binding until they
				// become visible.
				if _, cached := c.entries[id]; !cached && p.Value.Opacity <= 0 {
					continue
				}
			}
			fresh[id] = p.Value
		}
	}
	if sm != nil {
		for _, key := range sm.Keys() {
			opacity := sm.ScrollbarOpacity(key, now, fadeDelay, fadeDuration)
			for _, o := range [...]scroll.Orientation{scroll.Vertical, scroll.Horizontal} {
				sb, ok := sm.Scrollbar(key, o)
				if !ok || !sb.Visible {
					continue
				}
				opKind, thumbKind := VerticalScrollbarOpacity, VerticalThumbTransform
				if o == scroll.Horizontal {
					opKind, thumbKind = HorizontalScrollbarOpacity, HorizontalThumbTransform
				}
				fresh[Identity{Key: key, Kind: opKind}] = Opacity(opacity)
				fresh[Identity{Key: key, Kind: thumbKind}] = Transform(sb.ThumbTransform())
			}
		}
	}

	var events []DiffEvent
	for id, v := range fresh {
		e, ok := c.entries[id]
		if !ok {
			e = &entry{key: c.nextKey, value: v}
			c.nextKey++
			c.entries[id] = e
			events = append(events, DiffEvent{Op: Added, Identity: id, Key: e.key, New: v})
			continue
		}
		if c.reannounce {
			e.value = v
			events = append(events, DiffEvent{Op: Added, Identity: id, Key: e.key, New: v})
			continue
		}
		if changed(id.Kind, e.value, v) {
			events = append(events, DiffEvent{Op: Changed, Identity: id, Key: e.key, Old: e.value, New: v})
			e.value = v
		}
	}
	for id, e := range c.entries {
		if _, ok := fresh[id]; !ok {
			events = append(events, DiffEvent{Op: Removed, Identity: id, Key: e.key, Old: e.value})
			delete(c.entries, id)
		}
	}
	c.reannounce = false
	sortEvents(events)
	if len(events) > 0 {
		c.logger.Debug("gpucache: synchronized", "events", len(events), "entries", len(c.entries))
	}
	return events
}

// Invalidate marks the compositor copy of every value as lost, e.g. after
// a rejected transaction. The next Synchronize reports each live entry as
// Added under its existing key.
func (c *Cache) Invalidate() {
	c.reannounce = true
	c.logger.Debug("gpucache: invalidated", "entries", len(c.entries))
}

// Release drops every value of key and returns the Removed events.
func (c *Cache) Release(key node.Key) []DiffEvent {
	var events []DiffEvent
	for id, e := range c.entries {
		if id.Key == key {
			events = append(events, DiffEvent{Op: Removed, Identity: id, Key: e.key, Old: e.value})
			delete(c.entries, id)
		}
	}
	sortEvents(events)
	return events
}

func sortEvents(events []DiffEvent) {
	slices.SortFunc(events, func(a, b DiffEvent) int {
		return a.Identity.Compare(b.Identity)
	})
}
