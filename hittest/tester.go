// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hittest

import (
	"log/slog"
	"time"

	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/internal/logging"
	"github.com/gogpu/ggscroll/node"
	"github.com/gogpu/ggscroll/scroll"
)

// HitTester resolves a window point to the topmost tagged primitive.
type HitTester interface {
	HitTest(p geom.Point) (Tag, bool)
}

// HitTesterFunc adapts a function to HitTester.
type HitTesterFunc func(p geom.Point) (Tag, bool)

// HitTest calls f(p).
func (f HitTesterFunc) HitTest(p geom.Point) (Tag, bool) { return f(p) }

// Scroller is the scroll state a Tester drives. *scroll.Manager
// implements it.
type Scroller interface {
	Scrollbar(key node.Key, o scroll.Orientation) (scroll.Scrollbar, bool)
	CurrentOffset(key node.Key) geom.Point
	SetOffset(key node.Key, p geom.Point, now time.Time) bool
}

// Drag is an active thumb drag.
type Drag struct {
	Key          node.Key
	Orientation  scroll.Orientation
	StartPointer geom.Point // in scrollbar space, see SetSpace
	StartOffset  geom.Point
}

// SpaceFunc maps a window point into the coordinate space the scrollbar
// geometry of key is expressed in.
type SpaceFunc func(key node.Key, p geom.Point) geom.Point

// Tester turns pointer events on scrollbars into offset changes.
type Tester struct {
	hit    HitTester
	sm     Scroller
	space  SpaceFunc
	drag   *Drag
	logger *slog.Logger
}

// NewTester creates a Tester that asks hit for tags and writes offsets
// into sm.
func NewTester(hit HitTester, sm Scroller) *Tester {
	return &Tester{hit: hit, sm: sm, logger: logging.Nop()}
}

// SetLogger replaces the diagnostics logger. Nil restores silence.
func (t *Tester) SetLogger(l *slog.Logger) {
	t.logger = logging.OrNop(l)
}

// SetSpace sets the mapping from window points to scrollbar space. Nil
// means scrollbars are laid out in window space.
func (t *Tester) SetSpace(f SpaceFunc) {
	t.space = f
}

func (t *Tester) local(key node.Key, p geom.Point) geom.Point {
	if t.space == nil {
		return p
	}
	return t.space(key, p)
}

// HitTest returns the scrollbar tag under p, if any.
func (t *Tester) HitTest(p geom.Point) (Tag, bool) {
	if t.hit == nil {
		return Tag{}, false
	}
	tag, ok := t.hit.HitTest(p)
	if !ok || !tag.IsScrollbar() {
		return Tag{}, false
	}
	return tag, true
}

// PointerDown handles a press at p. A thumb hit starts a drag; a track hit
// scrolls one page toward p. It reports whether the press was consumed.
func (t *Tester) PointerDown(p geom.Point, now time.Time) bool {
	tag, ok := t.HitTest(p)
	if !ok {
		return false
	}
	key, c := tag.Key(), tag.Component()
	o := c.Orientation()
	p = t.local(key, p)
	sb, ok := t.sm.Scrollbar(key, o)
	if !ok || !sb.Visible {
		return false
	}

	if c.IsThumb() {
		t.drag = &Drag{
			Key:          key,
			Orientation:  o,
			StartPointer: p,
			StartOffset:  t.sm.CurrentOffset(key),
		}
		t.logger.Debug("hittest: drag started", "node", key.String(), "component", c.String())
		return true
	}

	page := sb.ContainerExtent
	pos := o.Axis(p)
	thumbStart := o.Axis(sb.Thumb.Origin)
	thumbEnd := thumbStart + o.Extent(sb.Thumb.Size)
	switch {
	case pos < thumbStart:
		page = -page
	case pos <= thumbEnd:
		return true
	}
	t.sm.SetOffset(key, withAxis(t.sm.CurrentOffset(key), o, o.Axis(t.sm.CurrentOffset(key))+page), now)
	return true
}

// PointerMove updates an active drag. It reports whether the offset
// changed.
func (t *Tester) PointerMove(p geom.Point, now time.Time) bool {
	d := t.drag
	if d == nil {
		return false
	}
	sb, ok := t.sm.Scrollbar(d.Key, d.Orientation)
	if !ok || !sb.Visible || sb.TrackExtent() <= 0 {
		return false
	}
	o := d.Orientation
	delta := o.Axis(t.local(d.Key, p).Sub(d.StartPointer))
	scaled := delta * sb.ContentExtent / sb.TrackExtent()
	target := withAxis(t.sm.CurrentOffset(d.Key), o, o.Axis(d.StartOffset)+scaled)
	return t.sm.SetOffset(d.Key, target, now)
}

// PointerUp ends an active drag. It reports whether one was active.
func (t *Tester) PointerUp() bool {
	if t.drag == nil {
		return false
	}
	t.drag = nil
	return true
}

// Dragging reports whether a drag is active.
func (t *Tester) Dragging() bool {
	return t.drag != nil
}

// Session returns the active drag.
func (t *Tester) Session() (Drag, bool) {
	if t.drag == nil {
		return Drag{}, false
	}
	return *t.drag, true
}

// Cancel drops an active drag on key, e.g. when the node is removed.
func (t *Tester) Cancel(key node.Key) {
	if t.drag != nil && t.drag.Key == key {
		t.drag = nil
	}
}

func withAxis(p geom.Point, o scroll.Orientation, v float32) geom.Point {
	if o == scroll.Horizontal {
		p.X = v
	} else {
		p.Y = v
	}
	return p
}
