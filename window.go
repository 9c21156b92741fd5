// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggscroll

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggscroll/compositor"
	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/gpucache"
	"github.com/gogpu/ggscroll/hittest"
	"github.com/gogpu/ggscroll/iframe"
	"github.com/gogpu/ggscroll/internal/logging"
	"github.com/gogpu/ggscroll/node"
	"github.com/gogpu/ggscroll/scroll"
)

// ErrNilLayout is returned by Frame when no layout is given.
var ErrNilLayout = errors.New("ggscroll: nil layout")

// scrollbarZ lifts scrollbars above the content of their container.
const scrollbarZ = 1 << 20

// NodeLayout is the layout result of one node.
type NodeLayout struct {
	Key node.Key

	// Rect is in window space, or in the content space of Parent when
	// InParent is set. Parent must itself be laid out in window space.
	Rect     geom.Rect
	Parent   node.Key
	InParent bool

	Color gputypes.Color
	Z     int

	// Opacity and Transform are CSS-animated values, used only when the
	// matching Animate flag is set. A zero Transform means identity.
	Opacity          float32
	AnimateOpacity   bool
	Transform        geom.Transform
	AnimateTransform bool

	// Scroll makes the node a scroll container whose content has size
	// Content.
	Scroll  bool
	Content geom.Size

	// Provider makes the node a virtualized scroll container. Its content
	// is produced on demand; see LayoutContext.Content.
	Provider iframe.Provider
}

// Layout produces the node layout of one frame.
type Layout interface {
	Layout(ctx LayoutContext) []NodeLayout
}

// LayoutFunc adapts a function to Layout.
type LayoutFunc func(ctx LayoutContext) []NodeLayout

// Layout calls f(ctx).
func (f LayoutFunc) Layout(ctx LayoutContext) []NodeLayout { return f(ctx) }

// LayoutContext gives a layout access to state produced earlier in the
// frame.
type LayoutContext struct {
	// Pass is 0 for the first layout of a frame and 1 for the pass that
	// follows new virtualized content.
	Pass int

	w *Window
}

// Content returns the content most recently produced for a virtualized
// node.
func (c LayoutContext) Content(key node.Key) (any, bool) {
	if c.w == nil {
		return nil, false
	}
	return c.w.frames.Content(key)
}

// Subtree returns the subtree id of a virtualized node's content. Nodes
// laid out from that content use it for their keys.
func (c LayoutContext) Subtree(key node.Key) (node.SubtreeID, bool) {
	if c.w == nil {
		return 0, false
	}
	s, ok := c.w.frames.State(key)
	return s.Content, ok
}

// Offset returns a scroll container's current offset.
func (c LayoutContext) Offset(key node.Key) geom.Point {
	if c.w == nil {
		return geom.Point{}
	}
	return c.w.scroll.CurrentOffset(key)
}

// FrameResult summarizes one Frame call.
type FrameResult struct {
	// LayoutPasses is 1, or 2 when virtualized content changed.
	LayoutPasses int
	// Rebuilt is true if a new display list was sent.
	Rebuilt bool
	// Events is the dynamic property diff committed this frame.
	Events []gpucache.DiffEvent
	// ScrollEvents lists offsets moved since the previous frame.
	ScrollEvents []scroll.Event
	// Invocations lists the virtualized content requests of this frame.
	Invocations []iframe.Outcome
	// Activity summarizes scroll activity since the previous frame.
	Activity scroll.FrameInfo
	// NeedsRepaint is true if anything visible changed.
	NeedsRepaint bool
	// Animating is true while a smooth scroll or a scrollbar fade is in
	// progress, meaning another frame should be scheduled.
	Animating bool
}

// Window is the render context of one window. It owns the scroll,
// virtualization, property cache and hit-test state and drives a
// compositor.
//
// Window is not safe for concurrent use.
type Window struct {
	opts   options
	logger *slog.Logger

	scroll *scroll.Manager
	frames *iframe.Manager
	cache  *gpucache.Cache
	tester *hittest.Tester
	comp   compositor.Compositor

	nodes map[node.Key]NodeLayout
	order []node.Key
	prims []compositor.Primitive
	sent  map[uint64]geom.Point
}

// NewWindow creates a Window. Without WithCompositor it composites in
// software.
func NewWindow(opts ...Option) *Window {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.compositor == nil {
		o.compositor = compositor.NewSoftware()
	}
	w := &Window{
		opts:   o,
		scroll: scroll.NewManager(scroll.WithThickness(o.thickness)),
		frames: iframe.NewManager(nil, iframe.WithEdgeThreshold(o.edgeThreshold)),
		cache:  gpucache.New(),
		comp:   o.compositor,
		nodes:  make(map[node.Key]NodeLayout),
		sent:   make(map[uint64]geom.Point),
	}
	w.tester = hittest.NewTester(w.comp, w.scroll)
	w.tester.SetSpace(w.toContainer)
	l := o.logger
	if l == nil {
		l = Logger()
	}
	w.SetLogger(l)
	w.scroll.BeginFrame()
	return w
}

// SetLogger replaces the logger of the window and its components. Nil
// restores silence.
func (w *Window) SetLogger(l *slog.Logger) {
	w.logger = logging.OrNop(l)
	propagateLogger(w.logger, w.scroll, w.frames, w.cache, w.tester, w.comp)
}

// Scroll returns the window's scroll manager.
func (w *Window) Scroll() *scroll.Manager { return w.scroll }

// Frames returns the window's virtualized content manager.
func (w *Window) Frames() *iframe.Manager { return w.frames }

// Cache returns the window's dynamic property cache.
func (w *Window) Cache() *gpucache.Cache { return w.cache }

// Compositor returns the compositor the window drives.
func (w *Window) Compositor() compositor.Compositor { return w.comp }

// Frame runs one frame: layout, scroll animation, virtualized content,
// property diffing and the compositor transaction. Scroll input given
// between two Frame calls is reported by the later one.
func (w *Window) Frame(now time.Time, layout Layout) (FrameResult, error) {
	if layout == nil {
		return FrameResult{}, ErrNilLayout
	}
	var res FrameResult

	w.applyLayout(layout.Layout(LayoutContext{Pass: 0, w: w}), now)
	res.LayoutPasses = 1

	tick := w.scroll.Tick(now)

	if w.updateVirtualized(&res) {
		w.applyLayout(layout.Layout(LayoutContext{Pass: 1, w: w}), now)
		res.LayoutPasses++
	}

	res.Events = w.cache.Synchronize(gpucache.TreeFunc(w.animatedProperties), w.scroll,
		now, w.opts.fadeDelay, w.opts.fadeDuration)

	prims := w.displayList()
	if !slices.Equal(prims, w.prims) {
		w.prims = prims
		w.comp.SetDisplayList(prims)
		res.Rebuilt = true
	}

	tx := compositor.Transaction{Events: res.Events, ScrollOffsets: w.scrollOffsets()}
	var err error
	if !tx.IsEmpty() {
		if err = w.comp.Commit(tx); err != nil {
			// Nothing was applied; resend every live value next frame.
			w.cache.Invalidate()
			w.logger.Warn("ggscroll: commit rejected", "err", err)
			err = fmt.Errorf("ggscroll: commit: %w", err)
		} else {
			for _, so := range tx.ScrollOffsets {
				w.sent[so.ID] = so.Offset
			}
		}
	}

	res.ScrollEvents = w.scroll.PendingEvents()
	res.Activity = w.scroll.EndFrame()
	w.scroll.BeginFrame()

	res.NeedsRepaint = tick.NeedsRepaint || res.Rebuilt || !tx.IsEmpty()
	res.Animating = w.animating(now)

	w.logger.Debug("ggscroll: frame",
		"nodes", len(w.order),
		"passes", res.LayoutPasses,
		"events", len(res.Events),
		"invocations", len(res.Invocations),
		"rebuilt", res.Rebuilt)
	return res, err
}

// applyLayout records the layout and registers scroll containers. Nodes
// missing from the layout are forgotten.
func (w *Window) applyLayout(nodes []NodeLayout, now time.Time) {
	next := make(map[node.Key]NodeLayout, len(nodes))
	order := make([]node.Key, 0, len(nodes))
	for _, n := range nodes {
		if _, dup := next[n.Key]; dup {
			w.logger.Warn("ggscroll: duplicate layout key", "key", n.Key)
			continue
		}
		if n.Provider != nil {
			n.Scroll = true
		}
		if n.AnimateTransform && n.Transform == (geom.Transform{}) {
			n.Transform = geom.Identity()
		}
		next[n.Key] = n
		order = append(order, n.Key)
	}

	for _, key := range w.order {
		n, ok := next[key]
		if ok && n.Scroll {
			continue
		}
		old := w.nodes[key]
		if old.Scroll {
			w.forgetScroller(key)
		}
	}

	w.nodes = next
	w.order = order
	for _, key := range order {
		n := next[key]
		if n.Scroll {
			w.scroll.UpdateBounds(key, n.Rect, n.Content, now)
		}
	}
}

func (w *Window) forgetScroller(key node.Key) {
	delete(w.sent, w.scroll.ExternalScrollID(key))
	w.scroll.Remove(key)
	w.tester.Cancel(key)
	if freed := w.frames.Remove(key); len(freed) > 0 {
		w.logger.Debug("ggscroll: released content", "key", key, "subtrees", freed)
	}
}

// updateVirtualized asks providers for content where needed and reports
// whether new content was produced.
func (w *Window) updateVirtualized(res *FrameResult) bool {
	changed := false
	for _, key := range w.order {
		n := w.nodes[key]
		if n.Provider == nil {
			continue
		}
		out, ran := w.frames.Update(key, n.Rect, w.scroll.CurrentOffset(key), n.Provider)
		if ran {
			res.Invocations = append(res.Invocations, out)
			changed = changed || out.ContentChanged
			for _, sub := range out.Freed {
				w.forgetSubtree(sub)
			}
		}
		if v, ok := w.frames.VirtualSize(key); ok {
			w.scroll.SetVirtualSize(key, v)
		}
	}
	return changed
}

// forgetSubtree drops scroll state of nodes that lived in released
// content.
func (w *Window) forgetSubtree(sub node.SubtreeID) {
	for _, key := range w.scroll.Keys() {
		if key.Subtree == sub {
			w.forgetScroller(key)
		}
	}
}

func (w *Window) animatedProperties() []gpucache.Property {
	var props []gpucache.Property
	for _, key := range w.order {
		n := w.nodes[key]
		if n.AnimateOpacity {
			props = append(props, gpucache.Property{
				Key: key, Kind: gpucache.CSSOpacity, Value: gpucache.Opacity(n.Opacity),
			})
		}
		if n.AnimateTransform {
			props = append(props, gpucache.Property{
				Key: key, Kind: gpucache.CSSTransform, Value: gpucache.Transform(n.Transform),
			})
		}
	}
	return props
}

// binding returns the compositor key cached for key/kind, or zero.
func (w *Window) binding(key node.Key, kind gpucache.Kind) gpucache.OpaqueKey {
	k, _, _ := w.cache.Lookup(gpucache.Identity{Key: key, Kind: kind})
	return k
}

// displayList builds the retained primitives of the current layout.
func (w *Window) displayList() []compositor.Primitive {
	prims := make([]compositor.Primitive, 0, len(w.order))
	for _, key := range w.order {
		n := w.nodes[key]
		p := compositor.Primitive{
			Rect:  n.Rect,
			Color: n.Color,
			Z:     n.Z,
			Tag:   hittest.NodeTag(key),
		}
		p.Clip, p.ScrollID = w.scrollFrame(n)
		if n.AnimateOpacity {
			p.Opacity = w.binding(key, gpucache.CSSOpacity)
		}
		if n.AnimateTransform {
			p.Transform = w.binding(key, gpucache.CSSTransform)
		}
		prims = append(prims, p)
	}

	for _, key := range w.order {
		n := w.nodes[key]
		if !n.Scroll {
			continue
		}
		prims = w.appendScrollbar(prims, key, n, scroll.Vertical)
		prims = w.appendScrollbar(prims, key, n, scroll.Horizontal)
	}
	return prims
}

// scrollFrame returns the clip and scroll frame a node is painted in.
func (w *Window) scrollFrame(n NodeLayout) (geom.Rect, uint64) {
	if !n.InParent {
		return geom.Rect{}, 0
	}
	parent, ok := w.nodes[n.Parent]
	if !ok || !parent.Scroll {
		return geom.Rect{}, 0
	}
	return parent.Rect, w.scroll.ExternalScrollID(n.Parent)
}

// toContainer maps a window point into the space key's scrollbars are
// laid out in.
func (w *Window) toContainer(key node.Key, p geom.Point) geom.Point {
	n, ok := w.nodes[key]
	if !ok {
		return p
	}
	if _, id := w.scrollFrame(n); id != 0 {
		return p.Add(w.scroll.CurrentOffset(n.Parent))
	}
	return p
}

func (w *Window) appendScrollbar(prims []compositor.Primitive, key node.Key, n NodeLayout, o scroll.Orientation) []compositor.Primitive {
	sb, ok := w.scroll.Scrollbar(key, o)
	if !ok || !sb.Visible {
		return prims
	}
	opacityKind, thumbKind := gpucache.VerticalScrollbarOpacity, gpucache.VerticalThumbTransform
	if o == scroll.Horizontal {
		opacityKind, thumbKind = gpucache.HorizontalScrollbarOpacity, gpucache.HorizontalThumbTransform
	}
	opacity := w.binding(key, opacityKind)
	clip, scrollID := w.scrollFrame(n)
	return append(prims,
		compositor.Primitive{
			Rect:     sb.Track,
			Color:    w.opts.theme.Track,
			Z:        n.Z + scrollbarZ,
			Clip:     clip,
			ScrollID: scrollID,
			Opacity:  opacity,
			Tag:      hittest.ScrollbarTag(key, hittest.ComponentFor(o, false)),
		},
		// The thumb is painted at the track start and moved by its
		// transform binding, so scrolling never rebuilds the list.
		compositor.Primitive{
			Rect:      geom.Rect{Origin: sb.Track.Origin, Size: sb.Thumb.Size},
			Color:     w.opts.theme.Thumb,
			Z:         n.Z + scrollbarZ,
			Clip:      clip,
			ScrollID:  scrollID,
			Opacity:   opacity,
			Transform: w.binding(key, thumbKind),
			Tag:       hittest.ScrollbarTag(key, hittest.ComponentFor(o, true)),
		},
	)
}

// scrollOffsets returns the scroll frames whose offset differs from what
// the compositor last received.
func (w *Window) scrollOffsets() []compositor.ScrollOffset {
	var out []compositor.ScrollOffset
	for _, key := range w.scroll.Keys() {
		id := w.scroll.ExternalScrollID(key)
		off := w.scroll.CurrentOffset(key)
		if last, ok := w.sent[id]; ok && last == off {
			continue
		}
		out = append(out, compositor.ScrollOffset{ID: id, Offset: off})
	}
	return out
}

func (w *Window) animating(now time.Time) bool {
	for _, key := range w.scroll.Keys() {
		s, _ := w.scroll.State(key)
		if s.Animating() {
			return true
		}
		if !s.NeedsScrollbar(scroll.Vertical) && !s.NeedsScrollbar(scroll.Horizontal) {
			continue
		}
		if w.scroll.ScrollbarOpacity(key, now, w.opts.fadeDelay, w.opts.fadeDuration) > 0 {
			return true
		}
	}
	return false
}

// Wheel applies a wheel or touchpad delta at window point p. The delta
// goes to the innermost scroll container under p that can still move,
// bubbling outwards through parents. It reports whether anything
// scrolled.
func (w *Window) Wheel(p geom.Point, dx, dy float32, mode scroll.DeltaMode, now time.Time) bool {
	tag, ok := w.comp.HitTest(p)
	if !ok {
		return false
	}
	key := tag.Key()
	for range len(w.nodes) + 1 {
		n, ok := w.nodes[key]
		if !ok {
			return false
		}
		if s, ok := w.scroll.State(key); ok {
			d := scroll.NormalizeDelta(dx, dy, mode, 0, s.Container.Size)
			if w.scroll.RecordDelta(key, d.X, d.Y, now) {
				return true
			}
		}
		if !n.InParent {
			return false
		}
		key = n.Parent
	}
	return false
}

// PointerDown starts a scrollbar interaction at window point p. It
// reports whether a scrollbar consumed the event.
func (w *Window) PointerDown(p geom.Point, now time.Time) bool {
	return w.tester.PointerDown(p, now)
}

// PointerMove continues a thumb drag.
func (w *Window) PointerMove(p geom.Point, now time.Time) bool {
	return w.tester.PointerMove(p, now)
}

// PointerUp ends a thumb drag.
func (w *Window) PointerUp() bool {
	return w.tester.PointerUp()
}

// ScrollIntoView scrolls the container holding key so that the node
// becomes visible. It reports whether a scroll was started.
func (w *Window) ScrollIntoView(key node.Key, block, inline scroll.Alignment, behavior scroll.Behavior, now time.Time) bool {
	n, ok := w.nodes[key]
	if !ok || !n.InParent {
		return false
	}
	return w.scroll.ScrollRectIntoView(n.Parent, n.Rect, block, inline, behavior, now)
}
