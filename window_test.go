// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggscroll

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggscroll/compositor"
	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/gpucache"
	"github.com/gogpu/ggscroll/iframe"
	"github.com/gogpu/ggscroll/node"
	"github.com/gogpu/ggscroll/scroll"
)

var (
	t0   = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	list = node.K(node.Root, 2)
)

const (
	rowHeight = 100
	rowCount  = 20
)

// rows is the content a rows provider produces.
type rows struct {
	first, count int
}

func rowKey(sub node.SubtreeID, i int) node.Key {
	return node.K(sub, node.ID(10+i))
}

// listLayout lays out a 200x400 scroll container at the window origin
// holding 100px rows. Without a provider it holds rowCount rows; with one
// it holds whatever rows the provider produced.
func listLayout(p iframe.Provider) Layout {
	return LayoutFunc(func(ctx LayoutContext) []NodeLayout {
		out := []NodeLayout{{
			Key:      list,
			Rect:     geom.R(0, 0, 200, 400),
			Color:    gputypes.Color{R: 1, G: 1, B: 1, A: 1},
			Scroll:   true,
			Content:  geom.Sz(200, rowCount*rowHeight),
			Provider: p,
		}}
		first, count, sub := 0, rowCount, node.Root
		if p != nil {
			c, ok := ctx.Content(list)
			if !ok {
				out[0].Content = geom.Size{}
				return out
			}
			r := c.(rows)
			first, count = r.first, r.count
			sub, _ = ctx.Subtree(list)
			out[0].Content = geom.Sz(200, float32(first+count)*rowHeight)
		}
		for i := first; i < first+count; i++ {
			out = append(out, NodeLayout{
				Key:      rowKey(sub, i),
				Rect:     geom.R(0, float32(i)*rowHeight, 200, rowHeight),
				Parent:   list,
				InParent: true,
				Color:    gputypes.Color{R: 0.2, G: 0.4, B: 0.8, A: 1},
			})
		}
		return out
	})
}

// rowsProvider renders eight rows starting one row above the viewport,
// out of 100 virtual rows.
func rowsProvider(calls *int) iframe.Provider {
	return iframe.ProviderFunc(func(info iframe.Info) (iframe.Return, error) {
		*calls++
		first := max(0, int(info.Offset.Y/rowHeight)-1)
		const count = 8
		return iframe.Return{
			Content: rows{first: first, count: count},
			Actual: iframe.Region{
				Offset: geom.Pt(0, float32(first)*rowHeight),
				Size:   geom.Sz(200, count*rowHeight),
			},
			Virtual: iframe.Region{Size: geom.Sz(200, 100*rowHeight)},
		}, nil
	})
}

func software(t *testing.T, w *Window) *compositor.Software {
	t.Helper()
	s, ok := w.Compositor().(*compositor.Software)
	if !ok {
		t.Fatalf("compositor is %T, want *compositor.Software", w.Compositor())
	}
	return s
}

func frame(t *testing.T, w *Window, now time.Time, l Layout) FrameResult {
	t.Helper()
	res, err := w.Frame(now, l)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	return res
}

func hasEvent(events []gpucache.DiffEvent, op gpucache.Op, kind gpucache.Kind) bool {
	for _, e := range events {
		if e.Op == op && e.Identity.Kind == kind {
			return true
		}
	}
	return false
}

func TestFrameNilLayout(t *testing.T) {
	w := NewWindow()
	if _, err := w.Frame(t0, nil); !errors.Is(err, ErrNilLayout) {
		t.Errorf("Frame(nil) error = %v, want ErrNilLayout", err)
	}
}

func TestFrameStaticList(t *testing.T) {
	w := NewWindow()
	l := listLayout(nil)

	res := frame(t, w, t0, l)
	if res.LayoutPasses != 1 || !res.Rebuilt {
		t.Errorf("first frame: passes = %d, rebuilt = %v", res.LayoutPasses, res.Rebuilt)
	}
	if !res.Activity.HadNewNodes {
		t.Error("first frame should report new scroll nodes")
	}
	if len(res.Events) != 2 ||
		!hasEvent(res.Events, gpucache.Added, gpucache.VerticalScrollbarOpacity) ||
		!hasEvent(res.Events, gpucache.Added, gpucache.VerticalThumbTransform) {
		t.Errorf("first frame events = %v", res.Events)
	}
	// container + rows + vertical track and thumb
	if got, want := len(software(t, w).Primitives()), 1+rowCount+2; got != want {
		t.Errorf("primitives = %d, want %d", got, want)
	}

	res = frame(t, w, t0, l)
	if res.Rebuilt || len(res.Events) != 0 || res.NeedsRepaint {
		t.Errorf("idle frame: rebuilt = %v, events = %v, repaint = %v", res.Rebuilt, res.Events, res.NeedsRepaint)
	}
	if got := software(t, w).DisplayLists(); got != 1 {
		t.Errorf("DisplayLists() = %d, want 1", got)
	}
}

func TestWheelScrollsWithoutRebuild(t *testing.T) {
	w := NewWindow()
	l := listLayout(nil)
	frame(t, w, t0, l)

	if !w.Wheel(geom.Pt(100, 100), 0, 3, scroll.DeltaLine, t0) {
		t.Fatal("Wheel() over the list should scroll")
	}
	res := frame(t, w, t0, l)
	if res.Rebuilt {
		t.Error("scrolling should not rebuild the display list")
	}
	if len(res.ScrollEvents) != 1 || res.ScrollEvents[0].Delta != geom.Pt(0, 120) {
		t.Errorf("ScrollEvents = %v, want one delta of (0, 120)", res.ScrollEvents)
	}
	if !res.Activity.HadActivity {
		t.Error("Activity.HadActivity = false, want true")
	}
	if !hasEvent(res.Events, gpucache.Changed, gpucache.VerticalThumbTransform) {
		t.Errorf("events = %v, want thumb transform change", res.Events)
	}
	id := w.Scroll().ExternalScrollID(list)
	if got := software(t, w).ScrollOffset(id); got != geom.Pt(0, 120) {
		t.Errorf("compositor offset = %v, want (0, 120)", got)
	}
}

func TestWheelOutsideScrollerIgnored(t *testing.T) {
	w := NewWindow()
	frame(t, w, t0, listLayout(nil))
	if w.Wheel(geom.Pt(300, 100), 0, 3, scroll.DeltaLine, t0) {
		t.Error("Wheel() outside every node should not scroll")
	}
}

func TestScrollbarFade(t *testing.T) {
	w := NewWindow(WithFadeDelay(500*time.Millisecond), WithFadeDuration(200*time.Millisecond))
	l := listLayout(nil)

	if res := frame(t, w, t0, l); !res.Animating {
		t.Error("scrollbars of a new container should be fading")
	}
	res := frame(t, w, t0.Add(time.Second), l)
	if res.Animating {
		t.Error("fade should be over after 1s")
	}
	if !hasEvent(res.Events, gpucache.Changed, gpucache.VerticalScrollbarOpacity) {
		t.Errorf("events = %v, want opacity change", res.Events)
	}
	if res.Rebuilt {
		t.Error("fading should not rebuild the display list")
	}
}

func TestThumbDrag(t *testing.T) {
	w := NewWindow()
	l := listLayout(nil)
	frame(t, w, t0, l)

	// Thumb: x 188..200, y 0..80.
	if !w.PointerDown(geom.Pt(194, 40), t0) {
		t.Fatal("PointerDown() on the thumb should start a drag")
	}
	if !w.PointerMove(geom.Pt(194, 140), t0) {
		t.Fatal("PointerMove() should scroll")
	}
	// 100px of track is 100 * 2000/400 px of content.
	if got := w.Scroll().CurrentOffset(list); got != geom.Pt(0, 500) {
		t.Errorf("offset = %v, want (0, 500)", got)
	}
	if !w.PointerUp() {
		t.Error("PointerUp() should end the drag")
	}
	res := frame(t, w, t0, l)
	if len(res.ScrollEvents) != 1 || res.ScrollEvents[0].Source != scroll.SourceUser {
		t.Errorf("ScrollEvents = %v", res.ScrollEvents)
	}
}

func TestVirtualizedList(t *testing.T) {
	var calls int
	w := NewWindow()
	l := listLayout(rowsProvider(&calls))

	res := frame(t, w, t0, l)
	if res.LayoutPasses != 2 || len(res.Invocations) != 1 {
		t.Fatalf("first frame: passes = %d, invocations = %d", res.LayoutPasses, len(res.Invocations))
	}
	if got := res.Invocations[0].Reason.Kind; got != iframe.InitialRender {
		t.Errorf("reason = %v, want InitialRender", got)
	}
	sub := res.Invocations[0].Content
	if sub == node.Root {
		t.Fatal("virtualized content should live in its own subtree")
	}
	st, _ := w.Scroll().State(list)
	if got := st.MaxOffset(); got != geom.Pt(0, 9600) {
		t.Errorf("MaxOffset() = %v, want (0, 9600) from the virtual size", got)
	}

	if res := frame(t, w, t0, l); len(res.Invocations) != 0 || res.LayoutPasses != 1 {
		t.Errorf("idle frame: invocations = %d, passes = %d", len(res.Invocations), res.LayoutPasses)
	}

	w.Wheel(geom.Pt(100, 100), 0, 250, scroll.DeltaPixel, t0)
	res = frame(t, w, t0, l)
	want := iframe.Reason{Kind: iframe.EdgeScrolled, Edge: iframe.Bottom}
	if len(res.Invocations) != 1 || res.Invocations[0].Reason != want {
		t.Fatalf("invocations = %v, want one %v", res.Invocations, want)
	}
	if res.Invocations[0].Content != sub {
		t.Errorf("content subtree changed from %d to %d", sub, res.Invocations[0].Content)
	}
	if calls != 2 {
		t.Errorf("provider calls = %d, want 2", calls)
	}
	var found bool
	for _, p := range software(t, w).Primitives() {
		if p.Tag.Key() == rowKey(sub, 8) {
			found = true
		}
	}
	if !found {
		t.Error("row 8 should be laid out after scrolling")
	}
}

func TestPanickingProviderDoesNotAbortFrame(t *testing.T) {
	w := NewWindow()
	p := iframe.ProviderFunc(func(iframe.Info) (iframe.Return, error) { panic("boom") })

	res, err := w.Frame(t0, listLayout(p))
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if len(res.Invocations) != 1 || !errors.Is(res.Invocations[0].Err, iframe.ErrProviderPanic) {
		t.Errorf("invocations = %v, want one ErrProviderPanic", res.Invocations)
	}
	if res.LayoutPasses != 1 {
		t.Errorf("LayoutPasses = %d, want 1", res.LayoutPasses)
	}
}

func TestRemovedContainerReleasesState(t *testing.T) {
	w := NewWindow()
	frame(t, w, t0, listLayout(nil))

	res := frame(t, w, t0, LayoutFunc(func(LayoutContext) []NodeLayout { return nil }))
	if len(w.Scroll().Keys()) != 0 {
		t.Errorf("scroll keys = %v, want none", w.Scroll().Keys())
	}
	if !hasEvent(res.Events, gpucache.Removed, gpucache.VerticalScrollbarOpacity) ||
		!hasEvent(res.Events, gpucache.Removed, gpucache.VerticalThumbTransform) {
		t.Errorf("events = %v, want scrollbar values removed", res.Events)
	}
	if !res.Rebuilt || len(software(t, w).Primitives()) != 0 {
		t.Error("display list should be rebuilt empty")
	}
}

func TestDuplicateKeysIgnored(t *testing.T) {
	w := NewWindow()
	l := LayoutFunc(func(LayoutContext) []NodeLayout {
		return []NodeLayout{
			{Key: node.K(node.Root, 1), Rect: geom.R(0, 0, 10, 10)},
			{Key: node.K(node.Root, 1), Rect: geom.R(20, 0, 10, 10)},
		}
	})
	frame(t, w, t0, l)
	prims := software(t, w).Primitives()
	if len(prims) != 1 || prims[0].Rect != geom.R(0, 0, 10, 10) {
		t.Errorf("primitives = %v, want the first node only", prims)
	}
}

func TestAnimatedOpacityBinding(t *testing.T) {
	w := NewWindow()
	opacity := float32(0.5)
	l := LayoutFunc(func(LayoutContext) []NodeLayout {
		return []NodeLayout{{
			Key:            node.K(node.Root, 1),
			Rect:           geom.R(0, 0, 10, 10),
			Opacity:        opacity,
			AnimateOpacity: true,
		}}
	})

	res := frame(t, w, t0, l)
	if !hasEvent(res.Events, gpucache.Added, gpucache.CSSOpacity) {
		t.Fatalf("events = %v, want CSS opacity added", res.Events)
	}
	sw := software(t, w)
	key := sw.Primitives()[0].Opacity
	if key == 0 {
		t.Fatal("primitive should be bound to an opacity key")
	}

	opacity = 0.9
	res = frame(t, w, t0, l)
	if res.Rebuilt {
		t.Error("an opacity change should not rebuild the display list")
	}
	if v, _ := sw.Property(key); v.Opacity != 0.9 {
		t.Errorf("compositor opacity = %v, want 0.9", v.Opacity)
	}
}

func TestScrollIntoView(t *testing.T) {
	w := NewWindow()
	l := listLayout(nil)
	frame(t, w, t0, l)

	if !w.ScrollIntoView(rowKey(node.Root, 15), scroll.AlignStart, scroll.AlignNearest, scroll.Instant, t0) {
		t.Fatal("ScrollIntoView() should scroll")
	}
	res := frame(t, w, t0, l)
	if got := w.Scroll().CurrentOffset(list); got != geom.Pt(0, 1500) {
		t.Errorf("offset = %v, want (0, 1500)", got)
	}
	if !res.Activity.HadProgrammatic {
		t.Error("Activity.HadProgrammatic = false, want true")
	}
	if w.ScrollIntoView(list, scroll.AlignStart, scroll.AlignStart, scroll.Instant, t0) {
		t.Error("a node outside any container cannot be scrolled into view")
	}
}

var errRejected = errors.New("rejected")

type rejectingCompositor struct {
	*compositor.Software
}

func (rejectingCompositor) Commit(compositor.Transaction) error { return errRejected }

func TestCommitErrorReturned(t *testing.T) {
	w := NewWindow(WithCompositor(rejectingCompositor{compositor.NewSoftware()}))
	if _, err := w.Frame(t0, listLayout(nil)); !errors.Is(err, errRejected) {
		t.Errorf("Frame() error = %v, want errRejected", err)
	}
}

var errNotReady = errors.New("device not ready")

// flakyCompositor rejects its first n commits.
type flakyCompositor struct {
	*compositor.Software
	fail int
}

func (c *flakyCompositor) Commit(tx compositor.Transaction) error {
	if c.fail > 0 {
		c.fail--
		return errNotReady
	}
	return c.Software.Commit(tx)
}

func TestFrameRecoversFromRejectedCommit(t *testing.T) {
	c := &flakyCompositor{Software: compositor.NewSoftware(), fail: 1}
	w := NewWindow(WithCompositor(c))
	l := listLayout(nil)

	if _, err := w.Frame(t0, l); !errors.Is(err, errNotReady) {
		t.Fatalf("first Frame() error = %v, want errNotReady", err)
	}

	res := frame(t, w, t0, l)
	if len(res.Events) != 2 ||
		!hasEvent(res.Events, gpucache.Added, gpucache.VerticalScrollbarOpacity) ||
		!hasEvent(res.Events, gpucache.Added, gpucache.VerticalThumbTransform) {
		t.Fatalf("events after a rejected commit = %v, want both values re-added", res.Events)
	}
	for _, e := range res.Events {
		if _, ok := c.Property(e.Key); !ok {
			t.Errorf("compositor does not know %v", e)
		}
	}

	w.Wheel(geom.Pt(100, 100), 0, 3, scroll.DeltaLine, t0)
	res = frame(t, w, t0.Add(100*time.Millisecond), l)
	if !hasEvent(res.Events, gpucache.Changed, gpucache.VerticalThumbTransform) {
		t.Errorf("events = %v, want thumb transform change", res.Events)
	}
	id := w.Scroll().ExternalScrollID(list)
	if got := c.ScrollOffset(id); got != geom.Pt(0, 120) {
		t.Errorf("compositor offset = %v, want (0, 120)", got)
	}
}

func TestNestedScrollbarFollowsContainer(t *testing.T) {
	inner := node.K(node.Root, 3)
	l := LayoutFunc(func(LayoutContext) []NodeLayout {
		return []NodeLayout{
			{Key: list, Rect: geom.R(0, 0, 200, 400), Scroll: true, Content: geom.Sz(200, 2000)},
			{
				Key:      inner,
				Rect:     geom.R(0, 100, 150, 200),
				Parent:   list,
				InParent: true,
				Scroll:   true,
				Content:  geom.Sz(150, 1000),
			},
		}
	})
	w := NewWindow()
	frame(t, w, t0, l)
	w.Scroll().SetOffset(list, geom.Pt(0, 100), t0)
	frame(t, w, t0, l)

	outerID := w.Scroll().ExternalScrollID(list)
	var found int
	for _, p := range software(t, w).Primitives() {
		if !p.Tag.IsScrollbar() || p.Tag.Key() != inner {
			continue
		}
		found++
		if p.ScrollID != outerID || p.Clip != geom.R(0, 0, 200, 400) {
			t.Errorf("%v: scrollID = %d, clip = %v; want %d, outer rect", p.Tag, p.ScrollID, p.Clip, outerID)
		}
	}
	if found != 2 {
		t.Fatalf("inner scrollbar primitives = %d, want track and thumb", found)
	}

	// The inner track now spans window y 0..200 with its [100, 140) thumb
	// at window y 0..40. Window y 110 lies below the thumb.
	if !w.PointerDown(geom.Pt(144, 110), t0) {
		t.Fatal("PointerDown() on the inner track should page")
	}
	if got := w.Scroll().CurrentOffset(inner); got != geom.Pt(0, 200) {
		t.Errorf("inner offset = %v, want (0, 200)", got)
	}
	if got := w.Scroll().CurrentOffset(list); got != geom.Pt(0, 100) {
		t.Errorf("outer offset = %v, want (0, 100)", got)
	}
	frame(t, w, t0, l)

	// Thumb moved to container y 140..180, window y 40..80.
	if !w.PointerDown(geom.Pt(144, 60), t0) {
		t.Fatal("PointerDown() on the inner thumb should start a drag")
	}
	w.PointerMove(geom.Pt(144, 80), t0)
	if got := w.Scroll().CurrentOffset(inner); got != geom.Pt(0, 300) {
		t.Errorf("inner offset after drag = %v, want (0, 300)", got)
	}
	w.PointerUp()
}
