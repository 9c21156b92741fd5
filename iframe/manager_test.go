// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package iframe

import (
	"errors"
	"testing"

	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/node"
)

// countingProvider returns content on the first call and declines after.
type countingProvider struct {
	calls   int
	reasons []Reason
	first   Return
	then    Return
}

func (p *countingProvider) Render(info Info) (Return, error) {
	p.calls++
	p.reasons = append(p.reasons, info.Reason)
	if p.calls == 1 {
		return p.first, nil
	}
	return p.then, nil
}

var list = node.K(node.Root, 5)

func listProvider() *countingProvider {
	return &countingProvider{
		first: Return{Content: "rows", Actual: Region{Size: geom.Sz(600, 2000)}},
	}
}

func TestInitialRender(t *testing.T) {
	m := NewManager(nil)
	bounds := geom.R(0, 0, 600, 600)

	reason, ok := m.CheckReinvoke(list, bounds, geom.Point{})
	if !ok || reason.Kind != InitialRender {
		t.Fatalf("CheckReinvoke() = %v, %v; want InitialRender", reason, ok)
	}

	p := listProvider()
	out := m.Invoke(list, reason, bounds, geom.Point{}, p)
	if out.Declined || !out.ContentChanged || out.Content == 0 {
		t.Errorf("Invoke() = %+v", out)
	}
	if got, ok := m.Content(list); !ok || got != "rows" {
		t.Errorf("Content() = %v, %v; want rows", got, ok)
	}
	if _, ok := m.CheckReinvoke(list, bounds, geom.Point{}); ok {
		t.Error("second check after InitialRender reported a reason")
	}
	st, _ := m.State(list)
	if st.Virtual.Size != geom.Sz(600, 2000) {
		t.Errorf("Virtual = %v, want 600x2000 (covers actual)", st.Virtual.Size)
	}
}

func TestEdgeScrolledHysteresis(t *testing.T) {
	m := NewManager(nil)
	bounds := geom.R(0, 0, 600, 600)
	p := listProvider()

	steps := []struct {
		offset float32
		want   bool
	}{
		{0, true}, // InitialRender
		{0, false},
		{500, false},
		{1000, false},
		{1450, true},
		{1500, false},
		{1000, false},
		{1450, false},
		{990, false},
		{1450, true},
	}
	for i, step := range steps {
		out, ran := m.Update(list, bounds, geom.Pt(0, step.offset), p)
		if ran != step.want {
			t.Fatalf("step %d (offset %v): ran = %v, want %v", i, step.offset, ran, step.want)
		}
		if ran && i > 0 && out.Reason != (Reason{Kind: EdgeScrolled, Edge: Bottom}) {
			t.Errorf("step %d: reason = %v, want EdgeScrolled(Bottom)", i, out.Reason)
		}
	}
	if p.calls != 3 {
		t.Errorf("provider calls = %d, want 3", p.calls)
	}
}

func TestEdgeScrolledAllEdges(t *testing.T) {
	m := NewManager(nil, WithEdgeThreshold(100))
	bounds := geom.R(0, 0, 500, 500)
	p := &countingProvider{first: Return{
		Content: "grid",
		Actual:  Region{Offset: geom.Pt(1000, 1000), Size: geom.Sz(2000, 2000)},
	}}
	center := geom.Pt(1700, 1700)
	m.Update(list, bounds, center, p)

	tests := []struct {
		offset geom.Point
		want   Edge
	}{
		{geom.Pt(1700, 2450), Bottom},
		{geom.Pt(2450, 1700), Right},
		{geom.Pt(1700, 1050), Top},
		{geom.Pt(1050, 1700), Left},
	}
	for _, tt := range tests {
		reason, ok := m.CheckReinvoke(list, bounds, tt.offset)
		if !ok || reason.Kind != EdgeScrolled || reason.Edge != tt.want {
			t.Errorf("CheckReinvoke(%v) = %v, %v; want EdgeScrolled(%v)", tt.offset, reason, ok, tt.want)
		}
		// Back to the center so the latch re-arms.
		if _, ok := m.CheckReinvoke(list, bounds, center); ok {
			t.Errorf("CheckReinvoke(center) after %v reported a reason", tt.want)
		}
	}
}

func TestEdgeIgnoredOnAxisWithoutOverflow(t *testing.T) {
	m := NewManager(nil)
	bounds := geom.R(0, 0, 600, 600)
	m.Update(list, bounds, geom.Point{}, listProvider())
	if reason, ok := m.CheckReinvoke(list, bounds, geom.Pt(0, 700)); ok {
		t.Errorf("CheckReinvoke() = %v; horizontal edges must not fire without overflow", reason)
	}
}

func TestBoundsExpandedOncePerExpansion(t *testing.T) {
	m := NewManager(nil)
	p := &countingProvider{
		first: Return{Content: "v1", Actual: Region{Size: geom.Sz(600, 600)}},
	}
	m.Update(list, geom.R(0, 0, 600, 600), geom.Point{}, p)

	grow := func(h float32) (Reason, bool) {
		out, ran := m.Update(list, geom.R(0, 0, 600, h), geom.Point{}, p)
		return out.Reason, ran
	}

	if r, ran := grow(800); !ran || r.Kind != BoundsExpanded {
		t.Fatalf("grow(800) = %v, %v; want BoundsExpanded", r, ran)
	}
	for range 3 {
		if r, ran := grow(800); ran {
			t.Fatalf("repeated frame at 800 invoked again with %v", r)
		}
	}
	if r, ran := grow(900); !ran || r.Kind != BoundsExpanded {
		t.Fatalf("grow(900) = %v, %v; want BoundsExpanded for a further expansion", r, ran)
	}
	if p.calls != 3 {
		t.Errorf("provider calls = %d, want 3", p.calls)
	}
	if grow(850); p.calls != 3 {
		t.Error("shrinking bounds invoked the provider")
	}
}

func TestBoundsExpandedLatchClearsWhenCovered(t *testing.T) {
	m := NewManager(nil)
	p := &countingProvider{
		first: Return{Content: "v1", Actual: Region{Size: geom.Sz(600, 600)}},
		then:  Return{Content: "v2", Actual: Region{Size: geom.Sz(600, 1000)}},
	}
	m.Update(list, geom.R(0, 0, 600, 600), geom.Point{}, p)
	m.Update(list, geom.R(0, 0, 600, 900), geom.Point{}, p)

	st, _ := m.State(list)
	if st.Expansion {
		t.Error("expansion latch still set after the provider covered the bounds")
	}
	if _, ran := m.Update(list, geom.R(0, 0, 600, 950), geom.Point{}, p); ran {
		t.Error("growth inside the actual region invoked the provider")
	}
}

func TestDeclineKeepsContentAndAdoptsRegions(t *testing.T) {
	m := NewManager(nil)
	bounds := geom.R(0, 0, 600, 600)
	p := listProvider()
	p.then = Return{Actual: Region{Size: geom.Sz(600, 3000)}, Virtual: Region{Size: geom.Sz(600, 100000)}}
	first := m.Invoke(list, Reason{Kind: InitialRender}, bounds, geom.Point{}, p)

	m.ForceReinvoke(list)
	out, ran := m.Update(list, bounds, geom.Point{}, p)
	if !ran || out.Reason.Kind != InitialRender {
		t.Fatalf("Update() after ForceReinvoke = %+v, %v", out, ran)
	}
	if !out.Declined || out.ContentChanged || !out.RegionsChanged {
		t.Errorf("Outcome = %+v, want declined with changed regions", out)
	}
	if out.Content != first.Content {
		t.Errorf("subtree id changed: %d -> %d", first.Content, out.Content)
	}
	if got, _ := m.Content(list); got != "rows" {
		t.Errorf("Content() = %v, want cached rows", got)
	}
	if size, _ := m.VirtualSize(list); size != geom.Sz(600, 100000) {
		t.Errorf("VirtualSize() = %v, want 600x100000", size)
	}
}

func TestVirtualCoversActual(t *testing.T) {
	m := NewManager(nil)
	p := ProviderFunc(func(Info) (Return, error) {
		return Return{
			Content: "x",
			Actual:  Region{Size: geom.Sz(800, 900)},
			Virtual: Region{Size: geom.Sz(100, 5000)},
		}, nil
	})
	m.Update(list, geom.R(0, 0, 400, 400), geom.Point{}, p)
	if size, _ := m.VirtualSize(list); size != geom.Sz(800, 5000) {
		t.Errorf("VirtualSize() = %v, want 800x5000", size)
	}
}

func TestVirtualCoversActualOffset(t *testing.T) {
	m := NewManager(nil)
	p := ProviderFunc(func(Info) (Return, error) {
		return Return{
			Content: "tail",
			Actual:  Region{Offset: geom.Pt(0, 1500), Size: geom.Sz(200, 1000)},
			Virtual: Region{Size: geom.Sz(200, 2000)},
		}, nil
	})
	m.Update(list, geom.R(0, 0, 200, 400), geom.Pt(0, 1600), p)
	st, _ := m.State(list)
	want := Region{Size: geom.Sz(200, 2500)}
	if st.Virtual != want {
		t.Errorf("Virtual = %v, want %v", st.Virtual, want)
	}
}

func TestFailingProviderIsDecline(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		p       Provider
		wantErr error
	}{
		{"error", ProviderFunc(func(Info) (Return, error) { return Return{}, boom }), boom},
		{"panic", ProviderFunc(func(Info) (Return, error) { panic("bad provider") }), ErrProviderPanic},
		{"nil", nil, ErrNoProvider},
		{"invalid", ProviderFunc(func(Info) (Return, error) {
			return Return{Content: "x", Actual: Region{Size: geom.Sz(-1, 10)}}, nil
		}), ErrInvalidRegion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(nil)
			bounds := geom.R(0, 0, 600, 600)
			m.Update(list, bounds, geom.Point{}, listProvider())
			m.ForceReinvoke(list)

			out, ran := m.Update(list, bounds, geom.Point{}, tt.p)
			if !ran || !out.Declined || !errors.Is(out.Err, tt.wantErr) {
				t.Errorf("Update() = %+v, %v; want declined with %v", out, ran, tt.wantErr)
			}
			if got, _ := m.Content(list); got != "rows" {
				t.Errorf("Content() = %v, want cached rows", got)
			}
			if st, _ := m.State(list); st.Actual.Size != geom.Sz(600, 2000) {
				t.Errorf("Actual = %v, want unchanged", st.Actual.Size)
			}
		})
	}
}

func TestLoopGuard(t *testing.T) {
	m := NewManager(nil)
	bounds := geom.R(0, 0, 600, 600)
	p := listProvider()
	p.then = p.first // re-renders the same actual region every time
	m.Update(list, bounds, geom.Point{}, p)

	for range 5 {
		m.Update(list, bounds, geom.Pt(0, 1450), p)
	}
	if p.calls != 2 {
		t.Errorf("provider calls = %d, want 2", p.calls)
	}
}

func TestEdgeRearmedByGrowth(t *testing.T) {
	m := NewManager(nil)
	bounds := geom.R(0, 0, 600, 600)
	p := listProvider()
	p.then = Return{Content: "more rows", Actual: Region{Size: geom.Sz(600, 4000)}}
	m.Update(list, bounds, geom.Point{}, p)

	if out, ran := m.Update(list, bounds, geom.Pt(0, 1450), p); !ran || !out.ContentChanged {
		t.Fatalf("Update() at 1450 = %+v, %v", out, ran)
	}
	if st, _ := m.State(list); st.Edges.Has(Bottom) {
		t.Error("Bottom still latched after growth moved it out of the zone")
	}
}

func TestRemoveReleasesNestedSubtrees(t *testing.T) {
	arena := node.NewArena()
	m := NewManager(arena)
	bounds := geom.R(0, 0, 100, 100)
	out := m.Invoke(list, Reason{}, bounds, geom.Point{}, ProviderFunc(func(Info) (Return, error) {
		return Return{Content: "outer"}, nil
	}))
	inner := node.K(out.Content, 3)
	m.Invoke(inner, Reason{}, bounds, geom.Point{}, ProviderFunc(func(Info) (Return, error) {
		return Return{Content: "inner"}, nil
	}))
	if m.Len() != 2 || arena.Len() != 2 {
		t.Fatalf("Len() = %d, arena %d; want 2, 2", m.Len(), arena.Len())
	}

	freed := m.Remove(list)
	if len(freed) != 2 {
		t.Errorf("Remove() freed %v, want 2 subtrees", freed)
	}
	if m.Len() != 0 || arena.Len() != 0 {
		t.Errorf("after Remove: Len() = %d, arena %d", m.Len(), arena.Len())
	}
}

func TestResetAllAndInfos(t *testing.T) {
	m := NewManager(nil)
	a, b := node.K(0, 9), node.K(0, 2)
	for _, k := range []node.Key{a, b} {
		m.Update(k, geom.R(0, 0, 10, 10), geom.Point{}, listProvider())
	}
	m.ResetAll()
	for _, k := range []node.Key{a, b} {
		if r, ok := m.CheckReinvoke(k, geom.R(0, 0, 10, 10), geom.Point{}); !ok || r.Kind != InitialRender {
			t.Errorf("CheckReinvoke(%v) after ResetAll = %v, %v", k, r, ok)
		}
	}
	infos := m.Infos()
	if len(infos) != 2 || infos[0].Key != b || infos[1].Key != a {
		t.Errorf("Infos() = %+v, want sorted by key", infos)
	}
}

func TestCallbackCarriesData(t *testing.T) {
	cb := Callback{
		Data: 42,
		Fn: func(data any, info Info) (Return, error) {
			return Return{Content: data}, nil
		},
	}
	m := NewManager(nil)
	m.Update(list, geom.R(0, 0, 10, 10), geom.Point{}, cb)
	if got, _ := m.Content(list); got != 42 {
		t.Errorf("Content() = %v, want 42", got)
	}
	if _, err := (Callback{}).Render(Info{}); !errors.Is(err, ErrNoProvider) {
		t.Errorf("empty Callback error = %v, want ErrNoProvider", err)
	}
}

func TestReasonString(t *testing.T) {
	if got := (Reason{Kind: EdgeScrolled, Edge: Right}).String(); got != "EdgeScrolled(Right)" {
		t.Errorf("String() = %q", got)
	}
	if got := EdgeFlags(0).With(Top).With(Left).String(); got != "Top|Left" {
		t.Errorf("EdgeFlags.String() = %q", got)
	}
}
