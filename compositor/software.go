// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/gpucache"
	"github.com/gogpu/ggscroll/hittest"
	"github.com/gogpu/ggscroll/internal/logging"
)

// Software is a CPU compositor holding the retained scene.
//
// Software is not safe for concurrent use. It belongs to a single window.
type Software struct {
	prims   []Primitive
	props   map[gpucache.OpaqueKey]gpucache.Value
	offsets map[uint64]geom.Point
	damage  Damage
	commits int
	lists   int
	logger  *slog.Logger
}

// NewSoftware creates an empty Software compositor.
func NewSoftware() *Software {
	return &Software{
		props:   make(map[gpucache.OpaqueKey]gpucache.Value),
		offsets: make(map[uint64]geom.Point),
		logger:  logging.Nop(),
	}
}

// SetLogger replaces the diagnostics logger. Nil restores silence.
func (s *Software) SetLogger(l *slog.Logger) {
	s.logger = logging.OrNop(l)
}

// SetDisplayList replaces the retained primitives and requests a full
// redraw. Primitives are kept sorted by Z, stable within equal Z.
func (s *Software) SetDisplayList(prims []Primitive) {
	s.prims = slices.Clone(prims)
	slices.SortStableFunc(s.prims, func(a, b Primitive) int { return a.Z - b.Z })
	s.lists++
	s.damage.InvalidateAll()
	s.logger.Debug("compositor: display list", "primitives", len(s.prims))
}

// Primitives returns the retained primitives in paint order.
func (s *Software) Primitives() []Primitive {
	return s.prims
}

// Commit validates tx and applies it atomically.
func (s *Software) Commit(tx Transaction) error {
	if err := s.validate(tx); err != nil {
		return err
	}

	touched := make(map[gpucache.OpaqueKey]bool)
	for _, e := range tx.Events {
		touched[e.Key] = true
	}
	scrolled := make(map[uint64]bool)
	for _, so := range tx.ScrollOffsets {
		if s.offsets[so.ID] != so.Offset {
			scrolled[so.ID] = true
		}
	}
	affected := func(p Primitive) bool {
		return touched[p.Opacity] && p.Opacity != 0 ||
			touched[p.Transform] && p.Transform != 0 ||
			scrolled[p.ScrollID] && p.ScrollID != 0
	}

	for _, p := range s.prims {
		if affected(p) {
			s.damage.Invalidate(s.windowBounds(p))
		}
	}
	for _, e := range tx.Events {
		switch e.Op {
		case gpucache.Added, gpucache.Changed:
			s.props[e.Key] = e.New
		case gpucache.Removed:
			delete(s.props, e.Key)
		}
	}
	for _, so := range tx.ScrollOffsets {
		s.offsets[so.ID] = so.Offset
	}
	for _, p := range s.prims {
		if affected(p) {
			s.damage.Invalidate(s.windowBounds(p))
		}
	}
	s.commits++
	return nil
}

func (s *Software) validate(tx Transaction) error {
	live := make(map[gpucache.OpaqueKey]bool, len(tx.Events))
	exists := func(k gpucache.OpaqueKey) bool {
		if v, ok := live[k]; ok {
			return v
		}
		_, ok := s.props[k]
		return ok
	}
	for _, e := range tx.Events {
		switch e.Op {
		case gpucache.Added:
			live[e.Key] = true
		case gpucache.Changed:
			if !exists(e.Key) {
				return fmt.Errorf("%w: changed #%d (%s)", ErrUnknownKey, e.Key, e.Identity)
			}
		case gpucache.Removed:
			if !exists(e.Key) {
				return fmt.Errorf("%w: removed #%d (%s)", ErrUnknownKey, e.Key, e.Identity)
			}
			live[e.Key] = false
		}
	}
	for _, so := range tx.ScrollOffsets {
		if !so.Offset.IsFinite() {
			return fmt.Errorf("%w: frame %d", ErrInvalidOffset, so.ID)
		}
	}
	return nil
}

// Property returns the current value bound to key.
func (s *Software) Property(key gpucache.OpaqueKey) (gpucache.Value, bool) {
	v, ok := s.props[key]
	return v, ok
}

// ScrollOffset returns the offset of scroll frame id.
func (s *Software) ScrollOffset(id uint64) geom.Point {
	return s.offsets[id]
}

// Commits returns the number of applied transactions.
func (s *Software) Commits() int {
	return s.commits
}

// DisplayLists returns how many display lists were received.
func (s *Software) DisplayLists() int {
	return s.lists
}

// Damage returns the accumulated damage.
func (s *Software) Damage() *Damage {
	return &s.damage
}

// opacity returns the effective opacity of p.
func (s *Software) opacity(p Primitive) float32 {
	if p.Opacity == 0 {
		return 1
	}
	return s.props[p.Opacity].Opacity
}

// transform returns the bound transform of p.
func (s *Software) transform(p Primitive) geom.Transform {
	if p.Transform == 0 {
		return geom.Identity()
	}
	v, ok := s.props[p.Transform]
	if !ok {
		return geom.Identity()
	}
	return v.Transform
}

// windowBounds returns the window-space bounding box of p after its
// transform, scroll offset and clip.
func (s *Software) windowBounds(p Primitive) geom.Rect {
	t := s.transform(p)
	r := p.Rect
	corners := [4]geom.Point{
		t.TransformPoint(geom.Pt(r.MinX(), r.MinY())),
		t.TransformPoint(geom.Pt(r.MaxX(), r.MinY())),
		t.TransformPoint(geom.Pt(r.MinX(), r.MaxY())),
		t.TransformPoint(geom.Pt(r.MaxX(), r.MaxY())),
	}
	x0, y0, x1, y1 := corners[0].X, corners[0].Y, corners[0].X, corners[0].Y
	for _, c := range corners[1:] {
		x0, y0 = min(x0, c.X), min(y0, c.Y)
		x1, y1 = max(x1, c.X), max(y1, c.Y)
	}
	out := geom.R(x0, y0, x1-x0, y1-y0)
	if p.ScrollID != 0 {
		out = out.Translate(s.offsets[p.ScrollID].Mul(-1))
	}
	if !p.Clip.IsEmpty() {
		out = out.Intersect(p.Clip)
	}
	return out
}

// HitTest returns the tag of the topmost hit-testable primitive under the
// window point pt, honoring clips, scroll offsets and bound transforms.
func (s *Software) HitTest(pt geom.Point) (hittest.Tag, bool) {
	for i := len(s.prims) - 1; i >= 0; i-- {
		p := s.prims[i]
		if p.Tag == (hittest.Tag{}) {
			continue
		}
		if !p.Clip.IsEmpty() && !p.Clip.Contains(pt) {
			continue
		}
		local := pt
		if p.ScrollID != 0 {
			local = local.Add(s.offsets[p.ScrollID])
		}
		if p.Transform != 0 {
			inv, ok := s.transform(p).Invert()
			if !ok {
				continue
			}
			local = inv.TransformPoint(local)
		}
		if p.Rect.Contains(local) {
			return p.Tag, true
		}
	}
	return hittest.Tag{}, false
}

var _ Compositor = (*Software)(nil)
