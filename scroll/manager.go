// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scroll

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/internal/logging"
	"github.com/gogpu/ggscroll/node"
)

// offsetEpsilon is the smallest offset change reported as movement.
const offsetEpsilon = 1e-3

// Option configures a Manager during creation.
type Option func(*Manager)

// WithThickness sets the scrollbar thickness used for geometry.
func WithThickness(px float32) Option {
	return func(m *Manager) {
		if px > 0 {
			m.thickness = px
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logging.OrNop(l)
	}
}

// Manager tracks scroll state for every scrollable node of one window.
type Manager struct {
	states    map[node.Key]*State
	scrollIDs map[node.Key]uint64
	nextID    uint64
	thickness float32
	logger    *slog.Logger

	hadActivity     bool
	hadProgrammatic bool
	hadNewNodes     bool
}

// NewManager creates an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		states:    make(map[node.Key]*State),
		scrollIDs: make(map[node.Key]uint64),
		nextID:    1,
		thickness: DefaultThickness,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetLogger replaces the diagnostics logger. Nil restores silence.
func (m *Manager) SetLogger(l *slog.Logger) {
	m.logger = logging.OrNop(l)
}

// Thickness returns the scrollbar thickness used for geometry.
func (m *Manager) Thickness() float32 {
	return m.thickness
}

// BeginFrame resets per-frame activity flags and snapshots offsets so that
// PendingEvents can report this frame's deltas.
func (m *Manager) BeginFrame() {
	m.hadActivity = false
	m.hadProgrammatic = false
	m.hadNewNodes = false
	for _, s := range m.states {
		s.previous = s.Offset
	}
}

// EndFrame returns the activity summary since BeginFrame.
func (m *Manager) EndFrame() FrameInfo {
	return FrameInfo{
		HadActivity:     m.hadActivity,
		HadProgrammatic: m.hadProgrammatic,
		HadNewNodes:     m.hadNewNodes,
	}
}

// UpdateBounds registers a scrollable node on first sight and records the
// container rectangle and content size produced by layout. The offset is
// re-clamped to the new bounds.
func (m *Manager) UpdateBounds(key node.Key, container geom.Rect, content geom.Size, now time.Time) {
	s, ok := m.states[key]
	if !ok {
		s = &State{LastActivity: now}
		m.states[key] = s
		m.hadNewNodes = true
	}
	s.Container = container
	s.Content = content
	m.reclamp(s)
}

// SetVirtualSize records the virtual content size of a node. A zero size
// clears it. Unknown nodes are ignored.
func (m *Manager) SetVirtualSize(key node.Key, virtual geom.Size) {
	s, ok := m.states[key]
	if !ok {
		return
	}
	s.Virtual = virtual
	m.reclamp(s)
}

func (m *Manager) reclamp(s *State) {
	s.Offset = s.Clamp(s.Offset)
	if s.anim != nil {
		s.anim.target = s.Clamp(s.anim.target)
	}
}

// Remove forgets a node that left the tree.
func (m *Manager) Remove(key node.Key) {
	delete(m.states, key)
	delete(m.scrollIDs, key)
}

// Keys returns all registered nodes in key order.
func (m *Manager) Keys() []node.Key {
	keys := make([]node.Key, 0, len(m.states))
	for k := range m.states {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, node.Key.Compare)
	return keys
}

// State returns a copy of the node's scroll state.
func (m *Manager) State(key node.Key) (State, bool) {
	s, ok := m.states[key]
	if !ok {
		return State{}, false
	}
	return *s, true
}

// CurrentOffset returns the node's offset, or zero for unknown nodes.
func (m *Manager) CurrentOffset(key node.Key) geom.Point {
	if s, ok := m.states[key]; ok {
		return s.Offset
	}
	return geom.Point{}
}

// LastActivity returns the time of the node's last offset change.
func (m *Manager) LastActivity(key node.Key) (time.Time, bool) {
	s, ok := m.states[key]
	if !ok {
		return time.Time{}, false
	}
	return s.LastActivity, true
}

// RecordDelta accumulates a user scroll delta in logical pixels and clamps
// the result. Non-finite components are ignored. Any smooth scroll in
// flight is cancelled. It reports whether the offset changed.
func (m *Manager) RecordDelta(key node.Key, dx, dy float32, now time.Time) bool {
	s, ok := m.states[key]
	if !ok {
		m.logger.Debug("scroll: delta for unknown node", "node", key.String())
		return false
	}
	if !geom.IsFinite(dx) {
		dx = 0
	}
	if !geom.IsFinite(dy) {
		dy = 0
	}
	return m.set(s, s.Offset.Add(geom.Pt(dx, dy)), SourceUser, now)
}

// SetOffset sets the absolute offset of a node, clamped to the valid range.
// Non-finite components keep their current value. It reports whether the
// offset changed.
func (m *Manager) SetOffset(key node.Key, p geom.Point, now time.Time) bool {
	s, ok := m.states[key]
	if !ok {
		m.logger.Debug("scroll: offset for unknown node", "node", key.String())
		return false
	}
	if !geom.IsFinite(p.X) {
		p.X = s.Offset.X
	}
	if !geom.IsFinite(p.Y) {
		p.Y = s.Offset.Y
	}
	return m.set(s, p, SourceUser, now)
}

func (m *Manager) set(s *State, p geom.Point, src Source, now time.Time) bool {
	s.anim = nil
	next := s.Clamp(p)
	if next.ApproxEqual(s.Offset, 0) {
		return false
	}
	s.Offset = next
	s.LastActivity = now
	s.source = src
	m.hadActivity = true
	return true
}

// ScrollTo starts a smooth scroll toward target. A non-positive duration
// sets the offset immediately.
func (m *Manager) ScrollTo(key node.Key, target geom.Point, duration time.Duration, easing Easing, now time.Time) {
	s, ok := m.states[key]
	if !ok {
		m.logger.Debug("scroll: scrollTo for unknown node", "node", key.String())
		return
	}
	m.hadProgrammatic = true
	if !target.IsFinite() {
		return
	}
	if duration <= 0 {
		m.set(s, target, SourceProgrammatic, now)
		return
	}
	target = s.Clamp(target)
	if target.ApproxEqual(s.Offset, offsetEpsilon) {
		s.anim = nil
		return
	}
	// Activity is stamped by Tick once the offset actually moves.
	s.anim = &animation{
		start:    now,
		duration: duration,
		from:     s.Offset,
		target:   target,
		easing:   easing,
	}
	s.source = SourceProgrammatic
}

// ScrollBy starts a smooth scroll by delta relative to the current offset.
func (m *Manager) ScrollBy(key node.Key, delta geom.Point, duration time.Duration, easing Easing, now time.Time) {
	m.ScrollTo(key, m.CurrentOffset(key).Add(delta), duration, easing, now)
}

// Tick advances all smooth scrolls to now.
func (m *Manager) Tick(now time.Time) TickResult {
	var res TickResult
	for _, key := range m.Keys() {
		s := m.states[key]
		a := s.anim
		if a == nil {
			continue
		}
		t := float32(1)
		if elapsed := now.Sub(a.start); elapsed < a.duration {
			t = float32(float64(max(elapsed, 0)) / float64(a.duration))
		}
		next := s.Clamp(a.from.Lerp(a.target, a.easing.Apply(t)))
		if t >= 1 {
			s.anim = nil
		}
		if next.ApproxEqual(s.Offset, offsetEpsilon) && s.anim != nil {
			continue
		}
		if next != s.Offset {
			s.Offset = next
			s.LastActivity = now
			m.hadActivity = true
			res.NeedsRepaint = true
			res.Updated = append(res.Updated, key)
		}
	}
	return res
}

// ScrollbarOpacity returns the fade opacity of the node's scrollbars at
// now. Unknown nodes report fully visible.
func (m *Manager) ScrollbarOpacity(key node.Key, now time.Time, fadeDelay, fadeDuration time.Duration) float32 {
	s, ok := m.states[key]
	if !ok {
		return 1
	}
	return FadeOpacity(now.Sub(s.LastActivity), fadeDelay, fadeDuration)
}

// Scrollbar returns the derived geometry of one of the node's scrollbars.
func (m *Manager) Scrollbar(key node.Key, o Orientation) (Scrollbar, bool) {
	s, ok := m.states[key]
	if !ok {
		return Scrollbar{}, false
	}
	size := s.ScrollSize()
	reserve := s.NeedsScrollbar(Vertical) && s.NeedsScrollbar(Horizontal)
	return ComputeScrollbar(s.Container, size, s.Offset, o, m.thickness, reserve), true
}

// ExternalScrollID returns the compositor scroll-clip id of a node,
// allocating one on first use. Ids are never reused within a Manager.
func (m *Manager) ExternalScrollID(key node.Key) uint64 {
	if id, ok := m.scrollIDs[key]; ok {
		return id
	}
	id := m.nextID
	m.nextID++
	m.scrollIDs[key] = id
	return id
}

// PendingEvents returns one event per node whose offset moved since
// BeginFrame, in key order.
func (m *Manager) PendingEvents() []Event {
	var events []Event
	for _, key := range m.Keys() {
		s := m.states[key]
		d := s.Offset.Sub(s.previous)
		if geom.Abs(d.X) <= offsetEpsilon && geom.Abs(d.Y) <= offsetEpsilon {
			continue
		}
		events = append(events, Event{Key: key, Delta: d, Offset: s.Offset, Source: s.source})
	}
	return events
}
