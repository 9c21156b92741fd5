// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package iframe

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/internal/logging"
	"github.com/gogpu/ggscroll/node"
)

// DefaultEdgeThreshold is the distance in logical pixels from an
// actual-region edge within which the viewport counts as near the edge.
const DefaultEdgeThreshold float32 = 200

// State is the invocation state of one virtualized node.
type State struct {
	// Invoked is false until the first invocation and after ForceReinvoke.
	Invoked bool

	LastInvokedBounds geom.Rect
	LastInvokedOffset geom.Point

	// Actual is the region that is really rendered; Virtual is the region
	// the node pretends to have. Virtual covers Actual.
	Actual  Region
	Virtual Region

	// Edges holds the edges already invoked for.
	Edges EdgeFlags

	// Expansion is latched after a BoundsExpanded invocation until the
	// actual region covers the bounds. ExpansionBounds records the bounds
	// at which it latched.
	Expansion       bool
	ExpansionBounds geom.Size

	// Content is the arena subtree holding the node's content.
	Content node.SubtreeID
}

// Outcome describes one invocation.
type Outcome struct {
	Reason Reason

	// Declined is true if the provider kept its cached content, including
	// failures.
	Declined bool

	// Err is the provider failure, if any. Failures never propagate.
	Err error

	// Content is the node's subtree id; stable for the node's lifetime.
	Content node.SubtreeID

	// ContentChanged is true if new content was stored.
	ContentChanged bool

	// RegionsChanged is true if the actual or virtual region changed.
	RegionsChanged bool

	// Freed lists nested subtrees released because their owner content
	// was replaced.
	Freed []node.SubtreeID
}

// Option configures a Manager during creation.
type Option func(*Manager)

// WithEdgeThreshold sets the edge detection threshold.
func WithEdgeThreshold(px float32) Option {
	return func(m *Manager) {
		if px > 0 {
			m.threshold = px
		}
	}
}

// WithLogger sets the logger used for provider failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logging.OrNop(l)
	}
}

// Manager tracks every virtualized node of one window.
type Manager struct {
	states    map[node.Key]*State
	arena     *node.Arena
	threshold float32
	logger    *slog.Logger
}

// NewManager creates a Manager storing content in arena. A nil arena
// selects a private one.
func NewManager(arena *node.Arena, opts ...Option) *Manager {
	if arena == nil {
		arena = node.NewArena()
	}
	m := &Manager{
		states:    make(map[node.Key]*State),
		arena:     arena,
		threshold: DefaultEdgeThreshold,
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

// EdgeThreshold returns the configured edge threshold.
func (m *Manager) EdgeThreshold() float32 {
	return m.threshold
}

// Arena returns the arena holding content subtrees.
func (m *Manager) Arena() *node.Arena {
	return m.arena
}

// CheckReinvoke reports whether key needs its provider invoked, given the
// layout bounds and scroll offset of this frame. A positive answer latches
// the reason so it is reported once.
func (m *Manager) CheckReinvoke(key node.Key, bounds geom.Rect, offset geom.Point) (Reason, bool) {
	s, ok := m.states[key]
	if !ok || !s.Invoked {
		return Reason{Kind: InitialRender}, true
	}

	if m.expansionPending(s, bounds.Size) {
		s.Expansion = true
		s.ExpansionBounds = bounds.Size
		return Reason{Kind: BoundsExpanded}, true
	}

	m.rearmEdges(s, bounds, offset)
	for _, e := range edgeOrder {
		if s.Edges.Has(e) || !scrollable(s, bounds.Size, e) {
			continue
		}
		if distance(s, bounds, offset, e) < m.threshold {
			s.Edges = s.Edges.With(e)
			return Reason{Kind: EdgeScrolled, Edge: e}, true
		}
	}
	return Reason{}, false
}

func (m *Manager) expansionPending(s *State, size geom.Size) bool {
	if !size.Exceeds(s.LastInvokedBounds.Size) || s.Actual.Size.Covers(size) {
		return false
	}
	if !s.Expansion {
		return true
	}
	return size.Exceeds(s.ExpansionBounds)
}

// rearmEdges clears latched edges the viewport has left by more than one
// threshold beyond the trigger zone.
func (m *Manager) rearmEdges(s *State, bounds geom.Rect, offset geom.Point) {
	for _, e := range edgeOrder {
		if s.Edges.Has(e) && distance(s, bounds, offset, e) > 2*m.threshold {
			s.Edges = s.Edges.Without(e)
		}
	}
}

// latchInZone latches every edge the viewport is currently near, so
// that content which starts at an edge does not immediately re-trigger.
func (m *Manager) latchInZone(s *State, bounds geom.Rect, offset geom.Point) {
	for _, e := range edgeOrder {
		if scrollable(s, bounds.Size, e) && distance(s, bounds, offset, e) < m.threshold {
			s.Edges = s.Edges.With(e)
		}
	}
}

// scrollable reports whether e can be approached: the node must scroll
// along e's axis, and a start edge needs unrendered space before it.
func scrollable(s *State, size geom.Size, e Edge) bool {
	switch e {
	case Top:
		return s.Virtual.Size.Height > size.Height && s.Actual.Offset.Y > s.Virtual.Offset.Y
	case Bottom:
		return s.Virtual.Size.Height > size.Height
	case Left:
		return s.Virtual.Size.Width > size.Width && s.Actual.Offset.X > s.Virtual.Offset.X
	default:
		return s.Virtual.Size.Width > size.Width
	}
}

// distance is the gap between the viewport edge and the matching edge of
// the actual region. It is negative when the viewport extends past it.
func distance(s *State, bounds geom.Rect, offset geom.Point, e Edge) float32 {
	a := s.Actual
	switch e {
	case Top:
		return offset.Y - a.Offset.Y
	case Bottom:
		return (a.Offset.Y + a.Size.Height) - (offset.Y + bounds.Size.Height)
	case Left:
		return offset.X - a.Offset.X
	default:
		return (a.Offset.X + a.Size.Width) - (offset.X + bounds.Size.Width)
	}
}

// Invoke runs p for key and records the result. Provider errors and panics
// are logged and handled as a decline that adopts nothing.
func (m *Manager) Invoke(key node.Key, reason Reason, bounds geom.Rect, offset geom.Point, p Provider) Outcome {
	s, ok := m.states[key]
	if !ok {
		s = &State{Content: m.arena.Alloc(key, nil)}
		m.states[key] = s
	}
	out := Outcome{Reason: reason, Content: s.Content}

	ret, err := call(p, Info{
		Key:     key,
		Reason:  reason,
		Bounds:  bounds,
		Offset:  offset,
		Actual:  s.Actual,
		Virtual: s.Virtual,
	})
	if err == nil && (!ret.Actual.valid() || !ret.Virtual.valid()) {
		err = ErrInvalidRegion
	}
	if err != nil {
		m.logger.Warn("iframe: content provider failed",
			"node", key.String(), "reason", reason.String(), "err", err)
		// Invoked stays set so a failing provider is retried at most once
		// more, through BoundsExpanded.
		s.Invoked = true
		out.Declined = true
		out.Err = err
		return out
	}

	prevActual, prevVirtual := s.Actual, s.Virtual
	actual, virtual := ret.Actual, ret.Virtual
	if ret.Content == nil {
		out.Declined = true
		if actual.IsZero() {
			actual = prevActual
		}
		if virtual.IsZero() {
			virtual = prevVirtual
		}
	} else {
		out.Freed = m.arena.Replace(s.Content, ret.Content)
		m.dropStates(out.Freed)
		out.ContentChanged = true
		if actual.Size.IsZero() {
			actual.Size = bounds.Size
		}
	}
	virtual = virtual.cover(actual)

	s.Actual, s.Virtual = actual, virtual
	s.Invoked = true
	s.LastInvokedBounds = bounds
	s.LastInvokedOffset = offset
	out.RegionsChanged = actual != prevActual || virtual != prevVirtual

	// An unchanged actual region must not re-arm anything, or a provider
	// that never grows would be invoked every frame.
	if actual != prevActual {
		if s.Expansion && actual.Size.Covers(bounds.Size) {
			s.Expansion = false
		}
		for _, e := range edgeOrder {
			if s.Edges.Has(e) && distance(s, bounds, offset, e) >= m.threshold {
				s.Edges = s.Edges.Without(e)
			}
		}
	}
	m.latchInZone(s, bounds, offset)

	m.logger.Debug("iframe: invoked",
		"node", key.String(), "reason", reason.String(),
		"declined", out.Declined, "actual", actual.Size, "virtual", virtual.Size)
	return out
}

func call(p Provider, info Info) (ret Return, err error) {
	if p == nil {
		return Return{}, ErrNoProvider
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrProviderPanic, r)
		}
	}()
	return p.Render(info)
}

// Update checks key and invokes p if needed. It reports whether p ran.
func (m *Manager) Update(key node.Key, bounds geom.Rect, offset geom.Point, p Provider) (Outcome, bool) {
	reason, ok := m.CheckReinvoke(key, bounds, offset)
	if !ok {
		return Outcome{}, false
	}
	return m.Invoke(key, reason, bounds, offset, p), true
}

// ForceReinvoke makes the next check of key report InitialRender.
// It reports whether key is known.
func (m *Manager) ForceReinvoke(key node.Key) bool {
	s, ok := m.states[key]
	if !ok {
		return false
	}
	reset(s)
	return true
}

// ResetAll makes the next check of every node report InitialRender.
func (m *Manager) ResetAll() {
	for _, s := range m.states {
		reset(s)
	}
}

func reset(s *State) {
	s.Invoked = false
	s.Expansion = false
	s.Edges = 0
}

// Remove forgets key and releases its content subtree and every subtree
// nested in it. It returns the released subtree ids.
func (m *Manager) Remove(key node.Key) []node.SubtreeID {
	s, ok := m.states[key]
	if !ok {
		return nil
	}
	delete(m.states, key)
	freed := m.arena.Free(s.Content)
	m.dropStates(freed)
	return freed
}

// dropStates forgets nodes that lived inside released subtrees.
func (m *Manager) dropStates(freed []node.SubtreeID) {
	if len(freed) == 0 {
		return
	}
	for key := range m.states {
		if _, found := slices.BinarySearch(freed, key.Subtree); found {
			delete(m.states, key)
		}
	}
}

// State returns a copy of key's state.
func (m *Manager) State(key node.Key) (State, bool) {
	s, ok := m.states[key]
	if !ok {
		return State{}, false
	}
	return *s, true
}

// Content returns the content last produced for key.
func (m *Manager) Content(key node.Key) (any, bool) {
	s, ok := m.states[key]
	if !ok {
		return nil, false
	}
	c, ok := m.arena.Content(s.Content)
	return c, ok && c != nil
}

// VirtualSize returns the size key's scrollbars should reflect.
func (m *Manager) VirtualSize(key node.Key) (geom.Size, bool) {
	s, ok := m.states[key]
	if !ok || !s.Invoked {
		return geom.Size{}, false
	}
	return s.Virtual.Size, true
}

// DebugInfo is a snapshot of one node for diagnostics.
type DebugInfo struct {
	Key               node.Key
	Content           node.SubtreeID
	Invoked           bool
	Actual            Region
	Virtual           Region
	LastInvokedBounds geom.Rect
	Edges             EdgeFlags
	Expansion         bool
}

// Infos returns a snapshot of every node in key order.
func (m *Manager) Infos() []DebugInfo {
	infos := make([]DebugInfo, 0, len(m.states))
	for key, s := range m.states {
		infos = append(infos, DebugInfo{
			Key:               key,
			Content:           s.Content,
			Invoked:           s.Invoked,
			Actual:            s.Actual,
			Virtual:           s.Virtual,
			LastInvokedBounds: s.LastInvokedBounds,
			Edges:             s.Edges,
			Expansion:         s.Expansion,
		})
	}
	slices.SortFunc(infos, func(a, b DebugInfo) int { return a.Key.Compare(b.Key) })
	return infos
}

// Len returns the number of tracked nodes.
func (m *Manager) Len() int {
	return len(m.states)
}
