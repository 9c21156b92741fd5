// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scroll

// Easing maps normalized animation time in [0, 1] to progress in [0, 1].
// Every easing is monotone non-decreasing with Apply(0) = 0 and Apply(1) = 1.
type Easing uint8

const (
	// Linear progresses at a constant rate.
	Linear Easing = iota
	// EaseOut decelerates (cubic).
	EaseOut
	// EaseInOut accelerates then decelerates (cubic).
	EaseInOut
)

// String returns the easing name.
func (e Easing) String() string {
	switch e {
	case Linear:
		return "Linear"
	case EaseOut:
		return "EaseOut"
	case EaseInOut:
		return "EaseInOut"
	default:
		return "Unknown"
	}
}

// Apply evaluates the easing at t. t is clamped to [0, 1].
func (e Easing) Apply(t float32) float32 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	switch e {
	case EaseOut:
		u := 1 - t
		return 1 - u*u*u
	case EaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	default:
		return t
	}
}
