// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scroll

import "time"

// Default scrollbar fade timing.
const (
	DefaultFadeDelay    = 500 * time.Millisecond
	DefaultFadeDuration = 200 * time.Millisecond
)

// FadeOpacity computes scrollbar opacity from the time elapsed since the
// last scroll activity:
//
//	elapsed <= delay            -> 1.0
//	delay < elapsed < delay+dur -> linear ramp from 1.0 to 0.0
//	elapsed >= delay+dur        -> 0.0
//
// A negative elapsed time (activity stamped after now) counts as fresh
// activity. A non-positive duration fades out instantly after the delay.
func FadeOpacity(elapsed, delay, duration time.Duration) float32 {
	if elapsed <= delay {
		return 1
	}
	if duration <= 0 {
		return 0
	}
	progress := float64(elapsed-delay) / float64(duration)
	if progress >= 1 {
		return 0
	}
	return float32(1 - progress)
}
