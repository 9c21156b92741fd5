// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggscroll

import (
	"log/slog"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggscroll/compositor"
	"github.com/gogpu/ggscroll/iframe"
	"github.com/gogpu/ggscroll/scroll"
)

// Theme holds the scrollbar colors.
type Theme struct {
	Track gputypes.Color
	Thumb gputypes.Color
}

// DefaultTheme is a translucent gray scrollbar.
var DefaultTheme = Theme{
	Track: gputypes.Color{R: 0, G: 0, B: 0, A: 0.08},
	Thumb: gputypes.Color{R: 0.45, G: 0.45, B: 0.45, A: 0.75},
}

// Option configures a Window during creation.
//
// Example:
//
//	w := ggscroll.NewWindow(
//	    ggscroll.WithFadeDelay(time.Second),
//	    ggscroll.WithScrollbarThickness(8),
//	)
type Option func(*options)

// options holds optional configuration for Window creation.
type options struct {
	fadeDelay     time.Duration
	fadeDuration  time.Duration
	edgeThreshold float32
	thickness     float32
	compositor    compositor.Compositor
	theme         Theme
	logger        *slog.Logger
}

// defaultOptions returns the default window options.
func defaultOptions() options {
	return options{
		fadeDelay:     scroll.DefaultFadeDelay,
		fadeDuration:  scroll.DefaultFadeDuration,
		edgeThreshold: iframe.DefaultEdgeThreshold,
		thickness:     scroll.DefaultThickness,
		theme:         DefaultTheme,
	}
}

// WithFadeDelay sets how long scrollbars stay fully visible after
// scroll activity. Negative values are ignored.
func WithFadeDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.fadeDelay = d
		}
	}
}

// WithFadeDuration sets how long scrollbars take to fade out. Zero hides
// them instantly after the delay; negative values are ignored.
func WithFadeDuration(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.fadeDuration = d
		}
	}
}

// WithEdgeThreshold sets the virtualization edge threshold in logical
// pixels. Non-positive values are ignored.
func WithEdgeThreshold(px float32) Option {
	return func(o *options) {
		if px > 0 {
			o.edgeThreshold = px
		}
	}
}

// WithScrollbarThickness sets the scrollbar thickness in logical pixels.
// Non-positive values are ignored.
func WithScrollbarThickness(px float32) Option {
	return func(o *options) {
		if px > 0 {
			o.thickness = px
		}
	}
}

// WithCompositor sets the compositor the window talks to. The default is
// a compositor.Software.
//
// Example:
//
//	dev, err := compositor.NewDevice(app.GPUContextProvider())
//	if err != nil { ... }
//	w := ggscroll.NewWindow(ggscroll.WithCompositor(dev))
func WithCompositor(c compositor.Compositor) Option {
	return func(o *options) {
		o.compositor = c
	}
}

// WithTheme sets the scrollbar colors.
func WithTheme(t Theme) Option {
	return func(o *options) {
		o.theme = t
	}
}

// WithLogger sets the window logger. The default is Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
