// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggscroll

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gputypes"
	"github.com/mazznoer/csscolorparser"
)

// ErrInvalidConfig is returned for configuration values out of range.
var ErrInvalidConfig = errors.New("ggscroll: invalid config")

// Duration is a time.Duration read from a TOML string such as "500ms".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the file form of the window options:
//
//	[scrollbar]
//	thickness = 10
//	fade_delay = "800ms"
//	fade_duration = "250ms"
//	track_color = "rgba(0, 0, 0, 0.1)"
//	thumb_color = "#7f7f7f"
//
//	[virtualization]
//	edge_threshold = 300
//
// Omitted values keep their defaults.
type Config struct {
	Scrollbar      ScrollbarConfig      `toml:"scrollbar"`
	Virtualization VirtualizationConfig `toml:"virtualization"`
}

// ScrollbarConfig configures scrollbar geometry, fading and colors.
type ScrollbarConfig struct {
	Thickness    float32   `toml:"thickness"`
	FadeDelay    *Duration `toml:"fade_delay"`
	FadeDuration *Duration `toml:"fade_duration"`
	TrackColor   string    `toml:"track_color"`
	ThumbColor   string    `toml:"thumb_color"`
}

// VirtualizationConfig configures virtualized content.
type VirtualizationConfig struct {
	EdgeThreshold float32 `toml:"edge_threshold"`
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("ggscroll: load config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ParseConfig parses TOML configuration text.
func ParseConfig(text string) (Config, error) {
	var cfg Config
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("ggscroll: parse config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(names, ", "))
}

// Validate checks value ranges and color syntax.
func (c Config) Validate() error {
	sb := c.Scrollbar
	if sb.Thickness < 0 {
		return fmt.Errorf("%w: scrollbar.thickness %v < 0", ErrInvalidConfig, sb.Thickness)
	}
	if sb.FadeDelay != nil && sb.FadeDelay.Duration < 0 {
		return fmt.Errorf("%w: scrollbar.fade_delay %v < 0", ErrInvalidConfig, sb.FadeDelay)
	}
	if sb.FadeDuration != nil && sb.FadeDuration.Duration < 0 {
		return fmt.Errorf("%w: scrollbar.fade_duration %v < 0", ErrInvalidConfig, sb.FadeDuration)
	}
	if c.Virtualization.EdgeThreshold < 0 {
		return fmt.Errorf("%w: virtualization.edge_threshold %v < 0", ErrInvalidConfig, c.Virtualization.EdgeThreshold)
	}
	for name, s := range map[string]string{"track_color": sb.TrackColor, "thumb_color": sb.ThumbColor} {
		if s == "" {
			continue
		}
		if _, err := ParseColor(s); err != nil {
			return fmt.Errorf("%w: scrollbar.%s: %w", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// Options converts the configuration to window options. Call Validate
// first; invalid colors are skipped.
func (c Config) Options() []Option {
	sb := c.Scrollbar
	var opts []Option
	if sb.Thickness > 0 {
		opts = append(opts, WithScrollbarThickness(sb.Thickness))
	}
	if sb.FadeDelay != nil {
		opts = append(opts, WithFadeDelay(sb.FadeDelay.Duration))
	}
	if sb.FadeDuration != nil {
		opts = append(opts, WithFadeDuration(sb.FadeDuration.Duration))
	}
	if c.Virtualization.EdgeThreshold > 0 {
		opts = append(opts, WithEdgeThreshold(c.Virtualization.EdgeThreshold))
	}
	if sb.TrackColor != "" || sb.ThumbColor != "" {
		theme := DefaultTheme
		if col, err := ParseColor(sb.TrackColor); sb.TrackColor != "" && err == nil {
			theme.Track = col
		}
		if col, err := ParseColor(sb.ThumbColor); sb.ThumbColor != "" && err == nil {
			theme.Thumb = col
		}
		opts = append(opts, WithTheme(theme))
	}
	return opts
}

// ParseColor parses a CSS color ("#rrggbb", "rgb(...)", named colors...)
// into a GPU color.
func ParseColor(s string) (gputypes.Color, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return gputypes.Color{}, err
	}
	return gputypes.Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}
