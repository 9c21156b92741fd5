// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command scrolldemo runs a scripted scrolling session against a
// virtualized list and writes a PNG snapshot of the final frame.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggscroll"
	"github.com/gogpu/ggscroll/compositor"
	"github.com/gogpu/ggscroll/geom"
	"github.com/gogpu/ggscroll/iframe"
	"github.com/gogpu/ggscroll/node"
	"github.com/gogpu/ggscroll/scroll"
)

const (
	rowHeight = 40
	listWidth = 320
)

var list = node.K(node.Root, 1)

// window is the rendered row range.
type window struct {
	first, count int
}

func main() {
	var (
		width   = flag.Int("width", 360, "image width")
		height  = flag.Int("height", 480, "image height")
		rows    = flag.Int("rows", 10000, "virtual row count")
		frames  = flag.Int("frames", 60, "frames to simulate")
		step    = flag.Float64("step", 1, "wheel lines per frame")
		config  = flag.String("config", "", "TOML configuration file")
		output  = flag.String("output", "scroll.png", "output file")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		ggscroll.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var opts []ggscroll.Option
	if *config != "" {
		cfg, err := ggscroll.LoadConfig(*config)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		opts = cfg.Options()
	}
	sw := compositor.NewSoftware()
	opts = append(opts, ggscroll.WithCompositor(sw))
	w := ggscroll.NewWindow(opts...)

	viewport := geom.R(20, 20, listWidth, float32(*height-40))
	layout := listLayout(viewport, rowProvider(*rows))

	now := time.Now()
	var invocations int
	for i := range *frames {
		if i > 0 {
			w.Wheel(geom.Pt(viewport.MinX()+10, viewport.MinY()+10), 0, float32(*step), scroll.DeltaLine, now)
		}
		res, err := w.Frame(now, layout)
		if err != nil {
			log.Fatalf("Frame %d failed: %v", i, err)
		}
		for _, out := range res.Invocations {
			invocations++
			log.Printf("frame %d: %s", i, out.Reason)
		}
		now = now.Add(16 * time.Millisecond)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := sw.WritePNG(f, *width, *height); err != nil {
		_ = f.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Offset %v after %d frames, %d content requests; saved to %s (%dx%d)\n",
		w.Scroll().CurrentOffset(list), *frames, invocations, *output, *width, *height)
}

// rowProvider renders the rows around the viewport plus one viewport of
// margin on each side.
func rowProvider(total int) iframe.Provider {
	return iframe.ProviderFunc(func(info iframe.Info) (iframe.Return, error) {
		visible := int(info.Bounds.Size.Height/rowHeight) + 1
		first := max(0, int(info.Offset.Y/rowHeight)-visible)
		count := min(total-first, 3*visible)
		return iframe.Return{
			Content: window{first: first, count: count},
			Actual: iframe.Region{
				Offset: geom.Pt(0, float32(first*rowHeight)),
				Size:   geom.Sz(listWidth, float32(count*rowHeight)),
			},
			Virtual: iframe.Region{Size: geom.Sz(listWidth, float32(total*rowHeight))},
		}, nil
	})
}

func listLayout(viewport geom.Rect, p iframe.Provider) ggscroll.Layout {
	return ggscroll.LayoutFunc(func(ctx ggscroll.LayoutContext) []ggscroll.NodeLayout {
		out := []ggscroll.NodeLayout{{
			Key:      list,
			Rect:     viewport,
			Color:    gputypes.Color{R: 0.95, G: 0.95, B: 0.97, A: 1},
			Provider: p,
		}}
		c, ok := ctx.Content(list)
		if !ok {
			return out
		}
		win := c.(window)
		sub, _ := ctx.Subtree(list)
		out[0].Content = geom.Sz(listWidth, float32((win.first+win.count)*rowHeight))
		for i := win.first; i < win.first+win.count; i++ {
			shade := 0.75
			if i%2 == 1 {
				shade = 0.85
			}
			out = append(out, ggscroll.NodeLayout{
				Key:      node.K(sub, node.ID(i+1)),
				Rect:     geom.R(0, float32(i*rowHeight), listWidth, rowHeight),
				Parent:   list,
				InParent: true,
				Color:    gputypes.Color{R: shade, G: shade, B: 1, A: 1},
			})
		}
		return out
	})
}
