// Command stagedemo mounts a stage store, drives its render loop for a
// bounded time, and prints the state transitions it observes.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/stage"
	wgpudriver "github.com/gogpu/stage/backend/wgpu"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		width      = flag.Float64("width", 800, "canvas width")
		height     = flag.Float64("height", 600, "canvas height")
		duration   = flag.Duration("duration", 2*time.Second, "how long to run the loop")
		useGPU     = flag.Bool("gpu", false, "attach the wgpu drawable driver")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	stage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Later options win: flag defaults first, then the config file, then
	// any size given explicitly on the command line.
	opts := []stage.Option{stage.WithSize(*width, *height)}
	if *configPath != "" {
		cfg, err := stage.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		fileOpts, err := cfg.Options()
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		opts = append(opts, fileOpts...)
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "width" || f.Name == "height" {
			opts = append(opts, stage.WithSize(*width, *height))
		}
	})

	st := stage.New(opts...)
	defer st.Close()

	if *useGPU {
		driver := wgpudriver.NewDriver()
		if err := driver.Init(); err != nil {
			log.Fatalf("gpu driver: %v", err)
		}
		defer driver.Close()

		detach, err := driver.Attach(st)
		if err != nil {
			log.Fatalf("gpu attach: %v", err)
		}
		defer detach()
	}

	// Simulate a slow frame partway through so the governor's regression
	// and recovery show up in the output.
	regressAt := time.Now().Add(*duration / 2)
	unsub := st.Subscribe(func(s stage.State, dt time.Duration) {
		if !regressAt.IsZero() && time.Now().After(regressAt) {
			regressAt = time.Time{}
			st.Regress()
		}
	}, 0)
	defer unsub()

	cancelObs := stage.Observe(st,
		func(s stage.State) float64 { return s.Performance.Current },
		func(a, b float64) bool { return a == b },
		func(q float64) { log.Printf("quality -> %.2f", q) })
	defer cancelObs()

	loop := stage.NewLoop()
	defer loop.Attach(st)()

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	_ = loop.Run(ctx)

	s := st.Get()
	log.Printf("frames: %d  elapsed: %v", s.FrameCount, s.Clock.Elapsed().Round(time.Millisecond))
	log.Printf("size: %.0fx%.0f  aspect: %.3f  distance: %.2f  factor: %.2f",
		s.Size.Width, s.Size.Height, s.Viewport.Aspect, s.Viewport.Distance, s.Viewport.Factor)
	log.Printf("pixel ratio: %.2f  quality: %.2f", s.Viewport.PixelRatio, s.Performance.Current)
}
