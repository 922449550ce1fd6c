package main

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/go-theft-auto/shaderbg"
	"github.com/go-theft-auto/shaderbg/backend/opengl"
)

// fixedClock reports a constant time. Start samples it as the session
// origin, so it is moved forward once the session is built.
type fixedClock struct {
	t time.Duration
}

func (c *fixedClock) Now() time.Duration { return c.t }

func snapshotAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	// The hidden window is never resized, so the framebuffer matches the
	// requested size on displays without coordinate scaling.
	win, err := opengl.OpenWindow(opengl.WindowConfig{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  "shaderbg-snapshot",
		Hidden: true,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	clock := &fixedClock{}
	session, err := shaderbg.Start(ctx.Context, shaderbg.Options{
		Device:   win.Device(),
		Surface:  win,
		Vertex:   cfg.Vertex,
		Fragment: cfg.Fragment,
		Seed:     cfg.Seed,
		Clock:    clock,
	})
	if err != nil {
		return err
	}

	clock.t = time.Duration(ctx.Float64(timeFlag.Name) * float64(time.Second))
	st := session.Frame()
	img := win.Capture()

	out := ctx.String(outFlag.Name)
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: ctx.Int(qualityFlag.Name)}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("%s (%dx%d, u_time=%.3f)\n", out, st.Width, st.Height, st.Time)
	return nil
}
