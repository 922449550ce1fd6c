// Command shaderbg renders a full-screen fragment shader in a window.
//
// Prerequisites:
//
//	devbox shell                # provides Go + OpenGL/X11 headers
//	go run ./cmd/shaderbg/      # run with the bundled shaders
//
// Usage:
//
//	shaderbg [--config shaderbg.toml] [--vertex PATH] [--fragment PATH]
//	shaderbg snapshot --time 12.5 --out frame.jpg
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/go-theft-auto/shaderbg"
	"github.com/go-theft-auto/shaderbg/backend/opengl"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	vertexFlag = &cli.StringFlag{
		Name:  "vertex",
		Usage: "vertex shader location (path or http(s) URL)",
	}
	fragmentFlag = &cli.StringFlag{
		Name:  "fragment",
		Usage: "fragment shader location (path or http(s) URL)",
	}
	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "window width in screen coordinates",
	}
	heightFlag = &cli.IntFlag{
		Name:  "height",
		Usage: "window height in screen coordinates",
	}
	seedFlag = &cli.Uint64Flag{
		Name:  "seed",
		Usage: "fixes the per-session time offset (0 = random)",
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "enable debug logging",
	}
	timeFlag = &cli.Float64Flag{
		Name:  "time",
		Usage: "seconds since session start to render",
	}
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "output JPEG file",
		Value: "shaderbg.jpg",
	}
	qualityFlag = &cli.IntFlag{
		Name:  "quality",
		Usage: "JPEG quality (1-100)",
		Value: 90,
	}
)

var (
	commonFlags   = []cli.Flag{configFlag, vertexFlag, fragmentFlag, widthFlag, heightFlag, seedFlag, verboseFlag}
	snapshotFlags = append([]cli.Flag{timeFlag, outFlag, qualityFlag}, commonFlags...)
)

func main() {
	app := &cli.App{
		Name:   "shaderbg",
		Usage:  "render an animated full-screen fragment shader",
		Flags:  commonFlags,
		Action: runAction,
		Commands: []*cli.Command{
			{
				Name:      "snapshot",
				Usage:     "render one frame offscreen and save it as JPEG",
				ArgsUsage: " ",
				Flags:     snapshotFlags,
				Action:    snapshotAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// lookup returns the nearest context in the lineage where the flag was set,
// so common flags given before a subcommand still apply to it.
func lookup(ctx *cli.Context, name string) (*cli.Context, bool) {
	for _, c := range ctx.Lineage() {
		if c.IsSet(name) {
			return c, true
		}
	}
	return nil, false
}

// loadConfig merges the defaults, the optional config file and the flags.
func loadConfig(ctx *cli.Context) (shaderbg.Config, error) {
	cfg := shaderbg.DefaultConfig()
	if c, ok := lookup(ctx, configFlag.Name); ok {
		var err error
		if cfg, err = shaderbg.LoadConfig(c.String(configFlag.Name)); err != nil {
			return cfg, err
		}
	}
	if c, ok := lookup(ctx, vertexFlag.Name); ok {
		cfg.Vertex = c.String(vertexFlag.Name)
	}
	if c, ok := lookup(ctx, fragmentFlag.Name); ok {
		cfg.Fragment = c.String(fragmentFlag.Name)
	}
	if c, ok := lookup(ctx, widthFlag.Name); ok {
		cfg.Width = c.Int(widthFlag.Name)
	}
	if c, ok := lookup(ctx, heightFlag.Name); ok {
		cfg.Height = c.Int(heightFlag.Name)
	}
	if c, ok := lookup(ctx, seedFlag.Name); ok {
		cfg.Seed = c.Uint64(seedFlag.Name)
	}
	if c, ok := lookup(ctx, verboseFlag.Name); ok {
		cfg.Verbose = c.Bool(verboseFlag.Name)
	}
	shaderbg.SetVerbose(cfg.Verbose)
	return cfg, cfg.Validate()
}

func runAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	win, err := opengl.OpenWindow(opengl.WindowConfig{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
		VSync:  cfg.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	session, err := startSession(sigCtx, cfg, win)
	if err != nil {
		return err
	}
	return session.Run(sigCtx, win)
}

func startSession(ctx context.Context, cfg shaderbg.Config, win *opengl.Window) (*shaderbg.Session, error) {
	return shaderbg.Start(ctx, shaderbg.Options{
		Device:   win.Device(),
		Surface:  win,
		Vertex:   cfg.Vertex,
		Fragment: cfg.Fragment,
		Seed:     cfg.Seed,
	})
}
