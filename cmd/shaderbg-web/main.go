//go:build js && wasm

// Command shaderbg-web renders a full-screen fragment shader on the page's
// <canvas id="gl"> element.
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o web/shaderbg.wasm ./cmd/shaderbg-web/
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/
//
// Shader locations are resolved against the page URL. They can be
// overridden with the query parameters "vertex" and "fragment".
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-theft-auto/shaderbg"
	"github.com/go-theft-auto/shaderbg/backend/webgl"
)

const (
	canvasID        = "gl"
	defaultVertex   = "shader.vert"
	defaultFragment = "my_noise.frag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	canvas, err := webgl.OpenCanvas(canvasID)
	if err != nil {
		return err
	}
	base, err := canvas.BaseURL()
	if err != nil {
		return fmt.Errorf("page url: %w", err)
	}

	vertex, fragment := defaultVertex, defaultFragment
	q := base.Query()
	if v := q.Get("vertex"); v != "" {
		vertex = v
	}
	if v := q.Get("fragment"); v != "" {
		fragment = v
	}
	shaderbg.SetVerbose(q.Has("verbose"))

	ctx := context.Background()
	session, err := shaderbg.Start(ctx, shaderbg.Options{
		Device:   canvas.Device(),
		Surface:  canvas,
		Vertex:   vertex,
		Fragment: fragment,
		Loader:   &shaderbg.Loader{Base: base},
	})
	if err != nil {
		return err
	}
	return session.Run(ctx, canvas)
}
