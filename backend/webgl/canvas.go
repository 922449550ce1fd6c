//go:build js && wasm

package webgl

import (
	"context"
	"fmt"
	"net/url"
	"syscall/js"

	"github.com/go-theft-auto/shaderbg"
)

// Canvas is a <canvas> element with a WebGL2 context. It is the
// shaderbg.Surface and shaderbg.Scheduler of the browser backend.
type Canvas struct {
	window js.Value
	canvas js.Value
	device *Device

	frames  chan struct{}
	onFrame js.Func
	handles []js.Func
}

var (
	_ shaderbg.Surface   = (*Canvas)(nil)
	_ shaderbg.Scheduler = (*Canvas)(nil)
)

// OpenCanvas looks up the canvas element with the given id and acquires its
// webgl2 context. A missing element or context wraps shaderbg.ErrUnsupported.
func OpenCanvas(id string) (*Canvas, error) {
	window := js.Global()
	canvas := window.Get("document").Call("getElementById", id)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("%w: no canvas element %q", shaderbg.ErrUnsupported, id)
	}
	gl := canvas.Call("getContext", "webgl2")
	if gl.IsNull() || gl.IsUndefined() {
		return nil, fmt.Errorf("%w: WebGL2 not supported", shaderbg.ErrUnsupported)
	}

	c := &Canvas{
		window: window,
		canvas: canvas,
		device: newDevice(gl),
		frames: make(chan struct{}, 1),
	}
	c.onFrame = js.FuncOf(func(js.Value, []js.Value) any {
		select {
		case c.frames <- struct{}{}:
		default:
		}
		return nil
	})
	return c, nil
}

// Device returns the WebGL device of this canvas.
func (c *Canvas) Device() *Device { return c.device }

// BaseURL returns the page URL, against which relative shader locations
// are resolved.
func (c *Canvas) BaseURL() (*url.URL, error) {
	return url.Parse(c.window.Get("location").Get("href").String())
}

// LogicalSize returns the viewport size in CSS pixels.
func (c *Canvas) LogicalSize() (int, int) {
	return c.window.Get("innerWidth").Int(), c.window.Get("innerHeight").Int()
}

// PixelRatio returns window.devicePixelRatio, or 1 when it is unavailable.
func (c *Canvas) PixelRatio() float64 {
	dpr := c.window.Get("devicePixelRatio")
	if dpr.Type() != js.TypeNumber {
		return 1
	}
	return dpr.Float()
}

// SetBackingSize resizes the canvas pixel buffer.
func (c *Canvas) SetBackingSize(width, height int) {
	c.canvas.Set("width", width)
	c.canvas.Set("height", height)
}

// BackingSize returns the canvas pixel buffer size.
func (c *Canvas) BackingSize() (int, int) {
	return c.canvas.Get("width").Int(), c.canvas.Get("height").Int()
}

// OnResize runs fn on every window resize event.
func (c *Canvas) OnResize(fn func()) {
	h := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	c.handles = append(c.handles, h)
	c.window.Call("addEventListener", "resize", h)
}

// NextFrame requests an animation frame and waits for it.
func (c *Canvas) NextFrame(ctx context.Context) error {
	c.window.Call("requestAnimationFrame", c.onFrame)
	select {
	case <-c.frames:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
