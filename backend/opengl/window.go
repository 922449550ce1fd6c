package opengl

import (
	"context"
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/shaderbg"
)

// WindowConfig describes the window to open.
type WindowConfig struct {
	Width, Height int
	Title         string
	VSync         bool
	// Hidden keeps the window off screen, for offscreen capture.
	Hidden bool
}

// Window is a GLFW window with a current OpenGL 4.1 core context.
// It is the shaderbg.Surface and shaderbg.Scheduler of the desktop backend.
// GLFW must be used from the main thread; call runtime.LockOSThread in init.
type Window struct {
	window *glfw.Window
	device *Device

	backingW, backingH int
	listeners          []func()
	presented          bool
}

var (
	_ shaderbg.Surface   = (*Window)(nil)
	_ shaderbg.Scheduler = (*Window)(nil)
)

// OpenWindow initializes GLFW, opens a window and makes its context current.
// Failure to obtain a context wraps shaderbg.ErrUnsupported.
func OpenWindow(cfg WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw init: %w", shaderbg.ErrUnsupported, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %w", shaderbg.ErrUnsupported, err)
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: gl init: %w", shaderbg.ErrUnsupported, err)
	}

	w := &Window{window: window, device: NewDevice()}
	w.backingW, w.backingH = window.GetFramebufferSize()
	window.SetFramebufferSizeCallback(func(*glfw.Window, int, int) { w.notify() })
	window.SetContentScaleCallback(func(*glfw.Window, float32, float32) { w.notify() })
	return w, nil
}

// Device returns the OpenGL device bound to this window's context.
func (w *Window) Device() *Device { return w.device }

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.window.Destroy()
	glfw.Terminate()
}

func (w *Window) notify() {
	for _, fn := range w.listeners {
		fn()
	}
}

// LogicalSize returns the window size in screen coordinates.
func (w *Window) LogicalSize() (int, int) {
	return w.window.GetSize()
}

// PixelRatio is the ratio of framebuffer pixels to screen coordinates.
// It is above 1 on high-density displays that scale screen coordinates
// (macOS, Wayland) and 1 elsewhere.
func (w *Window) PixelRatio() float64 {
	ww, _ := w.window.GetSize()
	fw, _ := w.window.GetFramebufferSize()
	if ww <= 0 || fw <= 0 {
		return 1
	}
	return float64(fw) / float64(ww)
}

// SetBackingSize records the pixel buffer size. The framebuffer of a GLFW
// window is sized by the window system, so this never reallocates.
func (w *Window) SetBackingSize(width, height int) {
	w.backingW, w.backingH = width, height
}

// BackingSize returns the recorded pixel buffer size.
func (w *Window) BackingSize() (int, int) {
	return w.backingW, w.backingH
}

// OnResize runs fn on framebuffer-size and content-scale changes.
func (w *Window) OnResize(fn func()) {
	w.listeners = append(w.listeners, fn)
}

// NextFrame presents the previous frame, processes window events and
// returns shaderbg.ErrClosed once the user closes the window. With vsync
// enabled the swap blocks until the next display refresh.
func (w *Window) NextFrame(ctx context.Context) error {
	if w.presented {
		w.window.SwapBuffers()
	}
	w.presented = true

	glfw.PollEvents()
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.window.ShouldClose() {
		return shaderbg.ErrClosed
	}
	return nil
}

// Capture reads the back buffer into an image, top row first.
func (w *Window) Capture() *image.RGBA {
	width, height := w.backingW, w.backingH
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return img
	}

	gl.Finish()
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < height/2; y++ {
		top := y * rowLen
		bot := (height - 1 - y) * rowLen
		copy(tmp, img.Pix[top:top+rowLen])
		copy(img.Pix[top:top+rowLen], img.Pix[bot:bot+rowLen])
		copy(img.Pix[bot:bot+rowLen], tmp)
	}
	return img
}
