package shaderbg

import (
	"log/slog"
	"math"
)

// BackingSize converts a logical size to pixel buffer dimensions.
// Fractional pixels are truncated, as a canvas does on assignment.
// A ratio <= 0 (or NaN) is treated as 1.
func BackingSize(width, height int, ratio float64) (int, int) {
	if !(ratio > 0) {
		ratio = 1
	}
	return int(math.Floor(float64(width) * ratio)), int(math.Floor(float64(height) * ratio))
}

// Resizer keeps a surface's backing store and the device viewport in step
// with the surface's logical size and pixel ratio.
type Resizer struct {
	dev     Device
	surface Surface
}

// NewResizer creates a resizer for surface rendering through dev.
func NewResizer(dev Device, surface Surface) *Resizer {
	return &Resizer{dev: dev, surface: surface}
}

// Resize recomputes the backing store and sets the viewport to span it.
func (r *Resizer) Resize() {
	w, h := r.surface.LogicalSize()
	ratio := r.surface.PixelRatio()
	bw, bh := BackingSize(w, h, ratio)

	r.surface.SetBackingSize(bw, bh)
	r.dev.Viewport(0, 0, bw, bh)

	logger.Debug("resize",
		slog.Int("width", w), slog.Int("height", h),
		slog.Float64("ratio", ratio),
		slog.Int("backingWidth", bw), slog.Int("backingHeight", bh))
}

// Attach runs Resize once and then on every resize event of the surface.
func (r *Resizer) Attach() {
	r.surface.OnResize(r.Resize)
	r.Resize()
}
