package shaderbg_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/shaderbg"
	"github.com/go-theft-auto/shaderbg/internal/glfake"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"shaders/shader.vert":   {Data: []byte(vertSrc)},
		"shaders/my_noise.frag": {Data: []byte(fragSrc)},
		"shaders/broken.frag":   {Data: []byte("out vec4 c;\n")},
	}
}

type harness struct {
	dev     *glfake.Device
	surface *glfake.Surface
	clock   *glfake.Clock
}

func newHarness() *harness {
	return &harness{
		dev:     glfake.New(),
		surface: &glfake.Surface{Width: 800, Height: 600, Ratio: 2},
		clock:   &glfake.Clock{T: 3 * time.Second},
	}
}

func (h *harness) options(fragment string) shaderbg.Options {
	return shaderbg.Options{
		Device:   h.dev,
		Surface:  h.surface,
		Vertex:   "shaders/shader.vert",
		Fragment: fragment,
		Loader:   &shaderbg.Loader{FS: testFS()},
		Clock:    h.clock,
		Rand:     rand.New(rand.NewPCG(1, 2)),
	}
}

func TestStart(t *testing.T) {
	h := newHarness()

	s, err := shaderbg.Start(context.Background(), h.options("shaders/my_noise.frag"))
	require.NoError(t, err)

	assert.Equal(t, s.Program(), h.dev.CurrentProgram())
	assert.Len(t, h.dev.Named("LinkProgram"), 1)

	w, hgt := h.surface.BackingSize()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, hgt)
	vp, ok := h.dev.Last("Viewport")
	require.True(t, ok)
	assert.Equal(t, []any{0, 0, 1600, 1200}, vp.Args)

	assert.GreaterOrEqual(t, s.Offset(), -2500.0)
	assert.Less(t, s.Offset(), 2500.0)
}

func TestStartCompileErrorAborts(t *testing.T) {
	h := newHarness()

	s, err := shaderbg.Start(context.Background(), h.options("shaders/broken.frag"))
	assert.Nil(t, s)

	var cerr *shaderbg.ShaderCompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, shaderbg.FragmentStage, cerr.Stage)
	assert.Empty(t, h.dev.Named("LinkProgram"))
	assert.Empty(t, h.dev.Named("UseProgram"))
	assert.Empty(t, h.dev.Named("Viewport"))
}

func TestStartLinkErrorAborts(t *testing.T) {
	h := newHarness()
	h.dev.Link = func(_, _ string) (bool, string) { return false, "link failed: varying mismatch" }

	_, err := shaderbg.Start(context.Background(), h.options("shaders/my_noise.frag"))
	var lerr *shaderbg.ProgramLinkError
	require.True(t, errors.As(err, &lerr))
	assert.Contains(t, lerr.Log, "varying mismatch")
	assert.Empty(t, h.dev.Named("UseProgram"))
}

func TestStartLoadErrorAborts(t *testing.T) {
	h := newHarness()

	_, err := shaderbg.Start(context.Background(), h.options("shaders/missing.frag"))
	var lerr *shaderbg.LoadError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "shaders/missing.frag", lerr.Location)
	assert.Empty(t, h.dev.Named("CreateShader"))
}

func TestStartRequiresDevice(t *testing.T) {
	_, err := shaderbg.Start(context.Background(), shaderbg.Options{})
	assert.Error(t, err)
}

func TestFirstFrame(t *testing.T) {
	h := newHarness()
	s, err := shaderbg.Start(context.Background(), h.options("shaders/my_noise.frag"))
	require.NoError(t, err)

	st := s.Frame()

	// No time has passed since Start, so u_time is exactly the offset.
	assert.InDelta(t, s.Offset(), float64(st.Time), 1e-3)
	assert.InDelta(t, s.Offset(), float64(h.dev.Value(shaderbg.TimeUniform)[0]), 1e-3)
	assert.Equal(t, []float32{1600, 1200}, h.dev.Value(shaderbg.ResolutionUniform))

	draw, ok := h.dev.Last("DrawArrays")
	require.True(t, ok)
	assert.Equal(t, []any{shaderbg.Triangles, 0, 3}, draw.Args)
}

func TestFrameTracksResize(t *testing.T) {
	h := newHarness()
	s, err := shaderbg.Start(context.Background(), h.options("shaders/my_noise.frag"))
	require.NoError(t, err)

	h.surface.Resize(300, 200, 1.5)
	st := s.Frame()
	assert.Equal(t, 450, st.Width)
	assert.Equal(t, 300, st.Height)
	assert.Equal(t, []float32{450, 300}, h.dev.Value(shaderbg.ResolutionUniform))
}

func TestRunFrameTiming(t *testing.T) {
	h := newHarness()
	s, err := shaderbg.Start(context.Background(), h.options("shaders/my_noise.frag"))
	require.NoError(t, err)

	var times []float32
	stepper := &glfake.Stepper{Clock: h.clock, Step: 16 * time.Millisecond, Frames: 120}
	stepper.OnFrame = func(n int) {
		if v := h.dev.Value(shaderbg.TimeUniform); v != nil && n > 0 {
			times = append(times, v[0])
		}
	}

	require.NoError(t, s.Run(context.Background(), stepper))
	assert.Equal(t, 120, stepper.Count())
	assert.Len(t, h.dev.Named("DrawArrays"), 120)

	for i := 1; i < len(times); i++ {
		assert.GreaterOrEqual(t, times[i], times[i-1], "frame %d", i)
	}

	last, _ := h.dev.Last("Uniform1f")
	want := s.Offset() + 120*0.016
	assert.InDelta(t, want, float64(last.Args[1].(float32)), 1e-2)
}

func TestOffsetConstantAcrossFrames(t *testing.T) {
	h := newHarness()
	s, err := shaderbg.Start(context.Background(), h.options("shaders/my_noise.frag"))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		st := s.Frame()
		assert.InDelta(t, s.Offset(), float64(st.Time)-s.Elapsed(), 1e-2)
		h.clock.Advance(time.Second)
	}
}

func TestOffsetPerSession(t *testing.T) {
	a, b := newHarness(), newHarness()
	optsA, optsB := a.options("shaders/my_noise.frag"), b.options("shaders/my_noise.frag")
	optsB.Rand = rand.New(rand.NewPCG(3, 4))

	sa, err := shaderbg.Start(context.Background(), optsA)
	require.NoError(t, err)
	sb, err := shaderbg.Start(context.Background(), optsB)
	require.NoError(t, err)
	assert.NotEqual(t, sa.Offset(), sb.Offset())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	h := newHarness()
	s, err := shaderbg.Start(context.Background(), h.options("shaders/my_noise.frag"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	stepper := &glfake.Stepper{Clock: h.clock, Step: time.Millisecond, Frames: 1000}
	stepper.OnFrame = func(n int) {
		if n == 9 {
			cancel()
		}
	}

	err = s.Run(ctx, stepper)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, h.dev.Named("DrawArrays"), 10)
}

type failingScheduler struct{ err error }

func (f failingScheduler) NextFrame(context.Context) error { return f.err }

func TestRunPropagatesSchedulerError(t *testing.T) {
	h := newHarness()
	s, err := shaderbg.Start(context.Background(), h.options("shaders/my_noise.frag"))
	require.NoError(t, err)

	boom := errors.New("swap failed")
	assert.ErrorIs(t, s.Run(context.Background(), failingScheduler{boom}), boom)
	assert.NoError(t, s.Run(context.Background(), failingScheduler{shaderbg.ErrClosed}))
}

func TestSessionOffsetRange(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 10000; i++ {
		v := shaderbg.SessionOffset(r)
		require.GreaterOrEqual(t, v, -2500.0)
		require.Less(t, v, 2500.0)
	}
}

func TestSeededOffsetIsReproducible(t *testing.T) {
	a, b := newHarness(), newHarness()
	optsA, optsB := a.options("shaders/my_noise.frag"), b.options("shaders/my_noise.frag")
	optsA.Rand, optsB.Rand = nil, nil
	optsA.Seed, optsB.Seed = 42, 42

	sa, err := shaderbg.Start(context.Background(), optsA)
	require.NoError(t, err)
	sb, err := shaderbg.Start(context.Background(), optsB)
	require.NoError(t, err)
	assert.Equal(t, sa.Offset(), sb.Offset())
}
