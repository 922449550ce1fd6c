package shaderbg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Options configures Start.
type Options struct {
	Device  Device
	Surface Surface

	// Vertex and Fragment are the source locations handed to Loader.
	Vertex   string
	Fragment string

	Loader *Loader // defaults to a file system loader
	Clock  Clock   // defaults to NewSystemClock()
	Rand   *rand.Rand
	// Seed is used when Rand is nil. Zero draws a random offset.
	Seed uint64
}

// Session is the state of one running effect. It is built once by Start
// and never modified afterwards.
type Session struct {
	dev      Device
	surface  Surface
	program  Program
	uniforms Uniforms
	clock    Clock
	start    time.Duration
	offset   float64
}

// FrameStats describes the values pushed by one frame.
type FrameStats struct {
	Time          float32 // value of u_time
	Width, Height int     // value of u_resolution
}

// Start loads and builds the shader program, resolves its uniforms, sizes
// the surface and captures the session clock origin and time offset.
// Any error aborts initialization; nothing is retried.
func Start(ctx context.Context, opts Options) (*Session, error) {
	if opts.Device == nil || opts.Surface == nil {
		return nil, errors.New("shaderbg: Start requires a Device and a Surface")
	}
	loader := opts.Loader
	if loader == nil {
		loader = &Loader{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = NewSystemClock()
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = newRand(opts.Seed)
	}

	vertSrc, fragSrc, err := loader.LoadPair(ctx, opts.Vertex, opts.Fragment)
	if err != nil {
		return nil, err
	}

	dev := opts.Device
	program, err := BuildProgram(dev, vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}
	dev.UseProgram(program)

	uniforms := BindUniforms(dev, program)

	NewResizer(dev, opts.Surface).Attach()

	s := &Session{
		dev:      dev,
		surface:  opts.Surface,
		program:  program,
		uniforms: uniforms,
		clock:    clock,
		offset:   SessionOffset(rnd),
		start:    clock.Now(),
	}
	logger.Info("session started", slog.Float64("offset", s.offset))
	return s, nil
}

// Program returns the linked program.
func (s *Session) Program() Program { return s.program }

// Uniforms returns the resolved uniform handles.
func (s *Session) Uniforms() Uniforms { return s.uniforms }

// Offset returns the per-session time offset in seconds.
func (s *Session) Offset() float64 { return s.offset }

// Elapsed returns the seconds since Start.
func (s *Session) Elapsed() float64 {
	return (s.clock.Now() - s.start).Seconds()
}

// Frame pushes the uniforms and draws the full-screen triangle.
func (s *Session) Frame() FrameStats {
	st := FrameStats{Time: float32(s.Elapsed() + s.offset)}
	st.Width, st.Height = s.surface.BackingSize()

	s.dev.Uniform2f(s.uniforms.Resolution, float32(st.Width), float32(st.Height))
	s.dev.Uniform1f(s.uniforms.Time, st.Time)
	s.dev.DrawArrays(Triangles, 0, 3)
	return st
}

// statsInterval is how often Run logs frame statistics in verbose mode.
const statsInterval = 5 * time.Second

// Run draws one frame per scheduler tick until the scheduler reports
// ErrClosed (a nil return) or fails, or ctx is cancelled.
func (s *Session) Run(ctx context.Context, sched Scheduler) error {
	var (
		frames   int
		lastLog  = s.clock.Now()
		lastStat FrameStats
	)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sched.NextFrame(ctx); err != nil {
			if errors.Is(err, ErrClosed) {
				logger.Info("surface closed", slog.Int("frames", frames))
				return nil
			}
			return err
		}
		lastStat = s.Frame()
		frames++

		if verbose() {
			if now := s.clock.Now(); now-lastLog >= statsInterval {
				logger.Debug("frame",
					slog.Int("frames", frames),
					slog.Float64("time", float64(lastStat.Time)),
					slog.Int("width", lastStat.Width), slog.Int("height", lastStat.Height))
				lastLog = now
			}
		}
	}
}
