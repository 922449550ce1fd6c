package shaderbg

import (
	"context"
	"errors"
)

// ErrUnsupported is returned by backends when a 3D-capable rendering
// context cannot be created on the drawable surface.
var ErrUnsupported = errors.New("shaderbg: graphics context not supported")

// ErrClosed is returned by a Scheduler once the host surface is gone.
// Run treats it as a normal end of the session.
var ErrClosed = errors.New("shaderbg: surface closed")

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Primitive is a draw topology.
type Primitive int

const (
	Triangles Primitive = iota
)

func (p Primitive) String() string {
	if p == Triangles {
		return "triangles"
	}
	return "unknown"
}

// Shader, Program and Uniform are opaque handles issued by a Device.
// Zero is never a valid Shader or Program.
type (
	Shader  uint32
	Program uint32
	Uniform int32
)

// NoUniform is the handle returned for a uniform the linked program does
// not expose. Setting it is a no-op on every backend.
const NoUniform Uniform = -1

// Device is the subset of the graphics API a session needs.
// All calls happen on the thread that owns the context.
type Device interface {
	CreateShader(stage Stage) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	UseProgram(p Program)

	UniformLocation(p Program, name string) Uniform
	Uniform1f(u Uniform, v float32)
	Uniform2f(u Uniform, x, y float32)

	Viewport(x, y, width, height int)
	DrawArrays(mode Primitive, first, count int)
}

// Surface is the drawable the device renders into.
type Surface interface {
	// LogicalSize returns the surface size in logical (CSS / screen) units.
	LogicalSize() (width, height int)
	// PixelRatio returns the device pixel ratio. Values <= 0 mean 1.
	PixelRatio() float64
	// SetBackingSize sets the pixel buffer size.
	SetBackingSize(width, height int)
	// BackingSize returns the current pixel buffer size.
	BackingSize() (width, height int)
	// OnResize registers fn to run synchronously on every viewport or
	// pixel-ratio change.
	OnResize(fn func())
}

// Scheduler blocks until the host is ready for the next frame.
type Scheduler interface {
	NextFrame(ctx context.Context) error
}
