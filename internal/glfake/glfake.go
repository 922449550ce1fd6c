// Package glfake provides an in-memory shaderbg.Device that records every
// call, for tests that cannot open a real graphics context.
package glfake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-theft-auto/shaderbg"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

// String formats the call as Name[args].
func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

type shader struct {
	stage    shaderbg.Stage
	src      string
	compiled bool
	log      string
	deleted  bool
}

type program struct {
	shaders []shaderbg.Shader
	linked  bool
	log     string
}

// Device is a fake graphics device.
//
// A shader compiles when its source contains "void main"; otherwise its
// info log reads "ERROR: 0:1: 'main' : no entry point". Compile overrides
// that rule. A program links when it has one compiled vertex and one
// compiled fragment shader, unless Link overrides it.
type Device struct {
	Compile func(stage shaderbg.Stage, src string) (ok bool, log string)
	Link    func(vertSrc, fragSrc string) (ok bool, log string)
	// Active lists the uniforms programs expose. Nil means u_resolution and u_time.
	Active []string

	Calls []Call

	shaders  map[shaderbg.Shader]*shader
	programs map[shaderbg.Program]*program
	next     uint32
	current  shaderbg.Program
	uniforms map[shaderbg.Uniform]string
	values   map[string][]float32
}

// New returns an empty fake device.
func New() *Device {
	return &Device{
		shaders:  make(map[shaderbg.Shader]*shader),
		programs: make(map[shaderbg.Program]*program),
		uniforms: make(map[shaderbg.Uniform]string),
		values:   make(map[string][]float32),
	}
}

var _ shaderbg.Device = (*Device)(nil)

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

// CreateShader creates an empty shader object for stage.
func (d *Device) CreateShader(stage shaderbg.Stage) shaderbg.Shader {
	s := shaderbg.Shader(d.id())
	d.shaders[s] = &shader{stage: stage}
	d.record("CreateShader", stage)
	return s
}

// ShaderSource replaces the source of s.
func (d *Device) ShaderSource(s shaderbg.Shader, src string) {
	d.shaders[s].src = src
	d.record("ShaderSource", s)
}

// CompileShader compiles s.
func (d *Device) CompileShader(s shaderbg.Shader) {
	sh := d.shaders[s]
	if d.Compile != nil {
		sh.compiled, sh.log = d.Compile(sh.stage, sh.src)
	} else if strings.Contains(sh.src, "void main") {
		sh.compiled = true
	} else {
		sh.log = "ERROR: 0:1: 'main' : no entry point\n"
	}
	d.record("CompileShader", s)
}

// ShaderCompiled reports the compile status of s.
func (d *Device) ShaderCompiled(s shaderbg.Shader) bool { return d.shaders[s].compiled }

// ShaderInfoLog returns the compiler log of s.
func (d *Device) ShaderInfoLog(s shaderbg.Shader) string { return d.shaders[s].log }

// DeleteShader releases s.
func (d *Device) DeleteShader(s shaderbg.Shader) {
	if sh, ok := d.shaders[s]; ok {
		sh.deleted = true
	}
	d.record("DeleteShader", s)
}

// ShaderDeleted reports whether DeleteShader was called for s.
func (d *Device) ShaderDeleted(s shaderbg.Shader) bool {
	sh, ok := d.shaders[s]
	return ok && sh.deleted
}

// CreateProgram creates an empty program object.
func (d *Device) CreateProgram() shaderbg.Program {
	p := shaderbg.Program(d.id())
	d.programs[p] = &program{}
	d.record("CreateProgram")
	return p
}

// AttachShader attaches s to p.
func (d *Device) AttachShader(p shaderbg.Program, s shaderbg.Shader) {
	d.programs[p].shaders = append(d.programs[p].shaders, s)
	d.record("AttachShader", p, s)
}

// LinkProgram links p.
func (d *Device) LinkProgram(p shaderbg.Program) {
	prog := d.programs[p]
	var vert, frag *shader
	for _, s := range prog.shaders {
		sh := d.shaders[s]
		switch {
		case sh.stage == shaderbg.VertexStage && vert == nil:
			vert = sh
		case sh.stage == shaderbg.FragmentStage && frag == nil:
			frag = sh
		}
	}
	switch {
	case vert == nil || !vert.compiled:
		prog.log = "error: no compiled vertex shader attached"
	case frag == nil || !frag.compiled:
		prog.log = "error: no compiled fragment shader attached"
	case d.Link != nil:
		prog.linked, prog.log = d.Link(vert.src, frag.src)
	default:
		prog.linked = true
	}
	d.record("LinkProgram", p)
}

// ProgramLinked reports the link status of p.
func (d *Device) ProgramLinked(p shaderbg.Program) bool { return d.programs[p].linked }

// ProgramInfoLog returns the linker log of p.
func (d *Device) ProgramInfoLog(p shaderbg.Program) string { return d.programs[p].log }

// UseProgram makes p the current program.
func (d *Device) UseProgram(p shaderbg.Program) {
	d.current = p
	d.record("UseProgram", p)
}

// CurrentProgram returns the program passed to the last UseProgram call.
func (d *Device) CurrentProgram() shaderbg.Program { return d.current }

// UniformLocation resolves the named uniform of p.
func (d *Device) UniformLocation(p shaderbg.Program, name string) shaderbg.Uniform {
	d.record("UniformLocation", p, name)
	active := d.Active
	if active == nil {
		active = []string{shaderbg.ResolutionUniform, shaderbg.TimeUniform}
	}
	for i, a := range active {
		if a == name {
			u := shaderbg.Uniform(i)
			d.uniforms[u] = name
			return u
		}
	}
	return shaderbg.NoUniform
}

// Uniform1f sets a float uniform of the current program.
func (d *Device) Uniform1f(u shaderbg.Uniform, v float32) {
	d.record("Uniform1f", u, v)
	if name, ok := d.uniforms[u]; ok {
		d.values[name] = []float32{v}
	}
}

// Uniform2f sets a vec2 uniform of the current program.
func (d *Device) Uniform2f(u shaderbg.Uniform, x, y float32) {
	d.record("Uniform2f", u, x, y)
	if name, ok := d.uniforms[u]; ok {
		d.values[name] = []float32{x, y}
	}
}

// Value returns the last value set for the named uniform.
func (d *Device) Value(name string) []float32 { return d.values[name] }

// Viewport sets the viewport rectangle in pixels.
func (d *Device) Viewport(x, y, width, height int) {
	d.record("Viewport", x, y, width, height)
}

// DrawArrays draws count vertices starting at first.
func (d *Device) DrawArrays(mode shaderbg.Primitive, first, count int) {
	d.record("DrawArrays", mode, first, count)
}

// Named returns the recorded calls with the given name, in order.
func (d *Device) Named(name string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Last returns the most recent call with the given name.
func (d *Device) Last(name string) (Call, bool) {
	for i := len(d.Calls) - 1; i >= 0; i-- {
		if d.Calls[i].Name == name {
			return d.Calls[i], true
		}
	}
	return Call{}, false
}

// Surface is a fake drawable surface with a settable logical size and ratio.
type Surface struct {
	Width, Height int
	Ratio         float64

	backingW, backingH int
	listeners          []func()
}

var _ shaderbg.Surface = (*Surface)(nil)

// LogicalSize returns the configured logical size.
func (s *Surface) LogicalSize() (int, int) { return s.Width, s.Height }

// PixelRatio returns the configured ratio.
func (s *Surface) PixelRatio() float64 { return s.Ratio }

// SetBackingSize records the pixel buffer size.
func (s *Surface) SetBackingSize(w, h int) { s.backingW, s.backingH = w, h }

// BackingSize returns the last recorded pixel buffer size.
func (s *Surface) BackingSize() (int, int) { return s.backingW, s.backingH }

// OnResize registers fn for Resize.
func (s *Surface) OnResize(fn func()) { s.listeners = append(s.listeners, fn) }

// Resize changes the logical size and ratio and fires the resize listeners.
func (s *Surface) Resize(w, h int, ratio float64) {
	s.Width, s.Height, s.Ratio = w, h, ratio
	for _, fn := range s.listeners {
		fn()
	}
}

// Clock is a manually advanced shaderbg.Clock.
type Clock struct {
	T time.Duration
}

// Now returns the current manual time.
func (c *Clock) Now() time.Duration { return c.T }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.T += d }

// Stepper is a shaderbg.Scheduler that advances Clock by Step on every
// frame and reports shaderbg.ErrClosed after Frames frames.
type Stepper struct {
	Clock  *Clock
	Step   time.Duration
	Frames int

	// OnFrame, when set, runs before each frame is released.
	OnFrame func(n int)

	n int
}

// NextFrame releases the next frame or reports shaderbg.ErrClosed.
func (s *Stepper) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.n >= s.Frames {
		return shaderbg.ErrClosed
	}
	if s.Clock != nil {
		s.Clock.Advance(s.Step)
	}
	if s.OnFrame != nil {
		s.OnFrame(s.n)
	}
	s.n++
	return nil
}

// Count returns the number of frames released so far.
func (s *Stepper) Count() int { return s.n }
