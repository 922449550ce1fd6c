// Package opengl provides an OpenGL 4.1 backend for the shaderbg package.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/shaderbg"
)

// Device implements shaderbg.Device on the current OpenGL context.
type Device struct {
	// Core profile refuses draws without a bound vertex array, even when
	// the vertex shader reads no attributes.
	vao uint32
}

var _ shaderbg.Device = (*Device)(nil)

// NewDevice creates a device for the context current on this thread.
// gl.Init must have been called.
func NewDevice() *Device {
	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d
}

func glStage(stage shaderbg.Stage) uint32 {
	if stage == shaderbg.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func glPrimitive(mode shaderbg.Primitive) uint32 {
	if mode == shaderbg.Triangles {
		return gl.TRIANGLES
	}
	panic(fmt.Sprintf("opengl: unsupported primitive %v", mode))
}

// CreateShader creates an empty shader object for stage.
func (d *Device) CreateShader(stage shaderbg.Stage) shaderbg.Shader {
	return shaderbg.Shader(gl.CreateShader(glStage(stage)))
}

// ShaderSource replaces the source of s.
func (d *Device) ShaderSource(s shaderbg.Shader, src string) {
	csource, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s), 1, csource, nil)
	free()
}

// CompileShader compiles s.
func (d *Device) CompileShader(s shaderbg.Shader) {
	gl.CompileShader(uint32(s))
}

// ShaderCompiled reports the compile status of s.
func (d *Device) ShaderCompiled(s shaderbg.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

// ShaderInfoLog returns the compiler log of s.
func (d *Device) ShaderInfoLog(s shaderbg.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetShaderInfoLog(uint32(s), logLength, nil, &log[0])
	return gl.GoStr(&log[0])
}

// DeleteShader releases s.
func (d *Device) DeleteShader(s shaderbg.Shader) {
	gl.DeleteShader(uint32(s))
}

// CreateProgram creates an empty program object.
func (d *Device) CreateProgram() shaderbg.Program {
	return shaderbg.Program(gl.CreateProgram())
}

// AttachShader attaches s to p.
func (d *Device) AttachShader(p shaderbg.Program, s shaderbg.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

// LinkProgram links p.
func (d *Device) LinkProgram(p shaderbg.Program) {
	gl.LinkProgram(uint32(p))
}

// ProgramLinked reports the link status of p.
func (d *Device) ProgramLinked(p shaderbg.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

// ProgramInfoLog returns the linker log of p.
func (d *Device) ProgramInfoLog(p shaderbg.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetProgramInfoLog(uint32(p), logLength, nil, &log[0])
	return gl.GoStr(&log[0])
}

// UseProgram makes p the current program.
func (d *Device) UseProgram(p shaderbg.Program) {
	gl.UseProgram(uint32(p))
}

// UniformLocation returns -1 (shaderbg.NoUniform) for inactive uniforms,
// which GL ignores on upload.
func (d *Device) UniformLocation(p shaderbg.Program, name string) shaderbg.Uniform {
	return shaderbg.Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

// Uniform1f sets a float uniform of the current program.
func (d *Device) Uniform1f(u shaderbg.Uniform, v float32) {
	gl.Uniform1f(int32(u), v)
}

// Uniform2f sets a vec2 uniform of the current program.
func (d *Device) Uniform2f(u shaderbg.Uniform, x, y float32) {
	gl.Uniform2f(int32(u), x, y)
}

// Viewport sets the viewport rectangle in pixels.
func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// DrawArrays draws count vertices starting at first.
func (d *Device) DrawArrays(mode shaderbg.Primitive, first, count int) {
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(glPrimitive(mode), int32(first), int32(count))
}
