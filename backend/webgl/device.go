//go:build js && wasm

// Package webgl provides a WebGL2 backend for the shaderbg package, for
// builds targeting the browser (GOOS=js GOARCH=wasm).
package webgl

import (
	"fmt"
	"syscall/js"

	"github.com/go-theft-auto/shaderbg"
)

type glConsts struct {
	vertexShader   int
	fragmentShader int
	compileStatus  int
	linkStatus     int
	triangles      int
}

// Device implements shaderbg.Device on a WebGL2 rendering context.
// JS objects are kept in tables and handed out as integer handles.
type Device struct {
	gl     js.Value
	consts glConsts

	next     uint32
	shaders  map[shaderbg.Shader]js.Value
	programs map[shaderbg.Program]js.Value
	uniforms []js.Value
}

var _ shaderbg.Device = (*Device)(nil)

func newDevice(gl js.Value) *Device {
	return &Device{
		gl: gl,
		consts: glConsts{
			vertexShader:   gl.Get("VERTEX_SHADER").Int(),
			fragmentShader: gl.Get("FRAGMENT_SHADER").Int(),
			compileStatus:  gl.Get("COMPILE_STATUS").Int(),
			linkStatus:     gl.Get("LINK_STATUS").Int(),
			triangles:      gl.Get("TRIANGLES").Int(),
		},
		shaders:  make(map[shaderbg.Shader]js.Value),
		programs: make(map[shaderbg.Program]js.Value),
	}
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

// CreateShader creates an empty shader object for stage.
func (d *Device) CreateShader(stage shaderbg.Stage) shaderbg.Shader {
	kind := d.consts.vertexShader
	if stage == shaderbg.FragmentStage {
		kind = d.consts.fragmentShader
	}
	s := shaderbg.Shader(d.id())
	d.shaders[s] = d.gl.Call("createShader", kind)
	return s
}

// ShaderSource replaces the source of s.
func (d *Device) ShaderSource(s shaderbg.Shader, src string) {
	d.gl.Call("shaderSource", d.shaders[s], src)
}

// CompileShader compiles s.
func (d *Device) CompileShader(s shaderbg.Shader) {
	d.gl.Call("compileShader", d.shaders[s])
}

// ShaderCompiled reports the compile status of s.
func (d *Device) ShaderCompiled(s shaderbg.Shader) bool {
	return d.gl.Call("getShaderParameter", d.shaders[s], d.consts.compileStatus).Bool()
}

// ShaderInfoLog returns the compiler log of s.
func (d *Device) ShaderInfoLog(s shaderbg.Shader) string {
	return d.gl.Call("getShaderInfoLog", d.shaders[s]).String()
}

// DeleteShader releases s.
func (d *Device) DeleteShader(s shaderbg.Shader) {
	if v, ok := d.shaders[s]; ok {
		d.gl.Call("deleteShader", v)
		delete(d.shaders, s)
	}
}

// CreateProgram creates an empty program object.
func (d *Device) CreateProgram() shaderbg.Program {
	p := shaderbg.Program(d.id())
	d.programs[p] = d.gl.Call("createProgram")
	return p
}

// AttachShader attaches s to p.
func (d *Device) AttachShader(p shaderbg.Program, s shaderbg.Shader) {
	d.gl.Call("attachShader", d.programs[p], d.shaders[s])
}

// LinkProgram links p.
func (d *Device) LinkProgram(p shaderbg.Program) {
	d.gl.Call("linkProgram", d.programs[p])
}

// ProgramLinked reports the link status of p.
func (d *Device) ProgramLinked(p shaderbg.Program) bool {
	return d.gl.Call("getProgramParameter", d.programs[p], d.consts.linkStatus).Bool()
}

// ProgramInfoLog returns the linker log of p.
func (d *Device) ProgramInfoLog(p shaderbg.Program) string {
	return d.gl.Call("getProgramInfoLog", d.programs[p]).String()
}

// UseProgram makes p the current program.
func (d *Device) UseProgram(p shaderbg.Program) {
	d.gl.Call("useProgram", d.programs[p])
}

// UniformLocation returns shaderbg.NoUniform when WebGL yields null.
func (d *Device) UniformLocation(p shaderbg.Program, name string) shaderbg.Uniform {
	loc := d.gl.Call("getUniformLocation", d.programs[p], name)
	if loc.IsNull() || loc.IsUndefined() {
		return shaderbg.NoUniform
	}
	d.uniforms = append(d.uniforms, loc)
	return shaderbg.Uniform(len(d.uniforms) - 1)
}

func (d *Device) location(u shaderbg.Uniform) js.Value {
	if u < 0 || int(u) >= len(d.uniforms) {
		return js.Null()
	}
	return d.uniforms[u]
}

// Uniform1f sets a float uniform of the current program.
func (d *Device) Uniform1f(u shaderbg.Uniform, v float32) {
	d.gl.Call("uniform1f", d.location(u), v)
}

// Uniform2f sets a vec2 uniform of the current program.
func (d *Device) Uniform2f(u shaderbg.Uniform, x, y float32) {
	d.gl.Call("uniform2f", d.location(u), x, y)
}

// Viewport sets the viewport rectangle in pixels.
func (d *Device) Viewport(x, y, width, height int) {
	d.gl.Call("viewport", x, y, width, height)
}

// DrawArrays draws count vertices starting at first.
func (d *Device) DrawArrays(mode shaderbg.Primitive, first, count int) {
	if mode != shaderbg.Triangles {
		panic(fmt.Sprintf("webgl: unsupported primitive %v", mode))
	}
	d.gl.Call("drawArrays", d.consts.triangles, first, count)
}
