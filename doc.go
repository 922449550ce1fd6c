/*
Package shaderbg renders a full-screen animated fragment shader.

A session loads a vertex and a fragment shader source, compiles and links
them into a single program, resolves the two uniforms exposed to shader
authors and then draws one procedural full-screen triangle per display
refresh.

# Uniforms

	u_resolution  vec2   backing-store width and height in device pixels
	u_time        float  seconds since session start plus a per-session offset

The offset is drawn once per session from [-2500, 2500) so that two sessions
running the same shader do not show the same picture.

# Quick Start

	// Backend setup (desktop)
	win, _ := opengl.OpenWindow(opengl.WindowConfig{Width: 800, Height: 600, Title: "shaderbg"})
	defer win.Close()

	s, err := shaderbg.Start(ctx, shaderbg.Options{
	    Device:   win.Device(),
	    Surface:  win,
	    Vertex:   "shaders/shader.vert",
	    Fragment: "shaders/my_noise.frag",
	})
	if err != nil {
	    return err // *ShaderCompileError, *ProgramLinkError or *LoadError
	}
	return s.Run(ctx, win)

# Vertex Shader Contract

No vertex buffer is bound. The vertex shader must derive the triangle from
gl_VertexID, for example:

	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
	gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);

# Backends

backend/opengl drives a GLFW window with an OpenGL 4.1 core context.
backend/webgl (js/wasm only) drives a canvas with a WebGL2 context and
requestAnimationFrame.
*/
package shaderbg
