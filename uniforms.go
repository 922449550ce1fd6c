package shaderbg

import "log/slog"

// Uniform names exposed to shader authors.
const (
	ResolutionUniform = "u_resolution"
	TimeUniform       = "u_time"
)

// Uniforms holds the handles resolved from a linked program.
// They stay valid until the program is relinked, which never happens
// within a session.
type Uniforms struct {
	Resolution Uniform
	Time       Uniform
}

// BindUniforms resolves the session uniforms on p.
// A uniform the shader does not use resolves to NoUniform; that is not an error.
func BindUniforms(dev Device, p Program) Uniforms {
	u := Uniforms{
		Resolution: dev.UniformLocation(p, ResolutionUniform),
		Time:       dev.UniformLocation(p, TimeUniform),
	}
	for _, b := range []struct {
		name string
		h    Uniform
	}{
		{ResolutionUniform, u.Resolution},
		{TimeUniform, u.Time},
	} {
		if b.h == NoUniform {
			logger.Debug("uniform not active in program", slog.String("name", b.name))
		}
	}
	return u
}
