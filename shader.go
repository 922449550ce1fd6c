package shaderbg

import (
	"fmt"
	"log/slog"
	"strings"
)

// ShaderCompileError reports a shader that failed to compile.
// Log is the driver's info log, verbatim.
type ShaderCompileError struct {
	Stage Stage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, strings.TrimRight(e.Log, "\x00\n "))
}

// ProgramLinkError reports a program that failed to link.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("shader program linking failed: %s", strings.TrimRight(e.Log, "\x00\n "))
}

// CompileShader creates a shader of the given stage from src and compiles it.
// On failure the shader object is released and a *ShaderCompileError is returned.
func CompileShader(dev Device, stage Stage, src string) (Shader, error) {
	s := dev.CreateShader(stage)
	dev.ShaderSource(s, src)
	dev.CompileShader(s)

	if !dev.ShaderCompiled(s) {
		log := dev.ShaderInfoLog(s)
		dev.DeleteShader(s)
		return 0, &ShaderCompileError{Stage: stage, Log: log}
	}
	return s, nil
}

// LinkProgram attaches vs and fs to a new program and links it.
// The shaders are deleted once the program links; the program keeps them
// alive for as long as it needs them.
func LinkProgram(dev Device, vs, fs Shader) (Program, error) {
	p := dev.CreateProgram()
	dev.AttachShader(p, vs)
	dev.AttachShader(p, fs)
	dev.LinkProgram(p)

	if !dev.ProgramLinked(p) {
		return 0, &ProgramLinkError{Log: dev.ProgramInfoLog(p)}
	}

	dev.DeleteShader(vs)
	dev.DeleteShader(fs)
	return p, nil
}

// BuildProgram compiles vertSrc and fragSrc and links them.
// It stops at the first failure: a vertex compile error means the fragment
// source is never compiled, and no link is attempted after a compile error.
func BuildProgram(dev Device, vertSrc, fragSrc string) (Program, error) {
	vs, err := CompileShader(dev, VertexStage, vertSrc)
	if err != nil {
		return 0, err
	}
	fs, err := CompileShader(dev, FragmentStage, fragSrc)
	if err != nil {
		dev.DeleteShader(vs)
		return 0, err
	}
	p, err := LinkProgram(dev, vs, fs)
	if err != nil {
		return 0, err
	}
	logger.Info("shader program linked", slog.Uint64("program", uint64(p)))
	return p, nil
}
