package shaderbg

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noUniformDevice exposes no uniforms. Only UniformLocation is called.
type noUniformDevice struct {
	Device
}

func (noUniformDevice) UniformLocation(Program, string) Uniform { return NoUniform }

func TestBindUniformsLogsMissingInOrder(t *testing.T) {
	var buf bytes.Buffer
	saved := logger
	logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { logger = saved })

	for i := 0; i < 50; i++ {
		buf.Reset()
		u := BindUniforms(noUniformDevice{}, 1)
		assert.Equal(t, Uniforms{Resolution: NoUniform, Time: NoUniform}, u)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "name="+ResolutionUniform)
		assert.Contains(t, lines[1], "name="+TimeUniform)
	}
}
