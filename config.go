package shaderbg

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the user-facing settings of a session and its window.
type Config struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Title    string `toml:"title"`
	VSync    bool   `toml:"vsync"`
	// Seed fixes the per-session time offset. Zero draws a fresh one.
	Seed    uint64 `toml:"seed"`
	Verbose bool   `toml:"verbose"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Vertex:   "shaders/shader.vert",
		Fragment: "shaders/my_noise.frag",
		Width:    800,
		Height:   600,
		Title:    "shaderbg",
		VSync:    true,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
// Keys absent from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot start a session.
func (c Config) Validate() error {
	var errs []error
	if c.Vertex == "" {
		errs = append(errs, errors.New("vertex location is empty"))
	}
	if c.Fragment == "" {
		errs = append(errs, errors.New("fragment location is empty"))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid window size %dx%d", c.Width, c.Height))
	}
	return errors.Join(errs...)
}
