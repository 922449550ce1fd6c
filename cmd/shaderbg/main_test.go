package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/go-theft-auto/shaderbg"
)

func parseConfig(t *testing.T, args ...string) (shaderbg.Config, error) {
	t.Helper()
	var (
		cfg shaderbg.Config
		err error
	)
	app := &cli.App{
		Name:  "shaderbg",
		Flags: commonFlags,
		Action: func(ctx *cli.Context) error {
			cfg, err = loadConfig(ctx)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"shaderbg"}, args...)))
	return cfg, err
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(t)
	require.NoError(t, err)
	assert.Equal(t, shaderbg.DefaultConfig(), cfg)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shaderbg.toml")
	require.NoError(t, os.WriteFile(path, []byte("fragment = \"a.frag\"\nwidth = 1024\nheight = 768\n"), 0o644))

	cfg, err := parseConfig(t, "--config", path, "--width", "640", "--fragment", "b.frag", "--seed", "7")
	require.NoError(t, err)
	assert.Equal(t, "b.frag", cfg.Fragment)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "shaders/shader.vert", cfg.Vertex)
}

func TestLoadConfigRejectsBadSize(t *testing.T) {
	_, err := parseConfig(t, "--height", "0")
	assert.ErrorContains(t, err, "invalid window size")
}

func parseSnapshotConfig(t *testing.T, args ...string) (shaderbg.Config, error) {
	t.Helper()
	var (
		cfg shaderbg.Config
		err error
	)
	app := &cli.App{
		Name:  "shaderbg",
		Flags: commonFlags,
		Commands: []*cli.Command{
			{
				Name:  "snapshot",
				Flags: snapshotFlags,
				Action: func(ctx *cli.Context) error {
					cfg, err = loadConfig(ctx)
					return nil
				},
			},
		},
	}
	require.NoError(t, app.Run(append([]string{"shaderbg"}, args...)))
	return cfg, err
}

func TestSnapshotInheritsAppFlags(t *testing.T) {
	cfg, err := parseSnapshotConfig(t, "--fragment", "b.frag", "--width", "640", "snapshot")
	require.NoError(t, err)
	assert.Equal(t, "b.frag", cfg.Fragment)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
}

func TestSnapshotFlagsOverrideAppFlags(t *testing.T) {
	cfg, err := parseSnapshotConfig(t, "--fragment", "a.frag", "--seed", "3", "snapshot", "--fragment", "b.frag")
	require.NoError(t, err)
	assert.Equal(t, "b.frag", cfg.Fragment)
	assert.Equal(t, uint64(3), cfg.Seed)
}

func TestSnapshotInheritsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shaderbg.toml")
	require.NoError(t, os.WriteFile(path, []byte("vertex = \"v.vert\"\nheight = 480\n"), 0o644))

	cfg, err := parseSnapshotConfig(t, "--config", path, "snapshot", "--width", "320")
	require.NoError(t, err)
	assert.Equal(t, "v.vert", cfg.Vertex)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, 320, cfg.Width)
}
