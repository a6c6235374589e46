package gizmo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, SpaceWorld, cfg.Space)
	assert.Equal(t, float32(8), cfg.PickTolerancePx)
	assert.Zero(t, cfg.RotationSnapDeg)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
space: local
pick_tolerance_px: 12
rotation_snap_deg: 15
translation_snap: 0.25
uniform_scale_handle: false
`))
	require.NoError(t, err)

	want := DefaultConfig()
	want.Space = SpaceLocal
	want.PickTolerancePx = 12
	want.RotationSnapDeg = 15
	want.TranslationSnap = 0.25
	want.UniformScaleHandle = false
	assert.Equal(t, want, cfg)
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{name: "unknown key", yaml: "handle_size: 3\n"},
		{name: "unknown space", yaml: "space: screen\n"},
		{name: "bad type", yaml: "pick_tolerance_px: wide\n"},
		{name: "zero tolerance", yaml: "pick_tolerance_px: 0\n", invalid: true},
		{name: "negative snap", yaml: "scale_snap: -0.1\n", invalid: true},
		{name: "inverted scale segment", yaml: "scale_handle_start: 2\nscale_handle_end: 1\n", invalid: true},
		{name: "zero min scale", yaml: "min_scale: 0\n", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig), err.Error())
		})
	}
}

func TestConfigValidateCollectsProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RingRadius = 0
	cfg.MinScale = -1
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "ring_radius")
	assert.Contains(t, err.Error(), "min_scale")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gizmo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("space: Local\nscale_snap: 0.5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, SpaceLocal, cfg.Space)
	assert.Equal(t, float32(0.5), cfg.ScaleSnap)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigRoundTripsSpaceName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Space = SpaceLocal
	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "space: local")

	back, err := ParseConfig(out)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
