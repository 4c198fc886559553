package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/bonsai/internal/growth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultLife, cfg.Life)
	assert.Equal(t, []string{"&"}, cfg.Leaves)
	assert.Equal(t, BaseBig, cfg.Base)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"zero multiplier", func(c *Config) { c.Multiplier = 0 }, growth.ErrInvalidMultiplier},
		{"negative life", func(c *Config) { c.Life = -4 }, growth.ErrInvalidLife},
		{"bad base", func(c *Config) { c.Base = "pot" }, ErrUnknownBase},
		{"negative time step", func(c *Config) { c.TimeStep = -1 }, ErrInvalid},
		{"negative wait", func(c *Config) { c.Wait = -1 }, ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.err)
		})
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Leaves = []string{"&", "*"}
	cfg.TimeStep = 0.5
	cfg.Live = true

	p := cfg.Params()
	assert.Equal(t, 2, p.LeavesSize)
	assert.Equal(t, 500*time.Millisecond, p.TimeStep)
	assert.True(t, p.Live)
	assert.Equal(t, cfg.Life, p.LifeStart)
}

func TestParseLeaves(t *testing.T) {
	assert.Equal(t, []string{"&", "*", "@"}, ParseLeaves("&, *,,@"))
	assert.Empty(t, ParseLeaves(""))
}

func TestNormalizeScreensaver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Screensaver = true
	cfg.Normalize()
	assert.True(t, cfg.Live)
	assert.True(t, cfg.Infinite)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bonsai.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Leaves = []string{"*"}
	cfg.Message = "hello"

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("sapling")
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Life)
	require.NoError(t, cfg.Validate())

	cfg.Leaves[0] = "x"
	again, err := GetPreset("sapling")
	require.NoError(t, err)
	assert.Equal(t, "&", again.Leaves[0], "preset mutated through copy")

	_, err = GetPreset("bamboo")
	require.ErrorIs(t, err, ErrUnknownPreset)
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	require.NotEmpty(t, names)
	assert.IsIncreasing(t, names)
	for _, name := range names {
		cfg, err := GetPreset(name)
		require.NoError(t, err)
		assert.NoError(t, cfg.Validate(), name)
	}
}

func TestBaseSize(t *testing.T) {
	w, h := BaseSize(BaseBig)
	assert.Equal(t, 31, w)
	assert.Equal(t, 4, h)
	w, h = BaseSize(BaseNone)
	assert.Zero(t, w+h)
}
