package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon/floor"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/world"
)

func TestEmbeddedDefaultsMatchBuiltIn(t *testing.T) {
	var cfg DungeonConfig
	require.NoError(t, yaml.Unmarshal(defaultDungeonYAML, &cfg))
	assert.Equal(t, DefaultDungeonConfig(), cfg)
}

func TestDefaultsMatchCore(t *testing.T) {
	cfg := DefaultDungeonConfig()
	assert.Equal(t, floor.DefaultParams(), cfg.ToParams())
	assert.Equal(t, world.DefaultOptions(), cfg.ToWorldOptions())
}

func TestLoadDungeonCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dungeon.yaml")
	data := []byte("player:\n  lives: 9\ngeneration:\n  corridor_chance: 0.5\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadDungeon(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Player.Lives)
	assert.Equal(t, 0.5, cfg.Generation.CorridorChance)
	assert.Equal(t, 6, cfg.Player.MaxHP, "keys not in the file keep their defaults")
	assert.Equal(t, 20, cfg.Generation.MaxAttempts)
}

func TestLoadDungeonErrors(t *testing.T) {
	_, err := LoadDungeon(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player: [unclosed"), 0o600))
	cfg, err := LoadDungeon(path)
	assert.ErrorContains(t, err, "failed to parse config")
	assert.Equal(t, DefaultDungeonConfig(), cfg)
}

func TestLoadDungeonFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadDungeon("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDungeonConfig(), cfg)
}

func TestLoadDungeonLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "dungeon.yaml"), []byte("campaign:\n  floors: 3\n"), 0o600))

	cfg, err := LoadDungeon("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Campaign.Floors)
}

func TestApplyDungeonPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		lives  int
		hp     int
		damage float64
		level  float64
	}{
		{DifficultyEasy, 5, 8, 0.5, 0.0},
		{DifficultyNormal, 3, 6, 1.0, 0.3},
		{DifficultyHard, 2, 4, 1.5, 0.7},
		{"", 3, 6, 1.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultDungeonConfig()
			ApplyDungeonPreset(&cfg, tt.preset)
			assert.Equal(t, tt.lives, cfg.Player.Lives)
			assert.Equal(t, tt.hp, cfg.Player.MaxHP)
			assert.Equal(t, tt.damage, cfg.Enemies.DamageMultiplier)
			assert.Equal(t, tt.level, cfg.Difficulty.InitialLevel)
		})
	}
}

func TestParsePreset(t *testing.T) {
	assert.Equal(t, DifficultyHard, ParsePreset("hard"))
	assert.Equal(t, DifficultyPreset(""), ParsePreset("nightmare"))
	assert.Equal(t, DifficultyPreset(""), ParsePreset(""))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LoggingConfig{Enabled: true, Level: "warn", Prefix: "test"}, &buf)
	l.Info("hidden")
	l.Warn("shown", "floor", 2)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "test")

	buf.Reset()
	off := newLogger(LoggingConfig{Enabled: false, Level: "debug"}, &buf)
	off.Error("dropped")
	assert.Empty(t, buf.String())

	bad := newLogger(LoggingConfig{Enabled: true, Level: "loud"}, &buf)
	bad.Debug("not at info")
	assert.Empty(t, buf.String())
	assert.NotNil(t, NewLogger(DefaultDungeonConfig().Logging))
}
