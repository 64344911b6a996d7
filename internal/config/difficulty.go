package config

import "math"

// DifficultyConfig defines how enemies toughen as the player descends.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the difficulty level.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "floor" or "none"
	MaxAt int    `yaml:"max_at"` // floor at which max difficulty is reached
}

// ScalingConfig defines the size of the changes at max difficulty.
type ScalingConfig struct {
	HPMultiplier     float64 `yaml:"hp_multiplier"`     // added to enemy HP multiplier
	DamageMultiplier float64 `yaml:"damage_multiplier"` // added to enemy damage multiplier
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // added to enemy speed multiplier
}

// DifficultyManager scales enemy stats by floor depth.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) on the given floor.
func (d *DifficultyManager) Level(floorNumber int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "floor" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 1 {
		return 1.0
	}

	// Floor 1 is the start of the curve.
	progress := clampF(float64(floorNumber-1)/(maxAt-1), 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Scale applies the level on floorNumber to base enemy stats.
func (d *DifficultyManager) Scale(base EnemyStats, floorNumber int) EnemyStats {
	level := d.Level(floorNumber)
	s := base
	s.HP = scaleInt(base.HP, 1.0+level*d.cfg.Scaling.HPMultiplier)
	s.Damage = scaleInt(base.Damage, 1.0+level*d.cfg.Scaling.DamageMultiplier)
	s.Speed = base.Speed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
	return s
}

func scaleInt(v int, k float64) int {
	if v <= 0 {
		return v
	}
	return max(1, int(math.Round(float64(v)*k)))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
