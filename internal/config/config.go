// Package config provides YAML configuration for the dungeon: generator and
// world tuning, player and enemy stats, difficulty presets and logging.
package config

import (
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/floor"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon/world"
)

// DungeonConfig contains all configuration for a dungeon run.
type DungeonConfig struct {
	Generation GenerationConfig `yaml:"generation"`
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Campaign   CampaignConfig   `yaml:"campaign"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig tunes the floor generator.
type GenerationConfig struct {
	MaxAttempts     int     `yaml:"max_attempts"`
	ReseedStride    uint64  `yaml:"reseed_stride"`
	StallLimit      int     `yaml:"stall_limit"`
	CorridorChance  float64 `yaml:"corridor_chance"`
	TemplateRetries int     `yaml:"template_retries"`
}

// WorldConfig tunes navigation between rooms.
type WorldConfig struct {
	TileSize        float64 `yaml:"tile_size"`         // pixels per tile
	FadeDuration    float64 `yaml:"fade_duration"`     // seconds per fade phase
	FloorSeedStride uint64  `yaml:"floor_seed_stride"` // seed offset per floor
}

// PlayerConfig defines the player's stats.
type PlayerConfig struct {
	MaxHP          int     `yaml:"max_hp"`
	Lives          int     `yaml:"lives"`
	Speed          float64 `yaml:"speed"` // pixels per second
	AttackDamage   int     `yaml:"attack_damage"`
	AttackRange    float64 `yaml:"attack_range"`    // pixels
	AttackCooldown float64 `yaml:"attack_cooldown"` // seconds
	Invulnerable   float64 `yaml:"invulnerable"`    // seconds after a hit
}

// EnemyStats defines one enemy kind.
type EnemyStats struct {
	HP     int     `yaml:"hp"`
	Damage int     `yaml:"damage"`
	Speed  float64 `yaml:"speed"` // pixels per second
	Score  int     `yaml:"score"`
}

// EnemiesConfig defines every enemy kind.
type EnemiesConfig struct {
	DamageMultiplier float64    `yaml:"damage_multiplier"`
	Skeleton         EnemyStats `yaml:"skeleton"`
	Ghost            EnemyStats `yaml:"ghost"`
	BoneKing         EnemyStats `yaml:"bone_king"`
	Slime            EnemyStats `yaml:"slime"`
}

// CampaignConfig defines the campaign mode.
type CampaignConfig struct {
	Floors int `yaml:"floors"` // floors to clear to win
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Level      string `yaml:"level"` // debug, info, warn, error
	Prefix     string `yaml:"prefix"`
	Timestamps bool   `yaml:"timestamps"`
}

// ToParams converts the generation section to generator params.
func (c DungeonConfig) ToParams() floor.Params {
	return floor.Params{
		MaxAttempts:     c.Generation.MaxAttempts,
		ReseedStride:    c.Generation.ReseedStride,
		StallLimit:      c.Generation.StallLimit,
		CorridorChance:  c.Generation.CorridorChance,
		TemplateRetries: c.Generation.TemplateRetries,
	}
}

// ToWorldOptions converts the world section to world options.
func (c DungeonConfig) ToWorldOptions() world.Options {
	return world.Options{
		TileSize:        c.World.TileSize,
		FadeDuration:    c.World.FadeDuration,
		FloorSeedStride: c.World.FloorSeedStride,
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the starting difficulty level for a preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
