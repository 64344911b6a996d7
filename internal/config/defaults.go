package config

import (
	_ "embed"
)

//go:embed defaults/dungeon.yaml
var defaultDungeonYAML []byte

// DefaultDungeonConfig returns the built-in configuration. It mirrors
// defaults/dungeon.yaml and is used when even the embedded file fails to
// parse.
func DefaultDungeonConfig() DungeonConfig {
	return DungeonConfig{
		Generation: GenerationConfig{
			MaxAttempts:     20,
			ReseedStride:    7919,
			StallLimit:      100,
			CorridorChance:  0.2,
			TemplateRetries: 10,
		},
		World: WorldConfig{
			TileSize:        16,
			FadeDuration:    0.3,
			FloorSeedStride: 0x9E3779B97F4A7C15,
		},
		Player: PlayerConfig{
			MaxHP:          6,
			Lives:          3,
			Speed:          96,
			AttackDamage:   2,
			AttackRange:    24,
			AttackCooldown: 0.35,
			Invulnerable:   1.0,
		},
		Enemies: EnemiesConfig{
			DamageMultiplier: 1.0,
			Skeleton:         EnemyStats{HP: 3, Damage: 1, Speed: 40, Score: 10},
			Ghost:            EnemyStats{HP: 2, Damage: 1, Speed: 55, Score: 15},
			BoneKing:         EnemyStats{HP: 24, Damage: 2, Speed: 32, Score: 200},
			Slime:            EnemyStats{HP: 1, Damage: 1, Speed: 28, Score: 5},
		},
		Campaign: CampaignConfig{
			Floors: 5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "floor",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				HPMultiplier:     1.0,
				DamageMultiplier: 0.5,
				SpeedMultiplier:  0.3,
			},
		},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			Prefix:     "dungeon",
			Timestamps: true,
		},
	}
}
