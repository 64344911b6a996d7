package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDungeon loads the dungeon configuration.
// Search order: customPath -> ~/.dungeon/configs/dungeon.yaml -> ./configs/dungeon.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes.
func LoadDungeon(customPath string) (DungeonConfig, error) {
	cfg := DefaultDungeonConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultDungeonConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dungeon.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultDungeonConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "dungeon.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultDungeonConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultDungeonYAML, &cfg); err != nil {
		return DefaultDungeonConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dungeon", "configs", filename)
}

// ApplyDungeonPreset adjusts the config for a difficulty preset.
func ApplyDungeonPreset(cfg *DungeonConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHP = 8
		cfg.Player.Lives = 5
		cfg.Enemies.DamageMultiplier = 0.5
	case DifficultyNormal:
		cfg.Enemies.DamageMultiplier = 1.0
	case DifficultyHard:
		cfg.Player.MaxHP = 4
		cfg.Player.Lives = 2
		cfg.Enemies.DamageMultiplier = 1.5
	}
}
