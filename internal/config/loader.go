package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "survival.yaml"

// LoadSurvival loads the survival configuration.
// Search order: customPath -> ~/.survival/configs/survival.yaml -> ./configs/survival.yaml -> embedded default
//
// Only an explicit customPath produces an error; unreadable or malformed
// files along the fallback chain are skipped.
func LoadSurvival(customPath string) (SurvivalConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SurvivalConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseSurvival(data)
		if err != nil {
			return SurvivalConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSurvival(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parseSurvival(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSurvival(defaultSurvivalYAML)
	if err != nil {
		return DefaultSurvivalConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseSurvival decodes YAML over the hardcoded defaults, so a partial
// file only overrides the keys it names.
func parseSurvival(data []byte) (SurvivalConfig, error) {
	cfg := DefaultSurvivalConfig()
	// Lists replace rather than merge; clear them so yaml does not
	// decode into the default slices element by element.
	items, biomes := cfg.Items, cfg.Biomes
	cfg.Items, cfg.Biomes = nil, nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SurvivalConfig{}, err
	}
	if cfg.Items == nil {
		cfg.Items = items
	}
	if cfg.Biomes == nil {
		cfg.Biomes = biomes
	}
	if cfg.Health.Mode == "" {
		cfg.Health.Mode = HealthFixed
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".survival", "configs", filename)
}

// ApplyHealthMode switches the config to one of the two shipped variants:
// fixed max health with ambience, or biome-capped health with survival odds.
func ApplyHealthMode(cfg *SurvivalConfig, mode HealthMode) {
	cfg.Health.Mode = mode
	if cfg.Health.FixedMax <= 0 {
		cfg.Health.FixedMax = 100
	}
	switch mode {
	case HealthBiomeScaled:
		cfg.Health.ShowOdds = true
		cfg.Health.Ambience = false
	default:
		cfg.Health.Mode = HealthFixed
		cfg.Health.ShowOdds = false
		cfg.Health.Ambience = true
	}
}
