package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	tuningFile = "dinoblast.yaml"
	wavesFile  = "waves.yaml"
)

// Load loads DinoBlast tuning.
// Search order: customPath -> ~/.dinoblast/configs/dinoblast.yaml -> ./configs/dinoblast.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func Load(customPath string) (DinoBlastConfig, error) {
	base := DefaultDinoBlastConfig()
	if err := yaml.Unmarshal(defaultDinoBlastYAML, &base); err != nil {
		base = DefaultDinoBlastConfig() // Fallback to hardcoded if embed fails
	}
	return loadOver(customPath, tuningFile, base)
}

// LoadWaves loads wave definitions with the same search order as Load.
// Unlike tuning, a wave file replaces the whole wave list.
func LoadWaves(customPath string) (WaveSet, error) {
	var base WaveSet
	if err := yaml.Unmarshal(defaultWavesYAML, &base); err != nil || len(base.Waves) == 0 {
		base = DefaultWaves()
	}

	// Decode into an empty set so user files never merge with the embedded list.
	var empty WaveSet
	set, err := loadOver(customPath, wavesFile, empty)
	if err != nil {
		return base, err
	}
	if len(set.Waves) == 0 {
		return base, nil
	}
	return set, nil
}

// loadOver decodes the first readable file in the search chain on top of base.
// Only an explicit customPath produces an error; the other locations are optional.
func loadOver[T any](customPath, filename string, base T) (T, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg := base
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return base, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := base
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	return base, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dinoblast", "configs", filename)
}
