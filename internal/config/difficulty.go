package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the selectable presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// DifficultyProfile is selected at run start and scales the whole run.
type DifficultyProfile struct {
	Hearts      int     `yaml:"hearts"`
	EggSpeed    float64 `yaml:"egg_speed"`
	BulletSpeed float64 `yaml:"bullet_speed"`
	MarchMult   float64 `yaml:"march_mult"`
	ShootMult   float64 `yaml:"shoot_mult"`
	DropMult    float64 `yaml:"drop_mult"`
}

// ParsePreset converts user input into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q", s)
}

// Label returns the display name of the preset.
func (p DifficultyPreset) Label() string {
	switch p {
	case DifficultyEasy:
		return "EASY"
	case DifficultyHard:
		return "HARD"
	default:
		return "NORMAL"
	}
}

// Profile returns the profile for a preset. Unknown presets fall back to normal,
// and missing numeric fields are filled from the built-in table.
func (c DinoBlastConfig) Profile(preset DifficultyPreset) DifficultyProfile {
	builtin := defaultProfiles()
	base, ok := builtin[preset]
	if !ok {
		preset = DifficultyNormal
		base = builtin[DifficultyNormal]
	}
	p, ok := c.Difficulty[preset]
	if !ok {
		return base
	}
	if p.Hearts <= 0 {
		p.Hearts = base.Hearts
	}
	if p.EggSpeed <= 0 {
		p.EggSpeed = base.EggSpeed
	}
	if p.BulletSpeed <= 0 {
		p.BulletSpeed = base.BulletSpeed
	}
	if p.MarchMult <= 0 {
		p.MarchMult = base.MarchMult
	}
	if p.ShootMult <= 0 {
		p.ShootMult = base.ShootMult
	}
	if p.DropMult <= 0 {
		p.DropMult = base.DropMult
	}
	return p
}

func defaultProfiles() map[DifficultyPreset]DifficultyProfile {
	return map[DifficultyPreset]DifficultyProfile{
		DifficultyEasy: {
			Hearts: 5, EggSpeed: 240, BulletSpeed: 80,
			MarchMult: 0.7, ShootMult: 0.5, DropMult: 1.5,
		},
		DifficultyNormal: {
			Hearts: 3, EggSpeed: 280, BulletSpeed: 120,
			MarchMult: 1.0, ShootMult: 1.0, DropMult: 1.0,
		},
		DifficultyHard: {
			Hearts: 2, EggSpeed: 320, BulletSpeed: 160,
			MarchMult: 1.3, ShootMult: 1.5, DropMult: 0.7,
		},
	}
}
