package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedTuningMatchesHardcoded(t *testing.T) {
	var embedded DinoBlastConfig
	if err := yaml.Unmarshal(defaultDinoBlastYAML, &embedded); err != nil {
		t.Fatalf("embedded dinoblast.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(embedded, DefaultDinoBlastConfig()) {
		t.Errorf("embedded tuning drifted from DefaultDinoBlastConfig:\n%+v\n%+v", embedded, DefaultDinoBlastConfig())
	}
}

func TestEmbeddedWavesValidate(t *testing.T) {
	var set WaveSet
	if err := yaml.Unmarshal(defaultWavesYAML, &set); err != nil {
		t.Fatalf("embedded waves.yaml does not parse: %v", err)
	}
	if err := set.Validate(); err != nil {
		t.Errorf("embedded waves invalid: %v", err)
	}
	if set.FinalWave() != 10 {
		t.Errorf("FinalWave() = %d, expected 10", set.FinalWave())
	}
	final, ok := set.Wave(10)
	if !ok || !final.IsBoss() {
		t.Fatal("wave 10 should be a boss wave")
	}
	if final.Boss.HP != 30 || len(final.Boss.Phases) != 3 {
		t.Errorf("final boss = %+v, expected hp 30 with 3 phases", final.Boss)
	}
	if err := DefaultWaves().Validate(); err != nil {
		t.Errorf("DefaultWaves invalid: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Paddle.Width != 120 || cfg.Paddle.DashCooldown != 1500*time.Millisecond {
		t.Errorf("unexpected paddle defaults: %+v", cfg.Paddle)
	}
	if cfg.Playfield.EarthLineY != 560 {
		t.Errorf("EarthLineY = %f, expected 560", cfg.Playfield.EarthLineY)
	}

	waves, err := LoadWaves("")
	if err != nil {
		t.Fatalf("LoadWaves failed: %v", err)
	}
	if len(waves.Waves) != 10 {
		t.Errorf("expected 10 embedded waves, got %d", len(waves.Waves))
	}
}

func TestLoadCustomOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "paddle:\n  width: 200\ncombo:\n  window: 3s\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Paddle.Width != 200 {
		t.Errorf("Paddle.Width = %f, expected 200", cfg.Paddle.Width)
	}
	if cfg.Paddle.Speed != 400 {
		t.Errorf("Paddle.Speed = %f, expected untouched 400", cfg.Paddle.Speed)
	}
	if cfg.Combo.Window != 3*time.Second {
		t.Errorf("Combo.Window = %v, expected 3s", cfg.Combo.Window)
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	waves := "waves:\n  - number: 1\n    name: Solo\n    march_speed: 30\n    descent: 20\n    layout: [\"RR\"]\n"
	if err := os.WriteFile(filepath.Join("configs", "waves.yaml"), []byte(waves), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadWaves("")
	if err != nil {
		t.Fatalf("LoadWaves failed: %v", err)
	}
	if len(set.Waves) != 1 || set.Waves[0].Name != "Solo" {
		t.Errorf("expected local waves file to replace the list, got %+v", set.Waves)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom path")
	}
	if !strings.HasPrefix(err.Error(), "config: ") {
		t.Errorf("error %q should carry the package prefix", err)
	}
}

func TestParseLayout(t *testing.T) {
	cells, cols, err := ParseLayout([]string{"R.P", " T", "BS"})
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	if cols != 3 {
		t.Errorf("cols = %d, expected 3", cols)
	}
	expected := []GridCell{
		{Row: 0, Col: 0, Token: 'R'},
		{Row: 0, Col: 2, Token: 'P'},
		{Row: 1, Col: 1, Token: 'T'},
		{Row: 2, Col: 0, Token: 'B'},
		{Row: 2, Col: 1, Token: 'S'},
	}
	if !reflect.DeepEqual(cells, expected) {
		t.Errorf("cells = %+v, expected %+v", cells, expected)
	}

	if _, _, err := ParseLayout([]string{"RX"}); err == nil {
		t.Error("expected error for unknown token")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     WaveSet
		wantErr string
	}{
		{
			name: "valid grid and boss",
			set: WaveSet{Waves: []WaveDef{
				{Number: 1, MarchSpeed: 30, Layout: []string{"RR"}},
				{Number: 2, Boss: &BossDef{HP: 10, Phases: []PhaseDef{{10, PatternSpray}, {5, PatternAimed}}}},
			}},
		},
		{
			name:    "empty grid on normal wave",
			set:     WaveSet{Waves: []WaveDef{{Number: 1, MarchSpeed: 30, Layout: []string{"..."}}}},
			wantErr: "empty grid",
		},
		{
			name:    "missing number",
			set:     WaveSet{Waves: []WaveDef{{MarchSpeed: 30, Layout: []string{"R"}}}},
			wantErr: "missing number",
		},
		{
			name: "gap in numbering",
			set: WaveSet{Waves: []WaveDef{
				{Number: 1, MarchSpeed: 30, Layout: []string{"R"}},
				{Number: 3, MarchSpeed: 30, Layout: []string{"R"}},
			}},
			wantErr: "wave 2: missing definition",
		},
		{
			name: "thresholds not decreasing",
			set: WaveSet{Waves: []WaveDef{
				{Number: 1, Boss: &BossDef{HP: 10, Phases: []PhaseDef{{10, PatternSpray}, {10, PatternBurst}}}},
			}},
			wantErr: "not below",
		},
		{
			name: "unknown pattern",
			set: WaveSet{Waves: []WaveDef{
				{Number: 1, Boss: &BossDef{HP: 10, Phases: []PhaseDef{{10, "laser"}}}},
			}},
			wantErr: "unknown pattern",
		},
		{
			name: "unknown obstacle",
			set: WaveSet{Waves: []WaveDef{
				{Number: 1, MarchSpeed: 30, Layout: []string{"R"}, Obstacles: []ObstacleDef{{Kind: "flipper"}}},
			}},
			wantErr: "unknown obstacle",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.set.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	cfg := DefaultDinoBlastConfig()

	tests := []struct {
		preset DifficultyPreset
		hearts int
		egg    float64
		drop   float64
	}{
		{DifficultyEasy, 5, 240, 1.5},
		{DifficultyNormal, 3, 280, 1.0},
		{DifficultyHard, 2, 320, 0.7},
		{DifficultyPreset("insane"), 3, 280, 1.0},
	}

	for _, tc := range tests {
		p := cfg.Profile(tc.preset)
		if p.Hearts != tc.hearts || p.EggSpeed != tc.egg || p.DropMult != tc.drop {
			t.Errorf("Profile(%s) = %+v, expected hearts %d egg %f drop %f", tc.preset, p, tc.hearts, tc.egg, tc.drop)
		}
	}

	// Partial overrides keep the built-in values for unset fields.
	cfg.Difficulty = map[DifficultyPreset]DifficultyProfile{DifficultyHard: {Hearts: 1}}
	p := cfg.Profile(DifficultyHard)
	if p.Hearts != 1 || p.BulletSpeed != 160 {
		t.Errorf("partial hard profile = %+v, expected hearts 1 bullet 160", p)
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(" Hard "); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(Hard) = %s, %v", p, err)
	}
	if p, err := ParsePreset("nightmare"); err == nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(nightmare) = %s, %v; expected normal with error", p, err)
	}
}
