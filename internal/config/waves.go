package config

import (
	"errors"
	"fmt"
	"strings"
)

// WaveSet is the ordered list of wave definitions for a run.
type WaveSet struct {
	Waves []WaveDef `yaml:"waves"`
}

// WaveDef is the static definition of one wave.
type WaveDef struct {
	Number     int           `yaml:"number"`
	Name       string        `yaml:"name"`
	MarchSpeed float64       `yaml:"march_speed"`
	Descent    float64       `yaml:"descent"`
	DropRates  DropRates     `yaml:"drop_rates"`
	Layout     []string      `yaml:"layout"`
	Obstacles  []ObstacleDef `yaml:"obstacles,omitempty"`
	Boss       *BossDef      `yaml:"boss,omitempty"`
}

// DropRates are per-kill drop probabilities.
type DropRates struct {
	TimedPowerup float64 `yaml:"timed_powerup"`
	Mutation     float64 `yaml:"mutation"`
}

// ObstacleDef places one pinball obstacle.
type ObstacleDef struct {
	Kind     string  `yaml:"kind"` // bumper, vortex, wormhole, gravity_well
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius,omitempty"`
	ExitX    float64 `yaml:"exit_x,omitempty"`
	ExitY    float64 `yaml:"exit_y,omitempty"`
	Strength float64 `yaml:"strength,omitempty"`
}

// BossDef describes a boss fight.
type BossDef struct {
	Name       string     `yaml:"name"`
	HP         int        `yaml:"hp"`
	WeakPoints int        `yaml:"weak_points"`
	Phases     []PhaseDef `yaml:"phases"`
}

// PhaseDef binds an attack pattern to an hp threshold.
type PhaseDef struct {
	HPThreshold int    `yaml:"hp_threshold"`
	Pattern     string `yaml:"pattern"` // spray, burst, aimed
}

// Layout tokens recognised by ParseLayout.
const (
	TokenRaptor   = 'R'
	TokenPtero    = 'P'
	TokenTrike    = 'T'
	TokenBomber   = 'B'
	TokenSplitter = 'S'
	TokenEmpty    = '.'
)

// Obstacle kinds.
const (
	ObstacleBumper      = "bumper"
	ObstacleVortex      = "vortex"
	ObstacleWormhole    = "wormhole"
	ObstacleGravityWell = "gravity_well"
)

// Attack patterns.
const (
	PatternSpray = "spray"
	PatternBurst = "burst"
	PatternAimed = "aimed"
)

// GridCell is one occupied formation slot.
type GridCell struct {
	Row, Col int
	Token    rune
}

// ParseLayout converts ASCII layout rows into occupied cells, row by row.
// Space and '.' are empty. Returns the cells and the widest row length.
func ParseLayout(rows []string) ([]GridCell, int, error) {
	var cells []GridCell
	cols := 0
	for r, line := range rows {
		line = strings.TrimRight(line, " ")
		c := 0
		for _, ch := range line {
			switch ch {
			case TokenEmpty, ' ':
			case TokenRaptor, TokenPtero, TokenTrike, TokenBomber, TokenSplitter:
				cells = append(cells, GridCell{Row: r, Col: c, Token: ch})
			default:
				return nil, 0, fmt.Errorf("config: layout row %d col %d: unknown token %q", r, c, ch)
			}
			c++
		}
		if c > cols {
			cols = c
		}
	}
	return cells, cols, nil
}

// IsBoss reports whether the wave is a boss fight.
func (w WaveDef) IsBoss() bool {
	return w.Boss != nil
}

// Wave returns the definition for wave n (1-based).
func (s WaveSet) Wave(n int) (WaveDef, bool) {
	for _, w := range s.Waves {
		if w.Number == n {
			return w, true
		}
	}
	return WaveDef{}, false
}

// FinalWave returns the highest wave number defined.
func (s WaveSet) FinalWave() int {
	final := 0
	for _, w := range s.Waves {
		if w.Number > final {
			final = w.Number
		}
	}
	return final
}

// Validate reports every structural problem in the wave set.
func (s WaveSet) Validate() error {
	var errs []error
	seen := make(map[int]bool)
	for i, w := range s.Waves {
		if w.Number <= 0 {
			errs = append(errs, fmt.Errorf("config: wave entry %d: missing number", i))
			continue
		}
		if seen[w.Number] {
			errs = append(errs, fmt.Errorf("config: wave %d: duplicate number", w.Number))
		}
		seen[w.Number] = true

		cells, _, err := ParseLayout(w.Layout)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: wave %d: %w", w.Number, err))
		}
		if !w.IsBoss() {
			if err == nil && len(cells) == 0 {
				errs = append(errs, fmt.Errorf("config: wave %d: empty grid on a non-boss wave", w.Number))
			}
			if w.MarchSpeed <= 0 {
				errs = append(errs, fmt.Errorf("config: wave %d: march_speed must be positive", w.Number))
			}
		} else {
			errs = append(errs, validateBoss(w.Number, w.Boss)...)
		}
		for _, o := range w.Obstacles {
			switch o.Kind {
			case ObstacleBumper, ObstacleVortex, ObstacleWormhole, ObstacleGravityWell:
			default:
				errs = append(errs, fmt.Errorf("config: wave %d: unknown obstacle %q", w.Number, o.Kind))
			}
		}
	}
	for n := 1; n <= s.FinalWave(); n++ {
		if !seen[n] {
			errs = append(errs, fmt.Errorf("config: wave %d: missing definition", n))
		}
	}
	return errors.Join(errs...)
}

func validateBoss(n int, b *BossDef) []error {
	var errs []error
	if b.HP <= 0 {
		errs = append(errs, fmt.Errorf("config: wave %d: boss hp must be positive", n))
	}
	if len(b.Phases) == 0 {
		errs = append(errs, fmt.Errorf("config: wave %d: boss needs at least one phase", n))
	}
	for i, p := range b.Phases {
		if i > 0 && p.HPThreshold >= b.Phases[i-1].HPThreshold {
			errs = append(errs, fmt.Errorf("config: wave %d: phase %d threshold %d not below %d",
				n, i, p.HPThreshold, b.Phases[i-1].HPThreshold))
		}
		switch p.Pattern {
		case PatternSpray, PatternBurst, PatternAimed:
		default:
			errs = append(errs, fmt.Errorf("config: wave %d: phase %d: unknown pattern %q", n, i, p.Pattern))
		}
	}
	return errs
}
