package dinoblast

import (
	"context"
	"testing"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
)

// scriptedRNG replays fixed values. Once exhausted, Float64 returns a value
// above every drop and shoot chance and Intn returns 0.
type scriptedRNG struct {
	floats []float64
	ints   []int
}

func (r *scriptedRNG) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.999
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRNG) Intn(n int) int {
	if len(r.ints) == 0 || n <= 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

// recorder captures every listener callback.
type recorder struct {
	NopListener
	scores []int
	hearts []int
	waves  []int
	phases []int
	ended  []RunResult
	drops  []Pickup
	cues   []string
}

func (r *recorder) ScoreChanged(total int)           { r.scores = append(r.scores, total) }
func (r *recorder) HeartsChanged(remaining int)      { r.hearts = append(r.hearts, remaining) }
func (r *recorder) WaveChanged(n int)                { r.waves = append(r.waves, n) }
func (r *recorder) BossPhaseChanged(phase int)       { r.phases = append(r.phases, phase) }
func (r *recorder) RunEnded(res RunResult)           { r.ended = append(r.ended, res) }
func (r *recorder) DropSpawned(_ core.Vec, p Pickup) { r.drops = append(r.drops, p) }
func (r *recorder) SoundCue(name string)             { r.cues = append(r.cues, name) }

// memorySink collects reported results.
type memorySink struct {
	results []RunResult
}

func (s *memorySink) ReportRunResult(_ context.Context, r RunResult) error {
	s.results = append(s.results, r)
	return nil
}

func gridWave(n int, layout ...string) config.WaveDef {
	return config.WaveDef{
		Number:     n,
		Name:       "test",
		MarchSpeed: 30,
		Descent:    20,
		DropRates:  config.DropRates{TimedPowerup: 0.15, Mutation: 0.05},
		Layout:     layout,
	}
}

func bossWave(n, hp, weakPoints int, phases ...config.PhaseDef) config.WaveDef {
	return config.WaveDef{
		Number: n,
		Name:   "boss",
		Boss:   &config.BossDef{Name: "Test Rex", HP: hp, WeakPoints: weakPoints, Phases: phases},
	}
}

// newTestGame builds a normal-difficulty game on the default tuning.
func newTestGame(t *testing.T, waves []config.WaveDef, opts ...Option) (*Game, *recorder) {
	t.Helper()
	rec := &recorder{}
	base := []Option{
		WithConfig(config.DefaultDinoBlastConfig()),
		WithWaves(config.WaveSet{Waves: waves}),
		WithDifficulty(config.DifficultyNormal),
		WithRNG(&scriptedRNG{}),
		WithListener(rec),
	}
	g := New(append(base, opts...)...)
	g.Reset(core.DefaultConfig())
	return g, rec
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}
