package dinoblast

import (
	"context"

	"github.com/vovakirdan/dinoblast/internal/core"
)

// Sound cue names passed to Listener.SoundCue.
const (
	CueLaunch    = "launch"
	CuePaddleHit = "paddleHit"
	CueDinoHit   = "dinoHit"
	CueLaser     = "laser"
	CueExplosion = "explosion"
	CuePowerup   = "powerup"
	CueBumper    = "bumper"
	CueWormhole  = "wormhole"
	CueShieldHit = "shieldHit"
	CueLoseHeart = "loseHeart"
	CueWaveClear = "waveClear"
	CueBossPhase = "bossPhase"
	CueGameOver  = "gameOver"
	CueVictory   = "victory"
)

// Listener receives outward notifications from the simulation.
// Calls happen synchronously inside Update.
type Listener interface {
	ScoreChanged(total int)
	HeartsChanged(remaining int)
	WaveChanged(n int)
	BossPhaseChanged(phase int)
	RunEnded(result RunResult)
	DropSpawned(pos core.Vec, p Pickup)
	SoundCue(name string)
}

// NopListener ignores every notification. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) ScoreChanged(int)             {}
func (NopListener) HeartsChanged(int)            {}
func (NopListener) WaveChanged(int)              {}
func (NopListener) BossPhaseChanged(int)         {}
func (NopListener) RunEnded(RunResult)           {}
func (NopListener) DropSpawned(core.Vec, Pickup) {}
func (NopListener) SoundCue(string)              {}

// ResultSink persists finished runs.
type ResultSink interface {
	ReportRunResult(ctx context.Context, r RunResult) error
}

// Stats are the per-run counters reported at run end.
type Stats struct {
	DinosKilled      int `json:"dinos_killed" msgpack:"dinos_killed"`
	ChainKills       int `json:"chain_kills" msgpack:"chain_kills"`
	BumperHits       int `json:"bumper_hits" msgpack:"bumper_hits"`
	WormholeTravels  int `json:"wormhole_travels" msgpack:"wormhole_travels"`
	VortexHits       int `json:"vortex_hits" msgpack:"vortex_hits"`
	BulletsReflected int `json:"bullets_reflected" msgpack:"bullets_reflected"`
	ShotsAbsorbed    int `json:"shots_absorbed" msgpack:"shots_absorbed"`
	DropsCollected   int `json:"drops_collected" msgpack:"drops_collected"`
	MaxCombo         int `json:"max_combo" msgpack:"max_combo"`
	BossesDefeated   int `json:"bosses_defeated" msgpack:"bosses_defeated"`
	EggsLost         int `json:"eggs_lost" msgpack:"eggs_lost"`
	WavesCleared     int `json:"waves_cleared" msgpack:"waves_cleared"`
}

// RunResult describes a finished run.
type RunResult struct {
	Mode       string
	Difficulty string
	Date       string // Daily challenge date, empty for campaign runs
	Seed       int64
	Won        bool
	Score      int
	Wave       int
	Stats      Stats
}
