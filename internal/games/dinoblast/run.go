package dinoblast

import (
	"context"
	"time"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
)

// RunPhase is the run state machine.
type RunPhase int

const (
	PhasePlaying     RunPhase = iota
	PhaseWaveCleared          // Waiting before the next grid wave
	PhaseBossPending          // Waiting before a boss wave
	PhaseWon
	PhaseLost
)

// String returns a short phase name.
func (p RunPhase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseWaveCleared:
		return "wave_cleared"
	case PhaseBossPending:
		return "boss_pending"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the run.
func (p RunPhase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// comboMult returns the multiplier for the combo count before the kill.
func (g *Game) comboMult() int {
	switch {
	case g.combo >= g.cfg.Combo.Triple:
		return 3
	case g.combo >= g.cfg.Combo.Double:
		return 2
	default:
		return 1
	}
}

// award adds a combo-multiplied score and extends the combo.
func (g *Game) award(base int) {
	if base <= 0 {
		return
	}
	g.score += base * g.comboMult()
	g.combo++
	g.comboTimer = g.cfg.Combo.Window
	g.stats.MaxCombo = max(g.stats.MaxCombo, g.combo)
	g.listener.ScoreChanged(g.score)
}

func (g *Game) decayCombo(dt time.Duration) {
	if g.combo == 0 {
		return
	}
	g.comboTimer -= dt
	if g.comboTimer <= 0 {
		g.combo = 0
		g.comboTimer = 0
	}
}

// loseHeart removes one heart and one random mutation stack.
// Reaching zero hearts ends the run immediately.
func (g *Game) loseHeart() {
	if g.phase.Terminal() || g.hearts <= 0 {
		return
	}
	g.hearts--
	g.cue(CueLoseHeart)
	if m, ok := g.buffs.LoseRandomMutation(g.rng); ok {
		g.log.Debug("mutation lost", "mutation", m, "stacks", g.buffs.Stacks(m))
		g.onMutationChanged(m)
	}
	g.listener.HeartsChanged(g.hearts)
	if g.hearts <= 0 {
		g.endRun(false)
	}
}

// waveCleared fires once per wave and schedules the next one.
func (g *Game) waveCleared() {
	if g.clearFired || g.phase != PhasePlaying {
		return
	}
	g.clearFired = true
	g.stats.WavesCleared++
	g.bullets = g.bullets[:0]
	g.cue(CueWaveClear)
	g.log.Debug("wave cleared", "wave", g.wave, "score", g.score)

	if g.wave >= g.waves.FinalWave() {
		g.endRun(true)
		return
	}
	g.phase = PhaseWaveCleared
	if next, ok := g.waves.Wave(g.wave + 1); ok && next.IsBoss() {
		g.phase = PhaseBossPending
	}
	g.phaseTimer = g.cfg.Run.InterWaveDelay
}

// advancePhase counts down the inter-wave delay and loads the next wave.
func (g *Game) advancePhase(dt time.Duration) {
	if g.phase != PhaseWaveCleared && g.phase != PhaseBossPending {
		return
	}
	g.phaseTimer -= dt
	if g.phaseTimer > 0 {
		return
	}
	g.LoadWave(g.wave + 1)
}

// endRun enters a terminal phase and reports the result exactly once.
func (g *Game) endRun(won bool) {
	if g.phase.Terminal() {
		return
	}
	if won {
		g.phase = PhaseWon
		g.cue(CueVictory)
	} else {
		g.phase = PhaseLost
		g.cue(CueGameOver)
	}
	res := g.Result()
	g.log.Debug("run ended", "won", won, "score", g.score, "wave", g.wave)
	g.listener.RunEnded(res)
	if g.sink != nil {
		if err := g.sink.ReportRunResult(context.Background(), res); err != nil {
			g.log.Error("report run result", "err", err)
		}
	}
}

// Result returns the run summary so far.
func (g *Game) Result() RunResult {
	return RunResult{
		Mode:       g.ID(),
		Difficulty: string(g.preset),
		Date:       g.date,
		Seed:       g.seed,
		Won:        g.phase == PhaseWon,
		Score:      g.score,
		Wave:       g.wave,
		Stats:      g.stats,
	}
}

// LoadWave replaces the playfield contents with wave n. A missing definition
// is logged and leaves an empty wave, which clears on the next tick.
func (g *Game) LoadWave(n int) {
	if g.phase.Terminal() {
		return
	}
	g.wave = n
	g.phase = PhasePlaying
	g.phaseTimer = 0
	g.clearFired = false
	g.formation.Clear()
	g.boss = nil
	g.obstacles = g.obstacles[:0]
	g.bullets = g.bullets[:0]

	if armor := g.buffs.Stacks(MutArmor); g.paddle.Shield < armor {
		g.paddle.Shield = armor
	}

	g.waveDef = config.WaveDef{Number: n}
	def, ok := g.waves.Wave(n)
	if !ok {
		g.log.Warn("wave definition missing", "wave", n)
		g.listener.WaveChanged(n)
		return
	}
	g.waveDef = def

	for _, od := range def.Obstacles {
		o, ok := newObstacle(od, g.cfg.Obstacles)
		if !ok {
			g.log.Warn("unknown obstacle", "wave", n, "kind", od.Kind)
			continue
		}
		o.ID = g.ids.next()
		g.obstacles = append(g.obstacles, o)
	}

	if def.IsBoss() {
		g.boss = newBoss(g.ids.next(), *def.Boss, g.cfg.Boss, g.cfg.Playfield.Width)
		g.log.Debug("boss wave", "wave", n, "boss", def.Boss.Name, "hp", def.Boss.HP)
	} else {
		g.spawnGrid(def)
	}
	g.log.Debug("wave loaded", "wave", n, "name", def.Name, "dinos", g.formation.Len(), "obstacles", len(g.obstacles))
	g.listener.WaveChanged(n)
}

func (g *Game) spawnGrid(def config.WaveDef) {
	cells, cols, err := config.ParseLayout(def.Layout)
	if err != nil {
		g.log.Warn("bad wave layout", "wave", def.Number, "err", err)
		return
	}
	g.formation.Configure(def.MarchSpeed, g.profile.MarchMult, def.Descent)

	d := g.cfg.Dino
	pitchX := d.Width + d.Spacing
	pitchY := d.Height + d.Spacing
	startX := (g.cfg.Playfield.Width-float64(cols)*pitchX)/2 + d.Width/2
	for _, c := range cells {
		kind, ok := kindForToken(c.Token)
		if !ok {
			continue
		}
		pos := core.V(startX+float64(c.Col)*pitchX, d.StartY+float64(c.Row)*pitchY)
		g.spawnDino(kind, c.Row, c.Col, pos)
	}
}

func (g *Game) spawnDino(kind DinoKind, row, col int, pos core.Vec) *Dino {
	spec := g.kinds.Spec(kind)
	dino := &Dino{
		ID:   g.ids.next(),
		Kind: kind,
		HP:   spec.HP,
		Row:  row,
		Col:  col,
		Pos:  pos,
	}
	g.formation.Add(dino)
	return dino
}
