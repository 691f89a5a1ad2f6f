// Package dinoblast implements the DinoBlast wave and combat simulation:
// a marching dinosaur formation, eggs bounced off a paddle and pinball
// obstacles, stacking powerups and mutations, and boss fights.
package dinoblast

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
	"github.com/vovakirdan/dinoblast/internal/registry"
)

// Mode selects how a run is seeded.
type Mode int

const (
	ModeCampaign Mode = iota // Seed from the runtime config
	ModeDaily                // Seed from today's date
)

// MaxStep bounds a single Update so a stalled frame cannot tunnel entities.
const MaxStep = 100 * time.Millisecond

// configPath stores the custom config path set via CLI
var configPath string

// wavesPath stores the custom wave file path set via CLI
var wavesPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyNormal

// SetConfigPath sets the custom tuning file for new games.
func SetConfigPath(path string) {
	configPath = path
}

// SetWavesPath sets the custom wave file for new games.
func SetWavesPath(path string) {
	wavesPath = path
}

// SetDifficultyPreset sets the difficulty for new games. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithListener sets the outward event listener.
func WithListener(l Listener) Option {
	return func(g *Game) { g.listener = l }
}

// WithSink sets where finished runs are reported.
func WithSink(s ResultSink) Option {
	return func(g *Game) { g.sink = s }
}

// WithRNG replaces the seeded generator. Reset keeps using it.
func WithRNG(r RNG) Option {
	return func(g *Game) { g.fixedRNG = r }
}

// WithConfig sets the tuning.
func WithConfig(cfg config.DinoBlastConfig) Option {
	return func(g *Game) { g.cfg = cfg; g.cfgSet = true }
}

// WithWaves sets the wave definitions.
func WithWaves(w config.WaveSet) Option {
	return func(g *Game) { g.waves = w; g.wavesSet = true }
}

// WithDifficulty sets the difficulty preset.
func WithDifficulty(p config.DifficultyPreset) Option {
	return func(g *Game) { g.preset = p }
}

// WithMode selects campaign or daily seeding.
func WithMode(m Mode) Option {
	return func(g *Game) { g.mode = m }
}

// WithDate fixes the daily challenge date (YYYY-MM-DD).
func WithDate(date string) Option {
	return func(g *Game) { g.date = date }
}

// Game is one DinoBlast run. It is not safe for concurrent use.
type Game struct {
	mode     Mode
	cfg      config.DinoBlastConfig
	waves    config.WaveSet
	preset   config.DifficultyPreset
	profile  config.DifficultyProfile
	kinds    kindTable
	cfgSet   bool
	wavesSet bool

	log      *log.Logger
	listener Listener
	sink     ResultSink
	rng      RNG
	fixedRNG RNG
	seed     int64
	date     string
	runtime  core.RuntimeConfig

	ids        idAlloc
	clock      time.Duration
	tick       uint64
	sched      Scheduler
	buffs      *Buffs
	paddle     Paddle
	eggs       []*Egg
	formation  *Formation
	boss       *Boss
	bullets    []*Bullet
	lasers     []*Laser
	drops      []*Drop
	obstacles  []Obstacle
	laserTimer time.Duration
	waveDef    config.WaveDef

	phase      RunPhase
	phaseTimer time.Duration
	clearFired bool
	score      int
	hearts     int
	wave       int
	combo      int
	comboTimer time.Duration
	stats      Stats
	paused     bool
}

// New creates a campaign game. Options override the package-level settings.
func New(opts ...Option) *Game {
	g := &Game{
		mode:     ModeCampaign,
		preset:   difficultyPreset,
		log:      log.New(io.Discard),
		listener: NopListener{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewDaily creates a daily challenge game.
func NewDaily(opts ...Option) *Game {
	return New(append([]Option{WithMode(ModeDaily)}, opts...)...)
}

func init() {
	registry.Register("dinoblast", func() registry.Game { return New() })
	registry.Register("dinoblast_daily", func() registry.Game { return NewDaily() })
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeDaily {
		return "dinoblast_daily"
	}
	return "dinoblast"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeDaily {
		return "DinoBlast (Daily)"
	}
	return "DinoBlast"
}

// Reset starts a fresh run at wave 1.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.loadConfig()

	g.seed = rc.Seed
	if g.mode == ModeDaily {
		if g.date == "" {
			g.date = Today(time.Now())
		}
		g.seed = DailySeed(g.date)
	}
	if g.fixedRNG != nil {
		g.rng = g.fixedRNG
	} else {
		g.rng = NewSimpleRNG(g.seed)
	}

	g.kinds = buildKinds(g.cfg.DinoTypes)
	g.profile = g.cfg.Profile(g.preset)
	g.buffs = NewBuffs(g.cfg)
	pf := g.cfg.Playfield
	g.formation = NewFormation(g.cfg.Dino.Width, g.cfg.Dino.Height, pf.Width, pf.MarchMargin, g.cfg.Powerups.SlowMarch)

	g.ids = idAlloc{}
	g.clock = 0
	g.tick = 0
	g.sched = Scheduler{}
	pc := g.cfg.Paddle
	g.paddle = Paddle{
		X:         pf.Width / 2,
		Y:         pc.Y,
		BaseWidth: pc.Width,
		BaseSpeed: pc.Speed,
		Height:    pc.Height,
		MaxShield: pc.MaxShield,
	}
	g.eggs = []*Egg{g.newStuckEgg()}
	g.boss = nil
	g.bullets = nil
	g.lasers = nil
	g.drops = nil
	g.obstacles = nil
	g.laserTimer = 0

	g.phase = PhasePlaying
	g.phaseTimer = 0
	g.score = 0
	g.hearts = g.profile.Hearts
	g.wave = 0
	g.combo = 0
	g.comboTimer = 0
	g.stats = Stats{}
	g.paused = false

	g.log.Debug("run start", "mode", g.ID(), "difficulty", g.preset, "seed", g.seed, "waves", len(g.waves.Waves))
	g.listener.ScoreChanged(0)
	g.listener.HeartsChanged(g.hearts)
	g.LoadWave(1)
}

// loadConfig fills tuning and waves from files unless options supplied them.
func (g *Game) loadConfig() {
	if !g.cfgSet {
		cfg, err := config.Load(configPath)
		if err != nil {
			g.log.Warn("config load failed, using defaults", "err", err)
			cfg = config.DefaultDinoBlastConfig()
		}
		g.cfg = cfg
	}
	if !g.wavesSet {
		waves, err := config.LoadWaves(wavesPath)
		if err != nil {
			g.log.Warn("wave load failed, using defaults", "err", err)
			waves = config.DefaultWaves()
		}
		g.waves = waves
	}
}

// Step advances one fixed tick. Restart only acts once the run is won or
// lost; pause toggles and freezes the simulation.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.phase.Terminal() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !g.phase.Terminal() {
		g.paused = !g.paused
	}
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.Update(time.Second/time.Duration(rate), in)
	return core.StepResult{State: g.State()}
}

// Update advances the simulation by dt. Nothing happens while paused or
// after the run ended.
func (g *Game) Update(dt time.Duration, in core.InputFrame) {
	if g.paused || g.phase.Terminal() || g.formation == nil {
		return
	}
	dt = min(max(dt, 0), MaxStep)
	if dt == 0 {
		return
	}
	g.clock += dt
	g.tick++

	g.tickBuffs(dt)
	for _, ev := range g.sched.Advance(dt) {
		g.handleEvent(ev)
		if g.phase.Terminal() {
			return
		}
	}
	g.updatePaddle(dt, in)

	if g.boss != nil {
		g.stepBoss(dt)
	} else {
		g.stepFormation(dt)
	}

	g.fireLasers(dt)
	g.integrate(dt)

	g.resolveEggs()
	if g.phase.Terminal() {
		return
	}
	g.resolveBullets()
	if g.phase.Terminal() {
		return
	}
	g.resolveLasers()
	if g.phase.Terminal() {
		return
	}
	g.resolveDrops()
	g.checkEarthLine()
	if g.phase.Terminal() {
		return
	}
	g.decayCombo(dt)

	if g.phase == PhasePlaying && g.formation.IsCleared() && (g.boss == nil || !g.boss.Alive) {
		g.waveCleared()
	}
	g.advancePhase(dt)
}

func (g *Game) handleEvent(ev event) {
	switch ev.kind {
	case eventChainHit:
		if d, ok := g.formation.Get(ev.target); ok && d.Alive {
			g.award(g.cfg.Scoring.ChainBonus)
			g.damageDino(d, killByChain)
		}
	case eventBurstShot:
		g.fireBurstShot(ev.target)
	case eventDeathDrop:
		rates := g.deathDropRates()
		g.rollDrop(ev.pos, rates.Mutation, rates.TimedPowerup)
	}
}

func (g *Game) cue(name string) {
	g.listener.SoundCue(name)
}

// State returns the current game state for the platform layer.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Wave:     g.wave,
		Hearts:   g.hearts,
		GameOver: g.phase.Terminal(),
		Won:      g.phase == PhaseWon,
		Paused:   g.paused,
	}
}

// Phase returns the run phase.
func (g *Game) Phase() RunPhase { return g.phase }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Hearts returns the remaining hearts.
func (g *Game) Hearts() int { return g.hearts }

// Wave returns the current wave number.
func (g *Game) Wave() int { return g.wave }

// Combo returns the live combo count.
func (g *Game) Combo() int { return g.combo }

// Stats returns the run counters.
func (g *Game) Stats() Stats { return g.stats }

// Buffs exposes the buff registries for read-only queries.
func (g *Game) Buffs() *Buffs { return g.buffs }

// Formation exposes the live formation.
func (g *Game) Formation() *Formation { return g.formation }

// Boss returns the active boss, or nil outside boss waves.
func (g *Game) Boss() *Boss { return g.boss }

// Paddle returns a copy of the paddle.
func (g *Game) Paddle() Paddle { return g.paddle }

// Eggs returns the live eggs in creation order.
func (g *Game) Eggs() []*Egg { return g.eggs }

// Bullets returns the live enemy bullets.
func (g *Game) Bullets() []*Bullet { return g.bullets }

// Drops returns the falling drops.
func (g *Game) Drops() []*Drop { return g.drops }

// Obstacles returns the current wave's obstacles.
func (g *Game) Obstacles() []Obstacle { return g.obstacles }

// Config returns the tuning in use.
func (g *Game) Config() config.DinoBlastConfig { return g.cfg }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) { g.paused = p }
