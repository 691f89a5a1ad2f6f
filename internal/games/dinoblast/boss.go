package dinoblast

import (
	"math"
	"time"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
)

// AttackPattern is a boss attack.
type AttackPattern int

const (
	PatternSpray AttackPattern = iota // Fan of five bullets
	PatternBurst                      // Three fast bullets, staggered
	PatternAimed                      // One bullet at the paddle
)

func parsePattern(s string) AttackPattern {
	switch s {
	case config.PatternBurst:
		return PatternBurst
	case config.PatternAimed:
		return PatternAimed
	default:
		return PatternSpray
	}
}

// String returns the wave file name of the pattern.
func (p AttackPattern) String() string {
	switch p {
	case PatternBurst:
		return config.PatternBurst
	case PatternAimed:
		return config.PatternAimed
	default:
		return config.PatternSpray
	}
}

// Phase binds a pattern to the hp at or below which it becomes active.
type Phase struct {
	HPThreshold int
	Pattern     AttackPattern
}

// WeakPoint is one hittable spot on the boss.
type WeakPoint struct {
	Offset  float64       // Horizontal offset from the boss center
	readyAt time.Duration // Cooldown end on the sim clock
}

// Boss is the boss-wave enemy.
type Boss struct {
	ID         EntityID
	Name       string
	HP, MaxHP  int
	Phase      int
	Phases     []Phase
	Pos        core.Vec
	Dir        float64
	WeakPoints []WeakPoint
	Alive      bool

	attackTimer time.Duration
	tuning      config.BossTuning
}

func newBoss(id EntityID, def config.BossDef, t config.BossTuning, fieldW float64) *Boss {
	b := &Boss{
		ID:     id,
		Name:   def.Name,
		HP:     def.HP,
		MaxHP:  def.HP,
		Pos:    core.V(fieldW/2, t.Y),
		Dir:    1,
		Alive:  true,
		tuning: t,
	}
	for _, p := range def.Phases {
		b.Phases = append(b.Phases, Phase{HPThreshold: p.HPThreshold, Pattern: parsePattern(p.Pattern)})
	}
	n := def.WeakPoints
	for i := range n {
		off := (float64(i) - float64(n-1)/2) * t.WeakPointSpacing
		b.WeakPoints = append(b.WeakPoints, WeakPoint{Offset: off})
	}
	return b
}

// Box returns the body's collision box.
func (b *Boss) Box() core.Box {
	return core.NewBox(b.Pos.X, b.Pos.Y, b.tuning.Width, b.tuning.Height)
}

// WeakPointCircle returns the hit circle of weak point i. Weak points sit on
// the body's lower edge where an egg rising from below reaches them first.
func (b *Boss) WeakPointCircle(i int) core.Circle {
	c := core.V(b.Pos.X+b.WeakPoints[i].Offset, b.Pos.Y+b.tuning.Height/2)
	return core.Circle{C: c, R: b.tuning.WeakPointRadius}
}

// MoveSpeed is the horizontal speed for the current phase.
func (b *Boss) MoveSpeed() float64 {
	return b.tuning.BaseMoveSpeed + float64(b.Phase)*b.tuning.MoveSpeedPerPhase
}

// AttackInterval is the time between attacks for the current phase.
func (b *Boss) AttackInterval() time.Duration {
	iv := b.tuning.AttackInterval - time.Duration(b.Phase)*b.tuning.IntervalPerPhase
	return max(iv, b.tuning.MinAttackInterval)
}

// Pattern returns the attack of the current phase.
func (b *Boss) Pattern() AttackPattern {
	if b.Phase < 0 || b.Phase >= len(b.Phases) {
		return PatternSpray
	}
	return b.Phases[b.Phase].Pattern
}

// Move slides the boss and bounces it inside the playfield.
func (b *Boss) Move(dt time.Duration, fieldW float64) {
	b.Pos.X += b.Dir * b.MoveSpeed() * dt.Seconds()
	edge := b.tuning.Width/2 + 20
	if b.Pos.X > fieldW-edge {
		b.Dir = -1
	} else if b.Pos.X < edge {
		b.Dir = 1
	}
}

// updatePhase selects the highest phase whose threshold the hp has reached.
// Phases only advance. Returns true when the phase changed.
func (b *Boss) updatePhase() bool {
	for i := len(b.Phases) - 1; i >= 0; i-- {
		if b.HP <= b.Phases[i].HPThreshold {
			if i > b.Phase {
				b.Phase = i
				return true
			}
			return false
		}
	}
	return false
}

// HitWeakPoint applies one hit to weak point i at clock now.
// Returns false while the weak point is cooling down.
func (b *Boss) HitWeakPoint(i int, now time.Duration) bool {
	if !b.Alive || i < 0 || i >= len(b.WeakPoints) {
		return false
	}
	wp := &b.WeakPoints[i]
	if now < wp.readyAt {
		return false
	}
	b.HP--
	wp.readyAt = now + b.tuning.WeakPointCooldown
	return true
}

// WeakPointReady reports whether weak point i accepts hits at clock now.
func (b *Boss) WeakPointReady(i int, now time.Duration) bool {
	return i >= 0 && i < len(b.WeakPoints) && now >= b.WeakPoints[i].readyAt
}

// stepBoss moves the boss and fires its pattern when the attack timer elapses.
func (g *Game) stepBoss(dt time.Duration) {
	b := g.boss
	if b == nil || !b.Alive {
		return
	}
	b.Move(dt, g.cfg.Playfield.Width)
	b.attackTimer += dt
	if b.attackTimer < b.AttackInterval() {
		return
	}
	b.attackTimer = 0
	g.bossAttack(b)
}

func (g *Game) bossAttack(b *Boss) {
	base := g.cfg.Bullet.Speed
	muzzle := core.V(b.Pos.X, b.Pos.Y+g.cfg.Boss.Height/2)

	switch b.Pattern() {
	case PatternSpray:
		for i := -2; i <= 2; i++ {
			fi := float64(i)
			pos := core.V(muzzle.X+fi*g.cfg.Boss.SpraySpread, muzzle.Y)
			g.spawnBullet(pos, core.V(fi*g.cfg.Boss.SpraySpread, base))
		}
	case PatternBurst:
		g.spawnBullet(muzzle, core.V(0, base*g.cfg.Boss.BurstFactor))
		for i := 1; i < 3; i++ {
			g.sched.After(time.Duration(i)*g.cfg.Boss.BurstStagger, event{kind: eventBurstShot, target: b.ID})
		}
	case PatternAimed:
		angle := math.Atan2(g.paddle.Y-b.Pos.Y, g.paddle.X-b.Pos.X)
		speed := base * g.cfg.Boss.AimedFactor
		g.spawnBullet(muzzle, core.V(math.Cos(angle)*speed, math.Sin(angle)*speed))
	}
}

// fireBurstShot fires one delayed burst bullet from wherever the boss is now.
func (g *Game) fireBurstShot(id EntityID) {
	b := g.boss
	if b == nil || !b.Alive || b.ID != id {
		return
	}
	muzzle := core.V(b.Pos.X, b.Pos.Y+g.cfg.Boss.Height/2)
	g.spawnBullet(muzzle, core.V(0, g.cfg.Bullet.Speed*g.cfg.Boss.BurstFactor))
}

// hitBossWeakPoint resolves one hit on a weak point, including phase change and death.
func (g *Game) hitBossWeakPoint(i int) bool {
	b := g.boss
	if !b.HitWeakPoint(i, g.clock) {
		return false
	}
	g.cue(CueDinoHit)
	g.award(g.cfg.Scoring.WeakPoint)
	if b.HP <= 0 {
		g.killBoss()
		return true
	}
	if b.updatePhase() {
		g.cue(CueBossPhase)
		g.log.Debug("boss phase", "boss", b.Name, "phase", b.Phase, "hp", b.HP, "pattern", b.Pattern())
		g.listener.BossPhaseChanged(b.Phase)
	}
	return true
}

func (g *Game) killBoss() {
	b := g.boss
	b.Alive = false
	g.award(g.cfg.Scoring.BossKill)
	g.stats.BossesDefeated++
	g.cue(CueExplosion)
	g.log.Debug("boss defeated", "boss", b.Name, "wave", g.wave)

	for i := range g.cfg.Boss.DeathDrops {
		pos := core.V(b.Pos.X+(g.rng.Float64()-0.5)*100, b.Pos.Y)
		g.sched.After(time.Duration(i)*g.cfg.Boss.DeathDropStagger, event{kind: eventDeathDrop, target: b.ID, pos: pos})
	}
	g.waveCleared()
}
