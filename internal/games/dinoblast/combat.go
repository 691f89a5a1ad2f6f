package dinoblast

import (
	"math"
	"time"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
)

// killSource records what dealt the killing blow.
type killSource int

const (
	killByEgg killSource = iota
	killByChain
	killByLaser
	killByReflect
	killByBomb
)

// eggSpeed is the nominal egg speed for the current difficulty and buffs.
func (g *Game) eggSpeed() float64 {
	return g.profile.EggSpeed * g.buffs.BallSpeedMult()
}

// damageDino deals one point of damage. Returns true if the dino died.
func (g *Game) damageDino(d *Dino, src killSource) bool {
	if d == nil || !d.Alive {
		return false
	}
	d.HP--
	g.cue(CueDinoHit)
	if d.HP > 0 {
		return false
	}
	g.killDino(d, src)
	return true
}

// killDino removes a dino and applies score, drop roll and death trait.
// Blast victims never start a blast of their own.
func (g *Game) killDino(d *Dino, src killSource) {
	if d == nil || !d.Alive {
		return
	}
	spec := g.kinds.Spec(d.Kind)
	g.formation.Remove(d.ID)
	g.stats.DinosKilled++

	if src == killByChain {
		g.stats.ChainKills++
	}
	g.award(spec.Score)
	g.rollDrop(d.Pos, g.waveDef.DropRates.Mutation*g.profile.DropMult, g.waveDef.DropRates.TimedPowerup*g.profile.DropMult)

	switch spec.Trait {
	case TraitExplodes:
		g.cue(CueExplosion)
		if src != killByChain {
			g.explode(d.Pos, spec.ExplodeRadius)
		}
	case TraitSplits:
		g.split(d, spec)
	case TraitNone:
	}
}

// explode schedules a staggered chain hit on every live dino within radius.
func (g *Game) explode(center core.Vec, radius float64) {
	i := 0
	for _, other := range g.formation.Live() {
		if other.Pos.Dist(center) > radius {
			continue
		}
		g.sched.After(time.Duration(i)*g.cfg.Chain.Stagger, event{kind: eventChainHit, target: other.ID})
		i++
	}
	if i > 0 {
		g.log.Debug("chain reaction", "targets", i, "x", center.X, "y", center.Y)
	}
}

// split spawns exactly two offspring either side of the parent.
func (g *Game) split(parent *Dino, spec KindSpec) {
	for _, dx := range []float64{-spec.SplitOffset, spec.SplitOffset} {
		pos := core.V(parent.Pos.X+dx, parent.Pos.Y)
		child := g.spawnDino(spec.SplitInto, parent.Row, parent.Col, pos)
		child.hitReadyAt = g.clock + g.cfg.Egg.HitDebounce
	}
}

// rollDrop spawns a drop with the given mutation and timed-powerup chances.
func (g *Game) rollDrop(pos core.Vec, mutRate, timedRate float64) {
	r := g.rng.Float64()
	var p Pickup
	switch {
	case r < mutRate:
		p = Pickup{IsMutation: true, Mutation: MutationType(g.rng.Intn(int(mutationCount)))}
	case r < mutRate+timedRate:
		p = Pickup{Powerup: PowerupType(g.rng.Intn(int(powerupCount)))}
	default:
		return
	}
	g.drops = append(g.drops, &Drop{ID: g.ids.next(), Pickup: p, Pos: pos})
	g.listener.DropSpawned(pos, p)
}

// Collect applies a drop's pickup. Collecting the same drop twice is a no-op.
func (g *Game) Collect(d *Drop) bool {
	if d == nil || d.Collected {
		return false
	}
	d.Collected = true
	g.stats.DropsCollected++
	g.cue(CuePowerup)

	p := d.Pickup
	if p.IsMutation {
		if !g.buffs.AddMutation(p.Mutation) {
			return true
		}
		if p.Mutation == MutArmor {
			g.paddle.AddShield(1)
		}
		g.onMutationChanged(p.Mutation)
		g.log.Debug("mutation", "mutation", p.Mutation, "stacks", g.buffs.Stacks(p.Mutation))
		return true
	}

	switch p.Powerup {
	case PowerShield:
		g.paddle.AddShield(1)
	case PowerBomb:
		g.detonateBomb()
	case PowerMulti:
		if len(g.eggs) < g.cfg.Powerups.MaxEggs {
			g.spawnExtraEgg()
		}
		g.buffs.Activate(p.Powerup)
	case PowerFire:
		g.buffs.Activate(p.Powerup)
		for _, e := range g.eggs {
			e.PierceLeft = g.buffs.Remaining(PowerFire)
		}
	default:
		g.buffs.Activate(p.Powerup)
	}
	return true
}

func (g *Game) detonateBomb() {
	center := core.V(g.paddle.X, g.cfg.Powerups.BombY)
	g.cue(CueExplosion)
	for _, d := range g.formation.Live() {
		if d.Alive && d.Pos.Dist(center) < g.cfg.Powerups.BombRadius {
			g.damageDino(d, killByBomb)
		}
	}
}

// onMutationChanged refreshes state derived from a mutation stack count.
func (g *Game) onMutationChanged(m MutationType) {
	if m == MutBunker {
		g.rebuildBunker()
	}
}

// rebuildBunker lays out a fresh row of tiles centered above the paddle.
func (g *Game) rebuildBunker() {
	pc := g.cfg.Paddle
	n := g.buffs.Stacks(MutBunker) * g.cfg.Mutations.BunkerPerStack
	g.paddle.Bunker = g.paddle.Bunker[:0]
	if n <= 0 {
		return
	}
	total := float64(n)*pc.BunkerTileW + float64(n-1)*pc.BunkerGap
	x := g.paddle.X - total/2 + pc.BunkerTileW/2
	y := g.paddle.Y - pc.BunkerOffsetY
	for range n {
		g.paddle.Bunker = append(g.paddle.Bunker, BunkerTile{
			Box:   core.NewBox(x, y, pc.BunkerTileW, pc.BunkerTileH),
			Alive: true,
		})
		x += pc.BunkerTileW + pc.BunkerGap
	}
}

// stuckY is the height at which eggs ride the paddle.
func (g *Game) stuckY() float64 {
	return g.paddle.Y - g.paddle.Height/2 - g.cfg.Egg.Radius - 5
}

func (g *Game) newStuckEgg() *Egg {
	return &Egg{ID: g.ids.next(), Pos: core.V(g.paddle.X, g.stuckY()), Stuck: true}
}

func (g *Game) spawnExtraEgg() {
	angle := g.cfg.Egg.LaunchAngle + (g.rng.Float64()*2-1)*30
	e := &Egg{
		ID:       g.ids.next(),
		Pos:      core.V(g.paddle.X, g.stuckY()),
		Vel:      core.FromAngle(angle, g.eggSpeed()),
		Launched: true,
	}
	if g.buffs.IsActive(PowerFire) {
		e.PierceLeft = g.buffs.Remaining(PowerFire)
	}
	g.eggs = append(g.eggs, e)
}

func (g *Game) spawnBullet(pos, vel core.Vec) {
	g.bullets = append(g.bullets, &Bullet{ID: g.ids.next(), Pos: pos, Vel: vel})
}

// updatePaddle moves the paddle, handles dash and carries stuck eggs.
func (g *Game) updatePaddle(dt time.Duration, in core.InputFrame) {
	p := &g.paddle
	pc := g.cfg.Paddle
	dir := in.Direction()

	if p.DashCooldown > 0 {
		p.DashCooldown -= dt
	}
	if p.Dashing {
		p.DashLeft -= dt
		if p.DashLeft <= 0 {
			p.Dashing = false
			p.DashLeft = 0
		}
	}
	if in.Has(core.ActionDash) && dir != 0 && !p.Dashing && p.DashCooldown <= 0 {
		p.Dashing = true
		p.DashLeft = pc.DashDuration
		p.DashCooldown = pc.DashCooldown
		p.DashDir = dir
	}

	vx := dir * p.Speed(g.buffs)
	if p.Dashing {
		vx = p.DashDir * pc.DashSpeed
	}
	half := p.Width(g.buffs) / 2
	p.X = core.ClampF(p.X+vx*dt.Seconds(), half, g.cfg.Playfield.Width-half)

	launch := in.Has(core.ActionLaunch)
	for _, e := range g.eggs {
		if !e.Stuck {
			continue
		}
		e.Pos = core.V(p.X+e.StickX, g.stuckY())
		if launch {
			e.Stuck = false
			e.Launched = true
			e.StickX = 0
			e.Vel = core.FromAngle(g.cfg.Egg.LaunchAngle, g.eggSpeed())
			g.cue(CueLaunch)
		}
	}
}

// tickBuffs advances timed effects and egg pierce timers.
func (g *Game) tickBuffs(dt time.Duration) {
	for _, p := range g.buffs.Tick(dt) {
		g.log.Debug("powerup expired", "powerup", p)
		if p == PowerMulti && len(g.eggs) > 1 {
			g.eggs = g.eggs[:1]
		}
	}
	for _, e := range g.eggs {
		if e.PierceLeft > 0 {
			e.PierceLeft = max(e.PierceLeft-dt, 0)
		}
	}
}

// stepFormation marches the grid and rolls each dino's shot.
func (g *Game) stepFormation(dt time.Duration) {
	slow := g.buffs.IsActive(PowerSlow)
	g.formation.Step(dt, slow)

	speed := g.profile.BulletSpeed
	if slow {
		speed *= g.cfg.Powerups.SlowBullet
	}
	h := g.cfg.Dino.Height
	for _, d := range g.formation.Live() {
		chance := g.kinds.Spec(d.Kind).ShootChance * g.profile.ShootMult
		if chance <= 0 {
			continue
		}
		if g.rng.Float64() < chance {
			g.spawnBullet(core.V(d.Pos.X, d.Pos.Y+h/2), core.V(0, speed))
		}
	}
}

// integrate moves every free-flying entity by dt.
func (g *Game) integrate(dt time.Duration) {
	sec := dt.Seconds()
	maxAxis := g.cfg.Egg.MaxAxisSpeed
	for _, e := range g.eggs {
		if !e.Launched || e.Stuck {
			continue
		}
		for _, o := range g.obstacles {
			if o.Kind == ObstacleGravityWell {
				e.Vel = e.Vel.Add(gravityPull(o, e.Pos, dt, g.cfg.Obstacles.GravityMinDist))
			}
		}
		e.Vel.X = core.ClampF(e.Vel.X, -maxAxis, maxAxis)
		e.Vel.Y = core.ClampF(e.Vel.Y, -maxAxis, maxAxis)
		e.Pos = e.Pos.Add(e.Vel.Scale(sec))
	}
	for _, b := range g.bullets {
		b.Pos = b.Pos.Add(b.Vel.Scale(sec))
	}
	for _, l := range g.lasers {
		l.Pos.Y += l.VelY * sec
	}
	for _, d := range g.drops {
		d.Pos.Y += g.cfg.Drops.FallSpeed * sec
	}
}

// fireLasers emits a pair of lasers from the paddle edges on the LASER interval.
func (g *Game) fireLasers(dt time.Duration) {
	if !g.buffs.IsActive(PowerLaser) {
		g.laserTimer = 0
		return
	}
	g.laserTimer += dt
	if g.laserTimer < g.cfg.Laser.FireInterval {
		return
	}
	g.laserTimer = 0
	half := g.paddle.Width(g.buffs) / 2
	y := g.paddle.Y - g.paddle.Height/2
	for _, x := range []float64{g.paddle.X - half, g.paddle.X + half} {
		g.lasers = append(g.lasers, &Laser{ID: g.ids.next(), Pos: core.V(x, y), VelY: -g.cfg.Laser.Speed})
	}
	g.cue(CueLaser)
}

// resolveEggs runs every egg, in creation order, through obstacles,
// enemies, paddle and walls. Lost eggs are removed afterwards.
func (g *Game) resolveEggs() {
	lost := 0
	kept := g.eggs[:0]
	for _, e := range g.eggs {
		if g.resolveEgg(e) {
			lost++
			continue
		}
		kept = append(kept, e)
	}
	g.eggs = kept
	if lost == 0 {
		return
	}
	g.stats.EggsLost += lost
	if len(g.eggs) == 0 {
		g.loseHeart()
		if !g.phase.Terminal() {
			g.eggs = append(g.eggs, g.newStuckEgg())
		}
	}
}

// resolveEgg returns true when the egg fell out of the bottom.
func (g *Game) resolveEgg(e *Egg) bool {
	if !e.Launched || e.Stuck {
		return false
	}
	r := g.cfg.Egg.Radius
	g.eggVsObstacles(e)
	g.eggVsDinos(e)
	g.eggVsBoss(e)
	if g.phase.Terminal() {
		return false
	}
	g.eggVsPaddle(e)

	w := g.cfg.Playfield.Width
	switch {
	case e.Pos.X-r < 0:
		e.Pos.X = r
		e.Vel.X = math.Abs(e.Vel.X)
	case e.Pos.X+r > w:
		e.Pos.X = w - r
		e.Vel.X = -math.Abs(e.Vel.X)
	}
	if e.Pos.Y-r < 0 {
		e.Pos.Y = r
		e.Vel.Y = math.Abs(e.Vel.Y)
	}
	return e.Pos.Y-r > g.cfg.Playfield.Height
}

// eggVsObstacles applies the first obstacle the egg touches.
func (g *Game) eggVsObstacles(e *Egg) {
	r := g.cfg.Egg.Radius
	t := g.cfg.Obstacles
	c := core.Circle{C: e.Pos, R: r}
	for i := range g.obstacles {
		o := &g.obstacles[i]
		switch o.Kind {
		case ObstacleBumper:
			if !c.Overlaps(core.Circle{C: o.Pos, R: o.Radius}) {
				continue
			}
			bumperBounce(*o, e, r, t, g.cfg.Egg.MinBounceDist)
			g.stats.BumperHits++
			g.cue(CueBumper)
			g.award(g.cfg.Scoring.Bumper)
			return
		case ObstacleVortex:
			if !c.Overlaps(core.Circle{C: o.Pos, R: o.Radius}) {
				continue
			}
			vortexFling(*o, e, r, g.cfg.Playfield.Width, t, g.cfg.Egg.MinBounceDist)
			g.stats.VortexHits++
			g.cue(CueBumper)
			g.award(g.cfg.Scoring.Vortex)
			return
		case ObstacleWormhole:
			if g.clock < o.readyAt {
				continue
			}
			exit, ok := wormholeExit(*o, c)
			if !ok {
				continue
			}
			e.Pos = exit
			o.readyAt = g.clock + t.WormholeCooldown
			g.stats.WormholeTravels++
			g.cue(CueWormhole)
			g.award(g.cfg.Scoring.Wormhole)
			return
		case ObstacleGravityWell:
		}
	}
}

// eggVsDinos hits dinos in formation order. A non-piercing egg bounces off
// the first dino it hits; a piercing egg damages every dino it overlaps.
func (g *Game) eggVsDinos(e *Egg) {
	c := core.Circle{C: e.Pos, R: g.cfg.Egg.Radius}
	piercing := g.buffs.Piercing(e.PierceLeft)
	for _, d := range g.formation.Live() {
		if !d.Alive || !c.OverlapsBox(g.formation.Box(d)) {
			continue
		}
		if g.clock < d.hitReadyAt {
			continue
		}
		d.hitReadyAt = g.clock + g.cfg.Egg.HitDebounce
		if !piercing {
			e.Vel.Y = -e.Vel.Y
			e.Vel.X += core.Sign(e.Pos.X-d.Pos.X)*g.cfg.Dino.HitNudge + (g.rng.Float64()-0.5)*g.cfg.Dino.Jitter
		}
		g.damageDino(d, killByEgg)
		if !piercing {
			return
		}
	}
}

// eggVsBoss checks weak points first, then the solid body.
func (g *Game) eggVsBoss(e *Egg) {
	b := g.boss
	if b == nil || !b.Alive {
		return
	}
	c := core.Circle{C: e.Pos, R: g.cfg.Egg.Radius}
	piercing := g.buffs.Piercing(e.PierceLeft)
	for i := range b.WeakPoints {
		if !c.Overlaps(b.WeakPointCircle(i)) || !b.WeakPointReady(i, g.clock) {
			continue
		}
		g.hitBossWeakPoint(i)
		if !piercing {
			e.Vel.Y = math.Abs(e.Vel.Y)
		}
		return
	}
	if !b.Alive || !c.OverlapsBox(b.Box()) {
		return
	}
	if e.Pos.Y > b.Pos.Y {
		e.Vel.Y = math.Abs(e.Vel.Y)
		e.Pos.Y = max(e.Pos.Y, b.Box().Bottom()+c.R)
	} else {
		e.Vel.Y = -math.Abs(e.Vel.Y)
	}
}

// BounceAngle returns the launch angle in degrees for a paddle hit at x.
// The paddle center sends the egg straight up; the edges tilt it by spread.
func BounceAngle(eggX, paddleX, paddleWidth, spread float64) float64 {
	offset := core.ClampF((eggX-paddleX)/(paddleWidth/2), -1, 1)
	return -90 + offset*spread
}

// eggVsPaddle bounces or catches a descending egg.
func (g *Game) eggVsPaddle(e *Egg) {
	if e.Vel.Y <= 0 {
		return
	}
	c := core.Circle{C: e.Pos, R: g.cfg.Egg.Radius}
	box := g.paddle.Box(g.buffs)
	if !c.OverlapsBox(box) {
		return
	}
	g.cue(CuePaddleHit)
	if g.buffs.Stacks(MutMagnet) > 0 {
		e.Stuck = true
		e.Launched = false
		e.Vel = core.Vec{}
		e.StickX = core.ClampF(e.Pos.X-g.paddle.X, -box.W/2, box.W/2)
		e.Pos = core.V(g.paddle.X+e.StickX, g.stuckY())
		return
	}
	angle := BounceAngle(e.Pos.X, g.paddle.X, box.W, g.cfg.Egg.BounceSpread)
	e.Vel = core.FromAngle(angle, g.eggSpeed())
	e.Pos.Y = box.Top() - c.R
}

// resolveBullets handles enemy bullets against bunker and paddle, and
// reflected bullets against dinos and the boss.
func (g *Game) resolveBullets() {
	bw, bh := g.cfg.Bullet.Width, g.cfg.Bullet.Height
	for _, b := range g.bullets {
		if b.Dead {
			continue
		}
		box := core.NewBox(b.Pos.X, b.Pos.Y, bw, bh)
		if b.Reflected {
			g.reflectedBullet(b, box)
			continue
		}
		if g.bulletVsBunker(b, box) {
			continue
		}
		if box.Overlaps(g.paddle.Box(g.buffs)) {
			g.bulletHitsPaddle(b)
			if g.phase.Terminal() {
				return
			}
		}
	}

	h := g.cfg.Playfield.Height
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		if b.Dead || b.Pos.Y > h+20 || b.Pos.Y < -20 {
			continue
		}
		kept = append(kept, b)
	}
	g.bullets = kept
}

func (g *Game) reflectedBullet(b *Bullet, box core.Box) {
	for _, d := range g.formation.Live() {
		if d.Alive && box.Overlaps(g.formation.Box(d)) {
			b.Dead = true
			g.damageDino(d, killByReflect)
			return
		}
	}
	if g.boss != nil && g.boss.Alive && box.Overlaps(g.boss.Box()) {
		b.Dead = true
	}
}

func (g *Game) bulletVsBunker(b *Bullet, box core.Box) bool {
	for i := range g.paddle.Bunker {
		tile := &g.paddle.Bunker[i]
		if tile.Alive && box.Overlaps(tile.Box) {
			tile.Alive = false
			b.Dead = true
			g.stats.ShotsAbsorbed++
			g.cue(CueShieldHit)
			return true
		}
	}
	return false
}

// bulletHitsPaddle applies dash, reflect, shield and heart loss in that order.
func (g *Game) bulletHitsPaddle(b *Bullet) {
	p := &g.paddle
	switch {
	case p.Invincible():
		b.Dead = true
	case g.buffs.Stacks(MutReflect) > 0:
		b.Reflected = true
		b.Vel.Y = -math.Abs(b.Vel.Y)
		b.Pos.Y = p.Y - p.Height/2 - g.cfg.Bullet.Height/2
		g.stats.BulletsReflected++
		g.cue(CuePaddleHit)
	case p.Shield > 0:
		p.Shield--
		b.Dead = true
		g.stats.ShotsAbsorbed++
		g.cue(CueShieldHit)
	default:
		b.Dead = true
		g.loseHeart()
	}
}

// resolveLasers hits dinos, then boss weak points.
func (g *Game) resolveLasers() {
	lw, lh := g.cfg.Laser.Width, g.cfg.Laser.Height
	kept := g.lasers[:0]
	for i, l := range g.lasers {
		box := core.NewBox(l.Pos.X, l.Pos.Y, lw, lh)
		for _, d := range g.formation.Live() {
			if d.Alive && box.Overlaps(g.formation.Box(d)) {
				l.Dead = true
				g.damageDino(d, killByLaser)
				break
			}
		}
		if !l.Dead && g.boss != nil && g.boss.Alive {
			for i := range g.boss.WeakPoints {
				if g.boss.WeakPointCircle(i).OverlapsBox(box) {
					l.Dead = true
					g.hitBossWeakPoint(i)
					break
				}
			}
		}
		if !l.Dead && l.Pos.Y+lh/2 >= 0 {
			kept = append(kept, l)
		}
		if g.phase.Terminal() {
			kept = append(kept, g.lasers[i+1:]...)
			break
		}
	}
	g.lasers = kept
}

// resolveDrops collects drops touching the paddle and discards missed ones.
func (g *Game) resolveDrops() {
	box := g.paddle.Box(g.buffs)
	dw, dh := g.cfg.Drops.Width, g.cfg.Drops.Height
	limit := g.cfg.Playfield.Height + 20
	// Collecting a bomb can kill dinos, and their drops land in g.drops.
	pending := g.drops
	g.drops = nil
	kept := make([]*Drop, 0, len(pending))
	for _, d := range pending {
		if !d.Collected && core.NewBox(d.Pos.X, d.Pos.Y, dw, dh).Overlaps(box) {
			g.Collect(d)
		}
		if d.Collected || d.Pos.Y > limit {
			d.Gone = true
			continue
		}
		kept = append(kept, d)
	}
	g.drops = append(kept, g.drops...)
}

// checkEarthLine removes dinos that reached the earth line. Each still
// scores and rolls a drop, then costs a heart. Death traits do not fire.
func (g *Game) checkEarthLine() {
	limit := g.cfg.Playfield.EarthLineY
	h := g.cfg.Dino.Height
	for _, d := range g.formation.Live() {
		if d.Pos.Y+h/2 < limit {
			continue
		}
		g.formation.Remove(d.ID)
		g.award(g.kinds.Spec(d.Kind).Score)
		g.rollDrop(d.Pos, g.waveDef.DropRates.Mutation*g.profile.DropMult, g.waveDef.DropRates.TimedPowerup*g.profile.DropMult)
		g.loseHeart()
		if g.phase.Terminal() {
			return
		}
	}
}

// deathDropRates returns the boss death drop chances.
func (g *Game) deathDropRates() config.DropRates {
	return g.cfg.Boss.DeathDropRates
}
