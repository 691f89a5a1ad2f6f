package dinoblast

import (
	"math"
	"time"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
)

// ObstacleKind identifies a pinball obstacle.
type ObstacleKind int

const (
	ObstacleBumper ObstacleKind = iota
	ObstacleVortex
	ObstacleWormhole
	ObstacleGravityWell
)

// String returns the wave file name of the kind.
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleBumper:
		return config.ObstacleBumper
	case ObstacleVortex:
		return config.ObstacleVortex
	case ObstacleWormhole:
		return config.ObstacleWormhole
	case ObstacleGravityWell:
		return config.ObstacleGravityWell
	default:
		return "unknown"
	}
}

// Obstacle is a static pinball element. Wormholes use Exit as their second portal.
type Obstacle struct {
	ID       EntityID
	Kind     ObstacleKind
	Pos      core.Vec
	Exit     core.Vec
	Radius   float64
	Strength float64
	readyAt  time.Duration // Wormhole cooldown end on the sim clock
}

// newObstacle resolves a wave placement against tuning defaults.
// The second return is false for unknown kinds.
func newObstacle(def config.ObstacleDef, t config.ObstacleTuning) (Obstacle, bool) {
	o := Obstacle{Pos: core.V(def.X, def.Y), Radius: def.Radius, Strength: def.Strength}
	switch def.Kind {
	case config.ObstacleBumper:
		o.Kind = ObstacleBumper
		if o.Radius <= 0 {
			o.Radius = t.BumperRadius
		}
	case config.ObstacleVortex:
		o.Kind = ObstacleVortex
		if o.Radius <= 0 {
			o.Radius = t.VortexRadius
		}
	case config.ObstacleWormhole:
		o.Kind = ObstacleWormhole
		o.Exit = core.V(def.ExitX, def.ExitY)
		if o.Radius <= 0 {
			o.Radius = t.WormholeRadius
		}
	case config.ObstacleGravityWell:
		o.Kind = ObstacleGravityWell
		if o.Radius <= 0 {
			o.Radius = t.GravityRadius
		}
		if o.Strength <= 0 {
			o.Strength = t.GravityStrength
		}
	default:
		return Obstacle{}, false
	}
	return o, true
}

// reference frame for the gravity pull, one 60 Hz frame
const gravityFrame = time.Second * 1667 / 100000

// gravityPull returns the velocity change a well applies to an egg this tick.
func gravityPull(well Obstacle, pos core.Vec, dt time.Duration, minDist float64) core.Vec {
	d := well.Pos.Dist(pos)
	if d < minDist || d > well.Radius {
		return core.Vec{}
	}
	force := well.Strength / (d * 0.5)
	scale := float64(dt) / float64(gravityFrame)
	return well.Pos.Sub(pos).WithLen(force * scale)
}

// bumperBounce reflects an egg off a bumper, pushes it to the bumper surface
// and scales its speed into the configured band.
func bumperBounce(b Obstacle, egg *Egg, eggRadius float64, t config.ObstacleTuning, minDist float64) {
	n := egg.Pos.Sub(b.Pos)
	if n.Len() < minDist {
		n = core.V(0, -1)
	}
	n = n.WithLen(1)

	dot := egg.Vel.X*n.X + egg.Vel.Y*n.Y
	if dot < 0 {
		egg.Vel = egg.Vel.Sub(n.Scale(2 * dot))
	}
	egg.Pos = b.Pos.Add(n.Scale(b.Radius + eggRadius + 1))
	egg.Vel = egg.Vel.Scale(t.BumperFactor).ClampLen(t.BumperMinSpeed, t.BumperMaxSpeed)
}

// vortexFling throws an egg toward the playfield center and upward.
func vortexFling(v Obstacle, egg *Egg, eggRadius, fieldWidth float64, t config.ObstacleTuning, minDist float64) {
	toCenter := 1.0
	if v.Pos.X > fieldWidth/2 {
		toCenter = -1
	}
	egg.Vel.X = toCenter * (t.VortexBase + math.Abs(egg.Vel.X)*t.VortexKeep)
	egg.Vel.Y = -math.Abs(egg.Vel.Y)*t.VortexVertKeep - t.VortexLift
	egg.Vel = egg.Vel.ClampLen(0, t.VortexMaxSpeed)

	n := egg.Pos.Sub(v.Pos)
	if n.Len() < minDist {
		n = core.V(toCenter, 0)
	}
	egg.Pos = v.Pos.Add(n.WithLen(v.Radius + eggRadius + 1))
}

// wormholeExit returns the portal opposite the one the egg touches.
func wormholeExit(w Obstacle, egg core.Circle) (core.Vec, bool) {
	if egg.Overlaps(core.Circle{C: w.Pos, R: w.Radius}) {
		return w.Exit, true
	}
	if egg.Overlaps(core.Circle{C: w.Exit, R: w.Radius}) {
		return w.Pos, true
	}
	return core.Vec{}, false
}
