package dinoblast

import (
	"math"

	"github.com/vovakirdan/dinoblast/internal/core"
)

// Autopilot drives the paddle for headless runs. It tracks the lowest
// descending egg and falls back to the nearest drop.
type Autopilot struct {
	// Deadzone is how close to the target the paddle center must be, in pixels.
	Deadzone float64
}

// NewAutopilot returns an autopilot with a small deadzone.
func NewAutopilot() *Autopilot {
	return &Autopilot{Deadzone: 8}
}

// Input computes the next input frame for g.
func (a *Autopilot) Input(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	if g.Phase().Terminal() {
		return in
	}

	target, ok := a.target(g)
	for _, e := range g.Eggs() {
		if e.Stuck {
			in.Set(core.ActionLaunch)
			break
		}
	}
	if !ok {
		return in
	}

	p := g.Paddle()
	dx := target - p.X
	switch {
	case dx > a.Deadzone:
		in.Set(core.ActionRight)
	case dx < -a.Deadzone:
		in.Set(core.ActionLeft)
	}
	if math.Abs(dx) > p.Width(g.Buffs())*2 {
		in.Set(core.ActionDash)
	}
	return in
}

func (a *Autopilot) target(g *Game) (float64, bool) {
	best := math.Inf(-1)
	x := 0.0
	for _, e := range g.Eggs() {
		if e.Launched && e.Vel.Y > 0 && e.Pos.Y > best {
			best = e.Pos.Y
			x = e.Pos.X
		}
	}
	if !math.IsInf(best, -1) {
		return x, true
	}

	p := g.Paddle()
	nearest := math.Inf(1)
	for _, d := range g.Drops() {
		if dist := math.Abs(d.Pos.X - p.X); dist < nearest {
			nearest = dist
			x = d.Pos.X
		}
	}
	return x, !math.IsInf(nearest, 1)
}
