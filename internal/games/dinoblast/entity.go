package dinoblast

import (
	"time"

	"github.com/vovakirdan/dinoblast/internal/core"
)

// EntityID identifies a simulation entity. IDs are never reused within a run.
type EntityID uint32

// idAlloc hands out monotonically increasing IDs.
type idAlloc struct {
	last EntityID
}

func (a *idAlloc) next() EntityID {
	a.last++
	return a.last
}

// Paddle is the player's paddle. Width and speed are derived from the buffs.
type Paddle struct {
	X, Y      float64 // Center
	BaseWidth float64
	BaseSpeed float64
	Height    float64
	Shield    int // Shield pips, 0..MaxShield
	MaxShield int

	Dashing      bool
	DashLeft     time.Duration
	DashCooldown time.Duration
	DashDir      float64

	Bunker []BunkerTile
}

// Width returns the current paddle width.
func (p *Paddle) Width(b *Buffs) float64 {
	return p.BaseWidth * b.WidthMult()
}

// Speed returns the current paddle speed.
func (p *Paddle) Speed(b *Buffs) float64 {
	return p.BaseSpeed * b.SpeedMult()
}

// Box returns the paddle's collision box.
func (p *Paddle) Box(b *Buffs) core.Box {
	return core.NewBox(p.X, p.Y, p.Width(b), p.Height)
}

// AddShield adds pips up to the cap.
func (p *Paddle) AddShield(n int) {
	p.Shield = core.Clamp(p.Shield+n, 0, p.MaxShield)
}

// Invincible reports whether bullets pass harmlessly.
func (p *Paddle) Invincible() bool {
	return p.Dashing
}

// BunkerTile absorbs exactly one bullet.
type BunkerTile struct {
	Box   core.Box
	Alive bool
}

// Egg is the ball.
type Egg struct {
	ID         EntityID
	Pos        core.Vec
	Vel        core.Vec
	Launched   bool
	Stuck      bool    // Riding the paddle until launched
	StickX     float64 // Offset from the paddle center while stuck
	PierceLeft time.Duration
}

// Dino is one formation enemy.
type Dino struct {
	ID         EntityID
	Kind       DinoKind
	HP         int
	Row, Col   int
	Pos        core.Vec
	Alive      bool
	hitReadyAt time.Duration // Debounce: earliest clock at which a new hit counts
}

// Bullet is enemy plasma spit. A reflected bullet travels up and damages dinos.
type Bullet struct {
	ID        EntityID
	Pos       core.Vec
	Vel       core.Vec
	Reflected bool
	Dead      bool
}

// Laser is a paddle shot from the LASER powerup.
type Laser struct {
	ID   EntityID
	Pos  core.Vec
	VelY float64
	Dead bool
}

// Drop is a falling pickup.
type Drop struct {
	ID        EntityID
	Pickup    Pickup
	Pos       core.Vec
	Collected bool
	Gone      bool
}
