package dinoblast

import (
	"time"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
)

// PowerupType is a timed or instant powerup.
type PowerupType int

const (
	PowerWide   PowerupType = iota // Wider paddle
	PowerFast                      // Faster paddle
	PowerShield                    // Instant: +1 shield pip
	PowerSlow                      // Slower march and bullets
	PowerFire                      // Piercing eggs
	PowerSpring                    // Faster eggs
	PowerMulti                     // Extra egg, trimmed on expiry
	PowerLaser                     // Paddle fires lasers
	PowerBomb                      // Instant: area burst
	powerupCount
)

var powerupNames = [powerupCount]string{"WIDE", "FAST", "SHIELD", "SLOW", "FIRE", "SPRING", "MULTI", "LASER", "BOMB"}

// String returns the config key of the powerup.
func (p PowerupType) String() string {
	if p >= 0 && p < powerupCount {
		return powerupNames[p]
	}
	return "?"
}

// Instant reports whether the powerup applies once and never enters the timed registry.
func (p PowerupType) Instant() bool {
	return p == PowerShield || p == PowerBomb
}

// MutationType is a permanent stacking upgrade.
type MutationType int

const (
	MutWidth   MutationType = iota // +width per stack
	MutSpeed                       // +speed per stack
	MutArmor                       // +shield pip per stack, topped up each wave
	MutReflect                     // Paddle reflects bullets
	MutMagnet                      // Eggs stick to the paddle
	MutBunker                      // Bunker tiles above the paddle
	mutationCount
)

var mutationNames = [mutationCount]string{"WIDTH", "SPEED", "ARMOR", "REFLECT", "MAGNET", "BUNKER"}

// String returns the config key of the mutation.
func (m MutationType) String() string {
	if m >= 0 && m < mutationCount {
		return mutationNames[m]
	}
	return "?"
}

// Pickup is what a drop carries: one mutation or one powerup.
type Pickup struct {
	IsMutation bool
	Mutation   MutationType
	Powerup    PowerupType
}

// Label returns the short HUD label of the pickup.
func (p Pickup) Label() string {
	if p.IsMutation {
		return p.Mutation.String()[:1] + "+"
	}
	return p.Powerup.String()
}

// Glyph returns the display character for a falling pickup.
func (p Pickup) Glyph() rune {
	if p.IsMutation {
		return '✚'
	}
	return rune(p.Powerup.String()[0])
}

// Color returns the display color for a falling pickup.
func (p Pickup) Color() core.Color {
	if p.IsMutation {
		return core.ColorBrightCyan
	}
	return core.ColorBrightWhite
}

// TimedEffect is one active timed powerup.
type TimedEffect struct {
	Type      PowerupType
	Remaining time.Duration
}

// Buffs is the timed-powerup registry plus the mutation stack registry.
// All derived stats are pure reads over the two.
type Buffs struct {
	timed     []TimedEffect
	stacks    [mutationCount]int
	maxStacks [mutationCount]int
	durations [powerupCount]time.Duration

	wideFactor    float64
	fastFactor    float64
	springFactor  float64
	widthPerStack float64
	speedPerStack float64
}

// NewBuffs creates empty registries from config.
func NewBuffs(cfg config.DinoBlastConfig) *Buffs {
	b := &Buffs{
		wideFactor:    cfg.Powerups.WideFactor,
		fastFactor:    cfg.Powerups.FastFactor,
		springFactor:  cfg.Egg.SpringFactor,
		widthPerStack: cfg.Mutations.WidthPerStack,
		speedPerStack: cfg.Mutations.SpeedPerStack,
	}
	for p := PowerupType(0); p < powerupCount; p++ {
		b.durations[p] = cfg.Powerups.Durations[p.String()]
	}
	for m := MutationType(0); m < mutationCount; m++ {
		b.maxStacks[m] = cfg.Mutations.MaxStacks[m.String()]
	}
	return b
}

// Activate inserts a timed effect or refreshes its remaining time.
// Returns false for instant powerups and powerups without a duration.
func (b *Buffs) Activate(p PowerupType) bool {
	if p.Instant() || p < 0 || p >= powerupCount || b.durations[p] <= 0 {
		return false
	}
	for i := range b.timed {
		if b.timed[i].Type == p {
			b.timed[i].Remaining = b.durations[p]
			return true
		}
	}
	b.timed = append(b.timed, TimedEffect{Type: p, Remaining: b.durations[p]})
	return true
}

// AddMutation adds one stack. Returns false when the mutation is at its cap.
func (b *Buffs) AddMutation(m MutationType) bool {
	if m < 0 || m >= mutationCount || b.stacks[m] >= b.maxStacks[m] {
		return false
	}
	b.stacks[m]++
	return true
}

// Tick advances every timed effect and returns the ones that expired, in registry order.
func (b *Buffs) Tick(dt time.Duration) []PowerupType {
	var expired []PowerupType
	active := b.timed[:0]
	for _, e := range b.timed {
		e.Remaining -= dt
		if e.Remaining <= 0 {
			expired = append(expired, e.Type)
			continue
		}
		active = append(active, e)
	}
	b.timed = active
	return expired
}

// IsActive reports whether a timed powerup is running.
func (b *Buffs) IsActive(p PowerupType) bool {
	return b.Remaining(p) > 0
}

// Remaining returns the time left on a timed powerup, or 0.
func (b *Buffs) Remaining(p PowerupType) time.Duration {
	for _, e := range b.timed {
		if e.Type == p {
			return e.Remaining
		}
	}
	return 0
}

// Timed returns a copy of the active timed effects.
func (b *Buffs) Timed() []TimedEffect {
	out := make([]TimedEffect, len(b.timed))
	copy(out, b.timed)
	return out
}

// Stacks returns the stack count of a mutation.
func (b *Buffs) Stacks(m MutationType) int {
	if m < 0 || m >= mutationCount {
		return 0
	}
	return b.stacks[m]
}

// MaxStacks returns the cap of a mutation.
func (b *Buffs) MaxStacks(m MutationType) int {
	if m < 0 || m >= mutationCount {
		return 0
	}
	return b.maxStacks[m]
}

// Held returns the mutation types with at least one stack, in type order.
func (b *Buffs) Held() []MutationType {
	var held []MutationType
	for m := MutationType(0); m < mutationCount; m++ {
		if b.stacks[m] > 0 {
			held = append(held, m)
		}
	}
	return held
}

// WidthMult is the paddle width multiplier: mutation and powerup compose multiplicatively.
func (b *Buffs) WidthMult() float64 {
	mult := 1 + float64(b.stacks[MutWidth])*b.widthPerStack
	if b.IsActive(PowerWide) {
		mult *= b.wideFactor
	}
	return mult
}

// SpeedMult is the paddle speed multiplier.
func (b *Buffs) SpeedMult() float64 {
	mult := 1 + float64(b.stacks[MutSpeed])*b.speedPerStack
	if b.IsActive(PowerFast) {
		mult *= b.fastFactor
	}
	return mult
}

// BallSpeedMult is the egg speed multiplier.
func (b *Buffs) BallSpeedMult() float64 {
	if b.IsActive(PowerSpring) {
		return b.springFactor
	}
	return 1
}

// Piercing reports whether an egg with the given pierce time passes through dinos.
func (b *Buffs) Piercing(pierceLeft time.Duration) bool {
	return b.IsActive(PowerFire) || pierceLeft > 0
}

// LoseRandomMutation removes one stack of a uniformly chosen held type.
// The draw is over types, not stacks.
func (b *Buffs) LoseRandomMutation(rng RNG) (MutationType, bool) {
	held := b.Held()
	if len(held) == 0 {
		return 0, false
	}
	m := held[rng.Intn(len(held))]
	b.stacks[m]--
	return m, true
}

// Clear drops every effect and stack.
func (b *Buffs) Clear() {
	b.timed = b.timed[:0]
	b.stacks = [mutationCount]int{}
}
