package dinoblast

import (
	"fmt"
	"hash/fnv"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot contains the observable simulation state for replay checks and
// saved runs. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick    uint64 `msgpack:"tick"`
	ClockMS int64  `msgpack:"clock_ms"`
	Phase   string `msgpack:"phase"`
	Wave    int    `msgpack:"wave"`
	Score   int    `msgpack:"score"`
	Hearts  int    `msgpack:"hearts"`
	Combo   int    `msgpack:"combo"`

	PaddleX   float64 `msgpack:"paddle_x"`
	PaddleW   float64 `msgpack:"paddle_w"`
	Shield    int     `msgpack:"shield"`
	Bunker    int     `msgpack:"bunker"` // Alive tiles
	FormDir   float64 `msgpack:"form_dir"`
	BossHP    int     `msgpack:"boss_hp"`
	BossPhase int     `msgpack:"boss_phase"`

	// Each egg is 4 floats: X, Y, VX, VY
	EggData []float64 `msgpack:"eggs"`

	// Each dino is 4 values: Kind, HP, X, Y
	DinoData []float64 `msgpack:"dinos"`

	// Each bullet is 4 floats: X, Y, VY, Reflected
	BulletData []float64 `msgpack:"bullets"`

	// Each drop is 3 values: Pickup code, X, Y
	DropData []float64 `msgpack:"drops"`

	// Mutation stacks by type, then timed effect type and remaining ms pairs
	Stacks     []int   `msgpack:"stacks"`
	EffectData []int64 `msgpack:"effects"`

	Stats    Stats  `msgpack:"stats"`
	RNGState uint64 `msgpack:"rng_state"`
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    g.tick,
		ClockMS: g.clock.Milliseconds(),
		Phase:   g.phase.String(),
		Wave:    g.wave,
		Score:   g.score,
		Hearts:  g.hearts,
		Combo:   g.combo,
		PaddleX: g.paddle.X,
		Shield:  g.paddle.Shield,
		Stats:   g.stats,
	}
	if g.buffs != nil {
		snap.PaddleW = g.paddle.Width(g.buffs)
		for m := MutationType(0); m < mutationCount; m++ {
			snap.Stacks = append(snap.Stacks, g.buffs.Stacks(m))
		}
		for _, e := range g.buffs.Timed() {
			snap.EffectData = append(snap.EffectData, int64(e.Type), e.Remaining.Milliseconds())
		}
	}
	for _, t := range g.paddle.Bunker {
		if t.Alive {
			snap.Bunker++
		}
	}
	if g.formation != nil {
		snap.FormDir = g.formation.Dir
		for _, d := range g.formation.Live() {
			snap.DinoData = append(snap.DinoData, float64(d.Kind), float64(d.HP), d.Pos.X, d.Pos.Y)
		}
	}
	if g.boss != nil {
		snap.BossHP = g.boss.HP
		snap.BossPhase = g.boss.Phase
	}
	for _, e := range g.eggs {
		snap.EggData = append(snap.EggData, e.Pos.X, e.Pos.Y, e.Vel.X, e.Vel.Y)
	}
	for _, b := range g.bullets {
		refl := 0.0
		if b.Reflected {
			refl = 1
		}
		snap.BulletData = append(snap.BulletData, b.Pos.X, b.Pos.Y, b.Vel.Y, refl)
	}
	for _, d := range g.drops {
		code := float64(d.Pickup.Powerup)
		if d.Pickup.IsMutation {
			code = 100 + float64(d.Pickup.Mutation)
		}
		snap.DropData = append(snap.DropData, code, d.Pos.X, d.Pos.Y)
	}
	if s, ok := g.rng.(*SimpleRNG); ok {
		snap.RNGState = s.State()
	}
	return snap
}

// snapshotWire has Snapshot's fields without its methods, so msgpack
// encodes the struct instead of calling MarshalBinary again.
type snapshotWire Snapshot

// MarshalBinary encodes the snapshot with msgpack.
func (snap *Snapshot) MarshalBinary() ([]byte, error) {
	b, err := msgpack.Marshal((*snapshotWire)(snap))
	if err != nil {
		return nil, fmt.Errorf("dinoblast: encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot decodes a msgpack snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var wire snapshotWire
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return Snapshot{}, fmt.Errorf("dinoblast: decode snapshot: %w", err)
	}
	return Snapshot(wire), nil
}

// Hash returns a hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	b, err := snap.MarshalBinary()
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}
