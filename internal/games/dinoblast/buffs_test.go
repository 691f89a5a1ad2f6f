package dinoblast

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/dinoblast/internal/config"
)

func TestBuffsStackCap(t *testing.T) {
	b := NewBuffs(config.DefaultDinoBlastConfig())

	if !b.AddMutation(MutReflect) {
		t.Fatal("first REFLECT stack should apply")
	}
	if b.AddMutation(MutReflect) {
		t.Error("REFLECT is capped at one stack")
	}
	if got := b.Stacks(MutReflect); got != 1 {
		t.Errorf("REFLECT stacks: got %d, want 1", got)
	}

	for range 5 {
		b.AddMutation(MutWidth)
	}
	if got := b.Stacks(MutWidth); got != b.MaxStacks(MutWidth) || got != 3 {
		t.Errorf("WIDTH stacks: got %d, want 3", got)
	}
}

func TestBuffsActivateRefreshes(t *testing.T) {
	b := NewBuffs(config.DefaultDinoBlastConfig())

	if !b.Activate(PowerWide) {
		t.Fatal("WIDE should activate")
	}
	b.Tick(3 * time.Second)
	if got := b.Remaining(PowerWide); got != 7*time.Second {
		t.Errorf("remaining after 3s: got %v", got)
	}

	b.Activate(PowerWide)
	if got := b.Remaining(PowerWide); got != 10*time.Second {
		t.Errorf("refresh should reset to full duration, got %v", got)
	}
	if got := len(b.Timed()); got != 1 {
		t.Errorf("refresh must not add a second entry, got %d entries", got)
	}

	if b.Activate(PowerShield) || b.Activate(PowerBomb) {
		t.Error("instant powerups never enter the timed registry")
	}
}

func TestBuffsTickExpires(t *testing.T) {
	b := NewBuffs(config.DefaultDinoBlastConfig())
	b.Activate(PowerLaser) // 6s
	b.Activate(PowerSlow)  // 8s

	if expired := b.Tick(6 * time.Second); len(expired) != 1 || expired[0] != PowerLaser {
		t.Errorf("expired: got %v, want [LASER]", expired)
	}
	if b.IsActive(PowerLaser) {
		t.Error("LASER should be gone")
	}
	if !b.IsActive(PowerSlow) {
		t.Error("SLOW should still be active")
	}
}

func TestBuffsMultipliers(t *testing.T) {
	b := NewBuffs(config.DefaultDinoBlastConfig())
	if b.WidthMult() != 1 || b.SpeedMult() != 1 || b.BallSpeedMult() != 1 {
		t.Fatal("empty buffs should not scale anything")
	}

	b.AddMutation(MutWidth)
	b.AddMutation(MutWidth)
	b.Activate(PowerWide)
	if got := b.WidthMult(); math.Abs(got-2.4) > 1e-9 {
		t.Errorf("width mult: got %v, want 2.4", got)
	}

	b.AddMutation(MutSpeed)
	b.Activate(PowerFast)
	if got := b.SpeedMult(); math.Abs(got-1.8) > 1e-9 {
		t.Errorf("speed mult: got %v, want 1.8", got)
	}

	b.Activate(PowerSpring)
	if got := b.BallSpeedMult(); got != 1.3 {
		t.Errorf("ball speed mult: got %v, want 1.3", got)
	}

	if b.Piercing(0) {
		t.Error("no FIRE and no pierce time should not pierce")
	}
	if !b.Piercing(time.Second) {
		t.Error("remaining pierce time should pierce")
	}
	b.Activate(PowerFire)
	if !b.Piercing(0) {
		t.Error("FIRE should pierce")
	}
}

func TestLoseRandomMutationDrawsOverTypes(t *testing.T) {
	b := NewBuffs(config.DefaultDinoBlastConfig())
	if _, ok := b.LoseRandomMutation(&scriptedRNG{}); ok {
		t.Fatal("nothing to lose")
	}

	b.AddMutation(MutWidth)
	b.AddMutation(MutWidth)
	b.AddMutation(MutWidth)
	b.AddMutation(MutMagnet)

	// Held types are [WIDTH, MAGNET]; index 1 picks MAGNET even though
	// WIDTH has three times as many stacks.
	m, ok := b.LoseRandomMutation(&scriptedRNG{ints: []int{1}})
	if !ok || m != MutMagnet {
		t.Fatalf("got %v %v, want MAGNET", m, ok)
	}
	if b.Stacks(MutMagnet) != 0 || b.Stacks(MutWidth) != 3 {
		t.Errorf("stacks after loss: magnet=%d width=%d", b.Stacks(MutMagnet), b.Stacks(MutWidth))
	}
}

func TestPickupLabels(t *testing.T) {
	if got := (Pickup{Powerup: PowerLaser}).Label(); got != "LASER" {
		t.Errorf("got %q", got)
	}
	if got := (Pickup{IsMutation: true, Mutation: MutBunker}).Label(); got != "B+" {
		t.Errorf("got %q", got)
	}
}
