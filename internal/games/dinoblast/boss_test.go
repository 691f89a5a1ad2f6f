package dinoblast

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
)

func threePhaseBoss(n int) config.WaveDef {
	return bossWave(n, 3, 1,
		config.PhaseDef{HPThreshold: 3, Pattern: config.PatternSpray},
		config.PhaseDef{HPThreshold: 2, Pattern: config.PatternBurst},
		config.PhaseDef{HPThreshold: 1, Pattern: config.PatternAimed},
	)
}

func TestBossFight(t *testing.T) {
	sink := &memorySink{}
	g, rec := newTestGame(t, []config.WaveDef{threePhaseBoss(1)}, WithSink(sink))
	b := g.Boss()
	if b == nil || !b.Alive || b.HP != 3 {
		t.Fatalf("boss not loaded: %+v", b)
	}
	if b.Pattern() != PatternSpray {
		t.Errorf("initial pattern: got %v", b.Pattern())
	}

	if !g.hitBossWeakPoint(0) {
		t.Fatal("first hit should land")
	}
	if g.hitBossWeakPoint(0) {
		t.Error("hit during cooldown should be ignored")
	}
	if b.HP != 2 || b.Pattern() != PatternBurst {
		t.Errorf("after hit 1: hp=%d pattern=%v", b.HP, b.Pattern())
	}

	g.clock += 3 * time.Second
	g.hitBossWeakPoint(0)
	if b.HP != 1 || b.Pattern() != PatternAimed {
		t.Errorf("after hit 2: hp=%d pattern=%v", b.HP, b.Pattern())
	}

	g.clock += 3 * time.Second
	g.hitBossWeakPoint(0)
	if b.Alive {
		t.Fatal("boss should be dead")
	}

	if len(rec.phases) != 2 || rec.phases[0] != 1 || rec.phases[1] != 2 {
		t.Errorf("phase notifications: %v", rec.phases)
	}
	if g.Phase() != PhaseWon {
		t.Errorf("final boss down should win, phase=%v", g.Phase())
	}
	if g.Stats().BossesDefeated != 1 {
		t.Errorf("bosses defeated: %d", g.Stats().BossesDefeated)
	}
	// 25, 25, 25*2, then the kill bonus at combo 3
	if g.Score() != 1100 {
		t.Errorf("score: got %d, want 1100", g.Score())
	}
	if len(rec.ended) != 1 || len(sink.results) != 1 || !sink.results[0].Won {
		t.Errorf("run end reported %d/%d times", len(rec.ended), len(sink.results))
	}
}

func TestBossPhasesOnlyAdvance(t *testing.T) {
	b := newBoss(1, config.BossDef{
		HP: 10,
		Phases: []config.PhaseDef{
			{HPThreshold: 10, Pattern: config.PatternSpray},
			{HPThreshold: 5, Pattern: config.PatternAimed},
		},
	}, config.DefaultDinoBlastConfig().Boss, 800)

	b.HP = 4
	if !b.updatePhase() || b.Phase != 1 {
		t.Fatalf("phase: got %d, want 1", b.Phase)
	}
	b.HP = 8
	if b.updatePhase() || b.Phase != 1 {
		t.Errorf("phase must not go back, got %d", b.Phase)
	}
}

func TestBossPacing(t *testing.T) {
	b := newBoss(1, config.BossDef{HP: 10, WeakPoints: 3}, config.DefaultDinoBlastConfig().Boss, 800)

	if b.AttackInterval() != 2*time.Second || b.MoveSpeed() != 50 {
		t.Errorf("phase 0: interval=%v speed=%v", b.AttackInterval(), b.MoveSpeed())
	}
	b.Phase = 2
	if b.AttackInterval() != 1400*time.Millisecond || b.MoveSpeed() != 90 {
		t.Errorf("phase 2: interval=%v speed=%v", b.AttackInterval(), b.MoveSpeed())
	}
	b.Phase = 10
	if b.AttackInterval() != 500*time.Millisecond {
		t.Errorf("interval should floor at 500ms, got %v", b.AttackInterval())
	}

	for i, want := range []float64{320, 400, 480} {
		c := b.WeakPointCircle(i)
		if c.C.X != want || c.C.Y != 120 {
			t.Errorf("weak point %d at %v", i, c.C)
		}
	}
}

func TestBossMoveBounces(t *testing.T) {
	b := newBoss(1, config.BossDef{HP: 1}, config.DefaultDinoBlastConfig().Boss, 800)
	b.Pos.X = 660
	b.Move(100*time.Millisecond, 800)
	if b.Dir != -1 {
		t.Errorf("boss past the right edge should turn, dir=%v", b.Dir)
	}
	b.Pos.X = 140
	b.Move(100*time.Millisecond, 800)
	if b.Dir != 1 {
		t.Errorf("boss past the left edge should turn, dir=%v", b.Dir)
	}
}

func TestBossAttackPatterns(t *testing.T) {
	t.Run("spray", func(t *testing.T) {
		g, _ := newTestGame(t, []config.WaveDef{threePhaseBoss(1)})
		g.bossAttack(g.Boss())
		if len(g.Bullets()) != 5 {
			t.Fatalf("spray should fire 5, got %d", len(g.Bullets()))
		}
		if g.Bullets()[0].Vel.X != -60 || g.Bullets()[2].Vel.X != 0 || g.Bullets()[4].Vel.X != 60 {
			t.Error("spray should fan out symmetrically")
		}
	})

	t.Run("burst", func(t *testing.T) {
		g, _ := newTestGame(t, []config.WaveDef{threePhaseBoss(1)})
		g.Boss().Phase = 1
		g.bossAttack(g.Boss())
		if len(g.Bullets()) != 1 {
			t.Fatalf("burst should fire one immediately, got %d", len(g.Bullets()))
		}
		if g.Bullets()[0].Vel.Y != 300 {
			t.Errorf("burst speed: got %v", g.Bullets()[0].Vel.Y)
		}
		for range 3 {
			g.Update(100*time.Millisecond, idle())
		}
		if len(g.Bullets()) != 3 {
			t.Errorf("staggered burst shots: got %d bullets, want 3", len(g.Bullets()))
		}
	})

	t.Run("aimed", func(t *testing.T) {
		g, _ := newTestGame(t, []config.WaveDef{threePhaseBoss(1)})
		g.Boss().Phase = 2
		g.bossAttack(g.Boss())
		v := g.Bullets()[0].Vel
		if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-240) > 1e-9 {
			t.Errorf("aimed shot at a paddle straight below: got %v", v)
		}
	})
}

func TestEggReachesWeakPointFromBelow(t *testing.T) {
	g, _ := newTestGame(t, []config.WaveDef{threePhaseBoss(1), gridWave(2, "R")})
	e := &Egg{Pos: core.V(400, 135), Vel: core.V(0, -280), Launched: true}

	g.eggVsBoss(e)
	if g.Boss().HP != 2 {
		t.Errorf("weak point should take the hit, hp=%d", g.Boss().HP)
	}
	if e.Vel.Y <= 0 {
		t.Error("egg should bounce back down")
	}

	body := &Egg{Pos: core.V(300, 125), Vel: core.V(0, -280), Launched: true}
	g.eggVsBoss(body)
	if g.Boss().HP != 2 || body.Vel.Y <= 0 {
		t.Errorf("body hit should only bounce: hp=%d vel=%v", g.Boss().HP, body.Vel)
	}
}

func TestBossDeathDrops(t *testing.T) {
	g, rec := newTestGame(t, []config.WaveDef{bossWave(1, 1, 1), gridWave(2, "R")},
		WithRNG(&scriptedRNG{floats: []float64{0.5, 0.5, 0.5, 0.5, 0.1, 0.1, 0.9, 0.9}}))

	g.hitBossWeakPoint(0)
	if g.Phase() != PhaseWaveCleared {
		t.Fatalf("phase: got %v", g.Phase())
	}
	for range 7 {
		g.Update(100*time.Millisecond, idle())
	}
	// Rolls 0.1 and 0.1 become mutations, 0.9 and 0.9 become powerups
	if len(rec.drops) != 4 {
		t.Fatalf("expected 4 death drops, got %d", len(rec.drops))
	}
	if !rec.drops[0].IsMutation || rec.drops[3].IsMutation {
		t.Errorf("drops: %+v", rec.drops)
	}
}

func TestBossPhaseThresholdCrossedOnce(t *testing.T) {
	g, rec := newTestGame(t, []config.WaveDef{bossWave(1, 30, 1,
		config.PhaseDef{HPThreshold: 30, Pattern: config.PatternSpray},
		config.PhaseDef{HPThreshold: 20, Pattern: config.PatternBurst},
		config.PhaseDef{HPThreshold: 10, Pattern: config.PatternAimed},
	)})
	b := g.Boss()
	b.HP = 20

	if !g.hitBossWeakPoint(0) {
		t.Fatal("hit should land")
	}
	if b.HP != 19 || b.Phase != 1 {
		t.Fatalf("after hit: hp=%d phase=%d", b.HP, b.Phase)
	}
	if g.hitBossWeakPoint(0) || b.HP != 19 {
		t.Error("cooldown hit should be a no-op")
	}

	g.clock += 3 * time.Second
	g.hitBossWeakPoint(0)
	if b.HP != 18 || b.Phase != 1 {
		t.Errorf("second hit: hp=%d phase=%d", b.HP, b.Phase)
	}
	if len(rec.phases) != 1 || rec.phases[0] != 1 {
		t.Errorf("phase notifications: %v", rec.phases)
	}
}
