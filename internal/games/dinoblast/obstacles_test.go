package dinoblast

import (
	"math"
	"testing"

	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
)

func TestNewObstacleDefaults(t *testing.T) {
	tuning := config.DefaultDinoBlastConfig().Obstacles

	tests := []struct {
		def      config.ObstacleDef
		kind     ObstacleKind
		radius   float64
		strength float64
	}{
		{config.ObstacleDef{Kind: "bumper"}, ObstacleBumper, 30, 0},
		{config.ObstacleDef{Kind: "bumper", Radius: 12}, ObstacleBumper, 12, 0},
		{config.ObstacleDef{Kind: "vortex"}, ObstacleVortex, 40, 0},
		{config.ObstacleDef{Kind: "wormhole", ExitX: 10, ExitY: 20}, ObstacleWormhole, 35, 0},
		{config.ObstacleDef{Kind: "gravity_well"}, ObstacleGravityWell, 100, 50},
	}
	for _, tt := range tests {
		o, ok := newObstacle(tt.def, tuning)
		if !ok {
			t.Errorf("%s: not recognised", tt.def.Kind)
			continue
		}
		if o.Kind != tt.kind || o.Radius != tt.radius || o.Strength != tt.strength {
			t.Errorf("%s: got %+v", tt.def.Kind, o)
		}
	}

	if _, ok := newObstacle(config.ObstacleDef{Kind: "flipper"}, tuning); ok {
		t.Error("unknown kinds should be rejected")
	}
}

func TestBumperBounce(t *testing.T) {
	tuning := config.DefaultDinoBlastConfig().Obstacles
	b := Obstacle{Kind: ObstacleBumper, Pos: core.V(100, 100), Radius: 30}
	egg := &Egg{Pos: core.V(100, 70), Vel: core.V(0, 100)}

	bumperBounce(b, egg, 10, tuning, 1)
	if egg.Pos.Dist(core.V(100, 59)) > 1e-9 {
		t.Errorf("egg should be pushed to the surface, got %v", egg.Pos)
	}
	// Reflected to -100, boosted to -150, raised to the 250 floor
	if math.Abs(egg.Vel.X) > 1e-9 || math.Abs(egg.Vel.Y+250) > 1e-9 {
		t.Errorf("velocity: got %v, want (0,-250)", egg.Vel)
	}

	fast := &Egg{Pos: core.V(130, 100), Vel: core.V(-300, 0)}
	bumperBounce(b, fast, 10, tuning, 1)
	if math.Abs(fast.Vel.Len()-380) > 1e-9 || fast.Vel.X <= 0 {
		t.Errorf("fast egg should be capped at 380 and sent right, got %v", fast.Vel)
	}
}

func TestVortexFling(t *testing.T) {
	tuning := config.DefaultDinoBlastConfig().Obstacles
	v := Obstacle{Kind: ObstacleVortex, Pos: core.V(40, 100), Radius: 40}
	egg := &Egg{Pos: core.V(60, 100), Vel: core.V(-100, 200)}

	vortexFling(v, egg, 10, 800, tuning, 1)
	if math.Abs(egg.Vel.X-200) > 1e-9 || math.Abs(egg.Vel.Y+280) > 1e-9 {
		t.Errorf("velocity: got %v, want (200,-280)", egg.Vel)
	}
	if math.Abs(egg.Pos.X-91) > 1e-9 {
		t.Errorf("egg should be pushed out of the vortex, x=%v", egg.Pos.X)
	}

	right := Obstacle{Kind: ObstacleVortex, Pos: core.V(700, 100), Radius: 40}
	egg = &Egg{Pos: core.V(700, 100), Vel: core.V(0, 0)}
	vortexFling(right, egg, 10, 800, tuning, 1)
	if egg.Vel.X >= 0 || egg.Vel.Y >= 0 {
		t.Errorf("right-side vortex should fling left and up, got %v", egg.Vel)
	}
}

func TestGravityPull(t *testing.T) {
	well := Obstacle{Kind: ObstacleGravityWell, Pos: core.V(0, 0), Radius: 100, Strength: 50}

	dv := gravityPull(well, core.V(20, 0), gravityFrame, 10)
	if math.Abs(dv.X+5) > 1e-9 || dv.Y != 0 {
		t.Errorf("pull at 20px: got %v, want (-5,0)", dv)
	}
	if dv := gravityPull(well, core.V(5, 0), gravityFrame, 10); dv != (core.Vec{}) {
		t.Errorf("inside the minimum distance: got %v", dv)
	}
	if dv := gravityPull(well, core.V(150, 0), gravityFrame, 10); dv != (core.Vec{}) {
		t.Errorf("outside the radius: got %v", dv)
	}
	half := gravityPull(well, core.V(20, 0), gravityFrame/2, 10)
	if math.Abs(half.X+2.5) > 1e-6 {
		t.Errorf("pull should scale with dt, got %v", half)
	}
}

func TestWormholeTravel(t *testing.T) {
	g, _ := newTestGame(t, []config.WaveDef{gridWave(1, "R")})
	g.obstacles = []Obstacle{{Kind: ObstacleWormhole, Pos: core.V(200, 300), Exit: core.V(600, 200), Radius: 35}}

	e := &Egg{Pos: core.V(200, 300), Vel: core.V(0, -280), Launched: true}
	g.eggVsObstacles(e)
	if e.Pos != core.V(600, 200) {
		t.Fatalf("egg should exit the far portal, got %v", e.Pos)
	}
	if g.Stats().WormholeTravels != 1 || g.Score() != 5 {
		t.Errorf("travels=%d score=%d", g.Stats().WormholeTravels, g.Score())
	}

	// Exit portal is cooling down
	g.eggVsObstacles(e)
	if e.Pos != core.V(600, 200) {
		t.Errorf("cooldown should block travel, egg at %v", e.Pos)
	}

	g.clock += g.cfg.Obstacles.WormholeCooldown
	g.eggVsObstacles(e)
	if e.Pos != core.V(200, 300) {
		t.Errorf("egg should travel back after the cooldown, got %v", e.Pos)
	}
}

func TestEggObstacleScoringUsesCombo(t *testing.T) {
	g, _ := newTestGame(t, []config.WaveDef{gridWave(1, "R")})
	g.obstacles = []Obstacle{{Kind: ObstacleBumper, Pos: core.V(100, 300), Radius: 30}}
	g.combo = 2

	e := &Egg{Pos: core.V(100, 275), Vel: core.V(0, 200), Launched: true}
	g.eggVsObstacles(e)
	if g.Stats().BumperHits != 1 {
		t.Fatal("bumper not hit")
	}
	if g.Score() != 4 || g.Combo() != 3 {
		t.Errorf("bumper at combo 2: score=%d combo=%d", g.Score(), g.Combo())
	}
}
