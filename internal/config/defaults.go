package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/dinoblast.yaml
var defaultDinoBlastYAML []byte

//go:embed defaults/waves.yaml
var defaultWavesYAML []byte

// DefaultDinoBlastConfig returns the built-in tuning. It mirrors
// defaults/dinoblast.yaml and is used when the embedded file cannot be parsed.
func DefaultDinoBlastConfig() DinoBlastConfig {
	return DinoBlastConfig{
		Playfield: PlayfieldConfig{
			Width:       800,
			Height:      600,
			EarthLineY:  560,
			MarchMargin: 20,
		},
		Paddle: PaddleConfig{
			Width:         120,
			Height:        20,
			Speed:         400,
			Y:             550,
			DashCooldown:  1500 * time.Millisecond,
			DashDuration:  150 * time.Millisecond,
			DashSpeed:     1200,
			MaxShield:     3,
			BunkerTileW:   30,
			BunkerTileH:   10,
			BunkerGap:     5,
			BunkerOffsetY: 35,
		},
		Egg: EggConfig{
			Radius:        10,
			MaxAxisSpeed:  400,
			HitDebounce:   100 * time.Millisecond,
			SpringFactor:  1.3,
			LaunchAngle:   -90,
			BounceSpread:  60,
			MinBounceDist: 1,
		},
		Dino: DinoGridConfig{
			Width:    50,
			Height:   40,
			Spacing:  10,
			StartY:   80,
			HitNudge: 30,
			Jitter:   20,
		},
		DinoTypes: map[string]DinoTypeConfig{
			"R": {Name: "raptor", HP: 1, Score: 10, ShootChance: 0.0002},
			"P": {Name: "ptero", HP: 1, Score: 14, ShootChance: 0.0008},
			"T": {Name: "trike", HP: 2, Score: 18, ShootChance: 0.0004},
			"B": {Name: "bomber", HP: 1, Score: 10, ShootChance: 0.0003, ExplodeRadius: 80},
			"S": {Name: "splitter", HP: 2, Score: 10, ShootChance: 0.0003, SplitInto: "s", SplitOffset: 25},
			"s": {Name: "hatchling", HP: 1, Score: 10},
		},
		Bullet: BulletConfig{Width: 8, Height: 16, Speed: 200},
		Laser: LaserConfig{
			Speed:        500,
			FireInterval: 400 * time.Millisecond,
			Width:        4,
			Height:       16,
		},
		Drops: DropConfig{FallSpeed: 80, Width: 40, Height: 25},
		Combo: ComboConfig{Window: 2 * time.Second, Double: 2, Triple: 4},
		Scoring: ScoringConfig{
			ChainBonus: 25,
			WeakPoint:  25,
			BossKill:   500,
			Bumper:     2,
			Vortex:     3,
			Wormhole:   5,
		},
		Chain: ChainConfig{Stagger: 50 * time.Millisecond},
		Obstacles: ObstacleTuning{
			BumperFactor:     1.5,
			BumperMinSpeed:   250,
			BumperMaxSpeed:   380,
			BumperRadius:     30,
			VortexBase:       150,
			VortexKeep:       0.5,
			VortexVertKeep:   0.9,
			VortexLift:       100,
			VortexMaxSpeed:   380,
			VortexRadius:     40,
			WormholeCooldown: time.Second,
			WormholeRadius:   35,
			GravityRadius:    100,
			GravityMinDist:   10,
			GravityStrength:  50,
		},
		Boss: BossTuning{
			Width:             250,
			Height:            80,
			Y:                 80,
			WeakPointSpacing:  80,
			WeakPointRadius:   20,
			WeakPointCooldown: 3 * time.Second,
			BaseMoveSpeed:     50,
			MoveSpeedPerPhase: 20,
			AttackInterval:    2 * time.Second,
			IntervalPerPhase:  300 * time.Millisecond,
			MinAttackInterval: 500 * time.Millisecond,
			SpraySpread:       30,
			BurstStagger:      150 * time.Millisecond,
			BurstFactor:       1.5,
			AimedFactor:       1.2,
			DeathDrops:        4,
			DeathDropStagger:  200 * time.Millisecond,
			DeathDropRates:    DropRates{TimedPowerup: 0.2, Mutation: 0.8},
		},
		Powerups: PowerupConfig{
			Durations: map[string]time.Duration{
				"WIDE":   10 * time.Second,
				"FAST":   10 * time.Second,
				"SLOW":   8 * time.Second,
				"FIRE":   8 * time.Second,
				"SPRING": 10 * time.Second,
				"MULTI":  8 * time.Second,
				"LASER":  6 * time.Second,
			},
			WideFactor: 1.6,
			FastFactor: 1.5,
			SlowMarch:  0.7,
			SlowBullet: 0.5,
			MaxEggs:    3,
			BombRadius: 200,
			BombY:      300,
		},
		Mutations: MutationConfig{
			MaxStacks: map[string]int{
				"WIDTH":   3,
				"SPEED":   3,
				"ARMOR":   3,
				"REFLECT": 1,
				"MAGNET":  1,
				"BUNKER":  2,
			},
			WidthPerStack:  0.25,
			SpeedPerStack:  0.20,
			BunkerPerStack: 2,
		},
		Run:        RunConfig{InterWaveDelay: 1500 * time.Millisecond},
		Difficulty: defaultProfiles(),
	}
}

// DefaultWaves returns a minimal built-in wave set used when the embedded
// waves file cannot be parsed.
func DefaultWaves() WaveSet {
	return WaveSet{Waves: []WaveDef{
		{
			Number:     1,
			Name:       "First Contact",
			MarchSpeed: 30,
			Descent:    20,
			DropRates:  DropRates{TimedPowerup: 0.15, Mutation: 0.05},
			Layout:     []string{"RRRRRRRR", "RRRRRRRR"},
		},
		{
			Number:     2,
			Name:       "Horned Wall",
			MarchSpeed: 34,
			Descent:    22,
			DropRates:  DropRates{TimedPowerup: 0.15, Mutation: 0.06},
			Layout:     []string{"TTTTTTTT", "RRBRRBRR", "RRRRRRRR"},
		},
		{
			Number:    3,
			Name:      "Mothership Rex",
			DropRates: DropRates{TimedPowerup: 0.2, Mutation: 0.1},
			Boss: &BossDef{
				Name:       "Mothership Rex",
				HP:         30,
				WeakPoints: 3,
				Phases: []PhaseDef{
					{HPThreshold: 30, Pattern: PatternSpray},
					{HPThreshold: 20, Pattern: PatternBurst},
					{HPThreshold: 10, Pattern: PatternAimed},
				},
			},
		},
	}}
}
