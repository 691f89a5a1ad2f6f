// Package config provides YAML-based tuning, difficulty profiles and wave
// definitions for DinoBlast.
package config

import "time"

// DinoBlastConfig contains all numeric tuning for the simulation.
type DinoBlastConfig struct {
	Playfield  PlayfieldConfig                       `yaml:"playfield"`
	Paddle     PaddleConfig                          `yaml:"paddle"`
	Egg        EggConfig                             `yaml:"egg"`
	Dino       DinoGridConfig                        `yaml:"dino"`
	DinoTypes  map[string]DinoTypeConfig             `yaml:"dino_types"`
	Bullet     BulletConfig                          `yaml:"bullet"`
	Laser      LaserConfig                           `yaml:"laser"`
	Drops      DropConfig                            `yaml:"drops"`
	Combo      ComboConfig                           `yaml:"combo"`
	Scoring    ScoringConfig                         `yaml:"scoring"`
	Chain      ChainConfig                           `yaml:"chain"`
	Obstacles  ObstacleTuning                        `yaml:"obstacles"`
	Boss       BossTuning                            `yaml:"boss"`
	Powerups   PowerupConfig                         `yaml:"powerups"`
	Mutations  MutationConfig                        `yaml:"mutations"`
	Run        RunConfig                             `yaml:"run"`
	Difficulty map[DifficultyPreset]DifficultyProfile `yaml:"difficulty"`
}

// PlayfieldConfig defines the world bounds.
type PlayfieldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	EarthLineY  float64 `yaml:"earth_line_y"`
	MarchMargin float64 `yaml:"march_margin"`
}

// PaddleConfig defines paddle geometry, movement and dash.
type PaddleConfig struct {
	Width         float64       `yaml:"width"`
	Height        float64       `yaml:"height"`
	Speed         float64       `yaml:"speed"`
	Y             float64       `yaml:"y"`
	DashCooldown  time.Duration `yaml:"dash_cooldown"`
	DashDuration  time.Duration `yaml:"dash_duration"`
	DashSpeed     float64       `yaml:"dash_speed"`
	MaxShield     int           `yaml:"max_shield"`
	BunkerTileW   float64       `yaml:"bunker_tile_w"`
	BunkerTileH   float64       `yaml:"bunker_tile_h"`
	BunkerGap     float64       `yaml:"bunker_gap"`
	BunkerOffsetY float64       `yaml:"bunker_offset_y"`
}

// EggConfig defines the ball.
type EggConfig struct {
	Radius        float64       `yaml:"radius"`
	MaxAxisSpeed  float64       `yaml:"max_axis_speed"`
	HitDebounce   time.Duration `yaml:"hit_debounce"`
	SpringFactor  float64       `yaml:"spring_factor"`
	LaunchAngle   float64       `yaml:"launch_angle"`
	BounceSpread  float64       `yaml:"bounce_spread"` // degrees either side of straight up
	MinBounceDist float64       `yaml:"min_bounce_dist"`
}

// DinoGridConfig defines formation cell geometry.
type DinoGridConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Spacing  float64 `yaml:"spacing"`
	StartY   float64 `yaml:"start_y"`
	HitNudge float64 `yaml:"hit_nudge"`
	Jitter   float64 `yaml:"jitter"`
}

// DinoTypeConfig defines one enemy variant, keyed by its layout token.
type DinoTypeConfig struct {
	Name          string  `yaml:"name"`
	HP            int     `yaml:"hp"`
	Score         int     `yaml:"score"`
	ShootChance   float64 `yaml:"shoot_chance"`
	ExplodeRadius float64 `yaml:"explode_radius,omitempty"`
	SplitInto     string  `yaml:"split_into,omitempty"`
	SplitOffset   float64 `yaml:"split_offset,omitempty"`
}

// BulletConfig defines enemy plasma spit.
type BulletConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

// LaserConfig defines the LASER powerup projectiles.
type LaserConfig struct {
	Speed        float64       `yaml:"speed"`
	FireInterval time.Duration `yaml:"fire_interval"`
	Width        float64       `yaml:"width"`
	Height       float64       `yaml:"height"`
}

// DropConfig defines falling pickups.
type DropConfig struct {
	FallSpeed float64 `yaml:"fall_speed"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
}

// ComboConfig defines the combo window and multiplier thresholds.
type ComboConfig struct {
	Window time.Duration `yaml:"window"`
	Double int           `yaml:"double"`
	Triple int           `yaml:"triple"`
}

// ScoringConfig holds fixed score awards.
type ScoringConfig struct {
	ChainBonus int `yaml:"chain_bonus"`
	WeakPoint  int `yaml:"weak_point"`
	BossKill   int `yaml:"boss_kill"`
	Bumper     int `yaml:"bumper"`
	Vortex     int `yaml:"vortex"`
	Wormhole   int `yaml:"wormhole"`
}

// ChainConfig defines explosion chain timing.
type ChainConfig struct {
	Stagger time.Duration `yaml:"stagger"`
}

// ObstacleTuning defines pinball obstacle transforms.
type ObstacleTuning struct {
	BumperFactor     float64       `yaml:"bumper_factor"`
	BumperMinSpeed   float64       `yaml:"bumper_min_speed"`
	BumperMaxSpeed   float64       `yaml:"bumper_max_speed"`
	BumperRadius     float64       `yaml:"bumper_radius"`
	VortexBase       float64       `yaml:"vortex_base"`
	VortexKeep       float64       `yaml:"vortex_keep"`
	VortexVertKeep   float64       `yaml:"vortex_vert_keep"`
	VortexLift       float64       `yaml:"vortex_lift"`
	VortexMaxSpeed   float64       `yaml:"vortex_max_speed"`
	VortexRadius     float64       `yaml:"vortex_radius"`
	WormholeCooldown time.Duration `yaml:"wormhole_cooldown"`
	WormholeRadius   float64       `yaml:"wormhole_radius"`
	GravityRadius    float64       `yaml:"gravity_radius"`
	GravityMinDist   float64       `yaml:"gravity_min_dist"`
	GravityStrength  float64       `yaml:"gravity_strength"`
}

// BossTuning defines boss geometry, movement and attacks.
type BossTuning struct {
	Width             float64       `yaml:"width"`
	Height            float64       `yaml:"height"`
	Y                 float64       `yaml:"y"`
	WeakPointSpacing  float64       `yaml:"weak_point_spacing"`
	WeakPointRadius   float64       `yaml:"weak_point_radius"`
	WeakPointCooldown time.Duration `yaml:"weak_point_cooldown"`
	BaseMoveSpeed     float64       `yaml:"base_move_speed"`
	MoveSpeedPerPhase float64       `yaml:"move_speed_per_phase"`
	AttackInterval    time.Duration `yaml:"attack_interval"`
	IntervalPerPhase  time.Duration `yaml:"interval_per_phase"`
	MinAttackInterval time.Duration `yaml:"min_attack_interval"`
	SpraySpread       float64       `yaml:"spray_spread"`
	BurstStagger      time.Duration `yaml:"burst_stagger"`
	BurstFactor       float64       `yaml:"burst_factor"`
	AimedFactor       float64       `yaml:"aimed_factor"`
	DeathDrops        int           `yaml:"death_drops"`
	DeathDropStagger  time.Duration `yaml:"death_drop_stagger"`
	DeathDropRates    DropRates     `yaml:"death_drop_rates"`
}

// PowerupConfig defines timed powerup durations and effect sizes.
type PowerupConfig struct {
	Durations  map[string]time.Duration `yaml:"durations"`
	WideFactor float64                  `yaml:"wide_factor"`
	FastFactor float64                  `yaml:"fast_factor"`
	SlowMarch  float64                  `yaml:"slow_march"`
	SlowBullet float64                  `yaml:"slow_bullet"`
	MaxEggs    int                      `yaml:"max_eggs"`
	BombRadius float64                  `yaml:"bomb_radius"`
	BombY      float64                  `yaml:"bomb_y"`
}

// MutationConfig defines mutation caps and per-stack effects.
type MutationConfig struct {
	MaxStacks      map[string]int `yaml:"max_stacks"`
	WidthPerStack  float64        `yaml:"width_per_stack"`
	SpeedPerStack  float64        `yaml:"speed_per_stack"`
	BunkerPerStack int            `yaml:"bunker_per_stack"`
}

// RunConfig defines run pacing.
type RunConfig struct {
	InterWaveDelay time.Duration `yaml:"inter_wave_delay"`
}
