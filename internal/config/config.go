// Package config provides YAML-based game configuration loading and
// difficulty management for skyjump.
package config

import "time"

// JumperConfig contains all configuration for the endless jumper.
// Distances are in world units; the world is World.Width x World.Height
// units and is scaled onto the terminal at render time.
type JumperConfig struct {
	World          WorldConfig       `yaml:"world"`
	Physics        PhysicsConfig     `yaml:"physics"`
	Player         PlayerConfig      `yaml:"player"`
	Platforms      PlatformConfig    `yaml:"platforms"`
	Bonus          BonusConfig       `yaml:"bonus"`
	Ability        AbilityConfig     `yaml:"ability"`
	Camera         CameraConfig      `yaml:"camera"`
	Scoring        ScoringConfig     `yaml:"scoring"`
	CountdownTicks int               `yaml:"countdown_ticks"`
	Difficulty     DifficultyConfig  `yaml:"difficulty"`
	Multiplayer    MultiplayerConfig `yaml:"multiplayer"`
	Sensor         SensorConfig      `yaml:"sensor"`
	Audio          AudioConfig       `yaml:"audio"`
	Remote         RemoteConfig      `yaml:"remote"`
}

// WorldConfig defines the size of the visible play area.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines the player's motion parameters.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	Accel         float64 `yaml:"accel"`
	Deccel        float64 `yaml:"deccel"`
	StartSpeed    float64 `yaml:"start_speed"`
	MaxSpeedX     float64 `yaml:"max_speed_x"`
	MaxSpeedY     float64 `yaml:"max_speed_y"`
	JumpForce     float64 `yaml:"jump_force"`
	FallThreshold float64 `yaml:"fall_threshold"` // vel.y must exceed this to land
}

// PlayerConfig defines the player box.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlatformConfig defines platform generation parameters.
type PlatformConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	GapMin          float64 `yaml:"gap_min"`
	GapMax          float64 `yaml:"gap_max"`
	MaxCount        int     `yaml:"max_count"`
	BreakableChance int     `yaml:"breakable_chance"` // 1 in N
	BonusChance     int     `yaml:"bonus_chance"`     // 1 in N
}

// BonusConfig defines the spring attached to bonus platforms.
type BonusConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	JumpForce   float64 `yaml:"jump_force"`
	AbilityGain float64 `yaml:"ability_gain"`
}

// AbilityConfig defines the float ability resource.
type AbilityConfig struct {
	Max             float64 `yaml:"max"`
	Cost            float64 `yaml:"cost"`        // per sampled tick while active
	RegenTicks      int     `yaml:"regen_ticks"` // ticks to regenerate one unit
	GravityFactor   float64 `yaml:"gravity_factor"`
	SampleEvery     int     `yaml:"sample_every"`
	FingerThreshold int     `yaml:"finger_threshold"`
}

// Regen returns the amount regenerated per inactive tick.
func (a AbilityConfig) Regen() float64 {
	if a.RegenTicks <= 0 {
		return 0
	}
	return 1 / float64(a.RegenTicks)
}

// CameraConfig defines how the camera follows the player.
type CameraConfig struct {
	Lerp float64 `yaml:"lerp"` // fraction of the remaining distance covered per tick
	// DeathDepth is how many screen heights below the top of the view the
	// player may fall before dying.
	DeathDepth float64 `yaml:"death_depth"`
}

// ScoringConfig defines how climbed height maps to score.
type ScoringConfig struct {
	UnitsPerPoint float64 `yaml:"units_per_point"`
}

// MultiplayerConfig defines the relay race transport and handshake.
type MultiplayerConfig struct {
	Transport     string        `yaml:"transport"` // "mqtt", "ws" or "memory"
	Broker        string        `yaml:"broker"`
	Topic         string        `yaml:"topic"`
	QoS           byte          `yaml:"qos"`
	RetryInterval time.Duration `yaml:"retry_interval"`
	MaxRetries    int           `yaml:"max_retries"`
}

// SensorConfig defines the finger count source.
type SensorConfig struct {
	Source       string        `yaml:"source"` // "none" or "bus"
	Broker       string        `yaml:"broker"`
	Topic        string        `yaml:"topic"`
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxAge       time.Duration `yaml:"max_age"`
}

// RemoteConfig defines the optional remote control link: steering commands
// arrive on ControlTopic and the running score is published to ScoreTopic.
type RemoteConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Broker       string `yaml:"broker"`
	ControlTopic string `yaml:"control_topic"`
	ScoreTopic   string `yaml:"score_topic"`
	// HoldTicks is how long a remote steering command stays held.
	HoldTicks int `yaml:"hold_ticks"`
}

// AudioConfig defines sound effect playback.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	// GapShift is the fraction of the gap range the sampling window moves
	// toward GapMax at full difficulty.
	GapShift float64 `yaml:"gap_shift"`
	// BreakableBoost is subtracted from the breakable 1-in-N chance at full
	// difficulty.
	BreakableBoost int `yaml:"breakable_boost"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
