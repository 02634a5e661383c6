package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/jumper.yaml
var defaultJumperYAML []byte

// DefaultJumperConfig returns the default jumper configuration.
func DefaultJumperConfig() JumperConfig {
	return JumperConfig{
		World: WorldConfig{
			Width:  1000,
			Height: 800,
		},
		Physics: PhysicsConfig{
			Gravity:       0.5,
			Accel:         0.5,
			Deccel:        0.6,
			StartSpeed:    5,
			MaxSpeedX:     17,
			MaxSpeedY:     100,
			JumpForce:     17,
			FallThreshold: 0.5,
		},
		Player: PlayerConfig{
			Width:  45,
			Height: 45,
		},
		Platforms: PlatformConfig{
			Width:           150,
			Height:          10,
			GapMin:          50,
			GapMax:          150,
			MaxCount:        15,
			BreakableChance: 12,
			BonusChance:     5,
		},
		Bonus: BonusConfig{
			Width:       40,
			Height:      20,
			JumpForce:   50,
			AbilityGain: 10,
		},
		Ability: AbilityConfig{
			Max:             100,
			Cost:            3,
			RegenTicks:      30,
			GravityFactor:   0.5,
			SampleEvery:     5,
			FingerThreshold: 5,
		},
		Camera: CameraConfig{
			Lerp:       0.25,
			DeathDepth: 2,
		},
		Scoring: ScoringConfig{
			UnitsPerPoint: 50,
		},
		CountdownTicks: 90,
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				GapShift:       0.5,
				BreakableBoost: 6,
			},
		},
		Multiplayer: MultiplayerConfig{
			Transport:     "mqtt",
			Broker:        "tcp://mqtt.eclipseprojects.io:1883",
			Topic:         "skyjump/relay",
			QoS:           1,
			RetryInterval: 2 * time.Second,
			MaxRetries:    15,
		},
		Sensor: SensorConfig{
			Source:       "none",
			Broker:       "tcp://localhost:1883",
			Topic:        "skyjump/fingers",
			PollInterval: 50 * time.Millisecond,
			MaxAge:       500 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.4,
		},
		Remote: RemoteConfig{
			Enabled:      false,
			Broker:       "tcp://localhost:1883",
			ControlTopic: "skyjump/control",
			ScoreTopic:   "skyjump/scores",
			HoldTicks:    12,
		},
	}
}
