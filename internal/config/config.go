package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/plus3/blockfall/engine"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	LogLevel        string        `yaml:"log-level" env:"BLOCKFALL_LOG_LEVEL" env-default:"info"`
	TickInterval    time.Duration `yaml:"tick-interval" env:"BLOCKFALL_TICK" env-default:"100ms"`
	Seed            uint64        `yaml:"seed" env:"BLOCKFALL_SEED" env-default:"0"`
	Spawn           Spawn         `yaml:"spawn"`
	Collision       string        `yaml:"collision" env:"BLOCKFALL_COLLISION" env-default:"edge"`
	HorizontalMoves bool          `yaml:"horizontal-moves" env:"BLOCKFALL_MOVES" env-default:"false"`
	Window          Window        `yaml:"window"`
	Terminal        Terminal      `yaml:"terminal"`
}

type Spawn struct {
	X int `yaml:"x" env:"BLOCKFALL_SPAWN_X" env-default:"3"`
	Y int `yaml:"y" env:"BLOCKFALL_SPAWN_Y" env-default:"0"`
}

type Window struct {
	Title    string `yaml:"title" env:"BLOCKFALL_TITLE" env-default:"blockfall"`
	CellSize int    `yaml:"cell-size" env:"BLOCKFALL_CELL_SIZE" env-default:"16"`
	Margin   int    `yaml:"margin" env:"BLOCKFALL_MARGIN" env-default:"20"`
	Debug    bool   `yaml:"debug" env:"BLOCKFALL_DEBUG_UI" env-default:"false"`
}

type Terminal struct {
	FrameRate int `yaml:"frame-rate" env:"BLOCKFALL_FPS" env-default:"60"`
}

// Load reads configuration from the yaml file at path, with environment
// variables taking precedence. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that the loader cannot express.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick-interval must be positive, got %s", ErrInvalid, c.TickInterval)
	}
	if _, err := c.CollisionMode(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log-level: %v", ErrInvalid, err)
	}
	if c.Window.CellSize < 4 {
		return fmt.Errorf("%w: window cell-size must be at least 4, got %d", ErrInvalid, c.Window.CellSize)
	}
	if c.Window.Margin < 0 {
		return fmt.Errorf("%w: window margin must not be negative, got %d", ErrInvalid, c.Window.Margin)
	}
	if c.Terminal.FrameRate <= 0 {
		return fmt.Errorf("%w: terminal frame-rate must be positive, got %d", ErrInvalid, c.Terminal.FrameRate)
	}
	return nil
}

// CollisionMode maps the collision setting onto the engine's modes.
func (c *Config) CollisionMode() (engine.CollisionMode, error) {
	switch strings.ToLower(c.Collision) {
	case "", "edge":
		return engine.EdgeCollision, nil
	case "footprint":
		return engine.FootprintCollision, nil
	}
	return 0, fmt.Errorf("%w: collision must be edge or footprint, got %q", ErrInvalid, c.Collision)
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// EngineOptions converts the configuration into engine options. A zero seed
// leaves piece selection unseeded.
func (c *Config) EngineOptions(logger *log.Logger) []engine.Option {
	mode, _ := c.CollisionMode()
	opts := []engine.Option{
		engine.WithTickInterval(c.TickInterval),
		engine.WithSpawn(engine.Position{X: c.Spawn.X, Y: c.Spawn.Y}),
		engine.WithCollisionMode(mode),
		engine.WithHorizontalMoves(c.HorizontalMoves),
	}
	if c.Seed != 0 {
		opts = append(opts, engine.WithSeed(c.Seed))
	}
	if logger != nil {
		opts = append(opts, engine.WithLogger(logger))
	}
	return opts
}
