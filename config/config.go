// Package config provides configuration loading and access for the arena.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/arena/input"
	"github.com/pthm-cable/arena/movement"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// ReservedKeys are used by the viewer for pause, overlay toggles, camera
// reset and clearing the inspector selection. They cannot be bound to a
// player.
var ReservedKeys = []input.Key{
	input.KeySpace, input.KeyEscape,
	input.KeyF1, input.KeyF2, input.KeyF3, input.KeyF4, input.KeyF5, input.KeyF6,
}

// Config holds all arena configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Arena     ArenaConfig     `yaml:"arena"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Players   []PlayerConfig  `yaml:"players"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// ArenaConfig holds arena dimensions in world units.
// The arena is centred on the origin with y pointing up.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`  // 0 = use screen width
	Height float64 `yaml:"height"` // 0 = use screen height
	Walls  bool    `yaml:"walls"`  // physics bodies collide with the arena edge
}

// PhysicsConfig holds engine parameters.
type PhysicsConfig struct {
	DT          float64 `yaml:"dt"`           // fixed step for headless runs
	SleepSpeed  float64 `yaml:"sleep_speed"`  // bodies slower than this may sleep
	SleepFrames int     `yaml:"sleep_frames"` // steps below sleep_speed before sleeping (0 = never)
	Restitution float64 `yaml:"restitution"`  // fraction of normal velocity kept at a wall
}

// PlayerConfig defines one controlled entity.
type PlayerConfig struct {
	Name           string            `yaml:"name"`
	Strategy       movement.Strategy `yaml:"strategy"`
	Keys           movement.Bindings `yaml:"keys"`
	DefaultSpeed   float64           `yaml:"default_speed"`   // 0 = strategy default
	SpeedIncrement float64           `yaml:"speed_increment"` // 0 = strategy default
	ResetVelocity  *bool             `yaml:"reset_velocity"`  // physics only; nil = true
	Size           float64           `yaml:"size"`            // side length of the square body
	Color          RGB               `yaml:"color"`
	Spawn          [2]float64        `yaml:"spawn"`
}

// Tuning returns the movement constants for the player, falling back to
// the strategy defaults for unset values.
func (p PlayerConfig) Tuning() movement.Tuning {
	t := movement.DirectTuning()
	if p.Strategy == movement.Physics {
		t = movement.PhysicsTuning()
	}
	if p.DefaultSpeed != 0 {
		t.DefaultSpeed = p.DefaultSpeed
	}
	if p.SpeedIncrement != 0 {
		t.SpeedIncrement = p.SpeedIncrement
	}
	if p.ResetVelocity != nil {
		t.ResetVelocity = *p.ResetVelocity
	}
	return t
}

// SpawnPoint returns the initial position as a vector.
func (p PlayerConfig) SpawnPoint() r2.Vec {
	return r2.Vec{X: p.Spawn[0], Y: p.Spawn[1]}
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // frames averaged per perf sample
	Trace               bool    `yaml:"trace"`                 // write a per-frame trace.csv
}

// RGB is an 8-bit colour written as "#rrggbb".
type RGB struct {
	R, G, B uint8
}

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(text)), "#")
	if len(s) != 6 {
		return fmt.Errorf("color %q: want #rrggbb", text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("color %q: %w", text, err)
	}
	c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return nil
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32   float32        // Screen.Width as float32
	ScreenH32   float32        // Screen.Height as float32
	ArenaW      float64        // effective arena width
	ArenaH      float64        // effective arena height
	Bounds      r2.Box         // arena rectangle centred on the origin
	PlayerIndex map[string]int // name -> index into Players
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. A players list in the
// file replaces the default players.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Parse(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Parse overlays YAML data onto cfg. Only fields present in data change.
func Parse(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the arena cannot run with.
func (c *Config) Validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("%w: physics.dt must be positive, got %v", ErrInvalid, c.Physics.DT)
	}
	if c.Arena.Width < 0 || c.Arena.Height < 0 {
		return fmt.Errorf("%w: arena size must not be negative", ErrInvalid)
	}
	if len(c.Players) == 0 {
		return fmt.Errorf("%w: no players", ErrInvalid)
	}

	names := make(map[string]struct{}, len(c.Players))
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("%w: player %d has no name", ErrInvalid, i)
		}
		if _, dup := names[p.Name]; dup {
			return fmt.Errorf("%w: duplicate player name %q", ErrInvalid, p.Name)
		}
		names[p.Name] = struct{}{}

		if p.Strategy != movement.Direct && p.Strategy != movement.Physics {
			return fmt.Errorf("%w: player %q: %v", ErrInvalid, p.Name, movement.ErrUnknownStrategy)
		}
		if p.Size < 0 {
			return fmt.Errorf("%w: player %q: negative size", ErrInvalid, p.Name)
		}
		if err := checkBindings(p.Keys); err != nil {
			return fmt.Errorf("%w: player %q: %v", ErrInvalid, p.Name, err)
		}
	}
	return nil
}

func checkBindings(b movement.Bindings) error {
	if b.Left == input.KeyNone || b.Right == input.KeyNone ||
		b.Down == input.KeyNone || b.Up == input.KeyNone {
		return errors.New("all four direction keys must be bound")
	}
	seen := make(map[input.Key]struct{})
	for _, k := range b.Keys() {
		if k == input.KeyNone {
			continue
		}
		if slices.Contains(ReservedKeys, k) {
			return fmt.Errorf("key %v is reserved", k)
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("key %v bound twice", k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Arena dimensions default to screen size if not specified
	w := c.Arena.Width
	if w == 0 {
		w = float64(c.Screen.Width)
	}
	h := c.Arena.Height
	if h == 0 {
		h = float64(c.Screen.Height)
	}
	c.Derived.ArenaW = w
	c.Derived.ArenaH = h
	c.Derived.Bounds = r2.Box{
		Min: r2.Vec{X: -w / 2, Y: -h / 2},
		Max: r2.Vec{X: w / 2, Y: h / 2},
	}

	for i := range c.Players {
		if c.Players[i].Size == 0 {
			c.Players[i].Size = 20
		}
	}

	c.Derived.PlayerIndex = make(map[string]int, len(c.Players))
	for i, p := range c.Players {
		c.Derived.PlayerIndex[p.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
