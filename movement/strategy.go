package movement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm-cable/arena/input"
)

// ErrUnknownStrategy is returned when parsing an invalid strategy name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy selects how motion is applied. It is fixed when the entity is
// created.
type Strategy uint8

const (
	// Direct integrates position from speed and elapsed time.
	Direct Strategy = iota
	// Physics commands a linear velocity on an engine-owned body.
	Physics
)

func (s Strategy) String() string {
	switch s {
	case Direct:
		return "direct"
	case Physics:
		return "physics"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// ParseStrategy parses "direct" or "physics".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "direct":
		return Direct, nil
	case "physics":
		return Physics, nil
	}
	return Direct, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Bindings are the keys one entity listens to.
type Bindings struct {
	Left      input.Key `yaml:"left"`
	Right     input.Key `yaml:"right"`
	Down      input.Key `yaml:"down"`
	Up        input.Key `yaml:"up"`
	SpeedUp   input.Key `yaml:"speed_up"`
	SpeedDown input.Key `yaml:"speed_down"`
	Reset     input.Key `yaml:"reset"`
}

// Keys returns every bound key, unbound ones (KeyNone) included.
func (b Bindings) Keys() []input.Key {
	return []input.Key{b.Left, b.Right, b.Down, b.Up, b.SpeedUp, b.SpeedDown, b.Reset}
}

// ArrowBindings binds the arrow keys with period/comma for speed and R for reset.
func ArrowBindings() Bindings {
	return Bindings{
		Left:      input.KeyLeft,
		Right:     input.KeyRight,
		Down:      input.KeyDown,
		Up:        input.KeyUp,
		SpeedUp:   input.KeyPeriod,
		SpeedDown: input.KeyComma,
		Reset:     input.KeyR,
	}
}

// WASDBindings binds W/A/S/D with E/Q for speed and T for reset.
func WASDBindings() Bindings {
	return Bindings{
		Left:      input.KeyA,
		Right:     input.KeyD,
		Down:      input.KeyS,
		Up:        input.KeyW,
		SpeedUp:   input.KeyE,
		SpeedDown: input.KeyQ,
		Reset:     input.KeyT,
	}
}

// Tuning holds the per-entity numeric constants.
type Tuning struct {
	DefaultSpeed   float64 // initial speed and the speed restored on reset
	SpeedIncrement float64 // added or removed per speed key press
	// ResetVelocity also zeroes the body velocity when a physics entity
	// resets. Ignored for direct entities.
	ResetVelocity bool
}

// Default tunings for the two strategies.
const (
	DirectDefaultSpeed    = 100.0
	DirectSpeedIncrement  = 10.0
	PhysicsDefaultSpeed   = 200.0
	PhysicsSpeedIncrement = 25.0
)

// DirectTuning returns the default tuning for directly integrated entities.
func DirectTuning() Tuning {
	return Tuning{DefaultSpeed: DirectDefaultSpeed, SpeedIncrement: DirectSpeedIncrement}
}

// PhysicsTuning returns the default tuning for physics-driven entities.
func PhysicsTuning() Tuning {
	return Tuning{DefaultSpeed: PhysicsDefaultSpeed, SpeedIncrement: PhysicsSpeedIncrement, ResetVelocity: true}
}
