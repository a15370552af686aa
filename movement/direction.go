// Package movement implements the per-frame movement pipeline for
// player-controlled arena entities: direction resolution, the no-reverse
// turn guard, discrete speed steps, motion and reset.
package movement

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrUnknownDirection is returned when parsing an invalid direction name.
var ErrUnknownDirection = errors.New("unknown direction")

// Direction is one of the four compass directions.
type Direction uint8

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// Axis returns the unit vector for d. The arena is y-up.
func (d Direction) Axis() r2.Vec {
	switch d {
	case Left:
		return r2.Vec{X: -1}
	case Right:
		return r2.Vec{X: 1}
	case Up:
		return r2.Vec{Y: 1}
	default:
		return r2.Vec{Y: -1}
	}
}

// Perpendicular reports whether d and o lie on different axes.
func (d Direction) Perpendicular(o Direction) bool {
	return d != o && d != o.Opposite()
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ParseDirection parses "left", "up", "right" or "down".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	}
	return Up, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
