// Package physics is a small rigid-body engine for the arena. The movement
// core never owns body state; it only issues commands against handles.
package physics

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Handle is a non-owning reference to a body in an Engine.
// It may be stale or not yet registered; resolve it every frame.
type Handle = ecs.Entity

// Pose is a 2D position plus rotation (radians).
type Pose struct {
	Position r2.Vec
	Rotation float64
}

// Identity returns the pose at the origin with no rotation.
func Identity() Pose {
	return Pose{}
}

// CommandKind selects what a Command does to a body.
type CommandKind uint8

const (
	// SetLinearVelocity overwrites the body's linear velocity.
	SetLinearVelocity CommandKind = iota
	// SetPose teleports the body to a pose.
	SetPose
)

func (k CommandKind) String() string {
	switch k {
	case SetLinearVelocity:
		return "set_linear_velocity"
	case SetPose:
		return "set_pose"
	default:
		return fmt.Sprintf("command(%d)", uint8(k))
	}
}

// Command is an instruction for a single body.
type Command struct {
	Kind     CommandKind
	Velocity r2.Vec // used by SetLinearVelocity
	Pose     Pose   // used by SetPose
	Wake     bool   // wake the body if it is asleep
}

// VelocityCommand builds a SetLinearVelocity command.
func VelocityCommand(v r2.Vec, wake bool) Command {
	return Command{Kind: SetLinearVelocity, Velocity: v, Wake: wake}
}

// PoseCommand builds a SetPose command.
func PoseCommand(p Pose, wake bool) Command {
	return Command{Kind: SetPose, Pose: p, Wake: wake}
}

// Commander is the command surface of a body store.
// Every method reports false when the handle does not resolve.
type Commander interface {
	Resolve(h Handle) bool
	SetLinearVelocity(h Handle, v r2.Vec, wake bool) bool
	SetPose(h Handle, p Pose, wake bool) bool
}

// Apply issues cmd against h. It returns false if the handle is stale.
func Apply(c Commander, h Handle, cmd Command) bool {
	switch cmd.Kind {
	case SetLinearVelocity:
		return c.SetLinearVelocity(h, cmd.Velocity, cmd.Wake)
	case SetPose:
		return c.SetPose(h, cmd.Pose, cmd.Wake)
	default:
		return false
	}
}
