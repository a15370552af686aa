package physics

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func arenaConfig() Config {
	return Config{
		Bounds: r2.Box{Min: r2.Vec{X: -100, Y: -100}, Max: r2.Vec{X: 100, Y: 100}},
	}
}

func TestPendingBodyResolvesAfterStep(t *testing.T) {
	e := NewEngine(arenaConfig())
	h := e.AddBody(BodyDesc{HalfExtent: 5})

	require.False(t, e.Resolve(h), "body must not resolve before it is registered")
	require.False(t, e.SetLinearVelocity(h, r2.Vec{X: 1}, true))
	_, ok := e.Body(h)
	require.False(t, ok)

	e.Step(0.1)
	require.True(t, e.Resolve(h))
	require.EqualValues(t, 1, e.Steps())
}

func TestPendingBodyDoesNotMoveOnRegistrationStep(t *testing.T) {
	e := NewEngine(Config{})
	h := e.AddBody(BodyDesc{Velocity: r2.Vec{X: 10}})

	e.Step(1)
	b, ok := e.Body(h)
	require.True(t, ok)
	require.InDelta(t, 10, b.Pose.Position.X, 1e-9, "registered bodies integrate in the step that promotes them")
}

func TestRemovedHandleIsStale(t *testing.T) {
	e := NewEngine(arenaConfig())
	h := e.AddBody(BodyDesc{})
	e.Step(0.1)
	require.True(t, e.Resolve(h))

	e.RemoveBody(h)
	require.False(t, e.Resolve(h))
	require.False(t, e.SetPose(h, Identity(), true))

	// removing twice is a no-op
	e.RemoveBody(h)

	var zero Handle
	require.False(t, e.Resolve(zero))
}

func TestIntegratesVelocity(t *testing.T) {
	e := NewEngine(Config{})
	h := e.AddBody(BodyDesc{})
	e.Step(0.1)

	require.True(t, e.SetLinearVelocity(h, r2.Vec{X: 0, Y: 200}, true))
	for range 10 {
		e.Step(0.1)
	}
	b, ok := e.Body(h)
	require.True(t, ok)
	require.InDelta(t, 0, b.Pose.Position.X, 1e-9)
	require.InDelta(t, 200, b.Pose.Position.Y, 1e-9)
	require.Equal(t, r2.Vec{Y: 200}, b.Velocity)
}

func TestWallContact(t *testing.T) {
	e := NewEngine(arenaConfig())
	h := e.AddBody(BodyDesc{HalfExtent: 5, Velocity: r2.Vec{X: 1000}})
	e.Step(0) // register

	e.Step(1)
	b, _ := e.Body(h)
	require.InDelta(t, 95, b.Pose.Position.X, 1e-9, "clamped to wall minus half extent")
	require.True(t, b.Contact)
	require.InDelta(t, 0, b.Velocity.X, 1e-9, "zero restitution stops the body")
}

func TestWallRestitution(t *testing.T) {
	cfg := arenaConfig()
	cfg.Restitution = 0.5
	e := NewEngine(cfg)
	h := e.AddBody(BodyDesc{Velocity: r2.Vec{Y: -400}})
	e.Step(0)

	e.Step(1)
	b, _ := e.Body(h)
	require.InDelta(t, -100, b.Pose.Position.Y, 1e-9)
	require.InDelta(t, 200, b.Velocity.Y, 1e-9)
}

func TestSleepAndWake(t *testing.T) {
	cfg := Config{SleepSpeed: 1, SleepFrames: 3}
	e := NewEngine(cfg)
	h := e.AddBody(BodyDesc{Velocity: r2.Vec{X: 0.5}})
	e.Step(0)

	for range 3 {
		e.Step(0.1)
	}
	b, _ := e.Body(h)
	require.True(t, b.Asleep)
	require.Equal(t, r2.Vec{}, b.Velocity)

	// a command without wake keeps the body asleep
	require.True(t, e.SetLinearVelocity(h, r2.Vec{X: 50}, false))
	before := b.Pose.Position
	e.Step(1)
	b, _ = e.Body(h)
	require.True(t, b.Asleep)
	require.Equal(t, before, b.Pose.Position)
	require.Equal(t, r2.Vec{X: 50}, b.Velocity)

	require.True(t, e.SetLinearVelocity(h, r2.Vec{X: 50}, true))
	e.Step(1)
	b, _ = e.Body(h)
	require.False(t, b.Asleep)
	require.InDelta(t, before.X+50, b.Pose.Position.X, 1e-9)
}

func TestSetPoseTeleports(t *testing.T) {
	e := NewEngine(arenaConfig())
	h := e.AddBody(BodyDesc{Pose: Pose{Position: r2.Vec{X: 30, Y: -20}, Rotation: 1}})
	e.Step(0)

	require.True(t, e.SetPose(h, Identity(), true))
	b, _ := e.Body(h)
	require.Equal(t, Identity(), b.Pose)
}

type recorder struct {
	velocities []r2.Vec
	poses      []Pose
	live       bool
}

func (r *recorder) Resolve(Handle) bool { return r.live }

func (r *recorder) SetLinearVelocity(_ Handle, v r2.Vec, _ bool) bool {
	r.velocities = append(r.velocities, v)
	return r.live
}

func (r *recorder) SetPose(_ Handle, p Pose, _ bool) bool {
	r.poses = append(r.poses, p)
	return r.live
}

func TestApply(t *testing.T) {
	rec := &recorder{live: true}
	var h Handle

	require.True(t, Apply(rec, h, VelocityCommand(r2.Vec{X: 3}, true)))
	require.True(t, Apply(rec, h, PoseCommand(Identity(), true)))
	require.Equal(t, []r2.Vec{{X: 3}}, rec.velocities)
	require.Len(t, rec.poses, 1)

	require.False(t, Apply(rec, h, Command{Kind: CommandKind(99)}))

	rec.live = false
	require.False(t, Apply(rec, h, VelocityCommand(r2.Vec{}, true)))
}

func TestCommandKindString(t *testing.T) {
	require.Equal(t, "set_linear_velocity", SetLinearVelocity.String())
	require.Equal(t, "set_pose", SetPose.String())
	require.Equal(t, "command(7)", CommandKind(7).String())
}
