package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/input"
	"github.com/pthm-cable/arena/movement"
	"github.com/pthm-cable/arena/physics"
)

type fakeBodies struct {
	live       bool
	velocities []r2.Vec
	wakes      []bool
	poses      []physics.Pose
}

func (f *fakeBodies) Resolve(physics.Handle) bool { return f.live }

func (f *fakeBodies) SetLinearVelocity(_ physics.Handle, v r2.Vec, wake bool) bool {
	if !f.live {
		return false
	}
	f.velocities = append(f.velocities, v)
	f.wakes = append(f.wakes, wake)
	return true
}

func (f *fakeBodies) SetPose(_ physics.Handle, p physics.Pose, _ bool) bool {
	if !f.live {
		return false
	}
	f.poses = append(f.poses, p)
	return true
}

func spawnDirect(w *ecs.World, name string, b movement.Bindings) ecs.Entity {
	t := movement.DirectTuning()
	return ecs.NewMap5[components.Controls, components.Motion, components.Position, components.Name, components.Player](w).NewEntity(
		&components.Controls{Strategy: movement.Direct, Bindings: b, Tuning: t},
		&components.Motion{Direction: movement.Up, Speed: t.DefaultSpeed},
		&components.Position{},
		&components.Name{Value: name},
		&components.Player{},
	)
}

func spawnPhysics(w *ecs.World, name string, b movement.Bindings, h physics.Handle) ecs.Entity {
	t := movement.PhysicsTuning()
	return ecs.NewMap7[components.Controls, components.Motion, components.Position, components.Velocity, components.Body, components.Name, components.Player](w).NewEntity(
		&components.Controls{Strategy: movement.Physics, Bindings: b, Tuning: t},
		&components.Motion{Direction: movement.Up, Speed: t.DefaultSpeed},
		&components.Position{},
		&components.Velocity{},
		&components.Body{Handle: h, Size: 20},
		&components.Name{Value: name},
		&components.Player{},
	)
}

func resultFor(t *testing.T, results []MoveResult, name string) MoveResult {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no result for %q", name)
	return MoveResult{}
}

func TestDirectEntityMoves(t *testing.T) {
	w := ecs.NewWorld()
	e := spawnDirect(w, "bear", movement.ArrowBindings())
	sys := NewMovementSystem(w)

	results := sys.Update(input.Snapshot{}, 0.1, nil)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	pos := ecs.NewMap1[components.Position](w).Get(e)
	if math.Abs(pos.X) > 1e-9 || math.Abs(pos.Y-10) > 1e-9 {
		t.Errorf("expected position (0, 10), got (%v, %v)", pos.X, pos.Y)
	}
	if results[0].Position.Y != pos.Y {
		t.Errorf("expected result position to match component, got %v", results[0].Position)
	}
}

func TestDirectEntityTurnsAndBlocksReversal(t *testing.T) {
	w := ecs.NewWorld()
	e := spawnDirect(w, "bear", movement.ArrowBindings())
	sys := NewMovementSystem(w)
	motion := ecs.NewMap1[components.Motion](w)

	r := sys.Update(input.NewSnapshot([]input.Key{input.KeyDown}, nil), 0.1, nil)[0]
	if !r.Outcome.Blocked || motion.Get(e).Direction != movement.Up {
		t.Errorf("expected reversal to be blocked, got %+v", r.Outcome)
	}

	r = sys.Update(input.NewSnapshot([]input.Key{input.KeyRight}, nil), 0.1, nil)[0]
	if !r.Outcome.Turned || motion.Get(e).Direction != movement.Right {
		t.Errorf("expected turn to Right, got %v", motion.Get(e).Direction)
	}
}

func TestPhysicsVelocityReasserted(t *testing.T) {
	w := ecs.NewWorld()
	spawnPhysics(w, "rover", movement.WASDBindings(), physics.Handle{})
	sys := NewMovementSystem(w)
	bodies := &fakeBodies{live: true}

	for range 3 {
		sys.Update(input.Snapshot{}, 0.016, bodies)
	}

	if len(bodies.velocities) != 3 {
		t.Fatalf("expected a velocity command every frame, got %d", len(bodies.velocities))
	}
	for i, v := range bodies.velocities {
		if v != (r2.Vec{Y: movement.PhysicsDefaultSpeed}) {
			t.Errorf("frame %d: expected (0, %v), got %v", i, movement.PhysicsDefaultSpeed, v)
		}
		if !bodies.wakes[i] {
			t.Errorf("frame %d: expected wake flag", i)
		}
	}
}

func TestPhysicsResetThroughSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := spawnPhysics(w, "rover", movement.WASDBindings(), physics.Handle{})
	sys := NewMovementSystem(w)
	bodies := &fakeBodies{live: true}
	motion := ecs.NewMap1[components.Motion](w)
	motion.Get(e).Speed = 475

	r := sys.Update(input.NewSnapshot([]input.Key{input.KeyT}, nil), 0.016, bodies)[0]
	if !r.Outcome.Reset {
		t.Fatal("expected reset outcome")
	}
	if len(bodies.poses) != 1 || bodies.poses[0] != physics.Identity() {
		t.Errorf("expected one identity pose, got %v", bodies.poses)
	}
	if motion.Get(e).Speed != movement.PhysicsDefaultSpeed {
		t.Errorf("expected speed restored to %v, got %v", movement.PhysicsDefaultSpeed, motion.Get(e).Speed)
	}
	if r.Velocity != (r2.Vec{}) {
		t.Errorf("expected last commanded velocity to be zero, got %v", r.Velocity)
	}
}

func TestUnresolvedHandleSkipsWholeUpdate(t *testing.T) {
	engine := physics.NewEngine(physics.Config{})
	h := engine.AddBody(physics.BodyDesc{HalfExtent: 10})

	w := ecs.NewWorld()
	e := spawnPhysics(w, "rover", movement.WASDBindings(), h)
	sys := NewMovementSystem(w)
	motion := ecs.NewMap1[components.Motion](w)

	keys := input.NewSnapshot([]input.Key{input.KeyA}, []input.Key{input.KeyE})
	r := sys.Update(keys, 0.016, engine)[0]
	if !r.Skipped {
		t.Fatal("expected update to be skipped before the body is registered")
	}
	if m := motion.Get(e); m.Direction != movement.Up || m.Speed != movement.PhysicsDefaultSpeed {
		t.Errorf("expected motion untouched while skipped, got %+v", *m)
	}

	engine.Step(0.016)
	r = sys.Update(keys, 0.016, engine)[0]
	if r.Skipped {
		t.Fatal("expected body to resolve after a step")
	}
	if m := motion.Get(e); m.Direction != movement.Left {
		t.Errorf("expected Left after resolving, got %v", m.Direction)
	}
	b, _ := engine.Body(h)
	want := movement.PhysicsDefaultSpeed + movement.PhysicsSpeedIncrement
	if math.Abs(b.Velocity.X+want) > 1e-9 || b.Velocity.Y != 0 {
		t.Errorf("expected velocity (-%v, 0), got %v", want, b.Velocity)
	}

	engine.RemoveBody(h)
	if r = sys.Update(input.Snapshot{}, 0.016, engine)[0]; !r.Skipped {
		t.Error("expected a removed body to be skipped")
	}
}

func TestEntitiesAreIndependent(t *testing.T) {
	keys := input.NewSnapshot([]input.Key{input.KeyLeft, input.KeyD}, []input.Key{input.KeyPeriod})

	run := func(reverse bool) map[string]MoveResult {
		w := ecs.NewWorld()
		if reverse {
			spawnDirect(w, "wasd", movement.WASDBindings())
			spawnDirect(w, "arrows", movement.ArrowBindings())
		} else {
			spawnDirect(w, "arrows", movement.ArrowBindings())
			spawnDirect(w, "wasd", movement.WASDBindings())
		}
		sys := NewMovementSystem(w)
		out := make(map[string]MoveResult)
		for _, r := range sys.Update(keys, 0.1, nil) {
			r.Entity = ecs.Entity{}
			out[r.Name] = r
		}
		return out
	}

	a, b := run(false), run(true)
	for _, name := range []string{"arrows", "wasd"} {
		if a[name] != b[name] {
			t.Errorf("%s: result depends on creation order: %+v vs %+v", name, a[name], b[name])
		}
	}
	if a["arrows"].Direction != movement.Left || a["wasd"].Direction != movement.Right {
		t.Errorf("expected arrows Left and wasd Right, got %v and %v", a["arrows"].Direction, a["wasd"].Direction)
	}
	if a["arrows"].Speed != movement.DirectDefaultSpeed+movement.DirectSpeedIncrement {
		t.Errorf("expected only arrows to speed up, got %v", a["arrows"].Speed)
	}
	if a["wasd"].Speed != movement.DirectDefaultSpeed {
		t.Errorf("expected wasd speed unchanged, got %v", a["wasd"].Speed)
	}
}

func TestBodySync(t *testing.T) {
	engine := physics.NewEngine(physics.Config{})
	h := engine.AddBody(physics.BodyDesc{Velocity: r2.Vec{X: 10}})
	engine.Step(1)

	w := ecs.NewWorld()
	e := spawnPhysics(w, "rover", movement.WASDBindings(), h)
	sync := NewBodySyncSystem(w)
	pos := ecs.NewMap1[components.Position](w)
	vel := ecs.NewMap1[components.Velocity](w)

	if stale := sync.Update(engine); stale != 0 {
		t.Errorf("expected no stale bodies, got %d", stale)
	}
	if p := pos.Get(e); math.Abs(p.X-10) > 1e-9 {
		t.Errorf("expected synced x 10, got %v", p.X)
	}
	if v := vel.Get(e); v.X != 10 {
		t.Errorf("expected synced velocity 10, got %v", v.X)
	}

	engine.RemoveBody(h)
	if stale := sync.Update(engine); stale != 1 {
		t.Errorf("expected 1 stale body, got %d", stale)
	}
	if p := pos.Get(e); math.Abs(p.X-10) > 1e-9 {
		t.Errorf("expected last position kept, got %v", p.X)
	}
}

func TestRegistryOrder(t *testing.T) {
	reg := NewSystemRegistry()
	ids := reg.IDs()
	want := []string{PhaseInput, PhaseMovement, PhasePhysics, PhaseSync, PhaseTelemetry}
	if len(ids) != len(want) {
		t.Fatalf("expected %d phases, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("phase %d: expected %s, got %s", i, want[i], ids[i])
		}
	}
	if reg.GetName("unknown") != "unknown" {
		t.Error("expected unknown IDs to fall back to themselves")
	}
}
