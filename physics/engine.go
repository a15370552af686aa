package physics

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Config holds engine parameters.
type Config struct {
	Bounds      r2.Box  // arena walls; a zero box disables walls
	SleepSpeed  float64 // bodies slower than this start counting towards sleep
	SleepFrames int     // steps below SleepSpeed before a body sleeps (0 = never)
	Restitution float64 // fraction of normal velocity kept on wall contact (0 = stop)
}

// BodyDesc describes a body to create.
type BodyDesc struct {
	Pose       Pose
	Velocity   r2.Vec
	HalfExtent float64 // half the side length of the square collider
}

// BodySnapshot is a read-only copy of a body's state.
type BodySnapshot struct {
	Pose     Pose
	Velocity r2.Vec
	Asleep   bool
	Contact  bool // touched a wall during the last step
}

type body struct {
	pose       Pose
	velocity   r2.Vec
	halfExtent float64
	asleep     bool
	contact    bool
	idleSteps  int
}

// pending marks bodies created since the last step.
type pending struct{}

// Engine owns the body set. Bodies live in a private ark world and are
// addressed by their entity handle.
type Engine struct {
	world *ecs.World
	cfg   Config

	bodyMapper *ecs.Map2[body, pending]
	bodyMap    *ecs.Map[body]
	pendingMap *ecs.Map[pending]
	liveFilter *ecs.Filter1[body]
	newFilter  *ecs.Filter1[pending]
	promoteBuf []ecs.Entity
	steps      int64
}

// NewEngine creates an empty engine.
func NewEngine(cfg Config) *Engine {
	world := ecs.NewWorld()
	return &Engine{
		world:      world,
		cfg:        cfg,
		bodyMapper: ecs.NewMap2[body, pending](world),
		bodyMap:    ecs.NewMap[body](world),
		pendingMap: ecs.NewMap[pending](world),
		liveFilter: ecs.NewFilter1[body](world).Without(ecs.C[pending]()),
		newFilter:  ecs.NewFilter1[pending](world),
	}
}

// AddBody creates a body. The handle resolves only after the next Step,
// mirroring engines that register new bodies at the start of a step.
func (e *Engine) AddBody(desc BodyDesc) Handle {
	b := body{
		pose:       desc.Pose,
		velocity:   desc.Velocity,
		halfExtent: desc.HalfExtent,
	}
	return e.bodyMapper.NewEntity(&b, &pending{})
}

// RemoveBody deletes a body. Stale handles are ignored.
func (e *Engine) RemoveBody(h Handle) {
	if !e.world.Alive(h) {
		return
	}
	e.world.RemoveEntity(h)
}

// Resolve reports whether h addresses a live, registered body.
func (e *Engine) Resolve(h Handle) bool {
	return e.lookup(h) != nil
}

func (e *Engine) lookup(h Handle) *body {
	if h.IsZero() || !e.world.Alive(h) {
		return nil
	}
	if !e.bodyMap.Has(h) || e.pendingMap.Has(h) {
		return nil
	}
	return e.bodyMap.Get(h)
}

// SetLinearVelocity implements Commander.
func (e *Engine) SetLinearVelocity(h Handle, v r2.Vec, wake bool) bool {
	b := e.lookup(h)
	if b == nil {
		return false
	}
	b.velocity = v
	if wake {
		b.wake()
	}
	return true
}

// SetPose implements Commander.
func (e *Engine) SetPose(h Handle, p Pose, wake bool) bool {
	b := e.lookup(h)
	if b == nil {
		return false
	}
	b.pose = p
	if wake {
		b.wake()
	}
	return true
}

// Body returns a copy of the body's state.
func (e *Engine) Body(h Handle) (BodySnapshot, bool) {
	b := e.lookup(h)
	if b == nil {
		return BodySnapshot{}, false
	}
	return BodySnapshot{
		Pose:     b.pose,
		Velocity: b.velocity,
		Asleep:   b.asleep,
		Contact:  b.contact,
	}, true
}

// Steps returns the number of completed steps.
func (e *Engine) Steps() int64 {
	return e.steps
}

// Step registers pending bodies, then integrates awake bodies over dt
// and resolves wall contacts.
func (e *Engine) Step(dt float64) {
	e.promote()

	query := e.liveFilter.Query()
	for query.Next() {
		b := query.Get()
		b.contact = false
		if b.asleep {
			continue
		}
		b.pose.Position = r2.Add(b.pose.Position, r2.Scale(dt, b.velocity))
		e.collideWalls(b)
		e.updateSleep(b)
	}
	e.steps++
}

func (e *Engine) promote() {
	e.promoteBuf = e.promoteBuf[:0]
	query := e.newFilter.Query()
	for query.Next() {
		e.promoteBuf = append(e.promoteBuf, query.Entity())
	}
	for _, ent := range e.promoteBuf {
		e.pendingMap.Remove(ent)
	}
}

func (e *Engine) collideWalls(b *body) {
	bounds := e.cfg.Bounds
	if bounds.Min == bounds.Max {
		return
	}
	minX, maxX := bounds.Min.X+b.halfExtent, bounds.Max.X-b.halfExtent
	minY, maxY := bounds.Min.Y+b.halfExtent, bounds.Max.Y-b.halfExtent
	p := &b.pose.Position

	if p.X < minX {
		p.X = minX
		b.velocity.X = -b.velocity.X * e.cfg.Restitution
		b.contact = true
	} else if p.X > maxX {
		p.X = maxX
		b.velocity.X = -b.velocity.X * e.cfg.Restitution
		b.contact = true
	}
	if p.Y < minY {
		p.Y = minY
		b.velocity.Y = -b.velocity.Y * e.cfg.Restitution
		b.contact = true
	} else if p.Y > maxY {
		p.Y = maxY
		b.velocity.Y = -b.velocity.Y * e.cfg.Restitution
		b.contact = true
	}
}

func (e *Engine) updateSleep(b *body) {
	if e.cfg.SleepFrames <= 0 {
		return
	}
	if r2.Norm(b.velocity) < e.cfg.SleepSpeed {
		b.idleSteps++
	} else {
		b.idleSteps = 0
	}
	if b.idleSteps >= e.cfg.SleepFrames {
		b.asleep = true
		b.velocity = r2.Vec{}
	}
}

func (b *body) wake() {
	b.asleep = false
	b.idleSteps = 0
}
