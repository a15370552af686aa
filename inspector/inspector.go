package inspector

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/arena/components"
)

// pickTolerance widens the hit square so small bodies stay clickable.
const pickTolerance = 4.0

// Section is a titled group of fields, one per component.
type Section struct {
	Title  string
	Fields []Field
}

// Inspector tracks the selected entity and describes its components.
type Inspector struct {
	world    *ecs.World
	selected ecs.Entity

	pickFilter *ecs.Filter2[components.Position, components.Appearance]
	nameMap    *ecs.Map[components.Name]
	controlMap *ecs.Map[components.Controls]
	motionMap  *ecs.Map[components.Motion]
	posMap     *ecs.Map[components.Position]
	velMap     *ecs.Map[components.Velocity]
	bodyMap    *ecs.Map[components.Body]
}

// New creates an inspector over the given world with nothing selected.
func New(w *ecs.World) *Inspector {
	return &Inspector{
		world:      w,
		pickFilter: ecs.NewFilter2[components.Position, components.Appearance](w).With(ecs.C[components.Player]()),
		nameMap:    ecs.NewMap[components.Name](w),
		controlMap: ecs.NewMap[components.Controls](w),
		motionMap:  ecs.NewMap[components.Motion](w),
		posMap:     ecs.NewMap[components.Position](w),
		velMap:     ecs.NewMap[components.Velocity](w),
		bodyMap:    ecs.NewMap[components.Body](w),
	}
}

// Pick selects the player whose square contains p, preferring the one
// whose centre is closest. It reports whether anything was selected; a
// miss keeps the current selection.
func (ins *Inspector) Pick(p r2.Vec) bool {
	var best ecs.Entity
	bestDist := -1.0

	query := ins.pickFilter.Query()
	for query.Next() {
		pos, app := query.Get()
		half := app.Size/2 + pickTolerance
		d := r2.Sub(p, pos.Vec())
		if d.X < -half || d.X > half || d.Y < -half || d.Y > half {
			continue
		}
		dist := r2.Norm(d)
		if bestDist < 0 || dist < bestDist {
			best = query.Entity()
			bestDist = dist
		}
	}
	if bestDist < 0 {
		return false
	}
	ins.selected = best
	return true
}

// Select selects e directly.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.selected = ecs.Entity{}
}

// Selected returns the selected entity if it is still alive.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	if ins.selected.IsZero() || !ins.world.Alive(ins.selected) {
		return ecs.Entity{}, false
	}
	return ins.selected, true
}

// Title returns the name of the selected entity.
func (ins *Inspector) Title() string {
	e, ok := ins.Selected()
	if !ok {
		return ""
	}
	if ins.nameMap.Has(e) {
		return ins.nameMap.Get(e).Value
	}
	return "entity"
}

// Sections describes the components of the selected entity in a fixed
// order. Components the entity lacks are left out.
func (ins *Inspector) Sections() []Section {
	e, ok := ins.Selected()
	if !ok {
		return nil
	}

	var out []Section
	out = appendSection(out, "Controls", ins.controlMap, e)
	out = appendSection(out, "Motion", ins.motionMap, e)
	out = appendSection(out, "Position", ins.posMap, e)
	out = appendSection(out, "Velocity", ins.velMap, e)
	out = appendSection(out, "Body", ins.bodyMap, e)
	return out
}

func appendSection[T any](out []Section, title string, m *ecs.Map[T], e ecs.Entity) []Section {
	if !m.Has(e) {
		return out
	}
	if fields := ExtractFields(m.Get(e)); len(fields) > 0 {
		out = append(out, Section{Title: title, Fields: fields})
	}
	return out
}
