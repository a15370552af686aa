package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/movement"
	"github.com/pthm-cable/arena/physics"
)

// spawnPlayers creates one entity per configured player.
func (g *Game) spawnPlayers() {
	for _, p := range g.cfg.Players {
		g.spawnPlayer(p)
		slog.Info("player spawned",
			"name", p.Name,
			"strategy", p.Strategy.String(),
			"spawn", p.Spawn,
		)
	}
}

// spawnPlayer creates a controlled entity. Physics players also get a
// body, which becomes resolvable after the next engine step.
func (g *Game) spawnPlayer(p config.PlayerConfig) ecs.Entity {
	mv := movement.NewMover(p.Strategy, p.Keys, p.Tuning())

	name := components.Name{Value: p.Name}
	ctl := components.Controls{Strategy: mv.Strategy, Bindings: mv.Bindings, Tuning: mv.Tuning}
	mot := components.Motion{Direction: mv.Direction, Speed: mv.Speed}
	pos := components.PositionOf(p.SpawnPoint())
	vel := components.Velocity{}
	app := components.Appearance{Size: p.Size, R: p.Color.R, G: p.Color.G, B: p.Color.B}

	if p.Strategy == movement.Direct {
		mapper := ecs.NewMap7[components.Player, components.Name, components.Controls,
			components.Motion, components.Position, components.Velocity, components.Appearance](g.world)
		return mapper.NewEntity(&components.Player{}, &name, &ctl, &mot, &pos, &vel, &app)
	}

	handle := g.engine.AddBody(physics.BodyDesc{
		Pose:       physics.Pose{Position: p.SpawnPoint()},
		HalfExtent: p.Size / 2,
	})
	body := components.Body{Handle: handle, Size: p.Size}
	mapper := ecs.NewMap8[components.Player, components.Name, components.Controls,
		components.Motion, components.Position, components.Velocity, components.Appearance, components.Body](g.world)
	return mapper.NewEntity(&components.Player{}, &name, &ctl, &mot, &pos, &vel, &app, &body)
}
