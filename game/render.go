package game

import (
	"fmt"
	"math"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/arena/movement"
	"github.com/pthm-cable/arena/ui"
)

// gridSpacing is the world distance between grid lines.
const gridSpacing = 100.0

var (
	colorBackground = rl.Color{R: 14, G: 16, B: 20, A: 255}
	colorArena      = rl.Color{R: 24, G: 28, B: 34, A: 255}
	colorWall       = rl.Color{R: 90, G: 100, B: 110, A: 255}
	colorGrid       = rl.Color{R: 40, G: 46, B: 54, A: 255}
	colorAxis       = rl.Color{R: 70, G: 80, B: 90, A: 255}
	colorSelection  = rl.Color{R: 255, G: 220, B: 120, A: 255}
)

// Draw renders the arena, players and UI.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	g.drawArena()
	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.drawGrid()
	}
	g.drawPlayers()
	if g.overlays.IsEnabled(ui.OverlayVelocity) {
		g.drawVelocities()
	}
	g.drawUI()

	rl.EndDrawing()
}

// drawArena fills the arena rectangle and outlines it when walls are on.
func (g *Game) drawArena() {
	b := g.cfg.Derived.Bounds
	x0, y0 := g.camera.WorldToScreen(r2.Vec{X: b.Min.X, Y: b.Max.Y})
	x1, y1 := g.camera.WorldToScreen(r2.Vec{X: b.Max.X, Y: b.Min.Y})
	rect := rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	rl.DrawRectangleRec(rect, colorArena)
	if g.cfg.Arena.Walls {
		rl.DrawRectangleLinesEx(rect, 2, colorWall)
	}
}

// drawGrid draws grid lines over the visible part of the arena and the
// origin axes, which mark where resets put players.
func (g *Game) drawGrid() {
	b := g.cfg.Derived.Bounds
	v := g.camera.VisibleWorldBounds()
	b.Min.X, b.Min.Y = math.Max(b.Min.X, v.Min.X), math.Max(b.Min.Y, v.Min.Y)
	b.Max.X, b.Max.Y = math.Min(b.Max.X, v.Max.X), math.Min(b.Max.Y, v.Max.Y)
	if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y {
		return
	}
	line := func(a, c r2.Vec, color rl.Color) {
		ax, ay := g.camera.WorldToScreen(a)
		cx, cy := g.camera.WorldToScreen(c)
		rl.DrawLineV(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: cx, Y: cy}, color)
	}
	for x := math.Ceil(b.Min.X/gridSpacing) * gridSpacing; x <= b.Max.X; x += gridSpacing {
		line(r2.Vec{X: x, Y: b.Min.Y}, r2.Vec{X: x, Y: b.Max.Y}, colorGrid)
	}
	for y := math.Ceil(b.Min.Y/gridSpacing) * gridSpacing; y <= b.Max.Y; y += gridSpacing {
		line(r2.Vec{X: b.Min.X, Y: y}, r2.Vec{X: b.Max.X, Y: y}, colorGrid)
	}
	line(r2.Vec{X: b.Min.X}, r2.Vec{X: b.Max.X}, colorAxis)
	line(r2.Vec{Y: b.Min.Y}, r2.Vec{Y: b.Max.Y}, colorAxis)
}

// drawPlayers draws each player as a square with a heading marker.
func (g *Game) drawPlayers() {
	selected, hasSelection := g.inspector.Selected()

	query := g.renderFilter.Query()
	for query.Next() {
		pos, _, mot, app, _ := query.Get()
		half := app.Size / 2
		if !g.camera.IsVisible(pos.Vec(), half) {
			continue
		}

		sx, sy := g.camera.WorldToScreen(r2.Vec{X: pos.X - half, Y: pos.Y + half})
		side := g.camera.LengthToScreen(app.Size)
		rect := rl.Rectangle{X: sx, Y: sy, Width: side, Height: side}
		rl.DrawRectangleRec(rect, rl.Color{R: app.R, G: app.G, B: app.B, A: 255})

		// Heading marker on the leading edge
		tip := r2.Add(pos.Vec(), r2.Scale(half, mot.Direction.Axis()))
		cx, cy := g.camera.WorldToScreen(pos.Vec())
		tx, ty := g.camera.WorldToScreen(tip)
		rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: tx, Y: ty}, 3, rl.White)

		if hasSelection && query.Entity() == selected {
			rl.DrawRectangleLinesEx(rl.Rectangle{X: sx - 3, Y: sy - 3, Width: side + 6, Height: side + 6}, 2, colorSelection)
		}
	}
}

// drawVelocities draws each player's velocity, scaled to a quarter second
// of travel.
func (g *Game) drawVelocities() {
	query := g.renderFilter.Query()
	for query.Next() {
		pos, vel, _, _, _ := query.Get()
		end := r2.Add(pos.Vec(), r2.Scale(0.25, vel.Vec()))
		px, py := g.camera.WorldToScreen(pos.Vec())
		ex, ey := g.camera.WorldToScreen(end)
		rl.DrawLineEx(rl.Vector2{X: px, Y: py}, rl.Vector2{X: ex, Y: ey}, 2, rl.Lime)
		rl.DrawCircleV(rl.Vector2{X: ex, Y: ey}, 3, rl.Lime)
	}
}

// drawUI renders the HUD and the enabled panels.
func (g *Game) drawUI() {
	sw, sh := int32(g.screenWidth), int32(g.screenHeight)

	g.hud.Draw(g.hudData())
	g.hud.DrawControls(sh, "[Space] pause  [F1-F5] overlays  [F6] reset camera  [wheel/right drag] zoom/pan  [click] inspect")

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.SetPosition(10, sh-160)
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayInspector) {
		g.inspectorPanel.Draw(g.inspector, sw)
	}
	if g.overlays.IsEnabled(ui.OverlayHelp) {
		g.helpPanel.Draw(g.overlays, g.playerKeyLines(), sw, sh)
	}
}

// hudData collects the player table from the last frame's results and
// the synced components.
func (g *Game) hudData() ui.HUDData {
	data := ui.HUDData{
		Title:   g.cfg.Screen.Title,
		Tick:    g.tick,
		SimTime: g.simTime,
		FPS:     rl.GetFPS(),
		Paused:  g.paused,
	}

	skipped := make(map[string]bool, len(g.lastResults))
	for _, r := range g.lastResults {
		skipped[r.Name] = r.Skipped
	}

	query := g.renderFilter.Query()
	for query.Next() {
		pos, _, mot, app, name := query.Get()
		data.Players = append(data.Players, ui.PlayerRow{
			Name:      name.Value,
			Strategy:  g.strategyOf(name.Value),
			Direction: mot.Direction.String(),
			Speed:     mot.Speed,
			X:         pos.X,
			Y:         pos.Y,
			Color:     rl.Color{R: app.R, G: app.G, B: app.B, A: 255},
			Skipped:   skipped[name.Value],
		})
	}
	sort.Slice(data.Players, func(i, j int) bool {
		return data.Players[i].Name < data.Players[j].Name
	})
	return data
}

func (g *Game) strategyOf(name string) string {
	if i, ok := g.cfg.Derived.PlayerIndex[name]; ok {
		return g.cfg.Players[i].Strategy.String()
	}
	return ""
}

// playerKeyLines describes each player's bindings for the help panel.
func (g *Game) playerKeyLines() []string {
	var lines []string
	query := g.keysFilter.Query()
	for query.Next() {
		ctl, name := query.Get()
		b := ctl.Bindings
		line := fmt.Sprintf("%-8s %s/%s/%s/%s  faster %s  slower %s  reset %s",
			name.Value, b.Left, b.Right, b.Down, b.Up, b.SpeedUp, b.SpeedDown, b.Reset)
		if ctl.Strategy == movement.Physics {
			line += "  (physics)"
		}
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}
