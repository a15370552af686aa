package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arena/systems"
	"github.com/pthm-cable/arena/telemetry"
)

// PlayerRow is one line of the player table.
type PlayerRow struct {
	Name      string
	Strategy  string
	Direction string
	Speed     float64
	X, Y      float64
	Color     rl.Color
	Skipped   bool // physics body not resolvable this frame
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Tick    int64
	SimTime float64
	FPS     int32
	Paused  bool
	Players []PlayerRow
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.1fs | FPS: %d", data.Tick, data.SimTime, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 55, 16, rl.Yellow)
	}

	y := int32(80)
	for _, p := range data.Players {
		rl.DrawRectangle(10, y+2, 10, 10, p.Color)
		line := fmt.Sprintf("%-8s %-7s %-5s %6.0f  (%.0f, %.0f)", p.Name, p.Strategy, p.Direction, p.Speed, p.X, p.Y)
		color := rl.LightGray
		if p.Skipped {
			line += "  no body"
			color = h.renderer.Theme.WarnColor
		}
		rl.DrawText(line, 26, y, 14, color)
		y += 18
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(registry *systems.SystemRegistry, x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	ids := p.registry.IDs()
	r := p.renderer
	height := int32(len(ids)+2)*14 + 30
	r.DrawPanel(p.x, p.y, 260, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	rl.DrawText(fmt.Sprintf("Frame: %s", stats.AvgTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 18
	if stats.FPS > 0 {
		rl.DrawText(fmt.Sprintf("Present: %s", stats.FrameDuration.Round(time.Microsecond)), x, y, 12, rl.LightGray)
	}
	y += 14

	for _, id := range ids {
		pct := stats.PhasePct[id]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", p.registry.GetName(id), stats.PhaseAvg[id].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// HelpPanel lists the overlays and their toggle keys.
type HelpPanel struct {
	renderer *Renderer
}

// NewHelpPanel creates a help panel.
func NewHelpPanel() *HelpPanel {
	return &HelpPanel{renderer: NewRenderer()}
}

// Draw renders the overlay list and the player key lines centred on screen.
func (h *HelpPanel) Draw(overlays *OverlayRegistry, playerKeys []string, screenW, screenH int32) {
	r := h.renderer
	lines := len(overlays.All()) + len(playerKeys) + 3
	width := int32(420)
	height := int32(lines)*r.Theme.LineHeight + 2*r.Theme.Padding
	x := (screenW - width) / 2
	y := (screenH - height) / 2
	r.DrawPanel(x, y, width, height)

	x += r.Theme.Padding
	y += r.Theme.Padding
	y = r.DrawSectionHeader(x, y, "Overlays")
	for _, desc := range overlays.All() {
		state := "off"
		if overlays.IsEnabled(desc.ID) {
			state = "on"
		}
		y = r.DrawLabelValue(x, y, desc.Key.String(), fmt.Sprintf("%-12s %-3s %s", desc.Name, state, desc.Description))
	}
	y = r.DrawSectionHeader(x, y, "Players")
	for _, line := range playerKeys {
		rl.DrawText(line, x, y, r.Theme.FontSize, r.Theme.ValueColor)
		y += r.Theme.LineHeight
	}
}
