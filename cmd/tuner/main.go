// Movement tuner - drive one direct player in a preview pane and adjust
// its default speed and speed increment with sliders.
//
// Usage: go run ./cmd/tuner [-config arena.yaml] [-player bear]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/arena/camera"
	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/input"
	"github.com/pthm-cable/arena/movement"
	"github.com/pthm-cable/arena/ui"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
	previewHalf  = 400.0 // world half extent shown in the preview
)

type keyboard struct{}

func (keyboard) Held(k input.Key) bool {
	return k != input.KeyNone && rl.IsKeyDown(int32(k))
}

func (keyboard) JustPressed(k input.Key) bool {
	return k != input.KeyNone && rl.IsKeyPressed(int32(k))
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	playerName := flag.String("player", "", "Direct player to tune (empty = first direct player)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	player, ok := pickPlayer(cfg, *playerName)
	if !ok {
		slog.Error("no direct player to tune", "player", *playerName)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Movement Tuner")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	bounds := r2.Box{Min: r2.Vec{X: -previewHalf, Y: -previewHalf}, Max: r2.Vec{X: previewHalf, Y: previewHalf}}
	cam := camera.New(previewSize, previewSize, bounds)

	original := player.Tuning()
	tuning := original
	mover := movement.NewMover(movement.Direct, player.Keys, tuning)
	color := ui.ColorOf(player.Color)
	var trail []r2.Vec

	for !rl.WindowShouldClose() {
		mover.Tuning = tuning
		next, _, out := movement.Step(mover, keyboard{}, float64(rl.GetFrameTime()))
		mover = next
		if out.Reset {
			trail = trail[:0]
		}
		trail = append(trail, mover.Position)
		if len(trail) > 240 {
			trail = trail[1:]
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview pane at (10,10)
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Color{R: 24, G: 28, B: 34, A: 255})
		rl.BeginScissorMode(10, 10, previewSize, previewSize)
		for i := 1; i < len(trail); i++ {
			ax, ay := cam.WorldToScreen(trail[i-1])
			bx, by := cam.WorldToScreen(trail[i])
			rl.DrawLineV(rl.Vector2{X: ax + 10, Y: ay + 10}, rl.Vector2{X: bx + 10, Y: by + 10}, rl.Gray)
		}
		half := player.Size / 2
		sx, sy := cam.WorldToScreen(r2.Vec{X: mover.Position.X - half, Y: mover.Position.Y + half})
		side := cam.LengthToScreen(player.Size)
		rl.DrawRectangleRec(rl.Rectangle{X: sx + 10, Y: sy + 10, Width: side, Height: side}, color)
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 18)
		rl.DrawText(fmt.Sprintf("%s  dir: %s  speed: %.1f  pos: (%.0f, %.0f)",
			player.Name, mover.Direction, mover.Speed, mover.Position.X, mover.Position.Y), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Movement Tuning", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Default speed (units/s)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		tuning.DefaultSpeed = float64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1000",
			float32(tuning.DefaultSpeed), 0, 1000,
		))
		rl.DrawText(fmt.Sprintf("%.0f", tuning.DefaultSpeed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Speed increment (per press)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		tuning.SpeedIncrement = float64(gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "100",
			float32(tuning.SpeedIncrement), 0, 100,
		))
		rl.DrawText(fmt.Sprintf("%.0f", tuning.SpeedIncrement), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Apply Speed") {
			mover.Speed = tuning.DefaultSpeed
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			tuning = original
			mover = movement.NewMover(movement.Direct, player.Keys, tuning)
			trail = trail[:0]
		}
		panelY += 45

		snippet := yamlSnippet(player, tuning)
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Copy YAML") {
			rl.SetClipboardText(snippet)
		}
		panelY += 45

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(snippet, "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		b := player.Keys
		rl.DrawText(fmt.Sprintf("Keys: %s/%s/%s/%s  faster %s  slower %s  reset %s",
			b.Left, b.Right, b.Down, b.Up, b.SpeedUp, b.SpeedDown, b.Reset), 15, windowHeight-20, 12, rl.Gray)

		rl.EndDrawing()
	}

	fmt.Println(yamlSnippet(player, tuning))
}

// pickPlayer returns the named direct player, or the first direct one.
func pickPlayer(cfg *config.Config, name string) (config.PlayerConfig, bool) {
	for _, p := range cfg.Players {
		if p.Strategy != movement.Direct {
			continue
		}
		if name == "" || p.Name == name {
			return p, true
		}
	}
	return config.PlayerConfig{}, false
}

// yamlSnippet renders the player with the tuned constants as a players
// list ready to paste into a config file.
func yamlSnippet(p config.PlayerConfig, t movement.Tuning) string {
	p.DefaultSpeed = t.DefaultSpeed
	p.SpeedIncrement = t.SpeedIncrement
	data, err := yaml.Marshal(map[string][]config.PlayerConfig{"players": {p}})
	if err != nil {
		return fmt.Sprintf("# %v", err)
	}
	return strings.TrimRight(string(data), "\n")
}
