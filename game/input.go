package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arena/input"
	"github.com/pthm-cable/arena/systems"
	"github.com/pthm-cable/arena/ui"
)

// raylibKeyboard reads the keyboard through raylib. Raylib polls once
// per frame in EndDrawing, so every read within a frame is consistent.
type raylibKeyboard struct{}

func (raylibKeyboard) Held(k input.Key) bool {
	return k != input.KeyNone && rl.IsKeyDown(int32(k))
}

func (raylibKeyboard) JustPressed(k input.Key) bool {
	return k != input.KeyNone && rl.IsKeyPressed(int32(k))
}

// Update handles viewer input and, unless paused, advances one frame
// using the raylib frame time as dt.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(systems.PhaseInput)

	keys := raylibKeyboard{}
	g.handleInput(keys)

	if !g.paused {
		g.advance(keys, float64(rl.GetFrameTime()))
	}
	g.perfCollector.EndTick()
}

// handleInput processes the viewer keys. Player bindings never overlap
// these, so the movement pipeline sees the same keyboard untouched.
func (g *Game) handleInput(keys input.Keyboard) {
	g.handleResize()

	if keys.JustPressed(input.KeySpace) {
		g.paused = !g.paused
	}
	for _, id := range g.overlays.HandleKeys(keys) {
		if id == ui.OverlayInspector && !g.overlays.IsEnabled(id) {
			g.inspector.Deselect()
		}
	}

	g.handleCameraInput(keys)

	if g.overlays.IsEnabled(ui.OverlayInspector) {
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			m := rl.GetMousePosition()
			g.inspector.Pick(g.camera.ScreenToWorld(m.X, m.Y))
		}
		if keys.JustPressed(input.KeyEscape) {
			g.inspector.Deselect()
		}
	}
}

// handleResize propagates window size changes to the camera.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(float64(w), float64(h))
}

// handleCameraInput processes mouse pan/zoom. The keyboard belongs to the
// players, so only the reset key is read here.
func (g *Game) handleCameraInput(keys input.Keyboard) {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1.0 + float64(wheel)*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) || rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}
	if keys.JustPressed(input.KeyF6) {
		g.camera.Reset()
	}
}
