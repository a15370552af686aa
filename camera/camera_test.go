package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func arena() r2.Box {
	return r2.Box{Min: r2.Vec{X: -600, Y: -360}, Max: r2.Vec{X: 600, Y: 360}}
}

func TestNew(t *testing.T) {
	cam := New(1280, 800, arena())

	if cam.Center != (r2.Vec{}) {
		t.Errorf("expected camera at origin, got %v", cam.Center)
	}
	want := margin * 1280.0 / 1200.0
	if math.Abs(cam.Zoom-want) > 1e-9 {
		t.Errorf("expected fit zoom %v, got %v", want, cam.Zoom)
	}
}

func TestWorldToScreenYUp(t *testing.T) {
	cam := New(1280, 800, arena())
	cam.SetZoom(1)

	sx, sy := cam.WorldToScreen(r2.Vec{})
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-400)) > 0.01 {
		t.Errorf("expected screen center (640, 400), got (%f, %f)", sx, sy)
	}

	// +y in the arena is up on screen
	_, up := cam.WorldToScreen(r2.Vec{Y: 100})
	if math.Abs(float64(up-300)) > 0.01 {
		t.Errorf("expected y=100 at screen y 300, got %f", up)
	}
	right, _ := cam.WorldToScreen(r2.Vec{X: 100})
	if math.Abs(float64(right-740)) > 0.01 {
		t.Errorf("expected x=100 at screen x 740, got %f", right)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 800, arena())
	cam.ZoomBy(1.7)
	cam.Pan(35, -20)

	testCases := []struct{ sx, sy float32 }{
		{640, 400},
		{100, 100},
		{1200, 700},
	}
	for _, tc := range testCases {
		w := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(w)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> %v -> (%f,%f)", tc.sx, tc.sy, w, sx, sy)
		}
	}
}

func TestPanClampedToArena(t *testing.T) {
	cam := New(1280, 800, arena())
	cam.SetZoom(1)

	cam.Pan(100, 50)
	if math.Abs(cam.Center.X-100) > 1e-9 || math.Abs(cam.Center.Y+50) > 1e-9 {
		t.Errorf("expected center (100, -50), got %v", cam.Center)
	}

	cam.Pan(1e6, -1e6)
	if cam.Center.X != 600 || cam.Center.Y != 360 {
		t.Errorf("expected center clamped to arena corner, got %v", cam.Center)
	}

	cam.Reset()
	if cam.Center != (r2.Vec{}) {
		t.Errorf("expected reset to origin, got %v", cam.Center)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 800, arena())

	cam.SetZoom(1000)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %v, got %v", cam.MinZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 800, arena())
	cam.SetZoom(1)

	if !cam.IsVisible(r2.Vec{}, 10) {
		t.Error("expected origin to be visible")
	}
	if cam.IsVisible(r2.Vec{X: 700}, 10) {
		t.Error("expected point past the right edge to be hidden")
	}
	if !cam.IsVisible(r2.Vec{X: 645}, 10) {
		t.Error("expected a square overlapping the edge to be visible")
	}
}

func TestResizeKeepsZoomInRange(t *testing.T) {
	cam := New(1280, 800, arena())
	cam.SetZoom(cam.MaxZoom)
	cam.Resize(320, 200)
	if cam.Zoom > cam.MaxZoom {
		t.Errorf("expected zoom <= %v after resize, got %v", cam.MaxZoom, cam.Zoom)
	}
}

func TestDegenerateBounds(t *testing.T) {
	cam := New(800, 600, r2.Box{})
	if cam.Zoom != 1 {
		t.Errorf("expected zoom 1 for an empty arena, got %v", cam.Zoom)
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(1280, 800, arena())
	cam.SetZoom(2)
	cam.Pan(100, 0)

	v := cam.VisibleWorldBounds()
	if math.Abs(v.Min.X-(50-320)) > 1e-9 || math.Abs(v.Max.X-(50+320)) > 1e-9 {
		t.Errorf("expected x range [-270, 370], got [%v, %v]", v.Min.X, v.Max.X)
	}
	if math.Abs(v.Min.Y+200) > 1e-9 || math.Abs(v.Max.Y-200) > 1e-9 {
		t.Errorf("expected y range [-200, 200], got [%v, %v]", v.Min.Y, v.Max.Y)
	}
}
