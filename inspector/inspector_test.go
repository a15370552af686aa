package inspector

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/arena/components"
	"github.com/pthm-cable/arena/movement"
)

func TestParseTag(t *testing.T) {
	widget, opts := ParseTag("bar,max:500,fmt:%.0f")
	if widget != WidgetBar {
		t.Errorf("expected WidgetBar, got %v", widget)
	}
	if opts["max"] != "500" || opts["fmt"] != "%.0f" {
		t.Errorf("unexpected options %v", opts)
	}
	if GetMax(opts) != 500 {
		t.Errorf("expected max 500, got %v", GetMax(opts))
	}

	if w, _ := ParseTag(""); w != WidgetAuto {
		t.Errorf("expected WidgetAuto for empty tag, got %v", w)
	}
	if GetMax(nil) != 1 {
		t.Error("expected default max 1")
	}
}

func TestExtractFields(t *testing.T) {
	fields := ExtractFields(&components.Motion{Direction: movement.Up, Speed: 112.34})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Name != "Direction" || fields[0].Text() != "up" {
		t.Errorf("expected Direction up, got %s %s", fields[0].Name, fields[0].Text())
	}
	if fields[1].Text() != "112.3" {
		t.Errorf("expected speed with one decimal, got %s", fields[1].Text())
	}

	// Handle and the colour channels are skipped
	body := ExtractFields(components.Body{Size: 24, Asleep: true})
	if len(body) != 2 || body[1].Widget != WidgetBool {
		t.Errorf("unexpected body fields %+v", body)
	}
	if len(ExtractFields(components.Appearance{Size: 3, R: 1})) != 1 {
		t.Error("expected only Size from Appearance")
	}

	if ExtractFields(42) != nil {
		t.Error("expected nil for a non-struct")
	}
	if ExtractFields((*components.Motion)(nil)) != nil {
		t.Error("expected nil for a nil pointer")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		fmt   string
		want  string
	}{
		{1.5, "", "1.50"},
		{float32(2), "", "2.00"},
		{7, "", "7"},
		{movement.Physics, "", "physics"},
		{3.14159, "%.1f", "3.1"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value, tt.fmt); got != tt.want {
			t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.fmt, got, tt.want)
		}
	}
}

func spawn(w *ecs.World, name string, x, y float64) ecs.Entity {
	mapper := ecs.NewMap6[components.Player, components.Name, components.Controls,
		components.Motion, components.Position, components.Appearance](w)
	return mapper.NewEntity(
		&components.Player{},
		&components.Name{Value: name},
		&components.Controls{Strategy: movement.Direct},
		&components.Motion{Direction: movement.Right, Speed: 100},
		&components.Position{X: x, Y: y},
		&components.Appearance{Size: 20},
	)
}

func TestPickAndSections(t *testing.T) {
	w := ecs.NewWorld()
	bear := spawn(w, "bear", 0, 0)
	spawn(w, "fox", 100, 0)

	ins := New(w)
	if _, ok := ins.Selected(); ok {
		t.Fatal("expected nothing selected")
	}
	if ins.Pick(r2.Vec{X: 50, Y: 50}) {
		t.Error("expected a miss between the squares")
	}
	if !ins.Pick(r2.Vec{X: 9, Y: -9}) {
		t.Fatal("expected a hit on bear")
	}
	if e, _ := ins.Selected(); e != bear {
		t.Errorf("expected bear selected, got %v", e)
	}
	if ins.Title() != "bear" {
		t.Errorf("expected title bear, got %q", ins.Title())
	}

	sections := ins.Sections()
	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	want := []string{"Controls", "Motion", "Position"}
	if len(titles) != len(want) {
		t.Fatalf("expected sections %v, got %v", want, titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("section %d: expected %s, got %s", i, want[i], titles[i])
		}
	}

	// A miss keeps the selection; removal clears it
	ins.Pick(r2.Vec{X: 500})
	if e, _ := ins.Selected(); e != bear {
		t.Error("expected selection kept after a miss")
	}
	w.RemoveEntity(bear)
	if _, ok := ins.Selected(); ok {
		t.Error("expected removed entity to be unselected")
	}
	if ins.Sections() != nil || ins.Title() != "" {
		t.Error("expected no sections without a selection")
	}
}
