package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arena/inspector"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws value/limit as a horizontal bar with the raw value beside it.
func (r *Renderer) DrawBar(x, y int32, label string, value, limit float64, width int32) int32 {
	ratio := 0.0
	if limit > 0 {
		ratio = min(max(value/limit, 0), 1)
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float64(barWidth)*ratio), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.0f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawBool draws an on/off indicator.
func (r *Renderer) DrawBool(x, y int32, label string, on bool) int32 {
	size := r.Theme.BarHeight
	color, text := r.Theme.BoolOff, "off"
	if on {
		color, text = r.Theme.BoolOn, "on"
	}
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, size, size, color)
	rl.DrawText(text, x+r.Theme.LabelWidth+size+5, y, r.Theme.FontSize, color)
	return y + r.Theme.LineHeight
}

// DrawField renders an inspector field using its widget type.
func (r *Renderer) DrawField(x, y int32, f inspector.Field, width int32) int32 {
	switch f.Widget {
	case inspector.WidgetBar:
		if v, ok := inspector.GetFloatValue(f.Value); ok {
			return r.DrawBar(x, y, f.Name, v, inspector.GetMax(f.Options), width)
		}
	case inspector.WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return r.DrawBool(x, y, f.Name, v)
		}
	}
	return r.DrawLabelValue(x, y, f.Name, f.Text())
}

// DrawSection renders an inspector section with header and fields.
func (r *Renderer) DrawSection(x, y int32, s inspector.Section, width int32) int32 {
	y = r.DrawSectionHeader(x, y, s.Title)
	for _, f := range s.Fields {
		y = r.DrawField(x, y, f, width)
	}
	return y + 4
}

// SectionHeight returns the pixel height DrawSection will use.
func (r *Renderer) SectionHeight(s inspector.Section) int32 {
	h := r.Theme.LineHeight + 2 + 4
	for _, f := range s.Fields {
		h += r.Theme.LineHeight
		if f.Widget == inspector.WidgetBar {
			h += 2
		}
	}
	return h
}
