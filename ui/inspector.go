package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arena/inspector"
)

// InspectorPanel draws the selected entity's components.
type InspectorPanel struct {
	renderer *Renderer
	width    int32
}

// NewInspectorPanel creates a panel of the given width.
func NewInspectorPanel(width int32) *InspectorPanel {
	return &InspectorPanel{renderer: NewRenderer(), width: width}
}

// Draw renders the panel anchored to the top right corner. Nothing is
// drawn without a selection.
func (p *InspectorPanel) Draw(ins *inspector.Inspector, screenW int32) {
	sections := ins.Sections()
	if len(sections) == 0 {
		return
	}

	r := p.renderer
	height := r.Theme.LineHeight + 2*r.Theme.Padding + 6
	for _, s := range sections {
		height += r.SectionHeight(s)
	}
	x := screenW - p.width - 10
	y := int32(10)
	r.DrawPanel(x, y, p.width, height)

	x += r.Theme.Padding
	y += r.Theme.Padding
	rl.DrawText(ins.Title(), x, y, 16, rl.White)
	y += r.Theme.LineHeight + 6

	for _, s := range sections {
		y = r.DrawSection(x, y, s, p.width-2*r.Theme.Padding)
	}
}
