// Package textbox renders a static text widget from its config:
// size, color and alignment, no data binding.
package textbox

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/schema"
)

type Text struct {
	widget.BaseWidget

	text *canvas.Text
}

func New(cfg *schema.TextConfig) *Text {
	t := &Text{}
	t.ExtendBaseWidget(t)

	t.text = canvas.NewText(cfg.Text, colors.ParseHex(cfg.Color, colors.Neutral))
	t.text.TextSize = float32(cfg.FontSize)
	switch cfg.Align {
	case "center":
		t.text.Alignment = fyne.TextAlignCenter
	case "right":
		t.text.Alignment = fyne.TextAlignTrailing
	default:
		t.text.Alignment = fyne.TextAlignLeading
	}

	return t
}

// SetConfig reapplies an edited config in place.
func (t *Text) SetConfig(cfg *schema.TextConfig) {
	t.text.Text = cfg.Text
	t.text.Color = colors.ParseHex(cfg.Color, colors.Neutral)
	t.text.TextSize = float32(cfg.FontSize)
	canvas.Refresh(t.text)
}

func (t *Text) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.text)
}
