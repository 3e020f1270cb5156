// Package unknown is the placeholder rendered for a widget type this
// build does not recognize, so one bad entry never fails the page.
package unknown

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

type Placeholder struct {
	widget.BaseWidget

	text *canvas.Text
}

func New() *Placeholder {
	p := &Placeholder{}
	p.ExtendBaseWidget(p)

	p.text = canvas.NewText(widgets.UnknownTypeText, colors.Neutral)
	p.text.Alignment = fyne.TextAlignCenter
	p.text.TextStyle.Italic = true
	p.text.TextSize = 12

	return p
}

func (p *Placeholder) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.text)
}
