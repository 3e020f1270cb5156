// Package valuedisplay shows one formatted register value with its
// label and unit. The value color carries the threshold severity
// resolved upstream.
package valuedisplay

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

type Display struct {
	widget.BaseWidget

	valueText *canvas.Text
	unitText  *canvas.Text
	labelText *canvas.Text

	minsize fyne.Size
	size    fyne.Size
}

func New() *Display {
	d := &Display{
		minsize: fyne.NewSize(80, 50),
	}
	d.ExtendBaseWidget(d)

	d.valueText = canvas.NewText(widgets.NoData, colors.Neutral)
	d.valueText.TextStyle.Monospace = true
	d.valueText.Alignment = fyne.TextAlignCenter
	d.valueText.TextSize = 28

	d.unitText = canvas.NewText("", colors.Neutral)
	d.unitText.Alignment = fyne.TextAlignCenter
	d.unitText.TextSize = 12

	d.labelText = canvas.NewText("", colors.Neutral)
	d.labelText.Alignment = fyne.TextAlignCenter
	d.labelText.TextSize = 14

	return d
}

func (d *Display) SetState(st widgets.ValueState) {
	d.valueText.Text = st.Text
	d.valueText.Color = st.Color
	d.unitText.Text = st.Unit
	d.labelText.Text = st.Label
	canvas.Refresh(d.valueText)
	canvas.Refresh(d.unitText)
	canvas.Refresh(d.labelText)
}

func (d *Display) CreateRenderer() fyne.WidgetRenderer {
	return &displayRenderer{d}
}

type displayRenderer struct {
	*Display
}

func (r *displayRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	r.labelText.Move(fyne.NewPos(0, 2))
	r.labelText.Resize(fyne.NewSize(space.Width, 18))

	r.valueText.Move(fyne.NewPos(0, space.Height/2-18))
	r.valueText.Resize(fyne.NewSize(space.Width, 34))

	r.unitText.Move(fyne.NewPos(0, space.Height-18))
	r.unitText.Resize(fyne.NewSize(space.Width, 16))
}

func (r *displayRenderer) MinSize() fyne.Size { return r.minsize }

func (r *displayRenderer) Refresh() {}

func (r *displayRenderer) Destroy() {}

func (r *displayRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.labelText, r.valueText, r.unitText}
}
