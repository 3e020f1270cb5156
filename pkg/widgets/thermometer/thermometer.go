// Package thermometer renders a bulb-and-tube gauge. The bulb stays
// filled at any reading; the tube column rises with the percentage and
// tick marks sit at every quarter of the scale.
package thermometer

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/resolve"
	"github.com/byosamah/volteria-canvas/pkg/svgrender"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

const (
	viewW = 120.0
	viewH = 200.0

	bulbCX = 60.0
	bulbCY = 164.0
	bulbR  = 22.0

	tubeTop    = 20.0
	tubeBottom = 148.0
	tubeHalf   = 9.0
)

type Thermometer struct {
	widget.BaseWidget

	img         *canvas.Image
	displayText *canvas.Text
	titleText   *canvas.Text
	minText     *canvas.Text
	maxText     *canvas.Text

	state   widgets.GaugeState
	shown   float64
	anim    *fyne.Animation
	minsize fyne.Size
	size    fyne.Size
}

func New() *Thermometer {
	th := &Thermometer{
		minsize: fyne.NewSize(60, 100),
	}
	th.ExtendBaseWidget(th)

	th.img = canvas.NewImageFromImage(svgrender.Rasterize(document(th.state, 0), 60, 100))
	th.img.FillMode = canvas.ImageFillContain
	th.img.ScaleMode = canvas.ImageScaleFastest

	th.displayText = canvas.NewText(widgets.NoData, colors.Neutral)
	th.displayText.TextStyle.Monospace = true
	th.displayText.Alignment = fyne.TextAlignCenter
	th.displayText.TextSize = 16

	th.titleText = canvas.NewText("", colors.Neutral)
	th.titleText.Alignment = fyne.TextAlignCenter
	th.titleText.TextSize = 14

	th.minText = canvas.NewText("", colors.Neutral)
	th.minText.TextSize = 10
	th.maxText = canvas.NewText("", colors.Neutral)
	th.maxText.TextSize = 10

	return th
}

func (th *Thermometer) SetState(st widgets.GaugeState) {
	from := th.state.Percentage
	th.state = st

	th.displayText.Text = st.Value
	if st.Unit != "" && st.Value != widgets.NoData {
		th.displayText.Text = st.Value + " " + st.Unit
	}
	th.titleText.Text = st.Label
	th.minText.Text = resolve.FormatValue(&st.Min, 0)
	th.maxText.Text = resolve.FormatValue(&st.Max, 0)
	if st.ShowValue {
		th.displayText.Show()
	} else {
		th.displayText.Hide()
	}
	if st.ShowMinMax {
		th.minText.Show()
		th.maxText.Show()
	} else {
		th.minText.Hide()
		th.maxText.Hide()
	}

	if th.anim != nil {
		th.anim.Stop()
	}
	if from == st.Percentage {
		th.redraw(st.Percentage)
		return
	}
	th.anim = fyne.NewAnimation(500*time.Millisecond, func(p float32) {
		th.redraw(from + (st.Percentage-from)*float64(p))
	})
	th.anim.Curve = fyne.AnimationEaseOut
	th.anim.Start()
}

func (th *Thermometer) redraw(percentage float64) {
	th.shown = percentage
	w := int(th.size.Width)
	h := int(th.size.Height)
	if w <= 0 || h <= 0 {
		w, h = 60, 100
	}
	th.img.Image = svgrender.Rasterize(document(th.state, percentage), w, h)
	canvas.Refresh(th.img)
	canvas.Refresh(th.displayText)
}

func document(st widgets.GaugeState, percentage float64) string {
	fill := colors.Hex(st.FillColor)
	level := tubeBottom - (tubeBottom-tubeTop)*percentage/100

	// tube track
	body := fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="#3a3a3a"/>`,
		bulbCX-tubeHalf, tubeTop-tubeHalf, 2*tubeHalf, tubeBottom-tubeTop+2*tubeHalf, tubeHalf)
	// bulb is always full so a zero reading still looks alive
	body += fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`, bulbCX, bulbCY, bulbR, fill)
	if percentage > 0 {
		body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
			bulbCX-tubeHalf+2, level, 2*(tubeHalf-2), bulbCY-level, fill)
	} else {
		// stub connecting the bulb to the tube
		body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
			bulbCX-tubeHalf+2, bulbCY-bulbR, 2*(tubeHalf-2), bulbR, fill)
	}
	for _, q := range []float64{0, 25, 50, 75, 100} {
		y := tubeBottom - (tubeBottom-tubeTop)*q/100
		body += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#5a5a5a" stroke-width="2"/>`,
			bulbCX+tubeHalf+2, y, bulbCX+tubeHalf+8, y)
	}
	body += fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="#5a5a5a" stroke-width="2"/>`,
		bulbCX, bulbCY, bulbR)
	return svgrender.Document(viewW, viewH, body)
}

func (th *Thermometer) CreateRenderer() fyne.WidgetRenderer {
	return &thermometerRenderer{th}
}

type thermometerRenderer struct {
	*Thermometer
}

func (r *thermometerRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	r.img.Move(fyne.NewPos(0, 0))
	r.img.Resize(fyne.NewSize(space.Width, space.Height-24))

	r.displayText.Move(fyne.NewPos(0, space.Height-44))
	r.displayText.Resize(fyne.NewSize(space.Width, 20))

	r.titleText.Move(fyne.NewPos(0, space.Height-20))
	r.titleText.Resize(fyne.NewSize(space.Width, 18))

	r.minText.Move(fyne.NewPos(space.Width*0.08, space.Height*0.66))
	r.maxText.Move(fyne.NewPos(space.Width*0.08, space.Height*0.06))

	r.redraw(r.shown)
}

func (r *thermometerRenderer) MinSize() fyne.Size { return r.minsize }

func (r *thermometerRenderer) Refresh() {}

func (r *thermometerRenderer) Destroy() {
	if r.anim != nil {
		r.anim.Stop()
	}
}

func (r *thermometerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.img, r.displayText, r.titleText, r.minText, r.maxText}
}
