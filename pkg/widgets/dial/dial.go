// Package dial renders a 270 degree dial gauge from the normalized
// gauge contract. The arc geometry is generated as SVG path data and
// rasterized, so the same path generator backs the widget and its
// regression tests.
package dial

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/resolve"
	"github.com/byosamah/volteria-canvas/pkg/svgpath"
	"github.com/byosamah/volteria-canvas/pkg/svgrender"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

const (
	viewSize = 200.0
	center   = viewSize / 2
	radius   = 80.0
)

type Dial struct {
	widget.BaseWidget

	img         *canvas.Image
	displayText *canvas.Text
	titleText   *canvas.Text
	minText     *canvas.Text
	maxText     *canvas.Text

	state   widgets.GaugeState
	shown   float64 // animated percentage actually drawn
	anim    *fyne.Animation
	minsize fyne.Size
	size    fyne.Size
}

func New() *Dial {
	d := &Dial{
		minsize: fyne.NewSize(100, 100),
	}
	d.ExtendBaseWidget(d)

	d.img = canvas.NewImageFromImage(svgrender.Rasterize(document(d.state, 0), 100, 100))
	d.img.FillMode = canvas.ImageFillContain
	d.img.ScaleMode = canvas.ImageScaleFastest

	d.displayText = canvas.NewText(widgets.NoData, colors.Green)
	d.displayText.TextStyle.Monospace = true
	d.displayText.Alignment = fyne.TextAlignCenter
	d.displayText.TextSize = 26

	d.titleText = canvas.NewText("", colors.Neutral)
	d.titleText.Alignment = fyne.TextAlignCenter
	d.titleText.TextSize = 14

	d.minText = canvas.NewText("", colors.Neutral)
	d.minText.TextSize = 10
	d.maxText = canvas.NewText("", colors.Neutral)
	d.maxText.TextSize = 10

	return d
}

// SetState applies a newly resolved gauge state. Percentage changes
// ease out over half a second; the caption updates immediately.
func (d *Dial) SetState(st widgets.GaugeState) {
	from := d.state.Percentage
	d.state = st

	d.displayText.Text = st.Value
	if st.Unit != "" && st.Value != widgets.NoData {
		d.displayText.Text = st.Value + " " + st.Unit
	}
	d.titleText.Text = st.Label
	d.minText.Text = resolve.FormatValue(&st.Min, 0)
	d.maxText.Text = resolve.FormatValue(&st.Max, 0)
	d.updateCaptionVisibility()

	if d.anim != nil {
		d.anim.Stop()
	}
	if from == st.Percentage {
		d.redraw(st.Percentage)
		return
	}
	d.anim = fyne.NewAnimation(500*time.Millisecond, func(p float32) {
		d.redraw(from + (st.Percentage-from)*float64(p))
	})
	d.anim.Curve = fyne.AnimationEaseOut
	d.anim.Start()
}

func (d *Dial) updateCaptionVisibility() {
	if d.state.ShowValue {
		d.displayText.Show()
	} else {
		d.displayText.Hide()
	}
	if d.state.ShowMinMax {
		d.minText.Show()
		d.maxText.Show()
	} else {
		d.minText.Hide()
		d.maxText.Hide()
	}
}

func (d *Dial) redraw(percentage float64) {
	d.shown = percentage
	w := int(d.size.Width)
	h := int(d.size.Height)
	if w <= 0 || h <= 0 {
		w, h = 100, 100
	}
	d.img.Image = svgrender.Rasterize(document(d.state, percentage), w, h)
	canvas.Refresh(d.img)
	canvas.Refresh(d.displayText)
	canvas.Refresh(d.titleText)
}

// document builds the dial's SVG: track, fill and remainder arcs plus
// the needle. Fill and remainder are separate arcs so each keeps a
// correct large-arc flag as the sweep crosses 180 degrees.
func document(st widgets.GaugeState, percentage float64) string {
	body := ""
	if rem := svgpath.DialRemainder(center, center, radius, percentage); rem != "" {
		body += fmt.Sprintf(`<path d="%s" fill="none" stroke="#3a3a3a" stroke-width="14" stroke-linecap="round"/>`, rem)
	}
	if fill := svgpath.DialFill(center, center, radius, percentage); fill != "" {
		body += fmt.Sprintf(`<path d="%s" fill="none" stroke="%s" stroke-width="14" stroke-linecap="round"/>`, fill, colors.Hex(st.FillColor))
	}
	tip := svgpath.PolarToCartesian(center, center, radius-18, svgpath.DialNeedleAngle(percentage))
	body += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="4" stroke-linecap="round"/>`,
		float64(center), float64(center), tip.X, tip.Y, colors.Hex(colors.Neutral))
	body += fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="7" fill="#3a3a3a"/>`, float64(center), float64(center))
	return svgrender.Document(viewSize, viewSize, body)
}

func (d *Dial) CreateRenderer() fyne.WidgetRenderer {
	return &dialRenderer{d}
}

type dialRenderer struct {
	*Dial
}

func (r *dialRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	r.img.Move(fyne.NewPos(0, 0))
	r.img.Resize(space)

	r.displayText.Move(fyne.NewPos(0, space.Height*0.62))
	r.displayText.Resize(fyne.NewSize(space.Width, 30))

	r.titleText.Move(fyne.NewPos(0, space.Height-20))
	r.titleText.Resize(fyne.NewSize(space.Width, 18))

	r.minText.Move(fyne.NewPos(space.Width*0.18, space.Height*0.82))
	r.maxText.Move(fyne.NewPos(space.Width*0.74, space.Height*0.82))

	r.redraw(r.shown)
}

func (r *dialRenderer) MinSize() fyne.Size { return r.minsize }

func (r *dialRenderer) Refresh() {}

func (r *dialRenderer) Destroy() {
	if r.anim != nil {
		r.anim.Stop()
	}
}

func (r *dialRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.img, r.displayText, r.titleText, r.minText, r.maxText}
}
