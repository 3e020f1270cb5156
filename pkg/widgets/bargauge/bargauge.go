// Package bargauge renders a linear bar gauge in either orientation:
// a rounded track with a proportional fill.
package bargauge

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/resolve"
	"github.com/byosamah/volteria-canvas/pkg/schema"
	"github.com/byosamah/volteria-canvas/pkg/svgrender"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

type Bar struct {
	widget.BaseWidget

	orientation schema.Orientation

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

func New(orientation schema.Orientation) *Bar {
	b := &Bar{
		orientation: orientation,
		minsize:     fyne.NewSize(60, 60),
	}
	b.ExtendBaseWidget(b)

	b.img = canvas.NewImageFromImage(svgrender.Rasterize(b.document(b.state, 0), 60, 60))
	b.img.FillMode = canvas.ImageFillContain
	b.img.ScaleMode = canvas.ImageScaleFastest

	b.displayText = canvas.NewText(widgets.NoData, colors.Neutral)
	b.displayText.TextStyle.Monospace = true
	b.displayText.Alignment = fyne.TextAlignCenter
	b.displayText.TextSize = 18

	b.titleText = canvas.NewText("", colors.Neutral)
	b.titleText.Alignment = fyne.TextAlignCenter
	b.titleText.TextSize = 14

	b.minText = canvas.NewText("", colors.Neutral)
	b.minText.TextSize = 10
	b.maxText = canvas.NewText("", colors.Neutral)
	b.maxText.TextSize = 10

	return b
}

func (b *Bar) SetState(st widgets.GaugeState) {
	from := b.state.Percentage
	b.state = st

	b.displayText.Text = st.Value
	if st.Unit != "" && st.Value != widgets.NoData {
		b.displayText.Text = st.Value + " " + st.Unit
	}
	b.titleText.Text = st.Label
	b.minText.Text = resolve.FormatValue(&st.Min, 0)
	b.maxText.Text = resolve.FormatValue(&st.Max, 0)
	if st.ShowValue {
		b.displayText.Show()
	} else {
		b.displayText.Hide()
	}
	if st.ShowMinMax {
		b.minText.Show()
		b.maxText.Show()
	} else {
		b.minText.Hide()
		b.maxText.Hide()
	}

	if b.anim != nil {
		b.anim.Stop()
	}
	if from == st.Percentage {
		b.redraw(st.Percentage)
		return
	}
	b.anim = fyne.NewAnimation(500*time.Millisecond, func(p float32) {
		b.redraw(from + (st.Percentage-from)*float64(p))
	})
	b.anim.Curve = fyne.AnimationEaseOut
	b.anim.Start()
}

func (b *Bar) redraw(percentage float64) {
	b.shown = percentage
	w := int(b.size.Width)
	h := int(b.size.Height)
	if w <= 0 || h <= 0 {
		w, h = 60, 60
	}
	b.img.Image = svgrender.Rasterize(b.document(b.state, percentage), w, h)
	canvas.Refresh(b.img)
	canvas.Refresh(b.displayText)
}

func (b *Bar) document(st widgets.GaugeState, percentage float64) string {
	if b.orientation == schema.Horizontal {
		return svgrender.Document(200, 60, horizontalBody(colors.Hex(st.FillColor), percentage))
	}
	return svgrender.Document(60, 200, verticalBody(colors.Hex(st.FillColor), percentage))
}

func horizontalBody(fill string, percentage float64) string {
	const left, right, top, bottom = 10.0, 190.0, 18.0, 42.0
	body := fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="#3a3a3a"/>`,
		left, top, right-left, bottom-top)
	if percentage > 0 {
		body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="%s"/>`,
			left, top, (right-left)*percentage/100, bottom-top, fill)
	}
	return body
}

func verticalBody(fill string, percentage float64) string {
	const left, right, top, bottom = 18.0, 42.0, 10.0, 190.0
	body := fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="#3a3a3a"/>`,
		left, top, right-left, bottom-top)
	if percentage > 0 {
		level := bottom - (bottom-top)*percentage/100
		body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="%s"/>`,
			left, level, right-left, bottom-level, fill)
	}
	return body
}

func (b *Bar) CreateRenderer() fyne.WidgetRenderer {
	return &barRenderer{b}
}

type barRenderer struct {
	*Bar
}

func (r *barRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	r.img.Move(fyne.NewPos(0, 0))
	r.img.Resize(fyne.NewSize(space.Width, space.Height-40))

	r.displayText.Move(fyne.NewPos(0, space.Height-40))
	r.displayText.Resize(fyne.NewSize(space.Width, 22))

	r.titleText.Move(fyne.NewPos(0, space.Height-18))
	r.titleText.Resize(fyne.NewSize(space.Width, 16))

	if r.orientation == schema.Horizontal {
		r.minText.Move(fyne.NewPos(4, space.Height*0.30))
		r.maxText.Move(fyne.NewPos(space.Width-24, space.Height*0.30))
	} else {
		r.minText.Move(fyne.NewPos(space.Width*0.70, space.Height-60))
		r.maxText.Move(fyne.NewPos(space.Width*0.70, 4))
	}

	r.redraw(r.shown)
}

func (r *barRenderer) MinSize() fyne.Size { return r.minsize }

func (r *barRenderer) Refresh() {}

func (r *barRenderer) Destroy() {
	if r.anim != nil {
		r.anim.Stop()
	}
}

func (r *barRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.img, r.displayText, r.titleText, r.minText, r.maxText}
}
