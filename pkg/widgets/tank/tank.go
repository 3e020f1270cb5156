// Package tank renders a tank level gauge. Cylindrical tanks get
// elliptical end caps, a liquid surface ellipse and a sheen gradient;
// rectangular tanks are a plain track and fill.
package tank

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

const viewSize = 200.0

type Tank struct {
	widget.BaseWidget

	shape       schema.TankShape
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

func New(shape schema.TankShape, orientation schema.Orientation) *Tank {
	t := &Tank{
		shape:       shape,
		orientation: orientation,
		minsize:     fyne.NewSize(80, 100),
	}
	t.ExtendBaseWidget(t)

	t.img = canvas.NewImageFromImage(svgrender.Rasterize(t.document(t.state, 0), 100, 100))
	t.img.FillMode = canvas.ImageFillContain
	t.img.ScaleMode = canvas.ImageScaleFastest

	t.displayText = canvas.NewText(widgets.NoData, colors.Neutral)
	t.displayText.TextStyle.Monospace = true
	t.displayText.Alignment = fyne.TextAlignCenter
	t.displayText.TextSize = 20

	t.titleText = canvas.NewText("", colors.Neutral)
	t.titleText.Alignment = fyne.TextAlignCenter
	t.titleText.TextSize = 14

	t.minText = canvas.NewText("", colors.Neutral)
	t.minText.TextSize = 10
	t.maxText = canvas.NewText("", colors.Neutral)
	t.maxText.TextSize = 10

	return t
}

// SetState applies a newly resolved gauge state. The liquid level
// eases out over half a second.
func (t *Tank) SetState(st widgets.GaugeState) {
	from := t.state.Percentage
	t.state = st

	t.displayText.Text = st.Value
	if st.Unit != "" && st.Value != widgets.NoData {
		t.displayText.Text = st.Value + " " + st.Unit
	}
	t.titleText.Text = st.Label
	t.minText.Text = resolve.FormatValue(&st.Min, 0)
	t.maxText.Text = resolve.FormatValue(&st.Max, 0)
	if st.ShowValue {
		t.displayText.Show()
	} else {
		t.displayText.Hide()
	}
	if st.ShowMinMax {
		t.minText.Show()
		t.maxText.Show()
	} else {
		t.minText.Hide()
		t.maxText.Hide()
	}

	if t.anim != nil {
		t.anim.Stop()
	}
	if from == st.Percentage {
		t.redraw(st.Percentage)
		return
	}
	t.anim = fyne.NewAnimation(500*time.Millisecond, func(p float32) {
		t.redraw(from + (st.Percentage-from)*float64(p))
	})
	t.anim.Curve = fyne.AnimationEaseOut
	t.anim.Start()
}

func (t *Tank) redraw(percentage float64) {
	t.shown = percentage
	w := int(t.size.Width)
	h := int(t.size.Height)
	if w <= 0 || h <= 0 {
		w, h = 100, 100
	}
	t.img.Image = svgrender.Rasterize(t.document(t.state, percentage), w, h)
	canvas.Refresh(t.img)
	canvas.Refresh(t.displayText)
}

func (t *Tank) document(st widgets.GaugeState, percentage float64) string {
	fill := colors.Hex(st.FillColor)
	var body string
	switch {
	case t.shape == schema.TankRectangular && t.orientation == schema.Horizontal:
		body = rectangularHorizontal(fill, percentage)
	case t.shape == schema.TankRectangular:
		body = rectangularVertical(fill, percentage)
	case t.orientation == schema.Horizontal:
		body = cylinderHorizontal(fill, percentage)
	default:
		body = cylinderVertical(fill, percentage)
	}
	return svgrender.Document(viewSize, viewSize, body)
}

const (
	trackColor   = "#3a3a3a"
	outlineColor = "#5a5a5a"
	sheen        = `<defs><linearGradient id="sheen" x1="0" y1="0" x2="1" y2="0">` +
		`<stop offset="0" stop-color="#ffffff" stop-opacity="0.25"/>` +
		`<stop offset="0.5" stop-color="#ffffff" stop-opacity="0"/>` +
		`<stop offset="1" stop-color="#000000" stop-opacity="0.25"/>` +
		`</linearGradient></defs>`
	sheenV = `<defs><linearGradient id="sheen" x1="0" y1="0" x2="0" y2="1">` +
		`<stop offset="0" stop-color="#ffffff" stop-opacity="0.25"/>` +
		`<stop offset="0.5" stop-color="#ffffff" stop-opacity="0"/>` +
		`<stop offset="1" stop-color="#000000" stop-opacity="0.25"/>` +
		`</linearGradient></defs>`
)

// cylinderVertical draws end-cap ellipses at top and bottom, a liquid
// column with its surface ellipse, and a horizontal sheen gradient.
func cylinderVertical(fill string, percentage float64) string {
	const (
		left, right = 60.0, 140.0
		top, bottom = 36.0, 156.0
		rx, ry      = 40.0, 12.0
	)
	level := bottom - (bottom-top)*percentage/100

	body := sheen
	body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
		left, top, right-left, bottom-top, trackColor)
	body += fmt.Sprintf(`<ellipse cx="100" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s"/>`, bottom, rx, ry, trackColor)
	if percentage > 0 {
		body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
			left, level, right-left, bottom-level, fill)
		body += fmt.Sprintf(`<ellipse cx="100" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s"/>`, bottom, rx, ry, fill)
		// liquid surface
		body += fmt.Sprintf(`<ellipse cx="100" cy="%.2f" rx="%.2f" ry="%.2f" fill="%s" stroke="%s" stroke-width="1"/>`,
			level, rx, ry, fill, outlineColor)
	}
	body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="url(#sheen)"/>`,
		left, top, right-left, bottom-top+ry)
	body += fmt.Sprintf(`<ellipse cx="100" cy="%.2f" rx="%.2f" ry="%.2f" fill="none" stroke="%s" stroke-width="2"/>`,
		top, rx, ry, outlineColor)
	body += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2"/>`,
		left, top, left, bottom, outlineColor)
	body += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2"/>`,
		right, top, right, bottom, outlineColor)
	return body
}

// cylinderHorizontal lies the cylinder on its side and fills from the
// left cap toward the right.
func cylinderHorizontal(fill string, percentage float64) string {
	const (
		left, right = 36.0, 164.0
		top, bottom = 64.0, 136.0
		rx, ry      = 12.0, 36.0
	)
	edge := left + (right-left)*percentage/100

	body := sheenV
	body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
		left, top, right-left, bottom-top, trackColor)
	body += fmt.Sprintf(`<ellipse cx="%.2f" cy="100" rx="%.2f" ry="%.2f" fill="%s"/>`, right, rx, ry, trackColor)
	if percentage > 0 {
		body += fmt.Sprintf(`<ellipse cx="%.2f" cy="100" rx="%.2f" ry="%.2f" fill="%s"/>`, left, rx, ry, fill)
		body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
			left, top, edge-left, bottom-top, fill)
		// liquid surface
		body += fmt.Sprintf(`<ellipse cx="%.2f" cy="100" rx="%.2f" ry="%.2f" fill="%s" stroke="%s" stroke-width="1"/>`,
			edge, rx, ry, fill, outlineColor)
	}
	body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="url(#sheen)"/>`,
		left, top, right-left+rx, bottom-top)
	body += fmt.Sprintf(`<ellipse cx="%.2f" cy="100" rx="%.2f" ry="%.2f" fill="none" stroke="%s" stroke-width="2"/>`,
		left, rx, ry, outlineColor)
	body += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2"/>`,
		left, top, right, top, outlineColor)
	body += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2"/>`,
		left, bottom, right, bottom, outlineColor)
	return body
}

func rectangularVertical(fill string, percentage float64) string {
	const (
		left, right = 64.0, 136.0
		top, bottom = 30.0, 170.0
	)
	level := bottom - (bottom-top)*percentage/100

	body := fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="%s"/>`,
		left, top, right-left, bottom-top, trackColor)
	if percentage > 0 {
		body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
			left, level, right-left, bottom-level, fill)
	}
	body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="none" stroke="%s" stroke-width="2"/>`,
		left, top, right-left, bottom-top, outlineColor)
	return body
}

func rectangularHorizontal(fill string, percentage float64) string {
	const (
		left, right = 30.0, 170.0
		top, bottom = 64.0, 136.0
	)
	edge := left + (right-left)*percentage/100

	body := fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="%s"/>`,
		left, top, right-left, bottom-top, trackColor)
	if percentage > 0 {
		body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
			left, top, edge-left, bottom-top, fill)
	}
	body += fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="none" stroke="%s" stroke-width="2"/>`,
		left, top, right-left, bottom-top, outlineColor)
	return body
}

func (t *Tank) CreateRenderer() fyne.WidgetRenderer {
	return &tankRenderer{t}
}

type tankRenderer struct {
	*Tank
}

func (r *tankRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	r.img.Move(fyne.NewPos(0, 0))
	r.img.Resize(space)

	r.displayText.Move(fyne.NewPos(0, space.Height*0.44))
	r.displayText.Resize(fyne.NewSize(space.Width, 24))

	r.titleText.Move(fyne.NewPos(0, space.Height-20))
	r.titleText.Resize(fyne.NewSize(space.Width, 18))

	if r.orientation == schema.Horizontal {
		r.minText.Move(fyne.NewPos(space.Width*0.12, space.Height*0.70))
		r.maxText.Move(fyne.NewPos(space.Width*0.80, space.Height*0.70))
	} else {
		r.minText.Move(fyne.NewPos(space.Width*0.72, space.Height*0.78))
		r.maxText.Move(fyne.NewPos(space.Width*0.72, space.Height*0.12))
	}

	r.redraw(r.shown)
}

func (r *tankRenderer) MinSize() fyne.Size { return r.minsize }

func (r *tankRenderer) Refresh() {}

func (r *tankRenderer) Destroy() {
	if r.anim != nil {
		r.anim.Stop()
	}
}

func (r *tankRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.img, r.displayText, r.titleText, r.minText, r.maxText}
}
