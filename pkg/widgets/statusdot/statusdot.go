// Package statusdot renders a device online indicator: a colored dot,
// the device label and a relative last-seen caption.
package statusdot

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

type Indicator struct {
	widget.BaseWidget

	dot      *canvas.Circle
	label    *canvas.Text
	lastSeen *canvas.Text

	size fyne.Size
}

func New() *Indicator {
	s := &Indicator{}
	s.ExtendBaseWidget(s)

	s.dot = canvas.NewCircle(colors.Neutral)

	s.label = canvas.NewText("", colors.Neutral)
	s.label.TextSize = 14

	s.lastSeen = canvas.NewText(widgets.NoData, colors.Neutral)
	s.lastSeen.TextSize = 11

	return s
}

func (s *Indicator) SetState(st widgets.StatusState) {
	switch {
	case !st.Known:
		s.dot.FillColor = colors.Neutral
	case st.Online:
		s.dot.FillColor = colors.Green
	default:
		s.dot.FillColor = colors.Red
	}
	s.label.Text = st.Label
	s.lastSeen.Text = st.LastSeen
	canvas.Refresh(s.dot)
	canvas.Refresh(s.label)
	canvas.Refresh(s.lastSeen)
}

func (s *Indicator) CreateRenderer() fyne.WidgetRenderer {
	return &indicatorRenderer{s}
}

type indicatorRenderer struct {
	*Indicator
}

func (r *indicatorRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	r.dot.Move(fyne.NewPos(8, space.Height/2-6))
	r.dot.Resize(fyne.NewSize(12, 12))

	r.label.Move(fyne.NewPos(28, space.Height/2-18))
	r.lastSeen.Move(fyne.NewPos(28, space.Height/2+2))
}

func (r *indicatorRenderer) MinSize() fyne.Size { return fyne.NewSize(80, 36) }

func (r *indicatorRenderer) Refresh() {}

func (r *indicatorRenderer) Destroy() {}

func (r *indicatorRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.dot, r.label, r.lastSeen}
}
