package chart

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/lusingander/colorpicker"
)

// legendEntry is a tappable series label. Tapping toggles the series
// visibility; secondary tap opens a color picker.
type legendEntry struct {
	widget.BaseWidget
	text          *canvas.Text
	enabled       bool
	onTapped      func(bool)
	onColorUpdate func(col color.Color)
	color         color.Color
}

func newLegendEntry(label string, col color.Color, onTapped func(enabled bool), onColorUpdate func(col color.Color)) *legendEntry {
	le := &legendEntry{
		text:          canvas.NewText(label, col),
		enabled:       true,
		onTapped:      onTapped,
		onColorUpdate: onColorUpdate,
		color:         col,
	}
	le.text.TextStyle = fyne.TextStyle{Bold: true}
	le.text.TextSize = 12
	le.ExtendBaseWidget(le)
	return le
}

func (le *legendEntry) enable() {
	le.enabled = true
	le.text.Color = le.color
	le.text.TextStyle = fyne.TextStyle{Bold: true}
	le.text.Refresh()
}

func (le *legendEntry) disable() {
	le.enabled = false
	le.text.TextStyle = fyne.TextStyle{Italic: true}
	le.text.Color = color.RGBA{128, 128, 128, 255}
	le.text.Refresh()
}

func (le *legendEntry) Tapped(*fyne.PointEvent) {
	if le.enabled {
		le.disable()
	} else {
		le.enable()
	}
	if le.onTapped != nil {
		le.onTapped(le.enabled)
	}
}

func (le *legendEntry) TappedSecondary(*fyne.PointEvent) {
	picker := colorpicker.New(200, colorpicker.StyleHueCircle)
	picker.SetOnChanged(func(c color.Color) {
		le.color = c
		if le.enabled {
			le.text.Color = c
			le.text.Refresh()
		}
		if le.onColorUpdate != nil {
			le.onColorUpdate(c)
		}
	})

	cv := fyne.CurrentApp().Driver().CanvasForObject(le.text)

	var modal *widget.PopUp
	modal = widget.NewModalPopUp(container.NewVBox(
		picker,
		widget.NewButton("Close", func() {
			modal.Hide()
		}),
	), cv)
	modal.Show()
}

func (le *legendEntry) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(le.text)
}
