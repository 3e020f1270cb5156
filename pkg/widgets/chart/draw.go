package chart

import (
	"image"
	"image/color"
	"math"

	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/history"
	"github.com/byosamah/volteria-canvas/pkg/schema"
)

// inner plot margins in image pixels; axis captions are laid out as
// overlay text by the widget, not rastered here
const (
	marginLeft   = 8
	marginRight  = 8
	marginTop    = 8
	marginBottom = 8
)

type pixelSetter interface {
	SetRGBA(x, y int, c color.RGBA)
}

// bounded clips writes to the image rect so series that touch the
// domain edge never write out of bounds.
type bounded struct {
	img *image.RGBA
}

func (b bounded) SetRGBA(x, y int, c color.RGBA) {
	if !image.Pt(x, y).In(b.img.Rect) {
		return
	}
	b.img.SetRGBA(x, y, c)
}

// drawLine is a Bresenham raster line.
func drawLine(p pixelSetter, x1, y1, x2, y2 int, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	absDx, absDy := abs(dx), abs(dy)

	xInc, yInc := sign(dx), sign(dy)

	if absDx == 0 && absDy == 0 {
		p.SetRGBA(x1, y1, col)
		return
	}

	var d, dInc1, dInc2 int
	isXDominant := absDx > absDy
	if isXDominant {
		d, dInc1, dInc2 = 2*absDy-absDx, 2*absDy, 2*(absDy-absDx)
	} else {
		d, dInc1, dInc2 = 2*absDx-absDy, 2*absDx, 2*(absDx-absDy)
	}

	for {
		p.SetRGBA(x1, y1, col)
		if x1 == x2 && y1 == y2 {
			break
		}
		if isXDominant {
			if d < 0 {
				d += dInc1
			} else {
				y1 += yInc
				d += dInc2
			}
			x1 += xInc
		} else {
			if d < 0 {
				d += dInc1
			} else {
				x1 += xInc
				d += dInc2
			}
			y1 += yInc
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	if n < 0 {
		return -1
	} else if n > 0 {
		return 1
	}
	return 0
}

// plotModel is everything needed to raster the chart: the joined,
// downsampled points plus the per-side axis domains.
type plotModel struct {
	points  []history.Point
	params  []schema.ChartParameter
	domains map[schema.AxisSide][2]float64
	hidden  map[string]bool
}

func buildModel(cfg *schema.ChartConfig, points []history.Point) *plotModel {
	m := &plotModel{
		points:  points,
		params:  cfg.Parameters,
		domains: make(map[schema.AxisSide][2]float64),
		hidden:  make(map[string]bool),
	}
	for _, side := range []schema.AxisSide{schema.AxisLeft, schema.AxisRight} {
		var keys []string
		for _, p := range cfg.Parameters {
			if p.YAxis == side {
				keys = append(keys, seriesKey(p))
			}
		}
		if lo, hi, ok := history.AxisDomain(points, keys); ok {
			m.domains[side] = [2]float64{lo, hi}
		}
	}
	return m
}

func seriesKey(p schema.ChartParameter) string {
	return history.Parameter{DeviceID: p.DeviceID, Register: p.RegisterName}.Key()
}

func seriesColor(p schema.ChartParameter) color.RGBA {
	return colors.ParseHex(p.Color, colors.ForSeries(seriesKey(p)))
}

func (m *plotModel) domain(side schema.AxisSide) (float64, float64, bool) {
	d, ok := m.domains[side]
	if !ok {
		return 0, 0, false
	}
	return d[0], d[1], true
}

func (m *plotModel) xAt(i, plotW int) int {
	n := len(m.points)
	if n <= 1 {
		return marginLeft + plotW/2
	}
	return marginLeft + i*(plotW-1)/(n-1)
}

func (m *plotModel) yAt(v float64, side schema.AxisSide, plotH int) int {
	lo, hi, ok := m.domain(side)
	if !ok || hi <= lo {
		return marginTop + plotH/2
	}
	frac := (v - lo) / (hi - lo)
	return marginTop + plotH - 1 - int(math.Round(frac*float64(plotH-1)))
}

// render rasters every visible series onto a fresh image, lines and
// areas via Bresenham segments, bars as filled columns.
func (m *plotModel) render(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	dst := bounded{img}
	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom
	if plotW < 2 || plotH < 2 {
		return img
	}

	// quarter gridlines
	grid := color.RGBA{R: 0x2e, G: 0x2e, B: 0x2e, A: 0xff}
	for q := 0; q <= 4; q++ {
		y := marginTop + q*(plotH-1)/4
		drawLine(dst, marginLeft, y, marginLeft+plotW-1, y, grid)
	}

	for _, p := range m.params {
		key := seriesKey(p)
		if m.hidden[key] {
			continue
		}
		col := seriesColor(p)
		switch p.ChartType {
		case schema.ChartBar:
			m.renderBars(dst, key, p.YAxis, col, plotW, plotH)
		case schema.ChartArea:
			m.renderArea(dst, key, p.YAxis, col, plotW, plotH)
			m.renderLine(dst, key, p.YAxis, col, plotW, plotH)
		default:
			m.renderLine(dst, key, p.YAxis, col, plotW, plotH)
		}
	}
	return img
}

// renderLine connects consecutive samples, breaking the stroke at
// missing values instead of bridging them.
func (m *plotModel) renderLine(dst pixelSetter, key string, side schema.AxisSide, col color.RGBA, plotW, plotH int) {
	prevX, prevY := -1, -1
	for i, pt := range m.points {
		v := pt.Values[key]
		if v == nil {
			prevX = -1
			continue
		}
		x := m.xAt(i, plotW)
		y := m.yAt(*v, side, plotH)
		if prevX >= 0 {
			drawLine(dst, prevX, prevY, x, y, col)
		} else {
			dst.SetRGBA(x, y, col)
		}
		prevX, prevY = x, y
	}
}

func (m *plotModel) renderArea(dst pixelSetter, key string, side schema.AxisSide, col color.RGBA, plotW, plotH int) {
	fill := color.RGBA{R: col.R, G: col.G, B: col.B, A: 0x50}
	baseline := marginTop + plotH - 1
	for i, pt := range m.points {
		v := pt.Values[key]
		if v == nil {
			continue
		}
		x := m.xAt(i, plotW)
		y := m.yAt(*v, side, plotH)
		drawLine(dst, x, y, x, baseline, fill)
	}
}

func (m *plotModel) renderBars(dst pixelSetter, key string, side schema.AxisSide, col color.RGBA, plotW, plotH int) {
	n := len(m.points)
	if n == 0 {
		return
	}
	half := plotW / n * 3 / 10
	if half < 1 {
		half = 1
	}
	baseline := marginTop + plotH - 1
	for i, pt := range m.points {
		v := pt.Values[key]
		if v == nil {
			continue
		}
		x := m.xAt(i, plotW)
		y := m.yAt(*v, side, plotH)
		for bx := x - half; bx <= x+half; bx++ {
			drawLine(dst, bx, y, bx, baseline, col)
		}
	}
}

// nearestIndex maps an x fraction of the plot width back to a point
// index, for the hover tooltip.
func (m *plotModel) nearestIndex(frac float64) int {
	n := len(m.points)
	if n == 0 {
		return -1
	}
	i := int(math.Round(frac * float64(n-1)))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return i
}
