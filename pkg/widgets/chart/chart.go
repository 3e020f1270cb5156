// Package chart renders historical series with independent left and
// right Y axes. Series are fetched per parameter, joined on a shared
// timestamp union and downsampled before drawing; a hover cursor shows
// every visible series' value at the nearest point.
package chart

import (
	"context"
	"image"
	"image/color"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/history"
	"github.com/byosamah/volteria-canvas/pkg/livedata"
	"github.com/byosamah/volteria-canvas/pkg/resolve"
	"github.com/byosamah/volteria-canvas/pkg/schema"
)

// RefreshInterval is how often an attached chart re-queries history.
const RefreshInterval = 30 * time.Second

type Chart struct {
	widget.BaseWidget

	siteID  string
	cfg     *schema.ChartConfig
	querier history.Querier

	model *plotModel

	img          *canvas.Image
	titleText    *canvas.Text
	noData       *canvas.Text
	leftMinText  *canvas.Text
	leftMaxText  *canvas.Text
	rightMinText *canvas.Text
	rightMaxText *canvas.Text
	startText    *canvas.Text
	endText      *canvas.Text
	cursor       *canvas.Line
	tooltip      *canvas.Text
	legend       *fyne.Container

	sched *livedata.Scheduler
	size  fyne.Size
}

var _ desktop.Hoverable = (*Chart)(nil)

func New(siteID string, cfg *schema.ChartConfig, querier history.Querier) *Chart {
	c := &Chart{
		siteID:  siteID,
		cfg:     cfg,
		querier: querier,
	}
	c.ExtendBaseWidget(c)

	c.model = buildModel(cfg, nil)

	c.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	c.img.FillMode = canvas.ImageFillStretch
	c.img.ScaleMode = canvas.ImageScaleFastest

	c.titleText = canvas.NewText("", colors.Neutral)
	c.titleText.TextSize = 14

	c.noData = canvas.NewText("No data available", colors.Neutral)
	c.noData.Alignment = fyne.TextAlignCenter
	c.noData.TextSize = 14

	axisText := func() *canvas.Text {
		t := canvas.NewText("", colors.Neutral)
		t.TextSize = 10
		t.TextStyle.Monospace = true
		return t
	}
	c.leftMinText = axisText()
	c.leftMaxText = axisText()
	c.rightMinText = axisText()
	c.rightMaxText = axisText()
	c.startText = axisText()
	c.endText = axisText()

	c.cursor = canvas.NewLine(color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0x90})
	c.cursor.StrokeWidth = 1
	c.cursor.Hide()

	c.tooltip = canvas.NewText("", colors.Neutral)
	c.tooltip.TextSize = 11
	c.tooltip.TextStyle.Monospace = true
	c.tooltip.Hide()

	c.legend = container.NewHBox()
	for i := range cfg.Parameters {
		p := cfg.Parameters[i]
		key := seriesKey(p)
		c.legend.Add(newLegendEntry(legendLabel(p), seriesColor(p),
			func(enabled bool) {
				c.model.hidden[key] = !enabled
				c.redraw()
			},
			func(col color.Color) {
				if rgba, ok := col.(color.RGBA); ok {
					c.cfg.Parameters[i].Color = colors.Hex(rgba)
				} else {
					r, g, b, a := col.RGBA()
					c.cfg.Parameters[i].Color = colors.Hex(color.RGBA{
						R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8),
					})
				}
				c.redraw()
			}))
	}

	return c
}

func legendLabel(p schema.ChartParameter) string {
	if p.Label != "" {
		return p.Label
	}
	return p.RegisterName
}

func (c *Chart) SetTitle(title string) {
	c.titleText.Text = title
	c.titleText.Refresh()
}

// Reload queries history for the configured range and rebuilds the
// plot. A failed or empty fetch shows the no-data state instead of a
// stale plot.
func (c *Chart) Reload(ctx context.Context) {
	if c.querier == nil {
		return
	}
	end := time.Now()
	start := end.Add(-history.RangeDuration(c.cfg.TimeRange))
	agg := history.EffectiveAggregation(c.cfg)

	params := make([]history.Parameter, 0, len(c.cfg.Parameters))
	for _, p := range c.cfg.Parameters {
		params = append(params, history.Parameter{DeviceID: p.DeviceID, Register: p.RegisterName})
	}

	series, err := c.querier.Query(ctx, history.Query{
		SiteID:      c.siteID,
		Parameters:  params,
		Start:       start,
		End:         end,
		Aggregation: agg,
	})
	if err != nil {
		log.Println("chart query:", err)
		c.SetData(nil)
		return
	}
	points := history.Downsample(history.BuildPoints(series, agg), history.MaxChartPoints)
	c.SetData(points)
}

// SetData replaces the joined points and recomputes both axis domains.
func (c *Chart) SetData(points []history.Point) {
	hidden := c.model.hidden
	c.model = buildModel(c.cfg, points)
	c.model.hidden = hidden

	if lo, hi, ok := c.model.domain(schema.AxisLeft); ok {
		c.leftMinText.Text = resolve.FormatValue(&lo, 1)
		c.leftMaxText.Text = resolve.FormatValue(&hi, 1)
	} else {
		c.leftMinText.Text = ""
		c.leftMaxText.Text = ""
	}
	if lo, hi, ok := c.model.domain(schema.AxisRight); ok {
		c.rightMinText.Text = resolve.FormatValue(&lo, 1)
		c.rightMaxText.Text = resolve.FormatValue(&hi, 1)
	} else {
		c.rightMinText.Text = ""
		c.rightMaxText.Text = ""
	}
	if n := len(points); n > 0 {
		c.startText.Text = points[0].Label
		c.endText.Text = points[n-1].Label
		c.noData.Hide()
	} else {
		c.startText.Text = ""
		c.endText.Text = ""
		c.noData.Show()
	}
	c.redraw()
}

// StartAutoRefresh begins periodic reloads. SetVisible pauses and
// resumes the underlying poll.
func (c *Chart) StartAutoRefresh(ctx context.Context) {
	if c.sched != nil {
		return
	}
	c.sched = livedata.NewScheduler(RefreshInterval, c.Reload)
	c.sched.Start(ctx)
}

func (c *Chart) SetVisible(visible bool) {
	if c.sched != nil {
		c.sched.SetVisible(visible)
	}
}

func (c *Chart) plotArea() (pos fyne.Position, size fyne.Size) {
	pos = fyne.NewPos(34, 22)
	size = fyne.NewSize(c.size.Width-68, c.size.Height-22-36)
	if size.Width < 1 {
		size.Width = 1
	}
	if size.Height < 1 {
		size.Height = 1
	}
	return pos, size
}

func (c *Chart) redraw() {
	_, area := c.plotArea()
	w, h := int(area.Width), int(area.Height)
	if w < 2 || h < 2 {
		w, h = 2, 2
	}
	c.img.Image = c.model.render(w, h)
	canvas.Refresh(c.img)
}

func (c *Chart) MouseIn(*desktop.MouseEvent) {}

func (c *Chart) MouseMoved(ev *desktop.MouseEvent) {
	pos, area := c.plotArea()
	x := ev.Position.X - pos.X
	if x < 0 || x > area.Width || len(c.model.points) == 0 {
		c.MouseOut()
		return
	}
	i := c.model.nearestIndex(float64(x / area.Width))
	if i < 0 {
		return
	}
	pt := c.model.points[i]

	var b strings.Builder
	b.WriteString(pt.Label)
	for _, p := range c.model.params {
		key := seriesKey(p)
		if c.model.hidden[key] {
			continue
		}
		b.WriteString("  ")
		b.WriteString(legendLabel(p))
		b.WriteString(": ")
		b.WriteString(resolve.FormatValue(pt.Values[key], 1))
		if p.Unit != "" && pt.Values[key] != nil {
			b.WriteString(" ")
			b.WriteString(p.Unit)
		}
	}
	c.tooltip.Text = b.String()
	c.tooltip.Move(fyne.NewPos(pos.X, 4))
	c.tooltip.Show()
	c.tooltip.Refresh()

	cx := pos.X + float32(c.model.xAt(i, int(area.Width)))
	c.cursor.Position1 = fyne.NewPos(cx, pos.Y)
	c.cursor.Position2 = fyne.NewPos(cx, pos.Y+area.Height)
	c.cursor.Show()
	c.cursor.Refresh()
}

func (c *Chart) MouseOut() {
	c.cursor.Hide()
	c.tooltip.Hide()
	c.cursor.Refresh()
	c.tooltip.Refresh()
}

func (c *Chart) CreateRenderer() fyne.WidgetRenderer {
	return &chartRenderer{c}
}

type chartRenderer struct {
	*Chart
}

func (r *chartRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	pos, area := r.plotArea()
	r.img.Move(pos)
	r.img.Resize(area)

	r.titleText.Move(fyne.NewPos(4, 2))

	r.noData.Move(fyne.NewPos(0, space.Height/2-10))
	r.noData.Resize(fyne.NewSize(space.Width, 20))

	r.leftMaxText.Move(fyne.NewPos(2, pos.Y))
	r.leftMinText.Move(fyne.NewPos(2, pos.Y+area.Height-12))
	r.rightMaxText.Move(fyne.NewPos(space.Width-32, pos.Y))
	r.rightMinText.Move(fyne.NewPos(space.Width-32, pos.Y+area.Height-12))

	r.startText.Move(fyne.NewPos(pos.X, pos.Y+area.Height+2))
	r.endText.Move(fyne.NewPos(pos.X+area.Width-40, pos.Y+area.Height+2))

	r.legend.Move(fyne.NewPos(pos.X, space.Height-18))
	r.legend.Resize(fyne.NewSize(area.Width, 16))

	r.redraw()
}

func (r *chartRenderer) MinSize() fyne.Size { return fyne.NewSize(160, 100) }

func (r *chartRenderer) Refresh() { r.redraw() }

func (r *chartRenderer) Destroy() {
	if r.sched != nil {
		r.sched.Stop()
	}
}

func (r *chartRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{
		r.img, r.titleText, r.noData,
		r.leftMinText, r.leftMaxText, r.rightMinText, r.rightMaxText,
		r.startText, r.endText,
		r.legend, r.cursor, r.tooltip,
	}
}
