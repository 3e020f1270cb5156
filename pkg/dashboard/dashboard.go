// Package dashboard assembles a page of configured widgets on a grid,
// routes live snapshots to each one and exposes an edit mode for
// repositioning cables and saving the layout back out.
package dashboard

import (
	"context"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/alarms"
	"github.com/byosamah/volteria-canvas/pkg/history"
	"github.com/byosamah/volteria-canvas/pkg/livedata"
	"github.com/byosamah/volteria-canvas/pkg/resolve"
	"github.com/byosamah/volteria-canvas/pkg/schema"
	"github.com/byosamah/volteria-canvas/pkg/widgets/alarmlist"
	"github.com/byosamah/volteria-canvas/pkg/widgets/bargauge"
	"github.com/byosamah/volteria-canvas/pkg/widgets/cable"
	"github.com/byosamah/volteria-canvas/pkg/widgets/chart"
	"github.com/byosamah/volteria-canvas/pkg/widgets/dial"
	"github.com/byosamah/volteria-canvas/pkg/widgets/imagebox"
	"github.com/byosamah/volteria-canvas/pkg/widgets/statusdot"
	"github.com/byosamah/volteria-canvas/pkg/widgets/tank"
	"github.com/byosamah/volteria-canvas/pkg/widgets/textbox"
	"github.com/byosamah/volteria-canvas/pkg/widgets/thermometer"
	"github.com/byosamah/volteria-canvas/pkg/widgets/unknown"
	"github.com/byosamah/volteria-canvas/pkg/widgets/valuedisplay"
)

const (
	DefaultCols = 12
	DefaultRows = 8
)

// Options wires the canvas to its collaborators. Feed may be nil for
// a static preview; History and Alarms may be nil when no chart or
// alarm list widget is configured.
type Options struct {
	SiteID      string
	Cols, Rows  int
	Feed        *livedata.Feed
	History     history.Querier
	Alarms      alarms.Store
	ImageLoader imagebox.Loader

	// OnChange fires after any edit-mode mutation, with the current
	// widget list. Persisting it is the caller's job.
	OnChange func([]schema.Widget)
}

// item pairs one configured widget with its canvas object and its
// per-snapshot update hook.
type item struct {
	spec   schema.Widget
	obj    fyne.CanvasObject
	update func(*livedata.Snapshot)
	closer func()
}

type Canvas struct {
	widget.BaseWidget

	opts  Options
	items []*item

	editMode bool
	unsub    func()
	runCtx   context.Context
	size     fyne.Size
}

func New(opts Options, specs []schema.Widget) *Canvas {
	if opts.Cols <= 0 {
		opts.Cols = DefaultCols
	}
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	c := &Canvas{opts: opts}
	c.ExtendBaseWidget(c)

	for _, s := range specs {
		c.items = append(c.items, c.buildItem(s))
	}
	c.sortItems()
	return c
}

// Start subscribes to the live feed and begins chart and alarm polls.
// It returns immediately; ctx cancellation tears everything down.
func (c *Canvas) Start(ctx context.Context) {
	c.runCtx = ctx
	for _, it := range c.items {
		switch w := it.obj.(type) {
		case *chart.Chart:
			w.StartAutoRefresh(ctx)
		case *alarmlist.List:
			w.StartAutoRefresh(ctx)
		}
	}
	if c.opts.Feed == nil {
		return
	}
	c.unsub = c.opts.Feed.SubscribeFunc(c.opts.SiteID, c.Apply)
	go func() {
		<-ctx.Done()
		c.Close()
	}()
}

// updateCtx is the lifetime context for loads triggered by snapshot
// updates, so canceling Start's context aborts in-flight fetches.
func (c *Canvas) updateCtx() context.Context {
	if c.runCtx != nil {
		return c.runCtx
	}
	return context.Background()
}

// Apply routes one snapshot to every bound widget.
func (c *Canvas) Apply(snap *livedata.Snapshot) {
	for _, it := range c.items {
		if it.update != nil {
			it.update(snap)
		}
	}
}

// SetPageVisible pauses or resumes the polling widgets, mirroring a
// hidden host page.
func (c *Canvas) SetPageVisible(visible bool) {
	for _, it := range c.items {
		switch w := it.obj.(type) {
		case *chart.Chart:
			w.SetVisible(visible)
		case *alarmlist.List:
			w.SetVisible(visible)
		}
	}
}

// SetEditMode toggles cable endpoint handles.
func (c *Canvas) SetEditMode(edit bool) {
	c.editMode = edit
	for _, it := range c.items {
		if cb, ok := it.obj.(*cable.Cable); ok {
			cb.SetEditMode(edit)
		}
	}
}

func (c *Canvas) EditMode() bool { return c.editMode }

// Widgets returns the current widget list, stacking order preserved.
func (c *Canvas) Widgets() []schema.Widget {
	out := make([]schema.Widget, len(c.items))
	for i, it := range c.items {
		out[i] = it.spec
	}
	return out
}

// Add builds and attaches one more widget, keeping stacking order.
func (c *Canvas) Add(s schema.Widget) {
	c.items = append(c.items, c.buildItem(s))
	c.sortItems()
	c.Refresh()
	c.changed()
}

// Remove detaches the widget with the given id.
func (c *Canvas) Remove(id string) {
	for i, it := range c.items {
		if it.spec.ID == id {
			if it.closer != nil {
				it.closer()
			}
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.Refresh()
			c.changed()
			return
		}
	}
}

func (c *Canvas) Close() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
	for _, it := range c.items {
		if it.closer != nil {
			it.closer()
		}
	}
}

func (c *Canvas) changed() {
	if c.opts.OnChange != nil {
		c.opts.OnChange(c.Widgets())
	}
}

func (c *Canvas) sortItems() {
	sort.SliceStable(c.items, func(i, j int) bool {
		return c.items[i].spec.ZIndex < c.items[j].spec.ZIndex
	})
}

// buildItem is the widget factory: one arm per widget type, an
// unrecognized type gets the placeholder instead of failing the page.
func (c *Canvas) buildItem(s schema.Widget) *item {
	it := &item{spec: s}

	switch cfg := s.Config.(type) {
	case *schema.ValueDisplayConfig:
		w := valuedisplay.New()
		it.obj = w
		it.update = func(snap *livedata.Snapshot) { w.SetState(resolve.ValueDisplay(cfg, snap)) }

	case *schema.GaugeConfig:
		it.obj, it.update = c.buildGauge(cfg)

	case *schema.CableConfig:
		w := cable.New(cfg, c.opts.Cols, c.opts.Rows)
		w.OnEndpointMoved = func(start bool, dx, dy float64) {
			if start {
				cfg.StartX += dx
				cfg.StartY += dy
			} else {
				cfg.EndX += dx
				cfg.EndY += dy
			}
			w.Refresh()
			c.changed()
		}
		it.obj = w
		it.update = func(snap *livedata.Snapshot) { w.SetState(resolve.Cable(cfg, snap)) }

	case *schema.ChartConfig:
		it.obj = chart.New(c.opts.SiteID, cfg, c.opts.History)

	case *schema.ImageConfig:
		w := imagebox.New(c.opts.ImageLoader)
		it.obj = w
		it.update = func(snap *livedata.Snapshot) {
			w.SetState(c.updateCtx(), resolve.Image(cfg, snap))
		}

	case *schema.StatusIndicatorConfig:
		w := statusdot.New()
		it.obj = w
		it.update = func(snap *livedata.Snapshot) {
			w.SetState(resolve.Status(cfg, snap, time.Now()))
		}

	case *schema.AlarmListConfig:
		if cfg.SiteID == "" {
			cfg.SiteID = c.opts.SiteID
		}
		it.obj = alarmlist.New(cfg, c.opts.Alarms)

	case *schema.TextConfig:
		it.obj = textbox.New(cfg)

	default:
		it.obj = unknown.New()
	}
	return it
}

func (c *Canvas) buildGauge(cfg *schema.GaugeConfig) (fyne.CanvasObject, func(*livedata.Snapshot)) {
	switch cfg.Style {
	case schema.StyleTank:
		w := tank.New(cfg.TankShape, cfg.Orientation)
		return w, func(snap *livedata.Snapshot) { w.SetState(resolve.Gauge(cfg, snap)) }
	case schema.StyleThermometer:
		w := thermometer.New()
		return w, func(snap *livedata.Snapshot) { w.SetState(resolve.Gauge(cfg, snap)) }
	case schema.StyleBar:
		w := bargauge.New(cfg.Orientation)
		return w, func(snap *livedata.Snapshot) { w.SetState(resolve.Gauge(cfg, snap)) }
	default:
		w := dial.New()
		return w, func(snap *livedata.Snapshot) { w.SetState(resolve.Gauge(cfg, snap)) }
	}
}

func (c *Canvas) CreateRenderer() fyne.WidgetRenderer {
	return &canvasRenderer{c}
}

type canvasRenderer struct {
	*Canvas
}

// Layout maps grid cells to pixels. Cables span the whole canvas so
// their grid coordinates stay resolution independent.
func (r *canvasRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	cellW := space.Width / float32(r.opts.Cols)
	cellH := space.Height / float32(r.opts.Rows)

	for _, it := range r.items {
		if _, ok := it.obj.(*cable.Cable); ok {
			it.obj.Move(fyne.NewPos(0, 0))
			it.obj.Resize(space)
			continue
		}
		s := it.spec
		it.obj.Move(fyne.NewPos(float32(s.Col)*cellW, float32(s.Row)*cellH))
		it.obj.Resize(fyne.NewSize(float32(s.Width)*cellW, float32(s.Height)*cellH))
	}
}

func (r *canvasRenderer) MinSize() fyne.Size { return fyne.NewSize(320, 200) }

func (r *canvasRenderer) Refresh() {
	r.size = fyne.Size{}
	r.Layout(r.Canvas.Size())
}

func (r *canvasRenderer) Destroy() {
	r.Close()
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, len(r.items))
	for i, it := range r.items {
		objs[i] = it.obj
	}
	return objs
}
