// Package alarmlist renders the most recent alarms for a site as a
// scrolling list of severity-colored rows, refreshed on a poll.
package alarmlist

import (
	"context"
	"image/color"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/alarms"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/livedata"
	"github.com/byosamah/volteria-canvas/pkg/resolve"
	"github.com/byosamah/volteria-canvas/pkg/schema"
)

// RefreshInterval is how often an attached list re-queries the store.
const RefreshInterval = 30 * time.Second

type List struct {
	widget.BaseWidget

	cfg   *schema.AlarmListConfig
	store alarms.Store

	rows   *fyne.Container
	scroll *container.Scroll
	empty  *canvas.Text

	sched *livedata.Scheduler
	now   func() time.Time
}

func New(cfg *schema.AlarmListConfig, store alarms.Store) *List {
	l := &List{
		cfg:   cfg,
		store: store,
		now:   time.Now,
	}
	l.ExtendBaseWidget(l)

	l.rows = container.NewVBox()
	l.scroll = container.NewVScroll(l.rows)

	l.empty = canvas.NewText("No alarms", colors.Neutral)
	l.empty.Alignment = fyne.TextAlignCenter
	l.empty.TextSize = 12

	return l
}

func (l *List) filter() alarms.Filter {
	f := alarms.Filter{
		SiteID:       l.cfg.SiteID,
		ShowResolved: l.cfg.ShowResolved,
		MaxItems:     l.cfg.MaxItems,
	}
	for _, s := range l.cfg.Severities {
		f.Severities = append(f.Severities, alarms.Severity(s))
	}
	return f
}

// Reload queries the store and rebuilds the rows. A failed query
// keeps the previous rows rather than flashing empty.
func (l *List) Reload(ctx context.Context) {
	if l.store == nil {
		return
	}
	items, err := l.store.Query(ctx, l.filter())
	if err != nil {
		log.Println("alarm query:", err)
		return
	}
	l.SetAlarms(items)
}

func (l *List) SetAlarms(items []alarms.Alarm) {
	l.rows.RemoveAll()
	now := l.now()
	for _, a := range items {
		l.rows.Add(newRow(a, now))
	}
	if len(items) == 0 {
		l.empty.Show()
	} else {
		l.empty.Hide()
	}
	l.rows.Refresh()
}

func (l *List) StartAutoRefresh(ctx context.Context) {
	if l.sched != nil {
		return
	}
	l.sched = livedata.NewScheduler(RefreshInterval, l.Reload)
	l.sched.Start(ctx)
}

func (l *List) SetVisible(visible bool) {
	if l.sched != nil {
		l.sched.SetVisible(visible)
	}
}

func severityColor(s alarms.Severity) color.RGBA {
	switch s {
	case alarms.SeverityCritical:
		return colors.Red
	case alarms.SeverityWarning:
		return colors.Amber
	default:
		return colors.Blue
	}
}

func newRow(a alarms.Alarm, now time.Time) fyne.CanvasObject {
	dot := canvas.NewCircle(severityColor(a.Severity))
	dot.Resize(fyne.NewSize(8, 8))

	msg := canvas.NewText(a.Message, colors.Neutral)
	msg.TextSize = 12
	if a.Resolved {
		msg.TextStyle.Italic = true
	}

	when := canvas.NewText(resolve.RelativeTime(a.RaisedAt, now), colors.Neutral)
	when.TextSize = 10

	return container.NewHBox(
		container.NewCenter(dot),
		msg,
		widget.NewLabel(""), // spacer
		when,
	)
}

func (l *List) CreateRenderer() fyne.WidgetRenderer {
	return &listRenderer{l}
}

type listRenderer struct {
	*List
}

func (r *listRenderer) Layout(space fyne.Size) {
	r.scroll.Move(fyne.NewPos(0, 0))
	r.scroll.Resize(space)
	r.empty.Move(fyne.NewPos(0, space.Height/2-8))
	r.empty.Resize(fyne.NewSize(space.Width, 16))
}

func (r *listRenderer) MinSize() fyne.Size { return fyne.NewSize(120, 80) }

func (r *listRenderer) Refresh() {}

func (r *listRenderer) Destroy() {
	if r.sched != nil {
		r.sched.Stop()
	}
}

func (r *listRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.scroll, r.empty}
}
