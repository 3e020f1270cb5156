package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"
	"math"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"gopkg.in/yaml.v3"

	"github.com/byosamah/volteria-canvas/pkg/alarms"
	"github.com/byosamah/volteria-canvas/pkg/dashboard"
	"github.com/byosamah/volteria-canvas/pkg/devices"
	"github.com/byosamah/volteria-canvas/pkg/editor"
	"github.com/byosamah/volteria-canvas/pkg/history"
	"github.com/byosamah/volteria-canvas/pkg/livedata"
	"github.com/byosamah/volteria-canvas/pkg/schema"
	"github.com/byosamah/volteria-canvas/pkg/theme"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
}

//go:embed dashboard.yaml
var defaultLayout []byte

// layoutFile is the on-disk dashboard description. Widgets are kept
// as raw maps so the JSON tagged-union decoding in pkg/schema stays
// the single source of truth for config shapes.
type layoutFile struct {
	SiteID  string           `yaml:"site_id"`
	Cols    int              `yaml:"cols"`
	Rows    int              `yaml:"rows"`
	Widgets []map[string]any `yaml:"widgets"`
}

func loadLayout(path string) (layoutFile, []schema.Widget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		data = defaultLayout
	}
	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return lf, nil, err
	}
	raw, err := json.Marshal(lf.Widgets)
	if err != nil {
		return lf, nil, err
	}
	var specs []schema.Widget
	if err := json.Unmarshal(raw, &specs); err != nil {
		return lf, nil, err
	}
	return lf, specs, nil
}

func saveLayout(path string, lf layoutFile, specs []schema.Widget) error {
	raw, err := json.Marshal(specs)
	if err != nil {
		return err
	}
	var ws []map[string]any
	if err := json.Unmarshal(raw, &ws); err != nil {
		return err
	}
	lf.Widgets = ws
	out, err := yaml.Marshal(lf)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func main() {
	path := "dashboard.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	lf, specs, err := loadLayout(path)
	if err != nil {
		log.Fatal("load layout: ", err)
	}

	a := app.NewWithID("com.byosamah.volteria-canvas")
	a.Settings().SetTheme(theme.Dashboard{})

	store, err := alarms.OpenSQLite("volteria-alarms.db")
	if err != nil {
		log.Fatal("open alarm store: ", err)
	}
	seedAlarms(store, lf.SiteID)

	feed := livedata.NewFeed()
	defer feed.Close()

	canvas := dashboard.New(dashboard.Options{
		SiteID:  lf.SiteID,
		Cols:    lf.Cols,
		Rows:    lf.Rows,
		Feed:    feed,
		History: simulatedHistory{},
		Alarms:  store,
		OnChange: func(ws []schema.Widget) {
			if err := saveLayout(path, lf, ws); err != nil {
				log.Println("save layout:", err)
			}
		},
	}, specs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	canvas.Start(ctx)
	go simulateFeed(ctx, feed, lf.SiteID)

	win := a.NewWindow("Volteria Canvas")
	win.Resize(fyne.NewSize(1100, 700))

	ed := editor.New(demoCatalog())
	editToggle := widget.NewCheck("Edit", canvas.SetEditMode)
	configure := widget.NewButton("Configure...", func() {
		showWidgetPicker(win, ed, canvas)
	})
	win.SetContent(container.NewBorder(
		container.NewHBox(editToggle, configure),
		nil, nil, nil,
		canvas,
	))
	win.ShowAndRun()
}

// showWidgetPicker opens the settings dialog for a chosen widget.
func showWidgetPicker(win fyne.Window, ed *editor.Editor, canvas *dashboard.Canvas) {
	ws := canvas.Widgets()
	if len(ws) == 0 {
		return
	}
	ids := make([]string, len(ws))
	for i, w := range ws {
		ids[i] = w.ID
	}
	sel := widget.NewSelect(ids, nil)
	pop := widget.NewModalPopUp(container.NewVBox(
		widget.NewLabel("Pick a widget"),
		sel,
	), win.Canvas())
	sel.OnChanged = func(id string) {
		pop.Hide()
		for _, w := range ws {
			if w.ID == id {
				ed.Show(win, w, func(edited schema.Widget) {
					canvas.Remove(edited.ID)
					canvas.Add(edited)
				})
				return
			}
		}
	}
	pop.Show()
}

// simulateFeed publishes a synthetic snapshot every five seconds so
// the demo runs without a telemetry backend.
func simulateFeed(ctx context.Context, feed *livedata.Feed, siteID string) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	publish := func() {
		now := time.Now()
		phase := float64(now.Unix()%3600) / 3600 * 2 * math.Pi
		power := 25 + 20*math.Sin(phase)
		soc := 55 + 35*math.Sin(phase/2)
		temp := 35 + 15*math.Sin(phase*1.3)
		batPower := 10 * math.Sin(phase*3)

		snap := &livedata.Snapshot{
			Timestamp: now,
			Registers: map[string]map[string]livedata.Value{
				"inv-1": {
					"power":       {Value: &power, Unit: "kW", Timestamp: now},
					"temperature": {Value: &temp, Unit: "C", Timestamp: now},
				},
				"bat-1": {
					"soc":   {Value: &soc, Unit: "%", Timestamp: now},
					"power": {Value: &batPower, Unit: "kW", Timestamp: now},
				},
			},
			Status: map[string]livedata.Status{
				"inv-1": {Online: true, LastSeen: &now},
				"bat-1": {Online: true, LastSeen: &now},
			},
		}
		if err := feed.Publish(siteID, snap); err != nil {
			log.Println("publish:", err)
		}
	}

	publish()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			publish()
		}
	}
}

// simulatedHistory backs the demo chart with synthetic sine series.
type simulatedHistory struct{}

func (simulatedHistory) Query(_ context.Context, q history.Query) (map[string][]history.Sample, error) {
	step := time.Minute
	switch q.Aggregation {
	case schema.AggHourly:
		step = time.Hour
	case schema.AggDaily:
		step = 24 * time.Hour
	}
	out := make(map[string][]history.Sample, len(q.Parameters))
	for i, p := range q.Parameters {
		var samples []history.Sample
		for t := q.Start; !t.After(q.End); t = t.Add(step) {
			phase := float64(t.Unix()) / 7200 * math.Pi
			samples = append(samples, history.Sample{
				Timestamp: t,
				Value:     30 + 25*math.Sin(phase+float64(i)),
			})
		}
		out[p.Key()] = samples
	}
	return out, nil
}

func seedAlarms(store *alarms.SQLiteStore, siteID string) {
	now := time.Now()
	seed := []alarms.Alarm{
		{ID: "a-1", SiteID: siteID, DeviceID: "inv-1", Severity: alarms.SeverityWarning, Message: "Inverter temperature high", RaisedAt: now.Add(-20 * time.Minute)},
		{ID: "a-2", SiteID: siteID, DeviceID: "bat-1", Severity: alarms.SeverityInfo, Message: "Battery entered float charge", RaisedAt: now.Add(-2 * time.Hour)},
	}
	for _, a := range seed {
		if err := store.Add(context.Background(), a); err != nil {
			log.Println("seed alarm:", err)
		}
	}
}

func demoCatalog() []devices.Device {
	return []devices.Device{
		{
			ID: "inv-1", Name: "Inverter 1", Type: "inverter",
			Registers: []devices.Register{
				{Name: "power", Unit: "kW", Access: devices.AccessRead},
				{Name: "temperature", Unit: "C", Access: devices.AccessRead},
				{Name: "mode", Access: devices.AccessWrite},
			},
		},
		{
			ID: "bat-1", Name: "Battery 1", Type: "battery",
			Registers: []devices.Register{
				{Name: "soc", Unit: "%", Access: devices.AccessRead},
				{Name: "power", Unit: "kW", Access: devices.AccessReadWrite},
			},
		},
	}
}
