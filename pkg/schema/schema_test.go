package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/byosamah/volteria-canvas/pkg/schema"
)

func TestUnmarshalWidget(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want func(t *testing.T, w schema.Widget)
	}{
		{
			name: "value display with defaults",
			in:   `{"id":"w1","widget_type":"value_display","row":1,"col":2,"width":2,"height":1,"config":{"device_id":"dev1","register_name":"temp"}}`,
			want: func(t *testing.T, w schema.Widget) {
				cfg, ok := w.Config.(*schema.ValueDisplayConfig)
				if !ok {
					t.Fatalf("config type = %T", w.Config)
				}
				if cfg.DeviceID != "dev1" || cfg.RegisterName != "temp" {
					t.Errorf("device/register = %q/%q", cfg.DeviceID, cfg.RegisterName)
				}
				if cfg.Places() != 1 {
					t.Errorf("Places() = %d, want default 1", cfg.Places())
				}
			},
		},
		{
			name: "gauge unknown style falls back to dial",
			in:   `{"widget_type":"gauge","config":{"gauge_style":"hologram","min_value":0,"max_value":0}}`,
			want: func(t *testing.T, w schema.Widget) {
				cfg := w.Config.(*schema.GaugeConfig)
				if cfg.Style != schema.StyleDial {
					t.Errorf("style = %q, want dial", cfg.Style)
				}
				if cfg.Max != 100 {
					t.Errorf("max = %v, want default 100", cfg.Max)
				}
				if !cfg.ValueShown() || !cfg.MinMaxShown() {
					t.Error("value/minmax captions should default on")
				}
			},
		},
		{
			name: "unknown widget type keeps loading",
			in:   `{"id":"w9","widget_type":"foo","config":{"whatever":true}}`,
			want: func(t *testing.T, w schema.Widget) {
				if w.Type != schema.WidgetType("foo") {
					t.Errorf("type = %q", w.Type)
				}
				if w.Config != nil {
					t.Errorf("config = %#v, want nil", w.Config)
				}
			},
		},
		{
			name: "alarm list caps default",
			in:   `{"widget_type":"alarm_list","config":{"site_id":"s1","severities":["critical"]}}`,
			want: func(t *testing.T, w schema.Widget) {
				cfg := w.Config.(*schema.AlarmListConfig)
				if cfg.MaxItems != 8 {
					t.Errorf("max_items = %d, want 8", cfg.MaxItems)
				}
			},
		},
		{
			name: "cable pre-threshold config animates",
			in:   `{"widget_type":"cable","config":{"start_x":1,"start_y":1,"end_x":3,"end_y":2}}`,
			want: func(t *testing.T, w schema.Widget) {
				cfg := w.Config.(*schema.CableConfig)
				if !cfg.AnimatedOn() {
					t.Error("cable without animated key should animate")
				}
				if cfg.PathStyle != schema.PathStraight {
					t.Errorf("path style = %q, want straight", cfg.PathStyle)
				}
				if cfg.Thickness != 3 {
					t.Errorf("thickness = %v, want 3", cfg.Thickness)
				}
			},
		},
		{
			name: "chart parameter defaults",
			in:   `{"widget_type":"chart","config":{"parameters":[{"device_id":"d","register_name":"p"}],"time_range":"2w"}}`,
			want: func(t *testing.T, w schema.Widget) {
				cfg := w.Config.(*schema.ChartConfig)
				if cfg.TimeRange != schema.Range24h {
					t.Errorf("time range = %q, want 24h fallback", cfg.TimeRange)
				}
				if cfg.Aggregation != schema.AggAuto {
					t.Errorf("aggregation = %q, want auto", cfg.Aggregation)
				}
				p := cfg.Parameters[0]
				if p.YAxis != schema.AxisLeft || p.ChartType != schema.ChartLine {
					t.Errorf("param defaults = %q/%q", p.YAxis, p.ChartType)
				}
			},
		},
		{
			name: "image value strip capped at two",
			in:   `{"widget_type":"image","config":{"value_registers":[{"register_name":"a"},{"register_name":"b"},{"register_name":"c"}]}}`,
			want: func(t *testing.T, w schema.Widget) {
				cfg := w.Config.(*schema.ImageConfig)
				if len(cfg.ValueRegisters) != 2 {
					t.Errorf("value registers = %d, want 2", len(cfg.ValueRegisters))
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w schema.Widget
			if err := json.Unmarshal([]byte(tt.in), &w); err != nil {
				t.Fatalf("Unmarshal() failed: %v", err)
			}
			tt.want(t, w)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	w := schema.New(schema.WidgetGauge)
	w.Row, w.Col = 2, 3
	cfg := w.Config.(*schema.GaugeConfig)
	cfg.DeviceID = "inv1"
	cfg.RegisterName = "power"
	cfg.Style = schema.StyleTank
	cfg.Orientation = schema.Horizontal

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	var got schema.Widget
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	gc, ok := got.Config.(*schema.GaugeConfig)
	if !ok {
		t.Fatalf("config type = %T", got.Config)
	}
	if gc.Style != schema.StyleTank || gc.Orientation != schema.Horizontal {
		t.Errorf("round trip lost gauge fields: %+v", gc)
	}
	if got.ID != w.ID || got.Row != 2 || got.Col != 3 {
		t.Errorf("round trip lost placement: %+v", got)
	}
}

func TestNewWidgetIdentity(t *testing.T) {
	a := schema.New(schema.WidgetText)
	b := schema.New(schema.WidgetText)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("widget IDs not unique: %q vs %q", a.ID, b.ID)
	}
	if schema.DefaultConfig(schema.WidgetType("nope")) != nil {
		t.Error("unknown type should have nil default config")
	}
}
