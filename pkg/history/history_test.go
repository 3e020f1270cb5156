package history_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/byosamah/volteria-canvas/pkg/history"
	"github.com/byosamah/volteria-canvas/pkg/schema"
)

func at(sec int) time.Time {
	return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
}

func TestBuildPointsLeftJoin(t *testing.T) {
	series := map[string][]history.Sample{
		"inv1/power": {
			{Timestamp: at(0), Value: 100},
			{Timestamp: at(10), Value: 110},
			{Timestamp: at(20), Value: 120},
		},
		"bat1/soc": {
			{Timestamp: at(0), Value: 80},
			{Timestamp: at(20), Value: 78},
		},
	}
	points := history.BuildPoints(series, schema.AggRaw)
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3 (union of timestamps)", len(points))
	}
	if !points[0].Timestamp.Equal(at(0)) || !points[2].Timestamp.Equal(at(20)) {
		t.Errorf("points not sorted: %v .. %v", points[0].Timestamp, points[2].Timestamp)
	}
	// series B has no sample at t=10: must be nil, not 0 and not omitted
	mid := points[1]
	if v, present := mid.Values["bat1/soc"]; !present {
		t.Error("bat1/soc key omitted at t=10")
	} else if v != nil {
		t.Errorf("bat1/soc at t=10 = %v, want nil", *v)
	}
	if v := mid.Values["inv1/power"]; v == nil || *v != 110 {
		t.Errorf("inv1/power at t=10 = %v, want 110", v)
	}
}

func TestBuildPointsEmpty(t *testing.T) {
	if pts := history.BuildPoints(nil, schema.AggRaw); pts != nil {
		t.Errorf("BuildPoints(nil) = %v, want nil", pts)
	}
}

func TestDownsampleBoundAndDeterminism(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		limit    int
		wantLen  int
		wantStep int
	}{
		{name: "under cap untouched", n: 80, limit: 100, wantLen: 80, wantStep: 1},
		{name: "exactly cap untouched", n: 100, limit: 100, wantLen: 100, wantStep: 1},
		{name: "double", n: 200, limit: 100, wantLen: 100, wantStep: 2},
		{name: "odd", n: 250, limit: 100, wantLen: 84, wantStep: 3},
		{name: "large", n: 1001, limit: 100, wantLen: 91, wantStep: 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]history.Point, tt.n)
			for i := range points {
				points[i] = history.Point{Timestamp: at(i)}
			}
			got := history.Downsample(points, tt.limit)
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
			if len(got) > tt.limit {
				t.Errorf("len %d exceeds cap %d", len(got), tt.limit)
			}
			if tt.n > tt.limit && !got[1].Timestamp.Equal(at(tt.wantStep)) {
				t.Errorf("second point at %v, want step %d", got[1].Timestamp, tt.wantStep)
			}
			again := history.Downsample(points, tt.limit)
			if !reflect.DeepEqual(got, again) {
				t.Error("downsampling is not deterministic")
			}
		})
	}
}

func fp(v float64) *float64 { return &v }

func TestAxisDomain(t *testing.T) {
	points := []history.Point{
		{Values: map[string]*float64{"a": fp(10), "b": fp(500)}},
		{Values: map[string]*float64{"a": fp(20), "b": nil}},
		{Values: map[string]*float64{"a": fp(30), "b": fp(900)}},
	}
	lo, hi, ok := history.AxisDomain(points, []string{"a"})
	if !ok {
		t.Fatal("left side should have a domain")
	}
	// range 20, pad 2, rounded outward to one decimal
	if lo != 8 || hi != 32 {
		t.Errorf("domain = [%v, %v], want [8, 32]", lo, hi)
	}

	// only the keys assigned to the side participate
	if _, hi2, _ := history.AxisDomain(points, []string{"b"}); hi2 <= 900 {
		t.Errorf("right side hi = %v, want > 900 with padding", hi2)
	}

	// flat series pads by one unit
	flat := []history.Point{
		{Values: map[string]*float64{"c": fp(5)}},
		{Values: map[string]*float64{"c": fp(5)}},
	}
	lo3, hi3, _ := history.AxisDomain(flat, []string{"c"})
	if lo3 != 4 || hi3 != 6 {
		t.Errorf("flat domain = [%v, %v], want [4, 6]", lo3, hi3)
	}

	if _, _, ok := history.AxisDomain(points, []string{"ghost"}); ok {
		t.Error("side with no samples should report ok=false")
	}
}

func TestEffectiveAggregation(t *testing.T) {
	tests := []struct {
		name string
		rng  schema.TimeRange
		agg  schema.Aggregation
		want schema.Aggregation
	}{
		{name: "auto 1h is raw", rng: schema.Range1h, agg: schema.AggAuto, want: schema.AggRaw},
		{name: "auto 6h is raw", rng: schema.Range6h, agg: schema.AggAuto, want: schema.AggRaw},
		{name: "auto 24h is hourly", rng: schema.Range24h, agg: schema.AggAuto, want: schema.AggHourly},
		{name: "auto 7d is daily", rng: schema.Range7d, agg: schema.AggAuto, want: schema.AggDaily},
		{name: "explicit wins", rng: schema.Range7d, agg: schema.AggRaw, want: schema.AggRaw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &schema.ChartConfig{TimeRange: tt.rng, Aggregation: tt.agg}
			if got := history.EffectiveAggregation(cfg); got != tt.want {
				t.Errorf("EffectiveAggregation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRangeDuration(t *testing.T) {
	if history.RangeDuration(schema.Range7d) != 7*24*time.Hour {
		t.Error("7d duration wrong")
	}
	if history.RangeDuration(schema.Range24h) != 24*time.Hour {
		t.Error("24h duration wrong")
	}
}
