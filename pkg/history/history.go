// Package history is the chart renderer's view of the historical-data
// service: a query interface keyed by site, parameter set, time range
// and aggregation, plus the client-side shaping (timestamp union,
// left join, downsampling, axis domains) the chart needs.
package history

import (
	"context"
	"time"

	"github.com/byosamah/volteria-canvas/pkg/schema"
)

// Sample is one {timestamp, value} pair of a parameter's series.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Parameter identifies one queried register series.
type Parameter struct {
	DeviceID string
	Register string
}

// Key is the series key parameters are returned under.
func (p Parameter) Key() string { return p.DeviceID + "/" + p.Register }

// Query describes one historical fetch.
type Query struct {
	SiteID      string
	Parameters  []Parameter
	Start, End  time.Time
	Aggregation schema.Aggregation
}

// Querier is the external historical-data service. Results are keyed
// per parameter (Parameter.Key), not pre-joined.
type Querier interface {
	Query(ctx context.Context, q Query) (map[string][]Sample, error)
}

// RangeDuration maps a configured time range to its duration.
func RangeDuration(r schema.TimeRange) time.Duration {
	switch r {
	case schema.Range1h:
		return time.Hour
	case schema.Range6h:
		return 6 * time.Hour
	case schema.Range7d:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// AutoAggregation picks the aggregation level for a range when the
// config says auto: up to 6h raw, 24h hourly, 7d daily.
func AutoAggregation(r schema.TimeRange) schema.Aggregation {
	switch r {
	case schema.Range1h, schema.Range6h:
		return schema.AggRaw
	case schema.Range7d:
		return schema.AggDaily
	default:
		return schema.AggHourly
	}
}

// EffectiveAggregation resolves a config's aggregation, applying the
// auto rule when needed.
func EffectiveAggregation(cfg *schema.ChartConfig) schema.Aggregation {
	if cfg.Aggregation == schema.AggAuto || cfg.Aggregation == "" {
		return AutoAggregation(cfg.TimeRange)
	}
	return cfg.Aggregation
}

// TimeLabel formats a point's axis label for the aggregation level.
func TimeLabel(t time.Time, agg schema.Aggregation) string {
	if agg == schema.AggDaily {
		return t.Format("Jan 2")
	}
	return t.Format("15:04")
}
