package history

import (
	"math"
	"sort"
	"time"

	"github.com/byosamah/volteria-canvas/pkg/schema"
)

// MaxChartPoints bounds how many points a chart renders; longer series
// are downsampled.
const MaxChartPoints = 100

// Point is one joined chart point. Values maps series key to the
// sample at this timestamp, nil when that parameter has no sample
// there. Nil is deliberate: an absent sample must not read as zero.
type Point struct {
	Timestamp time.Time
	Label     string
	Values    map[string]*float64
}

// BuildPoints unions all timestamps across the per-parameter series,
// sorts them, and left-joins each parameter's samples onto the result.
func BuildPoints(series map[string][]Sample, agg schema.Aggregation) []Point {
	stamps := make(map[int64]time.Time)
	for _, samples := range series {
		for _, s := range samples {
			stamps[s.Timestamp.UnixNano()] = s.Timestamp
		}
	}
	if len(stamps) == 0 {
		return nil
	}
	order := make([]int64, 0, len(stamps))
	for k := range stamps {
		order = append(order, k)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	index := make(map[string]map[int64]float64, len(series))
	for key, samples := range series {
		m := make(map[int64]float64, len(samples))
		for _, s := range samples {
			m[s.Timestamp.UnixNano()] = s.Value
		}
		index[key] = m
	}

	points := make([]Point, 0, len(order))
	for _, ts := range order {
		p := Point{
			Timestamp: stamps[ts],
			Label:     TimeLabel(stamps[ts], agg),
			Values:    make(map[string]*float64, len(series)),
		}
		for key := range series {
			if v, ok := index[key][ts]; ok {
				vv := v
				p.Values[key] = &vv
			} else {
				p.Values[key] = nil
			}
		}
		points = append(points, p)
	}
	return points
}

// Downsample keeps every step-th point with step = ceil(n/limit). It is
// deterministic: the same input always yields the same output, and the
// result has ceil(n/step) points.
func Downsample(points []Point, limit int) []Point {
	n := len(points)
	if limit <= 0 || n <= limit {
		return points
	}
	step := (n + limit - 1) / limit
	out := make([]Point, 0, (n+step-1)/step)
	for i := 0; i < n; i += step {
		out = append(out, points[i])
	}
	return out
}

// AxisDomain computes the [min, max] domain of one axis side across
// the parameters assigned to it, padded by 10 percent of the range
// (or one unit for a flat series) and rounded outward to one decimal.
// A side with no samples reports ok=false.
func AxisDomain(points []Point, keys []string) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range points {
		for _, key := range keys {
			if v := p.Values[key]; v != nil {
				if *v < lo {
					lo = *v
				}
				if *v > hi {
					hi = *v
				}
			}
		}
	}
	if lo > hi {
		return 0, 0, false
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	lo = math.Floor((lo-pad)*10) / 10
	hi = math.Ceil((hi+pad)*10) / 10
	return lo, hi, true
}
