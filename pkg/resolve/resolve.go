// Package resolve maps widget configuration plus a live snapshot onto
// the primitive render inputs of each widget. Every function here is
// pure and total: missing devices, registers or config keys resolve to
// the documented empty state, never an error.
package resolve

import (
	"image/color"
	"strconv"

	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/common"
	"github.com/byosamah/volteria-canvas/pkg/conditions"
	"github.com/byosamah/volteria-canvas/pkg/livedata"
	"github.com/byosamah/volteria-canvas/pkg/schema"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

// FormatValue renders v with fixed-point precision, or the NoData
// placeholder when v is nil.
func FormatValue(v *float64, decimals int) string {
	if v == nil {
		return widgets.NoData
	}
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}

// ValueDisplay resolves a value display widget. Threshold coloring
// only applies when at least one threshold is configured; otherwise
// the color stays neutral.
func ValueDisplay(cfg *schema.ValueDisplayConfig, snap *livedata.Snapshot) widgets.ValueState {
	st := widgets.ValueState{
		Text:  widgets.NoData,
		Label: cfg.Label,
		Unit:  cfg.Unit,
		Color: colors.Neutral,
	}
	v, ok := snap.Lookup(cfg.DeviceID, cfg.RegisterName)
	if !ok || v.Value == nil {
		return st
	}
	st.Text = FormatValue(v.Value, cfg.Places())
	if st.Unit == "" {
		st.Unit = v.Unit
	}
	if cfg.WarningThreshold == nil && cfg.CriticalThreshold == nil {
		return st
	}
	switch {
	case conditions.Evaluate(v.Value, conditions.OpGreaterEq, cfg.CriticalThreshold):
		st.Color = colors.Red
	case conditions.Evaluate(v.Value, conditions.OpGreaterEq, cfg.WarningThreshold):
		st.Color = colors.Amber
	default:
		st.Color = colors.Green
	}
	return st
}

// Gauge resolves a gauge widget into the normalized contract shared by
// every gauge style. A degenerate range (max <= min) resolves to zero
// percent rather than NaN.
func Gauge(cfg *schema.GaugeConfig, snap *livedata.Snapshot) widgets.GaugeState {
	st := widgets.GaugeState{
		Percentage: 0,
		Value:      widgets.NoData,
		Unit:       cfg.Unit,
		Min:        cfg.Min,
		Max:        cfg.Max,
		Label:      cfg.Label,
		FillColor:  colors.Neutral,
		ShowValue:  cfg.ValueShown(),
		ShowMinMax: cfg.MinMaxShown(),
	}
	v, ok := snap.Lookup(cfg.DeviceID, cfg.RegisterName)
	if !ok || v.Value == nil {
		return st
	}
	st.Value = FormatValue(v.Value, cfg.Places())
	if st.Unit == "" {
		st.Unit = v.Unit
	}
	st.Percentage = common.Percentage(*v.Value, cfg.Min, cfg.Max)
	st.FillColor = gaugeFill(cfg, *v.Value)
	return st
}

func gaugeFill(cfg *schema.GaugeConfig, value float64) color.RGBA {
	if !cfg.ZonesEnabled {
		return colors.ParseHex(cfg.FillColor, colors.Green)
	}
	low := colors.ParseHex(cfg.ZoneLowColor, colors.Blue)
	normal := colors.ParseHex(cfg.ZoneNormalColor, colors.Green)
	high := colors.ParseHex(cfg.ZoneHighColor, colors.Red)
	switch {
	case conditions.Evaluate(&value, conditions.OpLess, cfg.ZoneLowThreshold):
		return low
	case conditions.Evaluate(&value, conditions.OpGreater, cfg.ZoneHighThreshold):
		return high
	default:
		return normal
	}
}

// Cable resolves the flow tri-state from a single live register and
// the two flow thresholds. A cable with no data source configured, or
// whose register has no data, defaults to forward so configs that
// predate flow thresholds keep animating.
func Cable(cfg *schema.CableConfig, snap *livedata.Snapshot) widgets.CableState {
	st := widgets.CableState{
		Flow:  widgets.FlowForward,
		Color: colors.ParseHex(cfg.Color, colors.Blue),
	}
	if cfg.DeviceID == "" && cfg.RegisterName == "" {
		return st
	}
	v, ok := snap.Lookup(cfg.DeviceID, cfg.RegisterName)
	if !ok || v.Value == nil {
		return st
	}
	switch {
	case conditions.Evaluate(v.Value, conditions.OpGreater, cfg.FlowUpperThreshold):
		st.Flow = widgets.FlowForward
	case conditions.Evaluate(v.Value, conditions.OpLess, cfg.FlowLowerThreshold):
		st.Flow = widgets.FlowReverse
		if cfg.ReverseColor != "" {
			st.Color = colors.ParseHex(cfg.ReverseColor, st.Color)
		}
	default:
		st.Flow = widgets.FlowStopped
	}
	return st
}

// Image resolves the primary vs conditional image selection, the
// online dot and the optional value strip.
func Image(cfg *schema.ImageConfig, snap *livedata.Snapshot) widgets.ImageState {
	st := widgets.ImageState{
		URL:     cfg.ImageURL,
		ShowDot: cfg.ShowStatusDot,
	}
	if cfg.ConditionalImageURL != "" {
		v, _ := snap.Lookup(cfg.DeviceID, cfg.RegisterName)
		if conditions.Evaluate(v.Value, cfg.ConditionOperator, cfg.ConditionThreshold) {
			st.URL = cfg.ConditionalImageURL
		}
	}
	if status, ok := snap.DeviceStatus(cfg.DeviceID); ok {
		st.Online = status.Online
	}
	for i, reg := range cfg.ValueRegisters {
		if i == 2 {
			break
		}
		entry := widgets.ValueState{
			Text:  widgets.NoData,
			Label: reg.Label,
			Unit:  reg.Unit,
			Color: colors.Neutral,
		}
		if v, ok := snap.Lookup(reg.DeviceID, reg.RegisterName); ok && v.Value != nil {
			entry.Text = FormatValue(v.Value, reg.Places())
			if entry.Unit == "" {
				entry.Unit = v.Unit
			}
		}
		st.Values = append(st.Values, entry)
	}
	return st
}
