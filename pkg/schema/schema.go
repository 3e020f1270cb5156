// Package schema is the persisted widget model: a typed configuration
// per widget type instead of an open key/value bag. Decoding is
// tolerant; unknown keys are ignored and missing keys resolve to the
// per-type defaults so a widget never fails to load.
package schema

import (
	"github.com/byosamah/volteria-canvas/pkg/conditions"
	"github.com/google/uuid"
)

type WidgetType string

const (
	WidgetValueDisplay    WidgetType = "value_display"
	WidgetChart           WidgetType = "chart"
	WidgetImage           WidgetType = "image"
	WidgetAlarmList       WidgetType = "alarm_list"
	WidgetStatusIndicator WidgetType = "status_indicator"
	WidgetText            WidgetType = "text"
	WidgetGauge           WidgetType = "gauge"
	WidgetCable           WidgetType = "cable"
)

// Config is the per-type configuration payload of a widget.
type Config interface {
	Type() WidgetType
	applyDefaults()
}

// Widget is a positioned, typed visual element on a dashboard grid.
// Grid position and size are in grid-cell units. A widget whose type is
// not recognized keeps its raw config and renders as a placeholder.
type Widget struct {
	ID     string     `json:"id"`
	Type   WidgetType `json:"widget_type"`
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	ZIndex int        `json:"z_index"`
	Config Config     `json:"config"`
}

// New creates a widget of the given type with its default config.
func New(t WidgetType) Widget {
	return Widget{
		ID:     uuid.NewString(),
		Type:   t,
		Width:  2,
		Height: 2,
		Config: DefaultConfig(t),
	}
}

// DefaultConfig returns the default configuration for t, or nil for an
// unknown type.
func DefaultConfig(t WidgetType) Config {
	var cfg Config
	switch t {
	case WidgetValueDisplay:
		cfg = &ValueDisplayConfig{}
	case WidgetChart:
		cfg = &ChartConfig{}
	case WidgetImage:
		cfg = &ImageConfig{}
	case WidgetAlarmList:
		cfg = &AlarmListConfig{}
	case WidgetStatusIndicator:
		cfg = &StatusIndicatorConfig{}
	case WidgetText:
		cfg = &TextConfig{}
	case WidgetGauge:
		cfg = &GaugeConfig{}
	case WidgetCable:
		cfg = &CableConfig{}
	default:
		return nil
	}
	cfg.applyDefaults()
	return cfg
}

// ValueDisplayConfig shows one register value with threshold coloring.
// An empty DeviceID selects the site aggregate device.
type ValueDisplayConfig struct {
	DeviceID          string   `json:"device_id"`
	RegisterName      string   `json:"register_name"`
	Label             string   `json:"label"`
	Unit              string   `json:"unit"`
	Decimals          *int     `json:"decimals"`
	WarningThreshold  *float64 `json:"warning_threshold"`
	CriticalThreshold *float64 `json:"critical_threshold"`
}

func (*ValueDisplayConfig) Type() WidgetType { return WidgetValueDisplay }
func (c *ValueDisplayConfig) applyDefaults() {}

// Places is the fixed-point precision for the rendered value.
func (c *ValueDisplayConfig) Places() int {
	if c.Decimals == nil || *c.Decimals < 0 {
		return 1
	}
	return *c.Decimals
}

type GaugeStyle string

const (
	StyleDial        GaugeStyle = "dial"
	StyleTank        GaugeStyle = "tank"
	StyleThermometer GaugeStyle = "thermometer"
	StyleBar         GaugeStyle = "bar"
)

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

type TankShape string

const (
	TankCylinder    TankShape = "cylinder"
	TankRectangular TankShape = "rectangular"
)

// GaugeConfig drives the whole gauge family. An unknown style falls
// back to dial rather than failing.
type GaugeConfig struct {
	DeviceID     string      `json:"device_id"`
	RegisterName string      `json:"register_name"`
	Label        string      `json:"label"`
	Unit         string      `json:"unit"`
	Style        GaugeStyle  `json:"gauge_style"`
	Orientation  Orientation `json:"orientation"`
	TankShape    TankShape   `json:"tank_shape"`
	Min          float64     `json:"min_value"`
	Max          float64     `json:"max_value"`
	Decimals     *int        `json:"decimals"`
	FillColor    string      `json:"fill_color"`

	ZonesEnabled      bool     `json:"zones_enabled"`
	ZoneLowThreshold  *float64 `json:"zone_low_threshold"`
	ZoneHighThreshold *float64 `json:"zone_high_threshold"`
	ZoneLowColor      string   `json:"zone_low_color"`
	ZoneNormalColor   string   `json:"zone_normal_color"`
	ZoneHighColor     string   `json:"zone_high_color"`

	ShowValue  *bool `json:"show_value"`
	ShowMinMax *bool `json:"show_min_max"`
}

func (*GaugeConfig) Type() WidgetType { return WidgetGauge }

func (c *GaugeConfig) applyDefaults() {
	switch c.Style {
	case StyleDial, StyleTank, StyleThermometer, StyleBar:
	default:
		c.Style = StyleDial
	}
	if c.Orientation != Horizontal {
		c.Orientation = Vertical
	}
	if c.TankShape != TankRectangular {
		c.TankShape = TankCylinder
	}
	if c.Min == 0 && c.Max == 0 {
		c.Max = 100
	}
}

func (c *GaugeConfig) Places() int {
	if c.Decimals == nil || *c.Decimals < 0 {
		return 1
	}
	return *c.Decimals
}

func (c *GaugeConfig) ValueShown() bool  { return c.ShowValue == nil || *c.ShowValue }
func (c *GaugeConfig) MinMaxShown() bool { return c.ShowMinMax == nil || *c.ShowMinMax }

// ValueStripRegister is one entry of the optional value strip below an
// image widget. At most two are rendered.
type ValueStripRegister struct {
	DeviceID     string `json:"device_id"`
	RegisterName string `json:"register_name"`
	Label        string `json:"label"`
	Unit         string `json:"unit"`
	Decimals     *int   `json:"decimals"`
}

func (r ValueStripRegister) Places() int {
	if r.Decimals == nil || *r.Decimals < 0 {
		return 1
	}
	return *r.Decimals
}

// ImageConfig selects between a primary and a conditional image based
// on one live register condition, with an optional online status dot.
type ImageConfig struct {
	ImageURL            string               `json:"image_url"`
	ConditionalImageURL string               `json:"conditional_image_url"`
	DeviceID            string               `json:"device_id"`
	RegisterName        string               `json:"register_name"`
	ConditionOperator   conditions.Operator  `json:"condition_operator"`
	ConditionThreshold  *float64             `json:"condition_threshold"`
	ShowStatusDot       bool                 `json:"show_status_dot"`
	ValueRegisters      []ValueStripRegister `json:"value_registers"`
}

func (*ImageConfig) Type() WidgetType { return WidgetImage }

func (c *ImageConfig) applyDefaults() {
	if len(c.ValueRegisters) > 2 {
		c.ValueRegisters = c.ValueRegisters[:2]
	}
}

// StatusIndicatorConfig is a passthrough of a device's online state.
type StatusIndicatorConfig struct {
	DeviceID string `json:"device_id"`
	Label    string `json:"label"`
}

func (*StatusIndicatorConfig) Type() WidgetType { return WidgetStatusIndicator }
func (c *StatusIndicatorConfig) applyDefaults() {}

// AlarmListConfig filters the periodic alarm query backing the alarm
// list widget.
type AlarmListConfig struct {
	SiteID       string   `json:"site_id"`
	Severities   []string `json:"severities"`
	ShowResolved bool     `json:"show_resolved"`
	MaxItems     int      `json:"max_items"`
}

func (*AlarmListConfig) Type() WidgetType { return WidgetAlarmList }

func (c *AlarmListConfig) applyDefaults() {
	if c.MaxItems <= 0 {
		c.MaxItems = 8
	}
}

// TextConfig is a static text block.
type TextConfig struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"font_size"`
	Color    string  `json:"color"`
	Align    string  `json:"align"`
}

func (*TextConfig) Type() WidgetType { return WidgetText }

func (c *TextConfig) applyDefaults() {
	if c.FontSize <= 0 {
		c.FontSize = 14
	}
	switch c.Align {
	case "left", "center", "right":
	default:
		c.Align = "left"
	}
}

type TimeRange string

const (
	Range1h  TimeRange = "1h"
	Range6h  TimeRange = "6h"
	Range24h TimeRange = "24h"
	Range7d  TimeRange = "7d"
)

type Aggregation string

const (
	AggAuto   Aggregation = "auto"
	AggRaw    Aggregation = "raw"
	AggHourly Aggregation = "hourly"
	AggDaily  Aggregation = "daily"
)

type AxisSide string

const (
	AxisLeft  AxisSide = "left"
	AxisRight AxisSide = "right"
)

type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartArea ChartKind = "area"
	ChartBar  ChartKind = "bar"
)

// ChartParameter describes one plotted series.
type ChartParameter struct {
	DeviceID     string    `json:"device_id"`
	RegisterName string    `json:"register_name"`
	Label        string    `json:"label"`
	Unit         string    `json:"unit"`
	Color        string    `json:"color"`
	YAxis        AxisSide  `json:"y_axis"`
	ChartType    ChartKind `json:"chart_type"`
}

// ChartConfig is a time-bounded multi-parameter chart with independent
// left and right axes.
type ChartConfig struct {
	Parameters  []ChartParameter `json:"parameters"`
	TimeRange   TimeRange        `json:"time_range"`
	Aggregation Aggregation      `json:"aggregation"`
}

func (*ChartConfig) Type() WidgetType { return WidgetChart }

func (c *ChartConfig) applyDefaults() {
	switch c.TimeRange {
	case Range1h, Range6h, Range24h, Range7d:
	default:
		c.TimeRange = Range24h
	}
	switch c.Aggregation {
	case AggAuto, AggRaw, AggHourly, AggDaily:
	default:
		c.Aggregation = AggAuto
	}
	for i := range c.Parameters {
		p := &c.Parameters[i]
		if p.YAxis != AxisRight {
			p.YAxis = AxisLeft
		}
		switch p.ChartType {
		case ChartLine, ChartArea, ChartBar:
		default:
			p.ChartType = ChartLine
		}
	}
}

type PathStyle string

const (
	PathStraight   PathStyle = "straight"
	PathCurved     PathStyle = "curved"
	PathOrthogonal PathStyle = "orthogonal"
)

// CableConfig draws a connector between two grid-anchored points with
// optional animated flow. Endpoints are grid coordinates and may be
// fractional. With no data source configured the cable always animates
// forward, matching configs that predate flow thresholds.
type CableConfig struct {
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`

	PathStyle PathStyle `json:"path_style"`
	Color     string    `json:"color"`
	Thickness float64   `json:"thickness"`

	Animated       *bool   `json:"animated"`
	AnimationSpeed float64 `json:"animation_speed"`

	DeviceID           string   `json:"device_id"`
	RegisterName       string   `json:"register_name"`
	FlowUpperThreshold *float64 `json:"flow_upper_threshold"`
	FlowLowerThreshold *float64 `json:"flow_lower_threshold"`
	ReverseColor       string   `json:"reverse_color"`
}

func (*CableConfig) Type() WidgetType { return WidgetCable }

func (c *CableConfig) applyDefaults() {
	switch c.PathStyle {
	case PathStraight, PathCurved, PathOrthogonal:
	default:
		c.PathStyle = PathStraight
	}
	if c.Thickness <= 0 {
		c.Thickness = 3
	}
	if c.AnimationSpeed <= 0 {
		c.AnimationSpeed = 1
	}
}

// AnimatedOn defaults to true so configs saved before the flag existed
// keep animating.
func (c *CableConfig) AnimatedOn() bool { return c.Animated == nil || *c.Animated }
