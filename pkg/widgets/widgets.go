// Package widgets holds the normalized render contracts shared by the
// widget family. States are derived, never persisted: the resolver
// computes them fresh from config plus the live snapshot on every
// render.
package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
)

// NoData is the rendered placeholder for a missing register value.
const NoData = "--"

// UnknownTypeText is rendered verbatim for an unrecognized widget
// type instead of failing the page.
const UnknownTypeText = "Unknown widget type"

// GaugeState is the single contract driving every gauge style.
type GaugeState struct {
	Percentage float64 // always within [0,100]
	Value      string  // formatted, NoData when absent
	Unit       string
	Min, Max   float64
	Label      string
	FillColor  color.RGBA
	ShowValue  bool
	ShowMinMax bool
}

// ValueState is a resolved single-register display.
type ValueState struct {
	Text  string // formatted, NoData when absent
	Label string
	Unit  string
	Color color.RGBA
}

// FlowState classifies a cable's animated direction.
type FlowState string

const (
	FlowForward FlowState = "forward"
	FlowReverse FlowState = "reverse"
	FlowStopped FlowState = "stopped"
)

// CableState is the resolved flow classification and stroke color.
type CableState struct {
	Flow  FlowState
	Color color.RGBA
}

// StatusState is a resolved device online indicator.
type StatusState struct {
	Known    bool // device present in the snapshot at all
	Online   bool
	Label    string
	LastSeen string // relative, NoData when never seen
}

// ImageState selects the image to show plus its decorations.
type ImageState struct {
	URL     string
	ShowDot bool
	Online  bool
	Values  []ValueState // value strip, at most two entries
}

// Sizer is implemented by widgets that expose a preferred minimum
// size to the dashboard grid.
type Sizer interface {
	MinSize() fyne.Size
}
