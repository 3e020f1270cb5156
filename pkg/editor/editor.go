// Package editor is the schema-driven widget settings dialog. Each
// widget type gets the subset of fields its resolver reads; the
// dialog only assembles a config and hands it back, persistence is
// the caller's job.
package editor

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/lusingander/colorpicker"

	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/conditions"
	"github.com/byosamah/volteria-canvas/pkg/devices"
	"github.com/byosamah/volteria-canvas/pkg/schema"
)

type Editor struct {
	catalog []devices.Device
}

func New(catalog []devices.Device) *Editor {
	return &Editor{catalog: catalog}
}

// Show opens the settings dialog for one widget. On save the edited
// copy is handed to onSave; the original is never mutated.
func (e *Editor) Show(win fyne.Window, w schema.Widget, onSave func(schema.Widget)) {
	form, apply := e.buildForm(w)
	if form == nil {
		dialog.ShowInformation("Widget settings", "This widget type has no settings.", win)
		return
	}
	dialog.ShowCustomConfirm("Widget settings", "Save", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		w.Config = apply()
		if onSave != nil {
			onSave(w)
		}
	}, win)
}

func (e *Editor) buildForm(w schema.Widget) (fyne.CanvasObject, func() schema.Config) {
	switch cfg := w.Config.(type) {
	case *schema.ValueDisplayConfig:
		return e.valueDisplayForm(cfg)
	case *schema.GaugeConfig:
		return e.gaugeForm(cfg)
	case *schema.CableConfig:
		return e.cableForm(cfg)
	case *schema.ChartConfig:
		return e.chartForm(cfg)
	case *schema.ImageConfig:
		return e.imageForm(cfg)
	case *schema.StatusIndicatorConfig:
		return e.statusForm(cfg)
	case *schema.AlarmListConfig:
		return e.alarmListForm(cfg)
	case *schema.TextConfig:
		return e.textForm(cfg)
	}
	return nil, nil
}

// devicePicker returns a device select plus a dependent register
// select filtered to readable registers.
func (e *Editor) devicePicker(deviceID, registerName string) (*widget.Select, *widget.Select) {
	ids := make([]string, 0, len(e.catalog))
	for _, d := range e.catalog {
		ids = append(ids, d.ID)
	}

	registerSel := widget.NewSelect(nil, nil)
	fill := func(id string) {
		var names []string
		if d, ok := devices.ByID(e.catalog, id); ok {
			for _, r := range d.ReadableRegisters() {
				names = append(names, r.Name)
			}
		}
		registerSel.Options = names
		registerSel.Refresh()
	}

	deviceSel := widget.NewSelect(ids, fill)
	deviceSel.Selected = deviceID
	fill(deviceID)
	registerSel.Selected = registerName
	return deviceSel, registerSel
}

func operatorPicker(selected conditions.Operator) *widget.Select {
	ops := conditions.Operators()
	opts := make([]string, len(ops))
	for i, op := range ops {
		opts[i] = string(op)
	}
	sel := widget.NewSelect(opts, nil)
	sel.Selected = string(selected)
	return sel
}

// colorButton shows the current color and opens a picker on tap.
func colorButton(hex string, fallback color.RGBA) (fyne.CanvasObject, func() string) {
	current := colors.ParseHex(hex, fallback)
	picker := colorpicker.New(160, colorpicker.StyleHueCircle)
	picker.SetOnChanged(func(c color.Color) {
		r, g, b, a := c.RGBA()
		current = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	})
	return picker, func() string { return colors.Hex(current) }
}

func floatEntry(v float64) *widget.Entry {
	ent := widget.NewEntry()
	ent.SetText(strconv.FormatFloat(v, 'f', -1, 64))
	return ent
}

func floatPtrEntry(v *float64) *widget.Entry {
	ent := widget.NewEntry()
	if v != nil {
		ent.SetText(strconv.FormatFloat(*v, 'f', -1, 64))
	}
	return ent
}

// parseFloatPtr maps an empty or malformed entry to nil, so clearing
// a threshold field removes the threshold.
func parseFloatPtr(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseFloatOr falls back when the entry does not parse.
func parseFloatOr(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func (e *Editor) valueDisplayForm(cfg *schema.ValueDisplayConfig) (fyne.CanvasObject, func() schema.Config) {
	deviceSel, registerSel := e.devicePicker(cfg.DeviceID, cfg.RegisterName)
	label := widget.NewEntry()
	label.SetText(cfg.Label)
	unit := widget.NewEntry()
	unit.SetText(cfg.Unit)
	decimals := widget.NewEntry()
	decimals.SetText(strconv.Itoa(cfg.Places()))
	warn := floatPtrEntry(cfg.WarningThreshold)
	crit := floatPtrEntry(cfg.CriticalThreshold)

	form := widget.NewForm(
		widget.NewFormItem("Device", deviceSel),
		widget.NewFormItem("Register", registerSel),
		widget.NewFormItem("Label", label),
		widget.NewFormItem("Unit", unit),
		widget.NewFormItem("Decimals", decimals),
		widget.NewFormItem("Warning threshold", warn),
		widget.NewFormItem("Critical threshold", crit),
	)
	return form, func() schema.Config {
		out := *cfg
		out.DeviceID = deviceSel.Selected
		out.RegisterName = registerSel.Selected
		out.Label = label.Text
		out.Unit = unit.Text
		d := parseIntOr(decimals.Text, cfg.Places())
		out.Decimals = &d
		out.WarningThreshold = parseFloatPtr(warn.Text)
		out.CriticalThreshold = parseFloatPtr(crit.Text)
		return &out
	}
}

func (e *Editor) gaugeForm(cfg *schema.GaugeConfig) (fyne.CanvasObject, func() schema.Config) {
	deviceSel, registerSel := e.devicePicker(cfg.DeviceID, cfg.RegisterName)

	style := widget.NewSelect([]string{
		string(schema.StyleDial), string(schema.StyleTank),
		string(schema.StyleThermometer), string(schema.StyleBar),
	}, nil)
	style.Selected = string(cfg.Style)

	orientation := widget.NewSelect([]string{string(schema.Vertical), string(schema.Horizontal)}, nil)
	orientation.Selected = string(cfg.Orientation)

	shape := widget.NewSelect([]string{string(schema.TankCylinder), string(schema.TankRectangular)}, nil)
	shape.Selected = string(cfg.TankShape)

	minEnt := floatEntry(cfg.Min)
	maxEnt := floatEntry(cfg.Max)
	label := widget.NewEntry()
	label.SetText(cfg.Label)
	unit := widget.NewEntry()
	unit.SetText(cfg.Unit)
	decimals := widget.NewEntry()
	decimals.SetText(strconv.Itoa(cfg.Places()))

	fillPicker, fillColor := colorButton(cfg.FillColor, colors.Green)
	showValue := widget.NewCheck("Show value", nil)
	showValue.Checked = cfg.ValueShown()
	showMinMax := widget.NewCheck("Show min/max", nil)
	showMinMax.Checked = cfg.MinMaxShown()

	zones := widget.NewCheck("Color zones", nil)
	zones.Checked = cfg.ZonesEnabled
	lowZone := floatPtrEntry(cfg.ZoneLowThreshold)
	highZone := floatPtrEntry(cfg.ZoneHighThreshold)

	form := widget.NewForm(
		widget.NewFormItem("Device", deviceSel),
		widget.NewFormItem("Register", registerSel),
		widget.NewFormItem("Style", style),
		widget.NewFormItem("Orientation", orientation),
		widget.NewFormItem("Tank shape", shape),
		widget.NewFormItem("Label", label),
		widget.NewFormItem("Unit", unit),
		widget.NewFormItem("Decimals", decimals),
		widget.NewFormItem("Min", minEnt),
		widget.NewFormItem("Max", maxEnt),
		widget.NewFormItem("Fill color", fillPicker),
		widget.NewFormItem("", zones),
		widget.NewFormItem("Low zone below", lowZone),
		widget.NewFormItem("High zone above", highZone),
		widget.NewFormItem("", container.NewHBox(showValue, showMinMax)),
	)
	return form, func() schema.Config {
		out := *cfg
		out.DeviceID = deviceSel.Selected
		out.RegisterName = registerSel.Selected
		out.Style = schema.GaugeStyle(style.Selected)
		out.Orientation = schema.Orientation(orientation.Selected)
		out.TankShape = schema.TankShape(shape.Selected)
		out.Label = label.Text
		out.Unit = unit.Text
		d := parseIntOr(decimals.Text, cfg.Places())
		out.Decimals = &d
		out.Min = parseFloatOr(minEnt.Text, cfg.Min)
		out.Max = parseFloatOr(maxEnt.Text, cfg.Max)
		out.FillColor = fillColor()
		out.ZonesEnabled = zones.Checked
		out.ZoneLowThreshold = parseFloatPtr(lowZone.Text)
		out.ZoneHighThreshold = parseFloatPtr(highZone.Text)
		out.ShowValue = &showValue.Checked
		out.ShowMinMax = &showMinMax.Checked
		return &out
	}
}

func (e *Editor) cableForm(cfg *schema.CableConfig) (fyne.CanvasObject, func() schema.Config) {
	deviceSel, registerSel := e.devicePicker(cfg.DeviceID, cfg.RegisterName)

	pathStyle := widget.NewSelect([]string{
		string(schema.PathStraight), string(schema.PathCurved), string(schema.PathOrthogonal),
	}, nil)
	pathStyle.Selected = string(cfg.PathStyle)

	thickness := floatEntry(cfg.Thickness)
	speed := floatEntry(cfg.AnimationSpeed)
	animated := widget.NewCheck("Animated", nil)
	animated.Checked = cfg.AnimatedOn()

	colorPicker, strokeColor := colorButton(cfg.Color, colors.Green)
	reversePicker, reverseColor := colorButton(cfg.ReverseColor, colors.Amber)

	upper := floatPtrEntry(cfg.FlowUpperThreshold)
	lower := floatPtrEntry(cfg.FlowLowerThreshold)

	form := widget.NewForm(
		widget.NewFormItem("Device", deviceSel),
		widget.NewFormItem("Register", registerSel),
		widget.NewFormItem("Path style", pathStyle),
		widget.NewFormItem("Thickness", thickness),
		widget.NewFormItem("Animation speed", speed),
		widget.NewFormItem("", animated),
		widget.NewFormItem("Color", colorPicker),
		widget.NewFormItem("Reverse color", reversePicker),
		widget.NewFormItem("Forward above", upper),
		widget.NewFormItem("Reverse below", lower),
	)
	return form, func() schema.Config {
		out := *cfg
		out.DeviceID = deviceSel.Selected
		out.RegisterName = registerSel.Selected
		out.PathStyle = schema.PathStyle(pathStyle.Selected)
		out.Thickness = parseFloatOr(thickness.Text, cfg.Thickness)
		out.AnimationSpeed = parseFloatOr(speed.Text, cfg.AnimationSpeed)
		out.Animated = &animated.Checked
		out.Color = strokeColor()
		out.ReverseColor = reverseColor()
		out.FlowUpperThreshold = parseFloatPtr(upper.Text)
		out.FlowLowerThreshold = parseFloatPtr(lower.Text)
		return &out
	}
}

func (e *Editor) chartForm(cfg *schema.ChartConfig) (fyne.CanvasObject, func() schema.Config) {
	timeRange := widget.NewSelect([]string{
		string(schema.Range1h), string(schema.Range6h),
		string(schema.Range24h), string(schema.Range7d),
	}, nil)
	timeRange.Selected = string(cfg.TimeRange)

	agg := widget.NewSelect([]string{
		string(schema.AggAuto), string(schema.AggRaw),
		string(schema.AggHourly), string(schema.AggDaily),
	}, nil)
	agg.Selected = string(cfg.Aggregation)

	params := make([]schema.ChartParameter, len(cfg.Parameters))
	copy(params, cfg.Parameters)

	list := container.NewVBox()
	rebuild := func() {}
	rebuild = func() {
		list.RemoveAll()
		for i := range params {
			p := params[i]
			name := p.Label
			if name == "" {
				name = p.DeviceID + "/" + p.RegisterName
			}
			idx := i
			list.Add(container.NewHBox(
				widget.NewLabel(name),
				widget.NewButton("Remove", func() {
					params = append(params[:idx], params[idx+1:]...)
					rebuild()
				}),
			))
		}
		list.Refresh()
	}
	rebuild()

	deviceSel, registerSel := e.devicePicker("", "")
	axis := widget.NewSelect([]string{string(schema.AxisLeft), string(schema.AxisRight)}, nil)
	axis.Selected = string(schema.AxisLeft)
	kind := widget.NewSelect([]string{
		string(schema.ChartLine), string(schema.ChartArea), string(schema.ChartBar),
	}, nil)
	kind.Selected = string(schema.ChartLine)
	add := widget.NewButton("Add parameter", func() {
		if deviceSel.Selected == "" || registerSel.Selected == "" {
			return
		}
		params = append(params, schema.ChartParameter{
			DeviceID:     deviceSel.Selected,
			RegisterName: registerSel.Selected,
			YAxis:        schema.AxisSide(axis.Selected),
			ChartType:    schema.ChartKind(kind.Selected),
		})
		rebuild()
	})

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Time range", timeRange),
			widget.NewFormItem("Aggregation", agg),
		),
		widget.NewLabel("Parameters"),
		list,
		widget.NewForm(
			widget.NewFormItem("Device", deviceSel),
			widget.NewFormItem("Register", registerSel),
			widget.NewFormItem("Axis", axis),
			widget.NewFormItem("Type", kind),
		),
		add,
	)
	return form, func() schema.Config {
		out := *cfg
		out.TimeRange = schema.TimeRange(timeRange.Selected)
		out.Aggregation = schema.Aggregation(agg.Selected)
		out.Parameters = params
		return &out
	}
}

func (e *Editor) imageForm(cfg *schema.ImageConfig) (fyne.CanvasObject, func() schema.Config) {
	deviceSel, registerSel := e.devicePicker(cfg.DeviceID, cfg.RegisterName)
	url := widget.NewEntry()
	url.SetText(cfg.ImageURL)
	condURL := widget.NewEntry()
	condURL.SetText(cfg.ConditionalImageURL)
	op := operatorPicker(cfg.ConditionOperator)
	threshold := floatPtrEntry(cfg.ConditionThreshold)
	showDot := widget.NewCheck("Show status dot", nil)
	showDot.Checked = cfg.ShowStatusDot

	form := widget.NewForm(
		widget.NewFormItem("Image URL", url),
		widget.NewFormItem("Conditional URL", condURL),
		widget.NewFormItem("Device", deviceSel),
		widget.NewFormItem("Register", registerSel),
		widget.NewFormItem("Condition", op),
		widget.NewFormItem("Threshold", threshold),
		widget.NewFormItem("", showDot),
	)
	return form, func() schema.Config {
		out := *cfg
		out.ImageURL = url.Text
		out.ConditionalImageURL = condURL.Text
		out.DeviceID = deviceSel.Selected
		out.RegisterName = registerSel.Selected
		out.ConditionOperator = conditions.Operator(op.Selected)
		out.ConditionThreshold = parseFloatPtr(threshold.Text)
		out.ShowStatusDot = showDot.Checked
		return &out
	}
}

func (e *Editor) statusForm(cfg *schema.StatusIndicatorConfig) (fyne.CanvasObject, func() schema.Config) {
	deviceSel, _ := e.devicePicker(cfg.DeviceID, "")
	label := widget.NewEntry()
	label.SetText(cfg.Label)

	form := widget.NewForm(
		widget.NewFormItem("Device", deviceSel),
		widget.NewFormItem("Label", label),
	)
	return form, func() schema.Config {
		out := *cfg
		out.DeviceID = deviceSel.Selected
		out.Label = label.Text
		return &out
	}
}

func (e *Editor) alarmListForm(cfg *schema.AlarmListConfig) (fyne.CanvasObject, func() schema.Config) {
	critical := widget.NewCheck("Critical", nil)
	warning := widget.NewCheck("Warning", nil)
	info := widget.NewCheck("Info", nil)
	for _, s := range cfg.Severities {
		switch s {
		case "critical":
			critical.Checked = true
		case "warning":
			warning.Checked = true
		case "info":
			info.Checked = true
		}
	}
	showResolved := widget.NewCheck("Show resolved", nil)
	showResolved.Checked = cfg.ShowResolved
	maxItems := widget.NewEntry()
	maxItems.SetText(strconv.Itoa(cfg.MaxItems))

	form := widget.NewForm(
		widget.NewFormItem("Severities", container.NewHBox(critical, warning, info)),
		widget.NewFormItem("", showResolved),
		widget.NewFormItem("Max items", maxItems),
	)
	return form, func() schema.Config {
		out := *cfg
		out.Severities = nil
		if critical.Checked {
			out.Severities = append(out.Severities, "critical")
		}
		if warning.Checked {
			out.Severities = append(out.Severities, "warning")
		}
		if info.Checked {
			out.Severities = append(out.Severities, "info")
		}
		out.ShowResolved = showResolved.Checked
		out.MaxItems = parseIntOr(maxItems.Text, cfg.MaxItems)
		return &out
	}
}

func (e *Editor) textForm(cfg *schema.TextConfig) (fyne.CanvasObject, func() schema.Config) {
	text := widget.NewEntry()
	text.SetText(cfg.Text)
	size := floatEntry(cfg.FontSize)
	align := widget.NewSelect([]string{"left", "center", "right"}, nil)
	align.Selected = cfg.Align
	picker, textColor := colorButton(cfg.Color, colors.Neutral)

	form := widget.NewForm(
		widget.NewFormItem("Text", text),
		widget.NewFormItem("Font size", size),
		widget.NewFormItem("Align", align),
		widget.NewFormItem("Color", picker),
	)
	return form, func() schema.Config {
		out := *cfg
		out.Text = text.Text
		out.FontSize = parseFloatOr(size.Text, cfg.FontSize)
		out.Align = align.Selected
		out.Color = textColor()
		return &out
	}
}
