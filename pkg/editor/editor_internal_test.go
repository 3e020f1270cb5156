package editor

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/byosamah/volteria-canvas/pkg/schema"
)

func TestGaugeFormEditsUnitAndDecimals(t *testing.T) {
	test.NewApp()
	two := 2
	cfg := &schema.GaugeConfig{
		Style: schema.StyleDial,
		Unit:  "kW",
		Min:   0, Max: 100,
		Decimals: &two,
	}
	e := &Editor{}
	form, apply := e.gaugeForm(cfg)
	if form == nil {
		t.Fatal("gaugeForm returned no form")
	}

	setFormEntry(t, form.(*widget.Form), "Unit", "°C")
	setFormEntry(t, form.(*widget.Form), "Decimals", "0")

	out := apply().(*schema.GaugeConfig)
	if out.Unit != "°C" {
		t.Errorf("edited unit = %q", out.Unit)
	}
	if out.Places() != 0 {
		t.Errorf("edited decimals = %d", out.Places())
	}
}

func setFormEntry(t *testing.T, form *widget.Form, label, text string) {
	t.Helper()
	for _, it := range form.Items {
		if it.Text == label {
			it.Widget.(*widget.Entry).SetText(text)
			return
		}
	}
	t.Fatalf("form has no %q field", label)
}

func TestParseFloatPtr(t *testing.T) {
	if got := parseFloatPtr(""); got != nil {
		t.Errorf("empty entry should clear the threshold, got %v", *got)
	}
	if got := parseFloatPtr("abc"); got != nil {
		t.Errorf("malformed entry should clear the threshold, got %v", *got)
	}
	if got := parseFloatPtr("-5.5"); got == nil || *got != -5.5 {
		t.Errorf("parseFloatPtr(-5.5) = %v", got)
	}
}

func TestParseFallbacks(t *testing.T) {
	if got := parseFloatOr("x", 3); got != 3 {
		t.Errorf("parseFloatOr fallback = %v", got)
	}
	if got := parseFloatOr("7.25", 3); got != 7.25 {
		t.Errorf("parseFloatOr = %v", got)
	}
	if got := parseIntOr("", 8); got != 8 {
		t.Errorf("parseIntOr fallback = %v", got)
	}
	if got := parseIntOr("12", 8); got != 12 {
		t.Errorf("parseIntOr = %v", got)
	}
}
