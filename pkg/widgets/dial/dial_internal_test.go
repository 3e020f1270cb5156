package dial

import (
	"strings"
	"testing"

	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

func TestDocument(t *testing.T) {
	st := widgets.GaugeState{FillColor: colors.Green}

	empty := document(st, 0)
	if strings.Count(empty, "<path") != 1 {
		t.Errorf("at 0%% only the remainder arc should render: %s", empty)
	}

	full := document(st, 100)
	if strings.Count(full, "<path") != 1 {
		t.Errorf("at 100%% only the fill arc should render: %s", full)
	}
	if !strings.Contains(full, colors.Hex(colors.Green)) {
		t.Error("fill color missing from document")
	}

	half := document(st, 50)
	if strings.Count(half, "<path") != 2 {
		t.Errorf("mid scale should render fill and remainder: %s", half)
	}
	if !strings.Contains(half, "<line") {
		t.Error("needle missing from document")
	}
}
