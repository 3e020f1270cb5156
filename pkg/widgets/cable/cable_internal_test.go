package cable

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/byosamah/volteria-canvas/pkg/colors"
	"github.com/byosamah/volteria-canvas/pkg/resolve"
	"github.com/byosamah/volteria-canvas/pkg/schema"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

func newTestCable(style schema.PathStyle) *Cable {
	cfg := &schema.CableConfig{
		StartX: 1, StartY: 1, EndX: 3, EndY: 2,
		PathStyle: style,
		Thickness: 3,
		Color:     "#44bb44",
	}
	return New(cfg, 12, 8)
}

func TestDocumentDashPattern(t *testing.T) {
	c := newTestCable(schema.PathStraight)
	doc := c.document()
	if !strings.Contains(doc, `stroke-dasharray="12.00 6.00"`) {
		t.Errorf("dash pattern should scale with thickness: %s", doc)
	}
	if !strings.Contains(doc, "M 100.00 100.00 L 300.00 200.00") {
		t.Errorf("unexpected path data: %s", doc)
	}
}

func TestDocumentPathStyles(t *testing.T) {
	if doc := newTestCable(schema.PathCurved).document(); !strings.Contains(doc, " Q ") {
		t.Errorf("curved cable should emit a quadratic bezier: %s", doc)
	}
	if doc := newTestCable(schema.PathOrthogonal).document(); strings.Count(doc, " L ") != 2 {
		t.Errorf("orthogonal cable should have two segments: %s", doc)
	}
}

func TestSelectionHighlight(t *testing.T) {
	c := newTestCable(schema.PathStraight)
	if strings.Contains(c.document(), "stroke-opacity") {
		t.Error("unselected cable should not draw a highlight")
	}
	c.selected = true
	doc := c.document()
	if !strings.Contains(doc, "stroke-opacity") {
		t.Error("selected cable missing highlight stroke")
	}
	if !strings.Contains(doc, `stroke-width="9.00"`) {
		t.Errorf("highlight should be three times the cable thickness: %s", doc)
	}
}

func TestFirstForwardStateAnimates(t *testing.T) {
	test.NewApp()
	c := newTestCable(schema.PathStraight)
	c.SetState(resolve.Cable(c.cfg, nil))
	if c.state.Flow != widgets.FlowForward {
		t.Fatalf("sourceless cable should resolve to forward, got %v", c.state.Flow)
	}
	if c.anim == nil {
		t.Fatal("first forward state should start the dash animation")
	}
	c.anim.Stop()
}

func TestSourcelessCableAnimatesOnShow(t *testing.T) {
	test.NewApp()
	c := newTestCable(schema.PathStraight)
	c.CreateRenderer()
	if c.anim == nil {
		t.Fatal("cable with no bound register should animate without a feed")
	}
	c.anim.Stop()
}

func TestStoppedKeepsStaticDashes(t *testing.T) {
	c := newTestCable(schema.PathStraight)
	c.state = widgets.CableState{Flow: widgets.FlowStopped, Color: colors.Neutral}
	c.offset = 42
	c.updateAnimation()
	doc := c.document()
	if !strings.Contains(doc, "stroke-dasharray") {
		t.Error("stopped cable should keep its dashes")
	}
	if !strings.Contains(doc, `stroke-dashoffset="0.00"`) {
		t.Errorf("stopped cable should not carry a moving offset: %s", doc)
	}
	if c.anim != nil {
		t.Error("stopped cable should not animate")
	}
}
