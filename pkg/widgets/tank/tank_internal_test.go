package tank

import (
	"strings"
	"testing"
)

func TestCylinderVertical(t *testing.T) {
	empty := cylinderVertical("#44bb44", 0)
	if strings.Contains(empty, "#44bb44") {
		t.Error("empty tank should not render liquid")
	}
	half := cylinderVertical("#44bb44", 50)
	if !strings.Contains(half, "#44bb44") {
		t.Error("half tank missing liquid")
	}
	if !strings.Contains(half, `cy="96.00"`) {
		t.Errorf("surface ellipse should sit at mid level: %s", half)
	}
	if !strings.Contains(half, "url(#sheen)") {
		t.Error("cylinder missing sheen overlay")
	}
}

func TestRectangularHorizontal(t *testing.T) {
	full := rectangularHorizontal("#44bb44", 100)
	if !strings.Contains(full, `width="140.00"`) {
		t.Errorf("full fill should span the track: %s", full)
	}
	if strings.Contains(full, "url(#sheen)") {
		t.Error("rectangular tank should not carry the sheen overlay")
	}
}
