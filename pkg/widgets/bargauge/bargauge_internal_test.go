package bargauge

import (
	"strings"
	"testing"
)

func TestBodies(t *testing.T) {
	if got := horizontalBody("#44bb44", 0); strings.Contains(got, "#44bb44") {
		t.Error("zero percent should render the track only")
	}
	if got := horizontalBody("#44bb44", 50); !strings.Contains(got, `width="90.00"`) {
		t.Errorf("half fill should span half the track: %s", got)
	}
	if got := verticalBody("#44bb44", 100); !strings.Contains(got, `y="10.00" width="24.00" height="180.00" rx="6" fill="#44bb44"`) {
		t.Errorf("full vertical fill should cover the track: %s", got)
	}
}
