package main

import (
	"path/filepath"
	"testing"

	"github.com/byosamah/volteria-canvas/pkg/schema"
)

func TestLoadLayoutFallsBackToEmbedded(t *testing.T) {
	lf, specs, err := loadLayout("does-not-exist.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if lf.SiteID != "site-1" || lf.Cols != 12 || lf.Rows != 8 {
		t.Errorf("unexpected layout header: %+v", lf)
	}
	if len(specs) == 0 {
		t.Fatal("embedded layout has no widgets")
	}
	var sawCable bool
	for _, w := range specs {
		if w.Type == schema.WidgetCable {
			sawCable = true
			if _, ok := w.Config.(*schema.CableConfig); !ok {
				t.Errorf("cable config decoded as %T", w.Config)
			}
		}
	}
	if !sawCable {
		t.Error("embedded layout should include a cable")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	lf, specs, err := loadLayout("does-not-exist.yaml")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := saveLayout(path, lf, specs); err != nil {
		t.Fatal(err)
	}
	lf2, specs2, err := loadLayout(path)
	if err != nil {
		t.Fatal(err)
	}
	if lf2.SiteID != lf.SiteID || len(specs2) != len(specs) {
		t.Errorf("round trip changed the layout: %d widgets -> %d", len(specs), len(specs2))
	}
}
