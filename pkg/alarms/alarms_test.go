package alarms_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/byosamah/volteria-canvas/pkg/alarms"
)

func seed(t *testing.T, add func(alarms.Alarm)) {
	t.Helper()
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rows := []alarms.Alarm{
		{ID: "a1", SiteID: "s1", Severity: alarms.SeverityCritical, Message: "grid loss", RaisedAt: base.Add(3 * time.Hour)},
		{ID: "a2", SiteID: "s1", Severity: alarms.SeverityWarning, Message: "high temp", RaisedAt: base.Add(2 * time.Hour)},
		{ID: "a3", SiteID: "s1", Severity: alarms.SeverityInfo, Message: "fw update", RaisedAt: base.Add(1 * time.Hour), Resolved: true},
		{ID: "a4", SiteID: "s2", Severity: alarms.SeverityCritical, Message: "other site", RaisedAt: base.Add(4 * time.Hour)},
	}
	for _, r := range rows {
		add(r)
	}
}

func testStore(t *testing.T, store alarms.Store) {
	t.Helper()
	ctx := context.Background()

	got, err := store.Query(ctx, alarms.Filter{SiteID: "s1"})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("active s1 alarms = %d, want 2 (resolved hidden)", len(got))
	}
	if got[0].ID != "a1" || got[1].ID != "a2" {
		t.Errorf("order = %s, %s, want newest first", got[0].ID, got[1].ID)
	}

	got, err = store.Query(ctx, alarms.Filter{SiteID: "s1", ShowResolved: true})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("with resolved = %d, want 3", len(got))
	}

	got, err = store.Query(ctx, alarms.Filter{
		SiteID:     "s1",
		Severities: []alarms.Severity{alarms.SeverityCritical},
	})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(got) != 1 || got[0].Severity != alarms.SeverityCritical {
		t.Errorf("severity filter = %+v", got)
	}

	got, err = store.Query(ctx, alarms.Filter{SiteID: "s1", ShowResolved: true, MaxItems: 1})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("max items = %d, want 1", len(got))
	}
}

func TestMemStore(t *testing.T) {
	store := alarms.NewMemStore()
	seed(t, store.Add)
	testStore(t, store)
}

func TestSQLiteStore(t *testing.T) {
	store, err := alarms.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()
	ctx := context.Background()
	seed(t, func(a alarms.Alarm) {
		if err := store.Add(ctx, a); err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	})
	testStore(t, store)
}

func TestSQLiteResolve(t *testing.T) {
	store, err := alarms.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer store.Close()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := store.Add(ctx, alarms.Alarm{
			ID: "r" + strconv.Itoa(i), SiteID: "s1",
			Severity: alarms.SeverityWarning,
			RaisedAt: time.Now().Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	}
	if err := store.Resolve(ctx, "r1"); err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	got, err := store.Query(ctx, alarms.Filter{SiteID: "s1"})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("active after resolve = %d, want 2", len(got))
	}
}
