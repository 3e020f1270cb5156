package livedata_test

import (
	"testing"
	"time"

	"github.com/byosamah/volteria-canvas/pkg/livedata"
)

func fp(v float64) *float64 { return &v }

func snapWith(device, register string, v float64) *livedata.Snapshot {
	return &livedata.Snapshot{
		Timestamp: time.Now(),
		Registers: map[string]map[string]livedata.Value{
			device: {register: {Value: fp(v), Unit: "W"}},
		},
		Status: map[string]livedata.Status{
			device: {Online: true},
		},
	}
}

func TestPublishSubscribe(t *testing.T) {
	f := livedata.NewFeed()
	ch := f.Subscribe("site1")
	if err := f.Publish("site1", snapWith("dev1", "power", 230)); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}
	select {
	case snap := <-ch:
		v, ok := snap.Register("dev1", "power")
		if !ok || v.Value == nil || *v.Value != 230 {
			t.Errorf("Register() = %+v, %v", v, ok)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
	f.Unsubscribe(ch)
}

func TestLateSubscriberGetsCachedSnapshot(t *testing.T) {
	f := livedata.NewFeed()
	if err := f.Publish("site2", snapWith("dev1", "soc", 85)); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}
	// let the run loop take the message
	time.Sleep(50 * time.Millisecond)

	ch := f.Subscribe("site2")
	select {
	case snap := <-ch:
		if v, ok := snap.Register("dev1", "soc"); !ok || *v.Value != 85 {
			t.Errorf("cached snapshot lookup = %+v, %v", v, ok)
		}
	case <-time.After(time.Second):
		t.Fatal("late subscriber got no cached snapshot")
	}
	f.Unsubscribe(ch)
}

func TestSubscribeFunc(t *testing.T) {
	f := livedata.NewFeed()
	got := make(chan float64, 1)
	cancel := f.SubscribeFunc("site3", func(s *livedata.Snapshot) {
		if v, ok := s.Register("dev9", "freq"); ok && v.Value != nil {
			got <- *v.Value
		}
	})
	defer cancel()
	f.Publish("site3", snapWith("dev9", "freq", 50.02))
	select {
	case v := <-got:
		if v != 50.02 {
			t.Errorf("got %v, want 50.02", v)
		}
	case <-time.After(time.Second):
		t.Fatal("SubscribeFunc callback never ran")
	}
}

func TestCloseEndsSubscribers(t *testing.T) {
	f := livedata.NewFeed()
	ch := f.Subscribe("site4")
	f.Publish("site4", snapWith("dev1", "power", 1))
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("subscription never went live")
	}
	f.Close()
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("closed feed delivered a snapshot")
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed on Close")
	}

	// all post-close calls are safe no-ops
	f.Close()
	f.Unsubscribe(ch)
	if ch2 := f.Subscribe("site4"); ch2 != nil {
		if _, ok := <-ch2; ok {
			t.Error("subscribe after Close should yield a closed channel")
		}
	}
}

func TestSnapshotMissingData(t *testing.T) {
	var nilSnap *livedata.Snapshot
	if _, ok := nilSnap.Register("a", "b"); ok {
		t.Error("nil snapshot should report no data")
	}
	s := snapWith("dev1", "power", 1)
	if _, ok := s.Register("dev2", "power"); ok {
		t.Error("unknown device should report no data")
	}
	if _, ok := s.Register("dev1", "voltage"); ok {
		t.Error("unknown register should report no data")
	}
	if _, ok := s.DeviceStatus("ghost"); ok {
		t.Error("unknown device status should report false")
	}
}

func TestLookupAggregateFallback(t *testing.T) {
	s := snapWith(livedata.AggregateDevice, "total_power", 1200)
	v, ok := s.Lookup("", "total_power")
	if !ok || v.Value == nil || *v.Value != 1200 {
		t.Errorf("Lookup(\"\") = %+v, %v, want aggregate value", v, ok)
	}
}
