package livedata_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/byosamah/volteria-canvas/pkg/livedata"
)

func TestSchedulerImmediateFirstFetch(t *testing.T) {
	var count atomic.Int32
	s := livedata.NewScheduler(time.Hour, func(context.Context) {
		count.Add(1)
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	deadline := time.After(time.Second)
	for count.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no immediate fetch on start")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func TestSchedulerNoFetchWhileHidden(t *testing.T) {
	var count atomic.Int32
	s := livedata.NewScheduler(20*time.Millisecond, func(context.Context) {
		count.Add(1)
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	s.SetVisible(false)
	time.Sleep(30 * time.Millisecond) // drain any in-flight tick
	before := count.Load()
	time.Sleep(100 * time.Millisecond)
	if after := count.Load(); after != before {
		t.Errorf("fetch fired while hidden: %d -> %d", before, after)
	}
}

func TestSchedulerResumeRefetchesImmediately(t *testing.T) {
	var count atomic.Int32
	s := livedata.NewScheduler(time.Hour, func(context.Context) {
		count.Add(1)
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	time.Sleep(30 * time.Millisecond)

	s.SetVisible(false)
	time.Sleep(10 * time.Millisecond)
	before := count.Load()

	s.SetVisible(true)
	deadline := time.After(time.Second)
	for count.Load() == before {
		select {
		case <-deadline:
			t.Fatal("resume did not trigger an immediate fetch")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	var count atomic.Int32
	s := livedata.NewScheduler(10*time.Millisecond, func(context.Context) {
		count.Add(1)
	})
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)
	before := count.Load()
	time.Sleep(50 * time.Millisecond)
	if after := count.Load(); after != before {
		t.Errorf("fetch fired after cancel: %d -> %d", before, after)
	}
}
