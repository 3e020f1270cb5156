package livedata

import (
	"context"
	"time"
)

type schedCmd int

const (
	cmdPause schedCmd = iota
	cmdResume
	cmdStop
)

// Scheduler drives a periodic fetch with an explicit two-state model:
// active and paused. Pausing (host page hidden) stops the timer
// entirely; resuming triggers one immediate fetch before the timer is
// re-armed so a long hidden period never shows stale data. Fetches are
// fire and forget; overlapping polls are not cancelled, the newest
// completed one wins.
type Scheduler struct {
	interval time.Duration
	fetch    func(context.Context)
	cmds     chan schedCmd
}

func NewScheduler(interval time.Duration, fetch func(context.Context)) *Scheduler {
	return &Scheduler{
		interval: interval,
		fetch:    fetch,
		cmds:     make(chan schedCmd, 4),
	}
}

// Start begins polling with an immediate first fetch. It returns once
// the loop is running; the loop ends when ctx is cancelled or Stop is
// called.
func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	go s.fetch(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	paused := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !paused {
				go s.fetch(ctx)
			}
		case cmd := <-s.cmds:
			switch cmd {
			case cmdPause:
				if !paused {
					paused = true
					ticker.Stop()
				}
			case cmdResume:
				if paused {
					paused = false
					go s.fetch(ctx)
					ticker.Reset(s.interval)
				}
			case cmdStop:
				return
			}
		}
	}
}

// Pause suspends the timer. No fetch fires while paused.
func (s *Scheduler) Pause() { s.cmds <- cmdPause }

// Resume re-arms the timer after an immediate refetch.
func (s *Scheduler) Resume() { s.cmds <- cmdResume }

// Stop ends the loop. In-flight fetches finish on their own.
func (s *Scheduler) Stop() { s.cmds <- cmdStop }

// SetVisible maps a visibility change onto the pause/resume pair.
func (s *Scheduler) SetVisible(visible bool) {
	if visible {
		s.Resume()
		return
	}
	s.Pause()
}
