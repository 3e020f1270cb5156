package livedata

import (
	"errors"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type feedMsg struct {
	site string
	snap *Snapshot
}

// Feed fans a site's snapshots out to subscribed widgets. The last
// snapshot per site is cached with a TTL so late subscribers get the
// current state immediately and stale sites age out.
type Feed struct {
	subs      map[string][]chan *Snapshot
	inChan    chan feedMsg
	subChan   chan feedSub
	unsubChan chan chan *Snapshot
	cache     *ttlcache.Cache[string, *Snapshot]

	done      chan struct{}
	closeOnce sync.Once
}

type feedSub struct {
	site string
	ch   chan *Snapshot
}

func NewFeed() *Feed {
	f := &Feed{
		subs:      make(map[string][]chan *Snapshot),
		inChan:    make(chan feedMsg, 100),
		subChan:   make(chan feedSub, 10),
		unsubChan: make(chan chan *Snapshot, 10),
		cache: ttlcache.New[string, *Snapshot](
			ttlcache.WithTTL[string, *Snapshot](1 * time.Minute),
		),
		done: make(chan struct{}),
	}
	go f.run()
	return f
}

func (f *Feed) run() {
	for {
		select {
		case <-f.done:
			for _, subz := range f.subs {
				for _, sub := range subz {
					close(sub)
				}
			}
			f.subs = nil
			// a Subscribe racing with Close may have queued its
			// channel without it ever reaching the map
			for {
				select {
				case sub := <-f.subChan:
					close(sub.ch)
				default:
					return
				}
			}
		case msg := <-f.inChan:
			f.cache.Set(msg.site, msg.snap, ttlcache.DefaultTTL)
			for _, sub := range f.subs[msg.site] {
				select {
				case sub <- msg.snap:
				default:
					// slow subscriber keeps its stale snapshot;
					// the next tick replaces it anyway
				}
			}
		case sub := <-f.subChan:
			f.subs[sub.site] = append(f.subs[sub.site], sub.ch)
			if itm := f.cache.Get(sub.site); itm != nil {
				sub.ch <- itm.Value()
			}
		case unsub := <-f.unsubChan:
		outer:
			for site, subz := range f.subs {
				for i, sub := range subz {
					if sub == unsub {
						f.subs[site] = append(subz[:i], subz[i+1:]...)
						close(unsub)
						if len(f.subs[site]) == 0 {
							delete(f.subs, site)
						}
						break outer
					}
				}
			}
		}
	}
}

// Publish delivers a new snapshot for a site. It never blocks; a full
// bus drops the tick and reports it to the caller.
func (f *Feed) Publish(site string, snap *Snapshot) error {
	select {
	case f.inChan <- feedMsg{site: site, snap: snap}:
		return nil
	default:
		return errors.New("publish channel full")
	}
}

// Close stops the fan-out goroutine and closes every subscriber
// channel. Publishes after Close go nowhere.
func (f *Feed) Close() {
	f.closeOnce.Do(func() { close(f.done) })
}

// Subscribe returns a channel receiving each snapshot for site. The
// cached last snapshot, if any, is delivered first. On a closed feed
// the returned channel is already closed.
func (f *Feed) Subscribe(site string) chan *Snapshot {
	ch := make(chan *Snapshot, 10)
	select {
	case <-f.done:
		close(ch)
		return ch
	default:
	}
	select {
	case f.subChan <- feedSub{site: site, ch: ch}:
	case <-f.done:
		close(ch)
	}
	return ch
}

// SubscribeFunc runs fn for each snapshot and returns an unsubscribe
// function.
func (f *Feed) SubscribeFunc(site string, fn func(*Snapshot)) func() {
	ch := f.Subscribe(site)
	go func() {
		for snap := range ch {
			fn(snap)
		}
	}()
	return func() {
		f.Unsubscribe(ch)
	}
}

func (f *Feed) Unsubscribe(ch chan *Snapshot) {
	select {
	case f.unsubChan <- ch:
	case <-f.done:
	}
}

// Last returns the cached snapshot for site, nil when none is known or
// the cache entry expired.
func (f *Feed) Last(site string) *Snapshot {
	if itm := f.cache.Get(site); itm != nil {
		return itm.Value()
	}
	return nil
}
