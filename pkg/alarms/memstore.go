package alarms

import (
	"context"
	"sort"
	"sync"
)

// MemStore is an in-memory Store, used by tests and as the default
// when the host wires no persistent store.
type MemStore struct {
	mu     sync.RWMutex
	alarms []Alarm
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Add(a Alarm) {
	m.mu.Lock()
	m.alarms = append(m.alarms, a)
	m.mu.Unlock()
}

func (m *MemStore) Query(_ context.Context, f Filter) ([]Alarm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Alarm
	for _, a := range m.alarms {
		if f.SiteID != "" && a.SiteID != f.SiteID {
			continue
		}
		if !f.ShowResolved && a.Resolved {
			continue
		}
		if !f.matchesSeverity(a.Severity) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RaisedAt.After(out[j].RaisedAt) })
	if f.MaxItems > 0 && len(out) > f.MaxItems {
		out = out[:f.MaxItems]
	}
	return out, nil
}
