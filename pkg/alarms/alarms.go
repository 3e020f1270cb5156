// Package alarms is the alarm list widget's view of the alarms store.
// The widget polls it periodically; the store itself is owned by the
// hosting application.
package alarms

import (
	"context"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Alarm is one alarm row, newest first in query results.
type Alarm struct {
	ID       string
	SiteID   string
	DeviceID string
	Severity Severity
	Message  string
	Resolved bool
	RaisedAt time.Time
}

// Filter narrows a query. An empty severity set means all severities.
type Filter struct {
	SiteID       string
	Severities   []Severity
	ShowResolved bool
	MaxItems     int
}

// Store is the external alarms collaborator. Implementations must
// return alarms newest first and respect MaxItems.
type Store interface {
	Query(ctx context.Context, f Filter) ([]Alarm, error)
}

func (f Filter) matchesSeverity(s Severity) bool {
	if len(f.Severities) == 0 {
		return true
	}
	for _, sev := range f.Severities {
		if sev == s {
			return true
		}
	}
	return false
}
