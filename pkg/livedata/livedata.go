// Package livedata models the periodically delivered telemetry
// snapshot and its distribution to widgets. Snapshots are immutable;
// each poll tick replaces the previous one wholesale.
package livedata

import "time"

// AggregateDevice is the device key carrying site-level aggregates.
// Widgets configured without a device fall back to it.
const AggregateDevice = "_site"

// Value is one register reading. Value is nil when the register has no
// data, which is a defined state rather than an error.
type Value struct {
	Value     *float64  `json:"value"`
	Unit      string    `json:"unit"`
	Timestamp time.Time `json:"timestamp"`
}

// Status is a device's online state.
type Status struct {
	Online   bool       `json:"is_online"`
	LastSeen *time.Time `json:"last_seen"`
}

// Snapshot is a point-in-time bundle of register values and device
// statuses for one site.
type Snapshot struct {
	Timestamp time.Time                   `json:"timestamp"`
	Registers map[string]map[string]Value `json:"registers"`
	Status    map[string]Status           `json:"device_status"`
}

// Register looks up one register. It is nil-receiver safe and a
// missing device or register simply reports false.
func (s *Snapshot) Register(deviceID, register string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	regs, ok := s.Registers[deviceID]
	if !ok {
		return Value{}, false
	}
	v, ok := regs[register]
	return v, ok
}

// Lookup resolves deviceID/register, falling back to the site
// aggregate device when deviceID is empty.
func (s *Snapshot) Lookup(deviceID, register string) (Value, bool) {
	if deviceID == "" {
		deviceID = AggregateDevice
	}
	return s.Register(deviceID, register)
}

// DeviceStatus reports a device's online state, false when unknown.
func (s *Snapshot) DeviceStatus(deviceID string) (Status, bool) {
	if s == nil {
		return Status{}, false
	}
	st, ok := s.Status[deviceID]
	return st, ok
}
