// Package devices carries the device/template catalog shapes the
// config dialog uses to populate its pickers. The catalog itself is
// owned by the hosting application.
package devices

// RegisterAccess is a register's read/write capability.
type RegisterAccess string

const (
	AccessRead      RegisterAccess = "read"
	AccessWrite     RegisterAccess = "write"
	AccessReadWrite RegisterAccess = "readwrite"
)

// Register is a named data point exposed by a device.
type Register struct {
	Name   string         `json:"name"`
	Unit   string         `json:"unit"`
	Access RegisterAccess `json:"access"`
}

// Device is one catalog entry.
type Device struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"device_type"`
	Registers []Register `json:"registers"`
}

// ReadableRegisters filters a device's registers to the ones widgets
// can bind to.
func (d Device) ReadableRegisters() []Register {
	var out []Register
	for _, r := range d.Registers {
		if r.Access == AccessRead || r.Access == AccessReadWrite {
			out = append(out, r)
		}
	}
	return out
}

// ByID finds a device in a catalog slice.
func ByID(catalog []Device, id string) (Device, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Device{}, false
}
