package resolve

import (
	"strconv"
	"time"

	"github.com/byosamah/volteria-canvas/pkg/livedata"
	"github.com/byosamah/volteria-canvas/pkg/schema"
	"github.com/byosamah/volteria-canvas/pkg/widgets"
)

// Status resolves a status indicator: a passthrough of the device's
// online state plus a relative "last seen" label.
func Status(cfg *schema.StatusIndicatorConfig, snap *livedata.Snapshot, now time.Time) widgets.StatusState {
	st := widgets.StatusState{
		Label:    cfg.Label,
		LastSeen: widgets.NoData,
	}
	status, ok := snap.DeviceStatus(cfg.DeviceID)
	if !ok {
		return st
	}
	st.Known = true
	st.Online = status.Online
	if status.LastSeen != nil {
		st.LastSeen = RelativeTime(*status.LastSeen, now)
	}
	return st
}

// RelativeTime formats how long ago t was, the same way the alarm list
// and status indicator both present it.
func RelativeTime(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d.Hours())) + "h ago"
	default:
		return strconv.Itoa(int(d.Hours()/24)) + "d ago"
	}
}
