package scroll

import "time"

// Geometry is the track's extent on the scroll axis: its length and its
// offset from the page origin.
type Geometry struct {
	Length float64
	Offset float64
}

// Signal names a presentation hint sent to the surface.
type Signal uint8

const (
	SignalEnabled Signal = iota
	SignalScrollable
	SignalVisible
)

func (s Signal) String() string {
	switch s {
	case SignalEnabled:
		return "enabled"
	case SignalScrollable:
		return "scrollable"
	case SignalVisible:
		return "visible"
	}
	return "unknown"
}

// Surface is the host render target of a scrollbar. Geometry is queried on
// every conversion, so layout changes are picked up lazily.
type Surface interface {
	// Geometry returns the current track geometry.
	Geometry() Geometry
	// SetHandleGeometry moves and resizes the handle within the track.
	SetHandleGeometry(position, length float64)
	// Signal receives the enabled, scrollable and visible hints.
	Signal(signal Signal, value bool)
}

// PointerListener receives pointer events from outside the control's bounds
// for the duration of a drag.
type PointerListener interface {
	PointerMove(event Event)
	PointerRelease(event Event)
}

// InputBroadcast lets the scrollbar observe pointer movement anywhere in the
// host, not just over the control. Subscribe returns a function that removes
// the subscription.
type InputBroadcast interface {
	Subscribe(listener PointerListener) (unsubscribe func())
}

// Timer is a pending single-shot callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer.
	Stop() bool
}

// Scheduler runs f once after d. Implementations must run f on the same
// logical thread that drives the scrollbar.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
