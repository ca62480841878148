package scroll

import "time"

type handleCall struct {
	position, length float64
}

type fakeSurface struct {
	geometry Geometry
	handles  []handleCall
	signals  map[Signal]bool
}

func newFakeSurface(length, offset float64) *fakeSurface {
	return &fakeSurface{
		geometry: Geometry{Length: length, Offset: offset},
		signals:  map[Signal]bool{},
	}
}

func (f *fakeSurface) Geometry() Geometry { return f.geometry }

func (f *fakeSurface) SetHandleGeometry(position, length float64) {
	f.handles = append(f.handles, handleCall{position, length})
}

func (f *fakeSurface) Signal(signal Signal, value bool) { f.signals[signal] = value }

type manualTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// manualScheduler runs callbacks only when fire is called, which stands in
// for one scheduling tick.
type manualScheduler struct {
	timers []*manualTimer
	delays []time.Duration
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{f: f}
	m.timers = append(m.timers, t)
	m.delays = append(m.delays, d)
	return t
}

func (m *manualScheduler) live() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (m *manualScheduler) fire() {
	timers := m.timers
	m.timers = nil
	for _, t := range timers {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.f()
	}
}

type fakeBroadcast struct {
	listeners []PointerListener
	cancelled int
}

func (b *fakeBroadcast) Subscribe(listener PointerListener) func() {
	b.listeners = append(b.listeners, listener)
	return func() {
		b.cancelled++
		b.listeners = nil
	}
}

func (b *fakeBroadcast) move(e Event) {
	for _, l := range b.listeners {
		l.PointerMove(e)
	}
}

func (b *fakeBroadcast) release(e Event) {
	for _, l := range append([]PointerListener(nil), b.listeners...) {
		l.PointerRelease(e)
	}
}

func pointerAt(kind EventKind, y float64) Event {
	return Event{Kind: kind, PageY: y}
}
