package plainscroll

import (
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/xqrs/plainscroll/scroll"
)

// safeSimScreen tolerates the second Fini of a screen that Application.Stop
// already finalized.
type safeSimScreen struct {
	tcell.SimulationScreen
	finiOnce sync.Once
}

func (s *safeSimScreen) Fini() {
	s.finiOnce.Do(func() {
		s.SimulationScreen.Fini()
	})
}

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	var screen tcell.SimulationScreen = &safeSimScreen{SimulationScreen: tcell.NewSimulationScreen("UTF-8")}
	require.NoError(t, screen.Init())
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

// cellAt returns the text shown at (x, y) after the screen was shown.
func cellAt(screen tcell.SimulationScreen, x, y int) string {
	cells, width, _ := screen.GetContents()
	return string(cells[y*width+x].Runes)
}

// column returns the glyphs of column x for rows [0, height).
func column(screen tcell.SimulationScreen, x, height int) []string {
	out := make([]string, height)
	for y := range out {
		out[y] = cellAt(screen, x, y)
	}
	return out
}

func row(screen tcell.SimulationScreen, y, width int) string {
	var out string
	for x := 0; x < width; x++ {
		out += cellAt(screen, x, y)
	}
	return out
}

func mouse(x, y int, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, buttons, tcell.ModNone)
}

type stepTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *stepTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// stepScheduler runs deferred work only when step is called.
type stepScheduler struct {
	timers []*stepTimer
}

func (s *stepScheduler) AfterFunc(_ time.Duration, f func()) scroll.Timer {
	t := &stepTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *stepScheduler) step() {
	timers := s.timers
	s.timers = nil
	for _, t := range timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

// newTestBar returns a vertical scrollbar at x=0 spanning height rows over
// 100 items with 10 visible.
func newTestBar(t *testing.T, height int, opts ...scroll.Option) (*ScrollBar, *stepScheduler) {
	t.Helper()
	sched := &stepScheduler{}
	opts = append([]scroll.Option{
		scroll.WithScheduler(sched),
		scroll.WithViewport(scroll.Viewport{Total: 100, Visible: 10}),
		scroll.WithAlwaysVisible(true),
	}, opts...)
	bar, err := NewScrollBar(scroll.Vertical, opts...)
	require.NoError(t, err)
	bar.SetRect(0, 0, 1, height)
	return bar, sched
}
