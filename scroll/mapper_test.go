package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScrollbar(t *testing.T, surface *fakeSurface, opts ...Option) *Scrollbar {
	t.Helper()
	s, err := New(surface, Vertical, append([]Option{WithScheduler(&manualScheduler{})}, opts...)...)
	require.NoError(t, err)
	return s
}

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name     string
		length   float64
		viewport Viewport
		want     metrics
	}{
		{
			name:     "proportional",
			length:   200,
			viewport: Viewport{Total: 100, Visible: 25},
			want:     metrics{track: 200, handle: 50, travel: 150, span: 75},
		},
		{
			name:     "min handle floor",
			length:   200,
			viewport: Viewport{Total: 1000, Visible: 10},
			want:     metrics{track: 200, handle: 20, travel: 180, span: 990},
		},
		{
			name:     "nothing to scroll",
			length:   200,
			viewport: Viewport{Total: 10, Visible: 10},
			want:     metrics{track: 200, handle: 200},
		},
		{
			name:     "empty content",
			length:   200,
			viewport: Viewport{},
			want:     metrics{track: 200, handle: 200},
		},
		{
			name:     "floor exceeds track",
			length:   10,
			viewport: Viewport{Total: 100, Visible: 90},
			want:     metrics{track: 10, handle: 10},
		},
		{
			name:     "no layout",
			length:   0,
			viewport: Viewport{Total: 100, Visible: 10},
			want:     metrics{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeMetrics(Geometry{Length: tt.length}, tt.viewport, DefaultMinHandleSize)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffsetToPixelClamps(t *testing.T) {
	s := newTestScrollbar(t, newFakeSurface(200, 0), WithViewport(Viewport{Total: 100, Visible: 10}))

	assert.Equal(t, 0.0, s.OffsetToPixel(-5))
	assert.Equal(t, 180.0, s.OffsetToPixel(200))
	assert.Equal(t, 90.0, s.PixelToOffset(s.OffsetToPixel(200)))
	assert.Equal(t, 0.0, s.PixelToOffset(-40))
	assert.Equal(t, 90.0, s.PixelToOffset(1e6))
}

func TestSetClampsStart(t *testing.T) {
	s := newTestScrollbar(t, newFakeSurface(200, 0), WithViewport(Viewport{Total: 100, Visible: 10}))

	require.True(t, s.Set(-5, true))
	assert.Equal(t, 0.0, s.Viewport().Start)

	require.True(t, s.Set(200, true))
	assert.Equal(t, 90.0, s.Viewport().Start)
}

func TestRoundTrip(t *testing.T) {
	s := newTestScrollbar(t, newFakeSurface(173, 12), WithViewport(Viewport{Total: 347, Visible: 33}))

	for _, start := range []float64{0, 0.5, 1, 7.25, 100, 313.9, 314} {
		assert.InDelta(t, start, s.PixelToOffset(s.OffsetToPixel(start)), 1e-9, "start %g", start)
	}
}

func TestNonScrollable(t *testing.T) {
	surface := newFakeSurface(200, 0)
	s := newTestScrollbar(t, surface, WithViewport(Viewport{Total: 10, Visible: 10}))

	for _, start := range []float64{-3, 0, 5, 1e9} {
		assert.Equal(t, 0.0, s.OffsetToPixel(start))
		assert.Equal(t, 0.0, s.PixelToOffset(start))
	}
	assert.False(t, surface.signals[SignalScrollable])

	require.True(t, s.Set(5, true))
	assert.Equal(t, 0.0, s.Viewport().Start)
	pos, length := s.Handle()
	assert.Equal(t, 0.0, pos)
	assert.Equal(t, 200.0, length)
}

func TestEventToIntent(t *testing.T) {
	surface := newFakeSurface(200, 30)
	s := newTestScrollbar(t, surface, WithWheelSpeed(3))

	got := s.EventToIntent(Event{Kind: EventPointerDown, PageX: 400, PageY: 75})
	assert.Equal(t, Intent{Source: SourceEvent, Kind: KindAbsolute, Magnitude: 45, Axis: AxisY}, got)

	got = s.EventToIntent(Event{Kind: EventWheel, DeltaY: 0.2})
	assert.Equal(t, Intent{Source: SourceEvent, Kind: KindDelta, Magnitude: 3, Axis: AxisY}, got)

	got = s.EventToIntent(Event{Kind: EventWheel, DeltaY: -4})
	assert.Equal(t, -3.0, got.Magnitude)

	got = s.EventToIntent(Event{Kind: EventUnknown})
	assert.Equal(t, KindNone, got.Kind)
	assert.Equal(t, SourceNone, got.Source)
}

func TestEventToIntentHorizontal(t *testing.T) {
	surface := newFakeSurface(200, 10)
	s, err := New(surface, Horizontal, WithScheduler(&manualScheduler{}))
	require.NoError(t, err)

	got := s.EventToIntent(Event{Kind: EventPointerMove, PageX: 60, PageY: 999})
	assert.Equal(t, 50.0, got.Magnitude)
	assert.Equal(t, AxisX, got.Axis)

	got = s.EventToIntent(Event{Kind: EventWheel, DeltaX: 1, DeltaY: -1})
	assert.Equal(t, 2.0, got.Magnitude)

	assert.Equal(t, "x", s.IntentFromStart(0).Axis.String())
}
