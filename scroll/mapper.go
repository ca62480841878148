package scroll

// metrics is a geometry snapshot of the track and handle, in track units.
type metrics struct {
	track  float64
	offset float64
	handle float64
	// travel is the distance the handle can move: track - handle.
	travel float64
	// span is total - visible while the handle can travel, zero otherwise.
	span float64
}

func computeMetrics(g Geometry, v Viewport, minHandle float64) metrics {
	m := metrics{track: max(g.Length, 0), offset: g.Offset}
	if m.track == 0 {
		return m
	}
	if v.Total <= 0 || !v.Scrollable() {
		m.handle = m.track
		return m
	}

	// The floor can push the handle over a short track; travel never goes negative.
	m.handle = min(max(minHandle, v.Visible/v.Total*m.track), m.track)
	m.travel = m.track - m.handle
	if m.travel > 0 {
		m.span = v.Total - v.Visible
	}
	return m
}

func (m metrics) pixelAt(start float64) float64 {
	if m.span == 0 {
		return 0
	}
	return m.travel / m.span * start
}

func (m metrics) startAt(pixel float64) float64 {
	if m.span == 0 {
		return 0
	}
	return m.span / m.travel * pixel
}

func (s *Scrollbar) metrics() metrics {
	return computeMetrics(s.surface.Geometry(), s.viewport, s.cfg.minHandleSize)
}

// OffsetToPixel converts a start offset into a handle position on the
// current geometry. The start is clamped to [0, total-visible] first; a
// viewport with nothing to scroll always maps to 0.
func (s *Scrollbar) OffsetToPixel(start float64) float64 {
	return s.metrics().pixelAt(s.viewport.ClampStart(start))
}

// PixelToOffset converts a handle position, clamped to the available travel,
// into a start offset.
func (s *Scrollbar) PixelToOffset(pixel float64) float64 {
	m := s.metrics()
	return m.startAt(clamp(pixel, 0, m.travel))
}

// IntentFromStart returns an absolute intent that positions the handle for
// the given start offset.
func (s *Scrollbar) IntentFromStart(start float64) Intent {
	return Intent{
		Source:    SourceStart,
		Kind:      KindAbsolute,
		Magnitude: s.OffsetToPixel(start),
		Axis:      s.orientation.Axis(),
	}
}

// EventToIntent normalizes a device event. Pointer events become absolute
// track positions, wheel events a signed delta scaled by the wheel speed.
// Other kinds yield an intent of KindNone, which callers must ignore.
func (s *Scrollbar) EventToIntent(event Event) Intent {
	switch {
	case event.Kind.pointer():
		return s.pointerIntent(event)
	case event.Kind == EventWheel:
		return s.wheelIntent(event)
	}
	return Intent{}
}

func (s *Scrollbar) pointerIntent(event Event) Intent {
	return Intent{
		Source:    SourceEvent,
		Kind:      KindAbsolute,
		Magnitude: s.orientation.pick(event.PageX, event.PageY) - s.surface.Geometry().Offset,
		Axis:      s.orientation.Axis(),
	}
}

func (s *Scrollbar) wheelIntent(event Event) Intent {
	direction := -1.0
	if s.orientation.pick(event.DeltaX, event.DeltaY) > 0 {
		direction = 1
	}
	return Intent{
		Source:    SourceEvent,
		Kind:      KindDelta,
		Magnitude: direction * s.cfg.wheelSpeed,
		Axis:      s.orientation.Axis(),
	}
}
