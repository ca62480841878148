// Package scroll implements the state of a scrollbar control: the mapping
// between a handle position on a track and a logical start offset, and the
// interaction state machine that turns pointer, wheel, track, arrow and
// programmatic input into viewport updates.
//
// A Scrollbar is host agnostic. It reads the track geometry from a Surface,
// pushes the handle geometry and presentation signals back to it, and uses
// an InputBroadcast and a Scheduler for pointer tracking and drag move
// coalescing during a drag. It is not safe for concurrent use; all calls,
// including scheduled callbacks, must happen on one logical thread.
package scroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scrollbar is the scrollbar state machine.
type Scrollbar struct {
	cfg         config
	surface     Surface
	orientation Orientation

	viewport Viewport

	// The handle geometry last pushed to the surface. The viewport start is
	// always derived from handlePos.
	handlePos float64
	handleLen float64

	enabled bool
	// internal is held while the scrollbar processes its own updates and
	// rejects external sets during that time.
	internal bool
	dragging bool
	grab     float64

	pending     Timer
	unsubscribe func()
}

// New returns a scrollbar rendering onto surface along the given
// orientation. Options are applied over the defaults in order.
func New(surface Surface, orientation Orientation, opts ...Option) (*Scrollbar, error) {
	if surface == nil {
		return nil, &ConfigurationError{Field: "surface", Reason: "must not be nil"}
	}
	if !orientation.valid() {
		return nil, &ConfigurationError{Field: "orientation", Reason: fmt.Sprintf("must be horizontal or vertical, got %d", orientation)}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Scrollbar{
		cfg:         cfg,
		surface:     surface,
		orientation: orientation,
		viewport:    cfg.viewport,
		enabled:     true,
	}
	surface.Signal(SignalEnabled, true)
	surface.Signal(SignalScrollable, true)
	surface.Signal(SignalVisible, cfg.alwaysVisible)
	if err := s.applyIntent(s.IntentFromStart(s.viewport.Start), true); err != nil {
		return nil, err
	}
	return s, nil
}

// Orientation returns the orientation the scrollbar was created with.
func (s *Scrollbar) Orientation() Orientation {
	return s.orientation
}

// Viewport returns the current viewport.
func (s *Scrollbar) Viewport() Viewport {
	return s.viewport
}

// Handle returns the handle position and length last pushed to the surface.
func (s *Scrollbar) Handle() (position, length float64) {
	return s.handlePos, s.handleLen
}

// State returns a snapshot of the interaction state.
func (s *Scrollbar) State() InteractionState {
	return InteractionState{
		Dragging:   s.dragging,
		GrabOffset: s.grab,
		Enabled:    s.enabled,
		Internal:   s.internal,
	}
}

// AlwaysVisible reports whether hiding on leave and release is suppressed.
func (s *Scrollbar) AlwaysVisible() bool {
	return s.cfg.alwaysVisible
}

// Arrows reports whether the step controls are enabled.
func (s *Scrollbar) Arrows() bool {
	return s.cfg.arrows
}

// Enable sets the enabled state. A disabled scrollbar ignores input and
// never notifies, but can still be repositioned with Set.
func (s *Scrollbar) Enable(enabled bool) {
	s.surface.Signal(SignalEnabled, enabled)
	s.enabled = enabled
}

// IsEnabled returns the enabled state.
func (s *Scrollbar) IsEnabled() bool {
	return s.enabled
}

// Set repositions the scrollbar from value, which is one of:
//
//   - an Event (or *Event), converted with EventToIntent
//   - a Viewport (or *Viewport), which replaces the viewport
//   - a number or numeric string, taken as the new start offset
//
// It returns true if the update was accepted and applied. Set is rejected
// while the scrollbar processes one of its own updates, for example when
// called from inside the onChange callback.
func (s *Scrollbar) Set(value any, suppressNotify bool) bool {
	err := s.TrySet(value, suppressNotify)
	if err != nil {
		s.cfg.logger.Debug("scroll: set rejected", "value", value, "err", err)
	}
	return err == nil
}

// TrySet works like Set but returns the reason for a rejection, which wraps
// ErrReentrant or ErrInvalidOperation.
func (s *Scrollbar) TrySet(value any, suppressNotify bool) error {
	if s.internal {
		return ErrReentrant
	}
	intent, err := s.intentFor(value)
	if err != nil {
		return err
	}
	return s.applyIntent(intent, suppressNotify)
}

// SetViewport replaces the viewport and repositions the handle.
func (s *Scrollbar) SetViewport(v Viewport, suppressNotify bool) bool {
	return s.Set(v, suppressNotify)
}

func (s *Scrollbar) intentFor(value any) (Intent, error) {
	switch v := value.(type) {
	case Event:
		return s.intentForEvent(v)
	case *Event:
		if v == nil {
			return Intent{}, fmt.Errorf("%w: nil event", ErrInvalidOperation)
		}
		return s.intentForEvent(*v)
	case Viewport:
		return s.intentForViewport(v)
	case *Viewport:
		if v == nil {
			return Intent{}, fmt.Errorf("%w: nil viewport", ErrInvalidOperation)
		}
		return s.intentForViewport(*v)
	case string:
		start, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Intent{}, fmt.Errorf("%w: start %q is not a number", ErrInvalidOperation, v)
		}
		return s.intentForStart(start)
	}

	start, ok := toFloat(value)
	if !ok {
		return Intent{}, fmt.Errorf("%w: unsupported value of type %T", ErrInvalidOperation, value)
	}
	return s.intentForStart(start)
}

func (s *Scrollbar) intentForEvent(e Event) (Intent, error) {
	intent := s.EventToIntent(e)
	if intent.Kind == KindNone {
		return Intent{}, fmt.Errorf("%w: unsupported event kind %d", ErrInvalidOperation, e.Kind)
	}
	return intent, nil
}

func (s *Scrollbar) intentForViewport(v Viewport) (Intent, error) {
	if err := v.Validate(); err != nil {
		return Intent{}, err
	}
	s.viewport = v
	return s.IntentFromStart(v.Start), nil
}

func (s *Scrollbar) intentForStart(start float64) (Intent, error) {
	if math.IsNaN(start) || math.IsInf(start, 0) {
		return Intent{}, fmt.Errorf("%w: start %g is not finite", ErrInvalidOperation, start)
	}
	return s.IntentFromStart(start), nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// applyIntent moves the handle according to intent, derives the viewport
// start from the new handle position and notifies unless suppressed.
func (s *Scrollbar) applyIntent(intent Intent, suppressNotify bool) error {
	if intent.Kind == KindNone {
		return fmt.Errorf("%w: empty intent", ErrInvalidOperation)
	}
	if !s.enabled {
		suppressNotify = true
	}

	magnitude := intent.Magnitude
	if math.IsNaN(magnitude) {
		magnitude = 0
	}

	m := s.metrics()
	target := s.handlePos
	switch intent.Kind {
	case KindDelta:
		target += magnitude
	case KindAbsolute:
		target = magnitude
		// Keep the grabbed point of the handle under the pointer.
		if s.dragging && intent.Source == SourceEvent {
			target -= s.grab
		}
	}
	target = clamp(target, 0, m.travel)

	if target != s.handlePos || m.handle != s.handleLen {
		s.handlePos, s.handleLen = target, m.handle
		s.surface.SetHandleGeometry(target, m.handle)
	}
	s.surface.Signal(SignalScrollable, s.viewport.Scrollable())
	s.viewport.Start = m.startAt(target)

	if !suppressNotify && s.cfg.onChange != nil {
		s.notify()
	}
	return nil
}

func (s *Scrollbar) notify() {
	prev := s.internal
	s.internal = true
	defer func() {
		s.internal = prev
	}()
	s.cfg.onChange(s.viewport)
}

func (s *Scrollbar) apply(intent Intent) {
	if err := s.applyIntent(intent, false); err != nil {
		s.cfg.logger.Debug("scroll: intent dropped", "intent", intent, "err", err)
	}
}

// PointerDownHandle starts a drag from a press on the handle.
func (s *Scrollbar) PointerDownHandle(event Event) {
	if !s.enabled || s.dragging {
		return
	}
	s.cancelPending()
	s.internal, s.dragging = true, true
	// Hosts with coarse hit areas may report a press just outside the handle.
	grab := s.orientation.pick(event.PageX, event.PageY) - s.surface.Geometry().Offset - s.handlePos
	s.grab = min(max(grab, 0), s.handleLen)
	if s.cfg.broadcast != nil {
		s.unsubscribe = s.cfg.broadcast.Subscribe(s)
	}
	s.cfg.logger.Debug("scroll: drag started", "grab", s.grab)
}

// PointerMove schedules the handle to follow the pointer during a drag.
// Moves arriving before the scheduled apply runs replace it, so only the
// latest position of a burst is applied.
func (s *Scrollbar) PointerMove(event Event) {
	if !s.enabled || !s.dragging {
		return
	}
	s.cancelPending()
	var timer Timer
	timer = s.cfg.scheduler.AfterFunc(s.cfg.dragDelay, func() {
		if s.pending == timer {
			s.pending = nil
		}
		if !s.dragging {
			return
		}
		s.apply(s.pointerIntent(event))
	})
	s.pending = timer
}

// PointerRelease ends a drag wherever the pointer is released, applying the
// release position immediately.
func (s *Scrollbar) PointerRelease(event Event) {
	if !s.dragging {
		return
	}
	s.cancelPending()
	if !s.cfg.alwaysVisible {
		s.surface.Signal(SignalVisible, false)
	}
	if s.enabled {
		s.apply(s.pointerIntent(event))
	}
	s.endDrag()
	s.cfg.logger.Debug("scroll: drag ended", "start", s.viewport.Start)
}

// PointerDownTrack handles a press on the track outside the handle. With
// paging enabled it moves one visible page towards the click, otherwise it
// jumps to the click point.
func (s *Scrollbar) PointerDownTrack(event Event) {
	if !s.enabled || s.dragging {
		return
	}
	if !s.cfg.pageOnTrackClick {
		s.apply(s.pointerIntent(event))
		return
	}

	click := s.orientation.pick(event.PageX, event.PageY) - s.surface.Geometry().Offset
	start := s.viewport.Start
	switch {
	case click < s.handlePos:
		start -= s.viewport.Visible
	case click > s.handlePos:
		start += s.viewport.Visible
	}
	s.apply(s.IntentFromStart(start))
}

// Wheel scrolls by the wheel speed in the direction of the wheel delta.
func (s *Scrollbar) Wheel(event Event) {
	if !s.enabled || s.dragging {
		return
	}
	s.cancelPending()
	s.internal = true
	s.apply(s.wheelIntent(event))
	s.internal = false
}

// ArrowBackward moves the start back by one item.
func (s *Scrollbar) ArrowBackward() {
	s.step(-1)
}

// ArrowForward moves the start forward by one item.
func (s *Scrollbar) ArrowForward() {
	s.step(1)
}

func (s *Scrollbar) step(items float64) {
	if !s.enabled || !s.cfg.arrows {
		return
	}
	s.apply(s.IntentFromStart(s.viewport.Start + items))
}

// PointerEnter shows the scrollbar.
func (s *Scrollbar) PointerEnter() {
	if !s.enabled {
		return
	}
	s.surface.Signal(SignalVisible, true)
}

// PointerLeave hides the scrollbar unless it is always visible or a drag is
// in progress.
func (s *Scrollbar) PointerLeave() {
	if !s.enabled {
		return
	}
	if !s.dragging && !s.cfg.alwaysVisible {
		s.surface.Signal(SignalVisible, false)
	}
}

// Close cancels a pending drag apply and ends a drag without applying it.
func (s *Scrollbar) Close() {
	s.cancelPending()
	if s.dragging {
		s.endDrag()
	}
}

func (s *Scrollbar) endDrag() {
	s.internal, s.dragging = false, false
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Scrollbar) cancelPending() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

var _ PointerListener = (*Scrollbar)(nil)
