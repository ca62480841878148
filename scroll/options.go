package scroll

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

const (
	DefaultMinHandleSize = 20
	DefaultWheelSpeed    = 2
	DefaultDragDelay     = time.Millisecond
)

type config struct {
	alwaysVisible    bool
	arrows           bool
	pageOnTrackClick bool
	minHandleSize    float64
	wheelSpeed       float64
	dragDelay        time.Duration
	viewport         Viewport
	onChange         func(Viewport)

	broadcast InputBroadcast
	scheduler Scheduler
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		pageOnTrackClick: true,
		minHandleSize:    DefaultMinHandleSize,
		wheelSpeed:       DefaultWheelSpeed,
		dragDelay:        DefaultDragDelay,
		logger:           slog.New(slog.DiscardHandler),
	}
}

func (c *config) validate() error {
	if math.IsNaN(c.minHandleSize) || math.IsInf(c.minHandleSize, 0) || c.minHandleSize < 0 {
		return &ConfigurationError{Field: "minHandleSize", Reason: fmt.Sprintf("must be a finite number >= 0, got %g", c.minHandleSize)}
	}
	if math.IsNaN(c.wheelSpeed) || math.IsInf(c.wheelSpeed, 0) {
		return &ConfigurationError{Field: "wheelSpeed", Reason: fmt.Sprintf("must be finite, got %g", c.wheelSpeed)}
	}
	if c.dragDelay <= 0 {
		return &ConfigurationError{Field: "dragDelay", Reason: fmt.Sprintf("must be positive, got %s", c.dragDelay)}
	}
	if err := c.viewport.Validate(); err != nil {
		return &ConfigurationError{Field: "viewport", Reason: err.Error()}
	}
	// There is no default: drag moves run through the scheduler and must land
	// on the thread that owns the scrollbar.
	if c.scheduler == nil {
		return &ConfigurationError{Field: "scheduler", Reason: "must be set with WithScheduler"}
	}
	return nil
}

// Option overrides one default of a Scrollbar.
type Option func(*config)

// WithAlwaysVisible keeps the bar visible on pointer leave and release.
func WithAlwaysVisible(alwaysVisible bool) Option {
	return func(c *config) {
		c.alwaysVisible = alwaysVisible
	}
}

// WithArrows enables the two step controls.
func WithArrows(arrows bool) Option {
	return func(c *config) {
		c.arrows = arrows
	}
}

// WithPageOnTrackClick selects paging by the visible count (true) or jumping
// to the click point (false) on track clicks.
func WithPageOnTrackClick(page bool) Option {
	return func(c *config) {
		c.pageOnTrackClick = page
	}
}

// WithMinHandleSize sets the floor of the handle length.
func WithMinHandleSize(size float64) Option {
	return func(c *config) {
		c.minHandleSize = size
	}
}

// WithWheelSpeed sets the track distance moved per wheel event.
func WithWheelSpeed(speed float64) Option {
	return func(c *config) {
		c.wheelSpeed = speed
	}
}

// WithDragDelay sets how long pointer moves are coalesced during a drag.
func WithDragDelay(d time.Duration) Option {
	return func(c *config) {
		c.dragDelay = d
	}
}

// WithViewport sets the initial viewport.
func WithViewport(v Viewport) Option {
	return func(c *config) {
		c.viewport = v
	}
}

// WithOnChange sets the callback invoked after each accepted, notifying
// update.
func WithOnChange(onChange func(Viewport)) Option {
	return func(c *config) {
		c.onChange = onChange
	}
}

// WithInputBroadcast sets the source of pointer events outside the control.
func WithInputBroadcast(broadcast InputBroadcast) Option {
	return func(c *config) {
		c.broadcast = broadcast
	}
}

// WithScheduler sets the scheduler used to coalesce drag moves. It is
// required.
func WithScheduler(scheduler Scheduler) Option {
	return func(c *config) {
		c.scheduler = scheduler
	}
}

// WithLogger sets the logger. Nil restores the discarding default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		c.logger = logger
	}
}
