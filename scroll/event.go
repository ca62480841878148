package scroll

import "log/slog"

// EventKind is the type of a raw input event.
type EventKind uint8

const (
	EventUnknown EventKind = iota
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventWheel
)

func (k EventKind) pointer() bool {
	return k == EventPointerDown || k == EventPointerMove || k == EventPointerUp
}

// Event is a device event in page coordinates. Delta is only used by wheel
// events.
type Event struct {
	Kind   EventKind
	PageX  float64
	PageY  float64
	DeltaX float64
	DeltaY float64
}

// Source tells where an intent came from.
type Source uint8

const (
	SourceNone Source = iota
	SourceEvent
	SourceStart
)

// Kind tells how an intent's magnitude is applied.
type Kind uint8

const (
	// KindNone intents are ignored.
	KindNone Kind = iota
	// KindAbsolute magnitudes are track positions.
	KindAbsolute
	// KindDelta magnitudes are added to the current handle position.
	KindDelta
)

// Intent is the normalized form of an input or API call, consumed
// immediately by the state machine.
type Intent struct {
	Source    Source
	Kind      Kind
	Magnitude float64
	Axis      Axis
}

// InteractionState is a snapshot of the state machine.
type InteractionState struct {
	Dragging   bool
	GrabOffset float64
	Enabled    bool
	Internal   bool
}

// LogValue implements slog.LogValuer.
func (i Intent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("source", int(i.Source)),
		slog.Int("kind", int(i.Kind)),
		slog.Float64("magnitude", i.Magnitude),
		slog.String("axis", i.Axis.String()),
	)
}
