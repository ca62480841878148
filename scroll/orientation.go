package scroll

import (
	"strconv"
	"strings"
)

// Orientation selects the axis a scrollbar moves along.
type Orientation uint8

const (
	Horizontal Orientation = iota + 1
	Vertical
)

// Axis tags coordinates with the screen axis they belong to.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return ""
}

// ParseOrientation parses "horizontal" or "vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return 0, &ConfigurationError{Field: "orientation", Reason: "must be horizontal or vertical, got " + strconv.Quote(s)}
}

func (o Orientation) valid() bool {
	return o == Horizontal || o == Vertical
}

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "invalid"
}

// Axis returns the axis used for all geometry of this orientation.
func (o Orientation) Axis() Axis {
	switch o {
	case Horizontal:
		return AxisX
	case Vertical:
		return AxisY
	}
	return AxisNone
}

// SizeAxis returns the name of the extent attribute: "width" or "height".
func (o Orientation) SizeAxis() string {
	if o == Horizontal {
		return "width"
	}
	return "height"
}

// PositionAxis returns the name of the position attribute: "left" or "top".
func (o Orientation) PositionAxis() string {
	if o == Horizontal {
		return "left"
	}
	return "top"
}

// pick returns x or y depending on the orientation.
func (o Orientation) pick(x, y float64) float64 {
	if o == Horizontal {
		return x
	}
	return y
}
