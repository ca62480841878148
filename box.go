package plainscroll

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// Box implements the Primitive interface with an empty background. Box itself
// does not hold any content but serves as the superclass of all other
// primitives.
type Box struct {
	// The position of the rect.
	x, y, width, height int

	// The box's background color.
	backgroundColor tcell.Color

	// If set to true, the background of this box is not cleared while drawing.
	dontClear bool

	// dirty indicates whether this primitive needs to be redrawn.
	dirty atomic.Bool
}

// NewBox returns a Box with the theme's background.
func NewBox() *Box {
	b := &Box{
		width:           15,
		height:          10,
		backgroundColor: Styles.PrimitiveBackgroundColor,
	}
	b.dirty.Store(true)
	return b
}

// GetRect returns the current position of the rectangle, x, y, width, and
// height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// SetRect sets a new position of the primitive. Negative sizes are clamped
// to 0.
func (b *Box) SetRect(x, y, width, height int) {
	width, height = max(width, 0), max(height, 0)
	if b.x != x || b.y != y || b.width != width || b.height != height {
		b.x = x
		b.y = y
		b.width = width
		b.height = height
		b.MarkDirty()
	}
}

// IsDirty returns whether this primitive needs redrawing.
func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty marks this primitive as needing a redraw.
func (b *Box) MarkDirty() {
	b.dirty.Store(true)
}

// MarkClean marks this primitive as clean.
func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

// MouseHandler ignores all mouse events.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	return nil, nil
}

// InRect returns true if the given coordinate is within the bounds of the box's
// rectangle.
func (b *Box) InRect(x, y int) bool {
	rectX, rectY, width, height := b.GetRect()
	return x >= rectX && x < rectX+width && y >= rectY && y < rectY+height
}

// SetBackgroundColor sets the box's background color.
func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	if b.backgroundColor != color {
		b.backgroundColor = color
		b.MarkDirty()
	}
	return b
}

// GetBackgroundColor returns the box's background color.
func (b *Box) GetBackgroundColor() tcell.Color {
	return b.backgroundColor
}

// SetDontClear disables clearing the background before drawing, for
// primitives layered over other content.
func (b *Box) SetDontClear(dontClear bool) *Box {
	if b.dontClear != dontClear {
		b.dontClear = dontClear
		b.MarkDirty()
	}
	return b
}

// Draw draws this primitive onto the screen.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws this box under the assumption that primitive p is a
// subclass of this box.
//
// Only call this function from your own custom primitives.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	// Don't draw anything if there is no space.
	if b.width <= 0 || b.height <= 0 {
		return
	}

	if !b.dontClear {
		background := tcell.StyleDefault.Background(b.backgroundColor)
		for y := b.y; y < b.y+b.height; y++ {
			for x := b.x; x < b.x+b.width; x++ {
				screen.SetContent(x, y, ' ', nil, background)
			}
		}
	}
	b.MarkClean()
}
