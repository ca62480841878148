package plainscroll

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// ItemView displays a window of text lines. The first visible row and column
// are set from outside, typically by scrollbars.
type ItemView struct {
	*Box

	items []string
	// The widest item in cells.
	width int

	row    int
	column int

	style tcell.Style
}

// NewItemView returns a view of items.
func NewItemView(items []string) *ItemView {
	v := &ItemView{
		Box:   NewBox(),
		style: tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.PrimitiveBackgroundColor),
	}
	v.SetItems(items)
	return v
}

// SetItems replaces the items.
func (v *ItemView) SetItems(items []string) *ItemView {
	v.items = items
	v.width = 0
	for _, item := range items {
		v.width = max(v.width, uniseg.StringWidth(item))
	}
	v.MarkDirty()
	return v
}

// ItemCount returns the number of items.
func (v *ItemView) ItemCount() int {
	return len(v.items)
}

// ContentWidth returns the width of the widest item in cells.
func (v *ItemView) ContentWidth() int {
	return v.width
}

// SetStyle sets the text style.
func (v *ItemView) SetStyle(style tcell.Style) *ItemView {
	if v.style != style {
		v.style = style
		v.MarkDirty()
	}
	return v
}

// SetRowOffset sets the index of the first visible item.
func (v *ItemView) SetRowOffset(row int) *ItemView {
	row = max(row, 0)
	if v.row != row {
		v.row = row
		v.MarkDirty()
	}
	return v
}

// RowOffset returns the index of the first visible item.
func (v *ItemView) RowOffset() int {
	return v.row
}

// SetColumnOffset sets the first visible cell column.
func (v *ItemView) SetColumnOffset(column int) *ItemView {
	column = max(column, 0)
	if v.column != column {
		v.column = column
		v.MarkDirty()
	}
	return v
}

// ColumnOffset returns the first visible cell column.
func (v *ItemView) ColumnOffset() int {
	return v.column
}

// Draw draws the visible items.
func (v *ItemView) Draw(screen tcell.Screen) {
	v.DrawForSubclass(screen, v)

	x, y, width, height := v.GetRect()
	for line := 0; line < height; line++ {
		index := v.row + line
		if index >= len(v.items) {
			break
		}
		printSkipping(screen, v.items[index], x, y+line, v.column, width, v.style)
	}
}
