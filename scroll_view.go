package plainscroll

import (
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/plainscroll/scroll"
)

// ScrollView shows items in an ItemView with a vertical scrollbar on the
// right and, optionally, a horizontal one at the bottom. The view owns the
// viewport: it pushes item count and view size into the scrollbars and
// follows their changes back into the item view.
type ScrollView struct {
	*Box

	view       *ItemView
	vertical   *ScrollBar
	horizontal *ScrollBar

	changed func(orientation scroll.Orientation, v scroll.Viewport)
}

// NewScrollView returns a scroll view of items. opts apply to all of its
// scrollbars and must include scroll.WithScheduler, as for NewScrollBar;
// change callbacks are installed with SetChangedFunc.
func NewScrollView(items []string, horizontal bool, opts ...scroll.Option) (*ScrollView, error) {
	sv := &ScrollView{
		Box:  NewBox(),
		view: NewItemView(items),
	}

	var err error
	sv.vertical, err = NewScrollBar(scroll.Vertical, sv.barOptions(scroll.Vertical, opts)...)
	if err != nil {
		return nil, err
	}
	if horizontal {
		sv.horizontal, err = NewScrollBar(scroll.Horizontal, sv.barOptions(scroll.Horizontal, opts)...)
		if err != nil {
			return nil, err
		}
	}
	sv.layout()
	return sv, nil
}

func (sv *ScrollView) barOptions(orientation scroll.Orientation, opts []scroll.Option) []scroll.Option {
	return append(slices.Clip(opts), scroll.WithOnChange(func(v scroll.Viewport) {
		sv.follow(orientation, v)
	}))
}

// SetChangedFunc sets a handler called whenever one of the scrollbars
// changes the viewport.
func (sv *ScrollView) SetChangedFunc(handler func(orientation scroll.Orientation, v scroll.Viewport)) *ScrollView {
	sv.changed = handler
	return sv
}

// ItemView returns the item view.
func (sv *ScrollView) ItemView() *ItemView {
	return sv.view
}

// VerticalBar returns the vertical scrollbar.
func (sv *ScrollView) VerticalBar() *ScrollBar {
	return sv.vertical
}

// HorizontalBar returns the horizontal scrollbar, or nil.
func (sv *ScrollView) HorizontalBar() *ScrollBar {
	return sv.horizontal
}

// SetItems replaces the items and updates the scrollbars.
func (sv *ScrollView) SetItems(items []string) *ScrollView {
	sv.view.SetItems(items)
	sv.sync()
	return sv
}

// ScrollTo sets the first visible item through the vertical scrollbar. It
// returns false if the scrollbar rejected the update, for example during a
// drag.
func (sv *ScrollView) ScrollTo(row int) bool {
	return sv.vertical.Set(row, false)
}

func (sv *ScrollView) follow(orientation scroll.Orientation, v scroll.Viewport) {
	offset := int(math.Round(v.Start))
	if orientation == scroll.Horizontal {
		sv.view.SetColumnOffset(offset)
	} else {
		sv.view.SetRowOffset(offset)
	}
	if sv.changed != nil {
		sv.changed(orientation, v)
	}
}

// SetRect sets the rect and lays out the item view and scrollbars.
func (sv *ScrollView) SetRect(x, y, width, height int) {
	sv.Box.SetRect(x, y, width, height)
	sv.layout()
}

func (sv *ScrollView) layout() {
	x, y, width, height := sv.GetRect()
	viewWidth, viewHeight := max(width-1, 0), height
	if sv.horizontal != nil {
		viewHeight = max(height-1, 0)
	}
	sv.view.SetRect(x, y, viewWidth, viewHeight)
	sv.vertical.SetRect(x+viewWidth, y, min(width, 1), viewHeight)
	if sv.horizontal != nil {
		sv.horizontal.SetRect(x, y+viewHeight, viewWidth, min(height, 1))
	}
	sv.sync()
}

// sync pushes the item view's extent into the scrollbars without notifying,
// then takes back the clamped offsets.
func (sv *ScrollView) sync() {
	_, _, width, height := sv.view.GetRect()
	sv.vertical.SetViewport(scroll.Viewport{
		Start:   float64(sv.view.RowOffset()),
		Total:   float64(sv.view.ItemCount()),
		Visible: float64(height),
	}, true)
	sv.view.SetRowOffset(int(math.Round(sv.vertical.Viewport().Start)))

	if sv.horizontal == nil {
		return
	}
	sv.horizontal.SetViewport(scroll.Viewport{
		Start:   float64(sv.view.ColumnOffset()),
		Total:   float64(sv.view.ContentWidth()),
		Visible: float64(width),
	}, true)
	sv.view.SetColumnOffset(int(math.Round(sv.horizontal.Viewport().Start)))
}

func (sv *ScrollView) bars() []*ScrollBar {
	if sv.horizontal == nil {
		return []*ScrollBar{sv.vertical}
	}
	return []*ScrollBar{sv.vertical, sv.horizontal}
}

// Draw draws the item view and the scrollbars.
func (sv *ScrollView) Draw(screen tcell.Screen) {
	sv.DrawForSubclass(screen, sv)
	sv.view.Draw(screen)
	for _, bar := range sv.bars() {
		bar.Draw(screen)
	}
}

// MouseHandler routes mouse events to the scrollbars. Moves go to every
// scrollbar so that each sees the pointer leave. Wheel events over the items
// scroll by one item or column.
func (sv *ScrollView) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseMove {
		var capture Primitive
		var cmd Command
		for _, bar := range sv.bars() {
			barCapture, barCmd := bar.MouseHandler(action, event)
			cmd = AppendCommand(cmd, barCmd)
			if barCapture != nil {
				capture = barCapture
			}
		}
		return capture, cmd
	}

	x, y := event.Position()
	for _, bar := range sv.bars() {
		if bar.InRect(x, y) {
			return bar.MouseHandler(action, event)
		}
	}
	if !sv.view.InRect(x, y) {
		return nil, nil
	}
	switch action {
	case MouseScrollUp:
		return nil, scrollBy(sv.vertical, -1)
	case MouseScrollDown:
		return nil, scrollBy(sv.vertical, 1)
	case MouseScrollLeft:
		return nil, scrollBy(sv.horizontal, -1)
	case MouseScrollRight:
		return nil, scrollBy(sv.horizontal, 1)
	}
	return nil, nil
}

func scrollBy(bar *ScrollBar, items int) Command {
	if bar != nil && bar.Set(bar.Viewport().Start+float64(items), false) {
		return RedrawCommand{}
	}
	return nil
}
