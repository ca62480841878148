package plainscroll

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xqrs/plainscroll/scroll"
)

func TestScrollBarDrawsFractionalThumb(t *testing.T) {
	bar, _ := newTestBar(t, 10)
	screen := newSimScreen(t, 1, 10)

	bar.Draw(screen)
	screen.Show()
	assert.Equal(t, []string{"█", " ", " ", " ", " ", " ", " ", " ", " ", " "}, column(screen, 0, 10))

	// 45 of 90 puts the one cell handle half way into cells 4 and 5.
	require.True(t, bar.Set(45, false))
	bar.Draw(screen)
	screen.Show()
	assert.Equal(t, []string{" ", " ", " ", " ", "▄", "▀", " ", " ", " ", " "}, column(screen, 0, 10))
}

func TestScrollBarDrawsHorizontal(t *testing.T) {
	bar, err := NewScrollBar(scroll.Horizontal,
		scroll.WithScheduler(&stepScheduler{}),
		scroll.WithViewport(scroll.Viewport{Start: 45, Total: 100, Visible: 10}),
		scroll.WithAlwaysVisible(true),
	)
	require.NoError(t, err)
	bar.SetRect(0, 0, 10, 1)
	screen := newSimScreen(t, 10, 1)

	bar.Draw(screen)
	screen.Show()
	assert.Equal(t, "    ▐▌    ", row(screen, 0, 10))
	assert.InDelta(t, 45.0, bar.Viewport().Start, 1e-9)
}

func TestScrollBarAutoHide(t *testing.T) {
	bar, _ := newTestBar(t, 4)
	bar.SetGlyphSet(LegacyComputingGlyphSet())
	screen := newSimScreen(t, 1, 4)

	bar.Draw(screen)
	screen.Show()
	assert.Equal(t, "│", cellAt(screen, 0, 3))

	require.True(t, bar.SetViewport(scroll.Viewport{Total: 3, Visible: 10}, true))
	bar.Draw(screen)
	screen.Show()
	assert.Equal(t, []string{" ", " ", " ", " "}, column(screen, 0, 4))

	bar.SetAutoHide(false)
	bar.Draw(screen)
	screen.Show()
	assert.Equal(t, []string{"█", "█", "█", "█"}, column(screen, 0, 4))
}

func TestScrollBarHoverShowsAndHides(t *testing.T) {
	bar, _ := newTestBar(t, 10, scroll.WithAlwaysVisible(false))
	screen := newSimScreen(t, 2, 10)

	bar.Draw(screen)
	screen.Show()
	assert.Equal(t, " ", cellAt(screen, 0, 0))

	_, cmd := bar.MouseHandler(MouseMove, mouse(0, 3, tcell.ButtonNone))
	assert.Equal(t, RedrawCommand{}, cmd)
	bar.Draw(screen)
	screen.Show()
	assert.Equal(t, "█", cellAt(screen, 0, 0))

	_, cmd = bar.MouseHandler(MouseMove, mouse(1, 3, tcell.ButtonNone))
	assert.Equal(t, RedrawCommand{}, cmd)
	bar.Draw(screen)
	screen.Show()
	assert.Equal(t, " ", cellAt(screen, 0, 0))

	// Moving outside again changes nothing.
	_, cmd = bar.MouseHandler(MouseMove, mouse(1, 4, tcell.ButtonNone))
	assert.Nil(t, cmd)
}

func TestScrollBarTrackClickPages(t *testing.T) {
	bar, _ := newTestBar(t, 10)

	capture, cmd := bar.MouseHandler(MouseLeftDown, mouse(0, 7, tcell.ButtonPrimary))
	assert.Nil(t, capture)
	assert.Equal(t, RedrawCommand{}, cmd)
	assert.Equal(t, 10.0, bar.Viewport().Start)

	bar.MouseHandler(MouseLeftDown, mouse(0, 0, tcell.ButtonPrimary))
	assert.Equal(t, 0.0, bar.Viewport().Start)
}

func TestScrollBarDragThroughApplication(t *testing.T) {
	var changes []float64
	bar, sched := newTestBar(t, 10, scroll.WithOnChange(func(v scroll.Viewport) {
		changes = append(changes, v.Start)
	}))
	app := NewApplication().SetRoot(bar)

	app.fireMouseActions(mouse(0, 0, tcell.ButtonPrimary))
	assert.Same(t, bar, app.mouseCapturingPrimitive)
	assert.True(t, bar.Scrollbar().State().Dragging)

	// Moves far outside the rect still reach the captured scrollbar.
	app.fireMouseActions(mouse(4, 5, tcell.ButtonPrimary))
	assert.Equal(t, 0.0, bar.Viewport().Start, "moves are deferred")
	sched.step()
	assert.Equal(t, 50.0, bar.Viewport().Start)

	app.fireMouseActions(mouse(4, 9, tcell.ButtonNone))
	assert.Equal(t, 90.0, bar.Viewport().Start)
	assert.Nil(t, app.mouseCapturingPrimitive)
	assert.False(t, bar.Scrollbar().State().Dragging)
	assert.Equal(t, []float64{50, 90}, changes)

	// The move scheduled before the release was cancelled.
	sched.step()
	assert.Equal(t, []float64{50, 90}, changes)
}

func TestScrollBarDragFromPartlyCoveredCell(t *testing.T) {
	bar, sched := newTestBar(t, 10)
	app := NewApplication().SetRoot(bar)
	// The handle covers the lower half of cell 3 and the upper half of cell 4.
	require.True(t, bar.Set(35, false))

	app.fireMouseActions(mouse(0, 3, tcell.ButtonPrimary))
	require.True(t, bar.Scrollbar().State().Dragging)
	assert.Zero(t, bar.Scrollbar().State().GrabOffset)

	app.fireMouseActions(mouse(0, 6, tcell.ButtonPrimary))
	sched.step()
	assert.InDelta(t, 60.0, bar.Viewport().Start, 1e-9)
}

func TestScrollBarDragAppliesOnLoop(t *testing.T) {
	app := NewApplication()
	var changes []float64
	bar, err := NewScrollBar(scroll.Vertical,
		scroll.WithScheduler(app),
		scroll.WithViewport(scroll.Viewport{Total: 100, Visible: 10}),
		scroll.WithAlwaysVisible(true),
		scroll.WithOnChange(func(v scroll.Viewport) { changes = append(changes, v.Start) }),
	)
	require.NoError(t, err)
	bar.SetRect(0, 0, 1, 10)
	app.SetRoot(bar)

	app.fireMouseActions(mouse(0, 0, tcell.ButtonPrimary))
	app.fireMouseActions(mouse(0, 5, tcell.ButtonPrimary))

	// The expired timer only queues the move. It is applied when the loop,
	// here the test goroutine, runs the update.
	update := nextUpdate(t, app)
	assert.Zero(t, bar.Viewport().Start)
	assert.Empty(t, changes)
	update.f()
	assert.Equal(t, []float64{50}, changes)
	assert.Equal(t, 50.0, bar.Viewport().Start)
}

func TestNewScrollBarRequiresScheduler(t *testing.T) {
	_, err := NewScrollBar(scroll.Vertical, scroll.WithViewport(scroll.Viewport{Total: 100, Visible: 10}))
	var cfgErr *scroll.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "scheduler", cfgErr.Field)

	_, err = NewScrollView(numbered(3), false)
	require.ErrorAs(t, err, &cfgErr)
}

func TestScrollBarArrows(t *testing.T) {
	bar, _ := newTestBar(t, 12, scroll.WithArrows(true))
	screen := newSimScreen(t, 1, 12)

	bar.MouseHandler(MouseLeftDown, mouse(0, 11, tcell.ButtonPrimary))
	assert.Equal(t, 1.0, bar.Viewport().Start)
	bar.MouseHandler(MouseLeftDown, mouse(0, 0, tcell.ButtonPrimary))
	assert.Equal(t, 0.0, bar.Viewport().Start)

	bar.Draw(screen)
	screen.Show()
	cells := column(screen, 0, 12)
	assert.Equal(t, "▲", cells[0])
	assert.Equal(t, "█", cells[1])
	assert.Equal(t, "▼", cells[11])
	assert.Equal(t, scroll.Geometry{Length: 10, Offset: 1}, bar.Geometry())
}

func TestScrollBarWheel(t *testing.T) {
	bar, _ := newTestBar(t, 10)

	_, cmd := bar.MouseHandler(MouseScrollDown, mouse(0, 5, tcell.ButtonNone))
	assert.Equal(t, RedrawCommand{}, cmd)
	assert.Equal(t, 20.0, bar.Viewport().Start)

	_, cmd = bar.MouseHandler(MouseScrollLeft, mouse(0, 5, tcell.ButtonNone))
	assert.Nil(t, cmd)
	assert.Equal(t, 20.0, bar.Viewport().Start)

	bar.MouseHandler(MouseScrollUp, mouse(0, 5, tcell.ButtonNone))
	assert.Equal(t, 0.0, bar.Viewport().Start)
}

func TestScrollBarDisabled(t *testing.T) {
	bar, _ := newTestBar(t, 10)
	bar.Enable(false)
	assert.False(t, bar.IsEnabled())

	bar.MouseHandler(MouseLeftDown, mouse(0, 7, tcell.ButtonPrimary))
	bar.MouseHandler(MouseScrollDown, mouse(0, 7, tcell.ButtonNone))
	assert.Equal(t, 0.0, bar.Viewport().Start)

	screen := newSimScreen(t, 1, 10)
	bar.Draw(screen)
	screen.Show()
	cells, _, _ := screen.GetContents()
	assert.Equal(t, bar.disabledStyle, cells[0].Style)
}

func TestScrollBarResizeRepositions(t *testing.T) {
	bar, _ := newTestBar(t, 10)
	require.True(t, bar.Set(90, true))
	position, length := bar.Scrollbar().Handle()
	assert.Equal(t, 9.0, position)
	assert.Equal(t, 1.0, length)

	bar.SetRect(0, 0, 1, 20)
	position, length = bar.Scrollbar().Handle()
	assert.Equal(t, 2.0, length)
	assert.InDelta(t, 18.0, position, 1e-9)
	assert.InDelta(t, 90.0, bar.Viewport().Start, 1e-9)
}

func TestGlyphSets(t *testing.T) {
	for name, g := range map[string]GlyphSet{
		"minimal": MinimalGlyphSet(),
		"legacy":  LegacyComputingGlyphSet(),
		"unicode": UnicodeGlyphSet(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "█", g.ThumbVerticalLower[7])
			assert.Equal(t, "█", g.ThumbHorizontalLeft[7])
			for _, glyph := range g.ThumbVerticalUpper {
				assert.NotEmpty(t, strings.TrimSpace(glyph))
			}
		})
	}
}
