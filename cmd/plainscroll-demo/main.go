// Command plainscroll-demo shows a scrollable list of numbered rows with a
// mouse-driven scrollbar.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/xqrs/plainscroll"
	"github.com/xqrs/plainscroll/help"
	"github.com/xqrs/plainscroll/keybind"
	"github.com/xqrs/plainscroll/scroll"
)

type options struct {
	horizontal    bool
	items         int
	arrows        bool
	alwaysVisible bool
	jump          bool
	minHandle     float64
	wheelSpeed    float64
	logPath       string
}

func main() {
	var opts options
	flag.BoolVar(&opts.horizontal, "horizontal", false, "add a horizontal scrollbar below the rows")
	flag.IntVar(&opts.items, "items", 200, "number of rows")
	flag.BoolVar(&opts.arrows, "arrows", false, "draw arrow buttons at both ends of the track")
	flag.BoolVar(&opts.alwaysVisible, "always-visible", true, "keep the scrollbar visible when the pointer leaves it")
	flag.BoolVar(&opts.jump, "jump", false, "jump to the clicked track position instead of paging")
	flag.Float64Var(&opts.minHandle, "min-handle", 1, "minimum handle length in cells")
	flag.Float64Var(&opts.wheelSpeed, "wheel-speed", scroll.DefaultWheelSpeed, "cells moved per wheel notch")
	flag.StringVar(&opts.logPath, "log", "", "write debug logs to this file")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatalf("plainscroll-demo: %v", err)
	}
}

func run(opts options) error {
	if opts.items < 0 {
		return fmt.Errorf("-items must not be negative, got %d", opts.items)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	logger := slog.New(slog.DiscardHandler)
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	app := plainscroll.NewApplication().SetLogger(logger)

	view, err := plainscroll.NewScrollView(rows(opts.items, opts.horizontal), opts.horizontal,
		scroll.WithScheduler(app),
		scroll.WithLogger(logger),
		scroll.WithArrows(opts.arrows),
		scroll.WithAlwaysVisible(opts.alwaysVisible),
		scroll.WithPageOnTrackClick(!opts.jump),
		scroll.WithMinHandleSize(opts.minHandle),
		scroll.WithWheelSpeed(opts.wheelSpeed),
	)
	if err != nil {
		return err
	}
	if opts.arrows {
		view.VerticalBar().SetGlyphSet(plainscroll.UnicodeGlyphSet())
		if bar := view.HorizontalBar(); bar != nil {
			bar.SetGlyphSet(plainscroll.UnicodeGlyphSet())
		}
	}

	root := newFrame(view, app.QuitKeys())
	view.SetChangedFunc(func(orientation scroll.Orientation, v scroll.Viewport) {
		logger.Debug("viewport changed", "orientation", orientation, "start", v.Start, "total", v.Total, "visible", v.Visible)
		root.update(orientation, v)
	})

	logger.Info("starting", "items", opts.items, "horizontal", opts.horizontal)
	return app.SetRoot(root).Run()
}

func rows(n int, wide bool) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("row %d", i+1)
		if wide {
			items[i] += " " + strings.Repeat("·", i%120)
		}
	}
	return items
}

// frame stacks the scroll view above a one-line status bar: the viewport
// positions on the left, the key help on the right.
type frame struct {
	*plainscroll.Box

	view     *plainscroll.ScrollView
	help     *help.Help
	quitKeys []keybind.Keybind
	status   map[scroll.Orientation]scroll.Viewport
}

func newFrame(view *plainscroll.ScrollView, quitKeys []keybind.Keybind) *frame {
	f := &frame{
		Box:      plainscroll.NewBox(),
		view:     view,
		quitKeys: quitKeys,
		status:   make(map[scroll.Orientation]scroll.Viewport),
	}
	f.help = help.New().SetKeyMap(f)
	f.status[scroll.Vertical] = view.VerticalBar().Viewport()
	if bar := view.HorizontalBar(); bar != nil {
		f.status[scroll.Horizontal] = bar.Viewport()
	}
	return f
}

func (f *frame) update(orientation scroll.Orientation, v scroll.Viewport) {
	f.status[orientation] = v
	f.MarkDirty()
}

func (f *frame) SetRect(x, y, width, height int) {
	f.Box.SetRect(x, y, width, height)
	f.view.SetRect(x, y, width, max(height-1, 0))
	// The view clamps the offsets for its new size.
	f.status[scroll.Vertical] = f.view.VerticalBar().Viewport()
	if bar := f.view.HorizontalBar(); bar != nil {
		f.status[scroll.Horizontal] = bar.Viewport()
	}
}

func (f *frame) Draw(screen tcell.Screen) {
	f.DrawForSubclass(screen, f)
	f.view.Draw(screen)

	x, y, width, height := f.GetRect()
	if height == 0 {
		return
	}
	v := f.status[scroll.Vertical]
	line := fmt.Sprintf(" row %.0f/%.0f", v.Start+1, v.Total)
	if h, ok := f.status[scroll.Horizontal]; ok {
		line += fmt.Sprintf("  col %.0f/%.0f", h.Start+1, h.Total)
	}
	line = runewidth.Truncate(line+"  ", width, "")
	style := tcell.StyleDefault.Foreground(plainscroll.Styles.PrimaryTextColor).Background(plainscroll.Styles.PrimitiveBackgroundColor)
	n := plainscroll.Print(screen, line, x, y+height-1, width, style)

	f.help.SetRect(x+n, y+height-1, width-n, 1)
	f.help.Draw(screen)
}

func (f *frame) ShortHelp() []keybind.Keybind {
	return f.quitKeys
}

func (f *frame) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{f.quitKeys}
}

func (f *frame) MouseHandler(action plainscroll.MouseAction, event *tcell.EventMouse) (plainscroll.Primitive, plainscroll.Command) {
	return f.view.MouseHandler(action, event)
}
