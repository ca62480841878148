package plainscroll

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/xqrs/plainscroll/scroll"
)

const subcell = 8

// GlyphSet defines track, arrow, and fractional thumb glyphs for both
// orientations.
type GlyphSet struct {
	TrackVertical   string
	TrackHorizontal string

	ArrowVerticalStart   string
	ArrowVerticalEnd     string
	ArrowHorizontalStart string
	ArrowHorizontalEnd   string

	ThumbVerticalLower [8]string
	ThumbVerticalUpper [8]string

	ThumbHorizontalLeft  [8]string
	ThumbHorizontalRight [8]string
}

// MinimalGlyphSet returns the minimal glyph set (space track, fractional thumbs).
func MinimalGlyphSet() GlyphSet {
	g := LegacyComputingGlyphSet()
	g.TrackVertical = " "
	g.TrackHorizontal = " "
	return g
}

// LegacyComputingGlyphSet returns legacy-computing symbols for full 1/8 fractional fidelity.
func LegacyComputingGlyphSet() GlyphSet {
	return GlyphSet{
		TrackVertical:   "│",
		TrackHorizontal: "─",

		ArrowVerticalStart:   "▲",
		ArrowVerticalEnd:     "▼",
		ArrowHorizontalStart: "◀",
		ArrowHorizontalEnd:   "▶",

		ThumbVerticalLower: [8]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbVerticalUpper: [8]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"},

		ThumbHorizontalLeft:  [8]string{"▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"},
		ThumbHorizontalRight: [8]string{"▕", "🮇", "🮈", "▐", "🮉", "🮊", "🮋", "█"},
	}
}

// UnicodeGlyphSet returns a standard-unicode-only approximation set.
func UnicodeGlyphSet() GlyphSet {
	g := LegacyComputingGlyphSet()
	g.ThumbVerticalUpper = [8]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"}
	g.ThumbHorizontalRight = [8]string{"▕", "▕", "▐", "▐", "▐", "▐", "█", "█"}
	return g
}

// ScrollBar is a scrollbar primitive. It hosts a [scroll.Scrollbar]: the
// primitive's rect is the track, tcell mouse actions are turned into
// scrollbar input and the handle is drawn with fractional glyphs.
//
// While the handle is dragged, the scrollbar captures the mouse so that it
// keeps receiving moves and the release outside of its rect.
type ScrollBar struct {
	*Box

	bar         *scroll.Scrollbar
	orientation scroll.Orientation

	// Surface state, written by the scrollbar.
	handlePos  float64
	handleLen  float64
	enabled    bool
	scrollable bool
	visible    bool

	// The drag listener subscribed through Subscribe.
	listener scroll.PointerListener
	hovered  bool

	autoHide  bool
	showTrack bool
	glyphSet  GlyphSet

	trackStyle    tcell.Style
	thumbStyle    tcell.Style
	arrowStyle    tcell.Style
	disabledStyle tcell.Style
}

// NewScrollBar returns a scrollbar along the given orientation. The handle
// floor defaults to one cell; opts override it and all other scrollbar
// defaults. opts must include scroll.WithScheduler; inside an
// [Application], pass the application so that drag moves are applied on its
// event loop.
func NewScrollBar(orientation scroll.Orientation, opts ...scroll.Option) (*ScrollBar, error) {
	s := &ScrollBar{
		Box:           NewBox(),
		orientation:   orientation,
		autoHide:      true,
		showTrack:     true,
		glyphSet:      MinimalGlyphSet(),
		trackStyle:    tcell.StyleDefault.Foreground(Styles.TrackColor).Background(Styles.PrimitiveBackgroundColor),
		thumbStyle:    tcell.StyleDefault.Foreground(Styles.ThumbColor).Background(Styles.PrimitiveBackgroundColor),
		arrowStyle:    tcell.StyleDefault.Foreground(Styles.TrackColor).Background(Styles.PrimitiveBackgroundColor),
		disabledStyle: tcell.StyleDefault.Foreground(Styles.DisabledColor).Background(Styles.PrimitiveBackgroundColor),
	}
	opts = append([]scroll.Option{
		scroll.WithMinHandleSize(1),
		scroll.WithInputBroadcast(s),
	}, opts...)

	bar, err := scroll.New(s, orientation, opts...)
	if err != nil {
		return nil, err
	}
	s.bar = bar
	// The arrows were unknown while the scrollbar was being built.
	s.resync()
	return s, nil
}

// Scrollbar returns the underlying scrollbar state machine.
func (s *ScrollBar) Scrollbar() *scroll.Scrollbar {
	return s.bar
}

// Set repositions the scrollbar, see [scroll.Scrollbar.Set].
func (s *ScrollBar) Set(value any, suppressNotify bool) bool {
	return s.bar.Set(value, suppressNotify)
}

// SetViewport replaces the viewport and repositions the handle.
func (s *ScrollBar) SetViewport(v scroll.Viewport, suppressNotify bool) bool {
	return s.bar.SetViewport(v, suppressNotify)
}

// Viewport returns the current viewport.
func (s *ScrollBar) Viewport() scroll.Viewport {
	return s.bar.Viewport()
}

// Enable sets whether the scrollbar reacts to input.
func (s *ScrollBar) Enable(enabled bool) *ScrollBar {
	s.bar.Enable(enabled)
	return s
}

// IsEnabled returns whether the scrollbar reacts to input.
func (s *ScrollBar) IsEnabled() bool {
	return s.bar.IsEnabled()
}

// SetAutoHide controls whether the scrollbar is hidden when there is nothing to scroll.
func (s *ScrollBar) SetAutoHide(autoHide bool) *ScrollBar {
	if s.autoHide != autoHide {
		s.autoHide = autoHide
		s.MarkDirty()
	}
	return s
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphSet = g
	s.MarkDirty()
	return s
}

// SetShowTrack sets whether track glyphs are drawn outside the thumb.
func (s *ScrollBar) SetShowTrack(show bool) *ScrollBar {
	if s.showTrack != show {
		s.showTrack = show
		s.MarkDirty()
	}
	return s
}

// SetThumbStyle sets the thumb style.
func (s *ScrollBar) SetThumbStyle(style tcell.Style) *ScrollBar {
	if s.thumbStyle != style {
		s.thumbStyle = style
		s.MarkDirty()
	}
	return s
}

// SetTrackStyle sets the track style.
func (s *ScrollBar) SetTrackStyle(style tcell.Style) *ScrollBar {
	if s.trackStyle != style {
		s.trackStyle = style
		s.MarkDirty()
	}
	return s
}

// SetArrowStyle sets the arrow endcap style.
func (s *ScrollBar) SetArrowStyle(style tcell.Style) *ScrollBar {
	if s.arrowStyle != style {
		s.arrowStyle = style
		s.MarkDirty()
	}
	return s
}

// SetDisabledStyle sets the style of all glyphs while disabled.
func (s *ScrollBar) SetDisabledStyle(style tcell.Style) *ScrollBar {
	if s.disabledStyle != style {
		s.disabledStyle = style
		s.MarkDirty()
	}
	return s
}

// SetRect sets the track rect and repositions the handle for it.
func (s *ScrollBar) SetRect(x, y, width, height int) {
	ox, oy, ow, oh := s.GetRect()
	s.Box.SetRect(x, y, width, height)
	if nx, ny, nw, nh := s.GetRect(); nx != ox || ny != oy || nw != ow || nh != oh {
		s.resync()
	}
}

func (s *ScrollBar) resync() {
	if s.bar != nil {
		s.bar.SetViewport(s.bar.Viewport(), true)
	}
}

// Geometry implements scroll.Surface. Lengths are in cells.
func (s *ScrollBar) Geometry() scroll.Geometry {
	origin, _ := s.axis()
	offset := origin
	if s.hasArrows() {
		offset++
	}
	return scroll.Geometry{Length: float64(s.trackCells()), Offset: float64(offset)}
}

// SetHandleGeometry implements scroll.Surface.
func (s *ScrollBar) SetHandleGeometry(position, length float64) {
	s.handlePos, s.handleLen = position, length
	s.MarkDirty()
}

// Signal implements scroll.Surface.
func (s *ScrollBar) Signal(signal scroll.Signal, value bool) {
	switch signal {
	case scroll.SignalEnabled:
		s.enabled = value
	case scroll.SignalScrollable:
		s.scrollable = value
	case scroll.SignalVisible:
		s.visible = value
	}
	s.MarkDirty()
}

// Subscribe implements scroll.InputBroadcast on top of mouse capturing.
func (s *ScrollBar) Subscribe(listener scroll.PointerListener) func() {
	s.listener = listener
	return func() {
		if s.listener == listener {
			s.listener = nil
		}
	}
}

// axis returns the rect's origin and length along the scroll axis.
func (s *ScrollBar) axis() (origin, length int) {
	x, y, width, height := s.GetRect()
	if s.orientation == scroll.Horizontal {
		return x, width
	}
	return y, height
}

func (s *ScrollBar) hasArrows() bool {
	return s.bar != nil && s.bar.Arrows()
}

func (s *ScrollBar) trackCells() int {
	_, length := s.axis()
	if length <= 0 {
		return 0
	}
	if s.hasArrows() {
		return max(length-2, 0)
	}
	return length
}

type scrollMetrics struct {
	trackCells int
	trackLen   int
	thumbLen   int
	thumbStart int
}

// metrics converts the handle geometry into subcell units.
func (s *ScrollBar) metrics() scrollMetrics {
	trackCells := s.trackCells()
	trackLen := trackCells * subcell
	if trackLen == 0 {
		return scrollMetrics{}
	}
	thumbStart := min(max(int(math.Round(s.handlePos*subcell)), 0), trackLen)
	thumbLen := min(max(int(math.Round(s.handleLen*subcell)), 1), trackLen-thumbStart)
	return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: thumbLen, thumbStart: thumbStart}
}

func (s *ScrollBar) shouldDraw(m scrollMetrics) bool {
	if m.trackLen == 0 || !s.visible {
		return false
	}
	return !s.autoHide || s.scrollable
}

func cellFill(m scrollMetrics, cellIndex int) (start int, fillLen int) {
	if m.thumbLen == 0 {
		return 0, 0
	}
	cellStart := cellIndex * subcell
	cellEnd := cellStart + subcell
	thumbEnd := m.thumbStart + m.thumbLen
	start = max(m.thumbStart, cellStart)
	end := min(thumbEnd, cellEnd)
	if end <= start {
		return 0, 0
	}
	// Convert absolute subcell coverage into cell-local [start,len] used by fractional glyph selection.
	fillLen = min(end-start, subcell)
	start = min(max(start-cellStart, 0), subcell)
	return start, fillLen
}

func (s *ScrollBar) glyphFor(start, fillLen int) (string, tcell.Style) {
	horizontal := s.orientation == scroll.Horizontal
	if fillLen <= 0 {
		switch {
		case !s.showTrack:
			return " ", s.trackStyle
		case horizontal:
			return s.glyphSet.TrackHorizontal, s.trackStyle
		}
		return s.glyphSet.TrackVertical, s.trackStyle
	}
	ix := min(fillLen, subcell) - 1
	switch {
	case horizontal && start == 0:
		return s.glyphSet.ThumbHorizontalLeft[ix], s.thumbStyle
	case horizontal:
		return s.glyphSet.ThumbHorizontalRight[ix], s.thumbStyle
	case fillLen >= subcell:
		return s.glyphSet.ThumbVerticalLower[7], s.thumbStyle
	case start == 0:
		return s.glyphSet.ThumbVerticalUpper[ix], s.thumbStyle
	}
	return s.glyphSet.ThumbVerticalLower[ix], s.thumbStyle
}

// put draws glyph at index along the scroll axis, across the full thickness
// of the rect.
func (s *ScrollBar) put(screen tcell.Screen, index int, glyph string, style tcell.Style) {
	if !s.enabled {
		style = s.disabledStyle
	}
	x, y, width, height := s.GetRect()
	if s.orientation == scroll.Horizontal {
		for row := y; row < y+height; row++ {
			putGlyph(screen, x+index, row, glyph, style)
		}
		return
	}
	for col := x; col < x+width; col++ {
		putGlyph(screen, col, y+index, glyph, style)
	}
}

// Draw draws the scrollbar.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	m := s.metrics()
	if !s.shouldDraw(m) {
		return
	}

	arrowStart, arrowEnd := s.glyphSet.ArrowVerticalStart, s.glyphSet.ArrowVerticalEnd
	if s.orientation == scroll.Horizontal {
		arrowStart, arrowEnd = s.glyphSet.ArrowHorizontalStart, s.glyphSet.ArrowHorizontalEnd
	}

	idx := 0
	if s.hasArrows() {
		s.put(screen, idx, arrowStart, s.arrowStyle)
		idx++
	}

	for cell := 0; cell < m.trackCells; cell++ {
		start, fillLen := cellFill(m, cell)
		glyph, style := s.glyphFor(start, fillLen)
		s.put(screen, idx, glyph, style)
		idx++
	}

	if s.hasArrows() {
		s.put(screen, idx, arrowEnd, s.arrowStyle)
	}
}

type scrollZone uint8

const (
	zoneNone scrollZone = iota
	zoneArrowStart
	zoneArrowEnd
	zoneTrack
	zoneHandle
)

func (s *ScrollBar) zoneAt(x, y int) scrollZone {
	if !s.InRect(x, y) {
		return zoneNone
	}
	origin, length := s.axis()
	p := y - origin
	if s.orientation == scroll.Horizontal {
		p = x - origin
	}
	if s.hasArrows() {
		switch p {
		case 0:
			return zoneArrowStart
		case length - 1:
			return zoneArrowEnd
		}
		p--
	}
	if p < 0 || p >= s.trackCells() {
		return zoneNone
	}
	// A cell only partially covered by the thumb still grabs it.
	if cell := float64(p); cell+1 > s.handlePos && cell < s.handlePos+s.handleLen {
		return zoneHandle
	}
	return zoneTrack
}

func (s *ScrollBar) hover(inside bool) bool {
	if inside == s.hovered {
		return false
	}
	s.hovered = inside
	if inside {
		s.bar.PointerEnter()
	} else {
		s.bar.PointerLeave()
	}
	return true
}

// MouseHandler handles mouse events for this primitive.
func (s *ScrollBar) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	e := scroll.Event{PageX: float64(x), PageY: float64(y)}
	inside := s.InRect(x, y)

	if s.listener != nil {
		switch action {
		case MouseMove:
			e.Kind = scroll.EventPointerMove
			s.listener.PointerMove(e)
		case MouseLeftUp:
			e.Kind = scroll.EventPointerUp
			s.listener.PointerRelease(e)
		}
		s.hover(inside)
		return s.capture(), RedrawCommand{}
	}

	var cmd Command
	if s.hover(inside) {
		cmd = RedrawCommand{}
	}
	if !inside {
		return nil, cmd
	}

	switch action {
	case MouseLeftDown:
		e.Kind = scroll.EventPointerDown
		switch s.zoneAt(x, y) {
		case zoneArrowStart:
			s.bar.ArrowBackward()
		case zoneArrowEnd:
			s.bar.ArrowForward()
		case zoneHandle:
			s.bar.PointerDownHandle(e)
		case zoneTrack:
			s.bar.PointerDownTrack(e)
		}
		cmd = RedrawCommand{}
	case MouseScrollUp, MouseScrollDown, MouseScrollLeft, MouseScrollRight:
		if s.wheel(action) {
			cmd = RedrawCommand{}
		}
	}
	return s.capture(), cmd
}

func (s *ScrollBar) wheel(action MouseAction) bool {
	e := scroll.Event{Kind: scroll.EventWheel}
	switch {
	case s.orientation == scroll.Vertical && action == MouseScrollUp:
		e.DeltaY = -1
	case s.orientation == scroll.Vertical && action == MouseScrollDown:
		e.DeltaY = 1
	case s.orientation == scroll.Horizontal && action == MouseScrollLeft:
		e.DeltaX = -1
	case s.orientation == scroll.Horizontal && action == MouseScrollRight:
		e.DeltaX = 1
	default:
		return false
	}
	s.bar.Wheel(e)
	return true
}

func (s *ScrollBar) capture() Primitive {
	if s.listener != nil {
		return s
	}
	return nil
}

var (
	_ Primitive             = &ScrollBar{}
	_ scroll.Surface        = &ScrollBar{}
	_ scroll.InputBroadcast = &ScrollBar{}
)
