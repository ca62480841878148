// Package help draws the key bindings of a plainscroll application, either
// as a single status line or as aligned columns.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/xqrs/plainscroll"
	"github.com/xqrs/plainscroll/keybind"
)

type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

type Help struct {
	*plainscroll.Box
	Styles Styles

	keyMap         KeyMap
	showAll        bool
	shortSeparator string
	fullSeparator  string
	ellipsis       string
}

func New() *Help {
	return &Help{
		Box:            plainscroll.NewBox(),
		Styles:         DefaultStyles(),
		shortSeparator: " • ",
		fullSeparator:  "    ",
		ellipsis:       "…",
	}
}

// SetKeyMap sets the key map whose bindings are drawn.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	h.MarkDirty()
	return h
}

// SetShowAll switches between the short line and the full columns.
func (h *Help) SetShowAll(showAll bool) *Help {
	h.showAll = showAll
	h.MarkDirty()
	return h
}

func (h *Help) ShowAll() bool {
	return h.showAll
}

// SetShortSeparator sets the text between bindings on the short line. An
// empty separator is drawn as one space.
func (h *Help) SetShortSeparator(separator string) *Help {
	h.shortSeparator = separator
	h.MarkDirty()
	return h
}

// SetFullSeparator sets the text between full help columns.
func (h *Help) SetFullSeparator(separator string) *Help {
	h.fullSeparator = separator
	h.MarkDirty()
	return h
}

// SetEllipsis sets the marker appended when bindings are left out. An
// empty marker disables it.
func (h *Help) SetEllipsis(ellipsis string) *Help {
	h.ellipsis = ellipsis
	h.MarkDirty()
	return h
}

func (h *Help) SetStyles(styles Styles) *Help {
	h.Styles = styles
	h.MarkDirty()
	return h
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)
	if h.keyMap == nil {
		return
	}

	x, y, width, height := h.GetRect()
	var lines []line
	if h.showAll {
		lines = h.fullLines(h.keyMap.FullHelp(), width)
	} else {
		lines = []line{h.shortLine(h.keyMap.ShortHelp(), width)}
	}
	for row := 0; row < len(lines) && row < height; row++ {
		lines[row].draw(screen, x, y+row, width)
	}
}

// ShortHelpLine renders the short help of bindings as plain text.
func (h *Help) ShortHelpLine(bindings []keybind.Keybind, maxWidth int) string {
	return h.shortLine(bindings, maxWidth).String()
}

// FullHelpLines renders grouped help into full mode lines as plain text.
func (h *Help) FullHelpLines(groups [][]keybind.Keybind, maxWidth int) []string {
	lines := h.fullLines(groups, maxWidth)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.String())
	}
	return out
}

// span is a run of text drawn in one style.
type span struct {
	text  string
	style tcell.Style
}

type line []span

func (l line) width() int {
	w := 0
	for _, s := range l {
		w += uniseg.StringWidth(s.text)
	}
	return w
}

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

func (l line) draw(screen tcell.Screen, x, y, width int) {
	for _, s := range l {
		if width <= 0 {
			return
		}
		n := plainscroll.Print(screen, s.text, x, y, width, s.style)
		x += n
		width -= n
	}
}

// pad appends n blanks in style.
func (l line) pad(n int, style tcell.Style) line {
	if n <= 0 {
		return l
	}
	return append(l, span{strings.Repeat(" ", n), style})
}

func (h *Help) shortLine(bindings []keybind.Keybind, maxWidth int) line {
	sep := span{h.shortSeparator, h.Styles.ShortSeparatorStyle}
	if sep.text == "" {
		sep.text = " "
	}

	var out line
	for _, kb := range bindings {
		if !kb.Enabled() {
			continue
		}
		it := item(kb.Help(), h.Styles.ShortKeyStyle, h.Styles.ShortDescStyle)
		if len(it) == 0 {
			continue
		}
		next := it
		if len(out) > 0 {
			next = append(append(append(line{}, out...), sep), it...)
		}
		if maxWidth > 0 && next.width() > maxWidth {
			if len(out) == 0 {
				// Not even the first binding fits.
				return nil
			}
			return append(out, h.tail(out, maxWidth)...)
		}
		out = next
	}
	return out
}

// item renders one binding as "key desc", or whichever half is set.
func item(hp keybind.Help, keyStyle, descStyle tcell.Style) line {
	var l line
	if hp.Key != "" {
		l = append(l, span{hp.Key, keyStyle})
	}
	if hp.Key != "" && hp.Desc != "" {
		l = append(l, span{" ", descStyle})
	}
	if hp.Desc != "" {
		l = append(l, span{hp.Desc, descStyle})
	}
	return l
}

// column is one group of full help with the width of its widest key and
// of its widest row.
type column struct {
	entries []keybind.Help
	keyW    int
	width   int
}

func newColumn(group []keybind.Keybind) column {
	var c column
	for _, kb := range group {
		hp := kb.Help()
		if !kb.Enabled() || (hp.Key == "" && hp.Desc == "") {
			continue
		}
		c.entries = append(c.entries, hp)
		c.keyW = max(c.keyW, uniseg.StringWidth(hp.Key))
	}
	for _, hp := range c.entries {
		w := c.keyW + uniseg.StringWidth(hp.Desc)
		if hp.Key != "" && hp.Desc != "" {
			w++
		}
		c.width = max(c.width, w)
	}
	return c
}

func (h *Help) fullLines(groups [][]keybind.Keybind, maxWidth int) []line {
	sep := span{h.fullSeparator, h.Styles.FullSeparatorStyle}
	if sep.text == "" {
		sep.text = " "
	}
	sepW := uniseg.StringWidth(sep.text)

	var columns []column
	total := 0
	truncated := false
	for _, group := range groups {
		c := newColumn(group)
		if len(c.entries) == 0 {
			continue
		}
		w := c.width
		if len(columns) > 0 {
			w += sepW
		}
		// Columns are kept left to right until one would overflow.
		if maxWidth > 0 && total+w > maxWidth {
			truncated = true
			break
		}
		columns = append(columns, c)
		total += w
	}

	if len(columns) == 0 {
		if truncated {
			return []line{{{h.ellipsis, h.Styles.EllipsisStyle}}}
		}
		return nil
	}

	rows := 0
	for _, c := range columns {
		rows = max(rows, len(c.entries))
	}
	lines := make([]line, rows)
	for row := range lines {
		var l line
		for i, c := range columns {
			if i > 0 {
				l = append(l, sep)
			}
			last := i == len(columns)-1
			if row >= len(c.entries) {
				if !last {
					l = l.pad(c.width, h.Styles.FullDescStyle)
				}
				continue
			}
			hp := c.entries[row]
			var cell line
			if hp.Key != "" {
				cell = append(cell, span{hp.Key, h.Styles.FullKeyStyle})
			}
			cell = cell.pad(c.keyW-uniseg.StringWidth(hp.Key), h.Styles.FullKeyStyle)
			if hp.Key != "" && hp.Desc != "" {
				cell = append(cell, span{" ", h.Styles.FullDescStyle})
			}
			if hp.Desc != "" {
				cell = append(cell, span{hp.Desc, h.Styles.FullDescStyle})
			}
			// Separators stay aligned across rows.
			if !last {
				cell = cell.pad(c.width-cell.width(), h.Styles.FullDescStyle)
			}
			l = append(l, cell...)
		}
		lines[row] = l
	}

	if truncated {
		lines[0] = append(lines[0], h.tail(lines[0], maxWidth)...)
	}
	return lines
}

// tail is the ellipsis marker to append to current, or nil when it would
// not fit in maxWidth.
func (h *Help) tail(current line, maxWidth int) line {
	if maxWidth <= 0 || h.ellipsis == "" {
		return nil
	}
	t := line{{" ", h.Styles.EllipsisStyle}, {h.ellipsis, h.Styles.EllipsisStyle}}
	if current.width()+t.width() > maxWidth {
		return nil
	}
	return t
}
