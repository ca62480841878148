package plainscroll

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// putGlyph puts the first grapheme cluster of glyph at (x, y) and returns
// its width in cells.
func putGlyph(screen tcell.Screen, x, y int, glyph string, style tcell.Style) int {
	cluster, _, width, _ := uniseg.FirstGraphemeClusterInString(glyph, -1)
	if cluster == "" {
		return 0
	}
	runes := []rune(cluster)
	screen.SetContent(x, y, runes[0], runes[1:], style)
	return max(width, 1)
}

// printSkipping prints text starting at (x, y), skipping the first skip
// cells of it and never writing past maxWidth cells. It returns the number
// of cells printed.
func printSkipping(screen tcell.Screen, text string, x, y, skip, maxWidth int, style tcell.Style) int {
	printed := 0
	state := -1
	for text != "" && printed < maxWidth {
		var cluster string
		var width int
		cluster, text, width, state = uniseg.FirstGraphemeClusterInString(text, state)
		if width <= 0 {
			continue
		}
		if skip > 0 {
			// Wide graphemes cut by the left edge are dropped entirely.
			skip -= width
			if skip < 0 {
				printed += min(-skip, maxWidth-printed)
				skip = 0
			}
			continue
		}
		if printed+width > maxWidth {
			break
		}
		runes := []rune(cluster)
		screen.SetContent(x+printed, y, runes[0], runes[1:], style)
		printed += width
	}
	return printed
}

// Print prints text at (x, y), cutting it at maxWidth cells, and returns
// the number of cells printed.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, style tcell.Style) int {
	return printSkipping(screen, text, x, y, 0, maxWidth, style)
}
