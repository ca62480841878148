package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	for in, want := range map[string]string{
		"q":            "q",
		"Q":            "Q",
		" Escape ":     "esc",
		"Ctrl+C":       "ctrl+c",
		"shift+ctrl+X": "ctrl+shift+x",
		"Rune[a]":      "a",
		"backtab":      "shift+tab",
		"PageDown":     "pgdn",
		"+":            "+",
		"ctrl+":        "",
		"":             "",
	} {
		assert.Equal(t, want, normalizeKey(in), "normalizeKey(%q)", in)
	}
}

func TestMatches(t *testing.T) {
	quit := NewKeybind(WithKeys("esc", "ctrl+c", "q", "q"), WithHelp("q", "quit"))
	assert.Equal(t, []string{"esc", "ctrl+c", "q"}, quit.Keys())

	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), quit))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), quit))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), quit))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModShift), quit))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), quit))
	assert.False(t, Matches(nil, quit))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
}

func TestMatchesNamedKeys(t *testing.T) {
	enter := NewKeybind(WithKeys("return"))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), enter))
	ctrlM := tcell.NewEventKey(tcell.KeyCtrlM, 0, tcell.ModCtrl)
	assert.True(t, Matches(ctrlM, NewKeybind(WithKeys("ctrl+m"))))
	assert.False(t, Matches(ctrlM, enter), "ctrl+m is not enter")
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModCtrl), NewKeybind(WithKeys("Ctrl+M"))))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), NewKeybind(WithKeys("ctrl+m"))))

	backtab := NewKeybind(WithKeys("shift+tab"))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), backtab))

	altX := NewKeybind(WithKeys("alt+x"))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), altX))
}

func TestHelp(t *testing.T) {
	quit := NewKeybind(WithKeys("q"), WithHelp("q", "quit"))
	unbound := NewKeybind(WithHelp("z", "unused"))

	assert.True(t, quit.Enabled())
	assert.False(t, unbound.Enabled())
	assert.Equal(t, Help{Key: "q", Desc: "quit"}, quit.Help())
}
