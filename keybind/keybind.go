// Package keybind matches tcell key events against normalized key names
// such as "q", "esc" or "ctrl+c".
package keybind

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Keybind is a set of equivalent keys plus the text shown for them in a
// help line.
type Keybind struct {
	keys []string
	help Help
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	k := &Keybind{}
	for _, option := range options {
		option(k)
	}
	return *k
}

func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.keys = normalizeKeys(keys...)
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

func (k Keybind) Keys() []string {
	return k.keys
}

func (k Keybind) Help() Help {
	return k.help
}

// Enabled reports whether any key is bound.
func (k Keybind) Enabled() bool {
	return len(k.keys) > 0
}

type Help struct {
	Key  string
	Desc string
}

// Matches reports whether event is one of the keys of any of keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}

	key := eventKeyString(event)
	if key == "" {
		return false
	}
	for _, keybind := range keybinds {
		if slices.Contains(keybind.keys, key) {
			return true
		}
	}
	return false
}

func normalizeKeys(keys ...string) []string {
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		key = normalizeKey(key)
		if key == "" || slices.Contains(normalized, key) {
			continue
		}
		normalized = append(normalized, key)
	}
	return normalized
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	// A lone "+" is the plus key, not a separator.
	if key == "+" {
		return key
	}

	var (
		mods    []string
		primary string
	)
	for part := range strings.SplitSeq(key, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods = append(mods, "ctrl")
		case "alt":
			mods = append(mods, "alt")
		case "shift":
			mods = append(mods, "shift")
		case "meta":
			mods = append(mods, "meta")
		default:
			primary = normalizePrimaryKey(part)
		}
	}

	if primary == "" {
		return ""
	}

	if primary == "backtab" {
		mods = append(mods, "shift")
		primary = "tab"
	}

	if len(mods) > 0 && len([]rune(primary)) == 1 {
		primary = strings.ToLower(primary)
	}

	return join(mods, primary)
}

func normalizePrimaryKey(key string) string {
	if strings.HasPrefix(key, "Rune[") && strings.HasSuffix(key, "]") && len(key) >= 7 {
		return key[5 : len(key)-1]
	}

	if len([]rune(key)) == 1 {
		return key
	}

	switch key = strings.ToLower(key); key {
	case "esc", "escape":
		return "esc"
	case "return":
		return "enter"
	case "pageup":
		return "pgup"
	case "pagedown":
		return "pgdn"
	case "space":
		return " "
	}
	return key
}

// join orders modifiers canonically so "shift+ctrl+x" equals "ctrl+shift+x".
func join(mods []string, primary string) string {
	if len(mods) == 0 {
		return primary
	}
	ordered := make([]string, 0, len(mods)+1)
	for _, mod := range []string{"ctrl", "alt", "shift", "meta"} {
		if slices.Contains(mods, mod) {
			ordered = append(ordered, mod)
		}
	}
	return strings.Join(append(ordered, primary), "+")
}

func eventKeyString(event *tcell.EventKey) string {
	key := event.Key()
	mods := modifiers(event.Modifiers())

	if key == tcell.KeyBacktab {
		return join(append(mods, "shift"), "tab")
	}
	if primary := keyName(key); primary != "" {
		return join(mods, primary)
	}

	// KeyCtrlA..KeyCtrlZ sit above the ASCII control codes, so ctrl+m is
	// not enter and ctrl+i is not tab.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mods = append(mods, "ctrl")
		return join(mods, string(rune('a'+(key-tcell.KeyCtrlA))))
	}

	if key == tcell.KeyRune {
		r := event.Rune()
		primary := string(r)
		// Shifted runes arrive already shifted.
		mods = slices.DeleteFunc(mods, func(m string) bool { return m == "shift" })
		if len(mods) > 0 {
			primary = strings.ToLower(primary)
		}
		return join(mods, primary)
	}

	return normalizeKey(event.Name())
}

func modifiers(m tcell.ModMask) []string {
	mods := make([]string, 0, 4)
	if m&tcell.ModCtrl != 0 {
		mods = append(mods, "ctrl")
	}
	if m&tcell.ModAlt != 0 {
		mods = append(mods, "alt")
	}
	if m&tcell.ModShift != 0 {
		mods = append(mods, "shift")
	}
	if m&tcell.ModMeta != 0 {
		mods = append(mods, "meta")
	}
	return mods
}

func keyName(key tcell.Key) string {
	switch key {
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyPgUp:
		return "pgup"
	case tcell.KeyPgDn:
		return "pgdn"
	case tcell.KeyDelete:
		return "delete"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyInsert:
		return "insert"
	default:
		return ""
	}
}
