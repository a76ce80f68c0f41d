package appstate

import (
	"strings"
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// keymap binds shortcuts to named actions.
type keymap struct {
	actions map[string]func() bool
	keys    map[KeyShortcut]string
	help    []string
}

func newKeymap() *keymap {
	return &keymap{actions: map[string]func() bool{}, keys: map[KeyShortcut]string{}}
}

// register binds keys to fn. fn returns true when the window should close.
func (m *keymap) register(name, label string, keys KeyboardShortcuts, fn func() bool) {
	m.actions[name] = fn
	if keys != nil {
		for _, sc := range keys.KeyboardShortcuts() {
			m.keys[sc] = name
		}
	}
	if label != "" {
		m.help = append(m.help, label)
	}
}

// lookup resolves a key press to an action name. Shortcuts bind either a
// rune or a key code; letters match case-insensitively.
func (m *keymap) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers &^ key.ModShift
	if e.Rune > 0 {
		if name, ok := m.keys[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return name, true
		}
	}
	name, ok := m.keys[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return name, ok
}

func (m *keymap) trigger(name string) bool {
	if fn, ok := m.actions[name]; ok {
		return fn()
	}
	return false
}

func (m *keymap) helpText() string { return strings.Join(m.help, "  ") }
