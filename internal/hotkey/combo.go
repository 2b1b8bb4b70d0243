// ABOUTME: Key-combination descriptor parsing ("ctrl+shift+v")
// ABOUTME: Platform-neutral so settings validation works on every build

package hotkey

import (
	"fmt"
	"strings"
)

// Combo is a parsed key-combination descriptor
type Combo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool // cmd on macOS, win/super elsewhere
	Key   rune // lowercase letter or digit
}

// ParseCombo parses a descriptor like "ctrl+shift+v". Modifier names are
// case-insensitive; "cmd", "win" and "super" are aliases for meta, "option"
// for alt. Exactly one non-modifier key (letter or digit) is required.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return c, fmt.Errorf("hotkey %q needs at least one modifier and a key", s)
	}

	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl", "control":
			c.Ctrl = true
		case "shift":
			c.Shift = true
		case "alt", "option":
			c.Alt = true
		case "meta", "cmd", "win", "super":
			c.Meta = true
		default:
			if c.Key != 0 {
				return Combo{}, fmt.Errorf("hotkey %q has more than one key", s)
			}
			r := []rune(part)
			if len(r) != 1 || !isComboKey(r[0]) {
				return Combo{}, fmt.Errorf("hotkey %q has unsupported key %q", s, part)
			}
			c.Key = r[0]
		}
	}

	if c.Key == 0 {
		return Combo{}, fmt.Errorf("hotkey %q is missing a key", s)
	}
	if !c.Ctrl && !c.Shift && !c.Alt && !c.Meta {
		return Combo{}, fmt.Errorf("hotkey %q is missing a modifier", s)
	}
	return c, nil
}

func isComboKey(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// String renders the combo back into descriptor form
func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Meta {
		parts = append(parts, "meta")
	}
	parts = append(parts, string(c.Key))
	return strings.Join(parts, "+")
}
