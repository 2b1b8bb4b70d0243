// ABOUTME: Linux (X11) modifier mapping for hotkey registration
// ABOUTME: alt maps to Mod1, meta to Mod4

//go:build linux

package hotkey

import "golang.design/x/hotkey"

func platformMods(c Combo) ([]hotkey.Modifier, error) {
	var mods []hotkey.Modifier
	if c.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if c.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if c.Alt {
		mods = append(mods, hotkey.Mod1)
	}
	if c.Meta {
		mods = append(mods, hotkey.Mod4)
	}
	return mods, nil
}
