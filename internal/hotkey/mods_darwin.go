// ABOUTME: macOS modifier mapping for hotkey registration
// ABOUTME: alt maps to option, meta to cmd

//go:build darwin

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
		mods = append(mods, hotkey.ModOption)
	}
	if c.Meta {
		mods = append(mods, hotkey.ModCmd)
	}
	return mods, nil
}
