// ABOUTME: Windows modifier mapping for hotkey registration
// ABOUTME: meta maps to the Windows key

//go:build windows

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
		mods = append(mods, hotkey.ModAlt)
	}
	if c.Meta {
		mods = append(mods, hotkey.ModWin)
	}
	return mods, nil
}
