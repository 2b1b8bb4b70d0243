// ABOUTME: Rune-to-hotkey.Key mapping shared by all desktop platforms
// ABOUTME: Letter and digit key constants have the same names on every platform

//go:build linux || windows || darwin

package hotkey

import (
	"fmt"

	"golang.design/x/hotkey"
)

var keyByRune = map[rune]hotkey.Key{
	'a': hotkey.KeyA, 'b': hotkey.KeyB, 'c': hotkey.KeyC, 'd': hotkey.KeyD,
	'e': hotkey.KeyE, 'f': hotkey.KeyF, 'g': hotkey.KeyG, 'h': hotkey.KeyH,
	'i': hotkey.KeyI, 'j': hotkey.KeyJ, 'k': hotkey.KeyK, 'l': hotkey.KeyL,
	'm': hotkey.KeyM, 'n': hotkey.KeyN, 'o': hotkey.KeyO, 'p': hotkey.KeyP,
	'q': hotkey.KeyQ, 'r': hotkey.KeyR, 's': hotkey.KeyS, 't': hotkey.KeyT,
	'u': hotkey.KeyU, 'v': hotkey.KeyV, 'w': hotkey.KeyW, 'x': hotkey.KeyX,
	'y': hotkey.KeyY, 'z': hotkey.KeyZ,
	'0': hotkey.Key0, '1': hotkey.Key1, '2': hotkey.Key2, '3': hotkey.Key3,
	'4': hotkey.Key4, '5': hotkey.Key5, '6': hotkey.Key6, '7': hotkey.Key7,
	'8': hotkey.Key8, '9': hotkey.Key9,
}

// toPlatform converts a parsed combo to the library's modifier and key
// types. Modifier sets are platform-specific (see mods_*.go).
func toPlatform(c Combo) ([]hotkey.Modifier, hotkey.Key, error) {
	key, ok := keyByRune[c.Key]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported hotkey key %q", string(c.Key))
	}
	mods, err := platformMods(c)
	if err != nil {
		return nil, 0, err
	}
	return mods, key, nil
}
