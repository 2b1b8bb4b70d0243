// ABOUTME: Windows paste injection via SendInput, synthesizing a Ctrl+V key chord
// ABOUTME: Uses raw user32 calls through golang.org/x/sys/windows

package paste

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard   = 1
	keyEventKeyUp   = 0x0002
	vkControl       = 0x11
	vkV             = 0x56
	keyboardInputSz = 40 // sizeof(INPUT) on 64-bit Windows
)

// keyboardInput mirrors the INPUT struct with a KEYBDINPUT payload.
type keyboardInput struct {
	inputType uint32
	_         uint32 // alignment padding
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
	_         [8]byte // pad to MOUSEINPUT size
}

type sendInputInjector struct{}

func newPlatformInjector() Injector { return sendInputInjector{} }

// PasteGesture presses and releases Ctrl+V as a single SendInput batch.
// Elevated or UIPI-protected windows silently swallow the input; SendInput
// reports how many events were actually inserted.
func (sendInputInjector) PasteGesture() error {
	inputs := []keyboardInput{
		{inputType: inputKeyboard, vk: vkControl},
		{inputType: inputKeyboard, vk: vkV},
		{inputType: inputKeyboard, vk: vkV, flags: keyEventKeyUp},
		{inputType: inputKeyboard, vk: vkControl, flags: keyEventKeyUp},
	}
	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(keyboardInputSz),
	)
	if int(sent) != len(inputs) {
		return fmt.Errorf("SendInput inserted %d of %d events: %v", sent, len(inputs), err)
	}
	return nil
}
