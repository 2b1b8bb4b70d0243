// ABOUTME: Linux paste injection via external key-event tools
// ABOUTME: Prefers wtype on Wayland, falls back to xdotool on X11

package paste

import (
	"fmt"
	"os"
	"os/exec"
)

type execInjector struct {
	tool string
	args []string
}

// newPlatformInjector picks whichever key-event tool is installed. Wayland
// sessions need wtype; xdotool only works against an X server (including
// XWayland for some compositors).
func newPlatformInjector() Injector {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if _, err := exec.LookPath("wtype"); err == nil {
			return execInjector{tool: "wtype", args: []string{"-M", "ctrl", "-k", "v", "-m", "ctrl"}}
		}
	}
	if _, err := exec.LookPath("xdotool"); err == nil {
		return execInjector{tool: "xdotool", args: []string{"key", "--clearmodifiers", "ctrl+v"}}
	}
	return unavailableInjector{}
}

func (e execInjector) PasteGesture() error {
	cmd := exec.Command(e.tool, e.args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %v: %s", e.tool, err, out)
	}
	return nil
}

type unavailableInjector struct{}

func (unavailableInjector) PasteGesture() error {
	return fmt.Errorf("no key injection tool available (install wtype or xdotool)")
}
