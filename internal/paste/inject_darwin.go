// ABOUTME: macOS paste injection via osascript keystroke events
// ABOUTME: Requires the accessibility permission for System Events

package paste

import (
	"fmt"
	"os/exec"
)

type osascriptInjector struct{}

func newPlatformInjector() Injector { return osascriptInjector{} }

func (osascriptInjector) PasteGesture() error {
	cmd := exec.Command("osascript", "-e", `tell application "System Events" to keystroke "v" using command down`)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("osascript keystroke: %v: %s", err, out)
	}
	return nil
}
