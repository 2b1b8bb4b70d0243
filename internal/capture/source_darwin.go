// ABOUTME: macOS source resolution via System Events
// ABOUTME: Asks osascript for the frontmost application process name

//go:build darwin

package capture

import (
	"os/exec"
	"strings"

	"github.com/pastify/pastify/internal/appnames"
)

type darwinResolver struct {
	names *appnames.Resolver
}

func newPlatformResolver(names *appnames.Resolver) SourceResolver {
	return &darwinResolver{names: names}
}

func (r *darwinResolver) Resolve() *SourceInfo {
	out, err := exec.Command("osascript", "-e",
		`tell application "System Events" to get name of first process whose frontmost is true`).Output()
	if err != nil {
		return nil
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return nil
	}
	return &SourceInfo{App: r.names.Display(name)}
}
