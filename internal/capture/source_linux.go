// ABOUTME: Linux source resolution via xdotool and /proc
// ABOUTME: Resolves the active window's pid to its executable name, best-effort

//go:build linux

package capture

import (
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pastify/pastify/internal/appnames"
)

type linuxResolver struct {
	names   *appnames.Resolver
	xdotool string // empty when xdotool is not installed
}

func newPlatformResolver(names *appnames.Resolver) SourceResolver {
	path, err := exec.LookPath("xdotool")
	if err != nil {
		// Wayland sessions and minimal installs: capture proceeds without
		// source attribution.
		return nopResolver{}
	}
	return &linuxResolver{names: names, xdotool: path}
}

func (r *linuxResolver) Resolve() *SourceInfo {
	out, err := exec.Command(r.xdotool, "getactivewindow", "getwindowpid").Output()
	if err != nil {
		return nil
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil || pid <= 0 {
		return nil
	}

	comm, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/comm")
	if err != nil {
		return nil
	}
	name := strings.TrimSpace(string(comm))
	if name == "" {
		return nil
	}
	return &SourceInfo{App: r.names.Display(name)}
}
