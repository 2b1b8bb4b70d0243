// ABOUTME: Friendly display names for source applications
// ABOUTME: Built-in mapping of well-known executables plus an optional TOML override file

// Package appnames maps raw executable names ("msedge.exe", "code") to the
// display names users recognize ("Microsoft Edge", "VS Code"). Matching is
// case-insensitive on the executable base name without extension.
package appnames

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// knownApps maps lowercase executable base names to friendly display names
var knownApps = map[string]string{
	"msedge":    "Microsoft Edge",
	"edge":      "Microsoft Edge",
	"code":      "VS Code",
	"vscode":    "VS Code",
	"chrome":    "Google Chrome",
	"chromium":  "Chromium",
	"firefox":   "Firefox",
	"notepad":   "Notepad",
	"explorer":  "File Explorer",
	"weixin":    "WeChat",
	"wechat":    "WeChat",
	"terminal":  "Terminal",
	"alacritty": "Alacritty",
	"kitty":     "Kitty",
}

// overrideFile is the TOML shape of a user override file:
//
//	[names]
//	"my-tool" = "My Tool"
type overrideFile struct {
	Names map[string]string `toml:"names"`
}

// Resolver translates executable names into display names
type Resolver struct {
	overrides map[string]string
}

// New returns a Resolver with only the built-in mapping
func New() *Resolver {
	return &Resolver{overrides: map[string]string{}}
}

// Load returns a Resolver with user overrides from the given TOML file
// merged over the built-in mapping. A missing file is not an error.
func Load(path string) (*Resolver, error) {
	r := New()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading app names file: %w", err)
	}

	var f overrideFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("parsing app names file: %w", err)
	}
	for k, v := range f.Names {
		r.overrides[strings.ToLower(k)] = v
	}
	return r, nil
}

// Display returns the friendly name for an executable. The input may carry
// an .exe suffix. Unknown executables get a normalized form of their own
// name: extension stripped, first letter upper-cased.
func (r *Resolver) Display(exe string) string {
	base := strings.TrimSpace(exe)
	if base == "" {
		return ""
	}
	lower := strings.TrimSuffix(strings.ToLower(base), ".exe")

	if name, ok := r.overrides[lower]; ok {
		return name
	}
	if name, ok := knownApps[lower]; ok {
		return name
	}
	return normalize(base)
}

// normalize strips a trailing .exe and upper-cases only the first letter,
// avoiding locale-dependent title casing.
func normalize(name string) string {
	n := strings.TrimSpace(name)
	if strings.HasSuffix(strings.ToLower(n), ".exe") {
		n = n[:len(n)-4]
	}
	if n == "" {
		return ""
	}
	return strings.ToUpper(n[:1]) + n[1:]
}
