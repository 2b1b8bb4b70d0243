// ABOUTME: Best-effort identification of the application owning the focused window
// ABOUTME: Platform files implement resolve(); failures yield a nil SourceInfo

package capture

import "github.com/pastify/pastify/internal/appnames"

// SourceInfo identifies the application that most likely produced a
// clipboard change. Resolution is best-effort: any field may be empty.
type SourceInfo struct {
	App  string // friendly display name
	Icon []byte // PNG bytes, may be nil
}

// SourceResolver resolves the currently focused application
type SourceResolver interface {
	// Resolve returns info about the focused application, or nil when it
	// cannot be determined. Resolve never returns an error; the capture
	// path treats unknown sources as acceptable.
	Resolve() *SourceInfo
}

// NewSourceResolver returns the platform source resolver. names maps
// executable names to friendly display names; nil selects the built-in
// mapping only.
func NewSourceResolver(names *appnames.Resolver) SourceResolver {
	if names == nil {
		names = appnames.New()
	}
	return newPlatformResolver(names)
}

// nopResolver is used where focused-window queries are unsupported
type nopResolver struct{}

func (nopResolver) Resolve() *SourceInfo { return nil }
