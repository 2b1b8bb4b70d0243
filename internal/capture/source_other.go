// ABOUTME: Source resolution stub for platforms without focused-window queries
// ABOUTME: Always reports an unknown source

//go:build !linux && !windows && !darwin

package capture

import "github.com/pastify/pastify/internal/appnames"

func newPlatformResolver(_ *appnames.Resolver) SourceResolver {
	return nopResolver{}
}
