// ABOUTME: Unified clipboard access behind a platform-selected Backend interface
// ABOUTME: Desktop platforms use golang.design/x/clipboard; other builds get a no-op stub

// Package clip provides a unified interface to the system clipboard.
// Build constraints select the implementation:
//
//	clip_desktop.go — linux/windows/darwin via golang.design/x/clipboard
//	clip_other.go   — stub for unsupported platforms
//
// Desktop builds fall back to the headless stub at runtime when no display
// environment is available (containers, CI, ssh sessions).
package clip

// Content is one raw clipboard snapshot. Either or both fields may be set;
// an all-nil Content means the clipboard was empty or held unsupported data.
type Content struct {
	Text  []byte // UTF-8 text
	Image []byte // PNG bytes
}

// Empty reports whether the snapshot holds no usable payload
func (c *Content) Empty() bool {
	return c == nil || (len(c.Text) == 0 && len(c.Image) == 0)
}

// Backend is the interface all platform clipboard implementations satisfy
type Backend interface {
	// Name returns a human-readable name for the backend
	Name() string

	// Read returns the current clipboard contents. Returns an empty Content
	// (not an error) when the clipboard is empty.
	Read() (*Content, error)

	// WriteText sets the clipboard to the given text
	WriteText(text []byte) error

	// WriteImage sets the clipboard to the given PNG image
	WriteImage(png []byte) error

	// Watch returns a channel that receives a signal whenever the clipboard
	// changes. The channel is never closed. The caller should Read() when it
	// receives from the channel.
	Watch() <-chan struct{}

	// Close releases any resources held by the backend
	Close()
}

// headlessBackend is a no-op clipboard backend for environments without a
// display server. It never produces Watch events and silently discards
// writes, which leaves the capture loop idle rather than erroring.
type headlessBackend struct {
	watchCh chan struct{}
}

func newHeadless() Backend {
	return &headlessBackend{watchCh: make(chan struct{})}
}

func (b *headlessBackend) Name() string            { return "headless (no-op)" }
func (b *headlessBackend) Read() (*Content, error) { return &Content{}, nil }
func (b *headlessBackend) WriteText([]byte) error  { return nil }
func (b *headlessBackend) WriteImage([]byte) error { return nil }
func (b *headlessBackend) Watch() <-chan struct{}  { return b.watchCh }
func (b *headlessBackend) Close()                  {}
