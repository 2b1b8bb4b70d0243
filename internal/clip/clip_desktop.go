// ABOUTME: Desktop clipboard backend on golang.design/x/clipboard with change polling
// ABOUTME: Falls back to the headless stub when no display environment is available

//go:build linux || windows || darwin

package clip

import (
	"bytes"
	"log/slog"
	"time"

	"golang.design/x/clipboard"
)

type desktopBackend struct {
	watchCh  chan struct{}
	done     chan struct{}
	lastText []byte
	lastImg  []byte
}

// New returns the desktop clipboard backend, or a headless no-op backend if
// the display environment is unavailable. clipboard.Init is called here
// rather than in init() so that CLI sub-commands (init, paths) don't trigger
// the warning. interval is the change-detection poll period.
func New(interval time.Duration) Backend {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return newHeadless()
	}
	b := &desktopBackend{
		watchCh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go b.poll(interval)
	return b
}

func (b *desktopBackend) Name() string { return "system clipboard (poll)" }

func (b *desktopBackend) poll(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			text := clipboard.Read(clipboard.FmtText)
			img := clipboard.Read(clipboard.FmtImage)
			if !bytes.Equal(text, b.lastText) || !bytes.Equal(img, b.lastImg) {
				b.lastText = text
				b.lastImg = img
				select {
				case b.watchCh <- struct{}{}:
				default:
				}
			}
		}
	}
}

func (b *desktopBackend) Read() (*Content, error) {
	return &Content{
		Text:  clipboard.Read(clipboard.FmtText),
		Image: clipboard.Read(clipboard.FmtImage),
	}, nil
}

// WriteText sets the clipboard text. The engine's own writes still surface
// on the Watch channel; the watcher suppresses them by content hash.
func (b *desktopBackend) WriteText(text []byte) error {
	clipboard.Write(clipboard.FmtText, text)
	return nil
}

func (b *desktopBackend) WriteImage(png []byte) error {
	clipboard.Write(clipboard.FmtImage, png)
	return nil
}

func (b *desktopBackend) Watch() <-chan struct{} { return b.watchCh }
func (b *desktopBackend) Close()                 { close(b.done) }
