// ABOUTME: Content classifier turning raw clipboard snapshots into typed entries
// ABOUTME: Computes the SHA-256 content fingerprint and a size-bounded PNG thumbnail

// Package capture normalizes raw clipboard snapshots into typed store
// entries. Text wins over image when a snapshot carries both, matching how
// most applications put a text representation alongside richer formats.
package capture

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/pastify/pastify/internal/clip"
	"github.com/pastify/pastify/internal/store"
)

// ErrEmpty is returned when a snapshot holds no recordable payload.
// The watcher treats it as a non-event, not a failure.
var ErrEmpty = errors.New("empty clipboard snapshot")

// thumbMaxSide bounds the longest side of generated image previews
const thumbMaxSide = 256

// Classifier builds store entries from clipboard snapshots
type Classifier struct{}

// NewClassifier returns a Classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify turns a snapshot into an unsaved store entry. Source fields are
// best-effort and may be zero. Returns ErrEmpty for snapshots that should
// not produce an entry (empty clipboard, whitespace-only text).
func (c *Classifier) Classify(content *clip.Content, source *SourceInfo, now time.Time) (*store.Entry, error) {
	if content.Empty() {
		return nil, ErrEmpty
	}

	entry := &store.Entry{CreatedAt: now}
	if source != nil {
		entry.SourceApp = source.App
		entry.SourceIcon = source.Icon
	}

	if len(content.Text) > 0 {
		text := string(content.Text)
		if strings.TrimSpace(text) == "" {
			return nil, ErrEmpty
		}
		entry.ContentType = store.ContentTypeText
		entry.TextContent = text
		entry.ContentHash = Fingerprint(content.Text)
		return entry, nil
	}

	entry.ContentType = store.ContentTypeImage
	entry.ImageData = content.Image
	entry.ContentHash = Fingerprint(content.Image)

	thumb, err := Thumbnail(content.Image)
	if err != nil {
		// An undecodable image is still worth keeping; the preview is
		// cosmetic.
		return entry, nil
	}
	entry.ImageThumb = thumb
	return entry, nil
}

// Fingerprint returns the hex SHA-256 of the raw payload bytes. It is the
// dedup key: identical payloads always fingerprint identically.
func Fingerprint(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Thumbnail decodes a PNG payload and scales it so its longest side is at
// most thumbMaxSide pixels, re-encoding as PNG. Images already within
// bounds are re-encoded unchanged in size.
func Thumbnail(pngData []byte) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= thumbMaxSide && h <= thumbMaxSide {
		return pngData, nil
	}

	scale := float64(thumbMaxSide) / float64(max(w, h))
	tw := int(float64(w) * scale)
	th := int(float64(h) * scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
