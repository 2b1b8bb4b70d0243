// ABOUTME: Tests for the content classifier
// ABOUTME: Covers text/image classification, fingerprints, empty snapshots and thumbnails

package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastify/pastify/internal/clip"
	"github.com/pastify/pastify/internal/store"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestClassify_Text(t *testing.T) {
	c := NewClassifier()
	now := time.Now()

	entry, err := c.Classify(&clip.Content{Text: []byte("hello")}, &SourceInfo{App: "Editor"}, now)
	require.NoError(t, err)

	assert.Equal(t, store.ContentTypeText, entry.ContentType)
	assert.Equal(t, "hello", entry.TextContent)
	assert.Equal(t, "Editor", entry.SourceApp)
	assert.Equal(t, now, entry.CreatedAt)
	assert.Equal(t, Fingerprint([]byte("hello")), entry.ContentHash)
}

func TestClassify_TextWinsOverImage(t *testing.T) {
	c := NewClassifier()

	entry, err := c.Classify(&clip.Content{
		Text:  []byte("styled snippet"),
		Image: encodePNG(t, 4, 4),
	}, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, store.ContentTypeText, entry.ContentType)
	assert.Empty(t, entry.ImageData)
}

func TestClassify_Image(t *testing.T) {
	c := NewClassifier()
	data := encodePNG(t, 8, 8)

	entry, err := c.Classify(&clip.Content{Image: data}, nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, store.ContentTypeImage, entry.ContentType)
	assert.Equal(t, data, entry.ImageData)
	assert.Equal(t, Fingerprint(data), entry.ContentHash)
	// Small images keep their original bytes as the thumbnail
	assert.Equal(t, data, entry.ImageThumb)
}

func TestClassify_Empty(t *testing.T) {
	c := NewClassifier()

	cases := []*clip.Content{
		{},
		{Text: []byte("   \n\t ")},
		nil,
	}
	for _, content := range cases {
		_, err := c.Classify(content, nil, time.Now())
		assert.ErrorIs(t, err, ErrEmpty)
	}
}

func TestClassify_UndecodableImageKeptWithoutThumb(t *testing.T) {
	c := NewClassifier()
	data := []byte("not a png at all")

	entry, err := c.Classify(&clip.Content{Image: data}, nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, store.ContentTypeImage, entry.ContentType)
	assert.Equal(t, data, entry.ImageData)
	assert.Nil(t, entry.ImageThumb)
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint([]byte("same bytes"))
	b := Fingerprint([]byte("same bytes"))
	c := Fingerprint([]byte("different bytes"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestThumbnail_ScalesDownLargeImages(t *testing.T) {
	big := encodePNG(t, 1024, 512)

	thumb, err := Thumbnail(big)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestThumbnail_LeavesSmallImagesAlone(t *testing.T) {
	small := encodePNG(t, 32, 32)

	thumb, err := Thumbnail(small)
	require.NoError(t, err)
	assert.Equal(t, small, thumb)
}
