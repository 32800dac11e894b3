// Package media turns image files into the data URLs the generate
// endpoint accepts, and describes them for the preview pane.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"
)

// MaxImageBytes caps attachments so a request body stays reasonable
const MaxImageBytes = 10 << 20

// Image is an attachment ready to send
type Image struct {
	Path     string
	MIMEType string
	Size     int
	Width    int
	Height   int
	DataURL  string
}

// Preview is a one-line description for the preview pane
func (i Image) Preview() string {
	if i.Width > 0 && i.Height > 0 {
		return fmt.Sprintf("%s · %dx%d · %s", i.MIMEType, i.Width, i.Height, humanSize(i.Size))
	}
	return fmt.Sprintf("%s · %s", i.MIMEType, humanSize(i.Size))
}

// Load reads the file at path and encodes it. Only image/* content is accepted.
func Load(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return Image{}, fmt.Errorf("image is %s, limit is %s", humanSize(len(data)), humanSize(MaxImageBytes))
	}

	img, err := FromBytes(data)
	if err != nil {
		return Image{}, err
	}
	img.Path = path
	return img, nil
}

// FromBytes encodes raw image bytes
func FromBytes(data []byte) (Image, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return Image{}, fmt.Errorf("not an image (%s)", mimeType)
	}

	img := Image{
		MIMEType: mimeType,
		Size:     len(data),
		DataURL:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}
	// Dimensions are best effort; webp and friends have no registered decoder
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	return img, nil
}

// ErrNotDataURL is returned by ParseDataURL for anything but a base64 data URL
var ErrNotDataURL = errors.New("not a base64 data URL")

// ParseDataURL splits a base64 data URL into its MIME type and bytes
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return mimeType, data, nil
}

// Describe summarizes a data URL for display; it falls back to the raw
// length when the URL cannot be parsed.
func Describe(dataURL string) string {
	_, data, err := ParseDataURL(dataURL)
	if err != nil {
		return fmt.Sprintf("attachment (%d chars)", len(dataURL))
	}
	img, err := FromBytes(data)
	if err != nil {
		return fmt.Sprintf("attachment (%s)", humanSize(len(data)))
	}
	return img.Preview()
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
