package preview

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes caps how much of a file is read for a preview.
const DefaultMaxBytes int64 = 10 << 20

var (
	// ErrNoFile is returned when a nil File is passed to the reader.
	ErrNoFile = errors.New("preview: file is required")
	// ErrTooLarge is returned when the file exceeds the configured limit.
	ErrTooLarge = errors.New("preview: file exceeds size limit")
)

// Image is the transient pairing of a selected file and its preview data URL.
type Image struct {
	File      File
	Preview   string
	MediaType string
}

// IsImage reports whether the sniffed media type is an image.
func (img *Image) IsImage() bool {
	if img == nil {
		return false
	}
	return strings.HasPrefix(img.MediaType, "image/")
}

// Name returns the underlying file name, or an empty string.
func (img *Image) Name() string {
	if img == nil || img.File == nil {
		return ""
	}
	return img.File.Name()
}

// Option configures a Reader.
type Option func(*Reader)

// WithMaxBytes overrides the read limit. Non-positive values are ignored.
func WithMaxBytes(limit int64) Option {
	return func(r *Reader) {
		if limit > 0 {
			r.maxBytes = limit
		}
	}
}

// Reader converts files into Image values.
type Reader struct {
	maxBytes int64
}

// NewReader constructs a Reader with defaults plus overrides.
func NewReader(options ...Option) *Reader {
	r := &Reader{maxBytes: DefaultMaxBytes}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Read loads file and returns its Image. The call blocks; callers that must
// not block run it on their own goroutine.
func (r *Reader) Read(file File) (*Image, error) {
	if file == nil {
		return nil, ErrNoFile
	}
	limit := DefaultMaxBytes
	if r != nil && r.maxBytes > 0 {
		limit = r.maxBytes
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("preview: open %s: %w", file.Name(), err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("preview: read %s: %w", file.Name(), err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, file.Name())
	}

	mediaType := mimetype.Detect(data).String()
	return &Image{
		File:      file,
		Preview:   DataURL(mediaType, data),
		MediaType: mediaType,
	}, nil
}

// DataURL encodes data as a base64 data URL with the given media type.
func DataURL(mediaType string, data []byte) string {
	mediaType = strings.TrimSpace(mediaType)
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	var b strings.Builder
	b.Grow(len(mediaType) + base64.StdEncoding.EncodedLen(len(data)) + 13)
	b.WriteString("data:")
	b.WriteString(mediaType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}
