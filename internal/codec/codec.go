package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gitbrowse/internal/domain"
)

// ErrUnknownFormat is returned by ForFormat for unsupported formats
var ErrUnknownFormat = errors.New("unknown export format")

// Exporter writes a listing of repositories in one format
type Exporter interface {
	Export(repos []domain.Repository, w io.Writer) error
	Format() string
	ContentType() string
}

// ForFormat returns the exporter for a format name. now anchors the
// relative "last change" labels.
func ForFormat(format string, now time.Time) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return NewJSONCodec(now), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "table":
		return NewTableCodec(now), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
