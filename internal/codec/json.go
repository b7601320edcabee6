package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gitbrowse/internal/domain"
)

// JSONCodec exports listing rows as a JSON array
type JSONCodec struct {
	now time.Time
}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec(now time.Time) *JSONCodec {
	return &JSONCodec{now: now}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the HTTP content type
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// Export writes repos as indented JSON rows
func (c *JSONCodec) Export(repos []domain.Repository, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewRows(repos, c.now)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
