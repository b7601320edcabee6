package codec

import (
	"fmt"
	"io"

	"gitbrowse/internal/domain"
	"gitbrowse/internal/loader"
)

// YAMLCodec exports repositories in catalog form, so an export can be
// imported again
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the HTTP content type
func (c *YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Export writes repos as a catalog document
func (c *YAMLCodec) Export(repos []domain.Repository, w io.Writer) error {
	data, err := loader.ExportCatalog(repos)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
