package codec

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gitbrowse/internal/domain"
)

// TableCodec writes an aligned plain-text table for terminals
type TableCodec struct {
	now time.Time
}

// NewTableCodec creates a new table codec
func NewTableCodec(now time.Time) *TableCodec {
	return &TableCodec{now: now}
}

// Format returns the codec format identifier
func (c *TableCodec) Format() string {
	return "table"
}

// ContentType returns the HTTP content type
func (c *TableCodec) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Export writes one line per repository under a header
func (c *TableCodec) Export(repos []domain.Repository, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION\tOWNER\tLAST CHANGE")
	for _, row := range NewRows(repos, c.now) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Name, row.Description, row.Owner, row.LastChangeAgo)
	}
	return tw.Flush()
}
