package codec

import (
	"time"

	"github.com/dustin/go-humanize"

	"gitbrowse/internal/domain"
)

// Age classes for the last change column
const (
	AgeFresh  = "age0"
	AgeRecent = "age1"
	AgeStale  = "age2"
)

// Row is a repository as presented on the listing
type Row struct {
	Name          string    `json:"name"`
	ShortName     string    `json:"short_name"`
	Description   string    `json:"description"`
	Owner         string    `json:"owner"`
	LastChange    time.Time `json:"last_change"`
	LastChangeAgo string    `json:"last_change_ago"`
	AgeClass      string    `json:"age_class"`
}

// NewRow builds the presented form of r relative to now
func NewRow(r domain.Repository, now time.Time) Row {
	return Row{
		Name:          r.Name,
		ShortName:     r.ShortName(),
		Description:   r.Description,
		Owner:         r.Owner,
		LastChange:    r.LastChange,
		LastChangeAgo: TimeAgo(r.LastChange, now),
		AgeClass:      AgeClass(r.LastChange, now),
	}
}

// NewRows converts a window of repositories
func NewRows(repos []domain.Repository, now time.Time) []Row {
	rows := make([]Row, len(repos))
	for i, r := range repos {
		rows[i] = NewRow(r, now)
	}
	return rows
}

// TimeAgo renders t relative to now, e.g. "3 hours ago"
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// AgeClass buckets t: changed within two hours, within two days, or older
func AgeClass(t, now time.Time) string {
	age := now.Sub(t)
	switch {
	case t.IsZero():
		return AgeStale
	case age < 2*time.Hour:
		return AgeFresh
	case age < 48*time.Hour:
		return AgeRecent
	default:
		return AgeStale
	}
}
