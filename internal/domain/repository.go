package domain

import (
	"strings"
	"time"
)

// Repository is a git repository as presented on the repositories listing.
// Records are snapshots; listing code reorders them but never edits them.
type Repository struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Owner       string         `json:"owner" yaml:"owner"`
	LastChange  time.Time      `json:"last_change" yaml:"last_change"`
	Properties  map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Validate checks the fields required to store and list a repository
func (r *Repository) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrRepositoryNameRequired
	}
	return nil
}

// ShortName returns the last path segment of the repository name,
// e.g. "team/tools/build.git" -> "build.git"
func (r *Repository) ShortName() string {
	if i := strings.LastIndex(r.Name, "/"); i >= 0 {
		return r.Name[i+1:]
	}
	return r.Name
}
