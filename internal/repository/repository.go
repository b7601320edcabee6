package repository

import (
	"context"
	"errors"
	"time"

	"gitbrowse/internal/domain"
)

// ErrNotFound is returned when a repository with the requested name does not exist
var ErrNotFound = errors.New("repository not found")

// Store defines data access for repository records
type Store interface {
	// Read operations
	ListRepositories(ctx context.Context) ([]domain.Repository, error)
	GetRepository(ctx context.Context, name string) (*domain.Repository, error)

	// Write operations
	UpsertRepository(ctx context.Context, repo *domain.Repository) error
	DeleteRepository(ctx context.Context, name string) error

	// Bulk operations
	ImportCatalog(ctx context.Context, repos []domain.Repository) error
	// LastImport returns the time of the latest ImportCatalog, zero if none
	LastImport(ctx context.Context) (time.Time, error)

	// Close releases resources
	Close() error
}
