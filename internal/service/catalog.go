package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"gitbrowse/internal/domain"
	"gitbrowse/internal/loader"
	"gitbrowse/internal/repository"
)

// CatalogService writes repository records and keeps listings fresh
type CatalogService struct {
	store    repository.Store
	listing  *ListingService
	eventBus *EventBus
	logger   zerolog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store repository.Store, listing *ListingService, eventBus *EventBus, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		store:    store,
		listing:  listing,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Reload replaces the stored repositories with the catalog at path
func (s *CatalogService) Reload(ctx context.Context, path string) (int, error) {
	repos, err := loader.LoadCatalog(path)
	if err != nil {
		return 0, fmt.Errorf("load catalog %s: %w", path, err)
	}

	if err := s.Import(ctx, repos); err != nil {
		return 0, err
	}

	s.logger.Info().Str("path", path).Int("repositories", len(repos)).Msg("catalog reloaded")
	return len(repos), nil
}

// Import replaces the stored repositories with repos
func (s *CatalogService) Import(ctx context.Context, repos []domain.Repository) error {
	if err := s.store.ImportCatalog(ctx, repos); err != nil {
		return fmt.Errorf("import catalog: %w", err)
	}

	s.listing.Invalidate()
	s.eventBus.Publish(Event{
		Type:    EventCatalogReloaded,
		Payload: map[string]int{"repositories": len(repos)},
	})
	return nil
}

// LastImport returns when the catalog was last imported, zero if never
func (s *CatalogService) LastImport(ctx context.Context) (time.Time, error) {
	return s.store.LastImport(ctx)
}

// Upsert creates or updates a single repository
func (s *CatalogService) Upsert(ctx context.Context, repo *domain.Repository) error {
	if err := repo.Validate(); err != nil {
		return err
	}
	if err := s.store.UpsertRepository(ctx, repo); err != nil {
		return err
	}

	s.listing.Invalidate()
	s.eventBus.Publish(Event{
		Type:    EventRepositoryUpdated,
		Payload: map[string]string{"name": repo.Name},
	})
	return nil
}

// Delete removes a repository by name
func (s *CatalogService) Delete(ctx context.Context, name string) error {
	if err := s.store.DeleteRepository(ctx, name); err != nil {
		return err
	}

	s.listing.Invalidate()
	s.eventBus.Publish(Event{
		Type:    EventRepositoryDeleted,
		Payload: map[string]string{"name": name},
	})
	return nil
}
