package service

import (
	"context"
	"fmt"
	"io"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"gitbrowse/internal/codec"
	"gitbrowse/internal/domain"
	"gitbrowse/internal/listing"
	"gitbrowse/internal/repository"
)

const snapshotKey = "repositories"

// ListingOptions configures a ListingService
type ListingOptions struct {
	DefaultSort domain.SortState
	PageSize    int
	MaxPageSize int
	CacheTTL    time.Duration // <= 0 disables caching
	Logger      zerolog.Logger
}

// ListingService serves sorted, paged repository listings
type ListingService struct {
	store  repository.Store
	cache  *gocache.Cache
	opts   ListingOptions
	logger zerolog.Logger
	now    func() time.Time
}

// NewListingService creates a new listing service
func NewListingService(store repository.Store, opts ListingOptions) *ListingService {
	if opts.DefaultSort.Key == "" {
		opts.DefaultSort = domain.DefaultSortState()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 25
	}
	if opts.MaxPageSize < opts.PageSize {
		opts.MaxPageSize = opts.PageSize
	}

	s := &ListingService{
		store:  store,
		opts:   opts,
		logger: opts.Logger,
		now:    time.Now,
	}
	if opts.CacheTTL > 0 {
		s.cache = gocache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return s
}

// DefaultSort returns the sort used when a request names none
func (s *ListingService) DefaultSort() domain.SortState {
	return s.opts.DefaultSort
}

// Snapshot returns the current repository list in store order. The slice
// may be shared with other callers and must not be modified.
func (s *ListingService) Snapshot(ctx context.Context) ([]domain.Repository, error) {
	if s.cache != nil {
		if v, found := s.cache.Get(snapshotKey); found {
			if repos, ok := v.([]domain.Repository); ok {
				return repos, nil
			}
			s.logger.Error().Msg("unexpected snapshot type in cache")
		}
	}

	repos, err := s.store.ListRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(snapshotKey, repos, gocache.DefaultExpiration)
	}
	s.logger.Debug().Int("repositories", len(repos)).Msg("loaded listing snapshot")
	return repos, nil
}

// Invalidate drops the cached snapshot
func (s *ListingService) Invalidate() {
	if s.cache != nil {
		s.cache.Delete(snapshotKey)
	}
}

// provider builds a request-scoped provider over the current snapshot
func (s *ListingService) provider(ctx context.Context, sort domain.SortState) (*listing.Provider, error) {
	repos, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if sort.Key == "" {
		sort = s.opts.DefaultSort
	}

	return listing.New(repos, listing.WithLogger(s.logger), listing.WithSort(sort)), nil
}

// Page returns one window of the listing
func (s *ListingService) Page(ctx context.Context, req PageRequest) (*Page, error) {
	offset, count, err := req.window(s.opts.PageSize, s.opts.MaxPageSize)
	if err != nil {
		return nil, err
	}

	p, err := s.provider(ctx, req.Sort)
	if err != nil {
		return nil, err
	}

	items, err := p.Window(offset, count)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items: items,
		Sort:  p.Sort(),
		Meta:  newPageMeta(offset, count, p.Size()),
	}, nil
}

// All returns the full listing in the requested order
func (s *ListingService) All(ctx context.Context, sort domain.SortState) ([]domain.Repository, error) {
	p, err := s.provider(ctx, sort)
	if err != nil {
		return nil, err
	}
	return p.Window(0, p.Size())
}

// Export writes the full sorted listing with exp
func (s *ListingService) Export(ctx context.Context, sort domain.SortState, exp codec.Exporter, w io.Writer) error {
	repos, err := s.All(ctx, sort)
	if err != nil {
		return err
	}
	return exp.Export(repos, w)
}

// Get returns a single repository by name
func (s *ListingService) Get(ctx context.Context, name string) (*domain.Repository, error) {
	return s.store.GetRepository(ctx, name)
}

// Now returns the clock used for relative timestamps
func (s *ListingService) Now() time.Time {
	return s.now()
}
