package listing

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"gitbrowse/internal/domain"
)

// Provider serves sorted windows over a repository snapshot
type Provider struct {
	list   []domain.Repository
	state  domain.SortState
	logger zerolog.Logger

	// sorted is cleared by SetSort and set once list matches state
	sorted          bool
	resortEveryRead bool
}

// Option configures a Provider
type Option func(*Provider)

// WithLogger sets the logger that reports sort key fallbacks
func WithLogger(l zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = l
	}
}

// WithSort sets the initial sort state instead of the default
func WithSort(s domain.SortState) Option {
	return func(p *Provider) {
		p.state = s
	}
}

// WithResortEveryRead sorts the full snapshot on every Window call rather
// than only after the sort state changes
func WithResortEveryRead() Option {
	return func(p *Provider) {
		p.resortEveryRead = true
	}
}

// New creates a provider over a copy of records. A nil slice is a valid
// empty snapshot.
func New(records []domain.Repository, opts ...Option) *Provider {
	p := &Provider{
		list:   slices.Clone(records),
		state:  domain.DefaultSortState(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetSort changes the sort state. The next Window reflects it.
func (p *Provider) SetSort(key domain.SortKey, ascending bool) {
	next := domain.SortState{Key: key, Ascending: ascending}
	if next == p.state {
		return
	}
	p.state = next
	p.sorted = false
}

// Sort returns the current sort state
func (p *Provider) Sort() domain.SortState {
	return p.state
}

// Size returns the number of repositories in the snapshot
func (p *Provider) Size() int {
	if p == nil {
		return 0
	}
	return len(p.list)
}

// Window returns up to count repositories starting at offset in the current
// sort order. An offset at or past the end yields an empty slice.
func (p *Provider) Window(offset, count int) ([]domain.Repository, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset %d must not be negative", ErrInvalidArgument, offset)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count %d must not be negative", ErrInvalidArgument, count)
	}

	p.ensureSorted()

	size := len(p.list)
	if offset >= size {
		return []domain.Repository{}, nil
	}
	end := offset + min(count, size-offset)
	return slices.Clone(p.list[offset:end]), nil
}

func (p *Provider) ensureSorted() {
	if p.sorted && !p.resortEveryRead {
		return
	}

	state := p.state
	cmp, ok := Lookup(state.Key)
	if !ok {
		fallback := domain.DefaultSortState()
		p.logger.Warn().
			Str("sort_key", string(state.Key)).
			Str("fallback", fallback.String()).
			Msg("unknown sort key, using default order")
		state = fallback
		cmp, _ = Lookup(state.Key)
	}

	slices.SortStableFunc(p.list, Directed(cmp, state.Ascending))
	p.sorted = true
}
