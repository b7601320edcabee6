package listing

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitbrowse/internal/domain"
)

func at(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func names(repos []domain.Repository) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.Name
	}
	return out
}

func scenario() []domain.Repository {
	return []domain.Repository{
		{Name: "b", LastChange: at(10)},
		{Name: "a", LastChange: at(20)},
		{Name: "c", LastChange: at(15)},
	}
}

func TestProviderScenario(t *testing.T) {
	p := New(scenario())

	got, err := p.Window(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, names(got))

	p.SetSort(domain.SortByName, true)

	got, err = p.Window(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names(got))

	got, err = p.Window(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, names(got))
}

func TestProviderDefaultSort(t *testing.T) {
	p := New(nil)
	assert.Equal(t, domain.DefaultSortState(), p.Sort())

	p = New(nil, WithSort(domain.SortState{Key: domain.SortByOwner, Ascending: true}))
	assert.Equal(t, domain.SortState{Key: domain.SortByOwner, Ascending: true}, p.Sort())
}

func TestProviderEmpty(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.Repository
	}{
		{"nil snapshot", nil},
		{"empty snapshot", []domain.Repository{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.records)
			assert.Equal(t, 0, p.Size())

			for _, w := range [][2]int{{0, 0}, {0, 10}, {5, 5}} {
				got, err := p.Window(w[0], w[1])
				require.NoError(t, err)
				assert.Empty(t, got)
			}
		})
	}

	var nilProvider *Provider
	assert.Equal(t, 0, nilProvider.Size())
}

func TestProviderWindowBounds(t *testing.T) {
	p := New(scenario())
	n := p.Size()

	t.Run("offset at end", func(t *testing.T) {
		got, err := p.Window(n, 5)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("offset past end", func(t *testing.T) {
		got, err := p.Window(n+10, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("count larger than size", func(t *testing.T) {
		got, err := p.Window(0, n+100)
		require.NoError(t, err)
		assert.Len(t, got, n)
	})

	t.Run("zero count", func(t *testing.T) {
		got, err := p.Window(1, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("huge count does not overflow", func(t *testing.T) {
		got, err := p.Window(1, int(^uint(0)>>1))
		require.NoError(t, err)
		assert.Len(t, got, n-1)
	})
}

func TestProviderWindowInvalidArgument(t *testing.T) {
	tests := []struct {
		name          string
		offset, count int
	}{
		{"negative offset", -1, 5},
		{"negative count", 0, -1},
		{"both negative", -3, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(scenario())
			p.SetSort(domain.SortByName, true)

			got, err := p.Window(tt.offset, tt.count)
			require.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, got)
			assert.False(t, p.sorted, "a rejected window must not sort the snapshot")
			assert.Equal(t, []string{"b", "a", "c"}, names(p.list))
		})
	}
}

func TestProviderStableOwnerSort(t *testing.T) {
	records := []domain.Repository{
		{Name: "r1", Owner: "carol"},
		{Name: "r2", Owner: "alice"},
		{Name: "r3", Owner: "carol"},
		{Name: "r4", Owner: "alice"},
		{Name: "r5", Owner: "bob"},
		{Name: "r6", Owner: "alice"},
	}

	p := New(records)
	p.SetSort(domain.SortByOwner, true)

	got, err := p.Window(0, p.Size())
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r4", "r6", "r5", "r1", "r3"}, names(got))

	p.SetSort(domain.SortByOwner, false)
	got, err = p.Window(0, p.Size())
	require.NoError(t, err)
	// equal owners keep the order they had going in
	assert.Equal(t, []string{"r1", "r3", "r5", "r2", "r4", "r6"}, names(got))
}

func TestProviderSetSortIdempotent(t *testing.T) {
	once := New(scenario())
	once.SetSort(domain.SortByName, false)
	want, err := once.Window(0, 3)
	require.NoError(t, err)

	twice := New(scenario())
	twice.SetSort(domain.SortByName, false)
	twice.SetSort(domain.SortByName, false)
	got, err := twice.Window(0, 3)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestProviderConsistentReads(t *testing.T) {
	p := New(scenario())
	p.SetSort(domain.SortByName, true)

	first, err := p.Window(0, 3)
	require.NoError(t, err)
	second, err := p.Window(0, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProviderDoesNotMutateInput(t *testing.T) {
	records := scenario()
	p := New(records)
	p.SetSort(domain.SortByName, true)

	_, err := p.Window(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, names(records))
}

func TestProviderWindowIsCopy(t *testing.T) {
	p := New(scenario())
	got, err := p.Window(0, 3)
	require.NoError(t, err)

	got[0].Name = "mutated"
	again, err := p.Window(0, 3)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Name)
}

func TestProviderUnknownSortKeyFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	p := New(scenario(), WithLogger(logger))
	p.SetSort(domain.SortKey("stars"), true)

	got, err := p.Window(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, names(got), "falls back to last change, newest first")
	assert.Contains(t, buf.String(), `"sort_key":"stars"`)
	assert.Contains(t, buf.String(), "unknown sort key")

	// the requested state is kept; only the ordering falls back
	assert.Equal(t, domain.SortKey("stars"), p.Sort().Key)
}

func TestProviderResortEveryRead(t *testing.T) {
	p := New(scenario(), WithResortEveryRead())
	p.SetSort(domain.SortByName, true)

	for range 3 {
		got, err := p.Window(0, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, names(got))
	}
}

func TestProviderStateTransitions(t *testing.T) {
	p := New(scenario())
	assert.False(t, p.sorted)

	_, err := p.Window(0, 1)
	require.NoError(t, err)
	assert.True(t, p.sorted)

	p.SetSort(domain.SortByLastChange, false)
	assert.True(t, p.sorted, "re-selecting the current state keeps the order")

	p.SetSort(domain.SortByOwner, true)
	assert.False(t, p.sorted)

	assert.Equal(t, 3, p.Size())
}

func TestProviderTiesKeepPreviousOrder(t *testing.T) {
	records := []domain.Repository{
		{Name: "r1", Owner: "x", LastChange: at(1)},
		{Name: "r2", Owner: "x", LastChange: at(3)},
		{Name: "r3", Owner: "y", LastChange: at(2)},
	}

	p := New(records)
	got, err := p.Window(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r3", "r1"}, names(got))

	// the list is permuted in place, so equal owners stay in last-change order
	p.SetSort(domain.SortByOwner, true)
	got, err = p.Window(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r1", "r3"}, names(got))

	fresh := New(records, WithSort(domain.SortState{Key: domain.SortByOwner, Ascending: true}))
	got, err = fresh.Window(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3"}, names(got))
}
