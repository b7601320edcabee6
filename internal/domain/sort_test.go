package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input string
		want  SortKey
	}{
		{"name", SortByName},
		{"description", SortByDescription},
		{"owner", SortByOwner},
		{"lastChange", SortByLastChange},
		{"repository", SortByName},
		{"date", SortByLastChange},
		{"last_change", SortByLastChange},
		{" owner ", SortByOwner},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortKey(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSortKey_Unknown(t *testing.T) {
	for _, input := range []string{"", "size", "Name"} {
		_, err := ParseSortKey(input)
		require.ErrorIs(t, err, ErrUnknownSortKey, "input %q", input)
	}
}

func TestSortKeyIsValid(t *testing.T) {
	for _, k := range SortKeys() {
		assert.True(t, k.IsValid(), "%s should be valid", k)
	}
	assert.False(t, SortKey("stars").IsValid())
	assert.False(t, SortKey("").IsValid())
	assert.False(t, SortKey("date").IsValid(), "aliases are not keys")
	assert.False(t, SortKey("Name").IsValid(), "keys are case-sensitive")
}

func TestDefaultSortState(t *testing.T) {
	s := DefaultSortState()
	assert.Equal(t, SortByLastChange, s.Key)
	assert.False(t, s.Ascending)
	assert.Equal(t, "lastChange:desc", s.String())
	assert.Equal(t, "asc", SortState{Key: SortByName, Ascending: true}.Order())
}
