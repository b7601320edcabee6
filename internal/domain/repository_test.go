package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryValidate(t *testing.T) {
	require.NoError(t, (&Repository{Name: "a.git"}).Validate())
	require.ErrorIs(t, (&Repository{Name: "  "}).Validate(), ErrRepositoryNameRequired)
}

func TestRepositoryShortName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"build.git", "build.git"},
		{"team/tools/build.git", "build.git"},
		{"team/", ""},
	}

	for _, tt := range tests {
		r := Repository{Name: tt.name}
		assert.Equal(t, tt.want, r.ShortName(), "ShortName(%q)", tt.name)
	}
}
