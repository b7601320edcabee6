package domain

import "errors"

var (
	// ErrRepositoryNameRequired is returned when a repository has no name
	ErrRepositoryNameRequired = errors.New("repository name is required")
	// ErrUnknownSortKey is returned when a sort identifier matches no SortKey
	ErrUnknownSortKey = errors.New("unknown sort key")
)
