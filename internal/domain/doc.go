// Package domain defines the core types of the gitbrowse repository listing.
//
// Repository is the record shown on the repositories page: name,
// description, owner and the time of the last change.
//
// # Sorting
//
// SortKey is the closed set of sortable columns and SortState pairs a key
// with a direction. The default state lists the most recently changed
// repositories first.
//
// This package has no database or transport dependencies.
package domain
