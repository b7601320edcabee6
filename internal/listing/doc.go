// Package listing sorts and pages an in-memory snapshot of repositories.
//
// A Provider owns one snapshot plus the active SortState and answers two
// questions for the view layer: how many records there are (Size) and which
// records fall in a zero-indexed window (Window). Sorting is stable, so
// repositories with equal values in the sort column keep their snapshot
// order.
//
// Providers are cheap and single-use: build one per request from a freshly
// fetched snapshot. They are not safe for concurrent use.
//
// Comparators live in a registry keyed by domain.SortKey. Descending order
// is the negation of the ascending comparator, never a second comparator.
package listing
