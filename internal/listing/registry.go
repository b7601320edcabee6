package listing

import (
	"strings"

	"gitbrowse/internal/domain"
)

// Comparator orders two repositories ascending, returning -1, 0 or +1
type Comparator func(a, b domain.Repository) int

// comparators maps each sortable column to its ascending order.
// Equal column values compare as 0; there is no secondary key.
var comparators = map[domain.SortKey]Comparator{
	domain.SortByName: func(a, b domain.Repository) int {
		return strings.Compare(a.Name, b.Name)
	},
	domain.SortByDescription: func(a, b domain.Repository) int {
		return strings.Compare(a.Description, b.Description)
	},
	domain.SortByOwner: func(a, b domain.Repository) int {
		return strings.Compare(a.Owner, b.Owner)
	},
	domain.SortByLastChange: func(a, b domain.Repository) int {
		return a.LastChange.Compare(b.LastChange)
	},
}

// Lookup returns the ascending comparator registered for key
func Lookup(key domain.SortKey) (Comparator, bool) {
	cmp, ok := comparators[key]
	return cmp, ok
}

// Compare orders a and b ascending by key. Unregistered keys compare by
// last change, matching the default listing column.
func Compare(key domain.SortKey, a, b domain.Repository) int {
	cmp, ok := comparators[key]
	if !ok {
		cmp = comparators[domain.SortByLastChange]
	}
	return cmp(a, b)
}

// Directed returns cmp for ascending order and its negation otherwise
func Directed(cmp Comparator, ascending bool) Comparator {
	if ascending {
		return cmp
	}
	return func(a, b domain.Repository) int {
		return -cmp(a, b)
	}
}
