package domain

import (
	"fmt"
	"slices"
	"strings"
)

// SortKey identifies a sortable repository column
type SortKey string

const (
	SortByName        SortKey = "name"
	SortByDescription SortKey = "description"
	SortByOwner       SortKey = "owner"
	SortByLastChange  SortKey = "lastChange"
)

// sortKeyAliases accepts the column identifiers used by older listing links
var sortKeyAliases = map[string]SortKey{
	"repository":  SortByName,
	"date":        SortByLastChange,
	"lastchange":  SortByLastChange,
	"last_change": SortByLastChange,
}

// SortKeys returns every sortable key in column order
func SortKeys() []SortKey {
	return []SortKey{SortByName, SortByDescription, SortByOwner, SortByLastChange}
}

// IsValid reports whether k is one of the known sort keys
func (k SortKey) IsValid() bool {
	return slices.Contains(SortKeys(), k)
}

func (k SortKey) String() string {
	return string(k)
}

// ParseSortKey maps a column identifier to its SortKey
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if k := SortKey(s); k.IsValid() {
		return k, nil
	}
	if k, ok := sortKeyAliases[strings.ToLower(s)]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// SortState is the active sort column and direction of a listing
type SortState struct {
	Key       SortKey `json:"key" yaml:"key"`
	Ascending bool    `json:"ascending" yaml:"ascending"`
}

// DefaultSortState lists the most recently changed repositories first
func DefaultSortState() SortState {
	return SortState{Key: SortByLastChange, Ascending: false}
}

// Order returns "asc" or "desc"
func (s SortState) Order() string {
	if s.Ascending {
		return "asc"
	}
	return "desc"
}

func (s SortState) String() string {
	return fmt.Sprintf("%s:%s", s.Key, s.Order())
}
