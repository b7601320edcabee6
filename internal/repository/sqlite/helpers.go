package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gitbrowse/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// Time Helpers
// ============================================================================

// timeLayout keeps sub-second precision and sorts lexically in UTC
const timeLayout = time.RFC3339Nano

// formatTime renders t in UTC for storage
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored timestamp back
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target interface{}) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), target)
}

// marshalToNull marshals interface to nullable JSON string
// Returns empty NullString for nil or empty maps
func marshalToNull(v interface{}) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}

	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		return sql.NullString{}, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// ============================================================================
// Repository Row Scanner
// ============================================================================
//
// CRITICAL: Column order must match between repositoryColumns and scanArgs().
// Append new columns to the end of both.

// repositoryRow holds all columns from a repository query for scanning
type repositoryRow struct {
	Name        string
	Description sql.NullString
	Owner       sql.NullString
	LastChange  string
	DataJSON    sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match repositoryColumns order exactly
func (r *repositoryRow) scanArgs() []interface{} {
	return []interface{}{
		&r.Name,        // 1
		&r.Description, // 2
		&r.Owner,       // 3
		&r.LastChange,  // 4
		&r.DataJSON,    // 5
	}
}

// toDomain converts the scanned row to a domain.Repository
func (r *repositoryRow) toDomain() (*domain.Repository, error) {
	lastChange, err := parseTime(r.LastChange)
	if err != nil {
		return nil, err
	}

	repo := &domain.Repository{
		Name:        r.Name,
		Description: nullToString(r.Description),
		Owner:       nullToString(r.Owner),
		LastChange:  lastChange,
	}

	if err := unmarshalJSONField(r.DataJSON, &repo.Properties); err != nil {
		return nil, fmt.Errorf("unmarshal properties: %w", err)
	}

	return repo, nil
}

// repositoryColumns returns the SELECT column list for repository queries
const repositoryColumns = `name, description, owner, last_change, data`

// repositoryInsertArgs prepares arguments for repository INSERT/UPSERT
// Returns: name, description, owner, last_change, data
func repositoryInsertArgs(repo *domain.Repository) ([]interface{}, error) {
	dataJSON, err := marshalToNull(repo.Properties)
	if err != nil {
		return nil, fmt.Errorf("marshal properties: %w", err)
	}

	return []interface{}{
		repo.Name,
		stringToNull(repo.Description),
		stringToNull(repo.Owner),
		formatTime(repo.LastChange),
		dataJSON,
	}, nil
}
