package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"gitbrowse/internal/domain"
	"gitbrowse/internal/repository"
)

// Repository implements repository.Store using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Store = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func dsn(path string) string {
	if path == ":memory:" {
		return path
	}
	return "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS repositories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		owner TEXT,
		last_change TEXT NOT NULL,
		data JSON,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value JSON NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_repositories_owner ON repositories(owner);
	`

	_, err := r.db.Exec(schema)
	return err
}

// ListRepositories returns every repository in insertion order
func (r *Repository) ListRepositories(ctx context.Context) ([]domain.Repository, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+repositoryColumns+`
		FROM repositories
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query repositories: %w", err)
	}
	defer rows.Close()

	repos := make([]domain.Repository, 0)
	for rows.Next() {
		var row repositoryRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan repository: %w", err)
		}

		repo, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode repository %s: %w", row.Name, err)
		}
		repos = append(repos, *repo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating repositories: %w", err)
	}

	return repos, nil
}

// GetRepository retrieves a single repository by name
func (r *Repository) GetRepository(ctx context.Context, name string) (*domain.Repository, error) {
	var row repositoryRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+repositoryColumns+`
		FROM repositories
		WHERE name = ?
	`, name).Scan(row.scanArgs()...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	return row.toDomain()
}

// UpsertRepository creates or updates a repository, keeping its list position
func (r *Repository) UpsertRepository(ctx context.Context, repo *domain.Repository) error {
	if err := repo.Validate(); err != nil {
		return err
	}

	args, err := repositoryInsertArgs(repo)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO repositories (name, description, owner, last_change, data, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			owner = excluded.owner,
			last_change = excluded.last_change,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`, args...)

	if err != nil {
		return fmt.Errorf("failed to upsert repository: %w", err)
	}

	return nil
}

// DeleteRepository removes a repository by name
func (r *Repository) DeleteRepository(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM repositories WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete repository: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, name)
	}

	return nil
}

// ImportCatalog replaces all repositories with repos, in the given order
func (r *Repository) ImportCatalog(ctx context.Context, repos []domain.Repository) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM repositories`); err != nil {
		return fmt.Errorf("failed to clear repositories: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO repositories (name, description, owner, last_change, data)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare repository statement: %w", err)
	}
	defer stmt.Close()

	for i := range repos {
		repo := &repos[i]
		if err := repo.Validate(); err != nil {
			return fmt.Errorf("repository %d: %w", i, err)
		}

		args, err := repositoryInsertArgs(repo)
		if err != nil {
			return fmt.Errorf("repository %s: %w", repo.Name, err)
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert repository %s: %w", repo.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES ('last_import', ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, fmt.Sprintf(`"%s"`, time.Now().UTC().Format(time.RFC3339))); err != nil {
		return fmt.Errorf("failed to store import timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LastImport returns when the catalog was last imported, or the zero time
func (r *Repository) LastImport(ctx context.Context) (time.Time, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = 'last_import'`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read last import: %w", err)
	}

	var stamp string
	if err := unmarshalJSONField(sql.NullString{String: raw, Valid: true}, &stamp); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode last import: %w", err)
	}
	return time.Parse(time.RFC3339, stamp)
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
