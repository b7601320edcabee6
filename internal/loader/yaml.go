package loader

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gitbrowse/internal/domain"

	"gopkg.in/yaml.v3"
)

// CatalogVersion is written by ExportCatalog
const CatalogVersion = "1"

// ErrDuplicateRepository is returned when a catalog lists a name twice
var ErrDuplicateRepository = errors.New("duplicate repository")

// CatalogYAML represents the catalog file structure
type CatalogYAML struct {
	Version      string           `yaml:"version"`
	Repositories []RepositoryYAML `yaml:"repositories"`
}

// RepositoryYAML represents a repository in YAML format
type RepositoryYAML struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Owner       string         `yaml:"owner,omitempty"`
	LastChange  time.Time      `yaml:"last_change"`
	Properties  map[string]any `yaml:"properties,omitempty"`
}

// LoadCatalog loads repositories from a YAML catalog file
func LoadCatalog(path string) ([]domain.Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseCatalog(data)
}

// ParseCatalog parses repositories from YAML bytes, keeping file order
func ParseCatalog(data []byte) ([]domain.Repository, error) {
	var catalog CatalogYAML
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return convertYAMLToRepositories(&catalog)
}

func convertYAMLToRepositories(c *CatalogYAML) ([]domain.Repository, error) {
	repos := make([]domain.Repository, 0, len(c.Repositories))
	seen := make(map[string]bool, len(c.Repositories))

	for i, ry := range c.Repositories {
		name := strings.TrimSpace(ry.Name)
		repo := domain.Repository{
			Name:        name,
			Description: ry.Description,
			Owner:       ry.Owner,
			LastChange:  ry.LastChange,
			Properties:  ry.Properties,
		}

		if err := repo.Validate(); err != nil {
			return nil, fmt.Errorf("repository %d: %w", i, err)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRepository, name)
		}
		seen[name] = true

		repos = append(repos, repo)
	}

	return repos, nil
}

// ExportCatalog converts repositories to catalog YAML
func ExportCatalog(repos []domain.Repository) ([]byte, error) {
	catalog := CatalogYAML{
		Version:      CatalogVersion,
		Repositories: make([]RepositoryYAML, 0, len(repos)),
	}

	for _, r := range repos {
		catalog.Repositories = append(catalog.Repositories, RepositoryYAML{
			Name:        r.Name,
			Description: r.Description,
			Owner:       r.Owner,
			LastChange:  r.LastChange.UTC(),
			Properties:  r.Properties,
		})
	}

	return yaml.Marshal(&catalog)
}
