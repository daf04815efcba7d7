package repositories

import (
	"path/filepath"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	domainRepos "github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

// DependencyFileRegistry manages all registered dependency-file formats.
// Registration order is detection order.
type DependencyFileRegistry struct {
	order []entities.DependencyFileKind
	repos map[entities.DependencyFileKind]domainRepos.DependencyFileRepository
}

// NewDependencyFileRegistry creates an empty dependency-file registry.
func NewDependencyFileRegistry() *DependencyFileRegistry {
	return &DependencyFileRegistry{
		repos: make(map[entities.DependencyFileKind]domainRepos.DependencyFileRepository),
	}
}

// Register adds a format under its kind. Re-registering a kind replaces it in place.
func (r *DependencyFileRegistry) Register(repo domainRepos.DependencyFileRepository) {
	if _, exists := r.repos[repo.Kind()]; !exists {
		r.order = append(r.order, repo.Kind())
	}
	r.repos[repo.Kind()] = repo
}

// Get returns the format with the given kind, or nil if not registered.
func (r *DependencyFileRegistry) Get(kind entities.DependencyFileKind) domainRepos.DependencyFileRepository {
	return r.repos[kind]
}

// All returns every registered format in detection order.
func (r *DependencyFileRegistry) All() []domainRepos.DependencyFileRepository {
	result := make([]domainRepos.DependencyFileRepository, 0, len(r.order))
	for _, kind := range r.order {
		result = append(result, r.repos[kind])
	}
	return result
}

// Detect returns the first format the project uses, together with its file.
func (r *DependencyFileRegistry) Detect(
	projectRoot string,
) (domainRepos.DependencyFileRepository, entities.DependencyFile, error) {
	for _, repo := range r.All() {
		if repo.Detect(projectRoot) {
			return repo, entities.DependencyFile{
				Kind: repo.Kind(),
				Path: filepath.Join(projectRoot, repo.FileName()),
			}, nil
		}
	}
	return nil, entities.DependencyFile{}, entities.NewConfigurationError(
		"no dependency file found in %s (looked for %s, %s with [tool.poetry], %s)",
		projectRoot, entities.PipfileFileName, entities.PyprojectFileName, entities.RequirementsFileName,
	)
}
