package python

import (
	"context"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

const (
	pipenvPackagesTable    = "packages"
	pipenvDevPackagesTable = "dev-packages"
)

// PipenvRepository handles Pipfile projects, where packages are keys of the [packages] table.
type PipenvRepository struct{}

// NewPipenvRepository creates the Pipfile repository.
func NewPipenvRepository() repositories.DependencyFileRepository {
	return &PipenvRepository{}
}

func (it *PipenvRepository) Kind() entities.DependencyFileKind { return entities.KeyedLock }

func (it *PipenvRepository) FileName() string { return entities.PipfileFileName }

// Detect returns true if the project root holds a Pipfile.
func (it *PipenvRepository) Detect(projectRoot string) bool {
	return fileExists(filepath.Join(projectRoot, entities.PipfileFileName))
}

// Parse returns the keys of [packages] and [dev-packages].
func (it *PipenvRepository) Parse(_ context.Context, path string) ([]string, error) {
	content, err := readDependencyFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := parseTOMLDocument(path, content)
	if err != nil {
		return nil, err
	}
	return pipenvPackages(doc), nil
}

// Add inserts `name = "constraint"` after the last entry of [packages], creating the
// table when the Pipfile has none. Groups do not apply to Pipfiles and are ignored.
func (it *PipenvRepository) Add(_ context.Context, path string, req entities.PackageRequirement) error {
	content, err := readDependencyFile(path)
	if err != nil {
		return err
	}
	doc, err := parseTOMLDocument(path, content)
	if err != nil {
		return err
	}
	if declared(pipenvPackages(doc), req) {
		logger.Infof("[pipenv] %s is already declared in %s, skipping", req.Name, path)
		return nil
	}

	line, err := renderKeyValue(req.Name, req.TOMLValue())
	if err != nil {
		return err
	}
	if err = doc.ensureTable(pipenvPackagesTable); err != nil {
		return err
	}
	if err = doc.insertIntoTable(pipenvPackagesTable, line); err != nil {
		return err
	}

	out, err := doc.render()
	if err != nil {
		return err
	}
	if err = writeFileAtomic(path, out); err != nil {
		return err
	}
	logger.Infof("[pipenv] Added %s to %s", line, path)
	return nil
}

func pipenvPackages(doc *tomlDocument) []string {
	var names []string
	for _, table := range []string{pipenvPackagesTable, pipenvDevPackagesTable} {
		for _, key := range doc.keysOf(table) {
			names = append(names, entities.CanonicalName(key))
		}
	}
	return names
}
