package python

import (
	"context"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

// RequirementsTxtRepository handles flat requirements.txt lists.
type RequirementsTxtRepository struct{}

// NewRequirementsTxtRepository creates the requirements.txt repository.
func NewRequirementsTxtRepository() repositories.DependencyFileRepository {
	return &RequirementsTxtRepository{}
}

func (it *RequirementsTxtRepository) Kind() entities.DependencyFileKind { return entities.FlatList }

func (it *RequirementsTxtRepository) FileName() string { return entities.RequirementsFileName }

// Detect returns true if the project root holds a requirements.txt.
func (it *RequirementsTxtRepository) Detect(projectRoot string) bool {
	return fileExists(filepath.Join(projectRoot, entities.RequirementsFileName))
}

// Parse returns the canonical name of every requirement line, in file order.
func (it *RequirementsTxtRepository) Parse(_ context.Context, path string) ([]string, error) {
	content, err := readDependencyFile(path)
	if err != nil {
		return nil, err
	}
	return parseRequirementsContent(content), nil
}

// Add appends req as the new final line. The previous last line gets a newline only
// when it lacked one; nothing else in the file changes.
func (it *RequirementsTxtRepository) Add(ctx context.Context, path string, req entities.PackageRequirement) error {
	content, err := readDependencyFile(path)
	if err != nil {
		return err
	}
	if declared(parseRequirementsContent(content), req) {
		logger.Infof("[req_txt] %s is already declared in %s, skipping", req.Name, path)
		return nil
	}

	updated := ensureTrailingNewline(content) + req.Line() + "\n"
	if err = writeFileAtomic(path, updated); err != nil {
		return err
	}
	logger.Infof("[req_txt] Added %s to %s", req.Line(), path)
	return nil
}

func parseRequirementsContent(content string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		name, ok := entities.ParseRequirementLine(line)
		if !ok {
			continue
		}
		canonical := entities.CanonicalName(name)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		names = append(names, canonical)
	}
	return names
}
