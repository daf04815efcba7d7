package python

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

const (
	poetryTable          = "tool.poetry"
	poetryMainDepsTable  = "tool.poetry.dependencies"
	poetryPythonKey      = "python"
	poetryGroupTableFmt  = "tool.poetry.group.%s"
	poetryGroupDepsTable = "tool.poetry.group.%s.dependencies"
)

// PoetryRepository handles pyproject.toml files managed by Poetry.
type PoetryRepository struct{}

// NewPoetryRepository creates the Poetry repository.
func NewPoetryRepository() repositories.GroupedDependencyFileRepository {
	return &PoetryRepository{}
}

func (it *PoetryRepository) Kind() entities.DependencyFileKind { return entities.GroupedTOML }

func (it *PoetryRepository) FileName() string { return entities.PyprojectFileName }

// Detect returns true if pyproject.toml exists and carries a [tool.poetry...] table.
// A pyproject.toml without Poetry tables belongs to another build backend.
func (it *PoetryRepository) Detect(projectRoot string) bool {
	path := filepath.Join(projectRoot, entities.PyprojectFileName)
	if !fileExists(path) {
		return false
	}
	content, err := readDependencyFile(path)
	if err != nil {
		return false
	}
	doc := &tomlDocument{path: path}
	doc.lines = splitLines(content)
	return doc.hasTableWithPrefix(poetryTable)
}

// Parse returns every declared package: the main table, every group, the legacy
// dev-dependencies table and the PEP 621 [project] lists. "python" is not a package.
func (it *PoetryRepository) Parse(_ context.Context, path string) ([]string, error) {
	content, err := readDependencyFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := parseTOMLDocument(path, content)
	if err != nil {
		return nil, err
	}
	return poetryPackages(doc), nil
}

// EnsureGroup appends an optional group with an empty dependency table when missing.
func (it *PoetryRepository) EnsureGroup(_ context.Context, path, group string) error {
	content, err := readDependencyFile(path)
	if err != nil {
		return err
	}
	doc, err := parseTOMLDocument(path, content)
	if err != nil {
		return err
	}
	changed, err := ensurePoetryGroup(doc, group)
	if err != nil || !changed {
		return err
	}
	out, err := doc.render()
	if err != nil {
		return err
	}
	if err = writeFileAtomic(path, out); err != nil {
		return err
	}
	logger.Infof("[poetry] Created dependency group %q in %s", group, path)
	return nil
}

// Add inserts `name = "constraint"` into the requirement's group, or into the main
// dependency table when the requirement has no group.
func (it *PoetryRepository) Add(_ context.Context, path string, req entities.PackageRequirement) error {
	content, err := readDependencyFile(path)
	if err != nil {
		return err
	}
	doc, err := parseTOMLDocument(path, content)
	if err != nil {
		return err
	}
	if declared(poetryPackages(doc), req) {
		logger.Infof("[poetry] %s is already declared in %s, skipping", req.Name, path)
		return nil
	}

	target := poetryMainDepsTable
	if req.Group != "" {
		if _, err = ensurePoetryGroup(doc, req.Group); err != nil {
			return err
		}
		target = groupDepsTable(req.Group)
	} else if err = doc.ensureTable(target); err != nil {
		return err
	}

	line, err := renderKeyValue(req.Name, req.TOMLValue())
	if err != nil {
		return err
	}
	if err = doc.insertIntoTable(target, line); err != nil {
		return err
	}

	out, err := doc.render()
	if err != nil {
		return err
	}
	if err = writeFileAtomic(path, out); err != nil {
		return err
	}
	logger.Infof("[poetry] Added %s to [%s] in %s", line, target, path)
	return nil
}

// ensurePoetryGroup edits doc in memory and reports whether anything was added.
func ensurePoetryGroup(doc *tomlDocument, group string) (bool, error) {
	groupTable := groupTable(group)
	depsTable := groupDepsTable(group)

	_, hasGroup := doc.findTable(groupTable)
	if !hasGroup && !doc.Has("tool", "poetry", "group", group) {
		doc.appendBlock(
			"["+groupTable+"]",
			"optional = true",
			"",
			"["+depsTable+"]",
		)
		return true, nil
	}

	if _, hasDeps := doc.findTable(depsTable); hasDeps {
		return false, nil
	}
	if err := doc.ensureTable(depsTable); err != nil {
		return false, err
	}
	return true, nil
}

func poetryPackages(doc *tomlDocument) []string {
	var names []string
	add := func(name string) {
		if name == poetryPythonKey {
			return
		}
		names = append(names, entities.CanonicalName(name))
	}

	for _, key := range doc.keysOf("tool", "poetry", "dependencies") {
		add(key)
	}
	for _, key := range doc.keysOf("tool", "poetry", "dev-dependencies") {
		add(key)
	}
	for _, key := range doc.keysOf("tool", "poetry", "group", "*", "dependencies") {
		add(key)
	}

	project := doc.Table("project")
	for _, line := range stringList(project["dependencies"]) {
		if name, ok := entities.ParseRequirementLine(line); ok {
			add(name)
		}
	}
	if optional, ok := project["optional-dependencies"].(map[string]any); ok {
		for _, extra := range optional {
			for _, line := range stringList(extra) {
				if name, found := entities.ParseRequirementLine(line); found {
					add(name)
				}
			}
		}
	}
	return names
}

func stringList(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, isString := item.(string); isString {
			result = append(result, s)
		}
	}
	return result
}

func groupTable(group string) string {
	return fmt.Sprintf(poetryGroupTableFmt, group)
}

func groupDepsTable(group string) string {
	return fmt.Sprintf(poetryGroupDepsTable, group)
}
