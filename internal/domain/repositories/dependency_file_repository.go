package repositories

import (
	"context"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

// DependencyFileRepository reads and edits one dependency-declaration format.
// Implementations never write partially: they read the whole file, compute the
// new content in memory, and replace the file in one step.
type DependencyFileRepository interface {
	// Kind returns the dependency system this repository handles.
	Kind() entities.DependencyFileKind

	// FileName returns the base name of the file this format lives in (e.g. "Pipfile").
	FileName() string

	// Detect returns true if projectRoot uses this dependency system.
	Detect(projectRoot string) bool

	// Parse returns the canonical names of every package declared in the file.
	// A missing file reports entities.FileNotFound, bad syntax entities.ParseError.
	Parse(ctx context.Context, path string) ([]string, error)

	// Add appends req to the file. Adding an already-declared package is a no-op.
	Add(ctx context.Context, path string, req entities.PackageRequirement) error
}

// GroupedDependencyFileRepository is implemented by formats with named dependency groups.
type GroupedDependencyFileRepository interface {
	DependencyFileRepository

	// EnsureGroup creates an optional group with an empty dependency table when it is missing.
	EnsureGroup(ctx context.Context, path, group string) error
}
