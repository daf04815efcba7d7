package entities

import "path/filepath"

// DependencyFileKind names one of the supported dependency-declaration systems.
type DependencyFileKind string

const (
	// FlatList is a plain requirements.txt, one requirement per line.
	FlatList DependencyFileKind = "req_txt"
	// GroupedTOML is a Poetry pyproject.toml with optional dependency groups.
	GroupedTOML DependencyFileKind = "poetry"
	// KeyedLock is a Pipfile with [packages] and [dev-packages] tables.
	KeyedLock DependencyFileKind = "pipenv"
)

const (
	RequirementsFileName = "requirements.txt"
	PyprojectFileName    = "pyproject.toml"
	PipfileFileName      = "Pipfile"

	// DeployGroup is the Poetry group that receives deployment-only packages.
	DeployGroup = "deploy"
)

// DependencyFile binds a dependency system to the file on disk that is authoritative for it.
type DependencyFile struct {
	Kind DependencyFileKind
	Path string
}

// Name returns the file's base name, e.g. "Pipfile".
func (f DependencyFile) Name() string {
	return filepath.Base(f.Path)
}

// String describes the file for log output.
func (f DependencyFile) String() string {
	return string(f.Kind) + " (" + f.Name() + ")"
}
