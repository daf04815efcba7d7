//go:build unit

package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	infraRepos "github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories"
	pyRepo "github.com/rios0rios0/simpledeploy/internal/infrastructure/repositories/python"
)

func newDependencyFileRegistry() *infraRepos.DependencyFileRegistry {
	reg := infraRepos.NewDependencyFileRegistry()
	reg.Register(pyRepo.NewPipenvRepository())
	reg.Register(pyRepo.NewPoetryRepository())
	reg.Register(pyRepo.NewRequirementsTxtRepository())
	return reg
}

func writeProjectFile(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readProjectFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}
