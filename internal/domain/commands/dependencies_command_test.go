//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/simpledeploy/internal/domain/commands"
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

func TestDependenciesCommand(t *testing.T) {
	t.Parallel()

	t.Run("should prefer the Pipfile over requirements.txt", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "requirements.txt", "flask\n")
		writeProjectFile(t, root, "Pipfile", "[packages]\ndjango = \"*\"\n")
		command := commands.NewDependenciesCommand(newDependencyFileRegistry())

		// when
		listing, err := command.List(context.Background(), root)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.KeyedLock, listing.File.Kind)
		assert.Equal(t, []string{"django"}, listing.Packages)
	})

	t.Run("should fail with ConfigurationError when no dependency file exists", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		command := commands.NewDependenciesCommand(newDependencyFileRegistry())

		// when
		_, err := command.List(context.Background(), root)

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.ConfigurationError))
	})

	t.Run("should add a package once across repeated calls", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "requirements.txt", "django\n")
		command := commands.NewDependenciesCommand(newDependencyFileRegistry())
		req := entities.PackageRequirement{Name: "whitenoise", Constraint: ">=6"}

		// when
		firstErr := command.Add(context.Background(), root, entities.DefaultSettings(), req, false)
		secondErr := command.Add(context.Background(), root, entities.DefaultSettings(), req, false)

		// then
		require.NoError(t, firstErr)
		require.NoError(t, secondErr)
		assert.Equal(t, "django\nwhitenoise>=6\n", readProjectFile(t, root, "requirements.txt"))
	})

	t.Run("should put a second package into an existing group without duplicating it", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "pyproject.toml", "[tool.poetry.dependencies]\ndjango = \"*\"\n")
		command := commands.NewDependenciesCommand(newDependencyFileRegistry())

		// when
		firstErr := command.Add(context.Background(), root, entities.DefaultSettings(),
			entities.PackageRequirement{Name: "gunicorn", Group: "prod"}, false)
		secondErr := command.Add(context.Background(), root, entities.DefaultSettings(),
			entities.PackageRequirement{Name: "whitenoise", Group: "prod"}, false)

		// then
		require.NoError(t, firstErr)
		require.NoError(t, secondErr)
		content := readProjectFile(t, root, "pyproject.toml")
		assert.Equal(t, 1, strings.Count(content, "[tool.poetry.group.prod.dependencies]"))
		assert.Contains(t, content, "[tool.poetry.group.prod.dependencies]\ngunicorn = \"*\"\nwhitenoise = \"*\"\n")
		listing, err := command.List(context.Background(), root)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"django", "gunicorn", "whitenoise"}, listing.Packages)
	})
}
