//go:build unit

package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/simpledeploy/internal/domain/commands"
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/simpledeploy/test/infrastructure/repositorydoubles"
)

func newToolkit(
	t *testing.T,
	root string,
	cfg *entities.RunConfig,
	prompter *doubles.StubPrompterRepository,
) *commands.DeployToolkit {
	t.Helper()
	registry := newDependencyFileRegistry()
	repo, file, err := registry.Detect(root)
	require.NoError(t, err)

	toolkit, err := commands.NewDeployToolkit(
		context.Background(), cfg, entities.DefaultSettings(),
		entities.Project{Root: root, SettingsPath: "blog/settings.py", DependencyFile: file},
		repo, prompter,
	)
	require.NoError(t, err)
	return toolkit
}

func TestDeployToolkitAddPackage(t *testing.T) {
	t.Parallel()

	t.Run("should skip a package that is already declared", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "requirements.txt", "Django==4.2\n")
		toolkit := newToolkit(t, root, entitybuilders.NewRunConfigBuilder(root).BuildRunConfig(), nil)

		// when
		err := toolkit.AddPackage(context.Background(), entities.PackageRequirement{Name: "django"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Django==4.2\n", readProjectFile(t, root, "requirements.txt"))
	})

	t.Run("should route Poetry packages to the deploy group", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "pyproject.toml", "[tool.poetry.dependencies]\npython = \"^3.11\"\ndjango = \"^4.2\"\n")
		toolkit := newToolkit(t, root, entitybuilders.NewRunConfigBuilder(root).BuildRunConfig(), nil)

		// when
		err := toolkit.AddPackages(context.Background(),
			entities.PackageRequirement{Name: "gunicorn"},
			entities.PackageRequirement{Name: "psycopg2-binary"},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t,
			"[tool.poetry.dependencies]\npython = \"^3.11\"\ndjango = \"^4.2\"\n\n"+
				"[tool.poetry.group.deploy]\noptional = true\n\n"+
				"[tool.poetry.group.deploy.dependencies]\ngunicorn = \"*\"\npsycopg2-binary = \"*\"\n",
			readProjectFile(t, root, "pyproject.toml"),
		)
		assert.True(t, toolkit.HasPackage("Gunicorn"))
	})

	t.Run("should not write anything in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "requirements.txt", "django\n")
		cfg := entitybuilders.NewRunConfigBuilder(root).WithDryRun().BuildRunConfig()
		toolkit := newToolkit(t, root, cfg, nil)

		// when
		err := toolkit.AddPackage(context.Background(), entities.PackageRequirement{Name: "gunicorn"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "django\n", readProjectFile(t, root, "requirements.txt"))
	})
}

func TestDeployToolkitFiles(t *testing.T) {
	t.Parallel()

	t.Run("should add a file and its parent directories", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "requirements.txt", "django\n")
		toolkit := newToolkit(t, root, entitybuilders.NewRunConfigBuilder(root).BuildRunConfig(), nil)

		// when
		err := toolkit.AddFile(".platform/routes.yaml", "routes: {}\n")

		// then
		require.NoError(t, err)
		assert.Equal(t, "routes: {}\n", readProjectFile(t, root, ".platform/routes.yaml"))
	})

	t.Run("should keep an existing file when the operator declines", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "requirements.txt", "django\n")
		writeProjectFile(t, root, "Procfile", "web: old\n")
		prompter := &doubles.StubPrompterRepository{Answer: false}
		cfg := entitybuilders.NewRunConfigBuilder(root).Interactive().BuildRunConfig()
		toolkit := newToolkit(t, root, cfg, prompter)

		// when
		err := toolkit.AddFile("Procfile", "web: new\n")

		// then
		require.Error(t, err)
		assert.Equal(t, "web: old\n", readProjectFile(t, root, "Procfile"))
		assert.Len(t, prompter.Messages, 1)
	})

	t.Run("should refuse paths outside the project root", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "requirements.txt", "django\n")
		toolkit := newToolkit(t, root, entitybuilders.NewRunConfigBuilder(root).BuildRunConfig(), nil)

		// when
		err := toolkit.AddFile("../escape.txt", "x")

		// then
		require.Error(t, err)
		_, statErr := os.Stat(filepath.Join(filepath.Dir(root), "escape.txt"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("should modify an existing file and fail for a missing one", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "requirements.txt", "django\n")
		writeProjectFile(t, root, "blog/settings.py", "DEBUG = True\n")
		toolkit := newToolkit(t, root, entitybuilders.NewRunConfigBuilder(root).BuildRunConfig(), nil)

		// when
		modifyErr := toolkit.ModifyFile("blog/settings.py", "DEBUG = False\n")
		missingErr := toolkit.ModifyFile("blog/missing.py", "x")

		// then
		require.NoError(t, modifyErr)
		require.Error(t, missingErr)
		assert.Equal(t, "DEBUG = False\n", readProjectFile(t, root, "blog/settings.py"))
	})

	t.Run("should create a directory once", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "requirements.txt", "django\n")
		toolkit := newToolkit(t, root, entitybuilders.NewRunConfigBuilder(root).BuildRunConfig(), nil)

		// when
		firstErr := toolkit.AddDir("static")
		secondErr := toolkit.AddDir("static")

		// then
		require.NoError(t, firstErr)
		require.NoError(t, secondErr)
		info, err := os.Stat(filepath.Join(root, "static"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestDeployToolkitConfirm(t *testing.T) {
	t.Parallel()

	t.Run("should answer yes without prompting in unit-testing mode", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeProjectFile(t, root, "requirements.txt", "django\n")
		prompter := &doubles.StubPrompterRepository{Answer: false}
		toolkit := newToolkit(t, root, entitybuilders.NewRunConfigBuilder(root).BuildRunConfig(), prompter)

		// when
		confirmed, err := toolkit.Confirm("Create a new app?")

		// then
		require.NoError(t, err)
		assert.True(t, confirmed)
		assert.Empty(t, prompter.Messages)
	})
}
