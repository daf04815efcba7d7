//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/simpledeploy/internal/domain/commands"
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	doubles "github.com/rios0rios0/simpledeploy/test/infrastructure/repositorydoubles"
)

func TestSelectPlugin(t *testing.T) {
	t.Parallel()

	t.Run("should select the only official plugin", func(t *testing.T) {
		t.Parallel()

		// given
		packages := []string{"django", "django-bootstrap5", "dsd_flyio"}

		// when
		name, err := commands.SelectPlugin(packages, "dsd_")

		// then
		require.NoError(t, err)
		assert.Equal(t, "dsd_flyio", name)
	})

	t.Run("should select a third-party plugin spelled with hyphens", func(t *testing.T) {
		t.Parallel()

		// given
		packages := []string{"dsd-flyio-thirdparty", "django"}

		// when
		name, err := commands.SelectPlugin(packages, "dsd_")

		// then
		require.NoError(t, err)
		assert.Equal(t, "dsd-flyio-thirdparty", name)
	})

	t.Run("should select plugin_flyio among unrelated packages", func(t *testing.T) {
		t.Parallel()

		// given
		packages := []string{"framework", "some_other_lib", "plugin_flyio"}

		// when
		name, err := commands.SelectPlugin(packages, "plugin_")

		// then
		require.NoError(t, err)
		assert.Equal(t, "plugin_flyio", name)
	})

	t.Run("should fail with ConfigurationError when no plugin is installed", func(t *testing.T) {
		t.Parallel()

		// given
		packages := []string{"django", "django-bootstrap5"}

		// when
		_, err := commands.SelectPlugin(packages, "dsd_")

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.ConfigurationError))
		assert.Contains(t, err.Error(), "no deployment plugin installed")
	})

	t.Run("should fail naming every candidate when several plugins are installed", func(t *testing.T) {
		t.Parallel()

		// given
		packages := []string{"dsd_newplatform", "dsd_newplatform_high_scale", "dsd_flyio", "django"}

		// when
		_, err := commands.SelectPlugin(packages, "dsd_")

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.ConfigurationError))
		assert.Contains(t, err.Error(), "ambiguous plugin selection")
		assert.Contains(t, err.Error(), "dsd_flyio, dsd_newplatform, dsd_newplatform_high_scale")
	})

	t.Run("should count two spellings of one plugin once", func(t *testing.T) {
		t.Parallel()

		// given
		packages := []string{"dsd-flyio", "dsd_flyio"}

		// when
		name, err := commands.SelectPlugin(packages, "dsd_")

		// then
		require.NoError(t, err)
		assert.Equal(t, "dsd-flyio", name)
	})
}

func TestPluginResolverResolve(t *testing.T) {
	t.Parallel()

	t.Run("should resolve from the enumerated packages", func(t *testing.T) {
		t.Parallel()

		// given
		resolver := commands.NewPluginResolver(&doubles.StubPluginEnumeratorRepository{
			Packages: []string{"requests", "dsd_platformsh"},
		})

		// when
		name, err := resolver.Resolve(context.Background(), entities.DefaultSettings())

		// then
		require.NoError(t, err)
		assert.Equal(t, "dsd_platformsh", name)
	})

	t.Run("should wrap enumeration failures as ConfigurationError", func(t *testing.T) {
		t.Parallel()

		// given
		resolver := commands.NewPluginResolver(&doubles.StubPluginEnumeratorRepository{
			Err: errors.New("PATH unreadable"),
		})

		// when
		_, err := resolver.Resolve(context.Background(), entities.DefaultSettings())

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.ConfigurationError))
	})
}
