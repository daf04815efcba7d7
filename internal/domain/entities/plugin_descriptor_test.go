//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

func TestPluginDescriptor_Validate(t *testing.T) {
	t.Parallel()

	t.Run("should accept a minimal descriptor", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.PluginDescriptor{PluginName: "dsd_flyio", PlatformName: "Fly.io"}

		// when
		err := descriptor.Validate()

		// then
		require.NoError(t, err)
	})

	t.Run("should require a platform name", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.PluginDescriptor{PluginName: "dsd_flyio"}

		// when
		err := descriptor.Validate()

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.ConfigurationError))
	})

	t.Run("should require a confirmation message when automation is supported", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.PluginDescriptor{
			PluginName:           "dsd_flyio",
			PlatformName:         "Fly.io",
			AutomateAllSupported: true,
		}

		// when
		err := descriptor.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "confirmation message")
	})
}

func TestPluginDescriptor_CheckCoreVersion(t *testing.T) {
	t.Parallel()

	t.Run("should pass when no minimum is declared", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.PluginDescriptor{PluginName: "dsd_flyio"}

		// when / then
		require.NoError(t, descriptor.CheckCoreVersion("v0.1.0"))
	})

	t.Run("should accept versions with or without the v prefix", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.PluginDescriptor{PluginName: "dsd_flyio", MinCoreVersion: "0.4.0"}

		// when / then
		require.NoError(t, descriptor.CheckCoreVersion("0.4.0"))
		require.NoError(t, descriptor.CheckCoreVersion("v1.0.0"))
	})

	t.Run("should reject an older core", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.PluginDescriptor{PluginName: "dsd_flyio", MinCoreVersion: "v0.5.0"}

		// when
		err := descriptor.CheckCoreVersion("v0.4.9")

		// then
		require.Error(t, err)
		assert.True(t, entities.IsKind(err, entities.ConfigurationError))
	})

	t.Run("should reject an invalid minimum", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.PluginDescriptor{PluginName: "dsd_flyio", MinCoreVersion: "latest"}

		// when
		err := descriptor.CheckCoreVersion("v0.4.0")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid min_core_version")
	})
}

func TestPluginDescriptor_MatchesPlatform(t *testing.T) {
	t.Parallel()

	t.Run("should ignore case and separators", func(t *testing.T) {
		t.Parallel()

		// given
		descriptor := entities.PluginDescriptor{PlatformName: "Fly.io"}

		// when / then
		assert.True(t, descriptor.MatchesPlatform("fly_io"))
		assert.True(t, descriptor.MatchesPlatform("FLYIO"))
		assert.True(t, descriptor.MatchesPlatform("fly-io"))
		assert.False(t, descriptor.MatchesPlatform("heroku"))
	})
}
