//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

func TestAllowList(t *testing.T) {
	t.Parallel()

	t.Run("should treat everything under the log directory as tool output", func(t *testing.T) {
		t.Parallel()

		// given
		allow := entities.NewAllowList(entities.DefaultSettings(), "blog/settings.py")

		// when / then
		assert.True(t, allow.InLogDir("dsd_logs"))
		assert.True(t, allow.InLogDir("dsd_logs/"))
		assert.True(t, allow.InLogDir("dsd_logs/dsd_2024-01-01-120000.log"))
		assert.True(t, allow.InLogDir("./dsd_logs/run.log"))
		assert.False(t, allow.InLogDir("dsd_logs_old/run.log"))
		assert.False(t, allow.InLogDir("blog/dsd_logs/run.log"))
	})

	t.Run("should only content-check the ignore file and the settings module", func(t *testing.T) {
		t.Parallel()

		// given
		allow := entities.NewAllowList(entities.DefaultSettings(), "./blog/settings.py")

		// when
		ignoreMatcher, ignoreOK := allow.LineMatcher(".gitignore")
		settingsMatcher, settingsOK := allow.LineMatcher("blog/settings.py")
		_, otherOK := allow.LineMatcher("blog/urls.py")

		// then
		assert.True(t, ignoreOK)
		assert.True(t, settingsOK)
		assert.False(t, otherOK)
		assert.True(t, ignoreMatcher("dsd_logs/"))
		assert.True(t, ignoreMatcher("  dsd_logs/  "))
		assert.False(t, ignoreMatcher("dsd_logs"))
		assert.True(t, settingsMatcher(`    "django_simple_deploy",`))
		assert.True(t, settingsMatcher(`'django_simple_deploy',`))
		assert.False(t, settingsMatcher(`"django_simple_deploy"`))
		assert.False(t, settingsMatcher(`"debug_toolbar",`))
	})

	t.Run("should skip the settings check when the module is unknown", func(t *testing.T) {
		t.Parallel()

		// given
		allow := entities.NewAllowList(entities.DefaultSettings(), "")

		// when
		_, ok := allow.LineMatcher(".")

		// then
		assert.False(t, ok)
	})
}

func TestRepoStatusReport(t *testing.T) {
	t.Parallel()

	t.Run("should report clean only when there are no entries", func(t *testing.T) {
		t.Parallel()

		// given
		clean := entities.RepoStatusReport{}
		dirty := entities.RepoStatusReport{Entries: []entities.StatusEntry{
			{Path: "blog/settings.py", Kind: entities.Modified},
		}}

		// when / then
		assert.True(t, clean.IsClean())
		assert.False(t, dirty.IsClean())
		assert.Equal(t, "M blog/settings.py", dirty.Entries[0].String())
	})
}
