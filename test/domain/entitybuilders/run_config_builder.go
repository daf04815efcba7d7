//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RunConfigBuilder helps create run configurations for tests. Defaults to a
// non-interactive, unit-testing run.
type RunConfigBuilder struct {
	*testkit.BaseBuilder
	cfg entities.RunConfig
}

// NewRunConfigBuilder creates a builder for a unit-testing run rooted at projectRoot.
func NewRunConfigBuilder(projectRoot string) *RunConfigBuilder {
	return &RunConfigBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		cfg:         defaultRunConfig(projectRoot),
	}
}

func defaultRunConfig(projectRoot string) entities.RunConfig {
	return entities.RunConfig{ProjectRoot: projectRoot, UnitTesting: true}
}

// WithAutomateAll requests the fully automated flow.
func (b *RunConfigBuilder) WithAutomateAll() *RunConfigBuilder {
	b.cfg.AutomateAll = true
	return b
}

// WithPlatform sets the platform override.
func (b *RunConfigBuilder) WithPlatform(platform string) *RunConfigBuilder {
	b.cfg.Platform = platform
	return b
}

// WithIgnoreUncleanGit skips the cleanliness gate.
func (b *RunConfigBuilder) WithIgnoreUncleanGit() *RunConfigBuilder {
	b.cfg.IgnoreUncleanGit = true
	return b
}

// WithDryRun turns on dry-run mode.
func (b *RunConfigBuilder) WithDryRun() *RunConfigBuilder {
	b.cfg.DryRun = true
	return b
}

// Interactive turns off the testing flags so the operator is prompted.
func (b *RunConfigBuilder) Interactive() *RunConfigBuilder {
	b.cfg.UnitTesting = false
	b.cfg.E2ETesting = false
	b.cfg.NoLogging = true
	return b
}

// WithLogging keeps the unit-testing flags off and logging on.
func (b *RunConfigBuilder) WithLogging() *RunConfigBuilder {
	b.cfg.UnitTesting = false
	b.cfg.E2ETesting = true
	b.cfg.NoLogging = false
	return b
}

// Build creates the run configuration (satisfies testkit.Builder interface).
func (b *RunConfigBuilder) Build() interface{} {
	return b.BuildRunConfig()
}

// BuildRunConfig returns a fresh pointer to the configured run.
func (b *RunConfigBuilder) BuildRunConfig() *entities.RunConfig {
	cfg := b.cfg
	return &cfg
}

// Reset clears the builder state, keeping the project root.
func (b *RunConfigBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.cfg = defaultRunConfig(b.cfg.ProjectRoot)
	return b
}

// Clone creates a copy of the RunConfigBuilder.
func (b *RunConfigBuilder) Clone() testkit.Builder {
	return &RunConfigBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		cfg:         b.cfg,
	}
}
