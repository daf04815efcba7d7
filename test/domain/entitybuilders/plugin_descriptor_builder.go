//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PluginDescriptorBuilder helps create test plugin descriptors with a fluent interface.
type PluginDescriptorBuilder struct {
	*testkit.BaseBuilder
	pluginName     string
	platformName   string
	automateAll    bool
	confirmMsg     string
	deployRemote   string
	deployBranch   string
	minCoreVersion string
}

// NewPluginDescriptorBuilder creates a builder for a plugin without automate-all support.
func NewPluginDescriptorBuilder() *PluginDescriptorBuilder {
	return &PluginDescriptorBuilder{
		BaseBuilder:  testkit.NewBaseBuilder(),
		pluginName:   "dsd_flyio",
		platformName: "Fly.io",
	}
}

// WithPluginName sets the plugin package name.
func (b *PluginDescriptorBuilder) WithPluginName(name string) *PluginDescriptorBuilder {
	b.pluginName = name
	return b
}

// WithPlatformName sets the platform display name.
func (b *PluginDescriptorBuilder) WithPlatformName(name string) *PluginDescriptorBuilder {
	b.platformName = name
	return b
}

// WithAutomateAll marks the plugin as supporting automate-all, with its confirmation message.
func (b *PluginDescriptorBuilder) WithAutomateAll(confirmMsg string) *PluginDescriptorBuilder {
	b.automateAll = true
	b.confirmMsg = confirmMsg
	return b
}

// WithDeployTarget sets the remote and branch the automate-all flow pushes to.
func (b *PluginDescriptorBuilder) WithDeployTarget(remote, branch string) *PluginDescriptorBuilder {
	b.deployRemote = remote
	b.deployBranch = branch
	return b
}

// WithMinCoreVersion sets the minimum core version the plugin requires.
func (b *PluginDescriptorBuilder) WithMinCoreVersion(version string) *PluginDescriptorBuilder {
	b.minCoreVersion = version
	return b
}

// Build creates the descriptor (satisfies testkit.Builder interface).
func (b *PluginDescriptorBuilder) Build() interface{} {
	return b.BuildDescriptor()
}

// BuildDescriptor creates the descriptor with a concrete return type.
func (b *PluginDescriptorBuilder) BuildDescriptor() entities.PluginDescriptor {
	return entities.PluginDescriptor{
		PluginName:            b.pluginName,
		PlatformName:          b.platformName,
		AutomateAllSupported:  b.automateAll,
		ConfirmAutomateAllMsg: b.confirmMsg,
		DeployRemote:          b.deployRemote,
		DeployBranch:          b.deployBranch,
		MinCoreVersion:        b.minCoreVersion,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PluginDescriptorBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.pluginName = "dsd_flyio"
	b.platformName = "Fly.io"
	b.automateAll = false
	b.confirmMsg = ""
	b.deployRemote = ""
	b.deployBranch = ""
	b.minCoreVersion = ""
	return b
}

// Clone creates a deep copy of the PluginDescriptorBuilder.
func (b *PluginDescriptorBuilder) Clone() testkit.Builder {
	return &PluginDescriptorBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		pluginName:     b.pluginName,
		platformName:   b.platformName,
		automateAll:    b.automateAll,
		confirmMsg:     b.confirmMsg,
		deployRemote:   b.deployRemote,
		deployBranch:   b.deployBranch,
		minCoreVersion: b.minCoreVersion,
	}
}
