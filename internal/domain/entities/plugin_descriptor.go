package entities

import (
	"strings"

	"golang.org/x/mod/semver"
)

// CoreVersion is the version of this tool that plugins can declare a minimum for.
// Overridden at build time with -ldflags "-X ...entities.CoreVersion=v1.2.3".
var CoreVersion = "v0.4.0" //nolint:gochecknoglobals // set via ldflags

// PluginDescriptor is what a plugin reports about itself. It is built once per run.
type PluginDescriptor struct {
	PluginName            string `yaml:"-"`
	PlatformName          string `yaml:"platform_name"`
	AutomateAllSupported  bool   `yaml:"automate_all_supported"`
	ConfirmAutomateAllMsg string `yaml:"confirm_automate_all_msg"`

	// DeployRemote and DeployBranch tell the automate-all flow where to push.
	// An empty remote means the plugin's TriggerBuild does the publishing itself.
	DeployRemote string `yaml:"deploy_remote"`
	DeployBranch string `yaml:"deploy_branch"`

	// MinCoreVersion is an optional semver the running core must satisfy.
	MinCoreVersion string `yaml:"min_core_version"`
}

// Validate checks the required keys of the descriptor.
func (d PluginDescriptor) Validate() error {
	if strings.TrimSpace(d.PlatformName) == "" {
		return NewConfigurationError("plugin %s did not report a platform name", d.PluginName)
	}
	if d.AutomateAllSupported && strings.TrimSpace(d.ConfirmAutomateAllMsg) == "" {
		return NewConfigurationError(
			"plugin %s supports --automate-all but provides no confirmation message", d.PluginName,
		)
	}
	return d.CheckCoreVersion(CoreVersion)
}

// CheckCoreVersion fails when the plugin declares a minimum core version newer than core.
func (d PluginDescriptor) CheckCoreVersion(core string) error {
	if d.MinCoreVersion == "" {
		return nil
	}
	want := normalizeVersion(d.MinCoreVersion)
	if !semver.IsValid(want) {
		return NewConfigurationError(
			"plugin %s declares an invalid min_core_version %q", d.PluginName, d.MinCoreVersion,
		)
	}
	have := normalizeVersion(core)
	if semver.IsValid(have) && semver.Compare(have, want) < 0 {
		return NewConfigurationError(
			"plugin %s requires core %s or newer, running %s", d.PluginName, want, have,
		)
	}
	return nil
}

// MatchesPlatform reports whether name refers to this descriptor's platform,
// ignoring case and separators ("fly_io", "Fly.io" and "flyio" all match).
func (d PluginDescriptor) MatchesPlatform(name string) bool {
	squash := func(s string) string {
		return strings.ReplaceAll(CanonicalName(s), "-", "")
	}
	return squash(name) == squash(d.PlatformName)
}

// normalizeVersion ensures version has 'v' prefix for semver compatibility
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
