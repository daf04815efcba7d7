package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

// PluginResolver picks the one installed deployment plugin.
type PluginResolver struct {
	enumerator repositories.PluginEnumeratorRepository
}

// NewPluginResolver creates a resolver over the given enumerator.
func NewPluginResolver(enumerator repositories.PluginEnumeratorRepository) *PluginResolver {
	return &PluginResolver{enumerator: enumerator}
}

// Resolve enumerates installed packages and selects the single plugin among them.
func (it *PluginResolver) Resolve(ctx context.Context, settings *entities.Settings) (string, error) {
	packages, err := it.enumerator.InstalledPackages(ctx, settings)
	if err != nil {
		return "", entities.WrapCommandError(
			entities.ConfigurationError, err, "failed to list installed plugins",
		)
	}
	name, err := selectPlugin(packages, settings.PluginPrefix)
	if err != nil {
		return "", err
	}
	logger.Debugf("Resolved plugin %s among %d installed packages", name, len(packages))
	return name, nil
}

// selectPlugin returns the only package whose canonical name starts with the canonical
// prefix, so "dsd-flyio" and "dsd_flyio" both match "dsd_". Packages that differ only in
// spelling count once.
func selectPlugin(packages []string, prefix string) (string, error) {
	canonicalPrefix := entities.CanonicalName(prefix)
	byCanonical := make(map[string]string)
	for _, pkg := range packages {
		canonical := entities.CanonicalName(pkg)
		if !strings.HasPrefix(canonical, canonicalPrefix) {
			continue
		}
		if _, seen := byCanonical[canonical]; !seen {
			byCanonical[canonical] = pkg
		}
	}

	matches := make([]string, 0, len(byCanonical))
	for _, pkg := range byCanonical {
		matches = append(matches, pkg)
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return "", entities.NewConfigurationError(
			"no deployment plugin installed: install exactly one package whose name starts with %q",
			prefix,
		)
	case 1:
		return matches[0], nil
	default:
		return "", entities.NewConfigurationError(
			"ambiguous plugin selection: found %d plugins (%s), uninstall all but one",
			len(matches), strings.Join(matches, ", "),
		)
	}
}

// pluginSummary is the two-line announcement of the resolved target.
func pluginSummary(descriptor entities.PluginDescriptor) string {
	return fmt.Sprintf("Deployment target: %s\n  Using plugin: %s", descriptor.PlatformName, descriptor.PluginName)
}
