//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/simpledeploy/internal/domain/commands"
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

// StubDependenciesCommand is a stub implementation of commands.Dependencies.
type StubDependenciesCommand struct {
	// --- List ---
	Listing   commands.DependencyListing
	ListErr   error
	ListRoots []string

	// --- Add ---
	AddErr        error
	AddRoots      []string
	AddedSettings []*entities.Settings
	AddedReqs     []entities.PackageRequirement
	AddedDryRun   []bool
}

var _ commands.Dependencies = (*StubDependenciesCommand)(nil)

func (s *StubDependenciesCommand) List(_ context.Context, projectRoot string) (commands.DependencyListing, error) {
	s.ListRoots = append(s.ListRoots, projectRoot)
	return s.Listing, s.ListErr
}

func (s *StubDependenciesCommand) Add(
	_ context.Context,
	projectRoot string,
	settings *entities.Settings,
	req entities.PackageRequirement,
	dryRun bool,
) error {
	s.AddRoots = append(s.AddRoots, projectRoot)
	s.AddedSettings = append(s.AddedSettings, settings)
	s.AddedReqs = append(s.AddedReqs, req)
	s.AddedDryRun = append(s.AddedDryRun, dryRun)
	return s.AddErr
}
