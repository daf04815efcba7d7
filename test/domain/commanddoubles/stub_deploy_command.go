//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/simpledeploy/internal/domain/commands"
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

// StubDeployCommand is a stub implementation of commands.Deploy.
type StubDeployCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastConfig       *entities.RunConfig
}

var _ commands.Deploy = (*StubDeployCommand)(nil)

func (s *StubDeployCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	cfg *entities.RunConfig,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastConfig = cfg
	return s.ExecuteErr
}
