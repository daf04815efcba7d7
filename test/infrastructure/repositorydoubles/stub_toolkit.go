//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

// StubToolkit is a stub implementation of repositories.Toolkit that records package and
// file requests without touching the project.
type StubToolkit struct {
	Cfg          *entities.RunConfig
	SettingsData *entities.Settings
	ProjectData  entities.Project
	Log          *logger.Entry

	Declared      entities.PackageSet
	AddedPackages []entities.PackageRequirement
	Files         map[string]string
	Dirs          []string
	Commands      [][]string
	CommandOutput string
	CommandErr    error
	ConfirmAnswer bool
}

var _ repositories.Toolkit = (*StubToolkit)(nil)

// NewStubToolkit returns a toolkit for root with default settings and a unit-testing config.
func NewStubToolkit(root string) *StubToolkit {
	return &StubToolkit{
		Cfg:           &entities.RunConfig{ProjectRoot: root, UnitTesting: true},
		SettingsData:  entities.DefaultSettings(),
		ProjectData:   entities.Project{Root: root},
		Log:           logger.NewEntry(logger.StandardLogger()),
		Declared:      entities.NewPackageSet(),
		Files:         make(map[string]string),
		ConfirmAnswer: true,
	}
}

func (s *StubToolkit) Config() *entities.RunConfig { return s.Cfg }

func (s *StubToolkit) Settings() *entities.Settings { return s.SettingsData }

func (s *StubToolkit) Project() entities.Project { return s.ProjectData }

func (s *StubToolkit) Logger() *logger.Entry { return s.Log }

func (s *StubToolkit) HasPackage(name string) bool { return s.Declared.Has(name) }

func (s *StubToolkit) Confirm(_ string) (bool, error) { return s.ConfirmAnswer, nil }

func (s *StubToolkit) AddDir(path string) error {
	s.Dirs = append(s.Dirs, path)
	return nil
}

func (s *StubToolkit) AddPackage(_ context.Context, req entities.PackageRequirement) error {
	if s.Declared.Has(req.Name) {
		return nil
	}
	s.Declared[req.CanonicalName()] = struct{}{}
	s.AddedPackages = append(s.AddedPackages, req)
	return nil
}

func (s *StubToolkit) AddPackages(ctx context.Context, reqs ...entities.PackageRequirement) error {
	for _, req := range reqs {
		if err := s.AddPackage(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func (s *StubToolkit) AddFile(path, contents string) error {
	s.Files[path] = contents
	return nil
}

func (s *StubToolkit) ModifyFile(path, contents string) error {
	s.Files[path] = contents
	return nil
}

func (s *StubToolkit) RunCommand(_ context.Context, name string, args ...string) (string, error) {
	s.Commands = append(s.Commands, append([]string{name}, args...))
	return s.CommandOutput, s.CommandErr
}
