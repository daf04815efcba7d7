//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

// StubPrompterRepository answers every question with Answer and records the questions.
type StubPrompterRepository struct {
	Answer   bool
	Err      error
	Messages []string
}

var _ repositories.PrompterRepository = (*StubPrompterRepository)(nil)

func (p *StubPrompterRepository) Confirm(message string) (bool, error) {
	p.Messages = append(p.Messages, message)
	return p.Answer, p.Err
}

// StubProjectLocatorRepository returns a fixed settings path.
type StubProjectLocatorRepository struct {
	SettingsPath string
	Err          error
}

var _ repositories.ProjectLocatorRepository = (*StubProjectLocatorRepository)(nil)

func (l *StubProjectLocatorRepository) LocateSettings(_ string, _ *entities.Settings) (string, error) {
	return l.SettingsPath, l.Err
}

// SpyTranscriptRepository records the transcript lifecycle without touching the disk.
type SpyTranscriptRepository struct {
	BeginCalls   int
	PersistCalls int
	EndCalls     int
	PersistErr   error
}

var _ repositories.TranscriptRepository = (*SpyTranscriptRepository)(nil)

func (s *SpyTranscriptRepository) Begin() { s.BeginCalls++ }

func (s *SpyTranscriptRepository) Persist(_ string, _ *entities.Settings) (string, error) {
	s.PersistCalls++
	return "dsd_logs/dsd_test.log", s.PersistErr
}

func (s *SpyTranscriptRepository) End() error {
	s.EndCalls++
	return nil
}
