package repositories

import "github.com/rios0rios0/simpledeploy/internal/domain/entities"

// TranscriptRepository records every log entry of one run to the project's log directory.
// Entries logged between Begin and Persist are buffered, so a run that aborts before
// Persist leaves no files behind.
type TranscriptRepository interface {
	Begin()
	Persist(projectRoot string, settings *entities.Settings) (string, error)
	End() error
}
