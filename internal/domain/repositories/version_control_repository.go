package repositories

import (
	"context"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

// VersionControlRepository is the view of the project's git repository the core needs.
type VersionControlRepository interface {
	// Status returns every pending change, ordered by path.
	Status(ctx context.Context) (entities.RepoStatusReport, error)

	// HeadContent returns the committed content of path, or "" when HEAD lacks it.
	HeadContent(ctx context.Context, path string) (string, error)

	// WorktreeContent returns the current on-disk content of path.
	WorktreeContent(ctx context.Context, path string) (string, error)

	// CurrentBranch returns the short name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)

	// CommitAll stages every change and commits it with message.
	CommitAll(ctx context.Context, message string) (string, error)

	// Push pushes branch to remote.
	Push(ctx context.Context, remote, branch string) error
}

// VersionControlFactory opens the repository rooted at projectRoot.
type VersionControlFactory func(projectRoot string) (VersionControlRepository, error)
