//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

// StubVersionControlRepository implements repositories.VersionControlRepository in memory.
type StubVersionControlRepository struct {
	// --- Status ---
	Report    entities.RepoStatusReport
	StatusErr error

	// --- HeadContent / WorktreeContent ---
	Head     map[string]string // path -> committed content
	Worktree map[string]string // path -> on-disk content

	// --- CurrentBranch ---
	Branch string

	// --- CommitAll ---
	CommitErr      error
	CommitMessages []string

	// --- Push ---
	PushErr error
	// spy: remote/branch pairs pushed
	Pushes []string

	// spy: the order calls were made in
	Calls []string
}

var _ repositories.VersionControlRepository = (*StubVersionControlRepository)(nil)

func (v *StubVersionControlRepository) Status(_ context.Context) (entities.RepoStatusReport, error) {
	v.Calls = append(v.Calls, "status")
	return v.Report, v.StatusErr
}

func (v *StubVersionControlRepository) HeadContent(_ context.Context, path string) (string, error) {
	return v.Head[path], nil
}

func (v *StubVersionControlRepository) WorktreeContent(_ context.Context, path string) (string, error) {
	return v.Worktree[path], nil
}

func (v *StubVersionControlRepository) CurrentBranch(_ context.Context) (string, error) {
	return v.Branch, nil
}

func (v *StubVersionControlRepository) CommitAll(_ context.Context, message string) (string, error) {
	v.Calls = append(v.Calls, "commit")
	v.CommitMessages = append(v.CommitMessages, message)
	if v.CommitErr != nil {
		return "", v.CommitErr
	}
	return "0123456789abcdef0123456789abcdef01234567", nil
}

func (v *StubVersionControlRepository) Push(_ context.Context, remote, branch string) error {
	v.Calls = append(v.Calls, "push")
	v.Pushes = append(v.Pushes, remote+"/"+branch)
	return v.PushErr
}

// Factory returns a repositories.VersionControlFactory that always yields v.
func (v *StubVersionControlRepository) Factory() repositories.VersionControlFactory {
	return func(_ string) (repositories.VersionControlRepository, error) {
		return v, nil
	}
}
