package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

const (
	fallbackAuthorName  = "simpledeploy"
	fallbackAuthorEmail = "simpledeploy@localhost"
)

// GitRepository implements repositories.VersionControlRepository on top of go-git.
// All paths it accepts and reports are slash-separated and relative to the project root,
// which may be a subdirectory of the repository.
type GitRepository struct {
	repo        *gogit.Repository
	repoRoot    string
	projectRoot string
}

// Open opens the repository containing projectRoot.
func Open(projectRoot string) (repositories.VersionControlRepository, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("invalid project root %s: %w", projectRoot, err)
	}

	repo, err := gogit.PlainOpenWithOptions(absRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, entities.WrapCommandError(
			entities.PreconditionError, err, "%s is not inside a git repository", absRoot,
		)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	return &GitRepository{
		repo:        repo,
		repoRoot:    worktree.Filesystem.Root(),
		projectRoot: absRoot,
	}, nil
}

// Status returns every changed path with its porcelain-style kind, sorted by path.
func (it *GitRepository) Status(_ context.Context) (entities.RepoStatusReport, error) {
	worktree, err := it.repo.Worktree()
	if err != nil {
		return entities.RepoStatusReport{}, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return entities.RepoStatusReport{}, fmt.Errorf("failed to read git status: %w", err)
	}

	report := entities.RepoStatusReport{}
	for repoPath, fileStatus := range status {
		kind, changed := changeKind(fileStatus)
		if !changed {
			continue
		}
		report.Entries = append(report.Entries, entities.StatusEntry{Path: it.fromRepoPath(repoPath), Kind: kind})
	}
	sort.Slice(report.Entries, func(i, j int) bool {
		return report.Entries[i].Path < report.Entries[j].Path
	})
	return report, nil
}

// HeadContent returns the committed content of p, or "" when HEAD has no such file.
func (it *GitRepository) HeadContent(_ context.Context, p string) (string, error) {
	head, err := it.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := it.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to load HEAD commit: %w", err)
	}
	file, err := commit.File(it.toRepoPath(p))
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s at HEAD: %w", p, err)
	}
	return file.Contents()
}

// WorktreeContent returns the on-disk content of p.
func (it *GitRepository) WorktreeContent(_ context.Context, p string) (string, error) {
	data, err := os.ReadFile(filepath.Join(it.projectRoot, filepath.FromSlash(p)))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", p, err)
	}
	return string(data), nil
}

// CurrentBranch returns the short name of the checked-out branch.
func (it *GitRepository) CurrentBranch(_ context.Context) (string, error) {
	head, err := it.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", errors.New("HEAD is detached, check out a branch first")
	}
	return head.Name().Short(), nil
}

// CommitAll stages every change in the worktree and commits it.
func (it *GitRepository) CommitAll(_ context.Context, message string) (string, error) {
	worktree, err := it.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}
	if err = worktree.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("failed to stage changes: %w", err)
	}

	signature := it.signature()
	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	logger.Infof("Committed changes: %s", hash.String()[:7])
	return hash.String(), nil
}

// Push shells out to git so the user's credential helpers and SSH agent apply.
func (it *GitRepository) Push(ctx context.Context, remote, branch string) error {
	cmd := exec.CommandContext(ctx, "git", "push", remote, branch)
	cmd.Dir = it.repoRoot
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git push %s %s failed: %w: %s", remote, branch, err, strings.TrimSpace(stderr.String()))
	}
	logger.Infof("Pushed %s to %s", branch, remote)
	return nil
}

func (it *GitRepository) signature() *object.Signature {
	name, email := fallbackAuthorName, fallbackAuthorEmail
	for _, scope := range []config.Scope{config.LocalScope, config.GlobalScope} {
		cfg, err := it.repo.ConfigScoped(scope)
		if err != nil {
			continue
		}
		if cfg.User.Name != "" && cfg.User.Email != "" {
			name, email = cfg.User.Name, cfg.User.Email
			break
		}
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

func (it *GitRepository) fromRepoPath(repoPath string) string {
	abs := filepath.Join(it.repoRoot, filepath.FromSlash(repoPath))
	rel, err := filepath.Rel(it.projectRoot, abs)
	if err != nil {
		return repoPath
	}
	return filepath.ToSlash(rel)
}

func (it *GitRepository) toRepoPath(p string) string {
	abs := filepath.Join(it.projectRoot, filepath.FromSlash(p))
	rel, err := filepath.Rel(it.repoRoot, abs)
	if err != nil {
		return p
	}
	return path.Clean(filepath.ToSlash(rel))
}

// changeKind maps a go-git status pair onto one porcelain kind. The worktree side wins
// because that is what an unstaged edit looks like to the operator.
func changeKind(status *gogit.FileStatus) (entities.ChangeKind, bool) {
	if status.Staging == gogit.Untracked || status.Worktree == gogit.Untracked {
		return entities.Untracked, true
	}
	code := status.Worktree
	if code == gogit.Unmodified {
		code = status.Staging
	}
	switch code {
	case gogit.Modified:
		return entities.Modified, true
	case gogit.Added:
		return entities.Added, true
	case gogit.Deleted:
		return entities.Deleted, true
	case gogit.Renamed:
		return entities.Renamed, true
	case gogit.Copied:
		return entities.Copied, true
	case gogit.UpdatedButUnmerged:
		return entities.Unmerged, true
	default:
		return "", false
	}
}
