package commands

import (
	"context"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

// CleanlinessGate refuses to run against a working tree with changes the tool did not make.
type CleanlinessGate struct{}

// NewCleanlinessGate creates the repository cleanliness gate.
func NewCleanlinessGate() *CleanlinessGate {
	return &CleanlinessGate{}
}

// Check collects the repository status and fails with a PreconditionError listing every
// foreign path. With ignoreStatus set it only warns.
func (it *CleanlinessGate) Check(
	ctx context.Context,
	vcs repositories.VersionControlRepository,
	allow entities.AllowList,
	ignoreStatus bool,
) error {
	if ignoreStatus {
		logger.Warn("Ignoring git status.")
		return nil
	}

	report, err := vcs.Status(ctx)
	if err != nil {
		return entities.WrapCommandError(entities.PreconditionError, err, "could not read git status")
	}

	foreign, err := it.Classify(ctx, vcs, report, allow)
	if err != nil {
		return err
	}
	if len(foreign) > 0 {
		return entities.NewPreconditionError(foreign,
			"git status is not clean; commit or stash these changes, or rerun with --ignore-unclean-git",
		)
	}

	if report.IsClean() {
		logger.Info("No uncommitted changes.")
	} else {
		logger.Info("No uncommitted changes, other than simpledeploy work.")
	}
	return nil
}

// Classify returns the paths of the report that the allow-list does not cover, in report order.
// The two content-checked files pass only when their whole diff against HEAD is the one
// line the tool adds.
func (it *CleanlinessGate) Classify(
	ctx context.Context,
	vcs repositories.VersionControlRepository,
	report entities.RepoStatusReport,
	allow entities.AllowList,
) ([]string, error) {
	var foreign []string
	for _, entry := range report.Entries {
		allowed, err := it.isAllowed(ctx, vcs, entry, allow)
		if err != nil {
			return nil, err
		}
		if !allowed {
			logger.Debugf("Foreign change: %s", entry)
			foreign = append(foreign, entry.String())
		}
	}
	return foreign, nil
}

func (it *CleanlinessGate) isAllowed(
	ctx context.Context,
	vcs repositories.VersionControlRepository,
	entry entities.StatusEntry,
	allow entities.AllowList,
) (bool, error) {
	if allow.InLogDir(entry.Path) {
		return true, nil
	}
	matcher, contentChecked := allow.LineMatcher(entry.Path)
	if !contentChecked || entry.Kind != entities.Modified {
		return false, nil
	}

	before, err := vcs.HeadContent(ctx, entry.Path)
	if err != nil {
		return false, entities.WrapCommandError(entities.PreconditionError, err, "could not read %s at HEAD", entry.Path)
	}
	after, err := vcs.WorktreeContent(ctx, entry.Path)
	if err != nil {
		return false, entities.WrapCommandError(entities.PreconditionError, err, "could not read %s", entry.Path)
	}
	return onlyAddedLine(before, after, matcher), nil
}

// onlyAddedLine reports whether after equals before plus exactly one inserted non-blank
// line accepted by matches. Blank lines may accompany the insertion.
func onlyAddedLine(before, after string, matches func(string) bool) bool {
	a, b := diffLines(before), diffLines(after)
	matcher := difflib.NewMatcher(a, b)

	var inserted []string
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			continue
		case 'i':
			inserted = append(inserted, b[op.J1:op.J2]...)
		default:
			return false
		}
	}

	var added []string
	for _, line := range inserted {
		if strings.TrimSpace(line) != "" {
			added = append(added, line)
		}
	}
	return len(added) == 1 && matches(added[0])
}

func diffLines(content string) []string {
	trimmed := strings.TrimSuffix(content, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
