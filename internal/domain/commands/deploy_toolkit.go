package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

const (
	toolkitFileMode = 0o644
	toolkitDirMode  = 0o755
)

// DeployToolkit is the utility surface a plugin receives during Deploy.
// It is bound to one run: its configuration, project and dependency file never change.
type DeployToolkit struct {
	cfg      *entities.RunConfig
	settings *entities.Settings
	project  entities.Project
	depRepo  repositories.DependencyFileRepository
	prompter repositories.PrompterRepository
	declared entities.PackageSet
	log      *logger.Entry
}

var _ repositories.Toolkit = (*DeployToolkit)(nil)

// NewDeployToolkit parses the project's dependency file and returns a toolkit bound to it.
func NewDeployToolkit(
	ctx context.Context,
	cfg *entities.RunConfig,
	settings *entities.Settings,
	project entities.Project,
	depRepo repositories.DependencyFileRepository,
	prompter repositories.PrompterRepository,
) (*DeployToolkit, error) {
	names, err := depRepo.Parse(ctx, project.DependencyFile.Path)
	if err != nil {
		return nil, err
	}
	return &DeployToolkit{
		cfg:      cfg,
		settings: settings,
		project:  project,
		depRepo:  depRepo,
		prompter: prompter,
		declared: entities.NewPackageSet(names...),
		log:      logger.WithField("dependency_file", project.DependencyFile.Name()),
	}, nil
}

func (it *DeployToolkit) Config() *entities.RunConfig { return it.cfg }

func (it *DeployToolkit) Settings() *entities.Settings { return it.settings }

func (it *DeployToolkit) Project() entities.Project { return it.project }

func (it *DeployToolkit) Logger() *logger.Entry { return it.log }

// HasPackage reports whether the dependency file declares name, in any casing.
func (it *DeployToolkit) HasPackage(name string) bool { return it.declared.Has(name) }

// AddPackage declares req unless it is already there. Poetry projects receive
// deployment packages in the optional deploy group.
func (it *DeployToolkit) AddPackage(ctx context.Context, req entities.PackageRequirement) error {
	if it.HasPackage(req.Name) {
		logger.Infof("Found %s in %s.", req.Name, it.project.DependencyFile.Name())
		return nil
	}

	grouped, isGrouped := it.depRepo.(repositories.GroupedDependencyFileRepository)
	if isGrouped && req.Group == "" {
		req.Group = entities.DeployGroup
	}

	if it.cfg.DryRun {
		logger.Infof("[DRY RUN] Would add %s to %s", req.Line(), it.project.DependencyFile.Name())
		return nil
	}

	if isGrouped {
		if err := grouped.EnsureGroup(ctx, it.project.DependencyFile.Path, req.Group); err != nil {
			return err
		}
	}
	if err := it.depRepo.Add(ctx, it.project.DependencyFile.Path, req); err != nil {
		return err
	}
	it.declared[req.CanonicalName()] = struct{}{}
	logger.Infof("Added %s to %s.", req.Name, it.project.DependencyFile.Name())
	return nil
}

// AddPackages adds each requirement in order, stopping at the first failure.
func (it *DeployToolkit) AddPackages(ctx context.Context, reqs ...entities.PackageRequirement) error {
	for _, req := range reqs {
		if err := it.AddPackage(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// AddFile writes a new file. An existing file is replaced only after the operator agrees,
// or without asking in non-interactive runs.
func (it *DeployToolkit) AddFile(path, contents string) error {
	target, rel, err := it.resolve(path)
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(target); statErr == nil && it.cfg.Interactive() {
		replace, confirmErr := it.prompter.Confirm(fmt.Sprintf("The file %s already exists. Replace it?", rel))
		if confirmErr != nil {
			return confirmErr
		}
		if !replace {
			return fmt.Errorf("not replacing %s; remove or rename it and run again", rel)
		}
	}

	if it.cfg.DryRun {
		logger.Infof("[DRY RUN] Would write %s", rel)
		return nil
	}
	if err = os.MkdirAll(filepath.Dir(target), toolkitDirMode); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err = os.WriteFile(target, []byte(contents), toolkitFileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	logger.Infof("Wrote %s.", rel)
	return nil
}

// ModifyFile replaces the contents of an existing file.
func (it *DeployToolkit) ModifyFile(path, contents string) error {
	target, rel, err := it.resolve(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot modify %s: %w", rel, err)
	}

	if it.cfg.DryRun {
		logger.Infof("[DRY RUN] Would modify %s", rel)
		return nil
	}
	if err = os.WriteFile(target, []byte(contents), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to modify %s: %w", rel, err)
	}
	logger.Infof("Modified file: %s", rel)
	return nil
}

// AddDir creates a directory, reporting an existing one instead of failing.
func (it *DeployToolkit) AddDir(path string) error {
	target, rel, err := it.resolve(path)
	if err != nil {
		return err
	}
	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		logger.Infof("Found existing directory: %s", rel)
		return nil
	}

	if it.cfg.DryRun {
		logger.Infof("[DRY RUN] Would create directory %s", rel)
		return nil
	}
	if err = os.MkdirAll(target, toolkitDirMode); err != nil {
		return fmt.Errorf("failed to create %s: %w", rel, err)
	}
	logger.Infof("Added new directory: %s", rel)
	return nil
}

// RunCommand runs name in the project root and returns its stdout, or its stderr when
// stdout is empty. Dry runs only log the command line.
func (it *DeployToolkit) RunCommand(ctx context.Context, name string, args ...string) (string, error) {
	commandLine := strings.Join(append([]string{name}, args...), " ")
	if it.cfg.DryRun {
		logger.Infof("[DRY RUN] Would run: %s", commandLine)
		return "", nil
	}

	logger.Infof("  $ %s", commandLine)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = it.project.Root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if line != "" {
			logger.Debug(line)
		}
	}
	if err != nil {
		return output, fmt.Errorf("%s failed: %w: %s", commandLine, err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}

// Confirm asks the operator; non-interactive runs always answer yes.
func (it *DeployToolkit) Confirm(message string) (bool, error) {
	if !it.cfg.Interactive() {
		return true, nil
	}
	return it.prompter.Confirm(message)
}

// resolve maps a project-relative path to an absolute one, refusing paths that escape the root.
func (it *DeployToolkit) resolve(path string) (string, string, error) {
	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(it.project.Root, path)
	}
	rel, err := filepath.Rel(it.project.Root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%s is outside the project root: %w", path, errOutsideProject)
	}
	return target, filepath.ToSlash(rel), nil
}

var errOutsideProject = errors.New("path escapes project")
