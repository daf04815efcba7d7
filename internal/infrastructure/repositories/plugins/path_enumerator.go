package plugins

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

// PathEnumerator lists plugin executables found on $PATH.
type PathEnumerator struct {
	pathEnv func() string
}

// NewPathEnumerator creates an enumerator reading the process $PATH.
func NewPathEnumerator() *PathEnumerator {
	return &PathEnumerator{pathEnv: func() string { return os.Getenv("PATH") }}
}

// NewPathEnumeratorWithPath creates an enumerator over a fixed search path.
func NewPathEnumeratorWithPath(path string) *PathEnumerator {
	return &PathEnumerator{pathEnv: func() string { return path }}
}

// InstalledPackages returns every executable whose name starts with the plugin prefix,
// in either its underscore or hyphen spelling. The first directory on $PATH wins
// when two spellings resolve to the same canonical name.
func (it *PathEnumerator) InstalledPackages(_ context.Context, settings *entities.Settings) ([]string, error) {
	prefix := entities.CanonicalName(settings.PluginPrefix)
	seen := make(map[string]bool)
	var names []string

	for _, dir := range filepath.SplitList(it.pathEnv()) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Debugf("[plugins] Skipping unreadable PATH entry %s: %v", dir, err)
			continue
		}
		for _, entry := range entries {
			name := executableName(entry.Name())
			canonical := entities.CanonicalName(name)
			if !strings.HasPrefix(canonical, prefix) || seen[canonical] {
				continue
			}
			if !isExecutable(filepath.Join(dir, entry.Name())) {
				continue
			}
			seen[canonical] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// LookPath resolves a plugin name to its executable, trying both separator spellings.
func LookPath(name string) (string, error) {
	candidates := []string{
		name,
		strings.ReplaceAll(name, "-", "_"),
		strings.ReplaceAll(name, "_", "-"),
	}
	var firstErr error
	for _, candidate := range candidates {
		path, err := exec.LookPath(candidate)
		if err == nil {
			return path, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}

func executableName(fileName string) string {
	if runtime.GOOS == "windows" {
		return strings.TrimSuffix(fileName, filepath.Ext(fileName))
	}
	return fileName
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
