package entities

import (
	"path"
	"strings"
)

// ChangeKind is the porcelain-style state of one changed path.
type ChangeKind string

const (
	Modified  ChangeKind = "M"
	Added     ChangeKind = "A"
	Deleted   ChangeKind = "D"
	Renamed   ChangeKind = "R"
	Copied    ChangeKind = "C"
	Untracked ChangeKind = "??"
	Unmerged  ChangeKind = "U"
)

// StatusEntry is a single (path, change-kind) pair reported by version control.
type StatusEntry struct {
	Path string // slash-separated, relative to the repository root
	Kind ChangeKind
}

func (e StatusEntry) String() string {
	return string(e.Kind) + " " + e.Path
}

// RepoStatusReport is the ordered list of pending changes in the working tree.
type RepoStatusReport struct {
	Entries []StatusEntry
}

// IsClean reports whether nothing is pending.
func (r RepoStatusReport) IsClean() bool {
	return len(r.Entries) == 0
}

// AllowList describes the changes this tool may itself have left behind on a prior run.
type AllowList struct {
	LogDir            string // e.g. "dsd_logs"
	IgnoreFile        string // e.g. ".gitignore"
	IgnoreEntry       string // e.g. "dsd_logs/"
	SettingsPath      string // host settings module, relative; empty when unknown
	RegistrationEntry string // e.g. "django_simple_deploy"
}

// NewAllowList derives the allow-list from the settings and the located settings module.
func NewAllowList(settings *Settings, settingsPath string) AllowList {
	return AllowList{
		LogDir:            settings.LogDir,
		IgnoreFile:        ".gitignore",
		IgnoreEntry:       settings.LogDir + "/",
		SettingsPath:      path.Clean(strings.TrimPrefix(settingsPath, "./")),
		RegistrationEntry: settings.RegistrationEntry,
	}
}

// InLogDir reports whether path lives inside the tool's log directory.
func (a AllowList) InLogDir(p string) bool {
	p = strings.TrimPrefix(p, "./")
	return p == a.LogDir || p == a.LogDir+"/" || strings.HasPrefix(p, a.LogDir+"/")
}

// LineMatcher returns the predicate for the single line the tool may add to path,
// or false when path is not one of the content-checked files.
func (a AllowList) LineMatcher(p string) (func(line string) bool, bool) {
	p = path.Clean(strings.TrimPrefix(p, "./"))
	switch {
	case p == a.IgnoreFile:
		return a.isIgnoreEntry, true
	case a.SettingsPath != "" && a.SettingsPath != "." && p == a.SettingsPath:
		return a.isRegistrationLine, true
	default:
		return nil, false
	}
}

func (a AllowList) isIgnoreEntry(line string) bool {
	return strings.TrimSpace(line) == a.IgnoreEntry
}

func (a AllowList) isRegistrationLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == `"`+a.RegistrationEntry+`",` || trimmed == `'`+a.RegistrationEntry+`',`
}
