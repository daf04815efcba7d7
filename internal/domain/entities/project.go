package entities

// Project is the host web project being configured, located once per run.
type Project struct {
	Root           string
	SettingsPath   string // host settings module relative to Root, e.g. "blog/settings.py"
	DependencyFile DependencyFile
}
