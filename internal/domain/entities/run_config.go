package entities

// RunConfig holds the options of one invocation. It is built once from the CLI flags
// and handed by pointer to every component; nothing mutates it afterwards.
type RunConfig struct {
	ProjectRoot         string
	AutomateAll         bool
	Platform            string // optional override; must match the resolved plugin
	IgnoreUncleanGit    bool
	DeployedProjectName string
	Region              string
	UnitTesting         bool
	E2ETesting          bool
	DryRun              bool
	NoLogging           bool
	Verbose             bool
}

// Interactive reports whether the operator can be prompted during this run.
func (c *RunConfig) Interactive() bool {
	return !c.UnitTesting && !c.E2ETesting
}

// LoggingEnabled reports whether a transcript should be written to the log directory.
func (c *RunConfig) LoggingEnabled() bool {
	return !c.NoLogging && !c.UnitTesting
}
