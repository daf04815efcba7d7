package transcript

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/simpledeploy/internal/domain/entities"
)

const (
	logFileTimeFormat = "2006-01-02-150405"
	ignoreFileName    = ".gitignore"
	logDirMode        = 0o755
	logFileMode       = 0o644
)

// secretKeyRE matches a Django SECRET_KEY assignment anywhere in a line.
var secretKeyRE = regexp.MustCompile(`SECRET_KEY\s*=.*`)

// TranscriptRepository is a logrus hook that mirrors every entry into the run log.
type TranscriptRepository struct {
	mu        sync.Mutex
	log       *logger.Logger
	formatter logger.Formatter
	saved     logger.LevelHooks
	buffer    []string
	file      *os.File
	writer    *bufio.Writer
	runID     string
	now       func() time.Time
}

// NewTranscriptRepository creates a transcript bound to the standard logger.
func NewTranscriptRepository() *TranscriptRepository {
	return NewTranscriptRepositoryFor(logger.StandardLogger())
}

// NewTranscriptRepositoryFor creates a transcript bound to log.
func NewTranscriptRepositoryFor(log *logger.Logger) *TranscriptRepository {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	return &TranscriptRepository{
		log:       log,
		formatter: &logger.TextFormatter{DisableColors: true, FullTimestamp: true},
		now:       time.Now,
	}
}

// Begin attaches the hook and starts buffering entries in memory.
func (it *TranscriptRepository) Begin() {
	it.mu.Lock()
	defer it.mu.Unlock()

	it.runID = uuid.NewString()
	it.buffer = nil
	it.saved = make(logger.LevelHooks)
	for level, hooks := range it.log.Hooks {
		it.saved[level] = append([]logger.Hook(nil), hooks...)
	}
	it.log.AddHook(it)
}

// Persist creates the log directory and file, makes sure the directory is git-ignored,
// and flushes everything buffered since Begin.
func (it *TranscriptRepository) Persist(projectRoot string, settings *entities.Settings) (string, error) {
	logDir := filepath.Join(projectRoot, filepath.FromSlash(settings.LogDir))
	if err := os.MkdirAll(logDir, logDirMode); err != nil {
		return "", fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}
	if err := ensureIgnored(projectRoot, settings.LogDir+"/"); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s%s.log", settings.PluginPrefix, it.now().Format(logFileTimeFormat))
	path := filepath.Join(logDir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return "", fmt.Errorf("failed to create log file %s: %w", path, err)
	}

	it.mu.Lock()
	it.file = file
	it.writer = bufio.NewWriter(file)
	_, _ = fmt.Fprintf(it.writer, "# simpledeploy %s run %s\n", entities.CoreVersion, it.runID)
	for _, line := range it.buffer {
		_, _ = it.writer.WriteString(line)
	}
	it.buffer = nil
	err = it.writer.Flush()
	it.mu.Unlock()

	if err != nil {
		return "", fmt.Errorf("failed to write log file %s: %w", path, err)
	}
	return path, nil
}

// End detaches the hook and closes the log file.
func (it *TranscriptRepository) End() error {
	if it.saved != nil {
		it.log.ReplaceHooks(it.saved)
		it.saved = nil
	}

	it.mu.Lock()
	defer it.mu.Unlock()
	it.buffer = nil
	if it.file == nil {
		return nil
	}
	flushErr := it.writer.Flush()
	closeErr := it.file.Close()
	it.file, it.writer = nil, nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Levels implements logger.Hook.
func (it *TranscriptRepository) Levels() []logger.Level {
	return logger.AllLevels
}

// Fire implements logger.Hook.
func (it *TranscriptRepository) Fire(entry *logger.Entry) error {
	data, err := it.formatter.Format(entry)
	if err != nil {
		return err
	}
	line := RedactSecrets(string(data))

	it.mu.Lock()
	defer it.mu.Unlock()
	if it.writer == nil {
		it.buffer = append(it.buffer, line)
		return nil
	}
	if _, err = it.writer.WriteString(line); err != nil {
		return err
	}
	return it.writer.Flush()
}

// RedactSecrets hides the value of any SECRET_KEY assignment in text.
func RedactSecrets(text string) string {
	return secretKeyRE.ReplaceAllString(text, "SECRET_KEY = *value hidden*")
}

// ensureIgnored appends entry to the project's .gitignore unless it is already listed.
func ensureIgnored(projectRoot, entry string) error {
	path := filepath.Join(projectRoot, ignoreFileName)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == entry {
			return nil
		}
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err = os.WriteFile(path, []byte(content), logFileMode); err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	logger.Infof("Added %s to %s", entry, ignoreFileName)
	return nil
}
