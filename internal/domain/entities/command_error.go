package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies every fatal failure the deploy command can surface.
type ErrorKind string

const (
	// ConfigurationError covers plugin resolution and unsupported flag combinations.
	ConfigurationError ErrorKind = "ConfigurationError"
	// PreconditionError is raised when the working tree holds foreign changes.
	PreconditionError ErrorKind = "PreconditionError"
	// ParseError means a dependency file could not be decoded.
	ParseError ErrorKind = "ParseError"
	// FileNotFound means a dependency file does not exist; callers decide if that is fatal.
	FileNotFound ErrorKind = "FileNotFound"
	// PluginExecutionError wraps any failure raised by the plugin's deployment routine.
	PluginExecutionError ErrorKind = "PluginExecutionError"
	// AutomationStepError is a failed commit/push/build after configuration succeeded.
	AutomationStepError ErrorKind = "AutomationStepError"
)

// CommandError is the single error type that reaches the command boundary.
type CommandError struct {
	Kind    ErrorKind
	Message string
	Paths   []string // offending paths, when the error is about files
	Cause   error
}

func (e *CommandError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	for _, path := range e.Paths {
		sb.WriteString("\n  - ")
		sb.WriteString(path)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *CommandError) Unwrap() error {
	return e.Cause
}

// NewCommandError creates a CommandError of the given kind with a formatted message.
func NewCommandError(kind ErrorKind, format string, args ...any) *CommandError {
	return &CommandError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapCommandError creates a CommandError of the given kind around cause.
func WrapCommandError(kind ErrorKind, cause error, format string, args ...any) *CommandError {
	return &CommandError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NewConfigurationError is a shortcut for NewCommandError(ConfigurationError, ...).
func NewConfigurationError(format string, args ...any) *CommandError {
	return NewCommandError(ConfigurationError, format, args...)
}

// NewPreconditionError builds the unclean-repository error listing every offending path.
func NewPreconditionError(paths []string, format string, args ...any) *CommandError {
	err := NewCommandError(PreconditionError, format, args...)
	err.Paths = paths
	return err
}

// IsKind reports whether err carries a CommandError of the given kind anywhere in its chain,
// including CommandErrors wrapped as the Cause of another one.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			return false
		}
		if cmdErr.Kind == kind {
			return true
		}
		err = cmdErr.Cause
	}
	return false
}

// KindOf extracts the kind of the outermost CommandError, or "" when err is not a CommandError.
func KindOf(err error) ErrorKind {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind
	}
	return ""
}
