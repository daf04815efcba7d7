package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rios0rios0/simpledeploy/internal/domain/repositories"
)

// TerminalPrompterRepository asks yes/no questions on a terminal.
type TerminalPrompterRepository struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompterRepository creates a prompter on stdin/stdout.
func NewTerminalPrompterRepository() repositories.PrompterRepository {
	return NewPrompterRepository(os.Stdin, os.Stdout)
}

// NewPrompterRepository creates a prompter over arbitrary streams.
func NewPrompterRepository(in io.Reader, out io.Writer) *TerminalPrompterRepository {
	return &TerminalPrompterRepository{in: bufio.NewReader(in), out: out}
}

// Confirm prints message and re-asks until the answer is yes or no.
func (it *TerminalPrompterRepository) Confirm(message string) (bool, error) {
	for {
		if _, err := fmt.Fprintf(it.out, "%s\n\nAre you sure you want to do this? (yes|no) ", message); err != nil {
			return false, err
		}
		answer, err := it.in.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		switch answer {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err != nil {
			if err == io.EOF {
				return false, nil
			}
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		_, _ = fmt.Fprintln(it.out, "Please answer yes or no.")
	}
}
