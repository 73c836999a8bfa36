package panel

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/tailpane/internal/config"
)

// SaveQuery is the question shown by the save prompt.
const SaveQuery = "Please enter the path to save the log file, or press ESC to cancel:"

// Prompter asks the user for a line of text. ok is false when the user
// cancelled.
type Prompter interface {
	Prompt(query, initial string) (answer string, ok bool)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(query, initial string) (string, bool)

// Prompt implements Prompter.
func (f PrompterFunc) Prompt(query, initial string) (string, bool) {
	return f(query, initial)
}

// DefaultSavePath returns the path offered by the save prompt:
// <save dir>/<panel name>-<unix seconds>.log.
func (p *ScrollPanel) DefaultSavePath() string {
	return defaultSavePath(p.saveDir, p.name, p.clock())
}

func defaultSavePath(dir, name string, now time.Time) string {
	base := fileSafe(name)
	if base == "" {
		base = "log"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%d.log", base, now.Unix()))
}

// SaveLog asks prompt for a destination and writes the backlog there. A
// cancelled or blank answer is a no-op and returns an empty path.
func (p *ScrollPanel) SaveLog(prompt Prompter) (string, error) {
	answer, ok := prompt.Prompt(SaveQuery, p.DefaultSavePath())
	if !ok || strings.TrimSpace(answer) == "" {
		return "", nil
	}
	return p.SaveTo(answer)
}

// SaveTo appends every logical line to the file at path, creating parent
// directories as needed, then adds a confirmation line to the panel. Nothing
// is added to the panel when the write fails. It returns the absolute path
// written.
func (p *ScrollPanel) SaveTo(path string) (string, error) {
	abs, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve save path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}
	if err := writeLines(abs, p.buf.Snapshot()); err != nil {
		return "", err
	}
	p.Append("Log saved to " + abs)
	return abs, nil
}

func writeLines(path string, lines []string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			_ = file.Close()
			return fmt.Errorf("write log file: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			_ = file.Close()
			return fmt.Errorf("write log file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("write log file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		case r == ' ' || r == '/' || r == '\\':
			return '-'
		default:
			return -1
		}
	}, strings.TrimSpace(name))
}
