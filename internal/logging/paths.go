package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLogDir returns ~/.wiki/logs, or a temp-dir fallback without a home
// directory.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".wiki", "logs")
	}
	return filepath.Join(home, ".wiki", "logs")
}

// DefaultLogPath returns the CLI log file.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "wiki.log")
}

// FindLogFile returns explicit when it exists, else the default log path.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit, nil
		}
		return "", fmt.Errorf("log file not found: %s", explicit)
	}

	path := DefaultLogPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("no log file found, run a command with --debug first.\nExpected at: %s", path)
}
