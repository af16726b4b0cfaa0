package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitsailing/sail-stats/internal/report"
	"github.com/mitsailing/sail-stats/internal/stats"
)

// Storage handles persistence of summary reports
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Path returns where a report with the given name lives.
// Absolute names are used as is.
func (s *Storage) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dataDir, name)
}

// SaveReport writes summaries in the given format and returns the file path
func (s *Storage) SaveReport(name string, format report.Format, summaries []stats.Summary) (string, error) {
	path := s.Path(name)

	var buf bytes.Buffer
	if err := report.Write(&buf, format, summaries); err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sail-stats-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("setting report permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("moving report into place: %w", err)
	}

	return path, nil
}

// LoadReport reads a CSV report written by SaveReport
func (s *Storage) LoadReport(name string) ([]stats.Summary, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	summaries, err := report.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return summaries, nil
}
