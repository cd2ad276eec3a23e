// Package runlog appends a human-readable line for every sync run start,
// keeping a plain-text record of when the job actually fired.
package runlog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// timestampLayout matches the historical run log format
const timestampLayout = "2006-01-02 15:04:05.000"

// FileSink appends run start times to a plain text file
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileSink opens (or creates) the run log file in append mode
func NewFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("runlog: failed to open %s: %w", path, err)
	}
	return &FileSink{file: file}, nil
}

// Record appends one "Execution Time:" line for the run start
func (s *FileSink) Record(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.file, "Execution Time: %s\n", t.Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("runlog: failed to append: %w", err)
	}
	return nil
}

// Close syncs and closes the underlying file
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.file.Sync(); err != nil {
		return s.file.Close()
	}
	return s.file.Close()
}
