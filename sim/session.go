package sim

import (
	"fmt"
	"os"
)

// sessionHeader is the CSV column line of a session file.
const sessionHeader = "time, period_time, conn, no_serv, interfered, conn_duration, int_free_duration, conn_perc, outage_perc, interfered_perc"

// SessionWriter appends periodic statistics rows to a CSV session file.
// The file is opened per write so a crash mid-run loses at most one row.
type SessionWriter struct {
	Path    string
	isFirst bool
}

// NewSessionWriter creates a writer targeting the given path. The header
// row is emitted before the first data row.
func NewSessionWriter(path string) *SessionWriter {
	return &SessionWriter{Path: path, isFirst: true}
}

// Write appends one line to the session file.
func (w *SessionWriter) Write(line string) error {
	f, err := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening session file: %w", err)
	}
	defer f.Close()
	if w.isFirst {
		w.isFirst = false
		if _, err := fmt.Fprintln(f, sessionHeader); err != nil {
			return fmt.Errorf("writing session header: %w", err)
		}
	}
	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("writing session row: %w", err)
	}
	return nil
}
