// Package sqlite implements the yo storage backend: the append-only entry
// log as the source of truth and a SQLite snapshot of its projection.
// This file provides the entry log read/append helpers.
package sqlite

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// maxLineBytes bounds a single log line; long descriptions fit comfortably.
const maxLineBytes = 1 << 20

// readLines returns every non-blank line of the log in file order.
// A missing log reads as empty.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return lines, nil
}

// appendLines appends lines to the log and syncs before returning, so a
// caller that goes on to write the snapshot knows the log is durable first.
// Existing content is never rewritten.
func appendLines(path string, lines []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if strings.ContainsAny(line, "\r\n") {
			f.Close()
			return fmt.Errorf("appending to %s: line contains a line break", path)
		}
		if _, err := w.WriteString(line); err != nil {
			f.Close()
			return fmt.Errorf("writing entry: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	return f.Close()
}

// ensureFile creates an empty file at path if none exists.
func ensureFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return f.Close()
}

// firstField returns the leading token of a log line (the entry id).
func firstField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
