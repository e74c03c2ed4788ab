package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// DefaultPath is the demo log file, relative to the working directory.
const DefaultPath = "logs/demo.txt"

// maxLines bounds the in-memory history shown by the console; the file keeps everything.
const maxLines = 500

// Logger keeps recent timestamped lines in memory for the console and appends every line to a file.
// An empty path disables the file.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	now   func() time.Time
}

// New returns a Logger writing to path, creating its directory if needed.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, now: time.Now}
}

// Log records one line prefixed with [timestamp].
func (l *Logger) Log(line string) {
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats and records a line.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Write logs each non-empty line of p, so flag usage and errors can be routed to the console.
func (l *Logger) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			l.Log(line)
		}
	}
	return len(p), nil
}

// Lines returns a copy of the in-memory history, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Truncate shortens line to at most maxRunes runes, ending it with "..." when cut.
// It never splits a multi-byte character.
func Truncate(line string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(line) <= maxRunes {
		return line
	}
	const ellipsis = "..."
	if maxRunes <= len(ellipsis) {
		return ellipsis[:maxRunes]
	}
	keep := maxRunes - len(ellipsis)
	for i := range line {
		if keep == 0 {
			return line[:i] + ellipsis
		}
		keep--
	}
	return line
}
