package report

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Console receives the human facing lines of a run.
type Console interface {
	Println(line string)
}

// Sink receives machine readable key=value lines, e.g. a CI step output file.
type Sink interface {
	WriteLine(line string) error
}

// WriterConsole prints to an io.Writer.
type WriterConsole struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterConsole(w io.Writer) *WriterConsole {
	return &WriterConsole{w: w}
}

func (c *WriterConsole) Println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}

// FileSink appends lines to a file, creating it if needed.
type FileSink struct {
	path string
}

// NewFileSink returns nil for an empty path so callers can pass the result
// straight to NewReporter.
func NewFileSink(path string) Sink {
	if path == "" {
		return nil
	}
	return &FileSink{path: path}
}

func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) WriteLine(line string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error opening output file: %w", err)
	}

	if _, err := fmt.Fprintln(f, line); err != nil {
		f.Close()
		return fmt.Errorf("error writing output file: %w", err)
	}
	return f.Close()
}
