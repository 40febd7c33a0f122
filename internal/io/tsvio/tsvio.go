// Package tsvio writes tab-separated reports.
package tsvio

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnsys"
)

// cleaner keeps every value on one line and in one column.
var cleaner = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// Writer writes rows of tab-separated values.
type Writer struct {
	w    *bufio.Writer
	c    io.Closer
	path string
}

// New creates a Writer on top of w.
func New(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Create creates a file in dir (making dir if needed) and writes the
// header to it.
func Create(dir, name string, header ...string) (*Writer, error) {
	err := gnsys.MakeDir(dir)
	if err != nil {
		slog.Error("Cannot create output directory", "dir", dir, "error", err)
		return nil, err
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		slog.Error("Cannot create file", "path", path, "error", err)
		return nil, err
	}
	res := &Writer{w: bufio.NewWriter(f), c: f, path: path}
	if err = res.Write(header...); err != nil {
		f.Close()
		return nil, err
	}
	return res, nil
}

// Path returns the path of the file, empty for writers created by New.
func (w *Writer) Path() string {
	return w.path
}

// Write writes one row.
func (w *Writer) Write(fields ...string) error {
	for i, v := range fields {
		if i > 0 {
			if err := w.w.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(cleaner.Replace(v)); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Close flushes rows and closes the file. Repeated calls only flush.
func (w *Writer) Close() error {
	err := w.w.Flush()
	if w.c == nil {
		return err
	}
	if cerr := w.c.Close(); err == nil {
		err = cerr
	}
	w.c = nil
	return err
}
