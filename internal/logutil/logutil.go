// Package logutil routes the standard logger to a size-rotated file.
package logutil

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

const (
	maxSizeBytes = 10 * 1024 * 1024
	maxArchives  = 3
)

// Setup sends log output to path, or leaves it on stderr when path is
// empty. The returned function closes the file.
func Setup(path string) (func(), error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if path == "" {
		return func() {}, nil
	}
	w, err := Open(path, maxSizeBytes)
	if err != nil {
		return nil, err
	}
	log.SetOutput(w)
	return func() {
		log.SetOutput(os.Stderr)
		if err := w.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
		}
	}, nil
}

// Debug returns a logger for chatty interaction tracing. It shares the
// standard logger's output when verbose and discards everything otherwise.
func Debug(verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(log.Writer(), "debug: ", log.Flags())
}

// RotatingWriter appends to a file and shifts it to path.1, path.2, ...
// once it would grow past its limit.
type RotatingWriter struct {
	mu    sync.Mutex
	path  string
	limit int64
	f     *os.File
}

// Open starts appending to path, rotating first if it is already too big.
func Open(path string, limit int64) (*RotatingWriter, error) {
	w := &RotatingWriter{path: path, limit: limit}
	if st, err := os.Stat(path); err == nil && st.Size() > limit {
		w.rotate()
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotatingWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	w.f = f
	return nil
}

func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return 0, os.ErrClosed
	}
	if st, err := w.f.Stat(); err == nil && st.Size() > 0 && st.Size()+int64(len(p)) > w.limit {
		_ = w.f.Close()
		w.rotate()
		if err := w.open(); err != nil {
			w.f = nil
			return 0, err
		}
	}
	return w.f.Write(p)
}

// Close closes the current file.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

func (w *RotatingWriter) rotate() {
	_ = os.Remove(archiveName(w.path, maxArchives))
	for i := maxArchives - 1; i >= 1; i-- {
		_ = os.Rename(archiveName(w.path, i), archiveName(w.path, i+1))
	}
	_ = os.Rename(w.path, archiveName(w.path, 1))
}

func archiveName(path string, n int) string { return fmt.Sprintf("%s.%d", path, n) }
