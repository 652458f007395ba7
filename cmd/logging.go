package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/abhisek/coursebuddy/internal/store"
)

func setLogOutput(w io.Writer) {
	slog.SetDefault(cfg.NewLogger(w))
}

// logToFile redirects logging to coursebuddy.log in the data directory so
// the terminal UI is not disturbed. The returned func closes the file.
func logToFile() (func(), error) {
	dir, err := store.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "coursebuddy.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	setLogOutput(f)
	return func() {
		setLogOutput(os.Stderr)
		f.Close()
	}, nil
}
