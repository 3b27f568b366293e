package tabular

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
)

// Writer persists a DataFrame as CSV with a header row.
// It implements pipeline.Loader.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a CSV writer for path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Path returns the file the writer produces.
func (w *Writer) Path() string { return w.path }

// Load writes df to path. Readers never observe a partial file.
func (w *Writer) Load(ctx context.Context, df dataframe.DataFrame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeAtomic(w.path, func(f io.Writer) error { return df.WriteCSV(f) }); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	w.logger.Info("table written", "path", w.path, "rows", df.Nrow(), "columns", df.Ncol())
	return nil
}

// JSONWriter persists a value as indented JSON.
// It implements pipeline.ReportSaver.
type JSONWriter struct {
	path   string
	logger *slog.Logger
}

// NewJSONWriter creates a JSON writer for path.
func NewJSONWriter(path string, logger *slog.Logger) *JSONWriter {
	return &JSONWriter{path: path, logger: logger}
}

// Save writes v to path.
func (w *JSONWriter) Save(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := writeAtomic(w.path, func(f io.Writer) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
	if err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	w.logger.Info("report written", "path", w.path)
	return nil
}

// writeAtomic writes through a temporary file next to path and renames it
// into place.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
