package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"classcheck/internal/config"
	"classcheck/internal/fileutil"
	"classcheck/internal/logging"
	"classcheck/internal/matrix"
)

const (
	lockFileName  = ".classcheck.lock"
	lockRetry     = 50 * time.Millisecond
	jsonFileName  = "matrices.json"
	xlsxFileName  = "matrices.xlsx"
	csvFileSuffix = ".csv"
)

// ErrUnsupportedFormat is returned for formats that do not produce files.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Writer exports matrices into a directory.
type Writer struct {
	dir     string
	symbols Symbols
	logger  *slog.Logger
	now     func() time.Time
}

// NewWriter constructs a writer for dir.
func NewWriter(dir string, symbols Symbols, logger *slog.Logger) *Writer {
	return &Writer{
		dir:     dir,
		symbols: symbols,
		logger:  logging.NewComponentLogger(logger, "export"),
		now:     time.Now,
	}
}

// Export writes set in format and returns the written paths. The export
// directory is locked for the duration of the write and each file is
// replaced atomically.
func (w *Writer) Export(ctx context.Context, format, runID string, set matrix.Set) ([]string, error) {
	switch format {
	case config.ExportFormatJSON, config.ExportFormatCSV, config.ExportFormatXLSX:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	lock := flock.New(filepath.Join(w.dir, lockFileName))
	ok, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("acquire export lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire export lock: %s is busy", w.dir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.logger.Warn("failed to release export lock", logging.Error(err))
		}
	}()

	var paths []string
	switch format {
	case config.ExportFormatJSON:
		doc := NewDocument(runID, w.now(), set)
		path, err := w.writeFile(jsonFileName, func(out io.Writer) error { return WriteJSON(out, doc) })
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	case config.ExportFormatXLSX:
		path, err := w.writeFile(xlsxFileName, func(out io.Writer) error { return WriteWorkbook(out, set, w.symbols) })
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	case config.ExportFormatCSV:
		names := CSVFileNames(set.Rooms)
		for _, m := range set.Ordered() {
			path, err := w.writeFile(names[m.Room], func(out io.Writer) error { return WriteCSV(out, m, w.symbols) })
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	w.logger.Info("matrices exported",
		logging.String("format", format),
		logging.String(logging.FieldRunID, runID),
		logging.Int("files", len(paths)),
		logging.String("dir", w.dir),
	)
	return paths, nil
}

func (w *Writer) writeFile(name string, write func(io.Writer) error) (string, error) {
	path := filepath.Join(w.dir, name)
	if err := fileutil.WriteAtomic(path, 0o644, write); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}
