package tabular

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat marks files whose extension has no reader.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FileParseError reports a file that could not be read as tabular data.
type FileParseError struct {
	Path string
	Err  error
}

func (e *FileParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *FileParseError) Unwrap() error { return e.Err }

// ErrorKind classifies the failure for run reports.
func (e *FileParseError) ErrorKind() string { return "file_parse" }

func parseError(path string, err error) error {
	return &FileParseError{Path: path, Err: err}
}
