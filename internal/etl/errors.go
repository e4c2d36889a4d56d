package etl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyFile marks an input file with no data rows.
var ErrEmptyFile = errors.New("file has no data rows")

// LoadError reports an input file that is missing, unreadable or empty.
// Fatal to the run; nothing is written.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports required columns missing from the input table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// TransformError wraps an unexpected failure inside a pipeline stage. These
// reflect data-shape problems, so the orchestrator never retries them.
type TransformError struct {
	Stage string
	Err   error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }
