package facts

import "errors"

// Error taxonomy shared across the pipeline. Per-file errors are recoverable:
// the aggregator logs a warning and skips the file. Only ErrInvalidRoot is
// fatal to a run.
var (
	// ErrUnsupportedFileType means no registered extractor matches the file.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrParseFailure means the source could not be parsed into a syntax tree.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidRoot means the analysis root does not exist or is not a directory.
	ErrInvalidRoot = errors.New("invalid analysis root")
)
