package schema

import "errors"

var (
	// ErrUnsupportedFormat is returned for format names other than auto,
	// json, and yaml.
	ErrUnsupportedFormat = errors.New("schema: unsupported document format")
	// ErrUnsupportedSource is returned for source kinds the loader cannot read.
	ErrUnsupportedSource = errors.New("schema: unsupported source kind")
	// ErrOperationNotFound is returned when an OpenAPI document has no
	// operation with the requested id.
	ErrOperationNotFound = errors.New("schema: operation not found")
)
