package wrapgen

import (
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error messages.
const (
	ErrMsgReadFailed      = "failed to read input file"
	ErrMsgWriteFailed     = "failed to write output file"
	ErrMsgConfigLookup    = "generator config field missing"
	ErrMsgMultipleMarkers = "template line holds more than one marker"
)

// Error codes.
const (
	ErrCodeIO       = "HDRWRAP_IO"
	ErrCodeConfig   = "HDRWRAP_CONFIG"
	ErrCodeTemplate = "HDRWRAP_TEMPLATE"
)

// Metadata keys attached to errors.
const (
	MetaKeyPath    = "path"
	MetaKeyKey     = "key"
	MetaKeyLine    = "line"
	MetaKeyMarkers = "markers"
)

// NewReadError wraps a failure to read one of the inputs.
func NewReadError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeIO, ErrMsgReadFailed).
		WithMetadata(MetaKeyPath, path)
}

// NewWriteError wraps a failure to write the output or an install copy.
func NewWriteError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeIO, ErrMsgWriteFailed).
		WithMetadata(MetaKeyPath, path)
}

// NewConfigLookupError reports a required generator config key that is absent.
func NewConfigLookupError(key string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConfig, ErrMsgConfigLookup).
		WithMetadata(MetaKeyKey, key)
}

// NewMultipleMarkersError reports a template line with more than one distinct
// marker when strict marker checking is on. line is 1-indexed.
func NewMultipleMarkersError(line int, markers string) error {
	return cuserr.NewValidationError(ErrCodeTemplate, ErrMsgMultipleMarkers).
		WithMetadata(MetaKeyLine, strconv.Itoa(line)).
		WithMetadata(MetaKeyMarkers, markers)
}
