package services

import "errors"

// Analysis service errors
var (
	ErrNoUpload          = errors.New("no spreadsheet uploaded")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
