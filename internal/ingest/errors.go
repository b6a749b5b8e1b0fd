package ingest

import (
	"errors"
	"fmt"
)

// Kind classifies why an upload produced no update.
type Kind string

const (
	KindNoFile     Kind = "no_file"     // nothing was selected
	KindReadFailed Kind = "read_failed" // the stream could not be read
	KindTooLarge   Kind = "too_large"   // the stream exceeded the size limit
	KindCharset    Kind = "charset"     // unsupported text encoding on an SVG upload
	KindCanceled   Kind = "canceled"    // canceled or superseded before emission
)

var (
	// ErrNoFile is wrapped by KindNoFile outcomes.
	ErrNoFile = errors.New("no file selected")

	// ErrSuperseded is wrapped by KindCanceled outcomes when a newer upload
	// for the same link replaced the decode.
	ErrSuperseded = errors.New("superseded by a newer upload")
)

// DecodeError is the failure outcome of an ingestion.
type DecodeError struct {
	Kind Kind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ingest %s", e.Kind)
	}
	return fmt.Sprintf("ingest %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or "" when err is not a DecodeError.
func KindOf(err error) Kind {
	var dErr *DecodeError
	if errors.As(err, &dErr) {
		return dErr.Kind
	}
	return ""
}

// IsNoFile reports whether err is the silent "nothing selected" outcome.
func IsNoFile(err error) bool {
	return KindOf(err) == KindNoFile
}

func decodeErr(kind Kind, err error) error {
	return &DecodeError{Kind: kind, Err: err}
}
