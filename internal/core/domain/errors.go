package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent failures of the detection and reading logic.
// These are distinct from infrastructure errors.
var (
	// ErrNotEDI indicates the input matches none of the known header shapes.
	ErrNotEDI = errors.New("not an EDI document")

	// ErrInvalidHeader indicates a recognised header with inconsistent contents.
	ErrInvalidHeader = errors.New("invalid EDI header")

	// ErrAmbiguousSeparators indicates two delimiters share the same character.
	ErrAmbiguousSeparators = errors.New("ambiguous separators")

	// ErrOutputClosed indicates the downstream consumer went away (e.g. a closed pipe).
	// Runs stop early but are not considered failed.
	ErrOutputClosed = errors.New("output closed")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Settings Errors.

	// ErrUnknownSetting indicates a settings key that does not exist.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrUnsupportedEncoding indicates a text encoding name that cannot be decoded.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// HeaderError describes why a document header could not be classified.
type HeaderError struct {
	// Format is the dialect the header claimed to be, empty if none.
	Format Format

	// Expected is a sample of a well-formed header, if one applies.
	Expected string

	// Received is the leading text actually seen.
	Received string

	// Err is ErrInvalidHeader or ErrNotEDI.
	Err error
}

func (e *HeaderError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("%s: %s header %q", e.Err, e.Format.Description(), e.Received)
	}
	return fmt.Sprintf("%s: %q", e.Err, e.Received)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}
