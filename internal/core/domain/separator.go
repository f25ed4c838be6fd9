package domain

import (
	"fmt"
	"strconv"
)

// Format identifies the EDI dialect a document header was classified as.
type Format string

// Supported formats.
const (
	// FormatX12 is ANSI X12, beginning with an ISA envelope.
	FormatX12 Format = "x12"

	// FormatEDIFACT is UN/EDIFACT with an explicit UNA service string advice.
	FormatEDIFACT Format = "edifact"

	// FormatEDIFACTNoUNA is UN/EDIFACT starting directly at UNB with default separators.
	FormatEDIFACTNoUNA Format = "edifact-unb"
)

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f Format) Description() string {
	switch f {
	case FormatX12:
		return "ANSI X12"
	case FormatEDIFACT:
		return "UN/EDIFACT (UNA header)"
	case FormatEDIFACTNoUNA:
		return "UN/EDIFACT (default separators)"
	default:
		return "Unknown"
	}
}

// Separator is the delimiter configuration of one document.
// It is built once by the detector and then owned by a segment reader.
//
// Release, Escape and Repetition are optional: the zero byte means the
// document does not use them.
type Separator struct {
	// Format is the dialect the header was classified as.
	Format Format

	// Element separates fields within a segment.
	Element byte

	// Segment terminates a segment.
	Segment byte

	// Subelement separates components within a field.
	Subelement byte

	// Suffix is the text between the header and the next structural segment.
	// It is preserved verbatim and never interpreted.
	Suffix string

	// Release makes a directly following segment terminator literal.
	Release byte

	// Escape is reserved; nothing reads it yet.
	Escape byte

	// Repetition marks repeated field occurrences.
	Repetition byte

	// HardWrap is set when the source carries a CRLF every 80 characters
	// purely for transmission. Such CR and LF bytes are dropped while reading.
	HardWrap bool
}

// HasRelease reports whether a release character is configured.
func (s Separator) HasRelease() bool {
	return s.Release != 0
}

// HasEscape reports whether an escape character is configured.
func (s Separator) HasEscape() bool {
	return s.Escape != 0
}

// HasRepetition reports whether a repetition separator is configured.
func (s Separator) HasRepetition() bool {
	return s.Repetition != 0
}

// Validate checks that every configured delimiter is distinct.
// Detection never calls this; a document that fails it still reads, but
// segment boundaries may not be where the author intended.
func (s Separator) Validate() error {
	seen := make(map[byte]string, 5)
	check := func(name string, b byte) error {
		if b == 0 {
			return nil
		}
		if other, ok := seen[b]; ok {
			return fmt.Errorf("%w: %s and %s are both %s",
				ErrAmbiguousSeparators, other, name, strconv.QuoteRune(rune(b)))
		}
		seen[b] = name
		return nil
	}

	for _, d := range []struct {
		name string
		b    byte
	}{
		{"element", s.Element},
		{"segment", s.Segment},
		{"subelement", s.Subelement},
		{"release", s.Release},
		{"repetition", s.Repetition},
	} {
		if err := check(d.name, d.b); err != nil {
			return err
		}
	}
	return nil
}

// FormatDelimiter renders a delimiter for display, "-" when absent.
func FormatDelimiter(b byte) string {
	if b == 0 {
		return "-"
	}
	return strconv.QuoteRune(rune(b))
}
