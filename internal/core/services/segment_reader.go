package services

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/custodia-labs/edicat/internal/core/domain"
	"github.com/custodia-labs/edicat/internal/core/ports/driven"
	"github.com/custodia-labs/edicat/internal/logger"
)

const initialSegmentCapacity = 1024

// ReaderOption configures a SegmentReader.
type ReaderOption func(*SegmentReader)

// WithDecoder sets the decoder used to turn segment bytes into text.
func WithDecoder(dec driven.TextDecoder) ReaderOption {
	return func(r *SegmentReader) {
		if dec != nil {
			r.decoder = dec
		}
	}
}

// SegmentReader splits a byte stream into trimmed segments.
//
// It is a single-pass, pull-based sequence: each call to Next reads bytes
// until the next unescaped segment terminator or the end of input. Only one
// segment is buffered at a time. A SegmentReader owns its source and must not
// be shared between goroutines.
type SegmentReader struct {
	src     *bufio.Reader
	sep     domain.Separator
	decoder driven.TextDecoder
	buf     []byte
	done    bool
	err     error
}

// NewSegmentReader creates a reader over r using the separators in sep.
func NewSegmentReader(r io.Reader, sep domain.Separator, opts ...ReaderOption) *SegmentReader {
	sr := &SegmentReader{
		src:     bufio.NewReader(r),
		sep:     sep,
		decoder: lossyUTF8{},
		buf:     make([]byte, 0, initialSegmentCapacity),
	}
	for _, opt := range opts {
		opt(sr)
	}
	return sr
}

// Separator returns the separators this reader splits on.
func (r *SegmentReader) Separator() domain.Separator {
	return r.sep
}

// Next returns the next segment. The second result is false once the input
// is exhausted; from then on every call returns false.
//
// A read error ends the sequence exactly like end of input, except that the
// partially buffered segment is dropped. Err reports it afterwards.
func (r *SegmentReader) Next() (string, bool) {
	if r.done {
		return "", false
	}

	for {
		b, err := r.src.ReadByte()
		if err != nil {
			r.done = true
			if !errors.Is(err, io.EOF) {
				r.err = err
				logger.Warn("read failed, ending segment stream: %v", err)
				r.buf = r.buf[:0]
				return "", false
			}
			if len(r.buf) == 0 {
				return "", false
			}
			line := r.take()
			return line, line != ""
		}

		if r.sep.HardWrap && (b == '\r' || b == '\n') {
			continue
		}

		r.buf = append(r.buf, b)

		if b != r.sep.Segment || r.escaped() {
			continue
		}
		if line := r.take(); line != "" {
			return line, true
		}
	}
}

// All returns the remaining segments as a sequence. Breaking out of the loop
// early is safe; the next All or Next call resumes where it stopped.
func (r *SegmentReader) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, ok := r.Next()
			if !ok || !yield(line) {
				return
			}
		}
	}
}

// Err returns the read error that ended the sequence, or nil after a clean
// end of input.
func (r *SegmentReader) Err() error {
	return r.err
}

// escaped reports whether the terminator just appended is preceded by the
// release character.
func (r *SegmentReader) escaped() bool {
	n := len(r.buf)
	return r.sep.HasRelease() && n >= 2 && r.buf[n-2] == r.sep.Release
}

// take decodes and trims the buffer, then resets it.
func (r *SegmentReader) take() string {
	line := strings.TrimSpace(r.decoder.Decode(r.buf))
	r.buf = r.buf[:0]
	return line
}

// ReadString detects the separators of a complete in-memory document and
// returns a reader over it.
func (d *Detector) ReadString(text string, opts ...ReaderOption) (*SegmentReader, error) {
	sep, err := d.Detect(text)
	if err != nil {
		return nil, err
	}
	return NewSegmentReader(strings.NewReader(text), *sep, opts...), nil
}

// Read detects separators from peek, a prefix of the document, and returns a
// reader over src. src must still yield the peeked bytes. name identifies the
// input in the skip diagnostic.
func (d *Detector) Read(src io.Reader, peek, name string, opts ...ReaderOption) (*SegmentReader, error) {
	sep, err := d.Detect(peek)
	if err != nil {
		d.diag("Skipping..." + name)
		return nil, err
	}
	return NewSegmentReader(src, *sep, opts...), nil
}

// lossyUTF8 is the decoder used when none is configured.
type lossyUTF8 struct{}

func (lossyUTF8) Name() string { return domain.DefaultEncoding }

func (lossyUTF8) Decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
