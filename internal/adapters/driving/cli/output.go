package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"syscall"

	"github.com/custodia-labs/edicat/internal/core/domain"
)

// isBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers like `head` close early.
func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// classifyWriteError maps a closed downstream to domain.ErrOutputClosed.
func classifyWriteError(err error) error {
	if isBrokenPipe(err) {
		return fmt.Errorf("%w: %w", domain.ErrOutputClosed, err)
	}
	return err
}

// segmentWriter formats segments onto a buffered output, one per line.
// The buffer is flushed whenever a new input starts.
type segmentWriter struct {
	w           *bufio.Writer
	lineNumbers bool
}

func newSegmentWriter(w io.Writer, lineNumbers bool) *segmentWriter {
	return &segmentWriter{w: bufio.NewWriter(w), lineNumbers: lineNumbers}
}

// Write emits segment n of the current input. n restarts at 1 for every
// input, including a repeated one.
func (s *segmentWriter) Write(_ string, n int, segment string) error {
	if n == 1 {
		if err := s.Flush(); err != nil {
			return err
		}
	}

	var err error
	if s.lineNumbers {
		_, err = fmt.Fprintf(s.w, "%6d\t%s\n", n, segment)
	} else {
		_, err = s.w.WriteString(segment + "\n")
	}
	return classifyWriteError(err)
}

// Flush writes any buffered output.
func (s *segmentWriter) Flush() error {
	return classifyWriteError(s.w.Flush())
}
