// Package filesystem opens EDI inputs from local files and standard input.
package filesystem

import (
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/edicat/internal/core/ports/driven"
)

// Ensure Opener implements the interface.
var _ driven.SourceOpener = (*Opener)(nil)

// Opener opens local paths. driven.StdinName refers to its stdin reader.
type Opener struct {
	stdin io.Reader
}

// New creates an opener that reads standard input from os.Stdin.
func New() *Opener {
	return NewWithStdin(os.Stdin)
}

// NewWithStdin creates an opener with a substitute standard input.
func NewWithStdin(stdin io.Reader) *Opener {
	return &Opener{stdin: stdin}
}

// Open opens name for reading. Closing the standard input reader is a no-op.
func (o *Opener) Open(name string) (io.ReadCloser, error) {
	if name == driven.StdinName {
		return io.NopCloser(o.stdin), nil
	}
	return os.Open(resolvePath(name))
}

// resolvePath converts file:// URIs to local paths; bare paths pass through.
func resolvePath(name string) string {
	return strings.TrimPrefix(name, "file://")
}
