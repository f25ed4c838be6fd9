package driven

import "io"

// StdinName is the input name that refers to standard input.
const StdinName = "-"

// SourceOpener opens inputs by name.
type SourceOpener interface {
	// Open returns a reader for name. StdinName refers to standard input;
	// closing it must not close the process's standard input.
	Open(name string) (io.ReadCloser, error)
}
