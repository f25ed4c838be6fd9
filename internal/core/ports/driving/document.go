package driving

import (
	"context"

	"github.com/custodia-labs/edicat/internal/core/domain"
)

// EmitFunc receives one segment of input name. n is the 1-based index of the
// segment within that input. Returning an error wrapping domain.ErrOutputClosed
// stops the whole run; any other error fails the current input.
type EmitFunc func(name string, n int, segment string) error

// DocumentService reads EDI documents segment by segment.
type DocumentService interface {
	// Detect opens name, peeks at its header and returns the detected separators.
	Detect(ctx context.Context, name string, opts domain.ReadOptions) (*domain.Separator, error)

	// Cat reads each input in order and passes every segment to emit.
	// An empty names slice reads standard input.
	Cat(ctx context.Context, names []string, opts domain.ReadOptions, emit EmitFunc) *domain.CatReport

	// Segments reads a whole document into memory.
	Segments(ctx context.Context, name string, opts domain.ReadOptions) (*domain.Separator, []string, error)
}
