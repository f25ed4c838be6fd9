package cli

import (
	"bytes"
	"errors"
	"io"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/edicat/internal/core/domain"
)

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, isBrokenPipe(syscall.EPIPE))
	assert.True(t, isBrokenPipe(io.ErrClosedPipe))
	assert.True(t, isBrokenPipe(&wrappedErr{syscall.EPIPE}))
	assert.False(t, isBrokenPipe(nil))
	assert.False(t, isBrokenPipe(errors.New("disk full")))
}

type wrappedErr struct{ err error }

func (e *wrappedErr) Error() string { return "write /dev/stdout: " + e.err.Error() }
func (e *wrappedErr) Unwrap() error { return e.err }

func TestClassifyWriteError(t *testing.T) {
	err := classifyWriteError(syscall.EPIPE)
	assert.ErrorIs(t, err, domain.ErrOutputClosed)
	assert.ErrorIs(t, err, syscall.EPIPE)

	other := errors.New("disk full")
	assert.Equal(t, other, classifyWriteError(other))
	assert.NoError(t, classifyWriteError(nil))
}

func TestSegmentWriter_Plain(t *testing.T) {
	var buf bytes.Buffer
	w := newSegmentWriter(&buf, false)

	require.NoError(t, w.Write("a", 1, "UNH+1+ORDERS:D:96A:UN'"))
	require.NoError(t, w.Write("a", 2, "UNT+2+1'"))
	assert.Empty(t, buf.String(), "buffered until flush")

	require.NoError(t, w.Flush())
	assert.Equal(t, "UNH+1+ORDERS:D:96A:UN'\nUNT+2+1'\n", buf.String())
}

func TestSegmentWriter_LineNumbers(t *testing.T) {
	var buf bytes.Buffer
	w := newSegmentWriter(&buf, true)

	require.NoError(t, w.Write("a", 1, "ST*850*0001~"))
	require.NoError(t, w.Write("a", 123456, "SE*2*0001~"))
	require.NoError(t, w.Flush())

	assert.Equal(t, "     1\tST*850*0001~\n123456\tSE*2*0001~\n", buf.String())
}

func TestSegmentWriter_FlushesOnNewInput(t *testing.T) {
	var buf bytes.Buffer
	w := newSegmentWriter(&buf, false)

	require.NoError(t, w.Write("a", 1, "ST*850*0001~"))
	require.NoError(t, w.Write("b", 1, "UNH+1'"))

	assert.Equal(t, "ST*850*0001~\n", buf.String())
}

func TestSegmentWriter_FlushesOnRepeatedInput(t *testing.T) {
	var buf bytes.Buffer
	w := newSegmentWriter(&buf, false)

	require.NoError(t, w.Write("a.edi", 1, "ST*850*0001~"))
	require.NoError(t, w.Write("a.edi", 2, "SE*2*0001~"))
	require.NoError(t, w.Write("a.edi", 1, "ST*850*0001~"))

	assert.Equal(t, "ST*850*0001~\nSE*2*0001~\n", buf.String())
}

func TestSegmentWriter_ClosedPipe(t *testing.T) {
	w := newSegmentWriter(pipeWriter{err: syscall.EPIPE}, false)

	require.NoError(t, w.Write("a", 1, "ST*850*0001~"))
	err := w.Write("b", 1, "UNH+1'")

	assert.ErrorIs(t, err, domain.ErrOutputClosed)
	assert.ErrorIs(t, w.Flush(), domain.ErrOutputClosed)
}
