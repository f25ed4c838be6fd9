package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotEDI", ErrNotEDI},
		{"ErrInvalidHeader", ErrInvalidHeader},
		{"ErrAmbiguousSeparators", ErrAmbiguousSeparators},
		{"ErrOutputClosed", ErrOutputClosed},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnknownSetting", ErrUnknownSetting},
		{"ErrUnsupportedEncoding", ErrUnsupportedEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestHeaderError_WithFormat(t *testing.T) {
	err := &HeaderError{
		Format:   FormatX12,
		Expected: "ISA*00*...",
		Received: "ISA*00*short",
		Err:      ErrInvalidHeader,
	}

	assert.Equal(t, `invalid EDI header: ANSI X12 header "ISA*00*short"`, err.Error())
	assert.True(t, errors.Is(err, ErrInvalidHeader))
	assert.False(t, errors.Is(err, ErrNotEDI))
}

func TestHeaderError_NotEDI(t *testing.T) {
	err := &HeaderError{Received: "<?xml ve", Err: ErrNotEDI}

	assert.Equal(t, `not an EDI document: "<?xml ve"`, err.Error())
	assert.True(t, errors.Is(err, ErrNotEDI))
}

func TestHeaderError_As(t *testing.T) {
	var wrapped error = &HeaderError{Received: "hello", Err: ErrNotEDI}

	var headerErr *HeaderError
	assert.True(t, errors.As(wrapped, &headerErr))
	assert.Equal(t, "hello", headerErr.Received)
}
