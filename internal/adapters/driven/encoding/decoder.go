// Package encoding resolves text encodings for segment decoding using
// golang.org/x/text.
//
// Segment boundaries are found on raw bytes, so only ASCII-compatible
// encodings give meaningful results. Decoding is lossy: bytes that are
// invalid in the chosen encoding become U+FFFD.
package encoding

import (
	"fmt"
	"strings"

	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/custodia-labs/edicat/internal/core/domain"
	"github.com/custodia-labs/edicat/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.DecoderFactory = (*Factory)(nil)

// Ensure Decoder implements the interface.
var _ driven.TextDecoder = (*Decoder)(nil)

// Decoder decodes bytes in one encoding to UTF-8.
type Decoder struct {
	name string
	enc  xenc.Encoding
}

// Name returns the canonical encoding name.
func (d *Decoder) Name() string {
	return d.name
}

// Decode converts b to a UTF-8 string, replacing invalid sequences.
func (d *Decoder) Decode(b []byte) string {
	out, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		// x/text decoders replace rather than fail; keep the bytes if one does not.
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}

// Factory resolves IANA encoding names.
type Factory struct{}

// NewFactory creates a decoder factory.
func NewFactory() *Factory {
	return &Factory{}
}

// UTF8 returns the default lossy UTF-8 decoder.
func UTF8() *Decoder {
	return &Decoder{name: domain.DefaultEncoding, enc: unicode.UTF8}
}

// Decoder returns the decoder for an IANA encoding name or alias,
// e.g. "utf-8", "latin1", "ISO-8859-1", "windows-1252".
func (f *Factory) Decoder(name string) (driven.TextDecoder, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, domain.DefaultEncoding) || strings.EqualFold(name, "utf8") {
		return UTF8(), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedEncoding, name)
	}
	// ianaindex knows some names it has no implementation for.
	if enc == nil {
		return nil, fmt.Errorf("%w: %s (no decoder available)", domain.ErrUnsupportedEncoding, name)
	}

	canonical, err := ianaindex.MIME.Name(enc)
	if err != nil {
		if canonical, err = ianaindex.IANA.Name(enc); err != nil {
			canonical = name
		}
	}
	return &Decoder{name: strings.ToLower(canonical), enc: enc}, nil
}
