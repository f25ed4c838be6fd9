package driven

// TextDecoder turns raw segment bytes into text.
// Decoding is lossy: invalid sequences are replaced, never reported.
type TextDecoder interface {
	// Name returns the canonical encoding name.
	Name() string

	// Decode converts b to a UTF-8 string.
	Decode(b []byte) string
}

// DecoderFactory resolves encoding names to decoders.
type DecoderFactory interface {
	// Decoder returns the decoder for an encoding name.
	// Unknown names yield an error wrapping domain.ErrUnsupportedEncoding.
	Decoder(name string) (TextDecoder, error)
}
