package domain

// Setting limits.
const (
	// DefaultPeekSize is how many leading bytes are read ahead for detection.
	DefaultPeekSize = 512

	// MinPeekSize covers the X12 header and the third hard-wrap CRLF.
	MinPeekSize = 246

	// DefaultEncoding is the text encoding used to decode segments.
	DefaultEncoding = "utf-8"
)

// Settings keys, in dot notation as stored in the config file.
const (
	SettingLineNumbers = "output.line_numbers"
	SettingPeekSize    = "input.peek_size"
	SettingEncoding    = "input.encoding"
	SettingStrict      = "input.strict"
)

// OutputSettings controls how segments are written.
type OutputSettings struct {
	// LineNumbers prefixes each segment with its 1-based index.
	LineNumbers bool
}

// InputSettings controls how inputs are read.
type InputSettings struct {
	// PeekSize is the detection prefix length in bytes.
	PeekSize int

	// Encoding is the IANA name of the text encoding of the input.
	Encoding string

	// Strict reports mid-stream read errors instead of treating them as end of input.
	Strict bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Output holds output formatting settings.
	Output OutputSettings

	// Input holds input handling settings.
	Input InputSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Output: OutputSettings{
			LineNumbers: false,
		},
		Input: InputSettings{
			PeekSize: DefaultPeekSize,
			Encoding: DefaultEncoding,
			Strict:   false,
		},
	}
}

// ReadOptions returns the reading options implied by these settings.
func (s AppSettings) ReadOptions() ReadOptions {
	return ReadOptions{
		PeekSize: s.Input.PeekSize,
		Encoding: s.Input.Encoding,
	}
}

// ReadOptions configures how a document service opens and reads inputs.
type ReadOptions struct {
	// PeekSize is the detection prefix length. Values below MinPeekSize are raised to it.
	PeekSize int

	// Encoding names the decoder used for segment text. Empty means DefaultEncoding.
	Encoding string
}

// Normalised returns a copy with defaults and floors applied.
func (o ReadOptions) Normalised() ReadOptions {
	if o.PeekSize <= 0 {
		o.PeekSize = DefaultPeekSize
	}
	if o.PeekSize < MinPeekSize {
		o.PeekSize = MinPeekSize
	}
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	return o
}
