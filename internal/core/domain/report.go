package domain

// FileReport is the outcome of reading one input.
type FileReport struct {
	// Name is the input as given ("-" for standard input).
	Name string

	// Format is the detected dialect, empty when detection failed.
	Format Format

	// Segments is the number of segments emitted.
	Segments int

	// Skipped is set when the input was not recognised as EDI.
	Skipped bool

	// Err is an open, peek or write failure.
	Err error

	// ReadErr is a mid-stream read failure. The reader treats it as end of input,
	// so output for this input may be truncated.
	ReadErr error

	// Interrupted is set when the output closed while this input was being written.
	Interrupted bool
}

// Failed reports whether this input counts as a failure.
// In strict mode a mid-stream read error also counts.
func (r FileReport) Failed(strict bool) bool {
	if r.Interrupted {
		return false
	}
	if r.Err != nil || r.Segments == 0 {
		return true
	}
	return strict && r.ReadErr != nil
}

// CatReport is the outcome of a concatenation run.
type CatReport struct {
	// Files holds one report per processed input, in order.
	Files []FileReport

	// Stopped is set when the output was closed before all inputs were read.
	Stopped bool
}

// Failed reports whether any processed input failed.
func (r *CatReport) Failed(strict bool) bool {
	for i := range r.Files {
		if r.Files[i].Failed(strict) {
			return true
		}
	}
	return false
}

// Total returns the number of segments emitted across all inputs.
func (r *CatReport) Total() int {
	total := 0
	for i := range r.Files {
		total += r.Files[i].Segments
	}
	return total
}
