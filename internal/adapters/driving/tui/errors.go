package tui

import "errors"

// ErrNoSegments is returned when the viewer is given no segment list.
var ErrNoSegments = errors.New("tui: document has no segments")
