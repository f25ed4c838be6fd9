package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/edicat/internal/core/domain"
	"github.com/custodia-labs/edicat/internal/logger"
)

// X12 ISA header layout. The ISA segment has 16 fixed-width elements, so the
// element separator sits at known offsets; 103 is the one that defines it.
const (
	isaTag            = "ISA"
	isaMinLength      = 110
	isaHeaderLength   = 106
	isaElementOffset  = 103
	isaSubelemOffset  = 104
	isaSegmentOffset  = 105
	isaRepeatOffset   = 82
	isaRepeatNotUsed  = 'U'
	isaNextSegmentTag = "GS"
	isaExample        = "ISA*00*          *00*          *ZZ*SOMEBODYELSE   *ZZ*MAYBEYOU       *171231*2359*U*00401*000012345*0*P*:~"
)

var isaElementOffsets = [...]int{3, 6, 17, 20, 31, 34, 50, 53, 69, 76, 81, 83, 89, 99, 101, 103}

// EDIFACT UNA service string advice layout.
const (
	unaTag             = "UNA"
	unbTag             = "UNB"
	unPrefix           = "UN"
	edifactMinLength   = 13
	unaSubelemOffset   = 3
	unaElementOffset   = 4
	unaReleaseOffset   = 6
	unaRepeatOffset    = 7
	unaSegmentOffset   = 8
	unaAdviceLength    = 9
	unaRepeatNotUsed   = ' '
	edifactDefElement  = '+'
	edifactDefSubelem  = ':'
	edifactDefSegment  = '\''
	edifactDefRelease  = '?'
	edifactDefRepeater = '*'
)

// Hard wrapped transmissions carry CRLF after every 80 data characters.
const hardWrapMinLength = 246

var hardWrapOffsets = [...]int{80, 162, 244}

// notEDIPreviewLength is how much of an unrecognised input a diagnostic shows.
const notEDIPreviewLength = 8

// DiagnosticFunc receives one human-readable diagnostic line.
type DiagnosticFunc func(msg string)

// Detector classifies EDI headers and extracts their separators.
// Failures are reported through the diagnostic callback and never abort a run.
type Detector struct {
	diag DiagnosticFunc
}

// NewDetector creates a detector. A nil diag discards diagnostics.
func NewDetector(diag DiagnosticFunc) *Detector {
	if diag == nil {
		diag = func(string) {}
	}
	return &Detector{diag: diag}
}

// Detect classifies text, which must contain at least the document header,
// and returns its separators. The text is indexed as bytes.
//
// On failure the returned error is a *domain.HeaderError wrapping
// domain.ErrInvalidHeader or domain.ErrNotEDI.
func (d *Detector) Detect(text string) (*domain.Separator, error) {
	if strings.HasPrefix(text, isaTag) && len(text) >= isaMinLength {
		return d.detectX12(text)
	}

	if strings.HasPrefix(text, unaTag) && len(text) >= edifactMinLength {
		if pos := strings.Index(text[3:edifactMinLength], unPrefix); pos >= 0 {
			return d.detectEDIFACT(text, pos+3), nil
		}
	}

	if strings.HasPrefix(text, unbTag) && len(text) >= edifactMinLength {
		if strings.Contains(text[3:edifactMinLength], unPrefix) {
			return d.detectEDIFACTNoUNA(text), nil
		}
	}

	received := head(text, notEDIPreviewLength)
	d.diag(fmt.Sprintf("Found something that doesn't look like EDI: %q", received))
	return nil, &domain.HeaderError{Received: received, Err: domain.ErrNotEDI}
}

func (d *Detector) detectX12(text string) (*domain.Separator, error) {
	if !strings.Contains(text[isaHeaderLength:isaMinLength], isaNextSegmentTag) {
		return nil, d.x12Error(text)
	}

	first := text[isaElementOffsets[0]]
	for _, pos := range isaElementOffsets {
		if pos >= len(text) || text[pos] != first {
			return nil, d.x12Error(text)
		}
	}

	gs := strings.Index(text[isaHeaderLength:], isaNextSegmentTag)
	if gs < 0 {
		gs = 0
	}

	sep := &domain.Separator{
		Format:     domain.FormatX12,
		Element:    text[isaElementOffset],
		Subelement: text[isaSubelemOffset],
		Segment:    text[isaSegmentOffset],
		Suffix:     text[isaHeaderLength : isaHeaderLength+gs],
	}
	if rep := text[isaRepeatOffset]; rep != isaRepeatNotUsed {
		sep.Repetition = rep
	}

	detectHardWrap(text, sep)
	logger.Debug("detected %s: element=%q segment=%q subelement=%q hard_wrap=%t",
		sep.Format, sep.Element, sep.Segment, sep.Subelement, sep.HardWrap)
	return sep, nil
}

func (d *Detector) x12Error(text string) error {
	received := head(text, isaHeaderLength)
	d.diag("Invalid X12 ISA Header (expected 16 fixed width fields, 106 characters wide)")
	d.diag("Expected: " + isaExample)
	d.diag("Received: " + received)
	return &domain.HeaderError{
		Format:   domain.FormatX12,
		Expected: isaExample,
		Received: received,
		Err:      domain.ErrInvalidHeader,
	}
}

// detectEDIFACT reads the separators from the UNA advice; un is the offset of
// the following UNB or UNG segment.
func (d *Detector) detectEDIFACT(text string, un int) *domain.Separator {
	sep := &domain.Separator{
		Format:     domain.FormatEDIFACT,
		Subelement: text[unaSubelemOffset],
		Element:    text[unaElementOffset],
		Release:    text[unaReleaseOffset],
		Segment:    text[unaSegmentOffset],
	}
	if un > unaAdviceLength {
		sep.Suffix = text[unaAdviceLength:un]
	}
	if rep := text[unaRepeatOffset]; rep != unaRepeatNotUsed {
		sep.Repetition = rep
	}

	detectHardWrap(text, sep)
	logger.Debug("detected %s: element=%q segment=%q subelement=%q release=%q hard_wrap=%t",
		sep.Format, sep.Element, sep.Segment, sep.Subelement, sep.Release, sep.HardWrap)
	return sep
}

func (d *Detector) detectEDIFACTNoUNA(text string) *domain.Separator {
	sep := &domain.Separator{
		Format:     domain.FormatEDIFACTNoUNA,
		Element:    edifactDefElement,
		Subelement: edifactDefSubelem,
		Segment:    edifactDefSegment,
		Release:    edifactDefRelease,
		Repetition: edifactDefRepeater,
	}

	// Suffix runs from the first terminator to the next UN segment.
	if end := strings.IndexByte(text, edifactDefSegment); end >= 0 {
		rest := text[end+1:]
		if un := strings.Index(rest, unPrefix); un >= 0 {
			sep.Suffix = rest[:un]
		}
	}

	detectHardWrap(text, sep)
	logger.Debug("detected %s with default separators, hard_wrap=%t", sep.Format, sep.HardWrap)
	return sep
}

func detectHardWrap(text string, sep *domain.Separator) {
	if len(text) < hardWrapMinLength {
		return
	}
	for _, pos := range hardWrapOffsets {
		if text[pos] != '\r' || text[pos+1] != '\n' {
			return
		}
	}
	sep.HardWrap = true
}

func head(text string, n int) string {
	if len(text) < n {
		return text
	}
	return text[:n]
}
