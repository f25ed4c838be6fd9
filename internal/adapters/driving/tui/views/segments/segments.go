// Package segments provides the scrolling segment list for the viewer.
package segments

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/edicat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/edicat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/edicat/internal/core/domain"
)

// headerLines is the number of rows taken by the title, summary and rule.
const headerLines = 4

// View is a scrollable list of numbered segments.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap

	name     string
	sep      domain.Separator
	segments []string

	scrollOffset int
	width        int
	height       int
	reserved     int
}

// NewView creates a segment list for one document.
func NewView(s *styles.Styles, km *keymap.KeyMap, name string, sep domain.Separator, segments []string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keys:     km,
		name:     name,
		sep:      sep,
		segments: segments,
	}
}

// Update handles scrolling keys.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	k := keyMsg.String()
	switch {
	case keymap.Matches(k, v.keys.Up):
		v.scrollTo(v.scrollOffset - 1)
	case keymap.Matches(k, v.keys.Down):
		v.scrollTo(v.scrollOffset + 1)
	case keymap.Matches(k, v.keys.PageUp):
		v.scrollTo(v.scrollOffset - v.visibleLines())
	case keymap.Matches(k, v.keys.PageDown):
		v.scrollTo(v.scrollOffset + v.visibleLines())
	case keymap.Matches(k, v.keys.Top):
		v.scrollTo(0)
	case keymap.Matches(k, v.keys.Bottom):
		v.scrollTo(v.maxScrollOffset())
	}
	return v, nil
}

func (v *View) scrollTo(offset int) {
	v.scrollOffset = max(0, min(offset, v.maxScrollOffset()))
}

// visibleLines returns the number of segments that fit on screen.
func (v *View) visibleLines() int {
	return max(1, v.height-headerLines-v.reserved)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(0, len(v.segments)-v.visibleLines())
}

// View renders the header and the visible segments.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.name))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render(v.summary()))
	b.WriteString("\n")
	if err := v.sep.Validate(); err != nil {
		b.WriteString(v.styles.Warning.Render("warning: " + err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Rule.Render(strings.Repeat("─", max(1, min(v.width, 80)))))
	b.WriteString("\n")

	if len(v.segments) == 0 {
		b.WriteString(v.styles.Muted.Render("(No segments)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(v.scrollOffset+v.visibleLines(), len(v.segments))
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderSegment(i))
		b.WriteString("\n")
	}
	return b.String()
}

// renderSegment renders one numbered segment with its tag highlighted.
func (v *View) renderSegment(i int) string {
	segment := v.segments[i]
	tag, rest := SplitTag(segment, v.sep.Element)

	line := v.styles.LineNumber.Render(strconv.Itoa(i+1)) +
		v.styles.Tag.Render(tag) +
		v.styles.Normal.Render(rest)
	if v.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(v.width).Render(line)
	}
	return line
}

func (v *View) summary() string {
	return fmt.Sprintf("%s  element %s  segment %s  subelement %s  release %s  repetition %s",
		v.sep.Format.Description(),
		domain.FormatDelimiter(v.sep.Element),
		domain.FormatDelimiter(v.sep.Segment),
		domain.FormatDelimiter(v.sep.Subelement),
		domain.FormatDelimiter(v.sep.Release),
		domain.FormatDelimiter(v.sep.Repetition))
}

// Position describes the visible range, e.g. "Segments 1-20 of 57".
func (v *View) Position() string {
	if len(v.segments) == 0 {
		return "No segments"
	}
	end := min(v.scrollOffset+v.visibleLines(), len(v.segments))
	return fmt.Sprintf("Segments %d-%d of %d", v.scrollOffset+1, end, len(v.segments))
}

// SetDimensions sets the view dimensions. reserved rows are kept free for
// the footer drawn by the caller.
func (v *View) SetDimensions(width, height, reserved int) {
	v.width = width
	v.height = height
	v.reserved = reserved
	v.scrollTo(v.scrollOffset)
}

// ScrollOffset returns the index of the first visible segment.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Len returns the number of segments.
func (v *View) Len() int {
	return len(v.segments)
}

// SplitTag splits a segment at its first element separator. The tag is the
// whole segment when it has no elements.
func SplitTag(segment string, element byte) (tag, rest string) {
	if element == 0 {
		return segment, ""
	}
	if i := strings.IndexByte(segment, element); i >= 0 {
		return segment[:i], segment[i:]
	}
	return segment, ""
}
