// Package tui provides the interactive segment viewer built on Bubbletea.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/edicat/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/edicat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/edicat/internal/adapters/driving/tui/views/segments"
	"github.com/custodia-labs/edicat/internal/core/domain"
)

// Document is what the viewer displays.
type Document struct {
	Name      string
	Separator domain.Separator
	Segments  []string
}

// App is the viewer application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	help   help.Model

	// segmentsView is the scrolling segment list.
	segmentsView *segments.View

	width  int
	height int

	// ready indicates a window size has been received.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a viewer for doc.
func NewApp(doc Document) (*App, error) {
	if doc.Segments == nil {
		return nil, ErrNoSegments
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.Styles.ShortKey = s.Help
	h.Styles.ShortDesc = s.Muted
	h.Styles.FullKey = s.Help
	h.Styles.FullDesc = s.Muted

	return &App{
		styles:       s,
		keys:         km,
		help:         h,
		segmentsView: segments.NewView(s, km, doc.Name, doc.Separator, doc.Segments),
	}, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("edicat")
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch k := msg.String(); {
		case keymap.Matches(k, a.keys.Quit):
			return a, tea.Quit
		case keymap.Matches(k, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			a.layout()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.segmentsView, cmd = a.segmentsView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.segmentsView.View())
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render(a.segmentsView.Position()))
	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

// SetDimensions sets the terminal size.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.layout()
}

// layout reserves room for the position line and the help footer.
func (a *App) layout() {
	footer := 3
	if a.help.ShowAll {
		footer += len(a.keys.FullHelp()[0])
	}
	a.segmentsView.SetDimensions(a.width, a.height, footer)
}

// ShowingFullHelp reports whether the expanded help is visible.
func (a *App) ShowingFullHelp() bool {
	return a.help.ShowAll
}

// ScrollOffset returns the index of the first visible segment.
func (a *App) ScrollOffset() int {
	return a.segmentsView.ScrollOffset()
}
