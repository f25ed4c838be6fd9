package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/edicat/internal/adapters/driving/tui"
)

// runProgram runs a Bubbletea model to completion. Tests replace it.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "Browse the segments of an EDI file interactively",
	Long: `Opens a full-screen viewer listing the numbered segments of FILE with
each segment tag highlighted. Use - to read standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	name := args[0]
	opts := resolveSettings(cmd).ReadOptions()

	sep, segments, err := documentService.Segments(cmd.Context(), name, opts)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(segments) == 0 {
		return fmt.Errorf("%s: no segments found", name)
	}

	app, err := tui.NewApp(tui.Document{Name: name, Separator: *sep, Segments: segments})
	if err != nil {
		return fmt.Errorf("failed to start viewer: %w", err)
	}
	return runProgram(app)
}
