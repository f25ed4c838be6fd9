// Package cli implements the edicat command tree with cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/edicat/internal/core/domain"
	"github.com/custodia-labs/edicat/internal/core/ports/driving"
	"github.com/custodia-labs/edicat/internal/logger"
)

// version is set by Execute.
var version = "dev"

// Services wired in by main.
var (
	documentService driving.DocumentService
	settingsService driving.SettingsService
	configPath      string
)

// stdinIsTerminal reports whether standard input is interactive.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// errReported marks a failure whose details were already written to stderr.
// The process exits non-zero without printing it again.
var errReported = errors.New("failure already reported")

var (
	verbose        bool
	catLineNumbers bool
	catEncoding    string
	catPeekSize    int
	catStrict      bool
)

var rootCmd = &cobra.Command{
	Use:   "edicat [filenames...]",
	Short: "Print and concatenate EDI",
	Long: `Print and concatenate EDI documents, one segment per line.

Supports ANSI X12 (ISA) and UN/EDIFACT (UNA or UNB) documents. Separators are
detected from each document's header. With no filenames, or when a filename
is -, standard input is read.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetVerbose(verbose)
	},
	RunE: runCat,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug information to stderr")
	rootCmd.PersistentFlags().StringVar(&catEncoding, "encoding", "",
		"text encoding of the input (default from settings)")
	rootCmd.PersistentFlags().IntVar(&catPeekSize, "peek-size", 0,
		"bytes read ahead for format detection (default from settings)")

	rootCmd.Flags().BoolVarP(&catLineNumbers, "lineno", "n", false, "number the output lines, starting at 1")
	rootCmd.Flags().BoolVar(&catStrict, "strict", false, "treat read errors as failures instead of end of input")
}

// Services holds the core services the commands call.
type Services struct {
	Document   driving.DocumentService
	Settings   driving.SettingsService
	ConfigPath string
}

// SetServices wires the core services into the command tree.
func SetServices(s Services) {
	documentService = s.Document
	settingsService = s.Settings
	configPath = s.ConfigPath
}

// Execute runs the command tree and returns the process exit code.
// Cancelling ctx stops between segments.
func Execute(ctx context.Context, v string) int {
	version = v
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func runCat(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if len(args) == 0 && stdinIsTerminal() {
		_ = cmd.Help()
		return errReported
	}

	settings := resolveSettings(cmd)
	out := newSegmentWriter(cmd.OutOrStdout(), settings.Output.LineNumbers)

	report := documentService.Cat(cmd.Context(), args, settings.ReadOptions(), out.Write)
	if err := out.Flush(); err != nil && !errors.Is(err, domain.ErrOutputClosed) {
		// A failing writer keeps returning the error an input may already carry.
		if !reportedWriteError(report, err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error writing output: %v\n", err)
		}
		return errReported
	}

	for _, f := range report.Files {
		if f.ReadErr == nil {
			continue
		}
		if settings.Input.Strict {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", f.Name, f.ReadErr)
		} else {
			logger.Warn("%s: output truncated by read error: %v", f.Name, f.ReadErr)
		}
	}

	if report.Failed(settings.Input.Strict) {
		return errReported
	}
	return nil
}

// reportedWriteError reports whether an input already failed with err.
func reportedWriteError(report *domain.CatReport, err error) bool {
	return slices.ContainsFunc(report.Files, func(f domain.FileReport) bool {
		return f.Err != nil && errors.Is(f.Err, err)
	})
}

// resolveSettings loads persisted settings and applies any flags that were set.
func resolveSettings(cmd *cobra.Command) domain.AppSettings {
	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		stored, err := settingsService.Get()
		if err != nil {
			logger.Warn("using default settings: %v", err)
		} else {
			settings = *stored
		}
	}

	flags := cmd.Flags()
	if flags.Changed("lineno") {
		settings.Output.LineNumbers = catLineNumbers
	}
	if flags.Changed("encoding") {
		settings.Input.Encoding = catEncoding
	}
	if flags.Changed("peek-size") {
		settings.Input.PeekSize = catPeekSize
	}
	if flags.Changed("strict") {
		settings.Input.Strict = catStrict
	}
	return settings
}
