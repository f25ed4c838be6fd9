package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/edicat/internal/core/domain"
	"github.com/custodia-labs/edicat/internal/core/ports/driven"
)

var detectJSON bool

var detectCmd = &cobra.Command{
	Use:   "detect [filenames...]",
	Short: "Show the separators detected in EDI files",
	Long: `Reads the header of each file and prints the detected format and
separators without printing any segments. With no filenames, standard input
is read.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(detectCmd)
}

// detectResult is the JSON form of one detection.
type detectResult struct {
	Name       string `json:"name"`
	Format     string `json:"format,omitempty"`
	Element    string `json:"element,omitempty"`
	Segment    string `json:"segment,omitempty"`
	Subelement string `json:"subelement,omitempty"`
	Release    string `json:"release,omitempty"`
	Repetition string `json:"repetition,omitempty"`
	HardWrap   bool   `json:"hard_wrap"`
	Suffix     string `json:"suffix"`
	Warning    string `json:"warning,omitempty"`
	Error      string `json:"error,omitempty"`

	sep *domain.Separator
}

func runDetect(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	names := args
	if len(names) == 0 {
		names = []string{driven.StdinName}
	}

	opts := resolveSettings(cmd).ReadOptions()
	results := make([]detectResult, 0, len(names))
	failed := false

	for _, name := range names {
		sep, err := documentService.Detect(cmd.Context(), name, opts)
		if err != nil {
			failed = true
			var headerErr *domain.HeaderError
			if !errors.As(err, &headerErr) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error processing %s: %v\n", name, err)
			}
			results = append(results, detectResult{Name: name, Error: err.Error()})
			continue
		}
		results = append(results, newDetectResult(name, sep))
	}

	if detectJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		for i := range results {
			if results[i].Error == "" {
				printDetectResult(cmd, &results[i])
			}
		}
	}

	if failed {
		return errReported
	}
	return nil
}

func newDetectResult(name string, sep *domain.Separator) detectResult {
	r := detectResult{
		Name:       name,
		Format:     sep.Format.String(),
		Element:    delimiterText(sep.Element),
		Segment:    delimiterText(sep.Segment),
		Subelement: delimiterText(sep.Subelement),
		Release:    delimiterText(sep.Release),
		Repetition: delimiterText(sep.Repetition),
		HardWrap:   sep.HardWrap,
		Suffix:     sep.Suffix,
		sep:        sep,
	}
	if err := sep.Validate(); err != nil {
		r.Warning = err.Error()
	}
	return r
}

// delimiterText is the JSON form of a delimiter, empty when absent.
// Bytes outside ASCII are written as a \xNN escape.
func delimiterText(b byte) string {
	switch {
	case b == 0:
		return ""
	case b >= utf8.RuneSelf:
		return fmt.Sprintf("\\x%02x", b)
	default:
		return string(rune(b))
	}
}

func printDetectResult(cmd *cobra.Command, r *detectResult) {
	sep, out := r.sep, cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", r.Name, sep.Format.Description())
	fmt.Fprintf(out, "  element:    %s\n", domain.FormatDelimiter(sep.Element))
	fmt.Fprintf(out, "  segment:    %s\n", domain.FormatDelimiter(sep.Segment))
	fmt.Fprintf(out, "  subelement: %s\n", domain.FormatDelimiter(sep.Subelement))
	fmt.Fprintf(out, "  release:    %s\n", domain.FormatDelimiter(sep.Release))
	fmt.Fprintf(out, "  repetition: %s\n", domain.FormatDelimiter(sep.Repetition))
	fmt.Fprintf(out, "  hard wrap:  %t\n", sep.HardWrap)
	fmt.Fprintf(out, "  suffix:     %q\n", sep.Suffix)
	if r.Warning != "" {
		fmt.Fprintf(out, "  warning:    %s\n", r.Warning)
	}
}
