package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/renderwave/internal/config"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// outputFormat returns the --output flag when set, otherwise the configured
// default format.
func outputFormat(cmd *cobra.Command, cfg *config.Config) (string, error) {
	format := cfg.Output.DefaultFormat
	if cmd.Flags().Changed("output") {
		format, _ = cmd.Flags().GetString("output")
	}
	format = strings.ToLower(format)
	if !slices.Contains(config.ValidFormats(), format) {
		return "", fmt.Errorf("%w, got %q", config.ErrInvalidFormat, format)
	}
	return format, nil
}

// render writes value in the command's output format. table renders the
// human-readable form; records are the ndjson lines (value itself when nil).
func render(cmd *cobra.Command, value any, records []any, table func(w io.Writer) error) error {
	format, err := outputFormat(cmd, configFromContext(cmd.Context()))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		return renderJSON(w, value)
	case config.FormatNDJSON:
		if records == nil {
			records = []any{value}
		}
		return renderNDJSON(w, records)
	default:
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		if err = table(tw); err != nil {
			return err
		}
		return tw.Flush()
	}
}

func renderJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func renderNDJSON(w io.Writer, records []any) error {
	encoder := json.NewEncoder(w)
	for _, r := range records {
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("encoding NDJSON: %w", err)
		}
	}
	return nil
}

// formatPixels renders a pixel offset with thousands separators.
func formatPixels(px int) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d px", px)
}

// formatIndexes renders an index list for table output.
func formatIndexes(indexes []int) string {
	if len(indexes) == 0 {
		return "(none)"
	}
	parts := make([]string, len(indexes))
	for i, v := range indexes {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
