package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/renderwave/internal/wave"
)

// visibleResult is the JSON form of a visible command result.
type visibleResult struct {
	Start   int   `json:"start"`
	End     int   `json:"end"`
	Visible []int `json:"visible"`
}

// NewVisibleCmd creates the visible command, which filters revealed indexes
// to the half-open window [start, end).
func NewVisibleCmd() *cobra.Command {
	var (
		start    int
		end      int
		revealed []int
	)

	cmd := &cobra.Command{
		Use:   "visible",
		Short: "Filter revealed indexes to a window",
		Long: `Prints the revealed indexes that fall inside the half-open window [start, end),
in the order they were given. An empty window (start >= end) yields no indexes.`,
		Example: `  # Indexes 5 and 6 are inside [3, 7)
  renderwave visible --start 3 --end 7 --revealed 1,5,6,9`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if start < 0 || end < 0 {
				return fmt.Errorf("start and end must be >= 0, got %d and %d", start, end)
			}
			return runVisible(cmd, start, end, revealed)
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "first index of the window (inclusive)")
	cmd.Flags().IntVar(&end, "end", 0, "end of the window (exclusive)")
	cmd.Flags().IntSliceVar(&revealed, "revealed", nil, "revealed indexes, comma separated")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runVisible(cmd *cobra.Command, start, end int, revealed []int) error {
	visible := wave.VisibleIndexes(start, end, revealed)
	logger.Debug().Ctx(cmd.Context()).
		Int("start", start).
		Int("end", end).
		Int("revealed", len(revealed)).
		Int("visible", len(visible)).
		Msg("visible indexes computed")

	res := visibleResult{Start: start, End: end, Visible: visible}
	return render(cmd, res, nil, func(w io.Writer) error {
		fmt.Fprintf(w, "Window:\t[%d, %d)\n", start, end)
		fmt.Fprintf(w, "Visible:\t%s\n", formatIndexes(visible))
		return nil
	})
}
