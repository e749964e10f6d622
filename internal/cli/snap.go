package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/renderwave/internal/wave"
)

// snapResult is the JSON form of a snap command result.
type snapResult struct {
	ScrollTop  int `json:"scroll_top"`
	ItemHeight int `json:"item_height"`
	BatchSize  int `json:"batch_size"`
	Offset     int `json:"offset"`
	BatchIndex int `json:"batch_index"`
}

// NewSnapCmd creates the snap command, which rounds a scroll offset to the
// nearest batch boundary.
func NewSnapCmd() *cobra.Command {
	var (
		scrollTop  int
		itemHeight int
		batchSize  int
	)

	cmd := &cobra.Command{
		Use:   "snap",
		Short: "Snap a scroll offset to the nearest batch boundary",
		Long: `Rounds a pixel scroll offset to the nearest multiple of item-height * batch-size,
rounding halves up. Item height and batch size default to the configured list geometry.`,
		Example: `  # 130px with 10px items in batches of 5 snaps to 150px
  renderwave snap --scroll-top 130 --item-height 10 --batch-size 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			if !cmd.Flags().Changed("item-height") {
				itemHeight = cfg.List.ItemHeight
			}
			if !cmd.Flags().Changed("batch-size") {
				batchSize = cfg.List.BatchSize
			}
			return runSnap(cmd, scrollTop, itemHeight, batchSize)
		},
	}

	cmd.Flags().IntVar(&scrollTop, "scroll-top", 0, "scroll offset in pixels")
	cmd.Flags().IntVar(&itemHeight, "item-height", 0, "item height in pixels (default from config)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "items per batch (default from config)")
	_ = cmd.MarkFlagRequired("scroll-top")

	return cmd
}

func runSnap(cmd *cobra.Command, scrollTop, itemHeight, batchSize int) error {
	offset, err := wave.SnapToBatchOffset(scrollTop, itemHeight, batchSize)
	if err != nil {
		if errors.Is(err, wave.ErrZeroBatchPixelSize) {
			return fmt.Errorf("snap: item height %d * batch size %d: %w", itemHeight, batchSize, err)
		}
		return fmt.Errorf("snap: %w", err)
	}

	res := snapResult{
		ScrollTop:  scrollTop,
		ItemHeight: itemHeight,
		BatchSize:  batchSize,
		Offset:     offset,
		BatchIndex: offset / (itemHeight * batchSize),
	}
	logger.Debug().Ctx(cmd.Context()).Interface("snap", res).Msg("offset snapped")

	return render(cmd, res, nil, func(w io.Writer) error {
		fmt.Fprintf(w, "Scroll top:\t%s\n", formatPixels(scrollTop))
		fmt.Fprintf(w, "Batch:\t%d items x %d px\n", batchSize, itemHeight)
		fmt.Fprintf(w, "Snapped offset:\t%s (batch %d)\n", formatPixels(offset), res.BatchIndex)
		return nil
	})
}
