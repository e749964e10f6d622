package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/renderwave/internal/wave"
)

// windowResult is the JSON form of a window command result.
type windowResult struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	TotalHeight int    `json:"total_height"`
	MaxScroll   int    `json:"max_scroll"`
	Group       string `json:"group,omitempty"`
}

// NewWindowCmd creates the window command, which computes the rendered index
// range for a viewport over a list with optional measured item heights.
func NewWindowCmd() *cobra.Command {
	var (
		scrollTop  int
		count      int
		itemHeight int
		container  int
		overscan   int
		heights    map[string]int
		labels     []string
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Compute the rendered window for a viewport",
		Long: `Computes the half-open index range [start, end) that a virtual list renders for
the viewport at --scroll-top, including --overscan rows on each side. Items use
--item-height unless measured with --heights. With --labels, also prints the
group of the item at the top of the viewport.`,
		Example: `  # 1000 rows of 45px, viewport scrolled to 900px
  renderwave window --scroll-top 900 --count 1000

  # Row 3 measured at 120px, with sticky group labels
  renderwave window --scroll-top 100 --count 6 --heights 3=120 --labels a,a,b,b,c,c`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			if !cmd.Flags().Changed("item-height") {
				itemHeight = cfg.List.ItemHeight
			}
			if !cmd.Flags().Changed("container") {
				container = cfg.List.ContainerHeight
			}
			if !cmd.Flags().Changed("overscan") {
				overscan = cfg.List.Overscan
			}
			measured, err := parseHeights(heights)
			if err != nil {
				return err
			}
			if scrollTop < 0 || count < 0 || container < 0 || overscan < 0 {
				return errors.New("scroll-top, count, container and overscan must be >= 0")
			}
			return runWindow(cmd, windowArgs{
				scrollTop:  scrollTop,
				count:      count,
				itemHeight: itemHeight,
				container:  container,
				overscan:   overscan,
				measured:   measured,
				labels:     labels,
			})
		},
	}

	cmd.Flags().IntVar(&scrollTop, "scroll-top", 0, "scroll offset in pixels")
	cmd.Flags().IntVar(&count, "count", 0, "number of items in the list")
	cmd.Flags().IntVar(&itemHeight, "item-height", 0, "default item height in pixels (default from config)")
	cmd.Flags().IntVar(&container, "container", 0, "viewport height in pixels (default from config)")
	cmd.Flags().IntVar(&overscan, "overscan", 0, "extra rows rendered above and below (default from config)")
	cmd.Flags().StringToIntVar(&heights, "heights", nil, "measured heights as index=px pairs")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "group label of each item, comma separated")
	_ = cmd.MarkFlagRequired("count")

	return cmd
}

type windowArgs struct {
	scrollTop  int
	count      int
	itemHeight int
	container  int
	overscan   int
	measured   map[int]int
	labels     []string
}

func runWindow(cmd *cobra.Command, a windowArgs) error {
	layout, err := wave.NewLayout(a.count, a.itemHeight, a.measured)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}

	win := layout.Window(a.scrollTop, a.container, a.overscan)
	res := windowResult{
		Start:       win.Start,
		End:         win.End,
		TotalHeight: layout.TotalHeight(),
		MaxScroll:   layout.MaxScroll(a.container),
	}
	if len(a.labels) > 0 {
		res.Group, _ = wave.CurrentGroup(layout, a.labels, a.scrollTop)
	}
	logger.Debug().Ctx(cmd.Context()).Interface("window", res).Msg("window computed")

	return render(cmd, res, nil, func(w io.Writer) error {
		fmt.Fprintf(w, "Window:\t[%d, %d) (%d rows)\n", win.Start, win.End, win.Len())
		fmt.Fprintf(w, "Total height:\t%s\n", formatPixels(res.TotalHeight))
		fmt.Fprintf(w, "Max scroll:\t%s\n", formatPixels(res.MaxScroll))
		if len(a.labels) > 0 {
			fmt.Fprintf(w, "Group:\t%s\n", res.Group)
		}
		return nil
	})
}

// parseHeights converts index=px flag pairs into measured heights.
func parseHeights(pairs map[string]int) (map[int]int, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[int]int, len(pairs))
	for k, v := range pairs {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("invalid --heights index %q: must be a non-negative integer", k)
		}
		out[i] = v
	}
	return out, nil
}
