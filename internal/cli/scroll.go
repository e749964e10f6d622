package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/renderwave/internal/wave"
)

// scrollResult is the JSON form of a scroll command result.
type scrollResult struct {
	Key     string `json:"key"`
	Known   bool   `json:"known"`
	Current int    `json:"current"`
	Target  int    `json:"target"`
}

// NewScrollCmd creates the scroll command, which resolves a navigation key
// press to a new scroll offset.
func NewScrollCmd() *cobra.Command {
	var (
		current    int
		container  int
		itemHeight int
		maxScroll  int
	)

	keyNames := make([]string, 0, len(wave.NavKeys()))
	for _, k := range wave.NavKeys() {
		keyNames = append(keyNames, string(k))
	}

	cmd := &cobra.Command{
		Use:       "scroll KEY",
		Short:     "Resolve a navigation key to a scroll offset",
		Long:      "Computes the scroll offset after pressing KEY, one of: " + strings.Join(keyNames, ", ") + ".\nAny other key leaves the offset unchanged.",
		Example:   `  renderwave scroll PageDown --current 100 --container 400 --max 4100`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: keyNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			if !cmd.Flags().Changed("container") {
				container = cfg.List.ContainerHeight
			}
			if !cmd.Flags().Changed("item-height") {
				itemHeight = cfg.List.ItemHeight
			}
			if current < 0 || container < 0 || itemHeight < 0 || maxScroll < 0 {
				return errors.New("offsets and heights must be >= 0")
			}
			return runScroll(cmd, args[0], current, container, itemHeight, maxScroll)
		},
	}

	cmd.Flags().IntVar(&current, "current", 0, "current scroll offset in pixels")
	cmd.Flags().IntVar(&container, "container", 0, "viewport height in pixels (default from config)")
	cmd.Flags().IntVar(&itemHeight, "item-height", 0, "item height in pixels (default from config)")
	cmd.Flags().IntVar(&maxScroll, "max", 0, "maximum scroll offset in pixels")
	_ = cmd.MarkFlagRequired("max")

	return cmd
}

func runScroll(cmd *cobra.Command, key string, current, container, itemHeight, maxScroll int) error {
	_, known := wave.ParseNavKey(key)
	if !known {
		logger.Warn().Ctx(cmd.Context()).Str("key", key).Msg("unknown navigation key, offset unchanged")
	}

	res := scrollResult{
		Key:     key,
		Known:   known,
		Current: current,
		Target:  wave.ComputeScrollTarget(key, current, container, itemHeight, maxScroll),
	}

	return render(cmd, res, nil, func(w io.Writer) error {
		fmt.Fprintf(w, "Key:\t%s\n", key)
		fmt.Fprintf(w, "Current:\t%s\n", formatPixels(current))
		fmt.Fprintf(w, "Target:\t%s\n", formatPixels(res.Target))
		return nil
	})
}
