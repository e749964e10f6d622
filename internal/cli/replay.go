package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/rshade/renderwave/internal/engine/replay"
)

// replaySummary is the JSON form of a replay command result.
type replaySummary struct {
	Ops     int             `json:"ops"`
	Failed  int             `json:"failed"`
	Results []replay.Result `json:"results"`
}

// NewReplayCmd creates the replay command, which evaluates a YAML script of
// list operations such as a call log captured from a browser host.
func NewReplayCmd() *cobra.Command {
	var (
		concurrency int
		batchSize   int
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Evaluate a script of list operations",
		Long: `Evaluates every operation in a YAML script and prints the results in script order.
Operations are "visible", "snap", "group", "scroll" and "window"; the bridge names
(get_visible_indexes, snap_to_batch_offset, group_indexes, compute_scroll_target)
are accepted too. A failing operation is reported in its result and does not stop
the run.`,
		Example: `  # Replay a captured call log
  renderwave replay calls.yaml

  # One JSON object per result
  renderwave replay calls.yaml --output ndjson --concurrency 4

  # Re-run whenever the script is saved
  renderwave replay calls.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if concurrency <= 0 {
				concurrency = runtime.NumCPU()
			}
			opts := replay.Options{Concurrency: concurrency, BatchSize: batchSize}
			if err := runReplay(cmd, args[0], opts); err != nil {
				if !watch {
					return err
				}
				cmd.PrintErrf("Error: %v\n", err)
			}
			if watch {
				return watchReplay(cmd, args[0], opts)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "batches evaluated in parallel (0 = number of CPUs)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "operations per batch (0 = default)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the script whenever the file changes")

	return cmd
}

func runReplay(cmd *cobra.Command, path string, opts replay.Options) error {
	ctx := cmd.Context()
	audit := newAuditContext(ctx, "replay", map[string]string{
		"file":        path,
		"concurrency": strconv.Itoa(opts.Concurrency),
	})

	ops, err := replay.Load(path)
	if err != nil {
		audit.logFailure(ctx, err)
		return err
	}
	return replayOps(cmd, path, ops, opts, audit)
}

func replayOps(cmd *cobra.Command, path string, ops []replay.Op, opts replay.Options, audit *auditContext) error {
	ctx := cmd.Context()
	results, err := replay.Run(ctx, ops, opts)
	if err != nil {
		audit.logFailure(ctx, err)
		return fmt.Errorf("replaying %s: %w", path, err)
	}
	audit.logSuccess(ctx, len(results))

	summary := replaySummary{Ops: len(results), Results: results}
	records := make([]any, len(results))
	for i, r := range results {
		if r.Error != "" {
			summary.Failed++
		}
		records[i] = r
	}

	return render(cmd, summary, records, func(w io.Writer) error {
		fmt.Fprintln(w, "#\tOP\tRESULT")
		for _, r := range results {
			fmt.Fprintf(w, "%d\t%s\t%s\n", r.Index, r.Op, resultText(r))
		}
		fmt.Fprintf(w, "\n%d operations, %d failed\n", summary.Ops, summary.Failed)
		return nil
	})
}

// watchReplay re-runs the script on every change until the command's context
// is cancelled.
func watchReplay(cmd *cobra.Command, path string, opts replay.Options) error {
	ctx := cmd.Context()

	var mu sync.Mutex
	w, err := replay.NewWatcher(path, replay.DefaultWatchDebounce, func(ops []replay.Op, loadErr error) {
		mu.Lock()
		defer mu.Unlock()
		if loadErr != nil {
			cmd.PrintErrf("Error: %v\n", loadErr)
			return
		}
		cmd.PrintErrf("--- %s changed, replaying\n", path)
		audit := newAuditContext(ctx, "replay", map[string]string{"file": path, "trigger": "watch"})
		if runErr := replayOps(cmd, path, ops, opts, audit); runErr != nil {
			cmd.PrintErrf("Error: %v\n", runErr)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	cmd.PrintErrf("Watching %s (Ctrl+C to stop)\n", path)
	if err = w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// resultText renders a result value compactly for table output.
func resultText(r replay.Result) string {
	if r.Error != "" {
		return "error: " + r.Error
	}
	data, err := json.Marshal(r.Value)
	if err != nil {
		return fmt.Sprint(r.Value)
	}
	return string(data)
}
