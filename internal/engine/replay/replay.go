// Package replay evaluates scripts of list operations, such as call logs
// captured from a browser host, against the wave functions.
//
// A script is YAML:
//
//	ops:
//	  - op: snap
//	    scroll_top: 55
//	    item_height: 10
//	    batch_size: 5
//	  - op: compute_scroll_target
//	    key: PageDown
//	    current: 100
//	    container: 50
//	    item_height: 10
//	    max: 120
//
// Operation names accept both the short CLI names and the bridge names.
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rshade/renderwave/internal/engine/batch"
	"github.com/rshade/renderwave/internal/logging"
	"github.com/rshade/renderwave/internal/wave"
)

// Operation kinds.
const (
	OpVisible = "visible"
	OpSnap    = "snap"
	OpGroup   = "group"
	OpScroll  = "scroll"
	OpWindow  = "window"
)

// aliases maps bridge export names to operation kinds.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var aliases = map[string]string{
	"get_visible_indexes":   OpVisible,
	"snap_to_batch_offset":  OpSnap,
	"group_indexes":         OpGroup,
	"compute_scroll_target": OpScroll,
}

// Errors returned while loading or evaluating a script.
var (
	ErrUnknownOp   = errors.New("unknown operation")
	ErrEmptyScript = errors.New("script has no operations")
)

// Op is one scripted call. Only the fields relevant to Kind are read.
type Op struct {
	Kind string `yaml:"op" json:"op"`

	Start    int   `yaml:"start,omitempty" json:"start,omitempty"`
	End      int   `yaml:"end,omitempty" json:"end,omitempty"`
	Revealed []int `yaml:"revealed,omitempty" json:"revealed,omitempty"`

	ScrollTop  int `yaml:"scroll_top,omitempty" json:"scroll_top,omitempty"`
	ItemHeight int `yaml:"item_height,omitempty" json:"item_height,omitempty"`
	BatchSize  int `yaml:"batch_size,omitempty" json:"batch_size,omitempty"`

	Labels []*string `yaml:"labels,omitempty" json:"labels,omitempty"`

	Key       string `yaml:"key,omitempty" json:"key,omitempty"`
	Current   int    `yaml:"current,omitempty" json:"current,omitempty"`
	Container int    `yaml:"container,omitempty" json:"container,omitempty"`
	Max       int    `yaml:"max,omitempty" json:"max,omitempty"`

	Count    int         `yaml:"count,omitempty" json:"count,omitempty"`
	Heights  map[int]int `yaml:"heights,omitempty" json:"heights,omitempty"`
	Overscan int         `yaml:"overscan,omitempty" json:"overscan,omitempty"`
}

// Script is the top-level document.
type Script struct {
	Ops []Op `yaml:"ops"`
}

// Result is the outcome of one operation. Exactly one of Value and Error is set.
type Result struct {
	Index int    `json:"index"`
	Op    string `json:"op"`
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// WindowValue is the value produced by a window operation.
type WindowValue struct {
	wave.Window

	MaxScroll int    `json:"max_scroll"`
	Group     string `json:"group,omitempty"`
}

// Options tune Run.
type Options struct {
	Concurrency int
	BatchSize   int
}

// Load parses the script at path.
func Load(path string) ([]Op, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a script document.
func Parse(data []byte) ([]Op, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if len(s.Ops) == 0 {
		return nil, ErrEmptyScript
	}
	return s.Ops, nil
}

// Run evaluates ops and returns their results in script order. A failing
// operation is recorded in its Result and does not stop the run.
func Run(ctx context.Context, ops []Op, opts Options) ([]Result, error) {
	if len(ops) == 0 {
		return nil, ErrEmptyScript
	}

	size := opts.BatchSize
	if size <= 0 {
		size = batch.DefaultBatchSize
	}
	proc, err := batch.NewProcessor[Op](min(size, batch.MaxBatchSize))
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	results := make([]Result, len(ops))

	err = proc.ProcessConcurrent(ctx, ops, func(_ context.Context, chunk []Op, offset int) error {
		for i, op := range chunk {
			results[offset+i] = Evaluate(offset+i, op)
		}
		return nil
	}, opts.Concurrency)
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	log.Debug().Int("ops", len(ops)).Int("failed", failed).Msg("replay finished")

	return results, nil
}

// Evaluate runs a single operation. A panic inside the operation is reported
// as its error so one bad op cannot abort a replay.
func Evaluate(index int, op Op) (res Result) {
	kind := Normalize(op.Kind)
	res = Result{Index: index, Op: kind}
	defer func() {
		if r := recover(); r != nil {
			res.Value = nil
			res.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	value, err := evaluate(kind, op)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Value = value
	return res
}

// Normalize maps bridge names to operation kinds and leaves others unchanged.
func Normalize(kind string) string {
	if k, ok := aliases[kind]; ok {
		return k
	}
	return kind
}

func evaluate(kind string, op Op) (any, error) {
	switch kind {
	case OpVisible:
		return wave.VisibleIndexes(op.Start, op.End, op.Revealed), nil
	case OpSnap:
		return wave.SnapToBatchOffset(op.ScrollTop, op.ItemHeight, op.BatchSize)
	case OpGroup:
		return wave.GroupOptionalIndexes(op.Labels), nil
	case OpScroll:
		return wave.ComputeScrollTarget(op.Key, op.Current, op.Container, op.ItemHeight, op.Max), nil
	case OpWindow:
		return evaluateWindow(op)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op.Kind)
	}
}

func evaluateWindow(op Op) (any, error) {
	layout, err := wave.NewLayout(op.Count, op.ItemHeight, op.Heights)
	if err != nil {
		return nil, err
	}

	v := WindowValue{
		Window:    layout.Window(op.ScrollTop, op.Container, op.Overscan),
		MaxScroll: layout.MaxScroll(op.Container),
	}
	if len(op.Labels) > 0 {
		labels := make([]string, len(op.Labels))
		for i, l := range op.Labels {
			if l != nil {
				labels[i] = *l
			}
		}
		v.Group, _ = wave.CurrentGroup(layout, labels, op.ScrollTop)
	}
	return v, nil
}
