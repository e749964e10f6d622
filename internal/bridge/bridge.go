// Package bridge adapts the wave functions to a loosely typed foreign-function
// surface. Host values arrive as []any (float64 numbers, strings, nil for
// null/undefined, []any for arrays); the adapters validate them and call into
// package wave.
//
// The js/wasm glue in bridge_js.go registers Exports on globalThis.renderwave.
package bridge

import (
	"errors"
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/renderwave/internal/wave"
)

// ABIVersion is the version of the exported call surface.
const ABIVersion = "1.0.0"

// Export names as seen by the host.
const (
	NameGetVisibleIndexes   = "get_visible_indexes"
	NameSnapToBatchOffset   = "snap_to_batch_offset"
	NameGroupIndexes        = "group_indexes"
	NameComputeScrollTarget = "compute_scroll_target"
	NameABIVersion          = "abi_version"
	NameCheckABI            = "check_abi"
)

// ErrArgCount is returned when a call receives too few arguments.
var ErrArgCount = errors.New("not enough arguments")

// ErrResultRange is returned when a result cannot be represented exactly as
// a JS number.
var ErrResultRange = errors.New("result exceeds the safe integer range")

// ArgError describes an argument the host passed with the wrong type or range.
type ArgError struct {
	Func string
	Arg  string
	Got  any
	Want string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s: argument %s must be %s, got %v (%T)", e.Func, e.Arg, e.Want, e.Got, e.Got)
}

// Func is an exported host-callable function.
type Func func(args []any) (any, error)

// Exports returns the functions registered on the host, keyed by name.
func Exports() map[string]Func {
	return map[string]Func{
		NameGetVisibleIndexes: func(args []any) (any, error) {
			return GetVisibleIndexes(args)
		},
		NameSnapToBatchOffset: func(args []any) (any, error) {
			return SnapToBatchOffset(args)
		},
		NameGroupIndexes: func(args []any) (any, error) {
			return GroupIndexes(args)
		},
		NameComputeScrollTarget: func(args []any) (any, error) {
			return ComputeScrollTarget(args)
		},
		NameABIVersion: func([]any) (any, error) {
			return ABIVersion, nil
		},
		NameCheckABI: func(args []any) (any, error) {
			if len(args) < 1 {
				return nil, fmt.Errorf("%s: %w", NameCheckABI, ErrArgCount)
			}
			constraint, ok := args[0].(string)
			if !ok {
				return nil, &ArgError{Func: NameCheckABI, Arg: "constraint", Got: args[0], Want: "a string"}
			}
			return CheckABI(constraint)
		},
	}
}

// GetVisibleIndexes adapts get_visible_indexes(start, end, revealed).
func GetVisibleIndexes(args []any) ([]int, error) {
	const fn = NameGetVisibleIndexes
	if len(args) < 3 {
		return nil, fmt.Errorf("%s: %w", fn, ErrArgCount)
	}
	start, err := uintArg(fn, "start", args[0])
	if err != nil {
		return nil, err
	}
	end, err := uintArg(fn, "end", args[1])
	if err != nil {
		return nil, err
	}
	revealed, err := uintSliceArg(fn, "revealed", args[2])
	if err != nil {
		return nil, err
	}
	return wave.VisibleIndexes(start, end, revealed), nil
}

// SnapToBatchOffset adapts snap_to_batch_offset(scrollTop, itemHeight, batchSize).
// A zero batch pixel size is returned as an error wrapping
// wave.ErrZeroBatchPixelSize so the glue can throw it. Offsets past
// Number.MAX_SAFE_INTEGER return ErrResultRange.
func SnapToBatchOffset(args []any) (int, error) {
	const fn = NameSnapToBatchOffset
	if len(args) < 3 {
		return 0, fmt.Errorf("%s: %w", fn, ErrArgCount)
	}
	nums, err := uintArgs(fn, []string{"scroll_top", "item_height", "batch_size"}, args[:3])
	if err != nil {
		return 0, err
	}
	offset, err := wave.SnapToBatchOffset(nums[0], nums[1], nums[2])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", fn, err)
	}
	if offset > maxSafeInteger {
		return 0, fmt.Errorf("%s: %w: %d", fn, ErrResultRange, offset)
	}
	return offset, nil
}

// GroupIndexes adapts group_indexes(labels). Non-string labels, including
// null and undefined, are grouped under wave.DefaultLabel.
func GroupIndexes(args []any) (*wave.LabelIndex, error) {
	const fn = NameGroupIndexes
	if len(args) < 1 {
		return nil, fmt.Errorf("%s: %w", fn, ErrArgCount)
	}
	raw, ok := args[0].([]any)
	if !ok && args[0] != nil {
		return nil, &ArgError{Func: fn, Arg: "labels", Got: args[0], Want: "an array"}
	}

	labels := make([]*string, len(raw))
	for i, v := range raw {
		if s, isString := v.(string); isString {
			labels[i] = &s
		}
	}
	return wave.GroupOptionalIndexes(labels), nil
}

// ComputeScrollTarget adapts compute_scroll_target(key, current, container,
// itemHeight, maxScroll). A key that is not a string is treated as an
// unrecognized key.
func ComputeScrollTarget(args []any) (int, error) {
	const fn = NameComputeScrollTarget
	if len(args) < 5 {
		return 0, fmt.Errorf("%s: %w", fn, ErrArgCount)
	}
	key, _ := args[0].(string)
	nums, err := uintArgs(fn, []string{"current_scroll", "container_height", "item_height", "max_scroll"}, args[1:5])
	if err != nil {
		return 0, err
	}
	return wave.ComputeScrollTarget(key, nums[0], nums[1], nums[2], nums[3]), nil
}

// CheckABI reports whether ABIVersion satisfies constraint, e.g. "^1.0".
func CheckABI(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("%s: invalid constraint %q: %w", NameCheckABI, constraint, err)
	}
	return c.Check(semver.MustParse(ABIVersion)), nil
}

func uintArgs(fn string, names []string, vals []any) ([]int, error) {
	out := make([]int, len(vals))
	for i, v := range vals {
		n, err := uintArg(fn, names[i], v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// maxSafeInteger is the largest integer a JS number holds exactly.
const maxSafeInteger = 1<<53 - 1

// uintArg converts a host number to a non-negative int.
func uintArg(fn, name string, v any) (int, error) {
	bad := &ArgError{Func: fn, Arg: name, Got: v, Want: "a non-negative integer"}

	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 || n > maxSafeInteger || n != math.Trunc(n) {
			return 0, bad
		}
		return int(n), nil
	case int:
		if n < 0 {
			return 0, bad
		}
		return n, nil
	default:
		return 0, bad
	}
}

func uintSliceArg(fn, name string, v any) ([]int, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case []int:
		return s, nil
	case []any:
		out := make([]int, len(s))
		for i, e := range s {
			n, err := uintArg(fn, fmt.Sprintf("%s[%d]", name, i), e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, &ArgError{Func: fn, Arg: name, Got: v, Want: "an array of non-negative integers"}
	}
}
