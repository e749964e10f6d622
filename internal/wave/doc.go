// Package wave provides the arithmetic behind a virtualized (windowed) list.
//
// The package is a set of pure functions and small value types shared by the
// browser bridge, the CLI and the terminal list view:
//   - VisibleIndexes: filter revealed indexes down to a half-open window
//   - SnapToBatchOffset: round a pixel offset to the nearest batch boundary
//   - GroupIndexes: first-occurrence lookup from label to index, insertion ordered
//   - ComputeScrollTarget: map a navigation key to a new scroll offset
//
// Layout, Window, CurrentGroup and Wave model the surrounding list host:
// variable item heights, the rendered index range for a viewport, the sticky
// group header and the progressive reveal of items in batches.
//
// Nothing in this package holds shared mutable state. Every function may be
// called concurrently without coordination.
package wave
