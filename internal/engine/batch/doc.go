// Package batch processes a slice of work items in fixed-size batches,
// sequentially or with bounded concurrency, reporting progress after each
// batch. The replay engine uses it to evaluate large operation scripts.
package batch
