// Package listview provides a virtual scrolling list for Bubble Tea TUI applications.
//
// The list renders only the rows inside the viewport. Its behaviour mirrors
// the browser list the wave package serves:
//   - Keyboard navigation (up/down, pgup/pgdn, home/end) resolved by wave.ComputeScrollTarget
//   - Rows revealed progressively in batches (wave.Wave), with a skeleton for unrevealed rows
//   - Optional snap to the nearest batch boundary once navigation settles
//   - Optional sticky group header for the label at the top of the viewport
//
// Virtual scrolling keeps rendering at O(viewport_height) regardless of
// item count.
package listview
