package listview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/renderwave/internal/wave"
)

// Defaults for the terminal list. Rows are one line tall and revealed all at
// once unless WithReveal is given.
const (
	defaultItemHeight = 1
	defaultSnapDelay  = 150 * time.Millisecond
	statusLines       = 1
)

// RenderFunc is a function that renders an item at a given index.
type RenderFunc[T any] func(item T, index int) string

// GroupFunc returns the group label of an item for the sticky header.
type GroupFunc[T any] func(item T) string

// revealTickMsg asks the model to reveal the next batch.
type revealTickMsg struct{}

// snapMsg asks the model to snap to a batch boundary if no navigation
// happened since seq was issued.
type snapMsg struct{ seq int }

// Option configures a VirtualListModel.
type Option[T any] func(*VirtualListModel[T])

// WithItemHeight sets the height of each item in lines.
func WithItemHeight[T any](lines int) Option[T] {
	return func(m *VirtualListModel[T]) {
		if lines > 0 {
			m.itemHeight = lines
		}
	}
}

// WithReveal reveals items batchSize at a time, one batch per interval.
func WithReveal[T any](batchSize int, interval time.Duration) Option[T] {
	return func(m *VirtualListModel[T]) {
		m.revealBatch = batchSize
		m.revealInterval = interval
	}
}

// WithSnapToBatch snaps the offset to a multiple of batchSize items once
// navigation has been idle for a short delay.
func WithSnapToBatch[T any](batchSize int) Option[T] {
	return func(m *VirtualListModel[T]) {
		m.snapBatch = batchSize
	}
}

// WithGroupFunc enables the sticky group header.
func WithGroupFunc[T any](fn GroupFunc[T]) Option[T] {
	return func(m *VirtualListModel[T]) {
		m.groupFunc = fn
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap[T any](km KeyMap) Option[T] {
	return func(m *VirtualListModel[T]) {
		m.keys = km
	}
}

// VirtualListModel implements virtual scrolling for large lists.
// It tracks a scroll offset in lines and renders only the items that
// intersect the viewport.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]
	groupFunc  GroupFunc[T]
	labels     []string
	keys       KeyMap

	layout     *wave.Layout
	itemHeight int
	offset     int

	height int
	width  int

	reveal         *wave.Wave
	revealed       []int
	revealBatch    int
	revealInterval time.Duration

	snapBatch int
	snapDelay time.Duration
	snapSeq   int
}

// NewVirtualListModel creates a new virtual list model.
// height and width are the terminal size available to the list.
func NewVirtualListModel[T any](
	items []T,
	height, width int,
	renderFunc RenderFunc[T],
	opts ...Option[T],
) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		keys:       DefaultKeyMap(),
		itemHeight: defaultItemHeight,
		height:     height,
		width:      width,
		snapDelay:  defaultSnapDelay,
	}
	for _, opt := range opts {
		opt(m)
	}

	// itemHeight is always positive here, so NewLayout cannot fail.
	m.layout, _ = wave.NewLayout(len(items), m.itemHeight, nil)

	batchSize := m.revealBatch
	if batchSize <= 0 {
		batchSize = max(len(items), 1)
	}
	m.reveal, _ = wave.NewWave(len(items), batchSize, 0)
	m.revealed = m.reveal.Revealed()

	if m.groupFunc != nil {
		m.labels = make([]string, len(items))
		for i, it := range items {
			m.labels[i] = m.groupFunc(it)
		}
	}

	return m
}

// Init starts the reveal wave.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	if m.reveal.Done() {
		return nil
	}
	return m.revealTick()
}

// Update handles keyboard, resize, reveal and snap messages.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width
		m.offset = min(m.offset, m.MaxScroll())
		return m, nil

	case revealTickMsg:
		if m.reveal.Step() {
			m.revealed = m.reveal.Revealed()
		}
		if m.reveal.Done() {
			return m, nil
		}
		return m, m.revealTick()

	case snapMsg:
		if msg.seq == m.snapSeq {
			m.snap()
		}
		return m, nil
	}

	return m, nil
}

func (m *VirtualListModel[T]) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	nav, ok := m.keys.NavKey(msg)
	if !ok || len(m.items) == 0 {
		return nil
	}

	m.offset = wave.ComputeScrollTarget(string(nav), m.offset, m.viewportHeight(), m.itemHeight, m.MaxScroll())

	if m.snapBatch <= 0 || nav == wave.KeyHome || nav == wave.KeyEnd {
		return nil
	}
	m.snapSeq++
	seq := m.snapSeq
	return tea.Tick(m.snapDelay, func(time.Time) tea.Msg { return snapMsg{seq: seq} })
}

// snap moves the offset to the nearest batch boundary within the scroll range.
func (m *VirtualListModel[T]) snap() {
	snapped, err := wave.SnapToBatchOffset(m.offset, m.itemHeight, m.snapBatch)
	if err != nil {
		return
	}
	m.offset = min(snapped, m.MaxScroll())
}

func (m *VirtualListModel[T]) revealTick() tea.Cmd {
	return tea.Tick(m.revealInterval, func(time.Time) tea.Msg { return revealTickMsg{} })
}

// viewportHeight is the number of lines available for rows.
func (m *VirtualListModel[T]) viewportHeight() int {
	h := m.height - statusLines
	if m.groupFunc != nil {
		h -= lipgloss.Height(headerStyle.Render("x"))
	}
	return max(h, 1)
}

// View renders the rows inside the viewport.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	vh := m.viewportHeight()
	win := m.Window()
	visible := wave.VisibleIndexes(win.Start, win.End, m.revealed)

	lines := make([]string, 0, win.Len()*m.itemHeight)
	next := 0
	for i := win.Start; i < win.End; i++ {
		var row string
		if next < len(visible) && visible[next] == i {
			row = m.renderFunc(m.items[i], i)
			next++
		} else {
			row = skeletonStyle.Render(skeletonRow)
		}
		lines = append(lines, fitLines(row, m.itemHeight, m.width)...)
	}

	// Drop lines of a partially scrolled-off first item, then clip to the viewport.
	skip := min(m.offset-m.layout.OffsetForIndex(win.Start), len(lines))
	lines = lines[skip:]
	if len(lines) > vh {
		lines = lines[:vh]
	}

	var b strings.Builder
	if m.groupFunc != nil {
		group, _ := wave.CurrentGroup(m.layout, m.labels, m.offset)
		b.WriteString(headerStyle.Width(m.width).Render(group))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status(win)))

	return b.String()
}

func (m *VirtualListModel[T]) status(win wave.Window) string {
	return fmt.Sprintf("%d-%d of %d · revealed %d", win.Start+1, win.End, len(m.items), m.reveal.Count())
}

// fitLines splits s into exactly n lines, each truncated to width.
func fitLines(s string, n, width int) []string {
	parts := strings.Split(s, "\n")
	out := make([]string, n)
	for i := range n {
		if i < len(parts) {
			out[i] = truncate(parts[i], width)
		}
	}
	return out
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width {
		r = r[:len(r)-1]
	}
	return string(r)
}

// Window returns the items intersecting the viewport.
func (m *VirtualListModel[T]) Window() wave.Window {
	return m.layout.Window(m.offset, m.viewportHeight(), 0)
}

// MaxScroll returns the largest offset that still fills the viewport.
func (m *VirtualListModel[T]) MaxScroll() int {
	return m.layout.MaxScroll(m.viewportHeight())
}

// ItemCount returns the total number of items in the list.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Offset returns the scroll offset in lines.
func (m *VirtualListModel[T]) Offset() int {
	return m.offset
}

// SetOffset scrolls to offset, clamped to the scroll range.
func (m *VirtualListModel[T]) SetOffset(offset int) {
	m.offset = min(max(offset, 0), m.MaxScroll())
}

// ScrollToItem scrolls so that item index is at the top of the viewport.
func (m *VirtualListModel[T]) ScrollToItem(index int) {
	m.SetOffset(m.layout.OffsetForIndex(index))
}

// TopItem returns the index of the item at the top of the viewport.
func (m *VirtualListModel[T]) TopItem() int {
	return m.layout.IndexAtOffset(m.offset)
}

// RevealedCount returns how many items have been revealed.
func (m *VirtualListModel[T]) RevealedCount() int {
	return m.reveal.Count()
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}
